package pool

import (
	"time"

	"github.com/olekukonko/errors"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/schedule"
	"github.com/t-barz/slimeking-sub004/status"
	"github.com/t-barz/slimeking-sub004/vmath"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// manualClock is advanced explicitly by tests
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time          { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// failingTemplate instantiates ok times and then fails
type failingTemplate struct {
	ok    int
	calls int
}

func (f *failingTemplate) Name() string { return "failing" }

func (f *failingTemplate) Instantiate() (*Instance, error) {
	f.calls++
	if f.calls > f.ok {
		return nil, errors.New("asset missing")
	}
	return NewInstance("failing", []string{PartFront}, nil, nil), nil
}

var slash = Blueprint{
	Label:    "slash",
	Parts:    []string{PartFront, PartBack, PartSide},
	Emitters: 1,
	Weighted: true,
}

type testEnv struct {
	clock   *manualClock
	returns *schedule.Scheduler
	status  *status.Registry
	env     Env
}

func newTestEnv() *testEnv {
	reg := status.NewRegistry()
	te := &testEnv{
		clock:   &manualClock{now: epoch},
		returns: schedule.New(reg),
		status:  reg,
	}
	te.env = Env{
		Seq:     &core.Sequence{},
		Returns: te.returns,
		Clock:   te.clock,
		Status:  reg,
	}
	return te
}

// step advances the clock and ticks the scheduler, as the host loop does
func (te *testEnv) step(d time.Duration) {
	te.clock.Advance(d)
	te.returns.Tick(te.clock.Now())
}

// dirty puts an instance into a non-canonical state
func dirty(inst *Instance) {
	inst.Transform.Position = vmath.V2(5, -3)
	inst.Transform.Rotation = 1.2
	inst.Transform.Scale = vmath.V2(2, 2)
	inst.Play()
	inst.Advance(40 * time.Millisecond)
	for k := range inst.Visuals() {
		inst.Visuals()[k].Enabled = false
		inst.Visuals()[k].FlipX = true
	}
	inst.SetWeight(0.8)
	for _, b := range inst.Behaviours() {
		if e, ok := b.(*Emitter); ok {
			e.Emit(12)
		}
	}
}
