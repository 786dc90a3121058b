// Package pool hands out reusable effect instances grouped by category
// Slots are created once and recycled; nothing is freed until the pool is closed
package pool

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/olekukonko/errors"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/schedule"
	"github.com/t-barz/slimeking-sub004/status"
)

// Config is the per-category pool setup
type Config struct {
	Template        Template
	Growth          bool
	InitialCapacity int
	HardCap         int // 0 = unbounded growth
}

// Env holds collaborators shared by every pool of a registry
// Zero fields are filled with private defaults
type Env struct {
	Seq     *core.Sequence
	Returns *schedule.Scheduler
	Clock   Clock
	Status  *status.Registry
}

func (e Env) withDefaults() Env {
	if e.Seq == nil {
		e.Seq = &core.Sequence{}
	}
	if e.Status == nil {
		e.Status = status.NewRegistry()
	}
	if e.Returns == nil {
		e.Returns = schedule.New(e.Status)
	}
	if e.Clock == nil {
		e.Clock = SystemClock{}
	}
	return e
}

// Pool is a growable set of slots sharing one template
type Pool struct {
	id       core.PoolID
	category core.Category
	template Template
	growth   bool
	hardCap  int

	slots  []*Slot
	byID   map[core.SlotID]*Slot
	active int

	// invalid latches after the template fails to instantiate
	invalid bool
	closed  bool

	env Env

	statSize      *atomic.Int64
	statActive    *atomic.Int64
	statAcquired  *atomic.Int64
	statReleased  *atomic.Int64
	statGrown     *atomic.Int64
	statExhausted *atomic.Int64
}

// New creates a pool and prewarms InitialCapacity idle slots
// Fails with ErrInvalidTemplate when the template is missing or cannot be instantiated
func New(category core.Category, cfg Config, env Env) (*Pool, error) {
	return newPool(0, category, cfg, env.withDefaults())
}

func newPool(id core.PoolID, category core.Category, cfg Config, env Env) (*Pool, error) {
	if cfg.Template == nil {
		return nil, errors.Newf("pool %s: no template configured", category).Wrap(ErrInvalidTemplate)
	}

	prefix := "pool." + string(category) + "."
	p := &Pool{
		id:            id,
		category:      category,
		template:      cfg.Template,
		growth:        cfg.Growth,
		hardCap:       cfg.HardCap,
		byID:          make(map[core.SlotID]*Slot),
		env:           env,
		statSize:      env.Status.Ints.Get(prefix + "size"),
		statActive:    env.Status.Ints.Get(prefix + "active"),
		statAcquired:  env.Status.Ints.Get(prefix + "acquired"),
		statReleased:  env.Status.Ints.Get(prefix + "released"),
		statGrown:     env.Status.Ints.Get(prefix + "grown"),
		statExhausted: env.Status.Ints.Get(prefix + "exhausted"),
	}

	prewarm := cfg.InitialCapacity
	if p.hardCap > 0 && prewarm > p.hardCap {
		prewarm = p.hardCap
	}
	p.slots = make([]*Slot, 0, max(prewarm, 1))

	for i := 0; i < prewarm; i++ {
		inst, err := p.template.Instantiate()
		if err != nil {
			return nil, p.templateFailure(err)
		}
		p.add(inst)
	}

	return p, nil
}

// Acquire hands out the first idle slot in slot order, reset and active
// Grows by one slot when none is idle and growth allows it
func (p *Pool) Acquire() (*Slot, error) {
	if p.closed {
		return nil, errors.Newf("pool %s: acquire after close", p.category).Wrap(ErrPoolClosed)
	}
	if p.invalid {
		return nil, errors.Newf("pool %s: template %q unusable", p.category, p.template.Name()).Wrap(ErrInvalidTemplate)
	}

	for _, s := range p.slots {
		if s.state == StateIdle {
			p.activate(s)
			return s, nil
		}
	}

	if !p.growth || (p.hardCap > 0 && len(p.slots) >= p.hardCap) {
		p.statExhausted.Add(1)
		return nil, errors.Newf("pool %s: all %d slots active", p.category, len(p.slots)).
			Wrap(ErrPoolExhausted).
			With("category", string(p.category)).
			With("size", len(p.slots))
	}

	inst, err := p.template.Instantiate()
	if err != nil {
		err = p.templateFailure(err)
		log.Printf("pool: category %s degraded: %v", p.category, err)
		return nil, err
	}
	s := p.add(inst)
	p.statGrown.Add(1)
	p.activate(s)
	return s, nil
}

// Release returns an active slot to idle and cancels its pending scheduled return
// Releasing an idle or foreign slot is a no-op and returns false
func (p *Pool) Release(s *Slot) bool {
	if s == nil || s.pool != p || s.state != StateActive {
		return false
	}

	p.env.Returns.Cancel(s.id)
	s.instance.Reset()
	s.state = StateIdle
	p.active--
	p.statActive.Store(int64(p.active))
	p.statReleased.Add(1)
	return true
}

// ReleaseAfter schedules Release of an active slot d from now without blocking
// A non-positive d releases immediately
func (p *Pool) ReleaseAfter(s *Slot, d time.Duration) bool {
	if s == nil || s.pool != p || s.state != StateActive {
		return false
	}

	gen := s.generation
	p.env.Returns.Register(s.id, p.env.Clock.Now(), d, func() bool {
		return p.releaseGeneration(s, gen)
	})
	return true
}

// releaseGeneration releases s only if it was not recycled since the return was scheduled
func (p *Pool) releaseGeneration(s *Slot, gen uint32) bool {
	if p.closed || s.generation != gen {
		return false
	}
	return p.Release(s)
}

// Close cancels pending returns, resets every slot and detaches them from the pool
// Returns the number of slots that were still active
func (p *Pool) Close() int {
	if p.closed {
		return 0
	}
	p.closed = true

	released := 0
	for _, s := range p.slots {
		p.env.Returns.Cancel(s.id)
		if s.state == StateActive {
			s.instance.Reset()
			s.state = StateIdle
			released++
		}
		s.pool = nil
	}

	p.slots = nil
	clear(p.byID)
	p.active = 0
	p.statActive.Store(0)
	p.statSize.Store(0)
	return released
}

// Lookup returns the slot with id
func (p *Pool) Lookup(id core.SlotID) (*Slot, bool) {
	s, ok := p.byID[id]
	return s, ok
}

// EachActive calls fn for every active slot in slot order
func (p *Pool) EachActive(fn func(*Slot)) {
	for _, s := range p.slots {
		if s.state == StateActive {
			fn(s)
		}
	}
}

func (p *Pool) ID() core.PoolID         { return p.id }
func (p *Pool) Category() core.Category { return p.category }
func (p *Pool) Template() Template      { return p.template }
func (p *Pool) Len() int                { return len(p.slots) }
func (p *Pool) Active() int             { return p.active }
func (p *Pool) Idle() int               { return len(p.slots) - p.active }
func (p *Pool) Closed() bool            { return p.closed }

func (p *Pool) add(inst *Instance) *Slot {
	s := &Slot{
		id:       p.env.Seq.Next(),
		pool:     p,
		instance: inst,
		state:    StateIdle,
	}
	p.slots = append(p.slots, s)
	p.byID[s.id] = s
	p.statSize.Store(int64(len(p.slots)))
	return s
}

func (p *Pool) activate(s *Slot) {
	s.instance.Reset()
	s.state = StateActive
	s.generation++
	p.active++
	p.statActive.Store(int64(p.active))
	p.statAcquired.Add(1)
}

// templateFailure latches the pool invalid and tags cause as ErrInvalidTemplate
func (p *Pool) templateFailure(cause error) error {
	p.invalid = true
	if errors.Is(cause, ErrInvalidTemplate) {
		return cause
	}
	return errors.Newf("pool %s: instantiate %q: %v", p.category, p.template.Name(), cause).Wrap(ErrInvalidTemplate)
}
