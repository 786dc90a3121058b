package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/t-barz/slimeking-sub004/parameter"
	"github.com/t-barz/slimeking-sub004/status"
)

// LoopConfig configures a host Loop
type LoopConfig struct {
	Interval time.Duration       // fixed simulation step, zero uses parameter.TickInterval
	Step     func(time.Duration) // advances the simulation, never called while paused
	Frame    func()              // called after every tick, paused or not
	Time     TimeProvider        // wall time for deadlines, nil uses the system clock
	Status   *status.Registry
}

// Loop runs the simulation on a fixed tick in one goroutine
// Every Step, Frame and submitted command runs on that goroutine, so the
// simulation needs no locking
type Loop struct {
	interval time.Duration
	step     func(time.Duration)
	frame    func()
	time     TimeProvider

	commands chan func()
	paused   atomic.Bool
	running  atomic.Bool

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	wg       conc.WaitGroup

	tickCount atomic.Uint64
	statTicks *atomic.Int64
}

// NewLoop creates a stopped loop
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = parameter.TickInterval
	}
	if cfg.Time == nil {
		cfg.Time = NewMonotonicTimeProvider()
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}
	if cfg.Step == nil {
		cfg.Step = func(time.Duration) {}
	}

	return &Loop{
		interval:  cfg.Interval,
		step:      cfg.Step,
		frame:     cfg.Frame,
		time:      cfg.Time,
		commands:  make(chan func(), 64),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		statTicks: cfg.Status.Ints.Get("engine.ticks"),
	}
}

// Start launches the loop goroutine, later calls are no-ops
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Go(l.run)
	}
}

// Stop halts the loop and waits for it to exit
// Returns the recovered panic of the loop goroutine, if any
func (l *Loop) Stop() error {
	var err error
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if r := l.wg.WaitAndRecover(); r != nil {
			err = r.AsError()
		}
	})
	return err
}

// Done is closed when the loop goroutine exits, including by panic
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Submit queues fn to run on the loop goroutine before the next tick
// Returns false when the queue is full or the loop stopped
func (l *Loop) Submit(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.commands <- fn:
		return true
	default:
		return false
	}
}

func (l *Loop) Pause()        { l.paused.Store(true) }
func (l *Loop) Resume()       { l.paused.Store(false) }
func (l *Loop) Paused() bool  { return l.paused.Load() }
func (l *Loop) Ticks() uint64 { return l.tickCount.Load() }

// TogglePause flips the pause state and returns the new state
func (l *Loop) TogglePause() bool {
	for {
		old := l.paused.Load()
		if l.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (l *Loop) run() {
	defer close(l.done)

	next := l.time.Now().Add(l.interval)
	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case fn := <-l.commands:
			fn()
			continue
		case <-timer.C:
		}

		l.tick()

		now := l.time.Now()
		next = next.Add(l.interval)
		if now.Sub(next) > parameter.MaxTickCatchUp {
			next = now.Add(l.interval)
		}
		timer.Reset(max(next.Sub(now), 0))
	}
}

// tick drains queued commands then advances one step
func (l *Loop) tick() {
drain:
	for {
		select {
		case fn := <-l.commands:
			fn()
		default:
			break drain
		}
	}

	if !l.paused.Load() {
		l.step(l.interval)
		l.statTicks.Store(int64(l.tickCount.Add(1)))
	}
	if l.frame != nil {
		l.frame()
	}
}
