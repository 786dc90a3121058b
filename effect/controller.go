// Package effect drives short-lived effects through cooldown gating, acquisition,
// directional placement and timed return to their pool
package effect

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/olekukonko/errors"
	"golang.org/x/time/rate"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/parameter"
	"github.com/t-barz/slimeking-sub004/pool"
	"github.com/t-barz/slimeking-sub004/schedule"
	"github.com/t-barz/slimeking-sub004/spawn"
	"github.com/t-barz/slimeking-sub004/vmath"
)

// Advancer is a clock the controller steps forward once per Update
// Clocks without it (wall time) are only read
type Advancer interface {
	Advance(d time.Duration)
}

// Options configures a Controller
type Options struct {
	Pooling   bool      // false forces every spawn through the fallback path
	Cues      CueSink   // nil drops cues
	Placement Placement // consulted by Perform and Fire
}

// Handle identifies one spawned effect for manual release
type Handle struct {
	id   core.SlotID
	slot *pool.Slot
	gen  uint32
}

func (h Handle) ID() core.SlotID { return h.id }
func (h Handle) Valid() bool     { return h.id != 0 }
func (h Handle) Pooled() bool    { return h.slot != nil }

// fallback is an effect created outside any pool, discarded on release
type fallback struct {
	id       core.SlotID
	category core.Category
	instance *pool.Instance
}

// Controller gates, spawns and retires effects per category
// Not safe for concurrent use; the host serialises every call on one goroutine
type Controller struct {
	registry  *pool.Registry
	returns   *schedule.Scheduler
	seq       *core.Sequence
	clock     pool.Clock
	pooling   bool
	cues      CueSink
	placement Placement

	cooldowns *Cooldowns
	actions   map[core.Category]Action
	fallbacks []*fallback

	exhaustedWarn map[core.Category]*rate.Sometimes
	lostWarned    map[core.Category]bool
	closed        bool

	statTriggered  *atomic.Int64
	statSuppressed *atomic.Int64
	statFallback   *atomic.Int64
	statLost       *atomic.Int64
	statLive       *atomic.Int64
}

// NewController builds a controller over reg, sharing its scheduler, sequence and clock
func NewController(reg *pool.Registry, opts Options) *Controller {
	env := reg.Env()
	cues := opts.Cues
	if cues == nil {
		cues = NopSink{}
	}

	return &Controller{
		registry:       reg,
		returns:        env.Returns,
		seq:            env.Seq,
		clock:          env.Clock,
		pooling:        opts.Pooling,
		cues:           cues,
		placement:      opts.Placement,
		cooldowns:      NewCooldowns(),
		actions:        make(map[core.Category]Action),
		exhaustedWarn:  make(map[core.Category]*rate.Sometimes),
		lostWarned:     make(map[core.Category]bool),
		statTriggered:  env.Status.Ints.Get("effect.triggered"),
		statSuppressed: env.Status.Ints.Get("effect.suppressed"),
		statFallback:   env.Status.Ints.Get("effect.fallback"),
		statLost:       env.Status.Ints.Get("effect.lost"),
		statLive:       env.Status.Ints.Get("effect.fallback_live"),
	}
}

// Bind registers per-category defaults used by Fire, offsets and cues used by Trigger
func (c *Controller) Bind(actions ...Action) {
	for _, a := range actions {
		c.actions[a.Category] = a
	}
}

// Action returns the bound action for category
func (c *Controller) Action(category core.Category) (Action, bool) {
	a, ok := c.actions[category]
	return a, ok
}

// Trigger spawns category at base facing facing if its cooldown has expired
// Returns false only when suppressed by cooldown or after Close
func (c *Controller) Trigger(category core.Category, base vmath.Vec2, facing spawn.Facing, cooldown, duration time.Duration) bool {
	_, ok := c.Spawn(category, base, facing, cooldown, duration)
	return ok
}

// Spawn is Trigger returning a handle for manual release
// The handle is invalid when the category is disabled and no effect was created
func (c *Controller) Spawn(category core.Category, base vmath.Vec2, facing spawn.Facing, cooldown, duration time.Duration) (Handle, bool) {
	if c.closed {
		return Handle{}, false
	}
	if !c.cooldowns.Ready(category) {
		c.statSuppressed.Add(1)
		return Handle{}, false
	}

	c.cooldowns.Start(category, cooldown)
	c.statTriggered.Add(1)

	act := c.action(category)
	if act.Cue != "" {
		c.cues.Signal(act.Cue)
	}

	inst, h, ok := c.acquire(category)
	if !ok {
		// Disabled category: cooldown consumed, nothing to show
		return Handle{}, true
	}

	spawn.Apply(inst, spawn.Place(base, act.Offset, facing))
	inst.SetWeight(act.weight())
	inst.Play()

	if duration > 0 {
		c.releaseAfter(h, duration)
	}
	return h, true
}

// Perform triggers category at the position and facing reported by the Placement provider
func (c *Controller) Perform(category core.Category, cooldown, duration time.Duration) bool {
	base, facing := vmath.Zero, spawn.Facing{}
	if c.placement != nil {
		base, facing = c.placement.Position(), c.placement.Facing()
	}
	return c.Trigger(category, base, facing, cooldown, duration)
}

// Fire performs category with its bound cooldown and duration
// Unbound categories are ignored
func (c *Controller) Fire(category core.Category) bool {
	a, ok := c.actions[category]
	if !ok {
		return false
	}
	return c.Perform(category, a.Cooldown, a.Duration)
}

// Release retires a spawned effect before its scheduled return
// Returns false if the effect was already retired or its slot reused
func (c *Controller) Release(h Handle) bool {
	if !h.Valid() {
		return false
	}
	if h.slot != nil {
		if h.slot.Generation() != h.gen {
			return false
		}
		return c.registry.Release(h.slot)
	}
	c.returns.Cancel(h.id)
	return c.discard(h.id)
}

// Update advances cooldowns, playback and the simulation clock by dt, then fires due returns
func (c *Controller) Update(dt time.Duration) {
	if c.closed {
		return
	}

	c.cooldowns.Tick(dt)
	c.Each(func(_ core.Category, inst *pool.Instance) {
		inst.Advance(dt)
	})

	if a, ok := c.clock.(Advancer); ok && dt > 0 {
		a.Advance(dt)
	}
	c.returns.Tick(c.clock.Now())
}

// Each calls fn for every live effect: pooled ones in pool and slot order, then fallbacks
func (c *Controller) Each(fn func(category core.Category, inst *pool.Instance)) {
	c.registry.Each(func(p *pool.Pool) {
		p.EachActive(func(s *pool.Slot) {
			fn(p.Category(), s.Instance())
		})
	})
	for _, f := range c.fallbacks {
		fn(f.category, f.instance)
	}
}

// Ready reports whether category is off cooldown
func (c *Controller) Ready(category core.Category) bool {
	return c.cooldowns.Ready(category)
}

// Cooldown returns the lockout left for category
func (c *Controller) Cooldown(category core.Category) time.Duration {
	return c.cooldowns.Remaining(category)
}

// Fallbacks returns the number of live effects created outside pools
func (c *Controller) Fallbacks() int {
	return len(c.fallbacks)
}

// Registry returns the pool registry the controller spawns from
func (c *Controller) Registry() *pool.Registry {
	return c.registry
}

// Close cancels every pending return, retires every live effect and tears down the pools
// Returns the number of effects that were still live; later calls are no-ops
func (c *Controller) Close() int {
	if c.closed {
		return 0
	}
	c.closed = true

	c.returns.CancelAll()
	n := 0
	for _, f := range c.fallbacks {
		f.instance.Reset()
		n++
	}
	c.fallbacks = nil
	c.statLive.Store(0)

	n += c.registry.Close()
	c.cooldowns.Reset()
	return n
}

func (c *Controller) action(category core.Category) Action {
	if a, ok := c.actions[category]; ok {
		return a
	}
	return Action{Category: category, Cue: string(category)}
}

// acquire takes a pooled slot, falling back to direct creation when the pool cannot serve
func (c *Controller) acquire(category core.Category) (*pool.Instance, Handle, bool) {
	if c.pooling {
		s, err := c.registry.Acquire(category)
		if err == nil {
			return s.Instance(), Handle{id: s.ID(), slot: s, gen: s.Generation()}, true
		}
		if errors.Is(err, pool.ErrPoolExhausted) {
			c.warnExhausted(category, err)
		}
	}
	return c.fallback(category)
}

// fallback instantiates category's template outside any pool
func (c *Controller) fallback(category core.Category) (*pool.Instance, Handle, bool) {
	tmpl, ok := c.registry.Template(category)
	if !ok {
		c.lost(category, errors.Newf("no template for %s", category).Wrap(pool.ErrInvalidTemplate))
		return nil, Handle{}, false
	}

	inst, err := tmpl.Instantiate()
	if err != nil {
		c.lost(category, err)
		return nil, Handle{}, false
	}

	f := &fallback{
		id:       c.seq.Next(),
		category: category,
		instance: inst,
	}
	c.fallbacks = append(c.fallbacks, f)
	c.statFallback.Add(1)
	c.statLive.Store(int64(len(c.fallbacks)))
	return inst, Handle{id: f.id}, true
}

func (c *Controller) releaseAfter(h Handle, d time.Duration) {
	if h.slot != nil {
		c.registry.ReleaseAfter(h.slot, d)
		return
	}
	id := h.id
	c.returns.Register(id, c.clock.Now(), d, func() bool {
		return c.discard(id)
	})
}

// discard drops a fallback effect, false if it is already gone
func (c *Controller) discard(id core.SlotID) bool {
	for i, f := range c.fallbacks {
		if f.id != id {
			continue
		}
		f.instance.Reset()
		c.fallbacks = append(c.fallbacks[:i], c.fallbacks[i+1:]...)
		c.statLive.Store(int64(len(c.fallbacks)))
		return true
	}
	return false
}

func (c *Controller) warnExhausted(category core.Category, err error) {
	s, ok := c.exhaustedWarn[category]
	if !ok {
		s = &rate.Sometimes{Interval: parameter.ExhaustedWarnInterval}
		c.exhaustedWarn[category] = s
	}
	s.Do(func() {
		log.Printf("effect: %v, spawning %s outside the pool", err, category)
	})
}

// lost counts a spawn that produced nothing, logging once per category
func (c *Controller) lost(category core.Category, err error) {
	c.statLost.Add(1)
	if c.lostWarned[category] {
		return
	}
	c.lostWarned[category] = true
	log.Printf("effect: category %s disabled: %v", category, err)
}
