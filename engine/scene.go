package engine

import (
	"io"
	"log"
	"maps"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/errors"

	"github.com/t-barz/slimeking-sub004/config"
	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/effect"
	"github.com/t-barz/slimeking-sub004/pool"
	"github.com/t-barz/slimeking-sub004/schedule"
	"github.com/t-barz/slimeking-sub004/status"
)

// SceneOptions carries the host-provided collaborators of a scene
type SceneOptions struct {
	Cues      effect.CueSink
	Placement effect.Placement
	Start     time.Time // simulation epoch, zero uses wall time
	Status    *status.Registry
}

// Scene wires clock, scheduler, pools and controller from one configuration
// Owns every effect it spawns; Close tears all of it down
type Scene struct {
	Session uuid.UUID
	Config  config.Config

	Clock   *SimClock
	Status  *status.Registry
	Returns *schedule.Scheduler
	Pools   *pool.Registry
	Effects *effect.Controller

	// disabled maps categories that cannot spawn visuals to the reason
	disabled map[core.Category]error

	statUpdates *atomic.Int64
}

// NewScene builds a scene and prewarms every configured category
// Categories whose template cannot be built stay disabled; only config errors fail
func NewScene(cfg config.Config, opts SceneOptions) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	s := &Scene{
		Session:  uuid.New(),
		Config:   cfg,
		Clock:    NewSimClock(start),
		Status:   reg,
		disabled: make(map[core.Category]error),
	}
	s.Returns = schedule.New(reg)
	s.Pools = pool.NewRegistry(pool.Env{
		Seq:     &core.Sequence{},
		Returns: s.Returns,
		Clock:   s.Clock,
		Status:  reg,
	})
	s.Effects = effect.NewController(s.Pools, effect.Options{
		Pooling:   cfg.Pooling,
		Cues:      opts.Cues,
		Placement: opts.Placement,
	})
	s.statUpdates = reg.Ints.Get("engine.updates")

	for _, cat := range cfg.Categories {
		category := core.Category(cat.Name)
		if err := s.Pools.ConfigurePool(category, cat.PoolTemplate(), cat.GrowthEnabled(), cat.InitialCapacity, pool.WithHardCap(cat.HardCap)); err != nil {
			return nil, err
		}
		s.Effects.Bind(cat.Action())

		switch {
		case cat.Template == nil:
			s.disable(category, errors.Newf("category %s has no template", category).Wrap(pool.ErrInvalidTemplate))
		case cfg.Pooling:
			// Failure is latched by the registry, triggers fall back
			if err := s.Pools.Warm(category); err != nil {
				s.disable(category, err)
			}
		}
	}

	log.Printf("engine: scene %s ready, %d categories (%d disabled), pooling=%v", s.Session, len(cfg.Categories), len(s.disabled), cfg.Pooling)
	return s, nil
}

// Disabled returns the categories that cannot spawn visuals and why, nil when all are usable
func (s *Scene) Disabled() map[core.Category]error {
	if len(s.disabled) == 0 {
		return nil
	}
	return maps.Clone(s.disabled)
}

func (s *Scene) disable(category core.Category, err error) {
	s.disabled[category] = err
	s.Status.Bools.Get("scene.disabled." + string(category)).Store(true)
}

// Update advances the scene by one fixed step
func (s *Scene) Update(dt time.Duration) {
	s.Effects.Update(dt)
	s.statUpdates.Add(1)
}

// WriteStats dumps the status registry tagged with the scene session
func (s *Scene) WriteStats(w io.Writer) error {
	return s.Status.WriteJSON(w, s.Session.String())
}

// Close retires every live effect and tears down the pools
func (s *Scene) Close() int {
	n := s.Effects.Close()
	log.Printf("engine: scene %s closed, %d effects retired", s.Session, n)
	return n
}
