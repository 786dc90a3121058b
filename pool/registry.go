package pool

import (
	"log"
	"time"

	"github.com/olekukonko/errors"

	"github.com/t-barz/slimeking-sub004/core"
)

// Option adjusts a category configuration
type Option func(*Config)

// WithHardCap bounds pool growth at n slots, 0 leaves growth unbounded
func WithHardCap(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.HardCap = n
		}
	}
}

// Registry owns one pool per category and creates pools lazily on first acquire
type Registry struct {
	env Env

	configs map[core.Category]Config
	pools   map[core.Category]*Pool
	order   []*Pool

	// degraded holds categories that failed once; they stay unavailable
	degraded map[core.Category]error

	nextID core.PoolID
	closed bool
}

// NewRegistry creates an empty registry sharing env with every pool it creates
func NewRegistry(env Env) *Registry {
	return &Registry{
		env:      env.withDefaults(),
		configs:  make(map[core.Category]Config),
		pools:    make(map[core.Category]*Pool),
		degraded: make(map[core.Category]error),
	}
}

// ConfigurePool records the setup for category; the pool is built on first Acquire
// A nil template leaves the category permanently unavailable
func (r *Registry) ConfigurePool(category core.Category, template Template, growth bool, initialCapacity int, opts ...Option) error {
	if r.closed {
		return errors.Newf("registry: configure %s after close", category).Wrap(ErrPoolClosed)
	}
	if _, ok := r.pools[category]; ok {
		return errors.Newf("registry: category %s already has a live pool", category).Wrap(ErrAlreadyConfigured)
	}

	cfg := Config{
		Template:        template,
		Growth:          growth,
		InitialCapacity: max(initialCapacity, 0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	r.configs[category] = cfg
	delete(r.degraded, category)
	return nil
}

// Acquire returns an active slot of category's pool, creating the pool if needed
func (r *Registry) Acquire(category core.Category) (*Slot, error) {
	p, err := r.pool(category)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// Warm creates the pool for category ahead of the first Acquire
func (r *Registry) Warm(category core.Category) error {
	_, err := r.pool(category)
	return err
}

// Release returns a slot to its pool; no-op for idle or detached slots
func (r *Registry) Release(s *Slot) bool {
	if s == nil || s.pool == nil {
		return false
	}
	return s.pool.Release(s)
}

// ReleaseAfter schedules the return of s after d
func (r *Registry) ReleaseAfter(s *Slot, d time.Duration) bool {
	if s == nil || s.pool == nil {
		return false
	}
	return s.pool.ReleaseAfter(s, d)
}

// Pool returns the live pool for category without creating it
func (r *Registry) Pool(category core.Category) (*Pool, bool) {
	p, ok := r.pools[category]
	return p, ok
}

// Template returns the configured template for category
func (r *Registry) Template(category core.Category) (Template, bool) {
	cfg, ok := r.configs[category]
	if !ok || cfg.Template == nil {
		return nil, false
	}
	return cfg.Template, true
}

// Configured reports whether ConfigurePool was called for category
func (r *Registry) Configured(category core.Category) bool {
	_, ok := r.configs[category]
	return ok
}

// Each calls fn for every live pool in creation order
func (r *Registry) Each(fn func(*Pool)) {
	for _, p := range r.order {
		fn(p)
	}
}

// Env returns the collaborators shared by the registry's pools
func (r *Registry) Env() Env {
	return r.env
}

// Close tears down every pool, cancelling their pending returns
// Returns the number of slots that were still active
func (r *Registry) Close() int {
	if r.closed {
		return 0
	}
	r.closed = true

	released := 0
	for _, p := range r.order {
		released += p.Close()
	}
	return released
}

func (r *Registry) pool(category core.Category) (*Pool, error) {
	if r.closed {
		return nil, errors.Newf("registry: acquire %s after close", category).Wrap(ErrPoolClosed)
	}
	if p, ok := r.pools[category]; ok {
		return p, nil
	}
	if err, ok := r.degraded[category]; ok {
		return nil, err
	}

	cfg, ok := r.configs[category]
	if !ok {
		return nil, r.degrade(category, errors.Newf("registry: category %s not configured", category).Wrap(ErrInvalidTemplate))
	}

	r.nextID++
	p, err := newPool(r.nextID, category, cfg, r.env)
	if err != nil {
		return nil, r.degrade(category, err)
	}

	r.pools[category] = p
	r.order = append(r.order, p)
	return p, nil
}

// degrade latches a category as unavailable and logs the reason once
func (r *Registry) degrade(category core.Category, err error) error {
	r.degraded[category] = err
	log.Printf("pool: category %s unavailable: %v", category, err)
	return err
}
