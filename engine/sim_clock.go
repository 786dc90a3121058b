package engine

import (
	"sync"
	"time"
)

// SimClock is the simulation time source, advanced only by the tick that owns it
// Reads are safe from other goroutines (status, rendering)
type SimClock struct {
	mu      sync.RWMutex
	start   time.Time
	current time.Time
}

// NewSimClock creates a clock reading start until first advanced
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{
		start:   start,
		current: start,
	}
}

// Now returns the current simulation time
func (c *SimClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SetTime jumps the clock, used by tests
func (c *SimClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance moves simulation time forward by d, negative d is ignored
func (c *SimClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Elapsed returns simulation time since the clock was created
func (c *SimClock) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Sub(c.start)
}
