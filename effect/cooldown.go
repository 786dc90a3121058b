package effect

import (
	"time"

	"github.com/t-barz/slimeking-sub004/core"
)

// Cooldowns tracks the remaining lockout per category
// A category is Ready when its remaining time is zero or it was never started
type Cooldowns struct {
	remaining map[core.Category]time.Duration
}

func NewCooldowns() *Cooldowns {
	return &Cooldowns{remaining: make(map[core.Category]time.Duration)}
}

// Ready reports whether category can trigger
func (c *Cooldowns) Ready(category core.Category) bool {
	return c.remaining[category] <= 0
}

// Remaining returns the lockout left for category
func (c *Cooldowns) Remaining(category core.Category) time.Duration {
	return max(c.remaining[category], 0)
}

// Start locks category for d, non-positive d leaves it ready
func (c *Cooldowns) Start(category core.Category, d time.Duration) {
	if d <= 0 {
		delete(c.remaining, category)
		return
	}
	c.remaining[category] = d
}

// Tick decrements every running cooldown by dt and drops expired ones
func (c *Cooldowns) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	for cat, left := range c.remaining {
		left -= dt
		if left <= 0 {
			delete(c.remaining, cat)
			continue
		}
		c.remaining[cat] = left
	}
}

// Reset clears every cooldown
func (c *Cooldowns) Reset() {
	clear(c.remaining)
}
