package parameter

import "time"

// Pool sizing
const (
	// DefaultInitialCapacity is the number of idle slots prewarmed when a pool is created
	DefaultInitialCapacity = 4

	// DefaultHardCap bounds growth of pools that do not configure one (0 = unbounded)
	DefaultHardCap = 64

	// DefaultGrowth enables growth when none is configured
	DefaultGrowth = true
)

// EmitInterval is the playback time per particle emitted by a playing emitter
const EmitInterval = 10 * time.Millisecond
