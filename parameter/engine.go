package parameter

import "time"

// Engine timing
const (
	// TickInterval is the fixed simulation step
	TickInterval = 16 * time.Millisecond

	// FrameUpdateInterval is the render refresh of the sandbox
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxTickCatchUp bounds how far the loop lags before resyncing its deadline
	MaxTickCatchUp = 2 * TickInterval
)
