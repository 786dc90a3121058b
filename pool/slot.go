package pool

import "github.com/t-barz/slimeking-sub004/core"

// State is the lifecycle state of a slot
type State uint8

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Slot is one reusable instance plus its bookkeeping
// State transitions only through Pool.Acquire and Pool.Release
type Slot struct {
	id       core.SlotID
	pool     *Pool
	instance *Instance
	state    State

	// generation increments on every acquire, stale scheduled returns compare against it
	generation uint32
}

func (s *Slot) ID() core.SlotID     { return s.id }
func (s *Slot) Instance() *Instance { return s.instance }
func (s *Slot) State() State        { return s.state }
func (s *Slot) Active() bool        { return s.state == StateActive }
func (s *Slot) Generation() uint32  { return s.generation }

// Pool returns the owning pool, nil once the pool is torn down
func (s *Slot) Pool() *Pool { return s.pool }
