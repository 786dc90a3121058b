package status

import (
	"io"
	"sync/atomic"

	"github.com/goccy/go-json"
)

// Registry is the central metrics facade for pools, the scheduler and the controller
// Components cache pointers at construction; hot paths write directly to atomics
type Registry struct {
	Bools *MetricMap[atomic.Bool]
	Ints  *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools: NewMetricMap[atomic.Bool](),
		Ints:  NewMetricMap[atomic.Int64](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count()
}

// Snapshot is a point-in-time copy of every registered metric
type Snapshot struct {
	Session string           `json:"session,omitempty"`
	Bools   map[string]bool  `json:"bools"`
	Ints    map[string]int64 `json:"ints"`
}

// Snapshot copies current values; individual reads are atomic, the set is not
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Bools: make(map[string]bool, r.Bools.Count()),
		Ints:  make(map[string]int64, r.Ints.Count()),
	}
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		s.Bools[key] = ptr.Load()
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		s.Ints[key] = ptr.Load()
	})
	return s
}

// WriteJSON encodes a snapshot tagged with session to w
func (r *Registry) WriteJSON(w io.Writer, session string) error {
	s := r.Snapshot()
	s.Session = session
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
