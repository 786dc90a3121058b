// Package schedule implements tick-driven one-shot returns
// A pending return is plain data (key, deadline, callback) drained by Tick; nothing blocks or sleeps
package schedule

import (
	"sync/atomic"
	"time"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/status"
)

// Fire is invoked when an entry comes due
// Returns false when the target was already gone or idle, which is counted as stale
type Fire func() bool

type entry struct {
	key       core.SlotID
	deadline  time.Time
	fire      Fire
	cancelled bool
}

// Scheduler holds pending timed returns keyed by slot
// At most one entry per key; single-threaded, mutated only from the owning tick
type Scheduler struct {
	pending []*entry
	byKey   map[core.SlotID]*entry
	due     []*entry

	statPending   *atomic.Int64
	statFired     *atomic.Int64
	statStale     *atomic.Int64
	statCancelled *atomic.Int64
}

// New creates a scheduler reporting to reg, a nil reg gets a private registry
func New(reg *status.Registry) *Scheduler {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Scheduler{
		pending:       make([]*entry, 0, 32),
		byKey:         make(map[core.SlotID]*entry),
		statPending:   reg.Ints.Get("schedule.pending"),
		statFired:     reg.Ints.Get("schedule.fired"),
		statStale:     reg.Ints.Get("schedule.stale"),
		statCancelled: reg.Ints.Get("schedule.cancelled"),
	}
}

// Register schedules fire at now+d, replacing any pending entry for key
// A non-positive d fires synchronously before Register returns
func (s *Scheduler) Register(key core.SlotID, now time.Time, d time.Duration, fire Fire) {
	s.Cancel(key)

	if d <= 0 {
		s.invoke(fire)
		return
	}

	e := &entry{
		key:      key,
		deadline: now.Add(d),
		fire:     fire,
	}
	s.pending = append(s.pending, e)
	s.byKey[key] = e
	s.statPending.Store(int64(len(s.byKey)))
}

// Cancel removes the pending entry for key, returns false if none existed
func (s *Scheduler) Cancel(key core.SlotID) bool {
	e, ok := s.byKey[key]
	if !ok {
		return false
	}
	// Compacted out of pending on the next Tick
	e.cancelled = true
	delete(s.byKey, key)
	s.statCancelled.Add(1)
	s.statPending.Store(int64(len(s.byKey)))
	return true
}

// CancelAll drops every live entry and returns how many were dropped
// Entries already collected by an in-progress Tick are dropped too
func (s *Scheduler) CancelAll() int {
	n := len(s.byKey)
	for _, e := range s.byKey {
		e.cancelled = true
	}
	for i := range s.pending {
		s.pending[i] = nil
	}
	s.pending = s.pending[:0]
	clear(s.byKey)
	s.statCancelled.Add(int64(n))
	s.statPending.Store(0)
	return n
}

// Tick fires every entry whose deadline is at or before now, in registration order
// Entries registered by callbacks during Tick are considered on the next Tick
func (s *Scheduler) Tick(now time.Time) int {
	if len(s.pending) == 0 {
		return 0
	}

	s.due = s.due[:0]
	kept := s.pending[:0]
	for _, e := range s.pending {
		switch {
		case e.cancelled:
		case !now.Before(e.deadline):
			s.due = append(s.due, e)
		default:
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.pending); i++ {
		s.pending[i] = nil
	}
	s.pending = kept

	fired := 0
	for i, e := range s.due {
		s.due[i] = nil
		// An earlier callback in this batch may have cancelled it
		if e.cancelled {
			continue
		}
		delete(s.byKey, e.key)
		s.statPending.Store(int64(len(s.byKey)))
		s.invoke(e.fire)
		fired++
	}
	s.due = s.due[:0]
	return fired
}

// Pending returns the number of live entries
func (s *Scheduler) Pending() int {
	return len(s.byKey)
}

// Deadline returns the pending deadline for key
func (s *Scheduler) Deadline(key core.SlotID) (time.Time, bool) {
	e, ok := s.byKey[key]
	if !ok {
		return time.Time{}, false
	}
	return e.deadline, true
}

func (s *Scheduler) invoke(fire Fire) {
	s.statFired.Add(1)
	if fire == nil || !fire() {
		s.statStale.Add(1)
	}
}
