package status

import (
	"sort"
	"strings"
	"sync"
)

type entry[T any] struct {
	key string
	ptr *T
}

// MetricMap is a named set of metrics of type T
// Registration takes the mutex; callers cache the returned pointer and write lock-free
// Entries are kept sorted by key so iteration is deterministic
type MetricMap[T any] struct {
	mu      sync.RWMutex
	index   map[string]*T
	entries []entry[T]
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		index: make(map[string]*T),
	}
}

// Get returns the metric pointer for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.index[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.index[key]; ok {
		return ptr
	}

	ptr = new(T)
	m.index[key] = ptr
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].key >= key })
	m.entries = append(m.entries, entry[T]{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = entry[T]{key: key, ptr: ptr}
	return ptr
}

// Has returns true if the key was registered
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.index[key]
	return ok
}

// Range calls fn for every metric in key order
// fn runs outside the lock and may register new metrics
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.RangePrefix("", fn)
}

// RangePrefix is Range restricted to keys starting with prefix, e.g. "pool.impact_effect."
func (m *MetricMap[T]) RangePrefix(prefix string, fn func(key string, ptr *T)) {
	m.mu.RLock()
	start := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].key >= prefix })
	var view []entry[T]
	for _, e := range m.entries[start:] {
		if !strings.HasPrefix(e.key, prefix) {
			break
		}
		view = append(view, e)
	}
	m.mu.RUnlock()

	for _, e := range view {
		fn(e.key, e.ptr)
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
