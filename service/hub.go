package service

import (
	"context"
	"log"
	"sync"

	"github.com/olekukonko/errors"
)

var (
	// ErrDuplicateService rejects a second registration under the same name
	ErrDuplicateService = errors.Named("service_duplicate")

	// ErrDependency marks an unknown or circular dependency
	ErrDependency = errors.Named("service_dependency")

	// ErrStart wraps the first Start failure
	ErrStart = errors.Named("service_start")
)

// Hub is the runtime container for service instances
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
	order    []string // registration order, keeps sorting stable
	sorted   []string // topological order, computed on StartAll
	started  []string // services that completed Start, for rollback and StopAll
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{
		services: make(map[string]Service),
	}
}

// Register adds a service instance
// Clears cached sort order to force recomputation
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return errors.Newf("service: %s already registered", name).Wrap(ErrDuplicateService)
	}

	h.services[name] = svc
	h.order = append(h.order, name)
	h.sorted = nil
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	svc, ok := h.services[name]
	return svc, ok
}

// StartAll starts every service in dependency order
// On failure, already-started services are stopped in reverse order
func (h *Hub) StartAll(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		order, err := h.topologicalSort()
		if err != nil {
			return err
		}
		h.sorted = order
	}

	h.started = h.started[:0]
	for _, name := range h.sorted {
		if err := h.services[name].Start(ctx); err != nil {
			h.stopStarted()
			return errors.Newf("service: %s start failed: %v", name, err).Wrap(ErrStart)
		}
		h.started = append(h.started, name)
		log.Printf("service: %s started", name)
	}
	return nil
}

// StopAll stops started services in reverse order
// Every service gets Stop called; failures are collected
func (h *Hub) StopAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopStarted()
}

// Started returns the names of running services in start order
func (h *Hub) Started() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.started...)
}

func (h *Hub) stopStarted() error {
	errs := errors.NewMultiError()
	for i := len(h.started) - 1; i >= 0; i-- {
		name := h.started[i]
		if err := h.services[name].Stop(); err != nil {
			log.Printf("service: %s stop failed: %v", name, err)
			errs.Add(err)
		}
	}
	h.started = h.started[:0]
	return errs.Single()
}

// topologicalSort computes start order using Kahn's algorithm
// Ties keep registration order
func (h *Hub) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string) // dep -> services that depend on it

	for _, name := range h.order {
		for _, dep := range h.services[name].Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, errors.Newf("service: %s depends on unregistered %s", name, dep).Wrap(ErrDependency)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for _, name := range h.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	result := make([]string, 0, len(h.services))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, errors.New("service: circular dependency").Wrap(ErrDependency)
	}
	return result, nil
}
