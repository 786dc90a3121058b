// Package service starts and stops long-lived subsystems in dependency order
package service

import "context"

// Service defines the lifecycle of an infrastructure subsystem (audio backend, simulation loop)
//
// Lifecycle:
//  1. Construction by the owner
//  2. Register with a Hub
//  3. Start(ctx) after every dependency started
//  4. [runtime operation]
//  5. Stop() in reverse start order
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Start before this one
	Dependencies() []string

	// Start begins service operation, launching goroutines if any
	Start(ctx context.Context) error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}

// funcService adapts plain functions into a Service
type funcService struct {
	name  string
	deps  []string
	start func(context.Context) error
	stop  func() error
}

// Func wraps start and stop functions as a Service, either may be nil
func Func(name string, deps []string, start func(context.Context) error, stop func() error) Service {
	return &funcService{name: name, deps: deps, start: start, stop: stop}
}

func (f *funcService) Name() string           { return f.name }
func (f *funcService) Dependencies() []string { return f.deps }

func (f *funcService) Start(ctx context.Context) error {
	if f.start == nil {
		return nil
	}
	return f.start(ctx)
}

func (f *funcService) Stop() error {
	if f.stop == nil {
		return nil
	}
	return f.stop()
}
