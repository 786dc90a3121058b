package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoopSteps(t *testing.T) {
	var steps atomic.Int64
	var frames atomic.Int64
	loop := NewLoop(LoopConfig{
		Interval: time.Millisecond,
		Step: func(dt time.Duration) {
			if dt != time.Millisecond {
				t.Errorf("dt = %v, want 1ms", dt)
			}
			steps.Add(1)
		},
		Frame: func() { frames.Add(1) },
	})

	loop.Start()
	loop.Start()
	waitFor(t, func() bool { return steps.Load() >= 5 })

	if err := loop.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if loop.Ticks() < 5 {
		t.Errorf("Ticks = %d, want >= 5", loop.Ticks())
	}
	if frames.Load() < steps.Load() {
		t.Errorf("frames=%d steps=%d, expected a frame per step", frames.Load(), steps.Load())
	}
	select {
	case <-loop.Done():
	default:
		t.Error("Done not closed after Stop")
	}
}

func TestLoopPauseSkipsStep(t *testing.T) {
	var steps atomic.Int64
	var frames atomic.Int64
	loop := NewLoop(LoopConfig{
		Interval: time.Millisecond,
		Step:     func(time.Duration) { steps.Add(1) },
		Frame:    func() { frames.Add(1) },
	})

	loop.Pause()
	loop.Start()
	defer loop.Stop()

	waitFor(t, func() bool { return frames.Load() >= 5 })
	if steps.Load() != 0 {
		t.Errorf("Loop stepped %d times while paused", steps.Load())
	}

	if loop.TogglePause() {
		t.Fatal("TogglePause should resume a paused loop")
	}
	waitFor(t, func() bool { return steps.Load() > 0 })
}

func TestLoopSubmitRunsOnLoop(t *testing.T) {
	var inStep atomic.Bool
	var overlapped atomic.Bool
	var ran atomic.Int64

	loop := NewLoop(LoopConfig{
		Interval: time.Millisecond,
		Step: func(time.Duration) {
			inStep.Store(true)
			time.Sleep(100 * time.Microsecond)
			inStep.Store(false)
		},
	})
	loop.Start()

	for i := 0; i < 20; i++ {
		for !loop.Submit(func() {
			if inStep.Load() {
				overlapped.Store(true)
			}
			ran.Add(1)
		}) {
			time.Sleep(time.Millisecond)
		}
	}
	waitFor(t, func() bool { return ran.Load() == 20 })
	loop.Stop()

	if overlapped.Load() {
		t.Error("Submitted command ran concurrently with Step")
	}
	if loop.Submit(func() {}) {
		t.Error("Submit after Stop should fail")
	}
}

func TestLoopRecoversPanic(t *testing.T) {
	loop := NewLoop(LoopConfig{
		Interval: time.Millisecond,
		Step:     func(time.Duration) { panic("boom") },
	})
	loop.Start()

	select {
	case <-loop.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not exit after panic")
	}
	if err := loop.Stop(); err == nil {
		t.Error("Expected Stop to report the panic")
	}
}
