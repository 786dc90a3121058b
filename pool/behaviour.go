package pool

import (
	"time"

	"github.com/t-barz/slimeking-sub004/parameter"
)

// Emitter is a particle-style behaviour counting emitted particles while playing
type Emitter struct {
	playing bool
	emitted int
	carry   time.Duration
}

func (e *Emitter) Play()         { e.playing = true }
func (e *Emitter) Stop()         { e.playing = false }
func (e *Emitter) Playing() bool { return e.playing }

func (e *Emitter) Clear() {
	e.emitted = 0
	e.carry = 0
}

// Step emits one particle per EmitInterval of playback, carrying the remainder
func (e *Emitter) Step(dt time.Duration) {
	if !e.playing || dt <= 0 {
		return
	}
	e.carry += dt
	n := int(e.carry / parameter.EmitInterval)
	e.carry -= time.Duration(n) * parameter.EmitInterval
	e.Emit(n)
}

// Emit adds n particles, ignored while stopped
func (e *Emitter) Emit(n int) {
	if e.playing && n > 0 {
		e.emitted += n
	}
}

// Emitted returns particles emitted since the last Clear
func (e *Emitter) Emitted() int {
	return e.emitted
}

// Volume is a post-process volume blended by weight in [0, 1]
type Volume struct {
	weight float64
}

func (v *Volume) SupportsWeight() bool { return true }

// SetWeight stores w clamped to [0, 1]
func (v *Volume) SetWeight(w float64) {
	switch {
	case w < 0:
		w = 0
	case w > 1:
		w = 1
	}
	v.weight = w
}

// Weight returns the current blend weight
func (v *Volume) Weight() float64 {
	return v.weight
}
