package pool

import (
	"time"

	"github.com/t-barz/slimeking-sub004/vmath"
)

// Directional sub-visual names
const (
	PartFront = "front"
	PartBack  = "back"
	PartSide  = "side"
)

// Transform is the placement of an instance in world space
type Transform struct {
	Position vmath.Vec2
	Rotation float64 // radians
	Scale    vmath.Vec2
}

// Identity returns the canonical neutral pose: origin, no rotation, unit scale
func Identity() Transform {
	return Transform{Scale: vmath.One}
}

// Visual is one named sub-part of an effect that can be shown, hidden or mirrored
type Visual struct {
	Name    string
	Enabled bool
	FlipX   bool
}

// Behaviour is a transient sub-behaviour attached to an instance (particles, trails)
type Behaviour interface {
	Play()
	Stop()
	Clear()
	Playing() bool
}

// Stepper is a behaviour that evolves with playback time
type Stepper interface {
	Step(dt time.Duration)
}

// Weighted is the capability of effects blended in by weight (post-process volumes)
type Weighted interface {
	SupportsWeight() bool
	SetWeight(w float64)
}

// Instance is the reusable body held by a slot
// Transform, playback and visuals are transient and restored by Reset
type Instance struct {
	Transform Transform
	Elapsed   time.Duration
	Playing   bool

	template   string
	visuals    []Visual
	behaviours []Behaviour
	volume     Weighted
}

// NewInstance builds an instance in canonical state; volume may be nil
func NewInstance(template string, parts []string, behaviours []Behaviour, volume Weighted) *Instance {
	inst := &Instance{
		template:   template,
		visuals:    make([]Visual, len(parts)),
		behaviours: behaviours,
		volume:     volume,
	}
	for i, name := range parts {
		inst.visuals[i].Name = name
	}
	inst.Reset()
	return inst
}

// Template returns the name of the template this instance was built from
func (i *Instance) Template() string {
	return i.template
}

// Visual returns the named sub-visual or nil
func (i *Instance) Visual(name string) *Visual {
	for k := range i.visuals {
		if i.visuals[k].Name == name {
			return &i.visuals[k]
		}
	}
	return nil
}

// Visuals returns the sub-visual slice, mutations are visible to the instance
func (i *Instance) Visuals() []Visual {
	return i.visuals
}

// Behaviours returns attached behaviours
func (i *Instance) Behaviours() []Behaviour {
	return i.behaviours
}

// SupportsWeight reports whether the instance carries a weighted volume
func (i *Instance) SupportsWeight() bool {
	return i.volume != nil && i.volume.SupportsWeight()
}

// SetWeight forwards to the volume, no-op without one
func (i *Instance) SetWeight(w float64) {
	if i.SupportsWeight() {
		i.volume.SetWeight(w)
	}
}

// Volume returns the weighted capability or nil
func (i *Instance) Volume() Weighted {
	return i.volume
}

// Play starts playback and every behaviour
func (i *Instance) Play() {
	i.Playing = true
	for _, b := range i.behaviours {
		b.Play()
	}
}

// Advance moves playback and stepping behaviours forward while playing
func (i *Instance) Advance(dt time.Duration) {
	if !i.Playing || dt <= 0 {
		return
	}
	i.Elapsed += dt
	for _, b := range i.behaviours {
		if s, ok := b.(Stepper); ok {
			s.Step(dt)
		}
	}
}

// Reset restores the canonical neutral state
func (i *Instance) Reset() {
	i.Transform = Identity()
	i.Elapsed = 0
	i.Playing = false
	for _, b := range i.behaviours {
		b.Stop()
		b.Clear()
	}
	for k := range i.visuals {
		i.visuals[k].Enabled = true
		i.visuals[k].FlipX = false
	}
	if i.SupportsWeight() {
		i.volume.SetWeight(0)
	}
}

// IsCanonical reports whether every transient field equals its reset value
func (i *Instance) IsCanonical() bool {
	if i.Transform != Identity() || i.Elapsed != 0 || i.Playing {
		return false
	}
	for _, b := range i.behaviours {
		if b.Playing() {
			return false
		}
	}
	for _, v := range i.visuals {
		if !v.Enabled || v.FlipX {
			return false
		}
	}
	if v, ok := i.volume.(*Volume); ok && v.Weight() != 0 {
		return false
	}
	return true
}
