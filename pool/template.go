package pool

import (
	"time"

	"github.com/olekukonko/errors"
)

// Template describes what a pooled instance looks like
// Immutable and shared by every slot of a pool
type Template interface {
	Name() string
	Instantiate() (*Instance, error)
}

// Clock supplies the simulation time used to stamp scheduled returns
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall time, used when no simulation clock is supplied
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Blueprint is the data-driven Template built from configuration
type Blueprint struct {
	Label    string
	Parts    []string
	Emitters int
	Weighted bool
}

// Name returns the blueprint label
func (b Blueprint) Name() string {
	return b.Label
}

// Validate checks the blueprint can produce instances
func (b Blueprint) Validate() error {
	if b.Label == "" {
		return errors.New("blueprint: empty label").Wrap(ErrInvalidTemplate)
	}
	if b.Emitters < 0 {
		return errors.Newf("blueprint %s: negative emitter count %d", b.Label, b.Emitters).Wrap(ErrInvalidTemplate)
	}
	seen := make(map[string]bool, len(b.Parts))
	for _, p := range b.Parts {
		if p == "" {
			return errors.Newf("blueprint %s: empty part name", b.Label).Wrap(ErrInvalidTemplate)
		}
		if seen[p] {
			return errors.Newf("blueprint %s: duplicate part %q", b.Label, p).Wrap(ErrInvalidTemplate)
		}
		seen[p] = true
	}
	return nil
}

// Instantiate builds a fresh instance in canonical state
func (b Blueprint) Instantiate() (*Instance, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	behaviours := make([]Behaviour, b.Emitters)
	for i := range behaviours {
		behaviours[i] = &Emitter{}
	}

	var volume Weighted
	if b.Weighted {
		volume = &Volume{}
	}

	return NewInstance(b.Label, b.Parts, behaviours, volume), nil
}
