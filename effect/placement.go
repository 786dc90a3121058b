package effect

import (
	"github.com/t-barz/slimeking-sub004/spawn"
	"github.com/t-barz/slimeking-sub004/vmath"
)

// Placement reports where the acting entity stands and which way it faces
// Sampled once per Perform
type Placement interface {
	Position() vmath.Vec2
	Facing() spawn.Facing
}

// Anchor is a mutable Placement owned by the host
type Anchor struct {
	Pos  vmath.Vec2
	Face spawn.Facing
}

func (a *Anchor) Position() vmath.Vec2 { return a.Pos }
func (a *Anchor) Facing() spawn.Facing { return a.Face }

// Move shifts the anchor by a screen-space step (y grows downward) and turns it toward the movement
// Pos stays in world space where y grows upward
func (a *Anchor) Move(dx, dy int) {
	a.Pos = vmath.V2Add(a.Pos, vmath.V2(float64(dx), float64(-dy)))
	a.Face = spawn.FacingFromMove(a.Face, dx, dy)
}
