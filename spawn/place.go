package spawn

import (
	"log"
	"math"

	"github.com/t-barz/slimeking-sub004/pool"
	"github.com/t-barz/slimeking-sub004/vmath"
)

// Placement is the computed world position and visible part for one spawn
type Placement struct {
	Position vmath.Vec2
	Part     string
	Mirror   bool
}

// Place computes where an effect with offset appears for an owner at base
//
//	Front: vertical component of offset inverted
//	Back:  offset as-is
//	Side:  horizontal component forced to |x|, negated when mirrored
func Place(base, offset vmath.Vec2, facing Facing) Placement {
	switch facing.Direction {
	case Side:
		x := math.Abs(offset.X)
		if facing.Mirrored {
			x = -x
		}
		return Placement{
			Position: vmath.V2Add(base, vmath.V2(x, offset.Y)),
			Part:     pool.PartSide,
			Mirror:   facing.Mirrored,
		}
	case Back:
		return Placement{
			Position: vmath.V2Add(base, offset),
			Part:     pool.PartBack,
		}
	default:
		return Placement{
			Position: vmath.V2Add(base, vmath.V2(offset.X, -offset.Y)),
			Part:     pool.PartFront,
		}
	}
}

// Apply moves inst to p and shows only the matching directional part
// An instance without any directional part keeps its visibility untouched
// Returns false in that case
func Apply(inst *pool.Instance, p Placement) bool {
	inst.Transform.Position = p.Position

	front := inst.Visual(pool.PartFront)
	back := inst.Visual(pool.PartBack)
	side := inst.Visual(pool.PartSide)
	if front == nil && back == nil && side == nil {
		log.Printf("spawn: template %q has no directional parts, visibility unchanged", inst.Template())
		return false
	}

	for _, v := range []*pool.Visual{front, back, side} {
		if v != nil {
			v.Enabled = v.Name == p.Part
		}
	}
	if side != nil {
		side.FlipX = p.Part == pool.PartSide && p.Mirror
	}
	return true
}
