// Package spawn places a freshly acquired effect relative to its owner's facing
package spawn

// Direction is the coarse facing of the entity that spawns an effect
type Direction uint8

const (
	Front Direction = iota // toward the viewer, the default pose
	Back
	Side
)

func (d Direction) String() string {
	switch d {
	case Front:
		return "front"
	case Back:
		return "back"
	case Side:
		return "side"
	default:
		return "unknown"
	}
}

// Facing is a direction plus horizontal mirroring, Mirrored only matters for Side
type Facing struct {
	Direction Direction
	Mirrored  bool
}

// FacingFromMove derives a facing from a movement delta in screen space
// Zero delta keeps the current facing
func FacingFromMove(current Facing, dx, dy int) Facing {
	switch {
	case dx > 0:
		return Facing{Direction: Side}
	case dx < 0:
		return Facing{Direction: Side, Mirrored: true}
	case dy < 0:
		return Facing{Direction: Back}
	case dy > 0:
		return Facing{Direction: Front}
	default:
		return current
	}
}
