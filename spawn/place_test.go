package spawn

import (
	"testing"

	"github.com/t-barz/slimeking-sub004/pool"
	"github.com/t-barz/slimeking-sub004/vmath"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name     string
		base     vmath.Vec2
		offset   vmath.Vec2
		facing   Facing
		wantPos  vmath.Vec2
		wantPart string
		mirror   bool
	}{
		{"front inverts vertical", vmath.Zero, vmath.V2(0, 1), Facing{Direction: Front}, vmath.V2(0, -1), pool.PartFront, false},
		{"front keeps horizontal", vmath.V2(3, 3), vmath.V2(2, 1), Facing{Direction: Front}, vmath.V2(5, 2), pool.PartFront, false},
		{"back as-is", vmath.V2(1, 1), vmath.V2(2, 1), Facing{Direction: Back}, vmath.V2(3, 2), pool.PartBack, false},
		{"side right", vmath.Zero, vmath.V2(-2, 1), Facing{Direction: Side}, vmath.V2(2, 1), pool.PartSide, false},
		{"side mirrored", vmath.Zero, vmath.V2(2, 1), Facing{Direction: Side, Mirrored: true}, vmath.V2(-2, 1), pool.PartSide, true},
		{"side mirrored negative offset", vmath.V2(10, 0), vmath.V2(-2, 0), Facing{Direction: Side, Mirrored: true}, vmath.V2(8, 0), pool.PartSide, true},
		{"mirror ignored off side", vmath.Zero, vmath.V2(2, 1), Facing{Direction: Back, Mirrored: true}, vmath.V2(2, 1), pool.PartBack, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Place(tt.base, tt.offset, tt.facing)
			if !vmath.V2Near(p.Position, tt.wantPos, 1e-9) {
				t.Errorf("Position = %+v, want %+v", p.Position, tt.wantPos)
			}
			if p.Part != tt.wantPart {
				t.Errorf("Part = %q, want %q", p.Part, tt.wantPart)
			}
			if p.Mirror != tt.mirror {
				t.Errorf("Mirror = %v, want %v", p.Mirror, tt.mirror)
			}
		})
	}
}

func newDirectional(t *testing.T) *pool.Instance {
	t.Helper()
	bp := pool.Blueprint{Label: "slash", Parts: []string{pool.PartFront, pool.PartBack, pool.PartSide, "glow"}}
	inst, err := bp.Instantiate()
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	return inst
}

func TestApplyShowsOnlyMatchingPart(t *testing.T) {
	inst := newDirectional(t)

	p := Place(vmath.Zero, vmath.V2(2, 1), Facing{Direction: Side, Mirrored: true})
	if !Apply(inst, p) {
		t.Fatal("Apply reported no directional parts")
	}

	if inst.Transform.Position != p.Position {
		t.Errorf("Position not applied: %+v", inst.Transform.Position)
	}
	if v := inst.Visual(pool.PartSide); !v.Enabled || !v.FlipX {
		t.Errorf("Side visual = %+v, want enabled and flipped", *v)
	}
	if inst.Visual(pool.PartFront).Enabled || inst.Visual(pool.PartBack).Enabled {
		t.Error("Non-matching directional parts left enabled")
	}
	if !inst.Visual("glow").Enabled {
		t.Error("Non-directional part should be untouched")
	}
	if inst.Transform.Position.X >= 0 {
		t.Errorf("Mirrored side should place left of base, got x=%v", inst.Transform.Position.X)
	}
}

func TestApplyFrontClearsSideFlip(t *testing.T) {
	inst := newDirectional(t)
	Apply(inst, Place(vmath.Zero, vmath.V2(1, 1), Facing{Direction: Side, Mirrored: true}))
	Apply(inst, Place(vmath.Zero, vmath.V2(0, 1), Facing{Direction: Front}))

	if inst.Visual(pool.PartSide).FlipX {
		t.Error("Side flip survived a front placement")
	}
	if !inst.Visual(pool.PartFront).Enabled {
		t.Error("Front visual not enabled")
	}
	if !vmath.V2Near(inst.Transform.Position, vmath.V2(0, -1), 1e-9) {
		t.Errorf("Position = %+v, want (0,-1)", inst.Transform.Position)
	}
}

func TestApplyWithoutDirectionalParts(t *testing.T) {
	inst := pool.NewInstance("burst", []string{"core"}, nil, nil)
	inst.Visual("core").Enabled = false

	if Apply(inst, Place(vmath.Zero, vmath.V2(0, 1), Facing{})) {
		t.Error("Expected false for instance without directional parts")
	}
	if inst.Visual("core").Enabled {
		t.Error("Visibility changed on instance without directional parts")
	}
	if !vmath.V2Near(inst.Transform.Position, vmath.V2(0, -1), 1e-9) {
		t.Error("Position should still be applied")
	}
}

func TestApplyPartialParts(t *testing.T) {
	inst := pool.NewInstance("thrust", []string{pool.PartFront}, nil, nil)
	Apply(inst, Place(vmath.Zero, vmath.V2(1, 0), Facing{Direction: Side}))
	if inst.Visual(pool.PartFront).Enabled {
		t.Error("Front part should be hidden when facing side")
	}
}

func TestFacingFromMove(t *testing.T) {
	start := Facing{Direction: Back}
	tests := []struct {
		dx, dy int
		want   Facing
	}{
		{1, 0, Facing{Direction: Side}},
		{-1, 0, Facing{Direction: Side, Mirrored: true}},
		{0, -1, Facing{Direction: Back}},
		{0, 1, Facing{Direction: Front}},
		{0, 0, start},
	}
	for _, tt := range tests {
		if got := FacingFromMove(start, tt.dx, tt.dy); got != tt.want {
			t.Errorf("FacingFromMove(%d,%d) = %+v, want %+v", tt.dx, tt.dy, got, tt.want)
		}
	}
	if Side.String() != "side" || Direction(7).String() != "unknown" {
		t.Error("Unexpected Direction strings")
	}
}
