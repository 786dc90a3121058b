package render

import (
	"github.com/t-barz/slimeking-sub004/pool"
)

// Glyphs per directional part
const (
	GlyphAnchor     = '@'
	GlyphFront      = 'v'
	GlyphBack       = '^'
	GlyphSide       = '>'
	GlyphSideFlip   = '<'
	GlyphUndirected = '*'
)

// Glyph picks the rune of the first enabled part
// Instances without parts draw as undirected, instances with every part hidden draw nothing
func Glyph(inst *pool.Instance) (rune, bool) {
	visuals := inst.Visuals()
	if len(visuals) == 0 {
		return GlyphUndirected, true
	}
	for _, v := range visuals {
		if !v.Enabled {
			continue
		}
		switch v.Name {
		case pool.PartFront:
			return GlyphFront, true
		case pool.PartBack:
			return GlyphBack, true
		case pool.PartSide:
			if v.FlipX {
				return GlyphSideFlip, true
			}
			return GlyphSide, true
		default:
			return GlyphUndirected, true
		}
	}
	return 0, false
}

// Intensity is the brightness of an instance, weighted volumes fade with their weight
func Intensity(inst *pool.Instance) float64 {
	if v, ok := inst.Volume().(*pool.Volume); ok {
		return v.Weight()
	}
	return 1
}
