package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/parameter"
)

// RGB color definitions for the effect sandbox
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbAnchor     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbStatusText = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbStatusWarn = tcell.NewRGBColor(255, 80, 80)   // Normal Red

	RgbBasicAttack   = tcell.NewRGBColor(255, 255, 255) // White
	RgbSpecialAttack = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbImpact        = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbOtherEffect   = tcell.NewRGBColor(0, 200, 200)   // Vibrant Cyan
)

// CategoryColor returns the base color of an effect category
func CategoryColor(category core.Category) tcell.Color {
	switch category {
	case parameter.CategoryBasicAttack:
		return RgbBasicAttack
	case parameter.CategorySpecialAttack:
		return RgbSpecialAttack
	case parameter.CategoryImpact:
		return RgbImpact
	default:
		return RgbOtherEffect
	}
}

// Dim scales a color toward black, f is clamped to [0, 1]
func Dim(c tcell.Color, f float64) tcell.Color {
	if f >= 1 {
		return c
	}
	if f < 0 {
		f = 0
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(float64(r)*f), int32(float64(g)*f), int32(float64(b)*f))
}
