// Package render draws the live effect scene onto a tcell screen
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/effect"
	"github.com/t-barz/slimeking-sub004/pool"
	"github.com/t-barz/slimeking-sub004/vmath"
)

// StatusRows is the number of bottom rows reserved for the status line
const StatusRows = 1

// Frame is everything drawn in one refresh
type Frame struct {
	Effects *effect.Controller
	Anchor  *effect.Anchor
	Status  string
	Warn    bool
}

// Renderer maps world space onto terminal cells
// World is y-up with the origin at the center of the play area
type Renderer struct {
	screen tcell.Screen
	width  int
	height int
}

func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize re-reads screen dimensions, call on tcell.EventResize
func (r *Renderer) Resize() {
	r.width, r.height = r.screen.Size()
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) playHeight() int {
	if r.height <= StatusRows {
		return 0
	}
	return r.height - StatusRows
}

// Cell maps a world position to a screen cell, ok is false outside the play area
func (r *Renderer) Cell(p vmath.Vec2) (x, y int, ok bool) {
	wx, wy := vmath.V2Round(p)
	h := r.playHeight()
	x = r.width/2 + wx
	y = h/2 - wy
	return x, y, x >= 0 && x < r.width && y >= 0 && y < h
}

// Draw clears the screen, draws effects then the anchor on top, then the status line
func (r *Renderer) Draw(f Frame) {
	r.screen.Clear()
	base := tcell.StyleDefault.Background(RgbBackground)

	if f.Effects != nil {
		f.Effects.Each(func(category core.Category, inst *pool.Instance) {
			r.drawInstance(base, category, inst)
		})
	}

	if f.Anchor != nil {
		if x, y, ok := r.Cell(f.Anchor.Pos); ok {
			r.screen.SetContent(x, y, GlyphAnchor, nil, base.Foreground(RgbAnchor).Bold(true))
		}
	}

	if f.Status != "" && r.height > 0 {
		fg := RgbStatusText
		if f.Warn {
			fg = RgbStatusWarn
		}
		r.drawText(0, r.height-1, f.Status, base.Foreground(fg))
	}

	r.screen.Show()
}

func (r *Renderer) drawInstance(base tcell.Style, category core.Category, inst *pool.Instance) {
	glyph, visible := Glyph(inst)
	if !visible {
		return
	}
	x, y, ok := r.Cell(inst.Transform.Position)
	if !ok {
		return
	}
	color := Dim(CategoryColor(category), Intensity(inst))
	r.screen.SetContent(x, y, glyph, nil, base.Foreground(color))
}

// drawText writes s from (x, y) clipped at the right edge
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		if x >= r.width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
