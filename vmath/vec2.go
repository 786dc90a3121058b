package vmath

import "math"

// Vec2 is a float64 2D vector for world placement
type Vec2 struct {
	X, Y float64
}

var (
	// Zero is the origin
	Zero = Vec2{}
	// One is the unit scale
	One = Vec2{1, 1}
)

func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Mag(v Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

// V2Near reports whether a and b differ by at most eps on each axis
func V2Near(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// V2Round converts to the nearest integer cell, halves rounded away from zero
func V2Round(v Vec2) (x, y int) {
	return int(math.Round(v.X)), int(math.Round(v.Y))
}
