// Package rack provides the windowing, rendering and widget-event core of the
// rack GUI. Widgets form a retained tree rooted at a Scene; an Interaction
// routes input into that tree and tracks hover, focus and drag state.
package rack

import "math"

// Vec represents a 2D vector for positions, sizes and deltas.
type Vec struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec) Add(other Vec) Vec {
	return Vec{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec) Sub(other Vec) Vec {
	return Vec{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec) Mul(s float32) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Div returns the vector divided by a scalar.
func (v Vec) Div(s float32) Vec {
	return Vec{X: v.X / s, Y: v.Y / s}
}

// Round rounds both components to the nearest integer.
func (v Vec) Round() Vec {
	return Vec{X: float32(math.Round(float64(v.X))), Y: float32(math.Round(float64(v.Y)))}
}

// IsZero returns true if both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rect represents a rectangle with position and size.
type Rect struct {
	Pos  Vec // Top-left position
	Size Vec // Width and height
}

// NewRect creates a rectangle from its components.
func NewRect(x, y, w, h float32) Rect {
	return Rect{Pos: Vec{X: x, Y: y}, Size: Vec{X: w, Y: h}}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Size.X &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Size.Y
}

