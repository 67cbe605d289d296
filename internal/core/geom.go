// Package core provides fundamental types and utilities shared by the game
// packages and the platform layer. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Bounds is an axis-aligned rectangle in playground-local coordinates.
// Bounds are derived from a Transform and never stored on their own.
type Bounds struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height, never negative
}

// NewBounds creates bounds, clamping negative sizes to zero.
func NewBounds(x, y, w, h float64) Bounds {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Bounds{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Bounds) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Bounds) Bottom() float64 {
	return b.Y + b.H
}

// Mid returns the midpoint of the rectangle.
func (b Bounds) Mid() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Contains reports whether the point lies inside or on the edge of b.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x <= b.Right() && y >= b.Y && y <= b.Bottom()
}

// Overlaps reports whether a and b share area or touch.
// Edges are inclusive: rectangles that meet along a side overlap.
func Overlaps(a, b Bounds) bool {
	if a.X > b.Right() || b.X > a.Right() {
		return false
	}
	if a.Y > b.Bottom() || b.Y > a.Bottom() {
		return false
	}
	return true
}

// Intersect returns the overlap rectangle of a and b.
// ok is false when the rectangles do not overlap. Touching rectangles
// produce a zero-width or zero-height intersection.
func Intersect(a, b Bounds) (r Bounds, ok bool) {
	if !Overlaps(a, b) {
		return Bounds{}, false
	}
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.Right(), b.Right())
	y1 := min(a.Bottom(), b.Bottom())
	return NewBounds(x0, y0, x1-x0, y1-y0), true
}

// Transform holds an entity's position, size and origin offset.
// MinX/MinY shift the bounds relative to the position, so a ball centred on
// (X, Y) uses MinX = MinY = -radius. Parent, when set, is the coordinate
// space the transform is nested in.
type Transform struct {
	X, Y       float64
	W, H       float64
	MinX, MinY float64
	Parent     *Transform
}

// Bounds returns the rectangle covered by the transform in its parent's space.
func (t *Transform) Bounds() Bounds {
	return NewBounds(t.X+t.MinX, t.Y+t.MinY, t.W, t.H)
}

// BoundsAt returns the bounds the transform would have at position (x, y).
func (t *Transform) BoundsAt(x, y float64) Bounds {
	return NewBounds(x+t.MinX, y+t.MinY, t.W, t.H)
}

// World returns the transform's position in the root coordinate space.
func (t *Transform) World() (float64, float64) {
	x, y := t.X, t.Y
	for p := t.Parent; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// ParentWidth returns the width of the parent transform, if there is one
// with a positive width.
func (t *Transform) ParentWidth() (float64, bool) {
	if t.Parent == nil || t.Parent.W <= 0 {
		return 0, false
	}
	return t.Parent.W, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp interpolates linearly between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
