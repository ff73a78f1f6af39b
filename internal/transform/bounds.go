package transform

import "math"

// degenerateSize is the extent under which a bounds axis cannot be scaled.
const degenerateSize = 1e-6

// Bounds is an axis-aligned box around selected keys.
type Bounds struct {
	Min, Max Point
	valid    bool
}

// NewBounds returns bounds spanning the two corners.
func NewBounds(a, b Point) Bounds {
	return Bounds{
		Min:   Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max:   Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
		valid: true,
	}
}

// Empty reports whether nothing has been added.
func (b Bounds) Empty() bool { return !b.valid }

// Add grows the bounds to include p.
func (b *Bounds) Add(p Point) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// AddTime grows only the time extent; reference keys have no value.
func (b *Bounds) AddTime(t float64) {
	if !b.valid {
		b.Min.X, b.Max.X, b.valid = t, t, true
		b.Min.Y, b.Max.Y = math.Inf(1), math.Inf(-1)
		return
	}
	b.Min.X = math.Min(b.Min.X, t)
	b.Max.X = math.Max(b.Max.X, t)
}

func (b Bounds) Width() float64 {
	if !b.valid {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height is zero when only reference keys were added.
func (b Bounds) Height() float64 {
	if !b.valid || b.Max.Y < b.Min.Y {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

// CanScaleTime reports whether the time axis has a usable extent.
func (b Bounds) CanScaleTime() bool { return b.Width() > degenerateSize }

// CanScaleValue reports whether the value axis has a usable extent.
func (b Bounds) CanScaleValue() bool { return b.Height() > degenerateSize }

// Contains reports whether p lies inside the bounds grown by tol.
func (b Bounds) Contains(p Point, tol float64) bool {
	if !b.valid {
		return false
	}
	minY, maxY := b.Min.Y, b.Max.Y
	if maxY < minY {
		minY, maxY = math.Inf(-1), math.Inf(1)
	}
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= minY-tol && p.Y <= maxY+tol
}
