package curve

import (
	"math"
	"sort"
)

// Evaluate samples the curve at the given time.
//
// Times at or before the first key return the first key's value, times at or
// after the last key return the last key's value. Between keys, scalar
// curves use a cubic Hermite segment built from the bracketing pair while
// reference curves hold the left key's value.
func (c *Curve) Evaluate(t float64) Value {
	if len(c.keys) == 0 {
		return Value{}
	}

	// Before the first key
	first := c.keys[0]
	if t <= first.Time {
		return c.valueOf(first)
	}

	// After the last key
	last := c.keys[len(c.keys)-1]
	if t >= last.Time {
		return c.valueOf(last)
	}

	// First key strictly after t; its predecessor brackets from the left
	i := sort.Search(len(c.keys), func(i int) bool {
		return c.keys[i].Time > t
	})
	left, right := c.keys[i-1], c.keys[i]

	if c.IsPPtr() {
		return c.valueOf(left)
	}
	return Value{Number: Hermite(left, right, t)}
}

// EvaluateNumber is Evaluate for scalar curves.
func (c *Curve) EvaluateNumber(t float64) float64 {
	return c.Evaluate(t).Number
}

func (c *Curve) valueOf(k Keyframe) Value {
	if c.IsPPtr() {
		return Value{Ref: k.Ref}
	}
	return Value{Number: k.Value}
}

// Hermite evaluates the cubic segment between two keys at time t.
// Infinite tangents on either side produce a step holding the left value.
func Hermite(left, right Keyframe, t float64) float64 {
	if math.IsInf(left.OutTangent, 0) || math.IsInf(right.InTangent, 0) {
		return left.Value
	}

	dt := right.Time - left.Time
	if dt <= 0 {
		return left.Value
	}

	s := (t - left.Time) / dt
	m0 := left.OutTangent * dt
	m1 := right.InTangent * dt

	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*left.Value + h10*m0 + h01*right.Value + h11*m1
}
