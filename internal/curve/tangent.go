package curve

import "math"

// UpdateTangents recomputes the tangents of key i from its tangent mode.
// Free keys are left untouched.
func (c *Curve) UpdateTangents(i int) {
	if i < 0 || i >= len(c.keys) {
		return
	}
	k := &c.keys[i]

	if c.IsPPtr() {
		k.InTangent, k.OutTangent = math.Inf(1), math.Inf(1)
		return
	}

	switch k.TangentMode {
	case TangentConstant:
		k.InTangent, k.OutTangent = math.Inf(1), math.Inf(1)
	case TangentLinear:
		k.InTangent = c.slope(i-1, i)
		k.OutTangent = c.slope(i, i+1)
	case TangentAuto:
		s := c.smoothSlope(i)
		k.InTangent, k.OutTangent = s, s
	case TangentClampedAuto:
		s := c.clampedSlope(i)
		k.InTangent, k.OutTangent = s, s
	}
}

// refreshAround updates the key at i and its direct neighbours.
func (c *Curve) refreshAround(i int) {
	if i < 0 {
		return
	}
	c.UpdateTangents(i - 1)
	c.UpdateTangents(i)
	c.UpdateTangents(i + 1)
}

// slope between keys a and b; zero when either index is out of range.
func (c *Curve) slope(a, b int) float64 {
	if a < 0 || b >= len(c.keys) {
		return 0
	}
	dt := c.keys[b].Time - c.keys[a].Time
	if dt <= 0 {
		return 0
	}
	return (c.keys[b].Value - c.keys[a].Value) / dt
}

func (c *Curve) smoothSlope(i int) float64 {
	if i == 0 || i == len(c.keys)-1 {
		return 0
	}
	prev, next := c.keys[i-1], c.keys[i+1]
	dt := next.Time - prev.Time
	if dt <= 0 {
		return 0
	}
	return (next.Value - prev.Value) / dt
}

// clampedSlope is the smooth slope limited so the segment never overshoots
// its neighbours; local extrema get flat tangents.
func (c *Curve) clampedSlope(i int) float64 {
	if i == 0 || i == len(c.keys)-1 {
		return 0
	}
	prev, cur, next := c.keys[i-1], c.keys[i], c.keys[i+1]
	if (cur.Value-prev.Value)*(next.Value-cur.Value) <= 0 {
		return 0
	}

	s := c.smoothSlope(i)
	limit := 3 * math.Min(math.Abs(c.slope(i-1, i)), math.Abs(c.slope(i, i+1)))
	if math.Abs(s) > limit {
		s = math.Copysign(limit, s)
	}
	return s
}
