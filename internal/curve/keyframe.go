package curve

import "math"

// TangentMode controls how a key's tangents are derived from its neighbours.
type TangentMode int

const (
	TangentUnset TangentMode = iota
	TangentFree
	TangentLinear
	TangentConstant
	TangentAuto
	TangentClampedAuto
)

var tangentModeNames = map[TangentMode]string{
	TangentUnset:       "unset",
	TangentFree:        "free",
	TangentLinear:      "linear",
	TangentConstant:    "constant",
	TangentAuto:        "auto",
	TangentClampedAuto: "clamped_auto",
}

func (m TangentMode) String() string {
	if name, ok := tangentModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseTangentMode resolves a configured mode name.
func ParseTangentMode(name string) (TangentMode, bool) {
	for mode, n := range tangentModeNames {
		if n == name {
			return mode, true
		}
	}
	return TangentUnset, false
}

// WeightedMode flags which tangents carry explicit weights.
type WeightedMode int

const (
	WeightedNone WeightedMode = 0
	WeightedIn   WeightedMode = 1 << 0
	WeightedOut  WeightedMode = 1 << 1
	WeightedBoth              = WeightedIn | WeightedOut
)

// Value is a curve sample: numeric for scalar curves, a reference for
// object-reference curves.
type Value struct {
	Number float64
	Ref    string
}

// Keyframe is one sample of a curve. Keys are plain values owned by the
// curve's slice; callers pass the curve alongside when they need context.
type Keyframe struct {
	Time         float64
	Value        float64
	Ref          string
	InTangent    float64
	OutTangent   float64
	InWeight     float64
	OutWeight    float64
	WeightedMode WeightedMode
	TangentMode  TangentMode
}

// NewKeyframe creates a scalar key with flat tangents.
func NewKeyframe(t, v float64) Keyframe {
	return Keyframe{Time: t, Value: v, InWeight: 1.0 / 3, OutWeight: 1.0 / 3}
}

// NewRefKeyframe creates an object-reference key.
func NewRefKeyframe(t float64, ref string) Keyframe {
	return Keyframe{
		Time:        t,
		Ref:         ref,
		InTangent:   math.Inf(1),
		OutTangent:  math.Inf(1),
		TangentMode: TangentConstant,
	}
}

// FlipTime mirrors the key's tangents for a time-axis flip: in and out swap
// and change sign; infinite (stepped) tangents stay infinite.
func (k Keyframe) FlipTime() Keyframe {
	in, out := k.InTangent, k.OutTangent
	k.InTangent = negateFinite(out)
	k.OutTangent = negateFinite(in)
	k.InWeight, k.OutWeight = k.OutWeight, k.InWeight
	switch k.WeightedMode {
	case WeightedIn:
		k.WeightedMode = WeightedOut
	case WeightedOut:
		k.WeightedMode = WeightedIn
	}
	return k
}

// FlipValue negates both tangents for a value-axis flip.
func (k Keyframe) FlipValue() Keyframe {
	k.InTangent = negateFinite(k.InTangent)
	k.OutTangent = negateFinite(k.OutTangent)
	return k
}

func negateFinite(v float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return -v
}
