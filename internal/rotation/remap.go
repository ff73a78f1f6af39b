package rotation

import "github.com/ivlev/dopesheet/internal/curve"

// Clip is the view of an animation clip the remapper works against.
type Clip interface {
	HasCurve(b curve.Binding) bool
	Keyframes(b curve.Binding) ([]curve.Keyframe, bool)
	SetKeyframes(b curve.Binding, keys []curve.Keyframe)
	RemoveCurve(b curve.Binding)
	Legacy() bool
}

// displayOrder is the order in which alternate representations are probed.
var displayOrder = []Mode{NonBaked, Baked, RawEuler}

// RemapForDisplay returns the binding under which a rotation property is
// actually stored in clip. Representations are probed in the order
// NonBaked, Baked, RawEuler; the input binding is returned unchanged when
// none exists or the binding is not a rotation.
func RemapForDisplay(b curve.Binding, clip Clip) curve.Binding {
	mode := Classify(b)
	if mode == Undefined {
		return b
	}

	for _, alt := range displayOrder {
		if alt == mode {
			continue
		}
		candidate := WithMode(b, alt)
		if clip.HasCurve(candidate) {
			return candidate
		}
	}
	return b
}
