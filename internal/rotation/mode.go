package rotation

import (
	"fmt"
	"strings"

	"github.com/ivlev/dopesheet/internal/curve"
)

// Mode is the on-disk representation of transform rotation data.
type Mode int

const (
	Undefined Mode = iota
	Baked
	NonBaked
	RawEuler
	RawQuaternion
)

// Property-name prefixes for each representation.
const (
	BakedPrefix      = "localEulerAnglesBaked"
	NonBakedPrefix   = "localEulerAngles"
	RawEulerPrefix   = "localEulerAnglesRaw"
	QuaternionPrefix = "m_LocalRotation"
)

func (m Mode) String() string {
	switch m {
	case Baked:
		return "baked"
	case NonBaked:
		return "non-baked"
	case RawEuler:
		return "raw-euler"
	case RawQuaternion:
		return "raw-quaternion"
	}
	return "undefined"
}

// Prefix returns the property-name prefix of the mode, or "" for Undefined.
func (m Mode) Prefix() string {
	switch m {
	case Baked:
		return BakedPrefix
	case NonBaked:
		return NonBakedPrefix
	case RawEuler:
		return RawEulerPrefix
	case RawQuaternion:
		return QuaternionPrefix
	}
	return ""
}

// IsEuler reports whether the mode stores three euler axes.
func (m Mode) IsEuler() bool {
	return m == Baked || m == NonBaked || m == RawEuler
}

// ParseMode resolves a mode name as accepted on the command line.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "baked":
		return Baked, nil
	case "non-baked", "nonbaked", "":
		return NonBaked, nil
	case "raw-euler", "euler":
		return RawEuler, nil
	case "raw-quaternion", "quaternion":
		return RawQuaternion, nil
	default:
		return Undefined, fmt.Errorf("unknown rotation mode: %s", name)
	}
}

// Classify returns the rotation representation of a binding. Only transform
// bindings can classify as anything but Undefined.
func Classify(b curve.Binding) Mode {
	if !b.IsTransform() {
		return Undefined
	}
	name := b.PropertyName
	switch {
	case strings.HasPrefix(name, BakedPrefix):
		return Baked
	case strings.HasPrefix(name, RawEulerPrefix):
		return RawEuler
	case strings.HasPrefix(name, NonBakedPrefix):
		return NonBaked
	case strings.HasPrefix(name, QuaternionPrefix):
		return RawQuaternion
	}
	return Undefined
}

// Axis returns the component suffix of a rotation property ("x" for
// "localEulerAngles.x"), or "" when there is none.
func Axis(b curve.Binding) string {
	_, axis, ok := strings.Cut(b.PropertyName, ".")
	if !ok {
		return ""
	}
	return axis
}

// WithMode rewrites a binding to the same axis under another representation.
func WithMode(b curve.Binding, m Mode) curve.Binding {
	return b.WithProperty(m.Prefix() + "." + Axis(b))
}
