package rotation

import (
	"errors"
	"fmt"
	"log"

	"github.com/ivlev/dopesheet/internal/curve"
)

// ErrUnsupportedMode is returned for conversion targets that cannot hold a
// copied euler curve.
var ErrUnsupportedMode = errors.New("unsupported rotation mode")

// LegacyEulerWarning is emitted when a legacy clip is converted to raw euler.
const LegacyEulerWarning = "euler angles interpolation is not fully supported for legacy clips; " +
	"mixing them with clips using other interpolation modes gives erroneous results"

// Conversion reports what ConvertInterpolation did.
type Conversion struct {
	// Converted maps each old binding to the binding now holding its keys.
	Converted map[curve.Binding]curve.Binding
	// Skipped lists bindings left untouched.
	Skipped []curve.Binding
	// Warnings are recoverable conditions met along the way.
	Warnings []string
}

// ConvertInterpolation moves every convertible rotation curve in bindings to
// the target representation. Each curve is copied under the target prefix
// with the same axis suffix and the old curve is removed. Quaternion curves
// and Undefined bindings are skipped; the call still completes for the rest.
func ConvertInterpolation(clip Clip, bindings []curve.Binding, target Mode) (*Conversion, error) {
	if !target.IsEuler() {
		log.Printf("[!] can't convert rotation curves to %s", target)
		return nil, fmt.Errorf("convert to %s: %w", target, ErrUnsupportedMode)
	}

	res := &Conversion{Converted: make(map[curve.Binding]curve.Binding)}

	if clip.Legacy() && target == RawEuler {
		res.warn(LegacyEulerWarning)
	}

	type move struct {
		from, to curve.Binding
		keys     []curve.Keyframe
	}
	var moves []move

	for _, b := range bindings {
		mode := Classify(b)
		switch {
		case mode == Undefined:
			res.Skipped = append(res.Skipped, b)
			continue
		case mode == RawQuaternion:
			res.warn(fmt.Sprintf("can't convert quaternion curve: %s", b))
			res.Skipped = append(res.Skipped, b)
			continue
		case mode == target:
			res.Skipped = append(res.Skipped, b)
			continue
		}

		keys, ok := clip.Keyframes(b)
		if !ok {
			res.Skipped = append(res.Skipped, b)
			continue
		}
		moves = append(moves, move{from: b, to: WithMode(b, target), keys: keys})
	}

	// Remove everything first so a target never collides with a source.
	for _, m := range moves {
		clip.RemoveCurve(m.from)
	}
	for _, m := range moves {
		clip.SetKeyframes(m.to, m.keys)
		res.Converted[m.from] = m.to
	}

	return res, nil
}

func (c *Conversion) warn(msg string) {
	log.Printf("[!] %s", msg)
	c.Warnings = append(c.Warnings, msg)
}
