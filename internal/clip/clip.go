package clip

import (
	"sort"

	"github.com/ivlev/dopesheet/internal/curve"
)

// CurrentVersion is written into every new clip document.
const CurrentVersion = "1.0"

// Clip is the persisted form of an animation clip
type Clip struct {
	Version   string        `yaml:"version"`
	Name      string        `yaml:"name"`
	FrameRate float64       `yaml:"frame_rate"`
	IsLegacy  bool          `yaml:"legacy,omitempty"`
	Curves    []CurveRecord `yaml:"curves"`
}

// CurveRecord is one binding with its persisted keys
type CurveRecord struct {
	curve.Binding `yaml:",inline"`
	Keys          []KeyRecord `yaml:"keys"`
}

// KeyRecord is a persisted keyframe
type KeyRecord struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value,omitempty"`
	Ref        string  `yaml:"ref,omitempty"`
	InTangent  float64 `yaml:"in_tangent"`
	OutTangent float64 `yaml:"out_tangent"`
	InWeight   float64 `yaml:"in_weight,omitempty"`
	OutWeight  float64 `yaml:"out_weight,omitempty"`
	Weighted   int     `yaml:"weighted,omitempty"`
	Tangent    string  `yaml:"tangent,omitempty"`
}

// New creates an empty clip
func New(name string, frameRate float64) *Clip {
	return &Clip{Version: CurrentVersion, Name: name, FrameRate: frameRate}
}

// Bindings lists every curve binding in the clip
func (c *Clip) Bindings() []curve.Binding {
	out := make([]curve.Binding, len(c.Curves))
	for i, r := range c.Curves {
		out[i] = r.Binding
	}
	return out
}

// HasCurve reports whether the clip stores a curve for b
func (c *Clip) HasCurve(b curve.Binding) bool {
	return c.indexOf(b) != -1
}

// Keyframes decodes the keys stored for b
func (c *Clip) Keyframes(b curve.Binding) ([]curve.Keyframe, bool) {
	i := c.indexOf(b)
	if i == -1 {
		return nil, false
	}
	return DecodeKeys(c.Curves[i].Keys), true
}

// SetKeyframes replaces (or adds) the curve for b
func (c *Clip) SetKeyframes(b curve.Binding, keys []curve.Keyframe) {
	b.IsPhantom = false
	rec := CurveRecord{Binding: b, Keys: EncodeKeys(keys)}
	if i := c.indexOf(b); i != -1 {
		c.Curves[i] = rec
		return
	}
	c.Curves = append(c.Curves, rec)
}

// RemoveCurve drops the curve for b if present
func (c *Clip) RemoveCurve(b curve.Binding) {
	if i := c.indexOf(b); i != -1 {
		c.Curves = append(c.Curves[:i], c.Curves[i+1:]...)
	}
}

// Legacy reports whether the clip uses the legacy animation system
func (c *Clip) Legacy() bool { return c.IsLegacy }

func (c *Clip) indexOf(b curve.Binding) int {
	b.IsPhantom = false
	for i, r := range c.Curves {
		if r.Binding == b {
			return i
		}
	}
	return -1
}

// EncodeKeys converts keyframes to their persisted form. Keys closer than
// curve.TimeEpsilon to the previously kept key are dropped.
func EncodeKeys(keys []curve.Keyframe) []KeyRecord {
	sorted := make([]curve.Keyframe, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	out := make([]KeyRecord, 0, len(sorted))
	last := -1.0
	for i, k := range sorted {
		if i > 0 && k.Time-last <= curve.TimeEpsilon {
			continue
		}
		last = k.Time
		out = append(out, KeyRecord{
			Time:       k.Time,
			Value:      k.Value,
			Ref:        k.Ref,
			InTangent:  k.InTangent,
			OutTangent: k.OutTangent,
			InWeight:   k.InWeight,
			OutWeight:  k.OutWeight,
			Weighted:   int(k.WeightedMode),
			Tangent:    tangentName(k.TangentMode),
		})
	}
	return out
}

// DecodeKeys converts persisted keys back to keyframes.
func DecodeKeys(records []KeyRecord) []curve.Keyframe {
	out := make([]curve.Keyframe, len(records))
	for i, r := range records {
		mode, _ := curve.ParseTangentMode(r.Tangent)
		out[i] = curve.Keyframe{
			Time:         r.Time,
			Value:        r.Value,
			Ref:          r.Ref,
			InTangent:    r.InTangent,
			OutTangent:   r.OutTangent,
			InWeight:     r.InWeight,
			OutWeight:    r.OutWeight,
			WeightedMode: curve.WeightedMode(r.Weighted),
			TangentMode:  mode,
		}
	}
	return out
}

func tangentName(m curve.TangentMode) string {
	if m == curve.TangentUnset {
		return ""
	}
	return m.String()
}
