package curve

import (
	"sort"

	"github.com/ivlev/dopesheet/internal/timeline"
)

// TimeEpsilon is the smallest separation between two persisted keys.
const TimeEpsilon = 1e-5

// Curve is one binding plus its keyframes, always sorted ascending by time.
type Curve struct {
	Binding     Binding
	keys        []Keyframe
	defaultMode TangentMode
}

// New creates a curve from keys in any order.
func New(b Binding, keys ...Keyframe) *Curve {
	c := &Curve{Binding: b, defaultMode: TangentClampedAuto}
	c.SetKeys(keys)
	return c
}

// SetDefaultTangentMode sets the mode given to inserted keys that carry none.
func (c *Curve) SetDefaultTangentMode(mode TangentMode) {
	c.defaultMode = mode
}

// Len returns the number of keys.
func (c *Curve) Len() int { return len(c.keys) }

// Key returns the key at index i.
func (c *Curve) Key(i int) Keyframe { return c.keys[i] }

// Keys returns a copy of the keys.
func (c *Curve) Keys() []Keyframe {
	out := make([]Keyframe, len(c.keys))
	copy(out, c.keys)
	return out
}

// SetKeys replaces all keys and re-sorts them.
func (c *Curve) SetKeys(keys []Keyframe) {
	c.keys = make([]Keyframe, len(keys))
	copy(c.keys, keys)
	c.sort()
}

// IsPPtr reports whether the curve holds object references.
func (c *Curve) IsPPtr() bool { return c.Binding.IsPPtrCurve }

// IsPhantom reports whether the curve is a synthesized placeholder.
func (c *Curve) IsPhantom() bool { return c.Binding.IsPhantom }

// Compare orders curves by their bindings; see Compare.
func (c *Curve) Compare(o *Curve) int {
	return Compare(c.Binding, o.Binding)
}

// Clone returns a deep copy of the curve.
func (c *Curve) Clone() *Curve {
	return &Curve{Binding: c.Binding, keys: c.Keys(), defaultMode: c.defaultMode}
}

// Range returns the first and last key times; ok is false for empty curves.
func (c *Curve) Range() (start, end float64, ok bool) {
	if len(c.keys) == 0 {
		return 0, 0, false
	}
	return c.keys[0].Time, c.keys[len(c.keys)-1].Time, true
}

// AddKeyframe inserts key at the given time. Any key already in the same
// frame interval is replaced. Returns the index of the inserted key.
func (c *Curve) AddKeyframe(key Keyframe, at timeline.Time) int {
	c.RemoveKeyframe(at)

	key.Time = at.Time()
	if key.TangentMode == TangentUnset {
		key.TangentMode = c.defaultMode
	}
	if c.IsPPtr() {
		key.TangentMode = TangentConstant
	}

	c.keys = append(c.keys, key)
	c.sort()

	i := c.indexOfTime(at)
	c.refreshAround(i)
	return i
}

// RemoveKeyframe removes keys in the frame interval of at and returns how
// many were removed.
func (c *Curve) RemoveKeyframe(at timeline.Time) int {
	return c.removeWhere(func(k Keyframe) bool {
		return at.ContainsTime(k.Time)
	})
}

// RemoveKeysAtRange removes keys after the frame of start up to and including
// the frame of end.
func (c *Curve) RemoveKeysAtRange(start, end timeline.Time) int {
	return c.removeWhere(func(k Keyframe) bool {
		return k.Time >= start.FrameCeiling() && k.Time < end.FrameCeiling()
	})
}

// HasKeyframe reports whether a key lives in the frame interval of at.
func (c *Curve) HasKeyframe(at timeline.Time) bool {
	return c.GetKeyframeIndex(at) != -1
}

// GetKeyframeIndex returns the index of the key in the frame of at, or -1.
func (c *Curve) GetKeyframeIndex(at timeline.Time) int {
	return c.indexOfTime(at)
}

func (c *Curve) indexOfTime(at timeline.Time) int {
	i := sort.Search(len(c.keys), func(i int) bool {
		return c.keys[i].Time >= at.FrameFloor()
	})
	if i < len(c.keys) && at.ContainsTime(c.keys[i].Time) {
		return i
	}
	return -1
}

func (c *Curve) removeWhere(match func(Keyframe) bool) int {
	kept := c.keys[:0]
	removed := 0
	for _, k := range c.keys {
		if match(k) {
			removed++
			continue
		}
		kept = append(kept, k)
	}
	c.keys = kept
	return removed
}

func (c *Curve) sort() {
	sort.SliceStable(c.keys, func(i, j int) bool {
		return c.keys[i].Time < c.keys[j].Time
	})
}
