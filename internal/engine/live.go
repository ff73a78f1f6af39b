package engine

import (
	"math"
	"slices"

	"golang.org/x/image/math/f64"

	"github.com/ivlev/dopesheet/internal/curve"
	"github.com/ivlev/dopesheet/internal/timeline"
	"github.com/ivlev/dopesheet/internal/transform"
)

// liveEdit is the state captured when a gesture starts. Every update is
// computed from it, so drag updates never accumulate.
type liveEdit struct {
	label       string
	before      Snapshot
	bindings    []curve.Binding
	refs        []KeyRef
	selected    map[KeyRef]bool
	rippleStart float64
	rippleEnd   float64
	hasBounds   bool
}

// StartLiveEdit opens a gesture over the current selection.
func (s *Session) StartLiveEdit() error {
	return s.startLiveEdit("transform keys")
}

func (s *Session) startLiveEdit(label string) error {
	if s.live != nil {
		return ErrLiveEditInProgress
	}

	bindings := s.store.Bindings()
	le := &liveEdit{
		label:    label,
		before:   s.capture(bindings),
		bindings: bindings,
		refs:     s.selection.Refs(),
		selected: make(map[KeyRef]bool, s.selection.Len()),
	}
	for _, ref := range le.refs {
		le.selected[ref] = true
	}
	if b := s.SelectionBounds(); !b.Empty() {
		le.rippleStart, le.rippleEnd, le.hasBounds = b.Min.X, b.Max.X, true
	}

	s.live = le
	return nil
}

// ApplyTransform maps the selected keys, as they were at StartLiveEdit,
// through m. flipX and flipY mark a mirrored axis so tangents follow.
//
// With ripple set, unselected keys from the selection start onwards move
// too: keys inside the selection span are mapped like the selection, later
// keys shift by the distance the span end moved. Ripple is ignored when
// the time axis flips.
//
// Keys landing in a frame that already holds an unmoved key replace it.
func (s *Session) ApplyTransform(m f64.Aff3, flipX, flipY, ripple bool) error {
	le := s.live
	if le == nil {
		return ErrNoLiveEdit
	}

	var refs []KeyRef
	var changed []curve.Binding
	for _, b := range le.bindings {
		c, ok := s.store.Curve(b)
		if !ok {
			continue
		}
		keys, moved, selected := s.transformKeys(b, le.before[b], m, flipX, flipY, ripple)
		refs = append(refs, selected...)
		if !moved {
			c.SetKeys(le.before[b])
			continue
		}
		c.SetKeys(keys)
		for i := 0; i < c.Len(); i++ {
			c.UpdateTangents(i)
		}
		changed = append(changed, b)
	}

	s.selection.replace(refs)
	s.Invalidate()
	s.notify(changed)
	return nil
}

func (s *Session) transformKeys(b curve.Binding, keys []curve.Keyframe, m f64.Aff3, flipX, flipY, ripple bool) ([]curve.Keyframe, bool, []KeyRef) {
	le := s.live
	ripple = ripple && !flipX && le.hasBounds
	shift := transform.ApplyTime(m, le.rippleEnd) - le.rippleEnd

	var unmoved, shifted, moved []curve.Keyframe
	for _, k := range keys {
		switch {
		case le.selected[KeyRef{Binding: b, Frame: s.At(k.Time).Frame()}]:
			moved = append(moved, s.transformKey(b, k, m, flipX, flipY))
		case ripple && k.Time >= le.rippleStart-curve.TimeEpsilon:
			nk := k
			if k.Time > le.rippleEnd+curve.TimeEpsilon {
				nk.Time = s.place(k.Time + shift)
			} else {
				nk.Time = s.place(transform.ApplyTime(m, k.Time))
			}
			shifted = append(shifted, nk)
		default:
			unmoved = append(unmoved, k)
		}
	}
	if len(moved) == 0 && len(shifted) == 0 {
		return keys, false, nil
	}

	// One key per frame; later writes win, selected keys last.
	out := make([]curve.Keyframe, 0, len(keys))
	slot := make(map[int]int, len(keys))
	put := func(k curve.Keyframe) {
		f := s.At(k.Time).Frame()
		if i, ok := slot[f]; ok {
			out[i] = k
			return
		}
		slot[f] = len(out)
		out = append(out, k)
	}
	for _, group := range [][]curve.Keyframe{unmoved, shifted, moved} {
		for _, k := range group {
			put(k)
		}
	}

	refs := make([]KeyRef, 0, len(moved))
	for _, k := range moved {
		refs = append(refs, KeyRef{Binding: b, Frame: s.At(k.Time).Frame()})
	}
	return out, true, refs
}

func (s *Session) transformKey(b curve.Binding, k curve.Keyframe, m f64.Aff3, flipX, flipY bool) curve.Keyframe {
	k.Time = s.place(transform.ApplyTime(m, k.Time))
	if b.IsPPtrCurve {
		return k
	}

	k.Value = transform.ApplyValue(m, k.Value)
	ratio := math.Abs(m[4] / m[0])
	k.InTangent = scaleFinite(k.InTangent, ratio)
	k.OutTangent = scaleFinite(k.OutTangent, ratio)
	if flipX {
		k = k.FlipTime()
	}
	if flipY {
		k = k.FlipValue()
	}
	return k
}

// place clamps a transformed time to the timeline and optionally snaps it.
func (s *Session) place(t float64) float64 {
	if s.Config.SnapToFrame {
		t = timeline.SnapToFrame(t, s.rate)
	}
	return math.Max(t, 0)
}

func scaleFinite(v, f float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return v * f
}

// EndLiveEdit commits the gesture: changed curves are written back to the
// source and recorded as one checkpoint. The checkpoint is recorded even
// when the source rejects some bindings, so the edit stays undoable.
func (s *Session) EndLiveEdit() error {
	le := s.live
	if le == nil {
		return ErrNoLiveEdit
	}
	s.live = nil

	before, after := diffSnapshots(le.before, s.capture(le.bindings))
	if len(after) == 0 {
		return nil
	}
	err := s.writeBack(before, after)
	s.commit(le.label, before, after)
	return err
}

// CancelLiveEdit restores every curve and the selection to their state at
// StartLiveEdit. Nothing is written back or recorded.
func (s *Session) CancelLiveEdit() error {
	le := s.live
	if le == nil {
		return ErrNoLiveEdit
	}
	s.live = nil

	var changed []curve.Binding
	for _, b := range le.bindings {
		c, ok := s.store.Curve(b)
		if !ok {
			continue
		}
		if !slices.Equal(c.Keys(), le.before[b]) {
			changed = append(changed, b)
		}
		c.SetKeys(le.before[b])
	}
	s.selection.replace(le.refs)
	s.Invalidate()
	s.notify(changed)
	return nil
}

// Transform applies m to the selection as one complete edit.
func (s *Session) Transform(m f64.Aff3, flipX, flipY, ripple bool) error {
	if s.selection.Len() == 0 {
		return transform.ErrEmptySelection
	}
	if err := s.startLiveEdit("transform keys"); err != nil {
		return err
	}
	if err := s.ApplyTransform(m, flipX, flipY, ripple); err != nil {
		_ = s.CancelLiveEdit()
		return err
	}
	return s.EndLiveEdit()
}

// Move shifts the selection by dt seconds and dv value units.
func (s *Session) Move(dt, dv float64, ripple bool) error {
	return s.Transform(transform.Translate(dt, dv), false, false, ripple)
}

// diffSnapshots keeps only the bindings whose keys differ.
func diffSnapshots(before, after Snapshot) (Snapshot, Snapshot) {
	b, a := make(Snapshot), make(Snapshot)
	for binding, keys := range after {
		if slices.Equal(before[binding], keys) {
			continue
		}
		b[binding] = before[binding]
		a[binding] = keys
	}
	return b, a
}
