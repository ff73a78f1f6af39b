package engine

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ivlev/dopesheet/internal/config"
	"github.com/ivlev/dopesheet/internal/curve"
	"github.com/ivlev/dopesheet/internal/hierarchy"
	"github.com/ivlev/dopesheet/internal/rotation"
	"github.com/ivlev/dopesheet/internal/source"
	"github.com/ivlev/dopesheet/internal/timeline"
	"github.com/ivlev/dopesheet/internal/transform"
)

var (
	ErrLiveEditInProgress = errors.New("live edit already in progress")
	ErrNoLiveEdit         = errors.New("no live edit in progress")
)

// Notifier is told which bindings changed so views can redraw.
type Notifier interface {
	Changed(bindings []curve.Binding)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(bindings []curve.Binding)

func (f NotifierFunc) Changed(bindings []curve.Binding) { f(bindings) }

// Session is one editing session over a source. It is not safe for
// concurrent use; all calls are expected from a single event loop.
type Session struct {
	Config *config.Config
	Source source.Source

	store     *curve.Store
	tree      *hierarchy.Cache
	selection *Selection
	live      *liveEdit
	recorder  Recorder
	notifier  Notifier
	rate      float64
}

// NewSession loads every curve of src.
func NewSession(cfg *config.Config, src source.Source) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Session{
		Config:    cfg,
		Source:    src,
		selection: NewSelection(),
		rate:      src.FrameRate(),
	}
	if s.rate <= 0 {
		s.rate = cfg.FrameRate
	}
	if !(s.rate > 0) || math.IsInf(s.rate, 0) {
		return nil, fmt.Errorf("open %s: invalid frame rate %g", src.Name(), s.rate)
	}
	s.Reload()
	return s, nil
}

// Reload replaces the store contents with the source's curves and drops
// the selection.
func (s *Session) Reload() {
	s.store = curve.NewStore(s.Config.TangentMode())
	for _, b := range s.Source.Bindings() {
		keys, ok := s.Source.Keyframes(b)
		if !ok {
			continue
		}
		s.store.Load(b, keys)
	}
	s.tree = hierarchy.NewCache(s.store)
	s.selection.Clear()
}

func (s *Session) SetRecorder(r Recorder) { s.recorder = r }
func (s *Session) SetNotifier(n Notifier) { s.notifier = n }

func (s *Session) FrameRate() float64    { return s.rate }
func (s *Session) Store() *curve.Store   { return s.store }
func (s *Session) Selection() *Selection { return s.selection }
func (s *Session) Tree() *hierarchy.Node { return s.tree.Tree() }
func (s *Session) LiveEditing() bool     { return s.live != nil }

// At converts seconds to a time on the session's frame grid.
func (s *Session) At(t float64) timeline.Time {
	return timeline.FromTime(t, s.rate)
}

// Invalidate marks cached views stale after edits made directly on curves.
func (s *Session) Invalidate() {
	s.store.Invalidate()
	s.tree.Invalidate()
}

// Curve returns the curve stored for b.
func (s *Session) Curve(b curve.Binding) (*curve.Curve, error) {
	c, err := s.store.MustCurve(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b, err)
	}
	return c, nil
}

// DisplayBinding maps a rotation binding to the representation the source
// actually stores.
func (s *Session) DisplayBinding(b curve.Binding) curve.Binding {
	if clip, ok := s.Source.(rotation.Clip); ok {
		return rotation.RemapForDisplay(b, clip)
	}
	return b
}

// Sample evaluates b at t seconds.
func (s *Session) Sample(b curve.Binding, t float64) (curve.Value, error) {
	c, err := s.Curve(b)
	if err != nil {
		return curve.Value{}, err
	}
	return c.Evaluate(t), nil
}

// AddKey inserts key on b at time t, creating the curve if needed.
func (s *Session) AddKey(b curve.Binding, t float64, key curve.Keyframe) (int, error) {
	if s.live != nil {
		return -1, ErrLiveEditInProgress
	}
	b.IsPhantom = false

	var index int
	err := s.edit("add key", []curve.Binding{b}, func() error {
		c, ok := s.store.Curve(b)
		if !ok {
			c = curve.New(b)
			s.store.AddCurve(c)
		}
		index = c.AddKeyframe(key, s.At(t))
		return nil
	})
	return index, err
}

// RemoveKey removes the key of b in the frame of t.
func (s *Session) RemoveKey(b curve.Binding, t float64) (int, error) {
	if s.live != nil {
		return 0, ErrLiveEditInProgress
	}

	var removed int
	err := s.edit("remove key", []curve.Binding{b}, func() error {
		c, err := s.Curve(b)
		if err != nil {
			return err
		}
		s.selection.Deselect(KeyRef{Binding: b, Frame: s.At(t).Frame()})
		removed = c.RemoveKeyframe(s.At(t))
		return nil
	})
	return removed, err
}

// RemoveKeysAtRange removes the keys after the frame of start up to the
// frame of end on every curve.
func (s *Session) RemoveKeysAtRange(start, end float64) (int, error) {
	if s.live != nil {
		return 0, ErrLiveEditInProgress
	}

	var removed int
	err := s.edit("remove range", s.store.Bindings(), func() error {
		for _, c := range s.store.Sorted() {
			removed += c.RemoveKeysAtRange(s.At(start), s.At(end))
		}
		s.pruneSelection()
		return nil
	})
	return removed, err
}

// SelectKey selects the key of b in the frame of t.
func (s *Session) SelectKey(b curve.Binding, t float64) bool {
	c, ok := s.store.Curve(b)
	if !ok || !c.HasKeyframe(s.At(t)) {
		return false
	}
	s.selection.Select(KeyRef{Binding: b, Frame: s.At(t).Frame()})
	return true
}

// SelectRange selects every key with start <= time <= end across all curves
// and returns how many were added.
func (s *Session) SelectRange(start, end float64) int {
	if end < start {
		start, end = end, start
	}
	added := 0
	for _, c := range s.store.Sorted() {
		for i := 0; i < c.Len(); i++ {
			k := c.Key(i)
			if k.Time < start-curve.TimeEpsilon || k.Time > end+curve.TimeEpsilon {
				continue
			}
			if s.selection.Select(KeyRef{Binding: c.Binding, Frame: s.At(k.Time).Frame()}) {
				added++
			}
		}
	}
	return added
}

// SelectAll selects every key.
func (s *Session) SelectAll() int {
	return s.SelectRange(0, math.Inf(1))
}

// SelectionBounds boxes the selected keys. Reference keys contribute only
// their time.
func (s *Session) SelectionBounds() transform.Bounds {
	var b transform.Bounds
	for _, ref := range s.selection.Refs() {
		k, ok := s.lookup(ref)
		if !ok {
			continue
		}
		if ref.Binding.IsPPtrCurve {
			b.AddTime(k.Time)
			continue
		}
		b.Add(transform.Point{X: k.Time, Y: k.Value})
	}
	return b
}

// Manipulator returns a manipulator driving this session, sized to the
// current selection.
func (s *Session) Manipulator() *transform.Manipulator {
	m := transform.NewManipulator(s, s.rate, s.Config.TimeScaleFallbackThreshold, s.Config.ValueScaleThreshold)
	m.SetBounds(s.SelectionBounds())
	return m
}

// ConvertRotation converts rotation curves in the source and reloads.
func (s *Session) ConvertRotation(bindings []curve.Binding, target rotation.Mode) (*rotation.Conversion, error) {
	if s.live != nil {
		return nil, ErrLiveEditInProgress
	}
	clip, ok := s.Source.(rotation.Clip)
	if !ok {
		return nil, fmt.Errorf("convert rotation: source %s cannot rewrite bindings", s.Source.Name())
	}

	full := s.capture(s.store.Bindings())
	res, err := rotation.ConvertInterpolation(clip, bindings, target)
	if err != nil {
		return nil, err
	}
	if len(res.Converted) == 0 {
		return res, nil
	}

	s.Reload()
	before := make(Snapshot, 2*len(res.Converted))
	touched := make([]curve.Binding, 0, 2*len(res.Converted))
	for from, to := range res.Converted {
		touched = append(touched, from, to)
		before[from], before[to] = full[from], full[to]
	}
	s.commit("convert rotation", before, s.capture(touched))
	s.notify(touched)
	return res, nil
}

func (s *Session) lookup(ref KeyRef) (curve.Keyframe, bool) {
	c, ok := s.store.Curve(ref.Binding)
	if !ok {
		return curve.Keyframe{}, false
	}
	i := c.GetKeyframeIndex(timeline.FromFrame(ref.Frame, s.rate))
	if i == -1 {
		return curve.Keyframe{}, false
	}
	return c.Key(i), true
}

func (s *Session) pruneSelection() {
	kept := s.selection.Refs()[:0]
	for _, ref := range s.selection.Refs() {
		if _, ok := s.lookup(ref); ok {
			kept = append(kept, ref)
		}
	}
	s.selection.replace(kept)
}

// capture copies the keys of bindings. Missing curves map to nil.
func (s *Session) capture(bindings []curve.Binding) Snapshot {
	snap := make(Snapshot, len(bindings))
	for _, b := range bindings {
		if c, ok := s.store.Curve(b); ok {
			snap[b] = c.Keys()
		} else {
			snap[b] = nil
		}
	}
	return snap
}

// edit runs fn as one undoable change of bindings.
func (s *Session) edit(label string, bindings []curve.Binding, fn func() error) error {
	before := s.capture(bindings)
	if err := fn(); err != nil {
		return err
	}
	s.Invalidate()
	after := s.capture(bindings)
	err := s.writeBack(before, after)
	s.commit(label, before, after)
	return err
}

// writeBack hands every changed binding to the source.
func (s *Session) writeBack(before, after Snapshot) error {
	var errs []error
	var changed []curve.Binding
	for b, keys := range after {
		if slices.Equal(before[b], keys) && (before[b] == nil) == (keys == nil) {
			continue
		}
		changed = append(changed, b)
		if err := s.Source.ReplaceKeyframes(b, keys); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", b, err))
		}
	}
	s.notify(changed)
	return errors.Join(errs...)
}

func (s *Session) commit(label string, before, after Snapshot) {
	if s.recorder == nil || snapshotsEqual(before, after) {
		return
	}
	s.recorder.Record(Checkpoint{Label: label, Before: before, After: after})
}

// restore loads a snapshot into the store and the source.
func (s *Session) restore(snap Snapshot) error {
	if s.live != nil {
		return ErrLiveEditInProgress
	}
	bindings := make([]curve.Binding, 0, len(snap))
	for b := range snap {
		bindings = append(bindings, b)
	}
	before := s.capture(bindings)

	for b, keys := range snap {
		if keys == nil {
			s.store.RemoveCurve(b)
			continue
		}
		if c, ok := s.store.Curve(b); ok {
			c.SetKeys(keys)
		} else {
			s.store.Load(b, keys)
		}
	}
	s.Invalidate()
	s.pruneSelection()
	return s.writeBack(before, s.capture(bindings))
}

func (s *Session) notify(bindings []curve.Binding) {
	if s.notifier == nil || len(bindings) == 0 {
		return
	}
	slices.SortFunc(bindings, curve.Compare)
	s.notifier.Changed(bindings)
}

func snapshotsEqual(a, b Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !slices.Equal(v, w) || (v == nil) != (w == nil) {
			return false
		}
	}
	return true
}
