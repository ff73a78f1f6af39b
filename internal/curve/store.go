package curve

import "errors"

// ErrCurveNotFound is returned when a binding has no curve in the store.
var ErrCurveNotFound = errors.New("curve not found")

// Store owns every curve of an editing session, keyed by binding.
//
// The sorted view is pull-invalidated: AddCurve and RemoveCurve mark it
// stale, anything else that changes ordering must call Invalidate before
// the next Sorted read.
type Store struct {
	curves      map[Binding]*Curve
	sorted      []*Curve
	dirty       bool
	defaultMode TangentMode
}

// NewStore creates an empty store. Keys inserted without a tangent mode get
// defaultMode.
func NewStore(defaultMode TangentMode) *Store {
	if defaultMode == TangentUnset {
		defaultMode = TangentClampedAuto
	}
	return &Store{
		curves:      make(map[Binding]*Curve),
		defaultMode: defaultMode,
	}
}

// Load creates or replaces the curve for b with the given keys.
func (s *Store) Load(b Binding, keys []Keyframe) *Curve {
	c := New(b, keys...)
	s.AddCurve(c)
	return c
}

// AddCurve adds c, replacing any curve with the same binding.
func (s *Store) AddCurve(c *Curve) {
	c.SetDefaultTangentMode(s.defaultMode)
	s.curves[c.Binding] = c
	s.dirty = true
}

// RemoveCurve drops the curve for b and reports whether it existed.
func (s *Store) RemoveCurve(b Binding) bool {
	if _, ok := s.curves[b]; !ok {
		return false
	}
	delete(s.curves, b)
	s.dirty = true
	return true
}

// Curve returns the curve for b.
func (s *Store) Curve(b Binding) (*Curve, bool) {
	c, ok := s.curves[b]
	return c, ok
}

// MustCurve returns the curve for b or ErrCurveNotFound.
func (s *Store) MustCurve(b Binding) (*Curve, error) {
	c, ok := s.curves[b]
	if !ok {
		return nil, ErrCurveNotFound
	}
	return c, nil
}

// Len returns the number of curves.
func (s *Store) Len() int { return len(s.curves) }

// Invalidate marks the sorted view stale.
func (s *Store) Invalidate() { s.dirty = true }

// Sorted returns the curves in canonical order. The slice is shared until
// the next rebuild and must not be modified.
func (s *Store) Sorted() []*Curve {
	if s.dirty || s.sorted == nil {
		s.sorted = make([]*Curve, 0, len(s.curves))
		for _, c := range s.curves {
			s.sorted = append(s.sorted, c)
		}
		Sort(s.sorted)
		s.dirty = false
	}
	return s.sorted
}

// Bindings returns every binding in canonical order.
func (s *Store) Bindings() []Binding {
	sorted := s.Sorted()
	out := make([]Binding, len(sorted))
	for i, c := range sorted {
		out[i] = c.Binding
	}
	return out
}
