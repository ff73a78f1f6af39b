package engine

import (
	"sort"

	"github.com/ivlev/dopesheet/internal/curve"
)

// KeyRef identifies a key by its curve and frame.
type KeyRef struct {
	Binding curve.Binding
	Frame   int
}

// Selection is a set of keys kept in time-ascending order.
type Selection struct {
	set   map[KeyRef]struct{}
	order []KeyRef
}

func NewSelection() *Selection {
	return &Selection{set: make(map[KeyRef]struct{})}
}

// Select adds ref and reports whether it was new.
func (s *Selection) Select(ref KeyRef) bool {
	if _, ok := s.set[ref]; ok {
		return false
	}
	s.set[ref] = struct{}{}
	i := sort.Search(len(s.order), func(i int) bool {
		return !lessRef(s.order[i], ref)
	})
	s.order = append(s.order, KeyRef{})
	copy(s.order[i+1:], s.order[i:])
	s.order[i] = ref
	return true
}

// Deselect removes ref and reports whether it was present.
func (s *Selection) Deselect(ref KeyRef) bool {
	if _, ok := s.set[ref]; !ok {
		return false
	}
	delete(s.set, ref)
	for i, r := range s.order {
		if r == ref {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Toggle flips membership of ref and returns the new state.
func (s *Selection) Toggle(ref KeyRef) bool {
	if s.Deselect(ref) {
		return false
	}
	s.Select(ref)
	return true
}

func (s *Selection) Contains(ref KeyRef) bool {
	_, ok := s.set[ref]
	return ok
}

func (s *Selection) Len() int { return len(s.order) }

func (s *Selection) Clear() {
	s.set = make(map[KeyRef]struct{})
	s.order = s.order[:0]
}

// Refs returns the selected keys, earliest frame first.
func (s *Selection) Refs() []KeyRef {
	out := make([]KeyRef, len(s.order))
	copy(out, s.order)
	return out
}

// replace swaps the whole selection, restoring time order.
func (s *Selection) replace(refs []KeyRef) {
	s.Clear()
	for _, r := range refs {
		if _, ok := s.set[r]; ok {
			continue
		}
		s.set[r] = struct{}{}
		s.order = append(s.order, r)
	}
	sort.SliceStable(s.order, func(i, j int) bool {
		return lessRef(s.order[i], s.order[j])
	})
}

func lessRef(a, b KeyRef) bool {
	if a.Frame != b.Frame {
		return a.Frame < b.Frame
	}
	return curve.Compare(a.Binding, b.Binding) < 0
}
