package transform

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

var (
	ErrNotDragging     = errors.New("no gesture in progress")
	ErrAlreadyDragging = errors.New("gesture already in progress")
	ErrEmptySelection  = errors.New("selection is empty")
)

// Handle is the part of the selection box under the pointer.
type Handle int

const (
	HandleNone Handle = iota
	HandleBody
	HandleLeft
	HandleRight
	HandleTop
	HandleBottom
)

func (h Handle) String() string {
	switch h {
	case HandleBody:
		return "body"
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	case HandleTop:
		return "top"
	case HandleBottom:
		return "bottom"
	}
	return "none"
}

// IsTime reports whether the handle scales time.
func (h Handle) IsTime() bool { return h == HandleLeft || h == HandleRight }

// IsValue reports whether the handle scales values.
func (h Handle) IsValue() bool { return h == HandleTop || h == HandleBottom }

// Editor receives the transforms a gesture produces. Every ApplyTransform
// is relative to the state at StartLiveEdit.
type Editor interface {
	StartLiveEdit() error
	ApplyTransform(m f64.Aff3, flipX, flipY, ripple bool) error
	EndLiveEdit() error
	CancelLiveEdit() error
}

// Manipulator turns pointer events on the selection box into transforms.
// It is either idle or dragging one handle.
type Manipulator struct {
	editor         Editor
	bounds         Bounds
	frameRate      float64
	timeFallback   float64
	valueThreshold float64

	// Ripple shifts keys after the selection along with time edits.
	Ripple bool

	handle Handle
	anchor Point
	pivot  float64
	from   float64
	offset float64
}

// NewManipulator creates an idle manipulator driving editor.
func NewManipulator(editor Editor, frameRate, timeFallback, valueThreshold float64) *Manipulator {
	return &Manipulator{
		editor:         editor,
		frameRate:      frameRate,
		timeFallback:   timeFallback,
		valueThreshold: valueThreshold,
	}
}

// SetBounds replaces the selection box. Ignored while dragging.
func (m *Manipulator) SetBounds(b Bounds) {
	if m.Dragging() {
		return
	}
	m.bounds = b
}

func (m *Manipulator) Bounds() Bounds { return m.bounds }

// Dragging reports whether a gesture is open.
func (m *Manipulator) Dragging() bool { return m.handle != HandleNone }

// Handle returns the handle being dragged.
func (m *Manipulator) Handle() Handle { return m.handle }

// HitTest classifies a pointer position. Scale handles of a degenerate axis
// are never reported.
func (m *Manipulator) HitTest(p Point, tol float64) Handle {
	b := m.bounds
	if !b.Contains(p, tol) {
		return HandleNone
	}

	if b.CanScaleTime() {
		switch {
		case math.Abs(p.X-b.Min.X) <= tol:
			return HandleLeft
		case math.Abs(p.X-b.Max.X) <= tol:
			return HandleRight
		}
	}
	if b.CanScaleValue() {
		switch {
		case math.Abs(p.Y-b.Max.Y) <= tol:
			return HandleTop
		case math.Abs(p.Y-b.Min.Y) <= tol:
			return HandleBottom
		}
	}
	return HandleBody
}

// PointerDown hit-tests p and opens the matching gesture. It returns
// HandleNone without error when p misses the selection.
func (m *Manipulator) PointerDown(p Point, tol float64) (Handle, error) {
	h := m.HitTest(p, tol)
	if h == HandleNone {
		return HandleNone, nil
	}
	return h, m.Begin(h, p)
}

// Begin opens a gesture on handle h grabbed at p.
func (m *Manipulator) Begin(h Handle, p Point) error {
	if m.Dragging() {
		return ErrAlreadyDragging
	}
	if m.bounds.Empty() {
		return ErrEmptySelection
	}

	switch {
	case h == HandleBody:
	case h.IsTime():
		if !m.bounds.CanScaleTime() {
			return fmt.Errorf("scale time: %w", ErrAxisDisabled)
		}
		m.from, m.pivot = m.bounds.Max.X, m.bounds.Min.X
		if h == HandleLeft {
			m.from, m.pivot = m.pivot, m.from
		}
		m.offset = grabOffset(p.X, m.from, m.pivot)
	case h.IsValue():
		if !m.bounds.CanScaleValue() {
			return fmt.Errorf("scale value: %w", ErrAxisDisabled)
		}
		m.from, m.pivot = m.bounds.Max.Y, m.bounds.Min.Y
		if h == HandleBottom {
			m.from, m.pivot = m.pivot, m.from
		}
		m.offset = grabOffset(p.Y, m.from, m.pivot)
	default:
		return fmt.Errorf("begin gesture: invalid handle %s", h)
	}

	if err := m.editor.StartLiveEdit(); err != nil {
		return err
	}
	m.handle = h
	m.anchor = p
	return nil
}

// grabOffset is how far inside the handle edge the pointer was grabbed.
func grabOffset(pointer, edge, pivot float64) float64 {
	d := edge - pointer
	if edge < pivot {
		d = -d
	}
	return math.Max(d, 0)
}

// Drag applies the transform for the pointer at p. A rejected scale
// leaves the previous update in place and the gesture open.
func (m *Manipulator) Drag(p Point) error {
	if !m.Dragging() {
		return ErrNotDragging
	}

	var (
		mat          f64.Aff3
		flipX, flipY bool
		ripple       bool
		err          error
	)
	switch {
	case m.handle == HandleBody:
		mat = ComputeMove(m.anchor, p)
		ripple = m.Ripple
	case m.handle.IsTime():
		mat, flipX, err = ComputeScaleTime(m.from, p.X, m.offset, m.pivot, m.frameRate, m.timeFallback)
		ripple = m.Ripple
	default:
		mat, flipY, err = ComputeScaleValue(m.from, p.Y, m.offset, m.pivot, m.valueThreshold)
	}
	if err != nil {
		return err
	}

	return m.editor.ApplyTransform(mat, flipX, flipY, ripple)
}

// End closes the gesture, committing the last update.
func (m *Manipulator) End() error {
	if !m.Dragging() {
		return ErrNotDragging
	}
	m.handle = HandleNone
	return m.editor.EndLiveEdit()
}

// Cancel closes the gesture and restores the keys.
func (m *Manipulator) Cancel() error {
	if !m.Dragging() {
		return ErrNotDragging
	}
	m.handle = HandleNone
	return m.editor.CancelLiveEdit()
}
