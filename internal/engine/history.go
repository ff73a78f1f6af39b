package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ivlev/dopesheet/internal/curve"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Snapshot maps bindings to their key lists. A nil list means the curve did
// not exist.
type Snapshot map[curve.Binding][]curve.Keyframe

// Checkpoint is one undoable edit.
type Checkpoint struct {
	ID     string
	Label  string
	At     time.Time
	Before Snapshot
	After  Snapshot
}

// Recorder registers one checkpoint per finished edit.
type Recorder interface {
	Record(cp Checkpoint)
}

// History is an in-memory undo stack.
type History struct {
	done    []Checkpoint
	undone  []Checkpoint
	limit   int
	entropy io.Reader
}

// NewHistory keeps at most limit checkpoints; zero means unbounded.
func NewHistory(limit int) *History {
	return &History{
		limit:   limit,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Record stores cp and drops the redo branch.
func (h *History) Record(cp Checkpoint) {
	if cp.At.IsZero() {
		cp.At = time.Now()
	}
	if cp.ID == "" {
		cp.ID = ulid.MustNew(ulid.Timestamp(cp.At), h.entropy).String()
	}
	h.done = append(h.done, cp)
	h.undone = nil
	if h.limit > 0 && len(h.done) > h.limit {
		h.done = h.done[len(h.done)-h.limit:]
	}
}

// Checkpoints lists recorded edits, oldest first.
func (h *History) Checkpoints() []Checkpoint {
	out := make([]Checkpoint, len(h.done))
	copy(out, h.done)
	return out
}

func (h *History) CanUndo() bool { return len(h.done) > 0 }
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Undo restores the state before the latest checkpoint into s.
func (h *History) Undo(s *Session) (Checkpoint, error) {
	if len(h.done) == 0 {
		return Checkpoint{}, ErrNothingToUndo
	}
	cp := h.done[len(h.done)-1]
	if err := s.restore(cp.Before); err != nil {
		return cp, fmt.Errorf("undo %s: %w", cp.Label, err)
	}
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, cp)
	return cp, nil
}

// Redo reapplies the latest undone checkpoint.
func (h *History) Redo(s *Session) (Checkpoint, error) {
	if len(h.undone) == 0 {
		return Checkpoint{}, ErrNothingToRedo
	}
	cp := h.undone[len(h.undone)-1]
	if err := s.restore(cp.After); err != nil {
		return cp, fmt.Errorf("redo %s: %w", cp.Label, err)
	}
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, cp)
	return cp, nil
}
