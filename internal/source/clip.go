package source

import (
	"errors"

	"github.com/ivlev/dopesheet/internal/clip"
	"github.com/ivlev/dopesheet/internal/curve"
)

// ClipSource serves a clip document kept in memory and written back on Save
type ClipSource struct {
	clip  *clip.Clip
	path  string
	dirty bool
}

func NewClipSource(c *clip.Clip, path string) *ClipSource {
	return &ClipSource{clip: c, path: path}
}

func (s *ClipSource) Name() string       { return s.clip.Name }
func (s *ClipSource) FrameRate() float64 { return s.clip.FrameRate }
func (s *ClipSource) Legacy() bool       { return s.clip.Legacy() }
func (s *ClipSource) Path() string       { return s.path }
func (s *ClipSource) Clip() *clip.Clip   { return s.clip }

// Dirty reports whether there are unsaved edits
func (s *ClipSource) Dirty() bool { return s.dirty }

func (s *ClipSource) Bindings() []curve.Binding {
	return s.clip.Bindings()
}

func (s *ClipSource) HasCurve(b curve.Binding) bool {
	return s.clip.HasCurve(b)
}

func (s *ClipSource) Keyframes(b curve.Binding) ([]curve.Keyframe, bool) {
	return s.clip.Keyframes(b)
}

// ReplaceKeyframes stores keys for b; an empty list removes the curve.
func (s *ClipSource) ReplaceKeyframes(b curve.Binding, keys []curve.Keyframe) error {
	if len(keys) == 0 {
		s.RemoveCurve(b)
		return nil
	}
	s.clip.SetKeyframes(b, keys)
	s.dirty = true
	return nil
}

// SetKeyframes and RemoveCurve let the rotation converter work on the source
func (s *ClipSource) SetKeyframes(b curve.Binding, keys []curve.Keyframe) {
	s.clip.SetKeyframes(b, keys)
	s.dirty = true
}

func (s *ClipSource) RemoveCurve(b curve.Binding) {
	if s.clip.HasCurve(b) {
		s.clip.RemoveCurve(b)
		s.dirty = true
	}
}

// Save writes the clip back to its file
func (s *ClipSource) Save() error {
	if s.path == "" {
		return errors.New("clip source has no file path")
	}
	if err := clip.WriteClip(s.clip, s.path); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *ClipSource) Close() error {
	return nil
}
