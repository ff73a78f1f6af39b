package source

import (
	"fmt"
	"os"

	"github.com/ivlev/dopesheet/internal/clip"
	"github.com/ivlev/dopesheet/internal/curve"
)

// Source is the persisted animation a session edits
type Source interface {
	Name() string
	FrameRate() float64
	Legacy() bool
	Bindings() []curve.Binding
	Keyframes(b curve.Binding) ([]curve.Keyframe, bool)
	// ReplaceKeyframes swaps the whole key list of one binding. An empty
	// list removes the binding.
	ReplaceKeyframes(b curve.Binding, keys []curve.Keyframe) error
	Close() error
}

// Open resolves path to a clip source. A directory opens its most recently
// modified clip.
func Open(path string) (*ClipSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		latest, err := clip.FindLatestClip(path)
		if err != nil {
			return nil, err
		}
		path = latest
	} else if !clip.IsClipFile(path) {
		return nil, fmt.Errorf("unsupported clip file: %s", path)
	}

	c, err := clip.ReadClip(path)
	if err != nil {
		return nil, err
	}
	return NewClipSource(c, path), nil
}
