package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/dopesheet/internal/clip"
	"github.com/ivlev/dopesheet/internal/curve"
	"github.com/ivlev/dopesheet/internal/rotation"
)

var posX = curve.Binding{Path: "Root", Type: curve.TransformType, PropertyName: "m_LocalPosition.x"}

func writeSample(t *testing.T, path string) {
	t.Helper()
	c := clip.New("sample", 30)
	c.SetKeyframes(posX, []curve.Keyframe{curve.NewKeyframe(0, 0), curve.NewKeyframe(1, 10)})
	require.NoError(t, clip.WriteClip(c, path))
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	writeSample(t, path)

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, "sample", src.Name())
	assert.Equal(t, 30.0, src.FrameRate())
	assert.Equal(t, []curve.Binding{posX}, src.Bindings())
}

func TestOpenDirectoryPicksLatest(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.yaml")
	latest := filepath.Join(dir, "new.yaml")
	writeSample(t, old)
	writeSample(t, latest)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	src, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, latest, src.Path())
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.anim")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestReplaceKeyframesAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	writeSample(t, path)
	src, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, src.ReplaceKeyframes(posX, []curve.Keyframe{curve.NewKeyframe(0.5, 3)}))
	assert.True(t, src.Dirty())
	require.NoError(t, src.Save())
	assert.False(t, src.Dirty())

	reopened, err := Open(path)
	require.NoError(t, err)
	keys, ok := reopened.Keyframes(posX)
	require.True(t, ok)
	require.Len(t, keys, 1)
	assert.Equal(t, 3.0, keys[0].Value)
}

func TestReplaceKeyframesSkipsEmptyPhantom(t *testing.T) {
	src := NewClipSource(clip.New("s", 30), "")
	phantom := curve.Binding{Path: "Root", Type: curve.TransformType, PropertyName: "localEulerAngles.z", IsPhantom: true}

	require.NoError(t, src.ReplaceKeyframes(phantom, nil))
	assert.False(t, src.HasCurve(phantom))
	assert.False(t, src.Dirty())
	assert.Error(t, src.Save())
}

func TestClipSourceServesRotationConverter(t *testing.T) {
	src := NewClipSource(clip.New("s", 30), "")
	euler := curve.Binding{Path: "Root", Type: curve.TransformType, PropertyName: "localEulerAnglesBaked.x"}
	src.SetKeyframes(euler, []curve.Keyframe{curve.NewKeyframe(0, 45)})

	var _ rotation.Clip = src
	res, err := rotation.ConvertInterpolation(src, []curve.Binding{euler}, rotation.NonBaked)
	require.NoError(t, err)
	assert.Len(t, res.Converted, 1)
	assert.True(t, src.HasCurve(rotation.WithMode(euler, rotation.NonBaked)))
}

func TestReplaceWithNoKeysRemovesCurve(t *testing.T) {
	src := NewClipSource(clip.New("s", 30), "")
	require.NoError(t, src.ReplaceKeyframes(posX, []curve.Keyframe{curve.NewKeyframe(0, 1)}))
	require.NoError(t, src.ReplaceKeyframes(posX, nil))
	assert.Empty(t, src.Bindings())
}
