package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/dopesheet/internal/clip"
	"github.com/ivlev/dopesheet/internal/curve"
	"github.com/ivlev/dopesheet/internal/transform"
)

var (
	posX = curve.Binding{Path: "Hips", Type: curve.TransformType, PropertyName: "m_LocalPosition.x"}
	rotX = curve.Binding{Path: "Hips", Type: curve.TransformType, PropertyName: "localEulerAnglesBaked.x"}
	rotY = rotX.WithProperty("localEulerAnglesBaked.y")
)

// writeClip stores a 30 fps clip with the given curves and returns its path.
func writeClip(t *testing.T, curves map[curve.Binding][]curve.Keyframe) string {
	t.Helper()
	c := clip.New("walk", 30)
	for _, b := range curve.SortBindings(bindingsOf(curves)) {
		c.SetKeyframes(b, curves[b])
	}
	path := filepath.Join(t.TempDir(), "walk.yaml")
	require.NoError(t, clip.WriteClip(c, path))
	return path
}

func bindingsOf(m map[curve.Binding][]curve.Keyframe) []curve.Binding {
	out := make([]curve.Binding, 0, len(m))
	for b := range m {
		out = append(out, b)
	}
	return out
}

func run(t *testing.T, clipPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test", newApp())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	full := append([]string{args[0],
		"--clip", clipPath,
		"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args[1:]...)
	cmd.SetArgs(full)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func storedKeys(t *testing.T, path string, b curve.Binding) []curve.Keyframe {
	t.Helper()
	c, err := clip.ReadClip(path)
	require.NoError(t, err)
	keys, ok := c.Keyframes(b)
	require.True(t, ok, "no curve for %s", b)
	return keys
}

func timesOf(keys []curve.Keyframe) []float64 {
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = k.Time
	}
	return out
}

func line(from, to float64) []curve.Keyframe {
	return []curve.Keyframe{curve.NewKeyframe(0, from), curve.NewKeyframe(1, to)}
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd("1.0.0", newApp())
	assert.Equal(t, "dopesheet", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)

	for _, name := range []string{"config", "clip", "fps", "stats", "dry-run"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	for _, name := range []string{"tree", "eval", "keys", "add-key", "remove-key", "convert", "remap", "move", "scale", "watch", "new", "config"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestTreeCmd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{
		posX: line(0, 1),
		rotX: line(0, 90),
	})

	out, err := run(t, path, "tree")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "walk\n"))
	assert.Contains(t, out, "Summary (2 curves)")
	assert.Contains(t, out, "localEulerAnglesBaked.y (missing)")

	out, err = run(t, path, "tree", "--collapsed")
	require.NoError(t, err)
	assert.NotContains(t, out, "(missing)")
}

func TestEvalAndKeysCmd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{posX: line(2, 4)})

	out, err := run(t, path, "eval", posX.String(), "0")
	require.NoError(t, err)
	assert.Equal(t, "Hips:Transform.m_LocalPosition.x @ 0.00000s (frame 0 @ 30 fps) = 2\n", out)

	out, err = run(t, path, "keys", posX.String())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "FRAME"))
	assert.True(t, strings.HasPrefix(lines[2], "30"))

	_, err = run(t, path, "keys", "Hips:Transform.m_LocalScale.x")
	assert.ErrorIs(t, err, curve.ErrCurveNotFound)
}

func TestAddKeyCmd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{posX: line(0, 1)})

	out, err := run(t, path, "add-key", posX.String(), "0.5", "3", "--tangent", "linear")
	require.NoError(t, err)
	assert.Contains(t, out, "add key")
	assert.Contains(t, out, "[+++] Saved "+path)

	keys := storedKeys(t, path, posX)
	assert.Equal(t, []float64{0, 0.5, 1}, timesOf(keys))
	assert.Equal(t, 3.0, keys[1].Value)
	assert.Equal(t, curve.TangentLinear, keys[1].TangentMode)

	_, err = run(t, path, "add-key", posX.String(), "0.5", "abc")
	assert.Error(t, err)
}

func TestAddKeyDryRun(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{posX: line(0, 1)})

	out, err := run(t, path, "add-key", posX.String(), "0.5", "3", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
	assert.Len(t, storedKeys(t, path, posX), 2)
}

func TestRemoveKeyCmd(t *testing.T) {
	posY := posX.WithProperty("m_LocalPosition.y")
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{
		posX: {curve.NewKeyframe(0, 0), curve.NewKeyframe(0.5, 1), curve.NewKeyframe(1, 2)},
		posY: {curve.NewKeyframe(0, 0), curve.NewKeyframe(0.5, 1), curve.NewKeyframe(1, 2)},
	})

	out, err := run(t, path, "remove-key", posX.String(), "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 keys")
	assert.Equal(t, []float64{0, 1}, timesOf(storedKeys(t, path, posX)))

	out, err = run(t, path, "remove-key", "-", "0", "--until", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 keys")
	assert.Equal(t, []float64{0}, timesOf(storedKeys(t, path, posY)))
}

func TestConvertCmd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{
		rotX: line(0, 90),
		rotY: line(0, 45),
		posX: line(0, 1),
	})

	out, err := run(t, path, "convert", "raw-euler", "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "[*] Hips:Transform.localEulerAnglesBaked.x -> localEulerAnglesRaw.x")
	assert.Contains(t, out, "Converted 2 curves, skipped 0")
	assert.Contains(t, out, "- ")
	assert.Contains(t, out, "+ ")

	c, err := clip.ReadClip(path)
	require.NoError(t, err)
	assert.False(t, c.HasCurve(rotX))
	assert.True(t, c.HasCurve(rotX.WithProperty("localEulerAnglesRaw.x")))
	assert.True(t, c.HasCurve(posX))

	_, err = run(t, path, "convert", "quaternion")
	assert.Error(t, err)
}

func TestRemapCmd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{rotX: line(0, 90)})

	out, err := run(t, path, "remap", "Hips:Transform.m_LocalRotation.x")
	require.NoError(t, err)
	assert.Equal(t, "Hips:Transform.m_LocalRotation.x (raw-quaternion) -> Hips:Transform.localEulerAnglesBaked.x (baked)\n", out)
}

func TestMoveCmd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{posX: line(0, 1)})

	out, err := run(t, path, "move", "--from", "0.9", "--time", "0.5", "--value", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved 1 keys")

	keys := storedKeys(t, path, posX)
	assert.Equal(t, []float64{0, 1.5}, timesOf(keys))
	assert.Equal(t, 3.0, keys[1].Value)
}

func TestMoveCmdEmptySelection(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{posX: line(0, 1)})

	_, err := run(t, path, "move", "--from", "5", "--time", "1")
	assert.ErrorIs(t, err, transform.ErrEmptySelection)
}

func TestScaleCmd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{posX: line(0, 1)})

	_, err := run(t, path, "scale", "2")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, timesOf(storedKeys(t, path, posX)))

	_, err = run(t, path, "scale", "3", "--axis", "value")
	require.NoError(t, err)
	keys := storedKeys(t, path, posX)
	assert.InDelta(t, 0, keys[0].Value, 1e-9)
	assert.InDelta(t, 3, keys[1].Value, 1e-9)

	_, err = run(t, path, "scale", "2", "--axis", "depth")
	assert.Error(t, err)
}

func TestScaleCmdFromEnd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{posX: line(0, 1)})

	_, err := run(t, path, "scale", "0.5", "--pivot", "end")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1}, timesOf(storedKeys(t, path, posX)))
}

func TestScaleGesture(t *testing.T) {
	b := transform.NewBounds(transform.Point{X: 1, Y: 0}, transform.Point{X: 3, Y: 4})

	h, grab, target, err := scaleGesture(b, "time", "start", 2)
	require.NoError(t, err)
	assert.Equal(t, transform.HandleRight, h)
	assert.Equal(t, transform.Point{X: 3, Y: 2}, grab)
	assert.Equal(t, transform.Point{X: 5, Y: 2}, target)

	h, grab, target, err = scaleGesture(b, "value", "end", 0.5)
	require.NoError(t, err)
	assert.Equal(t, transform.HandleBottom, h)
	assert.Equal(t, transform.Point{X: 2, Y: 0}, grab)
	assert.Equal(t, transform.Point{X: 2, Y: 2}, target)
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in      string
		want    curve.Binding
		wantErr bool
	}{
		{in: "Hips:Transform.m_LocalPosition.x", want: posX},
		{in: "<root>:Animator.Speed", want: curve.Binding{Type: "Animator", PropertyName: "Speed"}},
		{in: ":Animator.Speed", want: curve.Binding{Type: "Animator", PropertyName: "Speed"}},
		{in: "Hips.m_LocalPosition.x", wantErr: true},
		{in: "Hips:Transform", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBinding(tt.in, false)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineDiff(t *testing.T) {
	got := lineDiff([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	assert.Equal(t, "- b\n+ x\n", got)
	assert.Empty(t, lineDiff([]byte("same\n"), []byte("same\n")))
}

func TestIsClipEvent(t *testing.T) {
	path := "/clips/walk.yaml"
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/clips/run.yaml", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isClipEvent(tt.event, path))
		})
	}
}

func TestTreeAllCmd(t *testing.T) {
	path := writeClip(t, map[curve.Binding][]curve.Keyframe{posX: line(0, 1)})
	run2 := clip.New("run", 30)
	run2.SetKeyframes(rotX, line(0, 90))
	require.NoError(t, clip.WriteClip(run2, filepath.Join(filepath.Dir(path), "run.yaml")))

	out, err := run(t, filepath.Dir(path), "tree", "--all")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "run\n"))
	assert.Contains(t, out, "\nwalk\n")
	assert.Contains(t, out, "localEulerAnglesBaked.z (missing)")
}

func TestNewCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "clips")

	out, err := run(t, dir, "new", "jump", "--fps", "24", "--legacy")
	require.NoError(t, err)
	assert.Contains(t, out, "[+++] Created ")

	paths, err := clip.ListClips(dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	c, err := clip.ReadClip(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "jump", c.Name)
	assert.Equal(t, 24.0, c.FrameRate)
	assert.True(t, c.Legacy())

	_, err = run(t, paths[0], "new")
	assert.Error(t, err)
}

func TestConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "dopesheet.yaml")

	out, err := run(t, "clips", "config", "--config", path, "--fps", "24", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "frame_rate: 24")
	assert.Contains(t, out, "[+++] Saved "+path)

	_, err = os.Stat(path)
	require.NoError(t, err)

	out, err = run(t, "clips", "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "frame_rate: 24")
}
