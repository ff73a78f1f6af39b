package hierarchy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/dopesheet/internal/curve"
)

func tc(path, prop string) *curve.Curve {
	return curve.New(curve.Binding{Path: path, Type: curve.TransformType, PropertyName: prop}, curve.NewKeyframe(0, 0))
}

func typed(path, typ, prop string) *curve.Curve {
	return curve.New(curve.Binding{Path: path, Type: typ, PropertyName: prop}, curve.NewKeyframe(0, 0))
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestBuildEmpty(t *testing.T) {
	root := Build(nil)
	assert.Equal(t, Utility, root.Kind)
	assert.Empty(t, root.Children)
	assert.Empty(t, Flatten(root, NewExpansion()))
}

func TestBuildGroupsPosition(t *testing.T) {
	root := Build([]*curve.Curve{
		tc("Leg", "m_LocalPosition.x"),
		tc("Leg", "m_LocalPosition.y"),
		tc("Leg", "m_LocalPosition.z"),
	})

	require.Len(t, root.Children, 2)
	assert.Equal(t, ClipSummary, root.Children[0].Kind)
	assert.Len(t, root.Children[0].Curves, 3)

	group := root.Children[1]
	assert.Equal(t, Group, group.Kind)
	assert.Equal(t, "m_LocalPosition", group.Name)
	require.Len(t, group.Children, 3)
	for _, child := range group.Children {
		assert.Equal(t, Leaf, child.Kind)
		assert.Equal(t, 2, child.Depth)
	}
}

func TestBuildSingleCurveIsLeaf(t *testing.T) {
	root := Build([]*curve.Curve{
		typed("Leg", "Light", "m_Intensity"),
		typed("Leg", "Light", "m_Color.r"),
		typed("Leg", "Light", "m_Color.g"),
	})

	require.Len(t, root.Children, 3)
	assert.Equal(t, Group, root.Children[1].Kind)
	assert.Equal(t, "m_Color", root.Children[1].Name)
	assert.Equal(t, Leaf, root.Children[2].Kind)
	assert.Equal(t, "m_Intensity", root.Children[2].Name)
}

func TestBuildSplitsByPathAndType(t *testing.T) {
	root := Build([]*curve.Curve{
		tc("Arm", "m_LocalPosition.x"),
		tc("Leg", "m_LocalPosition.x"),
		typed("Leg", "Light", "m_LocalPosition.y"),
	})

	// summary + three singletons
	require.Len(t, root.Children, 4)
	for _, n := range root.Children[1:] {
		assert.Equal(t, Leaf, n.Kind)
	}
}

func TestBuildAddsPhantomRotationAxes(t *testing.T) {
	root := Build([]*curve.Curve{
		tc("Leg", "localEulerAnglesRaw.y"),
		tc("Leg", "m_LocalPosition.x"),
	})

	require.Len(t, root.Children, 3)
	rot := root.Children[2]
	assert.Equal(t, Group, rot.Kind)
	assert.Equal(t, "localEulerAnglesRaw", rot.Name)
	require.Len(t, rot.Children, 3)
	assert.Equal(t, []string{"localEulerAnglesRaw.z", "localEulerAnglesRaw.y", "localEulerAnglesRaw.x"}, names(rot.Children))

	var phantom int
	for _, c := range rot.Children {
		if c.IsPhantom() {
			phantom++
		}
	}
	assert.Equal(t, 2, phantom)

	// phantoms never count as persisted curves
	assert.Len(t, root.Children[0].Curves, 2)
}

func TestBuildQuaternionHasNoPhantoms(t *testing.T) {
	root := Build([]*curve.Curve{tc("Leg", "m_LocalRotation.w")})
	require.Len(t, root.Children, 2)
	assert.Equal(t, Leaf, root.Children[1].Kind)
}

func TestFlattenHonorsExpansion(t *testing.T) {
	root := Build([]*curve.Curve{
		tc("Leg", "m_LocalPosition.x"),
		tc("Leg", "m_LocalPosition.y"),
		typed("Leg", "Light", "m_Intensity"),
	})
	exp := NewExpansion()

	rows := Flatten(root, exp)
	require.Len(t, rows, 3)
	assert.False(t, rows[1].Expanded)
	assert.True(t, rows[2].IsLast)

	group := root.Children[1]
	assert.True(t, exp.Toggle(group.Key))
	rows = Flatten(root, exp)
	require.Len(t, rows, 5)
	assert.True(t, rows[1].Expanded)
	assert.Equal(t, 2, rows[2].Depth)
	assert.True(t, rows[3].IsLast)
	assert.False(t, rows[4].Node.Expandable())

	exp.CollapseAll()
	assert.Len(t, Flatten(root, exp), 3)

	exp.ExpandAll(root)
	assert.Len(t, Flatten(root, exp), 5)
}

func TestFind(t *testing.T) {
	root := Build([]*curve.Curve{tc("Leg", "m_LocalPosition.x"), tc("Leg", "m_LocalPosition.y")})
	group := root.Children[1]

	assert.Same(t, group, root.Find(group.Key))
	assert.Nil(t, root.Find("nope"))
	assert.Len(t, root.Leaves(), 2)
}

func TestCache(t *testing.T) {
	store := curve.NewStore(curve.TangentClampedAuto)
	cache := NewCache(store)
	assert.Empty(t, cache.Tree().Children)

	store.AddCurve(tc("Leg", "m_LocalPosition.x"))
	assert.Empty(t, cache.Tree().Children, "stale until invalidated")

	cache.Invalidate()
	assert.Len(t, cache.Tree().Children, 2)
}

func TestRender(t *testing.T) {
	root := Build([]*curve.Curve{
		tc("Leg", "m_LocalPosition.x"),
		tc("Leg", "m_LocalPosition.y"),
		typed("Leg", "Light", "m_Intensity"),
	})
	exp := NewExpansion()
	exp.ExpandAll(root)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Flatten(root, exp)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "├ • Summary (3 curves)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "├ ▼ m_LocalPosition"))
	assert.True(t, strings.HasPrefix(lines[2], "│ ├ • m_LocalPosition.y"))
	assert.True(t, strings.HasPrefix(lines[3], "│ └ • m_LocalPosition.x"))
	assert.True(t, strings.HasPrefix(lines[4], "└ • m_Intensity"))
}
