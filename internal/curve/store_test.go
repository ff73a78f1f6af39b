package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSortedIsPullInvalidated(t *testing.T) {
	s := NewStore(TangentUnset)
	s.Load(Binding{Path: "B", Type: TransformType, PropertyName: "m_LocalPosition.x"}, nil)
	s.Load(Binding{Path: "A", Type: TransformType, PropertyName: "m_LocalPosition.x"}, nil)

	sorted := s.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "A", sorted[0].Binding.Path)

	// Same slice is served until something invalidates it
	assert.Same(t, sorted[0], s.Sorted()[0])

	s.Load(Binding{Path: "", Type: TransformType, PropertyName: "m_LocalPosition.x"}, nil)
	assert.Equal(t, "", s.Sorted()[0].Binding.Path)
	assert.Equal(t, 3, s.Len())
}

func TestStoreRemoveCurve(t *testing.T) {
	s := NewStore(TangentLinear)
	b := Binding{Path: "A", Type: "Light", PropertyName: "m_Intensity"}
	s.Load(b, []Keyframe{NewKeyframe(0, 1)})

	c, err := s.MustCurve(b)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	assert.True(t, s.RemoveCurve(b))
	assert.False(t, s.RemoveCurve(b))

	_, err = s.MustCurve(b)
	assert.ErrorIs(t, err, ErrCurveNotFound)
	assert.Empty(t, s.Bindings())
}

func TestStoreAppliesDefaultTangentMode(t *testing.T) {
	s := NewStore(TangentLinear)
	c := s.Load(Binding{Path: "A", Type: "Light", PropertyName: "m_Intensity"}, nil)

	c.AddKeyframe(NewKeyframe(0, 0), at(0))
	assert.Equal(t, TangentLinear, c.Key(0).TangentMode)
}
