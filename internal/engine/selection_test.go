package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionOrder(t *testing.T) {
	sel := NewSelection()
	assert.True(t, sel.Select(KeyRef{Binding: posY, Frame: 30}))
	assert.True(t, sel.Select(KeyRef{Binding: posX, Frame: 60}))
	assert.True(t, sel.Select(KeyRef{Binding: posX, Frame: 30}))
	assert.False(t, sel.Select(KeyRef{Binding: posX, Frame: 30}))

	// same frame: canonical curve order puts y before x
	assert.Equal(t, []KeyRef{
		{Binding: posY, Frame: 30},
		{Binding: posX, Frame: 30},
		{Binding: posX, Frame: 60},
	}, sel.Refs())

	assert.False(t, sel.Toggle(KeyRef{Binding: posY, Frame: 30}))
	assert.False(t, sel.Contains(KeyRef{Binding: posY, Frame: 30}))
	assert.True(t, sel.Toggle(KeyRef{Binding: posY, Frame: 30}))
	assert.Equal(t, 3, sel.Len())

	assert.True(t, sel.Deselect(KeyRef{Binding: posX, Frame: 60}))
	assert.False(t, sel.Deselect(KeyRef{Binding: posX, Frame: 60}))

	sel.Clear()
	assert.Zero(t, sel.Len())
}

func TestSelectionReplaceSortsAndDedups(t *testing.T) {
	sel := NewSelection()
	sel.replace([]KeyRef{{Binding: posX, Frame: 90}, {Binding: posX, Frame: 30}, {Binding: posX, Frame: 90}})
	assert.Equal(t, []KeyRef{{Binding: posX, Frame: 30}, {Binding: posX, Frame: 90}}, sel.Refs())
}
