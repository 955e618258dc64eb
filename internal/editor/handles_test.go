package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTableBinding(t *testing.T) {
	tab := NewHandleTable()
	tab.Bind("layer-1", 10)

	id, ok := tab.SegmentID("layer-1")
	require.True(t, ok)
	assert.Equal(t, int64(10), id)

	h, ok := tab.HandleFor(10)
	require.True(t, ok)
	assert.Equal(t, Handle("layer-1"), h)
}

func TestHandleTableRebindDisplacesOldHandle(t *testing.T) {
	tab := NewHandleTable()
	tab.Bind("layer-1", 10)
	tab.Bind("layer-2", 10)

	// At most one handle per segment
	_, ok := tab.SegmentID("layer-1")
	assert.False(t, ok)
	h, ok := tab.HandleFor(10)
	require.True(t, ok)
	assert.Equal(t, Handle("layer-2"), h)
	assert.Equal(t, 1, tab.Len())
}

func TestHandleTableDrops(t *testing.T) {
	tab := NewHandleTable()
	tab.Bind("a", 1)
	tab.Bind("b", 2)

	tab.DropHandle("a")
	_, ok := tab.SegmentID("a")
	assert.False(t, ok)
	_, ok = tab.HandleFor(1)
	assert.False(t, ok)

	tab.DropSegment(2)
	assert.Equal(t, 0, tab.Len())

	tab.Bind("c", 3)
	tab.Reset()
	assert.Equal(t, 0, tab.Len())
}
