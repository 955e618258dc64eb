package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dive_trails/internal/geometry"
)

func pointSegment(store *Store) *Segment {
	return store.Add(&Segment{
		Kind:         geometry.KindPoint,
		ActivityType: ActivityScuba,
		Vertices:     []geometry.Coordinate{{Lat: 1, Lng: 2}},
		Properties:   Properties{Name: "Scuba Segment", Color: colorScuba, MarkerType: DefaultMarkerType},
	})
}

func TestMarkerEditorCommit(t *testing.T) {
	store := NewStore()
	seg := pointSegment(store)
	m := NewMarkerEditor(store)

	require.NoError(t, m.Open(seg.ID))
	mt, comment := m.Working()
	assert.Equal(t, DefaultMarkerType, mt)
	assert.Empty(t, comment)

	require.NoError(t, m.Commit("wreck", "anchor chain at 18m"))
	assert.False(t, m.IsOpen())

	got := store.Get(seg.ID)
	assert.Equal(t, "wreck", got.Properties.MarkerType)
	assert.Equal(t, "anchor chain at 18m", got.Properties.Comment)
	// Name and color survive the annotation
	assert.Equal(t, "Scuba Segment", got.Properties.Name)
	assert.Equal(t, colorScuba, got.Properties.Color)
}

func TestMarkerEditorCancel(t *testing.T) {
	store := NewStore()
	seg := pointSegment(store)
	m := NewMarkerEditor(store)

	require.NoError(t, m.Open(seg.ID))
	m.Cancel()

	assert.False(t, m.IsOpen())
	got := store.Get(seg.ID)
	assert.Equal(t, DefaultMarkerType, got.Properties.MarkerType)
	assert.Empty(t, got.Properties.Comment)

	require.Error(t, m.Commit("wreck", "nope"))
}

func TestMarkerEditorRejectsNonPoints(t *testing.T) {
	store := NewStore()
	seg := store.Add(lineSegment(geometry.Coordinate{Lat: 1}, geometry.Coordinate{Lat: 2}))
	m := NewMarkerEditor(store)

	require.Error(t, m.Open(seg.ID))
	require.Error(t, m.Open(999))
}

func TestMarkerEditorOpenReplacesSession(t *testing.T) {
	store := NewStore()
	first := pointSegment(store)
	second := pointSegment(store)
	m := NewMarkerEditor(store)

	require.NoError(t, m.Open(first.ID))
	require.NoError(t, m.Open(second.ID))
	assert.Equal(t, second.ID, m.SegmentID())

	require.NoError(t, m.Commit("buoy", ""))
	assert.Equal(t, "buoy", store.Get(second.ID).Properties.MarkerType)
	assert.Equal(t, DefaultMarkerType, store.Get(first.ID).Properties.MarkerType)
}

func TestMarkerEditorEmptyTypeDefaultsToGeneric(t *testing.T) {
	store := NewStore()
	seg := pointSegment(store)
	m := NewMarkerEditor(store)

	require.NoError(t, m.Open(seg.ID))
	require.NoError(t, m.Commit("", "free text only"))
	assert.Equal(t, DefaultMarkerType, store.Get(seg.ID).Properties.MarkerType)
}
