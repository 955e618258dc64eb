package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dive_trails/internal/geometry"
)

// fakeSurface records render/remove/clear calls and hands out its own
// handles, the way a real drawing surface would.
type fakeSurface struct {
	seq      int
	rendered map[Handle]int64
	clears   int
	closed   bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{rendered: make(map[Handle]int64)}
}

func (f *fakeSurface) Render(seg *Segment) (Handle, error) {
	f.seq++
	h := Handle(fmt.Sprintf("fake-%d", f.seq))
	f.rendered[h] = seg.ID
	return h, nil
}

func (f *fakeSurface) Remove(h Handle) error {
	delete(f.rendered, h)
	return nil
}

func (f *fakeSurface) Clear() error {
	f.clears++
	f.rendered = make(map[Handle]int64)
	return nil
}

func (f *fakeSurface) Close() error {
	f.closed = true
	return nil
}

func newTestAdapter(anchor *geometry.Coordinate, snapping bool, activity ActivityType) (*Adapter, *Store, *fakeSurface) {
	store := NewStore()
	surface := newFakeSurface()
	a := NewAdapter(store, surface, Snapper{Anchor: anchor, Enabled: snapping}, activity)
	return a, store, surface
}

func TestShapeCreatedLineWithoutSnapping(t *testing.T) {
	a, store, _ := newTestAdapter(&geometry.Coordinate{Lat: 10, Lng: 10}, false, ActivitySwim)

	verts := []geometry.Coordinate{{Lat: 10.0, Lng: 10.0}, {Lat: 10.001, Lng: 10.001}}
	seg, err := a.ShapeCreated(ShapeEvent{Handle: "layer-7", Kind: geometry.KindLine, Vertices: verts})
	require.NoError(t, err)

	require.Equal(t, 1, store.Len())
	assert.Equal(t, geometry.KindLine, seg.Kind)
	assert.Equal(t, verts, seg.Vertices)
	assert.Equal(t, "Swim Segment", seg.Properties.Name)
	assert.Equal(t, colorSwim, seg.Properties.Color)
	assert.Empty(t, seg.Properties.MarkerType)

	id, ok := a.Handles().SegmentID("layer-7")
	require.True(t, ok)
	assert.Equal(t, seg.ID, id)
}

func TestShapeCreatedPointSnapsToAnchor(t *testing.T) {
	anchor := geometry.Coordinate{Lat: 25.0, Lng: 35.0}
	a, store, _ := newTestAdapter(&anchor, true, ActivityScuba)

	near := offsetNorth(anchor, 30)
	seg, err := a.ShapeCreated(ShapeEvent{Handle: "p1", Kind: geometry.KindPoint, Vertices: []geometry.Coordinate{near}})
	require.NoError(t, err)

	require.Equal(t, 1, store.Len())
	assert.Equal(t, anchor, seg.Vertices[0])
	assert.Equal(t, DefaultMarkerType, seg.Properties.MarkerType)
}

func TestShapeCreatedDegenerateIgnored(t *testing.T) {
	a, store, _ := newTestAdapter(nil, false, ActivityWalk)

	_, err := a.ShapeCreated(ShapeEvent{Handle: "x", Kind: geometry.KindLine, Vertices: []geometry.Coordinate{{Lat: 1, Lng: 1}}})
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, a.Handles().Len())
}

func TestEditKeepsSegmentIdentity(t *testing.T) {
	a, store, _ := newTestAdapter(nil, false, ActivityWalk)

	seg, err := a.ShapeCreated(ShapeEvent{Handle: "h1", Kind: geometry.KindLine, Vertices: []geometry.Coordinate{{Lat: 1}, {Lat: 2}}})
	require.NoError(t, err)

	edited := []geometry.Coordinate{{Lat: 1}, {Lat: 2}, {Lat: 3}}
	a.ShapesEdited([]ShapeEvent{{Handle: "h1", Vertices: edited}})

	require.Equal(t, 1, store.Len())
	got := store.Segments()[0]
	assert.Equal(t, seg.ID, got.ID)
	assert.Equal(t, edited, got.Vertices)
	assert.Equal(t, seg.Properties, got.Properties)
}

func TestEditFallsBackToAttachedSegmentID(t *testing.T) {
	a, store, _ := newTestAdapter(nil, false, ActivityWalk)
	seg, err := a.ShapeCreated(ShapeEvent{Handle: "old", Kind: geometry.KindLine, Vertices: []geometry.Coordinate{{Lat: 1}, {Lat: 2}}})
	require.NoError(t, err)

	// The surface re-rendered and assigned a fresh handle, but it carried
	// our id on the shape.
	a.ShapesEdited([]ShapeEvent{{Handle: "new", SegmentID: seg.ID, Vertices: []geometry.Coordinate{{Lat: 9}, {Lat: 10}}}})

	got := store.Get(seg.ID)
	assert.Equal(t, []geometry.Coordinate{{Lat: 9}, {Lat: 10}}, got.Vertices)

	// The new handle is now bound for subsequent gestures
	id, ok := a.Handles().SegmentID("new")
	require.True(t, ok)
	assert.Equal(t, seg.ID, id)
}

func TestEditFallsBackToHandleAsID(t *testing.T) {
	a, store, _ := newTestAdapter(nil, false, ActivityWalk)
	seg, err := a.ShapeCreated(ShapeEvent{Handle: "h1", Kind: geometry.KindLine, Vertices: []geometry.Coordinate{{Lat: 1}, {Lat: 2}}})
	require.NoError(t, err)

	// Degraded path: no table entry, no attached id, but the handle
	// happens to be the numeric segment id.
	numeric := Handle(fmt.Sprintf("%d", seg.ID))
	a.ShapesEdited([]ShapeEvent{{Handle: numeric, Vertices: []geometry.Coordinate{{Lat: 5}, {Lat: 6}}}})

	assert.Equal(t, []geometry.Coordinate{{Lat: 5}, {Lat: 6}}, store.Get(seg.ID).Vertices)
}

func TestEditUnresolvableIsDropped(t *testing.T) {
	a, store, _ := newTestAdapter(nil, false, ActivityWalk)
	seg, err := a.ShapeCreated(ShapeEvent{Handle: "h1", Kind: geometry.KindLine, Vertices: []geometry.Coordinate{{Lat: 1}, {Lat: 2}}})
	require.NoError(t, err)

	a.ShapesEdited([]ShapeEvent{{Handle: "ghost", Vertices: []geometry.Coordinate{{Lat: 5}, {Lat: 6}}}})

	// Nothing changed, nothing crashed
	assert.Equal(t, []geometry.Coordinate{{Lat: 1}, {Lat: 2}}, store.Get(seg.ID).Vertices)
}

func TestShapesDeleted(t *testing.T) {
	a, store, _ := newTestAdapter(nil, false, ActivityWalk)
	seg, err := a.ShapeCreated(ShapeEvent{Handle: "h1", Kind: geometry.KindLine, Vertices: []geometry.Coordinate{{Lat: 1}, {Lat: 2}}})
	require.NoError(t, err)

	a.ShapesDeleted([]ShapeEvent{{Handle: "h1"}})

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, a.Handles().Len())
	assert.Nil(t, store.Get(seg.ID))
}

func TestResyncRebindsEverySegment(t *testing.T) {
	a, store, surface := newTestAdapter(nil, false, ActivityScuba)
	_, err := a.ShapeCreated(ShapeEvent{Handle: "h1", Kind: geometry.KindLine, Vertices: []geometry.Coordinate{{Lat: 1}, {Lat: 2}}})
	require.NoError(t, err)
	_, err = a.ShapeCreated(ShapeEvent{Handle: "h2", Kind: geometry.KindPoint, Vertices: []geometry.Coordinate{{Lat: 3}}})
	require.NoError(t, err)

	require.NoError(t, a.Resync())

	assert.Equal(t, 1, surface.clears)
	assert.Len(t, surface.rendered, 2)
	assert.Equal(t, 2, a.Handles().Len())

	// Old gesture handles are gone; the fresh surface handles resolve.
	_, ok := a.Handles().SegmentID("h1")
	assert.False(t, ok)
	for h, id := range surface.rendered {
		got, ok := a.Handles().SegmentID(h)
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
	for _, seg := range store.Segments() {
		assert.NotEmpty(t, seg.Properties.Color)
	}
}
