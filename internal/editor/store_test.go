package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dive_trails/internal/geometry"
)

func lineSegment(vertices ...geometry.Coordinate) *Segment {
	return &Segment{
		Kind:         geometry.KindLine,
		ActivityType: ActivityScuba,
		Vertices:     vertices,
		Properties:   Properties{Name: "Scuba Segment", Color: colorScuba},
	}
}

func TestStoreIDsStayUnique(t *testing.T) {
	s := NewStore()

	var ids []int64
	for i := 0; i < 5; i++ {
		seg := s.Add(lineSegment(geometry.Coordinate{Lat: float64(i)}, geometry.Coordinate{Lat: float64(i) + 1}))
		ids = append(ids, seg.ID)
	}
	require.True(t, s.Remove(ids[1]))
	require.True(t, s.Remove(ids[3]))
	for i := 0; i < 5; i++ {
		s.Add(lineSegment(geometry.Coordinate{Lng: float64(i)}, geometry.Coordinate{Lng: float64(i) + 1}))
	}

	seen := make(map[int64]bool)
	for _, seg := range s.Segments() {
		assert.False(t, seen[seg.ID], "duplicate id %d", seg.ID)
		seen[seg.ID] = true
	}
	// Removed ids are never reused
	assert.False(t, seen[ids[1]])
	assert.False(t, seen[ids[3]])
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore()
	seg := s.Add(lineSegment(geometry.Coordinate{Lat: 1}, geometry.Coordinate{Lat: 2}))

	t.Run("geometry only", func(t *testing.T) {
		newVerts := []geometry.Coordinate{{Lat: 3}, {Lat: 4}, {Lat: 5}}
		require.True(t, s.Update(seg.ID, newVerts, nil))
		got := s.Get(seg.ID)
		assert.Equal(t, newVerts, got.Vertices)
		assert.Equal(t, "Scuba Segment", got.Properties.Name)
	})

	t.Run("properties only", func(t *testing.T) {
		props := Properties{Name: "Descent line", Color: "#ff0000"}
		require.True(t, s.Update(seg.ID, nil, &props))
		got := s.Get(seg.ID)
		assert.Equal(t, "Descent line", got.Properties.Name)
		assert.Len(t, got.Vertices, 3)
	})

	t.Run("unknown id is a logged no-op", func(t *testing.T) {
		assert.False(t, s.Update(9999, nil, &Properties{Name: "x"}))
		assert.Equal(t, 1, s.Len())
	})
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	seg := s.Add(lineSegment(geometry.Coordinate{Lat: 1}, geometry.Coordinate{Lat: 2}))

	assert.True(t, s.Remove(seg.ID))
	assert.False(t, s.Remove(seg.ID))
	assert.Equal(t, 0, s.Len())
}

func TestStoreReplaceAll(t *testing.T) {
	s := NewStore()
	s.Add(lineSegment(geometry.Coordinate{Lat: 1}, geometry.Coordinate{Lat: 2}))

	restored := []*Segment{
		lineSegment(geometry.Coordinate{Lat: 3}, geometry.Coordinate{Lat: 4}),
		lineSegment(geometry.Coordinate{Lat: 5}, geometry.Coordinate{Lat: 6}),
	}
	s.ReplaceAll(restored)

	require.Equal(t, 2, s.Len())
	segs := s.Segments()
	assert.NotZero(t, segs[0].ID)
	assert.NotZero(t, segs[1].ID)
	assert.NotEqual(t, segs[0].ID, segs[1].ID)
}

func TestStoreOrderIsInsertionOrder(t *testing.T) {
	s := NewStore()
	first := s.Add(lineSegment(geometry.Coordinate{Lat: 1}, geometry.Coordinate{Lat: 2}))
	second := s.Add(lineSegment(geometry.Coordinate{Lat: 3}, geometry.Coordinate{Lat: 4}))

	segs := s.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, first.ID, segs[0].ID)
	assert.Equal(t, second.ID, segs[1].ID)
}
