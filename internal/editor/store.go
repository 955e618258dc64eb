package editor

import (
	"github.com/sirupsen/logrus"

	"dive_trails/internal/geometry"
)

// Store holds the ordered list of segments for the route currently being
// authored. It is the single source of truth; the drawing surface is only a
// projection of it. Ids are assigned from a monotonic counter and are never
// reused after deletion.
type Store struct {
	segments []*Segment
	nextID   int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add appends a segment, assigning an id if it does not carry one yet, and
// returns the stored segment.
func (s *Store) Add(seg *Segment) *Segment {
	if seg.ID == 0 {
		seg.ID = s.nextID
		s.nextID++
	} else if seg.ID >= s.nextID {
		// Keep the counter ahead of externally assigned ids so later
		// additions cannot collide.
		s.nextID = seg.ID + 1
	}
	s.segments = append(s.segments, seg)
	return seg
}

// Get returns the segment with the given id, or nil.
func (s *Store) Get(id int64) *Segment {
	for _, seg := range s.segments {
		if seg.ID == id {
			return seg
		}
	}
	return nil
}

// Update replaces the geometry and/or properties of the segment matching id.
// A nil argument leaves that part untouched. An unknown id signals a
// reconciliation failure upstream; it is logged and reported, never fatal.
func (s *Store) Update(id int64, vertices []geometry.Coordinate, props *Properties) bool {
	seg := s.Get(id)
	if seg == nil {
		logrus.WithField("segment_id", id).Warn("segment store: update for unknown segment id, ignoring")
		return false
	}
	if vertices != nil {
		seg.Vertices = vertices
	}
	if props != nil {
		seg.Properties = *props
	}
	return true
}

// Remove deletes the segment with the given id and reports whether anything
// was removed.
func (s *Store) Remove(id int64) bool {
	for i, seg := range s.segments {
		if seg.ID == id {
			s.segments = append(s.segments[:i], s.segments[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceAll swaps the entire contents of the store. Used when restoring a
// persisted route and when clearing. Segments without ids get fresh ones.
func (s *Store) ReplaceAll(segments []*Segment) {
	s.segments = nil
	for _, seg := range segments {
		s.Add(seg)
	}
}

// Segments returns the segments in insertion order. The order matters only
// for list display, not for geometry semantics.
func (s *Store) Segments() []*Segment {
	out := make([]*Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the number of segments.
func (s *Store) Len() int {
	return len(s.segments)
}
