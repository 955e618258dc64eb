package editor

import (
	"fmt"

	"dive_trails/internal/geometry"
)

// MarkerEditor is the short-lived annotation session for a single point
// segment. Only one session exists at a time; opening a new one replaces
// the old.
type MarkerEditor struct {
	store      *Store
	open       bool
	segmentID  int64
	markerType string
	comment    string
}

// NewMarkerEditor binds a marker editor to a store.
func NewMarkerEditor(store *Store) *MarkerEditor {
	return &MarkerEditor{store: store}
}

// Open starts a session on a point segment, loading its current annotation
// as the working values. The store is not touched until Commit.
func (m *MarkerEditor) Open(segmentID int64) error {
	seg := m.store.Get(segmentID)
	if seg == nil {
		return fmt.Errorf("marker editor: no segment with id %d", segmentID)
	}
	if seg.Kind != geometry.KindPoint {
		return fmt.Errorf("marker editor: segment %d is a %s, not a point", segmentID, seg.Kind)
	}
	m.open = true
	m.segmentID = segmentID
	m.markerType = seg.Properties.MarkerType
	m.comment = seg.Properties.Comment
	return nil
}

// Commit writes the annotation onto the segment, preserving its name and
// color, and closes the session.
func (m *MarkerEditor) Commit(markerType, comment string) error {
	if !m.open {
		return fmt.Errorf("marker editor: no session open")
	}
	seg := m.store.Get(m.segmentID)
	if seg == nil {
		m.reset()
		return fmt.Errorf("marker editor: segment %d disappeared during session", m.segmentID)
	}
	if markerType == "" {
		markerType = DefaultMarkerType
	}
	props := seg.Properties
	props.MarkerType = markerType
	props.Comment = comment
	m.store.Update(m.segmentID, nil, &props)
	m.reset()
	return nil
}

// Cancel discards the working values without mutating the store.
func (m *MarkerEditor) Cancel() {
	m.reset()
}

// IsOpen reports whether a session is active.
func (m *MarkerEditor) IsOpen() bool {
	return m.open
}

// SegmentID returns the segment the open session is bound to, or 0.
func (m *MarkerEditor) SegmentID() int64 {
	if !m.open {
		return 0
	}
	return m.segmentID
}

// Working returns the session's current working values.
func (m *MarkerEditor) Working() (markerType, comment string) {
	return m.markerType, m.comment
}

func (m *MarkerEditor) reset() {
	m.open = false
	m.segmentID = 0
	m.markerType = ""
	m.comment = ""
}
