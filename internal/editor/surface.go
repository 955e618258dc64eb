package editor

import "dive_trails/internal/geometry"

// Surface is the editor's view of the interactive drawing surface (in
// practice the client's map, reached over a websocket). The surface owns its
// rendering resources; Close must release them so listeners do not leak on a
// surface object that outlives the editor.
type Surface interface {
	// Render draws one segment and returns the handle the surface bound
	// to the resulting shape.
	Render(seg *Segment) (Handle, error)
	// Remove erases a single rendered shape.
	Remove(h Handle) error
	// Clear erases everything rendered for this editor.
	Clear() error
	// Close tears the surface down.
	Close() error
}

// ShapeEvent is one pointer gesture reported by the drawing surface. The
// surface speaks in its own transient handles; SegmentID is only set when
// the surface supports attaching metadata to shapes and carries our id back.
type ShapeEvent struct {
	Handle    Handle                `json:"handle"`
	SegmentID int64                 `json:"segment_id,omitempty"`
	Kind      geometry.Kind         `json:"-"`
	Vertices  []geometry.Coordinate `json:"vertices"`
}
