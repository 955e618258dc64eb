package editor

// Handle identifies a rendered shape on the drawing surface. Handles are
// assigned by the surface, are transient, and are not stable across
// re-renders, which is why they are never persisted.
type Handle string

// HandleTable correlates surface handles with stable segment ids while the
// surface is alive. Each segment has at most one handle bound at a time.
type HandleTable struct {
	byHandle  map[Handle]int64
	bySegment map[int64]Handle
}

// NewHandleTable returns an empty table.
func NewHandleTable() *HandleTable {
	return &HandleTable{
		byHandle:  make(map[Handle]int64),
		bySegment: make(map[int64]Handle),
	}
}

// Bind records handle → segment, displacing any previous handle bound to
// that segment.
func (t *HandleTable) Bind(h Handle, segmentID int64) {
	if prev, ok := t.bySegment[segmentID]; ok {
		delete(t.byHandle, prev)
	}
	t.byHandle[h] = segmentID
	t.bySegment[segmentID] = h
}

// SegmentID resolves a handle to its segment id.
func (t *HandleTable) SegmentID(h Handle) (int64, bool) {
	id, ok := t.byHandle[h]
	return id, ok
}

// HandleFor resolves a segment id to its current handle.
func (t *HandleTable) HandleFor(segmentID int64) (Handle, bool) {
	h, ok := t.bySegment[segmentID]
	return h, ok
}

// DropHandle removes the entry for a handle, if any.
func (t *HandleTable) DropHandle(h Handle) {
	if id, ok := t.byHandle[h]; ok {
		delete(t.bySegment, id)
		delete(t.byHandle, h)
	}
}

// DropSegment removes the entry for a segment id, if any.
func (t *HandleTable) DropSegment(segmentID int64) {
	if h, ok := t.bySegment[segmentID]; ok {
		delete(t.byHandle, h)
		delete(t.bySegment, segmentID)
	}
}

// Reset empties the table. Called when the surface is cleared or torn down.
func (t *HandleTable) Reset() {
	t.byHandle = make(map[Handle]int64)
	t.bySegment = make(map[int64]Handle)
}

// Len returns the number of bindings.
func (t *HandleTable) Len() int {
	return len(t.byHandle)
}
