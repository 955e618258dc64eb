package editor

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"dive_trails/internal/geometry"
)

// Adapter is the single integration point between the drawing surface and
// the segment store. Gestures come in as ShapeEvents keyed by surface
// handle; the adapter snaps geometry, resolves handles to segment ids
// through the handle table, and mutates the store. It also re-projects the
// store onto the surface after any change that did not originate from a
// gesture.
type Adapter struct {
	store    *Store
	handles  *HandleTable
	surface  Surface
	snapper  Snapper
	activity ActivityType
}

// NewAdapter wires an adapter to its collaborators. Snapping and activity
// configuration is explicit here; there is no shared module-level state.
func NewAdapter(store *Store, surface Surface, snapper Snapper, activity ActivityType) *Adapter {
	return &Adapter{
		store:    store,
		handles:  NewHandleTable(),
		surface:  surface,
		snapper:  snapper,
		activity: activity,
	}
}

// Handles exposes the reconciliation table, mainly for the editor
// controller's clear path and for tests.
func (a *Adapter) Handles() *HandleTable {
	return a.handles
}

// SetActivityType switches the activity type newly drawn segments inherit.
func (a *Adapter) SetActivityType(t ActivityType) {
	a.activity = t
}

// SetSnapping toggles anchor snapping for subsequent gestures.
func (a *Adapter) SetSnapping(enabled bool) {
	a.snapper.Enabled = enabled
}

// ShapeCreated handles a finished draw gesture. Degenerate geometry is
// rejected and no segment is created. The new segment inherits the current
// activity type, its default name and color, and a fresh store id; the
// surface handle is then bound to that id.
func (a *Adapter) ShapeCreated(ev ShapeEvent) (*Segment, error) {
	if err := geometry.Validate(ev.Kind, ev.Vertices); err != nil {
		logrus.WithError(err).WithField("handle", ev.Handle).Warn("surface adapter: ignoring degenerate created shape")
		return nil, err
	}
	seg := &Segment{
		Kind:         ev.Kind,
		ActivityType: a.activity,
		Vertices:     a.snapper.SnapAll(ev.Vertices),
		Properties: Properties{
			Name:  DefaultSegmentName(a.activity),
			Color: ColorFor(a.activity),
		},
	}
	if seg.Kind == geometry.KindPoint {
		seg.Properties.MarkerType = DefaultMarkerType
	}
	a.store.Add(seg)
	a.handles.Bind(ev.Handle, seg.ID)
	return seg, nil
}

// ShapesEdited handles geometry edits. Properties are preserved; only the
// vertices change. Events whose handle cannot be resolved are dropped.
func (a *Adapter) ShapesEdited(events []ShapeEvent) {
	for _, ev := range events {
		id, ok := a.resolve(ev)
		if !ok {
			logrus.WithField("handle", ev.Handle).Warn("surface adapter: dropping edit for unresolvable handle")
			continue
		}
		a.store.Update(id, a.snapper.SnapAll(ev.Vertices), nil)
	}
}

// ShapesDeleted handles shape removals, dropping the reconciliation entry
// alongside the segment.
func (a *Adapter) ShapesDeleted(events []ShapeEvent) {
	for _, ev := range events {
		id, ok := a.resolve(ev)
		if !ok {
			logrus.WithField("handle", ev.Handle).Warn("surface adapter: dropping delete for unresolvable handle")
			continue
		}
		a.store.Remove(id)
		a.handles.DropHandle(ev.Handle)
		a.handles.DropSegment(id)
	}
}

// resolve maps an event back to a segment id: first through the handle
// table, then through an id the surface attached to the shape, and finally
// by parsing the handle itself as an id. The last path is degraded
// (transient handles are not unique across re-renders) and only ever feeds
// the in-memory lookup; a handle-derived id is never persisted.
func (a *Adapter) resolve(ev ShapeEvent) (int64, bool) {
	if id, ok := a.handles.SegmentID(ev.Handle); ok {
		return id, true
	}
	if ev.SegmentID != 0 && a.store.Get(ev.SegmentID) != nil {
		a.handles.Bind(ev.Handle, ev.SegmentID)
		return ev.SegmentID, true
	}
	if id, err := strconv.ParseInt(string(ev.Handle), 10, 64); err == nil && a.store.Get(id) != nil {
		logrus.WithField("handle", ev.Handle).Warn("surface adapter: falling back to handle as segment id")
		return id, true
	}
	return 0, false
}

// Resync clears the surface and re-renders one shape per stored segment,
// re-establishing handle bindings. Called after restore, after marker
// commits, and after list-driven removals, where the surface did not see
// the change happen.
func (a *Adapter) Resync() error {
	if err := a.surface.Clear(); err != nil {
		return err
	}
	a.handles.Reset()
	for _, seg := range a.store.Segments() {
		if seg.Properties.Color == "" {
			seg.Properties.Color = ColorFor(seg.ActivityType)
		}
		h, err := a.surface.Render(seg)
		if err != nil {
			logrus.WithError(err).WithField("segment_id", seg.ID).Warn("surface adapter: failed to re-render segment")
			continue
		}
		a.handles.Bind(h, seg.ID)
	}
	return nil
}

// Close tears down the surface and forgets all bindings.
func (a *Adapter) Close() error {
	a.handles.Reset()
	return a.surface.Close()
}
