package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom/encoding/geojson"

	"dive_trails/internal/geometry"
)

// State is the editor lifecycle state. Drawing and Ready flip purely on the
// segment count; Saving suspends until the persistence collaborator
// resolves.
type State string

const (
	StateEmpty      State = "empty"
	StateDrawing    State = "drawing"
	StateReady      State = "ready"
	StateSaving     State = "saving"
	StateSaved      State = "saved"
	StateSaveFailed State = "save_failed"
)

// Validation errors. These refuse the action locally; no request is made.
var (
	ErrNoSegments     = errors.New("route needs at least one segment")
	ErrNameTooShort   = errors.New("route name must be at least 3 characters")
	ErrSaveInProgress = errors.New("save already in progress")
)

// MinRouteNameLen is the shortest route name Save accepts.
const MinRouteNameLen = 3

// SavePayload is what the external persistence collaborator receives. The
// drawing-type classification is derived server-side from the document and
// is not part of the payload.
type SavePayload struct {
	Name        string
	Description string
	RouteType   ActivityType
	Document    *geojson.FeatureCollection
}

// Persister is the external persistence collaborator. Network behavior,
// including timeouts, is its responsibility.
type Persister interface {
	SaveRoute(ctx context.Context, payload SavePayload) error
}

// Config carries everything an editor needs up front. The anchor is the
// reference-site coordinate the route is drawn around; it is read-only
// here.
type Config struct {
	Name        string
	Description string
	Activity    ActivityType
	Anchor      *geometry.Coordinate
	SnapEnabled bool
	Surface     Surface
	Persister   Persister
}

// Editor is the top-level coordinator for one route authoring session. It
// owns the segment store lifecycle and wires user actions to the serializer
// and the persistence collaborator. All gesture-driven mutations arrive
// from a single event loop; the mutex exists because the store stays
// mutable while a save is in flight.
type Editor struct {
	mu sync.Mutex

	store   *Store
	adapter *Adapter
	markers *MarkerEditor

	name        string
	description string
	activity    ActivityType
	anchor      *geometry.Coordinate

	persister Persister

	state     State
	saving    bool
	restored  bool
	lastSaved *geojson.FeatureCollection
	lastErr   error
}

// New builds an editor from explicit configuration.
func New(cfg Config) *Editor {
	store := NewStore()
	snapper := Snapper{Anchor: cfg.Anchor, Enabled: cfg.SnapEnabled}
	activity := cfg.Activity
	if activity == "" {
		activity = ActivityWalk
	}
	return &Editor{
		store:       store,
		adapter:     NewAdapter(store, cfg.Surface, snapper, activity),
		markers:     NewMarkerEditor(store),
		name:        cfg.Name,
		description: cfg.Description,
		activity:    activity,
		anchor:      cfg.Anchor,
		persister:   cfg.Persister,
		state:       StateEmpty,
	}
}

// refreshState recomputes Drawing/Ready from the segment count. Terminal
// save states survive until the next mutation.
func (e *Editor) refreshState() {
	if e.saving {
		return
	}
	if e.store.Len() > 0 {
		e.state = StateReady
	} else {
		e.state = StateDrawing
	}
}

// State returns the current lifecycle state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the error surfaced by the last failed save, if any.
func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Segments returns the authored segments in display order.
func (e *Editor) Segments() []*Segment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Segments()
}

// Name returns the route name.
func (e *Editor) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.name
}

// SetName updates the route name.
func (e *Editor) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.name = name
}

// SetDescription updates the route description.
func (e *Editor) SetDescription(desc string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.description = desc
}

// SetActivityType switches the activity type for subsequently drawn
// segments. Existing segments keep theirs.
func (e *Editor) SetActivityType(t ActivityType) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activity = t
	e.adapter.SetActivityType(t)
}

// SetSnapping toggles anchor snapping.
func (e *Editor) SetSnapping(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.adapter.SetSnapping(enabled)
}

// ShapeCreated forwards a finished draw gesture to the adapter. For point
// segments the marker sub-editor opens immediately so annotation happens in
// the same gesture; the caller should prompt the user.
func (e *Editor) ShapeCreated(ev ShapeEvent) (*Segment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	seg, err := e.adapter.ShapeCreated(ev)
	if err != nil {
		return nil, err
	}
	if seg.Kind == geometry.KindPoint {
		if err := e.markers.Open(seg.ID); err != nil {
			logrus.WithError(err).Warn("editor: could not open marker session for new point")
		}
	}
	e.refreshState()
	return seg, nil
}

// ShapesEdited forwards geometry edits to the adapter.
func (e *Editor) ShapesEdited(events []ShapeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.adapter.ShapesEdited(events)
}

// ShapesDeleted forwards shape removals to the adapter.
func (e *Editor) ShapesDeleted(events []ShapeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.adapter.ShapesDeleted(events)
	e.refreshState()
}

// OpenMarker starts an annotation session on a point segment.
func (e *Editor) OpenMarker(segmentID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.markers.Open(segmentID)
}

// CommitMarker writes the annotation and re-syncs the surface so the
// rendered shape reflects it.
func (e *Editor) CommitMarker(markerType, comment string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.markers.Commit(markerType, comment); err != nil {
		return err
	}
	return e.adapter.Resync()
}

// CancelMarker discards the open annotation session.
func (e *Editor) CancelMarker() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.markers.Cancel()
}

// MarkerSession reports the open marker session's segment id, or 0.
func (e *Editor) MarkerSession() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.markers.SegmentID()
}

// Restore expands a previously saved document into the store and renders
// it. It runs at most once per editor so a re-fetch of the source document
// cannot clobber in-progress edits.
func (e *Editor) Restore(fc *geojson.FeatureCollection) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.restored {
		logrus.Debug("editor: restore called twice, ignoring")
		return nil
	}
	segments, err := FromDocument(fc)
	if err != nil {
		return err
	}
	e.store.ReplaceAll(segments)
	e.restored = true
	if err := e.adapter.Resync(); err != nil {
		return err
	}
	e.refreshState()
	return nil
}

// Save validates, serializes and hands the document to the persistence
// collaborator. The store stays mutable while the save is in flight so the
// user is not blocked; a duplicate Save during that window is refused. On
// failure the store is untouched so the user can retry without redrawing.
func (e *Editor) Save(ctx context.Context) (*geojson.FeatureCollection, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	if e.store.Len() == 0 {
		e.mu.Unlock()
		return nil, ErrNoSegments
	}
	if len(strings.TrimSpace(e.name)) < MinRouteNameLen {
		e.mu.Unlock()
		return nil, ErrNameTooShort
	}
	doc, err := ToDocument(e.store.Segments())
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}
	payload := SavePayload{
		Name:        e.name,
		Description: e.description,
		RouteType:   e.activity,
		Document:    doc,
	}
	e.saving = true
	e.state = StateSaving
	e.mu.Unlock()

	saveErr := e.persister.SaveRoute(ctx, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if saveErr != nil {
		e.state = StateSaveFailed
		e.lastErr = saveErr
		logrus.WithError(saveErr).Error("editor: route save failed")
		return nil, fmt.Errorf("saving route: %w", saveErr)
	}
	e.state = StateSaved
	e.lastErr = nil
	e.lastSaved = doc
	return doc, nil
}

// Document returns the last successfully saved document, or nil.
func (e *Editor) Document() *geojson.FeatureCollection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSaved
}

// Clear empties the store and the reconciliation table and wipes the
// surface, returning to Empty.
func (e *Editor) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.ReplaceAll(nil)
	if err := e.adapter.Resync(); err != nil {
		return err
	}
	e.state = StateEmpty
	return nil
}

// RemoveSegment deletes one segment from the store (list-driven removal,
// not a surface gesture) and re-syncs the surface.
func (e *Editor) RemoveSegment(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed := e.store.Remove(id)
	if removed {
		if err := e.adapter.Resync(); err != nil {
			logrus.WithError(err).Warn("editor: surface resync after removal failed")
		}
		e.refreshState()
	}
	return removed
}

// Close discards all uncommitted state and tears the surface down. Cancel
// is purely local; an in-flight save is not awaited.
func (e *Editor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.ReplaceAll(nil)
	e.markers.Cancel()
	return e.adapter.Close()
}
