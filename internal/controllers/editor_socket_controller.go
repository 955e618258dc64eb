package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dive_trails/internal/config"
	"dive_trails/internal/editor"
	"dive_trails/internal/geometry"
	"dive_trails/internal/middleware"
	"dive_trails/internal/models"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// shapePayload is one shape as the map client reports it. The handle is
// whatever the client's drawing library assigned to the layer.
type shapePayload struct {
	Handle    string                `json:"handle"`
	SegmentID int64                 `json:"segment_id,omitempty"`
	Shape     string                `json:"shape"` // "point", "line", "polygon"
	Vertices  []geometry.Coordinate `json:"vertices"`
}

// editorMessage is one inbound frame from the map client.
type editorMessage struct {
	Action string `json:"action"`

	// Gesture payloads
	Shape  *shapePayload  `json:"shape,omitempty"`
	Shapes []shapePayload `json:"shapes,omitempty"`

	// Route metadata and toggles
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Activity    string `json:"activity,omitempty"`
	Snapping    *bool  `json:"snapping,omitempty"`

	// Marker sub-editor and list actions
	SegmentID  int64  `json:"segment_id,omitempty"`
	MarkerType string `json:"marker_type,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// socketSurface implements editor.Surface by pushing render commands to the
// map client. Server-rendered shapes get server-assigned handles; the
// client tags its layers with them and reports later gestures under the
// same handle.
type socketSurface struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	seq    int64
	closed bool
}

func newSocketSurface(conn *websocket.Conn) *socketSurface {
	return &socketSurface{conn: conn}
}

// send serializes all writes on the connection, for the surface and for the
// session's own frames alike.
func (s *socketSurface) send(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("surface closed")
	}
	return s.conn.WriteJSON(v)
}

func (s *socketSurface) Render(seg *editor.Segment) (editor.Handle, error) {
	s.mu.Lock()
	s.seq++
	h := editor.Handle("srv-" + strconv.FormatInt(s.seq, 10))
	s.mu.Unlock()

	err := s.send(gin.H{
		"type":   "render",
		"handle": h,
		"segment": gin.H{
			"id":           seg.ID,
			"shape":        seg.Kind.String(),
			"activityType": seg.ActivityType,
			"vertices":     seg.Vertices,
			"properties":   seg.Properties,
		},
	})
	if err != nil {
		return "", err
	}
	return h, nil
}

func (s *socketSurface) Remove(h editor.Handle) error {
	return s.send(gin.H{"type": "remove", "handle": h})
}

func (s *socketSurface) Clear() error {
	return s.send(gin.H{"type": "clear"})
}

func (s *socketSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// routePersister is the editor's persistence collaborator: it writes the
// serialized document into the routes table, creating the row on first save
// and updating it afterwards.
type routePersister struct {
	db      *gorm.DB
	userID  uint
	siteID  uint
	routeID uint // 0 until the first successful save of a new route
}

func (p *routePersister) SaveRoute(ctx context.Context, payload editor.SavePayload) error {
	data, err := editor.EncodeDocument(payload.Document)
	if err != nil {
		return err
	}
	drawingType := deriveDrawingType(payload.Document)

	if p.routeID == 0 {
		route := models.Route{
			Name:        payload.Name,
			Description: payload.Description,
			RouteType:   string(payload.RouteType),
			DrawingType: drawingType,
			RouteData:   datatypes.JSON(data),
			SiteID:      p.siteID,
			UserID:      p.userID,
		}
		if err := p.db.WithContext(ctx).Create(&route).Error; err != nil {
			return err
		}
		p.routeID = route.ID
		return nil
	}

	return p.db.WithContext(ctx).Model(&models.Route{}).
		Where("id = ? AND user_id = ?", p.routeID, p.userID).
		Updates(map[string]interface{}{
			"name":         payload.Name,
			"description":  payload.Description,
			"route_type":   string(payload.RouteType),
			"drawing_type": drawingType,
			"route_data":   datatypes.JSON(data),
		}).Error
}

// editorSessions tracks live authoring sessions, keyed by session id.
var (
	editorSessions   = make(map[string]*editorSession)
	editorSessionsMu sync.Mutex
)

type editorSession struct {
	id      string
	userID  uint
	siteID  uint
	ed      *editor.Editor
	surface *socketSurface
}

func registerSession(s *editorSession) {
	editorSessionsMu.Lock()
	defer editorSessionsMu.Unlock()
	editorSessions[s.id] = s
	logrus.WithFields(logrus.Fields{
		"session_id": s.id,
		"user_id":    s.userID,
		"site_id":    s.siteID,
	}).Info("editor session opened")
}

func unregisterSession(s *editorSession) {
	editorSessionsMu.Lock()
	defer editorSessionsMu.Unlock()
	delete(editorSessions, s.id)
	logrus.WithField("session_id", s.id).Info("editor session closed")
}

func toShapeEvent(p shapePayload) (editor.ShapeEvent, error) {
	kind, err := geometry.ParseKind(p.Shape)
	if err != nil {
		return editor.ShapeEvent{}, err
	}
	return editor.ShapeEvent{
		Handle:    editor.Handle(p.Handle),
		SegmentID: p.SegmentID,
		Kind:      kind,
		Vertices:  p.Vertices,
	}, nil
}

// EditorSocket upgrades the connection and serves one route authoring
// session: the client's map is the drawing surface, this server holds the
// segment store and the editor state machine.
func EditorSocket(c *gin.Context) {
	claims, err := middleware.ValidateToken(c.Query("token"))
	if err != nil {
		logrus.WithError(err).Warn("EditorSocket: websocket auth failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}

	siteID, err := strconv.ParseUint(c.Query("site_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "site_id is required"})
		return
	}
	var site models.DiveSite
	if err := config.DB.First(&site, siteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	// Optional: editing an existing route
	var existing *models.Route
	if rid := c.Query("route_id"); rid != "" {
		routeID, err := strconv.ParseUint(rid, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
			return
		}
		var route models.Route
		if err := config.DB.First(&route, routeID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}
		if route.UserID != claims.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the route author can edit this route"})
			return
		}
		existing = &route
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("EditorSocket: websocket upgrade failed")
		return
	}
	defer conn.Close()

	surface := newSocketSurface(conn)
	anchor := &geometry.Coordinate{Lat: site.Lat, Lng: site.Lng}
	persister := &routePersister{
		db:     config.DB,
		userID: claims.UserID,
		siteID: site.ID,
	}

	cfg := editor.Config{
		Activity:    editor.ParseActivityType(c.Query("activity")),
		Anchor:      anchor,
		SnapEnabled: c.Query("snapping") != "false",
		Surface:     surface,
		Persister:   persister,
	}
	if existing != nil {
		persister.routeID = existing.ID
		cfg.Name = existing.Name
		cfg.Description = existing.Description
		cfg.Activity = editor.ParseActivityType(existing.RouteType)
	}
	ed := editor.New(cfg)

	session := &editorSession{
		id:      uuid.NewString(),
		userID:  claims.UserID,
		siteID:  site.ID,
		ed:      ed,
		surface: surface,
	}
	registerSession(session)
	defer unregisterSession(session)
	defer func() {
		if err := ed.Close(); err != nil {
			logrus.WithError(err).Warn("EditorSocket: editor teardown failed")
		}
	}()

	if existing != nil && len(existing.RouteData) > 0 {
		fc, err := editor.DecodeDocument(existing.RouteData)
		if err != nil {
			logrus.WithError(err).WithField("route_id", existing.ID).Error("EditorSocket: stored route document is unreadable")
			sendError(surface, "stored route document is unreadable: "+err.Error())
		} else if err := ed.Restore(fc); err != nil {
			sendError(surface, "could not restore route: "+err.Error())
		}
	}

	sendState(surface, session)
	runEditorLoop(c, session)
}

// runEditorLoop reads client frames until the connection drops or the user
// cancels. All store mutations happen here, synchronously per frame.
func runEditorLoop(c *gin.Context, s *editorSession) {
	for {
		var msg editorMessage
		if err := s.surface.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("session_id", s.id).Warn("editor socket read failed")
			}
			return
		}
		if done := handleEditorMessage(c, s, msg); done {
			return
		}
	}
}

func handleEditorMessage(c *gin.Context, s *editorSession, msg editorMessage) bool {
	ed := s.ed
	switch msg.Action {
	case "created":
		if msg.Shape == nil {
			sendError(s.surface, "created frame missing shape")
			return false
		}
		ev, err := toShapeEvent(*msg.Shape)
		if err != nil {
			sendError(s.surface, err.Error())
			return false
		}
		seg, err := ed.ShapeCreated(ev)
		if err != nil {
			sendError(s.surface, err.Error())
			return false
		}
		s.surface.send(gin.H{
			"type":       "created",
			"handle":     msg.Shape.Handle,
			"segment_id": seg.ID,
			"properties": seg.Properties,
			"vertices":   seg.Vertices,
		})
		if markerID := ed.MarkerSession(); markerID != 0 {
			// Annotation entry happens in the same gesture as the draw.
			s.surface.send(gin.H{"type": "marker_prompt", "segment_id": markerID})
		}

	case "edited":
		events := make([]editor.ShapeEvent, 0, len(msg.Shapes))
		for _, p := range msg.Shapes {
			ev, err := toShapeEvent(p)
			if err != nil {
				sendError(s.surface, err.Error())
				continue
			}
			events = append(events, ev)
		}
		ed.ShapesEdited(events)

	case "deleted":
		events := make([]editor.ShapeEvent, 0, len(msg.Shapes))
		for _, p := range msg.Shapes {
			ev, err := toShapeEvent(p)
			if err != nil {
				sendError(s.surface, err.Error())
				continue
			}
			events = append(events, ev)
		}
		ed.ShapesDeleted(events)

	case "set_name":
		ed.SetName(msg.Name)
	case "set_description":
		ed.SetDescription(msg.Description)
	case "set_activity":
		ed.SetActivityType(editor.ParseActivityType(msg.Activity))
	case "set_snapping":
		if msg.Snapping != nil {
			ed.SetSnapping(*msg.Snapping)
		}

	case "open_marker":
		if err := ed.OpenMarker(msg.SegmentID); err != nil {
			sendError(s.surface, err.Error())
		}
	case "commit_marker":
		if err := ed.CommitMarker(msg.MarkerType, msg.Comment); err != nil {
			sendError(s.surface, err.Error())
		}
	case "cancel_marker":
		ed.CancelMarker()

	case "remove_segment":
		if !ed.RemoveSegment(msg.SegmentID) {
			sendError(s.surface, "no segment with id "+strconv.FormatInt(msg.SegmentID, 10))
		}
	case "clear":
		if err := ed.Clear(); err != nil {
			sendError(s.surface, err.Error())
		}

	case "save":
		doc, err := ed.Save(c.Request.Context())
		if err != nil {
			sendError(s.surface, err.Error())
			break
		}
		s.surface.send(gin.H{"type": "saved", "document": doc})

	case "cancel":
		// Purely local: discard and hang up, no persistence call.
		return true

	default:
		sendError(s.surface, "unknown action "+strconv.Quote(msg.Action))
	}

	sendState(s.surface, s)
	return false
}

func sendError(surface *socketSurface, message string) {
	if err := surface.send(gin.H{"type": "error", "error": message}); err != nil {
		logrus.WithError(err).Debug("editor socket: failed to send error frame")
	}
}

func sendState(surface *socketSurface, s *editorSession) {
	segments := s.ed.Segments()
	if err := surface.send(gin.H{
		"type":     "state",
		"state":    s.ed.State(),
		"segments": segments,
		"name":     s.ed.Name(),
	}); err != nil {
		logrus.WithError(err).Debug("editor socket: failed to send state frame")
	}
}
