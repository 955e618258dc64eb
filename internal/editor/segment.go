package editor

import (
	"encoding/json"
	"strings"

	"dive_trails/internal/geometry"
)

// ActivityType is the route-level activity token a segment inherits when it
// is drawn.
type ActivityType string

const (
	ActivityWalk  ActivityType = "walk"
	ActivitySwim  ActivityType = "swim"
	ActivityScuba ActivityType = "scuba"
)

// ParseActivityType normalizes a wire token, falling back to walk for
// anything it does not recognize.
func ParseActivityType(s string) ActivityType {
	switch ActivityType(strings.ToLower(strings.TrimSpace(s))) {
	case ActivitySwim:
		return ActivitySwim
	case ActivityScuba:
		return ActivityScuba
	}
	return ActivityWalk
}

// DefaultMarkerType is the marker classification a fresh point segment gets
// before the diver annotates it.
const DefaultMarkerType = "generic"

// Properties is the display and annotation payload of a segment.
// MarkerType and Comment are only meaningful for point segments.
type Properties struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	MarkerType string `json:"markerType,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// Segment is one drawn feature of the route being authored. ID is assigned
// by the store at creation time and is the join key between the store and
// the drawing surface adapter.
type Segment struct {
	ID           int64                 `json:"id"`
	Kind         geometry.Kind         `json:"-"`
	ActivityType ActivityType          `json:"activityType"`
	Vertices     []geometry.Coordinate `json:"vertices"`
	Properties   Properties            `json:"properties"`
}

// MarshalJSON emits the kind as its wire token rather than an enum number.
func (s *Segment) MarshalJSON() ([]byte, error) {
	type alias Segment
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{Kind: s.Kind.String(), alias: (*alias)(s)})
}

// DefaultSegmentName builds the label a segment carries until renamed,
// e.g. "Scuba Segment".
func DefaultSegmentName(t ActivityType) string {
	s := string(t)
	if s == "" {
		s = string(ActivityWalk)
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Segment"
}
