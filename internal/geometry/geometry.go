package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// Coordinate is a single WGS84 vertex in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Kind classifies a drawn shape. It is resolved once when the shape is
// created and never re-derived from geometry-type strings afterwards.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	}
	return "unknown"
}

// ParseKind maps a wire token back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "point":
		return KindPoint, nil
	case "line":
		return KindLine, nil
	case "polygon":
		return KindPolygon, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// MinVertices is the smallest vertex count that makes a shape of this kind
// non-degenerate. Polygon rings are stored unclosed, so three distinct
// vertices suffice.
func (k Kind) MinVertices() int {
	switch k {
	case KindLine:
		return 2
	case KindPolygon:
		return 3
	}
	return 1
}

// Validate rejects degenerate or non-finite geometry.
func Validate(k Kind, vertices []Coordinate) error {
	if len(vertices) < k.MinVertices() {
		return fmt.Errorf("%s needs at least %d vertices, got %d", k, k.MinVertices(), len(vertices))
	}
	for i, v := range vertices {
		if !finite(v.Lat) || !finite(v.Lng) {
			return fmt.Errorf("vertex %d of %s is not a finite coordinate", i, k)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// EarthRadiusMeters is Earth's mean radius.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two coordinates in
// meters using the haversine formula.
func Distance(a, b Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}
