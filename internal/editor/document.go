package editor

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"dive_trails/internal/geometry"
)

// Persisted-document property keys. segmentType duplicates the route-level
// activity type on every feature for historical compatibility with older
// consumers of the document.
const (
	propSegmentType = "segmentType"
	propName        = "name"
	propColor       = "color"
	propMarkerType  = "markerType"
	propComment     = "comment"
)

// ToDocument serializes the authored segments into the portable
// feature-collection document exchanged with the remote store. The mapping
// is lossless over one round trip for kind, geometry and properties; ids
// are deliberately not written.
func ToDocument(segments []*Segment) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{}
	for _, seg := range segments {
		if err := geometry.Validate(seg.Kind, seg.Vertices); err != nil {
			return nil, fmt.Errorf("segment %d: %w", seg.ID, err)
		}
		props := map[string]interface{}{
			propSegmentType: string(seg.ActivityType),
			propName:        seg.Properties.Name,
			propColor:       seg.Properties.Color,
		}
		if seg.Kind == geometry.KindPoint {
			props[propMarkerType] = seg.Properties.MarkerType
			props[propComment] = seg.Properties.Comment
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   segmentGeometry(seg),
			Properties: props,
		})
	}
	return fc, nil
}

func segmentGeometry(seg *Segment) geom.T {
	switch seg.Kind {
	case geometry.KindPoint:
		v := seg.Vertices[0]
		return geom.NewPointFlat(geom.XY, []float64{v.Lng, v.Lat})
	case geometry.KindPolygon:
		// Single outer ring, closed on the way out.
		flat := make([]float64, 0, (len(seg.Vertices)+1)*2)
		for _, v := range seg.Vertices {
			flat = append(flat, v.Lng, v.Lat)
		}
		first := seg.Vertices[0]
		last := seg.Vertices[len(seg.Vertices)-1]
		if first != last {
			flat = append(flat, first.Lng, first.Lat)
		}
		return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
	default:
		flat := make([]float64, 0, len(seg.Vertices)*2)
		for _, v := range seg.Vertices {
			flat = append(flat, v.Lng, v.Lat)
		}
		return geom.NewLineStringFlat(geom.XY, flat)
	}
}

// FromDocument expands a persisted document back into segments. Kind is
// derived from the geometry type once, here; ids are left unset so the
// store assigns fresh ones (persisted documents carry no ids). Features
// with unsupported or degenerate geometry are skipped, not fatal.
func FromDocument(fc *geojson.FeatureCollection) ([]*Segment, error) {
	if fc == nil {
		return nil, fmt.Errorf("nil feature collection")
	}
	var segments []*Segment
	for i, f := range fc.Features {
		kind, vertices, ok := featureShape(f.Geometry)
		if !ok {
			logrus.WithField("feature", i).Warn("route document: skipping feature with unsupported geometry")
			continue
		}
		if err := geometry.Validate(kind, vertices); err != nil {
			logrus.WithError(err).WithField("feature", i).Warn("route document: skipping degenerate feature")
			continue
		}
		activity := ParseActivityType(stringProp(f.Properties, propSegmentType, string(ActivityWalk)))
		seg := &Segment{
			Kind:         kind,
			ActivityType: activity,
			Vertices:     vertices,
			Properties: Properties{
				Name:  stringProp(f.Properties, propName, DefaultSegmentName(activity)),
				Color: stringProp(f.Properties, propColor, ColorFor(activity)),
			},
		}
		if kind == geometry.KindPoint {
			seg.Properties.MarkerType = stringProp(f.Properties, propMarkerType, DefaultMarkerType)
			seg.Properties.Comment = stringProp(f.Properties, propComment, "")
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// featureShape maps a GeoJSON geometry onto the closed kind set. Multi
// variants collapse to their first member; polygons keep the outer ring
// only, unclosed.
func featureShape(g geom.T) (geometry.Kind, []geometry.Coordinate, bool) {
	switch g := g.(type) {
	case *geom.Point:
		c := g.Coords()
		return geometry.KindPoint, []geometry.Coordinate{{Lat: c[1], Lng: c[0]}}, true
	case *geom.LineString:
		return geometry.KindLine, toVertices(g.Coords()), true
	case *geom.MultiLineString:
		if g.NumLineStrings() == 0 {
			return 0, nil, false
		}
		return geometry.KindLine, toVertices(g.Coords()[0]), true
	case *geom.Polygon:
		if g.NumLinearRings() == 0 {
			return 0, nil, false
		}
		return geometry.KindPolygon, openRing(toVertices(g.Coords()[0])), true
	case *geom.MultiPolygon:
		if g.NumPolygons() == 0 || len(g.Coords()[0]) == 0 {
			return 0, nil, false
		}
		return geometry.KindPolygon, openRing(toVertices(g.Coords()[0][0])), true
	}
	return 0, nil, false
}

func toVertices(coords []geom.Coord) []geometry.Coordinate {
	out := make([]geometry.Coordinate, 0, len(coords))
	for _, c := range coords {
		out = append(out, geometry.Coordinate{Lat: c[1], Lng: c[0]})
	}
	return out
}

// openRing drops the closing duplicate vertex GeoJSON polygon rings carry.
func openRing(vertices []geometry.Coordinate) []geometry.Coordinate {
	if len(vertices) > 1 && vertices[0] == vertices[len(vertices)-1] {
		return vertices[:len(vertices)-1]
	}
	return vertices
}

func stringProp(props map[string]interface{}, key, fallback string) string {
	if v, ok := props[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// EncodeDocument renders a document as JSON bytes for storage.
func EncodeDocument(fc *geojson.FeatureCollection) ([]byte, error) {
	return json.Marshal(fc)
}

// DecodeDocument parses stored JSON bytes back into a document.
func DecodeDocument(data []byte) (*geojson.FeatureCollection, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("invalid route document: %w", err)
	}
	return &fc, nil
}
