package editor

import "dive_trails/internal/geometry"

// SnapThresholdMeters is how close a vertex must land to the site anchor
// before it is pulled onto it. Divers routinely start or end a segment at
// the known site location; downstream connectivity checks need exact
// coincidence, not "close to".
const SnapThresholdMeters = 50.0

// Snapper pulls proposed vertices onto the route's anchor coordinate when
// snapping is enabled. With no anchor or snapping disabled it is a pass
// through.
type Snapper struct {
	Anchor  *geometry.Coordinate
	Enabled bool
}

// Snap returns the coordinate, replaced by the anchor when it lands within
// the threshold. Idempotent: a snapped coordinate is at distance zero and
// snaps to itself.
func (s Snapper) Snap(c geometry.Coordinate) geometry.Coordinate {
	if !s.Enabled || s.Anchor == nil {
		return c
	}
	if geometry.Distance(c, *s.Anchor) < SnapThresholdMeters {
		return *s.Anchor
	}
	return c
}

// SnapAll applies Snap to every vertex independently.
func (s Snapper) SnapAll(vertices []geometry.Coordinate) []geometry.Coordinate {
	if !s.Enabled || s.Anchor == nil {
		return vertices
	}
	out := make([]geometry.Coordinate, len(vertices))
	for i, v := range vertices {
		out[i] = s.Snap(v)
	}
	return out
}
