package editor

// Display colors per activity type. ColorFor is total: unknown tokens get
// the walk color, so first-draw and restore call sites always agree.
const (
	colorWalk  = "#2e8b57"
	colorSwim  = "#1e90ff"
	colorScuba = "#0b3d91"
)

// ColorFor resolves the default display color for an activity type.
func ColorFor(t ActivityType) string {
	switch t {
	case ActivitySwim:
		return colorSwim
	case ActivityScuba:
		return colorScuba
	}
	return colorWalk
}
