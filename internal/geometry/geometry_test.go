package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("point needs one vertex", func(t *testing.T) {
		require.NoError(t, Validate(KindPoint, []Coordinate{{Lat: 1, Lng: 2}}))
		require.Error(t, Validate(KindPoint, nil))
	})

	t.Run("degenerate line rejected", func(t *testing.T) {
		err := Validate(KindLine, []Coordinate{{Lat: 1, Lng: 2}})
		require.Error(t, err)
	})

	t.Run("polygon needs three vertices", func(t *testing.T) {
		ring := []Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}}
		require.Error(t, Validate(KindPolygon, ring))
		ring = append(ring, Coordinate{Lat: 1, Lng: 1})
		require.NoError(t, Validate(KindPolygon, ring))
	})

	t.Run("non-finite coordinates rejected", func(t *testing.T) {
		require.Error(t, Validate(KindPoint, []Coordinate{{Lat: math.NaN(), Lng: 0}}))
		require.Error(t, Validate(KindLine, []Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: math.Inf(1)}}))
	})
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindPoint, KindLine, KindPolygon} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("circle")
	require.Error(t, err)
}

func TestDistance(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		c := Coordinate{Lat: 25, Lng: 35}
		assert.InDelta(t, 0, Distance(c, c), 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		a := Coordinate{Lat: 0, Lng: 0}
		b := Coordinate{Lat: 1, Lng: 0}
		// One degree of arc on the mean-radius sphere
		want := EarthRadiusMeters * math.Pi / 180
		assert.InDelta(t, want, Distance(a, b), 1)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Coordinate{Lat: 10.5, Lng: 20.25}
		b := Coordinate{Lat: -3.75, Lng: 141}
		assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-6)
	})
}
