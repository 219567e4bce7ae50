package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	a := Coord{9.0, 48.0}
	b := Coord{9.0, 49.0}

	// one degree of latitude is roughly 111 km
	dist := HaversineDistance(a, b)
	require.InDelta(t, 111195, dist, 100)

	require.Equal(t, 0.0, HaversineDistance(a, a))
}

func TestPointToSegment(t *testing.T) {
	a := Coord{9.0, 48.0}
	b := Coord{9.1, 48.0}

	// point above the middle projects onto the segment interior
	point, position, _ := PointToSegment(Coord{9.05, 48.01}, a, b)
	require.InDelta(t, 0.5, position, 0.01)
	require.InDelta(t, 9.05, point.Lon(), 0.001)
	require.InDelta(t, 48.0, point.Lat(), 0.001)

	// point before the start clamps to position 0
	_, position, dist := PointToSegment(Coord{8.9, 48.0}, a, b)
	require.Equal(t, float32(0), position)
	require.InDelta(t, HaversineDistance(Coord{8.9, 48.0}, a), dist, 0.001)

	// point past the end clamps to position 1
	_, position, _ = PointToSegment(Coord{9.2, 48.0}, a, b)
	require.Equal(t, float32(1), position)
}

func TestNewLineString(t *testing.T) {
	line := NewLineString(CoordArray{{9.0, 48.0}, {9.1, 48.1}})
	require.Len(t, line, 2)
	require.InDelta(t, 9.0, line[0][0], 1e-6)
	require.InDelta(t, 48.1, line[1][1], 1e-6)
}
