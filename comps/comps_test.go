package comps

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"pathwerk/geo"
	. "pathwerk/util"
)

func _BuildTestBase() *GraphBase {
	builder := NewGraphBuilder()
	builder.AddNode(geo.Coord{9.00, 48.00})
	builder.AddNode(geo.Coord{9.01, 48.00})
	builder.AddNode(geo.Coord{9.02, 48.00})
	builder.AddNode(geo.Coord{9.01, 48.01})
	builder.AddEdge(0, 1, 100)
	builder.AddEdge(1, 2, 100)
	builder.AddEdge(1, 3, 100)
	builder.AddEdge(3, 1, 100)
	return builder.Freeze()
}

func TestGraphBuilder(t *testing.T) {
	base := _BuildTestBase()

	require.Equal(t, 4, base.NodeCount())
	require.Equal(t, 4, base.EdgeCount())
	require.Equal(t, int16(2), base.GetNodeDegree(1, true))
	require.Equal(t, int16(2), base.GetNodeDegree(1, false))

	accessor := base.GetAccessor()
	accessor.SetBaseNode(0, true)
	require.True(t, accessor.Next())
	require.Equal(t, int32(0), accessor.GetEdgeID())
	require.Equal(t, int32(1), accessor.GetOtherID())
	require.False(t, accessor.Next())
}

func TestTCWeighting(t *testing.T) {
	base := _BuildTestBase()
	weight := NewTCWeighting(base)
	for i := 0; i < base.EdgeCount(); i++ {
		weight.SetEdgeWeight(int32(i), 1)
	}

	require.Equal(t, 0.0, weight.GetTurnCost(0, 1, 1))

	weight.SetTurnCost(0, 1, 2, 5)
	require.Equal(t, 5.0, weight.GetTurnCost(0, 1, 2))
	require.Equal(t, 0.0, weight.GetTurnCost(0, 1, 1))

	weight.SetTurnRestriction(3, 1, 1)
	require.True(t, math.IsInf(weight.GetTurnCost(3, 1, 1), 1))
}

func TestGraphIndex(t *testing.T) {
	base := _BuildTestBase()
	index := NewGraphIndex(base)

	node, ok := index.GetClosestNode(geo.Coord{9.0101, 48.0001})
	require.True(t, ok)
	require.Equal(t, int32(1), node)

	// next to the middle of edge 0
	snap, ok := index.FindClosestEdge(geo.Coord{9.005, 48.0003})
	require.True(t, ok)
	require.Equal(t, int32(0), snap.EdgeID)
	require.InDelta(t, 0.5, snap.Position, 0.05)

	// far away from every edge
	_, ok = index.FindClosestEdge(geo.Coord{10.0, 49.0})
	require.False(t, ok)
}

func TestLandmarkHeuristic(t *testing.T) {
	inf := float32(math.Inf(1))
	landmarks := NewLandmarks(
		Array[int32]{0},
		Array[Array[float32]]{{0, 2, 5, inf}},
		Array[Array[float32]]{{0, 2, 5, inf}},
		100,
	)

	// d(L,2) - d(L,1) = 3 is a lower bound for d(1,2)
	require.Equal(t, 3.0, landmarks.GetHeuristic(1, 2))
	// unreachable entries must not produce infinite bounds
	require.Equal(t, 0.0, landmarks.GetHeuristic(1, 3))
	require.Equal(t, 0.0, landmarks.GetHeuristic(3, 2))
}
