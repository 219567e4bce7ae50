package preproc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"pathwerk/comps"
	"pathwerk/geo"
	"pathwerk/graph"
	"pathwerk/routing"
	. "pathwerk/util"
)

// 4x5 grid with bidirectional links and irregular weights, large enough
// that contraction has to create shortcuts.
func _BuildGridBase() (*comps.GraphBase, *comps.DefaultWeighting) {
	rows := 4
	cols := 5
	builder := comps.NewGraphBuilder()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			builder.AddNode(geo.Coord{9.0 + 0.01*float32(c), 48.0 + 0.01*float32(r)})
		}
	}
	weights := NewList[float64](100)
	link := func(a, b int32, weight float64) {
		builder.AddEdge(a, b, float32(100*weight))
		builder.AddEdge(b, a, float32(100*weight))
		weights.Add(weight)
		weights.Add(weight)
	}
	node := func(r, c int) int32 {
		return int32(r*cols + c)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				link(node(r, c), node(r, c+1), float64(1+(r+2*c)%4))
			}
			if r+1 < rows {
				link(node(r, c), node(r+1, c), float64(1+(3*r+c)%5))
			}
		}
	}
	base := builder.Freeze()
	weight := comps.NewDefaultWeighting(base)
	for i, w := range weights {
		weight.SetEdgeWeight(int32(i), w)
	}
	return base, weight
}

func TestCalcContraction(t *testing.T) {
	base, weight := _BuildGridBase()
	ch_data := CalcContraction(base, weight)

	require.False(t, ch_data.IsEdgeBased())
	require.True(t, ch_data.ShortcutCount() > 0)

	// every shortcut unpacks into a contiguous base-edge path carrying
	// the same weight
	for i := 0; i < ch_data.ShortcutCount(); i++ {
		shc := ch_data.GetShortcut(int32(i))
		sum := 0.0
		curr := shc.From
		ch_data.GetEdgesFromShortcut(int32(i), false, func(edge int32) {
			e := base.GetEdge(edge)
			require.Equal(t, curr, e.NodeA)
			curr = e.NodeB
			sum += weight.GetEdgeWeight(edge)
		})
		require.Equal(t, shc.To, curr)
		require.InDelta(t, shc.Weight, sum, 0.0001)
	}

	// the hierarchy query has to reproduce plain dijkstra distances
	g := graph.BuildGraph(base, weight)
	ch_g := graph.BuildCHGraph(base, weight, ch_data)
	for start := 0; start < base.NodeCount(); start++ {
		dists := _CalcDistanceTable(base, weight, int32(start), false, math.Inf(1))
		for end := 0; end < base.NodeCount(); end++ {
			if start == end {
				continue
			}
			ch_alg := routing.NewCHDijkstra(ch_g, int32(start), int32(end))
			require.True(t, ch_alg.CalcShortestPath())
			path := ch_alg.GetShortestPath()
			require.InDelta(t, float64(dists[end]), path.Weight(), 0.0001)

			nodes := path.GetNodes()
			require.Equal(t, int32(start), nodes[0])
			require.Equal(t, int32(end), nodes[nodes.Length()-1])
			_CheckPathWeight(t, g, path)
		}
	}
}

func TestCalcTCContraction(t *testing.T) {
	base, base_weight := _BuildGridBase()
	weight := comps.NewTCWeighting(base)
	for i := 0; i < base.EdgeCount(); i++ {
		weight.SetEdgeWeight(int32(i), base_weight.GetEdgeWeight(int32(i)))
	}
	// tolls at node 6 and a banned turn at node 7
	accessor := base.GetAccessor()
	accessor.SetBaseNode(6, false)
	for accessor.Next() {
		in_edge := accessor.GetEdgeID()
		out := base.GetAccessor()
		out.SetBaseNode(6, true)
		for out.Next() {
			weight.SetTurnCost(in_edge, 6, out.GetEdgeID(), 2)
		}
	}
	in_edge, out_edge := _FindTurn(base, 2, 7, 12)
	weight.SetTurnRestriction(in_edge, 7, out_edge)

	ch_data := CalcTCContraction(base, weight)
	require.True(t, ch_data.IsEdgeBased())

	// shortcut payloads have to reference base edges, weights cover at
	// least the unpacked edges
	for i := 0; i < ch_data.ShortcutCount(); i++ {
		shc := ch_data.GetShortcut(int32(i))
		entry := ch_data.GetEntryEdge(int32(i))
		exit := ch_data.GetExitEdge(int32(i))
		require.True(t, base.IsEdge(entry))
		require.True(t, base.IsEdge(exit))

		sum := 0.0
		curr := shc.From
		first := int32(-1)
		last := int32(-1)
		ch_data.GetEdgesFromShortcut(int32(i), false, func(edge int32) {
			e := base.GetEdge(edge)
			require.Equal(t, curr, e.NodeA)
			curr = e.NodeB
			sum += weight.GetEdgeWeight(edge)
			if first == -1 {
				first = edge
			}
			last = edge
		})
		require.Equal(t, shc.To, curr)
		require.Equal(t, entry, first)
		require.Equal(t, exit, last)
		require.True(t, shc.Weight >= sum-0.0001)
	}

	// turn-aware hierarchy query against the plain turn-aware dijkstra
	tc_g := graph.BuildTCGraph(base, weight)
	ch_g := graph.BuildCHGraph(base, weight, ch_data)
	for start := 0; start < base.NodeCount(); start++ {
		for end := 0; end < base.NodeCount(); end++ {
			if start == end {
				continue
			}
			ref_alg := routing.NewTCDijkstra(tc_g, int32(start), int32(end))
			ch_alg := routing.NewTCCHDijkstra(ch_g, int32(start), int32(end))
			ref_found := ref_alg.CalcShortestPath()
			ch_found := ch_alg.CalcShortestPath()
			require.Equal(t, ref_found, ch_found)
			if !ref_found {
				continue
			}
			ref_path := ref_alg.GetShortestPath()
			ch_path := ch_alg.GetShortestPath()
			require.InDelta(t, ref_path.Weight(), ch_path.Weight(), 0.0001)
		}
	}
}

func TestCalcLandmarks(t *testing.T) {
	base, weight := _BuildGridBase()
	lm := CalcLandmarks(base, weight, 4, 1000)

	require.Equal(t, 4, lm.LandmarkCount())
	require.Equal(t, 1000.0, lm.MaxWeight())
	seen := NewList[int32](4)
	for i := 0; i < lm.LandmarkCount(); i++ {
		landmark := lm.GetLandmark(int32(i))
		require.False(t, Contains(seen, landmark))
		seen.Add(landmark)
	}

	// the heuristic has to stay a lower bound on the true distance
	for start := 0; start < base.NodeCount(); start++ {
		dists := _CalcDistanceTable(base, weight, int32(start), false, math.Inf(1))
		for end := 0; end < base.NodeCount(); end++ {
			h := lm.GetHeuristic(int32(start), int32(end))
			require.True(t, h >= 0)
			require.True(t, h <= float64(dists[end])+0.0001)
		}
	}
}

func TestCalcDistanceTableBounded(t *testing.T) {
	base, weight := _BuildGridBase()
	full := _CalcDistanceTable(base, weight, 0, false, math.Inf(1))
	bounded := _CalcDistanceTable(base, weight, 0, false, 3)
	for i := 0; i < base.NodeCount(); i++ {
		if float64(full[i]) <= 3 {
			require.Equal(t, full[i], bounded[i])
		} else {
			require.True(t, math.IsInf(float64(bounded[i]), 1))
		}
	}
}

// checks that the path edges connect start to end with the reported
// weight on the plain graph
func _CheckPathWeight(t *testing.T, g graph.IGraph, path routing.Path) {
	explorer := g.GetGraphExplorer()
	sum := 0.0
	for _, ref := range path.GetEdges() {
		sum += explorer.GetEdgeWeight(ref)
	}
	require.InDelta(t, path.Weight(), sum, 0.0001)
}

func _FindTurn(base *comps.GraphBase, from, via, to int32) (int32, int32) {
	in_edge := int32(-1)
	accessor := base.GetAccessor()
	accessor.SetBaseNode(via, false)
	for accessor.Next() {
		if accessor.GetOtherID() == from {
			in_edge = accessor.GetEdgeID()
		}
	}
	out_edge := int32(-1)
	accessor.SetBaseNode(via, true)
	for accessor.Next() {
		if accessor.GetOtherID() == to {
			out_edge = accessor.GetEdgeID()
		}
	}
	return in_edge, out_edge
}
