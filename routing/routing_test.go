package routing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"pathwerk/comps"
	"pathwerk/geo"
	"pathwerk/graph"
	"pathwerk/preproc"
	. "pathwerk/util"
)

//*******************************************
// fixtures
//*******************************************

// chain 0 - 1 - 2 - 3 with a more expensive direct link 0 - 3 and an
// isolated node 4
func _BuildChainGraph() (*comps.GraphBase, List[float64]) {
	builder := comps.NewGraphBuilder()
	builder.AddNode(geo.Coord{9.00, 48.00})
	builder.AddNode(geo.Coord{9.01, 48.00})
	builder.AddNode(geo.Coord{9.02, 48.00})
	builder.AddNode(geo.Coord{9.03, 48.00})
	builder.AddNode(geo.Coord{9.00, 48.05})
	weights := NewList[float64](8)
	link := func(a, b int32, weight float64) {
		builder.AddEdge(a, b, float32(100*weight))
		builder.AddEdge(b, a, float32(100*weight))
		weights.Add(weight)
		weights.Add(weight)
	}
	link(0, 1, 1)
	link(1, 2, 1)
	link(2, 3, 1)
	link(0, 3, 5)
	return builder.Freeze(), weights
}

// 6x6 grid with random weights and a few random chords
func _BuildRandomGraph(rng *rand.Rand) (*comps.GraphBase, List[float64]) {
	rows := 6
	cols := 6
	builder := comps.NewGraphBuilder()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			builder.AddNode(geo.Coord{9.0 + 0.005*float32(c), 48.0 + 0.005*float32(r)})
		}
	}
	weights := NewList[float64](200)
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
				link(node(r, c), node(r, c+1), 1+9*rng.Float64())
			}
			if r+1 < rows {
				link(node(r, c), node(r+1, c), 1+9*rng.Float64())
			}
		}
	}
	for i := 0; i < 8; i++ {
		a := rng.Int31n(int32(rows * cols))
		b := rng.Int31n(int32(rows * cols))
		if a == b {
			continue
		}
		link(a, b, 5+10*rng.Float64())
	}
	return builder.Freeze(), weights
}

func _DefaultWeighting(base *comps.GraphBase, weights List[float64]) *comps.DefaultWeighting {
	weight := comps.NewDefaultWeighting(base)
	for i, w := range weights {
		weight.SetEdgeWeight(int32(i), w)
	}
	return weight
}

func _TCWeighting(base *comps.GraphBase, weights List[float64]) *comps.TCWeighting {
	weight := comps.NewTCWeighting(base)
	for i, w := range weights {
		weight.SetEdgeWeight(int32(i), w)
	}
	return weight
}

// adds random turn costs and a few u-turn restrictions
func _RandomizeTurns(base *comps.GraphBase, weight *comps.TCWeighting, rng *rand.Rand) {
	in_acc := base.GetAccessor()
	out_acc := base.GetAccessor()
	for n := 0; n < base.NodeCount(); n++ {
		in_acc.SetBaseNode(int32(n), false)
		for in_acc.Next() {
			in_edge := in_acc.GetEdgeID()
			in_node := in_acc.GetOtherID()
			out_acc.SetBaseNode(int32(n), true)
			for out_acc.Next() {
				if out_acc.GetOtherID() == in_node && rng.Float64() < 0.5 {
					weight.SetTurnRestriction(in_edge, int32(n), out_acc.GetEdgeID())
					continue
				}
				if rng.Float64() < 0.4 {
					weight.SetTurnCost(in_edge, int32(n), out_acc.GetEdgeID(), 2*rng.Float64())
				}
			}
		}
	}
}

//*******************************************
// algorithm table
//*******************************************

type _AlgBuilder struct {
	name  string
	build func(start, end int32) IShortestPath
}

func _SPBuilders(g graph.IGraph, ch_g graph.ICHGraph, lm *comps.Landmarks) []_AlgBuilder {
	builders := []_AlgBuilder{
		{"dijkstra", func(s, e int32) IShortestPath { return NewDijkstra(g, s, e) }},
		{"astar", func(s, e int32) IShortestPath { return NewAStar(g, s, e) }},
		{"bidirect-dijkstra", func(s, e int32) IShortestPath { return NewBidirectDijkstra(g, s, e) }},
		{"bidirect-astar", func(s, e int32) IShortestPath { return NewBidirectAStar(g, s, e) }},
	}
	if lm != nil {
		builders = append(builders,
			_AlgBuilder{"alm-astar", func(s, e int32) IShortestPath { return NewALMAStar(g, lm, s, e) }},
			_AlgBuilder{"bidirect-alm-astar", func(s, e int32) IShortestPath { return NewBidirectALMAStar(g, lm, s, e) }},
		)
	}
	if ch_g != nil {
		builders = append(builders,
			_AlgBuilder{"ch-dijkstra", func(s, e int32) IShortestPath { return NewCHDijkstra(ch_g, s, e) }},
		)
	}
	return builders
}

func _TCBuilders(g graph.IGraph, ch_g graph.ICHGraph, lm *comps.Landmarks) []_AlgBuilder {
	builders := []_AlgBuilder{
		{"tc-dijkstra", func(s, e int32) IShortestPath { return NewTCDijkstra(g, s, e) }},
		{"tc-astar", func(s, e int32) IShortestPath { return NewTCAStar(g, s, e) }},
		{"tc-bidirect-dijkstra", func(s, e int32) IShortestPath { return NewTCBidirectDijkstra(g, s, e) }},
		{"tc-bidirect-astar", func(s, e int32) IShortestPath { return NewTCBidirectAStar(g, s, e) }},
	}
	if lm != nil {
		builders = append(builders,
			_AlgBuilder{"tc-alm-astar", func(s, e int32) IShortestPath { return NewTCALMAStar(g, lm, s, e) }},
			_AlgBuilder{"tc-bidirect-alm-astar", func(s, e int32) IShortestPath { return NewTCBidirectALMAStar(g, lm, s, e) }},
		)
	}
	if ch_g != nil {
		builders = append(builders,
			_AlgBuilder{"tc-ch-dijkstra", func(s, e int32) IShortestPath { return NewTCCHDijkstra(ch_g, s, e) }},
		)
	}
	return builders
}

// checks that the path is connected, starts and ends at the right nodes
// and carries the weight of its edges and turns
func _CheckPath(t *testing.T, g graph.IGraph, start, end int32, path Path, name string) {
	require.True(t, path.Exists(), name)
	nodes := path.GetNodes()
	edges := path.GetEdges()
	require.Equal(t, start, nodes[0], name)
	require.Equal(t, end, nodes[nodes.Length()-1], name)
	require.Equal(t, nodes.Length()-1, edges.Length(), name)
	explorer := g.GetGraphExplorer()
	sum := 0.0
	for i, ref := range edges {
		require.Equal(t, nodes[i+1], explorer.GetOtherNode(ref, nodes[i]), name)
		sum += explorer.GetEdgeWeight(ref)
		if i > 0 {
			sum += explorer.GetTurnCost(edges[i-1], nodes[i], ref)
		}
	}
	require.InDelta(t, path.Weight(), sum, 0.01, name)
}

// Collapses consecutive duplicate node ids, zero-weight loops do not
// count as a sequence difference.
func _CollapseNodes(nodes Array[int32]) List[int32] {
	collapsed := NewList[int32](nodes.Length())
	for _, node := range nodes {
		if collapsed.Length() > 0 && collapsed[collapsed.Length()-1] == node {
			continue
		}
		collapsed.Add(node)
	}
	return collapsed
}

func _SameNodes(a, b List[int32]) bool {
	if a.Length() != b.Length() {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Equal-weight paths may still differ on ties, sequence, distance and
// time differences beyond the tolerances only count as a mismatch.
func _TolerantMismatch(reference, path Path) bool {
	if !_SameNodes(_CollapseNodes(reference.GetNodes()), _CollapseNodes(path.GetNodes())) {
		return true
	}
	if math.Abs(reference.Distance()-path.Distance()) > 0.1 {
		return true
	}
	if math.Abs(reference.Time()-path.Time()) > 50 {
		return true
	}
	return false
}

//*******************************************
// scenario tests
//*******************************************

func TestShortestPathChain(t *testing.T) {
	base, weights := _BuildChainGraph()
	weight := _DefaultWeighting(base, weights)
	tc_weight := _TCWeighting(base, weights)

	g := graph.BuildGraph(base, weight)
	tc_g := graph.BuildTCGraph(base, tc_weight)
	ch_g := graph.BuildCHGraph(base, weight, preproc.CalcContraction(base, weight))
	tc_ch_g := graph.BuildCHGraph(base, tc_weight, preproc.CalcTCContraction(base, tc_weight))
	lm := preproc.CalcLandmarks(base, weight, 2, 100)

	builders := _SPBuilders(g, ch_g, lm)
	builders = append(builders, _TCBuilders(tc_g, tc_ch_g, lm)...)
	for _, builder := range builders {
		alg := builder.build(0, 3)
		require.True(t, alg.CalcShortestPath(), builder.name)
		path := alg.GetShortestPath()
		require.InDelta(t, 3.0, path.Weight(), 0.01, builder.name)
		require.Equal(t, Array[int32]{0, 1, 2, 3}, path.GetNodes(), builder.name)
	}
}

func TestShortestPathNotFound(t *testing.T) {
	base, weights := _BuildChainGraph()
	weight := _DefaultWeighting(base, weights)
	tc_weight := _TCWeighting(base, weights)

	g := graph.BuildGraph(base, weight)
	tc_g := graph.BuildTCGraph(base, tc_weight)
	ch_g := graph.BuildCHGraph(base, weight, preproc.CalcContraction(base, weight))
	tc_ch_g := graph.BuildCHGraph(base, tc_weight, preproc.CalcTCContraction(base, tc_weight))
	lm := preproc.CalcLandmarks(base, weight, 2, 100)

	builders := _SPBuilders(g, ch_g, lm)
	builders = append(builders, _TCBuilders(tc_g, tc_ch_g, lm)...)
	for _, builder := range builders {
		// node 4 is disconnected
		alg := builder.build(0, 4)
		require.False(t, alg.CalcShortestPath(), builder.name)
		path := alg.GetShortestPath()
		require.False(t, path.Exists(), builder.name)
		require.Equal(t, 0, path.GetNodes().Length(), builder.name)
	}
}

func TestShortestPathSameNode(t *testing.T) {
	base, weights := _BuildChainGraph()
	weight := _DefaultWeighting(base, weights)
	tc_weight := _TCWeighting(base, weights)

	g := graph.BuildGraph(base, weight)
	tc_g := graph.BuildTCGraph(base, tc_weight)
	ch_g := graph.BuildCHGraph(base, weight, preproc.CalcContraction(base, weight))
	tc_ch_g := graph.BuildCHGraph(base, tc_weight, preproc.CalcTCContraction(base, tc_weight))
	lm := preproc.CalcLandmarks(base, weight, 2, 100)

	builders := _SPBuilders(g, ch_g, lm)
	builders = append(builders, _TCBuilders(tc_g, tc_ch_g, lm)...)
	for _, builder := range builders {
		alg := builder.build(2, 2)
		require.True(t, alg.CalcShortestPath(), builder.name)
		path := alg.GetShortestPath()
		require.Equal(t, 0.0, path.Weight(), builder.name)
		require.Equal(t, Array[int32]{2}, path.GetNodes(), builder.name)
	}
}

// two routes from 0 to 2, the cheap one over node 1, the detour over
// node 3
func _BuildTurnGraph() (*comps.GraphBase, *comps.TCWeighting) {
	builder := comps.NewGraphBuilder()
	builder.AddNode(geo.Coord{9.00, 48.00})
	builder.AddNode(geo.Coord{9.01, 48.00})
	builder.AddNode(geo.Coord{9.02, 48.00})
	builder.AddNode(geo.Coord{9.01, 48.01})
	builder.AddEdge(0, 1, 100)
	builder.AddEdge(1, 2, 100)
	builder.AddEdge(0, 3, 200)
	builder.AddEdge(3, 2, 200)
	base := builder.Freeze()
	weight := comps.NewTCWeighting(base)
	weight.SetEdgeWeight(0, 1)
	weight.SetEdgeWeight(1, 1)
	weight.SetEdgeWeight(2, 2)
	weight.SetEdgeWeight(3, 2)
	return base, weight
}

func TestTurnCosts(t *testing.T) {
	base, weight := _BuildTurnGraph()
	weight.SetTurnCost(0, 1, 1, 1.5)

	tc_g := graph.BuildTCGraph(base, weight)
	tc_ch_g := graph.BuildCHGraph(base, weight, preproc.CalcTCContraction(base, weight))
	lm := preproc.CalcLandmarks(base, weight, 2, 100)

	// still cheaper over node 1, the turn cost counts into the weight
	for _, builder := range _TCBuilders(tc_g, tc_ch_g, lm) {
		alg := builder.build(0, 2)
		require.True(t, alg.CalcShortestPath(), builder.name)
		path := alg.GetShortestPath()
		require.InDelta(t, 3.5, path.Weight(), 0.01, builder.name)
		require.Equal(t, Array[int32]{0, 1, 2}, path.GetNodes(), builder.name)
	}
}

func TestTurnRestriction(t *testing.T) {
	base, weight := _BuildTurnGraph()
	weight.SetTurnRestriction(0, 1, 1)

	tc_g := graph.BuildTCGraph(base, weight)
	tc_ch_g := graph.BuildCHGraph(base, weight, preproc.CalcTCContraction(base, weight))
	lm := preproc.CalcLandmarks(base, weight, 2, 100)

	// the turn-blind search keeps using the restricted turn
	g := graph.BuildGraph(base, weight)
	alg := NewDijkstra(g, 0, 2)
	require.True(t, alg.CalcShortestPath())
	require.InDelta(t, 2.0, alg.GetShortestPath().Weight(), 0.01)

	// turn-aware searches have to take the detour
	for _, builder := range _TCBuilders(tc_g, tc_ch_g, lm) {
		alg := builder.build(0, 2)
		require.True(t, alg.CalcShortestPath(), builder.name)
		path := alg.GetShortestPath()
		require.InDelta(t, 4.0, path.Weight(), 0.01, builder.name)
		require.Equal(t, Array[int32]{0, 3, 2}, path.GetNodes(), builder.name)
	}
}

// the only way from 0 to 2 doubles back over node 3, re-entering node 1
// from the other side
func _BuildUTurnGraph() (*comps.GraphBase, *comps.TCWeighting) {
	builder := comps.NewGraphBuilder()
	builder.AddNode(geo.Coord{9.00, 48.00})
	builder.AddNode(geo.Coord{9.01, 48.00})
	builder.AddNode(geo.Coord{9.02, 48.00})
	builder.AddNode(geo.Coord{9.01, 48.01})
	builder.AddEdge(0, 1, 100)
	builder.AddEdge(1, 2, 100)
	builder.AddEdge(1, 3, 100)
	builder.AddEdge(3, 1, 100)
	base := builder.Freeze()
	weight := comps.NewTCWeighting(base)
	for i := 0; i < base.EdgeCount(); i++ {
		weight.SetEdgeWeight(int32(i), 1)
	}
	weight.SetTurnRestriction(0, 1, 1)
	return base, weight
}

func TestTurnRestrictionUTurnDetour(t *testing.T) {
	base, weight := _BuildUTurnGraph()

	tc_g := graph.BuildTCGraph(base, weight)
	tc_ch_g := graph.BuildCHGraph(base, weight, preproc.CalcTCContraction(base, weight))
	lm := preproc.CalcLandmarks(base, weight, 2, 100)

	// the hierarchy needs a loop shortcut at node 1 to keep the detour
	for _, builder := range _TCBuilders(tc_g, tc_ch_g, lm) {
		alg := builder.build(0, 2)
		require.True(t, alg.CalcShortestPath(), builder.name)
		path := alg.GetShortestPath()
		require.InDelta(t, 4.0, path.Weight(), 0.01, builder.name)
		require.Equal(t, Array[int32]{0, 1, 3, 1, 2}, path.GetNodes(), builder.name)
	}
}

//*******************************************
// randomized equivalence
//*******************************************

func TestRandomGraph(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base, weights := _BuildRandomGraph(rng)
	weight := _DefaultWeighting(base, weights)

	g := graph.BuildGraph(base, weight)
	ch_g := graph.BuildCHGraph(base, weight, preproc.CalcContraction(base, weight))
	lm := preproc.CalcLandmarks(base, weight, 4, 10000)

	builders := _SPBuilders(g, ch_g, lm)
	checks := 0
	mismatches := 0
	for i := 0; i < 40; i++ {
		start := rng.Int31n(int32(base.NodeCount()))
		end := rng.Int31n(int32(base.NodeCount()))
		if start == end {
			continue
		}
		reference := NewDijkstra(g, start, end)
		require.True(t, reference.CalcShortestPath())
		ref_path := reference.GetShortestPath()

		for _, builder := range builders {
			alg := builder.build(start, end)
			require.True(t, alg.CalcShortestPath(), builder.name)
			path := alg.GetShortestPath()
			require.InDelta(t, ref_path.Weight(), path.Weight(), 0.01, builder.name)
			_CheckPath(t, g, start, end, path, builder.name)
			checks += 1
			if _TolerantMismatch(ref_path, path) {
				mismatches += 1
			}
		}
	}
	require.LessOrEqual(t, mismatches, checks/20+1)
}

func TestRandomGraphTurnCosts(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	base, weights := _BuildRandomGraph(rng)
	weight := _TCWeighting(base, weights)
	_RandomizeTurns(base, weight, rng)

	tc_g := graph.BuildTCGraph(base, weight)
	tc_ch_g := graph.BuildCHGraph(base, weight, preproc.CalcTCContraction(base, weight))
	lm := preproc.CalcLandmarks(base, weight, 4, 10000)

	builders := _TCBuilders(tc_g, tc_ch_g, lm)
	checks := 0
	mismatches := 0
	for i := 0; i < 40; i++ {
		start := rng.Int31n(int32(base.NodeCount()))
		end := rng.Int31n(int32(base.NodeCount()))
		if start == end {
			continue
		}
		reference := NewTCDijkstra(tc_g, start, end)
		ref_found := reference.CalcShortestPath()
		ref_path := reference.GetShortestPath()

		for _, builder := range builders {
			alg := builder.build(start, end)
			require.Equal(t, ref_found, alg.CalcShortestPath(), builder.name)
			if !ref_found {
				continue
			}
			path := alg.GetShortestPath()
			require.InDelta(t, ref_path.Weight(), path.Weight(), 0.01, builder.name)
			_CheckPath(t, tc_g, start, end, path, builder.name)
			checks += 1
			if _TolerantMismatch(ref_path, path) {
				mismatches += 1
			}
		}
	}
	require.LessOrEqual(t, mismatches, checks/20+1)
}

func TestAStarBeelinePotential(t *testing.T) {
	rng := rand.New(rand.NewSource(46))
	rows := 5
	cols := 5
	builder := comps.NewGraphBuilder()
	coords := NewList[geo.Coord](rows * cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			coord := geo.Coord{9.0 + 0.005*float32(c), 48.0 + 0.005*float32(r)}
			builder.AddNode(coord)
			coords.Add(coord)
		}
	}
	// lengths are the straight-line distances, weights add a random
	// slowdown on top
	weights := NewList[float64](100)
	link := func(a, b int32) {
		length := geo.HaversineDistance(coords[a], coords[b])
		builder.AddEdge(a, b, float32(length))
		builder.AddEdge(b, a, float32(length))
		w := length * (1 + 4*rng.Float64())
		weights.Add(w)
		weights.Add(w)
	}
	node := func(r, c int) int32 {
		return int32(r*cols + c)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				link(node(r, c), node(r, c+1))
			}
			if r+1 < rows {
				link(node(r, c), node(r+1, c))
			}
		}
	}
	base := builder.Freeze()
	weight := _DefaultWeighting(base, weights)
	g := graph.BuildGraph(base, weight)

	// the smallest weight per meter keeps the beeline a lower bound
	factor := math.Inf(1)
	for i := 0; i < base.EdgeCount(); i++ {
		f := weight.GetEdgeWeight(int32(i)) / float64(base.GetEdge(int32(i)).Length)
		if f < factor {
			factor = f
		}
	}

	for i := 0; i < 20; i++ {
		start := rng.Int31n(int32(base.NodeCount()))
		end := rng.Int31n(int32(base.NodeCount()))
		if start == end {
			continue
		}
		reference := NewDijkstra(g, start, end)
		require.True(t, reference.CalcShortestPath())
		alg := NewAStarWithPotential(g, start, end, NewBeelinePotential(g, end, factor))
		require.True(t, alg.CalcShortestPath())
		require.InDelta(t, reference.GetShortestPath().Weight(), alg.GetShortestPath().Weight(), 0.01)
	}
}

//*******************************************
// query graph
//*******************************************

func TestQueryGraphMapping(t *testing.T) {
	base, weights := _BuildChainGraph()
	weight := _DefaultWeighting(base, weights)
	g := graph.BuildGraph(base, weight)

	edge := base.GetEdge(0)
	snaps := []comps.SnapResult{
		{EdgeID: 0, Position: 0},
		{EdgeID: 0, Position: 1},
		{EdgeID: 0, Position: 0.5},
		{EdgeID: 0, Position: 0.5},
		{EdgeID: 1, Position: 0.5},
	}
	qg, mapping := graph.LookupQueryGraph(g, snaps)

	// endpoint snaps reuse the real nodes, interior snaps share one
	// virtual node per position; the reverse edge of the two-way street
	// is split onto the same virtual node
	require.Equal(t, edge.NodeA, mapping[0])
	require.Equal(t, edge.NodeB, mapping[1])
	require.Equal(t, int32(base.NodeCount()), mapping[2])
	require.Equal(t, mapping[2], mapping[3])
	require.Equal(t, mapping[2], mapping[4])
	require.Equal(t, base.NodeCount()+1, qg.NodeCount())
	require.Equal(t, base.EdgeCount()+4, qg.EdgeCount())

	edge_id, position, ok := qg.GetVirtualParent(mapping[2])
	require.True(t, ok)
	require.Equal(t, int32(0), edge_id)
	require.InDelta(t, 0.5, float64(position), 0.0001)
	_, _, ok = qg.GetVirtualParent(edge.NodeA)
	require.False(t, ok)

	// the pieces split the parent weight
	alg := NewDijkstra(qg, edge.NodeA, mapping[2])
	require.True(t, alg.CalcShortestPath())
	require.InDelta(t, 0.5, alg.GetShortestPath().Weight(), 0.01)

	// leaving the virtual node works in both directions of the street
	alg = NewDijkstra(qg, mapping[2], edge.NodeB)
	require.True(t, alg.CalcShortestPath())
	require.InDelta(t, 0.5, alg.GetShortestPath().Weight(), 0.01)
	alg = NewDijkstra(qg, mapping[2], edge.NodeA)
	require.True(t, alg.CalcShortestPath())
	path := alg.GetShortestPath()
	require.InDelta(t, 0.5, path.Weight(), 0.01)
	require.Equal(t, Array[int32]{mapping[2], edge.NodeA}, path.GetNodes())
}

func TestQueryGraphRouting(t *testing.T) {
	rng := rand.New(rand.NewSource(44))
	base, weights := _BuildRandomGraph(rng)
	weight := _DefaultWeighting(base, weights)

	g := graph.BuildGraph(base, weight)
	ch_g := graph.BuildCHGraph(base, weight, preproc.CalcContraction(base, weight))
	lm := preproc.CalcLandmarks(base, weight, 4, 10000)

	snaps := []comps.SnapResult{
		{EdgeID: 3, Position: 0.25},
		{EdgeID: 100, Position: 0.6},
	}
	qg, mapping := graph.LookupQueryGraph(g, snaps)
	qch, ch_mapping := graph.LookupQueryCHGraph(ch_g, snaps)
	require.Equal(t, mapping, ch_mapping)

	builders := _SPBuilders(qg, qch, lm)
	pairs := [][2]int32{
		{mapping[0], mapping[1]},
		{mapping[1], mapping[0]},
		{mapping[0], 14},
		{14, mapping[1]},
	}
	for _, pair := range pairs {
		reference := NewDijkstra(qg, pair[0], pair[1])
		require.True(t, reference.CalcShortestPath())
		ref_weight := reference.GetShortestPath().Weight()
		require.True(t, ref_weight > 0)

		for _, builder := range builders {
			alg := builder.build(pair[0], pair[1])
			require.True(t, alg.CalcShortestPath(), builder.name)
			path := alg.GetShortestPath()
			require.InDelta(t, ref_weight, path.Weight(), 0.01, builder.name)
			_CheckPath(t, qg, pair[0], pair[1], path, builder.name)
		}
	}
}

func TestQueryGraphTurnCosts(t *testing.T) {
	rng := rand.New(rand.NewSource(45))
	base, weights := _BuildRandomGraph(rng)
	weight := _TCWeighting(base, weights)
	_RandomizeTurns(base, weight, rng)

	tc_g := graph.BuildTCGraph(base, weight)
	tc_ch_g := graph.BuildCHGraph(base, weight, preproc.CalcTCContraction(base, weight))
	lm := preproc.CalcLandmarks(base, weight, 4, 10000)

	snaps := []comps.SnapResult{
		{EdgeID: 5, Position: 0.4},
		{EdgeID: 90, Position: 0.7},
	}
	qg, mapping := graph.LookupQueryGraph(tc_g, snaps)
	qch, ch_mapping := graph.LookupQueryCHGraph(tc_ch_g, snaps)
	require.Equal(t, mapping, ch_mapping)

	builders := _TCBuilders(qg, qch, lm)
	pairs := [][2]int32{
		{mapping[0], mapping[1]},
		{mapping[1], mapping[0]},
	}
	for _, pair := range pairs {
		reference := NewTCDijkstra(qg, pair[0], pair[1])
		ref_found := reference.CalcShortestPath()
		ref_weight := reference.GetShortestPath().Weight()

		for _, builder := range builders {
			alg := builder.build(pair[0], pair[1])
			require.Equal(t, ref_found, alg.CalcShortestPath(), builder.name)
			if !ref_found {
				continue
			}
			path := alg.GetShortestPath()
			require.InDelta(t, ref_weight, path.Weight(), 0.01, builder.name)
			_CheckPath(t, qg, pair[0], pair[1], path, builder.name)
		}
	}
}

//*******************************************
// stepping
//*******************************************

func TestSteps(t *testing.T) {
	base, weights := _BuildChainGraph()
	weight := _DefaultWeighting(base, weights)
	g := graph.BuildGraph(base, weight)

	alg := NewDijkstra(g, 0, 3)
	visited := NewList[int32](4)
	for alg.Steps(1, func(edge int32) {
		visited.Add(edge)
	}) {
	}
	require.True(t, visited.Length() > 0)
	path := alg.GetShortestPath()
	require.True(t, path.Exists())
	require.InDelta(t, 3.0, path.Weight(), 0.01)
}
