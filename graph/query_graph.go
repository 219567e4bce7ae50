package graph

import (
	"sort"

	"pathwerk/comps"
	"pathwerk/geo"
	"pathwerk/structs"
	. "pathwerk/util"
)

//*******************************************
// query overlay
//*******************************************

// Snapped points closer to an edge endpoint than this fraction reuse the
// endpoint instead of creating a virtual node.
const snap_eps = 1e-6

type _VirtualNode struct {
	Loc      geo.Coord
	EdgeID   int32
	Position float32
	TwinID   int32
}

// Piece of a split base edge.
type _VirtualEdge struct {
	NodeA  int32
	NodeB  int32
	Parent int32
	Weight float64
	Time   float64
	Length float32
}

// Per-query overlay holding virtual nodes and edges created from snapped
// points.
//
// Virtual ids continue after the base graph's node and edge ids. Split
// base edges are masked from traversal, their pieces replace them.
type _QueryOverlay struct {
	node_count    int
	edge_count    int
	virtual_nodes List[_VirtualNode]
	virtual_edges List[_VirtualEdge]
	fwd_adjacency Dict[int32, List[int32]]
	bwd_adjacency Dict[int32, List[int32]]
	masked        Dict[int32, bool]
}

func (self *_QueryOverlay) IsVirtualNode(node int32) bool {
	return node >= int32(self.node_count)
}
func (self *_QueryOverlay) IsVirtualEdge(edge int32) bool {
	return edge >= int32(self.edge_count)
}
func (self *_QueryOverlay) GetVirtualNode(node int32) _VirtualNode {
	return self.virtual_nodes[node-int32(self.node_count)]
}
func (self *_QueryOverlay) GetVirtualEdge(edge int32) _VirtualEdge {
	return self.virtual_edges[edge-int32(self.edge_count)]
}

func (self *_QueryOverlay) _AddVirtualEdge(node_a, node_b, parent int32, weight, time float64, length float32) {
	edge_id := int32(self.edge_count + self.virtual_edges.Length())
	self.virtual_edges.Add(_VirtualEdge{
		NodeA:  node_a,
		NodeB:  node_b,
		Parent: parent,
		Weight: weight,
		Time:   time,
		Length: length,
	})
	fwd, _ := self.fwd_adjacency[node_a]
	fwd.Add(edge_id)
	self.fwd_adjacency[node_a] = fwd
	bwd, _ := self.bwd_adjacency[node_b]
	bwd.Add(edge_id)
	self.bwd_adjacency[node_b] = bwd
}

// Reverse edge of a two-way street, -1 if the edge is one-way.
func _FindReverseTwin(g IGraph, explorer IGraphExplorer, edge_id int32) int32 {
	edge := g.GetEdge(edge_id)
	if edge.NodeA == edge.NodeB {
		return -1
	}
	twin_id := int32(-1)
	explorer.ForAdjacentEdges(edge.NodeB, FORWARD, ADJACENT_EDGES, func(ref EdgeRef) {
		if twin_id != -1 || ref.EdgeID == edge_id || ref.OtherID != edge.NodeA {
			return
		}
		other := g.GetEdge(ref.EdgeID)
		if other.NodeA == edge.NodeB && other.NodeB == edge.NodeA {
			twin_id = ref.EdgeID
		}
	})
	return twin_id
}

// Builds the overlay for the given snapped points and maps every snap to
// the node the query has to start or end at.
func _BuildQueryOverlay(g IGraph, snaps []comps.SnapResult) (*_QueryOverlay, Array[int32]) {
	overlay := &_QueryOverlay{
		node_count:    g.NodeCount(),
		edge_count:    g.EdgeCount(),
		virtual_nodes: NewList[_VirtualNode](len(snaps)),
		virtual_edges: NewList[_VirtualEdge](2 * len(snaps)),
		fwd_adjacency: NewDict[int32, List[int32]](len(snaps)),
		bwd_adjacency: NewDict[int32, List[int32]](len(snaps)),
		masked:        NewDict[int32, bool](len(snaps)),
	}
	mapping := NewArray[int32](len(snaps))
	explorer := g.GetGraphExplorer()

	// snaps onto either edge of a two-way street land on the same split,
	// normalize them onto the lower edge id of the pair
	snap_list := NewArray[comps.SnapResult](len(snaps))
	for i, snap := range snaps {
		twin := _FindReverseTwin(g, explorer, snap.EdgeID)
		if twin >= 0 && twin < snap.EdgeID {
			snap.EdgeID = twin
			snap.Position = 1 - snap.Position
		}
		snap_list[i] = snap
	}

	// group interior snaps by their edge, keeping the split order stable
	edge_snaps := NewDict[int32, List[int32]](len(snaps))
	split_edges := NewList[int32](len(snaps))
	for i, snap := range snap_list {
		edge := g.GetEdge(snap.EdgeID)
		if snap.Position <= snap_eps {
			mapping[i] = edge.NodeA
			continue
		}
		if snap.Position >= 1-snap_eps {
			mapping[i] = edge.NodeB
			continue
		}
		mapping[i] = -1
		group, ok := edge_snaps[snap.EdgeID]
		if !ok {
			split_edges.Add(snap.EdgeID)
		}
		group.Add(int32(i))
		edge_snaps[snap.EdgeID] = group
	}

	for _, edge_id := range split_edges {
		group := edge_snaps[edge_id]
		sort.Slice(group, func(a, b int) bool {
			return snap_list[group[a]].Position < snap_list[group[b]].Position
		})

		edge := g.GetEdge(edge_id)
		ref := CreateEdgeRef(edge_id)
		weight := explorer.GetEdgeWeight(ref)
		time := explorer.GetEdgeTime(ref)
		length := edge.Length
		twin_id := _FindReverseTwin(g, explorer, edge_id)

		// chain NodeA -> v1 -> ... -> vk -> NodeB
		chain := NewList[Tuple[int32, float32]](group.Length())
		prev_node := edge.NodeA
		prev_pos := float32(0)
		for _, snap_index := range group {
			snap := snap_list[snap_index]
			if mapping[snap_index] != -1 {
				// duplicate position, reuse the previous virtual node
				continue
			}
			node_id := int32(overlay.node_count + overlay.virtual_nodes.Length())
			overlay.virtual_nodes.Add(_VirtualNode{
				Loc:      snap.Point,
				EdgeID:   edge_id,
				Position: snap.Position,
				TwinID:   twin_id,
			})
			mapping[snap_index] = node_id
			chain.Add(MakeTuple(node_id, snap.Position))
			// map later snaps at the same position to this node
			for _, other_index := range group {
				if mapping[other_index] == -1 && snap_list[other_index].Position-snap.Position <= snap_eps {
					mapping[other_index] = node_id
				}
			}

			factor := float64(snap.Position - prev_pos)
			overlay._AddVirtualEdge(prev_node, node_id, edge_id,
				weight*factor, time*factor, length*float32(factor))
			prev_node = node_id
			prev_pos = snap.Position
		}
		factor := float64(1 - prev_pos)
		overlay._AddVirtualEdge(prev_node, edge.NodeB, edge_id,
			weight*factor, time*factor, length*float32(factor))

		overlay.masked[edge_id] = true

		// split the reverse edge at the same points, travel against the
		// snapped direction stays possible on two-way streets
		if twin_id < 0 {
			continue
		}
		twin := g.GetEdge(twin_id)
		twin_ref := CreateEdgeRef(twin_id)
		t_weight := explorer.GetEdgeWeight(twin_ref)
		t_time := explorer.GetEdgeTime(twin_ref)
		t_length := twin.Length

		prev_node = twin.NodeA
		prev_pos = 0
		for i := chain.Length() - 1; i >= 0; i-- {
			node_id := chain[i].A
			pos := 1 - chain[i].B
			factor := float64(pos - prev_pos)
			overlay._AddVirtualEdge(prev_node, node_id, twin_id,
				t_weight*factor, t_time*factor, t_length*float32(factor))
			prev_node = node_id
			prev_pos = pos
		}
		factor = float64(1 - prev_pos)
		overlay._AddVirtualEdge(prev_node, twin.NodeB, twin_id,
			t_weight*factor, t_time*factor, t_length*float32(factor))

		overlay.masked[twin_id] = true
	}

	return overlay, mapping
}

//*******************************************
// query graph
//*******************************************

var _ IGraph = &QueryGraph{}

// Graph view adding the virtual nodes and edges of a query overlay on
// top of a base graph.
type QueryGraph struct {
	g       IGraph
	overlay *_QueryOverlay
}

func LookupQueryGraph(g IGraph, snaps []comps.SnapResult) (*QueryGraph, Array[int32]) {
	overlay, mapping := _BuildQueryOverlay(g, snaps)
	return &QueryGraph{
		g:       g,
		overlay: overlay,
	}, mapping
}

func (self *QueryGraph) GetGraphExplorer() IGraphExplorer {
	return &QueryGraphExplorer{
		graph:    self.g,
		overlay:  self.overlay,
		explorer: self.g.GetGraphExplorer(),
	}
}
func (self *QueryGraph) GetIndex() comps.IGraphIndex {
	return self.g.GetIndex()
}
func (self *QueryGraph) NodeCount() int {
	return self.overlay.node_count + self.overlay.virtual_nodes.Length()
}
func (self *QueryGraph) EdgeCount() int {
	return self.overlay.edge_count + self.overlay.virtual_edges.Length()
}
func (self *QueryGraph) IsNode(node int32) bool {
	return node >= 0 && node < int32(self.NodeCount())
}
func (self *QueryGraph) GetNode(node int32) structs.Node {
	if self.overlay.IsVirtualNode(node) {
		return structs.Node{Loc: self.overlay.GetVirtualNode(node).Loc}
	}
	return self.g.GetNode(node)
}
func (self *QueryGraph) GetEdge(edge int32) structs.Edge {
	if self.overlay.IsVirtualEdge(edge) {
		v_edge := self.overlay.GetVirtualEdge(edge)
		return structs.Edge{
			NodeA:  v_edge.NodeA,
			NodeB:  v_edge.NodeB,
			Length: v_edge.Length,
		}
	}
	return self.g.GetEdge(edge)
}
func (self *QueryGraph) GetNodeGeom(node int32) geo.Coord {
	return self.GetNode(node).Loc
}

// Returns the split base edge and the position on it for a virtual node,
// false for real nodes.
func (self *QueryGraph) GetVirtualParent(node int32) (int32, float32, bool) {
	if !self.overlay.IsVirtualNode(node) {
		return -1, 0, false
	}
	v_node := self.overlay.GetVirtualNode(node)
	return v_node.EdgeID, v_node.Position, true
}

// Returns the reverse edge split alongside the parent of a virtual node,
// false for real nodes and one-way splits.
func (self *QueryGraph) GetVirtualTwin(node int32) (int32, bool) {
	if !self.overlay.IsVirtualNode(node) {
		return -1, false
	}
	v_node := self.overlay.GetVirtualNode(node)
	if v_node.TwinID < 0 {
		return -1, false
	}
	return v_node.TwinID, true
}

//*******************************************
// query-graph explorer
//*******************************************

type QueryGraphExplorer struct {
	graph    IGraph
	overlay  *_QueryOverlay
	explorer IGraphExplorer
}

func (self *QueryGraphExplorer) ForAdjacentEdges(node int32, direction Direction, typ Adjacency, callback func(EdgeRef)) {
	if self.overlay.IsVirtualNode(node) {
		// virtual nodes only connect to their edge pieces, regardless
		// of the adjacency hint
		self._ForVirtualEdges(node, direction, callback)
		return
	}
	self.explorer.ForAdjacentEdges(node, direction, typ, func(ref EdgeRef) {
		// hierarchy searches keep split edges traversable, they enter
		// virtual nodes only at the search endpoints
		if typ != ADJACENT_UPWARDS && ref.IsEdge() {
			if _, ok := self.overlay.masked[ref.EdgeID]; ok {
				return
			}
		}
		callback(ref)
	})
	if typ != ADJACENT_UPWARDS {
		self._ForVirtualEdges(node, direction, callback)
	}
}

func (self *QueryGraphExplorer) _ForVirtualEdges(node int32, direction Direction, callback func(EdgeRef)) {
	var adjacency Dict[int32, List[int32]]
	if direction == FORWARD {
		adjacency = self.overlay.fwd_adjacency
	} else {
		adjacency = self.overlay.bwd_adjacency
	}
	edges, ok := adjacency[node]
	if !ok {
		return
	}
	for _, edge_id := range edges {
		v_edge := self.overlay.GetVirtualEdge(edge_id)
		other_id := v_edge.NodeB
		if direction == BACKWARD {
			other_id = v_edge.NodeA
		}
		callback(EdgeRef{
			EdgeID:  edge_id,
			OtherID: other_id,
			Type:    50,
		})
	}
}

func (self *QueryGraphExplorer) GetEdgeWeight(edge EdgeRef) float64 {
	if edge.IsVirtual() {
		return self.overlay.GetVirtualEdge(edge.EdgeID).Weight
	}
	return self.explorer.GetEdgeWeight(edge)
}
func (self *QueryGraphExplorer) GetEdgeTime(edge EdgeRef) float64 {
	if edge.IsVirtual() {
		return self.overlay.GetVirtualEdge(edge.EdgeID).Time
	}
	return self.explorer.GetEdgeTime(edge)
}

// Turn costs at real nodes fall through to the parent edges of the
// pieces, turns at virtual nodes are free.
func (self *QueryGraphExplorer) GetTurnCost(from EdgeRef, via int32, to EdgeRef) float64 {
	if self.overlay.IsVirtualNode(via) {
		return 0
	}
	if from.IsVirtual() {
		from = EdgeRef{EdgeID: self.overlay.GetVirtualEdge(from.EdgeID).Parent, OtherID: from.OtherID, Type: 0}
	}
	if to.IsVirtual() {
		to = EdgeRef{EdgeID: self.overlay.GetVirtualEdge(to.EdgeID).Parent, OtherID: to.OtherID, Type: 0}
	}
	return self.explorer.GetTurnCost(from, via, to)
}
func (self *QueryGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	if edge.IsVirtual() {
		e := self.overlay.GetVirtualEdge(edge.EdgeID)
		if node == e.NodeA {
			return e.NodeB
		}
		if node == e.NodeB {
			return e.NodeA
		}
		return -1
	}
	return self.explorer.GetOtherNode(edge, node)
}

//*******************************************
// query graph over a hierarchy
//*******************************************

var _ ICHGraph = &QueryCHGraph{}

// Query overlay over a contraction hierarchy.
//
// Virtual nodes sit below every real node in the hierarchy, upward
// searches leave them immediately and never come back.
type QueryCHGraph struct {
	QueryGraph
	ch ICHGraph
}

func LookupQueryCHGraph(g ICHGraph, snaps []comps.SnapResult) (*QueryCHGraph, Array[int32]) {
	overlay, mapping := _BuildQueryOverlay(g, snaps)
	return &QueryCHGraph{
		QueryGraph: QueryGraph{
			g:       g,
			overlay: overlay,
		},
		ch: g,
	}, mapping
}

func (self *QueryCHGraph) GetNodeLevel(node int32) int16 {
	if self.overlay.IsVirtualNode(node) {
		return -1
	}
	return self.ch.GetNodeLevel(node)
}
func (self *QueryCHGraph) ShortcutCount() int {
	return self.ch.ShortcutCount()
}
func (self *QueryCHGraph) GetShortcut(shortcut int32) structs.Shortcut {
	return self.ch.GetShortcut(shortcut)
}
func (self *QueryCHGraph) GetEdgesFromShortcut(shortcut int32, reversed bool, callback func(int32)) {
	self.ch.GetEdgesFromShortcut(shortcut, reversed, callback)
}
func (self *QueryCHGraph) IsEdgeBased() bool {
	return self.ch.IsEdgeBased()
}
