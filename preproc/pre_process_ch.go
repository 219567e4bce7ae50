package preproc

import (
	"fmt"
	"math"

	"golang.org/x/exp/slog"

	"pathwerk/comps"
	"pathwerk/graph"
	"pathwerk/structs"
	. "pathwerk/util"
)

//*******************************************
// preprocessing graph
//*******************************************

// Mutable working graph of the contraction, base edges plus the
// shortcuts added so far.
type CHPreprocGraph struct {
	ch_topology structs.AdjacencyList
	node_levels Array[int16]
	shortcuts   structs.ShortcutStore

	base      comps.IGraphBase
	weight    comps.IWeighting
	tc_weight comps.ITCWeighting
}

func (self *CHPreprocGraph) GetExplorer() *CHPreprocGraphExplorer {
	return &CHPreprocGraphExplorer{
		graph:       self,
		accessor:    self.base.GetAccessor(),
		sh_accessor: self.ch_topology.GetAccessor(),
	}
}
func (self *CHPreprocGraph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *CHPreprocGraph) EdgeCount() int {
	return self.base.EdgeCount()
}
func (self *CHPreprocGraph) GetNode(node int32) structs.Node {
	return self.base.GetNode(node)
}
func (self *CHPreprocGraph) GetEdge(edge int32) structs.Edge {
	return self.base.GetEdge(edge)
}
func (self *CHPreprocGraph) GetShortcut(id int32) structs.Shortcut {
	return self.shortcuts.GetShortcut(id)
}
func (self *CHPreprocGraph) GetWeight(id int32, is_shortcut bool) float64 {
	if is_shortcut {
		return self.shortcuts.GetShortcut(id).Weight
	}
	return self.weight.GetEdgeWeight(id)
}
func (self *CHPreprocGraph) GetNodeLevel(id int32) int16 {
	return self.node_levels[id]
}
func (self *CHPreprocGraph) SetNodeLevel(id int32, level int16) {
	self.node_levels[id] = level
}

// First base edge behind a child ref.
func (self *CHPreprocGraph) _EntryEdge(child Tuple[int32, byte]) int32 {
	if child.B == 0 {
		return child.A
	}
	shc := self.shortcuts.GetShortcut(child.A)
	return structs.Shortcut_get_payload[int32](&shc, 0)
}

// Last base edge behind a child ref.
func (self *CHPreprocGraph) _ExitEdge(child Tuple[int32, byte]) int32 {
	if child.B == 0 {
		return child.A
	}
	shc := self.shortcuts.GetShortcut(child.A)
	return structs.Shortcut_get_payload[int32](&shc, 4)
}

func (self *CHPreprocGraph) AddShortcut(node_a, node_b int32, edges [2]Tuple[int32, byte]) {
	if node_a == node_b {
		return
	}
	self.AddShortcutWithTurnCost(node_a, node_b, edges, 0)
}

// Adds the shortcut spanning both child refs and returns its id,
// turn_cost is the cost of the transition between them at the bypassed
// node.
//
// Loops are allowed, edge-based hierarchies need them for turn
// restrictions that force a path over the same node twice.
func (self *CHPreprocGraph) AddShortcutWithTurnCost(node_a, node_b int32, edges [2]Tuple[int32, byte], turn_cost float64) int32 {
	weight := turn_cost
	weight += self.GetWeight(edges[0].A, edges[0].B == 2 || edges[0].B == 3)
	weight += self.GetWeight(edges[1].A, edges[1].B == 2 || edges[1].B == 3)
	shc := structs.Shortcut{
		From:   node_a,
		To:     node_b,
		Weight: weight,
	}
	structs.Shortcut_set_payload(&shc, self._EntryEdge(edges[1]), 0)
	structs.Shortcut_set_payload(&shc, self._ExitEdge(edges[0]), 4)
	shc_id := self.shortcuts.AddCHShortcut(shc, edges)

	self.ch_topology.AddEdgeEntries(node_a, node_b, shc_id, 100)
	return shc_id
}

type CHPreprocGraphExplorer struct {
	graph       *CHPreprocGraph
	accessor    structs.IAdjAccessor
	sh_accessor structs.AdjListAccessor
}

func (self *CHPreprocGraphExplorer) ForAdjacentEdges(node int32, direction graph.Direction, callback func(graph.EdgeRef)) {
	self.accessor.SetBaseNode(node, direction == graph.FORWARD)
	self.sh_accessor.SetBaseNode(node, direction == graph.FORWARD)
	for self.accessor.Next() {
		callback(graph.EdgeRef{
			EdgeID:  self.accessor.GetEdgeID(),
			OtherID: self.accessor.GetOtherID(),
			Type:    0,
		})
	}
	for self.sh_accessor.Next() {
		callback(graph.EdgeRef{
			EdgeID:  self.sh_accessor.GetEdgeID(),
			OtherID: self.sh_accessor.GetOtherID(),
			Type:    100,
		})
	}
}
func (self *CHPreprocGraphExplorer) GetEdgeWeight(edge graph.EdgeRef) float64 {
	return self.graph.GetWeight(edge.EdgeID, edge.IsCHShortcut())
}

// First base edge behind a ref.
func (self *CHPreprocGraphExplorer) GetEntryEdge(edge graph.EdgeRef) int32 {
	if !edge.IsCHShortcut() {
		return edge.EdgeID
	}
	shc := self.graph.GetShortcut(edge.EdgeID)
	return structs.Shortcut_get_payload[int32](&shc, 0)
}

// Last base edge behind a ref.
func (self *CHPreprocGraphExplorer) GetExitEdge(edge graph.EdgeRef) int32 {
	if !edge.IsCHShortcut() {
		return edge.EdgeID
	}
	shc := self.graph.GetShortcut(edge.EdgeID)
	return structs.Shortcut_get_payload[int32](&shc, 4)
}

func (self *CHPreprocGraphExplorer) GetTurnCost(from graph.EdgeRef, via int32, to graph.EdgeRef) float64 {
	if self.graph.tc_weight == nil {
		return 0
	}
	return self.graph.tc_weight.GetTurnCost(self.GetExitEdge(from), via, self.GetEntryEdge(to))
}

func (self *CHPreprocGraphExplorer) GetEdgeBetween(from, to int32) (graph.EdgeRef, bool) {
	self.accessor.SetBaseNode(from, true)
	for self.accessor.Next() {
		if self.accessor.GetOtherID() == to {
			return graph.EdgeRef{
				EdgeID:  self.accessor.GetEdgeID(),
				OtherID: to,
				Type:    0,
			}, true
		}
	}
	self.sh_accessor.SetBaseNode(from, true)
	for self.sh_accessor.Next() {
		if self.sh_accessor.GetOtherID() == to {
			return graph.EdgeRef{
				EdgeID:  self.sh_accessor.GetEdgeID(),
				OtherID: to,
				Type:    100,
			}, true
		}
	}
	return graph.EdgeRef{}, false
}

//*******************************************
// transform to/from working graph
//*******************************************

func TransformToCHPreprocGraph(base comps.IGraphBase, weight comps.IWeighting) *CHPreprocGraph {
	tc_weight, _ := weight.(comps.ITCWeighting)
	return &CHPreprocGraph{
		ch_topology: structs.NewAdjacencyList(base.NodeCount()),
		node_levels: NewArray[int16](base.NodeCount()),
		shortcuts:   structs.NewShortcutStore(100, true),
		base:        base,
		weight:      weight,
		tc_weight:   tc_weight,
	}
}

func TransformToCHData(dg *CHPreprocGraph, edge_based bool) *comps.CH {
	return comps.NewCH(dg.shortcuts, *structs.AdjacencyListToArray(&dg.ch_topology), dg.node_levels, edge_based)
}

//*******************************************
// contraction utility
//*******************************************

// Uncontracted in- and out-neighbours reachable over edges or shortcuts.
func _FindNeighbours(explorer *CHPreprocGraphExplorer, id int32, is_contracted Array[bool]) (List[int32], List[int32]) {
	out_neighbours := NewList[int32](4)
	explorer.ForAdjacentEdges(id, graph.FORWARD, func(ref graph.EdgeRef) {
		other_id := ref.OtherID
		if other_id == id || Contains(out_neighbours, other_id) {
			return
		}
		if is_contracted[other_id] {
			return
		}
		out_neighbours.Add(other_id)
	})

	in_neighbours := NewList[int32](4)
	explorer.ForAdjacentEdges(id, graph.BACKWARD, func(ref graph.EdgeRef) {
		other_id := ref.OtherID
		if other_id == id || Contains(in_neighbours, other_id) {
			return
		}
		if is_contracted[other_id] {
			return
		}
		in_neighbours.Add(other_id)
	})

	return in_neighbours, out_neighbours
}

type _FlagSH struct {
	curr_length float64
	curr_hops   int32
	prev_edge   int32
	prev_node   int32
	is_shortcut bool
	visited     bool
	is_target   bool
}

// Hop-limited witness search from start until every target is settled.
//
// Contracted nodes are ignored, results end up in the flags arena.
func _RunLocalSearch(start int32, targets List[int32], explorer *CHPreprocGraphExplorer, heap PriorityQueue[int32, float64], flags Flags[_FlagSH], is_contracted Array[bool], hop_limit int32) {
	for _, target := range targets {
		flags.Get(target).is_target = true
	}
	start_flag := flags.Get(start)
	start_flag.curr_length = 0
	heap.Enqueue(start, 0)

	target_count := targets.Length()
	found_count := 0
	for {
		curr_id, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_flag := flags.Get(curr_id)
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		if curr_flag.is_target {
			found_count += 1
		}
		if found_count >= target_count {
			break
		}
		if curr_flag.curr_hops >= hop_limit {
			continue
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			if is_contracted[other_id] {
				return
			}
			other_flag := flags.Get(other_id)
			new_length := curr_flag.curr_length + explorer.GetEdgeWeight(ref)
			if new_length < other_flag.curr_length {
				other_flag.curr_length = new_length
				other_flag.curr_hops = curr_flag.curr_hops + 1
				other_flag.prev_edge = ref.EdgeID
				other_flag.prev_node = curr_id
				other_flag.is_shortcut = ref.IsShortcut()
				heap.Enqueue(other_id, new_length)
			}
		})
	}
}

// Returns the child refs of the shortcut needed between from and to, or
// false if the witness search ruled it out.
//
// If the hop limit cut the search off before reaching the target the
// shortcut is added regardless, superfluous shortcuts only cost space.
func _GetShortcut(from, to, via int32, explorer *CHPreprocGraphExplorer, flags Flags[_FlagSH]) ([2]Tuple[int32, byte], bool) {
	edges := [2]Tuple[int32, byte]{}

	to_flag := flags.Get(to)
	if !to_flag.visited {
		t_edge, _ := explorer.GetEdgeBetween(via, to)
		if t_edge.IsCHShortcut() {
			edges[0] = MakeTuple(t_edge.EdgeID, byte(2))
		} else {
			edges[0] = MakeTuple(t_edge.EdgeID, byte(0))
		}
		f_edge, _ := explorer.GetEdgeBetween(from, via)
		if f_edge.IsCHShortcut() {
			edges[1] = MakeTuple(f_edge.EdgeID, byte(2))
		} else {
			edges[1] = MakeTuple(f_edge.EdgeID, byte(0))
		}
		return edges, true
	}

	// only needed if the shortest path runs exactly through via
	if to_flag.prev_node != via {
		return edges, false
	}
	via_flag := flags.Get(via)
	if via_flag.prev_node != from {
		return edges, false
	}

	if to_flag.is_shortcut {
		edges[0] = MakeTuple(to_flag.prev_edge, byte(2))
	} else {
		edges[0] = MakeTuple(to_flag.prev_edge, byte(0))
	}
	if via_flag.is_shortcut {
		edges[1] = MakeTuple(via_flag.prev_edge, byte(2))
	} else {
		edges[1] = MakeTuple(via_flag.prev_edge, byte(0))
	}
	return edges, true
}

//*******************************************
// preprocess ch
//*******************************************

// Contracts every node of the graph into a hierarchy.
//
// Nodes are contracted in order of a lazily updated priority of
// 2*edge-difference + contracted-neighbours + shortcut-edge-count,
// witness searches are hop-limited while the remaining graph is sparse.
func CalcContraction(base comps.IGraphBase, weight comps.IWeighting) *comps.CH {
	dg := TransformToCHPreprocGraph(base, weight)
	slog.Info("started contracting graph")

	is_contracted := NewArray[bool](dg.NodeCount())
	node_levels := NewArray[int16](dg.NodeCount())
	contracted_neighbours := NewArray[int](dg.NodeCount())
	shortcut_edgecount := NewList[int8](10)

	node_count := dg.NodeCount()
	edge_count := dg.EdgeCount()
	heap := NewPriorityQueue[int32, float64](10)
	flags := NewFlags[_FlagSH](int32(dg.NodeCount()), _FlagSH{
		curr_length: math.Inf(1),
		prev_edge:   -1,
		prev_node:   -1,
	})
	explorer := dg.GetExplorer()
	hop_limit := int32(5)

	node_priorities := NewArray[int](dg.NodeCount())
	contraction_order := NewPriorityQueue[Tuple[int32, int], int](dg.NodeCount())
	for i := 0; i < dg.NodeCount(); i++ {
		prio := _ComputeNodePriority(int32(i), explorer, heap, flags, is_contracted, node_levels, contracted_neighbours, shortcut_edgecount, hop_limit)
		node_priorities[i] = prio
		contraction_order.Enqueue(MakeTuple(int32(i), prio), prio)
	}

	count := 0
	for {
		temp, ok := contraction_order.Dequeue()
		if !ok {
			break
		}
		node_id := temp.A
		node_prio := temp.B
		if is_contracted[node_id] || node_prio != node_priorities[node_id] {
			continue
		}
		node_count -= 1
		count += 1
		if count%1000 == 0 {
			slog.Debug(fmt.Sprintf("contracted %v / %v nodes", count, dg.NodeCount()))
		}

		level := node_levels[node_id]
		in_neighbours, out_neighbours := _FindNeighbours(explorer, node_id, is_contracted)
		ed := in_neighbours.Length() + out_neighbours.Length()
		for _, from := range in_neighbours {
			heap.Clear()
			flags.Reset()
			_RunLocalSearch(from, out_neighbours, explorer, heap, flags, is_contracted, hop_limit)
			for _, to := range out_neighbours {
				if from == to {
					continue
				}
				edges, shortcut_needed := _GetShortcut(from, to, node_id, explorer, flags)
				if !shortcut_needed {
					continue
				}
				dg.AddShortcut(from, to, edges)
				ed -= 1
				shortcut_edgecount.Add(_ShortcutEdgeCount(edges, shortcut_edgecount))
			}
		}
		edge_count -= ed
		if node_count > 0 && edge_count*2/node_count > 5 {
			hop_limit = 10
		}
		if node_count > 0 && edge_count*2/node_count > 10 {
			hop_limit = 10000000
		}
		is_contracted[node_id] = true

		for _, nb := range in_neighbours {
			node_levels[nb] = Max(level+1, node_levels[nb])
			contracted_neighbours[nb] += 1
			prio := _ComputeNodePriority(nb, explorer, heap, flags, is_contracted, node_levels, contracted_neighbours, shortcut_edgecount, hop_limit)
			node_priorities[nb] = prio
			contraction_order.Enqueue(MakeTuple(nb, prio), prio)
		}
		for _, nb := range out_neighbours {
			node_levels[nb] = Max(level+1, node_levels[nb])
			contracted_neighbours[nb] += 1
			prio := _ComputeNodePriority(nb, explorer, heap, flags, is_contracted, node_levels, contracted_neighbours, shortcut_edgecount, hop_limit)
			node_priorities[nb] = prio
			contraction_order.Enqueue(MakeTuple(nb, prio), prio)
		}
	}
	for i := 0; i < dg.NodeCount(); i++ {
		dg.SetNodeLevel(int32(i), node_levels[i])
	}
	slog.Info("finished contracting graph")

	return TransformToCHData(dg, false)
}

// Number of base edges a new shortcut would stand for, capped at 3.
func _ShortcutEdgeCount(edges [2]Tuple[int32, byte], shortcut_edgecount List[int8]) int8 {
	ec := int8(0)
	if edges[0].B == 0 {
		ec += 1
	} else {
		ec += shortcut_edgecount[edges[0].A]
	}
	if edges[1].B == 0 {
		ec += 1
	} else {
		ec += shortcut_edgecount[edges[1].A]
	}
	if ec > 3 {
		ec = 3
	}
	return ec
}

func _ComputeNodePriority(node int32, explorer *CHPreprocGraphExplorer, heap PriorityQueue[int32, float64], flags Flags[_FlagSH], is_contracted Array[bool], node_levels Array[int16], contracted_neighbours Array[int], shortcut_edgecount List[int8], hop_limit int32) int {
	in_neighbours, out_neighbours := _FindNeighbours(explorer, node, is_contracted)
	edge_diff := -(in_neighbours.Length() + out_neighbours.Length())
	edge_count := int8(0)
	for _, from := range in_neighbours {
		flags.Reset()
		heap.Clear()
		_RunLocalSearch(from, out_neighbours, explorer, heap, flags, is_contracted, hop_limit)
		for _, to := range out_neighbours {
			if from == to {
				continue
			}
			edges, shortcut_needed := _GetShortcut(from, to, node, explorer, flags)
			if !shortcut_needed {
				continue
			}
			edge_diff += 1
			edge_count += _ShortcutEdgeCount(edges, shortcut_edgecount)
		}
	}
	return 2*edge_diff + contracted_neighbours[node] + int(edge_count)
}
