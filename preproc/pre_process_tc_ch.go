package preproc

import (
	"fmt"
	"math"

	"golang.org/x/exp/slog"

	"pathwerk/comps"
	"pathwerk/graph"
	. "pathwerk/util"
)

//*******************************************
// edge-based witness search
//*******************************************

// Witness states are edges and shortcuts, both id ranges overlap so
// labels are keyed by id and kind.
func _StateKey(ref graph.EdgeRef) int64 {
	key := int64(ref.EdgeID) << 1
	if ref.IsCHShortcut() {
		key |= 1
	}
	return key
}

type _TCSearchItem struct {
	ref    graph.EdgeRef
	length float64
	hops   int32
}

type _TCWitness struct {
	exit   int32
	length float64
}

// Worst additional turn cost a predecessor of node pays for entering
// ref instead of base.
//
// Witness paths leave the source over a different first edge than the
// bypassed pair, charging the difference keeps replacing the pair sound
// for every possible predecessor.
func _MaxEntryTurnDiff(explorer *CHPreprocGraphExplorer, ref, base graph.EdgeRef, node int32) float64 {
	tc_weight := explorer.graph.tc_weight
	ref_entry := explorer.GetEntryEdge(ref)
	base_entry := explorer.GetEntryEdge(base)
	max_diff := 0.0
	explorer.ForAdjacentEdges(node, graph.BACKWARD, func(in_ref graph.EdgeRef) {
		exit := explorer.GetExitEdge(in_ref)
		diff := tc_weight.GetTurnCost(exit, node, ref_entry) - tc_weight.GetTurnCost(exit, node, base_entry)
		if !math.IsInf(diff, 0) && !math.IsNaN(diff) && diff > max_diff {
			max_diff = diff
		}
	})
	return max_diff
}

// Worst additional turn cost a successor of node pays after arriving
// over exit instead of base_exit.
func _MaxExitTurnDiff(explorer *CHPreprocGraphExplorer, exit, base_exit int32, node int32) float64 {
	tc_weight := explorer.graph.tc_weight
	max_diff := 0.0
	explorer.ForAdjacentEdges(node, graph.FORWARD, func(out_ref graph.EdgeRef) {
		entry := explorer.GetEntryEdge(out_ref)
		diff := tc_weight.GetTurnCost(exit, node, entry) - tc_weight.GetTurnCost(base_exit, node, entry)
		if !math.IsInf(diff, 0) && !math.IsNaN(diff) && diff > max_diff {
			max_diff = diff
		}
	})
	return max_diff
}

// Turn-cost-aware witness search from start, avoiding the node under
// contraction.
//
// Returns the settled states grouped by head node for the given target
// nodes, each carrying its exit edge for the boundary comparison.
func _RunLocalTCSearch(start, avoid int32, in_ref graph.EdgeRef, targets Dict[int32, bool], explorer *CHPreprocGraphExplorer, is_contracted Array[bool], hop_limit int32, max_weight float64) Dict[int32, List[_TCWitness]] {
	witnesses := NewDict[int32, List[_TCWitness]](4)
	lengths := NewDict[int64, float64](16)
	settled := NewDict[int64, bool](16)
	heap := NewPriorityQueue[_TCSearchItem, float64](16)

	explorer.ForAdjacentEdges(start, graph.FORWARD, func(ref graph.EdgeRef) {
		if ref.OtherID == avoid || is_contracted[ref.OtherID] {
			return
		}
		length := explorer.GetEdgeWeight(ref) + _MaxEntryTurnDiff(explorer, ref, in_ref, start)
		if length > max_weight {
			return
		}
		key := _StateKey(ref)
		if prev, ok := lengths[key]; !ok || length < prev {
			lengths[key] = length
			heap.Enqueue(_TCSearchItem{ref: ref, length: length, hops: 1}, length)
		}
	})

	for {
		item, ok := heap.Dequeue()
		if !ok {
			break
		}
		key := _StateKey(item.ref)
		if settled.ContainsKey(key) {
			continue
		}
		if length, _ := lengths[key]; item.length > length {
			continue
		}
		settled[key] = true
		head := item.ref.OtherID
		if targets.ContainsKey(head) {
			group, _ := witnesses[head]
			group.Add(_TCWitness{exit: explorer.GetExitEdge(item.ref), length: item.length})
			witnesses[head] = group
		}
		if item.hops >= hop_limit {
			continue
		}
		explorer.ForAdjacentEdges(head, graph.FORWARD, func(ref graph.EdgeRef) {
			if ref.OtherID == avoid || is_contracted[ref.OtherID] {
				return
			}
			new_length := item.length + explorer.GetTurnCost(item.ref, head, ref) + explorer.GetEdgeWeight(ref)
			if new_length > max_weight || math.IsInf(new_length, 1) {
				return
			}
			other_key := _StateKey(ref)
			if prev, ok := lengths[other_key]; !ok || new_length < prev {
				lengths[other_key] = new_length
				heap.Enqueue(_TCSearchItem{ref: ref, length: new_length, hops: item.hops + 1}, new_length)
			}
		})
	}

	return witnesses
}

//*******************************************
// edge-based shortcut need
//*******************************************

// Calls the callback for every (in, out) pair through node whose via
// path survives the witness search.
//
// A restricted direct turn does not kill the pair: when a loop at the
// node lets the path re-approach from the other side, the cheapest
// in -> loop -> out detour becomes the via path instead. loop carries
// that detour, EdgeID -1 means the direct turn is taken.
//
// Returns the number of shortcuts needed and the number of incident
// refs, the inputs to the edge-difference.
func _ForEachNeededTCShortcut(node int32, explorer *CHPreprocGraphExplorer, is_contracted Array[bool], hop_limit int32, callback func(e_in, e_out, loop graph.EdgeRef)) (int, int) {
	in_refs := NewList[graph.EdgeRef](4)
	explorer.ForAdjacentEdges(node, graph.BACKWARD, func(ref graph.EdgeRef) {
		if ref.OtherID == node || is_contracted[ref.OtherID] {
			return
		}
		in_refs.Add(ref)
	})
	out_refs := NewList[graph.EdgeRef](4)
	loop_refs := NewList[graph.EdgeRef](2)
	targets := NewDict[int32, bool](4)
	explorer.ForAdjacentEdges(node, graph.FORWARD, func(ref graph.EdgeRef) {
		if ref.OtherID == node {
			loop_refs.Add(ref)
			return
		}
		if is_contracted[ref.OtherID] {
			return
		}
		out_refs.Add(ref)
		targets[ref.OtherID] = true
	})

	needed := 0
	for _, e_in := range in_refs {
		from := e_in.OtherID
		in_weight := explorer.GetEdgeWeight(e_in)

		// via weights bound the witness search
		via_weights := NewArray[float64](out_refs.Length())
		via_loops := NewArray[graph.EdgeRef](out_refs.Length())
		max_via := 0.0
		for i, e_out := range out_refs {
			out_weight := explorer.GetEdgeWeight(e_out)
			best := in_weight + explorer.GetTurnCost(e_in, node, e_out) + out_weight
			best_loop := graph.EdgeRef{EdgeID: -1}
			for _, loop := range loop_refs {
				detour := in_weight + explorer.GetTurnCost(e_in, node, loop) + explorer.GetEdgeWeight(loop) +
					explorer.GetTurnCost(loop, node, e_out) + out_weight
				if detour < best {
					best = detour
					best_loop = loop
				}
			}
			via_weights[i] = best
			via_loops[i] = best_loop
			if !math.IsInf(best, 1) && best > max_via {
				max_via = best
			}
		}

		witnesses := _RunLocalTCSearch(from, node, e_in, targets, explorer, is_contracted, hop_limit, max_via)
		for i, e_out := range out_refs {
			via_weight := via_weights[i]
			if math.IsInf(via_weight, 1) {
				// turn restriction, nothing to bypass
				continue
			}
			to := e_out.OtherID
			out_exit := explorer.GetExitEdge(e_out)
			witnessed := false
			if group, ok := witnesses[to]; ok {
				for _, witness := range group {
					if witness.length+_MaxExitTurnDiff(explorer, witness.exit, out_exit, to) <= via_weight {
						witnessed = true
						break
					}
				}
			}
			if witnessed {
				continue
			}
			needed += 1
			callback(e_in, e_out, via_loops[i])
		}
	}
	return needed, in_refs.Length() + out_refs.Length()
}

//*******************************************
// preprocess edge-based ch
//*******************************************

// Contracts the graph under a turn-cost weighting.
//
// Shortcuts are created per (in, out) edge pair and carry the entry and
// exit edges for turn costs at their endpoints. Pairs leading back to
// the source node become loop shortcuts, they are needed when a turn
// restriction forces a path over the contracted node twice.
func CalcTCContraction(base comps.IGraphBase, weight comps.ITCWeighting) *comps.CH {
	dg := TransformToCHPreprocGraph(base, weight)
	slog.Info("started contracting edge-based graph")

	is_contracted := NewArray[bool](dg.NodeCount())
	node_levels := NewArray[int16](dg.NodeCount())
	contracted_neighbours := NewArray[int](dg.NodeCount())

	explorer := dg.GetExplorer()
	hop_limit := int32(8)

	node_priorities := NewArray[int](dg.NodeCount())
	contraction_order := NewPriorityQueue[Tuple[int32, int], int](dg.NodeCount())
	for i := 0; i < dg.NodeCount(); i++ {
		prio := _ComputeTCNodePriority(int32(i), explorer, is_contracted, contracted_neighbours, hop_limit)
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
		count += 1
		if count%1000 == 0 {
			slog.Debug(fmt.Sprintf("contracted %v / %v nodes", count, dg.NodeCount()))
		}

		level := node_levels[node_id]
		in_neighbours, out_neighbours := _FindNeighbours(explorer, node_id, is_contracted)
		_ForEachNeededTCShortcut(node_id, explorer, is_contracted, hop_limit, func(e_in, e_out, loop graph.EdgeRef) {
			from := e_in.OtherID
			to := e_out.OtherID
			if loop.EdgeID < 0 {
				edges := [2]Tuple[int32, byte]{_ChildRef(e_out), _ChildRef(e_in)}
				dg.AddShortcutWithTurnCost(from, to, edges, explorer.GetTurnCost(e_in, node_id, e_out))
				return
			}
			// the via path runs in -> loop -> out, fold in and loop into
			// a nested shortcut ending at the contracted node first
			mid_edges := [2]Tuple[int32, byte]{_ChildRef(loop), _ChildRef(e_in)}
			mid_id := dg.AddShortcutWithTurnCost(from, node_id, mid_edges, explorer.GetTurnCost(e_in, node_id, loop))
			mid_ref := graph.EdgeRef{EdgeID: mid_id, OtherID: node_id, Type: 100}
			edges := [2]Tuple[int32, byte]{_ChildRef(e_out), MakeTuple(mid_id, byte(2))}
			dg.AddShortcutWithTurnCost(from, to, edges, explorer.GetTurnCost(mid_ref, node_id, e_out))
		})
		is_contracted[node_id] = true

		for _, nb := range in_neighbours {
			node_levels[nb] = Max(level+1, node_levels[nb])
			contracted_neighbours[nb] += 1
			prio := _ComputeTCNodePriority(nb, explorer, is_contracted, contracted_neighbours, hop_limit)
			node_priorities[nb] = prio
			contraction_order.Enqueue(MakeTuple(nb, prio), prio)
		}
		for _, nb := range out_neighbours {
			node_levels[nb] = Max(level+1, node_levels[nb])
			contracted_neighbours[nb] += 1
			prio := _ComputeTCNodePriority(nb, explorer, is_contracted, contracted_neighbours, hop_limit)
			node_priorities[nb] = prio
			contraction_order.Enqueue(MakeTuple(nb, prio), prio)
		}
	}
	for i := 0; i < dg.NodeCount(); i++ {
		dg.SetNodeLevel(int32(i), node_levels[i])
	}
	slog.Info("finished contracting edge-based graph")

	return TransformToCHData(dg, true)
}

func _ComputeTCNodePriority(node int32, explorer *CHPreprocGraphExplorer, is_contracted Array[bool], contracted_neighbours Array[int], hop_limit int32) int {
	needed, incident := _ForEachNeededTCShortcut(node, explorer, is_contracted, hop_limit, func(e_in, e_out, loop graph.EdgeRef) {})
	edge_diff := needed - incident
	return 2*edge_diff + contracted_neighbours[node]
}

// Child ref of an edge or shortcut for the shortcut store.
func _ChildRef(ref graph.EdgeRef) Tuple[int32, byte] {
	if ref.IsCHShortcut() {
		return MakeTuple(ref.EdgeID, byte(2))
	}
	return MakeTuple(ref.EdgeID, byte(0))
}
