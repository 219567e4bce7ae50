package algorithm

import (
	"pathwerk/graph"
	. "pathwerk/util"
)

//*******************************************
// bounded one-to-many dijkstra
//*******************************************

type DistFlag struct {
	Dist float64
}

type _PQItem struct {
	item int32
	dist float64
}

// Settles every node reachable within max_range from the start nodes and
// writes the distances into node_flags.
//
// starts carries (node, initial distance) pairs, flags have to be reset
// by the caller.
func CalcRangeDijkstra(g graph.IGraph, starts Array[Tuple[int32, float64]], node_flags Flags[DistFlag], max_range float64) {
	heap := NewPriorityQueue[_PQItem, float64](100)
	explorer := g.GetGraphExplorer()

	for _, item := range starts {
		start := item.A
		dist := item.B
		start_flag := node_flags.Get(start)
		if dist < start_flag.Dist {
			start_flag.Dist = dist
			heap.Enqueue(_PQItem{start, dist}, dist)
		}
	}

	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_flag := node_flags.Get(curr_id)
		if curr_flag.Dist < curr_item.dist {
			continue
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := node_flags.Get(other_id)
			new_length := curr_flag.Dist + explorer.GetEdgeWeight(ref)
			if new_length > max_range {
				return
			}
			if other_flag.Dist > new_length {
				other_flag.Dist = new_length
				heap.Enqueue(_PQItem{other_id, new_length}, new_length)
			}
		})
	}
}

// Turn-aware variant searching over edge states.
//
// node_flags receive the smallest distance of any ingoing edge, edge_flags
// hold the per-edge search state.
func CalcRangeDijkstraTC(g graph.IGraph, starts Array[Tuple[int32, float64]], node_flags Flags[DistFlag], edge_flags Flags[DistFlag], max_range float64) {
	heap := NewPriorityQueue[_PQItem, float64](100)
	explorer := g.GetGraphExplorer()

	for _, item := range starts {
		start := item.A
		dist := item.B
		start_flag := node_flags.Get(start)
		if dist < start_flag.Dist {
			start_flag.Dist = dist
		}

		explorer.ForAdjacentEdges(start, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			edge_dist := dist + explorer.GetEdgeWeight(ref)
			if edge_dist > max_range {
				return
			}
			edge_flag := edge_flags.Get(ref.EdgeID)
			if edge_dist < edge_flag.Dist {
				edge_flag.Dist = edge_dist
				heap.Enqueue(_PQItem{ref.EdgeID, edge_dist}, edge_dist)
			}
			node_flag := node_flags.Get(ref.OtherID)
			if edge_dist < node_flag.Dist {
				node_flag.Dist = edge_dist
			}
		})
	}

	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_flag := edge_flags.Get(curr_id)
		if curr_flag.Dist < curr_item.dist {
			continue
		}
		curr_edge := g.GetEdge(curr_id)
		curr_ref := graph.EdgeRef{EdgeID: curr_id, OtherID: curr_edge.NodeB, Type: 0}
		explorer.ForAdjacentEdges(curr_edge.NodeB, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			new_length := curr_flag.Dist + explorer.GetEdgeWeight(ref) + explorer.GetTurnCost(curr_ref, curr_edge.NodeB, ref)
			if new_length > max_range {
				return
			}
			other_flag := edge_flags.Get(ref.EdgeID)
			if other_flag.Dist > new_length {
				other_flag.Dist = new_length
				heap.Enqueue(_PQItem{ref.EdgeID, new_length}, new_length)
				node_flag := node_flags.Get(ref.OtherID)
				if new_length < node_flag.Dist {
					node_flag.Dist = new_length
				}
			}
		})
	}
}
