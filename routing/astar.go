package routing

import (
	"math"

	"pathwerk/graph"
	. "pathwerk/util"
)

//*******************************************
// a*
//*******************************************

// A* with a pluggable potential, ordering the queue by path length plus
// the lower bound towards the target.
//
// With the zero potential this degenerates to plain Dijkstra.
type AStar struct {
	g         graph.IGraph
	explorer  graph.IGraphExplorer
	heap      PriorityQueue[int32, float64]
	flags     Flags[_FlagSP]
	potential IPotential
	start     int32
	end       int32
	finished  bool
	found     bool
}

func NewAStar(g graph.IGraph, start, end int32) *AStar {
	return NewAStarWithPotential(g, start, end, ZeroPotential{})
}

func NewAStarWithPotential(g graph.IGraph, start, end int32, potential IPotential) *AStar {
	d := &AStar{
		g:        g,
		explorer: g.GetGraphExplorer(),
		heap:     NewPriorityQueue[int32, float64](100),
		flags: NewFlags[_FlagSP](int32(g.NodeCount()), _FlagSP{
			path_length: math.Inf(1),
			prev_edge:   graph.EdgeRef{EdgeID: -1},
			prev_node:   -1,
		}),
		potential: potential,
		start:     start,
		end:       end,
	}
	d.flags.Get(start).path_length = 0
	d.heap.Enqueue(start, potential.GetPotential(start))
	return d
}

func (self *AStar) CalcShortestPath() bool {
	for self.Steps(math.MaxInt32, nil) {
	}
	return self.found
}

func (self *AStar) Steps(count int, visited func(int32)) bool {
	if self.finished {
		return false
	}
	for i := 0; i < count; i++ {
		curr_id, ok := self.heap.Dequeue()
		if !ok {
			self.finished = true
			return false
		}
		curr_flag := self.flags.Get(curr_id)
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		if visited != nil && curr_flag.prev_edge.EdgeID != -1 {
			visited(curr_flag.prev_edge.EdgeID)
		}
		if curr_id == self.end {
			self.finished = true
			self.found = true
			return false
		}
		self.explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := self.flags.Get(other_id)
			if other_flag.visited {
				return
			}
			new_length := curr_flag.path_length + self.explorer.GetEdgeWeight(ref)
			if new_length < other_flag.path_length {
				other_flag.path_length = new_length
				other_flag.prev_edge = ref
				other_flag.prev_node = curr_id
				self.heap.Enqueue(other_id, new_length+self.potential.GetPotential(other_id))
			}
		})
	}
	return true
}

func (self *AStar) GetShortestPath() Path {
	if !self.found {
		return NewEmptyPath(self.g)
	}
	nodes := NewList[int32](10)
	edges := NewList[graph.EdgeRef](10)
	curr_id := self.end
	for curr_id != self.start {
		flag := self.flags.Get(curr_id)
		nodes.Add(curr_id)
		edges.Add(flag.prev_edge)
		curr_id = flag.prev_node
	}
	nodes.Add(self.start)
	Reverse(nodes)
	Reverse(edges)
	return NewPath(self.g, Array[int32](nodes), Array[graph.EdgeRef](edges), self.flags.Get(self.end).path_length)
}

//*******************************************
// a* with turn costs
//*******************************************

// Edge-based A*, potentials are evaluated at the head node of each edge
// state.
type TCAStar struct {
	g          graph.IGraph
	explorer   graph.IGraphExplorer
	heap       PriorityQueue[int32, float64]
	flags      Flags[_FlagTC]
	potential  IPotential
	start      int32
	end        int32
	end_edge   int32
	end_weight float64
	finished   bool
	found      bool
}

func NewTCAStar(g graph.IGraph, start, end int32) *TCAStar {
	return NewTCAStarWithPotential(g, start, end, ZeroPotential{})
}

func NewTCAStarWithPotential(g graph.IGraph, start, end int32, potential IPotential) *TCAStar {
	d := &TCAStar{
		g:        g,
		explorer: g.GetGraphExplorer(),
		heap:     NewPriorityQueue[int32, float64](100),
		flags: NewFlags[_FlagTC](int32(g.EdgeCount()), _FlagTC{
			path_length: math.Inf(1),
			prev_edge:   -1,
			head:        -1,
		}),
		potential: potential,
		start:     start,
		end:       end,
		end_edge:  -1,
	}
	if start == end {
		d.finished = true
		d.found = true
		d.end_weight = 0
		return d
	}
	d.explorer.ForAdjacentEdges(start, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		flag := d.flags.Get(ref.EdgeID)
		weight := d.explorer.GetEdgeWeight(ref)
		if weight < flag.path_length {
			flag.path_length = weight
			flag.self_edge = ref
			flag.prev_edge = -1
			flag.head = ref.OtherID
			d.heap.Enqueue(ref.EdgeID, weight+potential.GetPotential(ref.OtherID))
		}
	})
	return d
}

func (self *TCAStar) CalcShortestPath() bool {
	for self.Steps(math.MaxInt32, nil) {
	}
	return self.found
}

func (self *TCAStar) Steps(count int, visited func(int32)) bool {
	if self.finished {
		return false
	}
	for i := 0; i < count; i++ {
		curr_id, ok := self.heap.Dequeue()
		if !ok {
			self.finished = true
			return false
		}
		curr_flag := self.flags.Get(curr_id)
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		if visited != nil {
			visited(curr_id)
		}
		if curr_flag.head == self.end {
			self.finished = true
			self.found = true
			self.end_edge = curr_id
			self.end_weight = curr_flag.path_length
			return false
		}
		curr_ref := curr_flag.self_edge
		self.explorer.ForAdjacentEdges(curr_flag.head, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			other_flag := self.flags.Get(ref.EdgeID)
			if other_flag.visited {
				return
			}
			new_length := curr_flag.path_length + self.explorer.GetTurnCost(curr_ref, curr_flag.head, ref) + self.explorer.GetEdgeWeight(ref)
			if new_length < other_flag.path_length {
				other_flag.path_length = new_length
				other_flag.self_edge = ref
				other_flag.prev_edge = curr_id
				other_flag.head = ref.OtherID
				self.heap.Enqueue(ref.EdgeID, new_length+self.potential.GetPotential(ref.OtherID))
			}
		})
	}
	return true
}

func (self *TCAStar) GetShortestPath() Path {
	if !self.found {
		return NewEmptyPath(self.g)
	}
	if self.end_edge == -1 {
		return NewPath(self.g, Array[int32]{self.start}, Array[graph.EdgeRef]{}, 0)
	}
	nodes := NewList[int32](10)
	edges := NewList[graph.EdgeRef](10)
	curr_id := self.end_edge
	for curr_id != -1 {
		flag := self.flags.Get(curr_id)
		nodes.Add(flag.head)
		edges.Add(flag.self_edge)
		curr_id = flag.prev_edge
	}
	nodes.Add(self.start)
	Reverse(nodes)
	Reverse(edges)
	return NewPath(self.g, Array[int32](nodes), Array[graph.EdgeRef](edges), self.end_weight)
}
