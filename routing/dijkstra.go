package routing

import (
	"math"

	"pathwerk/graph"
	. "pathwerk/util"
)

//*******************************************
// dijkstra
//*******************************************

type _FlagSP struct {
	path_length float64
	prev_edge   graph.EdgeRef
	prev_node   int32
	visited     bool
}

type Dijkstra struct {
	g        graph.IGraph
	explorer graph.IGraphExplorer
	heap     PriorityQueue[int32, float64]
	flags    Flags[_FlagSP]
	start    int32
	end      int32
	finished bool
	found    bool
}

func NewDijkstra(g graph.IGraph, start, end int32) *Dijkstra {
	d := &Dijkstra{
		g:        g,
		explorer: g.GetGraphExplorer(),
		heap:     NewPriorityQueue[int32, float64](100),
		flags: NewFlags[_FlagSP](int32(g.NodeCount()), _FlagSP{
			path_length: math.Inf(1),
			prev_edge:   graph.EdgeRef{EdgeID: -1},
			prev_node:   -1,
		}),
		start: start,
		end:   end,
	}
	d.flags.Get(start).path_length = 0
	d.heap.Enqueue(start, 0)
	return d
}

func (self *Dijkstra) CalcShortestPath() bool {
	for self.Steps(math.MaxInt32, nil) {
	}
	return self.found
}

func (self *Dijkstra) Steps(count int, visited func(int32)) bool {
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
				self.heap.Enqueue(other_id, new_length)
			}
		})
	}
	return true
}

func (self *Dijkstra) GetShortestPath() Path {
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
// dijkstra with turn costs
//*******************************************

// Search state of the edge-based traversal, keyed by the edge the state
// arrived over.
type _FlagTC struct {
	path_length float64
	self_edge   graph.EdgeRef
	prev_edge   int32
	head        int32
	visited     bool
}

// Dijkstra over directed edges instead of nodes.
//
// Keying states on the arrival edge makes turn costs between edge
// transitions applicable.
type TCDijkstra struct {
	g          graph.IGraph
	explorer   graph.IGraphExplorer
	heap       PriorityQueue[int32, float64]
	flags      Flags[_FlagTC]
	start      int32
	end        int32
	end_edge   int32
	end_weight float64
	finished   bool
	found      bool
}

func NewTCDijkstra(g graph.IGraph, start, end int32) *TCDijkstra {
	d := &TCDijkstra{
		g:        g,
		explorer: g.GetGraphExplorer(),
		heap:     NewPriorityQueue[int32, float64](100),
		flags: NewFlags[_FlagTC](int32(g.EdgeCount()), _FlagTC{
			path_length: math.Inf(1),
			prev_edge:   -1,
			head:        -1,
		}),
		start:    start,
		end:      end,
		end_edge: -1,
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
			d.heap.Enqueue(ref.EdgeID, weight)
		}
	})
	return d
}

func (self *TCDijkstra) CalcShortestPath() bool {
	for self.Steps(math.MaxInt32, nil) {
	}
	return self.found
}

func (self *TCDijkstra) Steps(count int, visited func(int32)) bool {
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
				self.heap.Enqueue(ref.EdgeID, new_length)
			}
		})
	}
	return true
}

func (self *TCDijkstra) GetShortestPath() Path {
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
