package routing

import (
	"math"

	"pathwerk/graph"
	. "pathwerk/util"
)

//*******************************************
// bidirectional a*
//*******************************************

// Bidirectional a* with averaged potentials.
//
// The forward potential estimates the remaining weight towards the end,
// the backward one towards the start. Averaging the pair makes the two
// directions sum to zero at every node, which keeps the summed frontier
// termination of the bidirectional dijkstra valid.
type BidirectAStar struct {
	g           graph.IGraph
	explorer    graph.IGraphExplorer
	fwd_heap    PriorityQueue[int32, float64]
	bwd_heap    PriorityQueue[int32, float64]
	fwd_flags   Flags[_FlagSP]
	bwd_flags   Flags[_FlagSP]
	fwd_pot     IPotential
	bwd_pot     IPotential
	start       int32
	end         int32
	best_weight float64
	meet_node   int32
	finished    bool
	found       bool
}

func NewBidirectAStar(g graph.IGraph, start, end int32) *BidirectAStar {
	return NewBidirectAStarWithPotential(g, start, end, ZeroPotential{}, ZeroPotential{})
}

func NewBidirectAStarWithPotential(g graph.IGraph, start, end int32, fwd_potential, bwd_potential IPotential) *BidirectAStar {
	d := &BidirectAStar{
		g:        g,
		explorer: g.GetGraphExplorer(),
		fwd_heap: NewPriorityQueue[int32, float64](100),
		bwd_heap: NewPriorityQueue[int32, float64](100),
		fwd_flags: NewFlags[_FlagSP](int32(g.NodeCount()), _FlagSP{
			path_length: math.Inf(1),
			prev_edge:   graph.EdgeRef{EdgeID: -1},
			prev_node:   -1,
		}),
		bwd_flags: NewFlags[_FlagSP](int32(g.NodeCount()), _FlagSP{
			path_length: math.Inf(1),
			prev_edge:   graph.EdgeRef{EdgeID: -1},
			prev_node:   -1,
		}),
		fwd_pot:     fwd_potential,
		bwd_pot:     bwd_potential,
		start:       start,
		end:         end,
		best_weight: math.Inf(1),
		meet_node:   -1,
	}
	d.fwd_flags.Get(start).path_length = 0
	d.bwd_flags.Get(end).path_length = 0
	d.fwd_heap.Enqueue(start, d._PotForward(start))
	d.bwd_heap.Enqueue(end, d._PotBackward(end))
	return d
}

func (self *BidirectAStar) _PotForward(node int32) float64 {
	return (self.fwd_pot.GetPotential(node) - self.bwd_pot.GetPotential(node)) / 2
}

func (self *BidirectAStar) _PotBackward(node int32) float64 {
	return -self._PotForward(node)
}

func (self *BidirectAStar) CalcShortestPath() bool {
	for self.Steps(math.MaxInt32, nil) {
	}
	return self.found
}

func (self *BidirectAStar) Steps(count int, visited func(int32)) bool {
	if self.finished {
		return false
	}
	for i := 0; i < count; i++ {
		fwd_top, fwd_ok := self.fwd_heap.PeekPriority()
		bwd_top, bwd_ok := self.bwd_heap.PeekPriority()
		if !fwd_ok {
			fwd_top = math.Inf(1)
		}
		if !bwd_ok {
			bwd_top = math.Inf(1)
		}
		if fwd_top+bwd_top >= self.best_weight {
			self.finished = true
			self.found = self.meet_node != -1
			return false
		}
		if fwd_top <= bwd_top {
			self._StepForward(visited)
		} else {
			self._StepBackward(visited)
		}
	}
	return true
}

func (self *BidirectAStar) _StepForward(visited func(int32)) {
	curr_id, ok := self.fwd_heap.Dequeue()
	if !ok {
		return
	}
	curr_flag := self.fwd_flags.Get(curr_id)
	if curr_flag.visited {
		return
	}
	curr_flag.visited = true
	if visited != nil && curr_flag.prev_edge.EdgeID != -1 {
		visited(curr_flag.prev_edge.EdgeID)
	}
	self._CheckMeeting(curr_id)
	self.explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		other_flag := self.fwd_flags.Get(ref.OtherID)
		if other_flag.visited {
			return
		}
		new_length := curr_flag.path_length + self.explorer.GetEdgeWeight(ref)
		if new_length < other_flag.path_length {
			other_flag.path_length = new_length
			other_flag.prev_edge = ref
			other_flag.prev_node = curr_id
			self.fwd_heap.Enqueue(ref.OtherID, new_length+self._PotForward(ref.OtherID))
			self._CheckMeeting(ref.OtherID)
		}
	})
}

func (self *BidirectAStar) _StepBackward(visited func(int32)) {
	curr_id, ok := self.bwd_heap.Dequeue()
	if !ok {
		return
	}
	curr_flag := self.bwd_flags.Get(curr_id)
	if curr_flag.visited {
		return
	}
	curr_flag.visited = true
	if visited != nil && curr_flag.prev_edge.EdgeID != -1 {
		visited(curr_flag.prev_edge.EdgeID)
	}
	self._CheckMeeting(curr_id)
	self.explorer.ForAdjacentEdges(curr_id, graph.BACKWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		other_flag := self.bwd_flags.Get(ref.OtherID)
		if other_flag.visited {
			return
		}
		new_length := curr_flag.path_length + self.explorer.GetEdgeWeight(ref)
		if new_length < other_flag.path_length {
			other_flag.path_length = new_length
			other_flag.prev_edge = ref
			other_flag.prev_node = curr_id
			self.bwd_heap.Enqueue(ref.OtherID, new_length+self._PotBackward(ref.OtherID))
			self._CheckMeeting(ref.OtherID)
		}
	})
}

func (self *BidirectAStar) _CheckMeeting(node int32) {
	weight := self.fwd_flags.Get(node).path_length + self.bwd_flags.Get(node).path_length
	if weight < self.best_weight {
		self.best_weight = weight
		self.meet_node = node
	}
}

func (self *BidirectAStar) GetShortestPath() Path {
	if !self.found {
		return NewEmptyPath(self.g)
	}
	nodes := NewList[int32](10)
	edges := NewList[graph.EdgeRef](10)
	curr_id := self.meet_node
	for curr_id != self.start {
		flag := self.fwd_flags.Get(curr_id)
		nodes.Add(curr_id)
		edges.Add(flag.prev_edge)
		curr_id = flag.prev_node
	}
	nodes.Add(self.start)
	Reverse(nodes)
	Reverse(edges)
	curr_id = self.meet_node
	for curr_id != self.end {
		flag := self.bwd_flags.Get(curr_id)
		edges.Add(flag.prev_edge)
		curr_id = flag.prev_node
		nodes.Add(curr_id)
	}
	return NewPath(self.g, Array[int32](nodes), Array[graph.EdgeRef](edges), self.best_weight)
}

//*******************************************
// bidirectional a* with turn costs
//*******************************************

// Edge-based bidirectional a*.
//
// The meeting discount of the edge-based traversal breaks the summed
// frontier bound, so each front runs until its own minimum key reaches
// the best weight shifted by the constant potential at its goal.
type TCBidirectAStar struct {
	g           graph.IGraph
	explorer    graph.IGraphExplorer
	fwd_heap    PriorityQueue[int32, float64]
	bwd_heap    PriorityQueue[int32, float64]
	fwd_flags   Flags[_FlagTC]
	bwd_flags   Flags[_FlagTCB]
	fwd_pot     IPotential
	bwd_pot     IPotential
	fwd_stop    float64
	bwd_stop    float64
	start       int32
	end         int32
	best_weight float64
	meet_edge   int32
	finished    bool
	found       bool
}

func NewTCBidirectAStar(g graph.IGraph, start, end int32) *TCBidirectAStar {
	return NewTCBidirectAStarWithPotential(g, start, end, ZeroPotential{}, ZeroPotential{})
}

func NewTCBidirectAStarWithPotential(g graph.IGraph, start, end int32, fwd_potential, bwd_potential IPotential) *TCBidirectAStar {
	d := &TCBidirectAStar{
		g:        g,
		explorer: g.GetGraphExplorer(),
		fwd_heap: NewPriorityQueue[int32, float64](100),
		bwd_heap: NewPriorityQueue[int32, float64](100),
		fwd_flags: NewFlags[_FlagTC](int32(g.EdgeCount()), _FlagTC{
			path_length: math.Inf(1),
			prev_edge:   -1,
			head:        -1,
		}),
		bwd_flags: NewFlags[_FlagTCB](int32(g.EdgeCount()), _FlagTCB{
			path_length: math.Inf(1),
			next_edge:   -1,
			tail:        -1,
		}),
		fwd_pot:     fwd_potential,
		bwd_pot:     bwd_potential,
		start:       start,
		end:         end,
		best_weight: math.Inf(1),
		meet_edge:   -1,
	}
	d.fwd_stop = d._PotForward(end)
	d.bwd_stop = d._PotBackward(start)
	if start == end {
		d.finished = true
		d.found = true
		d.best_weight = 0
		return d
	}
	d.explorer.ForAdjacentEdges(start, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		flag := d.fwd_flags.Get(ref.EdgeID)
		weight := d.explorer.GetEdgeWeight(ref)
		if weight < flag.path_length {
			flag.path_length = weight
			flag.self_edge = ref
			flag.prev_edge = -1
			flag.head = ref.OtherID
			d.fwd_heap.Enqueue(ref.EdgeID, weight+d._PotForward(ref.OtherID))
			d._CheckMeeting(ref.EdgeID, weight)
		}
	})
	d.explorer.ForAdjacentEdges(end, graph.BACKWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		flag := d.bwd_flags.Get(ref.EdgeID)
		weight := d.explorer.GetEdgeWeight(ref)
		if weight < flag.path_length {
			flag.path_length = weight
			flag.self_edge = ref
			flag.next_edge = -1
			flag.tail = ref.OtherID
			d.bwd_heap.Enqueue(ref.EdgeID, weight+d._PotBackward(ref.OtherID))
			d._CheckMeeting(ref.EdgeID, weight)
		}
	})
	return d
}

func (self *TCBidirectAStar) _PotForward(node int32) float64 {
	return (self.fwd_pot.GetPotential(node) - self.bwd_pot.GetPotential(node)) / 2
}

func (self *TCBidirectAStar) _PotBackward(node int32) float64 {
	return -self._PotForward(node)
}

func (self *TCBidirectAStar) CalcShortestPath() bool {
	for self.Steps(math.MaxInt32, nil) {
	}
	return self.found
}

func (self *TCBidirectAStar) Steps(count int, visited func(int32)) bool {
	if self.finished {
		return false
	}
	for i := 0; i < count; i++ {
		fwd_top, fwd_ok := self.fwd_heap.PeekPriority()
		bwd_top, bwd_ok := self.bwd_heap.PeekPriority()
		if !fwd_ok {
			fwd_top = math.Inf(1)
		}
		if !bwd_ok {
			bwd_top = math.Inf(1)
		}
		if fwd_top >= self.best_weight+self.fwd_stop && bwd_top >= self.best_weight+self.bwd_stop {
			self.finished = true
			self.found = self.meet_edge != -1
			return false
		}
		if fwd_top <= bwd_top {
			self._StepForward(visited)
		} else {
			self._StepBackward(visited)
		}
	}
	return true
}

func (self *TCBidirectAStar) _StepForward(visited func(int32)) {
	curr_id, ok := self.fwd_heap.Dequeue()
	if !ok {
		return
	}
	curr_flag := self.fwd_flags.Get(curr_id)
	if curr_flag.visited {
		return
	}
	curr_flag.visited = true
	if visited != nil {
		visited(curr_id)
	}
	curr_ref := curr_flag.self_edge
	self.explorer.ForAdjacentEdges(curr_flag.head, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		other_flag := self.fwd_flags.Get(ref.EdgeID)
		if other_flag.visited {
			return
		}
		edge_weight := self.explorer.GetEdgeWeight(ref)
		new_length := curr_flag.path_length + self.explorer.GetTurnCost(curr_ref, curr_flag.head, ref) + edge_weight
		if new_length < other_flag.path_length {
			other_flag.path_length = new_length
			other_flag.self_edge = ref
			other_flag.prev_edge = curr_id
			other_flag.head = ref.OtherID
			self.fwd_heap.Enqueue(ref.EdgeID, new_length+self._PotForward(ref.OtherID))
			self._CheckMeeting(ref.EdgeID, edge_weight)
		}
	})
}

func (self *TCBidirectAStar) _StepBackward(visited func(int32)) {
	curr_id, ok := self.bwd_heap.Dequeue()
	if !ok {
		return
	}
	curr_flag := self.bwd_flags.Get(curr_id)
	if curr_flag.visited {
		return
	}
	curr_flag.visited = true
	if visited != nil {
		visited(curr_id)
	}
	curr_ref := curr_flag.self_edge
	self.explorer.ForAdjacentEdges(curr_flag.tail, graph.BACKWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		other_flag := self.bwd_flags.Get(ref.EdgeID)
		if other_flag.visited {
			return
		}
		edge_weight := self.explorer.GetEdgeWeight(ref)
		new_length := curr_flag.path_length + self.explorer.GetTurnCost(ref, curr_flag.tail, curr_ref) + edge_weight
		if new_length < other_flag.path_length {
			other_flag.path_length = new_length
			other_flag.self_edge = ref
			other_flag.next_edge = curr_id
			other_flag.tail = ref.OtherID
			self.bwd_heap.Enqueue(ref.EdgeID, new_length+self._PotBackward(ref.OtherID))
			self._CheckMeeting(ref.EdgeID, edge_weight)
		}
	})
}

func (self *TCBidirectAStar) _CheckMeeting(edge int32, edge_weight float64) {
	weight := self.fwd_flags.Get(edge).path_length + self.bwd_flags.Get(edge).path_length - edge_weight
	if weight < self.best_weight {
		self.best_weight = weight
		self.meet_edge = edge
	}
}

func (self *TCBidirectAStar) GetShortestPath() Path {
	if !self.found {
		return NewEmptyPath(self.g)
	}
	if self.meet_edge == -1 {
		return NewPath(self.g, Array[int32]{self.start}, Array[graph.EdgeRef]{}, 0)
	}
	nodes := NewList[int32](10)
	edges := NewList[graph.EdgeRef](10)
	curr_id := self.meet_edge
	for curr_id != -1 {
		flag := self.fwd_flags.Get(curr_id)
		nodes.Add(flag.head)
		edges.Add(flag.self_edge)
		curr_id = flag.prev_edge
	}
	nodes.Add(self.start)
	Reverse(nodes)
	Reverse(edges)
	curr_id = self.bwd_flags.Get(self.meet_edge).next_edge
	for curr_id != -1 {
		flag := self.bwd_flags.Get(curr_id)
		edges.Add(flag.self_edge)
		if flag.next_edge != -1 {
			nodes.Add(self.bwd_flags.Get(flag.next_edge).tail)
		} else {
			nodes.Add(self.end)
		}
		curr_id = flag.next_edge
	}
	return NewPath(self.g, Array[int32](nodes), Array[graph.EdgeRef](edges), self.best_weight)
}
