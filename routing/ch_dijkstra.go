package routing

import (
	"math"

	"pathwerk/graph"
	. "pathwerk/util"
)

//*******************************************
// ch dijkstra
//*******************************************

// Bidirectional search over a contraction hierarchy, both fronts relax
// only towards strictly higher levels.
//
// A front stops once its minimum reaches the best connection, the
// summed frontier bound of the plain bidirectional dijkstra does not
// hold for up-down paths.
type CHDijkstra struct {
	g           graph.ICHGraph
	explorer    graph.IGraphExplorer
	fwd_heap    PriorityQueue[int32, float64]
	bwd_heap    PriorityQueue[int32, float64]
	fwd_flags   Flags[_FlagSP]
	bwd_flags   Flags[_FlagSP]
	start       int32
	end         int32
	best_weight float64
	meet_node   int32
	finished    bool
	found       bool
}

func NewCHDijkstra(g graph.ICHGraph, start, end int32) *CHDijkstra {
	d := &CHDijkstra{
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
		start:       start,
		end:         end,
		best_weight: math.Inf(1),
		meet_node:   -1,
	}
	d.fwd_flags.Get(start).path_length = 0
	d.bwd_flags.Get(end).path_length = 0
	d.fwd_heap.Enqueue(start, 0)
	d.bwd_heap.Enqueue(end, 0)
	return d
}

func (self *CHDijkstra) CalcShortestPath() bool {
	for self.Steps(math.MaxInt32, nil) {
	}
	return self.found
}

func (self *CHDijkstra) Steps(count int, visited func(int32)) bool {
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
		if fwd_top >= self.best_weight && bwd_top >= self.best_weight {
			self.finished = true
			self.found = self.meet_node != -1
			return false
		}
		if fwd_top <= bwd_top {
			self._Step(self.fwd_heap, self.fwd_flags, graph.FORWARD, visited)
		} else {
			self._Step(self.bwd_heap, self.bwd_flags, graph.BACKWARD, visited)
		}
	}
	return true
}

func (self *CHDijkstra) _Step(heap PriorityQueue[int32, float64], flags Flags[_FlagSP], direction graph.Direction, visited func(int32)) {
	curr_id, ok := heap.Dequeue()
	if !ok {
		return
	}
	curr_flag := flags.Get(curr_id)
	if curr_flag.visited {
		return
	}
	curr_flag.visited = true
	if visited != nil && curr_flag.prev_edge.EdgeID != -1 {
		visited(curr_flag.prev_edge.EdgeID)
	}
	self._CheckMeeting(curr_id)
	self.explorer.ForAdjacentEdges(curr_id, direction, graph.ADJACENT_UPWARDS, func(ref graph.EdgeRef) {
		other_flag := flags.Get(ref.OtherID)
		if other_flag.visited {
			return
		}
		new_length := curr_flag.path_length + self.explorer.GetEdgeWeight(ref)
		if new_length < other_flag.path_length {
			other_flag.path_length = new_length
			other_flag.prev_edge = ref
			other_flag.prev_node = curr_id
			heap.Enqueue(ref.OtherID, new_length)
			self._CheckMeeting(ref.OtherID)
		}
	})
}

func (self *CHDijkstra) _CheckMeeting(node int32) {
	weight := self.fwd_flags.Get(node).path_length + self.bwd_flags.Get(node).path_length
	if weight < self.best_weight {
		self.best_weight = weight
		self.meet_node = node
	}
}

func (self *CHDijkstra) GetShortestPath() Path {
	if !self.found {
		return NewEmptyPath(self.g)
	}
	refs := NewList[graph.EdgeRef](10)
	curr_id := self.meet_node
	for curr_id != self.start {
		flag := self.fwd_flags.Get(curr_id)
		refs.Add(flag.prev_edge)
		curr_id = flag.prev_node
	}
	Reverse(refs)
	curr_id = self.meet_node
	for curr_id != self.end {
		flag := self.bwd_flags.Get(curr_id)
		refs.Add(flag.prev_edge)
		curr_id = flag.prev_node
	}
	nodes, edges := _ExpandCHPath(self.g, self.start, refs)
	return NewPath(self.g, Array[int32](nodes), Array[graph.EdgeRef](edges), self.best_weight)
}

// Replaces shortcuts with the base edges they bypass, rebuilding the node
// sequence along the way.
func _ExpandCHPath(g graph.ICHGraph, start int32, refs List[graph.EdgeRef]) (List[int32], List[graph.EdgeRef]) {
	nodes := NewList[int32](refs.Length() + 1)
	edges := NewList[graph.EdgeRef](refs.Length())
	nodes.Add(start)
	curr := start
	for _, ref := range refs {
		if ref.IsCHShortcut() {
			g.GetEdgesFromShortcut(ref.EdgeID, false, func(edge_id int32) {
				edge := g.GetEdge(edge_id)
				next := edge.NodeB
				if edge.NodeA != curr {
					next = edge.NodeA
				}
				edges.Add(graph.CreateEdgeRef(edge_id))
				nodes.Add(next)
				curr = next
			})
		} else {
			edge := g.GetEdge(ref.EdgeID)
			next := edge.NodeB
			if edge.NodeA != curr {
				next = edge.NodeA
			}
			edges.Add(ref)
			nodes.Add(next)
			curr = next
		}
	}
	return nodes, edges
}

//*******************************************
// ch dijkstra with turn costs
//*******************************************

// Forward search state over an edge-based hierarchy, the state is either
// a base edge or a shortcut.
type _FlagCHF struct {
	path_length   float64
	self_edge     graph.EdgeRef
	prev_edge     int32
	prev_shortcut bool
	head          int32
	visited       bool
}

type _FlagCHB struct {
	path_length   float64
	self_edge     graph.EdgeRef
	next_edge     int32
	next_shortcut bool
	tail          int32
	visited       bool
}

type _CHSettled struct {
	id       int32
	shortcut bool
	edge     graph.EdgeRef
	dist     float64
}

type _CHHeapItem struct {
	id       int32
	shortcut bool
}

// Edge-based ch search.
//
// Base edges and shortcuts carry overlapping id ranges, so every
// direction keeps two state arenas. The fronts meet at nodes: settling a
// state pairs it with every settled state of the other direction at the
// same node, joined by the turn cost between the resolved exit and entry
// edges. A sentinel state at the start and end covers connections that
// consist of only one front's path.
type TCCHDijkstra struct {
	g            graph.ICHGraph
	explorer     graph.IGraphExplorer
	fwd_heap     PriorityQueue[_CHHeapItem, float64]
	bwd_heap     PriorityQueue[_CHHeapItem, float64]
	fwd_flags    Flags[_FlagCHF]
	fwd_sh_flags Flags[_FlagCHF]
	bwd_flags    Flags[_FlagCHB]
	bwd_sh_flags Flags[_FlagCHB]
	fwd_settled  Flags[List[_CHSettled]]
	bwd_settled  Flags[List[_CHSettled]]
	start        int32
	end          int32
	best_weight  float64
	meet_fwd     _CHSettled
	meet_bwd     _CHSettled
	has_meeting  bool
	finished     bool
	found        bool
}

func NewTCCHDijkstra(g graph.ICHGraph, start, end int32) *TCCHDijkstra {
	d := &TCCHDijkstra{
		g:        g,
		explorer: g.GetGraphExplorer(),
		fwd_heap: NewPriorityQueue[_CHHeapItem, float64](100),
		bwd_heap: NewPriorityQueue[_CHHeapItem, float64](100),
		fwd_flags: NewFlags[_FlagCHF](int32(g.EdgeCount()), _FlagCHF{
			path_length: math.Inf(1),
			prev_edge:   -1,
			head:        -1,
		}),
		fwd_sh_flags: NewFlags[_FlagCHF](int32(g.ShortcutCount()), _FlagCHF{
			path_length: math.Inf(1),
			prev_edge:   -1,
			head:        -1,
		}),
		bwd_flags: NewFlags[_FlagCHB](int32(g.EdgeCount()), _FlagCHB{
			path_length: math.Inf(1),
			next_edge:   -1,
			tail:        -1,
		}),
		bwd_sh_flags: NewFlags[_FlagCHB](int32(g.ShortcutCount()), _FlagCHB{
			path_length: math.Inf(1),
			next_edge:   -1,
			tail:        -1,
		}),
		fwd_settled: NewFlags[List[_CHSettled]](int32(g.NodeCount()), nil),
		bwd_settled: NewFlags[List[_CHSettled]](int32(g.NodeCount()), nil),
		start:       start,
		end:         end,
		best_weight: math.Inf(1),
	}
	if start == end {
		d.finished = true
		d.found = true
		d.best_weight = 0
		return d
	}
	// sentinels stand for the empty path at either terminal
	d.fwd_settled.Get(start).Add(_CHSettled{id: -1, edge: graph.EdgeRef{EdgeID: -1}})
	d.bwd_settled.Get(end).Add(_CHSettled{id: -1, edge: graph.EdgeRef{EdgeID: -1}})
	d.explorer.ForAdjacentEdges(start, graph.FORWARD, graph.ADJACENT_UPWARDS, func(ref graph.EdgeRef) {
		flag := d._FwdFlag(ref)
		weight := d.explorer.GetEdgeWeight(ref)
		if weight < flag.path_length {
			flag.path_length = weight
			flag.self_edge = ref
			flag.prev_edge = -1
			flag.head = ref.OtherID
			d.fwd_heap.Enqueue(_CHHeapItem{id: ref.EdgeID, shortcut: ref.IsCHShortcut()}, weight)
		}
	})
	d.explorer.ForAdjacentEdges(end, graph.BACKWARD, graph.ADJACENT_UPWARDS, func(ref graph.EdgeRef) {
		flag := d._BwdFlag(ref)
		weight := d.explorer.GetEdgeWeight(ref)
		if weight < flag.path_length {
			flag.path_length = weight
			flag.self_edge = ref
			flag.next_edge = -1
			flag.tail = ref.OtherID
			d.bwd_heap.Enqueue(_CHHeapItem{id: ref.EdgeID, shortcut: ref.IsCHShortcut()}, weight)
		}
	})
	return d
}

func (self *TCCHDijkstra) _FwdFlag(ref graph.EdgeRef) *_FlagCHF {
	if ref.IsCHShortcut() {
		return self.fwd_sh_flags.Get(ref.EdgeID)
	}
	return self.fwd_flags.Get(ref.EdgeID)
}

func (self *TCCHDijkstra) _BwdFlag(ref graph.EdgeRef) *_FlagCHB {
	if ref.IsCHShortcut() {
		return self.bwd_sh_flags.Get(ref.EdgeID)
	}
	return self.bwd_flags.Get(ref.EdgeID)
}

func (self *TCCHDijkstra) _TurnCost(from graph.EdgeRef, via int32, to graph.EdgeRef) float64 {
	if from.EdgeID == -1 || to.EdgeID == -1 {
		return 0
	}
	return self.explorer.GetTurnCost(from, via, to)
}

func (self *TCCHDijkstra) CalcShortestPath() bool {
	for self.Steps(math.MaxInt32, nil) {
	}
	return self.found
}

func (self *TCCHDijkstra) Steps(count int, visited func(int32)) bool {
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
		if fwd_top >= self.best_weight && bwd_top >= self.best_weight {
			self.finished = true
			self.found = self.has_meeting
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

func (self *TCCHDijkstra) _StepForward(visited func(int32)) {
	item, ok := self.fwd_heap.Dequeue()
	if !ok {
		return
	}
	var curr_flag *_FlagCHF
	if item.shortcut {
		curr_flag = self.fwd_sh_flags.Get(item.id)
	} else {
		curr_flag = self.fwd_flags.Get(item.id)
	}
	if curr_flag.visited {
		return
	}
	curr_flag.visited = true
	if visited != nil && !item.shortcut {
		visited(item.id)
	}
	curr_ref := curr_flag.self_edge
	settled := _CHSettled{id: item.id, shortcut: item.shortcut, edge: curr_ref, dist: curr_flag.path_length}
	self.fwd_settled.Get(curr_flag.head).Add(settled)
	for _, other := range *self.bwd_settled.Get(curr_flag.head) {
		weight := settled.dist + self._TurnCost(curr_ref, curr_flag.head, other.edge) + other.dist
		if weight < self.best_weight {
			self.best_weight = weight
			self.meet_fwd = settled
			self.meet_bwd = other
			self.has_meeting = true
		}
	}
	self.explorer.ForAdjacentEdges(curr_flag.head, graph.FORWARD, graph.ADJACENT_UPWARDS, func(ref graph.EdgeRef) {
		other_flag := self._FwdFlag(ref)
		if other_flag.visited {
			return
		}
		new_length := curr_flag.path_length + self.explorer.GetTurnCost(curr_ref, curr_flag.head, ref) + self.explorer.GetEdgeWeight(ref)
		if new_length < other_flag.path_length {
			other_flag.path_length = new_length
			other_flag.self_edge = ref
			other_flag.prev_edge = item.id
			other_flag.prev_shortcut = item.shortcut
			other_flag.head = ref.OtherID
			self.fwd_heap.Enqueue(_CHHeapItem{id: ref.EdgeID, shortcut: ref.IsCHShortcut()}, new_length)
		}
	})
}

func (self *TCCHDijkstra) _StepBackward(visited func(int32)) {
	item, ok := self.bwd_heap.Dequeue()
	if !ok {
		return
	}
	var curr_flag *_FlagCHB
	if item.shortcut {
		curr_flag = self.bwd_sh_flags.Get(item.id)
	} else {
		curr_flag = self.bwd_flags.Get(item.id)
	}
	if curr_flag.visited {
		return
	}
	curr_flag.visited = true
	if visited != nil && !item.shortcut {
		visited(item.id)
	}
	curr_ref := curr_flag.self_edge
	settled := _CHSettled{id: item.id, shortcut: item.shortcut, edge: curr_ref, dist: curr_flag.path_length}
	self.bwd_settled.Get(curr_flag.tail).Add(settled)
	for _, other := range *self.fwd_settled.Get(curr_flag.tail) {
		weight := other.dist + self._TurnCost(other.edge, curr_flag.tail, curr_ref) + settled.dist
		if weight < self.best_weight {
			self.best_weight = weight
			self.meet_fwd = other
			self.meet_bwd = settled
			self.has_meeting = true
		}
	}
	self.explorer.ForAdjacentEdges(curr_flag.tail, graph.BACKWARD, graph.ADJACENT_UPWARDS, func(ref graph.EdgeRef) {
		other_flag := self._BwdFlag(ref)
		if other_flag.visited {
			return
		}
		new_length := curr_flag.path_length + self.explorer.GetTurnCost(ref, curr_flag.tail, curr_ref) + self.explorer.GetEdgeWeight(ref)
		if new_length < other_flag.path_length {
			other_flag.path_length = new_length
			other_flag.self_edge = ref
			other_flag.next_edge = item.id
			other_flag.next_shortcut = item.shortcut
			other_flag.tail = ref.OtherID
			self.bwd_heap.Enqueue(_CHHeapItem{id: ref.EdgeID, shortcut: ref.IsCHShortcut()}, new_length)
		}
	})
}

func (self *TCCHDijkstra) GetShortestPath() Path {
	if !self.found {
		return NewEmptyPath(self.g)
	}
	if !self.has_meeting {
		return NewPath(self.g, Array[int32]{self.start}, Array[graph.EdgeRef]{}, 0)
	}
	refs := NewList[graph.EdgeRef](10)
	if self.meet_fwd.id != -1 {
		curr := self.meet_fwd
		id, shortcut := curr.id, curr.shortcut
		for id != -1 {
			var flag *_FlagCHF
			if shortcut {
				flag = self.fwd_sh_flags.Get(id)
			} else {
				flag = self.fwd_flags.Get(id)
			}
			refs.Add(flag.self_edge)
			id, shortcut = flag.prev_edge, flag.prev_shortcut
		}
		Reverse(refs)
	}
	if self.meet_bwd.id != -1 {
		id, shortcut := self.meet_bwd.id, self.meet_bwd.shortcut
		for id != -1 {
			var flag *_FlagCHB
			if shortcut {
				flag = self.bwd_sh_flags.Get(id)
			} else {
				flag = self.bwd_flags.Get(id)
			}
			refs.Add(flag.self_edge)
			id, shortcut = flag.next_edge, flag.next_shortcut
		}
	}
	nodes, edges := _ExpandCHPath(self.g, self.start, refs)
	return NewPath(self.g, Array[int32](nodes), Array[graph.EdgeRef](edges), self.best_weight)
}
