package routing

import (
	"pathwerk/comps"
	"pathwerk/graph"
)

//*******************************************
// landmark potentials
//*******************************************

// Graph views that add virtual nodes report the split edge they sit on
// and the reverse edge split alongside it.
type _VirtualParents interface {
	GetVirtualParent(node int32) (int32, float32, bool)
	GetVirtualTwin(node int32) (int32, bool)
}

// Landmark lower bound towards a fixed target.
//
// Virtual nodes have no landmark table entry, they are projected onto
// the endpoints of their split edge instead: a virtual target can be
// entered over either endpoint of its chain, so the bound takes the
// cheaper of both endpoint heuristics plus the exact chain weight
// behind it. A virtual search node likewise leaves over the cheaper of
// its two exit endpoints. On one-way splits only the forward endpoint
// exists.
type LMPotential struct {
	g           graph.IGraph
	lm          *comps.Landmarks
	explorer    graph.IGraphExplorer
	virtual     _VirtualParents
	target_a    int32
	target_b    int32
	offset_a    float64
	offset_b    float64
	target_edge int32
	target_twin int32
	target_pos  float32
}

func NewLMPotential(g graph.IGraph, lm *comps.Landmarks, target int32) *LMPotential {
	p := &LMPotential{
		g:           g,
		lm:          lm,
		explorer:    g.GetGraphExplorer(),
		target_a:    target,
		target_b:    -1,
		target_edge: -1,
		target_twin: -1,
	}
	if virtual, ok := g.(_VirtualParents); ok {
		p.virtual = virtual
		if edge_id, pos, is_virtual := virtual.GetVirtualParent(target); is_virtual {
			parent := g.GetEdge(edge_id)
			p.target_edge = edge_id
			p.target_pos = pos
			p.target_a = parent.NodeA
			p.offset_a = float64(pos) * p.explorer.GetEdgeWeight(graph.CreateEdgeRef(edge_id))
			if twin_id, has_twin := virtual.GetVirtualTwin(target); has_twin {
				p.target_twin = twin_id
				p.target_b = parent.NodeB
				p.offset_b = float64(1-pos) * p.explorer.GetEdgeWeight(graph.CreateEdgeRef(twin_id))
			}
		}
	}
	return p
}

// Cheapest bound from a real node into the target chain.
func (self *LMPotential) _ToTarget(node int32) float64 {
	h := self.lm.GetHeuristic(node, self.target_a) + self.offset_a
	if self.target_b != -1 {
		alt := self.lm.GetHeuristic(node, self.target_b) + self.offset_b
		if alt < h {
			h = alt
		}
	}
	return h
}

func (self *LMPotential) GetPotential(node int32) float64 {
	if self.virtual == nil {
		return self._ToTarget(node)
	}
	edge_id, pos, is_virtual := self.virtual.GetVirtualParent(node)
	if !is_virtual {
		return self._ToTarget(node)
	}
	weight := self.explorer.GetEdgeWeight(graph.CreateEdgeRef(edge_id))
	if edge_id == self.target_edge {
		if pos <= self.target_pos {
			return float64(self.target_pos-pos) * weight
		}
		if self.target_twin != -1 {
			twin_weight := self.explorer.GetEdgeWeight(graph.CreateEdgeRef(self.target_twin))
			return float64(pos-self.target_pos) * twin_weight
		}
	}
	parent := self.g.GetEdge(edge_id)
	best := float64(1-pos)*weight + self._ToTarget(parent.NodeB)
	if twin_id, has_twin := self.virtual.GetVirtualTwin(node); has_twin {
		twin_weight := self.explorer.GetEdgeWeight(graph.CreateEdgeRef(twin_id))
		alt := float64(pos)*twin_weight + self._ToTarget(parent.NodeA)
		if alt < best {
			best = alt
		}
	}
	return best
}

// Landmark lower bound on the weight accumulated from a fixed source,
// the estimate a backward search front needs.
type LMBackwardPotential struct {
	g           graph.IGraph
	lm          *comps.Landmarks
	explorer    graph.IGraphExplorer
	virtual     _VirtualParents
	source_a    int32
	source_b    int32
	offset_a    float64
	offset_b    float64
	source_edge int32
	source_twin int32
	source_pos  float32
}

func NewLMBackwardPotential(g graph.IGraph, lm *comps.Landmarks, source int32) *LMBackwardPotential {
	p := &LMBackwardPotential{
		g:           g,
		lm:          lm,
		explorer:    g.GetGraphExplorer(),
		source_a:    source,
		source_b:    -1,
		source_edge: -1,
		source_twin: -1,
	}
	if virtual, ok := g.(_VirtualParents); ok {
		p.virtual = virtual
		if edge_id, pos, is_virtual := virtual.GetVirtualParent(source); is_virtual {
			parent := g.GetEdge(edge_id)
			p.source_edge = edge_id
			p.source_pos = pos
			p.source_a = parent.NodeB
			p.offset_a = float64(1-pos) * p.explorer.GetEdgeWeight(graph.CreateEdgeRef(edge_id))
			if twin_id, has_twin := virtual.GetVirtualTwin(source); has_twin {
				p.source_twin = twin_id
				p.source_b = parent.NodeA
				p.offset_b = float64(pos) * p.explorer.GetEdgeWeight(graph.CreateEdgeRef(twin_id))
			}
		}
	}
	return p
}

// Cheapest bound out of the source chain to a real node.
func (self *LMBackwardPotential) _FromSource(node int32) float64 {
	h := self.offset_a + self.lm.GetHeuristic(self.source_a, node)
	if self.source_b != -1 {
		alt := self.offset_b + self.lm.GetHeuristic(self.source_b, node)
		if alt < h {
			h = alt
		}
	}
	return h
}

func (self *LMBackwardPotential) GetPotential(node int32) float64 {
	if self.virtual == nil {
		return self._FromSource(node)
	}
	edge_id, pos, is_virtual := self.virtual.GetVirtualParent(node)
	if !is_virtual {
		return self._FromSource(node)
	}
	weight := self.explorer.GetEdgeWeight(graph.CreateEdgeRef(edge_id))
	if edge_id == self.source_edge {
		if pos >= self.source_pos {
			return float64(pos-self.source_pos) * weight
		}
		if self.source_twin != -1 {
			twin_weight := self.explorer.GetEdgeWeight(graph.CreateEdgeRef(self.source_twin))
			return float64(self.source_pos-pos) * twin_weight
		}
	}
	parent := self.g.GetEdge(edge_id)
	best := self._FromSource(parent.NodeA) + float64(pos)*weight
	if twin_id, has_twin := self.virtual.GetVirtualTwin(node); has_twin {
		twin_weight := self.explorer.GetEdgeWeight(graph.CreateEdgeRef(twin_id))
		alt := self._FromSource(parent.NodeB) + float64(1-pos)*twin_weight
		if alt < best {
			best = alt
		}
	}
	return best
}

//*******************************************
// landmark searches
//*******************************************

func NewALMAStar(g graph.IGraph, lm *comps.Landmarks, start, end int32) *AStar {
	return NewAStarWithPotential(g, start, end, NewLMPotential(g, lm, end))
}

func NewTCALMAStar(g graph.IGraph, lm *comps.Landmarks, start, end int32) *TCAStar {
	return NewTCAStarWithPotential(g, start, end, NewLMPotential(g, lm, end))
}

func NewBidirectALMAStar(g graph.IGraph, lm *comps.Landmarks, start, end int32) *BidirectAStar {
	return NewBidirectAStarWithPotential(g, start, end,
		NewLMPotential(g, lm, end), NewLMBackwardPotential(g, lm, start))
}

func NewTCBidirectALMAStar(g graph.IGraph, lm *comps.Landmarks, start, end int32) *TCBidirectAStar {
	return NewTCBidirectAStarWithPotential(g, start, end,
		NewLMPotential(g, lm, end), NewLMBackwardPotential(g, lm, start))
}
