package graph

import (
	"pathwerk/comps"
	"pathwerk/geo"
	"pathwerk/structs"
	. "pathwerk/util"
)

//*******************************************
// ch-graph interface
//******************************************

type ICHGraph interface {
	IGraph

	GetNodeLevel(node int32) int16
	ShortcutCount() int
	GetShortcut(shortcut int32) structs.Shortcut
	GetEdgesFromShortcut(shortcut int32, reversed bool, callback func(int32))
	IsEdgeBased() bool
}

//*******************************************
// ch-graph
//******************************************

var _ ICHGraph = &CHGraph{}

type CHGraph struct {
	base   comps.IGraphBase
	weight comps.IWeighting
	ch     *comps.CH
	index  Optional[comps.IGraphIndex]
}

func (self *CHGraph) GetGraphExplorer() IGraphExplorer {
	// edge-based hierarchies carry their turn costs into shortcut
	// transitions
	tc_weight, _ := self.weight.(comps.ITCWeighting)
	if !self.ch.IsEdgeBased() {
		tc_weight = nil
	}
	return &CHGraphExplorer{
		graph:       self,
		accessor:    self.base.GetAccessor(),
		sh_accessor: self.ch.GetShortcutAccessor(),
		weight:      self.weight,
		tc_weight:   tc_weight,
	}
}
func (self *CHGraph) GetIndex() comps.IGraphIndex {
	if !self.index.HasValue() {
		self.index = Some[comps.IGraphIndex](comps.NewGraphIndex(self.base))
	}
	return self.index.Value
}
func (self *CHGraph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *CHGraph) EdgeCount() int {
	return self.base.EdgeCount()
}
func (self *CHGraph) IsNode(node int32) bool {
	return self.base.IsNode(node)
}
func (self *CHGraph) GetNode(node int32) structs.Node {
	return self.base.GetNode(node)
}
func (self *CHGraph) GetEdge(edge int32) structs.Edge {
	return self.base.GetEdge(edge)
}
func (self *CHGraph) GetNodeGeom(node int32) geo.Coord {
	return self.base.GetNode(node).Loc
}

func (self *CHGraph) GetNodeLevel(node int32) int16 {
	return self.ch.GetNodeLevel(node)
}
func (self *CHGraph) ShortcutCount() int {
	return self.ch.ShortcutCount()
}
func (self *CHGraph) GetShortcut(shortcut int32) structs.Shortcut {
	return self.ch.GetShortcut(shortcut)
}
func (self *CHGraph) GetEdgesFromShortcut(shortcut int32, reversed bool, callback func(int32)) {
	self.ch.GetEdgesFromShortcut(shortcut, reversed, callback)
}
func (self *CHGraph) IsEdgeBased() bool {
	return self.ch.IsEdgeBased()
}

//*******************************************
// ch-graph explorer
//******************************************

type CHGraphExplorer struct {
	graph       *CHGraph
	accessor    structs.IAdjAccessor
	sh_accessor structs.IAdjAccessor
	weight      comps.IWeighting
	tc_weight   comps.ITCWeighting
}

func (self *CHGraphExplorer) ForAdjacentEdges(node int32, direction Direction, typ Adjacency, callback func(EdgeRef)) {
	if typ == ADJACENT_ALL {
		self.accessor.SetBaseNode(node, direction == FORWARD)
		for self.accessor.Next() {
			callback(EdgeRef{
				EdgeID:  self.accessor.GetEdgeID(),
				OtherID: self.accessor.GetOtherID(),
				Type:    0,
			})
		}
		self.sh_accessor.SetBaseNode(node, direction == FORWARD)
		for self.sh_accessor.Next() {
			callback(EdgeRef{
				EdgeID:  self.sh_accessor.GetEdgeID(),
				OtherID: self.sh_accessor.GetOtherID(),
				Type:    100,
			})
		}
	} else if typ == ADJACENT_EDGES {
		self.accessor.SetBaseNode(node, direction == FORWARD)
		for self.accessor.Next() {
			callback(EdgeRef{
				EdgeID:  self.accessor.GetEdgeID(),
				OtherID: self.accessor.GetOtherID(),
				Type:    0,
			})
		}
	} else if typ == ADJACENT_SHORTCUTS {
		self.sh_accessor.SetBaseNode(node, direction == FORWARD)
		for self.sh_accessor.Next() {
			callback(EdgeRef{
				EdgeID:  self.sh_accessor.GetEdgeID(),
				OtherID: self.sh_accessor.GetOtherID(),
				Type:    100,
			})
		}
	} else if typ == ADJACENT_UPWARDS {
		// loops stay visible, restriction detours re-enter their own node
		this_level := self.graph.GetNodeLevel(node)
		self.accessor.SetBaseNode(node, direction == FORWARD)
		for self.accessor.Next() {
			other_id := self.accessor.GetOtherID()
			if other_id != node && this_level >= self.graph.GetNodeLevel(other_id) {
				continue
			}
			callback(EdgeRef{
				EdgeID:  self.accessor.GetEdgeID(),
				OtherID: other_id,
				Type:    0,
			})
		}
		self.sh_accessor.SetBaseNode(node, direction == FORWARD)
		for self.sh_accessor.Next() {
			other_id := self.sh_accessor.GetOtherID()
			if other_id != node && this_level >= self.graph.GetNodeLevel(other_id) {
				continue
			}
			callback(EdgeRef{
				EdgeID:  self.sh_accessor.GetEdgeID(),
				OtherID: other_id,
				Type:    100,
			})
		}
	} else if typ == ADJACENT_DOWNWARDS {
		this_level := self.graph.GetNodeLevel(node)
		self.accessor.SetBaseNode(node, direction == FORWARD)
		for self.accessor.Next() {
			other_id := self.accessor.GetOtherID()
			if this_level <= self.graph.GetNodeLevel(other_id) {
				continue
			}
			callback(EdgeRef{
				EdgeID:  self.accessor.GetEdgeID(),
				OtherID: other_id,
				Type:    0,
			})
		}
		self.sh_accessor.SetBaseNode(node, direction == FORWARD)
		for self.sh_accessor.Next() {
			other_id := self.sh_accessor.GetOtherID()
			if this_level <= self.graph.GetNodeLevel(other_id) {
				continue
			}
			callback(EdgeRef{
				EdgeID:  self.sh_accessor.GetEdgeID(),
				OtherID: other_id,
				Type:    100,
			})
		}
	} else {
		panic("Adjacency-type not implemented for this graph.")
	}
}
func (self *CHGraphExplorer) GetEdgeWeight(edge EdgeRef) float64 {
	if edge.IsCHShortcut() {
		return self.graph.ch.GetShortcut(edge.EdgeID).Weight
	}
	return self.weight.GetEdgeWeight(edge.EdgeID)
}
func (self *CHGraphExplorer) GetEdgeTime(edge EdgeRef) float64 {
	if edge.IsCHShortcut() {
		panic("shortcuts have to be unpacked before computing times")
	}
	return self.weight.GetEdgeTime(edge.EdgeID)
}

// Resolves shortcuts to the base edge met at the via node before looking
// up the turn cost.
func (self *CHGraphExplorer) GetTurnCost(from EdgeRef, via int32, to EdgeRef) float64 {
	if self.tc_weight == nil {
		return 0
	}
	from_edge := from.EdgeID
	if from.IsCHShortcut() {
		from_edge = self.graph.ch.GetExitEdge(from.EdgeID)
	}
	to_edge := to.EdgeID
	if to.IsCHShortcut() {
		to_edge = self.graph.ch.GetEntryEdge(to.EdgeID)
	}
	return self.tc_weight.GetTurnCost(from_edge, via, to_edge)
}
func (self *CHGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	if edge.IsShortcut() {
		e := self.graph.GetShortcut(edge.EdgeID)
		if node == e.From {
			return e.To
		}
		if node == e.To {
			return e.From
		}
		return -1
	}
	e := self.graph.GetEdge(edge.EdgeID)
	if node == e.NodeA {
		return e.NodeB
	}
	if node == e.NodeB {
		return e.NodeA
	}
	return -1
}
