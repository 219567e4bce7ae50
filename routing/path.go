package routing

import (
	"math"

	"pathwerk/geo"
	"pathwerk/graph"
	. "pathwerk/util"
)

//*******************************************
// path
//*******************************************

// Shortest path as a node sequence with the edges between them.
//
// A non-existing path has weight +Inf and empty sequences.
type Path struct {
	g      graph.IGraph
	nodes  Array[int32]
	edges  Array[graph.EdgeRef]
	weight float64
}

func NewPath(g graph.IGraph, nodes Array[int32], edges Array[graph.EdgeRef], weight float64) Path {
	if nodes.Length() != edges.Length()+1 && !(nodes.Length() == 0 && edges.Length() == 0) {
		panic("node and edge sequences do not line up")
	}
	return Path{
		g:      g,
		nodes:  nodes,
		edges:  edges,
		weight: weight,
	}
}

func NewEmptyPath(g graph.IGraph) Path {
	return Path{
		g:      g,
		weight: math.Inf(1),
	}
}

func (self Path) Exists() bool {
	return !math.IsInf(self.weight, 1)
}
func (self Path) Weight() float64 {
	return self.weight
}
func (self Path) GetNodes() Array[int32] {
	return self.nodes
}
func (self Path) GetEdges() Array[graph.EdgeRef] {
	return self.edges
}

// Sum of the edge lengths in meters.
func (self Path) Distance() float64 {
	dist := 0.0
	for _, edge := range self.edges {
		dist += float64(self.g.GetEdge(edge.EdgeID).Length)
	}
	return dist
}

// Sum of the edge travel times.
func (self Path) Time() float64 {
	explorer := self.g.GetGraphExplorer()
	time := 0.0
	for _, edge := range self.edges {
		time += explorer.GetEdgeTime(edge)
	}
	return time
}

func (self Path) GetGeometry() geo.CoordArray {
	coords := make(geo.CoordArray, self.nodes.Length())
	for i, node := range self.nodes {
		coords[i] = self.g.GetNodeGeom(node)
	}
	return coords
}
