package comps

import (
	"pathwerk/geo"
	"pathwerk/structs"
	. "pathwerk/util"
)

//*******************************************
// graph base interface
//*******************************************

type IGraphBase interface {
	NodeCount() int
	EdgeCount() int
	GetNode(node int32) structs.Node
	IsNode(node int32) bool
	GetEdge(edge int32) structs.Edge
	IsEdge(edge int32) bool
	GetAccessor() structs.IAdjAccessor
	GetNodeDegree(node int32, forward bool) int16
}

//*******************************************
// graph base
//*******************************************

var _ IGraphBase = &GraphBase{}

type GraphBase struct {
	nodes    Array[structs.Node]
	edges    Array[structs.Edge]
	topology structs.AdjacencyArray
}

func NewGraphBase(nodes Array[structs.Node], edges Array[structs.Edge]) *GraphBase {
	topology := _BuildTopology(nodes, edges)
	return &GraphBase{
		nodes:    nodes,
		edges:    edges,
		topology: topology,
	}
}

func (self *GraphBase) NodeCount() int {
	return len(self.nodes)
}
func (self *GraphBase) EdgeCount() int {
	return len(self.edges)
}
func (self *GraphBase) IsNode(node int32) bool {
	return node >= 0 && node < int32(len(self.nodes))
}
func (self *GraphBase) GetNode(node int32) structs.Node {
	return self.nodes[node]
}
func (self *GraphBase) IsEdge(edge int32) bool {
	return edge >= 0 && edge < int32(len(self.edges))
}
func (self *GraphBase) GetEdge(edge int32) structs.Edge {
	return self.edges[edge]
}
func (self *GraphBase) GetAccessor() structs.IAdjAccessor {
	accessor := self.topology.GetAccessor()
	return &accessor
}
func (self *GraphBase) GetNodeDegree(node int32, forward bool) int16 {
	return self.topology.GetDegree(node, forward)
}

//*******************************************
// graph builder
//*******************************************

// Incrementally assembles nodes and directed edges and freezes them into
// a GraphBase.
//
// After Freeze the builder must not be used again.
type GraphBuilder struct {
	nodes  List[structs.Node]
	edges  List[structs.Edge]
	frozen bool
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		nodes: NewList[structs.Node](100),
		edges: NewList[structs.Edge](100),
	}
}

func (self *GraphBuilder) AddNode(loc geo.Coord) int32 {
	if self.frozen {
		panic("builder is frozen")
	}
	id := int32(self.nodes.Length())
	self.nodes.Add(structs.Node{Loc: loc})
	return id
}

// Adds a directed edge from node_a to node_b.
func (self *GraphBuilder) AddEdge(node_a, node_b int32, length float32) int32 {
	if self.frozen {
		panic("builder is frozen")
	}
	if node_a < 0 || node_a >= int32(self.nodes.Length()) || node_b < 0 || node_b >= int32(self.nodes.Length()) {
		panic("edge endpoint out of range")
	}
	id := int32(self.edges.Length())
	self.edges.Add(structs.Edge{
		NodeA:  node_a,
		NodeB:  node_b,
		Length: length,
	})
	return id
}

func (self *GraphBuilder) NodeCount() int {
	return self.nodes.Length()
}
func (self *GraphBuilder) EdgeCount() int {
	return self.edges.Length()
}

func (self *GraphBuilder) Freeze() *GraphBase {
	if self.frozen {
		panic("builder is frozen")
	}
	self.frozen = true
	return NewGraphBase(Array[structs.Node](self.nodes), Array[structs.Edge](self.edges))
}

//*******************************************
// load and store methods
//*******************************************

func (self *GraphBase) _Store(path string) {
	_StoreGraphNodes(self.nodes, path+"-nodes")
	_StoreGraphEdges(self.edges, path+"-edges")
	structs.StoreAdjacency(&self.topology, false, path+"-graph")
}

func (self *GraphBase) _New() *GraphBase {
	return &GraphBase{}
}
func (self *GraphBase) _Load(path string) {
	nodes := _LoadGraphNodes(path + "-nodes")
	edges := _LoadGraphEdges(path + "-edges")
	topology := structs.LoadAdjacency(path+"-graph", false)

	*self = GraphBase{
		nodes:    nodes,
		edges:    edges,
		topology: topology,
	}
}

//*******************************************
// load and store components
//*******************************************

func _StoreGraphNodes(nodes Array[structs.Node], filename string) {
	writer := NewBufferWriter()

	Write(writer, int32(nodes.Length()))
	for _, node := range nodes {
		Write(writer, node.Loc)
	}

	WriteBytesToFile(writer.Bytes(), filename)
}

func _LoadGraphNodes(file string) Array[structs.Node] {
	reader := NewBufferReader(ReadBytesFromFile(file))

	nodecount := Read[int32](reader)
	nodes := NewList[structs.Node](int(nodecount))
	for i := 0; i < int(nodecount); i++ {
		c := Read[[2]float32](reader)
		nodes.Add(structs.Node{
			Loc: c,
		})
	}

	return Array[structs.Node](nodes)
}

func _StoreGraphEdges(edges Array[structs.Edge], filename string) {
	writer := NewBufferWriter()

	Write(writer, int32(edges.Length()))
	for _, edge := range edges {
		Write(writer, edge.NodeA)
		Write(writer, edge.NodeB)
		Write(writer, edge.Length)
	}

	WriteBytesToFile(writer.Bytes(), filename)
}

func _LoadGraphEdges(file string) Array[structs.Edge] {
	reader := NewBufferReader(ReadBytesFromFile(file))

	edgecount := Read[int32](reader)
	edges := NewList[structs.Edge](int(edgecount))
	for i := 0; i < int(edgecount); i++ {
		edges.Add(structs.Edge{
			NodeA:  Read[int32](reader),
			NodeB:  Read[int32](reader),
			Length: Read[float32](reader),
		})
	}

	return Array[structs.Edge](edges)
}
