package structs

import (
	. "pathwerk/util"
)

//*******************************************
// adjacency interfaces
//*******************************************

// Iterator over the edges adjacent to a base node.
//
// Call SetBaseNode first, then advance with Next and read the current
// entry with the getters.
type IAdjAccessor interface {
	SetBaseNode(node int32, forward bool)
	Next() bool
	GetEdgeID() int32
	GetOtherID() int32
	GetType() byte
}

//*******************************************
// dynamic adjacency
//*******************************************

type _EdgeEntry struct {
	EdgeID  int32
	OtherID int32
	Type    byte
}

// Adjacency structure for graphs under construction.
type AdjacencyList struct {
	fwd_entries Array[List[_EdgeEntry]]
	bwd_entries Array[List[_EdgeEntry]]
}

func NewAdjacencyList(node_count int) AdjacencyList {
	fwd_entries := NewArray[List[_EdgeEntry]](node_count)
	bwd_entries := NewArray[List[_EdgeEntry]](node_count)
	for i := 0; i < node_count; i++ {
		fwd_entries[i] = NewList[_EdgeEntry](2)
		bwd_entries[i] = NewList[_EdgeEntry](2)
	}
	return AdjacencyList{
		fwd_entries: fwd_entries,
		bwd_entries: bwd_entries,
	}
}

func (self *AdjacencyList) AddFWDEntry(node_a, node_b, edge int32, typ byte) {
	self.fwd_entries[node_a].Add(_EdgeEntry{EdgeID: edge, OtherID: node_b, Type: typ})
}
func (self *AdjacencyList) AddBWDEntry(node_a, node_b, edge int32, typ byte) {
	self.bwd_entries[node_b].Add(_EdgeEntry{EdgeID: edge, OtherID: node_a, Type: typ})
}
func (self *AdjacencyList) AddEdgeEntries(node_a, node_b, edge int32, typ byte) {
	self.AddFWDEntry(node_a, node_b, edge, typ)
	self.AddBWDEntry(node_a, node_b, edge, typ)
}

func (self *AdjacencyList) NodeCount() int {
	return self.fwd_entries.Length()
}

func (self *AdjacencyList) GetAccessor() AdjListAccessor {
	return AdjListAccessor{
		topology: self,
	}
}

type AdjListAccessor struct {
	topology *AdjacencyList
	entries  List[_EdgeEntry]
	index    int
}

func (self *AdjListAccessor) SetBaseNode(node int32, forward bool) {
	if forward {
		self.entries = self.topology.fwd_entries[node]
	} else {
		self.entries = self.topology.bwd_entries[node]
	}
	self.index = -1
}
func (self *AdjListAccessor) Next() bool {
	self.index += 1
	return self.index < self.entries.Length()
}
func (self *AdjListAccessor) GetEdgeID() int32 {
	return self.entries[self.index].EdgeID
}
func (self *AdjListAccessor) GetOtherID() int32 {
	return self.entries[self.index].OtherID
}
func (self *AdjListAccessor) GetType() byte {
	return self.entries[self.index].Type
}

//*******************************************
// static adjacency
//*******************************************

type _NodeEntry struct {
	Start int32
	Count int16
}

// Compressed adjacency structure for frozen graphs.
//
// Edge entries of every node are stored contiguously, node entries index
// into them.
type AdjacencyArray struct {
	fwd_nodes   Array[_NodeEntry]
	fwd_entries Array[_EdgeEntry]
	bwd_nodes   Array[_NodeEntry]
	bwd_entries Array[_EdgeEntry]
}

func AdjacencyListToArray(dyn *AdjacencyList) *AdjacencyArray {
	node_count := dyn.NodeCount()
	fwd_nodes := NewArray[_NodeEntry](node_count)
	bwd_nodes := NewArray[_NodeEntry](node_count)
	fwd_entries := NewList[_EdgeEntry](node_count)
	bwd_entries := NewList[_EdgeEntry](node_count)
	for i := 0; i < node_count; i++ {
		fwd := dyn.fwd_entries[i]
		fwd_nodes[i] = _NodeEntry{Start: int32(fwd_entries.Length()), Count: int16(fwd.Length())}
		for _, entry := range fwd {
			fwd_entries.Add(entry)
		}
		bwd := dyn.bwd_entries[i]
		bwd_nodes[i] = _NodeEntry{Start: int32(bwd_entries.Length()), Count: int16(bwd.Length())}
		for _, entry := range bwd {
			bwd_entries.Add(entry)
		}
	}
	return &AdjacencyArray{
		fwd_nodes:   fwd_nodes,
		fwd_entries: Array[_EdgeEntry](fwd_entries),
		bwd_nodes:   bwd_nodes,
		bwd_entries: Array[_EdgeEntry](bwd_entries),
	}
}

func (self *AdjacencyArray) NodeCount() int {
	return self.fwd_nodes.Length()
}

func (self *AdjacencyArray) GetAccessor() AdjArrayAccessor {
	return AdjArrayAccessor{
		topology: self,
	}
}

// Count of outgoing (forward) or incoming (backward) entries of node.
func (self *AdjacencyArray) GetDegree(node int32, forward bool) int16 {
	if forward {
		return self.fwd_nodes[node].Count
	}
	return self.bwd_nodes[node].Count
}

type AdjArrayAccessor struct {
	topology *AdjacencyArray
	entries  Array[_EdgeEntry]
	index    int32
	end      int32
}

func (self *AdjArrayAccessor) SetBaseNode(node int32, forward bool) {
	if forward {
		entry := self.topology.fwd_nodes[node]
		self.entries = self.topology.fwd_entries
		self.index = entry.Start - 1
		self.end = entry.Start + int32(entry.Count)
	} else {
		entry := self.topology.bwd_nodes[node]
		self.entries = self.topology.bwd_entries
		self.index = entry.Start - 1
		self.end = entry.Start + int32(entry.Count)
	}
}
func (self *AdjArrayAccessor) Next() bool {
	self.index += 1
	return self.index < self.end
}
func (self *AdjArrayAccessor) GetEdgeID() int32 {
	return self.entries[self.index].EdgeID
}
func (self *AdjArrayAccessor) GetOtherID() int32 {
	return self.entries[self.index].OtherID
}
func (self *AdjArrayAccessor) GetType() byte {
	return self.entries[self.index].Type
}

//*******************************************
// load and store
//*******************************************

func StoreAdjacency(topology *AdjacencyArray, typed bool, file string) {
	writer := NewBufferWriter()

	Write(writer, int32(topology.fwd_nodes.Length()))
	Write(writer, int32(topology.fwd_entries.Length()))
	Write(writer, int32(topology.bwd_entries.Length()))
	for _, entry := range topology.fwd_nodes {
		Write(writer, entry.Start)
		Write(writer, entry.Count)
	}
	for _, entry := range topology.bwd_nodes {
		Write(writer, entry.Start)
		Write(writer, entry.Count)
	}
	for _, entry := range topology.fwd_entries {
		Write(writer, entry.EdgeID)
		Write(writer, entry.OtherID)
		if typed {
			Write(writer, entry.Type)
		}
	}
	for _, entry := range topology.bwd_entries {
		Write(writer, entry.EdgeID)
		Write(writer, entry.OtherID)
		if typed {
			Write(writer, entry.Type)
		}
	}

	WriteBytesToFile(writer.Bytes(), file)
}

func LoadAdjacency(file string, typed bool) AdjacencyArray {
	reader := NewBufferReader(ReadBytesFromFile(file))

	node_count := Read[int32](reader)
	fwd_count := Read[int32](reader)
	bwd_count := Read[int32](reader)
	fwd_nodes := NewArray[_NodeEntry](int(node_count))
	bwd_nodes := NewArray[_NodeEntry](int(node_count))
	for i := 0; i < int(node_count); i++ {
		start := Read[int32](reader)
		count := Read[int16](reader)
		fwd_nodes[i] = _NodeEntry{Start: start, Count: count}
	}
	for i := 0; i < int(node_count); i++ {
		start := Read[int32](reader)
		count := Read[int16](reader)
		bwd_nodes[i] = _NodeEntry{Start: start, Count: count}
	}
	fwd_entries := NewArray[_EdgeEntry](int(fwd_count))
	bwd_entries := NewArray[_EdgeEntry](int(bwd_count))
	for i := 0; i < int(fwd_count); i++ {
		fwd_entries[i] = _ReadEdgeEntry(reader, typed)
	}
	for i := 0; i < int(bwd_count); i++ {
		bwd_entries[i] = _ReadEdgeEntry(reader, typed)
	}

	return AdjacencyArray{
		fwd_nodes:   fwd_nodes,
		fwd_entries: fwd_entries,
		bwd_nodes:   bwd_nodes,
		bwd_entries: bwd_entries,
	}
}

func _ReadEdgeEntry(reader BufferReader, typed bool) _EdgeEntry {
	edge_id := Read[int32](reader)
	other_id := Read[int32](reader)
	typ := byte(0)
	if typed {
		typ = Read[byte](reader)
	}
	return _EdgeEntry{EdgeID: edge_id, OtherID: other_id, Type: typ}
}
