package comps

import (
	"math"

	. "pathwerk/util"
)

//*******************************************
// weighting interface
//*******************************************

type IWeighting interface {
	GetEdgeWeight(edge int32) float64
	GetEdgeTime(edge int32) float64
}

// Weighting with costs on transitions between edges.
//
// A turn cost of +Inf marks a forbidden turn.
type ITCWeighting interface {
	IWeighting
	GetTurnCost(from, via, to int32) float64
}

//*******************************************
// default weighting without turn costs
//*******************************************

type DefaultWeighting struct {
	edge_weights []float64
	edge_times   []float64
}

func NewDefaultWeighting(base IGraphBase) *DefaultWeighting {
	return &DefaultWeighting{
		edge_weights: make([]float64, base.EdgeCount()),
		edge_times:   make([]float64, base.EdgeCount()),
	}
}

func (self *DefaultWeighting) GetEdgeWeight(edge int32) float64 {
	return self.edge_weights[edge]
}
func (self *DefaultWeighting) GetEdgeTime(edge int32) float64 {
	return self.edge_times[edge]
}
func (self *DefaultWeighting) SetEdgeWeight(edge int32, weight float64) {
	if weight < 0 {
		panic("edge weights have to be non-negative")
	}
	self.edge_weights[edge] = weight
}
func (self *DefaultWeighting) SetEdgeTime(edge int32, time float64) {
	self.edge_times[edge] = time
}
func (self *DefaultWeighting) GetTurnCost(from, via, to int32) float64 {
	return 0
}

func (self *DefaultWeighting) _New() *DefaultWeighting {
	return &DefaultWeighting{}
}
func (self *DefaultWeighting) _Load(path string) {
	reader := NewBufferReader(ReadBytesFromFile(path + "-weight"))

	edgecount := Read[int32](reader)
	weights := make([]float64, edgecount)
	times := make([]float64, edgecount)
	for i := 0; i < int(edgecount); i++ {
		weights[i] = Read[float64](reader)
		times[i] = Read[float64](reader)
	}

	*self = DefaultWeighting{
		edge_weights: weights,
		edge_times:   times,
	}
}
func (self *DefaultWeighting) _Store(path string) {
	writer := NewBufferWriter()

	edgecount := len(self.edge_weights)
	Write(writer, int32(edgecount))
	for i := 0; i < edgecount; i++ {
		Write(writer, self.edge_weights[i])
		Write(writer, self.edge_times[i])
	}

	WriteBytesToFile(writer.Bytes(), path+"-weight")
}

//*******************************************
// weighting with turn costs
//*******************************************

// Per-node turn-cost matrices indexed by the incoming and outgoing edge
// position in the adjacency.
type TCWeighting struct {
	edge_weights []float64
	edge_times   []float64
	edge_indices List[Tuple[byte, byte]]
	turn_refs    List[Triple[int, byte, byte]]
	turn_weights []float32
}

func NewTCWeighting(base IGraphBase) *TCWeighting {
	edge_weights := make([]float64, base.EdgeCount())
	edge_times := make([]float64, base.EdgeCount())
	edge_indices := NewArray[Tuple[byte, byte]](base.EdgeCount())
	turn_cost_ref := NewArray[Triple[int, byte, byte]](base.NodeCount())

	size := 0
	accessor := base.GetAccessor()
	for i := 0; i < base.NodeCount(); i++ {
		fwd_index := 0
		accessor.SetBaseNode(int32(i), true)
		for accessor.Next() {
			edge_id := accessor.GetEdgeID()
			edge_indices[edge_id].A = byte(fwd_index)
			fwd_index += 1
		}
		bwd_index := 0
		accessor.SetBaseNode(int32(i), false)
		for accessor.Next() {
			edge_id := accessor.GetEdgeID()
			edge_indices[edge_id].B = byte(bwd_index)
			bwd_index += 1
		}
		turn_cost_ref[i].B = byte(bwd_index)
		turn_cost_ref[i].C = byte(fwd_index)
		turn_cost_ref[i].A = size
		size += bwd_index * fwd_index
	}
	turn_cost_map := make([]float32, size)

	return &TCWeighting{
		edge_weights: edge_weights,
		edge_times:   edge_times,
		edge_indices: List[Tuple[byte, byte]](edge_indices),
		turn_refs:    List[Triple[int, byte, byte]](turn_cost_ref),
		turn_weights: turn_cost_map,
	}
}

func (self *TCWeighting) GetEdgeWeight(edge int32) float64 {
	return self.edge_weights[edge]
}
func (self *TCWeighting) GetEdgeTime(edge int32) float64 {
	return self.edge_times[edge]
}
func (self *TCWeighting) SetEdgeWeight(edge int32, weight float64) {
	if weight < 0 {
		panic("edge weights have to be non-negative")
	}
	self.edge_weights[edge] = weight
}
func (self *TCWeighting) SetEdgeTime(edge int32, time float64) {
	self.edge_times[edge] = time
}

// from and to are edge ids, via the node between them.
func (self *TCWeighting) GetTurnCost(from, via, to int32) float64 {
	bwd_index := self.edge_indices[from].B
	fwd_index := self.edge_indices[to].A
	tc_ref := self.turn_refs[via]
	cols := tc_ref.C
	loc := tc_ref.A
	return float64(self.turn_weights[loc+int(cols)*int(bwd_index)+int(fwd_index)])
}
func (self *TCWeighting) SetTurnCost(from, via, to int32, weight float64) {
	bwd_index := self.edge_indices[from].B
	fwd_index := self.edge_indices[to].A
	tc_ref := self.turn_refs[via]
	cols := tc_ref.C
	loc := tc_ref.A
	self.turn_weights[loc+int(cols)*int(bwd_index)+int(fwd_index)] = float32(weight)
}

// Forbids the transition from -> via -> to.
func (self *TCWeighting) SetTurnRestriction(from, via, to int32) {
	self.SetTurnCost(from, via, to, math.Inf(1))
}

func (self *TCWeighting) _New() *TCWeighting {
	return &TCWeighting{}
}
func (self *TCWeighting) _Load(path string) {
	reader := NewBufferReader(ReadBytesFromFile(path + "-weight"))

	edgecount := Read[int32](reader)
	nodecount := Read[int32](reader)

	edge_weights := make([]float64, edgecount)
	edge_times := make([]float64, edgecount)
	edge_indices := NewArray[Tuple[byte, byte]](int(edgecount))
	for i := 0; i < int(edgecount); i++ {
		edge_weights[i] = Read[float64](reader)
		edge_times[i] = Read[float64](reader)
		ei_a := Read[uint8](reader)
		ei_b := Read[uint8](reader)
		edge_indices[i] = MakeTuple(ei_a, ei_b)
	}
	turn_refs := NewArray[Triple[int, byte, byte]](int(nodecount))
	for i := 0; i < int(nodecount); i++ {
		ref_a := Read[int32](reader)
		ref_b := Read[uint8](reader)
		ref_c := Read[uint8](reader)
		turn_refs[i] = MakeTriple(int(ref_a), ref_b, ref_c)
	}
	turn_weights := ReadArray[float32](reader)

	*self = TCWeighting{
		edge_weights: edge_weights,
		edge_times:   edge_times,
		edge_indices: List[Tuple[byte, byte]](edge_indices),
		turn_refs:    List[Triple[int, byte, byte]](turn_refs),
		turn_weights: turn_weights,
	}
}
func (self *TCWeighting) _Store(path string) {
	writer := NewBufferWriter()

	edgecount := len(self.edge_weights)
	Write(writer, int32(edgecount))
	nodecount := len(self.turn_refs)
	Write(writer, int32(nodecount))

	for i := 0; i < edgecount; i++ {
		Write(writer, self.edge_weights[i])
		Write(writer, self.edge_times[i])
		edge_indices := self.edge_indices[i]
		Write(writer, uint8(edge_indices.A))
		Write(writer, uint8(edge_indices.B))
	}
	for i := 0; i < nodecount; i++ {
		tc_ref := self.turn_refs[i]
		Write(writer, int32(tc_ref.A))
		Write(writer, uint8(tc_ref.B))
		Write(writer, uint8(tc_ref.C))
	}
	WriteArray(writer, Array[float32](self.turn_weights))

	WriteBytesToFile(writer.Bytes(), path+"-weight")
}
