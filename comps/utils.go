package comps

import (
	"pathwerk/structs"
	. "pathwerk/util"
)

//*******************************************
// build graph components
//*******************************************

func _BuildTopology(nodes Array[structs.Node], edges Array[structs.Edge]) structs.AdjacencyArray {
	dyn := structs.NewAdjacencyList(nodes.Length())
	for id, edge := range edges {
		dyn.AddFWDEntry(edge.NodeA, edge.NodeB, int32(id), 0)
		dyn.AddBWDEntry(edge.NodeA, edge.NodeB, int32(id), 0)
	}

	return *structs.AdjacencyListToArray(&dyn)
}
