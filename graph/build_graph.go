package graph

import (
	"pathwerk/comps"
	. "pathwerk/util"
)

//*******************************************
// build graphs
//*******************************************

func BuildGraph(base comps.IGraphBase, weight comps.IWeighting) *Graph {
	return &Graph{
		base:   base,
		weight: weight,
		index:  None[comps.IGraphIndex](),
	}
}

func BuildTCGraph(base comps.IGraphBase, weight comps.ITCWeighting) *TCGraph {
	return &TCGraph{
		base:   base,
		weight: weight,
		index:  None[comps.IGraphIndex](),
	}
}

func BuildCHGraph(base comps.IGraphBase, weight comps.IWeighting, ch_data *comps.CH) *CHGraph {
	if ch_data.IsEdgeBased() {
		if _, ok := weight.(comps.ITCWeighting); !ok {
			panic("edge-based hierarchies need a turn-cost weighting")
		}
	}
	return &CHGraph{
		base:   base,
		weight: weight,
		ch:     ch_data,
		index:  None[comps.IGraphIndex](),
	}
}
