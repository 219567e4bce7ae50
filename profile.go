package main

import (
	"errors"

	"pathwerk/comps"
	"pathwerk/graph"
	"pathwerk/routing"
	. "pathwerk/util"
)

//**********************************************************
// routing profile
//**********************************************************

// Bundles the graph components of one configured profile together with
// the prepared speed-up structures.
type RoutingProfile struct {
	name      string
	metric    MetricType
	traversal TraversalType

	base      *comps.GraphBase
	weight    comps.IWeighting
	tc_weight comps.ITCWeighting

	// smallest weight per meter of any edge, keeps the beeline bound
	// admissible
	weight_per_meter float64

	g    graph.IGraph
	ch_g Optional[graph.ICHGraph]
	lm   Optional[*comps.Landmarks]

	index comps.IGraphIndex
}

func (self *RoutingProfile) Name() string {
	return self.name
}
func (self *RoutingProfile) Metric() MetricType {
	return self.metric
}
func (self *RoutingProfile) Traversal() TraversalType {
	return self.traversal
}
func (self *RoutingProfile) GetGraph() graph.IGraph {
	return self.g
}
func (self *RoutingProfile) GetCHGraph() Optional[graph.ICHGraph] {
	return self.ch_g
}
func (self *RoutingProfile) GetLandmarks() Optional[*comps.Landmarks] {
	return self.lm
}
func (self *RoutingProfile) GetIndex() comps.IGraphIndex {
	return self.index
}

//**********************************************************
// algorithm dispatch
//**********************************************************

// Builds the per-request overlay for the snapped locations and creates
// the requested search on top of it.
//
// snaps[0] is the start, snaps[1] the end location.
func (self *RoutingProfile) CreateAlgorithm(algorithm string, snaps []comps.SnapResult) (routing.IShortestPath, error) {
	if len(snaps) != 2 {
		return nil, errors.New("expected exactly two locations")
	}
	if algorithm == "" {
		algorithm = "dijkstra"
	}

	if algorithm == "ch" {
		if !self.ch_g.HasValue() {
			return nil, errors.New("profile " + self.name + " has no contraction hierarchy")
		}
		qg, mapping := graph.LookupQueryCHGraph(self.ch_g.Value, snaps)
		start := mapping[0]
		end := mapping[1]
		if self.traversal == EDGE_BASED {
			return routing.NewTCCHDijkstra(qg, start, end), nil
		}
		return routing.NewCHDijkstra(qg, start, end), nil
	}

	qg, mapping := graph.LookupQueryGraph(self.g, snaps)
	start := mapping[0]
	end := mapping[1]

	switch algorithm {
	case "dijkstra":
		if self.traversal == EDGE_BASED {
			return routing.NewTCDijkstra(qg, start, end), nil
		}
		return routing.NewDijkstra(qg, start, end), nil
	case "astar":
		potential := routing.NewBeelinePotential(qg, end, self.weight_per_meter)
		if self.traversal == EDGE_BASED {
			return routing.NewTCAStarWithPotential(qg, start, end, potential), nil
		}
		return routing.NewAStarWithPotential(qg, start, end, potential), nil
	case "bidirect-dijkstra":
		if self.traversal == EDGE_BASED {
			return routing.NewTCBidirectDijkstra(qg, start, end), nil
		}
		return routing.NewBidirectDijkstra(qg, start, end), nil
	case "bidirect-astar":
		if self.traversal == EDGE_BASED {
			return routing.NewTCBidirectAStar(qg, start, end), nil
		}
		return routing.NewBidirectAStar(qg, start, end), nil
	case "alm-astar":
		if !self.lm.HasValue() {
			return nil, errors.New("profile " + self.name + " has no landmarks")
		}
		if self.traversal == EDGE_BASED {
			return routing.NewTCALMAStar(qg, self.lm.Value, start, end), nil
		}
		return routing.NewALMAStar(qg, self.lm.Value, start, end), nil
	case "bidirect-alm-astar":
		if !self.lm.HasValue() {
			return nil, errors.New("profile " + self.name + " has no landmarks")
		}
		if self.traversal == EDGE_BASED {
			return routing.NewTCBidirectALMAStar(qg, self.lm.Value, start, end), nil
		}
		return routing.NewBidirectALMAStar(qg, self.lm.Value, start, end), nil
	default:
		return nil, errors.New("unknown algorithm: " + algorithm)
	}
}
