package routing

import (
	"pathwerk/geo"
	"pathwerk/graph"
)

//*******************************************
// shortest path interface
//*******************************************

type IShortestPath interface {
	// Runs the search to completion, false if no path exists.
	CalcShortestPath() bool
	// Advances the search by count settled items calling the visited
	// callback for every settled edge, false once the search finished.
	Steps(count int, visited func(int32)) bool
	GetShortestPath() Path
}

//*******************************************
// potentials
//*******************************************

// Lower bound on the remaining weight towards the search target.
type IPotential interface {
	GetPotential(node int32) float64
}

type ZeroPotential struct{}

func (self ZeroPotential) GetPotential(node int32) float64 {
	return 0
}

// Beeline lower bound, scaled by the smallest weight per meter of the
// weighting.
type BeelinePotential struct {
	g      graph.IGraph
	target geo.Coord
	factor float64
}

func NewBeelinePotential(g graph.IGraph, target int32, weight_per_meter float64) *BeelinePotential {
	return &BeelinePotential{
		g:      g,
		target: g.GetNodeGeom(target),
		factor: weight_per_meter,
	}
}

func (self *BeelinePotential) GetPotential(node int32) float64 {
	return geo.HaversineDistance(self.g.GetNodeGeom(node), self.target) * self.factor
}
