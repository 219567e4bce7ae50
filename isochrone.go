package main

import (
	"math"

	"github.com/paulmach/orb/geojson"

	"pathwerk/algorithm"
	"pathwerk/geo"
	. "pathwerk/util"
)

//**********************************************************
// isochrone request and response
//**********************************************************

type IsochroneRequest struct {
	// [lon, lat]
	Location []float32 `json:"location"`
	// weight thresholds, ascending
	Ranges  []float64 `json:"ranges"`
	Profile string    `json:"profile"`
}

//**********************************************************
// isochrone handler
//**********************************************************

// Returns the reached edges as a feature collection, every edge tagged
// with the smallest range threshold it falls into.
func HandleIsochroneRequest(req IsochroneRequest) Result {
	if len(req.Ranges) == 0 {
		return BadRequest("no ranges given")
	}
	profile_ := MANAGER.GetProfile(req.Profile)
	if !profile_.HasValue() {
		return BadRequest("profile not found: " + req.Profile)
	}
	profile := profile_.Value
	g := profile.GetGraph()

	nodes := MapCoordsToClosestNodes(profile, Array[geo.Coord]{{req.Location[0], req.Location[1]}})
	if nodes[0] == -1 {
		return BadRequest("location could not be matched")
	}
	max_range := req.Ranges[len(req.Ranges)-1]

	node_flags := NewFlags[algorithm.DistFlag](int32(g.NodeCount()), algorithm.DistFlag{Dist: math.Inf(1)})
	starts := Array[Tuple[int32, float64]]{{A: nodes[0], B: 0}}
	if profile.Traversal() == EDGE_BASED {
		edge_flags := NewFlags[algorithm.DistFlag](int32(g.EdgeCount()), algorithm.DistFlag{Dist: math.Inf(1)})
		algorithm.CalcRangeDijkstraTC(g, starts, node_flags, edge_flags, max_range)
	} else {
		algorithm.CalcRangeDijkstra(g, starts, node_flags, max_range)
	}

	features := make([]*geojson.Feature, 0, 100)
	for i := 0; i < g.EdgeCount(); i++ {
		edge := g.GetEdge(int32(i))
		dist_a := node_flags.Get(edge.NodeA).Dist
		dist_b := node_flags.Get(edge.NodeB).Dist
		dist := math.Max(dist_a, dist_b)
		if math.IsInf(dist, 1) || dist > max_range {
			continue
		}
		line := geo.NewLineString(geo.CoordArray{g.GetNodeGeom(edge.NodeA), g.GetNodeGeom(edge.NodeB)})
		features = append(features, geo.NewFeature(line, map[string]any{
			"value": _RangeThreshold(req.Ranges, dist),
		}))
	}
	return OK(geo.NewFeatureCollection(features))
}

func _RangeThreshold(ranges []float64, dist float64) float64 {
	for _, r := range ranges {
		if dist <= r {
			return r
		}
	}
	return ranges[len(ranges)-1]
}
