package main

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/exp/slog"

	"pathwerk/comps"
	"pathwerk/geo"
	"pathwerk/graph"
	"pathwerk/routing"
	. "pathwerk/util"
)

//**********************************************************
// routing requests and responses
//**********************************************************

type RoutingRequest struct {
	// [lon, lat]
	Start     []float32 `json:"start"`
	End       []float32 `json:"end"`
	Profile   string    `json:"profile"`
	Algorithm string    `json:"algorithm"`
	Key       int       `json:"key"`
}

type DrawContextRequest struct {
	Start     []float32 `json:"start"`
	End       []float32 `json:"end"`
	Profile   string    `json:"profile"`
	Algorithm string    `json:"algorithm"`
}

type DrawContextResponse struct {
	Key int `json:"key"`
}

type DrawRoutingRequest struct {
	Key       int `json:"key"`
	Stepcount int `json:"stepcount"`
}

type RoutingResponse struct {
	Type     string             `json:"type"`
	Finished bool               `json:"finished"`
	Features []*geojson.Feature `json:"features"`
	Key      int                `json:"key"`
}

func NewRoutingResponse(lines []geo.CoordArray, finished bool, key int) RoutingResponse {
	features := make([]*geojson.Feature, 0, len(lines))
	for _, line := range lines {
		geom := geo.NewLineString(line)
		features = append(features, geo.NewFeature(geom, map[string]any{"value": 0}))
	}
	return RoutingResponse{
		Type:     "FeatureCollection",
		Finished: finished,
		Features: features,
		Key:      key,
	}
}

//**********************************************************
// routing handlers
//**********************************************************

func HandleRoutingRequest(req RoutingRequest) Result {
	profile_ := MANAGER.GetProfile(req.Profile)
	if !profile_.HasValue() {
		return BadRequest("profile not found: " + req.Profile)
	}
	profile := profile_.Value

	snaps, res := MapCoordsToSnaps(profile, [][]float32{req.Start, req.End})
	if snaps == nil {
		return res
	}
	alg, err := profile.CreateAlgorithm(req.Algorithm, snaps)
	if err != nil {
		return BadRequest(err.Error())
	}

	slog.Debug(fmt.Sprintf("routing between %v and %v using %v", req.Start, req.End, req.Algorithm))
	if !alg.CalcShortestPath() {
		return BadRequest("no route found")
	}
	path := alg.GetShortestPath()
	return OK(NewRoutingResponse([]geo.CoordArray{path.GetGeometry()}, true, req.Key))
}

//**********************************************************
// step-wise routing for map rendering
//**********************************************************

// Active draw contexts keyed by a request handle.
var algs_dict = NewDict[int, Tuple[*RoutingProfile, routing.IShortestPath]](10)

func HandleCreateContextRequest(req DrawContextRequest) Result {
	profile_ := MANAGER.GetProfile(req.Profile)
	if !profile_.HasValue() {
		return BadRequest("profile not found: " + req.Profile)
	}
	profile := profile_.Value

	snaps, res := MapCoordsToSnaps(profile, [][]float32{req.Start, req.End})
	if snaps == nil {
		return res
	}
	alg, err := profile.CreateAlgorithm(req.Algorithm, snaps)
	if err != nil {
		return BadRequest(err.Error())
	}

	key := -1
	for {
		k := rand.Intn(1000)
		if !algs_dict.ContainsKey(k) {
			algs_dict[k] = MakeTuple(profile, alg)
			key = k
			break
		}
	}
	return OK(DrawContextResponse{Key: key})
}

func HandleRoutingStepRequest(req DrawRoutingRequest) Result {
	if !algs_dict.ContainsKey(req.Key) {
		return BadRequest("key not found")
	}
	item := algs_dict[req.Key]
	profile := item.A
	alg := item.B

	g := profile.GetGraph()
	edges := NewList[geo.CoordArray](10)
	finished := !alg.Steps(req.Stepcount, func(edge int32) {
		if line, ok := _EdgeGeometry(g, edge); ok {
			edges.Add(line)
		}
	})
	if finished {
		algs_dict.Delete(req.Key)
		path := alg.GetShortestPath()
		if !path.Exists() {
			return BadRequest("no route found")
		}
		return OK(NewRoutingResponse([]geo.CoordArray{path.GetGeometry()}, true, req.Key))
	}
	return OK(NewRoutingResponse(edges, false, req.Key))
}

// Settled ids outside the stored edge range (overlay pieces, shortcuts)
// are skipped in the visualization.
func _EdgeGeometry(g graph.IGraph, edge int32) (geo.CoordArray, bool) {
	if edge < 0 || int(edge) >= g.EdgeCount() {
		return nil, false
	}
	e := g.GetEdge(edge)
	return geo.CoordArray{g.GetNodeGeom(e.NodeA), g.GetNodeGeom(e.NodeB)}, true
}

//**********************************************************
// snapping
//**********************************************************

// Snaps request coordinates onto the profiles graph, nil with a filled
// error result if any location cannot be matched.
func MapCoordsToSnaps(profile *RoutingProfile, coords [][]float32) ([]comps.SnapResult, Result) {
	index := profile.GetIndex()
	snaps := make([]comps.SnapResult, len(coords))
	for i, coord := range coords {
		if len(coord) != 2 {
			return nil, BadRequest("invalid location")
		}
		snap, ok := index.FindClosestEdge(geo.Coord{coord[0], coord[1]})
		if !ok {
			return nil, BadRequest(fmt.Sprintf("location %v could not be matched", coord))
		}
		snaps[i] = snap
	}
	return snaps, OK("")
}
