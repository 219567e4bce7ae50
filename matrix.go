package main

import (
	"math"
	"sync"

	"golang.org/x/exp/slog"

	"pathwerk/algorithm"
	"pathwerk/geo"
	. "pathwerk/util"
)

//**********************************************************
// matrix request and response
//**********************************************************

type MatrixRequest struct {
	Sources      Array[geo.Coord] `json:"sources"`
	Destinations Array[geo.Coord] `json:"destinations"`
	Profile      string           `json:"profile"`
	MaxRange     float64          `json:"max_range"`
}

// Unreachable pairs carry -1.
type MatrixResponse struct {
	Distances Matrix[float32] `json:"distances"`
}

const matrix_workers = 4

//**********************************************************
// matrix handler
//**********************************************************

func HandleMatrixRequest(req MatrixRequest) Result {
	slog.Info("Run Matrix Request")

	max_range := req.MaxRange
	if max_range <= 0 {
		max_range = math.Inf(1)
	}
	profile_ := MANAGER.GetProfile(req.Profile)
	if !profile_.HasValue() {
		return BadRequest("profile not found: " + req.Profile)
	}
	profile := profile_.Value
	g := profile.GetGraph()

	source_nodes := MapCoordsToClosestNodes(profile, req.Sources)
	target_nodes := MapCoordsToClosestNodes(profile, req.Destinations)
	source_chan := make(chan Tuple[int, int32], source_nodes.Length())
	for i := 0; i < source_nodes.Length(); i++ {
		source_chan <- MakeTuple(i, source_nodes[i])
	}
	close(source_chan)

	edge_based := profile.Traversal() == EDGE_BASED
	matrix := NewMatrix[float32](source_nodes.Length(), target_nodes.Length())
	wg := sync.WaitGroup{}
	for i := 0; i < matrix_workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// search state is reused between the sources of this worker
			node_flags := NewFlags[algorithm.DistFlag](int32(g.NodeCount()), algorithm.DistFlag{Dist: math.Inf(1)})
			edge_flags := NewFlags[algorithm.DistFlag](int32(g.EdgeCount()), algorithm.DistFlag{Dist: math.Inf(1)})
			for {
				temp, ok := <-source_chan
				if !ok {
					break
				}
				s := temp.A
				s_node := temp.B
				if s_node == -1 {
					for t := 0; t < target_nodes.Length(); t++ {
						matrix.Set(s, t, -1)
					}
					continue
				}

				node_flags.Reset()
				starts := Array[Tuple[int32, float64]]{{A: s_node, B: 0}}
				if edge_based {
					edge_flags.Reset()
					algorithm.CalcRangeDijkstraTC(g, starts, node_flags, edge_flags, max_range)
				} else {
					algorithm.CalcRangeDijkstra(g, starts, node_flags, max_range)
				}

				for t, t_node := range target_nodes {
					if t_node == -1 {
						matrix.Set(s, t, -1)
						continue
					}
					dist := node_flags.Get(t_node).Dist
					if math.IsInf(dist, 1) || dist > max_range {
						matrix.Set(s, t, -1)
						continue
					}
					matrix.Set(s, t, float32(dist))
				}
			}
		}()
	}
	wg.Wait()

	slog.Info("Matrix response build")
	return OK(MatrixResponse{Distances: matrix})
}
