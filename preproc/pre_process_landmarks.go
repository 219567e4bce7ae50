package preproc

import (
	"fmt"
	"math"

	"golang.org/x/exp/slog"

	"pathwerk/comps"
	. "pathwerk/util"
)

//*******************************************
// preprocess landmarks
//*******************************************

// Selects landmarks by iterative farthest-point selection and computes
// the distance tables from and to every landmark.
//
// Table entries beyond the max_weight ceiling stay +Inf, the heuristic
// degrades to zero there. Turn costs are ignored, the tables stay a
// lower bound under edge-based traversal.
func CalcLandmarks(base comps.IGraphBase, weight comps.IWeighting, landmark_count int, max_weight float64) *comps.Landmarks {
	slog.Info(fmt.Sprintf("started selecting %v landmarks", landmark_count))
	node_count := base.NodeCount()
	if landmark_count > node_count {
		landmark_count = node_count
	}

	landmarks := NewList[int32](landmark_count)
	fwd_dists := NewList[Array[float32]](landmark_count)

	// farthest reachable node from an arbitrary seed
	seed_dists := _CalcDistanceTable(base, weight, 0, false, max_weight)
	first := int32(0)
	max_dist := -1.0
	for i := 0; i < node_count; i++ {
		dist := float64(seed_dists[i])
		if !math.IsInf(dist, 1) && dist > max_dist {
			max_dist = dist
			first = int32(i)
		}
	}
	landmarks.Add(first)
	fwd_dists.Add(_CalcDistanceTable(base, weight, first, false, max_weight))

	min_dists := NewArray[float64](node_count)
	for i := 0; i < node_count; i++ {
		min_dists[i] = math.Inf(1)
	}
	for landmarks.Length() < landmark_count {
		last := fwd_dists[fwd_dists.Length()-1]
		for i := 0; i < node_count; i++ {
			dist := float64(last[i])
			if dist < min_dists[i] {
				min_dists[i] = dist
			}
		}
		next := int32(-1)
		max_dist := -1.0
		for i := 0; i < node_count; i++ {
			if Contains(landmarks, int32(i)) {
				continue
			}
			dist := min_dists[i]
			if !math.IsInf(dist, 1) && dist > max_dist {
				max_dist = dist
				next = int32(i)
			}
		}
		if next == -1 {
			// remaining nodes are unreachable, fall back to any node
			for i := 0; i < node_count; i++ {
				if !Contains(landmarks, int32(i)) {
					next = int32(i)
					break
				}
			}
		}
		if next == -1 {
			break
		}
		landmarks.Add(next)
		fwd_dists.Add(_CalcDistanceTable(base, weight, next, false, max_weight))
	}

	bwd_dists := NewList[Array[float32]](landmarks.Length())
	for _, landmark := range landmarks {
		bwd_dists.Add(_CalcDistanceTable(base, weight, landmark, true, max_weight))
	}
	slog.Info("finished computing landmark tables")

	return comps.NewLandmarks(Array[int32](landmarks), Array[Array[float32]](fwd_dists), Array[Array[float32]](bwd_dists), max_weight)
}

// Single-source dijkstra over the base graph, bounded by max_weight.
//
// backward traverses edges against their direction, giving distances
// towards the start instead of from it.
func _CalcDistanceTable(base comps.IGraphBase, weight comps.IWeighting, start int32, backward bool, max_weight float64) Array[float32] {
	node_count := base.NodeCount()
	dists := NewArray[float64](node_count)
	visited := NewArray[bool](node_count)
	for i := 0; i < node_count; i++ {
		dists[i] = math.Inf(1)
	}
	dists[start] = 0

	heap := NewPriorityQueue[int32, float64](100)
	heap.Enqueue(start, 0)
	accessor := base.GetAccessor()
	for {
		curr_id, ok := heap.Dequeue()
		if !ok {
			break
		}
		if visited[curr_id] {
			continue
		}
		visited[curr_id] = true
		curr_dist := dists[curr_id]
		accessor.SetBaseNode(curr_id, !backward)
		for accessor.Next() {
			other_id := accessor.GetOtherID()
			if visited[other_id] {
				continue
			}
			new_dist := curr_dist + weight.GetEdgeWeight(accessor.GetEdgeID())
			if new_dist > max_weight {
				continue
			}
			if new_dist < dists[other_id] {
				dists[other_id] = new_dist
				heap.Enqueue(other_id, new_dist)
			}
		}
	}

	result := NewArray[float32](node_count)
	for i := 0; i < node_count; i++ {
		result[i] = float32(dists[i])
	}
	return result
}
