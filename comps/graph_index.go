package comps

import (
	"github.com/tidwall/rtree"

	"pathwerk/geo"
	. "pathwerk/util"
)

//*******************************************
// graph index interface
//*******************************************

// Point snapped onto an edge of the graph.
//
// Position is the fraction along the edge, 0 at NodeA and 1 at NodeB.
type SnapResult struct {
	EdgeID   int32
	Point    geo.Coord
	Position float32
	Dist     float64
}

type IGraphIndex interface {
	GetClosestNode(point geo.Coord) (int32, bool)
	FindClosestEdge(point geo.Coord) (SnapResult, bool)
}

const max_snap_dist = 500.0

//*******************************************
// graph index
//*******************************************

var _ IGraphIndex = &BaseGraphIndex{}

type BaseGraphIndex struct {
	base       IGraphBase
	node_index rtree.RTreeG[int32]
	edge_index rtree.RTreeG[int32]
}

func NewGraphIndex(base IGraphBase) *BaseGraphIndex {
	index := &BaseGraphIndex{
		base: base,
	}
	for i := 0; i < base.NodeCount(); i++ {
		loc := base.GetNode(int32(i)).Loc
		point := [2]float64{float64(loc.Lon()), float64(loc.Lat())}
		index.node_index.Insert(point, point, int32(i))
	}
	for i := 0; i < base.EdgeCount(); i++ {
		edge := base.GetEdge(int32(i))
		loc_a := base.GetNode(edge.NodeA).Loc
		loc_b := base.GetNode(edge.NodeB).Loc
		min := [2]float64{
			float64(Min(loc_a.Lon(), loc_b.Lon())),
			float64(Min(loc_a.Lat(), loc_b.Lat())),
		}
		max := [2]float64{
			float64(Max(loc_a.Lon(), loc_b.Lon())),
			float64(Max(loc_a.Lat(), loc_b.Lat())),
		}
		index.edge_index.Insert(min, max, int32(i))
	}
	return index
}

func (self *BaseGraphIndex) GetClosestNode(point geo.Coord) (int32, bool) {
	target := [2]float64{float64(point.Lon()), float64(point.Lat())}
	closest := int32(-1)
	self.node_index.Nearby(
		rtree.BoxDist[float64, int32](target, target, nil),
		func(min, max [2]float64, node int32, dist float64) bool {
			loc := self.base.GetNode(node).Loc
			if geo.HaversineDistance(point, loc) > max_snap_dist {
				return false
			}
			closest = node
			return false
		},
	)
	return closest, closest != -1
}

// Snaps point onto the closest edge within the snapping radius.
//
// Candidates are scanned in order of bounding-box distance until the
// best found projection cannot be beaten anymore.
func (self *BaseGraphIndex) FindClosestEdge(point geo.Coord) (SnapResult, bool) {
	target := [2]float64{float64(point.Lon()), float64(point.Lat())}
	best := SnapResult{EdgeID: -1, Dist: max_snap_dist}

	// rough meters-per-degree bound used to compare box distances in
	// degrees against the best projection distance in meters
	deg_dist := best.Dist / 111000

	self.edge_index.Nearby(
		rtree.BoxDist[float64, int32](target, target, nil),
		func(min, max [2]float64, edge_id int32, box_dist float64) bool {
			if box_dist > deg_dist {
				return false
			}
			edge := self.base.GetEdge(edge_id)
			loc_a := self.base.GetNode(edge.NodeA).Loc
			loc_b := self.base.GetNode(edge.NodeB).Loc
			projected, position, dist := geo.PointToSegment(point, loc_a, loc_b)
			if dist < best.Dist {
				best = SnapResult{
					EdgeID:   edge_id,
					Point:    projected,
					Position: position,
					Dist:     dist,
				}
				deg_dist = dist/111000 + 1e-4
			}
			return true
		},
	)
	if best.EdgeID == -1 {
		return best, false
	}
	return best, true
}
