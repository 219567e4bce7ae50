package comps

import (
	"math"

	. "pathwerk/util"
)

//*******************************************
// landmark data
//*******************************************

func NewLandmarks(landmarks Array[int32], fwd_dists Array[Array[float32]], bwd_dists Array[Array[float32]], max_weight float64) *Landmarks {
	return &Landmarks{
		landmarks:  landmarks,
		fwd_dists:  fwd_dists,
		bwd_dists:  bwd_dists,
		max_weight: max_weight,
	}
}

// Precomputed distances from and to a set of landmark nodes.
//
// Distances above max_weight and unreachable nodes carry +Inf, lower
// bounds involving them degrade to zero.
type Landmarks struct {
	landmarks  Array[int32]
	fwd_dists  Array[Array[float32]]
	bwd_dists  Array[Array[float32]]
	max_weight float64
}

func (self *Landmarks) MaxWeight() float64 {
	return self.max_weight
}

func (self *Landmarks) LandmarkCount() int {
	return self.landmarks.Length()
}
func (self *Landmarks) GetLandmark(index int32) int32 {
	return self.landmarks[index]
}

// Distance from landmark index to node.
func (self *Landmarks) GetFWDDistance(index, node int32) float64 {
	return float64(self.fwd_dists[index][node])
}

// Distance from node to landmark index.
func (self *Landmarks) GetBWDDistance(index, node int32) float64 {
	return float64(self.bwd_dists[index][node])
}

// Lower bound on the shortest-path weight from node to target.
//
// Maximized over all landmarks via the triangle inequality.
func (self *Landmarks) GetHeuristic(node, target int32) float64 {
	max_dist := 0.0
	for i := 0; i < self.landmarks.Length(); i++ {
		fwd_l := self.fwd_dists[i]
		bwd_l := self.bwd_dists[i]
		// d(L, target) - d(L, node) and d(node, L) - d(target, L)
		fwd_diff := float64(fwd_l[target]) - float64(fwd_l[node])
		if !math.IsInf(fwd_diff, 0) && !math.IsNaN(fwd_diff) && fwd_diff > max_dist {
			max_dist = fwd_diff
		}
		bwd_diff := float64(bwd_l[node]) - float64(bwd_l[target])
		if !math.IsInf(bwd_diff, 0) && !math.IsNaN(bwd_diff) && bwd_diff > max_dist {
			max_dist = bwd_diff
		}
	}
	return max_dist
}

func (self *Landmarks) _New() *Landmarks {
	return &Landmarks{}
}
func (self *Landmarks) _Load(path string) {
	landmarks := ReadArrayFromFile[int32](path + "-landmarks")

	reader := NewBufferReader(ReadBytesFromFile(path + "-landmark_dists"))
	max_weight := Read[float64](reader)
	count := Read[int32](reader)
	fwd_dists := NewArray[Array[float32]](int(count))
	bwd_dists := NewArray[Array[float32]](int(count))
	for i := 0; i < int(count); i++ {
		fwd_dists[i] = ReadArray[float32](reader)
	}
	for i := 0; i < int(count); i++ {
		bwd_dists[i] = ReadArray[float32](reader)
	}

	*self = Landmarks{
		landmarks:  landmarks,
		fwd_dists:  fwd_dists,
		bwd_dists:  bwd_dists,
		max_weight: max_weight,
	}
}
func (self *Landmarks) _Store(path string) {
	WriteArrayToFile[int32](self.landmarks, path+"-landmarks")

	writer := NewBufferWriter()
	Write(writer, self.max_weight)
	Write(writer, int32(self.landmarks.Length()))
	for _, dists := range self.fwd_dists {
		WriteArray(writer, dists)
	}
	for _, dists := range self.bwd_dists {
		WriteArray(writer, dists)
	}
	WriteBytesToFile(writer.Bytes(), path+"-landmark_dists")
}
