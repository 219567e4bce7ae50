package main

import (
	"os"

	"pathwerk/geo"
	. "pathwerk/util"
)

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Maps every coordinate onto the closest graph node, -1 if none lies
// within the snapping radius.
func MapCoordsToClosestNodes(profile *RoutingProfile, coords Array[geo.Coord]) Array[int32] {
	index := profile.GetIndex()
	nodes := NewArray[int32](coords.Length())
	for i, coord := range coords {
		id, ok := index.GetClosestNode(coord)
		if ok {
			nodes[i] = id
		} else {
			nodes[i] = -1
		}
	}
	return nodes
}
