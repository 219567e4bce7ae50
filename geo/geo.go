package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

//*******************************************
// coordinates
//*******************************************

// Coord stores a location as [lon, lat] (geojson axis order).
type Coord [2]float32

func (self Coord) Lon() float32 {
	return self[0]
}
func (self Coord) Lat() float32 {
	return self[1]
}

type CoordArray []Coord

const earth_radius = 6371000.0

// Returns the haversine distance between a and b in meters.
func HaversineDistance(a, b Coord) float64 {
	lat1 := float64(a.Lat()) * math.Pi / 180
	lat2 := float64(b.Lat()) * math.Pi / 180
	dlat := lat2 - lat1
	dlon := (float64(b.Lon()) - float64(a.Lon())) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earth_radius * math.Asin(math.Sqrt(h))
}

// Projects p onto the segment a-b using an equirectangular approximation.
//
// Returns the projected point, the position along the segment in [0, 1]
// and the distance from p to the projection in meters.
func PointToSegment(p, a, b Coord) (Coord, float32, float64) {
	// scale lon by cos(lat) so degree offsets are comparable
	scale := math.Cos(float64(p.Lat()) * math.Pi / 180)
	px := float64(p.Lon()) * scale
	py := float64(p.Lat())
	ax := float64(a.Lon()) * scale
	ay := float64(a.Lat())
	bx := float64(b.Lon()) * scale
	by := float64(b.Lat())

	dx := bx - ax
	dy := by - ay
	length_sq := dx*dx + dy*dy
	position := 0.0
	if length_sq > 0 {
		position = ((px-ax)*dx + (py-ay)*dy) / length_sq
		if position < 0 {
			position = 0
		} else if position > 1 {
			position = 1
		}
	}
	point := Coord{
		a.Lon() + float32(position)*(b.Lon()-a.Lon()),
		a.Lat() + float32(position)*(b.Lat()-a.Lat()),
	}
	return point, float32(position), HaversineDistance(p, point)
}

//*******************************************
// geojson output
//*******************************************

func NewLineString(coords CoordArray) orb.LineString {
	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{float64(c.Lon()), float64(c.Lat())}
	}
	return line
}

func NewPoint(coord Coord) orb.Point {
	return orb.Point{float64(coord.Lon()), float64(coord.Lat())}
}

func NewFeature(geom orb.Geometry, props map[string]any) *geojson.Feature {
	feature := geojson.NewFeature(geom)
	for k, v := range props {
		feature.Properties[k] = v
	}
	return feature
}

func NewFeatureCollection(features []*geojson.Feature) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	collection.Features = features
	return collection
}
