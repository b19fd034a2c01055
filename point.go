package simcell

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a location on the unbounded simulation plane.
type Point = mgl64.Vec2

// NewPoint builds a Point from coordinates.
func NewPoint(x, y float64) Point {
	return Point{x, y}
}

// GridPoint identifies one bucket of the spatial index's grid.
type GridPoint struct {
	X, Y int
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return a.Sub(b).Len()
}

// sign matches the spec's sign(0) = +1 convention, used by hash.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// hashAxis maps one coordinate to its grid index for a grid of the given
// bucketSize, per spec §4.1: hx = ceil((|x| - bucketSize/2) / bucketSize) * sign(x).
func hashAxis(v, bucketSize float64) int {
	h := math.Ceil((math.Abs(v) - bucketSize/2) / bucketSize)
	return int(h * sign(v))
}

// Hash returns the bucket a point falls into for a grid of the given bucketSize.
func Hash(p Point, bucketSize float64) GridPoint {
	return GridPoint{X: hashAxis(p.X(), bucketSize), Y: hashAxis(p.Y(), bucketSize)}
}

// lobeOffset returns the offset from a cell's center to one of its two lobe
// centers, along axisAngle, given the half-separation between the lobes.
func lobeOffset(halfSeparation, axisAngle float64) Point {
	return Point{halfSeparation * math.Cos(axisAngle), halfSeparation * math.Sin(axisAngle)}
}
