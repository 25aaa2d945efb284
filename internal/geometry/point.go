package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a 2D sample in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BBox is an axis-aligned rectangle anchored at its top-left corner.
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width*Height.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// Corners returns the four corners clockwise, starting top-left.
func (b BBox) Corners() []Point {
	return []Point{
		{X: b.X, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y + b.Height},
		{X: b.X, Y: b.Y + b.Height},
	}
}

// Gap returns the distance between the closest edges of two boxes, 0 if they touch or overlap.
func (b BBox) Gap(o BBox) float64 {
	dx := math.Max(0, math.Max(o.X-(b.X+b.Width), b.X-(o.X+o.Width)))
	dy := math.Max(0, math.Max(o.Y-(b.Y+b.Height), b.Y-(o.Y+o.Height)))
	return math.Hypot(dx, dy)
}

func (p Point) orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

func fromOrb(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

func toLineString(points []Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = p.orb()
	}
	return ls
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return planar.Distance(a.orb(), b.orb())
}

// PathLength sums the distances between consecutive points.
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	return planar.Length(toLineString(points))
}

// BoundingBox returns the axis-aligned extents of points, or the zero BBox when empty.
func BoundingBox(points []Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	bound := toLineString(points).Bound()
	return BBox{
		X:      bound.Min.X(),
		Y:      bound.Min.Y(),
		Width:  bound.Max.X() - bound.Min.X(),
		Height: bound.Max.Y() - bound.Min.Y(),
	}
}

// Centroid returns the arithmetic mean of points, or the origin when empty.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// PolygonArea is the absolute shoelace area of the polygon traced by points in order.
// The sequence is closed implicitly and may self-intersect.
func PolygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	ring := orb.Ring(toLineString(points))
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return math.Abs(planar.Area(ring))
}
