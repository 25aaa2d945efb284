package recognize

import (
	"math"

	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/state"
)

const (
	circleThreshold    = 0.7
	rectangleThreshold = 0.8

	// circularity reaches zero when the radial deviation is half the mean radius
	circularitySpread = 0.5

	minCirclePoints     = 5
	minRectanglePoints  = 4
	lineMaxRawPoints    = 10
	lineMaxVertices     = 3
	triangleMaxVertices = 4
)

// Circularity scores in [0,1] how evenly points sit around their centroid.
func Circularity(points []geometry.Point) float64 {
	return circularity(points, geometry.Centroid(points))
}

func circularity(points []geometry.Point, center geometry.Point) float64 {
	mean, std := radialStats(points, center)
	if mean == 0 {
		return 0
	}
	return math.Max(0, 1-(std/mean)/circularitySpread)
}

// radialStats returns the mean and population standard deviation of the distances from
// points to center.
func radialStats(points []geometry.Point, center geometry.Point) (mean, std float64) {
	if len(points) == 0 {
		return 0, 0
	}
	dists := make([]float64, len(points))
	for i, p := range points {
		dists[i] = geometry.Distance(p, center)
		mean += dists[i]
	}
	mean /= float64(len(dists))
	for _, d := range dists {
		std += (d - mean) * (d - mean)
	}
	std = math.Sqrt(std / float64(len(dists)))
	return mean, std
}

// Rectangularity compares the shoelace area of points with the area of their bounding box.
// It is 1 for an exact match and falls toward 0 as either area dominates.
func Rectangularity(points []geometry.Point) float64 {
	return rectangularity(points, geometry.BoundingBox(points))
}

func rectangularity(points []geometry.Point, box geometry.BBox) float64 {
	poly := geometry.PolygonArea(points)
	area := box.Area()
	if poly == 0 || area == 0 {
		return 0
	}
	return math.Min(poly/area, area/poly)
}

// features is the per-group data shared by the classification rules.
type features struct {
	group     state.StrokeGroup
	points    []geometry.Point
	centroid  geometry.Point
	bbox      geometry.BBox
	tolerance float64

	simplified []geometry.Point
}

func newFeatures(group state.StrokeGroup, tolerance float64) *features {
	pts := group.Points()
	return &features{
		group:     group,
		points:    pts,
		centroid:  geometry.Centroid(pts),
		bbox:      geometry.BoundingBox(pts),
		tolerance: tolerance,
	}
}

func (f *features) simplify() []geometry.Point {
	if f.simplified == nil {
		f.simplified = geometry.Simplify(f.points, f.tolerance)
	}
	return f.simplified
}

func (f *features) shape(t ShapeType, points []geometry.Point, props *Properties) RecognizedShape {
	box := f.bbox
	strokes := make([]state.Stroke, len(f.group))
	copy(strokes, f.group)
	return RecognizedShape{
		Type:            t,
		Points:          points,
		Color:           f.group.Color(),
		OriginalStrokes: strokes,
		BoundingBox:     &box,
		Properties:      props,
	}
}

// rule pairs a predicate with the constructor used when it matches. Rules are tried in
// order and the first match wins.
type rule struct {
	shape ShapeType
	match func(*features) bool
	build func(*features) RecognizedShape
}

var rules = []rule{
	{Circle, isCircle, buildCircle},
	{Rectangle, isRectangle, buildRectangle},
	{Line, isLine, buildSimplified(Line)},
	{Triangle, isTriangle, buildSimplified(Triangle)},
	{Polygon, func(*features) bool { return true }, buildSimplified(Polygon)},
}

func isCircle(f *features) bool {
	return len(f.points) >= minCirclePoints && circularity(f.points, f.centroid) > circleThreshold
}

func buildCircle(f *features) RecognizedShape {
	radius, _ := radialStats(f.points, f.centroid)
	center := f.centroid
	return f.shape(Circle,
		[]geometry.Point{center, {X: center.X + radius, Y: center.Y}},
		&Properties{
			Radius: ptr(radius),
			Center: ptr(center),
			Area:   ptr(math.Pi * radius * radius),
		})
}

func isRectangle(f *features) bool {
	return len(f.points) >= minRectanglePoints && rectangularity(f.points, f.bbox) > rectangleThreshold
}

func buildRectangle(f *features) RecognizedShape {
	return f.shape(Rectangle, f.bbox.Corners(), &Properties{
		Width:  ptr(f.bbox.Width),
		Height: ptr(f.bbox.Height),
		Area:   ptr(f.bbox.Area()),
	})
}

func isLine(f *features) bool {
	if len(f.group) != 1 || len(f.points) >= lineMaxRawPoints {
		return false
	}
	return len(f.simplify()) <= lineMaxVertices
}

func isTriangle(f *features) bool {
	return len(f.simplify()) <= triangleMaxVertices
}

func buildSimplified(t ShapeType) func(*features) RecognizedShape {
	return func(f *features) RecognizedShape {
		pts := f.simplify()
		if t != Line {
			return f.shape(t, pts, nil)
		}
		props := &Properties{Length: ptr(geometry.PathLength(pts))}
		if len(pts) >= 2 {
			first, last := pts[0], pts[len(pts)-1]
			props.Angle = ptr(math.Atan2(last.Y-first.Y, last.X-first.X))
		}
		return f.shape(Line, pts, props)
	}
}

// Classify turns one stroke group into exactly one shape.
func Classify(group state.StrokeGroup) RecognizedShape {
	return classify(group, geometry.DefaultTolerance)
}

func classify(group state.StrokeGroup, tolerance float64) RecognizedShape {
	f := newFeatures(group, tolerance)
	for _, r := range rules {
		if r.match(f) {
			s := r.build(f)
			Logger().Debug("classified stroke group",
				"shape", string(s.Type),
				"strokes", len(group),
				"points", len(f.points),
				"vertices", len(s.Points))
			return s
		}
	}
	// unreachable: the polygon rule always matches
	return buildSimplified(Polygon)(f)
}
