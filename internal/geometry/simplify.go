package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// DefaultTolerance is the simplification tolerance in surface pixels.
const DefaultTolerance = 5.0

// Simplify reduces points with Douglas-Peucker: an interior point survives only if it lies
// farther than tolerance from the segment joining the anchors of its subrange. The first and
// last points always survive. Inputs of two points or fewer come back as an unchanged copy.
// Distance is measured to the segment, clamped at its anchors, not to the infinite line
// through them, so points beyond an anchor count by their distance to that anchor.
func Simplify(points []Point, tolerance float64) []Point {
	if len(points) <= 2 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}

	// the simplifier rewrites its input in place
	simplified := simplify.DouglasPeucker(tolerance).Simplify(toLineString(points))
	ls, ok := simplified.(orb.LineString)
	if !ok || len(ls) == 0 {
		return []Point{points[0], points[len(points)-1]}
	}

	out := make([]Point, len(ls))
	for i, p := range ls {
		out[i] = fromOrb(p)
	}
	return out
}
