package recognize

import (
	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/state"
)

type options struct {
	clusterDistance float64
	tolerance       float64
}

// Option tunes Recognize.
type Option func(*options)

// WithClusterDistance sets the stroke proximity used for grouping.
func WithClusterDistance(d float64) Option {
	return func(o *options) {
		if d > 0 {
			o.clusterDistance = d
		}
	}
}

// WithTolerance sets the simplification tolerance used for line, triangle and polygon output.
func WithTolerance(t float64) Option {
	return func(o *options) {
		if t > 0 {
			o.tolerance = t
		}
	}
}

// Recognize clusters strokes into groups and classifies each group. The result holds one
// shape per group, in group order; no strokes yields no shapes.
func Recognize(strokes []state.Stroke, opts ...Option) []RecognizedShape {
	o := options{
		clusterDistance: state.DefaultClusterDistance,
		tolerance:       geometry.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(&o)
	}

	groups := state.ClusterStrokes(strokes, o.clusterDistance)
	shapes := make([]RecognizedShape, 0, len(groups))
	for _, g := range groups {
		shapes = append(shapes, classify(g, o.tolerance))
	}
	Logger().Info("recognized strokes", "strokes", len(strokes), "shapes", len(shapes))
	return shapes
}
