package state

import "SketchBoard3D/internal/geometry"

// Stroke is the record of one continuous drag gesture.
type Stroke struct {
	ID          string           `json:"id,omitempty"`
	Points      []geometry.Point `json:"points"`
	Color       string           `json:"color"`
	StrokeWidth float64          `json:"strokeWidth"`
}

// StrokeGroup is a set of strokes believed to form one intended shape.
type StrokeGroup []Stroke

// Points flattens the points of every stroke in group order.
func (g StrokeGroup) Points() []geometry.Point {
	n := 0
	for _, s := range g {
		n += len(s.Points)
	}
	pts := make([]geometry.Point, 0, n)
	for _, s := range g {
		pts = append(pts, s.Points...)
	}
	return pts
}

// Color is the shared color of the group, empty if the group is empty.
func (g StrokeGroup) Color() string {
	if len(g) == 0 {
		return ""
	}
	return g[0].Color
}
