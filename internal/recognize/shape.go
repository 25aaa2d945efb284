package recognize

import (
	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/state"
)

// ShapeType names a recognized primitive.
type ShapeType string

const (
	Circle    ShapeType = "circle"
	Rectangle ShapeType = "rectangle"
	Triangle  ShapeType = "triangle"
	Polygon   ShapeType = "polygon"
	Line      ShapeType = "line"
)

// Properties holds the derived measurements of a shape. Which fields are set depends on the
// shape type: circles carry Radius, Center and Area; rectangles Width, Height and Area; lines
// Length and Angle.
type Properties struct {
	Radius *float64        `json:"radius,omitempty"`
	Center *geometry.Point `json:"center,omitempty"`
	Length *float64        `json:"length,omitempty"`
	Angle  *float64        `json:"angle,omitempty"`
	Width  *float64        `json:"width,omitempty"`
	Height *float64        `json:"height,omitempty"`
	Area   *float64        `json:"area,omitempty"`
}

// RecognizedShape is one classified primitive together with the strokes it came from.
type RecognizedShape struct {
	Type            ShapeType        `json:"type"`
	Points          []geometry.Point `json:"points"`
	Color           string           `json:"color"`
	OriginalStrokes []state.Stroke   `json:"originalStrokes"`
	BoundingBox     *geometry.BBox   `json:"boundingBox,omitempty"`
	Properties      *Properties      `json:"properties,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}
