package export

import (
	"math"

	"SketchBoard3D/internal/extrude"
	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/recognize"
)

// viewport maps sketch coordinates into a target area, preserving aspect ratio.
type viewport struct {
	scale      float64
	offX, offY float64
}

func (v viewport) apply(p geometry.Point) (float64, float64) {
	return v.offX + p.X*v.scale, v.offY + p.Y*v.scale
}

// extent returns the bounding box of everything that will be drawn for specs.
func extent(specs []extrude.Spec) geometry.BBox {
	var pts []geometry.Point
	for _, s := range specs {
		if s.Shape == recognize.Circle && len(s.Points) == 2 {
			c, r := s.Points[0], geometry.Distance(s.Points[0], s.Points[1])
			pts = append(pts, geometry.Point{X: c.X - r, Y: c.Y - r}, geometry.Point{X: c.X + r, Y: c.Y + r})
			continue
		}
		pts = append(pts, s.Points...)
	}
	return geometry.BoundingBox(pts)
}

// fit centres the specs' extent inside a width x height area with the given margin.
func fit(specs []extrude.Spec, width, height, margin float64) viewport {
	box := extent(specs)
	availW, availH := width-2*margin, height-2*margin
	scale := 1.0
	switch {
	case box.Width > 0 && box.Height > 0:
		scale = math.Min(availW/box.Width, availH/box.Height)
	case box.Width > 0:
		scale = availW / box.Width
	case box.Height > 0:
		scale = availH / box.Height
	}
	return viewport{
		scale: scale,
		offX:  margin + (availW-box.Width*scale)/2 - box.X*scale,
		offY:  margin + (availH-box.Height*scale)/2 - box.Y*scale,
	}
}
