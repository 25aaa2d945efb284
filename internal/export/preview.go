package export

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"SketchBoard3D/internal/extrude"
	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/recognize"
)

const previewMargin = 24.0

// PNG renders a flat preview of specs: translucent fills, solid outlines.
func PNG(w io.Writer, specs []extrude.Spec, width, height int) error {
	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.White)

	vp := fit(specs, float64(width), float64(height), previewMargin)
	for _, s := range specs {
		if !tracePath(dc, vp, s) {
			continue
		}
		c := ParseColor(s.Color)
		r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255

		if s.Shape != recognize.Line {
			dc.SetRGBA(r, g, b, 0.2)
			if err := dc.FillPreserve(); err != nil {
				return fmt.Errorf("fill %s: %w", s.Shape, err)
			}
		}
		dc.SetRGB(r, g, b)
		dc.SetLineWidth(3)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke %s: %w", s.Shape, err)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// tracePath adds the outline of s to the current path, reporting false if there is nothing
// to draw.
func tracePath(dc *gg.Context, vp viewport, s extrude.Spec) bool {
	switch {
	case len(s.Points) == 0:
		return false
	case s.Shape == recognize.Circle && len(s.Points) == 2:
		x, y := vp.apply(s.Points[0])
		dc.DrawCircle(x, y, geometry.Distance(s.Points[0], s.Points[1])*vp.scale)
	default:
		x, y := vp.apply(s.Points[0])
		dc.MoveTo(x, y)
		for _, pt := range s.Points[1:] {
			x, y := vp.apply(pt)
			dc.LineTo(x, y)
		}
		if s.Shape != recognize.Line && len(s.Points) > 2 {
			dc.ClosePath()
		}
	}
	return true
}
