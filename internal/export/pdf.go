package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"SketchBoard3D/internal/extrude"
	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/recognize"
)

const (
	pageW, pageH = 297.0, 210.0 // A4 landscape, mm
	pageMargin   = 15.0
)

// PDF writes a one-page drawing of specs with a label per shape.
func PDF(w io.Writer, specs []extrude.Spec) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("SketchBoard3D export", true)
	p.AddPage()
	p.SetFont("Helvetica", "", 9)
	p.Text(pageMargin, pageMargin/2+2, fmt.Sprintf("SketchBoard3D export: %d shapes", len(specs)))

	vp := fit(specs, pageW, pageH, pageMargin)
	for _, s := range specs {
		c := ParseColor(s.Color)
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetTextColor(int(c.R), int(c.G), int(c.B))
		p.SetLineWidth(0.5)
		drawPDFShape(p, vp, s)

		if len(s.Points) > 0 {
			x, y := vp.apply(s.Points[0])
			p.Text(x+1, y-1, fmt.Sprintf("%s h=%.0f", s.Shape, s.Height))
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawPDFShape(p *gofpdf.Fpdf, vp viewport, s extrude.Spec) {
	switch {
	case s.Shape == recognize.Circle && len(s.Points) == 2:
		x, y := vp.apply(s.Points[0])
		p.Circle(x, y, geometry.Distance(s.Points[0], s.Points[1])*vp.scale, "D")
	case s.Shape == recognize.Line || len(s.Points) < 3:
		for i := 1; i < len(s.Points); i++ {
			x1, y1 := vp.apply(s.Points[i-1])
			x2, y2 := vp.apply(s.Points[i])
			p.Line(x1, y1, x2, y2)
		}
	default:
		pts := make([]gofpdf.PointType, 0, len(s.Points))
		for _, pt := range s.Points {
			x, y := vp.apply(pt)
			pts = append(pts, gofpdf.PointType{X: x, Y: y})
		}
		p.Polygon(pts, "D")
	}
}
