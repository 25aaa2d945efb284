package recognize

import (
	"math"
	"testing"

	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/state"
)

func pts(xy ...float64) []geometry.Point {
	out := make([]geometry.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geometry.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

// outline samples the closed polygon through vertices with n steps per edge.
func outline(n int, vertices ...geometry.Point) []geometry.Point {
	var out []geometry.Point
	for i, a := range vertices {
		b := vertices[(i+1)%len(vertices)]
		for k := 0; k < n; k++ {
			t := float64(k) / float64(n)
			out = append(out, geometry.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
		}
	}
	return append(out, vertices[0])
}

func group(color string, strokes ...[]geometry.Point) state.StrokeGroup {
	g := make(state.StrokeGroup, len(strokes))
	for i, p := range strokes {
		g[i] = state.Stroke{Points: p, Color: color, StrokeWidth: 2}
	}
	return g
}

func TestClassifyCircle(t *testing.T) {
	var ring []geometry.Point
	for i := 0; i < 64; i++ {
		a := float64(i) * 2 * math.Pi / 64
		ring = append(ring, geometry.Point{X: 50 * math.Cos(a), Y: 50 * math.Sin(a)})
	}

	s := Classify(group("red", ring))
	if s.Type != Circle {
		t.Fatalf("Type = %s, want circle", s.Type)
	}
	if s.Properties == nil || s.Properties.Radius == nil {
		t.Fatalf("missing radius: %+v", s.Properties)
	}
	if r := *s.Properties.Radius; math.Abs(r-50) > 0.5 {
		t.Errorf("radius = %f, want 50 within 1%%", r)
	}
	r := *s.Properties.Radius
	if a := *s.Properties.Area; math.Abs(a-math.Pi*r*r) > 1e-6 {
		t.Errorf("area = %f, inconsistent with radius", a)
	}
	if len(s.Points) != 2 {
		t.Fatalf("circle points = %+v, want center and rim", s.Points)
	}
	center := *s.Properties.Center
	if s.Points[0] != center || math.Abs(s.Points[1].X-center.X-r) > 1e-9 || s.Points[1].Y != center.Y {
		t.Errorf("circle points %+v do not encode center %+v", s.Points, center)
	}
	if s.Color != "red" {
		t.Errorf("Color = %q, want red", s.Color)
	}
}

func TestClassifyRectangle(t *testing.T) {
	s := Classify(group("black", pts(0, 0, 100, 0, 100, 50, 0, 50)))
	if s.Type != Rectangle {
		t.Fatalf("Type = %s, want rectangle", s.Type)
	}
	p := s.Properties
	if *p.Width != 100 || *p.Height != 50 || *p.Area != 5000 {
		t.Errorf("properties = w%v h%v a%v, want 100/50/5000", *p.Width, *p.Height, *p.Area)
	}
	want := pts(0, 0, 100, 0, 100, 50, 0, 50)
	for i := range want {
		if s.Points[i] != want[i] {
			t.Errorf("corner %d = %+v, want %+v", i, s.Points[i], want[i])
		}
	}
}

func TestClassifyMultiStrokeRectangle(t *testing.T) {
	g := group("blue",
		outline(10, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 200, Y: 0})[:11],
		outline(10, geometry.Point{X: 200, Y: 0}, geometry.Point{X: 200, Y: 60})[:11],
		outline(10, geometry.Point{X: 200, Y: 60}, geometry.Point{X: 0, Y: 60})[:11],
		outline(10, geometry.Point{X: 0, Y: 60}, geometry.Point{X: 0, Y: 0})[:11],
	)
	s := Classify(g)
	if s.Type != Rectangle {
		t.Fatalf("Type = %s, want rectangle", s.Type)
	}
	if *s.Properties.Width != 200 || *s.Properties.Height != 60 {
		t.Errorf("size = %vx%v, want 200x60", *s.Properties.Width, *s.Properties.Height)
	}
	if len(s.OriginalStrokes) != 4 {
		t.Errorf("OriginalStrokes = %d, want 4", len(s.OriginalStrokes))
	}
}

func TestClassifyLine(t *testing.T) {
	s := Classify(group("green", pts(0, 0, 100, 100)))
	if s.Type != Line {
		t.Fatalf("Type = %s, want line", s.Type)
	}
	if l := *s.Properties.Length; math.Abs(l-100*math.Sqrt2) > 1e-9 {
		t.Errorf("length = %f, want %f", l, 100*math.Sqrt2)
	}
	if a := *s.Properties.Angle; math.Abs(a-math.Pi/4) > 1e-9 {
		t.Errorf("angle = %f, want pi/4", a)
	}
	if s.BoundingBox == nil || s.BoundingBox.Width != 100 {
		t.Errorf("BoundingBox = %+v", s.BoundingBox)
	}
}

func TestClassifyTriangle(t *testing.T) {
	tri := outline(10, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0}, geometry.Point{X: 50, Y: 86.6})
	s := Classify(group("black", tri))
	if s.Type != Triangle {
		t.Fatalf("Type = %s, want triangle", s.Type)
	}
	if len(s.Points) > 4 {
		t.Errorf("triangle has %d vertices", len(s.Points))
	}
	if s.Properties != nil {
		t.Errorf("triangle carries properties %+v", s.Properties)
	}
	if s.BoundingBox == nil {
		t.Errorf("triangle missing bounding box")
	}
}

func TestClassifyPolygon(t *testing.T) {
	ell := outline(8,
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0}, geometry.Point{X: 100, Y: 30},
		geometry.Point{X: 30, Y: 30}, geometry.Point{X: 30, Y: 100}, geometry.Point{X: 0, Y: 100})
	s := Classify(group("black", ell))
	if s.Type != Polygon {
		t.Fatalf("Type = %s, want polygon", s.Type)
	}
	if len(s.Points) != 7 {
		t.Errorf("polygon vertices = %d, want 7", len(s.Points))
	}
	if last := s.Points[len(s.Points)-1]; last != ell[len(ell)-1] {
		t.Errorf("last vertex %+v, want %+v", last, ell[len(ell)-1])
	}
}

func TestClassifyDegenerateGroups(t *testing.T) {
	s := Classify(group("black", nil))
	if s.Type != Line || *s.Properties.Length != 0 {
		t.Errorf("empty stroke classified as %s %+v", s.Type, s.Properties)
	}

	dot := Classify(group("black", pts(5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5)))
	if dot.Type == Circle || dot.Type == Rectangle {
		t.Errorf("coincident points classified as %s", dot.Type)
	}
}

func TestScores(t *testing.T) {
	if c := Circularity(nil); c != 0 {
		t.Errorf("Circularity(nil) = %f", c)
	}
	if r := Rectangularity(pts(0, 0, 10, 10)); r != 0 {
		t.Errorf("Rectangularity(segment) = %f", r)
	}
	if r := Rectangularity(pts(0, 0, 10, 0, 10, 10, 0, 10)); math.Abs(r-1) > 1e-9 {
		t.Errorf("Rectangularity(square) = %f, want 1", r)
	}
	diamond := pts(50, 0, 100, 50, 50, 100, 0, 50)
	if r := Rectangularity(diamond); math.Abs(r-0.5) > 1e-9 {
		t.Errorf("Rectangularity(diamond) = %f, want 0.5", r)
	}
}
