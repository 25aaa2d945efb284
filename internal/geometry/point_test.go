package geometry

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	if d := Distance(Point{0, 0}, Point{3, 4}); math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance = %f, want 5", d)
	}
	if d := Distance(Point{1, 1}, Point{1, 1}); d != 0 {
		t.Errorf("Distance of equal points = %f, want 0", d)
	}
}

func TestPathLength(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []Point{{5, 5}}, 0},
		{"segment", []Point{{0, 0}, {0, 10}}, 10},
		{"polyline", []Point{{0, 0}, {3, 4}, {3, 10}}, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathLength(tt.points); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PathLength = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	if got := BoundingBox(nil); got != (BBox{}) {
		t.Errorf("BoundingBox(nil) = %+v, want zero", got)
	}

	got := BoundingBox([]Point{{10, 20}, {-5, 40}, {30, 25}})
	want := BBox{X: -5, Y: 20, Width: 35, Height: 20}
	if got != want {
		t.Errorf("BoundingBox = %+v, want %+v", got, want)
	}

	single := BoundingBox([]Point{{7, 8}})
	if single.Width != 0 || single.Height != 0 || single.X != 7 || single.Y != 8 {
		t.Errorf("BoundingBox(single) = %+v", single)
	}
}

func TestBoundingBoxNonNegative(t *testing.T) {
	sets := [][]Point{
		{},
		{{-100, -100}},
		{{5, 5}, {-5, -5}},
		{{1e6, -1e6}, {-1e6, 1e6}, {0, 0}},
	}
	for i, pts := range sets {
		b := BoundingBox(pts)
		if b.Width < 0 || b.Height < 0 {
			t.Errorf("set %d: negative extents %+v", i, b)
		}
	}
}

func TestCentroid(t *testing.T) {
	if got := Centroid(nil); got != (Point{}) {
		t.Errorf("Centroid(nil) = %+v, want origin", got)
	}
	got := Centroid([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	if got != (Point{5, 5}) {
		t.Errorf("Centroid = %+v, want {5 5}", got)
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	if a := PolygonArea(square); math.Abs(a-5000) > 1e-9 {
		t.Errorf("PolygonArea(open) = %f, want 5000", a)
	}

	closed := append(append([]Point{}, square...), square[0])
	if a := PolygonArea(closed); math.Abs(a-5000) > 1e-9 {
		t.Errorf("PolygonArea(closed) = %f, want 5000", a)
	}

	// counter-clockwise winding gives the same magnitude
	ccw := []Point{{0, 50}, {100, 50}, {100, 0}, {0, 0}}
	if a := PolygonArea(ccw); math.Abs(a-5000) > 1e-9 {
		t.Errorf("PolygonArea(ccw) = %f, want 5000", a)
	}

	if a := PolygonArea([]Point{{0, 0}, {1, 1}}); a != 0 {
		t.Errorf("PolygonArea(segment) = %f, want 0", a)
	}
}

func TestBBoxGap(t *testing.T) {
	a := BBox{X: 0, Y: 0, Width: 10, Height: 10}
	if g := a.Gap(BBox{X: 5, Y: 5, Width: 10, Height: 10}); g != 0 {
		t.Errorf("overlapping Gap = %f, want 0", g)
	}
	if g := a.Gap(BBox{X: 13, Y: 14, Width: 1, Height: 1}); math.Abs(g-5) > 1e-9 {
		t.Errorf("diagonal Gap = %f, want 5", g)
	}
}

func TestBBoxCorners(t *testing.T) {
	got := BBox{X: 1, Y: 2, Width: 3, Height: 4}.Corners()
	want := []Point{{1, 2}, {4, 2}, {4, 6}, {1, 6}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("corner %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
