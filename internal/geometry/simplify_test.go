package geometry

import (
	"math"
	"testing"
)

func TestSimplifyShortInputIsCopied(t *testing.T) {
	in := []Point{{0, 0}, {10, 10}}
	out := Simplify(in, DefaultTolerance)
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("Simplify(2 points) = %+v", out)
	}
	out[0] = Point{99, 99}
	if in[0] != (Point{0, 0}) {
		t.Errorf("Simplify returned an alias of its input")
	}
	if got := Simplify(nil, DefaultTolerance); len(got) != 0 {
		t.Errorf("Simplify(nil) = %+v, want empty", got)
	}
}

func TestSimplifyCollinear(t *testing.T) {
	var in []Point
	for i := 0; i <= 20; i++ {
		in = append(in, Point{float64(i) * 5, 0.5 * math.Sin(float64(i))})
	}
	out := Simplify(in, DefaultTolerance)
	if len(out) != 2 {
		t.Fatalf("Simplify(near line) kept %d points, want 2", len(out))
	}
	if out[0] != in[0] || out[1] != in[len(in)-1] {
		t.Errorf("endpoints not preserved: %+v", out)
	}
}

func TestSimplifyKeepsCorner(t *testing.T) {
	in := []Point{{0, 0}, {25, 1}, {50, 0}, {50, 25}, {51, 50}, {50, 100}}
	out := Simplify(in, DefaultTolerance)
	want := []Point{{0, 0}, {50, 0}, {50, 100}}
	if len(out) != len(want) {
		t.Fatalf("Simplify = %+v, want %+v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, out[i], want[i])
		}
	}
}

func TestSimplifyProperties(t *testing.T) {
	var zigzag []Point
	for i := 0; i < 50; i++ {
		zigzag = append(zigzag, Point{float64(i) * 3, float64((i%7)*(i%3)) * 4})
	}
	prev := len(zigzag) + 1
	for _, tol := range []float64{0.5, 2, 5, 10, 40} {
		out := Simplify(zigzag, tol)
		if len(out) > len(zigzag) {
			t.Errorf("tol %v: output grew to %d points", tol, len(out))
		}
		if out[len(out)-1] != zigzag[len(zigzag)-1] {
			t.Errorf("tol %v: last point %+v, want %+v", tol, out[len(out)-1], zigzag[len(zigzag)-1])
		}
		if len(out) > prev {
			t.Errorf("tol %v: %d points, more than lower tolerance (%d)", tol, len(out), prev)
		}
		prev = len(out)
	}
}

func TestSimplifyClosedLoop(t *testing.T) {
	tri := []Point{{0, 0}, {50, 0}, {100, 0}, {50, 80}, {0, 0}}
	out := Simplify(tri, DefaultTolerance)
	if len(out) != 4 {
		t.Fatalf("closed triangle simplified to %+v, want 4 points", out)
	}
	if out[len(out)-1] != tri[len(tri)-1] {
		t.Errorf("last point %+v, want %+v", out[len(out)-1], tri[len(tri)-1])
	}
}

func TestSimplifyMeasuresToSegment(t *testing.T) {
	// collinear with the anchors but 6 beyond the first one
	pts := []Point{{X: 0, Y: 0}, {X: -6, Y: 0}, {X: 10, Y: 0}}
	out := Simplify(pts, 5)
	if len(out) != 3 || out[1] != pts[1] {
		t.Errorf("Simplify = %+v, want the overshooting point kept", out)
	}
	if out := Simplify(pts, 7); len(out) != 2 {
		t.Errorf("Simplify(tol 7) = %+v, want anchors only", out)
	}
}
