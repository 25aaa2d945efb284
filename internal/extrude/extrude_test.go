package extrude

import (
	"testing"

	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/recognize"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func shape(t recognize.ShapeType) recognize.RecognizedShape {
	return recognize.RecognizedShape{
		Type:   t,
		Points: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Color:  "red",
	}
}

func TestCircleMaterialAndHeight(t *testing.T) {
	rnd := NewRand(7)
	for i := 0; i < 200; i++ {
		specs := MapToExtrusions([]recognize.RecognizedShape{shape(recognize.Circle)}, rnd)
		s := specs[0]
		if s.MaterialType != MaterialPhysical || *s.Metalness != 0.2 || *s.Roughness != 0.3 {
			t.Fatalf("circle material = %s/%v/%v", s.MaterialType, *s.Metalness, *s.Roughness)
		}
		if s.Height < 40 || s.Height >= 65 {
			t.Fatalf("circle height %f outside [40, 65)", s.Height)
		}
	}
}

func TestExactHeightWithStubRand(t *testing.T) {
	tests := []struct {
		shape  recognize.ShapeType
		jitter float64
		want   float64
	}{
		{recognize.Circle, 0, 40},
		{recognize.Rectangle, 0.5, 42.5},
		{recognize.Triangle, 0, 50},
		{recognize.Polygon, 0.2, 40},
		{recognize.Line, 0, 20},
		{recognize.ShapeType("blob"), 0, 35},
	}
	for _, tt := range tests {
		s := MapToExtrusions([]recognize.RecognizedShape{shape(tt.shape)}, fixedRand(tt.jitter))[0]
		if s.Height != tt.want {
			t.Errorf("%s height = %f, want %f", tt.shape, s.Height, tt.want)
		}
	}
}

func TestMaterials(t *testing.T) {
	tests := []struct {
		shape     recognize.ShapeType
		kind      MaterialType
		metalness float64
		roughness float64
	}{
		{recognize.Circle, MaterialPhysical, 0.2, 0.3},
		{recognize.Rectangle, MaterialStandard, 0.1, 0.6},
		{recognize.Triangle, MaterialPhysical, 0.4, 0.2},
		{recognize.Polygon, MaterialStandard, 0.1, 0.5},
		{recognize.Line, MaterialStandard, 0.1, 0.5},
		{recognize.ShapeType("blob"), MaterialStandard, 0.1, 0.5},
	}
	for _, tt := range tests {
		s := MapToExtrusions([]recognize.RecognizedShape{shape(tt.shape)}, fixedRand(0))[0]
		if s.MaterialType != tt.kind || *s.Metalness != tt.metalness || *s.Roughness != tt.roughness {
			t.Errorf("%s material = %s/%v/%v, want %s/%v/%v", tt.shape,
				s.MaterialType, *s.Metalness, *s.Roughness, tt.kind, tt.metalness, tt.roughness)
		}
		if !s.BevelEnabled || s.Type != "extrude" || s.Shape != tt.shape {
			t.Errorf("%s: unexpected spec header %+v", tt.shape, s)
		}
	}
}

func TestMapPreservesOrderAndCount(t *testing.T) {
	in := []recognize.RecognizedShape{
		shape(recognize.Line), shape(recognize.Circle), shape(recognize.Polygon),
	}
	in[1].Color = "blue"
	specs := Mapper{}.Map(in)
	if len(specs) != len(in) {
		t.Fatalf("got %d specs, want %d", len(specs), len(in))
	}
	for i := range in {
		if specs[i].Shape != in[i].Type || specs[i].Color != in[i].Color {
			t.Errorf("spec %d = %s/%s, want %s/%s", i, specs[i].Shape, specs[i].Color, in[i].Type, in[i].Color)
		}
	}
	specs[0].Points[0].X = 42
	if in[0].Points[0].X != 0 {
		t.Errorf("spec shares points with shape")
	}
	if len(Mapper{}.Map(nil)) != 0 {
		t.Errorf("Map(nil) not empty")
	}
}

func TestSeededRandIsDeterministic(t *testing.T) {
	shapes := []recognize.RecognizedShape{shape(recognize.Circle), shape(recognize.Triangle)}
	a := MapToExtrusions(shapes, NewRand(42))
	b := MapToExtrusions(shapes, NewRand(42))
	for i := range a {
		if a[i].Height != b[i].Height {
			t.Errorf("spec %d heights differ: %f vs %f", i, a[i].Height, b[i].Height)
		}
	}
}
