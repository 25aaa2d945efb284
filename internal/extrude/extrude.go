// Package extrude maps recognized shapes to the extrusion parameters a 3D renderer consumes.
package extrude

import (
	"math/rand/v2"
	"sync"

	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/recognize"
)

// MaterialType selects the renderer's material model.
type MaterialType string

const (
	MaterialStandard MaterialType = "standard"
	MaterialPhysical MaterialType = "physical"
)

const (
	heightJitter = 25.0
	heightFloor  = 15.0

	defaultBaseHeight = 20.0
)

// Spec is one extruded shape.
type Spec struct {
	Type         string              `json:"type"`
	Points       []geometry.Point    `json:"points"`
	Color        string              `json:"color"`
	Height       float64             `json:"height"`
	Shape        recognize.ShapeType `json:"shape"`
	MaterialType MaterialType        `json:"materialType"`
	BevelEnabled bool                `json:"bevelEnabled"`
	Metalness    *float64            `json:"metalness,omitempty"`
	Roughness    *float64            `json:"roughness,omitempty"`
	Transparent  *bool               `json:"transparent,omitempty"`
	Opacity      *float64            `json:"opacity,omitempty"`
}

// Rand is the jitter source. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic jitter source for seed that is safe for concurrent use.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

type material struct {
	kind        MaterialType
	metalness   float64
	roughness   float64
	transparent bool
	opacity     float64
}

var baseHeights = map[recognize.ShapeType]float64{
	recognize.Circle:    25,
	recognize.Rectangle: 15,
	recognize.Triangle:  35,
	recognize.Polygon:   20,
	recognize.Line:      5,
}

var materials = map[recognize.ShapeType]material{
	recognize.Circle:    {kind: MaterialPhysical, metalness: 0.2, roughness: 0.3, opacity: 1},
	recognize.Rectangle: {kind: MaterialStandard, metalness: 0.1, roughness: 0.6, opacity: 1},
	recognize.Triangle:  {kind: MaterialPhysical, metalness: 0.4, roughness: 0.2, opacity: 1},
	recognize.Line:      {kind: MaterialStandard, metalness: 0.1, roughness: 0.5, transparent: true, opacity: 0.85},
}

var defaultMaterial = material{kind: MaterialStandard, metalness: 0.1, roughness: 0.5, opacity: 1}

// BaseHeight returns the fixed height component for a shape type.
func BaseHeight(t recognize.ShapeType) float64 {
	if h, ok := baseHeights[t]; ok {
		return h
	}
	return defaultBaseHeight
}

// Mapper converts shapes using Rand for the height jitter.
type Mapper struct {
	Rand Rand
}

// Map returns one spec per shape, in shape order.
func (m Mapper) Map(shapes []recognize.RecognizedShape) []Spec {
	rnd := m.Rand
	if rnd == nil {
		rnd = NewRand(rand.Uint64())
	}
	specs := make([]Spec, 0, len(shapes))
	for _, s := range shapes {
		specs = append(specs, toSpec(s, rnd.Float64()))
	}
	return specs
}

// MapToExtrusions is Mapper{Rand: rnd}.Map(shapes).
func MapToExtrusions(shapes []recognize.RecognizedShape, rnd Rand) []Spec {
	return Mapper{Rand: rnd}.Map(shapes)
}

func toSpec(s recognize.RecognizedShape, jitter float64) Spec {
	mat, ok := materials[s.Type]
	if !ok {
		mat = defaultMaterial
	}
	points := make([]geometry.Point, len(s.Points))
	copy(points, s.Points)
	return Spec{
		Type:         "extrude",
		Points:       points,
		Color:        s.Color,
		Height:       BaseHeight(s.Type) + jitter*heightJitter + heightFloor,
		Shape:        s.Type,
		MaterialType: mat.kind,
		BevelEnabled: true,
		Metalness:    &mat.metalness,
		Roughness:    &mat.roughness,
		Transparent:  &mat.transparent,
		Opacity:      &mat.opacity,
	}
}
