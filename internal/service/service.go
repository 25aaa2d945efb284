// Package service is the request/response boundary around the recognition pipeline.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	"SketchBoard3D/internal/extrude"
	"SketchBoard3D/internal/recognize"
	"SketchBoard3D/internal/state"
)

var (
	// ErrMissingInput is returned when a request carries neither strokes nor shapes.
	ErrMissingInput = errors.New("request needs strokes or recognizedShapes")
	// ErrInternal wraps any unexpected failure inside the pipeline.
	ErrInternal = errors.New("internal recognition failure")
)

// Request is one pipeline invocation. A nil field is absent; an empty slice is present.
type Request struct {
	Strokes          []state.Stroke              `json:"strokes"`
	RecognizedShapes []recognize.RecognizedShape `json:"recognizedShapes"`
}

// Response carries one extrusion spec per recognized shape.
type Response struct {
	Shapes []extrude.Spec `json:"shapes"`
}

// Service runs requests through clustering, classification and extrusion mapping.
type Service struct {
	Mapper  extrude.Mapper
	Options []recognize.Option
}

// New returns a Service drawing height jitter from rnd.
func New(rnd extrude.Rand, opts ...recognize.Option) *Service {
	return &Service{Mapper: extrude.Mapper{Rand: rnd}, Options: opts}
}

// Vectorize validates req and runs the pipeline. Supplied shapes take precedence over strokes.
// A panic inside the pipeline is reported as ErrInternal with no partial result.
func (s *Service) Vectorize(req Request) (resp Response, err error) {
	if req.Strokes == nil && req.RecognizedShapes == nil {
		return Response{}, ErrMissingInput
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("recognition pipeline panicked", "panic", r)
			resp, err = Response{}, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	shapes := req.RecognizedShapes
	if shapes == nil {
		shapes = recognize.Recognize(req.Strokes, s.Options...)
	}
	return Response{Shapes: s.Mapper.Map(shapes)}, nil
}

// Recognize runs only the classification half of the pipeline.
func (s *Service) Recognize(strokes []state.Stroke) []recognize.RecognizedShape {
	return recognize.Recognize(strokes, s.Options...)
}
