package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	snet "SketchBoard3D/internal/net"
	"SketchBoard3D/internal/service"
	"SketchBoard3D/internal/state"
)

// Converter turns the strokes on a pad into extrusion specs.
type Converter interface {
	Convert(ctx context.Context, strokes []state.Stroke) (service.Response, error)
	Name() string
}

// LocalConverter runs the pipeline in-process.
type LocalConverter struct {
	Service *service.Service
}

func (c LocalConverter) Name() string { return "local" }

func (c LocalConverter) Convert(_ context.Context, strokes []state.Stroke) (service.Response, error) {
	return c.Service.Vectorize(service.Request{Strokes: nonNil(strokes)})
}

// RemoteConverter posts to a recognition service over HTTP.
type RemoteConverter struct {
	Client *snet.Client
}

func (c RemoteConverter) Name() string { return c.Client.BaseURL }

func (c RemoteConverter) Convert(ctx context.Context, strokes []state.Stroke) (service.Response, error) {
	return c.Client.Vectorize(ctx, service.Request{Strokes: nonNil(strokes)})
}

// LiveConverter reuses one websocket for every conversion.
type LiveConverter struct {
	Target string

	mu   sync.Mutex
	live *snet.LiveClient
}

func (c *LiveConverter) Name() string { return "live " + c.Target }

func (c *LiveConverter) Convert(ctx context.Context, strokes []state.Stroke) (service.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil {
		live, err := snet.DialLive(ctx, c.Target)
		if err != nil {
			return service.Response{}, err
		}
		c.live = live
	}

	id := uuid.NewString()
	if err := c.live.Send(snet.LiveRequest{ID: id, Request: service.Request{Strokes: nonNil(strokes)}}); err != nil {
		c.reset()
		return service.Response{}, fmt.Errorf("send: %w", err)
	}
	for {
		resp, err := c.live.Receive()
		if err != nil {
			c.reset()
			return service.Response{}, fmt.Errorf("receive: %w", err)
		}
		if resp.ID != id {
			continue
		}
		if resp.Error != "" {
			return service.Response{}, errors.New(resp.Error)
		}
		return service.Response{Shapes: resp.Shapes}, nil
	}
}

// Close drops the websocket if one is open.
func (c *LiveConverter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live == nil {
		return nil
	}
	err := c.live.Close()
	c.live = nil
	return err
}

func (c *LiveConverter) reset() {
	if c.live != nil {
		_ = c.live.Close()
		c.live = nil
	}
}

// An empty pad still converts to an empty scene rather than a missing-input error.
func nonNil(strokes []state.Stroke) []state.Stroke {
	if strokes == nil {
		return []state.Stroke{}
	}
	return strokes
}
