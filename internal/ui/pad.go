package ui

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard3D/internal/export"
	"SketchBoard3D/internal/extrude"
	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/recognize"
	"SketchBoard3D/internal/state"
)

// Pad is the drawing surface. Finished strokes live in a state.Board; the result of the
// last conversion is drawn over them.
type Pad struct {
	widget.BaseWidget

	board *state.Board

	mu         sync.RWMutex
	current    *state.Stroke
	drawing    bool
	color      string
	width      float64
	shapes     []extrude.Spec
	showShapes bool
	rev        uint64 // board revision the pad has seen
	convertSeq uint64

	status *widget.Label
}

var _ fyne.Widget = (*Pad)(nil)
var _ fyne.Draggable = (*Pad)(nil)
var _ desktop.Mouseable = (*Pad)(nil)

func NewPad(board *state.Board) *Pad {
	p := &Pad{
		board:      board,
		color:      "black",
		width:      2,
		showShapes: true,
		status:     widget.NewLabel("Ready"),
		rev:        board.Revision(),
	}
	board.OnChange = func(op state.Op) {
		p.mu.Lock()
		p.shapes = nil
		p.rev = op.Lamport
		p.mu.Unlock()
		fyne.Do(p.Refresh)
	}
	p.ExtendBaseWidget(p)
	return p
}

func (p *Pad) Board() *state.Board { return p.board }

// StatusLabel is the label SetStatus writes to.
func (p *Pad) StatusLabel() *widget.Label { return p.status }

// SetStatus is safe to call from any goroutine.
func (p *Pad) SetStatus(text string) {
	fyne.Do(func() {
		p.status.SetText(text)
	})
}

func (p *Pad) SetColor(name string) {
	p.mu.Lock()
	p.color = name
	p.mu.Unlock()
}

func (p *Pad) SetWidth(w float64) {
	p.mu.Lock()
	p.width = w
	p.mu.Unlock()
}

// convertTicket identifies one conversion: its place in the sequence of conversions and
// the board revision its strokes were taken from.
type convertTicket struct {
	seq uint64
	rev uint64
}

// beginConvert snapshots the board for a conversion. Starting a conversion supersedes
// every conversion still in flight.
func (p *Pad) beginConvert() ([]state.Stroke, convertTicket) {
	strokes, rev := p.board.Snapshot()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.convertSeq++
	return strokes, convertTicket{seq: p.convertSeq, rev: rev}
}

// isCurrent reports whether t is the latest conversion and the board is unchanged since.
func (p *Pad) isCurrent(t convertTicket) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ticketLive(t)
}

func (p *Pad) ticketLive(t convertTicket) bool {
	return t.seq == p.convertSeq && t.rev == p.rev
}

// applyConvert installs specs as the overlay unless t has been superseded by a newer
// conversion or a board edit. It reports whether the overlay changed.
func (p *Pad) applyConvert(t convertTicket, specs []extrude.Spec) bool {
	p.mu.Lock()
	if !p.ticketLive(t) {
		p.mu.Unlock()
		return false
	}
	p.shapes = specs
	p.mu.Unlock()
	fyne.Do(p.Refresh)
	return true
}

func (p *Pad) Shapes() []extrude.Spec {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.shapes
}

func (p *Pad) ToggleShapes() {
	p.mu.Lock()
	p.showShapes = !p.showShapes
	p.mu.Unlock()
	p.Refresh()
}

func (p *Pad) Clear() {
	p.board.Clear()
	p.SetStatus("Cleared")
}

func (p *Pad) Undo() {
	if s, ok := p.board.Undo(); ok {
		p.SetStatus(fmt.Sprintf("Removed stroke with %d points", len(s.Points)))
	}
}

func (p *Pad) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.mu.Lock()
	p.drawing = true
	p.current = &state.Stroke{
		Points:      []geometry.Point{toPoint(e.Position)},
		Color:       p.color,
		StrokeWidth: p.width,
	}
	p.mu.Unlock()
	p.Refresh()
}

func (p *Pad) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.finish()
}

func (p *Pad) Dragged(e *fyne.DragEvent) {
	p.mu.Lock()
	if !p.drawing || p.current == nil {
		p.mu.Unlock()
		return
	}
	p.current.Points = append(p.current.Points, toPoint(e.Position))
	p.mu.Unlock()
	p.Refresh()
}

func (p *Pad) DragEnd() {
	p.finish()
}

// finish commits the stroke in progress. Single taps are dropped.
func (p *Pad) finish() {
	p.mu.Lock()
	s := p.current
	p.drawing = false
	p.current = nil
	p.mu.Unlock()

	if s != nil && len(s.Points) > 1 {
		p.board.Add(*s)
	} else {
		p.Refresh()
	}
}

func (p *Pad) MouseIn(*desktop.MouseEvent)    {}
func (p *Pad) MouseOut()                      {}
func (p *Pad) MouseMoved(*desktop.MouseEvent) {}

func (p *Pad) CreateRenderer() fyne.WidgetRenderer {
	r := &padRenderer{pad: p, background: canvas.NewRectangle(color.White)}
	r.rebuild()
	return r
}

type padRenderer struct {
	pad        *Pad
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *padRenderer) rebuild() {
	p := r.pad
	strokes := p.board.Strokes()

	p.mu.RLock()
	if p.drawing && p.current != nil {
		strokes = append(strokes, *p.current)
	}
	var shapes []extrude.Spec
	if p.showShapes {
		shapes = p.shapes
	}
	p.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	for _, s := range strokes {
		c := toColor(s.Color, 255)
		for i := 1; i < len(s.Points); i++ {
			segment := canvas.NewLine(c)
			segment.StrokeWidth = float32(s.StrokeWidth)
			segment.Position1 = toPosition(s.Points[i-1])
			segment.Position2 = toPosition(s.Points[i])
			objects = append(objects, segment)
		}
	}
	for _, s := range shapes {
		objects = append(objects, shapeObjects(s)...)
	}
	r.objects = objects
}

// shapeObjects outlines one spec with its label at the first vertex.
func shapeObjects(s extrude.Spec) []fyne.CanvasObject {
	if len(s.Points) == 0 {
		return nil
	}
	c := toColor(s.Color, 160)
	var out []fyne.CanvasObject

	switch {
	case s.Shape == recognize.Circle && len(s.Points) == 2:
		radius := float32(geometry.Distance(s.Points[0], s.Points[1]))
		center := toPosition(s.Points[0])
		circle := canvas.NewCircle(color.Transparent)
		circle.StrokeColor = c
		circle.StrokeWidth = 3
		circle.Position1 = fyne.NewPos(center.X-radius, center.Y-radius)
		circle.Position2 = fyne.NewPos(center.X+radius, center.Y+radius)
		out = append(out, circle)
	default:
		n := len(s.Points)
		segments := n - 1
		if s.Shape != recognize.Line && n > 2 {
			segments = n
		}
		for i := 0; i < segments; i++ {
			line := canvas.NewLine(c)
			line.StrokeWidth = 3
			line.Position1 = toPosition(s.Points[i])
			line.Position2 = toPosition(s.Points[(i+1)%n])
			out = append(out, line)
		}
	}

	label := canvas.NewText(fmt.Sprintf("%s h=%.0f", s.Shape, s.Height), c)
	label.TextSize = 11
	at := toPosition(s.Points[0])
	label.Move(fyne.NewPos(at.X+4, at.Y-16))
	return append(out, label)
}

func (r *padRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *padRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.pad.Size())
	canvas.Refresh(r.pad)
}

func (r *padRenderer) Destroy() {}

func (r *padRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	for _, o := range r.objects[1:] {
		if t, ok := o.(*canvas.Text); ok {
			t.Resize(t.MinSize())
		}
	}
}

func (r *padRenderer) MinSize() fyne.Size {
	return fyne.NewSize(480, 360)
}

func toPoint(pos fyne.Position) geometry.Point {
	return geometry.Point{X: float64(pos.X), Y: float64(pos.Y)}
}

func toPosition(pt geometry.Point) fyne.Position {
	return fyne.NewPos(float32(pt.X), float32(pt.Y))
}

func toColor(name string, alpha uint8) color.Color {
	c := export.ParseColor(name)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func logf(format string, args ...any) {
	log.Printf("[PAD] "+format, args...)
}
