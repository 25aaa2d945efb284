package state

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"SketchBoard3D/internal/geometry"
)

type OpType string

const (
	OpInsertStroke OpType = "insert_stroke"
	OpDeleteStroke OpType = "delete_stroke"
	OpClear        OpType = "clear"
	OpLoad         OpType = "load"
)

// Op describes one change applied to a Board. Lamport is the board revision the change
// produced; it grows with every op.
type Op struct {
	Type    OpType
	Stroke  *Stroke
	Target  string // ID of the deleted stroke
	Lamport uint64
}

// Board is the ordered stroke store behind a drawing surface. It hands the recognition
// pipeline immutable snapshots and reports every change through OnChange.
type Board struct {
	clock   Clock
	strokes []Stroke
	ids     map[string]bool
	mu      sync.RWMutex

	OnChange func(Op)
}

func NewBoard() *Board {
	return &Board{
		ids: make(map[string]bool),
	}
}

// Add stores a locally drawn stroke under a fresh ID and returns the stored copy.
func (b *Board) Add(s Stroke) Stroke {
	b.mu.Lock()
	s.ID = uuid.NewString()
	s.Points = clonePoints(s)
	b.strokes = append(b.strokes, s)
	b.ids[s.ID] = true
	op := Op{Type: OpInsertStroke, Stroke: &s, Lamport: b.clock.Tick()}
	b.mu.Unlock()

	log.Printf("[BOARD] Stroke added: %s (%d points, %s)", s.ID, len(s.Points), s.Color)
	b.emit(op)
	return s
}

// Remove deletes the stroke with the given ID.
func (b *Board) Remove(id string) bool {
	b.mu.Lock()
	idx := -1
	for i, s := range b.strokes {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	b.strokes = append(b.strokes[:idx:idx], b.strokes[idx+1:]...)
	delete(b.ids, id)
	op := Op{Type: OpDeleteStroke, Target: id, Lamport: b.clock.Tick()}
	b.mu.Unlock()

	log.Printf("[BOARD] Stroke removed: %s", id)
	b.emit(op)
	return true
}

// Undo removes the most recently stored stroke.
func (b *Board) Undo() (Stroke, bool) {
	b.mu.RLock()
	if len(b.strokes) == 0 {
		b.mu.RUnlock()
		return Stroke{}, false
	}
	last := b.strokes[len(b.strokes)-1]
	b.mu.RUnlock()

	if !b.Remove(last.ID) {
		return Stroke{}, false
	}
	return last, true
}

// Clear drops every stroke.
func (b *Board) Clear() {
	b.mu.Lock()
	b.strokes = nil
	b.ids = make(map[string]bool)
	op := Op{Type: OpClear, Lamport: b.clock.Tick()}
	b.mu.Unlock()

	log.Println("[BOARD] Cleared")
	b.emit(op)
}

// Strokes returns a snapshot of the stored strokes in insertion order.
func (b *Board) Strokes() []Stroke {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Stroke, len(b.strokes))
	copy(out, b.strokes)
	return out
}

// Snapshot returns the stored strokes together with the revision they belong to.
func (b *Board) Snapshot() ([]Stroke, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Stroke, len(b.strokes))
	copy(out, b.strokes)
	return out, b.clock.Now()
}

// Revision is the Lamport stamp of the latest op, 0 for an untouched board.
func (b *Board) Revision() uint64 {
	return b.clock.Now()
}

// Len returns the number of stored strokes.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.strokes)
}

// Save writes the strokes as an indented JSON array.
func (b *Board) Save(w io.Writer) error {
	data, err := json.MarshalIndent(b.Strokes(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal strokes: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write strokes: %w", err)
	}
	return nil
}

// Load replaces the board contents with the JSON stroke array read from r.
func (b *Board) Load(r io.Reader) (int, error) {
	var loaded []Stroke
	if err := json.NewDecoder(r).Decode(&loaded); err != nil {
		return 0, fmt.Errorf("decode strokes: %w", err)
	}

	b.mu.Lock()
	b.strokes = make([]Stroke, 0, len(loaded))
	b.ids = make(map[string]bool, len(loaded))
	for _, s := range loaded {
		if s.ID == "" || b.ids[s.ID] {
			s.ID = uuid.NewString()
		}
		b.strokes = append(b.strokes, s)
		b.ids[s.ID] = true
	}
	op := Op{Type: OpLoad, Lamport: b.clock.Tick()}
	b.mu.Unlock()

	log.Printf("[BOARD] Loaded %d strokes", len(loaded))
	b.emit(op)
	return len(loaded), nil
}

func (b *Board) emit(op Op) {
	if b.OnChange != nil {
		b.OnChange(op)
	}
}

func clonePoints(s Stroke) []geometry.Point {
	out := make([]geometry.Point, len(s.Points))
	copy(out, s.Points)
	return out
}
