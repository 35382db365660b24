// Package cascade represents a loaded Haar cascade as the frozen flat
// numeric array of spec.md §3, and provides the Cursor the detector
// uses to walk it without ever materializing per-node objects.
package cascade

import "fmt"

// Cascade is an immutable, flat numeric cascade. It is safe to share
// across goroutines without synchronization once built.
type Cascade struct {
	data []float64
}

// New wraps a flat array already in the §3 layout. It validates only
// that the array is long enough to hold the two leading window-size
// scalars; deeper structural validity is the loader's responsibility.
func New(data []float64) (*Cascade, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("cascade: flat array too short (%d elements)", len(data))
	}
	return &Cascade{data: data}, nil
}

// WindowW returns the trained detection window's width.
func (c *Cascade) WindowW() int { return int(c.data[0]) }

// WindowH returns the trained detection window's height.
func (c *Cascade) WindowH() int { return int(c.data[1]) }

// Data returns the underlying flat array in the §3 layout. Callers must
// not mutate it.
func (c *Cascade) Data() []float64 { return c.data }

// NewCursor returns a Cursor positioned just past the window-size
// header, ready to walk the cascade's stages.
func (c *Cascade) NewCursor() *Cursor {
	return &Cursor{data: c.data, pos: 2}
}

// Cursor is a small, cheap-to-copy walker over a cascade's flat array.
// The detector creates one per scanned window.
type Cursor struct {
	data []float64
	pos  int
}

// Done reports whether the cursor has reached the end of the array,
// i.e. there are no more stages to read.
func (cur *Cursor) Done() bool {
	return cur.pos >= len(cur.data)
}

// Next returns the next number in the array and advances the cursor.
func (cur *Cursor) Next() float64 {
	v := cur.data[cur.pos]
	cur.pos++
	return v
}

// NextInt is Next truncated to int, for count fields (weakCount,
// rectCount, tilted).
func (cur *Cursor) NextInt() int {
	return int(cur.Next())
}

// Stage is one decoded stage: a threshold and its weak classifiers.
// Detector code decodes a Stage lazily with Cursor.NextStage rather
// than pre-materializing the whole cascade into Stage/Weak objects, but
// Stage is exposed for tests and for eager validation/counting.
type Stage struct {
	Threshold float64
	Weaks     []Weak
}

// Weak is one decoded weak classifier (decision stump).
type Weak struct {
	Tilted        bool
	Rects         []Rect
	NodeThreshold float64
	LeafLeft      float64
	LeafRight     float64
}

// Rect is one Haar rectangle term within a weak classifier.
type Rect struct {
	X, Y, W, H int
	Weight     float64
}

// NextStage decodes the next stage from the cursor and advances past
// it. It assumes Done() is false.
func (cur *Cursor) NextStage() Stage {
	st := Stage{Threshold: cur.Next()}
	weakCount := cur.NextInt()
	st.Weaks = make([]Weak, weakCount)
	for i := 0; i < weakCount; i++ {
		st.Weaks[i] = cur.nextWeak()
	}
	return st
}

func (cur *Cursor) nextWeak() Weak {
	w := Weak{Tilted: cur.NextInt() != 0}
	rectCount := cur.NextInt()
	w.Rects = make([]Rect, rectCount)
	for i := 0; i < rectCount; i++ {
		w.Rects[i] = Rect{
			X:      int(cur.Next()),
			Y:      int(cur.Next()),
			W:      int(cur.Next()),
			H:      int(cur.Next()),
			Weight: cur.Next(),
		}
	}
	w.NodeThreshold = cur.Next()
	w.LeafLeft = cur.Next()
	w.LeafRight = cur.Next()
	return w
}

// Stages decodes the entire cascade into Stage/Weak objects. It exists
// for tests and tooling; the
// detector's hot loop uses the Cursor directly instead, per spec.md
// §4.2 ("no per-node objects are required at runtime").
func (c *Cascade) Stages() []Stage {
	cur := c.NewCursor()
	var stages []Stage
	for !cur.Done() {
		stages = append(stages, cur.NextStage())
	}
	return stages
}
