// Package draw holds the board's rendering surface: a transform stack over an
// append-only list of absolute-coordinate shapes that the UI and exporters replay.
package draw

import (
	"sync"

	"Overtourissimus/internal/figure"
)

// Kind identifies a primitive shape.
type Kind uint8

const (
	KindRect Kind = iota
	KindCircle
	KindLine
)

// Shape is one primitive in surface coordinates.
//
// Rect uses X, Y, W, H. Circle uses X, Y as center and R. Line runs from X, Y to
// X2, Y2 with a round cap and stroke Width.
type Shape struct {
	Kind   Kind
	X, Y   float64
	W, H   float64
	X2, Y2 float64
	R      float64
	Width  float64
	Color  figure.Color
}

type transform struct {
	tx, ty, s float64
}

func (t transform) apply(x, y float64) (float64, float64) {
	return t.tx + t.s*x, t.ty + t.s*y
}

var identity = transform{s: 1}

// Canvas implements figure.Surface. Drawing calls are expected from one goroutine
// (the UI loop); readers such as the widget renderer may snapshot concurrently.
type Canvas struct {
	mu     sync.RWMutex
	cur    transform
	stack  []transform
	shapes []Shape
	gen    uint64
	width  float64
	height float64

	// OnChange fires after a clear and after each completed outermost Save/Restore pair.
	OnChange func()
}

var _ figure.Surface = (*Canvas)(nil)

func NewCanvas() *Canvas {
	return &Canvas{cur: identity}
}

func (c *Canvas) Save() {
	c.mu.Lock()
	c.stack = append(c.stack, c.cur)
	c.mu.Unlock()
}

func (c *Canvas) Restore() {
	c.mu.Lock()
	if len(c.stack) == 0 {
		c.mu.Unlock()
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	done := len(c.stack) == 0
	c.mu.Unlock()
	if done {
		c.changed()
	}
}

func (c *Canvas) Translate(x, y float64) {
	c.mu.Lock()
	c.cur.tx, c.cur.ty = c.cur.apply(x, y)
	c.mu.Unlock()
}

func (c *Canvas) Scale(s float64) {
	c.mu.Lock()
	c.cur.s *= s
	c.mu.Unlock()
}

func (c *Canvas) FillRect(x, y, w, h float64, col figure.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ax, ay := c.cur.apply(x, y)
	c.shapes = append(c.shapes, Shape{Kind: KindRect, X: ax, Y: ay, W: w * c.cur.s, H: h * c.cur.s, Color: col})
}

func (c *Canvas) FillCircle(cx, cy, r float64, col figure.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ax, ay := c.cur.apply(cx, cy)
	c.shapes = append(c.shapes, Shape{Kind: KindCircle, X: ax, Y: ay, R: r * c.cur.s, Color: col})
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col figure.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ax1, ay1 := c.cur.apply(x1, y1)
	ax2, ay2 := c.cur.apply(x2, y2)
	c.shapes = append(c.shapes, Shape{
		Kind: KindLine, X: ax1, Y: ay1, X2: ax2, Y2: ay2,
		Width: width * c.cur.s, Color: col,
	})
}

// Clear wipes every shape and resets the transform stack.
func (c *Canvas) Clear() {
	c.mu.Lock()
	c.shapes = nil
	c.stack = nil
	c.cur = identity
	c.gen++
	c.mu.Unlock()
	c.changed()
}

// Resize records the surface size. It does not touch the shapes; callers decide
// whether a resize also clears.
func (c *Canvas) Resize(w, h float64) {
	c.mu.Lock()
	c.width, c.height = w, h
	c.mu.Unlock()
}

func (c *Canvas) Size() (w, h float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shapes)
}

// Shapes returns a copy of every shape drawn since the last clear.
func (c *Canvas) Shapes() []Shape {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// Since returns the current clear generation and the shapes appended after index
// from. A renderer that saw generation g and n shapes calls Since(n); if the
// returned generation differs from g it must discard what it has and call Since(0).
func (c *Canvas) Since(from int) (uint64, []Shape) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if from < 0 || from > len(c.shapes) {
		from = 0
	}
	out := make([]Shape, len(c.shapes)-from)
	copy(out, c.shapes[from:])
	return c.gen, out
}

func (c *Canvas) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
