package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"Overtourissimus/internal/draw"
	"Overtourissimus/internal/session"
)

// CanvasWidget shows a draw.Canvas and feeds pointer input to a session.
type CanvasWidget struct {
	widget.BaseWidget
	surface *draw.Canvas
	session *session.Session

	mu       sync.Mutex
	dragging bool
	size     fyne.Size

	// OnResize is called whenever the laid-out size changes.
	OnResize func(fyne.Size)
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)
var _ desktop.Hoverable = (*CanvasWidget)(nil)
var _ mobile.Touchable = (*CanvasWidget)(nil)

func NewCanvasWidget(surface *draw.Canvas) *CanvasWidget {
	w := &CanvasWidget{surface: surface}
	w.ExtendBaseWidget(w)
	return w
}

func (w *CanvasWidget) SetSession(s *session.Session) {
	w.session = s
}

func (w *CanvasWidget) press(ev session.Event) {
	if w.session != nil {
		w.session.Press(ev)
	}
}

func (w *CanvasWidget) move(ev session.Event) {
	if w.session != nil && w.session.Tracking() {
		w.session.Move(ev)
	}
}

func (w *CanvasWidget) release() {
	if w.session != nil {
		w.session.Release()
	}
}

func (w *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.press(session.MouseAt(float64(e.Position.X), float64(e.Position.Y)))
	}
}

func (w *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.release()
	}
}

func (w *CanvasWidget) MouseIn(*desktop.MouseEvent) {}

func (w *CanvasWidget) MouseMoved(e *desktop.MouseEvent) {
	w.move(session.MouseAt(float64(e.Position.X), float64(e.Position.Y)))
}

// MouseOut ends the gesture unless a drag is holding the pointer.
func (w *CanvasWidget) MouseOut() {
	w.mu.Lock()
	dragging := w.dragging
	w.mu.Unlock()
	if !dragging && w.session != nil {
		w.session.Leave()
	}
}

func (w *CanvasWidget) Dragged(e *fyne.DragEvent) {
	w.mu.Lock()
	w.dragging = true
	w.mu.Unlock()
	w.move(session.MouseAt(float64(e.Position.X), float64(e.Position.Y)))
}

func (w *CanvasWidget) DragEnd() {
	w.mu.Lock()
	w.dragging = false
	w.mu.Unlock()
	w.release()
}

func (w *CanvasWidget) TouchDown(e *mobile.TouchEvent) {
	w.press(session.TouchAt(float64(e.Position.X), float64(e.Position.Y)))
}

func (w *CanvasWidget) TouchUp(*mobile.TouchEvent) {
	w.release()
}

func (w *CanvasWidget) TouchCancel(*mobile.TouchEvent) {
	if w.session != nil {
		w.session.Cancel()
	}
}

func (w *CanvasWidget) resized(size fyne.Size) {
	w.mu.Lock()
	changed := size != w.size
	w.size = size
	w.mu.Unlock()
	if changed && w.OnResize != nil {
		w.OnResize(size)
	}
}

func (w *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	return &canvasRenderer{
		widget:     w,
		background: bg,
		objects:    []fyne.CanvasObject{bg},
	}
}

// canvasRenderer appends objects for new shapes only and starts over when the
// canvas generation changes.
type canvasRenderer struct {
	widget     *CanvasWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
	gen        uint64
	seen       int
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *canvasRenderer) Refresh() {
	gen, shapes := r.widget.surface.Since(r.seen)
	if gen != r.gen {
		r.gen = gen
		r.seen = 0
		r.objects = r.objects[:1]
		_, shapes = r.widget.surface.Since(0)
	}
	for _, s := range shapes {
		r.objects = append(r.objects, shapeObjects(s)...)
	}
	r.seen += len(shapes)
	canvas.Refresh(r.widget)
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.widget.resized(size)
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *canvasRenderer) Destroy() {}

func shapeObjects(s draw.Shape) []fyne.CanvasObject {
	col := s.Color.NRGBA()
	switch s.Kind {
	case draw.KindRect:
		rect := canvas.NewRectangle(col)
		rect.Move(fyne.NewPos(float32(s.X), float32(s.Y)))
		rect.Resize(fyne.NewSize(float32(s.W), float32(s.H)))
		return []fyne.CanvasObject{rect}
	case draw.KindCircle:
		return []fyne.CanvasObject{disc(s.X, s.Y, s.R, col)}
	case draw.KindLine:
		line := canvas.NewLine(col)
		line.StrokeWidth = float32(s.Width)
		line.Position1 = fyne.NewPos(float32(s.X), float32(s.Y))
		line.Position2 = fyne.NewPos(float32(s.X2), float32(s.Y2))
		// round caps
		return []fyne.CanvasObject{
			line,
			disc(s.X, s.Y, s.Width/2, col),
			disc(s.X2, s.Y2, s.Width/2, col),
		}
	}
	return nil
}

func disc(cx, cy, r float64, col color.Color) *canvas.Circle {
	c := canvas.NewCircle(col)
	c.Position1 = fyne.NewPos(float32(cx-r), float32(cy-r))
	c.Position2 = fyne.NewPos(float32(cx+r), float32(cy+r))
	return c
}
