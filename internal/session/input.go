package session

import "Overtourissimus/internal/figure"

// Source is the kind of device an event came from.
type Source uint8

const (
	SourceMouse Source = iota
	SourceTouch
)

// Target identifies what a press landed on.
type Target uint8

const (
	TargetCanvas Target = iota
	TargetControl
)

// Event is a mouse or touch event in surface coordinates.
type Event struct {
	Source  Source
	X, Y    float64
	Touches []figure.Point
	Target  Target
}

// MouseAt builds a canvas-targeted mouse event.
func MouseAt(x, y float64) Event {
	return Event{Source: SourceMouse, X: x, Y: y, Target: TargetCanvas}
}

// TouchAt builds a canvas-targeted single-touch event.
func TouchAt(x, y float64) Event {
	return Event{Source: SourceTouch, Touches: []figure.Point{{X: x, Y: y}}, Target: TargetCanvas}
}

// Position is the point the event refers to. Touch events use the first touch
// point when there is one.
func (e Event) Position() figure.Point {
	if e.Source == SourceTouch && len(e.Touches) > 0 {
		return e.Touches[0]
	}
	return figure.Point{X: e.X, Y: e.Y}
}
