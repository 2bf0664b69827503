package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"Overtourissimus/internal/board"
	"Overtourissimus/internal/state"
)

// overlay holds the controls drawn over the canvas and implements board.Display.
type overlay struct {
	clear     *widget.Button
	generated *widget.Label
	shared    *widget.Label
	message   *widget.Label
	box       *fyne.Container
	controls  *fyne.Container
}

var _ board.Display = (*overlay)(nil)

func newOverlay() *overlay {
	o := &overlay{
		clear:     widget.NewButton(state.RemoveLabel(0), nil),
		generated: widget.NewLabel(state.GeneratedLabel(0)),
		shared:    widget.NewLabel(state.LoadingLabel),
		message:   widget.NewLabel(""),
	}
	o.message.Wrapping = fyne.TextWrapWord
	o.message.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(color.NRGBA{R: 255, G: 255, B: 255, A: 235})
	bg.StrokeColor = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	bg.StrokeWidth = 1
	bg.SetMinSize(fyne.NewSize(320, 0))
	ok := widget.NewButton("OK", o.HideMessage)
	o.box = container.NewStack(bg, container.NewPadded(container.NewVBox(o.message, ok)))
	o.box.Hide()
	return o
}

// layout places the toolbar and global total on top, the generated count and
// clear button along the bottom and the message box in the middle.
func (o *overlay) layout(toolbar fyne.CanvasObject) fyne.CanvasObject {
	top := container.NewHBox(toolbar, layout.NewSpacer(), o.shared)
	bottom := container.NewHBox(o.generated, layout.NewSpacer(), o.clear)
	o.controls = container.NewBorder(top, bottom, nil, nil)
	return container.NewStack(o.controls, container.NewCenter(o.box))
}

func (o *overlay) SetLocalText(s string)     { o.clear.SetText(s) }
func (o *overlay) SetGeneratedText(s string) { o.generated.SetText(s) }
func (o *overlay) SetSharedText(s string)    { o.shared.SetText(s) }
func (o *overlay) SharedText() string        { return o.shared.Text }

func (o *overlay) ShowMessage(s string) {
	o.message.SetText(s)
	o.box.Show()
}

func (o *overlay) HideMessage() {
	o.box.Hide()
}

// hideControls is used while taking a screenshot.
func (o *overlay) hideControls(hidden bool) {
	if o.controls == nil {
		return
	}
	if hidden {
		o.controls.Hide()
	} else {
		o.controls.Show()
	}
}
