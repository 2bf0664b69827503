package ui

import (
	"context"
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"Overtourissimus/internal/board"
	"Overtourissimus/internal/config"
	"Overtourissimus/internal/draw"
	"Overtourissimus/internal/remote"
	"Overtourissimus/internal/session"
	"Overtourissimus/internal/state"
)

// newSurface returns nil when the window has no canvas to draw on.
func newSurface(win fyne.Window) board.Surface {
	if win.Canvas() == nil {
		return nil
	}
	return draw.NewCanvas()
}

// RunApp opens the board window and blocks until it is closed.
func RunApp(cfg *config.Config, sync *remote.Sync) {
	a := app.New()
	win := a.NewWindow(cfg.Window.Title)
	win.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	ov := newOverlay()
	policy, _ := state.ParseGeneratedPolicy(cfg.Drawing.Generated)
	surface := newSurface(win)
	ctrl, err := board.New(surface, ov, sync, board.Options{
		Generated:      policy,
		Optimistic:     cfg.Counter.Optimistic,
		TeardownBudget: cfg.Counter.TeardownTimeout.Duration,
		Dispatch:       fyne.Do,
	})
	if err != nil {
		log.Printf("[UI] %v", err)
		if errors.Is(err, board.ErrRenderingUnavailable) {
			ov.ShowMessage(board.MsgCanvasUnsupported)
		} else {
			ov.ShowMessage(err.Error())
		}
		win.SetContent(container.NewCenter(ov.box))
		win.ShowAndRun()
		return
	}

	ctx := context.Background()
	dc := surface.(*draw.Canvas)
	cw := NewCanvasWidget(dc)
	dc.OnChange = cw.Refresh

	sess := session.New(session.Config{
		HoldDelay:      cfg.Drawing.HoldDelay.Duration,
		RepeatInterval: cfg.Drawing.RepeatInterval.Duration,
	}, session.RealClock{Dispatch: fyne.Do}, ctrl.DrawAt)
	cw.SetSession(sess)
	cw.OnResize = func(size fyne.Size) {
		ctrl.Resize(ctx, float64(size.Width), float64(size.Height))
	}
	ov.clear.OnTapped = func() {
		ctrl.Clear(ctx)
	}

	toolbar := NewToolbar(Tools{
		Screenshot: func() { saveScreenshot(win, ov) },
		ExportPDF:  func() { exportPDF(win, dc, ctrl.Counts(), ov.SharedText()) },
	})
	win.SetContent(container.NewStack(cw, ov.layout(toolbar)))
	win.SetCloseIntercept(func() {
		ctrl.Teardown()
		win.Close()
	})

	go func() {
		if err := ctrl.Load(ctx); err != nil {
			log.Printf("[UI] initial load: %v", err)
		}
	}()
	win.ShowAndRun()
}
