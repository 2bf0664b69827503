package ui

import (
	"fmt"
	"image/png"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"Overtourissimus/internal/draw"
	"Overtourissimus/internal/export"
	"Overtourissimus/internal/state"
)

const (
	screenshotName = "overtourissimus_screenshot.png"
	pdfName        = "overtourissimus.pdf"
	// settle gives the window a frame to repaint without the controls.
	settle = 50 * time.Millisecond
)

// saveScreenshot captures the window without the overlay controls and offers it
// as a PNG.
func saveScreenshot(win fyne.Window, ov *overlay) {
	ov.hideControls(true)
	time.AfterFunc(settle, func() {
		fyne.Do(func() {
			img := win.Canvas().Capture()
			ov.hideControls(false)

			d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, win)
					return
				}
				if w == nil {
					return
				}
				defer w.Close()
				if err := png.Encode(w, img); err != nil {
					log.Printf("[EXPORT] screenshot: %v", err)
					dialog.ShowError(err, win)
					return
				}
				log.Printf("[EXPORT] screenshot written to %s", w.URI())
			}, win)
			d.SetFileName(screenshotName)
			d.Show()
		})
	})
}

// exportPDF writes the current figures to a PDF page captioned with the counts.
func exportPDF(win fyne.Window, surface *draw.Canvas, counts *state.Counts, shared string) {
	w, h := surface.Size()
	page := export.Page{
		Shapes:  surface.Shapes(),
		Width:   w,
		Height:  h,
		Caption: fmt.Sprintf("%s, %s", state.GeneratedLabel(counts.Generated()), shared),
	}

	d := dialog.NewFileSave(func(out fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if out == nil {
			return
		}
		defer out.Close()
		if err := export.PDF(out, page); err != nil {
			log.Printf("[EXPORT] pdf: %v", err)
			dialog.ShowError(err, win)
			return
		}
		log.Printf("[EXPORT] %d shapes written to %s", len(page.Shapes), out.URI())
	}, win)
	d.SetFileName(pdfName)
	d.Show()
}
