// Package export writes the board's drawing to files.
package export

import (
	"errors"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"Overtourissimus/internal/draw"
)

const margin = 10.0 // mm

// Page describes what to put on the PDF page.
type Page struct {
	Shapes  []draw.Shape
	Width   float64 // surface width in pixels
	Height  float64 // surface height in pixels
	Caption string
}

// PDF renders the page onto a single A4 landscape sheet, scaled to fit inside the
// margins with the surface's aspect ratio preserved.
func PDF(w io.Writer, page Page) error {
	if page.Width <= 0 || page.Height <= 0 {
		return errors.New("export: surface has no size")
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("Overtourissimus", true)
	p.SetCreator("overtourissimus", true)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	scale := math.Min((pageW-2*margin)/page.Width, (pageH-2*margin)/page.Height)
	ox, oy := margin, margin

	p.SetDrawColor(200, 200, 200)
	p.SetLineWidth(0.2)
	p.Rect(ox, oy, page.Width*scale, page.Height*scale, "D")
	p.SetLineCapStyle("round")

	for _, s := range page.Shapes {
		c := s.Color.NRGBA()
		r, g, b := int(c.R), int(c.G), int(c.B)
		switch s.Kind {
		case draw.KindRect:
			p.SetFillColor(r, g, b)
			p.Rect(ox+s.X*scale, oy+s.Y*scale, s.W*scale, s.H*scale, "F")
		case draw.KindCircle:
			p.SetFillColor(r, g, b)
			p.Circle(ox+s.X*scale, oy+s.Y*scale, s.R*scale, "F")
		case draw.KindLine:
			p.SetDrawColor(r, g, b)
			p.SetLineWidth(s.Width * scale)
			p.Line(ox+s.X*scale, oy+s.Y*scale, ox+s.X2*scale, oy+s.Y2*scale)
		}
	}

	if page.Caption != "" {
		p.SetFont("Helvetica", "", 9)
		p.SetTextColor(90, 90, 90)
		p.Text(margin, pageH-margin/2, page.Caption)
	}

	if err := p.Error(); err != nil {
		return err
	}
	return p.Output(w)
}
