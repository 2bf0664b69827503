package figure

// Surface is the drawing target a figure renders onto. Coordinates passed to the
// fill and stroke calls are in the current transform.
type Surface interface {
	Save()
	Restore()
	Translate(x, y float64)
	Scale(s float64)
	FillRect(x, y, w, h float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
	StrokeLine(x1, y1, x2, y2, width float64, c Color)
}

// Body proportions in unscaled units, relative to the anchor.
const (
	HeadRadius  = 15.0
	HeadY       = -35.0
	BodyWidth   = 22.0
	BodyHeight  = 38.0
	BodyY       = HeadY + HeadRadius - 5
	LimbWidth   = 7.0
	PantsStartY = BodyY + BodyHeight

	shortPantsHeight  = 15.0
	longPantsHeight   = 30.0
	longGarmentHeight = 40.0

	legBelowPants = 25.0
	legSpread     = 8.0

	footStubLength = 5.0
	footPeekLength = 4.0

	armMaxX       = 20.0
	armRaisedY    = 15.0
	armHangingY   = 28.0
	shoulderRatio = 0.2
)

// PantsHeight returns the garment height for the clothing variant.
func (c Clothing) PantsHeight() float64 {
	switch c {
	case LongPants:
		return longPantsHeight
	case LongGarment:
		return longGarmentHeight
	default:
		return shortPantsHeight
	}
}

// ArmEnd returns the offset of an arm's end point from its shoulder for a given
// factor, before mirroring. Factor 0 hangs straight down, factor 1 is raised out.
func ArmEnd(factor float64) (dx, dy float64) {
	dx = factor * armMaxX
	dy = (1-factor)*armHangingY + factor*armRaisedY
	return dx, dy
}

// Draw renders the figure. Drawing is append-only: nothing here can be undone
// short of clearing the whole surface.
func Draw(s Spec, sf Surface) {
	sf.Save()
	defer sf.Restore()
	sf.Translate(s.Pos.X, s.Pos.Y)
	sf.Scale(s.Scale)

	pantsHeight := s.Clothing.PantsHeight()

	if s.Clothing == Short {
		legX := BodyWidth / 4
		endY := PantsStartY + pantsHeight + legBelowPants
		sf.StrokeLine(-legX, PantsStartY, -legX-legSpread, endY, LimbWidth, s.Limb)
		sf.StrokeLine(legX, PantsStartY, legX+legSpread, endY, LimbWidth, s.Limb)
	}

	sf.FillRect(-BodyWidth/2, PantsStartY, BodyWidth, pantsHeight, s.Pants)

	footY := PantsStartY + pantsHeight
	switch s.Clothing {
	case LongPants:
		x := BodyWidth / 4.2
		sf.StrokeLine(-x, footY, -x, footY+footStubLength, LimbWidth, s.Limb)
		sf.StrokeLine(x, footY, x, footY+footStubLength, LimbWidth, s.Limb)
	case LongGarment:
		x := BodyWidth / 4.5
		sf.StrokeLine(-x, footY, -x, footY+footPeekLength, LimbWidth, s.Limb)
		sf.StrokeLine(x, footY, x, footY+footPeekLength, LimbWidth, s.Limb)
	}

	sf.FillRect(-BodyWidth/2, BodyY, BodyWidth, BodyHeight, s.Top)

	shoulderY := BodyY + BodyHeight*shoulderRatio
	dx, dy := ArmEnd(s.ArmFactor)
	sf.StrokeLine(-BodyWidth/2, shoulderY, -BodyWidth/2-dx, shoulderY+dy, LimbWidth, s.Limb)
	sf.StrokeLine(BodyWidth/2, shoulderY, BodyWidth/2+dx, shoulderY+dy, LimbWidth, s.Limb)

	sf.FillCircle(0, HeadY, HeadRadius, s.Hair)
}
