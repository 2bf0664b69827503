package figure

import (
	"image/color"
	"strconv"
)

// Color is a palette entry in #RRGGBB form.
type Color string

// NRGBA converts the hex value to an opaque color. Malformed values come back black.
func (c Color) NRGBA() color.NRGBA {
	s := string(c)
	if len(s) == 7 && s[0] == '#' {
		s = s[1:]
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

var (
	SkinTones  = []Color{"#FAD2A5", "#E0B49A", "#C89F82", "#A9816B", "#8B6A56", "#6F5444"}
	HairColors = []Color{"#4A2C2A", "#6D4C41", "#B7A68E", "#D1C29B", "#F5E6CC", "#2C2C2C", "#A52A2A", "#FFDB58", "#E6E6FA"}
	TopColors  = []Color{"#FF6B6B", "#4ECDC4", "#45B7D1", "#F7DC6F", "#BB8FCE", "#82E0AA", "#FFA07A", "#20B2AA", "#DDA0DD"}
	PantColors = []Color{"#5D4037", "#795548", "#3E2723", "#1E88E5", "#424242", "#607D8B", "#2C3E50", "#95A5A6"}
)
