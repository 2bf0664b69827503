// Package figure generates and draws the mannequins ("touris") placed on the board.
package figure

// Clothing is the lower-garment variant of a figure.
type Clothing uint8

const (
	Short Clothing = iota
	LongPants
	LongGarment
)

func (c Clothing) String() string {
	switch c {
	case Short:
		return "short"
	case LongPants:
		return "longPants"
	case LongGarment:
		return "longGarment"
	default:
		return "unknown"
	}
}

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Rand is the randomness a figure consumes. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spec parameterizes a single figure. It is a value and never changes after Generate.
type Spec struct {
	Pos       Point
	Scale     float64
	Limb      Color
	Hair      Color
	Top       Color
	Pants     Color
	Clothing  Clothing
	ArmFactor float64
}

const (
	minScale   = 0.4
	scaleRange = 0.35

	shortBound     = 1.0 / 3
	longPantsBound = 1.0/3 + 1.0/2
)

// Generate draws a figure spec anchored at pos. Values are consumed from rng in a
// fixed order (scale, limb, hair, top, pants, clothing, arms) so a seeded source
// always yields the same figure.
func Generate(pos Point, rng Rand) Spec {
	s := Spec{Pos: pos}
	s.Scale = minScale + rng.Float64()*scaleRange
	s.Limb = pick(SkinTones, rng)
	s.Hair = pick(HairColors, rng)
	s.Top = pick(TopColors, rng)
	s.Pants = pick(PantColors, rng)
	s.Clothing = ClothingFor(rng.Float64())
	s.ArmFactor = rng.Float64()
	return s
}

// ClothingFor maps a uniform roll in [0,1) onto the 1/3 : 1/2 : 1/6 variant split.
func ClothingFor(roll float64) Clothing {
	switch {
	case roll < shortBound:
		return Short
	case roll < longPantsBound:
		return LongPants
	default:
		return LongGarment
	}
}

func pick(palette []Color, rng Rand) Color {
	i := int(rng.Float64() * float64(len(palette)))
	if i >= len(palette) {
		i = len(palette) - 1
	}
	return palette[i]
}
