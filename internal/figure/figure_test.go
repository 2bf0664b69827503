package figure

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seq replays fixed values as a random source.
type seq struct {
	vals []float64
	i    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

type op struct {
	name string
	args []float64
	c    Color
}

type recordSurface struct {
	ops []op
}

func (r *recordSurface) Save()    { r.ops = append(r.ops, op{name: "save"}) }
func (r *recordSurface) Restore() { r.ops = append(r.ops, op{name: "restore"}) }
func (r *recordSurface) Translate(x, y float64) {
	r.ops = append(r.ops, op{"translate", []float64{x, y}, ""})
}
func (r *recordSurface) Scale(s float64) { r.ops = append(r.ops, op{"scale", []float64{s}, ""}) }
func (r *recordSurface) FillRect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, op{"rect", []float64{x, y, w, h}, c})
}
func (r *recordSurface) FillCircle(cx, cy, rad float64, c Color) {
	r.ops = append(r.ops, op{"circle", []float64{cx, cy, rad}, c})
}
func (r *recordSurface) StrokeLine(x1, y1, x2, y2, w float64, c Color) {
	r.ops = append(r.ops, op{"line", []float64{x1, y1, x2, y2, w}, c})
}

func (r *recordSurface) names() []string {
	out := make([]string, len(r.ops))
	for i, o := range r.ops {
		out[i] = o.name
	}
	return out
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, p := range []Point{{0, 0}, {12.5, 800}, {-3, 4}} {
		a := Generate(p, rand.New(rand.NewSource(42)))
		b := Generate(p, rand.New(rand.NewSource(42)))
		assert.Equal(t, a, b)

		ra, rb := &recordSurface{}, &recordSurface{}
		Draw(a, ra)
		Draw(b, rb)
		assert.Equal(t, ra.ops, rb.ops)
	}
}

func TestGenerateConsumesInOrder(t *testing.T) {
	rng := &seq{vals: []float64{0, 0.5, 0.99, 0.34, 0.125, 0.4, 0.25}}

	s := Generate(Point{X: 1, Y: 2}, rng)

	assert.Equal(t, Spec{
		Pos:       Point{X: 1, Y: 2},
		Scale:     0.4,
		Limb:      SkinTones[3],
		Hair:      HairColors[8],
		Top:       TopColors[3],
		Pants:     PantColors[1],
		Clothing:  LongPants,
		ArmFactor: 0.25,
	}, s)
}

func TestScaleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		s := Generate(Point{}, rng)
		require.GreaterOrEqual(t, s.Scale, 0.4)
		require.Less(t, s.Scale, 0.75)
		require.GreaterOrEqual(t, s.ArmFactor, 0.0)
		require.Less(t, s.ArmFactor, 1.0)
	}
}

func TestClothingBoundaries(t *testing.T) {
	assert.Equal(t, Short, ClothingFor(0))
	assert.Equal(t, Short, ClothingFor(1.0/3-1e-12))
	assert.Equal(t, LongPants, ClothingFor(1.0/3))
	assert.Equal(t, LongPants, ClothingFor(5.0/6-1e-12))
	assert.Equal(t, LongGarment, ClothingFor(5.0/6))
	assert.Equal(t, LongGarment, ClothingFor(0.999999))
}

func TestClothingDistribution(t *testing.T) {
	const n = 60000
	rng := rand.New(rand.NewSource(99))
	counts := map[Clothing]int{}
	for i := 0; i < n; i++ {
		counts[Generate(Point{}, rng).Clothing]++
	}

	assert.InDelta(t, 1.0/3, float64(counts[Short])/n, 0.01)
	assert.InDelta(t, 1.0/2, float64(counts[LongPants])/n, 0.01)
	assert.InDelta(t, 1.0/6, float64(counts[LongGarment])/n, 0.01)
}

func TestPickNeverOverflows(t *testing.T) {
	rng := &seq{vals: []float64{math.Nextafter(1, 0)}}
	assert.Equal(t, SkinTones[len(SkinTones)-1], pick(SkinTones, rng))
}

func TestDrawShortLegsComeFirst(t *testing.T) {
	s := Spec{Pos: Point{X: 100, Y: 200}, Scale: 0.5, Limb: "#FAD2A5", Hair: "#2C2C2C", Top: "#FF6B6B", Pants: "#424242", Clothing: Short}
	r := &recordSurface{}

	Draw(s, r)

	assert.Equal(t, []string{"save", "translate", "scale", "line", "line", "rect", "rect", "line", "line", "circle", "restore"}, r.names())
	assert.Equal(t, []float64{100, 200}, r.ops[1].args)
	assert.Equal(t, []float64{0.5}, r.ops[2].args)
	// left leg splays out from the hip to 40 below the pants start
	assert.Equal(t, []float64{-5.5, 13, -13.5, 53, 7}, r.ops[3].args)
	assert.Equal(t, []float64{-11, 13, 22, 15}, r.ops[5].args)
	assert.Equal(t, Color("#424242"), r.ops[5].c)
	assert.Equal(t, []float64{-11, -25, 22, 38}, r.ops[6].args)
	assert.Equal(t, []float64{0, -35, 15}, r.ops[9].args)
}

func TestDrawLongVariantsHaveFeet(t *testing.T) {
	for _, tc := range []struct {
		clothing Clothing
		height   float64
		footX    float64
		footLen  float64
	}{
		{LongPants, 30, 22 / 4.2, 5},
		{LongGarment, 40, 22 / 4.5, 4},
	} {
		t.Run(tc.clothing.String(), func(t *testing.T) {
			r := &recordSurface{}
			Draw(Spec{Scale: 1, Clothing: tc.clothing}, r)

			assert.Equal(t, []string{"save", "translate", "scale", "rect", "line", "line", "rect", "line", "line", "circle", "restore"}, r.names())
			assert.Equal(t, tc.height, r.ops[3].args[3])
			footY := PantsStartY + tc.height
			assert.Equal(t, []float64{-tc.footX, footY, -tc.footX, footY + tc.footLen, LimbWidth}, r.ops[4].args)
		})
	}
}

func TestArmsMirror(t *testing.T) {
	r := &recordSurface{}
	Draw(Spec{Scale: 1, Clothing: LongGarment, ArmFactor: 0.5}, r)

	left, right := r.ops[7].args, r.ops[8].args
	dx, dy := ArmEnd(0.5)
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 21.5, dy)
	assert.InDelta(t, -(right[2]), left[2], 1e-9)
	assert.Equal(t, left[3], right[3])
	assert.InDelta(t, -17.4, left[1], 1e-9)
}

func TestColorNRGBA(t *testing.T) {
	c := Color("#1E88E5").NRGBA()
	assert.Equal(t, [4]uint8{0x1E, 0x88, 0xE5, 0xFF}, [4]uint8{c.R, c.G, c.B, c.A})
	bad := Color("nope").NRGBA()
	assert.Equal(t, [4]uint8{0, 0, 0, 0xFF}, [4]uint8{bad.R, bad.G, bad.B, bad.A})
}
