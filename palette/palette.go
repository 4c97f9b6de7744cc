package palette

import (
	"math"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/color"
)

// Stop is a gradient stop: an opaque RGB color at position Pos in [0, 1].
type Stop struct {
	Pos     float64
	R, G, B uint8
}

// Palette is a named ring of gradient colors. It is immutable and safe for
// concurrent use.
type Palette struct {
	name string
	lut  *color.LUT
}

// NewPalette samples stops into a palette. Stops need not be sorted. An
// empty stop list yields an all-black palette.
func NewPalette(name string, stops []Stop) *Palette {
	cs := make([]color.Stop, len(stops))
	for i, s := range stops {
		cs[i] = color.Stop{Pos: s.Pos, Color: color.RGB(s.R, s.G, s.B)}
	}
	return &Palette{name: name, lut: color.BuildLUT(cs)}
}

// Name returns the palette name.
func (p *Palette) Name() string {
	return p.name
}

// Color maps one iteration result to straight-alpha RGBA.
func (p *Palette) Color(r fractal.IterationResult, cp ColorParams) [4]byte {
	return p.color(r, cp).Bytes()
}

func (p *Palette) color(r fractal.IterationResult, cp ColorParams) color.ColorU8 {
	if !r.Escaped {
		return color.Black
	}

	t := float64(r.Iterations)
	if cp.Smooth {
		t = smoothIteration(r.Iterations, r.NormSq)
	}
	c := p.lut.Sample(cyclePosition(t, cp.CycleLength) * color.LUTSize)

	if cp.StartFrom == StartNone {
		return c
	}
	lo, hi := cp.LowThresholdStart, cp.LowThresholdEnd
	if hi <= lo || r.Iterations >= hi {
		return c
	}
	base := color.Black
	if cp.StartFrom == StartWhite {
		base = color.White
	}
	if r.Iterations <= lo {
		return base
	}
	return color.Lerp(base, c, float64(r.Iterations-lo)/float64(hi-lo))
}

// PreviewColors returns n evenly spaced colors around the ring, for a
// palette strip.
func (p *Palette) PreviewColors(n int) [][4]byte {
	if n <= 0 {
		return nil
	}
	out := make([][4]byte, n)
	for i := range out {
		out[i] = p.lut.Sample(float64(i) * color.LUTSize / float64(n)).Bytes()
	}
	return out
}

// smoothIteration returns the renormalized escape count. It falls back to
// the raw count when ln|zₙ| is not positive.
func smoothIteration(n uint32, normSq float64) float64 {
	logZn := math.Log(normSq) / 2
	if logZn <= 0 {
		return float64(n)
	}
	return float64(n) + 1 - math.Log(logZn)/math.Ln2
}

// cyclePosition reduces t to [0, 1) of a cycle of length L. Non-positive
// or non-finite lengths give 0.
func cyclePosition(t float64, length uint32) float64 {
	l := float64(length)
	if l <= 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return 0
	}
	return math.Mod(t, l) / l
}
