package color

import (
	"math"
	"sort"
)

// LUTSize is the number of entries in a gradient lookup table.
const LUTSize = 256

// Stop is a gradient stop at position Pos in [0,1].
type Stop struct {
	Pos   float64
	Color ColorU8
}

// LUT is a closed-ring gradient lookup table. Entry i holds the gradient
// color at t = i/LUTSize; sampling past the last entry wraps to the first.
type LUT [LUTSize]ColorU8

// BuildLUT samples the piecewise-linear gradient defined by stops into a LUT.
// Stops are sorted by position; the input slice is not modified.
// An empty stop list yields an all-black table.
func BuildLUT(stops []Stop) *LUT {
	lut := new(LUT)
	if len(stops) == 0 {
		for i := range lut {
			lut[i] = Black
		}
		return lut
	}

	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })

	for i := range lut {
		t := float64(i) / LUTSize

		// Last stop at or before t.
		lo := 0
		for j, s := range sorted {
			if s.Pos <= t {
				lo = j
			}
		}
		hi := min(lo+1, len(sorted)-1)

		a, b := sorted[lo], sorted[hi]
		var frac float64
		if span := b.Pos - a.Pos; span > 0 {
			frac = math.Max(0, math.Min(1, (t-a.Pos)/span))
		}
		lut[i] = Lerp(a.Color, b.Color, frac)
	}
	return lut
}

// Sample returns the color at fractional table index f, interpolating
// linearly between neighboring entries. The table is a ring: index
// LUTSize-1 blends into index 0, and f is reduced modulo LUTSize.
func (l *LUT) Sample(f float64) ColorU8 {
	f = math.Mod(f, LUTSize)
	if math.IsNaN(f) {
		return l[0]
	}
	if f < 0 {
		f += LUTSize
	}
	i := int(f)
	if i >= LUTSize {
		i = LUTSize - 1
	}
	j := (i + 1) % LUTSize
	return Lerp(l[i], l[j], f-float64(i))
}
