package fractal

import "github.com/gogpu/fractal/ddmath"

// Mandelbrot iterates z ← z² + c from z = 0 with c the pixel's plane point.
//
// Points inside the main cardioid or the period-2 bulb are classified
// Interior without iterating.
type Mandelbrot struct {
	params Params
}

// NewMandelbrot returns a Mandelbrot fractal with the given parameters.
func NewMandelbrot(p Params) Mandelbrot {
	return Mandelbrot{params: p}
}

// Iterate classifies the plane point c.
func (m Mandelbrot) Iterate(c ddmath.Complex) IterationResult {
	if knownInterior(c.Re, c.Im) {
		return Interior
	}
	return escapeTime(ddmath.Complex{}, c, m.params)
}

// Params returns the iteration parameters.
func (m Mandelbrot) Params() Params { return m.params }

// UsesDeltaCoordinates returns false.
func (Mandelbrot) UsesDeltaCoordinates() bool { return false }

// MandelbrotDD is Mandelbrot in double-double precision for deep zooms.
//
// Iterate takes the pixel's offset from Center and rebuilds c = Center+delta
// in double-double, so pixels far below float64 resolution stay distinct.
type MandelbrotDD struct {
	params Params
	center ddmath.ComplexDD
}

// NewMandelbrotDD returns a double-double Mandelbrot around center.
func NewMandelbrotDD(p Params, center ddmath.ComplexDD) MandelbrotDD {
	return MandelbrotDD{params: p, center: center}
}

// Iterate classifies the point Center+delta.
func (m MandelbrotDD) Iterate(delta ddmath.Complex) IterationResult {
	c := m.center.AddComplex(delta)

	// The shortcut regions are large; float64 resolves them fine.
	cf := c.Complex()
	if knownInterior(cf.Re, cf.Im) {
		return Interior
	}
	return escapeTimeDD(ddmath.ComplexDD{}, c, m.params)
}

// Params returns the iteration parameters.
func (m MandelbrotDD) Params() Params { return m.params }

// UsesDeltaCoordinates returns true.
func (MandelbrotDD) UsesDeltaCoordinates() bool { return true }

// Center returns the reference point deltas are measured from.
func (m MandelbrotDD) Center() ddmath.ComplexDD { return m.center }
