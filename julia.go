package fractal

import "github.com/gogpu/fractal/ddmath"

// Julia iterates z ← z² + C from z = the pixel's plane point.
type Julia struct {
	params Params
	c      ddmath.Complex
}

// NewJulia returns the Julia set for constant c.
func NewJulia(c ddmath.Complex, p Params) Julia {
	return Julia{params: p, c: c}
}

// Iterate classifies the starting point z.
func (j Julia) Iterate(z ddmath.Complex) IterationResult {
	return escapeTime(z, j.c, j.params)
}

// Params returns the iteration parameters.
func (j Julia) Params() Params { return j.params }

// UsesDeltaCoordinates returns false.
func (Julia) UsesDeltaCoordinates() bool { return false }

// C returns the Julia constant.
func (j Julia) C() ddmath.Complex { return j.c }

// JuliaDD is Julia in double-double precision for deep zooms.
// Iterate takes the offset from Center.
type JuliaDD struct {
	params Params
	c      ddmath.ComplexDD
	center ddmath.ComplexDD
}

// NewJuliaDD returns a double-double Julia set for constant c around center.
func NewJuliaDD(c ddmath.Complex, p Params, center ddmath.ComplexDD) JuliaDD {
	return JuliaDD{params: p, c: ddmath.ComplexDDFrom(c), center: center}
}

// Iterate classifies the starting point Center+delta.
func (j JuliaDD) Iterate(delta ddmath.Complex) IterationResult {
	return escapeTimeDD(j.center.AddComplex(delta), j.c, j.params)
}

// Params returns the iteration parameters.
func (j JuliaDD) Params() Params { return j.params }

// UsesDeltaCoordinates returns true.
func (JuliaDD) UsesDeltaCoordinates() bool { return true }

// C returns the Julia constant.
func (j JuliaDD) C() ddmath.Complex { return j.c.Complex() }

// Center returns the reference point deltas are measured from.
func (j JuliaDD) Center() ddmath.ComplexDD { return j.center }
