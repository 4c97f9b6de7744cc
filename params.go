package fractal

import (
	"math"

	"github.com/gogpu/fractal/ddmath"
)

// Default iteration parameters.
const (
	DefaultMaxIterations uint32  = 256
	DefaultEscapeRadius  float64 = 2.0
)

// DefaultJuliaC is the Julia constant used when none is chosen.
var DefaultJuliaC = ddmath.NewComplex(-0.7, 0.27015)

// adaptiveIterationRate is the number of extra iterations per doubling of
// zoom past the default view.
const adaptiveIterationRate = 30.0

// defaultViewScale is the scale of a 1280 pixel wide default Mandelbrot view.
const defaultViewScale = 3.6 / 1280.0

// Params holds the iteration budget and bailout radius.
//
// Build values with [NewParams] or [DefaultParams]; they cache the squared
// radius used by the iteration loops.
type Params struct {
	MaxIterations uint32
	EscapeRadius  float64

	escapeRadiusSq float64
}

// NewParams validates and returns iteration parameters.
// It returns *InvalidParamsError when maxIterations < 1 or the radius is not
// positive and finite.
func NewParams(maxIterations uint32, escapeRadius float64) (Params, error) {
	if maxIterations < 1 {
		return Params{}, &InvalidParamsError{
			Field: "max iterations",
			Value: float64(maxIterations),
			Err:   ErrInvalidMaxIterations,
		}
	}
	if escapeRadius <= 0 || math.IsNaN(escapeRadius) || math.IsInf(escapeRadius, 0) {
		return Params{}, &InvalidParamsError{
			Field: "escape radius",
			Value: escapeRadius,
			Err:   ErrInvalidEscapeRadius,
		}
	}
	return Params{
		MaxIterations:  maxIterations,
		EscapeRadius:   escapeRadius,
		escapeRadiusSq: escapeRadius * escapeRadius,
	}, nil
}

// DefaultParams returns 256 iterations with escape radius 2.
func DefaultParams() Params {
	return Params{
		MaxIterations:  DefaultMaxIterations,
		EscapeRadius:   DefaultEscapeRadius,
		escapeRadiusSq: DefaultEscapeRadius * DefaultEscapeRadius,
	}
}

// EscapeRadiusSq returns EscapeRadius².
func (p Params) EscapeRadiusSq() float64 {
	if p.escapeRadiusSq > 0 {
		return p.escapeRadiusSq
	}
	return p.EscapeRadius * p.EscapeRadius
}

// WithMaxIterations returns a copy of p with a different iteration budget.
// A zero budget is raised to 1.
func (p Params) WithMaxIterations(n uint32) Params {
	p.MaxIterations = max(n, 1)
	return p
}

// AdaptiveParams raises the iteration budget of base with zoom depth:
// 30 extra iterations per doubling of zoom past the default Mandelbrot
// view. Views at or above the default scale get base unchanged.
func AdaptiveParams(base Params, scale float64) Params {
	if scale <= 0 || math.IsNaN(scale) {
		return base
	}
	zoom := defaultViewScale / scale
	if zoom <= 1 {
		return base
	}

	bonus := math.Log2(zoom) * adaptiveIterationRate
	total := float64(base.MaxIterations) + bonus
	if total >= math.MaxUint32 {
		return base.WithMaxIterations(math.MaxUint32)
	}
	return base.WithMaxIterations(base.MaxIterations + uint32(bonus))
}
