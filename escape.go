package fractal

import (
	"math"

	"github.com/gogpu/fractal/ddmath"
)

// escapeTime iterates z ← z² + c from z and classifies the orbit.
// Shared by Mandelbrot (z = 0) and Julia (c fixed).
func escapeTime(z, c ddmath.Complex, p Params) IterationResult {
	radiusSq := p.EscapeRadiusSq()
	saved := z
	cycle := newBrent()

	for n := range p.MaxIterations {
		re := z.Re*z.Re - z.Im*z.Im + c.Re
		im := 2*z.Re*z.Im + c.Im
		z = ddmath.Complex{Re: re, Im: im}

		normSq := re*re + im*im
		if normSq > radiusSq {
			return EscapedAt(n, normSq)
		}

		if cycleCheckDue(n) {
			if math.Abs(re-saved.Re) < cycleTolerance && math.Abs(im-saved.Im) < cycleTolerance {
				return Interior
			}
			if cycle.advance() {
				saved = z
			}
		}
	}
	return Interior
}

// escapeTimeDD is escapeTime in double-double precision.
func escapeTimeDD(z, c ddmath.ComplexDD, p Params) IterationResult {
	radiusSq := ddmath.FromFloat64(p.EscapeRadiusSq())
	saved := z
	cycle := newBrent()

	for n := range p.MaxIterations {
		re := z.Re.Sqr().Sub(z.Im.Sqr()).Add(c.Re)
		im := z.Re.Mul(z.Im).MulFloat64(2).Add(c.Im)
		z = ddmath.ComplexDD{Re: re, Im: im}

		normSq := z.NormSq()
		if normSq.Greater(radiusSq) {
			return EscapedAt(n, normSq.Float64())
		}

		if cycleCheckDue(n) {
			dre := re.Sub(saved.Re).Abs()
			dim := im.Sub(saved.Im).Abs()
			if dre.Hi < cycleToleranceDD && dim.Hi < cycleToleranceDD {
				return Interior
			}
			if cycle.advance() {
				saved = z
			}
		}
	}
	return Interior
}
