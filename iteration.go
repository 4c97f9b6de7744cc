package fractal

import (
	"fmt"
	"math"

	"github.com/gogpu/fractal/ddmath"
)

// IterationResult is the classification of one point.
//
// The zero value is Interior: the orbit did not provably escape within the
// iteration budget.
type IterationResult struct {
	// Iterations is the index of the iteration at which |z|² first exceeded
	// the escape radius². A point escaping on the first step has 0.
	Iterations uint32

	// Escaped reports whether the orbit escaped.
	Escaped bool

	// NormSq is |z|² at escape, used for smooth coloring.
	NormSq float64
}

// Interior is the result for points that never escape.
var Interior = IterationResult{}

// EscapedAt returns an escaped result.
func EscapedAt(iterations uint32, normSq float64) IterationResult {
	return IterationResult{Iterations: iterations, Escaped: true, NormSq: normSq}
}

// Class reduces r to a comparison key: the escape count, or MaxUint64 for
// interior points. Two pixels with equal classes count as the same level
// set for border tracing and boundary detection.
func (r IterationResult) Class() uint64 {
	if !r.Escaped {
		return math.MaxUint64
	}
	return uint64(r.Iterations)
}

// String returns "Interior" or "Escaped(n, |z|²)".
func (r IterationResult) String() string {
	if !r.Escaped {
		return "Interior"
	}
	return fmt.Sprintf("Escaped(%d, %g)", r.Iterations, r.NormSq)
}

// Fractal is the per-point iteration contract.
//
// Render and ComputeAA are generic over Fractal, so each concrete type gets
// its own instantiation of the tile loop.
type Fractal interface {
	// Iterate classifies one point. For fractals that use delta
	// coordinates the point is the offset from the viewport center.
	Iterate(point ddmath.Complex) IterationResult

	// Params returns the iteration parameters.
	Params() Params

	// UsesDeltaCoordinates reports whether Iterate expects an offset from
	// the viewport center rather than an absolute plane point.
	UsesDeltaCoordinates() bool
}

// Periodicity checking constants.
const (
	cycleWarmup       = 32
	cycleTolerance    = 1e-13
	cycleToleranceDD  = 1e-28
	cycleInitialCheck = 3
)

// cycleCheckDue reports whether iteration n is a periodicity checkpoint:
// every fourth iteration once the warm-up has passed.
func cycleCheckDue(n uint32) bool {
	return n >= cycleWarmup && n&3 == 0
}

// brent tracks the saved orbit point for Brent-style cycle detection.
// The comparison window doubles each time the saved point is refreshed.
type brent struct {
	period uint32
	check  uint32
}

func newBrent() brent {
	return brent{check: cycleInitialCheck}
}

// advance counts one checkpoint and reports whether the saved point must
// be replaced by the current one.
func (b *brent) advance() bool {
	b.period++
	if b.period <= b.check {
		return false
	}
	b.period = 0
	if b.check > math.MaxUint32/2 {
		b.check = math.MaxUint32
	} else {
		b.check *= 2
	}
	return true
}

// inMainCardioid reports whether c lies in the main cardioid.
func inMainCardioid(re, im float64) bool {
	im2 := im * im
	x := re - 0.25
	q := x*x + im2
	return q*(q+x) <= 0.25*im2
}

// inPeriod2Bulb reports whether c lies in the period-2 disk around -1.
func inPeriod2Bulb(re, im float64) bool {
	x := re + 1
	return x*x+im*im <= 0.0625
}

// knownInterior reports whether c is inside the main cardioid or the
// period-2 bulb, both of which lie in the Mandelbrot set.
func knownInterior(re, im float64) bool {
	return inMainCardioid(re, im) || inPeriod2Bulb(re, im)
}
