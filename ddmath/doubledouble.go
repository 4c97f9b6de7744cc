package ddmath

import (
	"fmt"
	"math"
)

// DoubleDouble is an extended precision float represented as Hi+Lo.
//
// The zero value is 0.
type DoubleDouble struct {
	Hi float64
	Lo float64
}

// Zero is the double-double zero.
var Zero = DoubleDouble{}

// New returns the double-double Hi+Lo without renormalizing.
// Callers must ensure |lo| <= ulp(hi)/2; use [FromFloat64] and arithmetic
// to build values otherwise.
func New(hi, lo float64) DoubleDouble {
	return DoubleDouble{Hi: hi, Lo: lo}
}

// FromFloat64 returns v as a double-double with a zero low limb.
func FromFloat64(v float64) DoubleDouble {
	return DoubleDouble{Hi: v}
}

// twoSum returns s = fl(a+b) and the exact rounding error e, so that
// a+b == s+e exactly. No ordering requirement on a and b.
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	v := s - a
	e = (a - (s - v)) + (b - v)
	return s, e
}

// quickTwoSum is twoSum for |a| >= |b|.
func quickTwoSum(a, b float64) (s, e float64) {
	s = a + b
	e = b - (s - a)
	return s, e
}

// twoProd returns p = fl(a*b) and the exact rounding error e.
func twoProd(a, b float64) (p, e float64) {
	p = float64(a * b)
	e = math.FMA(a, b, -p)
	return p, e
}

// Float64 returns the value rounded to the nearest float64.
func (d DoubleDouble) Float64() float64 {
	return d.Hi + d.Lo
}

// Add returns d+o.
func (d DoubleDouble) Add(o DoubleDouble) DoubleDouble {
	s1, s2 := twoSum(d.Hi, o.Hi)
	t1, t2 := twoSum(d.Lo, o.Lo)
	s2 += t1
	s1, s2 = quickTwoSum(s1, s2)
	s2 += t2
	hi, lo := quickTwoSum(s1, s2)
	return DoubleDouble{Hi: hi, Lo: lo}
}

// AddFloat64 returns d+v.
func (d DoubleDouble) AddFloat64(v float64) DoubleDouble {
	s1, s2 := twoSum(d.Hi, v)
	s2 += d.Lo
	hi, lo := quickTwoSum(s1, s2)
	return DoubleDouble{Hi: hi, Lo: lo}
}

// Sub returns d-o.
func (d DoubleDouble) Sub(o DoubleDouble) DoubleDouble {
	return d.Add(o.Neg())
}

// Mul returns d*o.
func (d DoubleDouble) Mul(o DoubleDouble) DoubleDouble {
	p1, p2 := twoProd(d.Hi, o.Hi)
	p2 += float64(d.Hi*o.Lo) + float64(d.Lo*o.Hi)
	hi, lo := quickTwoSum(p1, p2)
	return DoubleDouble{Hi: hi, Lo: lo}
}

// MulFloat64 returns d*v.
func (d DoubleDouble) MulFloat64(v float64) DoubleDouble {
	p1, p2 := twoProd(d.Hi, v)
	p2 += float64(d.Lo * v)
	hi, lo := quickTwoSum(p1, p2)
	return DoubleDouble{Hi: hi, Lo: lo}
}

// Sqr returns d*d. It saves one product over Mul.
func (d DoubleDouble) Sqr() DoubleDouble {
	p1, p2 := twoProd(d.Hi, d.Hi)
	p2 += 2 * float64(d.Hi*d.Lo)
	hi, lo := quickTwoSum(p1, p2)
	return DoubleDouble{Hi: hi, Lo: lo}
}

// Neg returns -d.
func (d DoubleDouble) Neg() DoubleDouble {
	return DoubleDouble{Hi: -d.Hi, Lo: -d.Lo}
}

// Abs returns |d|.
func (d DoubleDouble) Abs() DoubleDouble {
	if d.IsNegative() {
		return d.Neg()
	}
	return d
}

// IsNegative reports whether d < 0.
func (d DoubleDouble) IsNegative() bool {
	return d.Hi < 0 || (d.Hi == 0 && d.Lo < 0)
}

// IsPositive reports whether d > 0.
func (d DoubleDouble) IsPositive() bool {
	return d.Hi > 0 || (d.Hi == 0 && d.Lo > 0)
}

// IsZero reports whether d == 0.
func (d DoubleDouble) IsZero() bool {
	return d.Hi == 0 && d.Lo == 0
}

// IsNaN reports whether either limb is NaN.
func (d DoubleDouble) IsNaN() bool {
	return math.IsNaN(d.Hi) || math.IsNaN(d.Lo)
}

// Cmp compares d and o, returning -1, 0 or +1.
// The high limbs decide unless they are equal. NaN operands compare as 0.
func (d DoubleDouble) Cmp(o DoubleDouble) int {
	switch {
	case d.Hi < o.Hi:
		return -1
	case d.Hi > o.Hi:
		return 1
	case d.Lo < o.Lo:
		return -1
	case d.Lo > o.Lo:
		return 1
	}
	return 0
}

// Less reports whether d < o. It is false if either operand is NaN.
func (d DoubleDouble) Less(o DoubleDouble) bool {
	return d.Hi < o.Hi || (d.Hi == o.Hi && d.Lo < o.Lo)
}

// Greater reports whether d > o. It is false if either operand is NaN.
func (d DoubleDouble) Greater(o DoubleDouble) bool {
	return o.Less(d)
}

// String formats both limbs, e.g. "(+1.00000000000000000e+00 + +1.00000000000000000e-17)".
func (d DoubleDouble) String() string {
	return fmt.Sprintf("(%+.17e + %+.17e)", d.Hi, d.Lo)
}
