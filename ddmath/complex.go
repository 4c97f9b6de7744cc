package ddmath

import (
	"fmt"
	"math"
)

// Complex is a complex number with float64 components.
type Complex struct {
	Re float64
	Im float64
}

// NewComplex returns re + im·i.
func NewComplex(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// FromComplex128 converts a built-in complex128.
func FromComplex128(c complex128) Complex {
	return Complex{Re: real(c), Im: imag(c)}
}

// Complex128 converts c to the built-in complex type.
func (c Complex) Complex128() complex128 {
	return complex(c.Re, c.Im)
}

// Add returns c+o.
func (c Complex) Add(o Complex) Complex {
	return Complex{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

// Sub returns c-o.
func (c Complex) Sub(o Complex) Complex {
	return Complex{Re: c.Re - o.Re, Im: c.Im - o.Im}
}

// Mul returns c*o.
func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + c.Im*o.Re,
	}
}

// Scale returns c*f for a real f.
func (c Complex) Scale(f float64) Complex {
	return Complex{Re: c.Re * f, Im: c.Im * f}
}

// Neg returns -c.
func (c Complex) Neg() Complex {
	return Complex{Re: -c.Re, Im: -c.Im}
}

// NormSq returns re² + im² without the square root.
func (c Complex) NormSq() float64 {
	return c.Re*c.Re + c.Im*c.Im
}

// Norm returns |c|.
func (c Complex) Norm() float64 {
	return math.Sqrt(c.NormSq())
}

// String formats c as "re + im·i".
func (c Complex) String() string {
	return fmt.Sprintf("%g %+g·i", c.Re, c.Im)
}

// ComplexDD is a complex number with double-double components.
// It mirrors [Complex] at roughly twice the precision.
type ComplexDD struct {
	Re DoubleDouble
	Im DoubleDouble
}

// NewComplexDD returns re + im·i.
func NewComplexDD(re, im DoubleDouble) ComplexDD {
	return ComplexDD{Re: re, Im: im}
}

// ComplexDDFrom widens a float64 complex number.
func ComplexDDFrom(c Complex) ComplexDD {
	return ComplexDD{Re: FromFloat64(c.Re), Im: FromFloat64(c.Im)}
}

// Complex rounds c to float64 components.
func (c ComplexDD) Complex() Complex {
	return Complex{Re: c.Re.Float64(), Im: c.Im.Float64()}
}

// Add returns c+o.
func (c ComplexDD) Add(o ComplexDD) ComplexDD {
	return ComplexDD{Re: c.Re.Add(o.Re), Im: c.Im.Add(o.Im)}
}

// AddComplex returns c+o for a float64 o, e.g. center plus a pixel delta.
func (c ComplexDD) AddComplex(o Complex) ComplexDD {
	return ComplexDD{Re: c.Re.AddFloat64(o.Re), Im: c.Im.AddFloat64(o.Im)}
}

// Sub returns c-o.
func (c ComplexDD) Sub(o ComplexDD) ComplexDD {
	return ComplexDD{Re: c.Re.Sub(o.Re), Im: c.Im.Sub(o.Im)}
}

// Mul returns c*o.
func (c ComplexDD) Mul(o ComplexDD) ComplexDD {
	return ComplexDD{
		Re: c.Re.Mul(o.Re).Sub(c.Im.Mul(o.Im)),
		Im: c.Re.Mul(o.Im).Add(c.Im.Mul(o.Re)),
	}
}

// Scale returns c*f for a real double-double f.
func (c ComplexDD) Scale(f DoubleDouble) ComplexDD {
	return ComplexDD{Re: c.Re.Mul(f), Im: c.Im.Mul(f)}
}

// Neg returns -c.
func (c ComplexDD) Neg() ComplexDD {
	return ComplexDD{Re: c.Re.Neg(), Im: c.Im.Neg()}
}

// NormSq returns re² + im².
func (c ComplexDD) NormSq() DoubleDouble {
	return c.Re.Sqr().Add(c.Im.Sqr())
}

// String formats both components with their limbs.
func (c ComplexDD) String() string {
	return fmt.Sprintf("%v + %v·i", c.Re, c.Im)
}
