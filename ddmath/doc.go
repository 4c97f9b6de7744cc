// Package ddmath provides the number types used by the fractal engine:
// double-double extended precision floats and complex numbers built over
// float64 and double-double components.
//
// # Double-double
//
// A [DoubleDouble] represents the unevaluated sum Hi+Lo of two float64
// values, with |Lo| no larger than half an ulp of Hi. This gives roughly 31
// significant decimal digits, enough to resolve adjacent pixels long after
// plain float64 coordinates collapse (around a per-pixel scale of 1e-13).
//
// All operations are built from error-free transforms:
//
//   - TwoSum / QuickTwoSum (Knuth, Dekker) for addition
//   - TwoProd via [math.FMA] for multiplication
//
// The Go specification allows an implementation to fuse x*y+z into a single
// rounding. Every product whose rounding the algorithms depend on is wrapped
// in an explicit float64 conversion, which the specification defines as a
// rounding point and therefore forbids fusing across.
//
// # Complex numbers
//
// [Complex] is a float64 pair and [ComplexDD] a double-double pair with the
// same algebra. Both are small value types intended to stay in registers in
// the iteration loop.
//
// NaN and Inf propagate exactly as they do in float64 arithmetic; nothing in
// this package returns an error.
package ddmath
