package ddmath

import (
	"math"
	"math/big"
	"testing"
)

// =============================================================================
// Error-free transforms
// =============================================================================

func TestTwoSum_Exact(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{"large plus one", 1e16, 1.0},
		{"one plus tiny", 1.0, 1e-17},
		{"cancellation", 1.0, -0.9999999999999999},
		{"mixed signs", -3.5, 1e-20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := twoSum(tt.a, tt.b)
			if s != tt.a+tt.b {
				t.Errorf("twoSum(%g, %g) s = %g, want fl(a+b) = %g", tt.a, tt.b, s, tt.a+tt.b)
			}
			want := new(big.Float).SetPrec(2048).SetFloat64(tt.a)
			want.Add(want, new(big.Float).SetFloat64(tt.b))
			got := new(big.Float).SetPrec(2048).SetFloat64(s)
			got.Add(got, new(big.Float).SetFloat64(e))
			if got.Cmp(want) != 0 {
				t.Errorf("twoSum(%g, %g) = (%g, %g), s+e is not exact", tt.a, tt.b, s, e)
			}
		})
	}
}

func TestTwoProd_ErrorTerm(t *testing.T) {
	a := 1.0 + math.Ldexp(1, -30)
	b := 1.0 + math.Ldexp(1, -30)
	p, e := twoProd(a, b)

	// (1+2^-30)^2 = 1 + 2^-29 + 2^-60; the 2^-60 term is below float64 resolution at 1.
	if p != 1.0+math.Ldexp(1, -29) {
		t.Errorf("twoProd p = %v, want %v", p, 1.0+math.Ldexp(1, -29))
	}
	if e != math.Ldexp(1, -60) {
		t.Errorf("twoProd e = %v, want %v", e, math.Ldexp(1, -60))
	}
}

// =============================================================================
// Basic arithmetic
// =============================================================================

func TestDoubleDouble_Basic(t *testing.T) {
	tests := []struct {
		name string
		got  DoubleDouble
		want float64
	}{
		{"add", FromFloat64(1).Add(FromFloat64(2)), 3},
		{"sub", FromFloat64(5).Sub(FromFloat64(3)), 2},
		{"mul", FromFloat64(3).Mul(FromFloat64(4)), 12},
		{"mul float64", FromFloat64(2.5).MulFloat64(4), 10},
		{"add float64", FromFloat64(2.5).AddFloat64(0.25), 2.75},
		{"sqr", FromFloat64(-3).Sqr(), 9},
		{"neg", FromFloat64(7).Neg(), -7},
		{"abs", FromFloat64(-7).Abs(), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.Float64(); math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("Float64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDoubleDouble_FromFloat64(t *testing.T) {
	d := FromFloat64(3.14)
	if d.Hi != 3.14 || d.Lo != 0 {
		t.Errorf("FromFloat64(3.14) = %v, want {3.14 0}", d)
	}
	if d.Float64() != 3.14 {
		t.Errorf("Float64() = %v, want 3.14", d.Float64())
	}
	if !Zero.IsZero() {
		t.Error("Zero.IsZero() = false, want true")
	}
}

func TestDoubleDouble_Neg(t *testing.T) {
	d := FromFloat64(7).Neg()
	if d.Hi != -7 || d.Lo != 0 {
		t.Errorf("Neg() = %v, want {-7 0}", d)
	}
}

// =============================================================================
// Precision
// =============================================================================

func TestDoubleDouble_RetainsSmallAddend(t *testing.T) {
	one := FromFloat64(1)
	sum := one.Add(FromFloat64(1e-17))

	// In float64 1+1e-17 == 1; the low limb must keep the addend.
	a, b := 1.0, 1e-17
	if a+b != a {
		t.Fatal("float64 unexpectedly resolves 1e-17 at 1.0")
	}
	diff := sum.Sub(one).Float64()
	if math.Abs(diff-1e-17) > 1e-32 {
		t.Errorf("(1+1e-17)-1 = %g, want 1e-17", diff)
	}
}

func TestDoubleDouble_MulPrecision(t *testing.T) {
	x := New(1, 1e-16)
	sq := x.Mul(x)
	diff := sq.Sub(FromFloat64(1)).Float64()

	// (1+1e-16)^2 - 1 = 2e-16 + 1e-32
	if math.Abs(diff-(2e-16+1e-32)) > 1e-30 {
		t.Errorf("(1+1e-16)^2-1 = %g, want ~%g", diff, 2e-16+1e-32)
	}

	if sqr := x.Sqr(); sqr.Sub(sq).Abs().Hi > 1e-31 {
		t.Errorf("Sqr() = %v differs from Mul(x) = %v", sqr, sq)
	}
}

func TestDoubleDouble_RepeatedSmallSteps(t *testing.T) {
	// Summing 1e-20 a thousand times onto -0.75 must not lose the steps,
	// the way repeated float64 pans would.
	acc := FromFloat64(-0.75)
	for range 1000 {
		acc = acc.AddFloat64(1e-20)
	}
	got := acc.Sub(FromFloat64(-0.75)).Float64()
	if math.Abs(got-1e-17) > 1e-27 {
		t.Errorf("accumulated delta = %g, want 1e-17", got)
	}
}

func TestDoubleDouble_Normalized(t *testing.T) {
	d := FromFloat64(1).Add(FromFloat64(1e-17)).Mul(FromFloat64(3))
	ulp := math.Nextafter(d.Hi, math.Inf(1)) - d.Hi
	if math.Abs(d.Lo) > ulp {
		t.Errorf("|Lo| = %g exceeds ulp(Hi) = %g", math.Abs(d.Lo), ulp)
	}
}

// =============================================================================
// Ordering and sign
// =============================================================================

func TestDoubleDouble_Ordering(t *testing.T) {
	a := FromFloat64(1)
	b := FromFloat64(1).Add(FromFloat64(1e-20))

	if !a.Less(b) {
		t.Errorf("%v.Less(%v) = false, want true", a, b)
	}
	if !b.Greater(a) {
		t.Errorf("%v.Greater(%v) = false, want true", b, a)
	}
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a) != 0 {
		t.Errorf("Cmp ordering wrong: %d %d %d", a.Cmp(b), b.Cmp(a), a.Cmp(a))
	}
}

func TestDoubleDouble_Sign(t *testing.T) {
	tests := []struct {
		d        DoubleDouble
		neg, pos bool
	}{
		{New(0, -1e-30), true, false},
		{New(0, 1e-30), false, true},
		{New(-1, 1e-17), true, false},
		{Zero, false, false},
	}

	for _, tt := range tests {
		if got := tt.d.IsNegative(); got != tt.neg {
			t.Errorf("%v.IsNegative() = %v, want %v", tt.d, got, tt.neg)
		}
		if got := tt.d.IsPositive(); got != tt.pos {
			t.Errorf("%v.IsPositive() = %v, want %v", tt.d, got, tt.pos)
		}
	}
}

func TestDoubleDouble_NaNPropagates(t *testing.T) {
	n := FromFloat64(math.NaN())
	if !n.Add(FromFloat64(1)).IsNaN() {
		t.Error("NaN + 1 should be NaN")
	}
	if !n.Mul(FromFloat64(2)).IsNaN() {
		t.Error("NaN * 2 should be NaN")
	}
	if n.Less(FromFloat64(0)) || FromFloat64(0).Less(n) {
		t.Error("NaN must not be ordered")
	}
}

func BenchmarkDoubleDouble_Mul(b *testing.B) {
	x := New(1.2345678901234567, 1e-17)
	y := New(0.9876543210987654, -3e-18)
	var sink DoubleDouble
	for b.Loop() {
		sink = x.Mul(y)
	}
	_ = sink
}
