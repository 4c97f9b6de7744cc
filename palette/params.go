package palette

import "math"

// StartFrom selects a fade-in for low escape counts.
type StartFrom uint8

const (
	// StartNone applies the palette to every escape count.
	StartNone StartFrom = iota
	// StartBlack fades low counts in from black.
	StartBlack
	// StartWhite fades low counts in from white.
	StartWhite
)

// String returns the option name.
func (s StartFrom) String() string {
	switch s {
	case StartBlack:
		return "Black"
	case StartWhite:
		return "White"
	default:
		return "None"
	}
}

// ColorParams controls how escape counts map onto a palette.
type ColorParams struct {
	// Smooth uses the renormalized escape count instead of the raw one.
	Smooth bool

	// CycleLength is the number of iterations per palette cycle.
	CycleLength uint32

	StartFrom StartFrom

	// Counts at or below LowThresholdStart get the StartFrom color;
	// counts in (start, end) blend into the palette.
	LowThresholdStart uint32
	LowThresholdEnd   uint32

	// LinearBlend averages AA samples in linear light.
	LinearBlend bool
}

// DefaultColorParams returns a single cycle over the whole range with no
// fade.
func DefaultColorParams(smooth bool) ColorParams {
	return ColorParams{
		Smooth:            smooth,
		CycleLength:       math.MaxUint32,
		StartFrom:         StartNone,
		LowThresholdStart: 10,
		LowThresholdEnd:   30,
	}
}

// WithCycleMode returns a copy of cp whose cycle length follows m for a
// render with maxIterations.
func (cp ColorParams) WithCycleMode(m CycleMode, maxIterations uint32) ColorParams {
	cp.CycleLength = m.CycleLength(maxIterations)
	return cp
}

// CycleMode derives a cycle length from the iteration budget.
type CycleMode interface {
	CycleLength(maxIterations uint32) uint32
}

// ByCycles repeats the palette N times over the iteration budget.
type ByCycles struct {
	N uint32
}

// CycleLength returns maxIterations/N, or maxIterations when N is 0.
func (c ByCycles) CycleLength(maxIterations uint32) uint32 {
	if c.N == 0 {
		return maxIterations
	}
	return maxIterations / c.N
}

// ByCycleLength repeats the palette every Len iterations.
type ByCycleLength struct {
	Len uint32
}

// CycleLength returns Len.
func (c ByCycleLength) CycleLength(uint32) uint32 {
	return c.Len
}
