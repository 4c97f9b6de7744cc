package fractal

import (
	"math"

	"github.com/gogpu/fractal/ddmath"
)

// Viewport maps pixels of a Width×Height frame to the complex plane.
//
// CenterDD is authoritative; Center is its float64 projection and is kept
// in sync by every method that moves the center. Scale is plane units per
// pixel. Pixel (0, 0) is the top-left corner and imaginary values grow
// upward.
type Viewport struct {
	Center   ddmath.Complex
	CenterDD ddmath.ComplexDD
	Scale    float64
	Width    int
	Height   int
}

// PrecisionMode selects the arithmetic used for a viewport.
type PrecisionMode uint8

const (
	// PrecisionFloat64 iterates in float64.
	PrecisionFloat64 PrecisionMode = iota
	// PrecisionDoubleDouble iterates in double-double around the center.
	PrecisionDoubleDouble
)

// String returns "f64" or "f64x2".
func (m PrecisionMode) String() string {
	if m == PrecisionDoubleDouble {
		return "f64x2"
	}
	return "f64"
}

// NewViewport returns a viewport centered at center.
// It returns *InvalidViewportError for empty dimensions or a scale that is
// not positive and finite.
func NewViewport(center ddmath.Complex, scale float64, width, height int) (Viewport, error) {
	return NewViewportDD(ddmath.ComplexDDFrom(center), scale, width, height)
}

// NewViewportDD is NewViewport with a double-double center.
func NewViewportDD(center ddmath.ComplexDD, scale float64, width, height int) (Viewport, error) {
	if width <= 0 || height <= 0 {
		return Viewport{}, &InvalidViewportError{
			Width: width, Height: height, Scale: scale,
			Reason: "dimensions must be positive",
		}
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Viewport{}, &InvalidViewportError{
			Width: width, Height: height, Scale: scale,
			Reason: "scale must be positive and finite",
		}
	}
	return Viewport{
		Center:   center.Complex(),
		CenterDD: center,
		Scale:    scale,
		Width:    width,
		Height:   height,
	}, nil
}

// DefaultMandelbrotViewport frames the whole Mandelbrot set: a 3.6×2.6
// region around -0.75, fitted to the frame.
func DefaultMandelbrotViewport(width, height int) Viewport {
	width, height = max(width, 1), max(height, 1)
	scale := math.Max(3.6/float64(width), 2.6/float64(height))
	center := ddmath.NewComplex(-0.75, 0)
	return Viewport{
		Center:   center,
		CenterDD: ddmath.ComplexDDFrom(center),
		Scale:    scale,
		Width:    width,
		Height:   height,
	}
}

// DefaultJuliaViewport frames a 4.2×4.2 region around the origin, enough
// for any connected Julia set.
func DefaultJuliaViewport(width, height int) Viewport {
	width, height = max(width, 1), max(height, 1)
	scale := math.Max(4.2/float64(width), 4.2/float64(height))
	return Viewport{
		Scale:  scale,
		Width:  width,
		Height: height,
	}
}

// PixelToComplex maps pixel (px, py) to its plane point.
func (v Viewport) PixelToComplex(px, py int) ddmath.Complex {
	return v.SubpixelToComplex(float64(px), float64(py))
}

// SubpixelToComplex maps a fractional pixel position to its plane point:
// center + ((px−w/2)·scale, −(py−h/2)·scale).
func (v Viewport) SubpixelToComplex(px, py float64) ddmath.Complex {
	halfW := float64(v.Width) / 2
	halfH := float64(v.Height) / 2
	return ddmath.Complex{
		Re: v.Center.Re + (px-halfW)*v.Scale,
		Im: v.Center.Im - (py-halfH)*v.Scale,
	}
}

// PixelToDelta maps pixel (px, py) to its offset from the center.
func (v Viewport) PixelToDelta(px, py int) ddmath.Complex {
	return v.SubpixelToDelta(float64(px), float64(py))
}

// SubpixelToDelta is SubpixelToComplex without the center term.
func (v Viewport) SubpixelToDelta(px, py float64) ddmath.Complex {
	halfW := float64(v.Width) / 2
	halfH := float64(v.Height) / 2
	return ddmath.Complex{
		Re: (px - halfW) * v.Scale,
		Im: -(py - halfH) * v.Scale,
	}
}

// mapPixel returns the coordinate f expects for pixel (px, py).
func mapPixel[F Fractal](f F, v Viewport, px, py int) ddmath.Complex {
	if f.UsesDeltaCoordinates() {
		return v.PixelToDelta(px, py)
	}
	return v.PixelToComplex(px, py)
}

// mapSubpixel is mapPixel for fractional positions.
func mapSubpixel[F Fractal](f F, v Viewport, px, py float64) ddmath.Complex {
	if f.UsesDeltaCoordinates() {
		return v.SubpixelToDelta(px, py)
	}
	return v.SubpixelToComplex(px, py)
}

// Downscaled returns a viewport of the same plane region at 1/factor
// resolution. Dimensions round up; factors below 1 are treated as 1.
func (v Viewport) Downscaled(factor int) Viewport {
	f := max(factor, 1)
	v.Scale *= float64(f)
	v.Width = (v.Width + f - 1) / f
	v.Height = (v.Height + f - 1) / f
	return v
}

// OffsetCenter moves the center by (dre, dim) in double-double, so that
// many small pans accumulate without float64 rounding.
func (v *Viewport) OffsetCenter(dre, dim float64) {
	v.CenterDD.Re = v.CenterDD.Re.AddFloat64(dre)
	v.CenterDD.Im = v.CenterDD.Im.AddFloat64(dim)
	v.Center = v.CenterDD.Complex()
}

// SetCenterDD replaces the center.
func (v *Viewport) SetCenterDD(c ddmath.ComplexDD) {
	v.CenterDD = c
	v.Center = c.Complex()
}

// AspectRatio returns Width/Height.
func (v Viewport) AspectRatio() float64 {
	return float64(v.Width) / float64(v.Height)
}

// ComplexWidth returns the plane width covered by the frame.
func (v Viewport) ComplexWidth() float64 {
	return float64(v.Width) * v.Scale
}

// ComplexHeight returns the plane height covered by the frame.
func (v Viewport) ComplexHeight() float64 {
	return float64(v.Height) * v.Scale
}

// ZoomAt scales the view by factor while keeping the plane point under
// pixel (px, py) fixed. factor < 1 zooms in. The new center is computed in
// double-double.
func (v *Viewport) ZoomAt(px, py int, factor float64) {
	target := v.CenterDD.AddComplex(v.PixelToDelta(px, py))
	diff := v.CenterDD.Sub(target)
	v.SetCenterDD(target.Add(diff.Scale(ddmath.FromFloat64(factor))))
	v.Scale *= factor
}

// Zoom scales the view by factor around the center.
func (v *Viewport) Zoom(factor float64) {
	v.Scale *= factor
}

// PanByFraction moves the center by fractions of the visible plane size.
// Positive fy moves the view up (toward larger imaginary values).
func (v *Viewport) PanByFraction(fx, fy float64) {
	v.OffsetCenter(fx*v.ComplexWidth(), fy*v.ComplexHeight())
}

// PrecisionMode reports which arithmetic a render of v should use.
func (v Viewport) PrecisionMode() PrecisionMode {
	if v.Scale < DDThresholdScale {
		return PrecisionDoubleDouble
	}
	return PrecisionFloat64
}

// NearPrecisionLimit reports whether v is deep enough for double-double
// rounding to become visible.
func (v Viewport) NearPrecisionLimit() bool {
	return v.Scale < DDWarnScale
}
