// Package color provides the byte color type, gradient lookup tables and
// sRGB transfer tables used by palette colorization.
package color

// ColorU8 represents a color with uint8 components in [0,255].
// RGB components are sRGB encoded. Alpha is always linear.
type ColorU8 struct {
	R, G, B, A uint8
}

// Common opaque colors.
var (
	Black = ColorU8{0, 0, 0, 255}
	White = ColorU8{255, 255, 255, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) ColorU8 {
	return ColorU8{R: r, G: g, B: b, A: 255}
}

// Bytes returns the components in RGBA order.
func (c ColorU8) Bytes() [4]byte {
	return [4]byte{c.R, c.G, c.B, c.A}
}

// Lerp interpolates component-wise between a and b. t is clamped to [0,1].
// Components are truncated toward zero.
func Lerp(a, b ColorU8, t float64) ColorU8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return ColorU8{
		R: lerpByte(a.R, b.R, t),
		G: lerpByte(a.G, b.G, t),
		B: lerpByte(a.B, b.B, t),
		A: lerpByte(a.A, b.A, t),
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	//nolint:gosec // G115: result lies between a and b
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Average returns the component-wise mean of colors in sRGB space.
// It returns the zero color for an empty slice.
func Average(colors []ColorU8) ColorU8 {
	if len(colors) == 0 {
		return ColorU8{}
	}
	var r, g, b, a uint32
	for _, c := range colors {
		r += uint32(c.R)
		g += uint32(c.G)
		b += uint32(c.B)
		a += uint32(c.A)
	}
	n := uint32(len(colors)) //nolint:gosec // G115: sample counts are small
	//nolint:gosec // G115: mean of uint8 values fits in uint8
	return ColorU8{uint8(r / n), uint8(g / n), uint8(b / n), uint8(a / n)}
}

// AverageLinear returns the mean of colors computed in linear light and
// re-encoded to sRGB. Alpha is averaged directly.
func AverageLinear(colors []ColorU8) ColorU8 {
	if len(colors) == 0 {
		return ColorU8{}
	}
	var r, g, b float32
	var a uint32
	for _, c := range colors {
		r += ToLinear(c.R)
		g += ToLinear(c.G)
		b += ToLinear(c.B)
		a += uint32(c.A)
	}
	n := float32(len(colors))
	return ColorU8{
		R: FromLinear(r / n),
		G: FromLinear(g / n),
		B: FromLinear(b / n),
		//nolint:gosec // G115: mean of uint8 values fits in uint8
		A: uint8(a / uint32(len(colors))),
	}
}
