package palette

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// RGBABuffer is a straight-alpha RGBA image, 4 bytes per pixel in
// row-major order.
type RGBABuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewRGBABuffer returns an opaque black buffer.
func NewRGBABuffer(width, height int) *RGBABuffer {
	width, height = max(width, 0), max(height, 0)
	pix := make([]byte, width*height*4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return &RGBABuffer{Width: width, Height: height, Pix: pix}
}

// At returns the RGBA bytes of pixel (x, y).
func (b *RGBABuffer) At(x, y int) [4]byte {
	i := (y*b.Width + x) * 4
	return [4]byte{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// ToImage wraps the buffer as an *image.RGBA without copying. Every pixel
// is opaque, so straight and premultiplied alpha coincide.
func (b *RGBABuffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Scaled resamples the buffer to width×height with bilinear filtering.
// It is used to stretch a preview frame to display size.
func (b *RGBABuffer) Scaled(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	if b.Width == 0 || b.Height == 0 || width <= 0 || height <= 0 {
		return dst
	}
	src := b.ToImage()
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
