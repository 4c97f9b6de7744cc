package palette

import (
	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/color"
	"github.com/gogpu/fractal/internal/parallel"
)

// rowsPerTask is the number of rows colorized by one parallel task.
const rowsPerTask = 16

// Colorize maps every pixel of buf through p.
func Colorize(buf *fractal.IterationBuffer, p *Palette, cp ColorParams) *RGBABuffer {
	out := NewRGBABuffer(buf.Width, buf.Height)
	forEachRowBand(buf.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := buf.Data[y*buf.Width : (y+1)*buf.Width]
			dst := out.Pix[y*buf.Width*4:]
			for x, r := range row {
				c := p.color(r, cp)
				dst[x*4+0] = c.R
				dst[x*4+1] = c.G
				dst[x*4+2] = c.B
				dst[x*4+3] = c.A
			}
		}
	})
	return out
}

// ColorizeAA is Colorize with the supersamples of aa averaged into their
// boundary pixels. A nil aa gives the same result as Colorize.
func ColorizeAA(buf *fractal.IterationBuffer, aa *fractal.AASamples, p *Palette, cp ColorParams) *RGBABuffer {
	if aa == nil {
		return Colorize(buf, p, cp)
	}

	average := color.Average
	if cp.LinearBlend {
		average = color.AverageLinear
	}

	out := NewRGBABuffer(buf.Width, buf.Height)
	forEachRowBand(buf.Height, func(y0, y1 int) {
		scratch := make([]color.ColorU8, 0, aa.Level()*aa.Level())
		for y := y0; y < y1; y++ {
			dst := out.Pix[y*buf.Width*4:]
			for x := 0; x < buf.Width; x++ {
				var c color.ColorU8
				if samples := aa.Samples(x, y); samples != nil {
					scratch = scratch[:0]
					for _, s := range samples {
						scratch = append(scratch, p.color(s, cp))
					}
					c = average(scratch)
				} else {
					c = p.color(buf.Data[y*buf.Width+x], cp)
				}
				dst[x*4+0] = c.R
				dst[x*4+1] = c.G
				dst[x*4+2] = c.B
				dst[x*4+3] = c.A
			}
		}
	})
	return out
}

// forEachRowBand splits [0, height) into bands and runs fn on each band in
// parallel. Bands write disjoint rows.
func forEachRowBand(height int, fn func(y0, y1 int)) {
	bands := (height + rowsPerTask - 1) / rowsPerTask
	parallel.Shared(0).ForEach(bands, func(i int) {
		y0 := i * rowsPerTask
		fn(y0, min(y0+rowsPerTask, height))
	})
}
