package fractal

import (
	"math"
	"time"

	"github.com/gogpu/fractal/internal/parallel"
)

// noSamples marks a pixel without supersamples in AASamples.offsets.
const noSamples = math.MaxUint32

// aaChunk is the number of boundary pixels per parallel task.
const aaChunk = 256

// AASamples is a sparse supersampling overlay for an IterationBuffer.
//
// Only boundary pixels carry samples. Each of them owns Level()² results
// in a flat array, ordered row by row within the pixel.
type AASamples struct {
	Width  int
	Height int

	level         int
	boundaryCount int
	offsets       []uint32
	data          []IterationResult
}

// Level returns the per-axis supersampling factor.
func (a *AASamples) Level() int {
	return a.level
}

// BoundaryCount returns the number of pixels carrying samples.
func (a *AASamples) BoundaryCount() int {
	return a.boundaryCount
}

// Samples returns the supersamples of pixel (x, y), or nil when the pixel
// has none or lies outside the frame. The slice aliases internal storage.
func (a *AASamples) Samples(x, y int) []IterationResult {
	if x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return nil
	}
	off := a.offsets[y*a.Width+x]
	if off == noSamples {
		return nil
	}
	n := a.level * a.level
	return a.data[off : int(off)+n]
}

// Shift moves the overlay by (dx, dy) like IterationBuffer.Shift.
// Pixels shifted out are dropped; exposed pixels have no samples.
func (a *AASamples) Shift(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	n := a.level * a.level
	offsets := make([]uint32, len(a.offsets))
	for i := range offsets {
		offsets[i] = noSamples
	}
	data := make([]IterationResult, 0, len(a.data))
	count := 0

	for y := 0; y < a.Height; y++ {
		srcY := y - dy
		if srcY < 0 || srcY >= a.Height {
			continue
		}
		for x := 0; x < a.Width; x++ {
			srcX := x - dx
			if srcX < 0 || srcX >= a.Width {
				continue
			}
			off := a.offsets[srcY*a.Width+srcX]
			if off == noSamples {
				continue
			}
			offsets[y*a.Width+x] = uint32(len(data))
			data = append(data, a.data[off:int(off)+n]...)
			count++
		}
	}

	a.offsets = offsets
	a.data = data
	a.boundaryCount = count
}

// DetectBoundaries marks every pixel whose class differs from at least one
// of its in-bounds 8-neighbours.
func DetectBoundaries(buf *IterationBuffer) []bool {
	w, h := buf.Width, buf.Height
	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			class := buf.Data[y*w+x].Class()
		neighbours:
			for ny := max(y-1, 0); ny <= min(y+1, h-1); ny++ {
				for nx := max(x-1, 0); nx <= min(x+1, w-1); nx++ {
					if buf.Data[ny*w+nx].Class() != class {
						mask[y*w+x] = true
						break neighbours
					}
				}
			}
		}
	}
	return mask
}

// ComputeAA supersamples the boundary pixels of buf with level×level
// samples each. buf must come from rendering vp with f.
//
// It returns nil when level < 1, when buf has no boundary pixels, or when
// the generation of cancel changed during the pass. Progress is reset to
// the number of boundary pixels.
func ComputeAA[F Fractal](f F, vp Viewport, buf *IterationBuffer, level int, cancel *RenderCancel, opts ...RenderOption) *AASamples {
	if level < 1 || buf == nil {
		return nil
	}
	if cancel == nil {
		cancel = NewRenderCancel()
	}
	return computeAA(f, vp, buf, level, cancel, cancel.Generation(), resolveRenderOptions(opts))
}

// computeAA is ComputeAA against a generation recorded by the caller.
func computeAA[F Fractal](f F, vp Viewport, buf *IterationBuffer, level int, cancel *RenderCancel, gen uint64, o renderOptions) *AASamples {
	if cancel.Generation() != gen {
		return nil
	}
	start := time.Now()

	mask := DetectBoundaries(buf)
	var boundary []int
	for i, edge := range mask {
		if edge {
			boundary = append(boundary, i)
		}
	}
	if len(boundary) == 0 {
		return nil
	}

	n := level * level
	aa := &AASamples{
		Width:         buf.Width,
		Height:        buf.Height,
		level:         level,
		boundaryCount: len(boundary),
		offsets:       make([]uint32, len(mask)),
		data:          make([]IterationResult, len(boundary)*n),
	}
	for i := range aa.offsets {
		aa.offsets[i] = noSamples
	}
	for k, idx := range boundary {
		aa.offsets[idx] = uint32(k * n)
	}

	cancel.ResetProgress(len(boundary))
	Logger().Debug("aa started", "boundary", len(boundary), "level", level)

	nf := float64(level)
	chunks := (len(boundary) + aaChunk - 1) / aaChunk
	parallel.Shared(o.workers).ForEach(chunks, func(c int) {
		lo := c * aaChunk
		hi := min(lo+aaChunk, len(boundary))
		for k := lo; k < hi; k++ {
			if cancel.Generation() != gen {
				return
			}
			idx := boundary[k]
			x, y := float64(idx%buf.Width), float64(idx/buf.Width)
			out := aa.data[k*n : (k+1)*n]
			for sy := range level {
				for sx := range level {
					p := mapSubpixel(f, vp, x+(float64(sx)+0.5)/nf, y+(float64(sy)+0.5)/nf)
					out[sy*level+sx] = f.Iterate(p)
				}
			}
			cancel.incProgress()
		}
	})

	if cancel.Generation() != gen {
		Logger().Debug("aa cancelled", "elapsed", time.Since(start))
		return nil
	}
	Logger().Info("aa finished", "boundary", len(boundary), "elapsed", time.Since(start))
	return aa
}
