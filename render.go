package fractal

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/fractal/internal/parallel"
)

// RenderResult is the outcome of one render pass.
type RenderResult struct {
	// Iterations holds one result per pixel. Tiles skipped after a
	// cancellation are left Interior.
	Iterations *IterationBuffer

	// AA is the supersampled overlay, nil when AA was not requested,
	// found no boundaries or was cancelled.
	AA *AASamples

	Elapsed   time.Duration
	Cancelled bool

	TilesRendered     int
	TilesMirrored     int
	TilesBorderTraced int
}

// scratchPools holds one tile scratch pool per tile size.
var scratchPools sync.Map // int -> *parallel.TilePool[IterationResult]

func scratchPool(size int) *parallel.TilePool[IterationResult] {
	if p, ok := scratchPools.Load(size); ok {
		return p.(*parallel.TilePool[IterationResult])
	}
	p, _ := scratchPools.LoadOrStore(size, parallel.NewTilePool[IterationResult](size))
	return p.(*parallel.TilePool[IterationResult])
}

// tileOutcome is what one tile task hands back to the assembler.
type tileOutcome struct {
	buf    *parallel.Buffer[IterationResult]
	traced bool
}

// Render computes the escape-time classification of every pixel of vp.
//
// Tiles are rendered in parallel on a shared worker pool into scratch
// buffers and assembled into a fresh IterationBuffer on the calling
// goroutine. With useSymmetry set and a center exactly on the real axis,
// the tile rows are laid out around the centerline and every lower-half
// tile is copied, row-flipped, from its upper twin instead of computed.
// Only the Mandelbrot set is symmetric about the real axis.
//
// The generation of cancel is recorded on entry; the pass stops starting
// new tiles once it changes and reports Cancelled. A nil cancel renders to
// completion.
func Render[F Fractal](f F, vp Viewport, cancel *RenderCancel, useSymmetry bool, opts ...RenderOption) *RenderResult {
	if cancel == nil {
		cancel = NewRenderCancel()
	}
	return render(f, vp, cancel, cancel.Generation(), useSymmetry, resolveRenderOptions(opts))
}

// render is Render against a generation recorded by the caller. A pass
// whose generation is already stale computes no tiles.
func render[F Fractal](f F, vp Viewport, cancel *RenderCancel, gen uint64, useSymmetry bool, o renderOptions) *RenderResult {
	start := time.Now()

	var tiles []Tile
	var classified []ClassifiedTile
	symmetric := false
	if useSymmetry && vp.CenterDD.Im.IsZero() {
		tiles = BuildSymmetricTileGridSize(vp.Width, vp.Height, o.tileSize)
		classified, symmetric = ClassifyTilesForSymmetry(tiles, vp.Height, vp.Center.Im)
	} else {
		tiles = BuildTileGridSize(vp.Width, vp.Height, o.tileSize)
	}
	if !symmetric {
		classified = unclassified(tiles)
	}

	renderable := 0
	for _, ct := range classified {
		if ct.Kind != TileMirror {
			renderable++
		}
	}
	cancel.ResetProgress(renderable)

	Logger().Debug("render started",
		"width", vp.Width, "height", vp.Height,
		"tiles", len(tiles), "renderable", renderable,
		"symmetric", symmetric, "precision", vp.PrecisionMode(),
		"workers", parallel.Shared(o.workers).Workers())

	outcomes := computeTiles(f, vp, classified, cancel, gen, o)

	buf := NewIterationBuffer(vp.Width, vp.Height, f.Params().MaxIterations)
	res := &RenderResult{Iterations: buf}
	pool := scratchPool(o.tileSize)
	for i, ct := range classified {
		out := outcomes[i]
		if out.buf == nil {
			continue
		}
		buf.BlitTile(ct.Tile, out.buf.Data)
		res.TilesRendered++
		if out.traced {
			res.TilesBorderTraced++
		}
		if ct.Kind == TilePrimary {
			buf.BlitTileMirrored(classified[ct.Pair].Tile, out.buf.Data)
			res.TilesMirrored++
		}
	}
	for _, out := range outcomes {
		if out.buf != nil {
			pool.Put(out.buf)
		}
	}

	res.Cancelled = cancel.Generation() != gen
	res.Elapsed = time.Since(start)

	Logger().Info("render finished",
		"elapsed", res.Elapsed, "cancelled", res.Cancelled,
		"rendered", res.TilesRendered, "mirrored", res.TilesMirrored,
		"border_traced", res.TilesBorderTraced)
	return res
}

// RenderShifted re-renders the frame after a pan of (dx, dy) pixels.
//
// prev is the buffer of the previous frame; vp is the new viewport, whose
// content at (x, y) equals prev's at (x−dx, y−dy). The shifted buffer is
// kept and only tiles touching the exposed band are recomputed. prev is
// not modified. The counters in the result cover the recomputed tiles.
//
// When prev does not match vp, or the pan exposes the whole frame, a full
// Render without symmetry is returned instead.
func RenderShifted[F Fractal](f F, vp Viewport, prev *IterationBuffer, dx, dy int, cancel *RenderCancel, opts ...RenderOption) *RenderResult {
	if prev == nil || prev.Width != vp.Width || prev.Height != vp.Height ||
		prev.MaxIterations != f.Params().MaxIterations ||
		abs(dx) >= vp.Width || abs(dy) >= vp.Height {
		return Render(f, vp, cancel, false, opts...)
	}

	o := resolveRenderOptions(opts)
	if cancel == nil {
		cancel = NewRenderCancel()
	}
	start := time.Now()
	gen := cancel.Generation()

	buf := prev.Clone()
	buf.Shift(dx, dy)

	tiles := BuildTileGridSize(vp.Width, vp.Height, o.tileSize)
	dirty := parallel.NewDirtyRegionForFrame(vp.Width, vp.Height, o.tileSize)
	dirty.MarkExposed(vp.Width, vp.Height, dx, dy)

	var exposed []ClassifiedTile
	dirty.ForEachDirty(func(tx, ty int) {
		exposed = append(exposed, ClassifiedTile{Tile: tiles[ty*dirty.TilesX()+tx], Kind: TileNormal, Pair: -1})
	})
	cancel.ResetProgress(len(exposed))

	Logger().Debug("shifted render started",
		"dx", dx, "dy", dy, "dirty_tiles", dirty.Count(), "tiles", len(tiles))

	outcomes := computeTiles(f, vp, exposed, cancel, gen, o)

	res := &RenderResult{Iterations: buf}
	pool := scratchPool(o.tileSize)
	for i, ct := range exposed {
		out := outcomes[i]
		if out.buf == nil {
			continue
		}
		buf.BlitTile(ct.Tile, out.buf.Data)
		res.TilesRendered++
		if out.traced {
			res.TilesBorderTraced++
		}
		pool.Put(out.buf)
	}

	res.Cancelled = cancel.Generation() != gen
	res.Elapsed = time.Since(start)
	return res
}

// computeTiles renders every non-mirror tile in parallel. A nil buffer in
// the result means the tile was a mirror or was skipped after cancellation.
func computeTiles[F Fractal](f F, vp Viewport, tiles []ClassifiedTile, cancel *RenderCancel, gen uint64, o renderOptions) []tileOutcome {
	outcomes := make([]tileOutcome, len(tiles))
	if len(tiles) == 0 {
		return outcomes
	}
	pool := scratchPool(o.tileSize)
	var traced atomic.Int64

	parallel.Shared(o.workers).ForEach(len(tiles), func(i int) {
		ct := tiles[i]
		if ct.Kind == TileMirror || cancel.Generation() != gen {
			return
		}
		buf, uniform := renderTile(f, vp, ct.Tile, pool, cancel, gen, o.borderTracing)
		if buf == nil {
			return
		}
		if uniform {
			traced.Add(1)
		}
		outcomes[i] = tileOutcome{buf: buf, traced: uniform}
		cancel.incProgress()
	})

	Logger().Debug("tiles computed", "tiles", len(tiles), "border_traced", traced.Load())
	return outcomes
}

// renderTile fills a scratch buffer for t. The second result reports
// whether the tile was filled from a uniform border.
func renderTile[F Fractal](f F, vp Viewport, t Tile, pool *parallel.TilePool[IterationResult], cancel *RenderCancel, gen uint64, borderTracing bool) (*parallel.Buffer[IterationResult], bool) {
	buf := pool.Get(t.Width, t.Height)
	if buf == nil {
		return nil, false
	}

	if borderTracing {
		if fill, ok := checkBorderUniform(f, vp, t); ok {
			for i := range buf.Data {
				buf.Data[i] = fill
			}
			return buf, true
		}
	}

	if cancel.Generation() != gen {
		pool.Put(buf)
		return nil, false
	}

	for py := 0; py < t.Height; py++ {
		row := buf.Data[py*t.Width : (py+1)*t.Width]
		for px := range row {
			row[px] = f.Iterate(mapPixel(f, vp, t.X+px, t.Y+py))
		}
	}
	return buf, false
}

// checkBorderUniform iterates the border pixels of t and reports the
// first border result if every border pixel has the same class.
//
// A uniform border implies a uniform interior only when the level sets are
// simply connected. That holds for the Mandelbrot and connected Julia sets
// in practice but is not proven for every tile, so a thin feature wholly
// inside a tile can be missed.
func checkBorderUniform[F Fractal](f F, vp Viewport, t Tile) (IterationResult, bool) {
	if t.Width < 3 || t.Height < 3 {
		return IterationResult{}, false
	}

	first := f.Iterate(mapPixel(f, vp, t.X, t.Y))
	class := first.Class()
	same := func(px, py int) bool {
		return f.Iterate(mapPixel(f, vp, t.X+px, t.Y+py)).Class() == class
	}

	bottom := t.Height - 1
	for px := 0; px < t.Width; px++ {
		if px > 0 && !same(px, 0) {
			return IterationResult{}, false
		}
		if !same(px, bottom) {
			return IterationResult{}, false
		}
	}
	right := t.Width - 1
	for py := 1; py < bottom; py++ {
		if !same(0, py) || !same(right, py) {
			return IterationResult{}, false
		}
	}
	return first, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
