package explorer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/ddmath"
	"github.com/gogpu/fractal/internal/cache"
)

// Cell is one rendered grid cell. Result may be shared with the cache and
// must be treated as read-only.
type Cell struct {
	Row, Col int
	C        ddmath.Complex
	Result   *fractal.RenderResult

	// Cached reports whether Result came from the cell cache.
	Cached bool
}

// cellKey identifies a cell render independent of its grid position.
type cellKey struct {
	c       ddmath.Complex
	size    int
	maxIter uint32
	aaLevel int
}

// Explorer renders Julia grids and caches finished cells.
// It is safe for concurrent use.
type Explorer struct {
	cells       *cache.Cache[cellKey, *fractal.RenderResult]
	concurrency int
	render      []fractal.RenderOption
}

// New creates an explorer.
func New(opts ...Option) *Explorer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Explorer{
		cells:       cache.New[cellKey, *fractal.RenderResult](o.cacheSize),
		concurrency: o.concurrency,
		render:      o.render,
	}
}

// Render renders every cell of g and calls emit once per finished cell.
// emit is never called concurrently. Cells are started in row-major
// order but may finish out of order.
//
// Render stops starting cells when ctx is done or the generation of
// cancel changes, and returns ctx.Err() or ErrCancelled respectively.
// Cancelled cells are neither emitted nor cached. Progress on cancel is
// reset by each cell and is not meaningful for the grid as a whole.
func (e *Explorer) Render(ctx context.Context, g Grid, cancel *fractal.RenderCancel, emit func(Cell)) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if cancel == nil {
		cancel = fractal.NewRenderCancel()
	}
	if emit == nil {
		emit = func(Cell) {}
	}
	gen := cancel.Generation()
	params, err := fractal.NewParams(g.MaxIterations, fractal.DefaultEscapeRadius)
	if err != nil {
		return fmt.Errorf("explorer: %w", err)
	}
	vp := g.Viewport()

	fractal.Logger().Debug("explorer grid started",
		"cols", g.Cols, "rows", g.Rows, "cells", g.CellCount(),
		"cell_size", g.CellSize, "aa", g.AALevel)

	var emitMu sync.Mutex
	deliver := func(cell Cell) {
		emitMu.Lock()
		defer emitMu.Unlock()
		emit(cell)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(e.concurrency)

schedule:
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			if gctx.Err() != nil || cancel.Generation() != gen {
				break schedule
			}
			group.Go(func() error {
				if cancel.Generation() != gen {
					return nil
				}
				cell, ok := e.renderCell(g, vp, params, i, j, cancel)
				if !ok {
					return nil
				}
				deliver(cell)
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if cancel.Generation() != gen {
		fractal.Logger().Debug("explorer grid cancelled")
		return ErrCancelled
	}
	return nil
}

// renderCell renders or fetches one cell. ok is false when the render was
// cancelled.
func (e *Explorer) renderCell(g Grid, vp fractal.Viewport, params fractal.Params, i, j int, cancel *fractal.RenderCancel) (Cell, bool) {
	c := g.CellC(i, j)
	key := cellKey{c: c, size: g.CellSize, maxIter: g.MaxIterations, aaLevel: g.AALevel}
	if res, ok := e.cells.Get(key); ok {
		return Cell{Row: i, Col: j, C: c, Result: res, Cached: true}, true
	}

	res := fractal.RenderRequest(fractal.Request{
		Viewport: vp,
		Mode:     fractal.ModeJulia,
		Params:   params,
		JuliaC:   c,
		AALevel:  g.AALevel,
	}, cancel, e.render...)
	if res.Cancelled {
		return Cell{}, false
	}
	e.cells.Set(key, res)
	return Cell{Row: i, Col: j, C: c, Result: res}, true
}

// CacheStats summarizes the cell cache.
type CacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// CacheStats returns the cell cache counters.
func (e *Explorer) CacheStats() CacheStats {
	s := e.cells.Stats()
	return CacheStats{
		Len:       s.Len,
		Capacity:  s.Capacity,
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
	}
}

// ClearCache drops every cached cell.
func (e *Explorer) ClearCache() {
	e.cells.Clear()
}
