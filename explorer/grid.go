// Package explorer renders a grid of small Julia sets whose constants
// sample a rectangle of the Mandelbrot plane.
//
// Cell (row i, column j) shows the Julia set of
//
//	c = (CenterRe + (j−cj)·cellW, CenterIm − (i−ci)·cellH)
//
// where cj = (Cols−1)/2 and ci = (Rows−1)/2 in integer division and
// cellW = 2·ExtentHalf/Cols, cellH = 2·ExtentHalf/Rows. Each cell frames
// a 3×3 plane region around the origin.
package explorer

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/ddmath"
)

// ErrInvalidGrid is returned for a grid that cannot be rendered.
var ErrInvalidGrid = errors.New("explorer: invalid grid")

// ErrCancelled is returned by Render when the generation of its
// RenderCancel changed before every cell was emitted.
var ErrCancelled = errors.New("explorer: grid render cancelled")

// cellExtent is the plane width and height framed by one cell.
const cellExtent = 3.0

// Grid describes one explorer request.
type Grid struct {
	Cols, Rows         int
	CenterRe, CenterIm float64
	ExtentHalf         float64
	CellSize           int
	MaxIterations      uint32
	AALevel            int
}

// DefaultGrid returns a 6×4 grid over the whole Mandelbrot set.
func DefaultGrid() Grid {
	return Grid{
		Cols:          6,
		Rows:          4,
		CenterRe:      -0.75,
		CenterIm:      0,
		ExtentHalf:    1.5,
		CellSize:      96,
		MaxIterations: 256,
		AALevel:       4,
	}
}

// Validate reports the first invalid field, wrapped around ErrInvalidGrid.
func (g Grid) Validate() error {
	switch {
	case g.Cols < 1 || g.Rows < 1:
		return fmt.Errorf("%w: %dx%d cells", ErrInvalidGrid, g.Cols, g.Rows)
	case g.CellSize < 1:
		return fmt.Errorf("%w: cell size %d", ErrInvalidGrid, g.CellSize)
	case !(g.ExtentHalf > 0) || math.IsInf(g.ExtentHalf, 0):
		return fmt.Errorf("%w: extent %v", ErrInvalidGrid, g.ExtentHalf)
	case g.MaxIterations < 1:
		return fmt.Errorf("%w: %w", ErrInvalidGrid, fractal.ErrInvalidMaxIterations)
	case g.AALevel != 0 && g.AALevel != 2 && g.AALevel != 4:
		return fmt.Errorf("%w: %w", ErrInvalidGrid, fractal.ErrInvalidAALevel)
	}
	return nil
}

// CellCount returns Cols*Rows.
func (g Grid) CellCount() int {
	return g.Cols * g.Rows
}

// CellC returns the Julia constant of the cell at row i, column j.
func (g Grid) CellC(i, j int) ddmath.Complex {
	cj := (g.Cols - 1) / 2
	ci := (g.Rows - 1) / 2
	cellW := 2 * g.ExtentHalf / float64(g.Cols)
	cellH := 2 * g.ExtentHalf / float64(g.Rows)
	return ddmath.Complex{
		Re: g.CenterRe + float64(j-cj)*cellW,
		Im: g.CenterIm - float64(i-ci)*cellH,
	}
}

// Viewport returns the viewport shared by every cell.
func (g Grid) Viewport() fractal.Viewport {
	vp, err := fractal.NewViewport(ddmath.Complex{}, cellExtent/float64(g.CellSize), g.CellSize, g.CellSize)
	if err != nil {
		return fractal.DefaultJuliaViewport(g.CellSize, g.CellSize)
	}
	return vp
}
