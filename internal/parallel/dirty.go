package parallel

import (
	"math/bits"
	"sync/atomic"
)

// DirtyRegion is a bitmap of tiles that must be recomputed, one bit per
// tile in row-major order. Bits are set with atomic OR, so marking is
// lock-free and safe from several goroutines.
type DirtyRegion struct {
	words    []atomic.Uint64
	tilesX   int
	tilesY   int
	tileSize int
}

// NewDirtyRegion creates a clean region for a tilesX×tilesY grid of
// tileSize pixel tiles. It returns nil if any dimension is not positive.
func NewDirtyRegion(tilesX, tilesY, tileSize int) *DirtyRegion {
	if tilesX <= 0 || tilesY <= 0 || tileSize <= 0 {
		return nil
	}
	return &DirtyRegion{
		words:    make([]atomic.Uint64, (tilesX*tilesY+63)/64),
		tilesX:   tilesX,
		tilesY:   tilesY,
		tileSize: tileSize,
	}
}

// NewDirtyRegionForFrame sizes a region to cover a width×height frame.
func NewDirtyRegionForFrame(width, height, tileSize int) *DirtyRegion {
	if tileSize <= 0 {
		return nil
	}
	return NewDirtyRegion((width+tileSize-1)/tileSize, (height+tileSize-1)/tileSize, tileSize)
}

// Mark flags tile (tx, ty). Out-of-range tiles are ignored.
func (d *DirtyRegion) Mark(tx, ty int) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return
	}
	idx := ty*d.tilesX + tx
	d.words[idx/64].Or(1 << (idx & 63))
}

// MarkRect flags every tile that intersects the pixel rectangle
// (x, y, w, h). The rectangle is clipped to the grid.
func (d *DirtyRegion) MarkRect(x, y, w, h int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if w <= 0 || h <= 0 {
		return
	}

	tx0, ty0 := x/d.tileSize, y/d.tileSize
	tx1 := min((x+w-1)/d.tileSize, d.tilesX-1)
	ty1 := min((y+h-1)/d.tileSize, d.tilesY-1)
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			d.Mark(tx, ty)
		}
	}
}

// MarkExposed flags the tiles uncovered when a width×height frame moves
// by (dx, dy) pixels: the dx columns on the side the content moved away
// from, and likewise the dy rows.
func (d *DirtyRegion) MarkExposed(width, height, dx, dy int) {
	switch {
	case dx > 0:
		d.MarkRect(0, 0, dx, height)
	case dx < 0:
		d.MarkRect(width+dx, 0, -dx, height)
	}
	switch {
	case dy > 0:
		d.MarkRect(0, 0, width, dy)
	case dy < 0:
		d.MarkRect(0, height+dy, width, -dy)
	}
}

// Count returns the number of flagged tiles.
func (d *DirtyRegion) Count() int {
	n := 0
	for i := range d.words {
		n += bits.OnesCount64(d.words[i].Load())
	}
	return n
}

// ForEachDirty calls fn for each flagged tile in row-major order without
// clearing it.
func (d *DirtyRegion) ForEachDirty(fn func(tx, ty int)) {
	if fn == nil {
		return
	}
	for w := range d.words {
		word := d.words[w].Load()
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			idx := w*64 + bit
			fn(idx%d.tilesX, idx/d.tilesX)
			word &^= 1 << bit
		}
	}
}

// TilesX returns the number of tile columns.
func (d *DirtyRegion) TilesX() int { return d.tilesX }
