package fractal

// IterationBuffer holds one IterationResult per pixel in row-major order.
type IterationBuffer struct {
	Width         int
	Height        int
	MaxIterations uint32
	Data          []IterationResult
}

// NewIterationBuffer returns a buffer with every pixel Interior.
func NewIterationBuffer(width, height int, maxIterations uint32) *IterationBuffer {
	width, height = max(width, 0), max(height, 0)
	return &IterationBuffer{
		Width:         width,
		Height:        height,
		MaxIterations: maxIterations,
		Data:          make([]IterationResult, width*height),
	}
}

// At returns the result at (x, y).
func (b *IterationBuffer) At(x, y int) IterationResult {
	return b.Data[y*b.Width+x]
}

// Clone returns a deep copy of b.
func (b *IterationBuffer) Clone() *IterationBuffer {
	c := *b
	c.Data = make([]IterationResult, len(b.Data))
	copy(c.Data, b.Data)
	return &c
}

// BlitTile copies tile data (t.Width×t.Height, row-major) into the buffer
// at the tile's position, clipped to the buffer.
func (b *IterationBuffer) BlitTile(t Tile, data []IterationResult) {
	w := min(t.Width, b.Width-t.X)
	if w <= 0 {
		return
	}
	for py := 0; py < t.Height; py++ {
		y := t.Y + py
		if y >= b.Height {
			break
		}
		dst := y*b.Width + t.X
		src := py * t.Width
		copy(b.Data[dst:dst+w], data[src:src+w])
	}
}

// BlitTileMirrored is BlitTile with the source rows in reverse order.
// It reconstructs a mirror tile from its primary's data.
func (b *IterationBuffer) BlitTileMirrored(t Tile, data []IterationResult) {
	w := min(t.Width, b.Width-t.X)
	if w <= 0 {
		return
	}
	for py := 0; py < t.Height; py++ {
		y := t.Y + py
		if y >= b.Height {
			break
		}
		dst := y*b.Width + t.X
		src := (t.Height - 1 - py) * t.Width
		copy(b.Data[dst:dst+w], data[src:src+w])
	}
}

// Shift translates the contents by (dx, dy) pixels: the result at (x, y)
// moves to (x+dx, y+dy). Data shifted past an edge is dropped and the
// exposed band is reset to Interior.
func (b *IterationBuffer) Shift(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	shifted := make([]IterationResult, len(b.Data))

	xStart := max(dx, 0)
	xEnd := min(b.Width+dx, b.Width)
	if xStart < xEnd {
		for y := 0; y < b.Height; y++ {
			srcY := y - dy
			if srcY < 0 || srcY >= b.Height {
				continue
			}
			dst := y * b.Width
			src := srcY*b.Width - dx
			copy(shifted[dst+xStart:dst+xEnd], b.Data[src+xStart:src+xEnd])
		}
	}
	b.Data = shifted
}
