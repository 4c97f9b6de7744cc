package parallel

import "sync"

// Buffer is a width×height scratch buffer of T in row-major order.
type Buffer[T any] struct {
	Width  int
	Height int
	Data   []T
}

// Reset zeroes the buffer contents.
func (b *Buffer[T]) Reset() {
	clear(b.Data)
}

// TilePool provides reuse of tile scratch buffers via sync.Pool.
//
// Renderers borrow one buffer per tile, fill it, copy it into the frame and
// give it back, so a frame of many tiles touches only a few allocations.
//
// Thread safety: TilePool is safe for concurrent use.
type TilePool[T any] struct {
	// tileSize is the edge length of a full tile.
	tileSize int

	// pools holds separate sync.Pool instances for each edge-tile size.
	// Key format: (width << 16) | height
	pools sync.Map

	// fullTilePool is the dedicated pool for full-size tiles.
	// This is the most common case, so we optimize for it.
	fullTilePool sync.Pool
}

// NewTilePool creates a new pool for tiles of tileSize×tileSize.
func NewTilePool[T any](tileSize int) *TilePool[T] {
	p := &TilePool[T]{tileSize: tileSize}

	p.fullTilePool.New = func() any {
		return &Buffer[T]{
			Width:  tileSize,
			Height: tileSize,
			Data:   make([]T, tileSize*tileSize),
		}
	}

	return p
}

// Get retrieves a zeroed buffer of the given dimensions from the pool or
// allocates one. Returns nil for non-positive dimensions.
func (p *TilePool[T]) Get(width, height int) *Buffer[T] {
	if width <= 0 || height <= 0 {
		return nil
	}

	// Fast path for full-size tiles
	if width == p.tileSize && height == p.tileSize {
		buf := p.fullTilePool.Get().(*Buffer[T])
		buf.Reset()
		return buf
	}

	// Slow path for edge tiles (different sizes)
	pool := p.getOrCreatePool(poolKey(width, height), width, height)

	buf := pool.Get().(*Buffer[T])
	buf.Reset()
	return buf
}

// Put returns a buffer to the pool for reuse.
// If buf is nil, this is a no-op.
func (p *TilePool[T]) Put(buf *Buffer[T]) {
	if buf == nil {
		return
	}

	if buf.Width == p.tileSize && buf.Height == p.tileSize {
		p.fullTilePool.Put(buf)
		return
	}

	if pool, ok := p.pools.Load(poolKey(buf.Width, buf.Height)); ok {
		pool.(*sync.Pool).Put(buf)
	}
	// If pool doesn't exist, let GC reclaim the buffer
}

// poolKey creates a unique key for a tile size.
// Width and height are clamped to 16-bit values to prevent overflow.
func poolKey(width, height int) uint32 {
	w := min(width, 0xFFFF)
	h := min(height, 0xFFFF)
	return uint32(w)<<16 | uint32(h) //nolint:gosec // values are clamped above
}

// getOrCreatePool gets or creates a sync.Pool for the given dimensions.
func (p *TilePool[T]) getOrCreatePool(key uint32, width, height int) *sync.Pool {
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			return &Buffer[T]{
				Width:  width,
				Height: height,
				Data:   make([]T, width*height),
			}
		},
	}

	// Try to store; if another goroutine beat us, use theirs
	actual, _ := p.pools.LoadOrStore(key, newPool)
	return actual.(*sync.Pool)
}
