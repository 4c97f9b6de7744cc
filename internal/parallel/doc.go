// Package parallel provides the tile scheduling infrastructure of the
// fractal renderer.
//
// A frame is divided into square tiles (64×64 by default) that are iterated
// independently. Key pieces:
//
//   - WorkerPool: per-worker queues with work stealing, since tile cost
//     varies by orders of magnitude across a frame
//   - TilePool: pooled per-tile scratch buffers via sync.Pool
//   - DirtyRegion: lock-free bitmap of tiles that must be recomputed
//
// Thread safety: all three types are safe for concurrent use.
package parallel
