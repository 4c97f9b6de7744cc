package fractal

import "sync/atomic"

// RenderCancel is a shared cancellation and progress handle.
//
// A render records the generation when it starts and stops early once the
// generation has moved on. Cancel never interrupts a tile in progress; the
// latency to observe it is at most one tile or one AA pixel.
//
// RenderCancel is safe for concurrent use.
type RenderCancel struct {
	generation atomic.Uint64
	done       atomic.Int64
	total      atomic.Int64
}

// NewRenderCancel returns a handle at generation 0.
func NewRenderCancel() *RenderCancel {
	return &RenderCancel{}
}

// Cancel advances the generation, invalidating every render that started
// before the call.
func (c *RenderCancel) Cancel() {
	c.generation.Add(1)
}

// Generation returns the current generation.
func (c *RenderCancel) Generation() uint64 {
	return c.generation.Load()
}

// ResetProgress sets the unit total and clears the done count.
func (c *RenderCancel) ResetProgress(total int) {
	c.total.Store(int64(total))
	c.done.Store(0)
}

// incProgress counts one finished tile or AA pixel.
func (c *RenderCancel) incProgress() {
	c.done.Add(1)
}

// Progress returns the finished and total units of the current pass.
func (c *RenderCancel) Progress() (done, total int) {
	return int(c.done.Load()), int(c.total.Load())
}
