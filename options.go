package fractal

// RenderOption configures Render, RenderShifted and ComputeAA.
// Use functional options to customize scheduling.
//
// Example:
//
//	// Default: GOMAXPROCS workers, border tracing on
//	res := fractal.Render(m, vp, cancel, true)
//
//	// Two workers, every pixel iterated
//	res := fractal.Render(m, vp, cancel, true,
//		fractal.WithWorkers(2), fractal.WithBorderTracing(false))
type RenderOption func(*renderOptions)

// renderOptions holds optional configuration for a render pass.
type renderOptions struct {
	workers       int
	borderTracing bool
	tileSize      int
}

// defaultRenderOptions returns the default render options.
func defaultRenderOptions() renderOptions {
	return renderOptions{
		workers:       0, // GOMAXPROCS
		borderTracing: true,
		tileSize:      TileSize,
	}
}

func resolveRenderOptions(opts []RenderOption) renderOptions {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers selects a shared worker pool with n workers.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) RenderOption {
	return func(o *renderOptions) {
		o.workers = n
	}
}

// WithBorderTracing enables or disables the uniform-border shortcut.
// With tracing off every pixel of every tile is iterated.
func WithBorderTracing(enabled bool) RenderOption {
	return func(o *renderOptions) {
		o.borderTracing = enabled
	}
}

// WithTileSize overrides the tile edge length. Values below 8 are ignored.
func WithTileSize(n int) RenderOption {
	return func(o *renderOptions) {
		if n >= 8 {
			o.tileSize = n
		}
	}
}

// WorkerOption configures a Worker during creation.
type WorkerOption func(*workerOptions)

type workerOptions struct {
	previewDownscale int
	responseBuffer   int
	render           []RenderOption
}

// defaultWorkerOptions returns the default worker options.
func defaultWorkerOptions() workerOptions {
	return workerOptions{
		previewDownscale: PreviewDownscale,
		responseBuffer:   4,
	}
}

// WithPreviewDownscale sets the preview reduction factor.
// A factor of 1 or less disables the preview phase.
func WithPreviewDownscale(factor int) WorkerOption {
	return func(o *workerOptions) {
		o.previewDownscale = factor
	}
}

// WithResponseBuffer sets the capacity of the Responses channel.
func WithResponseBuffer(n int) WorkerOption {
	return func(o *workerOptions) {
		if n >= 0 {
			o.responseBuffer = n
		}
	}
}

// WithRenderOptions passes render options to every pass the worker runs.
func WithRenderOptions(opts ...RenderOption) WorkerOption {
	return func(o *workerOptions) {
		o.render = append(o.render, opts...)
	}
}
