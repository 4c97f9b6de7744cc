package explorer

import (
	"runtime"

	"github.com/gogpu/fractal"
)

// Option configures an Explorer.
type Option func(*options)

type options struct {
	concurrency int
	cacheSize   int
	render      []fractal.RenderOption
}

func defaultOptions() options {
	return options{
		concurrency: runtime.GOMAXPROCS(0),
		cacheSize:   256,
	}
}

// WithConcurrency limits the number of cells rendered at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.concurrency = n
		}
	}
}

// WithCacheSize sets the number of cells kept in the cache.
// Values below 1 are ignored.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.cacheSize = n
		}
	}
}

// WithRenderOptions passes render options to every cell render.
func WithRenderOptions(opts ...fractal.RenderOption) Option {
	return func(o *options) {
		o.render = append(o.render, opts...)
	}
}
