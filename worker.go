package fractal

import (
	"math"
	"sync"
	"time"

	"github.com/gogpu/fractal/ddmath"
)

// Mode selects the fractal family of a Request.
type Mode uint8

const (
	// ModeMandelbrot renders the Mandelbrot set.
	ModeMandelbrot Mode = iota
	// ModeJulia renders the Julia set of Request.JuliaC.
	ModeJulia
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeJulia {
		return "Julia"
	}
	return "Mandelbrot"
}

// Request describes one frame to render.
type Request struct {
	ID       uint64
	Viewport Viewport
	Mode     Mode
	Params   Params
	JuliaC   ddmath.Complex

	// AALevel is 0 (off), 2 or 4 samples per axis on boundary pixels.
	AALevel int

	// SkipPreview renders only the final phase, e.g. after a pan whose
	// unchanged area is already on screen.
	SkipPreview bool
}

// Validate checks the request fields that construction cannot enforce.
func (r Request) Validate() error {
	switch r.AALevel {
	case 0, 2, 4:
	default:
		return &InvalidParamsError{Field: "aa level", Value: float64(r.AALevel), Err: ErrInvalidAALevel}
	}
	if r.Params.MaxIterations < 1 {
		return &InvalidParamsError{Field: "max iterations", Value: 0, Err: ErrInvalidMaxIterations}
	}
	vp := r.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		return &InvalidViewportError{Width: vp.Width, Height: vp.Height, Scale: vp.Scale, Reason: "dimensions must be positive"}
	}
	if vp.Scale <= 0 || math.IsNaN(vp.Scale) || math.IsInf(vp.Scale, 0) {
		return &InvalidViewportError{Width: vp.Width, Height: vp.Height, Scale: vp.Scale, Reason: "scale must be positive and finite"}
	}
	return nil
}

// Phase tells a preview response from a final one.
type Phase uint8

const (
	// PhasePreview is a fast low-resolution frame without AA.
	PhasePreview Phase = iota
	// PhaseFinal is the full-resolution frame with the requested AA.
	PhaseFinal
)

// String returns "preview" or "final".
func (p Phase) String() string {
	if p == PhaseFinal {
		return "final"
	}
	return "preview"
}

// Response is one rendered phase of a Request.
type Response struct {
	ID    uint64
	Phase Phase

	// Viewport is the viewport actually rendered; for previews it is the
	// downscaled one.
	Viewport Viewport
	Result   *RenderResult
}

// RenderRequest renders req synchronously, followed by the AA pass when
// req.AALevel > 0 and the render was not cancelled. The AA time is
// included in Elapsed.
//
// Viewports finer than DDThresholdScale iterate in double-double around
// the center. Symmetry is used for Mandelbrot requests only.
func RenderRequest(req Request, cancel *RenderCancel, opts ...RenderOption) *RenderResult {
	if cancel == nil {
		cancel = NewRenderCancel()
	}
	return renderRequest(req, cancel, cancel.Generation(), resolveRenderOptions(opts))
}

// renderRequest is RenderRequest against a generation recorded by the
// caller, so a cancel issued before the render starts is not missed.
func renderRequest(req Request, cancel *RenderCancel, gen uint64, o renderOptions) *RenderResult {
	vp := req.Viewport
	dd := vp.PrecisionMode() == PrecisionDoubleDouble
	if vp.NearPrecisionLimit() {
		Logger().Warn("viewport past double-double precision", "id", req.ID, "scale", vp.Scale)
	}

	switch {
	case req.Mode == ModeJulia && dd:
		return renderWithAA(NewJuliaDD(req.JuliaC, req.Params, vp.CenterDD), vp, false, req.AALevel, cancel, gen, o)
	case req.Mode == ModeJulia:
		return renderWithAA(NewJulia(req.JuliaC, req.Params), vp, false, req.AALevel, cancel, gen, o)
	case dd:
		return renderWithAA(NewMandelbrotDD(req.Params, vp.CenterDD), vp, true, req.AALevel, cancel, gen, o)
	default:
		return renderWithAA(NewMandelbrot(req.Params), vp, true, req.AALevel, cancel, gen, o)
	}
}

func renderWithAA[F Fractal](f F, vp Viewport, useSymmetry bool, aaLevel int, cancel *RenderCancel, gen uint64, o renderOptions) *RenderResult {
	res := render(f, vp, cancel, gen, useSymmetry, o)
	if aaLevel > 0 && !res.Cancelled {
		start := time.Now()
		res.AA = computeAA(f, vp, res.Iterations, aaLevel, cancel, gen, o)
		res.Elapsed += time.Since(start)
		res.Cancelled = cancel.Generation() != gen
	}
	return res
}

// Worker renders requests on a dedicated goroutine.
//
// Requests go through a single-slot mailbox: submitting replaces any
// request not yet started and cancels the one in flight, so only the
// newest request is ever rendered to completion. Each request yields a
// Preview response followed by a Final response, unless a newer request
// arrives in between or the request skips the preview.
//
// Worker is safe for concurrent use.
type Worker struct {
	cancel     *RenderCancel
	opts       workerOptions
	renderOpts renderOptions

	mu      sync.Mutex
	pending *Request
	closed  bool

	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	responses chan Response
}

// NewWorker starts a worker goroutine. Call Close to stop it.
func NewWorker(opts ...WorkerOption) *Worker {
	o := defaultWorkerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &Worker{
		cancel:    NewRenderCancel(),
		opts:      o,
		wake:      make(chan struct{}, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		responses: make(chan Response, o.responseBuffer),
	}
	w.renderOpts = resolveRenderOptions(o.render)
	go w.run()
	return w
}

// Submit replaces the pending request with req and cancels the render in
// progress. It returns ErrWorkerClosed after Close and a validation error
// for malformed requests.
func (w *Worker) Submit(req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWorkerClosed
	}
	// The running pass is cancelled before the new request is visible.
	w.cancel.Cancel()
	w.pending = &req
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return nil
}

// Responses returns the channel of rendered phases. It is closed after
// Close once the worker goroutine exits.
func (w *Worker) Responses() <-chan Response {
	return w.responses
}

// Cancel abandons the render in progress without submitting a new one.
func (w *Worker) Cancel() {
	w.cancel.Cancel()
}

// Progress reports the finished and total units of the current pass.
func (w *Worker) Progress() (done, total int) {
	return w.cancel.Progress()
}

// Close cancels any work, stops the goroutine and waits for it to exit.
// Close is safe to call multiple times.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	w.pending = nil
	w.mu.Unlock()

	w.cancel.Cancel()
	close(w.quit)
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)
	defer close(w.responses)

	for {
		req, gen, ok := w.next()
		if !ok {
			return
		}
		w.process(req, gen)
	}
}

// next blocks until a request is pending or the worker is closed.
func (w *Worker) next() (Request, uint64, bool) {
	for {
		if req, gen, ok := w.take(); ok {
			return req, gen, true
		}
		select {
		case <-w.wake:
		case <-w.quit:
			return Request{}, 0, false
		}
	}
}

// take removes the pending request together with the cancel generation
// it was current for. Submit cancels under the same lock, so any later
// Submit or Cancel moves the generation past the one returned.
func (w *Worker) take() (Request, uint64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil || w.closed {
		return Request{}, 0, false
	}
	req := *w.pending
	w.pending = nil
	return req, w.cancel.Generation(), true
}

// process renders req against gen, the generation recorded when req was
// taken. Nothing is sent once gen is stale.
func (w *Worker) process(req Request, gen uint64) {
	for {
		if !req.SkipPreview && w.opts.previewDownscale > 1 {
			preview := req
			preview.Viewport = req.Viewport.Downscaled(w.opts.previewDownscale)
			preview.AALevel = 0

			Logger().Debug("worker preview", "id", req.ID,
				"width", preview.Viewport.Width, "height", preview.Viewport.Height)
			res := renderRequest(preview, w.cancel, gen, w.renderOpts)
			if res.Cancelled {
				return
			}
			if !w.send(Response{ID: req.ID, Phase: PhasePreview, Viewport: preview.Viewport, Result: res}) {
				return
			}
			if newer, newerGen, ok := w.take(); ok {
				Logger().Debug("worker superseded after preview", "id", req.ID, "next", newer.ID)
				req, gen = newer, newerGen
				continue
			}
		}

		Logger().Debug("worker final", "id", req.ID, "aa", req.AALevel)
		res := renderRequest(req, w.cancel, gen, w.renderOpts)
		if res.Cancelled {
			return
		}
		w.send(Response{ID: req.ID, Phase: PhaseFinal, Viewport: req.Viewport, Result: res})
		return
	}
}

// send delivers r unless the worker is closing.
func (w *Worker) send(r Response) bool {
	select {
	case w.responses <- r:
		return true
	case <-w.quit:
		return false
	}
}
