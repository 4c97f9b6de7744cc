// Package fractal computes Mandelbrot and Julia set images for an
// interactive explorer.
//
// # Overview
//
// The package classifies every pixel of a [Viewport] as escaped (with its
// escape count and final |z|²) or interior, and stores the result in an
// [IterationBuffer]. Colors are applied later by the palette package, so a
// frame can be recolored without iterating again.
//
// # Quick Start
//
//	vp := fractal.DefaultMandelbrotViewport(800, 600)
//	m := fractal.NewMandelbrot(fractal.DefaultParams())
//	cancel := fractal.NewRenderCancel()
//
//	res := fractal.Render(m, vp, cancel, true)
//	rgba := palette.Colorize(res.Iterations, palette.Classic, palette.DefaultColorParams(true))
//	img := rgba.ToImage()
//
// # Precision
//
// Below a scale of [DDThresholdScale] plane units per pixel float64 can no
// longer separate neighbouring pixels. The double-double variants
// ([MandelbrotDD], [JuliaDD]) take a pixel offset from the viewport center
// and rebuild the point in ~31 significant digits before iterating.
//
// # Rendering
//
// [Render] splits the frame into [TileSize] tiles and iterates them on a
// shared work-stealing pool. Two shortcuts apply per tile:
//   - border tracing: if every border pixel of a tile has the same class the
//     tile is filled without iterating its interior. This assumes level sets
//     are simply connected at tile granularity, which is not proven; an
//     island fully enclosed by a uniform border would be missed.
//   - real-axis symmetry: for Mandelbrot views centered exactly on the real
//     axis, lower tiles are mirrored from the upper ones.
//
// [ComputeAA] then supersamples only pixels that sit on a class boundary.
//
// # Progressive Rendering
//
// A [Worker] owns a single-slot request mailbox. Each accepted request is
// rendered at low resolution first ([PhasePreview]) and then at full
// resolution with anti-aliasing ([PhaseFinal]), unless a newer request has
// arrived in between.
//
// # Cancellation
//
// [RenderCancel] holds a generation counter. Cancel advances it; renders
// compare it against the value recorded at start before every tile and AA
// pixel and stop early on mismatch.
package fractal

// Rendering constants.
const (
	// TileSize is the default tile edge length in pixels.
	TileSize = 64

	// PreviewDownscale is the default resolution divisor of the preview pass.
	PreviewDownscale = 4

	// DDThresholdScale is the scale below which double-double fractals are used.
	DDThresholdScale = 1e-13

	// DDWarnScale is the scale below which double-double precision itself
	// starts to show artifacts.
	DDWarnScale = 1e-28
)
