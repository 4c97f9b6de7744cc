// Package palette turns iteration buffers into RGBA pixels.
//
// A Palette is a 256-entry ring of colors built from gradient stops.
// Colorization is deferred: the same IterationBuffer can be colorized with
// any palette or ColorParams without re-rendering, and colorization never
// modifies its inputs.
//
// # Coloring
//
// Interior points are opaque black. An escaped point maps to a position t,
// either its raw escape count or the smooth count
//
//	ν = n + 1 − log₂(ln |zₙ|)
//
// which is then reduced modulo the cycle length L and looked up in the
// ring with linear interpolation, so colors repeat every L iterations.
// StartFrom optionally fades low escape counts in from black or white.
//
// # Anti-aliasing
//
// ColorizeAA colors each supersample of a boundary pixel separately and
// averages the colors. Averaging happens on sRGB bytes unless
// ColorParams.LinearBlend is set.
package palette
