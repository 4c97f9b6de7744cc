package palette

import (
	"bytes"
	"testing"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/color"
)

func renderFrame(t testing.TB, w, h, aaLevel int) *fractal.RenderResult {
	t.Helper()
	p, err := fractal.NewParams(64, 2)
	if err != nil {
		t.Fatal(err)
	}
	res := fractal.RenderRequest(fractal.Request{
		Viewport: fractal.DefaultMandelbrotViewport(w, h),
		Mode:     fractal.ModeMandelbrot,
		Params:   p,
		AALevel:  aaLevel,
	}, nil)
	if res.Cancelled {
		t.Fatal("render cancelled")
	}
	return res
}

func TestColorize_Size(t *testing.T) {
	buf := fractal.NewIterationBuffer(64, 48, 256)
	out := Colorize(buf, Default(), DefaultColorParams(true))
	if out.Width != 64 || out.Height != 48 || len(out.Pix) != 64*48*4 {
		t.Errorf("Colorize() = %dx%d (%d bytes), want 64x48", out.Width, out.Height, len(out.Pix))
	}
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			if out.At(x, y) != opaqueBlack {
				t.Fatalf("pixel (%d, %d) = %v, want black", x, y, out.At(x, y))
			}
		}
	}
}

func TestColorize_Pure(t *testing.T) {
	res := renderFrame(t, 96, 64, 0)
	before := res.Iterations.Clone()
	cp := DefaultColorParams(true)
	cp.CycleLength = 32

	a := Colorize(res.Iterations, Ocean, cp)
	b := Colorize(res.Iterations, Ocean, cp)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Colorize() not deterministic")
	}
	for i := range before.Data {
		if before.Data[i] != res.Iterations.Data[i] {
			t.Fatalf("Colorize() modified pixel %d", i)
		}
	}
}

func TestColorize_MatchesColor(t *testing.T) {
	res := renderFrame(t, 40, 30, 0)
	cp := DefaultColorParams(false)
	cp.CycleLength = 16
	out := Colorize(res.Iterations, Fire, cp)

	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if want := Fire.Color(res.Iterations.At(x, y), cp); out.At(x, y) != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, out.At(x, y), want)
			}
		}
	}
}

func TestColorizeAA_NilSamples(t *testing.T) {
	res := renderFrame(t, 48, 32, 0)
	cp := DefaultColorParams(true)
	if !bytes.Equal(ColorizeAA(res.Iterations, nil, Classic, cp).Pix, Colorize(res.Iterations, Classic, cp).Pix) {
		t.Error("ColorizeAA(nil) differs from Colorize")
	}
}

func TestColorizeAA_AveragesBoundary(t *testing.T) {
	res := renderFrame(t, 96, 64, 4)
	if res.AA == nil {
		t.Fatal("no AA samples")
	}
	cp := DefaultColorParams(false)
	cp.CycleLength = 20

	for _, linear := range []bool{false, true} {
		cp.LinearBlend = linear
		out := ColorizeAA(res.Iterations, res.AA, Neon, cp)
		plain := Colorize(res.Iterations, Neon, cp)

		boundary := 0
		for y := 0; y < 64; y++ {
			for x := 0; x < 96; x++ {
				samples := res.AA.Samples(x, y)
				if samples == nil {
					if out.At(x, y) != plain.At(x, y) {
						t.Fatalf("non-boundary pixel (%d, %d) changed", x, y)
					}
					continue
				}
				boundary++
				cs := make([]color.ColorU8, len(samples))
				for i, s := range samples {
					cs[i] = Neon.color(s, cp)
				}
				want := color.Average(cs)
				if linear {
					want = color.AverageLinear(cs)
				}
				if out.At(x, y) != want.Bytes() {
					t.Fatalf("linear=%v: pixel (%d, %d) = %v, want %v", linear, x, y, out.At(x, y), want.Bytes())
				}
			}
		}
		if boundary != res.AA.BoundaryCount() {
			t.Errorf("boundary pixels = %d, want %d", boundary, res.AA.BoundaryCount())
		}
	}
}

func TestRGBABuffer_ToImage(t *testing.T) {
	res := renderFrame(t, 32, 16, 0)
	out := Colorize(res.Iterations, Classic, DefaultColorParams(true))
	img := out.ToImage()

	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
		t.Fatalf("bounds = %v, want 32x16", img.Bounds())
	}
	c := img.RGBAAt(5, 7)
	if got := [4]byte{c.R, c.G, c.B, c.A}; got != out.At(5, 7) {
		t.Errorf("RGBAAt(5, 7) = %v, want %v", got, out.At(5, 7))
	}
}

func TestRGBABuffer_Scaled(t *testing.T) {
	src := NewRGBABuffer(10, 5)
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 200
	}
	img := src.Scaled(40, 20)
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Fatalf("bounds = %v, want 40x20", img.Bounds())
	}
	// A flat image stays flat under bilinear scaling.
	for _, p := range [][2]int{{0, 0}, {20, 10}, {39, 19}} {
		c := img.RGBAAt(p[0], p[1])
		if c.R != 200 || c.G != 0 || c.A != 255 {
			t.Errorf("pixel %v = %v, want {200 0 0 255}", p, c)
		}
	}

	empty := src.Scaled(0, 0)
	if !empty.Bounds().Empty() {
		t.Errorf("Scaled(0, 0) bounds = %v, want empty", empty.Bounds())
	}
}

func BenchmarkColorize(b *testing.B) {
	res := renderFrame(b, 640, 480, 0)
	cp := DefaultColorParams(true)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Colorize(res.Iterations, Classic, cp)
	}
}

func ExampleColorize() {
	m := fractal.NewMandelbrot(fractal.DefaultParams())
	vp := fractal.DefaultMandelbrotViewport(320, 240)
	res := fractal.Render(m, vp, nil, true)

	cp := DefaultColorParams(true).WithCycleMode(ByCycles{N: 4}, m.Params().MaxIterations)
	img := Colorize(res.Iterations, Classic, cp).ToImage()
	_ = img
}
