package fractal

import "testing"

func TestDetectBoundaries(t *testing.T) {
	buf := NewIterationBuffer(5, 5, 10)
	for i := range buf.Data {
		buf.Data[i] = EscapedAt(1, 5)
	}
	buf.Data[2*5+2] = Interior

	mask := DetectBoundaries(buf)
	count := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := x >= 1 && x <= 3 && y >= 1 && y <= 3
			if mask[y*5+x] != want {
				t.Errorf("mask(%d, %d) = %v, want %v", x, y, mask[y*5+x], want)
			}
			if mask[y*5+x] {
				count++
			}
		}
	}
	if count != 9 {
		t.Errorf("boundary count = %d, want 9", count)
	}
}

func TestDetectBoundaries_SameClassDifferentNorm(t *testing.T) {
	buf := NewIterationBuffer(3, 1, 10)
	buf.Data[0] = EscapedAt(4, 5)
	buf.Data[1] = EscapedAt(4, 50)
	buf.Data[2] = EscapedAt(4, 500)
	for i, edge := range DetectBoundaries(buf) {
		if edge {
			t.Errorf("pixel %d flagged, classes are equal", i)
		}
	}
}

func TestComputeAA_UniformFrameIsNil(t *testing.T) {
	m := NewMandelbrot(DefaultParams())
	vp := mustViewport(t, 5, 5, 0.0001, 64, 64)
	res := Render(m, vp, nil, false)

	if aa := ComputeAA(m, vp, res.Iterations, 2, nil); aa != nil {
		t.Errorf("ComputeAA() = %d boundaries, want nil", aa.BoundaryCount())
	}
}

func TestComputeAA_BoundaryOnly(t *testing.T) {
	m := NewMandelbrot(mustParams(t, 64, 2))
	vp := DefaultMandelbrotViewport(128, 96)
	res := Render(m, vp, nil, true)

	for _, level := range []int{2, 4} {
		aa := ComputeAA(m, vp, res.Iterations, level, nil)
		if aa == nil {
			t.Fatalf("level %d: ComputeAA() = nil for a frame with edges", level)
		}
		if aa.Level() != level {
			t.Errorf("Level() = %d, want %d", aa.Level(), level)
		}

		mask := DetectBoundaries(res.Iterations)
		boundary := 0
		for i, edge := range mask {
			x, y := i%vp.Width, i/vp.Width
			samples := aa.Samples(x, y)
			if edge {
				boundary++
				if len(samples) != level*level {
					t.Fatalf("level %d: pixel (%d, %d) has %d samples, want %d", level, x, y, len(samples), level*level)
				}
			} else if samples != nil {
				t.Fatalf("level %d: non-boundary pixel (%d, %d) has samples", level, x, y)
			}
		}
		if aa.BoundaryCount() != boundary {
			t.Errorf("BoundaryCount() = %d, want %d", aa.BoundaryCount(), boundary)
		}
	}
}

func TestComputeAA_SamplePositions(t *testing.T) {
	m := NewMandelbrot(mustParams(t, 64, 2))
	vp := DefaultMandelbrotViewport(64, 48)
	res := Render(m, vp, nil, false)
	aa := ComputeAA(m, vp, res.Iterations, 2, nil)
	if aa == nil {
		t.Fatal("ComputeAA() = nil")
	}

	mask := DetectBoundaries(res.Iterations)
	for i, edge := range mask {
		if !edge {
			continue
		}
		x, y := i%vp.Width, i/vp.Width
		got := aa.Samples(x, y)
		want := []IterationResult{
			m.Iterate(vp.SubpixelToComplex(float64(x)+0.25, float64(y)+0.25)),
			m.Iterate(vp.SubpixelToComplex(float64(x)+0.75, float64(y)+0.25)),
			m.Iterate(vp.SubpixelToComplex(float64(x)+0.25, float64(y)+0.75)),
			m.Iterate(vp.SubpixelToComplex(float64(x)+0.75, float64(y)+0.75)),
		}
		for k := range want {
			if got[k] != want[k] {
				t.Fatalf("pixel (%d, %d) sample %d = %v, want %v", x, y, k, got[k], want[k])
			}
		}
		return
	}
	t.Fatal("no boundary pixel found")
}

func TestComputeAA_DeltaFractal(t *testing.T) {
	p := mustParams(t, 64, 2)
	vp := DefaultMandelbrotViewport(64, 48)
	dd := NewMandelbrotDD(p, vp.CenterDD)
	res := Render(dd, vp, nil, false)

	aa := ComputeAA(dd, vp, res.Iterations, 2, nil)
	if aa == nil {
		t.Fatal("ComputeAA() = nil")
	}
	for i, edge := range DetectBoundaries(res.Iterations) {
		if !edge {
			continue
		}
		x, y := i%vp.Width, i/vp.Width
		want := dd.Iterate(vp.SubpixelToDelta(float64(x)+0.25, float64(y)+0.25))
		if got := aa.Samples(x, y)[0]; got != want {
			t.Fatalf("pixel (%d, %d) sample 0 = %v, want %v", x, y, got, want)
		}
		return
	}
}

func TestComputeAA_Cancelled(t *testing.T) {
	m := NewMandelbrot(mustParams(t, 64, 2))
	vp := DefaultMandelbrotViewport(128, 96)
	res := Render(m, vp, nil, false)

	cancel := NewRenderCancel()
	f := cancelOnFirst{Mandelbrot: m, cancel: cancel}
	if aa := ComputeAA(&f, vp, res.Iterations, 2, cancel, WithWorkers(1)); aa != nil {
		t.Error("ComputeAA() after cancellation != nil")
	}
}

func TestComputeAA_Progress(t *testing.T) {
	m := NewMandelbrot(mustParams(t, 64, 2))
	vp := DefaultMandelbrotViewport(128, 96)
	res := Render(m, vp, nil, false)

	cancel := NewRenderCancel()
	aa := ComputeAA(m, vp, res.Iterations, 2, cancel)
	done, total := cancel.Progress()
	if total != aa.BoundaryCount() || done != total {
		t.Errorf("Progress() = (%d, %d), want (%d, %d)", done, total, aa.BoundaryCount(), aa.BoundaryCount())
	}
}

func TestComputeAA_InvalidLevel(t *testing.T) {
	m := NewMandelbrot(DefaultParams())
	vp := DefaultMandelbrotViewport(32, 32)
	res := Render(m, vp, nil, false)
	if aa := ComputeAA(m, vp, res.Iterations, 0, nil); aa != nil {
		t.Error("ComputeAA(level 0) != nil")
	}
}

func TestAASamples_Shift(t *testing.T) {
	m := NewMandelbrot(mustParams(t, 64, 2))
	vp := DefaultMandelbrotViewport(96, 64)
	res := Render(m, vp, nil, false)
	aa := ComputeAA(m, vp, res.Iterations, 2, nil)
	if aa == nil {
		t.Fatal("ComputeAA() = nil")
	}

	type key struct{ x, y int }
	before := map[key][]IterationResult{}
	for y := 0; y < vp.Height; y++ {
		for x := 0; x < vp.Width; x++ {
			if s := aa.Samples(x, y); s != nil {
				before[key{x, y}] = append([]IterationResult(nil), s...)
			}
		}
	}

	const dx, dy = 7, -3
	aa.Shift(dx, dy)

	kept := 0
	for y := 0; y < vp.Height; y++ {
		for x := 0; x < vp.Width; x++ {
			want, had := before[key{x - dx, y - dy}]
			got := aa.Samples(x, y)
			if !had {
				if got != nil {
					t.Fatalf("(%d, %d) has samples after shift, want none", x, y)
				}
				continue
			}
			kept++
			for k := range want {
				if got[k] != want[k] {
					t.Fatalf("(%d, %d) sample %d = %v, want %v", x, y, k, got[k], want[k])
				}
			}
		}
	}
	if aa.BoundaryCount() != kept {
		t.Errorf("BoundaryCount() = %d, want %d", aa.BoundaryCount(), kept)
	}
}

func TestAASamples_OutOfBounds(t *testing.T) {
	m := NewMandelbrot(mustParams(t, 64, 2))
	vp := DefaultMandelbrotViewport(64, 48)
	res := Render(m, vp, nil, false)
	aa := ComputeAA(m, vp, res.Iterations, 2, nil)
	if aa == nil {
		t.Fatal("ComputeAA() = nil")
	}
	if aa.Samples(-1, 0) != nil || aa.Samples(0, 48) != nil {
		t.Error("Samples() outside the frame != nil")
	}
}
