package fractal

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/fractal/ddmath"
)

// captureLogs installs a JSON logger at level for the duration of the test
// and returns the buffer it writes to.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

// records decodes one JSON object per line.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("log line %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

func findRecord(recs []map[string]any, msg string) map[string]any {
	for _, r := range recs {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	ctx := context.Background()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(ctx, level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(ctx, slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("tiles", 4)}).(nopHandler); !ok {
		t.Error("WithAttrs() did not return nopHandler")
	}
	if _, ok := h.WithGroup("render").(nopHandler); !ok {
		t.Error("WithGroup() did not return nopHandler")
	}
}

func TestLogger_DefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger_NilRestoresSilent(t *testing.T) {
	captureLogs(t, slog.LevelDebug)
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("logger still enabled after SetLogger(nil)")
	}
}

func TestRender_LogsCompletion(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)

	vp := DefaultMandelbrotViewport(128, 64)
	res := Render(NewMandelbrot(mustParams(t, 64, 2)), vp, nil, true)

	recs := records(t, buf)
	started := findRecord(recs, "render started")
	if started == nil {
		t.Fatal("no \"render started\" record")
	}
	if got := started["workers"]; got != float64(runtime.GOMAXPROCS(0)) {
		t.Errorf("workers = %v, want %d", got, runtime.GOMAXPROCS(0))
	}
	if got := started["symmetric"]; got != true {
		t.Errorf("symmetric = %v, want true", got)
	}
	done := findRecord(recs, "render finished")
	if done == nil {
		t.Fatal("no \"render finished\" record")
	}
	if done["level"] != "INFO" {
		t.Errorf("render finished level = %v, want INFO", done["level"])
	}
	if got := done["rendered"]; got != float64(res.TilesRendered) {
		t.Errorf("rendered = %v, want %d", got, res.TilesRendered)
	}
	if got := done["cancelled"]; got != false {
		t.Errorf("cancelled = %v, want false", got)
	}
}

func TestRenderShifted_LogsDirtyTiles(t *testing.T) {
	m := NewMandelbrot(mustParams(t, 32, 2))
	const scale = 1.0 / 64
	vp := mustViewport(t, -0.5, 0, scale, 192, 128)
	prev := Render(m, vp, nil, false)

	buf := captureLogs(t, slog.LevelDebug)
	vp.OffsetCenter(-10*scale, 0)
	res := RenderShifted(m, vp, prev.Iterations, 10, 0, nil)

	rec := findRecord(records(t, buf), "shifted render started")
	if rec == nil {
		t.Fatal("no \"shifted render started\" record")
	}
	// A 10 pixel pan right exposes the left tile column: 2 of 3x2 tiles.
	if got := rec["dirty_tiles"]; got != float64(2) {
		t.Errorf("dirty_tiles = %v, want 2", got)
	}
	if res.TilesRendered != 2 {
		t.Errorf("TilesRendered = %d, want 2", res.TilesRendered)
	}
}

func TestRender_InfoLevelHidesDebug(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	Render(NewMandelbrot(mustParams(t, 32, 2)), DefaultMandelbrotViewport(64, 64), nil, false)

	recs := records(t, buf)
	if findRecord(recs, "render started") != nil {
		t.Error("debug record written at info level")
	}
	if findRecord(recs, "render finished") == nil {
		t.Error("no \"render finished\" record")
	}
}

func TestRenderRequest_WarnsPastPrecisionLimit(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)

	vp, err := NewViewport(ddmath.Complex{Re: -0.75, Im: 0.1}, 1e-30, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	RenderRequest(Request{ID: 7, Viewport: vp, Params: mustParams(t, 16, 2)}, nil)

	rec := findRecord(records(t, buf), "viewport past double-double precision")
	if rec == nil {
		t.Fatal("no precision warning")
	}
	if rec["id"] != float64(7) {
		t.Errorf("id = %v, want 7", rec["id"])
	}
}

func TestLogger_ConcurrentSetAndRender(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	p := mustParams(t, 16, 2)
	vp := DefaultMandelbrotViewport(64, 64)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			} else {
				SetLogger(nil)
			}
		}()
		go func() {
			defer wg.Done()
			Render(NewMandelbrot(p), vp, nil, false)
		}()
	}
	wg.Wait()
}

func BenchmarkLogger_Disabled(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Debug("tiles computed", "tiles", 64, "border_traced", 12)
	}
}
