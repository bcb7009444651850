package session

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polysketch"
	"github.com/gogpu/polysketch/internal/gpu"
	"github.com/gogpu/wgpu/hal/noop"
)

// recordingOverlay keeps every readout.
type recordingOverlay struct {
	texts []string
}

func (o *recordingOverlay) SetText(text string) { o.texts = append(o.texts, text) }

// newNoopDevice opens a noop HAL device for the duration of the test.
func newNoopDevice(t *testing.T) gpu.Device {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return gpu.Device{Device: openDev.Device, Queue: openDev.Queue}
}

func newTestSession(t *testing.T, cfg polysketch.Config, overlay Overlay) (*Session, *gpu.OffscreenTarget) {
	t.Helper()
	dev := newNoopDevice(t)
	s, err := New(dev, cfg, overlay)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(s.Close)

	target, err := gpu.NewOffscreenTarget(dev.Device, uint32(cfg.Width), uint32(cfg.Height), gpu.DefaultTargetFormat) //nolint:gosec // validated config
	if err != nil {
		t.Fatalf("NewOffscreenTarget failed: %v", err)
	}
	t.Cleanup(target.Destroy)
	return s, target
}

func mustHandle(t *testing.T, s *Session, evs ...Event) {
	t.Helper()
	for _, ev := range evs {
		if err := s.Handle(ev); err != nil {
			t.Fatalf("Handle(%#v) failed: %v", ev, err)
		}
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := polysketch.DefaultConfig().WithMarkerSize(0)
	_, err := New(newNoopDevice(t), cfg, nil)
	if !errors.Is(err, polysketch.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewNilDevice(t *testing.T) {
	_, err := New(gpu.Device{}, polysketch.DefaultConfig(), nil)
	if !errors.Is(err, gpu.ErrNilDevice) {
		t.Errorf("expected ErrNilDevice, got %v", err)
	}
}

func TestSessionScenario(t *testing.T) {
	s, target := newTestSession(t, polysketch.DefaultConfig(), nil)

	mustHandle(t, s,
		Resize{Width: 800, Height: 600},
		PointerPress{X: 400, Y: 300},
		PointerPress{X: 800, Y: 0},
		PointerPress{Button: 1, X: 0, Y: 600},
	)

	want := []polysketch.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: -1, Y: -1}}
	got := s.Points()
	if len(got) != len(want) {
		t.Fatalf("placed %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d = %v, want %v", i, got[i], want[i])
		}
	}

	if q := s.QuadDraw(); q.InstanceCount != 3 || q.IndexCount != 18 {
		t.Errorf("QuadDraw() = %+v, want 3 instances, 18 indices", q)
	}
	if e := s.EdgeDraw(); e.IndexCount != 4 {
		t.Errorf("EdgeDraw() = %+v, want 4 indices", e)
	}

	if err := s.Render(target.View()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if s.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", s.Frames())
	}
}

func TestSessionGrowthInterleaved(t *testing.T) {
	s, target := newTestSession(t, polysketch.DefaultConfig(), nil)
	mustHandle(t, s, Resize{Width: 640, Height: 480})

	for k := 1; k <= 10; k++ {
		mustHandle(t, s,
			PointerPress{X: float64(k * 20), Y: float64(k * 10)},
			PointerMove{X: 10, Y: 10},
			Resize{Width: 640 + k, Height: 480},
		)
		if err := s.Render(target.View()); err != nil {
			t.Fatal(err)
		}
		n := uint32(k) //nolint:gosec // test bound
		if q := s.QuadDraw(); q.InstanceCount != n || q.IndexCount != 6*n {
			t.Fatalf("k=%d: QuadDraw() = %+v", k, q)
		}
		if e := s.EdgeDraw(); e.IndexCount != n+1 {
			t.Fatalf("k=%d: EdgeDraw() = %+v", k, e)
		}
	}
}

func TestSessionPressUsesCurrentViewport(t *testing.T) {
	s, _ := newTestSession(t, polysketch.DefaultConfig(), nil)
	mustHandle(t, s,
		Resize{Width: 800, Height: 600},
		Resize{Width: 200, Height: 100},
		PointerPress{X: 100, Y: 50},
		PointerPress{X: 200, Y: 0},
	)
	got := s.Points()
	if got[0] != (polysketch.Point{}) || got[1] != (polysketch.Point{X: 1, Y: 1}) {
		t.Errorf("Points() = %v", got)
	}
}

func TestSessionZeroResizeIgnored(t *testing.T) {
	s, _ := newTestSession(t, polysketch.DefaultConfig(), nil)
	mustHandle(t, s, Resize{Width: 800, Height: 600}, Resize{Width: 0, Height: 600}, Resize{Width: 800, Height: -1})

	if vp := s.Viewport(); vp.Width != 800 || vp.Height != 600 {
		t.Errorf("Viewport() = %+v, want 800x600", vp)
	}
	mustHandle(t, s, PointerPress{X: 400, Y: 300})
	if p := s.Points()[0]; p != (polysketch.Point{}) {
		t.Errorf("center press mapped to %v", p)
	}
}

func TestSessionReadout(t *testing.T) {
	overlay := &recordingOverlay{}
	s, _ := newTestSession(t, polysketch.DefaultConfig(), overlay)
	mustHandle(t, s,
		Resize{Width: 800, Height: 600},
		PointerMove{X: 400, Y: 300},
		PointerMove{X: 0, Y: 0},
		PointerMove{X: 600, Y: 450},
	)

	want := []string{"(0.000|0.000)", "(-1.000|1.000)", "(0.500|-0.500)"}
	if len(overlay.texts) != len(want) {
		t.Fatalf("overlay got %v, want %v", overlay.texts, want)
	}
	for i := range want {
		if overlay.texts[i] != want[i] {
			t.Errorf("readout %d = %q, want %q", i, overlay.texts[i], want[i])
		}
	}
	if c := s.Cursor(); c != (polysketch.Point{X: 0.5, Y: -0.5}) {
		t.Errorf("Cursor() = %v", c)
	}
	if len(s.Points()) != 0 {
		t.Error("pointer moves must not place nodes")
	}
}

func TestSessionClearColor(t *testing.T) {
	s, _ := newTestSession(t, polysketch.DefaultConfig(), nil)
	if s.ClearColor() != polysketch.Black {
		t.Errorf("initial clear color = %v, want black", s.ClearColor())
	}
	mustHandle(t, s, Resize{Width: 800, Height: 600}, PointerMove{X: 400, Y: 150})
	want := polysketch.Color{R: 0.5, G: 0.25, B: 1}
	if s.ClearColor() != want {
		t.Errorf("tracked clear color = %v, want %v", s.ClearColor(), want)
	}

	mustHandle(t, s, PointerMove{X: -50, Y: 9000})
	if c := s.ClearColor(); c != (polysketch.Color{R: 0, G: 1, B: 1}) {
		t.Errorf("clamped clear color = %+v", c)
	}

	fixed, _ := newTestSession(t, polysketch.DefaultConfig().WithTrackClearColor(false), nil)
	mustHandle(t, fixed, Resize{Width: 800, Height: 600}, PointerMove{X: 400, Y: 150})
	if fixed.ClearColor() != polysketch.Black {
		t.Errorf("untracked clear color = %v, want black", fixed.ClearColor())
	}
}

func TestSessionRenderBeforeConfigured(t *testing.T) {
	s, target := newTestSession(t, polysketch.DefaultConfig(), nil)
	if s.Configured() {
		t.Fatal("session configured before any resize")
	}
	if err := s.Render(target.View()); err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 0 {
		t.Errorf("Frames() = %d before first resize, want 0", s.Frames())
	}

	mustHandle(t, s, Resize{Width: 800, Height: 600})
	if err := s.Render(target.View()); err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", s.Frames())
	}
}

func TestSessionRecoverableFrame(t *testing.T) {
	s, target := newTestSession(t, polysketch.DefaultConfig(), nil)
	mustHandle(t, s, Resize{Width: 800, Height: 600}, PointerPress{X: 1, Y: 1})

	if err := s.Render(nil); err != nil {
		t.Fatalf("lost surface should be swallowed, got %v", err)
	}
	if s.Skipped() != 1 || s.Frames() != 0 {
		t.Errorf("Skipped()=%d Frames()=%d, want 1/0", s.Skipped(), s.Frames())
	}
	if s.Configured() {
		t.Fatal("session still configured after a lost surface")
	}

	// No frames until the host reports the surface size again.
	if err := s.Render(target.View()); err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 0 {
		t.Errorf("Frames() = %d before reconfiguration, want 0", s.Frames())
	}

	mustHandle(t, s, Resize{Width: 800, Height: 600})
	if !s.Configured() {
		t.Fatal("Resize did not reconfigure the session")
	}
	if err := s.Render(target.View()); err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 1 {
		t.Errorf("Frames() = %d after recovery, want 1", s.Frames())
	}
	if len(s.Points()) != 1 {
		t.Error("nodes lost across a skipped frame")
	}
}

func TestSessionTooManyPoints(t *testing.T) {
	s, _ := newTestSession(t, polysketch.DefaultConfig().WithMaxPoints(2), nil)
	mustHandle(t, s, Resize{Width: 800, Height: 600})

	for i := 0; i < 3; i++ {
		if err := s.Handle(PointerPress{X: float64(i), Y: 0}); err != nil {
			t.Fatalf("press %d: %v", i, err)
		}
	}
	if n := len(s.Points()); n != 2 {
		t.Errorf("placed %d nodes, want 2", n)
	}
}

func TestSessionClose(t *testing.T) {
	var buf bytes.Buffer
	overlay := NewWriterOverlay(&buf, true)
	s, target := newTestSession(t, polysketch.DefaultConfig(), overlay)
	mustHandle(t, s, Resize{Width: 800, Height: 600}, PointerMove{X: 0, Y: 0}, CloseRequest{})

	if !s.Closed() {
		t.Fatal("session not closed after CloseRequest")
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		t.Error("terminal status line not ended on close")
	}

	mustHandle(t, s, PointerPress{X: 400, Y: 300}, Resize{Width: 10, Height: 10})
	if len(s.Points()) != 0 {
		t.Error("press handled after close")
	}
	if err := s.Render(target.View()); err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 0 {
		t.Errorf("Frames() = %d after close", s.Frames())
	}
	s.Close()
}

func TestSessionPressOutsideViewport(t *testing.T) {
	var logs bytes.Buffer
	polysketch.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { polysketch.SetLogger(nil) })

	s, _ := newTestSession(t, polysketch.DefaultConfig(), nil)
	mustHandle(t, s, Resize{Width: 800, Height: 600}, PointerPress{X: 400, Y: 300})
	if strings.Contains(logs.String(), "outside the viewport") {
		t.Errorf("warning for a press inside the viewport: %s", logs.String())
	}

	mustHandle(t, s, PointerPress{X: 1200, Y: -300})
	if !strings.Contains(logs.String(), "outside the viewport") {
		t.Error("no warning for a press outside the viewport")
	}
	got := s.Points()
	if len(got) != 2 || got[1] != (polysketch.Point{X: 2, Y: 2}) {
		t.Errorf("Points() = %v, want the outside press placed at (2, 2)", got)
	}
}
