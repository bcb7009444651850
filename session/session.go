package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/polysketch"
	"github.com/gogpu/polysketch/geometry"
	"github.com/gogpu/polysketch/internal/gpu"
	"github.com/gogpu/wgpu/hal"
)

// Session is the single owner of a sketch: the node list and its GPU
// buffers live in the synchronizer, everything else the host reports lives
// here. It is driven from one goroutine and is not safe for concurrent use.
type Session struct {
	cfg      polysketch.Config
	viewport polysketch.Viewport
	overlay  Overlay

	sync     *gpu.Synchronizer
	renderer *gpu.Renderer

	cursor polysketch.Point
	clear  polysketch.Color
	// configured is false until a usable size is seen, and again after a
	// lost surface until the host reports the size anew.
	configured bool
	skipped    uint64
	closed     bool
}

// New creates a session drawing with dev. cfg is validated first; a nil
// overlay discards the readout. Pipeline creation failures are returned
// as-is and end the session before it starts.
func New(dev gpu.Device, cfg polysketch.Config, overlay Overlay) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if overlay == nil {
		overlay = nopOverlay{}
	}

	sync, err := gpu.NewSynchronizer(dev.Device, dev.Queue, geometry.NewGenerator(cfg), cfg.MaxPoints)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	renderer, err := gpu.NewRenderer(dev, sync, cfg.ShaderSPIRV)
	if err != nil {
		sync.Destroy()
		return nil, fmt.Errorf("session: %w", err)
	}

	polysketch.Logger().Info("session: started",
		"width", cfg.Width, "height", cfg.Height,
		"marker_size", cfg.MarkerSize, "max_points", cfg.MaxPoints)

	return &Session{
		cfg:      cfg,
		viewport: polysketch.NewViewport(cfg.Width, cfg.Height),
		overlay:  overlay,
		sync:     sync,
		renderer: renderer,
		clear:    polysketch.Black,
	}, nil
}

// Handle applies one input event. Events after Close are ignored.
//
// A press at the node limit is logged and dropped. Any other AddPoint
// failure is returned; the node is not added and the host should end the
// session.
func (s *Session) Handle(ev Event) error {
	if s.closed {
		return nil
	}
	switch ev := ev.(type) {
	case PointerPress:
		return s.press(ev)
	case PointerMove:
		s.move(ev)
	case Resize:
		s.resize(ev)
	case CloseRequest:
		s.Close()
	default:
		return fmt.Errorf("session: unknown event %T", ev)
	}
	return nil
}

func (s *Session) press(ev PointerPress) error {
	p := s.viewport.ToNDC(ev.X, ev.Y)
	if !p.InNDC() {
		polysketch.Logger().Warn("session: press outside the viewport",
			"raw_x", ev.X, "raw_y", ev.Y, "x", p.X, "y", p.Y)
	}
	err := s.sync.AddPoint(p)
	switch {
	case err == nil:
		polysketch.Logger().Debug("session: node placed",
			"button", ev.Button, "x", p.X, "y", p.Y, "nodes", s.sync.Len())
		return nil
	case errors.Is(err, gpu.ErrTooManyPoints):
		polysketch.Logger().Warn("session: press ignored", "error", err)
		return nil
	default:
		polysketch.Logger().Error("session: add point failed", "error", err)
		return err
	}
}

func (s *Session) move(ev PointerMove) {
	s.cursor = s.viewport.ToNDC(ev.X, ev.Y)
	s.overlay.SetText(FormatReadout(s.cursor))
	if s.cfg.TrackClearColor {
		fx, fy := s.viewport.Fraction(ev.X, ev.Y)
		s.clear = polysketch.RGB(fx, fy, 1)
	}
}

func (s *Session) resize(ev Resize) {
	vp, ok := s.viewport.Resize(ev.Width, ev.Height)
	if !ok {
		polysketch.Logger().Debug("session: resize ignored", "width", ev.Width, "height", ev.Height)
		return
	}
	s.viewport = vp
	if !s.configured && s.skipped > 0 {
		polysketch.Logger().Info("session: surface reconfigured",
			"width", vp.Width, "height", vp.Height, "skipped", s.skipped)
	}
	s.configured = true
	polysketch.Logger().Debug("session: resized", "width", vp.Width, "height", vp.Height)
}

// Render draws one frame into view. It is a no-op until the session is
// configured and after Close.
//
// Recoverable failures (a lost or missing surface) skip the frame, mark the
// session unconfigured and return nil; the host re-sends Resize with the
// current surface size and the next frame is retried. Fatal failures are
// returned and end the session.
func (s *Session) Render(view hal.TextureView) error {
	if s.closed || !s.configured {
		return nil
	}

	err := s.renderer.RenderTo(view, s.clear)
	switch gpu.Classify(err) {
	case gpu.SeverityNone:
		return nil
	case gpu.SeverityRecoverable:
		s.skipped++
		s.configured = false
		polysketch.Logger().Warn("session: frame skipped", "error", err)
		return nil
	default:
		polysketch.Logger().Error("session: frame failed", "error", err)
		return err
	}
}

// Close releases the GPU resources. Safe to call multiple times.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.renderer.Destroy()
	s.sync.Destroy()
	if c, ok := s.overlay.(io.Closer); ok {
		_ = c.Close()
	}
	polysketch.Logger().Info("session: closed", "frames", s.renderer.Frames())
}

// Closed reports whether the session has ended.
func (s *Session) Closed() bool { return s.closed }

// Configured reports whether frames can be drawn. The host sends Resize
// whenever this is false.
func (s *Session) Configured() bool { return s.configured }

// Viewport returns the current drawable size.
func (s *Session) Viewport() polysketch.Viewport { return s.viewport }

// Cursor returns the last cursor position in normalized device coordinates.
func (s *Session) Cursor() polysketch.Point { return s.cursor }

// ClearColor returns the background of the next frame.
func (s *Session) ClearColor() polysketch.Color { return s.clear }

// Points returns the placed nodes in insertion order.
func (s *Session) Points() []polysketch.Point { return s.sync.Points() }

// QuadDraw returns the marker pass of the next frame.
func (s *Session) QuadDraw() gpu.DrawCall { return s.sync.QuadDraw() }

// EdgeDraw returns the outline pass of the next frame.
func (s *Session) EdgeDraw() gpu.DrawCall { return s.sync.EdgeDraw() }

// Frames returns the number of frames drawn.
func (s *Session) Frames() uint64 { return s.renderer.Frames() }

// Skipped returns the number of frames dropped on recoverable failures.
func (s *Session) Skipped() uint64 { return s.skipped }
