// Command polysketch opens a window in which every click places a node.
// Nodes are drawn as small square markers joined by a closed outline in
// click order. Escape or closing the window ends the session.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/polysketch"
	"github.com/gogpu/polysketch/internal/gpu"
	"github.com/gogpu/polysketch/session"
	"github.com/gogpu/wgpu/hal"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		markerSize = flag.Float64("marker-size", 0, "marker side length in NDC units (overrides config)")
		width      = flag.Int("width", 0, "window width (overrides config)")
		height     = flag.Int("height", 0, "window height (overrides config)")
		useSPIRV   = flag.Bool("spirv", false, "translate the shader to SPIR-V before use")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	level, err := parseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	polysketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := polysketch.DefaultConfig()
	if *configPath != "" {
		if cfg, err = polysketch.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *markerSize != 0 {
		cfg = cfg.WithMarkerSize(float32(*markerSize))
	}
	if *width != 0 || *height != 0 {
		cfg = cfg.WithSize(pick(*width, cfg.Width), pick(*height, cfg.Height))
	}
	if *useSPIRV {
		cfg = cfg.WithShaderSPIRV(true)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	run(cfg)
}

func run(cfg polysketch.Config) {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height))

	overlay := session.NewTerminalOverlay(os.Stdout)
	h := &host{}

	// dispatch feeds one event to the session; a failure ends the process.
	dispatch := func(ev session.Event) {
		if err := h.dispatch(ev); err != nil {
			h.s.Close()
			log.Fatalf("Session failed: %v", err)
		}
	}

	app.OnDraw(func(dc *gogpu.Context) {
		w, ht := dc.Width(), dc.Height()
		if h.s == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			dev, err := gpu.OpenFromProvider(provider)
			if err != nil {
				log.Fatalf("Failed to open GPU device: %v", err)
			}
			s, err := session.New(dev, cfg, overlay)
			if err != nil {
				log.Fatalf("Failed to start session: %v", err)
			}
			if err := h.attach(s, w, ht); err != nil {
				s.Close()
				log.Fatalf("Session failed: %v", err)
			}
		}
		if h.s.Closed() {
			os.Exit(0)
		}

		// The host reconfigures its surface on resize; mirror the size.
		if err := h.syncSize(w, ht); err != nil {
			h.s.Close()
			log.Fatalf("Session failed: %v", err)
		}

		view, _ := any(dc.SurfaceView()).(hal.TextureView)
		if err := h.s.Render(view); err != nil {
			h.s.Close()
			log.Fatalf("Render failed: %v", err)
		}
	})

	events := app.EventSource()
	events.OnMouseMove(func(x, y float64) {
		dispatch(session.PointerMove{X: x, Y: y})
	})
	events.OnMousePress(func(button gpucontext.MouseButton, x, y float64) {
		dispatch(session.PointerPress{Button: int(button), X: x, Y: y})
	})
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key == gpucontext.KeyEscape {
			dispatch(session.CloseRequest{})
		}
	})

	app.OnClose(func() {
		if h.s != nil {
			h.s.Close()
		}
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func pick(flagValue, fallback int) int {
	if flagValue != 0 {
		return flagValue
	}
	return fallback
}
