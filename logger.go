package polysketch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. A sketch logs once per press and once per
// frame failure; with logging off, Enabled returning false keeps those
// calls from formatting records on the input path.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr is read by the event loop (session, internal/gpu) and may be
// swapped from the goroutine that set up the window.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes the session, GPU and host messages to l. The library is
// silent until it is called; nil silences it again. cmd/polysketch installs
// a text handler on stderr at the -log-level flag.
//
// What each level carries:
//   - [slog.LevelDebug]: every placed node with its NDC position, buffer
//     byte sizes and reallocations, resizes
//   - [slog.LevelInfo]: session start and close, pipeline creation, host
//     device format, surface reconfiguration
//   - [slog.LevelWarn]: frames skipped on a lost surface, presses at the
//     node limit or outside the viewport
//   - [slog.LevelError]: allocation failures and device loss that end the
//     session
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
