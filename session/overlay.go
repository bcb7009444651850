package session

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/gogpu/polysketch"
	"golang.org/x/term"
)

// Overlay displays the live coordinate readout.
type Overlay interface {
	SetText(text string)
}

// FormatReadout formats a normalized device coordinate as "(X|Y)" with
// three decimals.
func FormatReadout(p polysketch.Point) string {
	return fmt.Sprintf("(%.3f|%.3f)", p.X, p.Y)
}

// TerminalOverlay writes the readout to a terminal status line. On a
// terminal the line is rewritten in place; otherwise each readout is a
// separate line.
type TerminalOverlay struct {
	w   io.Writer
	tty bool

	last string
}

// NewTerminalOverlay returns an overlay on f, rewriting in place when f is
// a terminal.
func NewTerminalOverlay(f *os.File) *TerminalOverlay {
	return NewWriterOverlay(f, term.IsTerminal(int(f.Fd()))) //nolint:gosec // fd fits int
}

// NewWriterOverlay returns an overlay on w. tty selects in-place rewriting.
func NewWriterOverlay(w io.Writer, tty bool) *TerminalOverlay {
	return &TerminalOverlay{w: w, tty: tty}
}

// SetText replaces the displayed readout. Repeated text is not rewritten.
func (o *TerminalOverlay) SetText(text string) {
	if text == o.last {
		return
	}
	o.last = text

	var err error
	if o.tty {
		_, err = io.WriteString(o.w, "\r"+ansi.EraseEntireLine+text)
	} else {
		_, err = io.WriteString(o.w, text+"\n")
	}
	if err != nil {
		polysketch.Logger().Debug("session: overlay write failed", "error", err)
	}
}

// Text returns the last readout.
func (o *TerminalOverlay) Text() string {
	return o.last
}

// Close ends the status line on a terminal.
func (o *TerminalOverlay) Close() error {
	if o.tty && o.last != "" {
		_, err := io.WriteString(o.w, "\n")
		return err
	}
	return nil
}

type nopOverlay struct{}

func (nopOverlay) SetText(string) {}
