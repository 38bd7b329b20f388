// Package progress implements the ProgressSink the protocol state
// machines report through (§REDESIGN "Global print-based progress"):
// callers depend on the Sink interface, never on a terminal directly.
package progress

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Sink receives status updates from a protocol state machine. Nothing
// in internal/bsl formats or colors output itself.
type Sink interface {
	// Status reports a one-line state transition (e.g. "connecting",
	// "erasing flash").
	Status(msg string)
	// Progress reports bytes written so far out of total during a
	// chunked transfer (program_flash).
	Progress(done, total int)
	// Warn reports a non-fatal condition (image truncation, unknown
	// model, a documented magic collision).
	Warn(msg string)
}

// Terminal is a Sink that writes colored, human-readable lines to w.
type Terminal struct {
	w      io.Writer
	status *color.Color
	warn   *color.Color
	bar    *color.Color
	debug  bool
}

// NewTerminal builds a Sink writing to w. When debug is true, Progress
// calls are also emitted as discrete lines rather than just updating a
// running total; the CLI sets debug from --debug.
func NewTerminal(w io.Writer, debug bool) *Terminal {
	return &Terminal{
		w:      w,
		status: color.New(color.FgCyan),
		warn:   color.New(color.FgYellow, color.Bold),
		bar:    color.New(color.FgGreen),
		debug:  debug,
	}
}

func (t *Terminal) Status(msg string) {
	t.status.Fprintln(t.w, msg)
}

func (t *Terminal) Progress(done, total int) {
	if total <= 0 {
		return
	}
	pct := done * 100 / total
	if t.debug {
		fmt.Fprintf(t.w, "%d/%d bytes (%d%%)\n", done, total, pct)
		return
	}
	t.bar.Fprintf(t.w, "\r%3d%% (%d/%d bytes)", pct, done, total)
	if done >= total {
		fmt.Fprintln(t.w)
	}
}

func (t *Terminal) Warn(msg string) {
	t.warn.Fprintf(t.w, "warning: %s\n", msg)
}

// Discard is a Sink that drops everything, used by tests and by any
// caller that doesn't want terminal output.
var Discard Sink = discard{}

type discard struct{}

func (discard) Status(string)       {}
func (discard) Progress(int, int)   {}
func (discard) Warn(string)         {}
