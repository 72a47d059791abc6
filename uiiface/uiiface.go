// Package uiiface is the UI collaborator of spec §6: the narrow surface
// the engine calls to surface status messages and negotiate terminal
// behavior, specified only at its interface per spec §1's Non-goals
// (rendering, terminal capability detection, key dispatch all stay out
// of scope). Grounded on the teacher's verbosity-gated Info/InfoWithFile
// helpers (cmd/glitter/glitter.go): a thin wrapper over log.Printf rather
// than a rendering layer.
package uiiface

import "log"

// Layout names the window-arrangement the `set layout` option and the
// `split`/`vsplit` handlers request from the UI, per spec §4.7/§4.8.
type Layout string

const (
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
	LayoutSingle     Layout = "single"
)

// UI is the collaborator interface spec §6 names: "info_show(fmt,…),
// termkey_set_waittime, arrange(layout)". samctl's engine calls it after
// every handler that has a user-visible side effect; a terminal front
// end supplies the real implementation, which is out of scope per §1.
type UI interface {
	// InfoShow surfaces a formatted status-line message.
	InfoShow(format string, args ...any)

	// TermkeySetWaittime sets the terminal key driver's escape-sequence
	// timeout in milliseconds (spec §6); samctl's reference UI has no
	// real terminal to configure, so it just records the value.
	TermkeySetWaittime(ms int)

	// Arrange requests a window layout change (spec §4.8's `set layout`,
	// §4.7's `split`/`vsplit`).
	Arrange(layout Layout)
}

// Logger is a minimal reference UI that writes status messages through
// the standard logger, the same way the teacher's Info forwards to
// log.Printf rather than driving a real display. It exists so the engine
// and its tests have something to call without depending on a terminal.
type Logger struct {
	waittime int
	layout   Layout
}

// NewLogger returns a Logger UI with samctl's default layout and
// waittime.
func NewLogger() *Logger {
	return &Logger{waittime: 300, layout: LayoutSingle}
}

// InfoShow implements UI.
func (l *Logger) InfoShow(format string, args ...any) {
	log.Printf(format, args...)
}

// TermkeySetWaittime implements UI.
func (l *Logger) TermkeySetWaittime(ms int) {
	l.waittime = ms
}

// Waittime returns the last value recorded by TermkeySetWaittime.
func (l *Logger) Waittime() int { return l.waittime }

// Arrange implements UI.
func (l *Logger) Arrange(layout Layout) {
	l.layout = layout
}

// Layout returns the last layout recorded by Arrange.
func (l *Logger) Layout() Layout { return l.layout }
