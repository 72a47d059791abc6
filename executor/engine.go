// Package executor implements spec §4.6: expanding a parsed command tree
// across a window's selections, evaluating addresses per selection,
// enforcing the loop/destructive rule, and handing the resulting
// transcripts to transcript.Apply once a whole command line has run.
// Grounded on the teacher's two-pass shape (parser.buildList builds a
// list, executor.weave walks it start to finish) adapted from glitter's
// single linear command list to sam's tree of nested loop/group bodies.
package executor

import (
	"context"
	"fmt"
	"sort"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/arena"
	"monogrammedchalk.com/samctl/command"
	"monogrammedchalk.com/samctl/lexer"
	"monogrammedchalk.com/samctl/marks"
	"monogrammedchalk.com/samctl/process"
	"monogrammedchalk.com/samctl/registers"
	"monogrammedchalk.com/samctl/text"
	"monogrammedchalk.com/samctl/transcript"
	"monogrammedchalk.com/samctl/uiiface"
	"monogrammedchalk.com/samctl/view"
)

// ErrDestructiveInLoop is returned when a DESTRUCTIVE command is parsed
// after a loop-class command has already executed within the same
// top-level command line, per spec §4.6's loop/destructive rule.
var ErrDestructiveInLoop = fmt.Errorf("destructive command in looping construct")

// window bundles the collaborators that make up one open buffer's view,
// per spec §6: a Window (selections, display options) and the File it
// displays, plus the per-invocation Transcript changes are enqueued
// against while the current sam_cmd runs.
type window struct {
	id   transcript.WindowID
	win  *view.Window
	file *text.File
	tr   *transcript.Transcript

	modifiedAtOpen bool
}

// Engine is the explicit context threaded through every handler call in
// place of the teacher's ambient `vis` global (spec §9's "avoid ambient
// state" note). It owns the command registry, the register table, the
// per-invocation arenas, and the open windows.
type Engine struct {
	Registry  *command.Registry
	Registers *registers.Table
	Runner    *process.Runner
	UI        uiiface.UI

	Keymap  map[string]map[string]string
	Langmap map[rune]rune

	windows map[transcript.WindowID]*window
	order   []transcript.WindowID
	current transcript.WindowID
	nextWin transcript.WindowID

	tokArena  *arena.Arena[lexer.Token]
	nodeArena *arena.Arena[command.Command]

	loopSeen bool

	ShouldExit bool
	ExitCode   int

	ErrLog *ErrLog

	Shell string
}

// New returns an Engine with no open windows, ready to have files opened
// into it via Open.
func New(ui uiiface.UI) *Engine {
	return &Engine{
		Registry:  command.NewRegistry(),
		Registers: registers.New(),
		Runner:    process.New(""),
		UI:        ui,
		Keymap:    map[string]map[string]string{},
		windows:   map[transcript.WindowID]*window{},
		tokArena:  arena.New[lexer.Token](64),
		nodeArena: arena.New[command.Command](64),
		ErrLog:    NewErrLog(),
		Shell:     "/bin/sh",
	}
}

// Open creates a new window over a file with the given name and initial
// contents, makes it the current window, and returns its id.
func (e *Engine) Open(name string, data []byte) transcript.WindowID {
	id := e.nextWin
	e.nextWin++
	w := &window{id: id, win: view.New(id, name), file: text.New(name, data)}
	e.windows[id] = w
	e.order = append(e.order, id)
	e.current = id
	return id
}

// Close removes a window from the engine's table (spec §4.7's `q`).
// Closing the last window sets ShouldExit.
func (e *Engine) Close(id transcript.WindowID) {
	delete(e.windows, id)
	for i, w := range e.order {
		if w == id {
			e.order = append(e.order[:i:i], e.order[i+1:]...)
			break
		}
	}
	if len(e.order) == 0 {
		e.ShouldExit = true
		return
	}
	if e.current == id {
		e.current = e.order[0]
	}
}

// CurrentWindow returns the id of the engine's focused window.
func (e *Engine) CurrentWindow() (transcript.WindowID, bool) {
	if _, ok := e.windows[e.current]; !ok {
		return 0, false
	}
	return e.current, true
}

// Focus makes id the current window, if it exists.
func (e *Engine) Focus(id transcript.WindowID) bool {
	if _, ok := e.windows[id]; !ok {
		return false
	}
	e.current = id
	return true
}

// File returns the *text.File backing window id.
func (e *Engine) File(id transcript.WindowID) (*text.File, bool) {
	w, ok := e.windows[id]
	if !ok {
		return nil, false
	}
	return w.file, true
}

// Window returns the *view.Window for id.
func (e *Engine) Window(id transcript.WindowID) (*view.Window, bool) {
	w, ok := e.windows[id]
	if !ok {
		return nil, false
	}
	return w.win, true
}

// WindowIDs returns every open window id, in open order.
func (e *Engine) WindowIDs() []transcript.WindowID {
	out := make([]transcript.WindowID, len(e.order))
	copy(out, e.order)
	return out
}

// Marks returns the mark table for window id's file.
func (e *Engine) Marks(id transcript.WindowID) (*marks.Table, bool) {
	w, ok := e.windows[id]
	if !ok {
		return nil, false
	}
	return w.file.Marks(), true
}

// Exec runs one command line through the lexer, parser, and executor, per
// spec §4.6's entry point. Every file a touched window displays is
// applied atomically once all commands in the line complete (or the
// first failure stops it); per spec §7 a handler failure aborts the rest
// of the line but does not prevent other already-queued files from
// applying.
func (e *Engine) Exec(line []byte) error {
	e.tokArena.Reset()
	e.nodeArena.Reset()
	e.loopSeen = false

	ts := lexer.Lex(e.tokArena, line)
	if !ts.Validate() {
		return e.ErrLog.Report(ts, ts.Peek(), "unmatched { or }")
	}

	id, ok := e.CurrentWindow()
	if !ok {
		return fmt.Errorf("no current window")
	}
	w := e.windows[id]
	w.tr = transcript.New()

	var execErr error
	for !ts.AtEnd() {
		cmd, err := command.ParseCommand(ts, e.Registry, e.nodeArena)
		if err != nil {
			execErr = e.ErrLog.ReportParse(ts, err)
			break
		}
		if err := e.execTopLevel(w, cmd, ts); err != nil {
			execErr = err
			break
		}
	}

	e.applyAll()
	return execErr
}

// execTopLevel fans a freshly parsed top-level node out across every
// selection currently held by w's window, per spec §4.6's selection
// fan-out rule; a command flagged ONCE instead runs a single time.
func (e *Engine) execTopLevel(w *window, node *command.Command, ts *lexer.TokenStream) error {
	if node.Def.Flags.Has(command.ONCE) {
		var sel *view.Selection
		if p, ok := w.win.Primary(); ok {
			sel = p
		}
		rng := address.Range{}
		if sel != nil {
			rng = address.Range{Start: sel.Start(), End: sel.End()}
		}
		return e.runOne(w, node, sel, rng, ts)
	}

	for _, sel := range append([]*view.Selection(nil), w.win.Selections()...) {
		cur := address.Range{Start: sel.Start(), End: sel.End()}
		if err := e.runOne(w, node, sel, cur, ts); err != nil {
			return err
		}
	}
	return nil
}

// applyAll applies every touched window's transcript (skipping any that
// recorded a conflict, per spec §4.9 step 1) and normalizes selections
// afterward.
func (e *Engine) applyAll() {
	ids := make([]transcript.WindowID, 0, len(e.windows))
	for id := range e.windows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		w := e.windows[id]
		if w.tr == nil {
			continue
		}
		if w.tr.Err() != nil {
			e.UI.InfoShow("%s: %v", w.file.Name, w.tr.Err())
			w.tr = nil
			continue
		}
		if len(w.tr.Changes()) == 0 {
			w.tr = nil
			continue
		}
		if err := transcript.Apply(w.tr, w.file, w.file, w.win); err != nil {
			e.UI.InfoShow("%s: %v", w.file.Name, err)
		}
		w.win.Normalize()
		w.tr = nil
	}
}

// pipeContext returns the context.Context for Pipe calls. The engine has
// no interrupt flag, so the returned context is never cancelled and a
// pipe runs until its process exits.
func (e *Engine) pipeContext() context.Context {
	return context.Background()
}

// RunInWindow runs node once inside window id with no bound selection,
// over id's whole file as its starting range. It is how X/Y (spec
// §4.7) drive their nested command inside a window other than the one
// the top-level command line was typed into; the target window's
// transcript is created on demand so applyAll still picks it up.
func (e *Engine) RunInWindow(id transcript.WindowID, node *command.Command, ts *lexer.TokenStream) error {
	w, ok := e.windows[id]
	if !ok {
		return fmt.Errorf("no such window")
	}
	if w.tr == nil {
		w.tr = transcript.New()
	}
	rng := address.Range{Start: 0, End: w.file.Size()}
	return e.runOne(w, node, nil, rng, ts)
}
