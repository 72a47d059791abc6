package executor

import (
	"context"
	"regexp"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/command"
	"monogrammedchalk.com/samctl/lexer"
	"monogrammedchalk.com/samctl/transcript"
	"monogrammedchalk.com/samctl/view"
)

// addrContext adapts one (file, selection-ordinal) pair to
// address.Context, the narrow interface the address algebra evaluates
// sides against. It is the concrete implementation address.go's doc
// comment names as "executor.addrContext".
type addrContext struct {
	w       *window
	ordinal int
}

func (c addrContext) Size() int                { return c.w.file.Size() }
func (c addrContext) LineStart(n int) int       { return c.w.file.LineStart(n) }
func (c addrContext) LineAt(pos int) int        { return c.w.file.LineAt(pos) }
func (c addrContext) SearchForward(re *regexp.Regexp, from int) (address.Range, bool) {
	return c.w.file.SearchForward(re, from)
}
func (c addrContext) SearchBackward(re *regexp.Regexp, upto int) (address.Range, bool) {
	return c.w.file.SearchBackward(re, upto)
}
func (c addrContext) Mark(id byte, ordinal int) (address.Range, bool) {
	return c.w.file.Marks().Resolve(id, c.ordinal)
}

// Invocation is the concrete command.Context the executor binds per
// (window, selection, range) call, per spec §4.7's handler contract
// "(editor, window?, command, stream, selection?, range)". Its exported
// methods beyond command.Context let the handlers package (which is
// allowed to depend on executor/text/view, unlike command itself) drive
// recursion and selection mutation for the loop commands and `p`,
// without command.Context itself growing a view/text dependency.
type Invocation struct {
	eng *Engine
	w   *window
	sel *view.Selection
	rng address.Range
	ts  *lexer.TokenStream

	ordinal int
}

var _ command.Context = (*Invocation)(nil)

// Range implements command.Context.
func (iv *Invocation) Range() address.Range { return iv.rng }

// Stream implements command.Context.
func (iv *Invocation) Stream() *lexer.TokenStream { return iv.ts }

// Transcript implements command.Context.
func (iv *Invocation) Transcript() *transcript.Transcript { return iv.w.tr }

// Selection implements command.Context.
func (iv *Invocation) Selection() (transcript.SelectionID, bool) {
	if iv.sel == nil {
		return 0, false
	}
	return iv.sel.ID, true
}

// Window implements command.Context.
func (iv *Invocation) Window() transcript.WindowID { return iv.w.id }

// Pipe implements command.Context. It runs under the engine's pipe
// context, which is never cancelled, so the call returns only when the
// process exits.
func (iv *Invocation) Pipe(argv []string, input []byte, stdout, stderr func([]byte)) (int, error) {
	ctx := iv.eng.pipeContext()
	return iv.eng.Runner.Pipe(ctx, argv, input, stdout, stderr)
}

// Info implements command.Context.
func (iv *Invocation) Info(format string, args ...any) {
	iv.eng.UI.InfoShow(format, args...)
}

// Win returns the concrete *view.Window this invocation targets, for
// handlers needing selection mutation beyond what command.Context
// exposes (e.g. `p`'s create-or-reshape).
func (iv *Invocation) Win() *view.Window { return iv.w.win }

// SelectionObj returns the bound *view.Selection, if any.
func (iv *Invocation) SelectionObj() (*view.Selection, bool) {
	if iv.sel == nil {
		return nil, false
	}
	return iv.sel, true
}

// Ordinal returns this selection's traversal-order index within the
// window, used by mark resolution (spec §3's "indexed by this
// selection's ordinal").
func (iv *Invocation) Ordinal() int { return iv.ordinal }

// Engine returns the owning Engine, for handlers that manage other
// windows (`e`, `q`, `X`/`Y`, `split`, ...).
func (iv *Invocation) Engine() *Engine { return iv.eng }

// AddrContext returns the address.Context this invocation's selection
// evaluates addresses against.
func (iv *Invocation) AddrContext() address.Context { return addrContext{w: iv.w, ordinal: iv.ordinal} }

// Recurse runs child bound to sel (nil for a synthetic, selection-less
// iteration such as one x/y match) over range r, within the same window
// and transcript as iv, per spec §4.7's loop-command recursion. It is
// the mechanism g/v/x/y/X/Y handlers use to drive their nested command.
func (iv *Invocation) Recurse(child *command.Command, sel *view.Selection, r address.Range) error {
	return iv.eng.runOne(iv.w, child, sel, r, iv.ts)
}

// pipeCtxAdapter satisfies context.Context for Pipe cancellation; kept
// tiny since samctl's reference engine never actually cancels (no real
// terminal interrupt key exists outside the Non-goal'd UI), but the
// signature is wired so a real front end's interrupt key has somewhere
// to plug in (spec §5).
type pipeCtxAdapter struct{ context.Context }
