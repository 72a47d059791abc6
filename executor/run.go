package executor

import (
	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/command"
	"monogrammedchalk.com/samctl/lexer"
	"monogrammedchalk.com/samctl/view"
)

// runOne is the executor's single point of dispatch: given one (window,
// selection-or-none, current-range) triple and a parsed command node, it
// resolves the node's address (or its CommandDef's default range),
// enforces the loop/destructive rule, substitutes REGEX/SHELL defaults,
// and either recurses over a `{…}` group's siblings or invokes the
// node's handler. Every other entry point (top-level fan-out, and the
// loop handlers' own recursion via Invocation.Recurse) funnels through
// here, per spec §4.6.
func (e *Engine) runOne(w *window, node *command.Command, sel *view.Selection, cur address.Range, ts *lexer.TokenStream) error {
	if node.Def == command.GroupDef {
		for child := node.Child; child != nil; child = child.Next {
			if err := e.runOne(w, child, sel, cur, ts); err != nil {
				return err
			}
		}
		return nil
	}

	if node.Def.Flags.Has(command.DESTRUCTIVE) && e.loopSeen {
		e.ErrLog.Report(ts, ts.Peek(), "%v", ErrDestructiveInLoop)
		return ErrDestructiveInLoop
	}

	ordinal := e.ordinalOf(w, sel)
	rng, err := e.resolveRange(w, node, sel, ordinal, cur)
	if err != nil {
		return e.ErrLog.Report(ts, ts.Peek(), "%v", err)
	}

	if node.Def.Flags.Has(command.REGEX) {
		if node.Regex != nil {
			e.Registers.SetLastRegex(node.Regex)
		} else if re := e.Registers.LastRegex(); re != nil {
			node.Regex = re
		}
	}
	if node.Def.Flags.Has(command.SHELL) {
		if node.ShellRaw != "" {
			e.Registers.SetLastShell(node.ShellRaw)
		} else {
			node.ShellRaw = e.Registers.LastShell()
		}
	}

	iv := &Invocation{eng: e, w: w, sel: sel, rng: rng, ts: ts, ordinal: ordinal}

	handlerErr := node.Def.Handler(iv, node)

	if node.Def.Flags.Has(command.LOOP) && handlerErr == nil {
		nested := false
		for p := node.ParentIndex; p >= 0 && p < e.nodeArena.Len(); p = e.nodeArena.At(p).ParentIndex {
			if e.nodeArena.At(p).Def.Flags.Has(command.LOOP) {
				nested = true
				break
			}
		}
		if !nested {
			e.loopSeen = true
		}
	}
	return handlerErr
}

// ordinalOf returns sel's traversal-order index within w's window
// (spec §3's "indexed by this selection's ordinal"), or 0 when sel is
// nil (a synthetic, selection-less recursion).
func (e *Engine) ordinalOf(w *window, sel *view.Selection) int {
	if sel == nil {
		return 0
	}
	for i, s := range w.win.Selections() {
		if s == sel {
			return i
		}
	}
	return 0
}

// resolveRange evaluates node's own address against cur if one was given,
// else computes the command's default range per spec §4.6.
func (e *Engine) resolveRange(w *window, node *command.Command, sel *view.Selection, ordinal int, cur address.Range) (address.Range, error) {
	if node.HasAddr {
		return node.Address.Evaluate(cur, addrContext{w: w, ordinal: ordinal})
	}
	return defaultRange(node.Def.AddrDefault, w, sel, cur), nil
}

// defaultRange implements spec §4.6's address-default table: POS, LINE,
// AFTER, ALL, ALL_1CURSOR, and the implicit "one character at cursor"
// fallback for AddrNone (and for ALL_1CURSOR when more than one cursor is
// live).
func defaultRange(d command.AddrDefault, w *window, sel *view.Selection, cur address.Range) address.Range {
	pos := cur.Start
	size := w.file.Size()

	switch d {
	case command.AddrAll:
		return address.Range{Start: 0, End: size}

	case command.AddrAll1Cursor:
		if w.win.Count() == 1 {
			return address.Range{Start: 0, End: size}
		}
		return onePos(pos, size)

	case command.AddrLine:
		n := w.file.LineAt(pos)
		return address.Range{Start: w.file.LineStart(n), End: w.file.LineStart(n + 1)}

	case command.AddrAfter:
		n := w.file.LineAt(pos)
		start := w.file.LineStart(n + 1)
		return address.Range{Start: start, End: start}

	case command.AddrPos:
		return address.Range{Start: pos, End: pos}

	default: // AddrNone
		return onePos(pos, size)
	}
}

// onePos returns the one-character range at pos, clamped so it never
// reads past the file's end.
func onePos(pos, size int) address.Range {
	if pos >= size {
		return address.Range{Start: pos, End: pos}
	}
	return address.Range{Start: pos, End: pos + 1}
}
