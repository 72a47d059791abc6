// Package handlers implements spec §4.7's sam command bodies and §4.8's
// `set`, wiring the command registry's static table to the collaborator
// packages (text, view, registers, process, marks, uiiface) through the
// executor.Invocation each handler receives. Grounded on the teacher's
// dispatch-by-constant style (weave.go's switch over lexer.CMD_* driving
// weaveNatural/weaveCode/weaveAmble), generalized from a fixed switch
// over five cases to a registry of ~30 independently registered
// CommandDefs, since sam's command set is open to user registration
// (spec §4.4) in a way glitter's weave-command set never was.
package handlers

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/command"
	"monogrammedchalk.com/samctl/executor"
	"monogrammedchalk.com/samctl/text"
	"monogrammedchalk.com/samctl/transcript"
	"monogrammedchalk.com/samctl/uiiface"
)

// Register installs every builtin CommandDef into eng's registry and
// fills in the synthetic select handler command.SelectDef needs (see
// command.SelectDef's doc: its Handler is filled in here at startup).
func Register(eng *executor.Engine) {
	command.SelectDef.Handler = selectHandler

	for _, def := range samCommands() {
		eng.Registry.RegisterBuiltin(def)
	}
	for _, def := range editorCommands() {
		eng.Registry.RegisterBuiltin(def)
	}
}

func ctxOf(c command.Context) *executor.Invocation {
	iv, ok := c.(*executor.Invocation)
	if !ok {
		panic("handlers: command.Context is not an *executor.Invocation")
	}
	return iv
}

// samCommands returns the sam-dialect command table: a/i/c/d/p, g/v/x/y,
// X/Y, and the four pipe commands, per spec §4.7.
func samCommands() []*command.CommandDef {
	return []*command.CommandDef{
		{Name: "a", Help: "append text after the address", Flags: command.TEXT | command.DESTRUCTIVE, AddrDefault: command.AddrAfter, Handler: appendHandler},
		{Name: "i", Help: "insert text before the address", Flags: command.TEXT | command.DESTRUCTIVE, AddrDefault: command.AddrPos, Handler: insertHandler},
		{Name: "c", Help: "change the address to text", Flags: command.TEXT | command.DESTRUCTIVE, AddrDefault: command.AddrLine, Handler: changeHandler},
		{Name: "d", Help: "delete the address", Flags: command.DESTRUCTIVE, AddrDefault: command.AddrLine, Handler: deleteHandler},
		{Name: "p", Help: "select/print the address", Flags: 0, AddrDefault: command.AddrPos, Handler: printHandler},
		{Name: "k", Help: "set a mark over the address", Flags: command.ARGV, AddrDefault: command.AddrPos, Handler: markHandler},

		{Name: "g", Help: "if pattern matches, run command", Flags: command.REGEX | command.COUNT | command.CMD | command.LOOP, AddrDefault: command.AddrLine, Handler: conditionalHandler(true)},
		{Name: "v", Help: "if pattern does not match, run command", Flags: command.REGEX | command.COUNT | command.CMD | command.LOOP, AddrDefault: command.AddrLine, Handler: conditionalHandler(false)},
		{Name: "x", Help: "for each match, run command", Flags: command.REGEX | command.REGEXDefault | command.COUNT | command.CMD | command.LOOP | command.ONCE, AddrDefault: command.AddrAll, Handler: iterateHandler(true)},
		{Name: "y", Help: "for each gap between matches, run command", Flags: command.REGEX | command.REGEXDefault | command.COUNT | command.CMD | command.LOOP | command.ONCE, AddrDefault: command.AddrAll, Handler: iterateHandler(false)},
		{Name: "X", Help: "for each window whose name matches, run command", Flags: command.REGEX | command.CMD | command.LOOP | command.ONCE, AddrDefault: command.AddrAll1Cursor, Handler: windowIterateHandler(true)},
		{Name: "Y", Help: "for each window whose name doesn't match, run command", Flags: command.REGEX | command.CMD | command.LOOP | command.ONCE, AddrDefault: command.AddrAll1Cursor, Handler: windowIterateHandler(false)},

		{Name: ">", Help: "pipe the address to a shell command's stdin", Flags: command.SHELL, AddrDefault: command.AddrLine, Handler: pipeOutHandler},
		{Name: "<", Help: "replace the address with a shell command's stdout", Flags: command.SHELL | command.DESTRUCTIVE, AddrDefault: command.AddrPos, Handler: pipeInHandler},
		{Name: "|", Help: "filter the address through a shell command", Flags: command.SHELL | command.DESTRUCTIVE, AddrDefault: command.AddrLine, Handler: pipeFilterHandler},
		{Name: "!", Help: "run a shell command", Flags: command.SHELL | command.ONCE, AddrDefault: command.AddrNone, Handler: bangHandler},

		{Name: "r", Help: "insert a file's contents after the address", Flags: command.ARGV | command.DESTRUCTIVE, AddrDefault: command.AddrAfter, Handler: readHandler},
		{Name: "w", Help: "write the address to a file", Flags: command.FORCE | command.ARGV | command.ONCE, AddrDefault: command.AddrAll, Handler: writeHandler},
	}
}

// editorCommands returns the `:`-style editor command table: file/window
// management, `set`, help, and key mapping (spec §4.7/§4.8).
func editorCommands() []*command.CommandDef {
	return []*command.CommandDef{
		{Name: "e", Help: "open a file in the current window", Flags: command.FORCE | command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: editHandler},
		{Name: "q", Help: "close the current window", Flags: command.FORCE | command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: quitHandler},
		{Name: "qall", Help: "close every window", Flags: command.FORCE | command.ONCE, AddrDefault: command.AddrNone, Handler: quitAllHandler},
		{Name: "wq", Help: "write then close the current window", Flags: command.FORCE | command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: writeQuitHandler},
		{Name: "cd", Help: "change the working directory", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: cdHandler},
		{Name: "open", Help: "open a file in a new window", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: openHandler(uiiface.LayoutSingle)},
		{Name: "split", Help: "open a file in a new horizontal window", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: openHandler(uiiface.LayoutHorizontal)},
		{Name: "vsplit", Help: "open a file in a new vertical window", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: openHandler(uiiface.LayoutVertical)},
		{Name: "new", Help: "open an empty horizontal window", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: emptyWindowHandler(uiiface.LayoutHorizontal)},
		{Name: "vnew", Help: "open an empty vertical window", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: emptyWindowHandler(uiiface.LayoutVertical)},
		{Name: "set", Help: "get or set an option", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: setHandler},
		{Name: "help", Help: "list commands or show one command's help", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: helpHandler},
		{Name: "map", Help: "bind a key sequence to a command", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: mapHandler},
		{Name: "unmap", Help: "remove a key binding", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: unmapHandler},
		{Name: "langmap", Help: "remap input characters before dispatch", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: langmapHandler},
		{Name: "earlier", Help: "step to an earlier state (unsupported)", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: undoStubHandler("earlier")},
		{Name: "later", Help: "step to a later state (unsupported)", Flags: command.ARGV | command.ONCE, AddrDefault: command.AddrNone, Handler: undoStubHandler("later")},
	}
}

// --- a / i / c / d / p / k -------------------------------------------------

func appendHandler(ctx command.Context, cmd *command.Command) error {
	return enqueueText(ctx, transcript.Insert, address.Range{Start: ctx.Range().End, End: ctx.Range().End}, cmd)
}

func insertHandler(ctx command.Context, cmd *command.Command) error {
	return enqueueText(ctx, transcript.Insert, address.Range{Start: ctx.Range().Start, End: ctx.Range().Start}, cmd)
}

func changeHandler(ctx command.Context, cmd *command.Command) error {
	return enqueueText(ctx, transcript.Change, ctx.Range(), cmd)
}

func enqueueText(ctx command.Context, kind transcript.Kind, rng address.Range, cmd *command.Command) error {
	count := cmd.TextCount
	if count <= 0 {
		count = 1
	}
	entry := &transcript.ChangeEntry{Kind: kind, Range: rng, Data: cmd.Text, Count: count, Window: ctx.Window()}
	if sel, ok := ctx.Selection(); ok {
		entry.Selection, entry.HasSel = sel, true
	}
	ctx.Transcript().Enqueue(entry)
	return nil
}

func deleteHandler(ctx command.Context, cmd *command.Command) error {
	entry := &transcript.ChangeEntry{Kind: transcript.Delete, Range: ctx.Range(), Window: ctx.Window(), Count: 1}
	if sel, ok := ctx.Selection(); ok {
		entry.Selection, entry.HasSel = sel, true
	}
	ctx.Transcript().Enqueue(entry)
	return nil
}

// printHandler creates or reshapes the bound selection to cover the
// address, anchoring it if the resulting range is non-empty (spec
// §4.7's `p`). Unlike a/i/c/d, this mutates view state immediately
// rather than through the deferred transcript, since selecting text is
// not itself a buffer edit.
func printHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	rng := iv.Range()

	sel, ok := iv.SelectionObj()
	if !ok {
		sel = iv.Win().CreateSelection(rng.Start, rng.Start)
	}
	if rng.Empty() {
		iv.Win().MoveCursor(sel.ID, rng.Start)
	} else {
		iv.Win().AnchorSelection(sel.ID, rng.Start, rng.End)
	}
	return nil
}

func markHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	name := byte('a')
	if len(cmd.Argv) > 0 && len(cmd.Argv[0]) > 0 {
		name = cmd.Argv[0][0]
	}
	f, _ := iv.Engine().File(ctx.Window())
	f.Marks().Set(name, iv.Ordinal(), ctx.Range())
	return nil
}

// selectHandler backs command.SelectDef: the synthetic node X/Y wrap
// their nested command in so a file-scoped match gets a selection over
// its default range before the real command runs (spec §4.5).
func selectHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	rng := iv.Range()
	sel := iv.Win().CreateSelection(rng.Start, rng.Start)
	if !rng.Empty() {
		iv.Win().AnchorSelection(sel.ID, rng.Start, rng.End)
	}
	if cmd.Child == nil {
		return nil
	}
	return iv.Recurse(cmd.Child, sel, rng)
}

// --- g / v ------------------------------------------------------------

func conditionalHandler(wantMatch bool) command.HandlerFunc {
	return func(ctx command.Context, cmd *command.Command) error {
		iv := ctxOf(ctx)
		rng := iv.Range()
		f, _ := iv.Engine().File(ctx.Window())

		matched := false
		if cmd.Regex != nil {
			if loc, ok := f.SearchForward(cmd.Regex, rng.Start); ok && loc.Start < rng.End {
				matched = true
			}
		}

		iteration := cmd.Advance()
		passesCount := !cmd.HasCount || cmd.Count.Matches(iteration)

		if matched == wantMatch && passesCount {
			if cmd.Child == nil {
				return nil
			}
			sel, _ := iv.SelectionObj()
			return iv.Recurse(cmd.Child, sel, rng)
		}
		if sel, ok := iv.SelectionObj(); ok {
			iv.Win().DisposeSelection(sel.ID)
		}
		return nil
	}
}

// --- x / y --------------------------------------------------------------

func iterateHandler(matches bool) command.HandlerFunc {
	return func(ctx command.Context, cmd *command.Command) error {
		iv := ctxOf(ctx)
		rng := iv.Range()
		f, _ := iv.Engine().File(ctx.Window())

		if cmd.Regex == nil {
			return recurseSpans(iv, cmd, lineSpans(f, rng), false, nil)
		}

		matchSpans := forwardMatches(f, cmd.Regex, rng)
		if matches {
			return recurseSpans(iv, cmd, matchSpans, true, f)
		}
		return recurseSpans(iv, cmd, gaps(rng, matchSpans), false, nil)
	}
}

// forwardMatches returns every non-overlapping forward match of re
// inside rng, advancing by one byte past an empty match and suppressing
// a trailing empty match exactly at rng.End when it follows a newline
// (spec §4.7's x/y edge cases).
func forwardMatches(f *text.File, re *regexp.Regexp, rng address.Range) []address.Range {
	var out []address.Range
	pos := rng.Start
	for pos <= rng.End {
		m, ok := f.SearchForward(re, pos)
		if !ok || m.Start > rng.End || (m.Start == rng.End && m.End > m.Start) {
			break
		}
		if m.End > rng.End {
			m.End = rng.End
		}
		if m.Start == m.End && m.Start == rng.End && m.Start > rng.Start && f.ByteAt(m.Start-1) == '\n' {
			break
		}
		out = append(out, m)
		if m.End == m.Start {
			pos = m.End + 1
		} else {
			pos = m.End
		}
	}
	return out
}

func gaps(rng address.Range, matches []address.Range) []address.Range {
	out := make([]address.Range, 0, len(matches)+1)
	cursor := rng.Start
	for _, m := range matches {
		out = append(out, address.Range{Start: cursor, End: m.Start})
		cursor = m.End
	}
	out = append(out, address.Range{Start: cursor, End: rng.End})
	return out
}

func lineSpans(f *text.File, rng address.Range) []address.Range {
	var out []address.Range
	pos := rng.Start
	for pos < rng.End {
		n := f.LineAt(pos)
		end := f.LineStart(n + 1)
		if end > rng.End {
			end = rng.End
		}
		out = append(out, address.Range{Start: pos, End: end})
		if end <= pos {
			break
		}
		pos = end
	}
	return out
}

// recurseSpans drives cmd.Child once per span, honouring cmd's COUNT
// filter on the 1-based span index. When capture is true, each span's
// bytes are filled into the numbered registers before recursing, per
// spec §4.7's x "fills $0..$9 per match".
func recurseSpans(iv *executor.Invocation, cmd *command.Command, spans []address.Range, capture bool, f *text.File) error {
	if cmd.Child == nil {
		return nil
	}
	i := 0
	for _, r := range spans {
		i++
		if cmd.HasCount && !cmd.Count.Matches(i) {
			continue
		}
		if capture {
			data := f.Bytes(r)
			loc := cmd.Regex.FindSubmatchIndex(data)
			if loc == nil || loc[0] != 0 || loc[1] != len(data) {
				loc = []int{0, len(data)}
			}
			iv.Engine().Registers.PutRange(data, loc)
		}
		if err := iv.Recurse(cmd.Child, nil, r); err != nil {
			return err
		}
	}
	return nil
}

// --- X / Y --------------------------------------------------------------

func windowIterateHandler(wantMatch bool) command.HandlerFunc {
	return func(ctx command.Context, cmd *command.Command) error {
		iv := ctxOf(ctx)
		eng := iv.Engine()
		if cmd.Child == nil {
			return nil
		}
		for _, id := range eng.WindowIDs() {
			f, ok := eng.File(id)
			if !ok {
				continue
			}
			matched := cmd.Regex != nil && cmd.Regex.MatchString(f.Name)
			if matched != wantMatch {
				continue
			}
			if err := eng.RunInWindow(id, cmd.Child, iv.Stream()); err != nil {
				return err
			}
		}
		return nil
	}
}

// --- pipe commands --------------------------------------------------------

func pipeOutHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	f, _ := iv.Engine().File(ctx.Window())
	data := f.Bytes(ctx.Range())
	var out bytes.Buffer
	if _, err := iv.Pipe(shellArgv(cmd), data, sinkTo(&out), nil); err != nil {
		return err
	}
	iv.Info("%s", out.String())
	return nil
}

func pipeInHandler(ctx command.Context, cmd *command.Command) error {
	var out bytes.Buffer
	if _, err := ctxOf(ctx).Pipe(shellArgv(cmd), nil, sinkTo(&out), nil); err != nil {
		return err
	}
	entry := &transcript.ChangeEntry{Kind: transcript.Change, Range: ctx.Range(), Data: out.Bytes(), Count: 1, Window: ctx.Window()}
	if sel, ok := ctx.Selection(); ok {
		entry.Selection, entry.HasSel = sel, true
	}
	ctx.Transcript().Enqueue(entry)
	return nil
}

func pipeFilterHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	f, _ := iv.Engine().File(ctx.Window())
	data := f.Bytes(ctx.Range())
	var out bytes.Buffer
	if _, err := iv.Pipe(shellArgv(cmd), data, sinkTo(&out), nil); err != nil {
		return err
	}
	entry := &transcript.ChangeEntry{Kind: transcript.Change, Range: ctx.Range(), Data: out.Bytes(), Count: 1, Window: ctx.Window()}
	if sel, ok := ctx.Selection(); ok {
		entry.Selection, entry.HasSel = sel, true
	}
	ctx.Transcript().Enqueue(entry)
	return nil
}

func bangHandler(ctx command.Context, cmd *command.Command) error {
	var out bytes.Buffer
	if _, err := ctxOf(ctx).Pipe(shellArgv(cmd), nil, sinkTo(&out), nil); err != nil {
		return err
	}
	ctx.Info("%s", out.String())
	return nil
}

// sinkTo adapts a *bytes.Buffer to the func([]byte) shape Pipe's
// stdout/stderr callbacks require.
func sinkTo(buf *bytes.Buffer) func([]byte) {
	return func(b []byte) { buf.Write(b) }
}

func shellArgv(cmd *command.Command) []string {
	if cmd.ShellRaw == "" {
		return []string{"true"}
	}
	return []string{cmd.ShellRaw}
}

// --- file/window management -----------------------------------------------

func readHandler(ctx command.Context, cmd *command.Command) error {
	if len(cmd.Argv) == 0 {
		return fmt.Errorf("r: missing file name")
	}
	data, err := os.ReadFile(cmd.Argv[0])
	if err != nil {
		return err
	}
	entry := &transcript.ChangeEntry{Kind: transcript.Insert, Range: address.Range{Start: ctx.Range().End, End: ctx.Range().End}, Data: data, Count: 1, Window: ctx.Window()}
	if sel, ok := ctx.Selection(); ok {
		entry.Selection, entry.HasSel = sel, true
	}
	ctx.Transcript().Enqueue(entry)
	return nil
}

func writeHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	f, _ := iv.Engine().File(ctx.Window())

	path := f.Name
	if len(cmd.Argv) > 0 {
		path = cmd.Argv[0]
	}

	if !cmd.Force && path == f.Name {
		if info, err := os.Stat(path); err == nil {
			_, ourTime := f.Stat()
			if info.ModTime().After(ourTime) {
				return fmt.Errorf("w: %s modified on disk since last read; use w! to override", path)
			}
		}
	}

	if err := f.SaveBegin(path); err != nil {
		return err
	}
	if err := f.WriteRange(ctx.Range()); err != nil {
		f.Cancel()
		return err
	}
	if err := f.Commit(); err != nil {
		return err
	}
	iv.Info("wrote %s", path)
	return nil
}

func editHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	eng := iv.Engine()
	f, _ := eng.File(ctx.Window())
	if f.Modified() && !cmd.Force {
		return fmt.Errorf("e: %s has unsaved changes; use e! to discard", f.Name)
	}
	if len(cmd.Argv) == 0 {
		return fmt.Errorf("e: missing file name")
	}
	data, err := os.ReadFile(cmd.Argv[0])
	if err != nil {
		return err
	}
	old := ctx.Window()
	id := eng.Open(cmd.Argv[0], data)
	eng.Focus(id)
	eng.Close(old)
	return nil
}

func quitHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	eng := iv.Engine()
	f, _ := eng.File(ctx.Window())
	if f.Modified() && !cmd.Force {
		return fmt.Errorf("q: %s has unsaved changes; use q! to discard", f.Name)
	}
	code := 0
	if len(cmd.Argv) > 0 {
		if n, err := strconv.Atoi(cmd.Argv[0]); err == nil {
			code = n
		}
	}
	eng.Close(ctx.Window())
	eng.ExitCode = code
	return nil
}

func quitAllHandler(ctx command.Context, cmd *command.Command) error {
	eng := ctxOf(ctx).Engine()
	if !cmd.Force {
		for _, id := range eng.WindowIDs() {
			if f, ok := eng.File(id); ok && f.Modified() {
				return fmt.Errorf("qall: %s has unsaved changes; use qall! to discard", f.Name)
			}
		}
	}
	for _, id := range eng.WindowIDs() {
		eng.Close(id)
	}
	eng.ShouldExit = true
	return nil
}

func writeQuitHandler(ctx command.Context, cmd *command.Command) error {
	if err := writeHandler(ctx, cmd); err != nil {
		return err
	}
	return quitHandler(ctx, cmd)
}

func cdHandler(ctx command.Context, cmd *command.Command) error {
	dir := os.Getenv("HOME")
	if len(cmd.Argv) > 0 {
		dir = cmd.Argv[0]
	}
	return os.Chdir(dir)
}

func openHandler(layout uiiface.Layout) command.HandlerFunc {
	return func(ctx command.Context, cmd *command.Command) error {
		iv := ctxOf(ctx)
		eng := iv.Engine()
		if len(cmd.Argv) == 0 {
			return fmt.Errorf("open: missing file name")
		}
		data, err := os.ReadFile(cmd.Argv[0])
		if err != nil {
			return err
		}
		id := eng.Open(cmd.Argv[0], data)
		eng.Focus(id)
		eng.UI.Arrange(layout)
		return nil
	}
}

func emptyWindowHandler(layout uiiface.Layout) command.HandlerFunc {
	return func(ctx command.Context, cmd *command.Command) error {
		eng := ctxOf(ctx).Engine()
		name := "scratch"
		if len(cmd.Argv) > 0 {
			name = cmd.Argv[0]
		}
		id := eng.Open(name, nil)
		eng.Focus(id)
		eng.UI.Arrange(layout)
		return nil
	}
}

// --- set / help / map / unmap / langmap ------------------------------------

func setHandler(ctx command.Context, cmd *command.Command) error {
	return applyOption(ctxOf(ctx), cmd.Argv)
}

func helpHandler(ctx command.Context, cmd *command.Command) error {
	iv := ctxOf(ctx)
	defs := iv.Engine().Registry.Help()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	if len(cmd.Argv) > 0 {
		for _, d := range defs {
			if d.Name == cmd.Argv[0] {
				iv.Info("%s: %s", d.Name, d.Help)
				return nil
			}
		}
		return fmt.Errorf("help: no such command %q", cmd.Argv[0])
	}
	var b strings.Builder
	for _, d := range defs {
		fmt.Fprintf(&b, "%s\t%s\n", d.Name, d.Help)
	}
	iv.Info("%s", b.String())
	return nil
}

func mapHandler(ctx command.Context, cmd *command.Command) error {
	if len(cmd.Argv) < 3 {
		return fmt.Errorf("map: usage: map mode lhs rhs")
	}
	eng := ctxOf(ctx).Engine()
	mode, lhs, rhs := cmd.Argv[0], cmd.Argv[1], strings.Join(cmd.Argv[2:], " ")
	if eng.Keymap[mode] == nil {
		eng.Keymap[mode] = map[string]string{}
	}
	eng.Keymap[mode][lhs] = rhs
	return nil
}

func unmapHandler(ctx command.Context, cmd *command.Command) error {
	if len(cmd.Argv) < 2 {
		return fmt.Errorf("unmap: usage: unmap mode lhs")
	}
	eng := ctxOf(ctx).Engine()
	if m := eng.Keymap[cmd.Argv[0]]; m != nil {
		delete(m, cmd.Argv[1])
	}
	return nil
}

func langmapHandler(ctx command.Context, cmd *command.Command) error {
	if len(cmd.Argv) != 2 || len(cmd.Argv[0]) != len(cmd.Argv[1]) {
		return fmt.Errorf("langmap: usage: langmap fromchars tochars (equal length)")
	}
	eng := ctxOf(ctx).Engine()
	if eng.Langmap == nil {
		eng.Langmap = map[rune]rune{}
	}
	from, to := []rune(cmd.Argv[0]), []rune(cmd.Argv[1])
	for i := range from {
		eng.Langmap[from[i]] = to[i]
	}
	return nil
}

func undoStubHandler(name string) command.HandlerFunc {
	return func(ctx command.Context, cmd *command.Command) error {
		ctx.Info("%s: persistent undo is out of scope for this engine", name)
		return nil
	}
}
