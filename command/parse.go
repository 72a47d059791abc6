package command

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/arena"
	"monogrammedchalk.com/samctl/lexer"
)

// ParseError carries the token that caused a parse failure, so callers
// can render a caret (spec §7's "syntax errors point at the token").
type ParseError struct {
	Tok lexer.Token
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func errAt(tok lexer.Token, format string, args ...any) error {
	return &ParseError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

// ParseCommand parses one command occurrence at ts's cursor: an optional
// leading address, then either a `{…}` group or a name token resolved
// through reg, then that command's own flag-driven arguments (spec
// §4.5). Nodes are allocated into nodes so the whole tree shares one
// per-invocation arena lifetime (spec §4.1). It does not consume
// anything past its own command; callers chain returned nodes via
// Command.Next for group bodies and top-level sequences.
func ParseCommand(ts *lexer.TokenStream, reg *Registry, nodes *arena.Arena[Command]) (*Command, error) {
	addr, hasAddr, err := address.Parse(ts)
	if err != nil {
		return nil, err
	}

	if ts.Peek().Kind == lexer.GroupStart {
		return parseGroup(ts, reg, nodes, addr, hasAddr)
	}

	nameTok := ts.Peek()
	if nameTok.Kind != lexer.String {
		return nil, errAt(nameTok, "expected command, found %s", nameTok.Kind)
	}
	ts.Pop()
	name := ts.Literal(nameTok)

	def, err := reg.Lookup(name)
	if err != nil {
		return nil, errAt(nameTok, "%v", err)
	}
	if def.AddrDefault == AddrNone && hasAddr {
		return nil, errAt(nameTok, "command %q takes no address", name)
	}

	cmd, err := parseArgs(ts, reg, nodes, def)
	if err != nil {
		return nil, err
	}
	cmd.Address = addr
	cmd.HasAddr = hasAddr
	return cmd, nil
}

// parseGroup parses a `{` … `}` group: a balanced run of sibling commands
// that share the address already parsed for the group (spec §4.6 rules
// 1/2).
func parseGroup(ts *lexer.TokenStream, reg *Registry, nodes *arena.Arena[Command], addr address.Address, hasAddr bool) (*Command, error) {
	open := ts.Pop() // GroupStart

	idx := nodes.Push(Command{Def: GroupDef, Address: addr, HasAddr: hasAddr, ParentIndex: -1})
	group := nodes.At(idx)

	var head, tail *Command
	for {
		t := ts.Peek()
		if t.Kind == lexer.GroupEnd {
			ts.Pop()
			break
		}
		if t.Kind == lexer.EOF {
			return nil, errAt(open, "unbalanced group")
		}
		child, err := ParseCommand(ts, reg, nodes)
		if err != nil {
			return nil, err
		}
		child.ParentIndex = idx
		if head == nil {
			head = child
		} else {
			tail.Next = child
		}
		tail = child
	}
	group.Child = head
	return group, nil
}

// parseArgs consumes def's flag-driven arguments, in the fixed order
// spec §4.5 gives: FORCE, TEXT, SHELL, COUNT, REGEX, CMD, ARGV.
func parseArgs(ts *lexer.TokenStream, reg *Registry, nodes *arena.Arena[Command], def *CommandDef) (*Command, error) {
	idx := nodes.Push(Command{Def: def, ParentIndex: -1})
	cmd := nodes.At(idx)

	if def.Flags.Has(FORCE) {
		if t := ts.Peek(); t.Kind == lexer.Delimiter && t.IsDelimiter(ts.Line(), "!") {
			ts.Pop()
			cmd.Force = true
		}
	}

	if def.Flags.Has(TEXT) {
		count := 1
		if t := ts.Peek(); t.Kind == lexer.Number {
			n, err := strconv.Atoi(ts.Literal(t))
			if err != nil {
				return nil, errAt(t, "invalid count %q", ts.Literal(t))
			}
			count = n
			ts.Pop()
		}
		open := ts.Pop()
		if open.Kind != lexer.Delimiter {
			return nil, errAt(open, "expected delimited text")
		}
		text, ok := ts.ReadDelimited(open)
		if !ok {
			return nil, errAt(open, "unterminated text")
		}
		cmd.Text = []byte(text)
		cmd.TextCount = count
	}

	if def.Flags.Has(SHELL) {
		cmd.ShellRaw = readRestOfLine(ts)
	}

	if def.Flags.Has(COUNT) {
		spec, found, err := parseCount(ts)
		if err != nil {
			return nil, err
		}
		cmd.Count = spec
		cmd.HasCount = found
	}

	if def.Flags.Has(REGEX) {
		t := ts.Peek()
		if t.Kind == lexer.Delimiter && t.IsDelimiter(ts.Line(), "/") {
			ts.Pop()
			pat, ok := ts.ReadDelimited(t)
			if !ok {
				return nil, errAt(t, "expected regular expression")
			}
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, errAt(t, "expected regular expression: %v", err)
			}
			cmd.Regex = re
		} else if !def.Flags.Has(REGEXDefault) {
			return nil, errAt(t, "expected regular expression")
		}
	}

	if def.Flags.Has(CMD) {
		child, err := ParseCommand(ts, reg, nodes)
		if err != nil {
			return nil, err
		}
		if def.Name == "X" || def.Name == "Y" {
			selIdx := nodes.Push(Command{Def: SelectDef, ParentIndex: idx})
			sel := nodes.At(selIdx)
			sel.Child = child
			child.ParentIndex = selIdx
			cmd.Child = sel
		} else {
			child.ParentIndex = idx
			cmd.Child = child
		}
	}

	if def.Flags.Has(ARGV) {
		argv, err := parseArgv(ts)
		if err != nil {
			return nil, err
		}
		cmd.Argv = argv
	}

	return cmd, nil
}

// parseCount parses the COUNT argument, per spec §4.5: `%n` (mod form),
// or `n`/`n,m` (inclusive range; m defaults to MaxInt when omitted and n
// is nonzero, else 0). found reports whether a count token was actually
// present, so callers can tell "no count given" (every iteration passes)
// from "count 0" (CountSpec{}'s own zero value).
func parseCount(ts *lexer.TokenStream) (spec CountSpec, found bool, err error) {
	t := ts.Peek()
	if t.Kind == lexer.Delimiter && t.IsDelimiter(ts.Line(), "%") {
		ts.Pop()
		n := ts.Peek()
		if n.Kind != lexer.Number {
			return CountSpec{}, false, errAt(n, "expected count after %%")
		}
		ts.Pop()
		val, err := strconv.Atoi(ts.Literal(n))
		if err != nil {
			return CountSpec{}, false, errAt(n, "invalid count %q", ts.Literal(n))
		}
		return CountSpec{Start: val, End: val, Mod: true}, true, nil
	}

	if t.Kind != lexer.Number {
		return CountSpec{}, false, nil
	}
	ts.Pop()
	start, err := strconv.Atoi(ts.Literal(t))
	if err != nil {
		return CountSpec{}, false, errAt(t, "invalid count %q", ts.Literal(t))
	}

	end := 0
	if start != 0 {
		end = math.MaxInt
	}
	if c := ts.Peek(); c.Kind == lexer.Delimiter && c.IsDelimiter(ts.Line(), ",") {
		ts.Pop()
		m := ts.Peek()
		if m.Kind != lexer.Number {
			return CountSpec{}, false, errAt(m, "expected end of count range")
		}
		ts.Pop()
		end, err = strconv.Atoi(ts.Literal(m))
		if err != nil {
			return CountSpec{}, false, errAt(m, "invalid count %q", ts.Literal(m))
		}
	}
	return CountSpec{Start: start, End: end}, true, nil
}

func isArgSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// readRestOfLine consumes every remaining token and returns the raw bytes
// of the line from the cursor's current byte offset to EOL, for the
// SHELL flag's "remainder of the line" rule.
func readRestOfLine(ts *lexer.TokenStream) string {
	start := ts.Peek().Start
	for !ts.AtEnd() {
		ts.Pop()
	}
	return strings.TrimSpace(string(ts.Line()[start:]))
}

// parseArgv scans a whitespace-separated argv list from the raw line,
// honoring single/double-quote grouping for values containing spaces
// (spec §4.5's ARGV flag). It bypasses the pre-lexed tokens the same way
// ReadDelimited does, since the lexer has no concept of quoting.
func parseArgv(ts *lexer.TokenStream) ([]string, error) {
	line := ts.Line()
	i := ts.Peek().Start

	var argv []string
	for i < len(line) {
		for i < len(line) && isArgSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			break
		}

		var b strings.Builder
		if line[i] == '\'' || line[i] == '"' {
			q := line[i]
			i++
			for i < len(line) && line[i] != q {
				b.WriteByte(line[i])
				i++
			}
			if i >= len(line) {
				return nil, fmt.Errorf("unterminated quoted argument")
			}
			i++
		} else {
			for i < len(line) && !isArgSpace(line[i]) {
				b.WriteByte(line[i])
				i++
			}
		}
		argv = append(argv, b.String())
	}

	for !ts.AtEnd() && ts.Peek().Start < i {
		ts.Pop()
	}
	return argv, nil
}
