package address

import (
	"fmt"
	"regexp"
	"strconv"

	"monogrammedchalk.com/samctl/lexer"
)

// sideIntroducers are the Delimiter bytes that can open an address side, as
// opposed to ',' ';' '+' '-' which combine two sides together.
const sideIntroducers = "#'/?$.%"

// combinerBytes are the four valid address combiners, per spec §4.3.
const combinerBytes = ",;+-"

// ParseError carries the token that caused a parse failure so callers can
// render a caret (spec §7).
type ParseError struct {
	Tok lexer.Token
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func errAt(tok lexer.Token, format string, args ...any) error {
	return &ParseError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

// startsSide reports whether t can open an address side.
func startsSide(t lexer.Token, line []byte) bool {
	if t.Kind == lexer.Number {
		return true
	}
	if t.Kind == lexer.Delimiter {
		return t.IsDelimiter(line, sideIntroducers)
	}
	return false
}

// Parse consumes zero, one, or two sides around an optional combiner from
// ts, per spec §4.3. present is false if no address at all was found at the
// cursor (the caller should fall back to the command's default range).
func Parse(ts *lexer.TokenStream) (addr Address, present bool, err error) {
	if startsSide(ts.Peek(), ts.Line()) {
		addr.Left, err = parseSide(ts)
		if err != nil {
			return Address{}, false, err
		}
		addr.HasLeft = true
	}

	if t := ts.Peek(); t.Kind == lexer.Delimiter && t.IsDelimiter(ts.Line(), combinerBytes) {
		addr.Delim = t.FirstByte(ts.Line())
		ts.Pop()
	}

	if t := ts.Peek(); t.Kind == lexer.Number || t.Kind == lexer.Delimiter {
		addr.Right, err = parseSide(ts)
		if err != nil {
			return Address{}, false, err
		}
		addr.HasRight = true
	}

	if !addr.HasLeft && addr.Delim == 0 && !addr.HasRight {
		return Address{}, false, nil
	}
	return addr, true, nil
}

// parseSide consumes a single address side, per the side grammar in spec
// §4.3 and §6's EBNF.
func parseSide(ts *lexer.TokenStream) (Side, error) {
	t := ts.Pop()

	if t.Kind == lexer.Number {
		n, err := strconv.Atoi(ts.Literal(t))
		if err != nil {
			return Side{}, errAt(t, "invalid line number %q", ts.Literal(t))
		}
		return Side{Kind: SideLine, Line: n}, nil
	}

	if t.Kind != lexer.Delimiter {
		return Side{}, errAt(t, "expected address, found %s", t.Kind)
	}

	switch t.FirstByte(ts.Line()) {
	case '#':
		n := ts.Peek()
		if n.Kind != lexer.Number {
			return Side{}, errAt(n, "expected byte position")
		}
		ts.Pop()
		val, err := strconv.Atoi(ts.Literal(n))
		if err != nil {
			return Side{}, errAt(n, "invalid byte position %q", ts.Literal(n))
		}
		return Side{Kind: SideByte, Byte: val}, nil

	case '\'':
		m := ts.Peek()
		if m.Kind != lexer.Mark {
			return Side{}, errAt(m, "expected mark")
		}
		ts.Pop()
		return Side{Kind: SideMark, Mark: m.FirstByte(ts.Line())}, nil

	case '/':
		pat, ok := ts.ReadDelimited(t)
		if !ok {
			return Side{}, errAt(t, "expected regular expression")
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return Side{}, errAt(t, "expected regular expression: %v", err)
		}
		return Side{Kind: SideRegexFwd, Regex: re}, nil

	case '?':
		pat, ok := ts.ReadDelimited(t)
		if !ok {
			return Side{}, errAt(t, "expected regular expression")
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return Side{}, errAt(t, "expected regular expression: %v", err)
		}
		return Side{Kind: SideRegexBack, Regex: re}, nil

	case '$', '.', '%':
		return Side{Kind: SideChar, Ch: t.FirstByte(ts.Line())}, nil
	}

	return Side{}, errAt(t, "unexpected delimiter %q in address", string(t.FirstByte(ts.Line())))
}
