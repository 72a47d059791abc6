package lexer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// TokenStream is the ordered token sequence produced by Lex plus a read
// cursor, per spec §3. It retains the original raw line so error messages
// can point a caret at the offending byte range, the same way the teacher's
// Lexer carries a scanner.Position back to lexError.
type TokenStream struct {
	line   []byte
	tokens []Token
	pos    int
}

// NewTokenStream wraps tokens lexed from line. Reads are non-destructive:
// Peek/PeekAt never advance the cursor, only Pop does.
func NewTokenStream(line []byte, tokens []Token) *TokenStream {
	return &TokenStream{line: line, tokens: tokens}
}

// Line returns the raw command line the stream was lexed from.
func (ts *TokenStream) Line() []byte {
	return ts.line
}

// Pos returns the current read cursor (index into the token slice).
func (ts *TokenStream) Pos() int {
	return ts.pos
}

// SetPos rewinds or fast-forwards the cursor, e.g. to backtrack a tentative
// parse.
func (ts *TokenStream) SetPos(pos int) {
	ts.pos = pos
}

// Len returns the total number of tokens in the stream.
func (ts *TokenStream) Len() int {
	return len(ts.tokens)
}

// AtEnd reports whether the cursor has consumed every token.
func (ts *TokenStream) AtEnd() bool {
	return ts.pos >= len(ts.tokens)
}

// Peek returns the token at the cursor without advancing it, or an EOF
// token if the stream is exhausted.
func (ts *TokenStream) Peek() Token {
	return ts.PeekAt(0)
}

// PeekAt returns the token n positions ahead of the cursor without
// advancing it, or an EOF token past the end.
func (ts *TokenStream) PeekAt(n int) Token {
	i := ts.pos + n
	if i < 0 || i >= len(ts.tokens) {
		end := len(ts.line)
		if len(ts.tokens) > 0 {
			end = ts.tokens[len(ts.tokens)-1].End()
		}
		return Token{Kind: EOF, Start: end, Length: 0}
	}
	return ts.tokens[i]
}

// Pop returns the token at the cursor and advances past it.
func (ts *TokenStream) Pop() Token {
	t := ts.Peek()
	if !ts.AtEnd() {
		ts.pos++
	}
	return t
}

// Literal returns the text denoted by t, resolved against this stream's raw
// line.
func (ts *TokenStream) Literal(t Token) string {
	return t.Literal(ts.line)
}

// Join concatenates the literal text of every token from the cursor up to
// (but not including) the first token that is neither a String, a Number,
// nor a Delimiter outside stopSet, consuming the tokens it joins: a
// Delimiter listed in stopSet ends the join. This is
// the generalization of the teacher's practice of gluing adjacent
// non-space tokens into one identifier (spec §9) before consulting the
// command registry.
func (ts *TokenStream) Join(stopSet string) string {
	var b strings.Builder
	for !ts.AtEnd() {
		t := ts.Peek()
		switch t.Kind {
		case String, Number:
			b.WriteString(ts.Literal(t))
			ts.Pop()
		case Delimiter:
			if t.IsDelimiter(ts.line, stopSet) {
				return b.String()
			}
			b.WriteString(ts.Literal(t))
			ts.Pop()
		default:
			return b.String()
		}
	}
	return b.String()
}

// ReadDelimited scans a delimited literal (a regex pattern or TEXT payload)
// directly out of the raw line, starting right after the already-popped
// open delimiter token. This bypasses the generic one-pass tokenization the
// same way the teacher's readQuoteString/readImplictString bypass its
// generic dispatch: a delimited literal may contain the lexer's own
// delimiter bytes escaped with a backslash, which the generic single-pass
// scan has no way to know about ahead of time.
//
// Recognized escapes are \n, \t, \\, and a backslash followed by the
// delimiter itself (spec §4.5); any other backslash sequence is passed
// through literally. ReadDelimited fast-forwards the stream's cursor past
// every pre-lexed token fully covered by the consumed span, so parsing can
// resume with Peek/Pop immediately after the closing delimiter. ok is false
// if the line ends before a closing delimiter is found.
func (ts *TokenStream) ReadDelimited(open Token) (content string, ok bool) {
	if open.Length != 1 {
		return "", false
	}
	delim := open.FirstByte(ts.line)
	var b strings.Builder
	i := open.End()
	for i < len(ts.line) {
		c := ts.line[i]
		if c == '\\' && i+1 < len(ts.line) {
			switch ts.line[i+1] {
			case 'n':
				b.WriteByte('\n')
				i += 2
				continue
			case 't':
				b.WriteByte('\t')
				i += 2
				continue
			case '\\':
				b.WriteByte('\\')
				i += 2
				continue
			default:
				if ts.line[i+1] == delim {
					b.WriteByte(delim)
					i += 2
					continue
				}
			}
			b.WriteByte(c)
			i++
			continue
		}
		if c == delim {
			ts.resync(i + 1)
			return b.String(), true
		}
		b.WriteByte(c)
		i++
	}
	ts.resync(i)
	return b.String(), false
}

// resync advances the cursor to the first pre-lexed token starting at or
// after byte offset p, so later Peek/Pop calls don't re-observe tokens that
// ReadDelimited already consumed raw bytes through.
func (ts *TokenStream) resync(p int) {
	for ts.pos < len(ts.tokens) && ts.tokens[ts.pos].Start < p {
		ts.pos++
	}
}

// Validate reports whether the stream has balanced group braces and no
// Invalid tokens (spec §8 "Balanced groups").
func (ts *TokenStream) Validate() bool {
	depth := 0
	for _, t := range ts.tokens {
		switch t.Kind {
		case Invalid:
			return false
		case GroupStart:
			depth++
		case GroupEnd:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// runeCells returns the on-screen column width of r: 2 for East Asian
// wide/fullwidth runes, 1 for everything else. Used so the caret still
// lines up under the token when the command line mixes wide CJK text with
// ASCII command syntax.
func runeCells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Caret renders a two-line "line\n   ^~~~" pointer into the offending
// token's byte range, per spec §6/§7 ("Errors emitted to a log buffer with
// pointer caret into the offending position"). Column offsets account for
// tabs (passed through verbatim so terminal tab stops still line up) and
// for wide runes (via golang.org/x/text/width) so the caret still lands
// under the right byte range when the line mixes CJK text with ASCII
// command syntax.
func (ts *TokenStream) Caret(t Token) string {
	var b strings.Builder
	b.Write(ts.line)
	b.WriteByte('\n')

	for i := 0; i < t.Start; {
		r, n := utf8.DecodeRune(ts.line[i:])
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			for c := 0; c < runeCells(r); c++ {
				b.WriteByte(' ')
			}
		}
		i += n
	}

	cells := 0
	for i := t.Start; i < t.End() && i < len(ts.line); {
		r, n := utf8.DecodeRune(ts.line[i:])
		cells += runeCells(r)
		i += n
	}
	if cells < 1 {
		cells = 1
	}
	b.WriteByte('^')
	for i := 1; i < cells; i++ {
		b.WriteByte('~')
	}
	return b.String()
}
