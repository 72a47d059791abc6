package lexer

import "monogrammedchalk.com/samctl/arena"

// isSpace reports whether b is ASCII whitespace. The lexer deliberately
// operates on bytes, not runes (spec §4.2: "lexing operates on bytes"), so a
// command line containing multi-byte UTF-8 outside of TEXT/SHELL/ARGV
// payloads is still tokenized correctly because none of UTF-8's continuation
// bytes collide with ASCII whitespace, digits, or the delimiter set.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func indexByte(set string, b byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == b {
			return true
		}
	}
	return false
}

// Lex tokenizes line, pushing every produced Token onto toks, and returns a
// TokenStream ready for the parser to consume. The lexer never reports
// errors (spec §4.2) and never emits Invalid tokens: malformed input
// surfaces downstream as parser errors with a caret into this same line.
func Lex(toks *arena.Arena[Token], line []byte) *TokenStream {
	pos := 0
	accStart := -1

	flush := func() {
		if accStart >= 0 {
			toks.Push(Token{Kind: String, Start: accStart, Length: pos - accStart})
			accStart = -1
		}
	}

	for pos < len(line) {
		b := line[pos]
		switch {
		case isSpace(b):
			flush()
			pos++

		case isDigit(b):
			flush()
			start := pos
			for pos < len(line) && isDigit(line[pos]) {
				pos++
			}
			toks.Push(Token{Kind: Number, Start: start, Length: pos - start})

		case b == '{':
			flush()
			toks.Push(Token{Kind: GroupStart, Start: pos, Length: 1})
			pos++

		case b == '}':
			flush()
			toks.Push(Token{Kind: GroupEnd, Start: pos, Length: 1})
			pos++

		case accStart < 0 && indexByte(PipeBytes, b):
			toks.Push(Token{Kind: String, Start: pos, Length: 1})
			pos++

		case indexByte(DelimiterBytes, b):
			flush()
			toks.Push(Token{Kind: Delimiter, Start: pos, Length: 1})
			pos++
			// A mark-introducing delimiter takes exactly the next byte as
			// its mark name, bypassing the generic dispatch for that one
			// byte (spec §9).
			if b == '\'' && pos < len(line) {
				toks.Push(Token{Kind: Mark, Start: pos, Length: 1})
				pos++
			}

		default:
			if accStart < 0 {
				accStart = pos
			}
			pos++
		}
	}
	flush()

	return NewTokenStream(line, toks.Slice())
}
