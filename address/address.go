// Package address implements sam's address algebra (spec §4.3): the
// left/right-side grammar parsed around a ',' ';' '+' '-' combiner, and its
// evaluation against a cursor's current range. Ported in the teacher's
// accumulator-and-token style (monogrammedchalk.com/glitter/lexer,
// monogrammedchalk.com/glitter/parser) but over sam's grammar instead of
// glitter's '@'-command grammar.
package address

import "regexp"

// Range is an inclusive-exclusive byte range [Start, End) over a file's
// text, per spec §3.
type Range struct {
	Start, End int
}

// Empty reports whether the range contains no bytes.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// SideKind tags the variant held by a Side, per spec §3's AddressSide.
type SideKind string

const (
	Invalid       SideKind = "INVALID"
	SideByte      SideKind = "BYTE"
	SideChar      SideKind = "CHAR"
	SideLine      SideKind = "LINE"
	SideMark      SideKind = "MARK"
	SideRegexFwd  SideKind = "REGEX_FWD"
	SideRegexBack SideKind = "REGEX_BACK"
)

// Side is a tagged variant of one side of an Address, per spec §3.
type Side struct {
	Kind  SideKind
	Byte  int            // SideByte
	Ch    byte           // SideChar: one of '$', '.', '%'
	Line  int            // SideLine
	Mark  byte           // SideMark
	Regex *regexp.Regexp // SideRegexFwd / SideRegexBack
}

// Address is (left, delim, right); missing sides default per the combiner
// (spec §4.3).
type Address struct {
	Left     Side
	HasLeft  bool
	Delim    byte // one of ',' ';' '+' '-', or 0 when no combiner was typed
	HasRight bool
	Right    Side
}

// Present reports whether any address at all was parsed (as opposed to the
// command consuming the default address for its command-def flags).
func (a Address) Present() bool {
	return a.HasLeft || a.HasRight || a.Delim != 0
}

// Context is the minimal view over a file and a single selection ordinal
// that address evaluation needs. A concrete engine wires its text buffer,
// window, and mark table into an implementation of this interface (see
// executor.addrContext); address itself never depends on those packages,
// which keeps the address algebra testable in isolation.
type Context interface {
	// Size returns the number of bytes in the file.
	Size() int

	// LineStart returns the byte offset at which line n starts (1-based).
	// LineStart(0) is 0. A value beyond the last line returns Size().
	LineStart(n int) int

	// LineAt returns the 1-based line number containing byte offset pos.
	LineAt(pos int) int

	// SearchForward returns the first match of re at or after from.
	SearchForward(re *regexp.Regexp, from int) (Range, bool)

	// SearchBackward returns the first match of re ending at or before
	// upto, preferring the closest match to upto.
	SearchBackward(re *regexp.Regexp, upto int) (Range, bool)

	// Mark resolves the mark named id for the ordinal-th selection.
	Mark(id byte, ordinal int) (Range, bool)
}
