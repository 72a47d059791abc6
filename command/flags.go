// Package command implements the builtin/user command registry (spec
// §4.4) and the per-command argument parser (spec §4.5) that turns a
// resolved CommandDef plus the remaining TokenStream into a Command tree
// node. It is deliberately decoupled from executor/handlers/text/view —
// Context is a narrow interface those packages satisfy later, the same
// pattern address.Context uses to stay independent of view/marks.
package command

// Flag is a bitmask of argument-shape and execution-control bits carried
// on a CommandDef, per spec §3's CommandDef and §4.5's parse order.
type Flag uint32

const (
	CMD Flag = 1 << iota
	REGEX
	REGEXDefault
	COUNT
	TEXT
	SHELL
	FORCE
	ARGV
	ONCE
	LOOP
	DESTRUCTIVE
	WIN
)

// Has reports whether bit is set in f.
func (f Flag) Has(bit Flag) bool {
	return f&bit != 0
}

// AddrDefault selects the default selection range a command operates over
// when the command line gives it no explicit address, per spec §4.6.
type AddrDefault int

const (
	AddrNone AddrDefault = iota
	AddrPos
	AddrLine
	AddrAfter
	AddrAll
	AddrAll1Cursor
)
