package command

import (
	"regexp"

	"monogrammedchalk.com/samctl/address"
)

// CountSpec is the parsed form of a COUNT argument, per spec §4.5:
// `%n` sets Mod and Start==End==n; `n` or `n,m` sets an inclusive range.
type CountSpec struct {
	Start, End int
	Mod        bool
}

// Matches reports whether iteration (1-based) satisfies this count, per
// spec §8's "count monotonicity" property.
func (c CountSpec) Matches(iteration int) bool {
	if c.Mod {
		return c.Start != 0 && iteration%c.Start == 0
	}
	return iteration >= c.Start && iteration <= c.End
}

// Command is one parsed invocation: a resolved CommandDef plus whatever
// its flags consumed, and links into the surrounding tree (spec §3's
// "Command (per invocation)").
//
// Next and Child are ordinary Go pointers into the owning arena.Arena —
// ownership always flows parent to child (spec §9), so the garbage
// collector keeping them alive is exactly the ownership the spec
// describes. ParentIndex is the one back-pointer the tree carries, and
// per §9's explicit rewrite note it is an index into the arena's node
// slice rather than a pointer, since it is navigation-only and must not
// be read as implying ownership.
type Command struct {
	Def *CommandDef

	Address address.Address
	HasAddr bool

	Count    CountSpec
	HasCount bool

	// Regex is nil when the argument was omitted under REGEXDefault; the
	// executor then substitutes the most-recently-used regex register
	// (spec §4.5), which command has no access to at parse time.
	Regex *regexp.Regexp

	Text      []byte
	TextCount int

	ShellRaw string

	Force bool

	Argv []string

	Child       *Command
	Next        *Command
	ParentIndex int

	iteration int
}

// Iteration returns the 1-based count of how many times this node has
// run, maintained by the executor's loop driver.
func (c *Command) Iteration() int { return c.iteration }

// Advance increments the iteration counter and returns the new value.
func (c *Command) Advance() int {
	c.iteration++
	return c.iteration
}

// SelectDef is the synthetic command X/Y wraps its nested command in, so
// each file-scoped match gets a selection created over its default range
// before the real command runs (spec §4.5's "synthetic select command").
// Its Handler is filled in by the handlers package at startup, mirroring
// the real `p` handler's behavior.
var SelectDef = &CommandDef{
	Name:        "select",
	AddrDefault: AddrAll,
}

// GroupDef is the synthetic CommandDef a `{…}` group's node carries. The
// executor special-cases it directly (iterating Child as a sibling
// chain under each enclosing selection, per spec §4.6 rule 2) rather than
// invoking a Handler.
var GroupDef = &CommandDef{
	Name:        "{group}",
	AddrDefault: AddrAll,
}
