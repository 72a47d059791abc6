package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monogrammedchalk.com/samctl/arena"
	"monogrammedchalk.com/samctl/lexer"
)

func newRegistry() *Registry {
	r := NewRegistry()
	r.RegisterBuiltin(&CommandDef{Name: "delete", Flags: 0, AddrDefault: AddrLine})
	r.RegisterBuiltin(&CommandDef{Name: "d", Flags: 0, AddrDefault: AddrLine})
	r.RegisterBuiltin(&CommandDef{Name: "p", Flags: 0, AddrDefault: AddrPos})
	r.RegisterBuiltin(&CommandDef{Name: "a", Flags: TEXT, AddrDefault: AddrAfter})
	r.RegisterBuiltin(&CommandDef{Name: "g", Flags: REGEX | CMD | LOOP, AddrDefault: AddrLine})
	r.RegisterBuiltin(&CommandDef{Name: "x", Flags: REGEX | REGEXDefault | CMD | LOOP, AddrDefault: AddrAll})
	r.RegisterBuiltin(&CommandDef{Name: "X", Flags: REGEX | CMD | LOOP, AddrDefault: AddrAll1Cursor})
	r.RegisterBuiltin(&CommandDef{Name: "w", Flags: FORCE, AddrDefault: AddrAll})
	r.RegisterBuiltin(&CommandDef{Name: "quit", Flags: 0, AddrDefault: AddrNone})
	return r
}

func parse(t *testing.T, reg *Registry, in string) *Command {
	t.Helper()
	toks := arena.New[lexer.Token](16)
	ts := lexer.Lex(toks, []byte(in))
	nodes := arena.New[Command](16)
	cmd, err := ParseCommand(ts, reg, nodes)
	require.NoError(t, err)
	return cmd
}

func TestLookupExactMatchWinsOverPrefix(t *testing.T) {
	r := newRegistry()
	def, err := r.Lookup("d")
	require.NoError(t, err)
	assert.Equal(t, "d", def.Name)
}

func TestLookupUniquePrefix(t *testing.T) {
	r := newRegistry()
	def, err := r.Lookup("qui")
	require.NoError(t, err)
	assert.Equal(t, "quit", def.Name)
}

func TestLookupAmbiguousPrefix(t *testing.T) {
	r := NewRegistry()
	r.RegisterBuiltin(&CommandDef{Name: "set"})
	r.RegisterBuiltin(&CommandDef{Name: "split"})
	_, err := r.Lookup("s")
	assert.Error(t, err)
}

func TestUnregisterNeverTouchesBuiltins(t *testing.T) {
	r := newRegistry()
	err := r.Unregister("d")
	assert.Error(t, err)
	_, lookupErr := r.Lookup("d")
	assert.NoError(t, lookupErr)
}

func TestParseDeleteWithAddress(t *testing.T) {
	reg := newRegistry()
	cmd := parse(t, reg, "1,2d")
	assert.Equal(t, "d", cmd.Def.Name)
	assert.True(t, cmd.HasAddr)
}

func TestParseForceFlag(t *testing.T) {
	reg := newRegistry()
	cmd := parse(t, reg, "w!")
	assert.True(t, cmd.Force)
}

func TestParseTextFlag(t *testing.T) {
	reg := newRegistry()
	cmd := parse(t, reg, "a2/hello/")
	assert.Equal(t, "hello", string(cmd.Text))
	assert.Equal(t, 2, cmd.TextCount)
}

func TestParseNestedCmdFlag(t *testing.T) {
	reg := newRegistry()
	cmd := parse(t, reg, "g/foo/ d")
	assert.Equal(t, "g", cmd.Def.Name)
	require.NotNil(t, cmd.Child)
	assert.Equal(t, "d", cmd.Child.Def.Name)
}

func TestParseXWrapsChildInSelect(t *testing.T) {
	reg := newRegistry()
	cmd := parse(t, reg, "X/foo/ d")
	assert.Equal(t, "X", cmd.Def.Name)
	require.NotNil(t, cmd.Child)
	assert.Equal(t, SelectDef, cmd.Child.Def)
	require.NotNil(t, cmd.Child.Child)
	assert.Equal(t, "d", cmd.Child.Child.Def.Name)
}

func TestParseRegexDefaultAllowsMissingPattern(t *testing.T) {
	reg := newRegistry()
	cmd := parse(t, reg, "x d")
	assert.Nil(t, cmd.Regex)
}

func TestParseRegexRequiredWithoutDefault(t *testing.T) {
	reg := newRegistry()
	toks := arena.New[lexer.Token](16)
	ts := lexer.Lex(toks, []byte("g d"))
	nodes := arena.New[Command](16)
	_, err := ParseCommand(ts, reg, nodes)
	assert.Error(t, err)
}

func TestParseGroupSiblings(t *testing.T) {
	reg := newRegistry()
	cmd := parse(t, reg, "{ a/X/ p }")
	assert.Equal(t, GroupDef, cmd.Def)
	require.NotNil(t, cmd.Child)
	assert.Equal(t, "a", cmd.Child.Def.Name)
	require.NotNil(t, cmd.Child.Next)
	assert.Equal(t, "p", cmd.Child.Next.Def.Name)
}

func TestParseUnbalancedGroupErrors(t *testing.T) {
	reg := newRegistry()
	toks := arena.New[lexer.Token](16)
	ts := lexer.Lex(toks, []byte("{ d"))
	nodes := arena.New[Command](16)
	_, err := ParseCommand(ts, reg, nodes)
	assert.Error(t, err)
}

func TestParseAddressOnNoAddressCommandErrors(t *testing.T) {
	reg := newRegistry()
	toks := arena.New[lexer.Token](16)
	ts := lexer.Lex(toks, []byte("1quit"))
	nodes := arena.New[Command](16)
	_, err := ParseCommand(ts, reg, nodes)
	assert.Error(t, err)
}
