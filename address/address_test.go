package address

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monogrammedchalk.com/samctl/arena"
	"monogrammedchalk.com/samctl/lexer"
)

// fakeFile is a minimal Context backed by a plain string, used to test the
// address algebra in isolation from the real text/view/marks collaborators.
type fakeFile struct {
	text  string
	marks map[byte]Range
}

func newFakeFile(text string) *fakeFile {
	return &fakeFile{text: text, marks: map[byte]Range{}}
}

func (f *fakeFile) Size() int { return len(f.text) }

func (f *fakeFile) LineStart(n int) int {
	if n <= 0 {
		return 0
	}
	count := 1
	for i, c := range f.text {
		if count == n {
			return i
		}
		if c == '\n' {
			count++
		}
	}
	return len(f.text)
}

func (f *fakeFile) LineAt(pos int) int {
	line := 1
	for i, c := range f.text {
		if i >= pos {
			break
		}
		if c == '\n' {
			line++
		}
	}
	return line
}

func (f *fakeFile) SearchForward(re *regexp.Regexp, from int) (Range, bool) {
	if from > len(f.text) {
		return Range{}, false
	}
	loc := re.FindStringIndex(f.text[from:])
	if loc == nil {
		return Range{}, false
	}
	return Range{from + loc[0], from + loc[1]}, true
}

func (f *fakeFile) SearchBackward(re *regexp.Regexp, upto int) (Range, bool) {
	if upto > len(f.text) {
		upto = len(f.text)
	}
	locs := re.FindAllStringIndex(f.text[:upto], -1)
	if len(locs) == 0 {
		return Range{}, false
	}
	last := locs[len(locs)-1]
	return Range{last[0], last[1]}, true
}

func (f *fakeFile) Mark(id byte, ordinal int) (Range, bool) {
	r, ok := f.marks[id]
	return r, ok
}

func parseLine(t *testing.T, in string) (*lexer.TokenStream, Address) {
	t.Helper()
	toks := arena.New[lexer.Token](16)
	ts := lexer.Lex(toks, []byte(in))
	addr, present, err := Parse(ts)
	require.NoError(t, err)
	require.True(t, present, "expected an address to be present in %q", in)
	return ts, addr
}

func TestParseLineRange(t *testing.T) {
	_, addr := parseLine(t, "5,10")
	assert.Equal(t, byte(','), addr.Delim)
	assert.Equal(t, SideLine, addr.Left.Kind)
	assert.Equal(t, 5, addr.Left.Line)
	assert.Equal(t, SideLine, addr.Right.Kind)
	assert.Equal(t, 10, addr.Right.Line)

	f := newFakeFile("alpha\nbeta\ngamma\n")
	r, err := addr.Evaluate(Range{}, f)
	require.NoError(t, err)
	assert.Equal(t, Range{f.LineStart(5), f.LineStart(11)}, r)
}

func TestScenario1DeleteFirstTwoLines(t *testing.T) {
	_, addr := parseLine(t, "1,2")
	f := newFakeFile("alpha\nbeta\ngamma\n")
	r, err := addr.Evaluate(Range{}, f)
	require.NoError(t, err)
	assert.Equal(t, Range{0, len("alpha\nbeta\n")}, r)
}

func TestRegexForwardAddress(t *testing.T) {
	_, addr := parseLine(t, "/beta/")
	f := newFakeFile("alpha\nbeta\ngamma\n")
	r, err := addr.Evaluate(Range{}, f)
	require.NoError(t, err)
	assert.Equal(t, "beta", f.text[r.Start:r.End])
}

func TestMarkAddress(t *testing.T) {
	_, addr := parseLine(t, "'a")
	require.Equal(t, SideMark, addr.Left.Kind)
	require.Equal(t, byte('a'), addr.Left.Mark)

	f := newFakeFile("alpha\nbeta\n")
	f.marks['a'] = Range{6, 6}
	r, err := addr.Evaluate(Range{}, f)
	require.NoError(t, err)
	assert.Equal(t, Range{6, 6}, r)
}

func TestNoAddressPresent(t *testing.T) {
	toks := arena.New[lexer.Token](8)
	ts := lexer.Lex(toks, []byte("d"))
	_, present, err := Parse(ts)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestPlusAddressDefaultsToCurrentRange(t *testing.T) {
	_, addr := parseLine(t, "+")
	assert.False(t, addr.HasLeft)
	assert.Equal(t, byte('+'), addr.Delim)

	f := newFakeFile("alpha\nbeta\ngamma\n")
	cur := Range{f.LineStart(1), f.LineStart(2)} // line 1, "alpha\n"
	r, err := addr.Evaluate(cur, f)
	require.NoError(t, err)
	assert.Equal(t, Range{f.LineStart(2), f.LineStart(3)}, r) // line 2
}

func TestDelimitedRegexWithEscapedDelimiter(t *testing.T) {
	toks := arena.New[lexer.Token](16)
	ts := lexer.Lex(toks, []byte(`/a\/b/`))
	addr, present, err := Parse(ts)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, SideRegexFwd, addr.Left.Kind)
	assert.True(t, strings.Contains(addr.Left.Regex.String(), "a/b"))
}
