package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/executor"
	"monogrammedchalk.com/samctl/text"
	"monogrammedchalk.com/samctl/uiiface"
	"monogrammedchalk.com/samctl/view"
)

func fullRange(f *text.File) address.Range {
	return address.Range{Start: 0, End: f.Size()}
}

func newTestEngine(t *testing.T, data string) (*executor.Engine, string) {
	t.Helper()
	eng := executor.New(uiiface.NewLogger())
	Register(eng)
	name := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(name, []byte(data), 0o644))
	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	id := eng.Open(name, raw)
	require.True(t, eng.Focus(id))
	return eng, name
}

func TestMarkRecordsAddressedRange(t *testing.T) {
	eng, _ := newTestEngine(t, "one\ntwo\nthree\n")
	require.NoError(t, eng.Exec([]byte("2k x")))
	id, _ := eng.CurrentWindow()
	f, _ := eng.File(id)
	r, ok := f.Marks().Resolve('x', 0)
	require.True(t, ok)
	assert.Equal(t, 4, r.Start)
	assert.Equal(t, 8, r.End)
}

func TestSetNumbersTogglesWindowOption(t *testing.T) {
	eng, _ := newTestEngine(t, "text\n")
	require.NoError(t, eng.Exec([]byte("set numbers 1")))
	id, _ := eng.CurrentWindow()
	w, _ := eng.Window(id)
	assert.True(t, w.Options.Has(view.OptNumbers))

	require.NoError(t, eng.Exec([]byte("set numbers 0")))
	assert.False(t, w.Options.Has(view.OptNumbers))
}

func TestSetUnknownOptionFails(t *testing.T) {
	eng, _ := newTestEngine(t, "text\n")
	err := eng.Exec([]byte("set bogusopt 1"))
	assert.Error(t, err)
}

func TestSetAmbiguousPrefixFails(t *testing.T) {
	eng, _ := newTestEngine(t, "text\n")
	err := eng.Exec([]byte("set s foo"))
	assert.Error(t, err)
}

func TestMapThenUnmap(t *testing.T) {
	eng, _ := newTestEngine(t, "text\n")
	require.NoError(t, eng.Exec([]byte("map edit gg 1d")))
	require.Equal(t, "1d", eng.Keymap["edit"]["gg"])

	require.NoError(t, eng.Exec([]byte("unmap edit gg")))
	_, ok := eng.Keymap["edit"]["gg"]
	assert.False(t, ok)
}

func TestLangmapBuildsRuneTable(t *testing.T) {
	eng, _ := newTestEngine(t, "text\n")
	require.NoError(t, eng.Exec([]byte("langmap jkl; dhnt")))
	assert.Equal(t, 'd', eng.Langmap['j'])
	assert.Equal(t, 't', eng.Langmap[';'])
}

func TestWriteWritesRangeToDisk(t *testing.T) {
	eng, name := newTestEngine(t, "one\ntwo\nthree\n")
	require.NoError(t, eng.Exec([]byte("1d")))
	require.NoError(t, eng.Exec([]byte("w"))) // writes modified buffer back

	got, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "two\nthree\n", string(got))
}

func TestReadInsertsFileContents(t *testing.T) {
	eng, _ := newTestEngine(t, "one\ntwo\n")
	incName := filepath.Join(t.TempDir(), "inc.txt")
	require.NoError(t, os.WriteFile(incName, []byte("INC\n"), 0o644))

	require.NoError(t, eng.Exec([]byte("1r "+incName)))
	id, _ := eng.CurrentWindow()
	f, _ := eng.File(id)
	assert.Equal(t, "one\nINC\ntwo\n", string(f.Bytes(fullRange(f))))
}
