package executor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/executor"
	"monogrammedchalk.com/samctl/handlers"
	"monogrammedchalk.com/samctl/text"
	"monogrammedchalk.com/samctl/uiiface"
)

func newEngine(t *testing.T, name, data string) *executor.Engine {
	t.Helper()
	eng := executor.New(uiiface.NewLogger())
	handlers.Register(eng)
	id := eng.Open(name, []byte(data))
	require.True(t, eng.Focus(id))
	return eng
}

func currentFile(t *testing.T, eng *executor.Engine) *text.File {
	t.Helper()
	id, ok := eng.CurrentWindow()
	require.True(t, ok)
	f, ok := eng.File(id)
	require.True(t, ok)
	return f
}

func all(f *text.File) address.Range {
	return address.Range{Start: 0, End: f.Size()}
}

func TestDeleteFirstLine(t *testing.T) {
	eng := newEngine(t, "a.txt", "one\ntwo\nthree\n")
	require.NoError(t, eng.Exec([]byte("1d")))
	f := currentFile(t, eng)
	assert.Equal(t, "two\nthree\n", string(f.Bytes(all(f))))
}

func TestAppendAfterLine(t *testing.T) {
	eng := newEngine(t, "a.txt", "one\ntwo\n")
	require.NoError(t, eng.Exec([]byte("1a/uno\n/")))
	f := currentFile(t, eng)
	assert.Equal(t, "one\nuno\ntwo\n", string(f.Bytes(all(f))))
}

func TestChangeLine(t *testing.T) {
	eng := newEngine(t, "a.txt", "one\ntwo\nthree\n")
	require.NoError(t, eng.Exec([]byte("2c/TWO\n/")))
	f := currentFile(t, eng)
	assert.Equal(t, "one\nTWO\nthree\n", string(f.Bytes(all(f))))
}

func TestXDeletesEveryMatch(t *testing.T) {
	eng := newEngine(t, "a.txt", "cat\ndog\ncat\nbird\n")
	require.NoError(t, eng.Exec([]byte(`x/cat\n/d`)))
	f := currentFile(t, eng)
	assert.Equal(t, "dog\nbird\n", string(f.Bytes(all(f))))
}

func TestGRunsOnlyWhenPatternMatches(t *testing.T) {
	eng := newEngine(t, "a.txt", "keep\ndrop\nkeep\n")
	require.NoError(t, eng.Exec([]byte(`x/.*\n/g/drop/d`)))
	f := currentFile(t, eng)
	assert.Equal(t, "keep\nkeep\n", string(f.Bytes(all(f))))
}

func TestVRunsOnlyWhenPatternDoesNotMatch(t *testing.T) {
	eng := newEngine(t, "a.txt", "keep\ndrop\nkeep\n")
	require.NoError(t, eng.Exec([]byte(`x/.*\n/v/drop/d`)))
	f := currentFile(t, eng)
	assert.Equal(t, "drop\n", string(f.Bytes(all(f))))
}

func TestDestructiveAfterLoopIsRejected(t *testing.T) {
	eng := newEngine(t, "a.txt", "one\ntwo\n")
	err := eng.Exec([]byte(`x/.*\n/p d`))
	assert.Error(t, err)
}

func TestSequentialExecCallsSeeEachOthersEdits(t *testing.T) {
	eng := newEngine(t, "a.txt", "one\ntwo\nthree\n")
	require.NoError(t, eng.Exec([]byte("1d")))
	require.NoError(t, eng.Exec([]byte("1d")))
	f := currentFile(t, eng)
	assert.Equal(t, "three\n", string(f.Bytes(all(f))))
}

func TestOverlappingEditsWithinOneLineConflictAndApplyNeither(t *testing.T) {
	eng := newEngine(t, "a.txt", "one\ntwo\nthree\n")
	require.NoError(t, eng.Exec([]byte("1d 1d")))
	f := currentFile(t, eng)
	assert.Equal(t, "one\ntwo\nthree\n", string(f.Bytes(all(f))))
}

func TestUnsavedQuitWithoutForceFails(t *testing.T) {
	eng := newEngine(t, "a.txt", "one\n")
	require.NoError(t, eng.Exec([]byte("1d")))
	err := eng.Exec([]byte("q"))
	assert.Error(t, err)
}
