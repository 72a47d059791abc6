package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monogrammedchalk.com/samctl/address"
)

type fakeBuffer struct {
	text []byte
}

func (b *fakeBuffer) Size() int { return len(b.text) }

func (b *fakeBuffer) Splice(start, end int, data []byte) {
	out := make([]byte, 0, len(b.text)-(end-start)+len(data))
	out = append(out, b.text[:start]...)
	out = append(out, data...)
	out = append(out, b.text[end:]...)
	b.text = out
}

func TestEnqueueOrdersByStart(t *testing.T) {
	tr := New()
	tr.Enqueue(&ChangeEntry{Kind: Insert, Range: address.Range{Start: 10, End: 10}, Data: []byte("b")})
	tr.Enqueue(&ChangeEntry{Kind: Insert, Range: address.Range{Start: 0, End: 0}, Data: []byte("a")})
	require.NoError(t, tr.Err())

	changes := tr.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, 0, changes[0].Range.Start)
	assert.Equal(t, 10, changes[1].Range.Start)
}

func TestEnqueueDetectsConflict(t *testing.T) {
	tr := New()
	tr.Enqueue(&ChangeEntry{Kind: Delete, Range: address.Range{Start: 0, End: 10}})
	tr.Enqueue(&ChangeEntry{Kind: Delete, Range: address.Range{Start: 5, End: 15}})
	assert.Error(t, tr.Err())
}

func TestEnqueueAdjacentRangesDoNotConflict(t *testing.T) {
	tr := New()
	tr.Enqueue(&ChangeEntry{Kind: Delete, Range: address.Range{Start: 0, End: 5}})
	tr.Enqueue(&ChangeEntry{Kind: Delete, Range: address.Range{Start: 5, End: 10}})
	assert.NoError(t, tr.Err())
}

func TestApplyInsertAndDelete(t *testing.T) {
	buf := &fakeBuffer{text: []byte("alpha\nbeta\ngamma\n")}
	tr := New()
	// delete "beta\n" (bytes 6..11), insert "ZZZ" at 0
	tr.Enqueue(&ChangeEntry{Kind: Delete, Range: address.Range{Start: 6, End: 11}})
	tr.Enqueue(&ChangeEntry{Kind: Insert, Range: address.Range{Start: 0, End: 0}, Data: []byte("ZZZ"), Count: 1})
	require.NoError(t, tr.Err())

	require.NoError(t, Apply(tr, buf, nil, nil))
	assert.Equal(t, "ZZZalpha\ngamma\n", string(buf.text))
}

func TestApplyInsertMultipleCopies(t *testing.T) {
	buf := &fakeBuffer{text: []byte("x")}
	tr := New()
	tr.Enqueue(&ChangeEntry{Kind: Insert, Range: address.Range{Start: 1, End: 1}, Data: []byte("y"), Count: 3})
	require.NoError(t, tr.Err())
	require.NoError(t, Apply(tr, buf, nil, nil))
	assert.Equal(t, "xyyy", string(buf.text))
}

type fakeReanchorer struct {
	visual    bool
	disposed  []SelectionID
	cursors   map[SelectionID]int
	anchored  map[SelectionID][2]int
}

func newFakeReanchorer() *fakeReanchorer {
	return &fakeReanchorer{cursors: map[SelectionID]int{}, anchored: map[SelectionID][2]int{}}
}

func (r *fakeReanchorer) Visual() bool { return r.visual }
func (r *fakeReanchorer) DisposeSelection(sel SelectionID) { r.disposed = append(r.disposed, sel) }
func (r *fakeReanchorer) MoveCursor(sel SelectionID, pos int) { r.cursors[sel] = pos }
func (r *fakeReanchorer) AnchorSelection(sel SelectionID, start, end int) {
	r.anchored[sel] = [2]int{start, end}
}
func (r *fakeReanchorer) PlaceCursor(sel SelectionID, pos int) { r.cursors[sel] = pos }

func TestApplyReanchorsInsertAtEndWithoutNewline(t *testing.T) {
	buf := &fakeBuffer{text: []byte("ax")}
	tr := New()
	tr.Enqueue(&ChangeEntry{
		Kind: Insert, Range: address.Range{Start: 1, End: 1}, Data: []byte("bc"), Count: 1,
		Selection: 1, HasSel: true,
	})
	re := newFakeReanchorer()
	require.NoError(t, Apply(tr, buf, nil, re))
	assert.Equal(t, 3, re.cursors[1]) // after "bc" at offset 1: 1+2
}

func TestApplyReanchorsDeleteMovesCursorToStart(t *testing.T) {
	buf := &fakeBuffer{text: []byte("alpha")}
	tr := New()
	tr.Enqueue(&ChangeEntry{
		Kind: Delete, Range: address.Range{Start: 1, End: 3}, Selection: 2, HasSel: true,
	})
	re := newFakeReanchorer()
	require.NoError(t, Apply(tr, buf, nil, re))
	assert.Equal(t, 1, re.cursors[2])
}
