package text

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"monogrammedchalk.com/samctl/address"
)

func TestLineStartAndLineAt(t *testing.T) {
	f := New("t", []byte("alpha\nbeta\ngamma\n"))
	if got := f.LineStart(2); got != 6 {
		t.Errorf("LineStart(2) = %d, want 6", got)
	}
	if got := f.LineAt(7); got != 2 {
		t.Errorf("LineAt(7) = %d, want 2", got)
	}
}

func TestSearchForwardAndBackward(t *testing.T) {
	f := New("t", []byte("alpha\nbeta\ngamma\n"))
	re := regexp.MustCompile("a")
	if r, ok := f.SearchForward(re, 1); !ok || r.Start != 4 {
		t.Errorf("SearchForward = %+v, %v; want start 4", r, ok)
	}
	if r, ok := f.SearchBackward(re, len(f.buf)); !ok || r.Start != 15 {
		t.Errorf("SearchBackward = %+v, %v; want start 15", r, ok)
	}
}

func TestSpliceShiftsMarks(t *testing.T) {
	f := New("t", []byte("alpha\nbeta\n"))
	start := f.LineStart(2)
	f.Marks().Set('a', 0, address.Range{Start: start, End: start + 4})
	f.Splice(0, 0, []byte("XXX"))
	r, ok := f.Marks().Resolve('a', 0)
	if !ok || r.Start != 9 {
		t.Errorf("mark after splice = %+v, %v; want start 9", r, ok)
	}
}

func TestCommitWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	f := New(path, []byte("hello"))

	if err := f.SaveBegin(""); err != nil {
		t.Fatal(err)
	}
	if err := f.WriteRange(f.saveAt); err != nil {
		t.Fatal(err)
	}
	if err := f.Commit(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("file contents = %q, want %q", got, "hello")
	}
	if f.Modified() {
		t.Error("Modified() = true after full-file commit")
	}
}
