// Package text is the in-memory reference implementation of spec §6's
// Text collaborator: a byte buffer plus save/search/line-addressing
// operations, and the two narrow interfaces (address.Context,
// transcript.Buffer) the address algebra and the transcript applier need
// from it. A production editor would back this with a piece table or
// rope for large-file performance; samctl's scope (per spec §1's
// Non-goals) stops at a buffer good enough to exercise and test the
// command engine end to end.
package text

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/marks"
)

// File is one open buffer.
type File struct {
	Name string

	buf      []byte
	modified bool
	modTime  time.Time

	marks *marks.Table

	saving      bool
	saveAt      address.Range
	pendingPath string
}

// New wraps data as a named, unmodified file.
func New(name string, data []byte) *File {
	return &File{Name: name, buf: data, marks: marks.New(), modTime: time.Now()}
}

// Marks exposes the file's mark table, for handlers implementing `k`
// (set mark) and address evaluation's `'name` side.
func (f *File) Marks() *marks.Table { return f.marks }

// Size returns the number of bytes in the buffer (address.Context,
// transcript.Buffer).
func (f *File) Size() int { return len(f.buf) }

// ByteAt returns the byte at i (spec §6's `byte_at`).
func (f *File) ByteAt(i int) byte { return f.buf[i] }

// Bytes returns a copy of buf[r.Start:r.End], for handlers that need the
// addressed text itself (the register commands, the pipe commands' stdin).
func (f *File) Bytes(r address.Range) []byte {
	out := make([]byte, r.End-r.Start)
	copy(out, f.buf[r.Start:r.End])
	return out
}

// Modified reports whether the buffer has unsaved changes.
func (f *File) Modified() bool { return f.modified }

// Stat returns the buffer's size and the modification time recorded when
// New created the file or, after that, at the last successful save
// (spec §6's `stat`, used by `w`'s time-skew check under FORCE).
func (f *File) Stat() (size int, modTime time.Time) {
	return len(f.buf), f.modTime
}

// LineStart returns the byte offset line n (1-based) starts at.
// LineStart(0) is 0; a value past the last line returns Size().
func (f *File) LineStart(n int) int {
	if n <= 0 {
		return 0
	}
	line := 1
	for i, b := range f.buf {
		if line == n {
			return i
		}
		if b == '\n' {
			line++
		}
	}
	return len(f.buf)
}

// LineAt returns the 1-based line number containing byte offset pos.
func (f *File) LineAt(pos int) int {
	line := 1
	for i, b := range f.buf {
		if i >= pos {
			break
		}
		if b == '\n' {
			line++
		}
	}
	return line
}

// SearchForward returns the first match of re at or after from.
func (f *File) SearchForward(re *regexp.Regexp, from int) (address.Range, bool) {
	if from > len(f.buf) {
		return address.Range{}, false
	}
	loc := re.FindIndex(f.buf[from:])
	if loc == nil {
		return address.Range{}, false
	}
	return address.Range{Start: from + loc[0], End: from + loc[1]}, true
}

// SearchBackward returns the match of re ending closest to (at or
// before) upto.
func (f *File) SearchBackward(re *regexp.Regexp, upto int) (address.Range, bool) {
	if upto > len(f.buf) {
		upto = len(f.buf)
	}
	locs := re.FindAllIndex(f.buf[:upto], -1)
	if len(locs) == 0 {
		return address.Range{}, false
	}
	last := locs[len(locs)-1]
	return address.Range{Start: last[0], End: last[1]}, true
}

// Splice replaces buf[start:end] with data (transcript.Buffer), shifting
// marks that sit at or after start.
func (f *File) Splice(start, end int, data []byte) {
	out := make([]byte, 0, len(f.buf)-(end-start)+len(data))
	out = append(out, f.buf[:start]...)
	out = append(out, data...)
	out = append(out, f.buf[end:]...)
	f.marks.Shift(start, len(data)-(end-start))
	f.buf = out
	f.modified = true
}

// Snapshot is a no-op hook point for an undo stack; spec §4.9 calls it
// before and after an apply batch. samctl's Non-goals (spec §1) exclude
// persistent undo, so this only needs to satisfy transcript.Snapshotter;
// a richer editor would push f.buf onto an undo ring here.
func (f *File) Snapshot() {}

// SaveBegin opens an atomic save of the whole buffer to path (or f.Name
// if path is empty), per spec §6's `save_begin`.
func (f *File) SaveBegin(path string) error {
	if path == "" {
		path = f.Name
	}
	if f.saving {
		return fmt.Errorf("save already in progress")
	}
	f.saving = true
	f.saveAt = address.Range{Start: 0, End: len(f.buf)}
	f.pendingPath = path
	return nil
}

// WriteRange narrows the pending save to r (spec §6's `write_range`).
func (f *File) WriteRange(r address.Range) error {
	if !f.saving {
		return fmt.Errorf("no save in progress")
	}
	f.saveAt = r
	return nil
}

// Commit atomically writes the pending range to its target path (write
// to a sibling temp file, then rename, so a crash mid-write never
// corrupts the original) and clears the modified flag if the whole file
// was saved.
func (f *File) Commit() error {
	if !f.saving {
		return fmt.Errorf("no save in progress")
	}
	defer func() { f.saving = false }()

	dir := filepath.Dir(f.pendingPath)
	tmp, err := os.CreateTemp(dir, ".samctl-save-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(f.buf[f.saveAt.Start:f.saveAt.End]); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.pendingPath); err != nil {
		os.Remove(tmpName)
		return err
	}

	if f.saveAt.Start == 0 && f.saveAt.End == len(f.buf) {
		f.modified = false
		f.modTime = time.Now()
	}
	return nil
}

// Cancel aborts a pending save without touching disk.
func (f *File) Cancel() {
	f.saving = false
}
