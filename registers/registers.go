// Package registers implements the named-value scratch storage spec §6
// calls the Registers collaborator: the numbered `$0`..`$9` capture
// registers an `x`/`y` match fills in, general named registers `put`
// writes to, and the two single-value "last used" registers (`SHELL`,
// `REGEX`) that let a bare SHELL or REGEX argument reuse the previous
// one (spec §4.5).
package registers

import "regexp"

const numberedCount = 10

// Table is one engine's register set. It is not per-file: registers
// persist across files in the same invocation, matching sam's own
// registers being a property of the editing session, not the buffer.
type Table struct {
	numbered [numberedCount][]byte
	named    map[string][]byte
	lastShell string
	lastRegex *regexp.Regexp
}

// New returns an empty register table.
func New() *Table {
	return &Table{named: map[string][]byte{}}
}

// Get returns the value stored under a general named register.
func (t *Table) Get(name string) ([]byte, bool) {
	v, ok := t.named[name]
	return v, ok
}

// Put stores data under a general named register.
func (t *Table) Put(name string, data []byte) {
	t.named[name] = data
}

// PutRange fills $0..$9 from a regexp match: index 0 is the whole match,
// 1..9 are capture groups, matching `put_range(text, match)` in spec §6.
func (t *Table) PutRange(data []byte, match []int) {
	for i := range t.numbered {
		t.numbered[i] = nil
	}
	for i := 0; i*2 < len(match) && i < numberedCount; i++ {
		s, e := match[i*2], match[i*2+1]
		if s < 0 || e < 0 {
			continue
		}
		t.numbered[i] = data[s:e]
	}
}

// Numbered returns the $n capture register (0..9), or nil if unset.
func (t *Table) Numbered(n int) []byte {
	if n < 0 || n >= numberedCount {
		return nil
	}
	return t.numbered[n]
}

// LastShell returns the most recently run SHELL command string.
func (t *Table) LastShell() string { return t.lastShell }

// SetLastShell records cmd as the reusable SHELL default.
func (t *Table) SetLastShell(cmd string) { t.lastShell = cmd }

// LastRegex returns the most recently compiled REGEX.
func (t *Table) LastRegex() *regexp.Regexp { return t.lastRegex }

// SetLastRegex records re as the reusable REGEX default.
func (t *Table) SetLastRegex(re *regexp.Regexp) { t.lastRegex = re }
