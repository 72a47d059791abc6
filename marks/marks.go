// Package marks implements the mark-name-to-position table spec §6 calls
// the Marks collaborator ("resolve mark name to id"). Grounded on the
// same "small table behind a narrow interface" shape as the teacher's
// variable Stack (executor/stack.go): a mark name is just a lookup key,
// scoped per file the way a variable is scoped per frame.
package marks

import "monogrammedchalk.com/samctl/address"

// key identifies one mark slot: a name letter indexed by the ordinal of
// the selection that recorded it, per spec.md:43/106 and the Glossary's
// "indexed by this selection's ordinal" (two selections executing `k`
// under the same name must not overwrite each other).
type key struct {
	id      byte
	ordinal int
}

// Table holds one file's marks, keyed by (name, ordinal).
type Table struct {
	byName map[key]address.Range
}

// New returns an empty mark table.
func New() *Table {
	return &Table{byName: map[key]address.Range{}}
}

// Resolve returns the range stored under id for the given selection
// ordinal.
func (t *Table) Resolve(id byte, ordinal int) (address.Range, bool) {
	r, ok := t.byName[key{id, ordinal}]
	return r, ok
}

// Set records r under id for the given selection ordinal, overwriting
// any previous value recorded by that same ordinal (the `k` command's
// effect).
func (t *Table) Set(id byte, ordinal int, r address.Range) {
	t.byName[key{id, ordinal}] = r
}

// Delete removes the mark recorded under id by the given ordinal, if
// present.
func (t *Table) Delete(id byte, ordinal int) {
	delete(t.byName, key{id, ordinal})
}

// Shift adjusts every recorded mark by delta if its position is at or
// after from, so marks survive edits applied ahead of them in the same
// transcript (spec §4.9's "re-anchor affected selections" extends by
// sam convention to marks too).
func (t *Table) Shift(from, delta int) {
	for k, r := range t.byName {
		if r.Start >= from {
			r.Start += delta
		}
		if r.End >= from {
			r.End += delta
		}
		t.byName[k] = r
	}
}
