// Package view implements the View/Window collaborator of spec §6: the
// selection set attached to one open window, selection iteration and
// mutation, and the transcript.Reanchorer interface the transcript
// applier needs to re-anchor selections after a batch of changes lands
// (transcript.Snapshotter is implemented by text.File, not here).
// Grounded on the teacher's
// Stack (executor/stack.go): a small ordered collection addressed by
// index, grown with append and mutated through plain methods rather than
// a generic container type.
package view

import "monogrammedchalk.com/samctl/transcript"

// Options is the per-window settings bitmask (spec §4.8's `set` targets:
// numbers, wrapcolumn, and the rest are stored here; the option table
// itself lives in handlers, which knows the option names).
type Options uint32

const (
	OptNumbers Options = 1 << iota
	OptWrap
	OptShowInvisibles
	OptStatusBar
)

// Has reports whether bit is set in o.
func (o Options) Has(bit Options) bool { return o&bit != 0 }

// Selection is one cursor or anchored range inside a window, per spec
// §3's Selection.
type Selection struct {
	ID       transcript.SelectionID
	Range    [2]int // [start, end), Start == End for a bare cursor
	Anchored bool   // true while the user is actively selecting (visual)
	disposed bool
}

// Start and End expose the selection's current range.
func (s *Selection) Start() int { return s.Range[0] }
func (s *Selection) End() int   { return s.Range[1] }

// Window is one open buffer's view state: its selections, visual-mode
// flag, and display options. The file itself (text.File) is held by the
// executor, which binds a Window and a File together behind
// command.Context; view stays independent of text so it can be tested
// without a buffer.
type Window struct {
	ID      transcript.WindowID
	FileTag string // display name, e.g. the file's path

	selections []*Selection
	nextSelID  transcript.SelectionID
	primary    transcript.SelectionID

	visual  bool
	Options Options

	jumpList []int
}

// New returns a window with a single cursor selection at 0.
func New(id transcript.WindowID, fileTag string) *Window {
	w := &Window{ID: id, FileTag: fileTag}
	w.CreateSelection(0, 0)
	w.primary = w.selections[0].ID
	return w
}

// Selections returns the window's selections in traversal order.
func (w *Window) Selections() []*Selection { return w.selections }

// Count returns the number of live selections.
func (w *Window) Count() int { return len(w.selections) }

// Primary returns the window's primary (first-created or last-surviving)
// selection.
func (w *Window) Primary() (*Selection, bool) {
	return w.Get(w.primary)
}

// Get returns the selection with the given id.
func (w *Window) Get(id transcript.SelectionID) (*Selection, bool) {
	for _, s := range w.selections {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Set overwrites a selection's range directly (spec §6's "set selection
// range"), leaving its anchored state unchanged. `p` reshapes through
// MoveCursor and AnchorSelection instead.
func (w *Window) Set(id transcript.SelectionID, start, end int) {
	if s, ok := w.Get(id); ok {
		s.Range = [2]int{start, end}
	}
}

// CreateSelection appends a new selection at [start, end) and returns it.
func (w *Window) CreateSelection(start, end int) *Selection {
	s := &Selection{ID: w.nextSelID, Range: [2]int{start, end}}
	w.nextSelID++
	w.selections = append(w.selections, s)
	return s
}

// DisposeSelection removes a selection from the window (transcript.
// Reanchorer), unless it is the window's last one: a window always keeps
// at least one cursor so handlers always have something to iterate.
func (w *Window) DisposeSelection(id transcript.SelectionID) {
	if len(w.selections) <= 1 {
		if s, ok := w.Get(id); ok {
			s.Anchored = false
		}
		return
	}
	wasPrimary := id == w.primary
	for i, s := range w.selections {
		if s.ID == id {
			w.selections = append(w.selections[:i:i], w.selections[i+1:]...)
			break
		}
	}
	if wasPrimary && len(w.selections) > 0 {
		w.primary = w.selections[0].ID
	}
}

// MoveCursor collapses a selection to a bare cursor at pos
// (transcript.Reanchorer).
func (w *Window) MoveCursor(id transcript.SelectionID, pos int) {
	if s, ok := w.Get(id); ok {
		s.Range = [2]int{pos, pos}
		s.Anchored = false
	}
}

// AnchorSelection sets a selection's range and marks it anchored
// (transcript.Reanchorer).
func (w *Window) AnchorSelection(id transcript.SelectionID, start, end int) {
	if s, ok := w.Get(id); ok {
		s.Range = [2]int{start, end}
		s.Anchored = true
	}
}

// PlaceCursor is MoveCursor's non-anchoring counterpart used by insert
// re-anchoring (transcript.Reanchorer): the cursor moves but any existing
// anchor state is left alone rather than forced false, since an insert
// inside an already-anchored selection should not silently drop visual
// mode.
func (w *Window) PlaceCursor(id transcript.SelectionID, pos int) {
	if s, ok := w.Get(id); ok {
		s.Range = [2]int{pos, pos}
	}
}

// Visual reports whether the window has any anchored selection
// (transcript.Reanchorer's mode-switch rule in spec §4.9).
func (w *Window) Visual() bool {
	for _, s := range w.selections {
		if s.Anchored {
			return true
		}
	}
	return false
}

// Normalize is spec §4.9's post-apply step: if the primary selection no
// longer exists, it falls back to the first remaining selection. It
// removes no selections; a last selection that DisposeSelection kept
// alive stays in place.
func (w *Window) Normalize() {
	if _, ok := w.Get(w.primary); !ok && len(w.selections) > 0 {
		w.primary = w.selections[0].ID
	}
}

// RecordJump appends pos to the window's jump list (spec §4.9's
// "jump-list is recorded").
func (w *Window) RecordJump(pos int) {
	w.jumpList = append(w.jumpList, pos)
}

// JumpList returns the recorded jump positions, oldest first.
func (w *Window) JumpList() []int { return w.jumpList }

// Close marks options cleared and selections emptied; the owning
// executor is responsible for removing w from its window list and
// choosing focus, since only it knows the window ordering (spec §6's
// "swap/close/focus").
func (w *Window) Close() {
	w.selections = nil
	w.Options = 0
}
