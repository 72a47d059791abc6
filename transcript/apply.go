package transcript

import "bytes"

// Buffer is the minimal mutable byte store Apply needs; text.File
// implements it. Kept narrow (just Splice/Size) so transcript never
// imports the text package, the same way address.Context keeps address
// independent of view/marks.
type Buffer interface {
	Size() int
	Splice(start, end int, data []byte)
}

// Snapshotter takes an undo snapshot; text.File implements it. Apply
// calls it before and after the batch, per spec §4.9 steps 2 and 5.
type Snapshotter interface {
	Snapshot()
}

// Reanchorer re-anchors the selection attached to a change after it lands,
// per spec §4.9 step 4. view.Window implements it over its selection
// table.
type Reanchorer interface {
	// Visual reports whether the window is currently in visual (selecting)
	// mode.
	Visual() bool
	DisposeSelection(sel SelectionID)
	MoveCursor(sel SelectionID, pos int)
	AnchorSelection(sel SelectionID, start, end int)
	PlaceCursor(sel SelectionID, pos int)
}

func repeat(data []byte, count int) []byte {
	if count <= 1 {
		if count == 1 {
			return data
		}
		return nil
	}
	return bytes.Repeat(data, count)
}

// Apply walks t's changes in ascending order, applying each against buf
// with a running delta so later ranges land at their post-edit offsets,
// then re-anchors the change's selection. It is the caller's
// responsibility to call Apply only when t.Err() == nil; per spec §4.9
// step 1 a conflicted file is skipped entirely rather than partially
// applied.
func Apply(t *Transcript, buf Buffer, snap Snapshotter, re Reanchorer) error {
	if t.err != nil {
		return t.err
	}
	if snap != nil {
		snap.Snapshot()
	}

	delta := 0
	for c := t.head; c != nil; c = c.next {
		start := c.Range.Start + delta
		end := c.Range.End + delta

		switch c.Kind {
		case Delete:
			buf.Splice(start, end, nil)
			delta -= c.Range.End - c.Range.Start
			reanchorDelete(re, c, start)

		case Insert:
			payload := repeat(c.Data, c.Count)
			buf.Splice(start, start, payload)
			delta += len(payload)
			reanchorInsert(re, c, start, len(payload))

		case Change:
			buf.Splice(start, end, nil)
			payload := repeat(c.Data, c.Count)
			buf.Splice(start, start, payload)
			delta += len(payload) - (c.Range.End - c.Range.Start)
			reanchorInsert(re, c, start, len(payload))
		}
	}

	if snap != nil {
		snap.Snapshot()
	}
	return nil
}

func reanchorDelete(re Reanchorer, c *ChangeEntry, postStart int) {
	if re == nil || !c.HasSel {
		return
	}
	if re.Visual() {
		re.DisposeSelection(c.Selection)
		return
	}
	re.MoveCursor(c.Selection, postStart)
}

func reanchorInsert(re Reanchorer, c *ChangeEntry, postStart, n int) {
	if re == nil || !c.HasSel {
		return
	}
	if re.Visual() {
		re.AnchorSelection(c.Selection, postStart, postStart+n)
		return
	}
	if bytes.ContainsRune(c.Data, '\n') {
		re.PlaceCursor(c.Selection, postStart)
		return
	}
	re.PlaceCursor(c.Selection, postStart+n)
}
