package view

import "testing"

func TestNewHasOnePrimarySelection(t *testing.T) {
	w := New(0, "scratch")
	if w.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", w.Count())
	}
	p, ok := w.Primary()
	if !ok || p.Start() != 0 || p.End() != 0 {
		t.Fatalf("Primary() = %+v, %v; want cursor at 0", p, ok)
	}
}

func TestCreateAndDisposeSelection(t *testing.T) {
	w := New(0, "scratch")
	s := w.CreateSelection(3, 7)
	if w.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", w.Count())
	}
	w.DisposeSelection(s.ID)
	if w.Count() != 1 {
		t.Fatalf("Count() after dispose = %d, want 1", w.Count())
	}
	if _, ok := w.Get(s.ID); ok {
		t.Error("disposed selection still resolvable via Get")
	}
}

func TestDisposeLastSelectionKeepsCursor(t *testing.T) {
	w := New(0, "scratch")
	w.AnchorSelection(w.primary, 2, 5)
	w.DisposeSelection(w.primary)
	if w.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 (last selection survives as cursor)", w.Count())
	}
	p, _ := w.Primary()
	if p.Anchored {
		t.Error("surviving cursor still reports Anchored")
	}
}

func TestVisualTracksAnchoredSelections(t *testing.T) {
	w := New(0, "scratch")
	if w.Visual() {
		t.Fatal("Visual() = true on a fresh bare-cursor window")
	}
	w.AnchorSelection(w.primary, 1, 4)
	if !w.Visual() {
		t.Fatal("Visual() = false after anchoring a selection")
	}
	w.MoveCursor(w.primary, 1)
	if w.Visual() {
		t.Fatal("Visual() = true after the only anchored selection was collapsed")
	}
}

func TestNormalizeFallsBackWhenPrimaryDisposed(t *testing.T) {
	w := New(0, "scratch")
	other := w.CreateSelection(5, 5)
	w.primary = other.ID
	w.DisposeSelection(other.ID)
	w.Normalize()
	if _, ok := w.Primary(); !ok {
		t.Fatal("Primary() missing after Normalize fallback")
	}
}
