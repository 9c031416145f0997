package edit

import (
	"testing"

	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

func TestApply(t *testing.T) {
	t.Run("empty list leaves document unchanged", func(t *testing.T) {
		l := NewList(5)
		if got := l.Apply("hello"); got != "hello" {
			t.Errorf("expected %q, got %q", "hello", got)
		}
	})

	t.Run("single replacement", func(t *testing.T) {
		l := NewList(11, types.TextEdit{From: 6, To: 11, Insert: "there"})
		if got := l.Apply("hello world"); got != "hello there" {
			t.Errorf("expected %q, got %q", "hello there", got)
		}
	})

	t.Run("multiple edits apply in order", func(t *testing.T) {
		l := NewList(11,
			types.TextEdit{From: 0, To: 5, Insert: "goodbye"},
			types.TextEdit{From: 6, To: 11, Insert: "moon"},
		)
		if got := l.Apply("hello world"); got != "goodbye moon" {
			t.Errorf("expected %q, got %q", "goodbye moon", got)
		}
	})

	t.Run("edits are sorted regardless of input order", func(t *testing.T) {
		l := NewList(11,
			types.TextEdit{From: 6, To: 11, Insert: "moon"},
			types.TextEdit{From: 0, To: 5, Insert: "goodbye"},
		)
		if got := l.Apply("hello world"); got != "goodbye moon" {
			t.Errorf("expected %q, got %q", "goodbye moon", got)
		}
	})

	t.Run("pure insertion", func(t *testing.T) {
		l := NewList(10, types.TextEdit{From: 5, To: 5, Insert: ", hi"})
		if got := l.Apply("aaaaabbbbb"); got != "aaaaa, hibbbbb" {
			t.Errorf("got %q", got)
		}
	})
}

func TestValidation(t *testing.T) {
	t.Run("out of range panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic for out-of-range edit")
			}
		}()
		NewList(5, types.TextEdit{From: 3, To: 7, Insert: "x"})
	})

	t.Run("overlapping edits panic", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic for overlapping edits")
			}
		}()
		NewList(10,
			types.TextEdit{From: 0, To: 5, Insert: "x"},
			types.TextEdit{From: 4, To: 8, Insert: "y"},
		)
	})

	t.Run("inverted range panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic for from > to")
			}
		}()
		NewList(10, types.TextEdit{From: 5, To: 3, Insert: "x"})
	})
}

func TestInvert(t *testing.T) {
	doc := "hello world"

	t.Run("invert undoes the list", func(t *testing.T) {
		l := NewList(len(doc),
			types.TextEdit{From: 0, To: 5, Insert: "goodbye"},
			types.TextEdit{From: 6, To: 11, Insert: "moon"},
		)
		applied := l.Apply(doc)
		inv := l.Invert(doc)
		if inv.OriginalLength() != len(applied) {
			t.Errorf("inverse expects length %d, applied doc has %d", inv.OriginalLength(), len(applied))
		}
		if got := inv.Apply(applied); got != doc {
			t.Errorf("round trip produced %q, want %q", got, doc)
		}
	})

	t.Run("invert of insertion is deletion", func(t *testing.T) {
		l := NewList(len(doc), types.TextEdit{From: 5, To: 5, Insert: "!!!"})
		inv := l.Invert(doc)
		edits := inv.Edits()
		if len(edits) != 1 {
			t.Fatalf("expected 1 edit, got %d", len(edits))
		}
		want := types.TextEdit{From: 5, To: 8, Insert: ""}
		if edits[0] != want {
			t.Errorf("expected %v, got %v", want, edits[0])
		}
	})
}

func TestCompose(t *testing.T) {
	doc := "hello world"

	t.Run("compose equals sequential application", func(t *testing.T) {
		a := NewList(len(doc), types.TextEdit{From: 0, To: 5, Insert: "hi"})
		// "hi world"
		b := NewList(8, types.TextEdit{From: 3, To: 8, Insert: "moon"})
		combined := a.Compose(b)
		want := b.Apply(a.Apply(doc))
		if got := combined.Apply(doc); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
		if combined.OriginalLength() != len(doc) {
			t.Errorf("combined list should target the original document")
		}
	})

	t.Run("second list deleting first list's insertion cancels out", func(t *testing.T) {
		a := NewList(len(doc), types.TextEdit{From: 5, To: 5, Insert: "XYZ"})
		// "helloXYZ world"
		b := NewList(14, types.TextEdit{From: 5, To: 8, Insert: ""})
		combined := a.Compose(b)
		if got := combined.Apply(doc); got != doc {
			t.Errorf("expected unchanged doc, got %q", got)
		}
	})

	t.Run("invert then compose yields substitution only", func(t *testing.T) {
		// This is the keystroke-replay pattern: replay a keystroke, then
		// dispatch inverse-composed-with-substitution. Net effect must be
		// the substitution alone.
		key := NewList(len(doc), types.TextEdit{From: 4, To: 5, Insert: "of"})
		// After keystroke replay: "hellof world"
		subst := NewList(len(doc), types.TextEdit{From: 2, To: 5, Insert: "y"})
		combined := key.Invert(doc).Compose(subst)

		afterKey := key.Apply(doc)
		if got := combined.Apply(afterKey); got != subst.Apply(doc) {
			t.Errorf("expected %q, got %q", subst.Apply(doc), got)
		}
	})

	t.Run("length mismatch panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic on length mismatch")
			}
		}()
		a := NewList(5, types.TextEdit{From: 0, To: 0, Insert: "abc"})
		b := NewList(5) // should be 8
		a.Compose(b)
	})
}

func TestMapPos(t *testing.T) {
	t.Run("position before edit is unaffected", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 10, To: 10, Insert: "abc"})
		if got := l.MapPos(4, BiasAfter); got != 4 {
			t.Errorf("expected 4, got %d", got)
		}
	})

	t.Run("position after insertion shifts by inserted length", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 5, To: 5, Insert: "abcd"})
		if got := l.MapPos(12, BiasAfter); got != 16 {
			t.Errorf("expected 16, got %d", got)
		}
		if got := l.MapPos(12, BiasBefore); got != 16 {
			t.Errorf("bias must not matter away from boundaries, got %d", got)
		}
	})

	t.Run("pure insertion boundary honours bias", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 5, To: 5, Insert: "abcd"})
		if got := l.MapPos(5, BiasAfter); got != 9 {
			t.Errorf("after-bias should land at end of insertion, got %d", got)
		}
		if got := l.MapPos(5, BiasBefore); got != 5 {
			t.Errorf("before-bias should stay at start of insertion, got %d", got)
		}
	})

	t.Run("replacement start is stable", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 5, To: 9, Insert: "xy"})
		if got := l.MapPos(5, BiasBefore); got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
	})

	t.Run("replacement end lands at end of replacement", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 5, To: 9, Insert: "xy"})
		if got := l.MapPos(9, BiasAfter); got != 7 {
			t.Errorf("expected 7, got %d", got)
		}
	})

	t.Run("interior of deletion collapses", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 5, To: 9, Insert: ""})
		if got := l.MapPos(7, BiasBefore); got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
		if got := l.MapPos(7, BiasAfter); got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
	})

	t.Run("accumulates deltas across earlier edits", func(t *testing.T) {
		l := NewList(30,
			types.TextEdit{From: 2, To: 4, Insert: "abcdef"}, // +4
			types.TextEdit{From: 10, To: 10, Insert: "xy"},   // +2
		)
		if got := l.MapPos(20, BiasAfter); got != 26 {
			t.Errorf("expected 26, got %d", got)
		}
	})
}

func TestMapRange(t *testing.T) {
	t.Run("range grows over text typed at its end", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 8, To: 8, Insert: "zz"})
		got := l.MapRange(types.SelRange{From: 5, To: 8})
		want := types.SelRange{From: 5, To: 10}
		if got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("range grows over text typed at its start", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 5, To: 5, Insert: "zz"})
		got := l.MapRange(types.SelRange{From: 5, To: 8})
		want := types.SelRange{From: 5, To: 10}
		if got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("replacing the whole range tracks the replacement", func(t *testing.T) {
		l := NewList(20, types.TextEdit{From: 5, To: 8, Insert: "n"})
		got := l.MapRange(types.SelRange{From: 5, To: 8})
		want := types.SelRange{From: 5, To: 6}
		if got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
