package history

import (
	"testing"

	"github.com/you-n-g/obsidian-latex-suite/internal/edit"
	"github.com/you-n-g/obsidian-latex-suite/internal/snippet"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

func stepFor(doc string, edits ...types.TextEdit) (Step, string) {
	l := edit.NewList(len(doc), edits...)
	after := l.Apply(doc)
	return Step{
		Undo:     l.Invert(doc),
		Redo:     l,
		SelAfter: types.Cursor(l.NewLength()),
	}, after
}

func TestUndoRedo(t *testing.T) {
	t.Run("undo reverts and redo reapplies", func(t *testing.T) {
		m := NewManager(0)
		doc := "hello"
		step, after := stepFor(doc, types.TextEdit{From: 5, To: 5, Insert: " world"})
		m.Record(step)

		undone, ok := m.Undo()
		if !ok {
			t.Fatal("expected a step to undo")
		}
		if got := undone.Undo.Apply(after); got != doc {
			t.Errorf("undo produced %q", got)
		}

		redone, ok := m.Redo()
		if !ok {
			t.Fatal("expected a step to redo")
		}
		if got := redone.Redo.Apply(doc); got != after {
			t.Errorf("redo produced %q", got)
		}
	})

	t.Run("empty stack has nothing to undo or redo", func(t *testing.T) {
		m := NewManager(0)
		if _, ok := m.Undo(); ok {
			t.Error("unexpected undo")
		}
		if _, ok := m.Redo(); ok {
			t.Error("unexpected redo")
		}
	})

	t.Run("recording truncates redo history", func(t *testing.T) {
		m := NewManager(0)
		doc := "abc"
		s1, after1 := stepFor(doc, types.TextEdit{From: 3, To: 3, Insert: "d"})
		m.Record(s1)
		m.Undo()

		s2, _ := stepFor(doc, types.TextEdit{From: 0, To: 0, Insert: "z"})
		m.Record(s2)
		if m.CanRedo() {
			t.Error("redo history should be gone")
		}
		_ = after1
	})
}

func TestCoalescing(t *testing.T) {
	t.Run("contiguous typing merges into one step", func(t *testing.T) {
		m := NewManager(0)
		doc := ""
		s1, after1 := stepFor(doc, types.TextEdit{From: 0, To: 0, Insert: "h"})
		m.Record(s1)
		s2, after2 := stepFor(after1, types.TextEdit{From: 1, To: 1, Insert: "i"})
		m.Record(s2)

		step, ok := m.Undo()
		if !ok {
			t.Fatal("expected one step")
		}
		if got := step.Undo.Apply(after2); got != doc {
			t.Errorf("single undo should drop both runes, got %q", got)
		}
		if m.CanUndo() {
			t.Error("both insertions should be one step")
		}
	})

	t.Run("newline breaks the typing run", func(t *testing.T) {
		m := NewManager(0)
		s1, after1 := stepFor("", types.TextEdit{From: 0, To: 0, Insert: "h"})
		m.Record(s1)
		s2, _ := stepFor(after1, types.TextEdit{From: 1, To: 1, Insert: "\n"})
		m.Record(s2)
		m.Undo()
		if !m.CanUndo() {
			t.Error("expected two separate steps")
		}
	})

	t.Run("non-adjacent insertions stay separate", func(t *testing.T) {
		m := NewManager(0)
		s1, after1 := stepFor("abcdef", types.TextEdit{From: 1, To: 1, Insert: "x"})
		m.Record(s1)
		s2, _ := stepFor(after1, types.TextEdit{From: 5, To: 5, Insert: "y"})
		m.Record(s2)
		m.Undo()
		if !m.CanUndo() {
			t.Error("expected two separate steps")
		}
	})

	t.Run("isolated steps never merge", func(t *testing.T) {
		m := NewManager(0)
		s1, after1 := stepFor("", types.TextEdit{From: 0, To: 0, Insert: "h"})
		s1.Isolated = true
		m.Record(s1)
		s2, _ := stepFor(after1, types.TextEdit{From: 1, To: 1, Insert: "i"})
		m.Record(s2)
		m.Undo()
		if !m.CanUndo() {
			t.Error("isolated step must remain its own unit")
		}
	})
}

func TestSnippetStepFolding(t *testing.T) {
	// The expansion sequence: isolated keystroke, substitution tagged
	// snippet.start, finalize tagged snippet.finalize, then a selection-only
	// close tagged snippet.end. Undoing once must revert to the
	// post-keystroke document.
	m := NewManager(0)
	doc := "aaaaaaaaaa"

	key, afterKey := stepFor(doc, types.TextEdit{From: 4, To: 5, Insert: "af"})
	key.Isolated = true
	m.Record(key)

	subst, afterSubst := stepFor(afterKey, types.TextEdit{From: 4, To: 6, Insert: "a\\frac{$1}{$2}"})
	subst.Meta = snippet.MetaSnippetStart
	m.Record(subst)

	fin, afterFin := stepFor(afterSubst, types.TextEdit{From: 11, To: 13, Insert: ""}, types.TextEdit{From: 15, To: 17, Insert: ""})
	fin.Meta = snippet.MetaSnippetFinalize
	m.Record(fin)

	sel := types.Cursor(11)
	m.UpdateSelection(sel, snippet.MetaSnippetEnd)

	t.Run("expansion is one step above the keystroke", func(t *testing.T) {
		step, ok := m.Undo()
		if !ok {
			t.Fatal("expected a step")
		}
		if got := step.Undo.Apply(afterFin); got != afterKey {
			t.Errorf("first undo should restore the keystroke text, got %q", got)
		}
		if !step.SelAfter.Eq(sel) {
			t.Errorf("selection close not recorded: %+v", step.SelAfter)
		}

		step, ok = m.Undo()
		if !ok {
			t.Fatal("expected the keystroke step")
		}
		if got := step.Undo.Apply(afterKey); got != doc {
			t.Errorf("second undo should restore the original, got %q", got)
		}
	})

	t.Run("typing after a closed snippet step is separate", func(t *testing.T) {
		m := NewManager(0)
		subst, afterSubst := stepFor("ab", types.TextEdit{From: 1, To: 1, Insert: "X$1Y"})
		subst.Meta = snippet.MetaSnippetStart
		m.Record(subst)
		m.UpdateSelection(types.Cursor(2), snippet.MetaSnippetEnd)

		typed, _ := stepFor(afterSubst, types.TextEdit{From: 2, To: 2, Insert: "q"})
		m.Record(typed)
		m.Undo()
		if !m.CanUndo() {
			t.Error("typing must not fold into the snippet step")
		}
	})
}
