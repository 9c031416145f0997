package core

import (
	"testing"

	"github.com/you-n-g/obsidian-latex-suite/internal/buffer"
	"github.com/you-n-g/obsidian-latex-suite/internal/snippet"
	"github.com/you-n-g/obsidian-latex-suite/internal/template"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

func newTestEditor(content string) *Editor {
	return NewEditor(buffer.NewSliceBufferFromString(content))
}

func docText(e *Editor) string {
	return e.Slice(0, e.Length())
}

// expandSqrt simulates typing the final "q" of an "sq" trigger at the end of
// "hello s" and expanding it to \sqrt{$1}$0.
func expandSqrt(t *testing.T) *Editor {
	t.Helper()
	e := newTestEditor("hello s")
	e.SetSelection(types.Cursor(7))

	parsed := template.Parse(`\\sqrt{$1}$0`)
	e.Session().Queue.Push(snippet.NewTemplateRequest(6, 7, "q", parsed))
	if !snippet.ExpandPending(e, e.Session()) {
		t.Fatal("expected expansion")
	}
	return e
}

func TestSnippetExpansion(t *testing.T) {
	t.Run("renders the replacement with defaults", func(t *testing.T) {
		e := expandSqrt(t)
		if got := docText(e); got != `hello \sqrt{}` {
			t.Errorf("document: %q", got)
		}
	})

	t.Run("selects the first tabstop", func(t *testing.T) {
		e := expandSqrt(t)
		if !e.Selection().Eq(types.Cursor(12)) {
			t.Errorf("selection: %+v", e.Selection())
		}
	})

	t.Run("first undo restores the trigger keystroke", func(t *testing.T) {
		e := expandSqrt(t)
		if !e.Undo() {
			t.Fatal("expected an undo step")
		}
		if got := docText(e); got != "hello sq" {
			t.Errorf("after first undo: %q", got)
		}
		if !e.Selection().Eq(types.Cursor(8)) {
			t.Errorf("selection after first undo: %+v", e.Selection())
		}
	})

	t.Run("second undo restores the original document", func(t *testing.T) {
		e := expandSqrt(t)
		e.Undo()
		if !e.Undo() {
			t.Fatal("expected the keystroke step")
		}
		if got := docText(e); got != "hello s" {
			t.Errorf("after second undo: %q", got)
		}
		if e.Undo() {
			t.Error("nothing left to undo")
		}
	})

	t.Run("redo replays keystroke then expansion", func(t *testing.T) {
		e := expandSqrt(t)
		e.Undo()
		e.Undo()
		if !e.Redo() {
			t.Fatal("expected the keystroke step")
		}
		if got := docText(e); got != "hello sq" {
			t.Errorf("after first redo: %q", got)
		}
		if !e.Redo() {
			t.Fatal("expected the expansion step")
		}
		if got := docText(e); got != `hello \sqrt{}` {
			t.Errorf("after second redo: %q", got)
		}
	})
}

func TestMirroredTabstops(t *testing.T) {
	// \begin{$1}\n\t$0\n\end{$1}: the environment name appears twice.
	e := newTestEditor("")
	parsed := template.Parse("\\\\begin{$1}\n\t$0\n\\\\end{$1}")
	e.Session().Queue.Push(snippet.NewTemplateRequest(0, 0, "", parsed))
	if !snippet.ExpandPending(e, e.Session()) {
		t.Fatal("expected expansion")
	}
	if got := docText(e); got != "\\begin{}\n\t\n\\end{}" {
		t.Fatalf("document: %q", got)
	}

	t.Run("first stop places a cursor at each mirror", func(t *testing.T) {
		want := types.Selection{Ranges: []types.SelRange{{From: 7, To: 7}, {From: 16, To: 16}}}
		if !e.Selection().Eq(want) {
			t.Fatalf("selection: %+v", e.Selection())
		}
	})

	t.Run("typing lands in every mirror", func(t *testing.T) {
		e.InsertText("align")
		if got := docText(e); got != "\\begin{align}\n\t\n\\end{align}" {
			t.Fatalf("document: %q", got)
		}
	})

	t.Run("advancing reaches the final stop", func(t *testing.T) {
		if !snippet.AdvanceToNext(e, e.Session()) {
			t.Fatal("expected navigation")
		}
		if !e.Selection().Eq(types.Cursor(15)) {
			t.Errorf("selection: %+v", e.Selection())
		}
		if !e.Session().Stops.Empty() {
			t.Error("final stop should drain the store")
		}
		if snippet.AdvanceToNext(e, e.Session()) {
			t.Error("no groups left to visit")
		}
	})
}

func TestTextOperations(t *testing.T) {
	t.Run("multi-cursor insert types at every cursor", func(t *testing.T) {
		e := newTestEditor("ab cd")
		e.SetSelection(types.Selection{Ranges: []types.SelRange{{From: 1, To: 1}, {From: 4, To: 4}}})
		e.InsertText("X")
		if got := docText(e); got != "aXb cXd" {
			t.Errorf("document: %q", got)
		}
		want := types.Selection{Ranges: []types.SelRange{{From: 2, To: 2}, {From: 6, To: 6}}}
		if !e.Selection().Eq(want) {
			t.Errorf("selection: %+v", e.Selection())
		}
	})

	t.Run("delete backward removes the preceding rune", func(t *testing.T) {
		e := newTestEditor("café")
		e.SetSelection(types.Cursor(e.Length()))
		e.DeleteBackward()
		if got := docText(e); got != "caf" {
			t.Errorf("document: %q", got)
		}
	})

	t.Run("delete backward removes a selected range", func(t *testing.T) {
		e := newTestEditor("hello world")
		e.SetSelection(types.Single(5, 11))
		e.DeleteBackward()
		if got := docText(e); got != "hello" {
			t.Errorf("document: %q", got)
		}
		if !e.Selection().Eq(types.Cursor(5)) {
			t.Errorf("selection: %+v", e.Selection())
		}
	})

	t.Run("delete forward at end of document is a no-op", func(t *testing.T) {
		e := newTestEditor("ab")
		e.SetSelection(types.Cursor(2))
		e.DeleteForward()
		if got := docText(e); got != "ab" {
			t.Errorf("document: %q", got)
		}
	})

	t.Run("delete backward at start of document is a no-op", func(t *testing.T) {
		e := newTestEditor("ab")
		e.SetSelection(types.Cursor(0))
		e.DeleteBackward()
		if got := docText(e); got != "ab" {
			t.Errorf("document: %q", got)
		}
	})

	t.Run("selected text joins ranges with newlines", func(t *testing.T) {
		e := newTestEditor("one two three")
		e.SetSelection(types.Selection{Ranges: []types.SelRange{{From: 0, To: 3}, {From: 8, To: 13}}})
		if got := e.SelectedText(); got != "one\nthree" {
			t.Errorf("got %q", got)
		}
	})
}

func TestTypingRemapsTabstops(t *testing.T) {
	// Editing before an active stop must shift its range so navigation still
	// lands on the right text.
	e := expandSqrt(t)
	e.SetSelection(types.Cursor(0))
	e.InsertText("// ")
	e.SetSelection(types.Cursor(15))

	if !snippet.AdvanceToNext(e, e.Session()) {
		t.Fatal("expected navigation")
	}
	// The final stop sat after the closing brace, shifted by the prefix.
	if !e.Selection().Eq(types.Cursor(16)) {
		t.Errorf("selection: %+v", e.Selection())
	}
}

func TestClipboard(t *testing.T) {
	t.Run("yank and paste through the internal register", func(t *testing.T) {
		e := newTestEditor("hello world")
		cb := NewClipboardManager(e, false)
		e.SetSelection(types.Single(0, 5))
		ok, err := cb.Yank()
		if err != nil || !ok {
			t.Fatalf("yank: ok=%v err=%v", ok, err)
		}
		e.SetSelection(types.Cursor(11))
		ok, err = cb.Paste()
		if err != nil || !ok {
			t.Fatalf("paste: ok=%v err=%v", ok, err)
		}
		if got := docText(e); got != "hello worldhello" {
			t.Errorf("document: %q", got)
		}
	})

	t.Run("paste replaces the selection", func(t *testing.T) {
		e := newTestEditor("abc")
		cb := NewClipboardManager(e, false)
		e.SetSelection(types.Single(0, 1))
		cb.Yank()
		e.SetSelection(types.Single(1, 3))
		cb.Paste()
		if got := docText(e); got != "aa" {
			t.Errorf("document: %q", got)
		}
	})

	t.Run("empty register pastes nothing", func(t *testing.T) {
		e := newTestEditor("abc")
		cb := NewClipboardManager(e, false)
		ok, err := cb.Paste()
		if err != nil || ok {
			t.Errorf("ok=%v err=%v", ok, err)
		}
	})
}

func TestShiftSelection(t *testing.T) {
	e := newTestEditor("hello")
	e.SetSelection(types.Cursor(1))
	e.StartOrUpdateSelection()
	e.MoveCursor(0, 2)
	e.UpdateSelectionEnd()
	if !e.Selection().Eq(types.Single(1, 3)) {
		t.Errorf("selection: %+v", e.Selection())
	}
	// Extending backwards past the anchor keeps the moving end moving.
	e.StartOrUpdateSelection()
	e.MoveCursor(0, -1)
	e.UpdateSelectionEnd()
	e.StartOrUpdateSelection()
	e.MoveCursor(0, -1)
	e.UpdateSelectionEnd()
	if !e.Selection().Eq(types.Single(1, 1)) {
		t.Errorf("selection after shrinking back to anchor: %+v", e.Selection())
	}
	e.StartOrUpdateSelection()
	e.MoveCursor(0, -1)
	e.UpdateSelectionEnd()
	if !e.Selection().Eq(types.Single(0, 1)) {
		t.Errorf("selection past anchor: %+v", e.Selection())
	}

	e.ClearSelection()
	if e.HasSelection() {
		t.Error("selection should be cleared")
	}
}
