package snippet

import (
	"strings"
	"testing"

	"github.com/you-n-g/obsidian-latex-suite/internal/edit"
	"github.com/you-n-g/obsidian-latex-suite/internal/template"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// testView is an in-memory document implementing the View contract,
// including remapping the session's group ranges through every transaction.
type testView struct {
	doc string
	sel types.Selection
	ses *Session
	log []types.Transaction
}

func newTestView(doc string, ses *Session) *testView {
	return &testView{doc: doc, sel: types.Cursor(0), ses: ses}
}

func (v *testView) Length() int                { return len(v.doc) }
func (v *testView) Slice(from, to int) string  { return v.doc[from:to] }
func (v *testView) Selection() types.Selection { return v.sel }

func (v *testView) Dispatch(tx types.Transaction) {
	if len(tx.Edits) > 0 {
		l := edit.NewList(len(v.doc), tx.Edits...)
		v.doc = l.Apply(v.doc)
		v.ses.Stops.MapThrough(l)
		v.sel = l.MapSelection(v.sel, edit.BiasAfter)
	}
	if tx.Selection != nil {
		v.sel = *tx.Selection
	}
	v.log = append(v.log, tx)
}

const forLoopTemplate = "for (let ${1:i} = 0; ${1:i} < ${2:n}; ${1:i}++) {\n\t$3\n}"

// expandForLoop runs the §8-style scenario: a 20-character document with a
// key-triggered for-loop snippet queued at offset 10.
func expandForLoop(t *testing.T) (*testView, *Session) {
	t.Helper()
	ses := NewSession()
	view := newTestView(strings.Repeat("a", 20), ses)
	parsed := template.Parse(forLoopTemplate)
	ses.Queue.Push(NewTemplateRequest(10, 10, "f", parsed))
	if !ExpandPending(view, ses) {
		t.Fatal("expected expansion to report true")
	}
	return view, ses
}

func TestExpandPending(t *testing.T) {
	t.Run("empty queue is a no-op", func(t *testing.T) {
		ses := NewSession()
		view := newTestView("hello", ses)
		if ExpandPending(view, ses) {
			t.Error("expected false")
		}
		if view.doc != "hello" || len(view.log) != 0 {
			t.Errorf("buffer mutated: %q, %d transaction(s)", view.doc, len(view.log))
		}
	})

	t.Run("expansion yields the rendered text at the anchor", func(t *testing.T) {
		view, _ := expandForLoop(t)
		want := strings.Repeat("a", 10) +
			"for (let i = 0; i < n; i++) {\n\t\n}" +
			strings.Repeat("a", 10)
		if view.doc != want {
			t.Errorf("expected %q, got %q", want, view.doc)
		}
	})

	t.Run("net effect equals the substitution alone", func(t *testing.T) {
		ses := NewSession()
		view := newTestView(strings.Repeat("a", 20), ses)
		parsed := template.Parse(forLoopTemplate)
		ses.Queue.Push(NewTemplateRequest(10, 10, "f", parsed))

		subst := edit.NewList(20, types.TextEdit{From: 10, To: 10, Insert: parsed.Text})
		afterSubst := subst.Apply(view.doc)

		ExpandPending(view, ses)

		// The transaction log: keystroke replay, combined substitution,
		// finalize, selection.
		if len(view.log) != 4 {
			t.Fatalf("expected 4 transactions, got %d", len(view.log))
		}
		if !view.log[0].Isolate {
			t.Error("keystroke replay must be history-isolated")
		}
		if view.log[1].Meta != MetaSnippetStart {
			t.Errorf("combined transaction meta = %q", view.log[1].Meta)
		}
		if view.log[2].Meta != MetaSnippetFinalize {
			t.Errorf("finalize transaction meta = %q", view.log[2].Meta)
		}
		if view.log[3].Meta != MetaSnippetEnd || view.log[3].Selection == nil {
			t.Errorf("closing transaction = %+v", view.log[3])
		}

		// Replaying keystroke then combined on a fresh copy must equal the
		// substitution alone.
		doc := strings.Repeat("a", 20)
		keyed := edit.NewList(len(doc), view.log[0].Edits...).Apply(doc)
		combined := edit.NewList(len(keyed), view.log[1].Edits...).Apply(keyed)
		if combined != afterSubst {
			t.Errorf("expected %q, got %q", afterSubst, combined)
		}
	})

	t.Run("keystroke replay restores the trigger key text", func(t *testing.T) {
		view, _ := expandForLoop(t)
		doc := strings.Repeat("a", 20)
		keyed := edit.NewList(len(doc), view.log[0].Edits...).Apply(doc)
		want := doc[:10] + "f" + doc[10:]
		if keyed != want {
			t.Errorf("expected %q, got %q", want, keyed)
		}
	})

	t.Run("groups are ordered and mapped onto the default text", func(t *testing.T) {
		view, ses := expandForLoop(t)
		groups := ses.Stops.Groups()
		if len(groups) != 3 {
			t.Fatalf("expected 3 groups, got %d", len(groups))
		}
		if groups[0].Index != 1 || groups[1].Index != 2 || groups[2].Index != 3 {
			t.Errorf("group order: %d, %d, %d", groups[0].Index, groups[1].Index, groups[2].Index)
		}
		wantI := []types.SelRange{{From: 19, To: 20}, {From: 26, To: 27}, {From: 33, To: 34}}
		for i, r := range groups[0].Ranges {
			if r != wantI[i] {
				t.Errorf("i range %d: expected %v, got %v", i, wantI[i], r)
			}
			if view.doc[r.From:r.To] != "i" {
				t.Errorf("i range %d covers %q", i, view.doc[r.From:r.To])
			}
		}
		if n := groups[1].Ranges[0]; view.doc[n.From:n.To] != "n" {
			t.Errorf("n range covers %q", view.doc[n.From:n.To])
		}
		if body := groups[2].Ranges[0]; !body.Empty() {
			t.Errorf("body stop should be zero-width, got %v", body)
		}
	})

	t.Run("initial selection spans the mirrored first stop", func(t *testing.T) {
		view, _ := expandForLoop(t)
		want := types.Selection{
			Ranges: []types.SelRange{{From: 19, To: 20}, {From: 26, To: 27}, {From: 33, To: 34}},
		}
		if !view.sel.Eq(want) {
			t.Errorf("expected %+v, got %+v", want, view.sel)
		}
	})

	t.Run("queue is drained", func(t *testing.T) {
		_, ses := expandForLoop(t)
		if !ses.Queue.Empty() {
			t.Error("queue should be empty after expansion")
		}
	})

	t.Run("anchor shifts by preceding insertions", func(t *testing.T) {
		// A request inserting n characters at p shifts a later request's
		// anchor at q > p by n.
		ses := NewSession()
		view := newTestView(strings.Repeat("a", 20), ses)
		var anchors []int
		for _, req := range []Request{
			{From: 5, To: 5, Insert: "xxxx"},
			{From: 10, To: 10, Insert: "y"},
		} {
			r := req
			r.Tabstops = func(_ View, anchor int) []Spec {
				anchors = append(anchors, anchor)
				return nil
			}
			ses.Queue.Push(r)
		}
		ExpandPending(view, ses)
		if len(anchors) != 2 || anchors[0] != 5 || anchors[1] != 14 {
			t.Errorf("got anchors %v", anchors)
		}
	})

	t.Run("no tabstops still mutates and reports true", func(t *testing.T) {
		ses := NewSession()
		view := newTestView("abcdef", ses)
		ses.Queue.Push(Request{From: 2, To: 4, Insert: "XY"})
		if !ExpandPending(view, ses) {
			t.Error("expected true")
		}
		if view.doc != "abXYef" {
			t.Errorf("got %q", view.doc)
		}
		if !ses.Stops.Empty() || !ses.Queue.Empty() {
			t.Error("no session state should remain")
		}
	})

	t.Run("singleton group store is eagerly cleared", func(t *testing.T) {
		ses := NewSession()
		view := newTestView("abcdef", ses)
		parsed := template.Parse("item: ${1:x}")
		ses.Queue.Push(NewTemplateRequest(3, 3, "", parsed))
		if !ExpandPending(view, ses) {
			t.Error("expected true")
		}
		if !ses.Stops.Empty() {
			t.Error("single-group store must be cleared after initial selection")
		}
		// The default text is still selected for immediate overtyping.
		if got := view.doc[view.sel.MainRange().From:view.sel.MainRange().To]; got != "x" {
			t.Errorf("selection covers %q", got)
		}
	})

	t.Run("malformed spec from the collaborator panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		ses := NewSession()
		view := newTestView("abcdef", ses)
		ses.Queue.Push(Request{
			From: 0, To: 0, Insert: "z",
			Tabstops: func(_ View, anchor int) []Spec {
				return []Spec{{From: 100, To: 200, Group: 1}}
			},
		})
		ExpandPending(view, ses)
	})
}
