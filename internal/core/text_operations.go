// internal/core/text_operations.go
package core

import (
	"strings"
	"unicode/utf8"

	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// InsertText inserts text at every selection range, replacing non-empty
// ranges, and leaves a cursor after each insertion. This is the multi-cursor
// typing path: mirrored tabstops all receive the same text.
func (e *Editor) InsertText(text string) {
	ranges := e.selection.Ranges
	if len(ranges) == 0 {
		return
	}
	edits := make([]types.TextEdit, len(ranges))
	for i, r := range ranges {
		edits[i] = types.TextEdit{From: r.From, To: r.To, Insert: text}
	}
	e.Dispatch(types.Transaction{
		Edits:     edits,
		Selection: cursorsAfter(edits, e.selection.Main),
	})
}

// InsertRune inserts a single rune at the selection.
func (e *Editor) InsertRune(r rune) {
	e.InsertText(string(r))
}

// InsertNewLine inserts a line break at the selection.
func (e *Editor) InsertNewLine() {
	e.InsertText("\n")
}

// InsertTab inserts a literal tab character at the selection.
func (e *Editor) InsertTab() {
	e.InsertText("\t")
}

// DeleteBackward deletes each non-empty selection range, or the rune before
// each cursor.
func (e *Editor) DeleteBackward() {
	var edits []types.TextEdit
	for _, r := range e.selection.Ranges {
		if !r.Empty() {
			edits = append(edits, types.TextEdit{From: r.From, To: r.To})
			continue
		}
		if r.From == 0 {
			continue
		}
		_, size := utf8.DecodeLastRuneInString(e.buffer.Slice(0, r.From))
		edits = append(edits, types.TextEdit{From: r.From - size, To: r.From})
	}
	if len(edits) == 0 {
		return
	}
	e.Dispatch(types.Transaction{
		Edits:     edits,
		Selection: cursorsAfter(edits, e.selection.Main),
	})
}

// DeleteForward deletes each non-empty selection range, or the rune after
// each cursor.
func (e *Editor) DeleteForward() {
	docLen := e.buffer.Length()
	var edits []types.TextEdit
	for _, r := range e.selection.Ranges {
		if !r.Empty() {
			edits = append(edits, types.TextEdit{From: r.From, To: r.To})
			continue
		}
		if r.To >= docLen {
			continue
		}
		_, size := utf8.DecodeRuneInString(e.buffer.Slice(r.To, docLen))
		edits = append(edits, types.TextEdit{From: r.To, To: r.To + size})
	}
	if len(edits) == 0 {
		return
	}
	e.Dispatch(types.Transaction{
		Edits:     edits,
		Selection: cursorsAfter(edits, e.selection.Main),
	})
}

// SelectedText returns the text covered by the selection, ranges joined with
// newlines.
func (e *Editor) SelectedText() string {
	var parts []string
	for _, r := range e.selection.Ranges {
		if !r.Empty() {
			parts = append(parts, e.buffer.Slice(r.From, r.To))
		}
	}
	return strings.Join(parts, "\n")
}

// cursorsAfter computes the post-edit selection for per-range edits: one
// cursor at the end of each edit's inserted text.
func cursorsAfter(edits []types.TextEdit, main int) *types.Selection {
	ranges := make([]types.SelRange, len(edits))
	delta := 0
	for i, ed := range edits {
		p := ed.From + delta + len(ed.Insert)
		ranges[i] = types.SelRange{From: p, To: p}
		delta += ed.Delta()
	}
	if main < 0 || main >= len(ranges) {
		main = 0
	}
	return &types.Selection{Ranges: ranges, Main: main}
}
