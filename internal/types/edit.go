// internal/types/edit.go
package types

import "fmt"

// TextEdit replaces the byte range [From, To) of a buffer with Insert.
// Offsets are byte offsets into the whole document. Immutable value; From <= To.
type TextEdit struct {
	From   int
	To     int
	Insert string
}

// Delta returns the change in document length caused by this edit.
func (e TextEdit) Delta() int {
	return len(e.Insert) - (e.To - e.From)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e TextEdit) IsInsert() bool {
	return e.From == e.To && e.Insert != ""
}

// String returns a human-readable representation of the edit.
func (e TextEdit) String() string {
	if e.From == e.To {
		return fmt.Sprintf("Insert(%d, %q)", e.From, e.Insert)
	}
	if e.Insert == "" {
		return fmt.Sprintf("Delete[%d,%d)", e.From, e.To)
	}
	return fmt.Sprintf("Replace[%d,%d) with %q", e.From, e.To, e.Insert)
}

// Transaction is one atomic buffer mutation: an ordered list of edits applied
// against the same document snapshot, plus optional selection/history hints.
type Transaction struct {
	Edits []TextEdit

	// Selection, if non-nil, becomes the selection after the edits are applied.
	// When nil the current selection is mapped through the edits instead.
	Selection *Selection

	// Isolate marks the transaction as an isolated history step: it never
	// coalesces with adjacent steps, so it can be undone on its own.
	Isolate bool

	// Meta is an arbitrary tag recorded on the history step (e.g. the
	// snippet-expansion begin marker). Empty means no tag.
	Meta string
}
