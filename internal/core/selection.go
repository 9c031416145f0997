// internal/core/selection.go
package core

import (
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// HasSelection returns true if any selection range covers text.
func (e *Editor) HasSelection() bool {
	for _, r := range e.selection.Ranges {
		if !r.Empty() {
			return true
		}
	}
	return false
}

// ClearSelection collapses the selection to a cursor at the main head.
func (e *Editor) ClearSelection() {
	e.selecting = false
	head := e.selection.MainRange().To
	e.SetSelection(types.Cursor(head))
	logger.Debugf("Editor: Selection cleared")
}

// StartOrUpdateSelection anchors a shift-selection at the current cursor.
// Called before a Shift + movement key moves the cursor. On subsequent calls
// the cursor is put back on the moving head, so extending away from the
// anchor keeps working in both directions.
func (e *Editor) StartOrUpdateSelection() {
	if !e.selecting {
		e.selAnchor = e.selection.MainRange().To
		e.selHead = e.selAnchor
		e.selecting = true
		logger.Debugf("Editor: Selection started at %d", e.selAnchor)
		return
	}
	e.SetSelection(types.Cursor(e.selHead))
}

// UpdateSelectionEnd extends the selection from the anchor to the cursor
// after a movement. No-op unless a shift-selection is in progress.
func (e *Editor) UpdateSelectionEnd() {
	if !e.selecting {
		return
	}
	e.selHead = e.selection.MainRange().To
	from, to := e.selAnchor, e.selHead
	if from > to {
		from, to = to, from
	}
	e.SetSelection(types.Single(from, to))
}

// IsSelecting reports whether a shift-selection is in progress.
func (e *Editor) IsSelecting() bool {
	return e.selecting
}
