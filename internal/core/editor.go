// internal/core/editor.go
package core

import (
	"fmt"

	"github.com/you-n-g/obsidian-latex-suite/internal/buffer"
	"github.com/you-n-g/obsidian-latex-suite/internal/config"
	"github.com/you-n-g/obsidian-latex-suite/internal/core/history"
	"github.com/you-n-g/obsidian-latex-suite/internal/edit"
	"github.com/you-n-g/obsidian-latex-suite/internal/event"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
	"github.com/you-n-g/obsidian-latex-suite/internal/snippet"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// Editor owns the buffer, the multi-range selection, the undo history and
// the per-document snippet session. All mutations go through Dispatch, which
// is also how the snippet engine drives the document (snippet.View).
type Editor struct {
	buffer buffer.Buffer

	selection types.Selection
	selecting bool // shift-selection in progress
	selAnchor int  // anchor offset while selecting
	selHead   int  // moving end of the shift-selection

	ViewportY  int // Top visible line index (0-based)
	ViewportX  int // Leftmost visible *rune* index (0-based) - Horizontal scroll
	viewWidth  int // Cached terminal width
	viewHeight int // Cached terminal height (excluding status bar)
	ScrollOff  int // Number of lines to keep visible above/below cursor

	eventManager *event.Manager
	history      *history.Manager
	session      *snippet.Session
	clipboard    *ClipboardManager
}

// NewEditor creates a new Editor instance with a given buffer.
func NewEditor(buf buffer.Buffer) *Editor {
	e := &Editor{
		buffer:    buf,
		selection: types.Cursor(0),
		ScrollOff: config.DefaultScrollOff,
		history:   history.NewManager(history.DefaultMaxHistory),
		session:   snippet.NewSession(),
	}
	e.clipboard = NewClipboardManager(e, config.SystemClipboard)
	return e
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager (may be nil).
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// Session returns the per-document snippet state.
func (e *Editor) Session() *snippet.Session {
	return e.session
}

// HistoryManager returns the undo/redo manager.
func (e *Editor) HistoryManager() *history.Manager {
	return e.history
}

// Clipboard returns the clipboard manager.
func (e *Editor) Clipboard() *ClipboardManager {
	return e.clipboard
}

// --- snippet.View implementation ---

// Length returns the document length in bytes.
func (e *Editor) Length() int {
	return e.buffer.Length()
}

// Slice returns the document text in [from, to).
func (e *Editor) Slice(from, to int) string {
	return e.buffer.Slice(from, to)
}

// Selection returns the current selection.
func (e *Editor) Selection() types.Selection {
	return e.selection
}

// Dispatch applies a transaction: the edits as one atomic buffer mutation,
// then the selection. Active tabstop group ranges are remapped through the
// edits so they stay valid, and the transaction is recorded in history.
// Malformed edits are a programming error and panic.
func (e *Editor) Dispatch(tx types.Transaction) {
	if len(tx.Edits) > 0 {
		docLen := e.buffer.Length()
		before := e.buffer.Slice(0, docLen)
		applied := edit.NewList(docLen, tx.Edits...)

		if err := e.buffer.ApplyEdits(applied.Edits()); err != nil {
			panic(fmt.Sprintf("core: transaction rejected by buffer: %v", err))
		}
		e.session.Stops.MapThrough(applied)

		selBefore := e.selection
		if tx.Selection != nil {
			e.selection = *tx.Selection
		} else {
			e.selection = applied.MapSelection(e.selection, edit.BiasAfter)
		}

		e.history.Record(history.Step{
			Undo:      applied.Invert(before),
			Redo:      applied,
			SelBefore: selBefore,
			SelAfter:  e.selection,
			Isolated:  tx.Isolate,
			Meta:      tx.Meta,
		})

		if e.eventManager != nil {
			e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edits: tx.Edits})
		}
	} else if tx.Selection != nil {
		e.selection = *tx.Selection
		e.history.UpdateSelection(e.selection, tx.Meta)
		if e.eventManager != nil {
			e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.GetCursor()})
		}
	}
	e.ScrollToCursor()
}

// SetSelection replaces the selection without touching the buffer.
func (e *Editor) SetSelection(sel types.Selection) {
	e.Dispatch(types.Transaction{Selection: &sel})
}

// --- Undo / Redo ---

// Undo reverts the most recent history step. Returns whether anything
// happened.
func (e *Editor) Undo() bool {
	step, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.applyHistoryList(step.Undo)
	e.selection = step.SelBefore
	e.ScrollToCursor()
	logger.Debugf("Editor: Undo applied")
	return true
}

// Redo reapplies the most recently undone step.
func (e *Editor) Redo() bool {
	step, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.applyHistoryList(step.Redo)
	e.selection = step.SelAfter
	e.ScrollToCursor()
	logger.Debugf("Editor: Redo applied")
	return true
}

func (e *Editor) applyHistoryList(l edit.List) {
	if err := e.buffer.ApplyEdits(l.Edits()); err != nil {
		panic(fmt.Sprintf("core: history step rejected by buffer: %v", err))
	}
	e.session.Stops.MapThrough(l)
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edits: l.Edits()})
	}
}

// --- View management ---

// SetViewSize updates the cached view dimensions. Called on resize or before drawing.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	if height > config.StatusBarHeight {
		e.viewHeight = height - config.StatusBarHeight
	} else {
		e.viewHeight = 0 // No space to draw buffer
	}

	// Ensure scrolloff isn't larger than half the view height
	if e.ScrollOff*2 >= e.viewHeight && e.viewHeight > 0 {
		e.ScrollOff = (e.viewHeight - 1) / 2
	} else if e.viewHeight <= 0 {
		e.ScrollOff = 0
	}

	e.ScrollToCursor()
}

// GetViewport returns the viewport origin.
func (e *Editor) GetViewport() (int, int) {
	return e.ViewportY, e.ViewportX
}

// GetCursor returns the main selection head as a line/column position.
func (e *Editor) GetCursor() types.Position {
	return e.buffer.OffsetToPosition(e.selection.MainRange().To)
}

// SaveBuffer saves the buffer to disk.
func (e *Editor) SaveBuffer() error {
	err := e.buffer.Save(e.buffer.FilePath())
	if err != nil {
		return err
	}
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buffer.FilePath()})
	}
	return nil
}
