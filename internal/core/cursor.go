// internal/core/cursor.go
package core

import (
	"unicode/utf8"

	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// MoveCursor moves the cursor and adjusts the viewport, handling line wraps.
// Any multi-range selection collapses to the single moved cursor.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	pos := e.GetCursor()
	lineCount := e.buffer.LineCount()

	// --- Handle Horizontal Wrap-Around FIRST ---
	if deltaLine == 0 && lineCount > 0 {
		if deltaCol > 0 { // Attempting to move Right
			lineBytes, err := e.buffer.Line(pos.Line)
			if err == nil {
				maxCol := utf8.RuneCount(lineBytes)
				if pos.Col >= maxCol && pos.Line < lineCount-1 { // At or past EOL and not on the last line
					e.placeCursor(types.Position{Line: pos.Line + 1, Col: 0})
					return
				}
			}
		} else if deltaCol < 0 { // Attempting to move Left
			if pos.Col <= 0 && pos.Line > 0 { // At or before BOL and not on the first line
				target := types.Position{Line: pos.Line - 1, Col: 0}
				if prevLineBytes, err := e.buffer.Line(target.Line); err == nil {
					target.Col = utf8.RuneCount(prevLineBytes)
				}
				e.placeCursor(target)
				return
			}
		}
	}

	// --- Default Movement & Clamping ---
	targetLine := pos.Line + deltaLine
	targetCol := pos.Col + deltaCol

	if targetLine < 0 {
		targetLine = 0
	}
	if lineCount == 0 {
		targetLine = 0
	} else if targetLine >= lineCount {
		targetLine = lineCount - 1
	}

	if targetCol < 0 {
		targetCol = 0
	}
	if lineCount > 0 {
		if targetLineBytes, err := e.buffer.Line(targetLine); err == nil {
			maxCol := utf8.RuneCount(targetLineBytes)
			if targetCol > maxCol {
				targetCol = maxCol
			}
		} else {
			targetCol = 0
		}
	} else {
		targetCol = 0
	}

	e.placeCursor(types.Position{Line: targetLine, Col: targetCol})
}

// placeCursor collapses the selection to a cursor at pos.
func (e *Editor) placeCursor(pos types.Position) {
	e.SetSelection(types.Cursor(e.buffer.PositionToOffset(pos)))
}

// SetCursor sets a single cursor at a (clamped) position.
func (e *Editor) SetCursor(pos types.Position) {
	e.placeCursor(pos)
}

// Home moves the cursor to the beginning of the current line.
func (e *Editor) Home() {
	pos := e.GetCursor()
	e.placeCursor(types.Position{Line: pos.Line, Col: 0})
}

// End moves the cursor to the end of the current line.
func (e *Editor) End() {
	pos := e.GetCursor()
	if lineBytes, err := e.buffer.Line(pos.Line); err == nil {
		pos.Col = utf8.RuneCount(lineBytes)
	}
	e.placeCursor(pos)
}

// PageMove moves the cursor a viewport's worth of lines up or down.
func (e *Editor) PageMove(direction int) {
	step := e.viewHeight
	if step <= 0 {
		step = 1
	}
	e.MoveCursor(direction*step, 0)
}

// ScrollToCursor adjusts the viewport so the cursor stays visible within
// the scroll-off margin.
func (e *Editor) ScrollToCursor() {
	if e.viewHeight <= 0 || e.viewWidth <= 0 {
		return
	}
	pos := e.GetCursor()

	if pos.Line < e.ViewportY+e.ScrollOff {
		e.ViewportY = pos.Line - e.ScrollOff
	} else if pos.Line >= e.ViewportY+e.viewHeight-e.ScrollOff {
		e.ViewportY = pos.Line - e.viewHeight + e.ScrollOff + 1
	}
	if e.ViewportY < 0 {
		e.ViewportY = 0
	}

	if pos.Col < e.ViewportX {
		e.ViewportX = pos.Col
	} else if pos.Col >= e.ViewportX+e.viewWidth {
		e.ViewportX = pos.Col - e.viewWidth + 1
	}
	if e.ViewportX < 0 {
		e.ViewportX = 0
	}
}
