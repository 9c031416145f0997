// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/rivo/uniseg"

	"github.com/you-n-g/obsidian-latex-suite/internal/core"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
	"github.com/you-n-g/obsidian-latex-suite/internal/theme"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

func calculateVisualColumn(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	str := string(line)
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(str)

	for gr.Next() { // Iterate through grapheme clusters (user-perceived characters)
		if currentRuneIndex >= runeIndex {
			break
		}
		runes := gr.Runes()
		width := gr.Width() // Use uniseg's width calculation

		visualWidth += width
		currentRuneIndex += len(runes)
	}

	return visualWidth
}

// offsetInRanges reports whether a byte offset lies in any [From, To) range.
func offsetInRanges(offset int, ranges []types.SelRange) bool {
	for _, r := range ranges {
		if offset >= r.From && offset < r.To {
			return true
		}
	}
	return false
}

// DrawBuffer draws the *visible* portion using the provided theme. Active
// tabstop group ranges are drawn in their palette style, the selection on
// top of that.
func DrawBuffer(tuiManager *TUI, editor *core.Editor, activeTheme *theme.Theme) {
	if activeTheme == nil {
		logger.Warnf("DrawBuffer called with nil theme, using package default.")
		activeTheme = &theme.DevComfortDark
	}

	defaultStyle := activeTheme.GetStyle("Default")
	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	selectionStyle := activeTheme.GetStyle("Selection")

	width, height := tuiManager.Size()
	viewY, viewX := editor.GetViewport()
	selection := editor.Selection()
	groups := editor.Session().Stops.Groups()
	statusBarHeight := 1
	viewHeight := height - statusBarHeight

	if viewHeight <= 0 || width <= 0 {
		return
	}

	buf := editor.GetBuffer()
	lines := buf.Lines()
	lineCount := len(lines)
	if lineCount == 0 {
		lineCount = 1
	} // Avoid Log10(0)

	// --- Calculate Gutter Width ---
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	lineNumberPadding := 1 // Space between number and text
	gutterWidth := maxDigits + lineNumberPadding
	if gutterWidth >= width { // Not enough space for gutter and text
		gutterWidth = 0 // Disable gutter if screen too narrow
	}
	textAreaWidth := width - gutterWidth

	// --- Draw Loop ---
	for screenY := 0; screenY < viewHeight; screenY++ {
		bufferLineIdx := screenY + viewY

		// --- A: Fill the entire line with the theme's default style ---
		for fillX := 0; fillX < width; fillX++ {
			tuiManager.screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}

		// --- B: Draw Line Number Gutter ---
		if gutterWidth > 0 {
			lineNumStr := ""
			currentLineStyle := lineNumberStyle
			if bufferLineIdx >= 0 && bufferLineIdx < len(lines) {
				lineNumStr = fmt.Sprintf("%*d", maxDigits, bufferLineIdx+1)

				if editor.GetCursor().Line == bufferLineIdx {
					currentLineStyle = lineNumberStyle.Bold(true)
				}
			}

			lineNumRunes := []rune(lineNumStr)
			for i, r := range lineNumRunes {
				drawX := i
				if drawX < gutterWidth-lineNumberPadding {
					tuiManager.screen.SetContent(drawX, screenY, r, nil, currentLineStyle)
				}
			}
		}

		// Check if buffer line exists
		if bufferLineIdx < 0 || bufferLineIdx >= len(lines) {
			continue
		}

		// --- C: Draw Buffer Text ---
		lineBytes := lines[bufferLineIdx]
		lineStr := string(lineBytes)
		lineStartOffset := buf.PositionToOffset(types.Position{Line: bufferLineIdx})
		gr := uniseg.NewGraphemes(lineStr)

		currentVisualX := 0
		currentByteOffset := 0

		for gr.Next() { // Iterate through grapheme clusters
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			clusterVisualStart := currentVisualX
			clusterVisualEnd := currentVisualX + clusterWidth

			// Screen X relative to text area, accounting for horizontal
			// scroll and the gutter width
			screenX := (clusterVisualStart - viewX) + gutterWidth

			if clusterVisualEnd > viewX && clusterVisualStart < viewX+textAreaWidth {
				// --- Determine Style (Tabstop < Selection) ---
				currentStyle := defaultStyle
				docOffset := lineStartOffset + currentByteOffset

				for _, g := range groups {
					if offsetInRanges(docOffset, g.Ranges) {
						currentStyle = activeTheme.TabstopStyle(g.Color)
						break
					}
				}
				if offsetInRanges(docOffset, selection.Ranges) {
					currentStyle = selectionStyle
				}

				// --- Draw the Cluster ---
				if screenX >= gutterWidth && screenX < width {
					mainRune := clusterRunes[0]
					combining := clusterRunes[1:]

					if mainRune == '\t' {
						// Basic tab expansion (spaces in the current style)
						tabSpaces := 4
						visualScreenX := currentVisualX - viewX + gutterWidth
						spacesToDraw := tabSpaces - (visualScreenX % tabSpaces)
						for i := 0; i < spacesToDraw && screenX+i < width; i++ {
							tuiManager.screen.SetContent(screenX+i, screenY, ' ', nil, currentStyle)
						}
					} else {
						tuiManager.screen.SetContent(screenX, screenY, mainRune, combining, currentStyle)
						// Fill remaining cells for wide characters
						for cw := 1; cw < clusterWidth; cw++ {
							fillX := screenX + cw
							if fillX < width {
								tuiManager.screen.SetContent(fillX, screenY, ' ', nil, currentStyle)
							}
						}
					}
				}
			}

			currentVisualX += clusterWidth
			currentByteOffset += len(gr.Bytes())
			// Stop drawing past the visible text area edge
			if currentVisualX >= viewX+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor using visual width calculations.
func DrawCursor(tuiManager *TUI, editor *core.Editor) {
	cursor := editor.GetCursor()
	viewY, viewX := editor.GetViewport()

	// Calculate gutter width
	lineCount := editor.GetBuffer().LineCount()
	if lineCount == 0 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	lineNumberPadding := 1
	gutterWidth := maxDigits + lineNumberPadding
	width, height := tuiManager.Size()
	if gutterWidth >= width {
		gutterWidth = 0
	}

	// Get current line to calculate visual offset
	lineBytes, err := editor.GetBuffer().Line(cursor.Line)
	cursorVisualCol := 0
	if err == nil {
		cursorVisualCol = calculateVisualColumn(lineBytes, cursor.Col)
	} else {
		logger.Debugf("DrawCursor: Error getting line %d: %v", cursor.Line, err)
	}

	screenX := (cursorVisualCol - viewX) + gutterWidth
	screenY := cursor.Line - viewY

	statusBarHeight := 1
	viewHeight := height - statusBarHeight
	textAreaWidth := width - gutterWidth

	// Check against screen boundaries AND ensure it's not within the gutter itself
	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= viewHeight || viewHeight <= 0 || textAreaWidth <= 0 {
		tuiManager.screen.HideCursor()
	} else {
		tuiManager.screen.ShowCursor(screenX, screenY)
	}
}
