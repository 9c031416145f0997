// internal/core/clipboard.go
package core

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
)

// ClipboardManager handles yank and paste. It prefers the system clipboard
// and falls back to an internal register when the system one is unavailable
// (headless terminals, missing xclip).
type ClipboardManager struct {
	editor   *Editor
	system   bool
	register string
}

// NewClipboardManager creates a clipboard manager for the editor.
func NewClipboardManager(editor *Editor, systemClipboard bool) *ClipboardManager {
	return &ClipboardManager{editor: editor, system: systemClipboard}
}

// Yank copies the selected text. Returns true if text was copied.
func (m *ClipboardManager) Yank() (bool, error) {
	text := m.editor.SelectedText()
	if text == "" {
		return false, nil
	}
	m.register = text
	if m.system {
		if err := clipboard.WriteAll(text); err != nil {
			logger.Warnf("ClipboardManager: system clipboard write failed: %v", err)
		}
	}
	logger.Debugf("ClipboardManager: Yanked %d bytes", len(text))
	return true, nil
}

// Paste inserts the clipboard content at the selection, replacing any
// selected text. Returns true if text was pasted.
func (m *ClipboardManager) Paste() (bool, error) {
	text, err := m.read()
	if err != nil {
		return false, fmt.Errorf("clipboard read failed: %w", err)
	}
	if text == "" {
		return false, nil
	}
	m.editor.InsertText(text)
	logger.Debugf("ClipboardManager: Pasted %d bytes", len(text))
	return true, nil
}

func (m *ClipboardManager) read() (string, error) {
	if m.system {
		if text, err := clipboard.ReadAll(); err == nil && text != "" {
			return text, nil
		}
	}
	return m.register, nil
}
