// internal/core/history/history.go
// Package history keeps the undo/redo stack as inverted edit lists. One step
// per transaction; plain typing coalesces, isolated steps never do, and the
// snippet expansion transactions fold into a single step.
package history

import (
	"sync"

	"github.com/you-n-g/obsidian-latex-suite/internal/edit"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
	"github.com/you-n-g/obsidian-latex-suite/internal/snippet"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

const DefaultMaxHistory = 100

// Step is one undoable unit. Redo is the edit list as applied; Undo is its
// inverse against the document the step was applied to. Selections are
// captured on both sides so undo/redo restore them.
type Step struct {
	Undo      edit.List
	Redo      edit.List
	SelBefore types.Selection
	SelAfter  types.Selection
	Isolated  bool
	Meta      string

	open bool // still absorbing snippet-expansion transactions
}

// Manager handles the undo/redo stack.
type Manager struct {
	steps      []Step
	current    int // index of the next step to potentially Redo
	maxHistory int
	mutex      sync.Mutex
}

// NewManager creates a history manager.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		steps:      make([]Step, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Record adds a step, coalescing with the previous one where the rules
// allow, and clears any redo history.
func (m *Manager) Record(step Step) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.current < len(m.steps) {
		m.steps = m.steps[:m.current]
	}

	step.open = step.Meta == snippet.MetaSnippetStart

	if len(m.steps) > 0 {
		last := &m.steps[len(m.steps)-1]
		if m.shouldCoalesce(last, &step) {
			last.Redo = last.Redo.Compose(step.Redo)
			last.Undo = step.Undo.Compose(last.Undo)
			last.SelAfter = step.SelAfter
			logger.Debugf("History: Coalesced step. Count: %d", len(m.steps))
			return
		}
		last.open = false
	}

	m.steps = append(m.steps, step)
	if len(m.steps) > m.maxHistory {
		m.steps = m.steps[len(m.steps)-m.maxHistory:]
	}
	m.current = len(m.steps)
	logger.Debugf("History: Recorded step. Index: %d, Count: %d", m.current, len(m.steps))
}

// shouldCoalesce decides whether step folds into last. Called with the lock
// held and last known to exist.
func (m *Manager) shouldCoalesce(last, step *Step) bool {
	if step.Isolated || last.Isolated {
		return false
	}
	if step.Meta == snippet.MetaSnippetStart {
		return false
	}
	// The finalize edit belongs to the expansion step that opened.
	if last.open && step.Meta == snippet.MetaSnippetFinalize {
		return true
	}
	if last.open || step.Meta != "" || last.Meta != "" {
		return false
	}
	return contiguousTyping(last, step)
}

// contiguousTyping reports whether step is plain single-rune typing directly
// after last, the classic undo-granularity merge.
func contiguousTyping(last, step *Step) bool {
	lastEdits := last.Redo.Edits()
	stepEdits := step.Redo.Edits()
	if len(lastEdits) != len(stepEdits) {
		return false
	}
	for _, e := range stepEdits {
		if !e.IsInsert() || e.Insert == "" || e.Insert == "\n" {
			return false
		}
	}
	// Each insertion must continue where the previous one (mapped through
	// last's own edits) left off.
	for i, e := range stepEdits {
		prev := lastEdits[i]
		if !prev.IsInsert() {
			return false
		}
		end := last.Redo.MapPos(prev.From, edit.BiasAfter)
		if e.From != end {
			return false
		}
	}
	return true
}

// UpdateSelection records a selection-only transaction onto the last step.
// A snippet-end meta closes the step's absorption window.
func (m *Manager) UpdateSelection(sel types.Selection, meta string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.steps) == 0 || m.current != len(m.steps) {
		return
	}
	last := &m.steps[len(m.steps)-1]
	last.SelAfter = sel
	if meta == snippet.MetaSnippetEnd {
		last.open = false
	}
}

// Undo pops the last step. The caller applies step.Undo and restores
// step.SelBefore.
func (m *Manager) Undo() (Step, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.current <= 0 {
		logger.Debugf("History: Nothing to undo.")
		return Step{}, false
	}
	m.current--
	return m.steps[m.current], true
}

// Redo returns the next undone step. The caller applies step.Redo and
// restores step.SelAfter.
func (m *Manager) Redo() (Step, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.current >= len(m.steps) {
		logger.Debugf("History: Nothing to redo.")
		return Step{}, false
	}
	step := m.steps[m.current]
	m.current++
	return step, true
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.steps = m.steps[:0]
	m.current = 0
	logger.Debugf("History: Cleared.")
}

// CanUndo returns true if there are steps that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.current > 0
}

// CanRedo returns true if there are steps that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.current < len(m.steps)
}
