// internal/modehandler/modehandler.go
// Package modehandler routes key events: normal-mode editing with snippet
// expansion and tabstop navigation, plus a ':' command mode.
package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/you-n-g/obsidian-latex-suite/internal/config"
	snippetctx "github.com/you-n-g/obsidian-latex-suite/internal/context"
	"github.com/you-n-g/obsidian-latex-suite/internal/core"
	"github.com/you-n-g/obsidian-latex-suite/internal/event"
	"github.com/you-n-g/obsidian-latex-suite/internal/input"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
	"github.com/you-n-g/obsidian-latex-suite/internal/snippet"
	"github.com/you-n-g/obsidian-latex-suite/internal/statusbar"
	"github.com/you-n-g/obsidian-latex-suite/internal/template"
	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

// CommandFunc is a ':' command implementation.
type CommandFunc func(args []string) error

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	registry       *template.Registry
	detector       *snippetctx.Detector
	snippetCfg     config.SnippetsConfig
	quitSignal     chan<- struct{} // Channel to signal app termination

	// Internal State
	currentMode      InputMode
	cmdBuffer        string
	commands         map[string]CommandFunc
	forceQuitPending bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Registry       *template.Registry
	Detector       *snippetctx.Detector
	Snippets       config.SnippetsConfig
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		registry:       cfg.Registry,
		detector:       cfg.Detector,
		snippetCfg:     cfg.Snippets,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	var actionProcessed bool
	switch mh.currentMode {
	case ModeNormal:
		actionProcessed = mh.handleActionNormal(actionEvent, ev)
	case ModeCommand:
		actionProcessed = mh.handleActionCommand(actionEvent)
	default:
		logger.Debugf("Warning: Unknown input mode: %v", mh.currentMode)
		actionProcessed = false
	}

	needsRedraw := actionProcessed || (actionEvent.Action == input.ActionEscape && mh.forceQuitPending)
	return needsRedraw
}

// handleActionNormal handles actions when in ModeNormal.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent, ev *tcell.EventKey) bool {
	actionProcessed := true
	isShift := ev.Modifiers()&tcell.ModShift != 0

	isMovementAction := false
	switch actionEvent.Action {
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionMovePageUp, input.ActionMovePageDown, input.ActionMoveHome, input.ActionMoveEnd:
		isMovementAction = true
	}

	// Shift + movement anchors or extends the selection; plain movement
	// drops it.
	if isMovementAction && isShift {
		mh.editor.StartOrUpdateSelection()
	}
	if isMovementAction && !isShift {
		mh.editor.ClearSelection()
	}

	switch actionEvent.Action {
	// --- Mode Switching ---
	case input.ActionEnterCommandMode:
		mh.editor.ClearSelection()
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetTemporaryMessage(":")
		logger.Debugf("ModeHandler: Entering Command Mode")

	// --- Quit/Save ---
	case input.ActionEscape:
		// Esc first cancels an active snippet session, then quits.
		if mh.editor.Session().Active() {
			mh.cancelSnippetSession()
		} else {
			mh.requestQuit()
			actionProcessed = false
		}
	case input.ActionQuit:
		mh.requestQuit()
		actionProcessed = false
	case input.ActionForceQuit:
		close(mh.quitSignal)
		actionProcessed = false

	case input.ActionSave:
		err := mh.editor.SaveBuffer()
		savedPath := mh.editor.GetBuffer().FilePath()
		if savedPath == "" {
			savedPath = "[No Name]"
		}
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Buffer saved to %s", savedPath)
		}

	// --- Movement ---
	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		mh.editor.PageMove(-1)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1)
	case input.ActionMoveHome:
		mh.editor.Home()
	case input.ActionMoveEnd:
		mh.editor.End()

	// --- Undo / Redo ---
	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
			actionProcessed = false
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
			actionProcessed = false
		}

	// --- Yank/Paste ---
	case input.ActionYank:
		copied, err := mh.editor.Clipboard().Yank()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Yank failed: %v", err)
			actionProcessed = false
		} else if copied {
			mh.statusBar.SetTemporaryMessage("Selection yanked")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to yank")
		}

	case input.ActionPaste:
		pasted, err := mh.editor.Clipboard().Paste()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
			actionProcessed = false
		} else if !pasted {
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
			actionProcessed = false
		}

	// --- Text Modification ---
	case input.ActionInsertRune:
		mh.handleRune(actionEvent.Rune)
	case input.ActionInsertNewLine:
		mh.editor.InsertNewLine()
	case input.ActionDeleteCharBackward:
		mh.editor.DeleteBackward()
	case input.ActionDeleteCharForward:
		mh.editor.DeleteForward()

	// --- Snippets ---
	case input.ActionTab:
		mh.handleTab()

	case input.ActionUnknown:
		actionProcessed = false
	default:
		actionProcessed = false
	}

	// Extend the selection to the cursor's new position.
	if isMovementAction && isShift {
		mh.editor.UpdateSelectionEnd()
	}

	// Reset force quit flag on any other successful action
	if actionEvent.Action != input.ActionEscape && actionEvent.Action != input.ActionQuit &&
		actionEvent.Action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}

	return actionProcessed
}

func (mh *ModeHandler) requestQuit() {
	if mh.editor.GetBuffer().IsModified() && !mh.forceQuitPending {
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
		mh.forceQuitPending = true
	} else {
		close(mh.quitSignal)
	}
}

// handleRune routes a typed character: an auto snippet whose trigger the
// character completes expands in the same input event, otherwise the
// character is inserted.
func (mh *ModeHandler) handleRune(r rune) {
	if mh.tryExpand(string(r), true) {
		return
	}
	mh.editor.InsertRune(r)
}

// handleTab expands a tab-triggered snippet at the cursor, or advances to
// the next tabstop, or falls back to a literal tab.
func (mh *ModeHandler) handleTab() {
	if mh.tryExpand("", false) {
		return
	}
	if snippet.AdvanceToNext(mh.editor, mh.editor.Session()) {
		mh.eventManager.Dispatch(event.TypeTabstopAdvanced,
			event.TabstopAdvancedData{Remaining: mh.editor.Session().Stops.Len()})
		return
	}
	mh.editor.InsertTab()
}

// tryExpand matches the text before the cursor (plus the pending key, for
// the per-keystroke path) against the registry and runs the expansion
// pipeline on a hit. Returns false when nothing matched.
func (mh *ModeHandler) tryExpand(pendingKey string, autoOnly bool) bool {
	if mh.registry == nil || mh.registry.Len() == 0 {
		return false
	}
	if autoOnly && !mh.snippetCfg.AutoExpand {
		return false
	}
	sel := mh.editor.Selection()
	if len(sel.Ranges) != 1 || !sel.MainRange().Empty() {
		return false
	}
	cursor := sel.MainRange().To

	if autoOnly && !mh.expandAllowedAt(cursor) {
		return false
	}

	// Match against the current line up to the cursor; triggers never span
	// lines.
	buf := mh.editor.GetBuffer()
	lineStart := buf.PositionToOffset(types.Position{Line: buf.OffsetToPosition(cursor).Line})
	textBefore := mh.editor.Slice(lineStart, cursor) + pendingKey

	m := mh.registry.Match(textBefore, autoOnly)
	if m == nil {
		return false
	}

	// The matched text includes the pending key, which is not in the
	// document yet.
	from := cursor - (len(m.MatchedText) - len(pendingKey))
	ses := mh.editor.Session()
	ses.Queue.Push(snippet.NewTemplateRequest(from, cursor, pendingKey, template.Parse(m.Replacement)))
	if !snippet.ExpandPending(mh.editor, ses) {
		return false
	}
	mh.eventManager.Dispatch(event.TypeSnippetExpanded,
		event.SnippetExpandedData{Trigger: m.Snippet.Trigger})
	logger.DebugTagf("snippet", "Expanded %q at %d", m.Snippet.Trigger, from)
	return true
}

// expandAllowedAt applies context gating: auto snippets stay quiet inside
// comments and strings unless configured otherwise.
func (mh *ModeHandler) expandAllowedAt(offset int) bool {
	if mh.detector == nil {
		return true
	}
	switch mh.detector.KindAt(mh.editor.GetBuffer(), offset) {
	case snippetctx.KindComment:
		return mh.snippetCfg.ExpandInComments
	case snippetctx.KindString:
		return mh.snippetCfg.ExpandInStrings
	default:
		return true
	}
}

func (mh *ModeHandler) cancelSnippetSession() {
	mh.editor.Session().Cancel()
	mh.eventManager.Dispatch(event.TypeSnippetSessionEnded, event.SnippetSessionEndedData{})
	mh.statusBar.SetTemporaryMessage("Snippet session canceled")
	logger.DebugTagf("snippet", "Session canceled")
}

// Quit signals the application to exit. With force set, unsaved changes are
// discarded without the usual confirmation round-trip.
func (mh *ModeHandler) Quit(force bool) {
	if force {
		mh.forceQuitPending = true
	}
	mh.requestQuit()
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns a display label for the current mode. Normal
// mode is the quiet default and renders as empty.
func (mh *ModeHandler) GetCurrentModeString() string {
	switch mh.currentMode {
	case ModeCommand:
		return "COMMAND"
	default:
		return ""
	}
}

// GetCommandBuffer returns the current command buffer content (e.g., for display).
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}
