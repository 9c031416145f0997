// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"

	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified // Fired when buffer content changes (insert/delete)
	TypeBufferLoaded   // Fired after a buffer is successfully loaded
	TypeBufferSaved    // Fired after a buffer is successfully saved
	TypeCursorMoved    // Fired when the cursor position changes

	// Input Events
	TypeKeyPressed // Raw key press event forwarded

	// Snippet Events
	TypeSnippetExpanded     // Fired after a snippet substitution lands in the buffer
	TypeTabstopAdvanced     // Fired when the selection jumps to the next tabstop group
	TypeSnippetSessionEnded // Fired when the last tabstop group is consumed or cleared

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins

	TypeThemeChanged // Fired when the theme is changed
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// BufferModifiedData contains info about buffer changes.
type BufferModifiedData struct {
	Edits []types.TextEdit // The edits applied in this transaction
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// SnippetExpandedData identifies the snippet that fired.
type SnippetExpandedData struct {
	Trigger string
}

// TabstopAdvancedData reports how many tabstop groups remain active.
type TabstopAdvancedData struct {
	Remaining int
}

// SnippetSessionEndedData is empty for now.
type SnippetSessionEndedData struct{}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
