// internal/app/app.go
// Package app owns the screen, the editor and the event loop, and wires the
// snippet engine into them.
package app

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/you-n-g/obsidian-latex-suite/internal/buffer"
	"github.com/you-n-g/obsidian-latex-suite/internal/config"
	snippetctx "github.com/you-n-g/obsidian-latex-suite/internal/context"
	"github.com/you-n-g/obsidian-latex-suite/internal/core"
	"github.com/you-n-g/obsidian-latex-suite/internal/event"
	"github.com/you-n-g/obsidian-latex-suite/internal/input"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
	"github.com/you-n-g/obsidian-latex-suite/internal/modehandler"
	"github.com/you-n-g/obsidian-latex-suite/internal/statusbar"
	"github.com/you-n-g/obsidian-latex-suite/internal/template"
	"github.com/you-n-g/obsidian-latex-suite/internal/theme"
	"github.com/you-n-g/obsidian-latex-suite/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	tuiManager   *tui.TUI
	editor       *core.Editor
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	modeHandler  *modehandler.ModeHandler
	themeManager *theme.Manager
	activeTheme  *theme.Theme
	registry     *template.Registry
	detector     *snippetctx.Detector
	filePath     string

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance. Configuration
// must be loaded before calling this.
func NewApp(filePath string) (*App, error) {
	cfg := config.Get()

	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	buf := buffer.NewSliceBuffer()
	if loadErr := buf.Load(filePath); loadErr != nil {
		logger.Warnf("App: error loading file '%s': %v", filePath, loadErr)
	}

	editor := core.NewEditor(buf)
	inputProcessor := input.NewInputProcessor()
	eventManager := event.NewManager()
	themeManager := theme.NewManager()
	activeTheme := themeManager.Current()
	statusBar := statusbar.New(statusBarConfig(activeTheme))
	quitChan := make(chan struct{})

	editor.SetEventManager(eventManager)

	// --- Snippet engine wiring ---
	defs, err := config.LoadSnippetsFile(cfg.Snippets.FilePath)
	if err != nil {
		logger.Warnf("App: snippets file unusable, falling back to built-ins: %v", err)
	}
	if len(defs) == 0 {
		defs = template.DefaultSnippets()
	}
	registry := template.NewRegistry(defs)
	detector := snippetctx.NewDetector(filePath)

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: inputProcessor,
		EventManager:   eventManager,
		StatusBar:      statusBar,
		Registry:       registry,
		Detector:       detector,
		Snippets:       cfg.Snippets,
		QuitSignal:     quitChan,
	})

	appInstance := &App{
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		activeTheme:   activeTheme,
		registry:      registry,
		detector:      detector,
		filePath:      filePath,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}

	// --- Subscribe Core Components (App level wiring) ---
	eventManager.Subscribe(event.TypeCursorMoved, appInstance.handleCursorMovedForStatus)
	eventManager.Subscribe(event.TypeBufferModified, appInstance.handleBufferChangedForStatus)
	eventManager.Subscribe(event.TypeBufferSaved, appInstance.handleBufferChangedForStatus)
	eventManager.Subscribe(event.TypeSnippetExpanded, appInstance.handleSnippetExpanded)
	eventManager.Subscribe(event.TypeTabstopAdvanced, appInstance.handleSnippetStateChanged)
	eventManager.Subscribe(event.TypeSnippetSessionEnded, appInstance.handleSnippetStateChanged)

	registerAppCommands(appInstance)

	// --- Final Setup ---
	width, height := tuiManager.Size()
	editor.SetViewSize(width, height)

	return appInstance, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.detector.Close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("latexsuite - Ctrl+S Save | Tab Next Stop | ESC Quit")
	a.requestRedraw()

	// --- Main Drawing Loop ---
	for {
		select {
		case <-a.quit: // Wait for quit signal from ModeHandler
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.GetBuffer().IsModified() {
				log.Println("Warning: Exited with unsaved changes.")
			}
			return nil
		case <-a.redrawRequest:
			w, h := a.tuiManager.Size()
			a.editor.SetViewSize(w, h)
			a.drawEditor()
		}
	}
}

// eventLoop handles TUI events, delegating key events to ModeHandler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true

		case *tcell.EventKey:
			// Delegate ALL key handling to ModeHandler
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// --- Drawing ---

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()
	tui.DrawBuffer(a.tuiManager, a.editor, a.activeTheme)
	a.statusBar.Draw(screen, width, height)
	tui.DrawCursor(a.tuiManager, a.editor)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())

	ses := a.editor.Session()
	if ses.Active() {
		a.statusBar.SetSnippetInfo(ses.Stops.Len())
	} else {
		a.statusBar.SetSnippetInfo(-1)
	}

	// If in command mode, ensure the command buffer is displayed
	if a.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	}
}

// statusBarConfig builds the status bar styling from a theme.
func statusBarConfig(t *theme.Theme) statusbar.Config {
	cfg := statusbar.DefaultConfig()
	cfg.StyleDefault = t.GetStyle("StatusBar")
	cfg.StyleModified = t.GetStyle("StatusBarModified")
	cfg.StyleMessage = t.GetStyle("StatusBarMessage")
	cfg.StyleSnippet = t.GetStyle("StatusBarSnippet")
	cfg.MessageTimeout = config.MessageTimeout
	return cfg
}

// --- Event Handlers (App reacts to events) ---

func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

func (a *App) handleBufferChangedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

func (a *App) handleSnippetExpanded(e event.Event) bool {
	if data, ok := e.Data.(event.SnippetExpandedData); ok {
		logger.DebugTagf("snippet", "App: snippet %q expanded", data.Trigger)
	}
	a.updateStatusBarContent()
	return false
}

func (a *App) handleSnippetStateChanged(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// GetModeHandler allows command registration against the mode handler.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.activeTheme
}

// SetTheme changes the app's active theme and triggers a redraw.
func (a *App) SetTheme(t *theme.Theme) {
	if t != nil {
		a.activeTheme = t
		theme.SetCurrentTheme(t)
		a.statusBar.SetConfig(statusBarConfig(t))
		a.requestRedraw()
	}
}
