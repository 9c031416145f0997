// internal/app/commands.go
package app

import (
	"fmt"
	"strings"

	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
)

// registerAppCommands registers built-in commands like :theme and :w.
func registerAppCommands(app *App) {
	mh := app.modeHandler

	// --- Theme Command ---
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			// Show current theme
			app.statusBar.SetTemporaryMessage("Current theme: %s", app.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := app.themeManager.SetTheme(themeName); err != nil {
			themeList := strings.Join(app.themeManager.ListThemes(), ", ")
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, themeList)
		}
		app.SetTheme(app.themeManager.Current())
		app.statusBar.SetTemporaryMessage("Theme set to: %s", themeName)
		return nil
	}

	// --- Theme List Command ---
	themeListCmdFunc := func(args []string) error {
		themeList := strings.Join(app.themeManager.ListThemes(), ", ")
		app.statusBar.SetTemporaryMessage("Available themes: %s", themeList)
		return nil
	}

	// --- File / Session Commands ---
	writeCmdFunc := func(args []string) error {
		if err := app.editor.SaveBuffer(); err != nil {
			return fmt.Errorf("save failed: %w", err)
		}
		app.statusBar.SetTemporaryMessage("Saved %s", app.editor.GetBuffer().FilePath())
		return nil
	}

	quitCmdFunc := func(args []string) error {
		mh.Quit(false)
		return nil
	}

	forceQuitCmdFunc := func(args []string) error {
		mh.Quit(true)
		return nil
	}

	// --- Register the commands ---
	register := func(name string, fn func(args []string) error) {
		if err := mh.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
	register("theme", themeCmdFunc)
	register("themes", themeListCmdFunc)
	register("w", writeCmdFunc)
	register("q", quitCmdFunc)
	register("q!", forceQuitCmdFunc)
}
