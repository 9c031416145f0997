// internal/theme/theme.go
package theme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name, falling back to the base name (part before
// the first dot), then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	baseName := name
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName = name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			if baseName != name {
				logger.Debugf("Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			}
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// TabstopStyle returns the style for a tabstop group color index. Indexes
// wrap around the palette, so any int from the snippet store is safe.
func (t *Theme) TabstopStyle(color int) tcell.Style {
	if color < 0 {
		color = -color
	}
	return t.GetStyle(fmt.Sprintf("tabstop.%d", color%4))
}

// --- DevComfort Dark Theme Definition ---

var DevComfortDark Theme

func init() {
	// --- Palette for DevComfort Dark ---
	dcBackground := tcell.NewHexColor(0x2a2f38) // Slightly muted dark blue/grey (StatusBar BG)
	dcForeground := tcell.NewHexColor(0xc5cdd9) // Soft off-white (Default Text)
	dcComment := tcell.NewHexColor(0x5c6370)    // Muted Grey
	dcOrange := tcell.NewHexColor(0xd19a66)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)
	dcCyan := tcell.NewHexColor(0x56b6c2)
	dcBlue := tcell.NewHexColor(0x61afef)
	dcMagenta := tcell.NewHexColor(0xc678dd)

	// Use terminal background, DevComfort foreground
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// --- UI Elements ---
			"Default":    baseStyle,
			"Selection":  baseStyle.Reverse(true),
			"LineNumber": baseStyle.Foreground(dcComment),

			"StatusBar":         tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			"StatusBarModified": tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground).Bold(true),
			"StatusBarSnippet":  tcell.StyleDefault.Background(dcBackground).Foreground(dcCyan).Bold(true),

			// --- Tabstop palette ---
			// One style per group color index; active tabstop ranges are drawn
			// in the color their expansion pass was assigned.
			"tabstop.0": baseStyle.Foreground(tcell.ColorBlack).Background(dcBlue),
			"tabstop.1": baseStyle.Foreground(tcell.ColorBlack).Background(dcGreen),
			"tabstop.2": baseStyle.Foreground(tcell.ColorBlack).Background(dcOrange),
			"tabstop.3": baseStyle.Foreground(tcell.ColorBlack).Background(dcMagenta),

			// A couple of text styles the status line and messages reuse.
			"comment": baseStyle.Foreground(dcComment).Italic(true),
			"error":   baseStyle.Foreground(dcYellow).Bold(true),
		},
	}

	// Set DevComfortDark as the default theme on init
	CurrentTheme = &DevComfortDark
}

// CurrentTheme is the process-wide active theme.
var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &DevComfortDark
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
