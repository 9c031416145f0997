package config

import "time"

// Base application details
const AppName = "latexsuite"
const ConfigDirName = "latexsuite"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"       // Active theme file
const DefaultConfigFileName = "config.toml"     // Main config file
const DefaultSnippetsFileName = "snippets.toml" // Snippet definitions
const DefaultLogFileName = "latexsuite.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true
