// internal/config/snippets.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
)

// SnippetDef is one snippet definition as read from the snippets TOML file.
type SnippetDef struct {
	Trigger     string `toml:"trigger"`
	Replacement string `toml:"replacement"`
	// Options is a string of single-character flags:
	//   A - expand automatically as soon as the trigger is typed
	//   w - only expand at a word boundary
	//   r - treat the trigger as a regular expression
	Options     string `toml:"options"`
	Description string `toml:"description"`
}

type snippetsFile struct {
	Snippets []SnippetDef `toml:"snippets"`
}

// LoadSnippetsFile reads snippet definitions from a TOML file holding
// [[snippets]] tables. A missing file yields (nil, nil) so callers can fall
// back to built-in definitions.
func LoadSnippetsFile(filePath string) ([]SnippetDef, error) {
	if filePath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, nil
		}
		filePath = filepath.Join(configDir, AppName, DefaultSnippetsFileName)
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		logger.Debugf("Snippets file not found: %s", filePath)
		return nil, nil
	}

	var file snippetsFile
	metadata, err := toml.DecodeFile(filePath, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snippets file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Snippets file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}

	valid := make([]SnippetDef, 0, len(file.Snippets))
	for _, def := range file.Snippets {
		if def.Trigger == "" {
			logger.Warnf("Snippets file '%s': skipping snippet with empty trigger", filePath)
			continue
		}
		valid = append(valid, def)
	}
	logger.Infof("Loaded %d snippet definition(s) from %s", len(valid), filePath)
	return valid, nil
}
