// cmd/latexsuite/main.go
package main

import (
	"fmt"
	"io"
	stlog "log"
	"os"
	"path/filepath"

	"github.com/you-n-g/obsidian-latex-suite/internal/app"
	"github.com/you-n-g/obsidian-latex-suite/internal/config"
	"github.com/you-n-g/obsidian-latex-suite/internal/logger"
)

const version = "0.1.0"

func main() {
	// --- Argument & Flag Parsing ---
	flags := &config.Flags{}
	args := flags.ParseFlags()

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	// --- Configuration Loading ---
	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logWriter, logFile := openLogWriter(cfg.Logger.LogFilePath)
	if logFile != nil {
		defer logFile.Close()
	}
	logger.Init(cfg.Logger, logWriter)

	logger.Infof("Starting %s...", config.AppName)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create and Run App ---
	editorApp, err := app.NewApp(filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := editorApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}

// openLogWriter resolves the configured log destination. "-" means stderr,
// empty means the default log file next to the user config.
func openLogWriter(path string) (io.Writer, *os.File) {
	if path == "-" {
		return os.Stderr, nil
	}
	if path == "" {
		if cacheDir, err := os.UserCacheDir(); err == nil {
			dir := filepath.Join(cacheDir, config.AppName)
			if err := os.MkdirAll(dir, 0o755); err == nil {
				path = filepath.Join(dir, config.DefaultLogFileName)
			}
		}
		if path == "" {
			path = config.DefaultLogFileName
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		stlog.Printf("Warning: cannot open log file '%s': %v, logging disabled", path, err)
		return io.Discard, nil
	}
	return f, f
}
