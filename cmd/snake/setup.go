package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// newLogger builds the logger from --log-level and --log-file. Without a log
// file, output goes to fallback. The returned func closes the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closeFn, nil
}

// loadConfig loads the game config and applies the --grid override.
func loadConfig(grid int) (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}
	if grid > 0 {
		cfg.Grid.Size = grid
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// openStore opens the score store selected by the flags. When the database
// cannot be opened the game still runs on an in-memory store.
func openStore(logger *log.Logger) (session.ScoreStore, func()) {
	if flagScoresFile != "" {
		f, err := storage.OpenFile(flagScoresFile)
		if err == nil {
			return f, func() {}
		}
		logger.Warn("could not use scores file", "path", flagScoresFile, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not use scores file: %v\n", err)
		return storage.NewMemory(), func() {}
	}

	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return storage.NewMemory(), func() {}
	}
	return db, func() { db.Close() }
}
