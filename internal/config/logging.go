package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sadopc/modus/internal/state"
)

// StateConfig converts the loaded settings into the constants the state
// store is opened with.
func (c Config) StateConfig(logger *log.Logger) state.Config {
	return state.Config{
		Keys: state.Keys{
			Tasks:       c.Storage.TasksKey,
			Modes:       c.Storage.ModesKey,
			FirstLaunch: c.Storage.FirstLaunchKey,
		},
		Seed:     c.SeedModes(),
		MaxModes: c.Modes.Max,
		Logger:   logger,
	}
}

// OpenLogger creates the application logger. Logs go to the configured
// file (or the default log path) because the TUI owns the terminal. The
// returned closer releases the file.
func (l Log) OpenLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level %q: %w", l.Level, err)
	}

	path := l.Path
	if path == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "modus",
	})
	return logger, f, nil
}
