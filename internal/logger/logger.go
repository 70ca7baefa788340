package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Env   string // "production" selects the JSON production config
	Level string // debug, info, warn, error; empty keeps the preset level

	// File redirects output to a file instead of stderr. The TUI owns the
	// terminal, so it always logs to a file.
	File string
}

// New builds a zap logger for the given environment.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if opts.Level != "" {
		lvl, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}

	return cfg.Build()
}

// DefaultLogPath resolves the TUI log file:
// 1. $XDG_STATE_HOME/fridayfun/fridayfun.log
// 2. ~/.local/state/fridayfun/fridayfun.log
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "fridayfun", "fridayfun.log"), nil
}
