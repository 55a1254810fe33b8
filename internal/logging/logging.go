// Package logging builds the zap logger. Output goes to a file because the
// terminal is owned by the interactive UI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/robby/dex/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger for cfg. Verbose forces logging on at debug level.
// When logging is disabled a no-op logger is returned.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	if !cfg.Enabled && !verbose {
		return zap.NewNop(), nil
	}
	if cfg.File == "" {
		return nil, fmt.Errorf("logging enabled but no log file configured")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{cfg.File}

	switch {
	case verbose:
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case cfg.Level != "":
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zcfg.Level = level
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
