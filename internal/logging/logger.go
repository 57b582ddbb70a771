// Package logging configures the process-wide zap logger.
//
// The terminal belongs to the TUI, so log output never goes to stdout while
// the interactive client runs: logging is silent unless a level is set, and
// entries are written to a file when one is configured.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar overrides the level when no explicit level is passed.
const LogLevelEnvVar = "PATENTAI_LOG_LEVEL"

var logger = zap.NewNop()

// Options selects the verbosity and destination of the logger.
type Options struct {
	Level string
	// File receives log entries. Empty means stderr.
	File string
}

// Initialize replaces the global logger. With no level (neither in opts nor in
// PATENTAI_LOG_LEVEL) a no-op logger is installed.
func Initialize(opts Options) (*zap.Logger, error) {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if level == "" {
		level = strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnvVar)))
	}
	if level == "" {
		logger = zap.NewNop()
		return logger, nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	output := "stderr"
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		output = opts.File
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return logger, nil
}

// L returns the global logger.
func L() *zap.Logger {
	return logger
}

// Named returns a child of the global logger tagged with component.
func Named(component string) *zap.Logger {
	return logger.Named(component)
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger.Sync()
}
