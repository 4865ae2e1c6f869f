// Package logging wires the zap logger used for diagnostics. The default
// level is warn so normal command output stays clean; dropping to debug
// exposes engine internals (run ids, per-step outcomes, run metrics).
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop().Sugar()

// Options configures Init.
type Options struct {
	Level  string // debug, info, warn, error (default warn)
	Format string // "human" (colored console) or "json"
	File   string // optional additional sink
}

// Init builds the process-wide logger. Called once at CLI startup; before
// that, L returns a no-op logger so library code and tests need no setup.
func Init(opts Options) error {
	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.WarnLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	// Diagnostics go to stderr; stdout belongs to command output.
	outputs := []string{"stderr"}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		outputs = append(outputs, opts.File)
	}
	cfg.OutputPaths = outputs

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built.Sugar()
	return nil
}

// L returns the current logger.
func L() *zap.SugaredLogger {
	return logger
}

// Sync flushes buffered entries. Called on CLI exit; sync errors on stderr
// sinks are expected and ignored.
func Sync() {
	_ = logger.Sync()
}
