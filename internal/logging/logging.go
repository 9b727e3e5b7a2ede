// Package logging builds the process logger. Output is quiet by default;
// verbose mode switches to a development logger with debug-level request
// traces on stderr.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the process logger. With verbose false the logger only surfaces
// warnings and errors, so normal command output stays clean.
func New(verbose bool) *zap.Logger {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		log, err := cfg.Build()
		if err != nil {
			return zap.NewNop()
		}
		return log
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
