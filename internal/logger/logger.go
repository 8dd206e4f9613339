// Package logger builds the zap loggers used by the converter and the CLI.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log level. Quiet wins over Verbose.
type Options struct {
	Verbose bool
	Quiet   bool
	// Development switches to the console encoder for human-readable output.
	Development bool
}

// Level returns the zap level the options select.
func (o Options) Level() zapcore.Level {
	switch {
	case o.Quiet:
		return zap.ErrorLevel
	case o.Verbose:
		return zap.DebugLevel
	default:
		return zap.WarnLevel
	}
}

// Config returns the zap configuration for o: production defaults with
// ISO8601 timestamps and no stack traces.
func Config(o Options) zap.Config {
	cfg := zap.NewProductionConfig()
	if o.Development {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(o.Level())
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}

// New builds a logger writing to stderr.
func New(o Options) (*zap.Logger, error) {
	return Config(o).Build()
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
