package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestOptions_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want zapcore.Level
	}{
		{"default", Options{}, zapcore.WarnLevel},
		{"verbose", Options{Verbose: true}, zapcore.DebugLevel},
		{"quiet", Options{Quiet: true}, zapcore.ErrorLevel},
		{"quiet wins", Options{Verbose: true, Quiet: true}, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.opts.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := Config(Options{Verbose: true})
	if !cfg.DisableStacktrace {
		t.Error("DisableStacktrace = false, want true")
	}
	if cfg.Encoding != "json" {
		t.Errorf("Encoding = %q, want %q", cfg.Encoding, "json")
	}
	if got := cfg.Level.Level(); got != zapcore.DebugLevel {
		t.Errorf("Level = %v, want %v", got, zapcore.DebugLevel)
	}

	if got := Config(Options{Development: true}).Encoding; got != "console" {
		t.Errorf("development Encoding = %q, want %q", got, "console")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	log, err := New(Options{Quiet: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("quiet logger enables warn level")
	}
	if !log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("quiet logger disables error level")
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	if Nop().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Nop() logger enables error level")
	}
}
