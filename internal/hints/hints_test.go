package hints

// Notes:
// - ForConfigNotFound tests cannot use t.Parallel() because they replace the
//   package-level UserConfigDir variable.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	orig := UserConfigDir
	defer func() { UserConfigDir = orig }()
	UserConfigDir = func() (string, error) { return "/home/ann/.config", nil }

	tests := []struct {
		name        string
		input       string
		contains    string
		notContains string
	}{
		{
			name:     "bare name suggests user config file",
			input:    "thesis",
			contains: filepath.Join("/home/ann/.config", "go-md2docx", "thesis.yaml"),
		},
		{
			name:        "path only suggests --config",
			input:       "./configs/thesis.yaml",
			contains:    "--config",
			notContains: "create",
		},
		{
			name:        "name with extension only suggests --config",
			input:       "thesis.toml",
			contains:    "--config",
			notContains: "create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.input)

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("expected hint prefix, got %q", hint)
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
			if tt.notContains != "" && strings.Contains(hint, tt.notContains) {
				t.Errorf("expected hint without %q, got %q", tt.notContains, hint)
			}
		})
	}
}

func TestForConfigNotFound_NoUserConfigDir(t *testing.T) {
	orig := UserConfigDir
	defer func() { UserConfigDir = orig }()
	UserConfigDir = func() (string, error) { return "", errors.New("no home") }

	hint := ForConfigNotFound("thesis")
	if strings.Contains(hint, "create") {
		t.Errorf("expected no create suggestion without a config dir, got %q", hint)
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		available []string
		wantEmpty bool
		contains  string
	}{
		{
			name:      "empty available",
			available: []string{},
			wantEmpty: true,
		},
		{
			name:      "with styles",
			available: []string{"academic", "standard"},
			contains:  "academic, standard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForStyleNotFound(tt.available)

			if tt.wantEmpty && hint != "" {
				t.Errorf("expected empty hint, got %q", hint)
			}
			if !tt.wantEmpty && !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForWorkers(t *testing.T) {
	t.Parallel()

	hint := ForWorkers(16)
	if !strings.Contains(hint, "between 1 and 16") {
		t.Errorf("expected range in hint, got %q", hint)
	}
}

func TestForImageUnavailable(t *testing.T) {
	t.Parallel()

	hint := ForImageUnavailable()
	if !strings.Contains(hint, "relative to the markdown file; remote URLs") {
		t.Errorf("expected joined hints, got %q", hint)
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForOutputDirectory(),
		ForAssetPath(),
		ForInvalidStyle(),
		ForWorkers(4),
		ForImageUnavailable(),
		ForFormulaFallback(),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
