// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// UserConfigDir returns the per-user config directory. Replaced in tests.
var UserConfigDir = os.UserConfigDir

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, for bare names, creating the file in the user
// config directory.
func ForConfigNotFound(name string) string {
	hint := "use --config /path/to/file.yaml"

	if name != "" && !strings.ContainsAny(name, "/\\") && filepath.Ext(name) == "" {
		if dir, err := UserConfigDir(); err == nil {
			hint += " or create " + filepath.Join(dir, "go-md2docx", name+".yaml")
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + " (see md2docx styles)")
}

// ForAssetPath returns hints for an unusable --asset-path.
func ForAssetPath() string {
	return format("--asset-path must be a directory; presets live in <dir>/styles/<name>.yaml")
}

// ForInvalidStyle returns hints for presets or overrides that fail to resolve.
func ForInvalidStyle() string {
	return format("check role names and basedOn chains; run md2docx styles to list valid presets")
}

// ForWorkers returns a hint for an out-of-range worker count.
func ForWorkers(maxWorkers int) string {
	return format("use --workers between 1 and " + strconv.Itoa(maxWorkers) + ", or 0 for auto")
}

// ForImageUnavailable returns a hint for images that could not be embedded.
func ForImageUnavailable() string {
	return formatHints([]string{
		"image paths resolve relative to the markdown file",
		"remote URLs are not downloaded",
	})
}

// ForFormulaFallback returns a hint for formulas kept as plain text.
func ForFormulaFallback() string {
	return format("unsupported LaTeX commands are kept as text; run with --verbose for details")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
