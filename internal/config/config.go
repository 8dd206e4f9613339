package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/confutil"
	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/style"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxTitleLength       = 200
	MaxNameLength        = 100
	MaxTextLength        = 500
	MaxKeywordLength     = 50
	MaxKeywords          = 20
	MaxLabelLength       = 30
	MaxPageSizeLength    = 10 // "a4", "letter"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxThemeLength       = 50
	MaxPresetLength      = 64
	MaxDateLength        = 50
)

// Bounds for numeric fields.
const (
	MaxMarginCM   = 10.0
	MaxIndentUnit = 8
)

// ConfigDirName is the directory under os.UserConfigDir searched for
// named configs.
const ConfigDirName = "go-md2docx"

// Config holds all configuration for document generation.
type Config struct {
	Input     InputConfig     `yaml:"input" toml:"input"`
	Output    OutputConfig    `yaml:"output" toml:"output"`
	Page      PageConfig      `yaml:"page" toml:"page"`
	Lists     ListsConfig     `yaml:"lists" toml:"lists"`
	Style     StyleConfig     `yaml:"style" toml:"style"`
	Document  DocumentConfig  `yaml:"document" toml:"document"`
	Figures   FiguresConfig   `yaml:"figures" toml:"figures"`
	Equations EquationsConfig `yaml:"equations" toml:"equations"`
	Code      CodeConfig      `yaml:"code" toml:"code"`
	Tables    TablesConfig    `yaml:"tables" toml:"tables"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // empty = same as source
}

// PageConfig defines page geometry. Margins are in centimeters; zero keeps
// the default for that side.
type PageConfig struct {
	Size        string        `yaml:"size" toml:"size"`               // "a4", "letter" (default: "a4")
	Orientation string        `yaml:"orientation" toml:"orientation"` // "portrait", "landscape"
	Margins     MarginsConfig `yaml:"margins" toml:"margins"`
}

// MarginsConfig holds page margins in centimeters.
type MarginsConfig struct {
	Top    float64 `yaml:"top" toml:"top"`
	Bottom float64 `yaml:"bottom" toml:"bottom"`
	Left   float64 `yaml:"left" toml:"left"`
	Right  float64 `yaml:"right" toml:"right"`
}

// ListsConfig defines list parsing options.
type ListsConfig struct {
	IndentUnit int `yaml:"indentUnit" toml:"indentUnit"` // spaces per nesting level (default: 2)
}

// StyleConfig selects the style preset and per-role overrides.
type StyleConfig struct {
	Preset    string                    `yaml:"preset" toml:"preset"`       // empty = "standard"
	AssetPath string                    `yaml:"assetPath" toml:"assetPath"` // empty = embedded presets only
	Roles     map[string]style.RoleSpec `yaml:"roles" toml:"roles"`
}

// DocumentConfig holds core properties. Front matter fills fields left empty.
type DocumentConfig struct {
	Title       string   `yaml:"title" toml:"title"`
	Author      string   `yaml:"author" toml:"author"`
	Subject     string   `yaml:"subject" toml:"subject"`
	Description string   `yaml:"description" toml:"description"`
	Keywords    []string `yaml:"keywords" toml:"keywords"`
	// Date is the creation date: "" for none, "auto" for now, or a date
	// written in DateFormat.
	Date       string `yaml:"date" toml:"date"`
	DateFormat string `yaml:"dateFormat" toml:"dateFormat"` // tokens or iso, european, us, long
}

// FiguresConfig defines figure caption options.
type FiguresConfig struct {
	Captions bool   `yaml:"captions" toml:"captions"`
	Label    string `yaml:"label" toml:"label"` // default: "Figure"
}

// EquationsConfig defines display equation options.
type EquationsConfig struct {
	Numbering bool `yaml:"numbering" toml:"numbering"`
}

// CodeConfig defines code block options.
type CodeConfig struct {
	Theme  string `yaml:"theme" toml:"theme"`   // chroma style, "none" disables coloring
	Labels bool   `yaml:"labels" toml:"labels"` // language label above each block
}

// TablesConfig defines table rendering options.
type TablesConfig struct {
	Plain bool `yaml:"plain" toml:"plain"` // full grid instead of three-line rules
}

// Validate checks bounds and field lengths. Called automatically by
// LoadConfig, but available for callers who construct Config manually.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"style.preset", c.Style.Preset, MaxPresetLength},
		{"style.assetPath", c.Style.AssetPath, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxNameLength},
		{"document.subject", c.Document.Subject, MaxTitleLength},
		{"document.description", c.Document.Description, MaxTextLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"document.dateFormat", c.Document.DateFormat, dateutil.MaxDateFormatLength},
		{"figures.label", c.Figures.Label, MaxLabelLength},
		{"code.theme", c.Code.Theme, MaxThemeLength},
	}
	for _, ch := range checks {
		if err := validateFieldLength(ch.field, ch.value, ch.max); err != nil {
			return err
		}
	}

	if len(c.Document.Keywords) > MaxKeywords {
		return fmt.Errorf("%w: document.keywords (%d entries, max %d)", ErrFieldTooLong, len(c.Document.Keywords), MaxKeywords)
	}
	for i, k := range c.Document.Keywords {
		if err := validateFieldLength(fmt.Sprintf("document.keywords[%d]", i), k, MaxKeywordLength); err != nil {
			return err
		}
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "a4", "letter":
		default:
			return fmt.Errorf("%w: page.size %q (must be a4 or letter)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}
	margins := []struct {
		field string
		value float64
	}{
		{"page.margins.top", c.Page.Margins.Top},
		{"page.margins.bottom", c.Page.Margins.Bottom},
		{"page.margins.left", c.Page.Margins.Left},
		{"page.margins.right", c.Page.Margins.Right},
	}
	for _, m := range margins {
		if m.value < 0 || m.value > MaxMarginCM {
			return fmt.Errorf("%w: %s must be between 0 and %.0f cm, got %.2f", ErrInvalidValue, m.field, MaxMarginCM, m.value)
		}
	}

	if _, err := dateutil.ResolveCreated(c.Document.Date, c.Document.DateFormat, time.Time{}); err != nil {
		return fmt.Errorf("%w: document.date: %v", ErrInvalidValue, err)
	}

	if c.Lists.IndentUnit < 0 || c.Lists.IndentUnit > MaxIndentUnit {
		return fmt.Errorf("%w: lists.indentUnit must be between 0 and %d, got %d", ErrInvalidValue, MaxIndentUnit, c.Lists.IndentUnit)
	}

	for name := range c.Style.Roles {
		if _, err := style.ParseRole(name); err != nil {
			return fmt.Errorf("%w: style.roles: %v", ErrInvalidValue, err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given: A4
// portrait, the standard preset, captions on, everything else off.
func DefaultConfig() *Config {
	return &Config{
		Page:    PageConfig{Size: "a4", Orientation: "portrait"},
		Lists:   ListsConfig{IndentUnit: 2},
		Figures: FiguresConfig{Captions: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or a known extension, it's
// treated as a file path. Otherwise, it's searched in standard locations.
// Fields the file leaves out keep DefaultConfig values. Returns an error if
// the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	format, err := confutil.FormatFromPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if info.Size() > int64(confutil.MaxInputSize) {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, confutil.ErrInputTooLarge)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := confutil.UnmarshalStrict(format, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	if fileutil.IsFilePath(s) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	for _, known := range confutil.Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in confutil.Extensions order, first in the current
// directory, then in the user config directory.
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(confutil.Extensions)*2)

	for _, ext := range confutil.Extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range confutil.Extensions {
			userPath := filepath.Join(userConfigDir, ConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
