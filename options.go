package md2docx

import (
	"context"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Option configures a Converter.
type Option func(*Converter)

// ImageResolver fetches image bytes for a source. Remote fetching is left
// to callers: implement this interface, or pre-fetch into Input.Images.
type ImageResolver interface {
	Resolve(ctx context.Context, src string) ([]byte, error)
}

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	logger   *zap.Logger
	progress func(done, total int)

	style       string
	assetPath   string
	assetLoader AssetLoader
	overrides   map[string]RoleSpec

	captions        bool
	captionLabel    string
	numberEquations bool
	codeLabels      bool
	highlightStyle  string
	plainTables     bool
	indentUnit      int
	images          ImageResolver
}

func defaultConfig() converterConfig {
	return converterConfig{
		captions:       true,
		highlightStyle: pipeline.DefaultHighlightStyle,
		indentUnit:     pipeline.DefaultIndentUnit,
	}
}

// WithLogger sets the logger for conversion diagnostics. Recovered
// per-node problems are logged at warn level. The default discards logs.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.cfg.logger = log
		}
	}
}

// WithProgress registers a callback invoked after each top-level block is
// assembled. It runs on the converting goroutine.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Converter) {
		c.cfg.progress = fn
	}
}

// WithStyle selects a style preset by name (default: "standard").
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// WithAssetPath sets a directory whose styles/ subdirectory overrides the
// embedded presets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom preset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.cfg.assetLoader = loader
	}
}

// WithStyleOverrides applies per-role attributes on top of the preset.
// Keys are role names such as "Heading1" or "InlineCode".
func WithStyleOverrides(roles map[string]RoleSpec) Option {
	return func(c *Converter) {
		c.cfg.overrides = roles
	}
}

// WithCaptions enables or disables "Figure N: alt" captions (default: on).
func WithCaptions(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.captions = enabled
	}
}

// WithCaptionLabel replaces the "Figure" caption prefix.
func WithCaptionLabel(label string) Option {
	return func(c *Converter) {
		c.cfg.captionLabel = label
	}
}

// WithEquationNumbers numbers display equations "(N)" at the right margin.
func WithEquationNumbers(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.numberEquations = enabled
	}
}

// WithCodeLabels writes the fence language above each code block.
func WithCodeLabels(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.codeLabels = enabled
	}
}

// WithHighlightStyle sets the chroma style for code token colors.
// "none" disables coloring.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithPlainTables draws full table grids instead of three-line rules.
func WithPlainTables(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.plainTables = enabled
	}
}

// WithIndentUnit sets the list indentation width of one nesting level.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithIndentUnit(n int) Option {
	if n <= 0 {
		panic("md2docx: WithIndentUnit must be positive")
	}
	return func(c *Converter) {
		c.cfg.indentUnit = n
	}
}

// WithImageResolver replaces the built-in resolver, which serves
// Input.Images, data: URIs and files under Input.SourceDir.
func WithImageResolver(r ImageResolver) Option {
	return func(c *Converter) {
		c.cfg.images = r
	}
}
