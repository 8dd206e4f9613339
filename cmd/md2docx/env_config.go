package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-md2docx/internal/config"
)

// envPrefix is the prefix shared by all recognized environment variables.
const envPrefix = "MD2DOCX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // MD2DOCX_CONFIG: config file name or path
	Style      string // MD2DOCX_STYLE: preset name
	AssetPath  string // MD2DOCX_ASSET_PATH: custom preset directory

	// Tier 2 - I/O and identity
	InputDir  string // MD2DOCX_INPUT_DIR: default input directory
	OutputDir string // MD2DOCX_OUTPUT_DIR: default output directory
	Author    string // MD2DOCX_AUTHOR: document author

	// Tier 3 - Extended
	PageSize    string // MD2DOCX_PAGE_SIZE: a4, letter
	Orientation string // MD2DOCX_ORIENTATION: portrait, landscape
	CodeTheme   string // MD2DOCX_CODE_THEME: chroma style
	Workers     int    // MD2DOCX_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MD2DOCX_CONFIG":     true,
	"MD2DOCX_STYLE":      true,
	"MD2DOCX_ASSET_PATH": true,
	// Tier 2 - I/O and identity
	"MD2DOCX_INPUT_DIR":  true,
	"MD2DOCX_OUTPUT_DIR": true,
	"MD2DOCX_AUTHOR":     true,
	// Tier 3 - Extended
	"MD2DOCX_PAGE_SIZE":   true,
	"MD2DOCX_ORIENTATION": true,
	"MD2DOCX_CODE_THEME":  true,
	"MD2DOCX_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2DOCX_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MD2DOCX_CONFIG"),
		Style:      os.Getenv("MD2DOCX_STYLE"),
		AssetPath:  os.Getenv("MD2DOCX_ASSET_PATH"),
		// Tier 2
		InputDir:  os.Getenv("MD2DOCX_INPUT_DIR"),
		OutputDir: os.Getenv("MD2DOCX_OUTPUT_DIR"),
		Author:    os.Getenv("MD2DOCX_AUTHOR"),
		// Tier 3
		PageSize:    os.Getenv("MD2DOCX_PAGE_SIZE"),
		Orientation: os.Getenv("MD2DOCX_ORIENTATION"),
		CodeTheme:   os.Getenv("MD2DOCX_CODE_THEME"),
	}

	// Parse int for workers
	if workers := os.Getenv("MD2DOCX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized MD2DOCX_* variables.
// Helps catch typos like MD2DOCX_AUTOR instead of MD2DOCX_AUTHOR.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				unknown = append(unknown, name)
			}
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Style
	if env.Style != "" && cfg.Style.Preset == "" {
		cfg.Style.Preset = env.Style
	}
	if env.AssetPath != "" && cfg.Style.AssetPath == "" {
		cfg.Style.AssetPath = env.AssetPath
	}

	// Tier 2 - I/O
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}

	// Tier 2 - Identity
	if env.Author != "" && cfg.Document.Author == "" {
		cfg.Document.Author = env.Author
	}

	// Tier 3 - Page. DefaultConfig fills these; the env var replaces the
	// default but not a different value from the config file.
	if env.PageSize != "" && (cfg.Page.Size == "" || cfg.Page.Size == config.DefaultConfig().Page.Size) {
		cfg.Page.Size = env.PageSize
	}
	if env.Orientation != "" && (cfg.Page.Orientation == "" || cfg.Page.Orientation == config.DefaultConfig().Page.Orientation) {
		cfg.Page.Orientation = env.Orientation
	}

	// Tier 3 - Code
	if env.CodeTheme != "" && cfg.Code.Theme == "" {
		cfg.Code.Theme = env.CodeTheme
	}
}
