package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/hints"
	"github.com/alnah/go-md2docx/internal/logger"
)

// Sentinel errors for CLI conversion.
var (
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteDOCX        = errors.New("failed to write DOCX file")
	ErrConversionFailed = errors.New("conversion failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups per-file input shared across a batch.
type conversionParams struct {
	page     *md2docx.PageSettings
	metadata *md2docx.Metadata
	html     bool // write the HTML preview alongside the DOCX
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positionalArgs, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	// Environment workers apply only when the flag is unset
	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Precedence: CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	log, err := logger.New(logger.Options{
		Verbose:     flags.common.verbose,
		Quiet:       !flags.common.verbose,
		Development: true,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	poolSize := min(md2docx.ResolvePoolSize(workers), len(files))
	pool, err := md2docx.NewConverterPool(poolSize, buildConverterOptions(cfg, env, log)...)
	if err != nil {
		return withStyleHint(fmt.Errorf("preparing converter: %w", err), env)
	}
	defer func() { _ = pool.Close() }()

	log.Debug("starting conversion", zap.Int("files", len(files)), zap.Int("workers", poolSize))

	params, err := buildParams(flags, cfg, env.Now())
	if err != nil {
		return err
	}
	results := convertBatch(ctx, pool, files, params, env.Now)

	return reportResults(results, flags.common, env)
}

// loadConfig loads the config named by the flag, else by MD2DOCX_CONFIG,
// else returns defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(name))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Document flags
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
	if flags.document.subject != "" {
		cfg.Document.Subject = flags.document.subject
	}
	if flags.document.description != "" {
		cfg.Document.Description = flags.document.description
	}
	if len(flags.document.keywords) > 0 {
		cfg.Document.Keywords = flags.document.keywords
	}
	if flags.document.date != "" {
		cfg.Document.Date = flags.document.date
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		m := flags.page.margin
		cfg.Page.Margins = config.MarginsConfig{Top: m, Bottom: m, Left: m, Right: m}
	}

	// Style flags
	if flags.style.preset != "" {
		cfg.Style.Preset = flags.style.preset
	}
	if flags.style.assetPath != "" {
		cfg.Style.AssetPath = flags.style.assetPath
	}

	// Content flags
	if flags.content.noCaptions {
		cfg.Figures.Captions = false
	}
	if flags.content.captionLabel != "" {
		cfg.Figures.Label = flags.content.captionLabel
	}
	if flags.content.numberEqs {
		cfg.Equations.Numbering = true
	}
	if flags.content.codeLabels {
		cfg.Code.Labels = true
	}
	if flags.content.codeTheme != "" {
		cfg.Code.Theme = flags.content.codeTheme
	}
	if flags.content.plainTables {
		cfg.Tables.Plain = true
	}
	if flags.content.indentUnit != 0 {
		cfg.Lists.IndentUnit = flags.content.indentUnit
	}
}

// resolveOutputDir returns the --output value, else the configured default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// buildConverterOptions maps the merged config onto converter options.
func buildConverterOptions(cfg *config.Config, env *Environment, log *zap.Logger) []md2docx.Option {
	opts := []md2docx.Option{
		md2docx.WithLogger(log),
		md2docx.WithStyle(cfg.Style.Preset),
		md2docx.WithCaptions(cfg.Figures.Captions),
		md2docx.WithEquationNumbers(cfg.Equations.Numbering),
		md2docx.WithCodeLabels(cfg.Code.Labels),
		md2docx.WithPlainTables(cfg.Tables.Plain),
	}
	if cfg.Style.AssetPath != "" {
		opts = append(opts, md2docx.WithAssetPath(cfg.Style.AssetPath))
	}
	if env.AssetLoader != nil {
		opts = append(opts, md2docx.WithAssetLoader(env.AssetLoader))
	}
	if len(cfg.Style.Roles) > 0 {
		opts = append(opts, md2docx.WithStyleOverrides(cfg.Style.Roles))
	}
	if cfg.Figures.Label != "" {
		opts = append(opts, md2docx.WithCaptionLabel(cfg.Figures.Label))
	}
	if cfg.Code.Theme != "" {
		opts = append(opts, md2docx.WithHighlightStyle(cfg.Code.Theme))
	}
	if cfg.Lists.IndentUnit > 0 {
		opts = append(opts, md2docx.WithIndentUnit(cfg.Lists.IndentUnit))
	}
	return opts
}

// buildParams creates the per-file input shared by every file in a batch.
func buildParams(flags *convertFlags, cfg *config.Config, now time.Time) (*conversionParams, error) {
	created, err := dateutil.ResolveCreated(cfg.Document.Date, cfg.Document.DateFormat, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
	}

	m := cfg.Page.Margins
	return &conversionParams{
		page: &md2docx.PageSettings{
			Size:        cfg.Page.Size,
			Orientation: cfg.Page.Orientation,
			Margins:     &md2docx.Margins{Top: m.Top, Bottom: m.Bottom, Left: m.Left, Right: m.Right},
		},
		metadata: &md2docx.Metadata{
			Title:       cfg.Document.Title,
			Author:      cfg.Document.Author,
			Subject:     cfg.Document.Subject,
			Description: cfg.Document.Description,
			Keywords:    cfg.Document.Keywords,
			Created:     created,
		},
		html: flags.outputMode.html,
	}, nil
}

// withStyleHint appends a hint to preset errors.
func withStyleHint(err error, env *Environment) error {
	switch {
	case errors.Is(err, md2docx.ErrStyleNotFound):
		var names []string
		if infos, listErr := md2docx.ListStyles(env.AssetLoader); listErr == nil {
			for _, info := range infos {
				names = append(names, info.Name)
			}
		}
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(names))
	case errors.Is(err, md2docx.ErrInvalidAssetPath):
		return fmt.Errorf("%w%s", err, hints.ForAssetPath())
	case errors.Is(err, md2docx.ErrInvalidStyle):
		return fmt.Errorf("%w%s", err, hints.ForInvalidStyle())
	}
	return err
}
