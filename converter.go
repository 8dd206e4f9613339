package md2docx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/assemble"
	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/imageres"
	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/style"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ ImageResolver                 = (*imageres.Local)(nil)
)

// Converter orchestrates the Markdown-to-DOCX pipeline. A Converter holds
// only immutable configuration and is safe for concurrent Convert calls.
type Converter struct {
	cfg     converterConfig
	log     *zap.Logger
	sheet   *style.Sheet
	parser  *pipeline.Parser
	preview *pipeline.GoldmarkConverter
}

// NewConverter creates a Converter. Options are applied in order, then the
// style preset is loaded and resolved once.
// Returns ErrStyleNotFound, ErrInvalidStyle or ErrInvalidAssetPath if the
// preset cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{cfg: defaultConfig()}
	for _, opt := range opts {
		opt(c)
	}

	c.log = c.cfg.logger
	if c.log == nil {
		c.log = zap.NewNop()
	}

	var loader assets.AssetLoader = c.cfg.assetLoader
	if loader == nil {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}

	sheet, err := style.Load(loader, c.cfg.style, c.cfg.overrides)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", styleName(c.cfg.style), convertStyleError(err))
	}
	c.sheet = sheet

	c.parser = pipeline.NewParser(c.cfg.indentUnit)
	c.preview = pipeline.NewGoldmarkConverter(c.cfg.indentUnit, previewStyle(c.cfg.highlightStyle))

	c.log.Debug("converter ready",
		zap.String("style", sheet.Name()),
		zap.Int("indentUnit", c.cfg.indentUnit),
		zap.String("highlight", c.cfg.highlightStyle))
	return c, nil
}

func styleName(name string) string {
	if name == "" {
		return DefaultStyle
	}
	return name
}

// previewStyle picks a chroma style for the HTML preview, which always
// highlights.
func previewStyle(name string) string {
	if name == "" || name == "none" {
		return pipeline.DefaultHighlightStyle
	}
	return name
}

// StyleName returns the name of the resolved style preset.
func (c *Converter) StyleName() string {
	return c.sheet.Name()
}

// Convert runs the full pipeline and returns the DOCX bytes with warnings
// and statistics. The context is checked between stages and between
// top-level blocks; a cancelled conversion returns ctx.Err() and no
// partial document. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("conversion panicked", zap.Any("panic", r))
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}
	page, err := input.Page.page()
	if err != nil {
		return nil, err
	}

	parser := c.parser
	if input.IndentUnit > 0 && input.IndentUnit != c.cfg.indentUnit {
		parser = pipeline.NewParser(input.IndentUnit)
	}

	tree, err := parser.Parse(ctx, input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	asm := assemble.New(c.sheet, assemble.Options{
		Page:            page,
		Core:            input.Metadata.core(),
		Images:          c.imageResolver(input),
		Captions:        c.cfg.captions,
		CaptionLabel:    c.cfg.captionLabel,
		NumberEquations: c.cfg.numberEquations,
		CodeLabels:      c.cfg.codeLabels,
		HighlightStyle:  c.cfg.highlightStyle,
		PlainTables:     c.cfg.plainTables,
		Logger:          c.log,
		Progress:        c.cfg.progress,
	})
	doc, err := asm.Assemble(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}

	data, err := docx.Bytes(doc)
	if err != nil {
		return nil, fmt.Errorf("writing DOCX: %w", err)
	}

	st := doc.Stats()
	res := &ConvertResult{
		DOCX:     data,
		Warnings: toWarnings(doc.Warnings),
		Stats: Stats{
			Paragraphs: st.Paragraphs,
			Tables:     st.Tables,
			Images:     st.Images,
			Equations:  st.Equations,
			Links:      st.Links,
		},
	}

	if input.HTMLPreview {
		html, err := c.previewConverter(input).ToHTML(ctx, input.Markdown)
		if err != nil {
			return nil, fmt.Errorf("rendering HTML preview: %w", err)
		}
		res.HTML = []byte(html)
	}

	c.log.Debug("converted",
		zap.Int("bytes", len(res.DOCX)),
		zap.Int("paragraphs", st.Paragraphs),
		zap.Int("tables", st.Tables),
		zap.Int("images", st.Images),
		zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

func (c *Converter) previewConverter(input Input) *pipeline.GoldmarkConverter {
	if input.IndentUnit > 0 && input.IndentUnit != c.cfg.indentUnit {
		return pipeline.NewGoldmarkConverter(input.IndentUnit, previewStyle(c.cfg.highlightStyle))
	}
	return c.preview
}

// imageResolver returns the configured resolver, or a local resolver over
// the input's source directory and pre-fetched images.
func (c *Converter) imageResolver(input Input) imageres.Resolver {
	if c.cfg.images != nil {
		return c.cfg.images
	}
	return &imageres.Local{SourceDir: input.SourceDir, Images: input.Images}
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
// Both paths converge here, ensuring all inputs are validated before processing.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if input.IndentUnit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndentUnit, input.IndentUnit)
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return nil
}
