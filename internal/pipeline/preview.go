package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/parser"
	goldhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// htmlTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s</style>
</head>
<body>
%s
</body>
</html>`

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter renders an HTML preview of the same Markdown the
// document is built from, using the same preprocessing and extensions.
type GoldmarkConverter struct {
	md  goldmark.Markdown
	pre MarkdownPreprocessor
	css string
}

// NewGoldmarkConverter creates a GoldmarkConverter. indentUnit is passed to
// the preprocessor; style names a chroma style for code blocks.
func NewGoldmarkConverter(indentUnit int, style string) *GoldmarkConverter {
	if style == "" {
		style = DefaultHighlightStyle
	}
	md := newMarkdown(
		highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes, emitted once in <style>
			),
		),
	)
	md.Renderer().AddOptions(
		goldhtml.WithXHTML(), // Self-closing tags
		// Note: WithUnsafe() intentionally NOT used for security.
	)

	var css bytes.Buffer
	// WriteCSS only fails on writer errors, which bytes.Buffer never returns.
	_ = chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&css, styles.Get(style))

	return &GoldmarkConverter{
		md:  md,
		pre: &CommonMarkPreprocessor{IndentUnit: indentUnit},
		css: css.String(),
	}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	source := []byte(c.pre.PreprocessMarkdown(ctx, content))

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		pc := parser.NewContext()
		doc := c.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
		if err := c.md.Renderer().Render(&buf, source, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		title := metadata(pc).Title
		if title == "" {
			title = "Document"
		}
		done <- result{html: fmt.Sprintf(htmlTemplate, html.EscapeString(title), c.css, strings.TrimRight(buf.String(), "\n"))}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
