package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parser turns Markdown into an mdtree.Document. A Parser holds no
// per-document state and is safe for concurrent use.
type Parser struct {
	md  goldmark.Markdown
	pre MarkdownPreprocessor
}

// NewParser creates a Parser. indentUnit is the list indentation width of
// one nesting level; zero selects DefaultIndentUnit.
func NewParser(indentUnit int) *Parser {
	return &Parser{
		md:  newMarkdown(),
		pre: &CommonMarkPreprocessor{IndentUnit: indentUnit},
	}
}

func newMarkdown(extra ...goldmark.Extender) goldmark.Markdown {
	exts := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
		meta.Meta,     // YAML front matter
		MathExtension,
		ScriptExtension,
	}
	return goldmark.New(
		goldmark.WithExtensions(append(exts, extra...)...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Link targets for #fragment links
		),
	)
}

// Parse preprocesses and parses markdown. The only structural failure is
// nesting beyond mdtree.MaxNestingDepth, reported as a
// *mdtree.MalformedBlockError. Goldmark has no context support, so parsing
// runs in a goroutine and Parse returns early on cancellation.
func (p *Parser) Parse(ctx context.Context, markdown string) (*mdtree.Document, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := []byte(p.pre.PreprocessMarkdown(ctx, markdown))

	type result struct {
		doc *mdtree.Document
		err error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("parsing markdown: %v", r)}
			}
		}()
		pc := parser.NewContext()
		root := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
		blocks, err := newWalker(source).blocks(root)
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{doc: &mdtree.Document{Blocks: blocks, Meta: metadata(pc)}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}

// Tokenize splits a single text span into inline spans. Block syntax in
// the span is ignored; only the inline content is returned.
func (p *Parser) Tokenize(span string) []mdtree.Inline {
	source := []byte(span)
	root := p.md.Parser().Parse(text.NewReader(source))
	w := newWalker(source)
	var out []mdtree.Inline
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindParagraph, ast.KindTextBlock, ast.KindHeading:
			if len(out) > 0 {
				out = append(out, &mdtree.Text{Value: " "})
			}
			out = append(out, w.inlines(n)...)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return mdtree.Normalize(out)
}

// metadata maps front matter keys onto document properties. Malformed
// front matter is ignored.
func metadata(pc parser.Context) mdtree.Metadata {
	m, err := meta.TryGet(pc)
	if err != nil || m == nil {
		return mdtree.Metadata{}
	}
	md := mdtree.Metadata{
		Title:       metaString(m["title"]),
		Author:      metaString(m["author"]),
		Subject:     metaString(m["subject"]),
		Description: metaString(m["description"]),
		Keywords:    metaList(m["keywords"]),
	}
	if md.Author == "" {
		md.Author = metaString(m["authors"])
	}
	if len(md.Keywords) == 0 {
		md.Keywords = metaList(m["tags"])
	}
	return md
}

func metaString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []any:
		return strings.Join(metaList(v), ", ")
	}
	return fmt.Sprint(v)
}

func metaList(v any) []string {
	var out []string
	switch v := v.(type) {
	case string:
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
	case []any:
		for _, item := range v {
			if s := metaString(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
