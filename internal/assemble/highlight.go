package assemble

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/alnah/go-md2docx/internal/style"
)

// highlighter colors code tokens with a chroma style. A nil highlighter
// leaves code uncolored.
type highlighter struct {
	style *chroma.Style
}

func newHighlighter(name string) *highlighter {
	if name == "" || name == "none" {
		return nil
	}
	st, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		st = styles.Fallback
	}
	return &highlighter{style: st}
}

// tokenRun is one colored fragment of a code line.
type tokenRun struct {
	text string
	ov   style.Override
}

// lines tokenizes code and returns one fragment list per source line. It
// returns nil when the language is unknown or the tokens do not reproduce
// the source exactly.
func (h *highlighter) lines(language string, src []string) [][]tokenRun {
	if h == nil || language == "" || len(src) == 0 {
		return nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, strings.Join(src, "\n"))
	if err != nil {
		return nil
	}

	split := chroma.SplitTokensIntoLines(it.Tokens())
	if len(split) < len(src) {
		return nil
	}
	out := make([][]tokenRun, len(src))
	for i, line := range src {
		var b strings.Builder
		for _, tok := range split[i] {
			text := strings.TrimSuffix(tok.Value, "\n")
			if text == "" {
				continue
			}
			b.WriteString(text)
			out[i] = append(out[i], tokenRun{text: text, ov: h.override(tok.Type)})
		}
		if b.String() != line {
			return nil
		}
	}
	return out
}

func (h *highlighter) override(t chroma.TokenType) style.Override {
	entry := h.style.Get(t)
	var ov style.Override
	if entry.Colour.IsSet() {
		ov.Color = style.Ptr(strings.ToUpper(strings.TrimPrefix(entry.Colour.String(), "#")))
	}
	if entry.Bold == chroma.Yes {
		ov.Bold = style.Ptr(true)
	}
	if entry.Italic == chroma.Yes {
		ov.Italic = style.Ptr(true)
	}
	return ov
}

// codeBlock writes one paragraph per source line so the line structure
// survives exactly, preceded by an optional language label.
func (s *assembly) codeBlock(c *mdtree.CodeBlock, sc scope) {
	if s.opts.CodeLabels && c.Language != "" {
		label := s.paraStyle(style.RoleCodeLabel, sc, style.Override{})
		s.doc.Append(&document.Paragraph{
			Role:    style.RoleCodeLabel,
			Style:   label,
			Inlines: []document.Inline{&document.Run{Text: c.Language, Style: label}},
			Line:    c.Line,
		})
	}

	desc := s.paraStyle(style.RoleCodeBlock, sc, style.Override{})
	colored := s.code.lines(c.Language, c.Lines)
	lines := c.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	for i, line := range lines {
		p := &document.Paragraph{Role: style.RoleCodeBlock, Style: desc, Line: c.Line}
		switch {
		case colored != nil:
			for _, tr := range colored[i] {
				p.Inlines = append(p.Inlines, &document.Run{Text: tr.text, Style: s.styles.Derive(desc, tr.ov)})
			}
		case line != "":
			p.Inlines = []document.Inline{&document.Run{Text: line, Style: desc}}
		}
		s.doc.Append(p)
	}
}
