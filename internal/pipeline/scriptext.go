package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindSuperscript and KindSubscript identify ^sup^ and ~sub~ nodes.
var (
	KindSuperscript = ast.NewNodeKind("Superscript")
	KindSubscript   = ast.NewNodeKind("Subscript")
)

// Superscript is ^text^.
type Superscript struct{ ast.BaseInline }

// Kind implements ast.Node.
func (n *Superscript) Kind() ast.NodeKind { return KindSuperscript }

// Dump implements ast.Node.
func (n *Superscript) Dump(source []byte, level int) { ast.DumpHelper(n, source, level, nil, nil) }

// Subscript is ~text~.
type Subscript struct{ ast.BaseInline }

// Kind implements ast.Node.
func (n *Subscript) Kind() ast.NodeKind { return KindSubscript }

// Dump implements ast.Node.
func (n *Subscript) Dump(source []byte, level int) { ast.DumpHelper(n, source, level, nil, nil) }

// scriptParser parses a span between single delim characters. The
// content may not hold unescaped spaces, so "a ^ b ^ c" stays text, and a
// doubled delimiter is left to other parsers (~~strike~~).
type scriptParser struct {
	delim byte
	node  func() ast.Node
}

func (s *scriptParser) Trigger() []byte { return []byte{s.delim} }

func (s *scriptParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, seg := block.PeekLine()
	end := scanScript(line, s.delim)
	if end < 0 {
		return nil
	}
	n := s.node()
	n.AppendChild(n, ast.NewTextSegment(text.NewSegment(seg.Start+1, seg.Start+end)))
	block.Advance(end + 1)
	return n
}

// scanScript returns the index of the closing delimiter, or -1.
func scanScript(line []byte, delim byte) int {
	if len(line) < 3 || line[0] != delim || line[1] == delim {
		return -1
	}
	for i := 1; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\':
			if i+1 < len(line) && line[i+1] == ' ' {
				return -1
			}
			i++
		case c == delim:
			if i+1 < len(line) && line[i+1] == delim {
				return -1
			}
			return i
		case util.IsSpace(c):
			return -1
		}
	}
	return -1
}

type scriptHTMLRenderer struct{}

func (r *scriptHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSuperscript, tagRenderer("sup"))
	reg.Register(KindSubscript, tagRenderer("sub"))
}

func tagRenderer(tag string) renderer.NodeRendererFunc {
	return func(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			_, _ = w.WriteString("<" + tag + ">")
		} else {
			_, _ = w.WriteString("</" + tag + ">")
		}
		return ast.WalkContinue, nil
	}
}

type scriptExtension struct{}

// ScriptExtension adds ^superscript^ and ~subscript~. The subscript parser
// runs before GFM strikethrough so single tildes around a word subscript it.
var ScriptExtension goldmark.Extender = &scriptExtension{}

func (e *scriptExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&scriptParser{delim: '^', node: func() ast.Node { return &Superscript{} }}, 450),
		util.Prioritized(&scriptParser{delim: '~', node: func() ast.Node { return &Subscript{} }}, 450),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&scriptHTMLRenderer{}, 500),
	))
}
