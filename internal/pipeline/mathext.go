package pipeline

import (
	"bytes"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMathInline and KindMathBlock identify the math nodes.
var (
	KindMathInline = ast.NewNodeKind("MathInline")
	KindMathBlock  = ast.NewNodeKind("MathBlock")
)

// MathInline is $...$ math inside a paragraph.
type MathInline struct {
	ast.BaseInline
	Source []byte
}

// Kind implements ast.Node.
func (n *MathInline) Kind() ast.NodeKind { return KindMathInline }

// Dump implements ast.Node.
func (n *MathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Source": string(n.Source)}, nil)
}

// MathBlock is $$...$$ display math, on one line or spanning several.
type MathBlock struct {
	ast.BaseBlock
	Source []byte
	closed bool
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

// IsRaw implements ast.Node.
func (n *MathBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Source": string(n.Source)}, nil)
}

func (n *MathBlock) appendLine(line []byte) {
	if len(line) == 0 {
		return
	}
	if len(n.Source) > 0 {
		n.Source = append(n.Source, '\n')
	}
	n.Source = append(n.Source, line...)
}

var mathFence = []byte("$$")

type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (b *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], mathFence) {
		return nil, parser.NoChildren
	}
	rest := bytes.TrimSpace(line[pos+2:])
	node := &MathBlock{}
	if i := bytes.Index(rest, mathFence); i >= 0 {
		// "$$x$$ and more" is inline math in a paragraph.
		if len(bytes.TrimSpace(rest[i+2:])) != 0 {
			return nil, parser.NoChildren
		}
		node.appendLine(bytes.TrimSpace(rest[:i]))
		node.closed = true
	} else {
		node.appendLine(rest)
	}
	reader.AdvanceToEOL()
	return node, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*MathBlock)
	if n.closed {
		return parser.Close
	}
	line, _ := reader.PeekLine()
	if i := bytes.Index(line, mathFence); i >= 0 {
		n.appendLine(bytes.TrimSpace(line[:i]))
		n.closed = true
		// Text after the closing fence is left on the line for the next block.
		rest := line[i+2:]
		if len(bytes.TrimSpace(rest)) == 0 {
			reader.AdvanceToEOL()
			return parser.Close
		}
		reader.Advance(i + 2 + len(rest) - len(bytes.TrimLeft(rest, " \t")))
		return parser.Close
	}
	n.appendLine(bytes.TrimSpace(line))
	reader.AdvanceToEOL()
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *mathBlockParser) CanInterruptParagraph() bool { return true }

func (b *mathBlockParser) CanAcceptIndentedLine() bool { return false }

// inlineMathParser reads $...$ and $$...$$ spans. A dollar sign followed
// by a space, or a closing one followed by a digit, is currency rather
// than math: "$5 and $10" stays text.
type inlineMathParser struct{}

func (s *inlineMathParser) Trigger() []byte { return []byte{'$'} }

func (s *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[0] != '$' {
		return nil
	}
	if line[1] == '$' {
		end := bytes.Index(line[2:], mathFence)
		if end <= 0 {
			return nil
		}
		src := bytes.TrimSpace(line[2 : 2+end])
		block.Advance(end + 4)
		return &MathInline{Source: bytes.Clone(src)}
	}
	if util.IsSpace(line[1]) || unicode.IsDigit(block.PrecendingCharacter()) {
		return nil
	}
	for i := 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '\n':
			return nil
		case '$':
			if util.IsSpace(line[i-1]) || (i+1 < len(line) && isDigit(line[i+1])) {
				continue
			}
			block.Advance(i + 1)
			return &MathInline{Source: bytes.Clone(line[1:i])}
		}
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// mathHTMLRenderer renders math for the HTML preview, leaving typesetting
// to a client-side library.
type mathHTMLRenderer struct{}

func (r *mathHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathInline, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *mathHTMLRenderer) renderInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		n := node.(*MathInline)
		_, _ = w.WriteString(`<span class="math inline">\(`)
		_, _ = w.Write(util.EscapeHTML(n.Source))
		_, _ = w.WriteString(`\)</span>`)
	}
	return ast.WalkSkipChildren, nil
}

func (r *mathHTMLRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		n := node.(*MathBlock)
		_, _ = w.WriteString(`<div class="math display">\[`)
		_, _ = w.Write(util.EscapeHTML(n.Source))
		_, _ = w.WriteString("\\]</div>\n")
	}
	return ast.WalkSkipChildren, nil
}

type mathExtension struct{}

// MathExtension adds $...$ inline math and $$...$$ display math.
var MathExtension goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 650)),
		parser.WithInlineParsers(util.Prioritized(&inlineMathParser{}, 450)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathHTMLRenderer{}, 500),
	))
}
