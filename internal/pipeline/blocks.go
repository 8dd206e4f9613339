package pipeline

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

var collapseSpace = regexp.MustCompile(`\s+`)

// walker turns a goldmark AST into mdtree blocks.
type walker struct {
	source     []byte
	lineStarts []int // byte offset of each line start
	lastLine   int
	nesting    int // open lists and quotes
	listDepth  int
}

func newWalker(source []byte) *walker {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &walker{source: source, lineStarts: starts}
}

// lineOf returns the 1-based source line where n starts. Blocks without
// segments of their own (thematic breaks, for instance) get the last line
// seen, which keeps "near line N" messages useful.
func (w *walker) lineOf(n ast.Node) int {
	for c := n; c != nil && c.Type() == ast.TypeBlock; c = c.FirstChild() {
		if c.Lines().Len() > 0 {
			off := c.Lines().At(0).Start
			w.lastLine = sort.Search(len(w.lineStarts), func(i int) bool { return w.lineStarts[i] > off })
			return w.lastLine
		}
	}
	return w.lastLine
}

func (w *walker) blocks(parent ast.Node) ([]mdtree.Block, error) {
	var out []mdtree.Block
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		bs, err := w.block(c)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

func (w *walker) block(n ast.Node) ([]mdtree.Block, error) {
	line := w.lineOf(n)
	at := mdtree.Node{Line: line}

	switch n := n.(type) {
	case *ast.Heading:
		h := &mdtree.Heading{Node: at, Level: min(n.Level, 6), Inlines: trimSpans(w.inlines(n))}
		if id, ok := n.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				h.ID = string(b)
			}
		}
		return []mdtree.Block{h}, nil
	case *ast.Paragraph, *ast.TextBlock:
		return w.paragraph(n, at), nil
	case *ast.List:
		return w.list(n)
	case *ast.FencedCodeBlock:
		return []mdtree.Block{&mdtree.CodeBlock{Node: at, Language: string(n.Language(w.source)), Lines: w.codeLines(n)}}, nil
	case *ast.CodeBlock:
		return []mdtree.Block{&mdtree.CodeBlock{Node: at, Lines: w.codeLines(n)}}, nil
	case *ast.ThematicBreak:
		return []mdtree.Block{&mdtree.ThematicBreak{Node: at}}, nil
	case *ast.Blockquote:
		if err := w.enter(line); err != nil {
			return nil, err
		}
		defer w.leave()
		children, err := w.blocks(n)
		if err != nil {
			return nil, err
		}
		return []mdtree.Block{&mdtree.Quote{Node: at, Children: children}}, nil
	case *ast.HTMLBlock:
		return w.htmlBlock(n, at), nil
	case *east.Table:
		return []mdtree.Block{w.table(n, at)}, nil
	case *MathBlock:
		if len(bytes.TrimSpace(n.Source)) == 0 {
			return nil, nil
		}
		return []mdtree.Block{&mdtree.MathBlock{Node: at, Source: string(n.Source)}}, nil
	}
	// Link reference definitions and front matter leave nothing behind.
	return nil, nil
}

func (w *walker) enter(line int) error {
	w.nesting++
	if w.nesting > mdtree.MaxNestingDepth {
		return &mdtree.MalformedBlockError{Line: line, Reason: "nesting deeper than 64 levels"}
	}
	return nil
}

func (w *walker) leave() { w.nesting-- }

// paragraph splits images out of n. A paragraph holding only images becomes
// image blocks; text around images becomes paragraphs of its own.
func (w *walker) paragraph(n ast.Node, at mdtree.Node) []mdtree.Block {
	var out []mdtree.Block
	var run []ast.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		spans := trimSpans(w.inlineSeq(run))
		run = nil
		if len(spans) == 0 {
			return
		}
		out = append(out, &mdtree.Paragraph{Node: at, Inlines: spans})
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if img, ok := c.(*ast.Image); ok {
			flush()
			out = append(out, w.image(img, at))
			continue
		}
		run = append(run, c)
	}
	flush()
	return out
}

func (w *walker) image(img *ast.Image, at mdtree.Node) *mdtree.Image {
	return &mdtree.Image{
		Node:   at,
		Source: string(img.Destination),
		Alt:    mdtree.PlainText(w.inlines(img)),
		Title:  string(img.Title),
	}
}

// trimSpans strips leading and trailing whitespace from the outer text
// spans and drops paragraphs that hold nothing visible.
func trimSpans(spans []mdtree.Inline) []mdtree.Inline {
	if len(spans) == 0 {
		return spans
	}
	if t, ok := spans[0].(*mdtree.Text); ok {
		spans[0] = &mdtree.Text{Value: strings.TrimLeft(t.Value, " \t\n")}
	}
	last := len(spans) - 1
	if t, ok := spans[last].(*mdtree.Text); ok {
		spans[last] = &mdtree.Text{Value: strings.TrimRight(t.Value, " \t\n")}
	}
	for len(spans) > 0 {
		if _, ok := spans[len(spans)-1].(*mdtree.LineBreak); !ok {
			break
		}
		spans = spans[:len(spans)-1]
	}
	return mdtree.Normalize(spans)
}

func (w *walker) list(l *ast.List) ([]mdtree.Block, error) {
	line := w.lineOf(l)
	if err := w.enter(line); err != nil {
		return nil, err
	}
	defer w.leave()
	depth := w.listDepth
	w.listDepth++
	defer func() { w.listDepth-- }()

	var out []mdtree.Block
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		li, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		item := &mdtree.ListItem{
			Node:    mdtree.Node{Line: w.lineOf(li)},
			Depth:   depth,
			Ordered: l.IsOrdered(),
			Marker:  l.Marker,
		}
		for cc := li.FirstChild(); cc != nil; cc = cc.NextSibling() {
			if cc == li.FirstChild() && (cc.Kind() == ast.KindParagraph || cc.Kind() == ast.KindTextBlock) {
				if box, ok := cc.FirstChild().(*east.TaskCheckBox); ok {
					item.Task, item.Checked = true, box.IsChecked
				}
				blocks := w.paragraph(cc, item.Node)
				// The leading paragraph is the item text; images split out
				// of it follow as children.
				if len(blocks) > 0 {
					if p, ok := blocks[0].(*mdtree.Paragraph); ok {
						item.Inlines = p.Inlines
						blocks = blocks[1:]
					}
				}
				item.Children = append(item.Children, blocks...)
				continue
			}
			bs, err := w.block(cc)
			if err != nil {
				return nil, err
			}
			item.Children = append(item.Children, bs...)
		}
		out = append(out, item)
	}
	return out, nil
}

func (w *walker) codeLines(n ast.Node) []string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		v := string(seg.Value(w.source))
		out = append(out, strings.TrimSuffix(v, "\n"))
	}
	return out
}

// htmlBlock reduces raw HTML to its visible text. <img> elements become
// image blocks so that HTML-wrapped images are still embedded.
func (w *walker) htmlBlock(n *ast.HTMLBlock, at mdtree.Node) []mdtree.Block {
	var raw bytes.Buffer
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		raw.Write(seg.Value(w.source))
	}
	if n.HasClosure() {
		raw.Write(n.ClosureLine.Value(w.source))
	}

	doc, err := goquery.NewDocumentFromReader(&raw)
	if err != nil {
		return nil
	}
	var out []mdtree.Block
	doc.Find("script, style").Remove()
	if text := strings.TrimSpace(collapseSpace.ReplaceAllString(doc.Text(), " ")); text != "" {
		out = append(out, &mdtree.HTMLBlock{Node: at, Text: text})
	}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		alt, _ := s.Attr("alt")
		title, _ := s.Attr("title")
		out = append(out, &mdtree.Image{Node: at, Source: src, Alt: alt, Title: title})
	})
	return out
}

// table converts a GFM table. Every row is padded to the widest row so the
// grid is rectangular.
func (w *walker) table(t *east.Table, at mdtree.Node) *mdtree.Table {
	out := &mdtree.Table{Node: at}
	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *east.TableHeader:
			out.Header = w.cells(c)
		case *east.TableRow:
			out.Rows = append(out.Rows, w.cells(c))
		}
	}

	width := max(len(t.Alignments), len(out.Header))
	for _, r := range out.Rows {
		width = max(width, len(r))
	}
	out.Align = make([]mdtree.Alignment, width)
	for i, a := range t.Alignments {
		out.Align[i] = alignment(a)
	}
	out.Header = padCells(out.Header, width)
	for i := range out.Rows {
		out.Rows[i] = padCells(out.Rows[i], width)
	}
	return out
}

func (w *walker) cells(row ast.Node) []mdtree.Cell {
	var cells []mdtree.Cell
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		var cell mdtree.Cell
		var run []ast.Node
		for cc := c.FirstChild(); cc != nil; cc = cc.NextSibling() {
			if img, ok := cc.(*ast.Image); ok {
				cell.Images = append(cell.Images, w.image(img, mdtree.Node{Line: w.lastLine}))
				continue
			}
			run = append(run, cc)
		}
		cell.Inlines = trimSpans(w.inlineSeq(run))
		cells = append(cells, cell)
	}
	return cells
}

func padCells(cells []mdtree.Cell, width int) []mdtree.Cell {
	for len(cells) < width {
		cells = append(cells, mdtree.Cell{})
	}
	return cells
}

func alignment(a east.Alignment) mdtree.Alignment {
	switch a {
	case east.AlignLeft:
		return mdtree.AlignLeft
	case east.AlignCenter:
		return mdtree.AlignCenter
	case east.AlignRight:
		return mdtree.AlignRight
	}
	return mdtree.AlignNone
}
