package pipeline

import (
	"bytes"

	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

var mailto = []byte("mailto:")

// inlines converts the inline children of n.
func (w *walker) inlines(n ast.Node) []mdtree.Inline {
	var nodes []ast.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		nodes = append(nodes, c)
	}
	return w.inlineSeq(nodes)
}

// inlineSeq converts a sibling sequence. Raw HTML tags are matched across
// the siblings, so "<b>x</b>" arrives as three nodes and leaves as one span.
func (w *walker) inlineSeq(nodes []ast.Node) []mdtree.Inline {
	h := newHTMLSpans()
	for _, n := range nodes {
		if raw, ok := n.(*ast.RawHTML); ok {
			var b bytes.Buffer
			for i := 0; i < raw.Segments.Len(); i++ {
				seg := raw.Segments.At(i)
				b.Write(seg.Value(w.source))
			}
			h.tag(b.String())
			continue
		}
		h.add(w.inline(n)...)
	}
	return mdtree.Normalize(h.finish())
}

func (w *walker) inline(n ast.Node) []mdtree.Inline {
	switch n := n.(type) {
	case *ast.Text:
		v := n.Segment.Value(w.source)
		if !n.IsRaw() {
			v = unescape(v)
		}
		out := []mdtree.Inline{&mdtree.Text{Value: string(v)}}
		switch {
		case n.HardLineBreak():
			out = append(out, &mdtree.LineBreak{})
		case n.SoftLineBreak():
			out = append(out, &mdtree.Text{Value: " "})
		}
		return out
	case *ast.String:
		v := n.Value
		if !n.IsRaw() && !n.IsCode() {
			v = unescape(v)
		}
		return []mdtree.Inline{&mdtree.Text{Value: string(v)}}
	case *ast.CodeSpan:
		var b bytes.Buffer
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(w.source))
			case *ast.String:
				b.Write(t.Value)
			}
		}
		return []mdtree.Inline{&mdtree.Code{Value: b.String()}}
	case *ast.Emphasis:
		kind := mdtree.KindItalic
		if n.Level >= 2 {
			kind = mdtree.KindBold
		}
		return []mdtree.Inline{mdtree.Wrap(kind, w.inlines(n))}
	case *east.Strikethrough:
		return []mdtree.Inline{mdtree.Wrap(mdtree.KindStrikethrough, w.inlines(n))}
	case *Superscript:
		return []mdtree.Inline{mdtree.Wrap(mdtree.KindSuperscript, w.inlines(n))}
	case *Subscript:
		return []mdtree.Inline{mdtree.Wrap(mdtree.KindSubscript, w.inlines(n))}
	case *ast.Link:
		return []mdtree.Inline{mdtree.WrapLink(string(n.Destination), string(n.Title), w.inlines(n))}
	case *ast.AutoLink:
		url := n.URL(w.source)
		if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(url, mailto) {
			url = append(append([]byte{}, mailto...), url...)
		}
		label := &mdtree.Text{Value: string(n.Label(w.source))}
		return []mdtree.Inline{mdtree.WrapLink(string(url), "", []mdtree.Inline{label})}
	case *ast.Image:
		// Images nested in links or emphasis keep their alt text only.
		return []mdtree.Inline{&mdtree.Text{Value: mdtree.PlainText(w.inlines(n))}}
	case *MathInline:
		return []mdtree.Inline{&mdtree.Math{Source: string(n.Source)}}
	case *east.TaskCheckBox:
		return nil
	}
	return w.inlines(n)
}

// unescape resolves backslash escapes and character references the way
// goldmark's HTML writer does.
func unescape(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}
