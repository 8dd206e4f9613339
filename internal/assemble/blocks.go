package assemble

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/formula"
	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/alnah/go-md2docx/internal/numbering"
	"github.com/alnah/go-md2docx/internal/style"
)

// Task list checkboxes.
const (
	boxUnchecked = "☐"
	boxChecked   = "☑"
)

func (s *assembly) block(b mdtree.Block, sc scope) {
	switch v := b.(type) {
	case *mdtree.Paragraph:
		s.paragraph(sc.role, v.Inlines, sc, v.Line)
	case *mdtree.Heading:
		s.heading(v)
	case *mdtree.ListItem:
		s.listItem(v, sc)
	case *mdtree.Table:
		s.table(v, sc)
	case *mdtree.CodeBlock:
		s.codeBlock(v, sc)
	case *mdtree.MathBlock:
		s.mathBlock(v, sc)
	case *mdtree.Image:
		s.figure(v, sc)
	case *mdtree.ThematicBreak:
		s.doc.Append(&document.Paragraph{
			Role:         style.RoleNormal,
			Style:        s.paraStyle(style.RoleNormal, sc, style.Override{FirstLineIndent: style.Ptr(0)}),
			BottomBorder: true,
			Line:         v.Line,
		})
	case *mdtree.Quote:
		inner := scope{indent: sc.indent, quote: sc.quote + 1, role: style.RoleQuote, listBase: sc.listBase}
		for _, c := range v.Children {
			if _, ok := c.(*mdtree.ListItem); !ok {
				s.tracker.Truncate(inner.listBase)
			}
			s.block(c, inner)
		}
	case *mdtree.HTMLBlock:
		if strings.TrimSpace(v.Text) == "" {
			return
		}
		s.paragraph(sc.role, []mdtree.Inline{&mdtree.Text{Value: v.Text}}, sc, v.Line)
	default:
		panic(fmt.Sprintf("assemble: unknown block type %T", b))
	}
}

// paraStyle resolves role for a paragraph in scope sc. Nested quotes and
// list content shift the left indent; ov is applied last.
func (s *assembly) paraStyle(role style.Role, sc scope, ov style.Override) *style.Descriptor {
	base := s.styles.Resolve(role, style.Override{})
	left := base.Paragraph.LeftIndent + sc.indent
	if sc.quote > 1 {
		left += s.styles.Resolve(style.RoleQuote, style.Override{}).Paragraph.LeftIndent * (sc.quote - 1)
	}
	if left != base.Paragraph.LeftIndent && ov.LeftIndent == nil {
		ov.LeftIndent = style.Ptr(left)
	}
	if sc.indent > 0 && ov.FirstLineIndent == nil {
		ov.FirstLineIndent = style.Ptr(0)
	}
	return s.styles.Resolve(role, ov)
}

func (s *assembly) paragraph(role style.Role, spans []mdtree.Inline, sc scope, line int) {
	desc := s.paraStyle(role, sc, style.Override{})
	s.doc.Append(&document.Paragraph{
		Role:    role,
		Style:   desc,
		Inlines: s.inlines(spans, desc, nil, line),
		Line:    line,
	})
}

func (s *assembly) heading(h *mdtree.Heading) {
	role := style.HeadingRole(h.Level)
	desc := s.styles.Resolve(role, style.Override{})
	if s.firstHeading == "" {
		s.firstHeading = strings.TrimSpace(mdtree.PlainText(h.Inlines))
	}
	s.doc.Append(&document.Paragraph{
		Role:     role,
		Style:    desc,
		Inlines:  s.inlines(h.Inlines, desc, nil, h.Line),
		Bookmark: s.bookmarks[h.ID],
		Line:     h.Line,
	})
}

// listItem renders the marker as literal text followed by a tab, with a
// hanging indent per depth. Children share the item's scope so nested
// items indent by their own depth.
func (s *assembly) listItem(item *mdtree.ListItem, sc scope) {
	s.setState(InList)
	ctx := s.tracker.Enter(item.Depth, item.Ordered)
	marker := numbering.Marker(ctx)

	spans := item.Inlines
	if item.Task {
		box := boxUnchecked
		if item.Checked {
			box = boxChecked
		}
		if item.Ordered {
			spans = append([]mdtree.Inline{&mdtree.Text{Value: box + " "}}, spans...)
		} else {
			marker = box
		}
	}

	left := sc.indent + listIndent*(item.Depth+1)
	desc := s.styles.Resolve(style.RoleListParagraph, style.Override{
		LeftIndent:      style.Ptr(left),
		FirstLineIndent: style.Ptr(-listHanging),
	})
	inlines := []document.Inline{&document.Run{Text: marker + "\t", Style: desc}}
	inlines = append(inlines, s.inlines(spans, desc, nil, item.Line)...)
	s.doc.Append(&document.Paragraph{
		Role:    style.RoleListParagraph,
		Style:   desc,
		Inlines: inlines,
		Tabs:    []document.TabStop{{Align: document.TabLeft, Pos: left}},
		Line:    item.Line,
	})

	content := scope{indent: left, quote: sc.quote, role: style.RoleListParagraph, listBase: item.Depth + 1}
	if sc.quote > 0 {
		content.role = style.RoleQuote
	}
	for _, c := range item.Children {
		if nested, ok := c.(*mdtree.ListItem); ok {
			s.listItem(nested, sc)
			continue
		}
		// Text between nested lists ends them; the item's own list goes on.
		s.tracker.Truncate(content.listBase)
		s.block(c, content)
		s.setState(InList)
	}
}

func (s *assembly) mathBlock(m *mdtree.MathBlock, sc scope) {
	f, err := formula.Translate(m.Source)
	if err != nil {
		s.warn(document.WarnFormulaFallback, m.Line, m.Source, err)
		desc := s.paraStyle(style.RoleEquation, sc, style.Override{})
		s.doc.Append(&document.Paragraph{
			Role:    style.RoleEquation,
			Style:   desc,
			Inlines: []document.Inline{&document.Run{Text: m.Source, Style: desc}},
			Line:    m.Line,
		})
		return
	}

	if !s.opts.NumberEquations {
		desc := s.paraStyle(style.RoleEquation, sc, style.Override{})
		s.doc.Append(&document.Paragraph{
			Role:    style.RoleEquation,
			Style:   desc,
			Inlines: []document.Inline{&document.Math{Formula: f, Style: desc, Display: true}},
			Line:    m.Line,
		})
		return
	}

	s.equations++
	desc := s.paraStyle(style.RoleEquation, sc, style.Override{
		Alignment:       style.Ptr(style.AlignLeft),
		FirstLineIndent: style.Ptr(0),
	})
	width := s.doc.Page.TextWidth()
	s.doc.Append(&document.Paragraph{
		Role:  style.RoleEquation,
		Style: desc,
		Inlines: []document.Inline{
			&document.Run{Text: "\t", Style: desc},
			&document.Math{Formula: f, Style: desc},
			&document.Run{Text: fmt.Sprintf("\t(%d)", s.equations), Style: desc},
		},
		Tabs: []document.TabStop{
			{Align: document.TabCenter, Pos: width / 2},
			{Align: document.TabRight, Pos: width},
		},
		Line: m.Line,
	})
}

func (s *assembly) figure(img *mdtree.Image, sc scope) {
	desc := s.paraStyle(style.RoleFigure, sc, style.Override{})
	maxWidth := s.doc.Page.TextWidthEMU() - int64(sc.indent)*document.EMUPerTwip
	inline, ok := s.image(img.Source, img.Alt, img.Title, desc, maxWidth, img.Line)
	s.doc.Append(&document.Paragraph{
		Role:    style.RoleFigure,
		Style:   desc,
		Inlines: []document.Inline{inline},
		Line:    img.Line,
	})
	if !ok || !s.opts.Captions {
		return
	}

	s.figures++
	text := fmt.Sprintf("%s %d", s.opts.CaptionLabel, s.figures)
	if alt := strings.TrimSpace(img.Alt); alt != "" {
		text += ": " + alt
	}
	capStyle := s.paraStyle(style.RoleCaption, sc, style.Override{})
	s.doc.Append(&document.Paragraph{
		Role:    style.RoleCaption,
		Style:   capStyle,
		Inlines: []document.Inline{&document.Run{Text: text, Style: capStyle}},
		Line:    img.Line,
	})
}
