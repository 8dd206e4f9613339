package assemble

import (
	"github.com/mattn/go-runewidth"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/alnah/go-md2docx/internal/style"
)

// Column weights are display widths clamped to this range, so one long
// cell cannot squeeze the other columns to nothing.
const (
	minColumnWeight = 4
	maxColumnWeight = 40
)

// table builds the whole grid locally and appends it once every cell has
// been converted. Cell images that fail degrade to placeholders in place.
func (s *assembly) table(t *mdtree.Table, sc scope) {
	prev := s.state
	s.setState(InTable)
	defer s.setState(prev)

	cols := t.Columns()
	if cols == 0 {
		return
	}
	widths := columnWidths(t, s.doc.Page.TextWidth()-sc.indent)
	out := &document.Table{
		Widths:    widths,
		ThreeLine: !s.opts.PlainTables,
		Line:      t.Line,
	}

	out.Rows = append(out.Rows, s.row(t.Header, t.Align, widths, true, t.Line))
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, s.row(r, t.Align, widths, false, t.Line))
	}
	s.doc.Append(out)
}

func (s *assembly) row(cells []mdtree.Cell, align []mdtree.Alignment, widths []int, header bool, line int) document.Row {
	role := style.RoleTableText
	if header {
		role = style.RoleTableHeader
	}
	row := document.Row{Header: header, Cells: make([]document.Cell, len(widths))}
	for i := range widths {
		var c mdtree.Cell
		if i < len(cells) {
			c = cells[i]
		}
		var ov style.Override
		if a, ok := cellAlignment(align, i); ok {
			ov.Alignment = style.Ptr(a)
		}
		desc := s.styles.Resolve(role, ov)

		paras := []*document.Paragraph{{
			Role:    role,
			Style:   desc,
			Inlines: s.inlines(c.Inlines, desc, nil, line),
			Line:    line,
		}}
		maxWidth := int64(widths[i]) * document.EMUPerTwip
		for _, img := range c.Images {
			inline, _ := s.image(img.Source, img.Alt, img.Title, desc, maxWidth, line)
			paras = append(paras, &document.Paragraph{
				Role:    role,
				Style:   desc,
				Inlines: []document.Inline{inline},
				Line:    line,
			})
		}
		row.Cells[i] = document.Cell{Paragraphs: paras}
	}
	return row
}

func cellAlignment(align []mdtree.Alignment, col int) (style.Alignment, bool) {
	if col >= len(align) {
		return "", false
	}
	switch align[col] {
	case mdtree.AlignLeft:
		return style.AlignLeft, true
	case mdtree.AlignCenter:
		return style.AlignCenter, true
	case mdtree.AlignRight:
		return style.AlignRight, true
	}
	return "", false
}

// columnWidths splits total twips across columns in proportion to the
// widest cell text of each column, measured in terminal cells so CJK
// text counts double.
func columnWidths(t *mdtree.Table, total int) []int {
	cols := t.Columns()
	weights := make([]int, cols)
	measure := func(cells []mdtree.Cell) {
		for i := 0; i < cols && i < len(cells); i++ {
			w := runewidth.StringWidth(mdtree.PlainText(cells[i].Inlines))
			weights[i] = max(weights[i], w)
		}
	}
	measure(t.Header)
	for _, r := range t.Rows {
		measure(r)
	}

	sum := 0
	for i, w := range weights {
		weights[i] = min(max(w, minColumnWeight), maxColumnWeight)
		sum += weights[i]
	}
	widths := make([]int, cols)
	used := 0
	for i, w := range weights {
		widths[i] = total * w / sum
		used += widths[i]
	}
	widths[cols-1] += total - used
	return widths
}
