package docx

import (
	"strconv"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/style"
)

// Paragraph and run properties are written as the difference between the
// wanted descriptor and the one inherited from the named style, so most
// elements carry only a style reference.

// paragraphProps writes <w:pPr>. pStyle is empty inside style
// definitions, base is nil for a style without parent, p is nil for style
// definitions, and outline is the heading outline level or -1.
func paragraphProps(w *xmlWriter, pStyle style.Role, want, base *style.Descriptor, p *document.Paragraph, outline int) {
	w.start("w:pPr")
	if pStyle != "" {
		w.val("w:pStyle", string(pStyle))
	}
	pp, bp := want.Paragraph, style.Paragraph{}
	if base != nil {
		bp = base.Paragraph
	}
	full := base == nil

	toggle(w, "w:keepNext", pp.KeepWithNext, bp.KeepWithNext, full)
	if p != nil && p.BottomBorder {
		w.start("w:pBdr")
		w.empty("w:bottom", "w:val", "single", "w:sz", "6", "w:space", "1", "w:color", "808080")
		w.end("w:pBdr")
	}
	if p != nil && len(p.Tabs) > 0 {
		w.start("w:tabs")
		for _, t := range p.Tabs {
			w.empty("w:tab", "w:val", string(t.Align), "w:pos", strconv.Itoa(t.Pos))
		}
		w.end("w:tabs")
	}

	var spacing []string
	if full || pp.SpaceBefore != bp.SpaceBefore {
		spacing = append(spacing, "w:before", strconv.Itoa(pp.SpaceBefore))
	}
	if full || pp.SpaceAfter != bp.SpaceAfter {
		spacing = append(spacing, "w:after", strconv.Itoa(pp.SpaceAfter))
	}
	if (full || pp.LineSpacing != bp.LineSpacing) && pp.LineSpacing > 0 {
		spacing = append(spacing, "w:line", strconv.Itoa(pp.LineSpacing), "w:lineRule", "auto")
	}
	if len(spacing) > 0 {
		w.empty("w:spacing", spacing...)
	}

	var ind []string
	if full || pp.LeftIndent != bp.LeftIndent {
		ind = append(ind, "w:left", strconv.Itoa(pp.LeftIndent))
	}
	if full || pp.RightIndent != bp.RightIndent {
		ind = append(ind, "w:right", strconv.Itoa(pp.RightIndent))
	}
	if full || pp.FirstLineIndent != bp.FirstLineIndent {
		if pp.FirstLineIndent < 0 {
			ind = append(ind, "w:hanging", strconv.Itoa(-pp.FirstLineIndent))
		} else {
			ind = append(ind, "w:firstLine", strconv.Itoa(pp.FirstLineIndent))
		}
	}
	if len(ind) > 0 {
		w.empty("w:ind", ind...)
	}

	if (full || pp.Alignment != bp.Alignment) && pp.Alignment != "" {
		w.val("w:jc", string(pp.Alignment))
	}
	if outline >= 0 {
		w.val("w:outlineLvl", strconv.Itoa(outline))
	}
	w.end("w:pPr")
}

// runProps writes <w:rPr> when want differs from base. It writes nothing
// when the fonts match.
func runProps(w *xmlWriter, want, base *style.Font) {
	var b style.Font
	full := base == nil
	if base != nil {
		b = *base
	}
	f := *want
	if !full && f == b {
		return
	}

	w.start("w:rPr")
	if full || f.Family != b.Family || f.EastAsia != b.EastAsia {
		var attrs []string
		if f.Family != "" {
			attrs = append(attrs, "w:ascii", f.Family, "w:hAnsi", f.Family, "w:cs", f.Family)
		}
		if f.EastAsia != "" {
			attrs = append(attrs, "w:eastAsia", f.EastAsia)
		}
		if len(attrs) > 0 {
			w.empty("w:rFonts", attrs...)
		}
	}
	toggle(w, "w:b", f.Bold, b.Bold, full)
	toggle(w, "w:bCs", f.Bold, b.Bold, full)
	toggle(w, "w:i", f.Italic, b.Italic, full)
	toggle(w, "w:iCs", f.Italic, b.Italic, full)
	toggle(w, "w:strike", f.Strike, b.Strike, full)
	if (full || f.Color != b.Color) && f.Color != "" {
		w.val("w:color", f.Color)
	}
	if (full || f.SizeHalfPoints != b.SizeHalfPoints) && f.SizeHalfPoints > 0 {
		size := strconv.Itoa(f.SizeHalfPoints)
		w.val("w:sz", size)
		w.val("w:szCs", size)
	}
	if full || f.Underline != b.Underline {
		if f.Underline {
			w.val("w:u", "single")
		} else if !full {
			w.val("w:u", "none")
		}
	}
	if full || f.Shading != b.Shading {
		if f.Shading != "" {
			w.empty("w:shd", "w:val", "clear", "w:color", "auto", "w:fill", f.Shading)
		} else if !full {
			w.empty("w:shd", "w:val", "clear", "w:color", "auto", "w:fill", "auto")
		}
	}
	if full || f.VertAlign != b.VertAlign {
		switch {
		case f.VertAlign != "":
			w.val("w:vertAlign", f.VertAlign)
		case !full:
			w.val("w:vertAlign", "baseline")
		}
	}
	w.end("w:rPr")
}

// toggle writes an on/off property when want differs from the inherited
// value. With full set nothing is inherited and only true is written.
func toggle(w *xmlWriter, name string, want, inherited, full bool) {
	switch {
	case full && want, !full && want && !inherited:
		w.empty(name)
	case !full && !want && inherited:
		w.val(name, "0")
	}
}
