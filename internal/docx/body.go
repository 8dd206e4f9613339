package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/resource"
	"github.com/alnah/go-md2docx/internal/style"
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsM   = "http://schemas.openxmlformats.org/officeDocument/2006/math"
)

// bodyWriter writes word/document.xml.
type bodyWriter struct {
	w     *xmlWriter
	doc   *document.Document
	parts map[int]resource.Part
	marks int
}

func writeDocumentXML(doc *document.Document) []byte {
	bw := &bodyWriter{w: newXMLWriter(), doc: doc, parts: make(map[int]resource.Part)}
	for _, p := range doc.Resources.Parts() {
		bw.parts[p.ID] = p
	}
	w := bw.w

	w.start("w:document",
		"xmlns:w", nsW, "xmlns:r", nsR, "xmlns:wp", nsWP,
		"xmlns:a", nsA, "xmlns:pic", nsPic, "xmlns:m", nsM)
	w.start("w:body")
	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *document.Paragraph:
			bw.paragraph(v)
		case *document.Table:
			bw.table(v)
		default:
			panic(fmt.Sprintf("docx: unknown block type %T", b))
		}
	}
	if n := len(doc.Blocks); n > 0 {
		if _, ok := doc.Blocks[n-1].(*document.Table); ok {
			w.empty("w:p")
		}
	}
	sectionProps(w, doc.Page)
	w.end("w:body")
	w.end("w:document")
	return w.bytes()
}

func (bw *bodyWriter) paragraph(p *document.Paragraph) {
	w := bw.w
	base := bw.doc.Sheet.Descriptor(p.Role)
	w.start("w:p")
	paragraphProps(w, base.Role, p.Style, base, p, -1)
	if p.Bookmark == "" {
		bw.inlines(p.Inlines, &base.Font)
		w.end("w:p")
		return
	}
	id := strconv.Itoa(bw.marks)
	bw.marks++
	w.empty("w:bookmarkStart", "w:id", id, "w:name", p.Bookmark)
	bw.inlines(p.Inlines, &base.Font)
	w.empty("w:bookmarkEnd", "w:id", id)
	w.end("w:p")
}

func (bw *bodyWriter) inlines(inlines []document.Inline, base *style.Font) {
	w := bw.w
	for _, in := range inlines {
		switch v := in.(type) {
		case *document.Run:
			bw.run(v, base)
		case *document.Image:
			bw.image(v)
		case *document.Math:
			writeMath(w, v.Formula, v.Display)
		case *document.Hyperlink:
			if v.Anchor != "" {
				w.start("w:hyperlink", "w:anchor", v.Anchor, "w:history", "1")
			} else {
				w.start("w:hyperlink", "r:id", v.RelID, "w:history", "1")
			}
			bw.inlines(v.Runs, base)
			w.end("w:hyperlink")
		default:
			panic(fmt.Sprintf("docx: unknown inline type %T", in))
		}
	}
}

// run splits text on tabs and newlines, which Word models as elements.
func (bw *bodyWriter) run(r *document.Run, base *style.Font) {
	w := bw.w
	w.start("w:r")
	runProps(w, &r.Style.Font, base)
	text := r.Text
	for text != "" {
		i := strings.IndexAny(text, "\t\n")
		if i < 0 {
			w.elem("w:t", text, "xml:space", "preserve")
			break
		}
		if i > 0 {
			w.elem("w:t", text[:i], "xml:space", "preserve")
		}
		if text[i] == '\t' {
			w.empty("w:tab")
		} else {
			w.empty("w:br")
		}
		text = text[i+1:]
	}
	w.end("w:r")
}

func (bw *bodyWriter) image(img *document.Image) {
	w := bw.w
	part := bw.parts[img.Handle.ID()]
	cx, cy := strconv.FormatInt(img.CX, 10), strconv.FormatInt(img.CY, 10)
	id := strconv.Itoa(img.DocPrID)

	w.start("w:r")
	w.start("w:drawing")
	w.start("wp:inline", "distT", "0", "distB", "0", "distL", "0", "distR", "0")
	w.empty("wp:extent", "cx", cx, "cy", cy)
	w.empty("wp:effectExtent", "l", "0", "t", "0", "r", "0", "b", "0")
	w.empty("wp:docPr", "id", id, "name", img.Name, "descr", img.Descr)
	w.start("wp:cNvGraphicFramePr")
	w.empty("a:graphicFrameLocks", "noChangeAspect", "1")
	w.end("wp:cNvGraphicFramePr")
	w.start("a:graphic")
	w.start("a:graphicData", "uri", nsPic)
	w.start("pic:pic")
	w.start("pic:nvPicPr")
	w.empty("pic:cNvPr", "id", id, "name", part.Target())
	w.empty("pic:cNvPicPr")
	w.end("pic:nvPicPr")
	w.start("pic:blipFill")
	w.empty("a:blip", "r:embed", part.RelID)
	w.start("a:stretch")
	w.empty("a:fillRect")
	w.end("a:stretch")
	w.end("pic:blipFill")
	w.start("pic:spPr")
	w.start("a:xfrm")
	w.empty("a:off", "x", "0", "y", "0")
	w.empty("a:ext", "cx", cx, "cy", cy)
	w.end("a:xfrm")
	w.start("a:prstGeom", "prst", "rect")
	w.empty("a:avLst")
	w.end("a:prstGeom")
	w.end("pic:spPr")
	w.end("pic:pic")
	w.end("a:graphicData")
	w.end("a:graphic")
	w.end("wp:inline")
	w.end("w:drawing")
	w.end("w:r")
}

// Border sizes in eighths of a point.
const (
	ruleHeavy = "12"
	ruleThin  = "6"
	ruleGrid  = "4"
)

func (bw *bodyWriter) table(t *document.Table) {
	w := bw.w
	total := 0
	for _, width := range t.Widths {
		total += width
	}

	w.start("w:tbl")
	w.start("w:tblPr")
	w.empty("w:tblW", "w:w", strconv.Itoa(total), "w:type", "dxa")
	w.val("w:jc", "center")
	w.start("w:tblBorders")
	if t.ThreeLine {
		border(w, "w:top", ruleHeavy)
		border(w, "w:left", "")
		border(w, "w:bottom", ruleHeavy)
		border(w, "w:right", "")
		border(w, "w:insideH", "")
		border(w, "w:insideV", "")
	} else {
		for _, side := range []string{"w:top", "w:left", "w:bottom", "w:right", "w:insideH", "w:insideV"} {
			border(w, side, ruleGrid)
		}
	}
	w.end("w:tblBorders")
	w.empty("w:tblLayout", "w:type", "fixed")
	w.end("w:tblPr")

	w.start("w:tblGrid")
	for _, width := range t.Widths {
		w.empty("w:gridCol", "w:w", strconv.Itoa(width))
	}
	w.end("w:tblGrid")

	for _, row := range t.Rows {
		w.start("w:tr")
		if row.Header {
			w.start("w:trPr")
			w.empty("w:tblHeader")
			w.end("w:trPr")
		}
		for i, cell := range row.Cells {
			w.start("w:tc")
			w.start("w:tcPr")
			w.empty("w:tcW", "w:w", strconv.Itoa(t.Widths[i]), "w:type", "dxa")
			if row.Header && t.ThreeLine {
				w.start("w:tcBorders")
				border(w, "w:bottom", ruleThin)
				w.end("w:tcBorders")
			}
			w.val("w:vAlign", "center")
			w.end("w:tcPr")
			if len(cell.Paragraphs) == 0 {
				w.empty("w:p")
			}
			for _, p := range cell.Paragraphs {
				bw.paragraph(p)
			}
			w.end("w:tc")
		}
		w.end("w:tr")
	}
	w.end("w:tbl")
}

// border writes a single line of the given size, or no line when size is
// empty.
func border(w *xmlWriter, side, size string) {
	if size == "" {
		w.empty(side, "w:val", "nil")
		return
	}
	w.empty(side, "w:val", "single", "w:sz", size, "w:space", "0", "w:color", "000000")
}

func sectionProps(w *xmlWriter, p document.Page) {
	w.start("w:sectPr")
	attrs := []string{"w:w", strconv.Itoa(p.Width), "w:h", strconv.Itoa(p.Height)}
	if p.Landscape {
		attrs = append(attrs, "w:orient", "landscape")
	}
	w.empty("w:pgSz", attrs...)
	w.empty("w:pgMar",
		"w:top", strconv.Itoa(p.Margins.Top),
		"w:right", strconv.Itoa(p.Margins.Right),
		"w:bottom", strconv.Itoa(p.Margins.Bottom),
		"w:left", strconv.Itoa(p.Margins.Left),
		"w:header", "851", "w:footer", "992", "w:gutter", "0")
	w.end("w:sectPr")
}
