package document

import (
	"github.com/alnah/go-md2docx/internal/formula"
	"github.com/alnah/go-md2docx/internal/resource"
	"github.com/alnah/go-md2docx/internal/style"
)

// Block is a top-level body element.
type Block interface {
	isBlock()
}

// Inline is a paragraph child.
type Inline interface {
	isInline()
}

// TabAlign is the alignment of a custom tab stop.
type TabAlign string

// Tab stop alignments.
const (
	TabLeft   TabAlign = "left"
	TabCenter TabAlign = "center"
	TabRight  TabAlign = "right"
)

// TabStop is a custom tab stop, Pos in twips from the left margin.
type TabStop struct {
	Align TabAlign
	Pos   int
}

// Paragraph is one paragraph. Role names the paragraph style it is based
// on; Style is the effective paragraph formatting.
type Paragraph struct {
	Role    style.Role
	Style   *style.Descriptor
	Inlines []Inline
	Tabs    []TabStop
	// BottomBorder draws a horizontal rule under the paragraph.
	BottomBorder bool
	// Bookmark names a bookmark around the paragraph content, the target
	// of Hyperlink.Anchor.
	Bookmark string
	// Line is the Markdown source line, 0 if unknown.
	Line int
}

// Run is styled text. A tab character in Text becomes a tab and a newline
// becomes a line break.
type Run struct {
	Text  string
	Style *style.Descriptor
}

// Image is an inline picture. CX and CY are the display extent in EMU.
type Image struct {
	Handle resource.Handle
	CX, CY int64
	// DocPrID is unique among the drawings of a document.
	DocPrID int
	Name    string
	Descr   string
}

// Math is a formula. Display formulas occupy their own paragraph as an
// equation block; the others flow inline with text.
type Math struct {
	Formula *formula.Math
	Style   *style.Descriptor
	Display bool
}

// Hyperlink wraps runs in a link. RelID points into the document's link
// table; Anchor, when set, targets a bookmark instead.
type Hyperlink struct {
	RelID  string
	Anchor string
	Runs   []Inline
}

// Table is a grid of cells. Every row holds exactly len(Widths) cells.
type Table struct {
	// Widths are the column widths in twips.
	Widths []int
	Rows   []Row
	// ThreeLine draws the academic three-line rules instead of a full grid.
	ThreeLine bool
	Line      int
}

// Row is a table row. Header rows repeat on every page.
type Row struct {
	Header bool
	Cells  []Cell
}

// Cell holds one or more paragraphs.
type Cell struct {
	Paragraphs []*Paragraph
}

func (*Paragraph) isBlock() {}
func (*Table) isBlock()     {}

func (*Run) isInline()       {}
func (*Image) isInline()     {}
func (*Math) isInline()      {}
func (*Hyperlink) isInline() {}

// Columns returns the column count.
func (t *Table) Columns() int { return len(t.Widths) }
