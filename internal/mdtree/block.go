package mdtree

// MaxNestingDepth bounds list and quote nesting. Deeper input is rejected
// with a MalformedBlockError.
const MaxNestingDepth = 64

// Node carries the source location shared by every block.
type Node struct {
	Line int // 1-based line in the preprocessed source, 0 if unknown
}

// SourceLine returns the line the block started on.
func (n Node) SourceLine() int { return n.Line }

// Block is one structural unit of the document.
type Block interface {
	SourceLine() int
	isBlock()
}

// Alignment is a table column alignment.
type Alignment int

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Paragraph is a run of inline content.
type Paragraph struct {
	Node
	Inlines []Inline
}

// Heading is an ATX or setext heading, Level 1 to 6.
type Heading struct {
	Node
	Level   int
	Inlines []Inline
	// ID is the fragment that #ID links resolve to, unique per document.
	ID string
}

// ListItem is one list entry. Depth 0 is the outermost list.
// Inlines holds the item's leading paragraph; anything after it, including
// nested items, lives in Children.
type ListItem struct {
	Node
	Depth    int
	Ordered  bool
	Marker   byte // '-', '*', '+' for bullets; '.' or ')' for ordered
	Task     bool
	Checked  bool
	Inlines  []Inline
	Children []Block
}

// Cell is one table cell. Images written directly in the cell are kept
// apart from the text and rendered after it.
type Cell struct {
	Inlines []Inline
	Images  []*Image
}

// Table is a pipe table. Header and every row hold exactly len(Align) cells.
type Table struct {
	Node
	Align  []Alignment
	Header []Cell
	Rows   [][]Cell
}

// Columns returns the column count.
func (t *Table) Columns() int { return len(t.Align) }

// CodeBlock is a fenced or indented code block. Lines hold the source lines
// without trailing newlines.
type CodeBlock struct {
	Node
	Language string
	Lines    []string
}

// MathBlock is display math.
type MathBlock struct {
	Node
	Source string
}

// Image is a standalone image.
type Image struct {
	Node
	Source string
	Alt    string
	Title  string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct {
	Node
}

// Quote is a block quote.
type Quote struct {
	Node
	Children []Block
}

// HTMLBlock is raw HTML reduced to its visible text.
type HTMLBlock struct {
	Node
	Text string
}

func (*Paragraph) isBlock()     {}
func (*Heading) isBlock()       {}
func (*ListItem) isBlock()      {}
func (*Table) isBlock()         {}
func (*CodeBlock) isBlock()     {}
func (*MathBlock) isBlock()     {}
func (*Image) isBlock()         {}
func (*ThematicBreak) isBlock() {}
func (*Quote) isBlock()         {}
func (*HTMLBlock) isBlock()     {}

// Metadata is document-level information taken from front matter.
type Metadata struct {
	Title       string
	Author      string
	Subject     string
	Description string
	Keywords    []string
}

// Document is the parser output.
type Document struct {
	Blocks []Block
	Meta   Metadata
}
