package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-md2docx/internal/resource"
	"github.com/alnah/go-md2docx/internal/style"
)

// ErrInvalidDocument is the sentinel matched by ValidationError.
var ErrInvalidDocument = errors.New("invalid document")

// ValidationError reports a broken reference or shape in a Document.
type ValidationError struct {
	Path   string // e.g. "block 3/run 2"
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid document: " + e.Reason
	}
	return fmt.Sprintf("invalid document at %s: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrInvalidDocument.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// CoreProperties is the package metadata written to docProps/core.xml.
// A zero Created omits the timestamps.
type CoreProperties struct {
	Title       string
	Creator     string
	Subject     string
	Description string
	Keywords    []string
	Created     time.Time
}

// WarningKind classifies a recovered per-node problem.
type WarningKind string

// Warning kinds.
const (
	WarnFormulaFallback  WarningKind = "FormulaFallback"
	WarnImageUnavailable WarningKind = "ImageUnavailable"
	WarnUnsupportedImage WarningKind = "UnsupportedImage"
)

// Warning is a problem the assembler recovered from.
type Warning struct {
	Kind   WarningKind
	Line   int
	Detail string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("near line %d: %s: %s", w.Line, w.Kind, w.Detail)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}

// Document is a complete word-processing document.
type Document struct {
	Blocks    []Block
	Sheet     *style.Sheet
	Resources *resource.Table
	Links     *LinkTable
	Page      Page
	Core      CoreProperties
	Warnings  []Warning
}

// New creates an empty document with its own resource and link tables.
func New(sheet *style.Sheet, page Page) *Document {
	return &Document{
		Sheet:     sheet,
		Resources: resource.NewTable(),
		Links:     NewLinkTable(),
		Page:      page,
	}
}

// Append adds blocks to the body.
func (d *Document) Append(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// Warn records a warning.
func (d *Document) Warn(kind WarningKind, line int, detail string) {
	d.Warnings = append(d.Warnings, Warning{Kind: kind, Line: line, Detail: detail})
}

// Stats counts document elements.
type Stats struct {
	Paragraphs int
	Tables     int
	Images     int
	Equations  int
	Links      int
}

// Stats walks the body and counts its elements.
func (d *Document) Stats() Stats {
	var s Stats
	var walkPara func(p *Paragraph)
	var walkInlines func(in []Inline)
	walkInlines = func(in []Inline) {
		for _, x := range in {
			switch v := x.(type) {
			case *Image:
				s.Images++
			case *Math:
				s.Equations++
			case *Hyperlink:
				s.Links++
				walkInlines(v.Runs)
			}
		}
	}
	walkPara = func(p *Paragraph) {
		s.Paragraphs++
		walkInlines(p.Inlines)
	}
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			walkPara(v)
		case *Table:
			s.Tables++
			for _, row := range v.Rows {
				for _, cell := range row.Cells {
					for _, p := range cell.Paragraphs {
						walkPara(p)
					}
				}
			}
		}
	}
	return s
}

// Validate checks that the document can be serialized: a style sheet is
// present, the page is usable, tables are rectangular, and every image
// and hyperlink points into this document's tables.
func (d *Document) Validate() error {
	if d == nil {
		return &ValidationError{Reason: "nil document"}
	}
	if d.Sheet == nil {
		return &ValidationError{Reason: "missing style sheet"}
	}
	if d.Resources == nil || d.Links == nil {
		return &ValidationError{Reason: "missing resource or link table"}
	}
	if err := d.Page.Validate(); err != nil {
		return &ValidationError{Path: "page", Reason: err.Error()}
	}

	for i, b := range d.Blocks {
		path := fmt.Sprintf("block %d", i+1)
		switch v := b.(type) {
		case *Paragraph:
			if err := d.validateParagraph(path, v); err != nil {
				return err
			}
		case *Table:
			if err := d.validateTable(path, v); err != nil {
				return err
			}
		default:
			return &ValidationError{Path: path, Reason: fmt.Sprintf("unknown block type %T", b)}
		}
	}
	return nil
}

func (d *Document) validateTable(path string, t *Table) error {
	if t == nil {
		return &ValidationError{Path: path, Reason: "nil table"}
	}
	if len(t.Widths) == 0 {
		return &ValidationError{Path: path, Reason: "table without columns"}
	}
	for r, row := range t.Rows {
		if len(row.Cells) != len(t.Widths) {
			return &ValidationError{
				Path:   fmt.Sprintf("%s/row %d", path, r+1),
				Reason: fmt.Sprintf("%d cells, want %d", len(row.Cells), len(t.Widths)),
			}
		}
		for c, cell := range row.Cells {
			for p, para := range cell.Paragraphs {
				cp := fmt.Sprintf("%s/row %d/cell %d/paragraph %d", path, r+1, c+1, p+1)
				if err := d.validateParagraph(cp, para); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (d *Document) validateParagraph(path string, p *Paragraph) error {
	if p == nil {
		return &ValidationError{Path: path, Reason: "nil paragraph"}
	}
	if p.Style == nil {
		return &ValidationError{Path: path, Reason: "paragraph without style"}
	}
	return d.validateInlines(path, p.Inlines)
}

func (d *Document) validateInlines(path string, inlines []Inline) error {
	for i, in := range inlines {
		ip := fmt.Sprintf("%s/inline %d", path, i+1)
		switch v := in.(type) {
		case *Run:
			if v.Style == nil {
				return &ValidationError{Path: ip, Reason: "run without style"}
			}
		case *Image:
			if !d.Resources.Owns(v.Handle) {
				return &ValidationError{Path: ip, Reason: resource.ErrForeignHandle.Error()}
			}
			if v.CX <= 0 || v.CY <= 0 {
				return &ValidationError{Path: ip, Reason: "image without extent"}
			}
		case *Math:
			if v.Formula == nil {
				return &ValidationError{Path: ip, Reason: "empty formula"}
			}
		case *Hyperlink:
			if v.Anchor == "" && !d.Links.Has(v.RelID) {
				return &ValidationError{Path: ip, Reason: fmt.Sprintf("unknown hyperlink relationship %q", v.RelID)}
			}
			if err := d.validateInlines(ip, v.Runs); err != nil {
				return err
			}
		default:
			return &ValidationError{Path: ip, Reason: fmt.Sprintf("unknown inline type %T", in)}
		}
	}
	return nil
}
