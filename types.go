package md2docx

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/style"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds and defaults in centimeters.
const (
	MinMargin = 0.5
	MaxMargin = 10.0

	DefaultMarginTopBottom = 2.54
	DefaultMarginLeftRight = 3.18
)

// PageSettings configures page dimensions.
type PageSettings struct {
	Size        string   // "a4", "letter" (default: "a4")
	Orientation string   // "portrait", "landscape" (default: "portrait")
	Margins     *Margins // nil = defaults
}

// Margins holds page margins in centimeters. A zero side keeps its default.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margins: &Margins{
			Top:    DefaultMarginTopBottom,
			Bottom: DefaultMarginTopBottom,
			Left:   DefaultMarginLeftRight,
			Right:  DefaultMarginLeftRight,
		},
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if m := p.Margins; m != nil {
		sides := []struct {
			name  string
			value float64
		}{{"top", m.Top}, {"bottom", m.Bottom}, {"left", m.Left}, {"right", m.Right}}
		for _, s := range sides {
			if s.value == 0 {
				continue
			}
			if s.value < MinMargin || s.value > MaxMargin {
				return fmt.Errorf("%w: %s %.2f (must be between %.2f and %.2f cm)", ErrInvalidMargin, s.name, s.value, MinMargin, MaxMargin)
			}
		}
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
// Empty selects the default.
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case "", PageSizeA4, PageSizeLetter:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
// Empty selects the default.
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case "", OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// page converts validated settings to the document page setup.
func (p *PageSettings) page() (document.Page, error) {
	if p == nil {
		return document.NewPage(document.SizeA4, false)
	}
	pg, err := document.NewPage(strings.ToLower(p.Size), strings.EqualFold(p.Orientation, OrientationLandscape))
	if err != nil {
		return document.Page{}, fmt.Errorf("%w: %v", ErrInvalidPageSize, err)
	}
	if m := p.Margins; m != nil {
		set := func(dst *int, cm float64) {
			if cm != 0 {
				*dst = document.CM(cm)
			}
		}
		set(&pg.Margins.Top, m.Top)
		set(&pg.Margins.Bottom, m.Bottom)
		set(&pg.Margins.Left, m.Left)
		set(&pg.Margins.Right, m.Right)
	}
	if err := pg.Validate(); err != nil {
		return document.Page{}, fmt.Errorf("%w: %v", ErrInvalidMargin, err)
	}
	return pg, nil
}

// Metadata sets the document core properties. Empty fields are filled from
// the Markdown front matter.
type Metadata struct {
	Title       string
	Author      string
	Subject     string
	Description string
	Keywords    []string
	// Created is written as both creation and modification time. The zero
	// value omits both, which keeps output byte-identical across runs.
	Created time.Time
}

func (m *Metadata) core() document.CoreProperties {
	if m == nil {
		return document.CoreProperties{}
	}
	return document.CoreProperties{
		Title:       m.Title,
		Creator:     m.Author,
		Subject:     m.Subject,
		Description: m.Description,
		Keywords:    append([]string(nil), m.Keywords...),
		Created:     m.Created,
	}
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string            // Markdown content (required)
	SourceDir string            // Base directory for relative image paths (optional)
	Images    map[string][]byte // Pre-fetched image bytes keyed by source (optional)
	Page      *PageSettings     // Page settings (optional, nil = defaults)
	// IndentUnit is the list indentation width of one nesting level.
	// Zero uses the converter setting.
	IndentUnit int
	Metadata   *Metadata // Core properties (optional)
	// HTMLPreview also renders an HTML preview into ConvertResult.HTML.
	HTMLPreview bool
}

// ConvertResult contains the output of a successful conversion.
type ConvertResult struct {
	DOCX     []byte
	HTML     []byte // nil unless Input.HTMLPreview
	Warnings []Warning
	Stats    Stats
}

// WarningKind classifies a problem the converter recovered from.
type WarningKind string

// Warning kinds.
const (
	WarnFormulaFallback  WarningKind = WarningKind(document.WarnFormulaFallback)
	WarnImageUnavailable WarningKind = WarningKind(document.WarnImageUnavailable)
	WarnUnsupportedImage WarningKind = WarningKind(document.WarnUnsupportedImage)
)

// Warning is a per-node problem that degraded the output without failing
// the conversion.
type Warning struct {
	Kind   WarningKind
	Line   int // Source line, 0 if unknown
	Detail string
}

// String formats the warning as "near line N: Kind: detail".
func (w Warning) String() string {
	return document.Warning{Kind: document.WarningKind(w.Kind), Line: w.Line, Detail: w.Detail}.String()
}

func toWarnings(in []document.Warning) []Warning {
	if len(in) == 0 {
		return nil
	}
	out := make([]Warning, len(in))
	for i, w := range in {
		out[i] = Warning{Kind: WarningKind(w.Kind), Line: w.Line, Detail: w.Detail}
	}
	return out
}

// Stats counts what the document contains.
type Stats struct {
	Paragraphs int
	Tables     int
	Images     int
	Equations  int
	Links      int
}

// Style override types, usable with WithStyleOverrides. Sizes, spacing and
// indents are in points.
type (
	RoleSpec      = style.RoleSpec
	FontSpec      = style.FontSpec
	ParagraphSpec = style.ParagraphSpec
)
