package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/formula"
	"github.com/alnah/go-md2docx/internal/imageres"
	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/resource"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidIndentUnit  = errors.New("invalid list indent unit")

	// Asset and style errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidStyle     = errors.New("invalid style preset")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Errors raised by the conversion stages, matched with errors.Is.
var (
	// ErrMalformedBlock reports Markdown structure that cannot be parsed,
	// such as nesting deeper than the parser allows.
	ErrMalformedBlock = mdtree.ErrMalformedBlock

	// ErrFormulaSyntax matches formula errors. Conversions recover from
	// them with a plain-text fallback and a warning.
	ErrFormulaSyntax = formula.ErrSyntax

	// ErrResourceUnavailable matches image sources that cannot be read.
	ErrResourceUnavailable = imageres.ErrResourceUnavailable

	// ErrUnsupportedResource matches image data that cannot be embedded.
	ErrUnsupportedResource = resource.ErrUnsupportedResource

	// ErrInvalidDocument reports an assembled document that failed
	// validation before serialization.
	ErrInvalidDocument = document.ErrInvalidDocument

	// ErrDOCXWrite reports a failure while writing the DOCX package.
	ErrDOCXWrite = docx.ErrWrite

	// ErrHTMLConversion reports a failure while rendering the HTML preview.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
)
