// Package resource embeds binary parts (images) into a document package.
//
// A Table belongs to one conversion. Embed decodes just enough of an image
// to know its format and pixel size, assigns a part name and relationship
// id, and returns an opaque Handle. Handles are only meaningful to the Table
// that issued them.
package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"strings"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// EMUPerPixel converts pixels at 96 DPI to English Metric Units.
const EMUPerPixel = 914400 / 96

// MaxPixels bounds width*height to refuse decompression bombs.
const MaxPixels = 100_000_000

// Sentinel errors for resource operations.
var (
	ErrUnsupportedResource = errors.New("unsupported resource")
	ErrForeignHandle       = errors.New("handle not issued by this table")
)

// UnsupportedResourceError reports bytes that cannot be embedded.
type UnsupportedResourceError struct {
	MIME   string // hint given by the caller, may be empty
	Reason string
}

func (e *UnsupportedResourceError) Error() string {
	if e.MIME != "" {
		return fmt.Sprintf("unsupported resource (%s): %s", e.MIME, e.Reason)
	}
	return "unsupported resource: " + e.Reason
}

// Is reports whether target is ErrUnsupportedResource.
func (e *UnsupportedResourceError) Is(target error) bool {
	return target == ErrUnsupportedResource
}

// Handle identifies an embedded part. The zero Handle refers to nothing.
type Handle struct {
	owner *Table
	id    int
}

// ID returns the 1-based sequence number of the part.
func (h Handle) ID() int { return h.id }

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.owner == nil }

// Part is one embedded binary.
type Part struct {
	ID          int
	Name        string // zip path, e.g. word/media/image1.png
	RelID       string // relationship id from word/document.xml
	ContentType string
	Ext         string
	Data        []byte
	Width       int // pixels
	Height      int // pixels
}

// Target returns the part path relative to word/, as used in relationships.
func (p Part) Target() string { return strings.TrimPrefix(p.Name, "word/") }

var formats = map[string]struct{ ext, contentType string }{
	"png":  {"png", "image/png"},
	"jpeg": {"jpeg", "image/jpeg"},
	"gif":  {"gif", "image/gif"},
	"bmp":  {"bmp", "image/bmp"},
	"tiff": {"tiff", "image/tiff"},
}

// Table is the part table of one document. The zero value is not usable;
// call NewTable. Not safe for concurrent use.
type Table struct {
	parts []Part
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Embed adds data as a new part. No deduplication is done: embedding the
// same bytes twice yields two parts. WebP is converted to PNG. mimeHint is
// used for error messages and to reject formats known to be unsupported.
func (t *Table) Embed(data []byte, mimeHint string) (Handle, error) {
	if len(data) == 0 {
		return Handle{}, &UnsupportedResourceError{MIME: mimeHint, Reason: "empty data"}
	}
	if strings.Contains(strings.ToLower(mimeHint), "svg") {
		return Handle{}, &UnsupportedResourceError{MIME: mimeHint, Reason: "vector images are not supported"}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Handle{}, &UnsupportedResourceError{MIME: mimeHint, Reason: err.Error()}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Handle{}, &UnsupportedResourceError{MIME: mimeHint, Reason: "zero-sized image"}
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return Handle{}, &UnsupportedResourceError{
			MIME:   mimeHint,
			Reason: fmt.Sprintf("image too large: %dx%d", cfg.Width, cfg.Height),
		}
	}

	if format == "webp" {
		data, err = toPNG(data)
		if err != nil {
			return Handle{}, &UnsupportedResourceError{MIME: mimeHint, Reason: err.Error()}
		}
		format = "png"
	}
	f, ok := formats[format]
	if !ok {
		return Handle{}, &UnsupportedResourceError{MIME: mimeHint, Reason: "unknown format " + format}
	}

	id := len(t.parts) + 1
	t.parts = append(t.parts, Part{
		ID:          id,
		Name:        fmt.Sprintf("word/media/image%d.%s", id, f.ext),
		RelID:       fmt.Sprintf("rIdImage%d", id),
		ContentType: f.contentType,
		Ext:         f.ext,
		Data:        data,
		Width:       cfg.Width,
		Height:      cfg.Height,
	})
	return Handle{owner: t, id: id}, nil
}

func toPNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Owns reports whether h was issued by t.
func (t *Table) Owns(h Handle) bool {
	return h.owner == t && h.id >= 1 && h.id <= len(t.parts)
}

// Part returns the part for h.
func (t *Table) Part(h Handle) (Part, error) {
	if !t.Owns(h) {
		return Part{}, ErrForeignHandle
	}
	return t.parts[h.id-1], nil
}

// Parts returns the parts in embedding order.
func (t *Table) Parts() []Part {
	return append([]Part(nil), t.parts...)
}

// Len returns the number of parts.
func (t *Table) Len() int { return len(t.parts) }

// Extent returns the display size of h in EMU, scaled down proportionally
// so the width does not exceed maxWidthEMU. A non-positive maxWidthEMU
// disables the cap.
func (t *Table) Extent(h Handle, maxWidthEMU int64) (cx, cy int64, err error) {
	p, err := t.Part(h)
	if err != nil {
		return 0, 0, err
	}
	cx = int64(p.Width) * EMUPerPixel
	cy = int64(p.Height) * EMUPerPixel
	if maxWidthEMU > 0 && cx > maxWidthEMU {
		cy = cy * maxWidthEMU / cx
		cx = maxWidthEMU
		cy = max(cy, 1)
	}
	return cx, cy, nil
}
