package resource

// Notes:
// - Test images are encoded in memory with the standard encoders and
//   x/image/bmp and x/image/tiff. The WebP fixture is a 1x1 lossless image
//   since x/image/webp only decodes.

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const webpLossless1x1 = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}

func encode(t *testing.T, format string, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := testImage(w, h)
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	default:
		t.Fatalf("unknown format %q", format)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// TestEmbed - Format detection and part naming
// ---------------------------------------------------------------------------

func TestEmbed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format      string
		wantExt     string
		wantContent string
	}{
		{"png", "png", "image/png"},
		{"jpeg", "jpeg", "image/jpeg"},
		{"gif", "gif", "image/gif"},
		{"bmp", "bmp", "image/bmp"},
		{"tiff", "tiff", "image/tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			table := NewTable()
			h, err := table.Embed(encode(t, tt.format, 4, 3), "")
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			p, err := table.Part(h)
			if err != nil {
				t.Fatalf("Part() error = %v", err)
			}
			if p.Ext != tt.wantExt {
				t.Errorf("Ext = %q, want %q", p.Ext, tt.wantExt)
			}
			if p.ContentType != tt.wantContent {
				t.Errorf("ContentType = %q, want %q", p.ContentType, tt.wantContent)
			}
			if wantName := "word/media/image1." + tt.wantExt; p.Name != wantName {
				t.Errorf("Name = %q, want %q", p.Name, wantName)
			}
			if p.RelID != "rIdImage1" {
				t.Errorf("RelID = %q, want %q", p.RelID, "rIdImage1")
			}
			if p.Width != 4 || p.Height != 3 {
				t.Errorf("size = %dx%d, want 4x3", p.Width, p.Height)
			}
		})
	}
}

func TestEmbed_WebPConvertedToPNG(t *testing.T) {
	t.Parallel()

	data, err := base64.StdEncoding.DecodeString(webpLossless1x1)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	table := NewTable()
	h, err := table.Embed(data, "image/webp")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	p, _ := table.Part(h)
	if p.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", p.ContentType)
	}
	if p.Name != "word/media/image1.png" {
		t.Errorf("Name = %q, want word/media/image1.png", p.Name)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(p.Data)); err != nil {
		t.Errorf("part data is not PNG: %v", err)
	}
}

func TestEmbed_NoDeduplication(t *testing.T) {
	t.Parallel()

	data := encode(t, "png", 2, 2)
	table := NewTable()
	h1, err := table.Embed(data, "image/png")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	h2, err := table.Embed(data, "image/png")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	if h1 == h2 {
		t.Error("Embed() returned the same handle twice")
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	parts := table.Parts()
	if parts[1].Name != "word/media/image2.png" || parts[1].RelID != "rIdImage2" {
		t.Errorf("second part = %s %s, want word/media/image2.png rIdImage2", parts[1].Name, parts[1].RelID)
	}
	if parts[1].Target() != "media/image2.png" {
		t.Errorf("Target() = %q, want media/image2.png", parts[1].Target())
	}
}

func TestEmbed_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		mime string
	}{
		{"empty", nil, "image/png"},
		{"garbage", []byte("not an image at all"), ""},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`), "image/svg+xml"},
		{"truncated png", []byte("\x89PNG\r\n\x1a\n"), "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table := NewTable()
			h, err := table.Embed(tt.data, tt.mime)
			if !errors.Is(err, ErrUnsupportedResource) {
				t.Fatalf("Embed() error = %v, want ErrUnsupportedResource", err)
			}
			var ue *UnsupportedResourceError
			if !errors.As(err, &ue) {
				t.Fatalf("Embed() error type = %T, want *UnsupportedResourceError", err)
			}
			if ue.MIME != tt.mime {
				t.Errorf("MIME = %q, want %q", ue.MIME, tt.mime)
			}
			if !h.IsZero() {
				t.Error("Embed() returned a non-zero handle on failure")
			}
			if table.Len() != 0 {
				t.Errorf("Len() = %d, want 0", table.Len())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHandleOwnership - Handles are scoped to their table
// ---------------------------------------------------------------------------

func TestHandleOwnership(t *testing.T) {
	t.Parallel()

	a, b := NewTable(), NewTable()
	h, err := a.Embed(encode(t, "png", 1, 1), "")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	if !a.Owns(h) {
		t.Error("Owns() = false for issuing table")
	}
	if b.Owns(h) {
		t.Error("Owns() = true for another table")
	}
	if _, err := b.Part(h); !errors.Is(err, ErrForeignHandle) {
		t.Errorf("Part() error = %v, want ErrForeignHandle", err)
	}
	if a.Owns(Handle{}) {
		t.Error("Owns(zero handle) = true")
	}
}

// ---------------------------------------------------------------------------
// TestExtent - Pixel to EMU sizing
// ---------------------------------------------------------------------------

func TestExtent(t *testing.T) {
	t.Parallel()

	table := NewTable()
	h, err := table.Embed(encode(t, "png", 200, 100), "")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	tests := []struct {
		name   string
		max    int64
		wantCX int64
		wantCY int64
	}{
		{"no cap", 0, 200 * EMUPerPixel, 100 * EMUPerPixel},
		{"under cap", 300 * EMUPerPixel, 200 * EMUPerPixel, 100 * EMUPerPixel},
		{"scaled to cap", 100 * EMUPerPixel, 100 * EMUPerPixel, 50 * EMUPerPixel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cx, cy, err := table.Extent(h, tt.max)
			if err != nil {
				t.Fatalf("Extent() error = %v", err)
			}
			if cx != tt.wantCX || cy != tt.wantCY {
				t.Errorf("Extent() = (%d, %d), want (%d, %d)", cx, cy, tt.wantCX, tt.wantCY)
			}
		})
	}
}
