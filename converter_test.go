package md2docx

// Notes:
// - Conversions run the real pipeline; there is no browser or network to
//   mock. Assertions read parts back out of the DOCX zip.
// - Image resolution is exercised through Input.Images and a hand-rolled
//   ImageResolver so no test depends on files outside t.TempDir().

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv
}

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// readPart returns the content of name in a DOCX package, or "" and false.
func readPart(t *testing.T, data []byte, name string) (string, bool) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(b), true
	}
	return "", false
}

type mockImageResolver struct {
	mu     sync.Mutex
	called []string
	data   []byte
	err    error
	panics bool
}

func (m *mockImageResolver) Resolve(ctx context.Context, src string) ([]byte, error) {
	m.mu.Lock()
	m.called = append(m.called, src)
	m.mu.Unlock()
	if m.panics {
		panic("resolver exploded")
	}
	return m.data, m.err
}

// ---------------------------------------------------------------------------
// TestNewConverter - Construction and style loading
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	t.Run("default style", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t)
		if got := conv.StyleName(); got != DefaultStyle {
			t.Errorf("StyleName() = %q, want %q", got, DefaultStyle)
		}
	})

	t.Run("named style", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, WithStyle("academic"))
		if got := conv.StyleName(); got != "academic" {
			t.Errorf("StyleName() = %q, want %q", got, "academic")
		}
	})

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"unknown style", []Option{WithStyle("nonexistent")}, ErrStyleNotFound},
		{"traversal in style name", []Option{WithStyle("../etc/passwd")}, ErrStyleNotFound},
		{"missing asset path", []Option{WithAssetPath("/nonexistent/path/abc123xyz")}, ErrInvalidAssetPath},
		{"unknown override role", []Option{WithStyleOverrides(map[string]RoleSpec{"Bogus": {}})}, ErrInvalidStyle},
		{"override cycle", []Option{WithStyleOverrides(map[string]RoleSpec{
			"Heading1": {BasedOn: "Heading2"},
			"Heading2": {BasedOn: "Heading1"},
		})}, ErrInvalidStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewConverter_CustomAssetPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}
	preset := "name: house\ndescription: House style\nroles:\n  Normal:\n    font:\n      family: Arial\n"
	if err := os.WriteFile(filepath.Join(dir, "styles", "house.yaml"), []byte(preset), 0644); err != nil {
		t.Fatalf("failed to write preset: %v", err)
	}

	conv := newTestConverter(t, WithAssetPath(dir), WithStyle("house"))
	res, err := conv.Convert(context.Background(), Input{Markdown: "text"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	styles, _ := readPart(t, res.DOCX, "word/styles.xml")
	if !strings.Contains(styles, `w:ascii="Arial"`) {
		t.Error("styles.xml does not use the custom preset font")
	}
}

func TestWithIndentUnit_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithIndentUnit(0) did not panic")
		}
	}()
	WithIndentUnit(0)
}

// ---------------------------------------------------------------------------
// TestConvert - Pipeline behavior
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	md := "# Title\n\nSome **bold** text.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n$$\nE = mc^2\n$$\n\nSee [docs](https://example.com).\n"
	res, err := conv.Convert(context.Background(), Input{Markdown: md})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !bytes.HasPrefix(res.DOCX, []byte("PK")) {
		t.Error("DOCX does not start with a zip signature")
	}
	if res.HTML != nil {
		t.Error("HTML is set without HTMLPreview")
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}

	want := Stats{Paragraphs: 8, Tables: 1, Equations: 1, Links: 1}
	if res.Stats != want {
		t.Errorf("Stats = %+v, want %+v", res.Stats, want)
	}

	body, ok := readPart(t, res.DOCX, "word/document.xml")
	if !ok {
		t.Fatal("word/document.xml missing")
	}
	for _, frag := range []string{`<w:pStyle w:val="Heading1"/>`, `<w:tbl>`, `<m:oMathPara>`, `<w:hyperlink r:id="rIdLink1"`} {
		if !strings.Contains(body, frag) {
			t.Errorf("document.xml does not contain %s", frag)
		}
	}
}

func TestConvert_InvalidInput(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"empty markdown", Input{}, ErrEmptyMarkdown},
		{"whitespace markdown", Input{Markdown: " \n\t\n"}, ErrEmptyMarkdown},
		{"negative indent unit", Input{Markdown: "x", IndentUnit: -1}, ErrInvalidIndentUnit},
		{"unknown page size", Input{Markdown: "x", Page: &PageSettings{Size: "legal"}}, ErrInvalidPageSize},
		{"unknown orientation", Input{Markdown: "x", Page: &PageSettings{Orientation: "diagonal"}}, ErrInvalidOrientation},
		{"margin too large", Input{Markdown: "x", Page: &PageSettings{Margins: &Margins{Left: 20}}}, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := conv.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Error("Convert() returned a result with an error")
			}
		})
	}
}

func TestConvert_Deterministic(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithEquationNumbers(true), WithCodeLabels(true))
	input := Input{
		Markdown: "# T\n\n1. a\n2. b\n\n```go\nfmt.Println(1)\n```\n\n![dot](dot.png)\n\n$$x^2$$\n",
		Images:   map[string][]byte{"dot.png": pngFixture(t, 4, 4)},
	}

	first, err := conv.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	second, err := conv.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !bytes.Equal(first.DOCX, second.DOCX) {
		t.Error("two conversions of the same input produced different bytes")
	}
}

func TestConvert_FormulaFallback(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	conv := newTestConverter(t, WithLogger(zap.New(core)))

	res, err := conv.Convert(context.Background(), Input{Markdown: `Value $\notacommand{x}$ here.`})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want 1", res.Warnings)
	}
	w := res.Warnings[0]
	if w.Kind != WarnFormulaFallback || w.Detail != `\notacommand{x}` {
		t.Errorf("Warning = %+v, want FormulaFallback for the formula source", w)
	}
	body, _ := readPart(t, res.DOCX, "word/document.xml")
	if !strings.Contains(body, `\notacommand{x}`) {
		t.Error("document.xml does not keep the formula source as text")
	}
	if got := logs.FilterMessage("degraded node").Len(); got != 1 {
		t.Errorf("logged %d degraded node entries, want 1", got)
	}
}

func TestConvert_Images(t *testing.T) {
	t.Parallel()

	t.Run("from input bytes", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t)
		res, err := conv.Convert(context.Background(), Input{
			Markdown: "![chart](https://example.com/chart.png)",
			Images:   map[string][]byte{"https://example.com/chart.png": pngFixture(t, 10, 5)},
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if res.Stats.Images != 1 {
			t.Errorf("Stats.Images = %d, want 1", res.Stats.Images)
		}
		if _, ok := readPart(t, res.DOCX, "word/media/image1.png"); !ok {
			t.Error("word/media/image1.png missing")
		}
	})

	t.Run("from source dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "pic.png"), pngFixture(t, 3, 3), 0644); err != nil {
			t.Fatalf("failed to write image: %v", err)
		}
		conv := newTestConverter(t)
		res, err := conv.Convert(context.Background(), Input{Markdown: "![pic](pic.png)", SourceDir: dir})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if res.Stats.Images != 1 || len(res.Warnings) != 0 {
			t.Errorf("Stats.Images = %d, Warnings = %v, want 1 image and no warnings", res.Stats.Images, res.Warnings)
		}
	})

	t.Run("missing file degrades", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t)
		res, err := conv.Convert(context.Background(), Input{Markdown: "![gone](gone.png)", SourceDir: t.TempDir()})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if len(res.Warnings) != 1 || res.Warnings[0].Kind != WarnImageUnavailable {
			t.Fatalf("Warnings = %v, want one ImageUnavailable", res.Warnings)
		}
		body, _ := readPart(t, res.DOCX, "word/document.xml")
		if !strings.Contains(body, "[image unavailable: gone.png]") {
			t.Error("document.xml does not contain the placeholder run")
		}
	})

	t.Run("custom resolver", func(t *testing.T) {
		t.Parallel()

		resolver := &mockImageResolver{data: pngFixture(t, 2, 2)}
		conv := newTestConverter(t, WithImageResolver(resolver))
		res, err := conv.Convert(context.Background(), Input{Markdown: "![a](one.png)\n\n![b](two.png)"})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if len(resolver.called) != 2 || resolver.called[0] != "one.png" || resolver.called[1] != "two.png" {
			t.Errorf("resolver called with %v, want [one.png two.png]", resolver.called)
		}
		if res.Stats.Images != 2 {
			t.Errorf("Stats.Images = %d, want 2", res.Stats.Images)
		}
	})
}

func TestConvert_HTMLPreview(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{Markdown: "# Hello\n\nWorld", HTMLPreview: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), "<h1") {
		t.Errorf("HTML = %q, want an <h1>", res.HTML)
	}
	if len(res.DOCX) == 0 {
		t.Error("DOCX is empty when HTMLPreview is set")
	}
}

func TestConvert_PageAndMetadata(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Markdown: "---\ntitle: From Front Matter\nauthor: Front\n---\n\ntext",
		Page:     &PageSettings{Size: "Letter", Orientation: "landscape", Margins: &Margins{Top: 2}},
		Metadata: &Metadata{Title: "Explicit", Keywords: []string{"a", "b"}},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	body, _ := readPart(t, res.DOCX, "word/document.xml")
	if !strings.Contains(body, `<w:pgSz w:w="15840" w:h="12240" w:orient="landscape"/>`) {
		t.Error("document.xml does not use letter landscape")
	}
	if !strings.Contains(body, `w:top="1134"`) {
		t.Error("document.xml does not use the 2cm top margin")
	}

	core, _ := readPart(t, res.DOCX, "docProps/core.xml")
	for _, want := range []string{"<dc:title>Explicit</dc:title>", "<dc:creator>Front</dc:creator>", "<cp:keywords>a, b</cp:keywords>"} {
		if !strings.Contains(core, want) {
			t.Errorf("core.xml does not contain %s", want)
		}
	}
}

func TestConvert_IndentUnit(t *testing.T) {
	t.Parallel()

	md := "- a\n  - b\n"
	conv := newTestConverter(t)

	tests := []struct {
		name       string
		indentUnit int
		wantNested bool
	}{
		{"default unit nests two spaces", 0, true},
		{"wider unit keeps siblings", 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := conv.Convert(context.Background(), Input{Markdown: md, IndentUnit: tt.indentUnit})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			body, _ := readPart(t, res.DOCX, "word/document.xml")
			if got := strings.Contains(body, "◦"); got != tt.wantNested {
				t.Errorf("depth-1 bullet present = %v, want %v", got, tt.wantNested)
			}
		})
	}
}

func TestConvert_Progress(t *testing.T) {
	t.Parallel()

	var calls [][2]int
	conv := newTestConverter(t, WithProgress(func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}))
	if _, err := conv.Convert(context.Background(), Input{Markdown: "a\n\nb\n\nc"}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("progress called %d times, want 3", len(calls))
	}
	if last := calls[len(calls)-1]; last != [2]int{3, 3} {
		t.Errorf("last progress = %v, want [3 3]", last)
	}
}

func TestConvert_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := newTestConverter(t)
	res, err := conv.Convert(ctx, Input{Markdown: "text"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Error("Convert() returned a partial result")
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithImageResolver(&mockImageResolver{panics: true}))
	_, err := conv.Convert(context.Background(), Input{Markdown: "![x](x.png)"})
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("Convert() error = %v, want internal error", err)
	}
}

func TestConvert_Concurrent(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	input := Input{Markdown: "# T\n\n1. one\n2. two\n   - nested\n3. three\n"}
	want, err := conv.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := conv.Convert(context.Background(), input)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(got.DOCX, want.DOCX) {
				errs <- errors.New("concurrent conversion produced different bytes")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
