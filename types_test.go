package md2docx

import (
	"errors"
	"testing"

	"github.com/alnah/go-md2docx/internal/document"
)

// ---------------------------------------------------------------------------
// TestPageSettings_Validate - Page settings validation
// ---------------------------------------------------------------------------

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{"nil is valid", nil, nil},
		{"defaults are valid", DefaultPageSettings(), nil},
		{"empty fields are valid", &PageSettings{}, nil},
		{"mixed case size", &PageSettings{Size: "A4", Orientation: "Landscape"}, nil},
		{"zero margin side keeps default", &PageSettings{Margins: &Margins{Top: 0, Left: 2}}, nil},
		{"unknown size", &PageSettings{Size: "legal"}, ErrInvalidPageSize},
		{"unknown orientation", &PageSettings{Orientation: "sideways"}, ErrInvalidOrientation},
		{"margin below minimum", &PageSettings{Margins: &Margins{Bottom: 0.1}}, ErrInvalidMargin},
		{"margin above maximum", &PageSettings{Margins: &Margins{Right: 11}}, ErrInvalidMargin},
		{"negative margin", &PageSettings{Margins: &Margins{Top: -1}}, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_page(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       *PageSettings
		wantWidth  int
		wantHeight int
		wantLeft   int
	}{
		{"nil is A4 portrait", nil, 11906, 16838, 1803},
		{"letter", &PageSettings{Size: PageSizeLetter}, 12240, 15840, 1803},
		{"a4 landscape", &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape}, 16838, 11906, 1803},
		{"custom left margin", &PageSettings{Margins: &Margins{Left: 2}}, 11906, 16838, 1134},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.page.page()
			if err != nil {
				t.Fatalf("page() error = %v", err)
			}
			if got.Width != tt.wantWidth || got.Height != tt.wantHeight {
				t.Errorf("page() size = %dx%d, want %dx%d", got.Width, got.Height, tt.wantWidth, tt.wantHeight)
			}
			if got.Margins.Left != tt.wantLeft {
				t.Errorf("page() left margin = %d, want %d", got.Margins.Left, tt.wantLeft)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarning - Warning formatting
// ---------------------------------------------------------------------------

func TestWarning_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w    Warning
		want string
	}{
		{"with line", Warning{Kind: WarnFormulaFallback, Line: 7, Detail: `\foo`}, `near line 7: FormulaFallback: \foo`},
		{"without line", Warning{Kind: WarnImageUnavailable, Detail: "x.png"}, "ImageUnavailable: x.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.w.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToWarnings(t *testing.T) {
	t.Parallel()

	if got := toWarnings(nil); got != nil {
		t.Errorf("toWarnings(nil) = %v, want nil", got)
	}
	got := toWarnings([]document.Warning{{Kind: document.WarnUnsupportedImage, Line: 3, Detail: "a.svg"}})
	want := Warning{Kind: WarnUnsupportedImage, Line: 3, Detail: "a.svg"}
	if len(got) != 1 || got[0] != want {
		t.Errorf("toWarnings() = %v, want [%v]", got, want)
	}
}

func TestMetadata_core(t *testing.T) {
	t.Parallel()

	var nilMeta *Metadata
	if got := nilMeta.core(); got.Title != "" || got.Keywords != nil {
		t.Errorf("nil core() = %+v, want zero", got)
	}

	m := &Metadata{Title: "T", Author: "A", Keywords: []string{"k"}}
	got := m.core()
	if got.Title != "T" || got.Creator != "A" || len(got.Keywords) != 1 {
		t.Errorf("core() = %+v, want Title T, Creator A, one keyword", got)
	}
	got.Keywords[0] = "changed"
	if m.Keywords[0] != "k" {
		t.Error("core() shares the keyword slice with Metadata")
	}
}
