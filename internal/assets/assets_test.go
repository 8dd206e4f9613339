package assets

// Notes:
// - Embedded presets are checked by name and by a key they must contain;
//   decoding them is internal/style's job and is tested there.

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "standard preset",
			styleName:   "standard",
			wantContain: "Heading1:",
		},
		{
			name:        "academic preset",
			styleName:   "academic",
			wantContain: "name: academic",
		},
		{
			name:        "simple preset",
			styleName:   "simple",
			wantContain: "name: simple",
		},
		{
			name:      "nonexistent style returns ErrStyleNotFound",
			styleName: "nonexistent",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "empty name returns ErrInvalidAssetName",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "path traversal with slash returns ErrInvalidAssetName",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "path traversal with backslash returns ErrInvalidAssetName",
			styleName: "..\\secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "extension in name returns ErrInvalidAssetName",
			styleName: "standard.yaml",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "valid name with hyphen",
			styleName: "my-style",
			wantErr:   ErrStyleNotFound, // valid name but doesn't exist
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(string(content), tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestListStyles(t *testing.T) {
	t.Parallel()

	got, err := ListStyles()
	if err != nil {
		t.Fatalf("ListStyles() unexpected error: %v", err)
	}
	want := []string{"academic", "simple", "standard"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ListStyles() = %v, want %v", got, want)
	}
}

func TestDefaultStyleName_Exists(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle(DefaultStyleName) error = %v", err)
	}
}
