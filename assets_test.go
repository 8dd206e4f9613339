package md2docx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2docx/internal/assets"
)

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		data, err := loader.LoadStyle(DefaultStyle)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if len(data) == 0 {
			t.Error("LoadStyle() returned empty preset")
		}
	})

	t.Run("invalid base path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})

	t.Run("unknown style maps to public error", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		for _, name := range []string{"nonexistent", "../escape"} {
			if _, err := loader.LoadStyle(name); !errors.Is(err, ErrStyleNotFound) {
				t.Errorf("LoadStyle(%q) error = %v, want ErrStyleNotFound", name, err)
			}
		}
	})
}

func TestListStyles(t *testing.T) {
	t.Parallel()

	t.Run("embedded presets", func(t *testing.T) {
		t.Parallel()

		infos, err := ListStyles(nil)
		if err != nil {
			t.Fatalf("ListStyles() error = %v", err)
		}
		names := make(map[string]string, len(infos))
		for _, info := range infos {
			names[info.Name] = info.Description
		}
		for _, want := range []string{"standard", "academic", "simple"} {
			desc, ok := names[want]
			if !ok {
				t.Errorf("ListStyles() missing %q", want)
				continue
			}
			if desc == "" {
				t.Errorf("ListStyles() %q has no description", want)
			}
		}
	})

	t.Run("custom directory adds presets", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0755); err != nil {
			t.Fatalf("failed to create styles dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "memo.yaml"), []byte("name: memo\ndescription: Memo\n"), 0644); err != nil {
			t.Fatalf("failed to write preset: %v", err)
		}
		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}

		infos, err := ListStyles(loader)
		if err != nil {
			t.Fatalf("ListStyles() error = %v", err)
		}
		found := false
		for _, info := range infos {
			if info.Name == "memo" && info.Description == "Memo" {
				found = true
			}
		}
		if !found {
			t.Errorf("ListStyles() = %v, want memo included", infos)
		}
	})

	t.Run("broken preset", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0755); err != nil {
			t.Fatalf("failed to create styles dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "broken.yaml"), []byte("roles:\n  Nope: {}\n"), 0644); err != nil {
			t.Fatalf("failed to write preset: %v", err)
		}
		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		if _, err := ListStyles(loader); !errors.Is(err, ErrInvalidStyle) {
			t.Errorf("ListStyles() error = %v, want ErrInvalidStyle", err)
		}
	})
}

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"style not found", assets.ErrStyleNotFound, ErrStyleNotFound},
		{"invalid base path", assets.ErrInvalidBasePath, ErrInvalidAssetPath},
		{"path traversal", assets.ErrPathTraversal, ErrInvalidAssetPath},
		{"invalid name", assets.ErrInvalidAssetName, ErrStyleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertAssetError(tt.in)
			if !errors.Is(got, tt.want) {
				t.Errorf("convertAssetError() = %v, want %v", got, tt.want)
			}
			if got.Error() != tt.in.Error() {
				t.Errorf("Error() = %q, want original message %q", got.Error(), tt.in.Error())
			}
		})
	}

	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) != nil")
	}
	other := errors.New("other")
	if convertAssetError(other) != other {
		t.Error("convertAssetError() changed an unrelated error")
	}
}
