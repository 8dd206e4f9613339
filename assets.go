package md2docx

import (
	"errors"
	"sort"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/style"
)

// DefaultStyle is the name of the built-in style preset.
const DefaultStyle = assets.DefaultStyleName

// AssetLoader defines the contract for loading style presets.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded presets. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a YAML style preset by name (without extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) ([]byte, error)

	// ListStyles returns the available preset names, sorted.
	ListStyles() ([]string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded presets.
// If basePath is set, presets in basePath/styles/{name}.yaml take
// precedence with fallback to embedded.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) ([]byte, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) ListStyles() ([]string, error) {
	names, err := a.resolver.ListStyles()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

// StyleInfo describes an available style preset.
type StyleInfo struct {
	Name        string
	Description string
}

// ListStyles returns the presets loader can serve with their descriptions.
// A nil loader lists the embedded presets.
func ListStyles(loader AssetLoader) ([]StyleInfo, error) {
	if loader == nil {
		loader = &assetLoaderAdapter{resolver: mustEmbeddedResolver()}
	}
	names, err := loader.ListStyles()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	infos := make([]StyleInfo, 0, len(names))
	for _, name := range names {
		p, err := style.LoadPreset(loader, name)
		if err != nil {
			return nil, convertStyleError(err)
		}
		infos = append(infos, StyleInfo{Name: name, Description: p.Description})
	}
	return infos, nil
}

func mustEmbeddedResolver() *assets.AssetResolver {
	r, err := assets.NewAssetResolver("")
	if err != nil {
		panic("md2docx: embedded asset resolver: " + err.Error())
	}
	return r
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// convertStyleError maps preset parsing and resolution errors.
func convertStyleError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrStyleNotFound), errors.Is(err, ErrInvalidAssetPath):
		return err
	case errors.Is(err, style.ErrInvalidPreset),
		errors.Is(err, style.ErrInvalidValue),
		errors.Is(err, style.ErrUnknownRole),
		errors.Is(err, style.ErrBasedOnCycle):
		return wrapError(ErrInvalidStyle, err)
	default:
		return convertAssetError(err)
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
