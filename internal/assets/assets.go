package assets

// DefaultStyleName is the name of the built-in preset used when none is set.
const DefaultStyleName = "standard"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a preset by name using the default embedded loader.
// The name should not include the .yaml extension or path components.
// Returns ErrStyleNotFound if the preset does not exist.
// Returns ErrInvalidAssetName if ValidatePresetName rejects the name.
func LoadStyle(name string) ([]byte, error) {
	return defaultLoader.LoadStyle(name)
}

// ListStyles returns the names of the built-in presets.
func ListStyles() ([]string, error) {
	return defaultLoader.ListStyles()
}
