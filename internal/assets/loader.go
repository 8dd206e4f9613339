package assets

// StyleExt is the file extension of style presets.
const StyleExt = ".yaml"

// AssetLoader defines the contract for loading style presets.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadStyle loads a style preset by name (without extension).
	// Returns ErrStyleNotFound if the preset doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) ([]byte, error)

	// ListStyles returns the sorted names of available presets.
	ListStyles() ([]string, error)
}
