package assets

import "fmt"

// MaxPresetNameLength bounds preset names, matching the config field limit.
const MaxPresetNameLength = 64

// ValidatePresetName checks that name can be used as a preset file name.
// Names are 1 to MaxPresetNameLength ASCII letters, digits, '-' or '_',
// which rules out separators, traversal and extension tricks.
func ValidatePresetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxPresetNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAssetName, MaxPresetNameLength)
	}
	for i := 0; i < len(name); i++ {
		if !isPresetNameByte(name[i]) {
			return fmt.Errorf("%w: %q has %q at position %d", ErrInvalidAssetName, name, name[i], i)
		}
	}
	return nil
}

func isPresetNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}
