// Package confutil wraps YAML and TOML decoding so callers do not depend on
// the underlying libraries. Both decoders share the same input limits, and
// the strict variants reject keys that match no field.
package confutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits decoder input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("confutil: nil or empty data")
	ErrNilDestination = errors.New("confutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("confutil: input exceeds maximum size")
	ErrUnknownFormat  = errors.New("confutil: unknown config format")
	ErrUnknownField   = errors.New("confutil: unknown field")
)

// Format is a supported configuration syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// Extensions lists the file extensions tried when resolving a config by
// name, in lookup order.
var Extensions = []string{".yaml", ".yml", ".toml"}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalYAML decodes YAML, ignoring unknown fields.
func UnmarshalYAML(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("confutil: %w", err)
	}
	return nil
}

// UnmarshalYAMLStrict rejects unknown fields in the input.
func UnmarshalYAMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("confutil: %w", err)
	}
	return nil
}

func MarshalYAML(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("confutil: %w", err)
	}
	return result, nil
}

// UnmarshalTOMLStrict decodes TOML and rejects keys that were not decoded
// into any field.
func UnmarshalTOMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return fmt.Errorf("confutil: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(keys, ", "))
	}
	return nil
}

// UnmarshalStrict decodes data in the given format, rejecting unknown fields.
func UnmarshalStrict(format Format, data []byte, v any) error {
	if format == FormatTOML {
		return UnmarshalTOMLStrict(data, v)
	}
	return UnmarshalYAMLStrict(data, v)
}
