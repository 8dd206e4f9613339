package style

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/confutil"
)

// Value bounds for preset and config attributes.
const (
	MinFontSize    = 1.0   // pt
	MaxFontSize    = 400.0 // pt
	MaxSpacing     = 720.0 // pt, before/after and indents
	MinLineSpacing = 0.5   // multiple
	MaxLineSpacing = 5.0   // multiple
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Preset is a named style sheet as stored in a preset file.
type Preset struct {
	Name        string              `yaml:"name" toml:"name"`
	Description string              `yaml:"description" toml:"description"`
	Roles       map[string]RoleSpec `yaml:"roles" toml:"roles"`
}

// RoleSpec is the human-facing form of an Override, in points and line
// multiples. Config files use the same shape for per-role overrides.
type RoleSpec struct {
	BasedOn   string        `yaml:"basedOn,omitempty" toml:"basedOn"`
	Font      FontSpec      `yaml:"font,omitempty" toml:"font"`
	Paragraph ParagraphSpec `yaml:"paragraph,omitempty" toml:"paragraph"`
}

// FontSpec holds run attributes. Size is in points.
type FontSpec struct {
	Family    *string  `yaml:"family,omitempty" toml:"family"`
	EastAsia  *string  `yaml:"eastAsia,omitempty" toml:"eastAsia"`
	Size      *float64 `yaml:"size,omitempty" toml:"size"`
	Bold      *bool    `yaml:"bold,omitempty" toml:"bold"`
	Italic    *bool    `yaml:"italic,omitempty" toml:"italic"`
	Strike    *bool    `yaml:"strike,omitempty" toml:"strike"`
	Underline *bool    `yaml:"underline,omitempty" toml:"underline"`
	Color     *string  `yaml:"color,omitempty" toml:"color"`
	Shading   *string  `yaml:"shading,omitempty" toml:"shading"`
	VertAlign *string  `yaml:"vertAlign,omitempty" toml:"vertAlign"`
}

// ParagraphSpec holds paragraph attributes. Spacing and indents are in
// points; LineSpacing is a multiple of single spacing.
type ParagraphSpec struct {
	Alignment       *string  `yaml:"alignment,omitempty" toml:"alignment"`
	SpaceBefore     *float64 `yaml:"spaceBefore,omitempty" toml:"spaceBefore"`
	SpaceAfter      *float64 `yaml:"spaceAfter,omitempty" toml:"spaceAfter"`
	LineSpacing     *float64 `yaml:"lineSpacing,omitempty" toml:"lineSpacing"`
	FirstLineIndent *float64 `yaml:"firstLineIndent,omitempty" toml:"firstLineIndent"`
	LeftIndent      *float64 `yaml:"leftIndent,omitempty" toml:"leftIndent"`
	RightIndent     *float64 `yaml:"rightIndent,omitempty" toml:"rightIndent"`
	KeepWithNext    *bool    `yaml:"keepWithNext,omitempty" toml:"keepWithNext"`
}

// ParsePreset decodes a YAML preset. Unknown keys and unknown role names are
// rejected.
func ParsePreset(data []byte) (*Preset, error) {
	var p Preset
	if err := confutil.UnmarshalYAMLStrict(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	for name := range p.Roles {
		if _, err := ParseRole(name); err != nil {
			return nil, fmt.Errorf("%w: preset %q: %w", ErrInvalidPreset, p.Name, err)
		}
	}
	return &p, nil
}

// LoadPreset loads and decodes a preset through loader. An empty name
// selects assets.DefaultStyleName.
func LoadPreset(loader assets.AssetLoader, name string) (*Preset, error) {
	if name == "" {
		name = assets.DefaultStyleName
	}
	data, err := loader.LoadStyle(name)
	if err != nil {
		return nil, err
	}
	p, err := ParsePreset(data)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

// Override converts s to OOXML units, validating each value.
func (s RoleSpec) Override() (Override, error) {
	var o Override
	f, p := s.Font, s.Paragraph

	o.Family = trimmed(f.Family)
	o.EastAsia = trimmed(f.EastAsia)
	if f.Size != nil {
		if *f.Size < MinFontSize || *f.Size > MaxFontSize {
			return o, fmt.Errorf("%w: font size %v outside %v..%v pt", ErrInvalidValue, *f.Size, MinFontSize, MaxFontSize)
		}
		o.SizeHalfPoints = Ptr(int(math.Round(*f.Size * 2)))
	}
	o.Bold, o.Italic, o.Strike, o.Underline = f.Bold, f.Italic, f.Strike, f.Underline

	var err error
	if o.Color, err = color("color", f.Color); err != nil {
		return o, err
	}
	if o.Shading, err = color("shading", f.Shading); err != nil {
		return o, err
	}
	if f.VertAlign != nil {
		switch v := strings.ToLower(*f.VertAlign); v {
		case VertBaseline, "baseline":
			o.VertAlign = Ptr(VertBaseline)
		case VertSuperscript, VertSubscript:
			o.VertAlign = Ptr(v)
		default:
			return o, fmt.Errorf("%w: vertAlign %q", ErrInvalidValue, *f.VertAlign)
		}
	}

	if p.Alignment != nil {
		a, err := ParseAlignment(*p.Alignment)
		if err != nil {
			return o, err
		}
		o.Alignment = &a
	}
	for _, tw := range []struct {
		name     string
		in       *float64
		out      **int
		negative bool
	}{
		{"spaceBefore", p.SpaceBefore, &o.SpaceBefore, false},
		{"spaceAfter", p.SpaceAfter, &o.SpaceAfter, false},
		{"firstLineIndent", p.FirstLineIndent, &o.FirstLineIndent, true},
		{"leftIndent", p.LeftIndent, &o.LeftIndent, false},
		{"rightIndent", p.RightIndent, &o.RightIndent, false},
	} {
		if tw.in == nil {
			continue
		}
		v := *tw.in
		if v > MaxSpacing || v < -MaxSpacing || (v < 0 && !tw.negative) {
			return o, fmt.Errorf("%w: %s %v pt", ErrInvalidValue, tw.name, v)
		}
		*tw.out = Ptr(Twips(v))
	}
	if p.LineSpacing != nil {
		if *p.LineSpacing < MinLineSpacing || *p.LineSpacing > MaxLineSpacing {
			return o, fmt.Errorf("%w: lineSpacing %v outside %v..%v", ErrInvalidValue, *p.LineSpacing, MinLineSpacing, MaxLineSpacing)
		}
		o.LineSpacing = Ptr(int(math.Round(*p.LineSpacing * 240)))
	}
	o.KeepWithNext = p.KeepWithNext
	return o, nil
}

// ParseAlignment accepts left, center, right, justify and the OOXML names.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	case "both", "justify":
		return AlignJustify, nil
	}
	return "", fmt.Errorf("%w: alignment %q", ErrInvalidValue, s)
}

// Twips converts points to twentieths of a point.
func Twips(pt float64) int { return int(math.Round(pt * 20)) }

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return Ptr(strings.TrimSpace(*s))
}

func color(name string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimPrefix(strings.TrimSpace(*s), "#")
	if v == "" || strings.EqualFold(v, "none") {
		return Ptr(""), nil
	}
	if !hexColor.MatchString(v) {
		return nil, fmt.Errorf("%w: %s %q is not RRGGBB", ErrInvalidValue, name, *s)
	}
	return Ptr(strings.ToUpper(v)), nil
}
