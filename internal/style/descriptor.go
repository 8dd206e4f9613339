package style

import (
	"fmt"
	"strings"
)

// Alignment is a paragraph justification value as written to w:jc.
type Alignment string

// Paragraph alignments.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Vertical run positions as written to w:vertAlign.
const (
	VertBaseline    = ""
	VertSuperscript = "superscript"
	VertSubscript   = "subscript"
)

// Font holds run properties. Sizes are in half-points and colors are
// six-digit hex without '#'. An empty Shading means no fill.
type Font struct {
	Family         string
	EastAsia       string
	SizeHalfPoints int
	Bold           bool
	Italic         bool
	Strike         bool
	Underline      bool
	Color          string
	Shading        string
	VertAlign      string
}

// Paragraph holds paragraph properties. Spacing and indents are in twips
// (1/20 pt); LineSpacing is in 240ths of a line. A negative FirstLineIndent
// is a hanging indent.
type Paragraph struct {
	Alignment       Alignment
	SpaceBefore     int
	SpaceAfter      int
	LineSpacing     int
	FirstLineIndent int
	LeftIndent      int
	RightIndent     int
	KeepWithNext    bool
}

// Descriptor is a fully resolved style. Descriptors returned by a Resolver
// are shared and must not be modified.
type Descriptor struct {
	Role      Role
	Font      Font
	Paragraph Paragraph
}

// Override changes individual attributes. Nil fields keep the underlying
// value. Units match Font and Paragraph.
type Override struct {
	Family          *string
	EastAsia        *string
	SizeHalfPoints  *int
	Bold            *bool
	Italic          *bool
	Strike          *bool
	Underline       *bool
	Color           *string
	Shading         *string
	VertAlign       *string
	Alignment       *Alignment
	SpaceBefore     *int
	SpaceAfter      *int
	LineSpacing     *int
	FirstLineIndent *int
	LeftIndent      *int
	RightIndent     *int
	KeepWithNext    *bool
}

// Ptr returns a pointer to v. It keeps Override literals short.
func Ptr[T any](v T) *T { return &v }

// apply returns d with every non-nil field of o written over it.
func (d Descriptor) apply(o Override) Descriptor {
	setString(&d.Font.Family, o.Family)
	setString(&d.Font.EastAsia, o.EastAsia)
	setInt(&d.Font.SizeHalfPoints, o.SizeHalfPoints)
	setBool(&d.Font.Bold, o.Bold)
	setBool(&d.Font.Italic, o.Italic)
	setBool(&d.Font.Strike, o.Strike)
	setBool(&d.Font.Underline, o.Underline)
	setString(&d.Font.Color, o.Color)
	setString(&d.Font.Shading, o.Shading)
	setString(&d.Font.VertAlign, o.VertAlign)
	if o.Alignment != nil {
		d.Paragraph.Alignment = *o.Alignment
	}
	setInt(&d.Paragraph.SpaceBefore, o.SpaceBefore)
	setInt(&d.Paragraph.SpaceAfter, o.SpaceAfter)
	setInt(&d.Paragraph.LineSpacing, o.LineSpacing)
	setInt(&d.Paragraph.FirstLineIndent, o.FirstLineIndent)
	setInt(&d.Paragraph.LeftIndent, o.LeftIndent)
	setInt(&d.Paragraph.RightIndent, o.RightIndent)
	setBool(&d.Paragraph.KeepWithNext, o.KeepWithNext)
	return d
}

// Merge returns o with every non-nil field of top written over it.
func (o Override) Merge(top Override) Override {
	pick(&o.Family, top.Family)
	pick(&o.EastAsia, top.EastAsia)
	pick(&o.SizeHalfPoints, top.SizeHalfPoints)
	pick(&o.Bold, top.Bold)
	pick(&o.Italic, top.Italic)
	pick(&o.Strike, top.Strike)
	pick(&o.Underline, top.Underline)
	pick(&o.Color, top.Color)
	pick(&o.Shading, top.Shading)
	pick(&o.VertAlign, top.VertAlign)
	pick(&o.Alignment, top.Alignment)
	pick(&o.SpaceBefore, top.SpaceBefore)
	pick(&o.SpaceAfter, top.SpaceAfter)
	pick(&o.LineSpacing, top.LineSpacing)
	pick(&o.FirstLineIndent, top.FirstLineIndent)
	pick(&o.LeftIndent, top.LeftIndent)
	pick(&o.RightIndent, top.RightIndent)
	pick(&o.KeepWithNext, top.KeepWithNext)
	return o
}

// IsZero reports whether o changes nothing.
func (o Override) IsZero() bool { return o == Override{} }

// key renders the set fields of o in a fixed order. Two overrides with the
// same key resolve to the same descriptor.
func (o Override) key() string {
	if o.IsZero() {
		return ""
	}
	var b strings.Builder
	field := func(name string, p any) {
		switch v := p.(type) {
		case *string:
			if v != nil {
				fmt.Fprintf(&b, "%s=%q;", name, *v)
			}
		case *int:
			if v != nil {
				fmt.Fprintf(&b, "%s=%d;", name, *v)
			}
		case *bool:
			if v != nil {
				fmt.Fprintf(&b, "%s=%t;", name, *v)
			}
		case *Alignment:
			if v != nil {
				fmt.Fprintf(&b, "%s=%s;", name, *v)
			}
		}
	}
	field("family", o.Family)
	field("eastAsia", o.EastAsia)
	field("size", o.SizeHalfPoints)
	field("b", o.Bold)
	field("i", o.Italic)
	field("strike", o.Strike)
	field("u", o.Underline)
	field("color", o.Color)
	field("shd", o.Shading)
	field("vert", o.VertAlign)
	field("jc", o.Alignment)
	field("before", o.SpaceBefore)
	field("after", o.SpaceAfter)
	field("line", o.LineSpacing)
	field("first", o.FirstLineIndent)
	field("left", o.LeftIndent)
	field("right", o.RightIndent)
	field("keep", o.KeepWithNext)
	return b.String()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}
