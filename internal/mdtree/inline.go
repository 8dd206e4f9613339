package mdtree

import "strings"

// InlineKind identifies an inline span variant.
type InlineKind int

// Inline span kinds.
const (
	KindText InlineKind = iota
	KindBold
	KindItalic
	KindStrikethrough
	KindCode
	KindSuperscript
	KindSubscript
	KindLink
	KindMath
	KindLineBreak
)

var kindNames = [...]string{
	KindText:          "Text",
	KindBold:          "Bold",
	KindItalic:        "Italic",
	KindStrikethrough: "Strikethrough",
	KindCode:          "Code",
	KindSuperscript:   "Superscript",
	KindSubscript:     "Subscript",
	KindLink:          "Link",
	KindMath:          "Math",
	KindLineBreak:     "LineBreak",
}

func (k InlineKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Inline is a styled fragment of text.
type Inline interface {
	Kind() InlineKind
	isInline()
}

// Container is an inline span wrapping other spans.
type Container interface {
	Inline
	Spans() []Inline
}

// Text is literal text.
type Text struct{ Value string }

// Code is an inline code span.
type Code struct{ Value string }

// Math is inline math in LaTeX-like notation.
type Math struct{ Source string }

// LineBreak is a hard line break.
type LineBreak struct{}

// Bold is strong emphasis.
type Bold struct{ Children []Inline }

// Italic is emphasis.
type Italic struct{ Children []Inline }

// Strikethrough is struck-out text.
type Strikethrough struct{ Children []Inline }

// Superscript is raised text.
type Superscript struct{ Children []Inline }

// Subscript is lowered text.
type Subscript struct{ Children []Inline }

// Link is a hyperlink.
type Link struct {
	URL      string
	Title    string
	Children []Inline
}

func (*Text) Kind() InlineKind          { return KindText }
func (*Code) Kind() InlineKind          { return KindCode }
func (*Math) Kind() InlineKind          { return KindMath }
func (*LineBreak) Kind() InlineKind     { return KindLineBreak }
func (*Bold) Kind() InlineKind          { return KindBold }
func (*Italic) Kind() InlineKind        { return KindItalic }
func (*Strikethrough) Kind() InlineKind { return KindStrikethrough }
func (*Superscript) Kind() InlineKind   { return KindSuperscript }
func (*Subscript) Kind() InlineKind     { return KindSubscript }
func (*Link) Kind() InlineKind          { return KindLink }

func (*Text) isInline()          {}
func (*Code) isInline()          {}
func (*Math) isInline()          {}
func (*LineBreak) isInline()     {}
func (*Bold) isInline()          {}
func (*Italic) isInline()        {}
func (*Strikethrough) isInline() {}
func (*Superscript) isInline()   {}
func (*Subscript) isInline()     {}
func (*Link) isInline()          {}

func (s *Bold) Spans() []Inline          { return s.Children }
func (s *Italic) Spans() []Inline        { return s.Children }
func (s *Strikethrough) Spans() []Inline { return s.Children }
func (s *Superscript) Spans() []Inline   { return s.Children }
func (s *Subscript) Spans() []Inline     { return s.Children }
func (s *Link) Spans() []Inline          { return s.Children }

// Wrap builds a container span of the given kind around children.
// Same-kind descendants are spliced into the new span and adjacent text is
// merged. Returns nil for kinds that are not containers. Links use
// WrapLink instead.
func Wrap(kind InlineKind, children []Inline) Inline {
	spans := Normalize(splice(kind, children))
	switch kind {
	case KindBold:
		return &Bold{Children: spans}
	case KindItalic:
		return &Italic{Children: spans}
	case KindStrikethrough:
		return &Strikethrough{Children: spans}
	case KindSuperscript:
		return &Superscript{Children: spans}
	case KindSubscript:
		return &Subscript{Children: spans}
	}
	return nil
}

// WrapLink builds a Link. Nested links are reduced to their text.
func WrapLink(url, title string, children []Inline) *Link {
	return &Link{
		URL:      url,
		Title:    title,
		Children: Normalize(splice(KindLink, children)),
	}
}

// splice replaces every descendant container of the given kind with its
// children, at any depth.
func splice(kind InlineKind, spans []Inline) []Inline {
	out := make([]Inline, 0, len(spans))
	for _, s := range spans {
		c, ok := s.(Container)
		if !ok {
			out = append(out, s)
			continue
		}
		inner := splice(kind, c.Spans())
		if c.Kind() == kind {
			out = append(out, inner...)
			continue
		}
		out = append(out, rebuild(c, inner))
	}
	return out
}

// rebuild returns a copy of c holding children instead of its own.
func rebuild(c Container, children []Inline) Inline {
	switch v := c.(type) {
	case *Link:
		return &Link{URL: v.URL, Title: v.Title, Children: children}
	default:
		return Wrap(c.Kind(), children)
	}
}

// Normalize merges adjacent Text spans and drops empty ones. Empty
// containers are dropped as well.
func Normalize(spans []Inline) []Inline {
	out := make([]Inline, 0, len(spans))
	for _, s := range spans {
		switch v := s.(type) {
		case *Text:
			if v.Value == "" {
				continue
			}
			if n := len(out); n > 0 {
				if prev, ok := out[n-1].(*Text); ok {
					out[n-1] = &Text{Value: prev.Value + v.Value}
					continue
				}
			}
		case Container:
			if len(v.Spans()) == 0 {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// PlainText returns the visible text of spans with all styling removed.
// Math and code contribute their source text.
func PlainText(spans []Inline) string {
	var b strings.Builder
	writePlain(&b, spans)
	return b.String()
}

func writePlain(b *strings.Builder, spans []Inline) {
	for _, s := range spans {
		switch v := s.(type) {
		case *Text:
			b.WriteString(v.Value)
		case *Code:
			b.WriteString(v.Value)
		case *Math:
			b.WriteString(v.Source)
		case *LineBreak:
			b.WriteByte('\n')
		case Container:
			writePlain(b, v.Spans())
		}
	}
}
