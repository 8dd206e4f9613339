package assemble

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/formula"
	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/alnah/go-md2docx/internal/style"
)

// inlines converts spans to runs. roles are the run roles inherited from
// enclosing spans, outermost first.
func (s *assembly) inlines(spans []mdtree.Inline, base *style.Descriptor, roles []style.Role, line int) []document.Inline {
	var out []document.Inline
	for _, span := range spans {
		out = append(out, s.inline(span, base, roles, line)...)
	}
	return out
}

func (s *assembly) inline(span mdtree.Inline, base *style.Descriptor, roles []style.Role, line int) []document.Inline {
	switch v := span.(type) {
	case *mdtree.Text:
		if v.Value == "" {
			return nil
		}
		return []document.Inline{&document.Run{Text: v.Value, Style: s.styles.Cascade(base, roles...)}}
	case *mdtree.Code:
		return []document.Inline{&document.Run{
			Text:  v.Value,
			Style: s.styles.Cascade(base, with(roles, style.RoleInlineCode)...),
		}}
	case *mdtree.LineBreak:
		return []document.Inline{&document.Run{Text: "\n", Style: s.styles.Cascade(base, roles...)}}
	case *mdtree.Math:
		return []document.Inline{s.inlineMath(v.Source, base, roles, line)}
	case *mdtree.Bold:
		return s.inlines(v.Children, base, with(roles, style.RoleStrong), line)
	case *mdtree.Italic:
		return s.inlines(v.Children, base, with(roles, style.RoleEmphasis), line)
	case *mdtree.Strikethrough:
		return s.inlines(v.Children, base, with(roles, style.RoleStrikethrough), line)
	case *mdtree.Superscript:
		return s.inlines(v.Children, base, with(roles, style.RoleSuperscript), line)
	case *mdtree.Subscript:
		return s.inlines(v.Children, base, with(roles, style.RoleSubscript), line)
	case *mdtree.Link:
		return s.link(v, base, roles, line)
	default:
		panic(fmt.Sprintf("assemble: unknown inline type %T", span))
	}
}

// with returns roles plus r without aliasing the caller's slice.
func with(roles []style.Role, r style.Role) []style.Role {
	out := make([]style.Role, len(roles), len(roles)+1)
	copy(out, roles)
	return append(out, r)
}

func (s *assembly) inlineMath(src string, base *style.Descriptor, roles []style.Role, line int) document.Inline {
	desc := s.styles.Cascade(base, roles...)
	f, err := formula.Translate(src)
	if err != nil {
		s.warn(document.WarnFormulaFallback, line, src, err)
		return &document.Run{Text: src, Style: desc}
	}
	return &document.Math{Formula: f, Style: desc}
}

// link emits a hyperlink. Unsafe or empty targets keep only the link text,
// as do fragments that match no heading.
func (s *assembly) link(l *mdtree.Link, base *style.Descriptor, roles []style.Role, line int) []document.Inline {
	url := strings.TrimSpace(l.URL)
	if url == "" || unsafeScheme(url) {
		return s.inlines(l.Children, base, roles, line)
	}
	fragment, internal := strings.CutPrefix(url, "#")
	if internal && s.bookmarks[fragment] == "" {
		return s.inlines(l.Children, base, roles, line)
	}
	runs := s.inlines(l.Children, base, with(roles, style.RoleHyperlink), line)
	if len(runs) == 0 {
		runs = []document.Inline{&document.Run{
			Text:  url,
			Style: s.styles.Cascade(base, with(roles, style.RoleHyperlink)...),
		}}
	}
	if internal {
		return []document.Inline{&document.Hyperlink{Anchor: s.bookmarks[fragment], Runs: runs}}
	}
	return []document.Inline{&document.Hyperlink{RelID: s.doc.Links.Add(url), Runs: runs}}
}

func unsafeScheme(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "vbscript:")
}
