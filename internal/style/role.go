package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Role names what a piece of content is. Paragraph roles describe whole
// paragraphs; run roles are partial formats layered over a paragraph by
// Cascade.
type Role string

// Paragraph roles.
const (
	RoleNormal        Role = "Normal"
	RoleHeading1      Role = "Heading1"
	RoleHeading2      Role = "Heading2"
	RoleHeading3      Role = "Heading3"
	RoleHeading4      Role = "Heading4"
	RoleHeading5      Role = "Heading5"
	RoleHeading6      Role = "Heading6"
	RoleListParagraph Role = "ListParagraph"
	RoleCodeBlock     Role = "CodeBlock"
	RoleCodeLabel     Role = "CodeLabel"
	RoleQuote         Role = "Quote"
	RoleFigure        Role = "Figure"
	RoleCaption       Role = "Caption"
	RoleEquation      Role = "Equation"
	RoleTableText     Role = "TableText"
	RoleTableHeader   Role = "TableHeader"
)

// Run roles.
const (
	RoleStrong        Role = "Strong"
	RoleEmphasis      Role = "Emphasis"
	RoleStrikethrough Role = "Strikethrough"
	RoleInlineCode    Role = "InlineCode"
	RoleSuperscript   Role = "Superscript"
	RoleSubscript     Role = "Subscript"
	RoleHyperlink     Role = "Hyperlink"
	RolePlaceholder   Role = "Placeholder"
)

var paragraphRoles = []Role{
	RoleNormal,
	RoleHeading1, RoleHeading2, RoleHeading3, RoleHeading4, RoleHeading5, RoleHeading6,
	RoleListParagraph, RoleCodeBlock, RoleCodeLabel, RoleQuote,
	RoleFigure, RoleCaption, RoleEquation, RoleTableText, RoleTableHeader,
}

var runRoles = []Role{
	RoleStrong, RoleEmphasis, RoleStrikethrough, RoleInlineCode,
	RoleSuperscript, RoleSubscript, RoleHyperlink, RolePlaceholder,
}

var knownRoles = func() map[Role]bool {
	m := make(map[Role]bool, len(paragraphRoles)+len(runRoles))
	for _, r := range paragraphRoles {
		m[r] = true
	}
	for _, r := range runRoles {
		m[r] = true
	}
	return m
}()

var runRoleSet = func() map[Role]bool {
	m := make(map[Role]bool, len(runRoles))
	for _, r := range runRoles {
		m[r] = true
	}
	return m
}()

// HeadingRole returns the role for a heading level, clamped to 1..6.
func HeadingRole(level int) Role {
	level = min(max(level, 1), 6)
	return Role("Heading" + strconv.Itoa(level))
}

// HeadingLevel returns the heading level of r, or 0 if r is not a heading.
func (r Role) HeadingLevel() int {
	s, ok := strings.CutPrefix(string(r), "Heading")
	if !ok || len(s) != 1 || s[0] < '1' || s[0] > '6' {
		return 0
	}
	return int(s[0] - '0')
}

// IsRun reports whether r is a run role.
func (r Role) IsRun() bool { return runRoleSet[r] }

// Known reports whether r is one of the declared roles.
func (r Role) Known() bool { return knownRoles[r] }

// ParseRole maps a preset or config key to a Role.
func ParseRole(name string) (Role, error) {
	r := Role(name)
	if !r.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}
	return r, nil
}

// ParagraphRoles returns the paragraph roles in declaration order.
func ParagraphRoles() []Role { return append([]Role(nil), paragraphRoles...) }

// RunRoles returns the run roles in declaration order.
func RunRoles() []Role { return append([]Role(nil), runRoles...) }
