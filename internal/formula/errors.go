package formula

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel matched by SyntaxError.
var ErrSyntax = errors.New("formula syntax error")

// SyntaxError reports a construct the translator cannot render.
// Snippet is the offending part of Source, starting at Offset.
type SyntaxError struct {
	Source  string
	Offset  int
	Snippet string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula syntax error at offset %d (%q): %s", e.Offset, e.Snippet, e.Reason)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
