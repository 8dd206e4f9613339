package mdtree

import (
	"errors"
	"fmt"
)

// ErrMalformedBlock is the sentinel matched by MalformedBlockError.
var ErrMalformedBlock = errors.New("malformed block structure")

// MalformedBlockError reports an unrecoverable structural problem.
type MalformedBlockError struct {
	Line   int
	Reason string
}

func (e *MalformedBlockError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed block near line %d: %s", e.Line, e.Reason)
	}
	return "malformed block: " + e.Reason
}

// Is reports whether target is ErrMalformedBlock.
func (e *MalformedBlockError) Is(target error) bool {
	return target == ErrMalformedBlock
}
