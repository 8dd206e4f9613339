package style

import "errors"

// Sentinel errors for style operations.
var (
	ErrUnknownRole   = errors.New("unknown style role")
	ErrInvalidPreset = errors.New("invalid style preset")
	ErrInvalidValue  = errors.New("invalid style value")
	ErrBasedOnCycle  = errors.New("style basedOn cycle")
)
