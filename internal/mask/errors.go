package mask

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern indicates a pattern string that cannot describe a mask.
var ErrInvalidPattern = errors.New("invalid mask pattern")

// PatternError describes why a pattern string was rejected.
type PatternError struct {
	// Pattern is the offending pattern string.
	Pattern string
	// Reason is a short human readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid mask pattern %q: %s", e.Pattern, e.Reason)
}

// Unwrap returns ErrInvalidPattern so callers can use errors.Is.
func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}
