package field

import "errors"

// Errors returned by field operations.
var (
	// ErrNoFormatter indicates a Config without a Formatter.
	ErrNoFormatter = errors.New("field config has no formatter")
)
