package script

import "errors"

// Errors for hook scripts.
var (
	// ErrClosed is returned when calling into a closed script.
	ErrClosed = errors.New("script is closed")

	// ErrNoHooks indicates a script that defines none of the hook functions.
	ErrNoHooks = errors.New("script defines no hooks")

	// ErrBadReturn indicates a hook returned a value of the wrong type.
	ErrBadReturn = errors.New("hook returned an unexpected value")
)
