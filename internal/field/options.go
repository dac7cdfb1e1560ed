package field

import "github.com/dshills/maskfield/internal/logging"

// CursorPolicy decides where SetRaw leaves the cursor.
type CursorPolicy int

const (
	// CursorEnd moves the cursor to the end of the masked value.
	CursorEnd CursorPolicy = iota
	// CursorKeep keeps the current offset, clamped to the new display.
	CursorKeep
)

// Option configures a Field during creation.
type Option func(*Field)

// WithLogger sets the logger used for rejected edits and foreign parse
// mismatches.
func WithLogger(l *logging.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithCursorPolicy sets the cursor policy for programmatic updates.
func WithCursorPolicy(p CursorPolicy) Option {
	return func(f *Field) {
		f.policy = p
	}
}

// WithID overrides the generated field identifier.
func WithID(id string) Option {
	return func(f *Field) {
		if id != "" {
			f.id = id
		}
	}
}
