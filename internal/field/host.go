package field

// Host is the text editing surface a field is attached to. Offsets are rune
// counts into the display text.
type Host interface {
	DisplayText() string
	SetDisplayText(text string)
	Cursor() int
	SetCursor(offset int)
}

// EditIntent describes one user action as observed by the host.
type EditIntent struct {
	// PrevDisplay is the text before the edit, as last produced by the field.
	PrevDisplay string
	// PrevCursor is the cursor offset before the edit.
	PrevCursor int
	// NewDisplay is the text after the host applied the raw edit.
	NewDisplay string
	// NewCursor is where the host placed the cursor in NewDisplay.
	NewCursor int
}

// Result is the state a field wants the host to show.
type Result struct {
	Raw     string
	Display string
	Cursor  int

	// Changed reports whether the raw value changed.
	Changed bool
	// Rejected reports that the edit violated a domain rule and the
	// previous state was kept.
	Rejected bool
}

// Apply writes the result to h: display text first, then the cursor.
func (r Result) Apply(h Host) {
	h.SetDisplayText(r.Display)
	h.SetCursor(r.Cursor)
}

// Source identifies what caused a value change.
type Source int

const (
	// SourceInit is a change made by Initialize.
	SourceInit Source = iota
	// SourceEdit is a change made by a user edit.
	SourceEdit
	// SourceProgrammatic is a change made by SetRaw or SetForeign.
	SourceProgrammatic
)

// String returns the name of the source.
func (s Source) String() string {
	switch s {
	case SourceInit:
		return "init"
	case SourceEdit:
		return "edit"
	case SourceProgrammatic:
		return "programmatic"
	default:
		return "unknown"
	}
}

// ChangeEvent is delivered to listeners whenever the raw value changes.
type ChangeEvent struct {
	FieldID  string
	Name     string
	Raw      string
	Previous string
	Display  string
	Source   Source
}
