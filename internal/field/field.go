package field

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/maskfield/internal/caret"
	"github.com/dshills/maskfield/internal/logging"
	"github.com/dshills/maskfield/internal/mask"
)

// Formatter converts between raw values and display text.
// *mask.Pattern implements it.
type Formatter interface {
	// Mask returns the formatted prefix for raw.
	Mask(raw string) string
	// Unmask returns the clamped raw value contained in display.
	Unmask(display string) string
	// Extract returns the raw characters of display without clamping.
	Extract(display string) string
}

// Config parameterises the engine for one kind of input.
type Config struct {
	Name      string
	Formatter Formatter
	// Prompt fills display positions not yet covered by input.
	Prompt string

	// Validate, when set, is called with the unclamped raw value of an edit.
	// Returning false rejects the edit.
	Validate func(raw string) bool
	// Normalize converts a foreign representation into raw form. ok=false
	// means the input matched no known representation.
	Normalize func(input string) (raw string, ok bool)
	// Foreign converts raw into the representation submitted to callers.
	Foreign func(raw string) (string, error)
}

// Field is the masking engine for one input.
type Field struct {
	id     string
	cfg    Config
	logger *logging.Logger
	policy CursorPolicy

	raw     string
	display string
	cursor  int

	listeners []func(ChangeEvent)
}

// New creates a field for cfg.
func New(cfg Config, opts ...Option) (*Field, error) {
	if cfg.Formatter == nil {
		return nil, fmt.Errorf("%w: %w", mask.ErrInvalidPattern, ErrNoFormatter)
	}

	f := &Field{
		id:     uuid.NewString(),
		cfg:    cfg,
		logger: logging.Nop(),
		policy: CursorEnd,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.WithFields(map[string]any{"field": cfg.Name, "id": f.id})
	f.display = cfg.Prompt

	return f, nil
}

// ID returns the field identifier.
func (f *Field) ID() string {
	return f.id
}

// Name returns the configured name.
func (f *Field) Name() string {
	return f.cfg.Name
}

// Formatter returns the configured formatter.
func (f *Field) Formatter() Formatter {
	return f.cfg.Formatter
}

// Prompt returns the configured prompt.
func (f *Field) Prompt() string {
	return f.cfg.Prompt
}

// Raw returns the canonical value.
func (f *Field) Raw() string {
	return f.raw
}

// Display returns the current display text.
func (f *Field) Display() string {
	return f.display
}

// Cursor returns the current cursor offset.
func (f *Field) Cursor() int {
	return f.cursor
}

// State returns the current state as a Result.
func (f *Field) State() Result {
	return Result{Raw: f.raw, Display: f.display, Cursor: f.cursor}
}

// OnChange registers fn to be called after every raw value change.
func (f *Field) OnChange(fn func(ChangeEvent)) {
	if fn != nil {
		f.listeners = append(f.listeners, fn)
	}
}

// Initialize sets the first value of the field from a possibly foreign
// representation. The cursor is left at the end of the value.
func (f *Field) Initialize(input string) Result {
	return f.setRaw(f.normalize(input), SourceInit, CursorEnd)
}

// SetForeign replaces the value from a possibly foreign representation,
// following the field's cursor policy.
func (f *Field) SetForeign(input string) Result {
	return f.setRaw(f.normalize(input), SourceProgrammatic, f.policy)
}

// SetRaw replaces the value outside of user typing. raw is passed through
// the formatter so runes it cannot hold are dropped and overflow is clamped.
func (f *Field) SetRaw(raw string) Result {
	return f.setRaw(f.canonical(raw), SourceProgrammatic, f.policy)
}

// ApplyEdit processes one edit and returns the state to show. A rejected
// edit returns the previous state with Rejected set.
func (f *Field) ApplyEdit(e EditIntent) Result {
	fm := f.cfg.Formatter

	if f.cfg.Validate != nil {
		if candidate := fm.Extract(e.NewDisplay); !f.cfg.Validate(candidate) {
			f.logger.Debug("edit rejected: %q -> %q", e.PrevDisplay, e.NewDisplay)
			f.cursor = caret.Clamp(e.PrevCursor, f.display)
			res := f.State()
			res.Rejected = true
			return res
		}
	}

	raw := fm.Unmask(e.NewDisplay)
	display := mask.Compose(fm.Mask(raw), f.cfg.Prompt)
	cursor := caret.Resolve(fm, e.NewDisplay, e.NewCursor, display)

	prev := f.raw
	f.raw, f.display, f.cursor = raw, display, cursor
	f.logger.Debug("edit applied: raw=%q cursor=%d", raw, cursor)

	res := f.State()
	if raw != prev {
		res.Changed = true
		f.notify(prev, SourceEdit)
	}
	return res
}

// HandleInput reads the post-edit text and cursor from h, applies the edit
// and writes the corrected state back.
func (f *Field) HandleInput(h Host) Result {
	res := f.ApplyEdit(EditIntent{
		PrevDisplay: f.display,
		PrevCursor:  f.cursor,
		NewDisplay:  h.DisplayText(),
		NewCursor:   h.Cursor(),
	})
	res.Apply(h)
	return res
}

// Foreign returns the foreign representation of the current value.
func (f *Field) Foreign() (string, error) {
	return f.ToForeign(f.raw)
}

// ToForeign converts raw using the configured Foreign hook. Without a hook
// raw is returned unchanged.
func (f *Field) ToForeign(raw string) (string, error) {
	if f.cfg.Foreign == nil {
		return raw, nil
	}
	return f.cfg.Foreign(raw)
}

func (f *Field) normalize(input string) string {
	if input == "" {
		return ""
	}
	if f.cfg.Normalize != nil {
		if raw, ok := f.cfg.Normalize(input); ok {
			return f.canonical(raw)
		}
		f.logger.Debug("foreign value %q matched no known form, using generic unmask", input)
	}
	return f.cfg.Formatter.Unmask(input)
}

// canonical reduces a raw candidate to what the formatter can display.
func (f *Field) canonical(raw string) string {
	fm := f.cfg.Formatter
	return fm.Unmask(fm.Mask(raw))
}

func (f *Field) setRaw(raw string, src Source, policy CursorPolicy) Result {
	masked := f.cfg.Formatter.Mask(raw)
	display := mask.Compose(masked, f.cfg.Prompt)

	cursor := utf8.RuneCountInString(masked)
	if policy == CursorKeep {
		cursor = caret.Clamp(f.cursor, display)
	}

	prev := f.raw
	f.raw, f.display, f.cursor = raw, display, cursor

	res := f.State()
	if raw != prev {
		res.Changed = true
		f.notify(prev, src)
	}
	return res
}

func (f *Field) notify(prev string, src Source) {
	ev := ChangeEvent{
		FieldID:  f.id,
		Name:     f.cfg.Name,
		Raw:      f.raw,
		Previous: prev,
		Display:  f.display,
		Source:   src,
	}
	for _, fn := range f.listeners {
		fn(ev)
	}
}
