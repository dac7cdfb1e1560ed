package tui

import (
	"unicode/utf8"

	"github.com/dshills/maskfield/internal/caret"
	"github.com/dshills/maskfield/internal/field"
)

// TextBox is a single line editor that hosts a masked field. It applies raw
// keystrokes the way a plain text box would and lets the field correct the
// result.
type TextBox struct {
	field  *field.Field
	text   string
	cursor int
}

// NewTextBox creates a text box showing f.
func NewTextBox(f *field.Field) *TextBox {
	b := &TextBox{field: f}
	b.Sync()
	return b
}

// Field returns the hosted field.
func (b *TextBox) Field() *field.Field {
	return b.field
}

// Sync copies the field state into the box after programmatic changes.
func (b *TextBox) Sync() {
	b.text = b.field.Display()
	b.cursor = b.field.Cursor()
}

// DisplayText implements field.Host.
func (b *TextBox) DisplayText() string {
	return b.text
}

// SetDisplayText implements field.Host.
func (b *TextBox) SetDisplayText(text string) {
	b.text = text
	b.cursor = caret.Clamp(b.cursor, text)
}

// Cursor implements field.Host.
func (b *TextBox) Cursor() int {
	return b.cursor
}

// SetCursor implements field.Host.
func (b *TextBox) SetCursor(offset int) {
	b.cursor = caret.Clamp(offset, b.text)
}

// Insert types s at the cursor.
func (b *TextBox) Insert(s string) field.Result {
	if s == "" {
		return b.field.State()
	}
	lead := caret.Lead(b.text, b.cursor)
	b.text = lead + s + b.text[len(lead):]
	b.cursor += utf8.RuneCountInString(s)
	return b.field.HandleInput(b)
}

// Backspace deletes the rune before the cursor.
func (b *TextBox) Backspace() field.Result {
	if b.cursor == 0 {
		return b.field.State()
	}
	before := caret.Lead(b.text, b.cursor-1)
	after := b.text[len(caret.Lead(b.text, b.cursor)):]
	b.text = before + after
	b.cursor--
	return b.field.HandleInput(b)
}

// Delete deletes the rune under the cursor.
func (b *TextBox) Delete() field.Result {
	if b.cursor >= utf8.RuneCountInString(b.text) {
		return b.field.State()
	}
	before := caret.Lead(b.text, b.cursor)
	after := b.text[len(caret.Lead(b.text, b.cursor+1)):]
	b.text = before + after
	return b.field.HandleInput(b)
}

// MoveLeft moves the cursor one rune left.
func (b *TextBox) MoveLeft() {
	b.SetCursor(b.cursor - 1)
}

// MoveRight moves the cursor one rune right.
func (b *TextBox) MoveRight() {
	b.SetCursor(b.cursor + 1)
}

// Home moves the cursor to the start.
func (b *TextBox) Home() {
	b.cursor = 0
}

// End moves the cursor to the end of the entered value.
func (b *TextBox) End() {
	b.cursor = utf8.RuneCountInString(b.field.Formatter().Mask(b.field.Raw()))
}

// Clear empties the field.
func (b *TextBox) Clear() field.Result {
	res := b.field.SetRaw("")
	b.Sync()
	return res
}
