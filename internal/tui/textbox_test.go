package tui

import (
	"testing"

	"github.com/dshills/maskfield/internal/field"
	"github.com/dshills/maskfield/internal/mask"
)

func phoneField(t *testing.T) *field.Field {
	t.Helper()
	p := mask.MustParse("(###) ###-####")
	f, err := field.New(field.Config{Name: "phone", Formatter: p, Prompt: p.Prompt('_')})
	if err != nil {
		t.Fatalf("field.New failed: %v", err)
	}
	return f
}

func TestTextBoxEditing(t *testing.T) {
	b := NewTextBox(phoneField(t))
	b.Insert("5551234567")

	tests := []struct {
		name       string
		edit       func()
		wantText   string
		wantCursor int
	}{
		{"home", b.Home, "(555) 123-4567", 0},
		{"right", b.MoveRight, "(555) 123-4567", 1},
		{"delete", func() { b.Delete() }, "(551) 234-567_", 0},
		{"insert", func() { b.Insert("9") }, "(955) 123-4567", 2},
		{"end", b.End, "(955) 123-4567", 14},
		{"backspace", func() { b.Backspace() }, "(955) 123-456_", 13},
		{"left", b.MoveLeft, "(955) 123-456_", 12},
		{"clear", func() { b.Clear() }, "(___) ___-____", 0},
	}
	for _, tt := range tests {
		tt.edit()
		if b.DisplayText() != tt.wantText {
			t.Errorf("%s: text = %q, want %q", tt.name, b.DisplayText(), tt.wantText)
		}
		if b.Cursor() != tt.wantCursor {
			t.Errorf("%s: cursor = %d, want %d", tt.name, b.Cursor(), tt.wantCursor)
		}
	}
}

func TestTextBoxBoundaries(t *testing.T) {
	b := NewTextBox(phoneField(t))

	if res := b.Backspace(); res.Changed {
		t.Error("backspace at start should not change the value")
	}
	b.MoveLeft()
	if b.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", b.Cursor())
	}
	b.Insert("")
	if b.DisplayText() != "(___) ___-____" {
		t.Errorf("text = %q", b.DisplayText())
	}
}
