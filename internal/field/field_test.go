package field

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dshills/maskfield/internal/logging"
	"github.com/dshills/maskfield/internal/mask"
)

const phonePrompt = "(___) ___-____"

func newPhone(t *testing.T, opts ...Option) *Field {
	t.Helper()
	f, err := New(Config{
		Name:      "phone",
		Formatter: mask.MustParse("(###) ###-####"),
		Prompt:    phonePrompt,
	}, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return f
}

// fakeHost records the order of writes.
type fakeHost struct {
	text   string
	cursor int
	calls  []string
}

func (h *fakeHost) DisplayText() string { return h.text }
func (h *fakeHost) Cursor() int         { return h.cursor }

func (h *fakeHost) SetDisplayText(text string) {
	h.text = text
	h.calls = append(h.calls, "text")
}

func (h *fakeHost) SetCursor(offset int) {
	h.cursor = offset
	h.calls = append(h.calls, "cursor")
}

// typeRune inserts r at the host cursor the way a text box would.
func (h *fakeHost) typeRune(r rune) {
	rs := []rune(h.text)
	out := append([]rune{}, rs[:h.cursor]...)
	out = append(out, r)
	out = append(out, rs[h.cursor:]...)
	h.text = string(out)
	h.cursor++
}

func TestNewRequiresFormatter(t *testing.T) {
	_, err := New(Config{Name: "broken"})
	if !errors.Is(err, mask.ErrInvalidPattern) || !errors.Is(err, ErrNoFormatter) {
		t.Fatalf("New error = %v, want ErrInvalidPattern and ErrNoFormatter", err)
	}
}

func TestInitialize(t *testing.T) {
	f := newPhone(t)

	if f.Display() != phonePrompt {
		t.Errorf("initial display = %q, want prompt", f.Display())
	}

	res := f.Initialize("555.123.4567")
	if res.Raw != "5551234567" {
		t.Errorf("Raw = %q, want %q", res.Raw, "5551234567")
	}
	if res.Display != "(555) 123-4567" {
		t.Errorf("Display = %q, want %q", res.Display, "(555) 123-4567")
	}
	if res.Cursor != 14 {
		t.Errorf("Cursor = %d, want 14", res.Cursor)
	}
	if !res.Changed {
		t.Error("Initialize with a value should report a change")
	}
}

func TestApplyEditInsertInsideValue(t *testing.T) {
	f := newPhone(t)
	f.Initialize("5551234567")

	res := f.ApplyEdit(EditIntent{
		PrevDisplay: "(555) 123-4567",
		PrevCursor:  1,
		NewDisplay:  "(9555) 123-4567",
		NewCursor:   2,
	})

	if res.Raw != "9555123456" {
		t.Errorf("Raw = %q, want %q", res.Raw, "9555123456")
	}
	if res.Display != "(955) 512-3456" {
		t.Errorf("Display = %q, want %q", res.Display, "(955) 512-3456")
	}
	if res.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", res.Cursor)
	}
}

func TestTypingSequence(t *testing.T) {
	f := newPhone(t)
	f.Initialize("")
	h := &fakeHost{text: f.Display(), cursor: f.Cursor()}

	last := 0
	for _, r := range "5551234567" {
		h.typeRune(r)
		res := f.HandleInput(h)
		if res.Cursor < last {
			t.Fatalf("cursor moved backwards: %d after %d", res.Cursor, last)
		}
		last = res.Cursor
	}

	if h.text != "(555) 123-4567" {
		t.Errorf("host text = %q, want %q", h.text, "(555) 123-4567")
	}
	if h.cursor != 14 {
		t.Errorf("host cursor = %d, want 14", h.cursor)
	}
	if f.Raw() != "5551234567" {
		t.Errorf("Raw = %q", f.Raw())
	}

	// every edit must write the text before the cursor
	for i := 0; i < len(h.calls); i += 2 {
		if h.calls[i] != "text" || h.calls[i+1] != "cursor" {
			t.Fatalf("unexpected write order %v", h.calls)
		}
	}
}

func TestBackspaceOverLiteral(t *testing.T) {
	f := newPhone(t)
	f.Initialize("5551")

	// "(555) 1" with the cursor after the space; backspace removes the space
	res := f.ApplyEdit(EditIntent{
		PrevDisplay: "(555) 1__-____",
		PrevCursor:  6,
		NewDisplay:  "(555)1__-____",
		NewCursor:   5,
	})
	if res.Raw != "5551" {
		t.Errorf("Raw = %q, want unchanged", res.Raw)
	}
	if res.Changed {
		t.Error("removing a literal should not change the raw value")
	}
	if res.Cursor != 4 {
		t.Errorf("Cursor = %d, want 4 (before the literals)", res.Cursor)
	}
}

func TestValidateRejects(t *testing.T) {
	f, err := New(Config{
		Name:      "date",
		Formatter: mask.MustParse("##/##/####"),
		Prompt:    "MM/DD/YYYY",
		Validate:  func(raw string) bool { return utf8.RuneCountInString(raw) <= 8 },
	})
	if err != nil {
		t.Fatal(err)
	}
	f.Initialize("03072024")

	var events int
	f.OnChange(func(ChangeEvent) { events++ })

	res := f.ApplyEdit(EditIntent{
		PrevDisplay: "03/07/2024",
		PrevCursor:  10,
		NewDisplay:  "03/07/20249",
		NewCursor:   11,
	})

	if !res.Rejected {
		t.Fatal("ninth digit should be rejected")
	}
	if res.Raw != "03072024" || res.Display != "03/07/2024" || res.Cursor != 10 {
		t.Errorf("rejected edit changed state: %+v", res)
	}
	if events != 0 {
		t.Errorf("rejected edit notified %d listeners", events)
	}
}

func TestOnChange(t *testing.T) {
	f := newPhone(t, WithID("f-1"))

	var got []ChangeEvent
	f.OnChange(func(ev ChangeEvent) { got = append(got, ev) })
	f.OnChange(nil)

	f.Initialize("555")
	f.SetRaw("555")
	f.ApplyEdit(EditIntent{NewDisplay: "(5551) ___-____", NewCursor: 5})

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Source != SourceInit || got[0].Raw != "555" || got[0].FieldID != "f-1" {
		t.Errorf("first event = %+v", got[0])
	}
	if got[1].Source != SourceEdit || got[1].Previous != "555" || got[1].Raw != "5551" {
		t.Errorf("second event = %+v", got[1])
	}
	if got[1].Name != "phone" || got[1].Display != "(555) 1__-____" {
		t.Errorf("second event = %+v", got[1])
	}
}

func TestSetRawCursorPolicy(t *testing.T) {
	f := newPhone(t)
	f.Initialize("5551234567")
	res := f.SetRaw("12345678901234")
	if res.Raw != "1234567890" || res.Cursor != 14 {
		t.Errorf("SetRaw = %+v, want clamped raw and cursor at end", res)
	}

	k := newPhone(t, WithCursorPolicy(CursorKeep))
	k.Initialize("5551234567")
	k.ApplyEdit(EditIntent{NewDisplay: "(555) 123-4567", NewCursor: 3})
	res = k.SetRaw("12")
	if res.Cursor != 3 {
		t.Errorf("Cursor = %d, want 3 with CursorKeep", res.Cursor)
	}
	if res.Display != "(12_) ___-____" {
		t.Errorf("Display = %q", res.Display)
	}
}

func TestNormalizeAndForeign(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	f, err := New(Config{
		Name:      "code",
		Formatter: mask.MustParse("##-##"),
		Normalize: func(in string) (string, bool) {
			if strings.HasPrefix(in, "code:") {
				return strings.TrimPrefix(in, "code:"), true
			}
			return "", false
		},
		Foreign: func(raw string) (string, error) { return "code:" + raw, nil },
	}, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	if res := f.Initialize("code:1234"); res.Display != "12-34" {
		t.Errorf("Display = %q, want %q", res.Display, "12-34")
	}
	if out, _ := f.Foreign(); out != "code:1234" {
		t.Errorf("Foreign = %q", out)
	}

	res := f.SetForeign("9 8 7")
	if res.Raw != "987" {
		t.Errorf("Raw = %q, want best-effort %q", res.Raw, "987")
	}
	if !strings.Contains(buf.String(), "matched no known form") {
		t.Errorf("expected a mismatch log line, got %q", buf.String())
	}
}

func TestForeignWithoutHook(t *testing.T) {
	f := newPhone(t)
	f.Initialize("555")
	out, err := f.Foreign()
	if err != nil || out != "555" {
		t.Errorf("Foreign = %q, %v; want raw", out, err)
	}
}

func TestSourceString(t *testing.T) {
	if SourceInit.String() != "init" || SourceEdit.String() != "edit" || SourceProgrammatic.String() != "programmatic" {
		t.Error("unexpected source names")
	}
	if Source(7).String() != "unknown" {
		t.Error("unknown source should stringify as unknown")
	}
}
