package date

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/maskfield/internal/field"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-07", "03072024", true},
		{"2024-3-7", "03072024", true},
		{"3/7/2024", "03072024", true},
		{"03/07/2024", "03072024", true},
		{"12/31/1999", "12311999", true},
		{"March 7", "", false},
		{"03072024", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Normalize(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestToISO(t *testing.T) {
	got, err := ToISO("03072024")
	if err != nil || got != "2024-03-07" {
		t.Errorf("ToISO = %q, %v; want 2024-03-07", got, err)
	}

	for _, raw := range []string{"", "0307202", "030720241", "03/07/20"} {
		if _, err := ToISO(raw); !errors.Is(err, ErrIncomplete) {
			t.Errorf("ToISO(%q) error = %v, want ErrIncomplete", raw, err)
		}
	}
}

func TestTimeAndValid(t *testing.T) {
	tm, err := Time("02292024")
	if err != nil {
		t.Fatalf("Time failed: %v", err)
	}
	if !tm.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time = %v", tm)
	}
	if FromTime(tm) != "02292024" {
		t.Errorf("FromTime = %q", FromTime(tm))
	}

	if Valid("02302024") {
		t.Error("February 30 should not be valid")
	}
	if _, err := Time("02302024"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Time error = %v, want ErrInvalidDate", err)
	}
	if _, err := Time("0230"); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Time error = %v, want ErrIncomplete", err)
	}
}

func TestField(t *testing.T) {
	f, err := field.New(Config("dob"))
	if err != nil {
		t.Fatal(err)
	}

	res := f.Initialize("2024-03-07")
	if res.Raw != "03072024" || res.Display != "03/07/2024" {
		t.Errorf("Initialize = %+v", res)
	}
	if iso, err := f.Foreign(); err != nil || iso != "2024-03-07" {
		t.Errorf("Foreign = %q, %v", iso, err)
	}

	res = f.SetForeign("3/7/2024")
	if res.Raw != "03072024" {
		t.Errorf("Raw = %q, want 03072024", res.Raw)
	}

	res = f.ApplyEdit(field.EditIntent{
		PrevDisplay: "03/07/2024",
		PrevCursor:  10,
		NewDisplay:  "03/07/20245",
		NewCursor:   11,
	})
	if !res.Rejected || res.Display != "03/07/2024" {
		t.Errorf("ninth digit: %+v", res)
	}
}

func TestFieldPartialAndLenient(t *testing.T) {
	f, err := field.New(Config("dob"))
	if err != nil {
		t.Fatal(err)
	}

	res := f.Initialize("")
	if res.Display != Prompt || res.Cursor != 0 {
		t.Errorf("empty Initialize = %+v", res)
	}

	res = f.ApplyEdit(field.EditIntent{
		PrevDisplay: Prompt,
		NewDisplay:  "0MM/DD/YYYY",
		NewCursor:   1,
	})
	if res.Display != "0M/DD/YYYY" || res.Cursor != 1 {
		t.Errorf("first digit = %+v", res)
	}

	if _, err := f.Foreign(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("partial Foreign error = %v, want ErrIncomplete", err)
	}

	// unrecognised input falls back to digit filtering
	res = f.SetForeign("on 0 3 0 7")
	if res.Raw != "0307" || res.Display != "03/07/YYYY" {
		t.Errorf("lenient SetForeign = %+v", res)
	}
}
