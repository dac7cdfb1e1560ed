package caret

import (
	"testing"

	"github.com/dshills/maskfield/internal/mask"
)

func TestRepositionPhoneInsert(t *testing.T) {
	p := mask.MustParse("(###) ###-####")

	// "(555) 123-4567" with cursor after "(" and "9" typed there
	post := "(9555) 123-4567"
	got := Reposition(p, post, 2)
	if got != 2 {
		t.Errorf("Reposition = %d, want 2", got)
	}

	display := p.Mask(p.Unmask(post))
	if display != "(955) 512-3456" {
		t.Fatalf("display = %q, want %q", display, "(955) 512-3456")
	}
	if []rune(display)[got-1] != '9' {
		t.Errorf("cursor should sit right after the inserted digit, display %q cursor %d", display, got)
	}
}

func TestRepositionAcrossLiterals(t *testing.T) {
	p := mask.MustParse("(###) ###-####")

	tests := []struct {
		name   string
		post   string
		cursor int
		want   int
	}{
		{"start", "(555) 123", 0, 0},
		{"first digit into empty", "5(___) ___-____", 1, 2},
		{"fourth digit jumps separator", "(5554) ___-____", 5, 7},
		{"end of full value", "(555) 123-4567", 14, 14},
		{"overflow at end", "(555) 123-45678", 15, 14},
		{"deleted digit", "(55) 123-4567", 3, 3},
		{"cursor beyond text", "(555", 99, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reposition(p, tt.post, tt.cursor); got != tt.want {
				t.Errorf("Reposition(%q, %d) = %d, want %d", tt.post, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestRepositionMonotonic(t *testing.T) {
	p := mask.MustParse("##/##/####")
	prompt := "MM/DD/YYYY"

	display := prompt
	cursor := 0
	last := 0
	for _, r := range "03072024" {
		rs := []rune(display)
		post := string(rs[:cursor]) + string(r) + string(rs[cursor:])

		cursor = Reposition(p, post, cursor+1)
		display = mask.Compose(p.Mask(p.Unmask(post)), prompt)

		if cursor < last {
			t.Fatalf("cursor moved backwards: %d after %d", cursor, last)
		}
		last = cursor
	}

	if display != "03/07/2024" {
		t.Errorf("display = %q, want %q", display, "03/07/2024")
	}
	if cursor != 10 {
		t.Errorf("cursor = %d, want 10", cursor)
	}
}

func TestLead(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"héllo", 2, "hé"},
		{"abc", 0, ""},
		{"abc", -1, ""},
		{"abc", 5, "abc"},
	}
	for _, tt := range tests {
		if got := Lead(tt.s, tt.n); got != tt.want {
			t.Errorf("Lead(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-3, "abc") != 0 {
		t.Error("negative offset should clamp to 0")
	}
	if Clamp(9, "€12") != 3 {
		t.Error("offset should clamp to rune length")
	}
	if Clamp(2, "abc") != 2 {
		t.Error("in-range offset should be unchanged")
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func TestAfterClass(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want int
	}{
		{"9,812,345", 2, 3},
		{"9,812,345", 7, 9},
		{"9,812,345", 9, 9},
		{"$1,234", 0, 1},
		{"---", 0, 0},
		{"", 3, 0},
	}
	for _, tt := range tests {
		if got := AfterClass(tt.s, tt.n, isDigit); got != tt.want {
			t.Errorf("AfterClass(%q, %d) = %d, want %d", tt.s, tt.n, got, tt.want)
		}
	}
}

// fixedLocator always reports the same offset.
type fixedLocator struct {
	*mask.Pattern
	at int
}

func (l fixedLocator) Locate(string, int, string) int { return l.at }

func TestResolve(t *testing.T) {
	p := mask.MustParse("####")

	if got := Resolve(p, "12x", 3, "12"); got != 2 {
		t.Errorf("Resolve without locator = %d, want 2", got)
	}
	if got := Resolve(fixedLocator{Pattern: p, at: 1}, "1234", 4, "1234"); got != 1 {
		t.Errorf("Resolve with locator = %d, want 1", got)
	}
	if got := Resolve(fixedLocator{Pattern: p, at: 40}, "1234", 4, "1234"); got != 4 {
		t.Errorf("Resolve should clamp, got %d", got)
	}
}
