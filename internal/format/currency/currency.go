// Package currency formats monetary input for a masked field.
//
// The raw value is a plain decimal string: ASCII digits with at most one '.'
// and no more fraction digits than the currency allows. The display adds the
// currency symbol and locale grouping, and shows only the fraction digits
// the user typed:
//
//	f := currency.New(language.AmericanEnglish)
//	f.Mask("1234")    // "$1,234"
//	f.Mask("1234.5")  // "$1,234.5"
//	f.Foreign("1234.5") // "$1,234.50", nil
//
// Symbols and separators come from CLDR data in golang.org/x/text.
package currency

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dshills/maskfield/internal/caret"
	"github.com/dshills/maskfield/internal/field"
)

// MaxIntegerDigits bounds the integer part of a raw value.
const MaxIntegerDigits = 15

var rawPattern = regexp.MustCompile(`^[0-9]*(\.[0-9]*)?$`)

// Formatter formats currency amounts for one locale and currency unit.
type Formatter struct {
	tag     language.Tag
	unit    xcurrency.Unit
	symbol  string
	group   string
	decimal rune
	scale   int
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithUnit selects the currency instead of deriving it from the locale.
func WithUnit(u xcurrency.Unit) Option {
	return func(f *Formatter) {
		f.unit = u
	}
}

// WithSymbol overrides the CLDR symbol.
func WithSymbol(symbol string) Option {
	return func(f *Formatter) {
		f.symbol = symbol
	}
}

// New creates a formatter for tag. The currency defaults to the one used in
// the tag's region, falling back to USD.
func New(tag language.Tag, opts ...Option) *Formatter {
	f := &Formatter{tag: tag}
	if u, conf := xcurrency.FromTag(tag); conf != language.No {
		f.unit = u
	} else {
		f.unit = xcurrency.USD
	}
	for _, opt := range opts {
		opt(f)
	}

	p := message.NewPrinter(tag)
	if f.symbol == "" {
		f.symbol = p.Sprint(xcurrency.Symbol(f.unit))
	}
	if f.symbol == "" {
		f.symbol = f.unit.String()
	}
	f.group = separator(p.Sprint(number.Decimal(1234567)))
	if d := []rune(separator(p.Sprint(number.Decimal(1.5, number.Scale(1))))); len(d) == 1 {
		f.decimal = d[0]
	} else {
		f.decimal = '.'
	}
	if f.group == string(f.decimal) {
		f.group = ""
	}
	f.scale, _ = xcurrency.Standard.Rounding(f.unit)

	return f
}

// separator returns the first run of non-digit runes in s.
func separator(s string) string {
	start := -1
	for i, r := range s {
		digit := unicode.IsDigit(r)
		if start < 0 && !digit && i > 0 {
			start = i
		}
		if start >= 0 && digit {
			return s[start:i]
		}
	}
	return ""
}

// Unit returns the currency unit.
func (f *Formatter) Unit() xcurrency.Unit {
	return f.unit
}

// Symbol returns the currency symbol.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Scale returns the number of fraction digits the currency allows.
func (f *Formatter) Scale() int {
	return f.scale
}

// Separators returns the grouping and decimal separators.
func (f *Formatter) Separators() (group string, decimal rune) {
	return f.group, f.decimal
}

// Mask formats raw, showing only the fraction digits present in raw.
func (f *Formatter) Mask(raw string) string {
	intPart, frac, point := f.split(raw)
	if intPart == "" && !point {
		return ""
	}
	if intPart == "" {
		intPart = "0"
	}

	var sb strings.Builder
	sb.WriteString(f.symbol)
	sb.WriteString(f.groupDigits(intPart))
	if point {
		sb.WriteRune(f.decimal)
		sb.WriteString(frac)
	}
	return sb.String()
}

// Extract returns the digits and decimal points of display, with the locale
// decimal separator mapped to '.', without any clamping.
func (f *Formatter) Extract(display string) string {
	display = strings.Replace(display, f.symbol, "", 1)

	var sb strings.Builder
	for _, r := range display {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case f.isDecimal(r):
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Unmask returns the canonical raw value contained in display: leading zeros
// removed, a bare point prefixed with 0, and both parts clamped.
func (f *Formatter) Unmask(display string) string {
	intPart, frac, point := f.split(f.Extract(display))
	if intPart == "" && !point {
		return ""
	}
	if intPart == "" {
		intPart = "0"
	}
	if point {
		return intPart + "." + frac
	}
	return intPart
}

// Valid reports whether raw is an acceptable edit: at most one point, no more
// fraction digits than the currency scale and a bounded integer part.
func (f *Formatter) Valid(raw string) bool {
	if strings.Count(raw, ".") > 1 {
		return false
	}
	intPart, frac, point := strings.Cut(raw, ".")
	if point && f.scale == 0 {
		return false
	}
	if len(frac) > f.scale {
		return false
	}
	return len(trimZeros(intPart)) <= MaxIntegerDigits
}

// Normalize parses a pre-formatted amount such as "$1,234.56" or "1234.5".
func (f *Formatter) Normalize(input string) (string, bool) {
	s := strings.TrimSpace(input)
	s = strings.Replace(s, f.symbol, "", 1)
	s = strings.Replace(s, f.unit.String(), "", 1)
	if f.group != "" {
		s = strings.ReplaceAll(s, f.group, "")
	}
	s = strings.Map(func(r rune) rune {
		if f.isDecimal(r) {
			return '.'
		}
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if s == "" || s == "." || !rawPattern.MatchString(s) {
		return "", false
	}
	return s, true
}

// Foreign formats raw with the full currency precision, e.g. "$1,234.50".
// An empty raw value yields an empty string.
func (f *Formatter) Foreign(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if !rawPattern.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	intPart, frac, _ := f.split(raw)
	if intPart == "" {
		intPart = "0"
	}

	var sb strings.Builder
	sb.WriteString(f.symbol)
	sb.WriteString(f.groupDigits(intPart))
	if f.scale > 0 {
		sb.WriteRune(f.decimal)
		sb.WriteString(frac)
		sb.WriteString(strings.Repeat("0", f.scale-len(frac)))
	}
	return sb.String(), nil
}

// Minor converts raw to an integer amount of minor units (cents for USD).
func (f *Formatter) Minor(raw string) (int64, error) {
	if raw == "" || !rawPattern.MatchString(raw) || raw == "." {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	intPart, frac, _ := f.split(raw)
	digits := intPart + frac + strings.Repeat("0", f.scale-len(frac))
	if digits == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return n, nil
}

// Locate places the cursor after as many digits and decimal points as the
// canonical value in front of the host cursor holds. Grouping separators and
// the symbol are skipped, so regrouping never moves the cursor off the digit
// just typed.
func (f *Formatter) Locate(postEdit string, cursor int, display string) int {
	n := utf8.RuneCountInString(f.Unmask(caret.Lead(postEdit, cursor)))

	base := 0
	if rest, ok := strings.CutPrefix(display, f.symbol); ok {
		base = utf8.RuneCountInString(f.symbol)
		display = rest
	}
	return base + caret.AfterClass(display, n, func(r rune) bool {
		return (r >= '0' && r <= '9') || r == f.decimal
	})
}

// Config returns the field configuration for this formatter.
func (f *Formatter) Config(name string) field.Config {
	return field.Config{
		Name:      name,
		Formatter: f,
		Validate:  f.Valid,
		Normalize: f.Normalize,
		Foreign:   f.Foreign,
	}
}

// split clamps raw into its integer and fraction digits. Characters other
// than digits and the first point are dropped.
func (f *Formatter) split(raw string) (intPart, frac string, point bool) {
	var ib, fb strings.Builder
	for _, r := range raw {
		switch {
		case r == '.':
			point = true
		case r < '0' || r > '9':
		case point:
			if fb.Len() < f.scale {
				fb.WriteRune(r)
			}
		default:
			ib.WriteRune(r)
		}
	}
	if f.scale == 0 {
		point = false
	}

	intPart = ib.String()
	if intPart != "" {
		intPart = trimZeros(intPart)
		if intPart == "" {
			intPart = "0"
		}
	}
	if len(intPart) > MaxIntegerDigits {
		intPart = intPart[:MaxIntegerDigits]
	}
	return intPart, fb.String(), point
}

func (f *Formatter) isDecimal(r rune) bool {
	return r == f.decimal || (r == '.' && f.group != ".")
}

func (f *Formatter) groupDigits(digits string) string {
	if f.group == "" || len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(f.group)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

func trimZeros(s string) string {
	return strings.TrimLeft(s, "0")
}
