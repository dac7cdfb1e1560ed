// Package date keeps a masked date field in MM/DD/YYYY form backed by an
// eight digit raw value (MMDDYYYY), and converts to and from ISO 8601.
package date

import (
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/dshills/maskfield/internal/field"
	"github.com/dshills/maskfield/internal/mask"
)

// Layout constants for the field.
const (
	Pattern   = "##/##/####"
	Prompt    = "MM/DD/YYYY"
	RawLength = 8
)

// Errors returned by conversions.
var (
	// ErrIncomplete indicates a raw value that is not exactly eight digits.
	ErrIncomplete = errors.New("date is incomplete")

	// ErrInvalidDate indicates eight digits that do not name a calendar day.
	ErrInvalidDate = errors.New("invalid calendar date")
)

var (
	isoPattern   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	slashPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	digitsOnly   = regexp.MustCompile(`^\d{8}$`)

	pattern = mask.MustParse(Pattern)
)

// Normalize converts an ISO (YYYY-MM-DD) or slash (M/D/YYYY, MM/DD/YYYY)
// date into raw MMDDYYYY form. Components are zero padded but not checked
// against the calendar.
func Normalize(input string) (string, bool) {
	if m := isoPattern.FindStringSubmatch(input); m != nil {
		return pad2(m[2]) + pad2(m[3]) + m[1], true
	}
	if m := slashPattern.FindStringSubmatch(input); m != nil {
		return pad2(m[1]) + pad2(m[2]) + m[3], true
	}
	return "", false
}

// ToISO converts a raw MMDDYYYY value to YYYY-MM-DD.
func ToISO(raw string) (string, error) {
	if utf8.RuneCountInString(raw) != RawLength || !digitsOnly.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrIncomplete, raw)
	}
	return raw[4:] + "-" + raw[:2] + "-" + raw[2:4], nil
}

// Time parses a complete raw value into a time in UTC.
func Time(raw string) (time.Time, error) {
	if utf8.RuneCountInString(raw) != RawLength {
		return time.Time{}, fmt.Errorf("%w: %q", ErrIncomplete, raw)
	}
	t, err := time.Parse("01022006", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// Valid reports whether raw is a complete, real calendar date.
func Valid(raw string) bool {
	_, err := Time(raw)
	return err == nil
}

// FromTime returns the raw value for t.
func FromTime(t time.Time) string {
	return t.Format("01022006")
}

// Config returns the field configuration for a date input. Edits that would
// add a ninth digit are rejected.
func Config(name string) field.Config {
	return field.Config{
		Name:      name,
		Formatter: pattern,
		Prompt:    Prompt,
		Validate: func(raw string) bool {
			return utf8.RuneCountInString(raw) <= RawLength
		},
		Normalize: Normalize,
		Foreign:   ToISO,
	}
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
