// Package caret repositions the cursor after a masked field is reformatted.
//
// After an edit the host places the cursor where the raw keystroke landed,
// which ignores literals the mask inserts or removes on reformat. Reposition
// recovers the intended position by re-masking only the text in front of the
// cursor: the number of placeholder slots satisfied before the cursor decides
// where it belongs in the new display.
package caret

import "unicode/utf8"

// Masker is the pair of transforms the algorithm needs. Both *mask.Pattern
// and the currency formatter satisfy it.
type Masker interface {
	Mask(raw string) string
	Unmask(display string) string
}

// Locator is implemented by formatters whose layout depends on the whole
// value, such as right-aligned digit grouping, where re-masking a prefix does
// not predict positions in the full display. Locate receives the post-edit
// text, the host cursor and the reformatted display.
type Locator interface {
	Locate(postEdit string, cursor int, display string) int
}

// Resolve uses m's Locator when it has one and Reposition otherwise. The
// result is clamped to display.
func Resolve(m Masker, postEdit string, cursor int, display string) int {
	if l, ok := m.(Locator); ok {
		return Clamp(l.Locate(postEdit, cursor, display), display)
	}
	return Clamp(Reposition(m, postEdit, cursor), display)
}

// Reposition returns the corrected cursor offset for display, the post-edit
// text as the host holds it before reformatting, where cursor is the offset
// the host reported. Offsets are rune counts.
//
// The result must be applied only after the reformatted display text has
// been written back to the host.
func Reposition(m Masker, display string, cursor int) int {
	lead := Lead(display, cursor)
	if lead == "" {
		return 0
	}
	return utf8.RuneCountInString(m.Mask(m.Unmask(lead)))
}

// AfterClass returns the offset just after the n-th rune of s for which
// member is true. For n <= 0 it returns the offset of the first member rune,
// or 0 when there is none. If s has fewer than n members the length of s is
// returned.
func AfterClass(s string, n int, member func(rune) bool) int {
	count := 0
	i := 0
	for _, r := range s {
		if member(r) {
			if n <= 0 {
				return i
			}
			count++
			if count == n {
				return i + 1
			}
		}
		i++
	}
	if n <= 0 {
		return 0
	}
	return i
}

// Lead returns the first n runes of s. n is clamped to [0, len(s)].
func Lead(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Clamp limits offset to the valid range for text.
func Clamp(offset int, text string) int {
	if offset < 0 {
		return 0
	}
	if n := utf8.RuneCountInString(text); offset > n {
		return n
	}
	return offset
}
