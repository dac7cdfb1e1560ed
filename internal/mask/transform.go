package mask

import (
	"strings"
	"unicode/utf8"
)

// Mask formats raw input and returns the masked prefix covering the consumed
// runes. Literals are emitted only when a later placeholder consumes input,
// so "555" renders as "(555" rather than "(555) ". Runes a slot cannot accept
// are skipped; input beyond PlaceholderCount is dropped.
func (p *Pattern) Mask(raw string) string {
	if raw == "" {
		return ""
	}

	var out, pending strings.Builder
	rest := raw
	for _, slot := range p.slots {
		if !slot.Placeholder {
			pending.WriteRune(slot.Literal)
			continue
		}

		r, ok := p.nextAccepted(&rest, slot.Kind)
		if !ok {
			break
		}
		out.WriteString(pending.String())
		pending.Reset()
		out.WriteRune(r)
	}
	return out.String()
}

// nextAccepted pops runes off rest until one fits kind.
func (p *Pattern) nextAccepted(rest *string, kind Kind) (rune, bool) {
	for *rest != "" {
		r, size := utf8.DecodeRuneInString(*rest)
		*rest = (*rest)[size:]
		if p.accepts(kind, r) {
			return r, true
		}
	}
	return 0, false
}

// Extract filters display text down to the runes that fill placeholder slots,
// in order, without clamping. Once every slot is filled, further runes are
// kept if they match the kind of the last slot so callers can detect overflow.
func (p *Pattern) Extract(display string) string {
	var sb strings.Builder
	n := 0
	for _, r := range display {
		kind := p.kinds[len(p.kinds)-1]
		if n < len(p.kinds) {
			kind = p.kinds[n]
		}
		if p.accepts(kind, r) {
			sb.WriteRune(r)
			n++
		}
	}
	return sb.String()
}

// Clamp truncates raw to PlaceholderCount runes, keeping the leading ones.
func (p *Pattern) Clamp(raw string) string {
	return truncateRunes(raw, len(p.kinds))
}

// Unmask extracts the raw value from formatted or partially formatted text.
// It tolerates interleaved literals and trailing prompt text.
func (p *Pattern) Unmask(display string) string {
	return p.Clamp(p.Extract(display))
}

// Compose fills the positions after the masked prefix from prompt.
func Compose(masked, prompt string) string {
	n := utf8.RuneCountInString(masked)
	if n >= utf8.RuneCountInString(prompt) {
		return masked
	}
	return masked + sliceRunes(prompt, n)
}

// Display returns the composed display string for raw.
func (p *Pattern) Display(raw, prompt string) string {
	return Compose(p.Mask(raw), prompt)
}

func truncateRunes(s string, n int) string {
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

// sliceRunes returns s from rune index n.
func sliceRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[pos:]
		}
		i++
	}
	return ""
}
