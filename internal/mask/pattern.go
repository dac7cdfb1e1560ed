package mask

import (
	"strings"
	"unicode"
)

// Kind identifies the class of runes a placeholder slot accepts.
type Kind int

const (
	// KindDigit accepts decimal digits 0-9.
	KindDigit Kind = iota
	// KindLetter accepts Unicode letters.
	KindLetter
	// KindAny accepts any rune that is neither a literal of the pattern nor a prompt rune.
	KindAny
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindLetter:
		return "letter"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Escape marks the following pattern rune as a literal.
const Escape = '\\'

// Slot is one position of a pattern.
type Slot struct {
	// Placeholder reports whether the slot consumes raw input.
	Placeholder bool
	// Kind is the accepted class when Placeholder is true.
	Kind Kind
	// Literal is the rendered rune when Placeholder is false.
	Literal rune
}

// Pattern is an immutable mask pattern.
type Pattern struct {
	source   string
	slots    []Slot
	kinds    []Kind // kinds of placeholder slots, in order
	literals map[rune]bool
	prompt   map[rune]bool
}

// Option configures pattern parsing.
type Option func(*parser)

type parser struct {
	placeholders map[rune]Kind
	promptRunes  string
}

// WithPlaceholder registers an additional placeholder rune.
func WithPlaceholder(r rune, kind Kind) Option {
	return func(p *parser) {
		p.placeholders[r] = kind
	}
}

// WithPromptRunes declares runes used by the prompt. Unmask never accepts
// them for letter or any slots, so leftover prompt text is not taken as input.
func WithPromptRunes(prompt string) Option {
	return func(p *parser) {
		p.promptRunes = prompt
	}
}

// Parse builds a pattern from its string form. '#' is a digit placeholder,
// every other rune is a literal unless registered with WithPlaceholder.
func Parse(pattern string, opts ...Option) (*Pattern, error) {
	if pattern == "" {
		return nil, &PatternError{Pattern: pattern, Reason: "empty pattern"}
	}

	ps := &parser{placeholders: map[rune]Kind{'#': KindDigit}}
	for _, opt := range opts {
		opt(ps)
	}

	p := &Pattern{
		source:   pattern,
		literals: make(map[rune]bool),
		prompt:   make(map[rune]bool),
	}

	escaped := false
	for _, r := range pattern {
		if escaped {
			p.slots = append(p.slots, Slot{Literal: r})
			p.literals[r] = true
			escaped = false
			continue
		}
		if r == Escape {
			escaped = true
			continue
		}
		if kind, ok := ps.placeholders[r]; ok {
			p.slots = append(p.slots, Slot{Placeholder: true, Kind: kind})
			p.kinds = append(p.kinds, kind)
			continue
		}
		p.slots = append(p.slots, Slot{Literal: r})
		p.literals[r] = true
	}

	if escaped {
		return nil, &PatternError{Pattern: pattern, Reason: "dangling escape"}
	}
	if len(p.kinds) == 0 {
		return nil, &PatternError{Pattern: pattern, Reason: "no placeholder slots"}
	}

	for _, r := range ps.promptRunes {
		p.prompt[r] = true
	}

	return p, nil
}

// MustParse is like Parse but panics on error. Intended for package level
// pattern constants.
func MustParse(pattern string, opts ...Option) *Pattern {
	p, err := Parse(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern source.
func (p *Pattern) String() string {
	return p.source
}

// Len returns the number of slots.
func (p *Pattern) Len() int {
	return len(p.slots)
}

// PlaceholderCount returns the maximum raw length the pattern accepts.
func (p *Pattern) PlaceholderCount() int {
	return len(p.kinds)
}

// IsLiteralAt reports whether slot index holds a literal.
// Out of range indexes report false.
func (p *Pattern) IsLiteralAt(index int) bool {
	if index < 0 || index >= len(p.slots) {
		return false
	}
	return !p.slots[index].Placeholder
}

// SlotAt returns the slot at index.
func (p *Pattern) SlotAt(index int) (Slot, bool) {
	if index < 0 || index >= len(p.slots) {
		return Slot{}, false
	}
	return p.slots[index], true
}

// KindAt returns the placeholder kind at index. ok is false for literal
// slots and indexes out of range.
func (p *Pattern) KindAt(index int) (kind Kind, ok bool) {
	s, ok := p.SlotAt(index)
	if !ok || !s.Placeholder {
		return 0, false
	}
	return s.Kind, true
}

// Literals returns the literal runes of the pattern in order.
func (p *Pattern) Literals() string {
	var sb strings.Builder
	for _, s := range p.slots {
		if !s.Placeholder {
			sb.WriteRune(s.Literal)
		}
	}
	return sb.String()
}

// Prompt renders the pattern with every placeholder replaced by fill, e.g.
// "(___) ___-____" for "(###) ###-####" and '_'.
func (p *Pattern) Prompt(fill rune) string {
	var sb strings.Builder
	for _, s := range p.slots {
		if s.Placeholder {
			sb.WriteRune(fill)
		} else {
			sb.WriteRune(s.Literal)
		}
	}
	return sb.String()
}

// accepts reports whether r may fill a placeholder of the given kind.
func (p *Pattern) accepts(kind Kind, r rune) bool {
	switch kind {
	case KindDigit:
		return r >= '0' && r <= '9'
	case KindLetter:
		return unicode.IsLetter(r) && !p.prompt[r]
	case KindAny:
		return !unicode.IsSpace(r) && !unicode.IsControl(r) && !p.literals[r] && !p.prompt[r]
	default:
		return false
	}
}
