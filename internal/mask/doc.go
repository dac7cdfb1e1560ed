// Package mask implements the pattern model and the bidirectional transforms
// that keep a formatted display string in step with its raw value.
//
// A pattern is an ordered list of slots. Placeholder slots accept exactly one
// raw rune of their kind; literal slots are always rendered and never consume
// input:
//
//	p, _ := mask.Parse("(###) ###-####")
//	p.Mask("5551234")            // "(555) 123-4"
//	p.Unmask("(555) 123-4___")   // "5551234"
//
// Mask only produces the prefix that corresponds to consumed raw input. The
// caller composes the full display with Compose, which fills the remaining
// positions from a prompt:
//
//	mask.Compose(p.Mask("555"), "(___) ___-____") // "(555) ___-____"
//
// All offsets and lengths in this package are rune counts.
package mask
