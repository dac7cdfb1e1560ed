// Package field is the engine a host text box drives for one masked input.
//
// A Field owns the canonical raw value of the input. The displayed text and
// the cursor offset are derived from it after every edit:
//
//	f, _ := field.New(field.Config{
//		Name:      "phone",
//		Formatter: mask.MustParse("(###) ###-####"),
//		Prompt:    "(___) ___-____",
//	})
//	f.Initialize("")
//
//	res := f.ApplyEdit(field.EditIntent{
//		PrevDisplay: "(___) ___-____",
//		PrevCursor:  0,
//		NewDisplay:  "5(___) ___-____",
//		NewCursor:   1,
//	})
//	// res.Display == "(5__) ___-____", res.Cursor == 2
//
// The host must write Display before it sets Cursor; Result.Apply does both
// in that order. Edits must be applied one at a time, in delivery order,
// since each edit reads the state the previous one left behind. A Field is
// not safe for concurrent use.
//
// Specialisations (dates, currency, scripted fields) are expressed as Config
// hooks rather than separate types: Validate rejects an edit, Normalize turns
// a foreign representation into raw form, and Foreign converts back.
package field
