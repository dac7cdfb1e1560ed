// Package form groups masked fields, fills them from a JSON document and
// serialises their values back to JSON or msgpack.
//
// Each field is bound to a gjson/sjson path (FieldDef.Path, defaulting to
// the field name). Submission writes the raw value, or the foreign
// representation for fields with submit = "foreign".
package form

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/dshills/maskfield/internal/config"
	"github.com/dshills/maskfield/internal/field"
	"github.com/dshills/maskfield/internal/logging"
	"github.com/dshills/maskfield/internal/preset"
)

// ErrInvalidJSON indicates a prefill document that is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON document")

// Entry is one field of a form with its definition.
type Entry struct {
	Def   config.FieldDef
	Field *field.Field
}

// Form is an ordered set of fields.
type Form struct {
	entries []*Entry
	index   map[string]*Entry
	builder *preset.Builder
	logger  *logging.Logger
}

// Option configures a Form.
type Option func(*options)

type options struct {
	logger  *logging.Logger
	builder []preset.Option
}

// WithLogger sets the logger handed to every field.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithBuilderOptions passes options to the preset builder.
func WithBuilderOptions(opts ...preset.Option) Option {
	return func(o *options) {
		o.builder = append(o.builder, opts...)
	}
}

// New builds a form for cfg. Every field starts empty.
func New(cfg *config.Config, opts ...Option) (*Form, error) {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	f := &Form{
		index:   make(map[string]*Entry, len(cfg.Fields)),
		builder: preset.NewBuilder(o.builder...),
		logger:  o.logger.WithComponent("form"),
	}

	for _, def := range cfg.Fields {
		fc, err := f.builder.Build(def)
		if err != nil {
			f.Close()
			return nil, err
		}
		fld, err := field.New(fc, field.WithLogger(o.logger.WithComponent("field")))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("field %q: %w", def.Name, err)
		}
		fld.Initialize("")

		e := &Entry{Def: def, Field: fld}
		f.entries = append(f.entries, e)
		f.index[def.Name] = e
	}
	return f, nil
}

// Entries returns the fields in definition order.
func (f *Form) Entries() []*Entry {
	return f.entries
}

// Field returns the named field.
func (f *Form) Field(name string) (*field.Field, bool) {
	e, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return e.Field, true
}

// OnChange registers fn on every field.
func (f *Form) OnChange(fn func(field.ChangeEvent)) {
	for _, e := range f.entries {
		e.Field.OnChange(fn)
	}
}

// Prefill initialises fields from doc. Fields whose path is missing keep
// their value. Values are treated as foreign input, so ISO dates and
// formatted amounts are accepted.
func (f *Form) Prefill(doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return ErrInvalidJSON
	}
	for _, e := range f.entries {
		r := gjson.GetBytes(doc, e.Def.JSONPath())
		if !r.Exists() || r.Type == gjson.Null {
			continue
		}
		e.Field.Initialize(r.String())
		f.logger.Debug("prefilled %s from %s", e.Def.Name, e.Def.JSONPath())
	}
	return nil
}

// Values returns the submitted value of each field by name.
func (f *Form) Values() (map[string]string, error) {
	out := make(map[string]string, len(f.entries))
	var errs []error
	for _, e := range f.entries {
		v, err := submitted(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", e.Def.Name, err))
			continue
		}
		out[e.Def.Name] = v
	}
	return out, errors.Join(errs...)
}

// Submit renders the form as a JSON object. Fields that cannot produce
// their foreign value are left out and reported in the returned error.
func (f *Form) Submit() ([]byte, error) {
	doc := []byte("{}")
	var errs []error
	for _, e := range f.entries {
		v, err := submitted(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", e.Def.Name, err))
			continue
		}
		doc, err = sjson.SetBytes(doc, e.Def.JSONPath(), v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", e.Def.Name, err)
		}
	}
	return doc, errors.Join(errs...)
}

// SubmitMsgpack encodes the submitted values as a msgpack map keyed by
// field name. Failed fields are handled as in Submit.
func (f *Form) SubmitMsgpack() ([]byte, error) {
	values, verr := f.Values()
	packed, err := msgpack.Marshal(values)
	if err != nil {
		return nil, err
	}
	return packed, verr
}

// Close releases resources held by the fields.
func (f *Form) Close() {
	f.builder.Close()
}

func submitted(e *Entry) (string, error) {
	if e.Def.Submit == config.SubmitForeign && e.Field.Raw() != "" {
		return e.Field.Foreign()
	}
	return e.Field.Raw(), nil
}
