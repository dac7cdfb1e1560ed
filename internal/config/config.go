package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field types understood by the preset builder.
const (
	TypePattern  = "pattern"
	TypePhone    = "phone"
	TypeDate     = "date"
	TypeCurrency = "currency"
	TypeZip      = "zip"
	TypeSSN      = "ssn"
	TypeScript   = "script"
)

// Submission modes.
const (
	SubmitRaw     = "raw"
	SubmitForeign = "foreign"
)

// Defaults.
const (
	DefaultLocale   = "en-US"
	DefaultLogLevel = "info"
)

// Config is a loaded configuration file.
type Config struct {
	Locale   string     `toml:"locale" yaml:"locale"`
	LogLevel string     `toml:"log_level" yaml:"log_level"`
	Fields   []FieldDef `toml:"field" yaml:"fields"`

	// Source is the path the configuration was read from.
	Source string `toml:"-" yaml:"-"`
}

// FieldDef describes one field.
type FieldDef struct {
	Name     string `toml:"name" yaml:"name"`
	Type     string `toml:"type" yaml:"type"`
	Pattern  string `toml:"pattern" yaml:"pattern"`
	Letter   string `toml:"letter" yaml:"letter"`
	Any      string `toml:"any" yaml:"any"`
	Prompt   string `toml:"prompt" yaml:"prompt"`
	Locale   string `toml:"locale" yaml:"locale"`
	Currency string `toml:"currency" yaml:"currency"`
	Script   string `toml:"script" yaml:"script"`
	Path     string `toml:"path" yaml:"path"`
	Submit   string `toml:"submit" yaml:"submit"`
}

// JSONPath returns the JSON path of the field, defaulting to its name.
func (d FieldDef) JSONPath() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Name
}

// Default returns the configuration used when no file is given: one field of
// each built-in type.
func Default() *Config {
	cfg := &Config{
		Locale:   DefaultLocale,
		LogLevel: DefaultLogLevel,
		Fields: []FieldDef{
			{Name: "phone", Type: TypePhone},
			{Name: "birthday", Type: TypeDate, Submit: SubmitForeign},
			{Name: "amount", Type: TypeCurrency, Submit: SubmitForeign},
			{Name: "zip", Type: TypeZip},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills unset values.
func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	for i := range c.Fields {
		f := &c.Fields[i]
		f.Type = strings.ToLower(f.Type)
		if f.Type == "" {
			f.Type = TypePattern
		}
		if f.Submit == "" {
			f.Submit = SubmitRaw
		}
		if f.Locale == "" {
			f.Locale = c.Locale
		}
	}
}

// Validate checks the definitions for structural problems. Patterns and
// locales are checked when fields are built.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Fields))
	for i, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrValidationFailed, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrValidationFailed, f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case TypePhone, TypeDate, TypeCurrency, TypeZip, TypeSSN:
		case TypePattern:
			if f.Pattern == "" {
				return fmt.Errorf("%w: field %q needs a pattern", ErrValidationFailed, f.Name)
			}
		case TypeScript:
			if f.Pattern == "" || f.Script == "" {
				return fmt.Errorf("%w: field %q needs a pattern and a script", ErrValidationFailed, f.Name)
			}
		default:
			return fmt.Errorf("%w: field %q has unknown type %q", ErrValidationFailed, f.Name, f.Type)
		}

		for _, r := range []string{f.Letter, f.Any} {
			if r != "" && utf8.RuneCountInString(r) != 1 {
				return fmt.Errorf("%w: field %q placeholder %q must be one character", ErrValidationFailed, f.Name, r)
			}
		}

		switch f.Submit {
		case SubmitRaw, SubmitForeign:
		default:
			return fmt.Errorf("%w: field %q has unknown submit mode %q", ErrValidationFailed, f.Name, f.Submit)
		}
	}
	return nil
}
