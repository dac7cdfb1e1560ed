// Package preset turns field definitions into engine configurations.
package preset

import (
	"errors"
	"fmt"
	"path/filepath"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/dshills/maskfield/internal/config"
	"github.com/dshills/maskfield/internal/field"
	"github.com/dshills/maskfield/internal/format/currency"
	"github.com/dshills/maskfield/internal/format/date"
	"github.com/dshills/maskfield/internal/mask"
	"github.com/dshills/maskfield/internal/script"
)

// Built-in patterns.
const (
	PhonePattern = "(###) ###-####"
	ZipPattern   = "#####-####"
	SSNPattern   = "###-##-####"
)

// PromptFill is the rune shown in unfilled placeholder positions.
const PromptFill = '_'

// ErrUnknownType indicates a definition type with no preset.
var ErrUnknownType = errors.New("unknown field type")

// Builder builds field configurations and owns the scripts they use.
type Builder struct {
	fs      config.FileSystem
	baseDir string
	scripts []*script.Script
}

// Option configures a Builder.
type Option func(*Builder)

// WithFileSystem sets where scripts are read from.
func WithFileSystem(fsys config.FileSystem) Option {
	return func(b *Builder) {
		b.fs = fsys
	}
}

// WithBaseDir resolves relative script paths against dir, normally the
// directory of the configuration file.
func WithBaseDir(dir string) Option {
	return func(b *Builder) {
		b.baseDir = dir
	}
}

// NewBuilder creates a builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{fs: config.OSFS{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the engine configuration for def.
func (b *Builder) Build(def config.FieldDef) (field.Config, error) {
	switch def.Type {
	case config.TypePhone:
		return b.pattern(def, PhonePattern)
	case config.TypeZip:
		return b.pattern(def, ZipPattern)
	case config.TypeSSN:
		return b.pattern(def, SSNPattern)
	case config.TypePattern, "":
		return b.pattern(def, def.Pattern)
	case config.TypeDate:
		cfg := date.Config(def.Name)
		if def.Prompt != "" {
			cfg.Prompt = def.Prompt
		}
		return cfg, nil
	case config.TypeCurrency:
		return b.currency(def)
	case config.TypeScript:
		return b.script(def)
	default:
		return field.Config{}, fmt.Errorf("%w: %q", ErrUnknownType, def.Type)
	}
}

// Close releases the scripts loaded by Build.
func (b *Builder) Close() {
	for _, s := range b.scripts {
		s.Close()
	}
	b.scripts = nil
}

func (b *Builder) pattern(def config.FieldDef, src string) (field.Config, error) {
	if def.Pattern != "" {
		src = def.Pattern
	}

	var opts []mask.Option
	if def.Letter != "" {
		opts = append(opts, mask.WithPlaceholder([]rune(def.Letter)[0], mask.KindLetter))
	}
	if def.Any != "" {
		opts = append(opts, mask.WithPlaceholder([]rune(def.Any)[0], mask.KindAny))
	}
	if def.Prompt != "" {
		opts = append(opts, mask.WithPromptRunes(def.Prompt))
	} else {
		opts = append(opts, mask.WithPromptRunes(string(PromptFill)))
	}

	p, err := mask.Parse(src, opts...)
	if err != nil {
		return field.Config{}, fmt.Errorf("field %q: %w", def.Name, err)
	}

	prompt := def.Prompt
	if prompt == "" {
		prompt = p.Prompt(PromptFill)
	}
	return field.Config{Name: def.Name, Formatter: p, Prompt: prompt}, nil
}

func (b *Builder) currency(def config.FieldDef) (field.Config, error) {
	locale := def.Locale
	if locale == "" {
		locale = config.DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return field.Config{}, fmt.Errorf("field %q: locale %q: %w", def.Name, locale, err)
	}

	var opts []currency.Option
	if def.Currency != "" {
		unit, err := xcurrency.ParseISO(def.Currency)
		if err != nil {
			return field.Config{}, fmt.Errorf("field %q: currency %q: %w", def.Name, def.Currency, err)
		}
		opts = append(opts, currency.WithUnit(unit))
	}
	return currency.New(tag, opts...).Config(def.Name), nil
}

func (b *Builder) script(def config.FieldDef) (field.Config, error) {
	cfg, err := b.pattern(def, def.Pattern)
	if err != nil {
		return field.Config{}, err
	}

	path := def.Script
	if !filepath.IsAbs(path) && b.baseDir != "" {
		path = filepath.Join(b.baseDir, path)
	}
	src, err := b.fs.ReadFile(path)
	if err != nil {
		return field.Config{}, fmt.Errorf("field %q: reading script: %w", def.Name, err)
	}

	s, err := script.Load(def.Script, string(src))
	if err != nil {
		return field.Config{}, fmt.Errorf("field %q: %w", def.Name, err)
	}
	b.scripts = append(b.scripts, s)
	return s.Apply(cfg), nil
}
