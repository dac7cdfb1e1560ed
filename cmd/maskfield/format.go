package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/maskfield/internal/config"
	"github.com/dshills/maskfield/internal/field"
	"github.com/dshills/maskfield/internal/logging"
	"github.com/dshills/maskfield/internal/preset"
)

var errFormatSyntax = errors.New("format argument must look like type=value")

// formatValue initializes a single field from the value in arg and prints
// its display, raw and foreign forms. The key of arg names a field of cfg or
// a built-in type.
func formatValue(w io.Writer, cfg *config.Config, arg string, logger *logging.Logger, opts ...preset.Option) error {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: %q", errFormatSyntax, arg)
	}

	def, err := lookupDef(cfg, key)
	if err != nil {
		return err
	}

	b := preset.NewBuilder(opts...)
	defer b.Close()

	fc, err := b.Build(def)
	if err != nil {
		return err
	}
	f, err := field.New(fc, field.WithLogger(logger))
	if err != nil {
		return err
	}
	f.Initialize(value)

	fmt.Fprintf(w, "display: %s\n", f.Display())
	fmt.Fprintf(w, "raw:     %s\n", f.Raw())
	foreign, err := f.Foreign()
	if err != nil {
		fmt.Fprintf(w, "foreign: (%v)\n", err)
		return nil
	}
	fmt.Fprintf(w, "foreign: %s\n", foreign)
	return nil
}

func lookupDef(cfg *config.Config, key string) (config.FieldDef, error) {
	for _, d := range cfg.Fields {
		if d.Name == key {
			return d, nil
		}
	}

	def := config.FieldDef{
		Name:   key,
		Type:   strings.ToLower(key),
		Locale: cfg.Locale,
		Submit: config.SubmitRaw,
	}
	single := &config.Config{Locale: cfg.Locale, Fields: []config.FieldDef{def}}
	if err := single.Validate(); err != nil {
		return config.FieldDef{}, err
	}
	return def, nil
}
