package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/maskfield/internal/config"
	"github.com/dshills/maskfield/internal/logging"
)

func TestFormatValue(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		arg  string
		want []string
	}{
		{"phone=555-123-4567", []string{"display: (555) 123-4567", "raw:     5551234567", "foreign: 5551234567"}},
		{"date=2024-03-07", []string{"display: 03/07/2024", "raw:     03072024", "foreign: 2024-03-07"}},
		{"birthday=3/7/2024", []string{"display: 03/07/2024", "foreign: 2024-03-07"}},
		{"date=0307", []string{"display: 03/07/YYYY", "raw:     0307", "foreign: ("}},
		{"ssn=123456789", []string{"display: 123-45-6789"}},
		{"zip=12345", []string{"display: 12345-____", "raw:     12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			var buf bytes.Buffer
			if err := formatValue(&buf, cfg, tt.arg, logging.Nop()); err != nil {
				t.Fatalf("formatValue failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q missing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestFormatValueErrors(t *testing.T) {
	cfg := config.Default()

	if err := formatValue(&bytes.Buffer{}, cfg, "nonsense", logging.Nop()); !errors.Is(err, errFormatSyntax) {
		t.Errorf("missing '=' error = %v", err)
	}
	if err := formatValue(&bytes.Buffer{}, cfg, "colour=red", logging.Nop()); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("unknown type error = %v", err)
	}
	if err := formatValue(&bytes.Buffer{}, cfg, "pattern=123", logging.Nop()); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("pattern without mask error = %v", err)
	}
}
