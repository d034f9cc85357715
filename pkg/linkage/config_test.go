package linkage

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ModuleConfig)
		wantField string // empty means valid
	}{
		{
			name:   "default config is valid",
			mutate: func(c *ModuleConfig) {},
		},
		{
			name:      "too few modules",
			mutate:    func(c *ModuleConfig) { c.ModuleCount = 2 },
			wantField: "ModuleCount",
		},
		{
			name:      "pivot at zero",
			mutate:    func(c *ModuleConfig) { c.PivotPct = 0 },
			wantField: "PivotPct",
		},
		{
			name:      "pivot at one hundred",
			mutate:    func(c *ModuleConfig) { c.PivotPct = 100 },
			wantField: "PivotPct",
		},
		{
			name:      "offsets consume the whole bar",
			mutate:    func(c *ModuleConfig) { c.EndOffset = 4 },
			wantField: "HorizontalLength",
		},
		{
			name:      "vertical length below stack span",
			mutate:    func(c *ModuleConfig) { c.VerticalLength = 0.2 },
			wantField: "VerticalLength",
		},
		{
			name:      "single horizontal lamination",
			mutate:    func(c *ModuleConfig) { c.HStackCount = 1 },
			wantField: "HStackCount",
		},
		{
			name:      "single vertical lamination",
			mutate:    func(c *ModuleConfig) { c.VStackCount = 1 },
			wantField: "VStackCount",
		},
		{
			name:      "zero beam width",
			mutate:    func(c *ModuleConfig) { c.BeamWidth = 0 },
			wantField: "BeamWidth",
		},
		{
			name:      "negative stack gap",
			mutate:    func(c *ModuleConfig) { c.StackGap = -0.01 },
			wantField: "StackGap",
		},
		{
			name:      "pivot angle at 45 degrees",
			mutate:    func(c *ModuleConfig) { c.PivotAngle = math.Pi / 4 },
			wantField: "PivotAngle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("Validate() flagged field %q, want %q", cerr.Field, tt.wantField)
			}
		})
	}
}

func TestActiveLength(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.ActiveLength(), 7.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("ActiveLength() = %v, want %v", got, want)
	}
}

func TestStackSpan(t *testing.T) {
	cfg := DefaultConfig()
	// 2 laminations of 0.125 with one 0.02 gap.
	if got, want := cfg.StackSpan(), 0.27; math.Abs(got-want) > 1e-12 {
		t.Errorf("StackSpan() = %v, want %v", got, want)
	}
}
