package pitch

import (
	"math"
	"testing"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want Frequency
	}{
		{"110", 110},
		{"440.5", 440.5},
		{"0.44K", 440},
		{"1k", 1000},
		{"A4", 440},
		{"A2", 110},
		{"a3", 220},
		{"C4", 261.6256},
		{"C#4", 277.1826},
		{"Db4", 277.1826},
		{"Bb3", 233.0819},
		{"B0", 30.8677},
	}
	for _, tt := range tests {
		got, err := ParseFrequency(tt.in)
		if err != nil {
			t.Errorf("ParseFrequency(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if math.Abs(float64(got-tt.want)) > 1e-3 {
			t.Errorf("ParseFrequency(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestParseFrequencyInvalid(t *testing.T) {
	for _, in := range []string{"", "K", "abc", "-5", "-1K", "A", "C#", "Hx", "G4.5", "12x", "Inf", "NaN", "A1100", "1e308K"} {
		if _, err := ParseFrequency(in); err == nil {
			t.Errorf("ParseFrequency(%q): expected error", in)
		}
	}
}

func TestStep(t *testing.T) {
	base := Frequency(110)
	if got := base.Step(12); math.Abs(got.Hz()-220) > 1e-9 {
		t.Errorf("expected one octave up to be 220, got %v", got)
	}
	if got := base.Step(0); got != base {
		t.Errorf("expected unchanged base, got %v", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   Frequency
		want string
	}{
		{110, "110"},
		{440.5, "440.5"},
		{123.456, "123.46"},
		{1000, "1K"},
		{1760, "1.76K"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
