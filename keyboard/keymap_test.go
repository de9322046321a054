package keyboard

import (
	"math"
	"testing"
)

func TestDefaultKeyMapFreq(t *testing.T) {
	m := DefaultKeyMap()
	ratio := math.Pow(2, 1.0/12)

	for i, k := range DefaultKeys {
		got, ok := m.Freq(k)
		if !ok {
			t.Fatalf("key %q: expected mapping", k)
		}
		want := 110 * math.Pow(ratio, float64(i))
		if math.Abs(got.Hz()-want) > 1e-9 {
			t.Errorf("key %q: expected %f, got %f", k, want, got.Hz())
		}
	}
}

func TestKeyMapAnchors(t *testing.T) {
	m := DefaultKeyMap()
	tests := []struct {
		key  rune
		want float64
	}{
		{'z', 110},
		{',', 220},
		{'\'', 220 * math.Pow(2, 4.0/12)},
	}
	for _, tt := range tests {
		got, _ := m.Freq(tt.key)
		if math.Abs(got.Hz()-tt.want) > 1e-9 {
			t.Errorf("key %q: expected %f, got %f", tt.key, tt.want, got.Hz())
		}
	}
}

func TestKeyMapUnmapped(t *testing.T) {
	m := DefaultKeyMap()
	for _, k := range []rune{'a', 'q', 'Z', ' ', '\r', 0x1b} {
		if _, ok := m.Freq(k); ok {
			t.Errorf("key %q: expected no mapping", k)
		}
	}
}

func TestKeyMapNotes(t *testing.T) {
	m := KeyMap{Base: 220, Keys: []rune{'a', 'b'}}
	notes := m.Notes()
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Rune != 'a' || notes[0].Freq != 220 {
		t.Errorf("unexpected first note %+v", notes[0])
	}
	if notes[1].Rune != 'b' || math.Abs(notes[1].Freq.Hz()-220*math.Pow(2, 1.0/12)) > 1e-9 {
		t.Errorf("unexpected second note %+v", notes[1])
	}
}
