package pitch

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type Frequency float64

const (
	Hertz     Frequency = 1
	KiloHertz Frequency = 1000
)

// A4 is the reference pitch for note names.
const A4 Frequency = 440

// SemitoneRatio is the equal-tempered frequency ratio between adjacent keys.
var SemitoneRatio = math.Pow(2, 1.0/12)

var errParseFrequency = errors.New("failed to parse frequency")

var noteOffsets = map[byte]int{
	'C': -9, 'D': -7, 'E': -5, 'F': -4, 'G': -2, 'A': 0, 'B': 2,
}

// ParseFrequency accepts plain hertz ("110", "440.5"), kilohertz with a K
// suffix ("0.44K") or a note name with octave ("A2", "C#4", "Bb3").
func ParseFrequency(s string) (Frequency, error) {
	if len(s) == 0 {
		return 0, errParseFrequency
	}

	if _, ok := noteOffsets[upper(s[0])]; ok {
		return parseNote(s)
	}

	switch unit := s[len(s)-1]; unit {
	case 'K', 'k':
		s = s[:len(s)-1]
		if len(s) == 0 {
			return 0, errParseFrequency
		}
		f, err := parseHertz(s)
		if err != nil {
			return 0, err
		}
		return finite(Frequency(f) * KiloHertz)
	default:
		f, err := parseHertz(s)
		if err != nil {
			return 0, err
		}
		return Frequency(f), nil
	}
}

func parseHertz(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errParseFrequency
	}
	return f, nil
}

func parseNote(s string) (Frequency, error) {
	offset := noteOffsets[upper(s[0])]
	s = s[1:]
	if len(s) > 0 {
		switch s[0] {
		case '#':
			offset++
			s = s[1:]
		case 'b':
			offset--
			s = s[1:]
		}
	}
	if len(s) == 0 {
		return 0, errParseFrequency
	}
	octave, err := strconv.Atoi(s)
	if err != nil {
		return 0, errParseFrequency
	}

	return finite(Note(offset + (octave-4)*12))
}

func finite(f Frequency) (Frequency, error) {
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return 0, errParseFrequency
	}
	return f, nil
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Note returns the frequency n semitones away from A4.
func Note(n int) Frequency {
	return A4 * Frequency(math.Pow(SemitoneRatio, float64(n)))
}

// Step returns the frequency n semitones above f.
func (f Frequency) Step(n int) Frequency {
	return f * Frequency(math.Pow(SemitoneRatio, float64(n)))
}

func (f Frequency) Hz() float64 {
	return float64(f)
}

func (f Frequency) String() string {
	if f < KiloHertz {
		return trim(strconv.FormatFloat(float64(f), 'f', 2, 64))
	}

	return trim(strconv.FormatFloat(float64(f/KiloHertz), 'f', 3, 64)) + "K"
}

func trim(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
