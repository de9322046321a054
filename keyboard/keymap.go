package keyboard

import "github.com/kechako/gosynth/pitch"

// DefaultBase is A2.
const DefaultBase pitch.Frequency = 110

// DefaultKeys lays out a chromatic scale along the bottom two rows of a
// QWERTY keyboard, starting at z.
var DefaultKeys = []rune{
	'z', 's', 'x', 'c', 'f', 'v', 'g', 'b', 'n', 'j', 'm', 'k', ',', 'l', '.', '/', '\'',
}

// KeyMap assigns Keys[i] the frequency Base·2^(i/12).
type KeyMap struct {
	Base pitch.Frequency
	Keys []rune
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Base: DefaultBase,
		Keys: DefaultKeys,
	}
}

func (m KeyMap) Freq(r rune) (pitch.Frequency, bool) {
	for i, k := range m.Keys {
		if k == r {
			return m.Base.Step(i), true
		}
	}
	return 0, false
}

type Key struct {
	Rune rune
	Freq pitch.Frequency
}

func (m KeyMap) Notes() []Key {
	keys := make([]Key, len(m.Keys))
	for i, k := range m.Keys {
		keys[i] = Key{Rune: k, Freq: m.Base.Step(i)}
	}
	return keys
}
