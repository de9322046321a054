package synth

import "math"

// Oscillator produces one waveform sample per call at a settable frequency.
type Oscillator interface {
	NextSample() float64
	SetFreq(freq float64)
}

// SineOsc is a sine oscillator driven by a phase accumulator in [0, 1).
type SineOsc struct {
	phase      float64
	freq       float64
	sampleRate float64
}

// NewSineOsc returns an oscillator at phase 0 and 0 Hz.
// sampleRate must be positive for the lifetime of the oscillator.
func NewSineOsc(sampleRate float64) *SineOsc {
	return &SineOsc{
		sampleRate: sampleRate,
	}
}

// NextSample returns sin(2π·phase) for the current phase, then advances it.
func (o *SineOsc) NextSample() float64 {
	out := math.Sin(2 * math.Pi * o.phase)
	o.phase = wrapPhase(o.phase + o.freq/o.sampleRate)
	return out
}

func (o *SineOsc) SetFreq(freq float64) {
	o.freq = freq
}

func (o *SineOsc) Freq() float64       { return o.freq }
func (o *SineOsc) Phase() float64      { return o.phase }
func (o *SineOsc) SampleRate() float64 { return o.sampleRate }

func wrapPhase(p float64) float64 {
	p = math.Mod(p, 1)
	if p < 0 {
		p += 1
	}
	// p+1 rounds to 1 for tiny negative p
	if p >= 1 {
		p = 0
	}
	return p
}
