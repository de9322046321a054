// Package synth implements the single-voice sample generator.
package synth

import "sync"

const DefaultVolume = 1.0

// Voice is the one playable note. It is shared by the audio callback and
// the input loop; every method locks for the duration of that call only.
//
// Note off sets the oscillator frequency to 0. The phase freezes, so the
// output holds volume·sin(2π·phase) from that moment rather than dropping
// to zero.
type Voice struct {
	mu     sync.Mutex
	osc    Oscillator
	volume float64
}

type voiceOptions struct {
	osc    Oscillator
	volume float64
}

type Option interface {
	apply(opts *voiceOptions)
}

type optionFunc func(opts *voiceOptions)

func (f optionFunc) apply(opts *voiceOptions) {
	f(opts)
}

func WithVolume(volume float64) Option {
	return optionFunc(func(opts *voiceOptions) {
		opts.volume = volume
	})
}

// WithOscillator replaces the default sine oscillator.
func WithOscillator(osc Oscillator) Option {
	return optionFunc(func(opts *voiceOptions) {
		opts.osc = osc
	})
}

func NewVoice(sampleRate float64, opts ...Option) *Voice {
	options := voiceOptions{
		volume: DefaultVolume,
	}
	for _, opt := range opts {
		opt.apply(&options)
	}
	if options.osc == nil {
		options.osc = NewSineOsc(sampleRate)
	}

	return &Voice{
		osc:    options.osc,
		volume: options.volume,
	}
}

func (v *Voice) NextSample() float64 {
	v.mu.Lock()
	s := v.osc.NextSample() * v.volume
	v.mu.Unlock()
	return s
}

// NoteOn replaces whatever note is sounding. There is no glide.
func (v *Voice) NoteOn(freq float64) {
	v.mu.Lock()
	v.osc.SetFreq(freq)
	v.mu.Unlock()
}

func (v *Voice) NoteOff() {
	v.mu.Lock()
	v.osc.SetFreq(0)
	v.mu.Unlock()
}

func (v *Voice) Volume() float64 {
	return v.volume
}

type State struct {
	Phase float64
	Freq  float64
}

type phaseReporter interface {
	Phase() float64
	Freq() float64
}

// State returns the oscillator phase and frequency as seen between two
// operations. Oscillators that do not report them yield a zero State.
func (v *Voice) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	r, ok := v.osc.(phaseReporter)
	if !ok {
		return State{}
	}
	return State{Phase: r.Phase(), Freq: r.Freq()}
}
