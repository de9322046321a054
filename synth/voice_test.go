package synth

import (
	"math"
	"math/cmplx"
	"sync"
	"testing"
	"time"

	"github.com/mjibson/go-dsp/fft"
)

func TestVoiceNoteOnFirstSamples(t *testing.T) {
	const volume = 0.5
	v := NewVoice(44100, WithVolume(volume))
	v.NoteOn(110)

	if got := v.NextSample(); got != 0 {
		t.Errorf("expected first sample 0, got %f", got)
	}
	want := volume * math.Sin(2*math.Pi*110/44100)
	if got := v.NextSample(); math.Abs(got-want) > tolerance {
		t.Errorf("expected second sample %f, got %f", want, got)
	}
}

func TestVoiceMonophonicReplace(t *testing.T) {
	v := NewVoice(44100)
	v.NoteOn(110)
	v.NoteOn(220)

	if st := v.State(); st.Freq != 220 {
		t.Fatalf("expected freq 220, got %f", st.Freq)
	}
	v.NextSample()
	want := math.Sin(2 * math.Pi * 220 / 44100)
	if got := v.NextSample(); math.Abs(got-want) > tolerance {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestVoiceNoteOffHoldsLastValue(t *testing.T) {
	const volume = 0.8
	v := NewVoice(8000, WithVolume(volume))
	v.NoteOn(1000)
	for i := 0; i < 3; i++ {
		v.NextSample()
	}
	v.NoteOff()

	st := v.State()
	if st.Freq != 0 {
		t.Fatalf("expected freq 0 after note off, got %f", st.Freq)
	}
	// three samples in, the phase sits at 3/8: sin(3π/4)
	want := volume * math.Sin(2*math.Pi*3/8)
	for i := 0; i < 50; i++ {
		if got := v.NextSample(); math.Abs(got-want) > tolerance {
			t.Fatalf("call %d: expected held value %f, got %f", i, want, got)
		}
	}
	if v.State().Phase != st.Phase {
		t.Errorf("expected phase frozen at %f, got %f", st.Phase, v.State().Phase)
	}
}

func TestVoiceSilentBeforeFirstNote(t *testing.T) {
	v := NewVoice(44100)
	for i := 0; i < 10; i++ {
		if got := v.NextSample(); got != 0 {
			t.Fatalf("call %d: expected 0, got %f", i, got)
		}
	}
}

func TestVoiceEndToEnd(t *testing.T) {
	for _, volume := range []float64{1, 0.25} {
		v := NewVoice(8000, WithVolume(volume))
		v.NoteOn(1000)
		for k := 0; k < 8; k++ {
			want := volume * math.Sin(2*math.Pi*float64(k)/8)
			if got := v.NextSample(); math.Abs(got-want) > tolerance {
				t.Errorf("volume %g, sample %d: expected %f, got %f", volume, k, want, got)
			}
		}
	}
}

func TestVoiceBoundedAmplitude(t *testing.T) {
	volumes := []float64{0, 0.1, 0.5, 1}
	freqs := []float64{0, 27.5, 110, 440, 1234.5, 22050, 30000}
	for _, volume := range volumes {
		for _, freq := range freqs {
			v := NewVoice(44100, WithVolume(volume))
			v.NoteOn(freq)
			for i := 0; i < 2000; i++ {
				s := v.NextSample()
				if s < -volume-tolerance || s > volume+tolerance {
					t.Fatalf("volume %g freq %g call %d: sample %f out of range", volume, freq, i, s)
				}
			}
		}
	}
}

func TestVoiceDefaultVolume(t *testing.T) {
	v := NewVoice(44100)
	if v.Volume() != DefaultVolume {
		t.Errorf("expected volume %f, got %f", DefaultVolume, v.Volume())
	}
}

type constOsc struct {
	value float64
	freq  float64
}

func (o *constOsc) NextSample() float64  { return o.value }
func (o *constOsc) SetFreq(freq float64) { o.freq = freq }

func TestVoiceWithOscillator(t *testing.T) {
	osc := &constOsc{value: 0.5}
	v := NewVoice(44100, WithOscillator(osc), WithVolume(0.5))
	v.NoteOn(330)
	if osc.freq != 330 {
		t.Errorf("expected oscillator freq 330, got %f", osc.freq)
	}
	if got := v.NextSample(); got != 0.25 {
		t.Errorf("expected 0.25, got %f", got)
	}
	v.NoteOff()
	if osc.freq != 0 {
		t.Errorf("expected oscillator freq 0, got %f", osc.freq)
	}
	if st := v.State(); st != (State{}) {
		t.Errorf("expected zero state for custom oscillator, got %+v", st)
	}
}

func TestVoicePitch(t *testing.T) {
	const (
		sampleRate = 8000
		n          = 1024
	)
	v := NewVoice(sampleRate)
	v.NoteOn(1000)

	x := make([]float64, n)
	for i := range x {
		x[i] = v.NextSample()
	}

	spectrum := fft.FFTReal(x)
	peak := 0
	for i := 1; i < n/2; i++ {
		if cmplx.Abs(spectrum[i]) > cmplx.Abs(spectrum[peak]) {
			peak = i
		}
	}
	want := 1000 * n / sampleRate
	if peak != want {
		t.Errorf("expected spectral peak at bin %d, got %d", want, peak)
	}
}

// TestVoiceConcurrentNotesAndSamples is meant to be run with -race.
func TestVoiceConcurrentNotesAndSamples(t *testing.T) {
	const volume = 0.7
	freqs := []float64{110, 220, 440.5, 880}
	allowed := map[float64]bool{0: true}
	for _, f := range freqs {
		allowed[f] = true
	}

	v := NewVoice(44100, WithVolume(volume))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 1)
	report := func(msg string) {
		select {
		case errs <- msg:
		default:
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%5 == 4 {
				v.NoteOff()
			} else {
				v.NoteOn(freqs[i%len(freqs)])
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			s := v.NextSample()
			if s < -volume-tolerance || s > volume+tolerance {
				report("sample out of range")
			}
			st := v.State()
			if st.Phase < 0 || st.Phase >= 1 {
				report("phase out of range")
			}
			if !allowed[st.Freq] {
				report("unexpected frequency")
			}
		}
	}()

	time.Sleep(100 * time.Millisecond)
	close(stop)
	wg.Wait()

	select {
	case msg := <-errs:
		t.Error(msg)
	default:
	}
}
