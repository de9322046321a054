package audio

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"
)

func Initialize() error {
	err := portaudio.Initialize()
	if err != nil {
		return fmt.Errorf("failed to initialize audio: %w", err)
	}
	return nil
}

func Terminate() error {
	err := portaudio.Terminate()
	if err != nil {
		return fmt.Errorf("failed to terminate audio: %w", err)
	}

	return nil
}

// Source is pulled once per output frame.
type Source interface {
	NextSample() float64
}

// Observer is notified from the audio thread. Implementations must not block.
type Observer interface {
	Buffer(frames int)
	Underflow()
}

// Render fills out with one sample per frame, copied to every interleaved
// channel. A trailing partial frame is left untouched.
func Render(out []float32, channels int, src Source) int {
	if channels < 1 {
		channels = 1
	}
	frames := len(out) / channels
	for i := 0; i < frames*channels; i += channels {
		s := float32(src.NextSample())
		for c := 0; c < channels; c++ {
			out[i+c] = s
		}
	}
	return frames
}

type Stream struct {
	stream     *portaudio.Stream
	src        Source
	observer   Observer
	channels   int
	sampleRate float64
	underflows atomic.Uint64
}

// OpenOutput opens a callback stream that pulls every frame from src on the
// portaudio thread.
func OpenOutput(src Source, opts ...Option) (*Stream, error) {
	options := newStreamOptions(opts)

	device := options.outputDevice
	if device == nil {
		var err error
		device, err = GetDefaultOutputDevice()
		if err != nil {
			return nil, err
		}
	}
	info := device.info

	if info.MaxOutputChannels == 0 {
		return nil, errors.New("output device has no output channels")
	}
	channels := options.outputChannels
	if channels <= 0 || channels > info.MaxOutputChannels {
		channels = info.MaxOutputChannels
	}

	if info.DefaultLowOutputLatency == 0 {
		return nil, errors.New("output device has no output latency")
	}
	latency := options.outputLatency
	if latency <= 0 || latency > info.DefaultLowOutputLatency {
		latency = info.DefaultLowOutputLatency
	}

	sampleRate := float64(options.sampleRate)
	if sampleRate == 0 {
		sampleRate = info.DefaultSampleRate
	}

	bufferSamples := options.bufferSamples
	if bufferSamples == 0 {
		bufferSamples = int(sampleRate * latency.Seconds())
	}

	s := &Stream{
		src:        src,
		observer:   options.observer,
		channels:   channels,
		sampleRate: sampleRate,
	}

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   info,
			Channels: channels,
			Latency:  latency,
		},
		SampleRate:      sampleRate,
		FramesPerBuffer: bufferSamples,
	}, s.process)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio stream: %w", err)
	}
	s.stream = stream

	return s, nil
}

func (s *Stream) process(out []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
	if flags&portaudio.OutputUnderflow != 0 {
		s.underflows.Add(1)
		if s.observer != nil {
			s.observer.Underflow()
		}
	}

	frames := Render(out, s.channels, s.src)
	if s.observer != nil {
		s.observer.Buffer(frames)
	}
}

func (s *Stream) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("failed to close audio stream: %w", err)
	}
	return nil
}

func (s *Stream) Start() error {
	err := s.stream.Start()
	if err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}
	return nil
}

func (s *Stream) Stop() error {
	err := s.stream.Stop()
	if err != nil {
		return fmt.Errorf("failed to stop audio stream: %w", err)
	}
	return nil
}

func (s *Stream) Channels() int          { return s.channels }
func (s *Stream) SampleRate() float64    { return s.sampleRate }
func (s *Stream) Underflows() uint64     { return s.underflows.Load() }
func (s *Stream) Latency() time.Duration { return s.stream.Info().OutputLatency }

// Err always returns nil. portaudio reports per-buffer problems through
// the callback flags, which are counted by Underflows.
func (s *Stream) Err() error { return nil }
