package audio

import (
	"errors"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	DefaultOtoSampleRate = 48000
	DefaultOtoChannels   = 2
)

// OtoStream plays through ebitengine/oto. Only one can exist per process.
type OtoStream struct {
	ctx        *oto.Context
	player     *oto.Player
	channels   int
	sampleRate float64
}

// OpenOtoOutput opens the system default output through oto. Device
// selection is not supported; WithOutputDevice is ignored.
func OpenOtoOutput(src Source, opts ...Option) (*OtoStream, error) {
	options := newStreamOptions(opts)

	sampleRate := options.sampleRate
	if sampleRate == 0 {
		sampleRate = DefaultOtoSampleRate
	}
	channels := options.outputChannels
	if channels <= 0 {
		channels = DefaultOtoChannels
	}
	if channels > 2 {
		return nil, errors.New("oto supports at most 2 output channels")
	}

	var bufferSize time.Duration
	if options.bufferSamples > 0 {
		bufferSize = time.Duration(options.bufferSamples) * time.Second / time.Duration(sampleRate)
	} else if options.outputLatency > 0 {
		bufferSize = options.outputLatency
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio context: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(newFrameReader(src, channels, options.observer))

	return &OtoStream{
		ctx:        ctx,
		player:     player,
		channels:   channels,
		sampleRate: float64(sampleRate),
	}, nil
}

func (s *OtoStream) Start() error {
	s.player.Play()
	return nil
}

func (s *OtoStream) Stop() error {
	s.player.Pause()
	if err := s.player.Err(); err != nil {
		return fmt.Errorf("failed to stop audio stream: %w", err)
	}
	return nil
}

func (s *OtoStream) Close() error {
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("failed to close audio stream: %w", err)
	}
	return nil
}

func (s *OtoStream) Channels() int       { return s.channels }
func (s *OtoStream) SampleRate() float64 { return s.sampleRate }

// Underflows is always 0; oto does not report late buffers.
func (s *OtoStream) Underflows() uint64 { return 0 }

// Err reports an asynchronous playback error, if any.
func (s *OtoStream) Err() error {
	return s.player.Err()
}
