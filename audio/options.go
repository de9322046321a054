package audio

import "time"

type streamOptions struct {
	outputDevice   *Device
	outputChannels int
	outputLatency  time.Duration
	sampleRate     int
	bufferSamples  int
	observer       Observer
}

func newStreamOptions(opts []Option) *streamOptions {
	var options streamOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	return &options
}

type Option interface {
	apply(opts *streamOptions)
}

type optionFunc func(opts *streamOptions)

func (f optionFunc) apply(opts *streamOptions) {
	f(opts)
}

func WithOutputDevice(device *Device) Option {
	return optionFunc(func(opts *streamOptions) {
		opts.outputDevice = device
	})
}

func WithOutputChannels(channels int) Option {
	return optionFunc(func(opts *streamOptions) {
		opts.outputChannels = channels
	})
}

func WithOutputLatency(latency time.Duration) Option {
	return optionFunc(func(opts *streamOptions) {
		opts.outputLatency = latency
	})
}

func WithSampleRate(sampleRate int) Option {
	return optionFunc(func(opts *streamOptions) {
		opts.sampleRate = sampleRate
	})
}

func WithBufferSamples(samples int) Option {
	return optionFunc(func(opts *streamOptions) {
		opts.bufferSamples = samples
	})
}

func WithObserver(observer Observer) Option {
	return optionFunc(func(opts *streamOptions) {
		opts.observer = observer
	})
}
