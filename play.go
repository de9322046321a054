package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/kechako/gosynth/audio"
	"github.com/kechako/gosynth/keyboard"
	"github.com/kechako/gosynth/metrics"
	"github.com/kechako/gosynth/pitch"
	"github.com/kechako/gosynth/synth"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	backendPortAudio = "portaudio"
	backendOto       = "oto"
)

// maxFrequency bounds the highest key so the voice never sees an
// overflowing frequency.
const maxFrequency = 20 * pitch.KiloHertz

const monitorInterval = 100 * time.Millisecond

type outputStream interface {
	Start() error
	Stop() error
	Close() error
	Channels() int
	SampleRate() float64
	Underflows() uint64
	Err() error
}

type playConfig struct {
	device      string
	sampleRate  int
	channels    int
	buffer      int
	volume      float64
	keys        keyboard.KeyMap
	backend     string
	metricsAddr string
}

func parsePlayConfig(ctx *cli.Context) (*playConfig, error) {
	cfg := &playConfig{
		device:      ctx.String("device"),
		sampleRate:  ctx.Int("sample-rate"),
		channels:    ctx.Int("channels"),
		buffer:      ctx.Int("buffer"),
		volume:      ctx.Float64("volume"),
		backend:     ctx.String("backend"),
		metricsAddr: ctx.String("metrics-addr"),
	}

	if cfg.sampleRate < 0 {
		return nil, ArgumentError("invalid sample rate")
	}
	if cfg.channels < 0 {
		return nil, ArgumentError("invalid channels")
	}
	if cfg.buffer < 0 {
		return nil, ArgumentError("invalid buffer size")
	}
	if cfg.volume < 0 || cfg.volume > 1 {
		return nil, ArgumentError("volume must be between 0 and 1")
	}

	base, err := pitch.ParseFrequency(ctx.String("base"))
	if err != nil || base == 0 {
		return nil, ArgumentError("invalid base frequency")
	}
	cfg.keys = keyboard.DefaultKeyMap()
	cfg.keys.Base = base
	if top := base.Step(len(cfg.keys.Keys) - 1); top > maxFrequency {
		return nil, ArgumentError(fmt.Sprintf("base frequency too high: top key would be %sHz, limit is %sHz", top, maxFrequency))
	}

	switch cfg.backend {
	case backendPortAudio, backendOto:
	default:
		return nil, ArgumentError(fmt.Sprintf("unknown backend %q", cfg.backend))
	}
	if cfg.backend == backendOto && cfg.device != "" {
		return nil, ArgumentError("device selection requires the portaudio backend")
	}

	return cfg, nil
}

func playCommand(ctx *cli.Context) error {
	if ctx.NArg() != 0 {
		return ArgumentError("invalid argument")
	}

	cfg, err := parsePlayConfig(ctx)
	if err != nil {
		return err
	}

	logger, err := newLogger(ctx.Bool("debug"), ctx.String("log-file"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	stream, voice, err := openOutput(cfg, logger)
	if err != nil {
		return err
	}
	defer stream.Close()

	printKeyMap(os.Stdout, cfg.keys)

	term, err := keyboard.MakeRaw(os.Stdin)
	if err != nil {
		return err
	}
	defer term.Restore()

	if err := stream.Start(); err != nil {
		return err
	}
	defer func() {
		if err := stream.Stop(); err != nil {
			logger.Warn("failed to stop audio stream", zap.Error(err))
		}
	}()

	logger.Info("synth started",
		zap.String("backend", cfg.backend),
		zap.Float64("sampleRate", stream.SampleRate()),
		zap.Int("channels", stream.Channels()),
		zap.Float64("volume", voice.Volume()),
		zap.Stringer("base", cfg.keys.Base),
	)

	runCtx, cancel := context.WithCancel(ctx.Context)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	if cfg.metricsAddr != "" {
		serveMetrics(gctx, g, cfg.metricsAddr, logger)
	}
	g.Go(func() error {
		monitorStream(gctx, stream, monitorInterval, logger)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		err := keyboard.NewPoller(os.Stdin, cfg.keys).Run(gctx, func(ev keyboard.Event) {
			applyEvent(voice, ev, logger)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	err = g.Wait()
	logger.Info("synth stopped", zap.Uint64("underflows", stream.Underflows()))
	return err
}

func openOutput(cfg *playConfig, logger *zap.Logger) (outputStream, *synth.Voice, error) {
	observer := &metrics.AudioObserver{}

	opts := []audio.Option{
		audio.WithOutputChannels(cfg.channels),
		audio.WithBufferSamples(cfg.buffer),
		audio.WithObserver(observer),
	}

	if cfg.backend == backendOto {
		sampleRate := cfg.sampleRate
		if sampleRate == 0 {
			sampleRate = audio.DefaultOtoSampleRate
		}
		voice := synth.NewVoice(float64(sampleRate), synth.WithVolume(cfg.volume))
		stream, err := audio.OpenOtoOutput(voice, append(opts, audio.WithSampleRate(sampleRate))...)
		if err != nil {
			return nil, nil, err
		}
		return stream, voice, nil
	}

	var device *audio.Device
	if cfg.device == "" {
		var err error
		device, err = audio.GetDefaultOutputDevice()
		if err != nil {
			return nil, nil, err
		}
	} else {
		var err error
		device, err = audio.GetOutputDevice(cfg.device)
		if err != nil {
			return nil, nil, err
		}
	}
	sampleRate := cfg.sampleRate
	if sampleRate == 0 {
		sampleRate = device.DefaultSampleRate()
	}

	voice := synth.NewVoice(float64(sampleRate), synth.WithVolume(cfg.volume))
	stream, err := audio.OpenOutput(voice, append(opts,
		audio.WithOutputDevice(device),
		audio.WithSampleRate(sampleRate),
	)...)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("audio device opened",
		zap.String("device", device.Name()),
		zap.String("hostAPI", device.HostAPI()),
		zap.Duration("latency", stream.Latency()),
	)
	return stream, voice, nil
}

// monitorStream reports underflows and asynchronous stream errors from
// outside the audio thread. Underflow warnings are logged at most once a
// second and carry the count since the previous warning.
func monitorStream(ctx context.Context, stream outputStream, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	underflowLog := &rate.Sometimes{Interval: time.Second}
	var reported uint64
	var lastErr string
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if n := stream.Underflows(); n > reported {
			underflowLog.Do(func() {
				logger.Warn("audio output underflow",
					zap.Uint64("count", n-reported),
					zap.Uint64("total", n),
				)
				reported = n
			})
		}

		if err := stream.Err(); err != nil && err.Error() != lastErr {
			logger.Warn("audio stream error", zap.Error(err))
			lastErr = err.Error()
		}
	}
}

func applyEvent(voice *synth.Voice, ev keyboard.Event, logger *zap.Logger) {
	if ev.On {
		voice.NoteOn(ev.Freq)
		metrics.NoteOn(ev.Freq)
		logger.Debug("note on", zap.Float64("freq", ev.Freq))
		return
	}
	voice.NoteOff()
	metrics.NoteOff()
	logger.Debug("note off")
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve metrics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func printKeyMap(w io.Writer, keys keyboard.KeyMap) {
	key := color.New(color.FgCyan, color.Bold)
	for _, k := range keys.Notes() {
		key.Fprintf(w, "%3s", string(k.Rune))
		fmt.Fprintf(w, " %sHz\n", k.Freq)
	}
	fmt.Fprintln(w, "any other key stops the note, Ctrl-C quits")
}
