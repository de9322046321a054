package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kechako/gosynth/audio"
	cli "github.com/urfave/cli/v2"
)

type ArgumentError string

func (err ArgumentError) Error() string {
	return string(err)
}

func run(ctx context.Context) (err error) {
	app := &cli.App{
		Name:  "gosynth",
		Usage: "play a sine wave from the computer keyboard",
		Commands: []*cli.Command{
			{
				Name:         "play",
				Usage:        "play notes from the keyboard",
				Action:       playCommand,
				Flags:        playFlags(),
				OnUsageError: HandleUsageError,
			},
			{
				Name:  "device",
				Usage: "show audio device information",
				Subcommands: []*cli.Command{
					{
						Name:         "list",
						Usage:        "list audio output devices",
						Action:       deviceListCommand,
						OnUsageError: HandleUsageError,
					},
					{
						Name:         "show",
						Usage:        "show details of audio output device",
						Action:       deviceShowCommand,
						OnUsageError: HandleUsageError,
					},
				},
				OnUsageError: HandleUsageError,
			},
		},
		Before: func(ctx *cli.Context) error {
			if err := audio.Initialize(); err != nil {
				return err
			}
			return nil
		},
		After: func(ctx *cli.Context) error {
			if err := audio.Terminate(); err != nil {
				return err
			}
			return nil
		},
		OnUsageError: HandleUsageError,
		ExitErrHandler: func(ctx *cli.Context, err error) {
			cli.HandleExitCoder(HandleError(ctx, err))
		},
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return app.RunContext(ctx, os.Args)
}

func playFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Usage:   "audio device name to play on",
			EnvVars: []string{"GOSYNTH_DEVICE"},
		},
		&cli.IntFlag{
			Name:        "sample-rate",
			Aliases:     []string{"r"},
			Usage:       "audio sample rate",
			DefaultText: "default sample rate of audio device",
			EnvVars:     []string{"GOSYNTH_SAMPLE_RATE"},
		},
		&cli.IntFlag{
			Name:        "channels",
			Aliases:     []string{"c"},
			Usage:       "output channels, the voice is copied to each",
			DefaultText: "all channels of audio device",
			EnvVars:     []string{"GOSYNTH_CHANNELS"},
		},
		&cli.IntFlag{
			Name:        "buffer",
			Aliases:     []string{"b"},
			Usage:       "frames per audio buffer",
			DefaultText: "derived from device latency",
			EnvVars:     []string{"GOSYNTH_BUFFER"},
		},
		&cli.Float64Flag{
			Name:    "volume",
			Usage:   "output volume between 0 and 1",
			Value:   1.0,
			EnvVars: []string{"GOSYNTH_VOLUME"},
		},
		&cli.StringFlag{
			Name:    "base",
			Usage:   "pitch of the lowest key (e.g. A2, 110, 0.22K)",
			Value:   "A2",
			EnvVars: []string{"GOSYNTH_BASE"},
		},
		&cli.StringFlag{
			Name:    "backend",
			Usage:   "audio backend: portaudio or oto",
			Value:   backendPortAudio,
			EnvVars: []string{"GOSYNTH_BACKEND"},
		},
		&cli.StringFlag{
			Name:    "metrics-addr",
			Usage:   "serve prometheus metrics on this address (e.g. :9090)",
			EnvVars: []string{"GOSYNTH_METRICS_ADDR"},
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "write logs to this file instead of stderr",
			EnvVars: []string{"GOSYNTH_LOG_FILE"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "enable debug logging",
			EnvVars: []string{"GOSYNTH_DEBUG"},
		},
	}
}

func HandleUsageError(ctx *cli.Context, err error, isSubcommand bool) error {
	return cli.Exit(err, 2)
}

func HandleError(ctx *cli.Context, err error) error {
	if err == nil {
		return nil
	}

	var argErr ArgumentError
	if errors.As(err, &argErr) {
		return cli.Exit(argErr, 2)
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		return exitCoder
	}

	return cli.Exit(err, 1)
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
