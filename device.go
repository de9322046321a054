package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kechako/gosynth/audio"
	cli "github.com/urfave/cli/v2"
)

func deviceListCommand(ctx *cli.Context) error {
	if ctx.NArg() != 0 {
		return ArgumentError("invalid argument")
	}

	devices, err := audio.GetOutputDevices()
	if err != nil {
		return err
	}
	def, _ := audio.GetDefaultOutputDevice()

	printDevices(os.Stdout, devices, def)

	return nil
}

func printDevices(w io.Writer, devices []*audio.Device, def *audio.Device) {
	green := color.New(color.FgGreen)
	for _, device := range devices {
		line := fmt.Sprintf("%s [channels: %d, sample rate: %d]",
			device.Name(),
			device.MaxOutputChannels(),
			device.DefaultSampleRate(),
		)
		if audio.SameDevice(device, def) {
			green.Fprintln(w, "* "+line)
			continue
		}
		fmt.Fprintln(w, "  "+line)
	}
}

func deviceShowCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return ArgumentError("device name is not specified")
	}

	name := ctx.Args().Get(0)
	device, err := audio.GetOutputDevice(name)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Println(device.Name())
	fmt.Printf("Host API            : %s\n", device.HostAPI())
	fmt.Printf("Channels            : %d\n", device.MaxOutputChannels())
	fmt.Printf("Default sample rate : %d\n", device.DefaultSampleRate())
	fmt.Printf("Default low latency : %s\n", device.DefaultLowOutputLatency())
	fmt.Printf("Default high latency: %s\n", device.DefaultHighOutputLatency())

	return nil
}
