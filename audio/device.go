package audio

import (
	"errors"
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"
)

type Device struct {
	info *portaudio.DeviceInfo
}

func (d *Device) Name() string                            { return d.info.Name }
func (d *Device) MaxOutputChannels() int                  { return d.info.MaxOutputChannels }
func (d *Device) DefaultLowOutputLatency() time.Duration  { return d.info.DefaultLowOutputLatency }
func (d *Device) DefaultHighOutputLatency() time.Duration { return d.info.DefaultHighOutputLatency }
func (d *Device) DefaultSampleRate() int                  { return int(d.info.DefaultSampleRate) }

func (d *Device) HostAPI() string {
	if d.info.HostApi == nil {
		return ""
	}
	return d.info.HostApi.Name
}

func (d *Device) IsOutput() bool {
	return d.info.MaxOutputChannels > 0
}

// GetOutputDevices returns devices that can play audio.
func GetOutputDevices() ([]*Device, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}

	var devices []*Device
	for _, info := range infos {
		d := &Device{info: info}
		if !d.IsOutput() {
			continue
		}
		devices = append(devices, d)
	}

	return devices, nil
}

func GetDefaultOutputDevice() (*Device, error) {
	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, fmt.Errorf("failed to get default output device: %w", err)
	}

	return &Device{info: info}, nil
}

var ErrDeviceNotFound = errors.New("device not found")

func GetOutputDevice(name string) (*Device, error) {
	devices, err := GetOutputDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	for _, device := range devices {
		if device.Name() == name {
			return device, nil
		}
	}

	return nil, ErrDeviceNotFound
}

// SameDevice reports whether a and b refer to the same portaudio device.
func SameDevice(a, b *Device) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Name() == b.Name() && a.HostAPI() == b.HostAPI()
}
