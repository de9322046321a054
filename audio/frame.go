package audio

import (
	"encoding/binary"
	"math"
)

const bytesPerSample = 4

// frameReader renders float32 little-endian frames for pull-based players.
type frameReader struct {
	src      Source
	channels int
	observer Observer
	buf      []float32
}

func newFrameReader(src Source, channels int, observer Observer) *frameReader {
	if channels < 1 {
		channels = 1
	}
	return &frameReader{
		src:      src,
		channels: channels,
		observer: observer,
	}
}

func (r *frameReader) Read(p []byte) (int, error) {
	frames := len(p) / (bytesPerSample * r.channels)
	n := frames * r.channels
	if n == 0 {
		return 0, nil
	}

	if cap(r.buf) < n {
		r.buf = make([]float32, n)
	}
	buf := r.buf[:n]

	Render(buf, r.channels, r.src)
	for i, s := range buf {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(s))
	}

	if r.observer != nil {
		r.observer.Buffer(frames)
	}

	return n * bytesPerSample, nil
}
