// Package keyboard turns terminal key presses into note events.
package keyboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	keyInterrupt = 0x03 // Ctrl-C
	keyEOT       = 0x04 // Ctrl-D
)

// Event is a note on when On is set, otherwise a note off with Freq 0.
type Event struct {
	Freq float64
	On   bool
}

// Poller reads keys from r. Terminals in raw mode report presses only, so
// every key that is not in the map is treated as a release.
//
// Reads happen on a separate goroutine that cannot be interrupted. After Run
// returns it stays blocked on r until one more rune arrives, which it then
// drops. For stdin this may swallow one key typed after the terminal is
// restored; callers are expected to exit shortly after Run returns.
type Poller struct {
	r    io.Reader
	keys KeyMap
}

func NewPoller(r io.Reader, keys KeyMap) *Poller {
	return &Poller{
		r:    r,
		keys: keys,
	}
}

// Run calls handle for every key until ctx is done, the reader is exhausted
// or Ctrl-C / Ctrl-D is pressed. Only ctx cancellation and read failures
// are returned as errors.
func (p *Poller) Run(ctx context.Context, handle func(Event)) error {
	keys := make(chan rune)
	errc := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go p.read(keys, errc, done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read key: %w", err)
		case r := <-keys:
			if r == keyInterrupt || r == keyEOT {
				return nil
			}
			handle(p.event(r))
		}
	}
}

func (p *Poller) event(r rune) Event {
	if freq, ok := p.keys.Freq(r); ok {
		return Event{Freq: freq.Hz(), On: true}
	}
	return Event{}
}

func (p *Poller) read(keys chan<- rune, errc chan<- error, done <-chan struct{}) {
	br := bufio.NewReader(p.r)
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			errc <- err
			return
		}
		select {
		case keys <- r:
		case <-done:
			return
		}
	}
}
