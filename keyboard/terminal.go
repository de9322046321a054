package keyboard

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("stdin is not a terminal")

// Terminal holds a file descriptor in raw mode until Restore.
type Terminal struct {
	fd    int
	state *term.State
}

func MakeRaw(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	return &Terminal{
		fd:    fd,
		state: state,
	}, nil
}

func (t *Terminal) Restore() error {
	if t.state == nil {
		return nil
	}
	if err := term.Restore(t.fd, t.state); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	t.state = nil
	return nil
}
