// Package terminal switches the controlling terminal in and out of raw mode
// and reports its size.
package terminal

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when a file descriptor is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// State is the terminal configuration captured before raw mode was enabled.
type State struct {
	fd      int
	termios unix.Termios
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// EnableRawMode puts fd into raw mode and returns the previous state.
//
// Input is delivered byte by byte without echo, signals, or CR translation,
// and output post-processing is off. Reads return after at most a tenth of a
// second even when no byte arrived.
func EnableRawMode(fd int) (*State, error) {
	if !IsTerminal(fd) {
		return nil, fmt.Errorf("enable raw mode: %w", ErrNotTerminal)
	}

	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("get termios: %w", err)
	}

	raw := makeRaw(*orig)
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, fmt.Errorf("set termios: %w", err)
	}

	return &State{fd: fd, termios: *orig}, nil
}

// makeRaw returns t adjusted for raw input with a decisecond read timeout.
func makeRaw(t unix.Termios) unix.Termios {
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 1
	return t
}

// Restore puts the terminal back the way EnableRawMode found it. It is safe
// to call on a nil State.
func (s *State) Restore() error {
	if s == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, &s.termios); err != nil {
		return fmt.Errorf("restore termios: %w", err)
	}
	return nil
}

// Size returns the terminal's width and height in cells.
func Size(fd int) (cols, rows int, err error) {
	cols, rows, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("get window size: %w", err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("get window size: %dx%d: %w", cols, rows, ErrNotTerminal)
	}
	return cols, rows, nil
}
