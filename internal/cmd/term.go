package cmd

import (
	"errors"
	"os"

	"golang.org/x/term"
)

var errNotTerminal = errors.New("not a terminal")

// rawTerminal restores a terminal put into raw mode.
type rawTerminal struct {
	fd    int
	state *term.State
}

// makeRaw puts f into raw mode so keystrokes reach the session unchanged.
func makeRaw(f *os.File) (*rawTerminal, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, errNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &rawTerminal{fd: fd, state: state}, nil
}

// Restore returns the terminal to the state before makeRaw.
func (t *rawTerminal) Restore() {
	_ = term.Restore(t.fd, t.state)
}

// terminalSize returns f's size, or 0, 0 when f is not a terminal.
func terminalSize(f *os.File) (rows, cols int) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return 0, 0
	}
	return rows, cols
}

// resizer is the part of a session that follows the terminal size.
type resizer interface {
	Resize(rows, cols uint16) error
}

// syncSize copies f's current size to the session.
func syncSize(f *os.File, s resizer) {
	rows, cols := terminalSize(f)
	if rows > 0 && cols > 0 {
		_ = s.Resize(uint16(rows), uint16(cols))
	}
}
