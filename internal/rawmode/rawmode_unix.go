//go:build unix

// Package rawmode guards entry into terminal raw mode with a single
// process-wide holder: only one caller may hold raw mode at a time, and
// a second attempt fails instead of silently stacking state.
package rawmode

import (
	"errors"
	"sync"

	"golang.org/x/term"
)

// ErrAlreadyRaw is returned by EnterRawMode when another Guard is
// currently held.
var ErrAlreadyRaw = errors.New("rawmode: terminal already in raw mode")

var (
	holderMu sync.Mutex
	held     bool
)

// Guard releases a raw-mode acquisition exactly once.
type Guard struct {
	fd       int
	oldState *term.State
	released bool
}

// EnterRawMode puts fd into raw mode and returns a Guard that restores
// the prior termios state on Release. It fails if raw mode is already
// held by another caller in this process.
func EnterRawMode(fd int) (*Guard, error) {
	holderMu.Lock()
	defer holderMu.Unlock()

	if held {
		return nil, ErrAlreadyRaw
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	held = true
	return &Guard{fd: fd, oldState: oldState}, nil
}

// Release restores the terminal's prior state. It is idempotent.
func (g *Guard) Release() error {
	holderMu.Lock()
	defer holderMu.Unlock()

	if g.released {
		return nil
	}
	g.released = true
	held = false

	return term.Restore(g.fd, g.oldState)
}

// IsRawMode reports whether a Guard is currently held by this process.
func IsRawMode() bool {
	holderMu.Lock()
	defer holderMu.Unlock()
	return held
}
