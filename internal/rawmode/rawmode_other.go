//go:build !unix

package rawmode

import "errors"

// ErrUnsupported is returned on platforms without a raw-mode guard
// implementation.
var ErrUnsupported = errors.New("rawmode: not supported on this platform")

// Guard is a no-op placeholder on non-Unix platforms.
type Guard struct{}

// EnterRawMode always fails on non-Unix platforms.
func EnterRawMode(fd int) (*Guard, error) {
	return nil, ErrUnsupported
}

// Release is a no-op.
func (g *Guard) Release() error { return nil }

// IsRawMode always reports false on non-Unix platforms.
func IsRawMode() bool { return false }
