package pty

import "errors"

// Kind classifies a PtyError, mirroring the closed error taxonomy the
// facade and its callers switch on.
type Kind int

const (
	// KindCreateError covers OS PTY allocation, master reader cloning, or
	// resize failures.
	KindCreateError Kind = iota
	// KindSpawnError covers the child command failing to start, or
	// wait/kill failing.
	KindSpawnError
	// KindWriteError covers a write to the PTY failing.
	KindWriteError
	// KindIoError covers a generic I/O fault not covered above.
	KindIoError
	// KindTermiosError covers getting/setting terminal attributes for
	// raw-mode failing.
	KindTermiosError
)

func (k Kind) String() string {
	switch k {
	case KindCreateError:
		return "CreateError"
	case KindSpawnError:
		return "SpawnError"
	case KindWriteError:
		return "WriteError"
	case KindTermiosError:
		return "TermiosError"
	default:
		return "IoError"
	}
}

// Error wraps an underlying OS/library error with a taxonomy Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Is allows errors.Is(err, pty.ErrWriteError) style sentinel checks against
// the Kind, independent of the wrapped underlying error.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Sentinels usable with errors.Is to test a PtyError's Kind without caring
// about the wrapped message.
var (
	ErrCreateError  = &Error{Kind: KindCreateError, Err: errors.New("create")}
	ErrSpawnError   = &Error{Kind: KindSpawnError, Err: errors.New("spawn")}
	ErrWriteError   = &Error{Kind: KindWriteError, Err: errors.New("write")}
	ErrIoError      = &Error{Kind: KindIoError, Err: errors.New("io")}
	ErrTermiosError = &Error{Kind: KindTermiosError, Err: errors.New("termios")}
)
