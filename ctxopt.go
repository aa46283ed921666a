// Package ctxopt is the public API for embedding a context-optimizing
// PTY session: spawn a command behind a pseudo-terminal, poll its
// output, and receive suggestions when the stream looks like a build
// error run, a large dump, a source file read, or an idle prompt.
package ctxopt

import (
	"log/slog"
	"os"

	"github.com/ctxopt/ctxopt-core/internal/config"
	"github.com/ctxopt/ctxopt-core/internal/injector"
	"github.com/ctxopt/ctxopt-core/internal/patterns"
	"github.com/ctxopt/ctxopt-core/internal/rawmode"
	"github.com/ctxopt/ctxopt-core/internal/session"
	"github.com/ctxopt/ctxopt-core/internal/tokens"
)

// version is set at build time via ldflags for release builds.
var version = "dev"

// Version returns the module's version string.
func Version() string { return version }

// Ping is a trivial liveness check.
func Ping() string { return "pong" }

// Session is a running PTY-backed command with stream analysis and
// throttled suggestion generation layered on top.
type Session = session.Session

// ReadResult is returned by Session.Read for a single polling cycle.
type ReadResult = session.ReadResult

// SessionStats is a point-in-time snapshot of a session's counters.
type SessionStats = session.SessionStats

const (
	defaultRows    uint16 = 24
	defaultCols    uint16 = 80
	defaultCommand        = "claude"
)

// NewDefault spawns the default command ("claude") in a 24x80 PTY with
// default configuration (5s throttle, suggestions enabled).
func NewDefault() (*Session, error) {
	return New(defaultRows, defaultCols, defaultCommand)
}

// New spawns command in a PTY of the given dimensions with default
// configuration (5s throttle, suggestions enabled).
func New(rows, cols uint16, command string) (*Session, error) {
	return session.New(rows, cols, command, nil, config.DefaultConfig(), slog.Default())
}

// NewWithConfig spawns command in a PTY with an explicit throttle
// interval and suggestions toggle.
func NewWithConfig(rows, cols uint16, command string, injectionIntervalMS uint64, suggestionsEnabled bool) (*Session, error) {
	cfg := config.Config{
		InjectionIntervalMS: injectionIntervalMS,
		SuggestionsEnabled:  suggestionsEnabled,
	}
	return session.New(rows, cols, command, nil, cfg, slog.Default())
}

// EstimateTokens applies the module's byte-length-over-4 token heuristic.
func EstimateTokens(text string) uint32 {
	return uint32(tokens.Estimate(text))
}

// IsCodeFile reports whether path's extension is in the fixed code-file
// set the injector uses to decide whether a file read is worth a
// suggestion.
func IsCodeFile(path string) bool {
	return injector.IsCodeFile(path)
}

// StripANSI removes ANSI escape sequences from text.
func StripANSI(text string) string {
	return patterns.Patterns.AnsiEscape.ReplaceAllString(text, "")
}

var currentGuard *rawmode.Guard

// EnterRawMode puts the process's own stdin into raw mode, returning
// false on failure (e.g. already held, or unsupported platform).
func EnterRawMode() bool {
	return EnterRawModeFd(int(os.Stdin.Fd()))
}

// EnterRawModeFd puts fd into raw mode, returning false on failure (e.g.
// already held, or unsupported platform).
func EnterRawModeFd(fd int) bool {
	g, err := rawmode.EnterRawMode(fd)
	if err != nil {
		return false
	}
	currentGuard = g
	return true
}

// ExitRawMode releases whatever raw-mode guard is currently held.
func ExitRawMode() bool {
	if currentGuard == nil {
		return false
	}
	err := currentGuard.Release()
	currentGuard = nil
	return err == nil
}

// IsRawMode reports whether raw mode is currently held by this process.
func IsRawMode() bool {
	return rawmode.IsRawMode()
}
