// Package session implements the Session Facade: it ties the PTY
// Manager, Stream Analyzer, and Injector together behind a single
// Read/Write/Stats surface, holding each collaborator behind its own
// lock so concurrent callers never block longer than one stage needs.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ctxopt/ctxopt-core/internal/config"
	"github.com/ctxopt/ctxopt-core/internal/injector"
	"github.com/ctxopt/ctxopt-core/internal/pty"
	"github.com/ctxopt/ctxopt-core/internal/stream"
	"github.com/ctxopt/ctxopt-core/internal/suggest"
)

// ReadResult is returned by Session.Read for a single polling cycle.
type ReadResult struct {
	Output        string
	CleanOutput   string
	Suggestions   []string
	TokenEstimate int
	DetectedTypes []string
	TotalSize     int
}

// SessionStats is a point-in-time snapshot of a session's counters.
type SessionStats struct {
	TotalTokens      uint32
	TotalSuggestions uint32
	TotalBuildErrors uint32
	ElapsedMS        uint32
}

// Session ties together a PTY Manager, Stream Analyzer, and Injector,
// each behind its own lock, so that a slow stage of one Read() call
// never blocks an unrelated stage of another.
type Session struct {
	ID     uuid.UUID
	config config.Config
	logger *slog.Logger

	started time.Time

	ptyMu sync.Mutex
	pty   *pty.Manager

	analyzerMu sync.RWMutex
	analyzer   *stream.Analyzer

	injectorMu sync.RWMutex
	injector   *injector.Injector
}

// New creates a Session, spawns command/args inside a PTY of the given
// dimensions, and wires a fresh Analyzer and Injector configured from cfg.
func New(rows, cols uint16, command string, args []string, cfg config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mgr := pty.New(rows, cols, logger)
	if err := mgr.Spawn(pty.SpawnConfig{Command: command, Args: args}); err != nil {
		return nil, err
	}

	inj := injector.WithInterval(cfg.Interval())
	inj.SetEnabled(cfg.SuggestionsEnabled)

	return &Session{
		ID:       uuid.New(),
		config:   cfg,
		logger:   logger,
		started:  time.Now(),
		pty:      mgr,
		analyzer: stream.New(),
		injector: inj,
	}, nil
}

// Read runs one polling cycle: pull any pending PTY bytes, classify them,
// and (if enabled) generate suggestions for whatever categories matched.
// Each stage's lock is held only for that stage's own duration.
func (s *Session) Read(ctx context.Context) (ReadResult, error) {
	s.ptyMu.Lock()
	data := s.pty.ReadAsync(ctx)
	s.ptyMu.Unlock()

	if len(data) == 0 {
		return ReadResult{DetectedTypes: []string{"empty"}}, nil
	}

	rawOutput := string(data)

	s.analyzerMu.Lock()
	analysis := s.analyzer.Analyze(rawOutput)
	s.analyzerMu.Unlock()

	detectedTypes := make([]string, 0, len(analysis.ContentTypes))
	for _, ct := range analysis.ContentTypes {
		detectedTypes = append(detectedTypes, ct.Kind.String())
	}

	var suggestions []string
	if s.config.SuggestionsEnabled {
		s.injectorMu.Lock()
		for _, ct := range analysis.ContentTypes {
			if sugg, ok := s.injector.GenerateSuggestion(ct); ok {
				suggestions = append(suggestions, suggest.FormatForDisplay(sugg))
			}
		}
		s.injectorMu.Unlock()
	}

	return ReadResult{
		Output:        rawOutput,
		CleanOutput:   analysis.CleanText,
		Suggestions:   suggestions,
		TokenEstimate: analysis.TokenEstimate,
		DetectedTypes: detectedTypes,
		TotalSize:     analysis.TotalSize,
	}, nil
}

// Write sends text to the child process's stdin.
func (s *Session) Write(text string) error {
	s.ptyMu.Lock()
	defer s.ptyMu.Unlock()
	return s.pty.WriteString(text)
}

// WriteBytes sends raw bytes to the child process's stdin.
func (s *Session) WriteBytes(b []byte) error {
	s.ptyMu.Lock()
	defer s.ptyMu.Unlock()
	return s.pty.Write(b)
}

// IsRunning reports whether the child process is still alive.
func (s *Session) IsRunning() bool {
	s.ptyMu.Lock()
	defer s.ptyMu.Unlock()
	return s.pty.IsRunning()
}

// Wait blocks until the child exits and returns its exit code.
func (s *Session) Wait() (uint32, error) {
	s.ptyMu.Lock()
	defer s.ptyMu.Unlock()
	code, err := s.pty.Wait()
	if err != nil {
		return 0, err
	}
	return uint32(code), nil
}

// Resize forwards new dimensions to the PTY.
func (s *Session) Resize(rows, cols uint16) error {
	s.ptyMu.Lock()
	defer s.ptyMu.Unlock()
	return s.pty.Resize(rows, cols)
}

// Kill terminates the child and releases the PTY.
func (s *Session) Kill() error {
	s.ptyMu.Lock()
	defer s.ptyMu.Unlock()
	return s.pty.Kill()
}

// SetSuggestionsEnabled toggles suggestion generation on this session.
func (s *Session) SetSuggestionsEnabled(enabled bool) {
	s.config.SuggestionsEnabled = enabled
	s.injectorMu.Lock()
	s.injector.SetEnabled(enabled)
	s.injectorMu.Unlock()
}

// Stats returns a point-in-time snapshot of the session's counters.
func (s *Session) Stats() SessionStats {
	s.analyzerMu.RLock()
	tokens := s.analyzer.TotalTokens()
	buildErrors := s.analyzer.TotalErrors()
	s.analyzerMu.RUnlock()

	s.injectorMu.RLock()
	suggestions := s.injector.TotalSuggestions()
	s.injectorMu.RUnlock()

	return SessionStats{
		TotalTokens:      uint32(tokens),
		TotalSuggestions: uint32(suggestions),
		TotalBuildErrors: uint32(buildErrors),
		ElapsedMS:        uint32(time.Since(s.started).Milliseconds()),
	}
}

// ResetStats clears the analyzer's and injector's counters. Locks are
// always acquired in the fixed order analyzer-then-injector to preclude
// deadlock against any other path that might hold both.
func (s *Session) ResetStats() {
	s.analyzerMu.Lock()
	s.analyzer.Reset()
	s.analyzerMu.Unlock()

	s.injectorMu.Lock()
	s.injector.Reset()
	s.injectorMu.Unlock()
}
