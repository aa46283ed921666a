// Package pty implements the PTY Manager: it spawns a child process
// behind a pseudo-terminal pair and bridges the blocking OS-level reads
// to callers through a bounded async channel, fed by a dedicated reader
// goroutine.
package pty

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/creack/pty"
)

// readChannelCapacity bounds the number of pending chunks the reader
// goroutine may queue before it blocks (and, if the consumer is gone,
// gives up).
const readChannelCapacity = 100

// readBufferSize is the size of each individual OS read.
const readBufferSize = 4096

// readAsyncTimeout is how long ReadAsync waits for a first message when
// none is immediately available.
const readAsyncTimeout = 10 * time.Millisecond

// SpawnConfig describes the command to run inside the PTY. The child
// always inherits the parent's full environment and current working
// directory (spec requirement), so no overrides are exposed here.
type SpawnConfig struct {
	Command string
	Args    []string
}

// Manager owns a PTY master/slave pair, the spawned child, and the
// reader goroutine that bridges blocking reads to a bounded channel.
type Manager struct {
	rows, cols uint16
	logger     *slog.Logger

	master *os.File
	cmd    *exec.Cmd

	reads chan []byte
	done  chan struct{}

	readerWg sync.WaitGroup

	// readerDone is flipped by readerLoop the moment it returns for any
	// reason (EOF, read error, or done-channel closure), self-reaping the
	// "is the child still alive" question the way original_source's
	// try_wait() does, instead of relying on an external Wait() call.
	readerDone atomic.Bool

	mu      sync.Mutex // serializes writer access
	exited  bool
	exitErr error
}

// New creates a PTY manager with the given initial dimensions. Spawn must
// be called before any I/O operation.
func New(rows, cols uint16, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		rows:   rows,
		cols:   cols,
		logger: logger,
		reads:  make(chan []byte, readChannelCapacity),
		done:   make(chan struct{}),
	}
}

// Spawn creates the master/slave PTY pair via the OS-native facility and
// starts cfg.Command attached to the slave, then launches the dedicated
// reader goroutine.
func (m *Manager) Spawn(cfg SpawnConfig) error {
	cmd := exec.Command(cfg.Command, cfg.Args...)

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: m.rows, Cols: m.cols})
	if err != nil {
		// A command that cannot be resolved or executed is a spawn failure;
		// anything else came from allocating or configuring the PTY pair.
		var execErr *exec.Error
		var pathErr *os.PathError
		if errors.As(err, &execErr) || (errors.As(err, &pathErr) && pathErr.Op == "fork/exec") {
			return newError(KindSpawnError, err)
		}
		return newError(KindCreateError, err)
	}

	m.master = master
	m.cmd = cmd

	m.readerWg.Add(1)
	go m.readerLoop()

	m.logger.Info("pty spawned", "command", cfg.Command, "args", cfg.Args)

	return nil
}

// readerLoop is the dedicated goroutine bridging blocking master reads to
// the bounded channel. It terminates on EOF, on a fatal read error, or
// when the consumer side has gone away.
func (m *Manager) readerLoop() {
	defer m.readerWg.Done()
	defer m.readerDone.Store(true)

	buf := make([]byte, readBufferSize)
	for {
		n, err := m.master.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case m.reads <- chunk:
			case <-m.done:
				return
			}
		}
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			if err == io.EOF {
				return
			}
			// A closed master (e.g. pty.Close on teardown) surfaces as a
			// PathError wrapping EIO/EBADF; either way, the child is gone.
			return
		}
		if n == 0 {
			return
		}
	}
}

// ReadAsync drains all immediately-available chunks and returns them
// concatenated. If none are available, it waits up to 10ms for one,
// returning an empty slice on timeout or channel closure.
func (m *Manager) ReadAsync(ctx context.Context) []byte {
	var all []byte

	for {
		select {
		case data, ok := <-m.reads:
			if !ok {
				return all
			}
			all = append(all, data...)
			continue
		default:
		}
		break
	}

	if len(all) > 0 {
		return all
	}

	timer := time.NewTimer(readAsyncTimeout)
	defer timer.Stop()

	select {
	case data, ok := <-m.reads:
		if !ok {
			return nil
		}
		return data
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return nil
	}
}

// Write writes bytes to the PTY master (the child's stdin).
func (m *Manager) Write(p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.master == nil {
		return newError(KindWriteError, errors.New("pty not spawned"))
	}
	if _, err := m.master.Write(p); err != nil {
		return newError(KindWriteError, err)
	}
	return nil
}

// WriteString writes a string to the PTY master.
func (m *Manager) WriteString(s string) error {
	return m.Write([]byte(s))
}

// IsRunning performs a non-blocking probe of the child's status. It
// self-reaps the same way original_source's try_wait() does: once the
// reader goroutine has observed EOF/an I/O error on the master (meaning
// the slave side, and therefore the child, is gone), IsRunning reports
// false immediately rather than trusting a zombie PID's kill(pid, 0).
func (m *Manager) IsRunning() bool {
	if m.cmd == nil || m.cmd.Process == nil {
		return false
	}
	if m.exited || m.readerDone.Load() {
		return false
	}
	// Signal(0) merely probes that the process still exists, without
	// affecting it.
	err := m.cmd.Process.Signal(syscall.Signal(0))
	return err == nil
}

// Wait blocks until the child exits and returns its exit code.
func (m *Manager) Wait() (int, error) {
	if m.cmd == nil {
		return 0, newError(KindSpawnError, errors.New("pty not spawned"))
	}
	err := m.cmd.Wait()
	m.exited = true
	m.exitErr = err
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, newError(KindSpawnError, err)
	}
	return m.cmd.ProcessState.ExitCode(), nil
}

// Resize forwards new dimensions to the master PTY.
func (m *Manager) Resize(rows, cols uint16) error {
	m.rows, m.cols = rows, cols
	if m.master == nil {
		return nil
	}
	if err := pty.Setsize(m.master, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		return newError(KindCreateError, err)
	}
	return nil
}

// Size returns the manager's current dimensions.
func (m *Manager) Size() (rows, cols uint16) {
	return m.rows, m.cols
}

// Kill terminates the child, closes the master PTY, and then waits for
// the reader goroutine to finish.
func (m *Manager) Kill() error {
	select {
	case <-m.done:
		// already closed
	default:
		close(m.done)
	}

	if m.cmd != nil && m.cmd.Process != nil && !m.exited {
		if err := m.cmd.Process.Kill(); err != nil {
			m.logger.Warn("failed to kill pty child", "error", err)
		}
		m.cmd.Wait()
		m.exited = true
	}

	if m.master != nil {
		if err := m.master.Close(); err != nil {
			m.logger.Warn("failed to close pty master", "error", err)
		}
	}

	m.readerWg.Wait()

	return nil
}

// IsSpawned reports whether Spawn has successfully run.
func (m *Manager) IsSpawned() bool {
	return m.master != nil
}
