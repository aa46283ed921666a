package ctxopt

import (
	"context"
	"testing"
	"time"
)

func TestPing(t *testing.T) {
	if Ping() != "pong" {
		t.Errorf("expected pong, got %q", Ping())
	}
}

func TestEstimateTokens(t *testing.T) {
	if EstimateTokens("12345678") != 2 {
		t.Errorf("expected 2 tokens for 8 bytes, got %d", EstimateTokens("12345678"))
	}
}

func TestIsCodeFile(t *testing.T) {
	if !IsCodeFile("main.go") {
		t.Error("expected main.go to be a code file")
	}
	if IsCodeFile("README.md") {
		t.Error("expected README.md to not be a code file")
	}
}

func TestStripANSI(t *testing.T) {
	if got := StripANSI("\x1b[31mred\x1b[0m"); got != "red" {
		t.Errorf("expected 'red', got %q", got)
	}
}

func TestEnterRawModeTargetsStdin(t *testing.T) {
	// EnterRawMode has no terminal to act on in a test process (stdin is
	// not a tty), so it must fail cleanly rather than hang or panic.
	if EnterRawMode() {
		defer ExitRawMode()
		t.Skip("stdin happens to be a tty in this test environment")
	}
	if IsRawMode() {
		t.Error("expected IsRawMode to be false after a failed EnterRawMode")
	}
}

func TestNewAndReadEcho(t *testing.T) {
	s, err := New(24, 80, "echo")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	defer s.Kill()

	time.Sleep(100 * time.Millisecond)
	if _, err := s.Read(context.Background()); err != nil {
		t.Fatalf("read failed: %v", err)
	}
}
