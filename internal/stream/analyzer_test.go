package stream

import (
	"strings"
	"testing"

	"github.com/ctxopt/ctxopt-core/internal/patterns"
)

func hasKind(cts []ContentType, k Kind) bool {
	for _, ct := range cts {
		if ct.Kind == k {
			return true
		}
	}
	return false
}

func findKind(cts []ContentType, k Kind) (ContentType, bool) {
	for _, ct := range cts {
		if ct.Kind == k {
			return ct, true
		}
	}
	return ContentType{}, false
}

func TestDetectTypeScriptError(t *testing.T) {
	a := New()
	result := a.Analyze("error TS2304: Cannot find name 'foo'")
	ct, ok := findKind(result.ContentTypes, KindBuildError)
	if !ok || ct.BuildTool != patterns.BuildToolTypeScript {
		t.Errorf("expected TypeScript build error, got %#v", result.ContentTypes)
	}
}

func TestDetectRustError(t *testing.T) {
	a := New()
	result := a.Analyze("error[E0425]: cannot find value `foo`")
	ct, ok := findKind(result.ContentTypes, KindBuildError)
	if !ok || ct.BuildTool != patterns.BuildToolRust {
		t.Errorf("expected Rust build error, got %#v", result.ContentTypes)
	}
}

func TestDetectPythonError(t *testing.T) {
	a := New()
	result := a.Analyze("NameError: name 'foo' is not defined")
	ct, ok := findKind(result.ContentTypes, KindBuildError)
	if !ok || ct.BuildTool != patterns.BuildToolPython {
		t.Errorf("expected Python build error, got %#v", result.ContentTypes)
	}
}

func TestDetectGoError(t *testing.T) {
	a := New()
	result := a.Analyze("undefined: foo")
	ct, ok := findKind(result.ContentTypes, KindBuildError)
	if !ok || ct.BuildTool != patterns.BuildToolGo {
		t.Errorf("expected Go build error, got %#v", result.ContentTypes)
	}
}

func TestDetectFileRead(t *testing.T) {
	a := New()
	result := a.Analyze("Reading file: src/main.ts")
	if !hasKind(result.ContentTypes, KindFileRead) {
		t.Errorf("expected FileRead, got %#v", result.ContentTypes)
	}
}

func TestDetectLargeOutput(t *testing.T) {
	a := New()
	large := strings.Repeat("x", 6000)
	result := a.Analyze(large)
	if !hasKind(result.ContentTypes, KindLargeOutput) {
		t.Errorf("expected LargeOutput, got %#v", result.ContentTypes)
	}
}

func TestDetectPromptReady(t *testing.T) {
	a := New()
	result := a.Analyze("some output ❯")
	if !hasKind(result.ContentTypes, KindPromptReady) {
		t.Errorf("expected PromptReady, got %#v", result.ContentTypes)
	}
}

func TestStripAnsi(t *testing.T) {
	a := New()
	clean := a.stripAnsi("\x1b[31mError\x1b[0m: something failed")
	if clean != "Error: something failed" {
		t.Errorf("got %q", clean)
	}
}

func TestNormalContent(t *testing.T) {
	a := New()
	result := a.Analyze("just some normal text")
	if !hasKind(result.ContentTypes, KindNormal) {
		t.Errorf("expected Normal, got %#v", result.ContentTypes)
	}
}

func TestMultipleErrorsCount(t *testing.T) {
	a := New()
	text := "error TS2304: foo\nerror TS2304: bar\nerror TS2304: baz"
	result := a.Analyze(text)
	ct, ok := findKind(result.ContentTypes, KindBuildError)
	if !ok || ct.BuildTool != patterns.BuildToolTypeScript {
		t.Fatalf("expected TypeScript build error, got %#v", result.ContentTypes)
	}
	if ct.BuildErrorCount != 3 {
		t.Errorf("expected error count 3, got %d", ct.BuildErrorCount)
	}
}

func TestTotalTokens(t *testing.T) {
	a := New()
	a.Analyze("hello world")
	a.Analyze("more text")
	if a.TotalTokens() <= 0 {
		t.Error("expected positive total tokens")
	}
}

func TestReset(t *testing.T) {
	a := New()
	a.Analyze("error TS2304: foo")
	a.Reset()
	if a.TotalTokens() != 0 {
		t.Errorf("expected 0 tokens after reset, got %d", a.TotalTokens())
	}
	if a.TotalErrors() != 0 {
		t.Errorf("expected 0 errors after reset, got %d", a.TotalErrors())
	}
	if a.BufferSize() != 0 {
		t.Errorf("expected 0 buffer size after reset, got %d", a.BufferSize())
	}
}

// TypeScript error run scenario from the testable-properties section.
func TestScenarioTypeScriptErrorRun(t *testing.T) {
	a := New()
	chunk := "src/index.ts:10:5 - error TS2304: Cannot find name 'foo'.\n" +
		"src/index.ts:15:10 - error TS2339: X.\n" +
		"src/index.ts:20:1 - error TS2322: Y.\n"
	result := a.Analyze(chunk)
	ct, ok := findKind(result.ContentTypes, KindBuildError)
	if !ok || ct.BuildTool != patterns.BuildToolTypeScript || ct.BuildErrorCount != 3 {
		t.Fatalf("expected 3 TypeScript errors, got %#v", result.ContentTypes)
	}
	if a.TotalErrors() != 3 {
		t.Errorf("expected total errors 3, got %d", a.TotalErrors())
	}
}

// Large-output scenario: analyzing exactly 10,000 fresh characters.
func TestScenarioLargeOutput(t *testing.T) {
	a := New()
	result := a.Analyze(strings.Repeat("x", 10000))
	ct, ok := findKind(result.ContentTypes, KindLargeOutput)
	if !ok || ct.LargeOutputSize != 10000 {
		t.Fatalf("expected LargeOutput size 10000, got %#v", result.ContentTypes)
	}
}

// ANSI strip scenario: output retains escapes, clean_output does not.
func TestScenarioAnsiStrip(t *testing.T) {
	a := New()
	result := a.Analyze("\x1b[31mError\x1b[0m: boom")
	if result.CleanText != "Error: boom" {
		t.Errorf("got %q", result.CleanText)
	}
}

func TestStripAnsiIdempotent(t *testing.T) {
	a := New()
	x := "\x1b[31mError\x1b[0m: boom"
	once := a.stripAnsi(x)
	twice := a.stripAnsi(once)
	if once != twice {
		t.Errorf("strip_ansi not idempotent: %q vs %q", once, twice)
	}
}

func TestAnalyzeNeverEmpty(t *testing.T) {
	a := New()
	cases := []string{"", "anything", "\x1b[0m"}
	for _, c := range cases {
		result := a.Analyze(c)
		if len(result.ContentTypes) == 0 {
			t.Errorf("Analyze(%q) returned empty content types", c)
		}
	}
}

func TestBufferBounded(t *testing.T) {
	a := New()
	for i := 0; i < 10; i++ {
		a.Analyze(strings.Repeat("y", 10000))
	}
	if a.BufferSize() > 50000 {
		t.Errorf("buffer exceeded capacity: %d", a.BufferSize())
	}
}
