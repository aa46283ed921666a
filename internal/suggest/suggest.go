// Package suggest implements the pure suggestion-template constructors:
// formatted, ANSI-colored display strings for each suggestion category.
package suggest

import (
	"fmt"

	"github.com/ctxopt/ctxopt-core/internal/patterns"
)

// Type identifies which category a Suggestion belongs to.
type Type int

const (
	TypeBuildErrors Type = iota
	TypeLargeOutput
	TypePromptReminder
	TypeFileRead
)

// Suggestion is a generated, display-only message. It is never injected
// into the child's stdin.
type Suggestion struct {
	Type           Type
	DisplayMessage string
}

// BuildErrors constructs a suggestion for a run of build/lint errors.
func BuildErrors(errorCount int, tool patterns.BuildTool) Suggestion {
	return Suggestion{
		Type: TypeBuildErrors,
		DisplayMessage: fmt.Sprintf(
			"\x1b[33m[ctxopt]\x1b[0m %d %s errors detected. "+
				"Use \x1b[36mmcp__ctxopt__auto_optimize\x1b[0m to compress (95%%+ savings).",
			errorCount, tool.String(),
		),
	}
}

// LargeOutput constructs a suggestion for a voluminous output block.
func LargeOutput(sizeChars int) Suggestion {
	sizeKB := sizeChars / 1024
	return Suggestion{
		Type: TypeLargeOutput,
		DisplayMessage: fmt.Sprintf(
			"\x1b[33m[ctxopt]\x1b[0m Large output (~%dKB). "+
				"Use \x1b[36mmcp__ctxopt__compress_context\x1b[0m for 40-60%% savings.",
			sizeKB,
		),
	}
}

// PromptReminder constructs the fixed, dim-colored reminder shown when the
// child is ready for new input.
func PromptReminder() Suggestion {
	return Suggestion{
		Type:           TypePromptReminder,
		DisplayMessage: "\x1b[90m[ctxopt] MCP tools: smart_file_read, auto_optimize, compress_context\x1b[0m",
	}
}

// FileRead constructs a suggestion for a code file being read.
func FileRead(filePath string) Suggestion {
	return Suggestion{
		Type: TypeFileRead,
		DisplayMessage: fmt.Sprintf(
			"\x1b[33m[ctxopt]\x1b[0m Reading %s. "+
				"Consider \x1b[36mmcp__ctxopt__smart_file_read\x1b[0m for 50-70%% savings.",
			filePath,
		),
	}
}

// FormatForDisplay wraps a suggestion's message in leading/trailing
// newlines for terminal display.
func FormatForDisplay(s Suggestion) string {
	return "\n" + s.DisplayMessage + "\n"
}
