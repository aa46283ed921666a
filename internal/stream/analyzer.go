// Package stream implements the Stream Analyzer: it strips ANSI escape
// sequences from incoming stdout chunks, maintains a bounded character
// buffer, estimates tokens, and classifies each chunk into one or more
// ContentType values using the Pattern Catalog.
package stream

import (
	"regexp"

	"github.com/ctxopt/ctxopt-core/internal/patterns"
	"github.com/ctxopt/ctxopt-core/internal/ringbuffer"
	"github.com/ctxopt/ctxopt-core/internal/tokens"
)

// largeOutputThreshold is the analyzer's own growth-detection threshold,
// deliberately lower than the Injector's surfacing threshold (10,000):
// the analyzer flags growth earlier than suggestions are actually shown.
const largeOutputThreshold = 5000

// bufferCapacity bounds the analyzer's rolling character buffer.
const bufferCapacity = 50000

// AnalysisResult is returned by Analyze for a single chunk.
type AnalysisResult struct {
	ContentTypes  []ContentType
	TokenEstimate int
	TotalSize     int
	CleanText     string
}

// Analyzer consumes stdout chunks and classifies them.
type Analyzer struct {
	buffer      *ringbuffer.Buffer
	totalTokens int
	errorCount  int
}

// New creates an analyzer with a fresh, empty buffer.
func New() *Analyzer {
	return &Analyzer{buffer: ringbuffer.New(bufferCapacity)}
}

// Analyze strips ANSI codes from chunk, folds it into the rolling buffer,
// estimates its token cost, and classifies it in the fixed priority order
// documented in the component design: build errors, file read, large
// output, prompt ready.
func (a *Analyzer) Analyze(chunk string) AnalysisResult {
	clean := a.stripAnsi(chunk)

	a.buffer.Push(clean)

	t := tokens.Estimate(clean)
	a.totalTokens += t

	var contentTypes []ContentType

	if ct, ok := a.detectBuildErrors(clean); ok {
		contentTypes = append(contentTypes, ct)
	}

	if ct, ok := a.detectFileRead(clean); ok {
		contentTypes = append(contentTypes, ct)
	}

	if a.buffer.Len() > largeOutputThreshold {
		contentTypes = append(contentTypes, ContentType{
			Kind:            KindLargeOutput,
			LargeOutputSize: a.buffer.Len(),
		})
	}

	if a.detectPromptReady(clean) {
		contentTypes = append(contentTypes, ContentType{Kind: KindPromptReady})
		a.buffer.Clear()
	}

	if len(contentTypes) == 0 {
		contentTypes = append(contentTypes, ContentType{Kind: KindNormal})
	}

	return AnalysisResult{
		ContentTypes:  contentTypes,
		TokenEstimate: t,
		TotalSize:     a.buffer.Len(),
		CleanText:     clean,
	}
}

func (a *Analyzer) stripAnsi(text string) string {
	return patterns.Patterns.AnsiEscape.ReplaceAllString(text, "")
}

// detectBuildErrors tries each build tool pattern in fixed priority order;
// the first to match wins and the match count becomes error_count.
func (a *Analyzer) detectBuildErrors(text string) (ContentType, bool) {
	order := []struct {
		re   *regexp.Regexp
		tool patterns.BuildTool
	}{
		{patterns.Patterns.TypeScriptError, patterns.BuildToolTypeScript},
		{patterns.Patterns.ESLintError, patterns.BuildToolESLint},
		{patterns.Patterns.RustError, patterns.BuildToolRust},
		{patterns.Patterns.GoError, patterns.BuildToolGo},
		{patterns.Patterns.PythonError, patterns.BuildToolPython},
		{patterns.Patterns.GenericError, patterns.BuildToolGeneric},
	}

	for _, o := range order {
		matches := o.re.FindAllStringIndex(text, -1)
		if len(matches) > 0 {
			a.errorCount += len(matches)
			return ContentType{
				Kind:            KindBuildError,
				BuildErrorCount: len(matches),
				BuildTool:       o.tool,
			}, true
		}
	}
	return ContentType{}, false
}

func (a *Analyzer) detectFileRead(text string) (ContentType, bool) {
	m := patterns.Patterns.FileRead.FindStringSubmatch(text)
	if m == nil || len(m) <= 4 {
		return ContentType{}, false
	}
	return ContentType{Kind: KindFileRead, FileReadPath: m[4]}, true
}

func (a *Analyzer) detectPromptReady(text string) bool {
	lastChars := a.buffer.LastN(50)
	return patterns.Patterns.PromptReady.MatchString(lastChars) || patterns.Patterns.PromptReady.MatchString(text)
}

// TotalTokens returns the running token estimate across all analyzed chunks.
func (a *Analyzer) TotalTokens() int { return a.totalTokens }

// TotalErrors returns the running count of detected build-error matches.
func (a *Analyzer) TotalErrors() int { return a.errorCount }

// BufferSize returns the current length of the rolling character buffer.
func (a *Analyzer) BufferSize() int { return a.buffer.Len() }

// Reset clears the buffer and zeroes the counters.
func (a *Analyzer) Reset() {
	a.buffer.Clear()
	a.totalTokens = 0
	a.errorCount = 0
}
