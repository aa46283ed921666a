// Package injector implements the throttled suggestion engine: it decides
// whether a given content classification warrants a surfaced suggestion,
// and enforces rate and repetition limits.
package injector

import (
	"strings"
	"time"

	"github.com/ctxopt/ctxopt-core/internal/stream"
	"github.com/ctxopt/ctxopt-core/internal/suggest"
)

const (
	minInjectionInterval = 5 * time.Second
	maxPromptReminders   = 3
	recentTypesCap       = 10
	recentTypesWindow    = 3

	buildErrorThreshold = 3
	largeOutputSurface  = 10000
)

var codeExtensions = []string{
	".ts", ".tsx", ".js", ".jsx", ".py", ".rs", ".go", ".java", ".c", ".cpp", ".h", ".hpp",
	".cs", ".rb", ".php", ".swift", ".kt", ".scala", ".ex", ".exs",
}

// Injector tracks throttling state across a session's lifetime.
type Injector struct {
	lastInjection       time.Time
	minInterval         time.Duration
	suggestionsCount    int
	promptReminderCount int
	enabled             bool
	recentTypes         []suggest.Type
}

// New creates an injector with the default 5s throttle interval, enabled,
// and primed so the very first call is admissible.
func New() *Injector {
	return &Injector{
		lastInjection: time.Now().Add(-60 * time.Second),
		minInterval:   minInjectionInterval,
		enabled:       true,
	}
}

// WithInterval creates an injector with a custom throttle interval
// (primarily useful in tests that can't wait 5 real seconds).
func WithInterval(interval time.Duration) *Injector {
	i := New()
	i.minInterval = interval
	return i
}

// SetEnabled toggles whether suggestions are generated at all.
func (i *Injector) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsEnabled reports whether suggestions are currently enabled.
func (i *Injector) IsEnabled() bool {
	return i.enabled
}

func (i *Injector) canInject() bool {
	return i.enabled && time.Since(i.lastInjection) >= i.minInterval
}

func (i *Injector) wasRecentlySuggested(t suggest.Type) bool {
	n := len(i.recentTypes)
	start := n - recentTypesWindow
	if start < 0 {
		start = 0
	}
	for _, rt := range i.recentTypes[start:] {
		if rt == t {
			return true
		}
	}
	return false
}

// ShouldInject reports, without mutating state, whether ct currently
// warrants a suggestion.
func (i *Injector) ShouldInject(ct stream.ContentType) bool {
	if !i.canInject() {
		return false
	}

	switch ct.Kind {
	case stream.KindBuildError:
		return ct.BuildErrorCount >= buildErrorThreshold && !i.wasRecentlySuggested(suggest.TypeBuildErrors)
	case stream.KindLargeOutput:
		return ct.LargeOutputSize > largeOutputSurface && !i.wasRecentlySuggested(suggest.TypeLargeOutput)
	case stream.KindFileRead:
		return IsCodeFile(ct.FileReadPath) && !i.wasRecentlySuggested(suggest.TypeFileRead)
	case stream.KindPromptReady:
		return i.promptReminderCount < maxPromptReminders
	default:
		return false
	}
}

// GenerateSuggestion constructs and records a suggestion for ct, or
// reports false if none is warranted. This mutates throttle state on
// success.
func (i *Injector) GenerateSuggestion(ct stream.ContentType) (suggest.Suggestion, bool) {
	if !i.ShouldInject(ct) {
		return suggest.Suggestion{}, false
	}

	var (
		s  suggest.Suggestion
		ok bool
	)

	switch ct.Kind {
	case stream.KindBuildError:
		s, ok = suggest.BuildErrors(ct.BuildErrorCount, ct.BuildTool), true
	case stream.KindLargeOutput:
		s, ok = suggest.LargeOutput(ct.LargeOutputSize), true
	case stream.KindFileRead:
		if IsCodeFile(ct.FileReadPath) {
			s, ok = suggest.FileRead(ct.FileReadPath), true
		}
	case stream.KindPromptReady:
		i.promptReminderCount++
		s, ok = suggest.PromptReminder(), true
	}

	if !ok {
		return suggest.Suggestion{}, false
	}

	i.lastInjection = time.Now()
	i.suggestionsCount++
	i.recentTypes = append(i.recentTypes, s.Type)
	if len(i.recentTypes) > recentTypesCap {
		i.recentTypes = i.recentTypes[1:]
	}

	return s, true
}

// IsCodeFile reports whether path's extension is in the fixed code-file set.
func IsCodeFile(path string) bool {
	for _, ext := range codeExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TotalSuggestions returns the number of suggestions generated so far.
func (i *Injector) TotalSuggestions() int { return i.suggestionsCount }

// PromptRemindersUsed returns how many prompt reminders have been emitted.
func (i *Injector) PromptRemindersUsed() int { return i.promptReminderCount }

// Reset zeroes the counters and re-arms immediate injectability.
func (i *Injector) Reset() {
	i.suggestionsCount = 0
	i.promptReminderCount = 0
	i.recentTypes = nil
	i.lastInjection = time.Now().Add(-60 * time.Second)
}

// TimeUntilNextInjection returns how long until the throttle window
// clears, or 0 if an injection is already admissible.
func (i *Injector) TimeUntilNextInjection() time.Duration {
	elapsed := time.Since(i.lastInjection)
	if elapsed >= i.minInterval {
		return 0
	}
	return i.minInterval - elapsed
}
