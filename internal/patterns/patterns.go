// Package patterns holds the process-wide regex set used to classify
// stdout chunks, plus the closed BuildTool enumeration. The regexes are
// compiled once when the package is initialized, not on first use.
package patterns

import "regexp"

// BuildTool identifies the source of a build/lint diagnostic.
type BuildTool int

const (
	BuildToolTypeScript BuildTool = iota
	BuildToolESLint
	BuildToolRust
	BuildToolGo
	BuildToolPython
	BuildToolWebpack
	BuildToolVite
	BuildToolGeneric
)

// String returns the short display name used in suggestion messages.
func (t BuildTool) String() string {
	switch t {
	case BuildToolTypeScript:
		return "tsc"
	case BuildToolESLint:
		return "eslint"
	case BuildToolRust:
		return "cargo"
	case BuildToolGo:
		return "go"
	case BuildToolPython:
		return "python"
	case BuildToolWebpack:
		return "webpack"
	case BuildToolVite:
		return "vite"
	default:
		return "generic"
	}
}

// Set holds every compiled regex the Stream Analyzer needs. Package-level
// initialization runs exactly once at program load, race-free, which is
// Go's native equivalent of a lazily-initialized process-wide singleton.
type Set struct {
	AnsiEscape      *regexp.Regexp
	TypeScriptError *regexp.Regexp
	ESLintError     *regexp.Regexp
	RustError       *regexp.Regexp
	GoError         *regexp.Regexp
	PythonError     *regexp.Regexp
	GenericError    *regexp.Regexp
	FileRead        *regexp.Regexp
	PromptReady     *regexp.Regexp
}

// Patterns is the shared, immutable-after-init pattern catalog.
var Patterns = &Set{
	AnsiEscape:      regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|\x1b\].*?\x07`),
	TypeScriptError: regexp.MustCompile(`(?i)error\s+TS\d{4}:|Cannot find (name|module)|has no exported member`),
	ESLintError:     regexp.MustCompile(`(?i)\d+:\d+\s+(error|warning)\s+.+\s+\S+/\S+`),
	RustError:       regexp.MustCompile(`(?i)error\[E\d{4}\]:|cannot find (value|type|crate)`),
	GoError:         regexp.MustCompile(`(?i)undefined:|cannot find package|syntax error`),
	PythonError:     regexp.MustCompile(`(?i)(NameError|ImportError|SyntaxError|ModuleNotFoundError|TypeError):`),
	GenericError:    regexp.MustCompile(`(?i)(^|\s)(error|failed|cannot|unexpected|compilation failed)(\s|:)`),
	FileRead:        regexp.MustCompile(`(?i)(Read(ing)?(\s+file)?|file_path)[:\s]+["']?([^\s"']+\.(ts|js|tsx|jsx|py|rs|go|java|c|cpp|h|hpp|md|json|yaml|yml|toml))["']?`),
	PromptReady:     regexp.MustCompile(`❯|>\s*$|\$\s*$|claude\s*>\s*$`),
}
