package stream

import "github.com/ctxopt/ctxopt-core/internal/patterns"

// Kind discriminates the variants of ContentType.
type Kind int

const (
	KindBuildError Kind = iota
	KindFileRead
	KindLargeOutput
	KindPromptReady
	KindNormal
)

// String renders the variant name, used for Session's detected_types output.
func (k Kind) String() string {
	switch k {
	case KindBuildError:
		return "BuildError"
	case KindFileRead:
		return "FileRead"
	case KindLargeOutput:
		return "LargeOutput"
	case KindPromptReady:
		return "PromptReady"
	default:
		return "Normal"
	}
}

// ContentType is the classification assigned to a chunk of analyzed text.
// It is the idiomatic Go rendering of a tagged union: a Kind discriminant
// plus the fields relevant to that variant.
type ContentType struct {
	Kind            Kind
	BuildErrorCount int
	BuildTool       patterns.BuildTool
	FileReadPath    string
	LargeOutputSize int
}
