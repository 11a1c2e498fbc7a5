package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in output assembly the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // reading an existing binary
	PhaseFinalize Phase = "finalize" // section sizing
	PhaseLayout   Phase = "layout"   // offset assignment
	PhaseEmit     Phase = "emit"     // writing bytes
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData Kind = "invalid_data"
	KindOutOfBounds Kind = "out_of_bounds"
	KindUnsupported Kind = "unsupported"
	KindOverflow    Kind = "overflow"
	KindInternal    Kind = "internal"
)

// Error is the structured error type used throughout the linker
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target *Error matches
// when its non-empty Phase and Kind fields agree, so callers can test
// against a pattern like &Error{Kind: KindInternal}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return true
}

// Internal creates an internal-consistency error. These indicate a linker
// defect rather than bad input and are raised via panic, never returned.
func Internal(phase Phase, format string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: fmt.Sprintf(format, args...),
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported-construct error
func Unsupported(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: detail,
	}
}
