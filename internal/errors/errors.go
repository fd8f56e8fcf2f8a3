// Package errors defines the structured error type shared by the host bridge.
//
// Failures inside asset access and script loading are swallowed at their
// boundary and only surface through logs and the session error bus, so every
// error carries enough context (phase, kind, trace) to be diagnosed from there.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred
type Phase string

const (
	PhaseAsset     Phase = "asset"     // packaged asset access
	PhaseBootstrap Phase = "bootstrap" // script bootstrap
	PhaseEngine    Phase = "engine"    // engine callbacks
	PhaseSession   Phase = "session"   // lifecycle entry points
	PhaseSurface   Phase = "surface"   // display surface
	PhaseConfig    Phase = "config"    // configuration
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindShortRead    Kind = "short_read"
	KindCompile      Kind = "compile"
	KindRuntime      Kind = "runtime"
	KindPrecondition Kind = "precondition"
	KindInvalidInput Kind = "invalid_input"
	KindIO           Kind = "io"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Phase  Phase
	Kind   Kind
	Detail string
	// Trace is a script call-stack trace, empty when none was available.
	Trace string
	Cause error
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
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Report renders the error with its trace, the way it is written to the log.
func (e *Error) Report() string {
	if e.Trace == "" {
		return e.Error()
	}
	return e.Error() + "\n" + e.Trace
}

// As is errors.As, re-exported so callers importing this package under its
// own name do not also need the standard library package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// ShortRead creates an error for a read that returned fewer bytes than announced
func ShortRead(name string, want int64, got int, cause error) *Error {
	return &Error{
		Phase:  PhaseAsset,
		Kind:   KindShortRead,
		Detail: fmt.Sprintf("asset %q: read %d of %d bytes", name, got, want),
		Cause:  cause,
	}
}

// Compile creates a script compile error
func Compile(chunk string, cause error) *Error {
	return &Error{
		Phase:  PhaseBootstrap,
		Kind:   KindCompile,
		Detail: fmt.Sprintf("compile %s", chunk),
		Cause:  cause,
	}
}

// Runtime creates a script runtime error carrying the trapped message and trace
func Runtime(phase Phase, msg, trace string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRuntime,
		Detail: msg,
		Trace:  trace,
	}
}

// Precondition creates an error for an entry point used out of order
func Precondition(detail string) *Error {
	return &Error{
		Phase:  PhaseSession,
		Kind:   KindPrecondition,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
