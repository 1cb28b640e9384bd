// Package errors provides structured error handling for the domkit toolkit.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidConfiguration indicates malformed builder input.
	KindInvalidConfiguration
	// KindFocusUnavailable indicates traversal was requested with nothing focusable.
	KindFocusUnavailable
	// KindOutOfRange indicates an index beyond the row count that was clamped.
	KindOutOfRange
	// KindHost indicates a host collaborator call failed.
	KindHost
	// KindRender indicates a render tree could not be produced.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidConfiguration:
		return "invalid-configuration"
	case KindFocusUnavailable:
		return "focus-unavailable"
	case KindOutOfRange:
		return "out-of-range"
	case KindHost:
		return "host"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors matched with errors.Is.
var (
	ErrInvalidConfiguration   = stderrors.New("invalid configuration")
	ErrFocusTargetUnavailable = stderrors.New("focus target unavailable")
	ErrOutOfRangeIndex        = stderrors.New("index out of range")
	ErrHostUnavailable        = stderrors.New("host collaborator unavailable")
)

// Error represents a structured error in the toolkit.
type Error struct {
	// Op is the operation that failed (e.g., "core.WithAttribute").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel matching this error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidConfiguration:
		return target == ErrInvalidConfiguration
	case KindFocusUnavailable:
		return target == ErrFocusTargetUnavailable
	case KindOutOfRange:
		return target == ErrOutOfRangeIndex
	case KindHost:
		return target == ErrHostUnavailable
	}
	return false
}

// InvalidConfiguration returns a build-time configuration error for op.
func InvalidConfiguration(op, format string, args ...any) *Error {
	return &Error{
		Op:        op,
		Kind:      KindInvalidConfiguration,
		Err:       fmt.Errorf(format, args...),
		Timestamp: time.Now(),
	}
}

// Host wraps a failure returned by a host collaborator call.
func Host(op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: KindHost, Err: err, Timestamp: time.Now()}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "loop.RunOnce").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs or a local condition is recovered.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is, As and Join re-export the standard helpers so callers importing this
// package under the name errors keep them.
var (
	Is   = stderrors.Is
	As   = stderrors.As
	Join = stderrors.Join
	New  = stderrors.New
)
