package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// DefaultHandler receives every reported error and panic. It starts out as
// a non-verbose LogHandler.
var DefaultHandler ErrorHandler = NewLogHandler(false)

var handlerMu sync.RWMutex

// SetHandler swaps the process-wide handler. Nil restores a non-verbose
// LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = NewLogHandler(false)
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func currentHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report hands err to the current handler, stamping it first if needed.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := currentHandler(); h != nil {
		h.HandleError(err)
	}
}

// Recovered reports a condition that was handled locally (a clamped index,
// a traversal no-op) so it is visible in logs without being returned.
func Recovered(op string, kind ErrorKind, sentinel error) {
	Report(&Error{Op: op, Kind: kind, Err: sentinel})
}

// ReportPanic hands a recovered panic to the current handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := currentHandler(); h != nil {
		h.HandlePanic(err)
	}
}

func panicked(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: captureStack(4),
		Timestamp:  time.Now(),
	})
}

// Recover reports a panic in progress and swallows it.
//
//	defer errors.Recover("loop.RunOnce")
func Recover(op string) {
	if r := recover(); r != nil {
		panicked(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r) when a panic was
// swallowed.
func RecoverWithCallback(op string, callback func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	panicked(op, r)
	if callback != nil {
		callback(r)
	}
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// entry per frame.
func CaptureStack() string {
	return captureStack(3)
}

func captureStack(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var frame runtime.Frame
		frame, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
	}
	return sb.String()
}
