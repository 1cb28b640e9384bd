package errors

import (
	"context"
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that writes structured records through slog.
// Recovered local conditions are logged at debug level, everything else at
// error level.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the records. Nil uses a text logger on stderr.
	Logger *slog.Logger
}

// NewLogHandler returns a LogHandler writing to stderr.
func NewLogHandler(verbose bool) *LogHandler {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &LogHandler{
		Verbose: verbose,
		Logger:  slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	level := slog.LevelError
	switch err.Kind {
	case KindFocusUnavailable, KindOutOfRange:
		level = slog.LevelDebug
	}
	h.logger().LogAttrs(context.Background(), level, "domkit error",
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.Any("err", err.Err),
	)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", err.Op),
		slog.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "domkit panic", attrs...)
}
