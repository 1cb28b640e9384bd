package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := InvalidConfiguration("core.WithAttribute", "empty attribute key")
	got := err.Error()
	want := "core.WithAttribute [invalid-configuration]: empty attribute key"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidConfiguration, "invalid-configuration"},
		{KindFocusUnavailable, "focus-unavailable"},
		{KindOutOfRange, "out-of-range"},
		{KindHost, "host"},
		{KindRender, "render"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", InvalidConfiguration("op", "bad"))
	if !Is(err, ErrInvalidConfiguration) {
		t.Error("expected wrapped configuration error to match ErrInvalidConfiguration")
	}
	if Is(err, ErrOutOfRangeIndex) {
		t.Error("configuration error should not match ErrOutOfRangeIndex")
	}

	var typed *Error
	if !As(err, &typed) || typed.Kind != KindInvalidConfiguration {
		t.Errorf("As() = %v, kind %v", typed, typed)
	}
}

func TestHostNilPassthrough(t *testing.T) {
	if Host("host.ShowPopover", nil) != nil {
		t.Error("Host(nil) should return nil")
	}
	err := Host("host.ShowPopover", New("boom"))
	if err.Kind != KindHost {
		t.Errorf("Kind = %v, want host", err.Kind)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic"}
	if got := err.Error(); got != "panic: test panic" {
		t.Errorf("Error() = %q", got)
	}
	err.Op = "loop.RunOnce"
	if got := err.Error(); got != "panic in loop.RunOnce: test panic" {
		t.Errorf("Error() = %q", got)
	}
}

type recordingHandler struct {
	errors []*Error
	panics []*PanicError
}

func (r *recordingHandler) HandleError(err *Error)      { r.errors = append(r.errors, err) }
func (r *recordingHandler) HandlePanic(err *PanicError) { r.panics = append(r.panics, err) }

func TestReportSetsTimestamp(t *testing.T) {
	rec := &recordingHandler{}
	SetHandler(rec)
	defer SetHandler(nil)

	Recovered("scroll.Compute", KindOutOfRange, ErrOutOfRangeIndex)
	if len(rec.errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(rec.errors))
	}
	if rec.errors[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if !Is(rec.errors[0], ErrOutOfRangeIndex) {
		t.Error("expected out of range sentinel")
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	rec := &recordingHandler{}
	SetHandler(rec)
	defer SetHandler(nil)

	var got any
	func() {
		defer RecoverWithCallback("test.op", func(r any) { got = r })
		panic("kaboom")
	}()

	if got != "kaboom" {
		t.Errorf("callback got %v", got)
	}
	if len(rec.panics) != 1 || rec.panics[0].Op != "test.op" {
		t.Fatalf("panics = %+v", rec.panics)
	}
	if rec.panics[0].StackTrace == "" {
		t.Error("expected stack trace")
	}
}

func TestLogHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))}

	h.HandleError(&Error{Op: "focus.MoveNext", Kind: KindFocusUnavailable, Err: ErrFocusTargetUnavailable})
	if buf.Len() != 0 {
		t.Errorf("recovered condition should log at debug, got %q", buf.String())
	}

	h.HandleError(Host("host.PositionFloatingElement", New("detached anchor")))
	out := buf.String()
	if !strings.Contains(out, "op=host.PositionFloatingElement") || !strings.Contains(out, "kind=host") {
		t.Errorf("unexpected log output %q", out)
	}
}
