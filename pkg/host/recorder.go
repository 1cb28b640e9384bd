package host

import (
	"fmt"
	"sync"

	"github.com/go-drift/domkit/pkg/render"
)

// Call is one recorded host invocation.
type Call struct {
	Method  string
	Refs    []Ref
	Options PositionOptions
	Value   string
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Method, c.Refs)
}

// Recorder is a Host test double that records every call. Errors can be
// injected per method name; sleeps complete only when Wake is called.
type Recorder struct {
	mu      sync.Mutex
	calls   []Call
	fail    map[string]error
	cookie  string
	sleeps  []chan struct{}
	mounted []*render.Node
	focused Ref
}

var _ Host = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{fail: make(map[string]error)}
}

// FailOn makes every later call to method return err. A nil err clears it.
func (r *Recorder) FailOn(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.fail, method)
		return
	}
	r.fail[method] = err
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Methods returns the recorded method names in call order.
func (r *Recorder) Methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Method
	}
	return out
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Focused returns the last successfully focused reference.
func (r *Recorder) Focused() Ref {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.focused
}

// Mounted returns the trees passed to Mount.
func (r *Recorder) Mounted() []*render.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*render.Node(nil), r.mounted...)
}

// PendingSleeps returns the number of sleeps not yet woken.
func (r *Recorder) PendingSleeps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sleeps)
}

// Wake completes every pending sleep.
func (r *Recorder) Wake() {
	r.mu.Lock()
	sleeps := r.sleeps
	r.sleeps = nil
	r.mu.Unlock()
	for _, ch := range sleeps {
		close(ch)
	}
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return r.fail[c.Method]
}

func (r *Recorder) refCall(method string, refs ...Ref) error {
	for _, ref := range refs {
		if err := ValidateRef(ref); err != nil {
			return err
		}
	}
	return r.record(Call{Method: method, Refs: refs})
}

func (r *Recorder) ShowModalDialog(ref Ref) error { return r.refCall("ShowModalDialog", ref) }
func (r *Recorder) ShowDialog(ref Ref) error      { return r.refCall("ShowDialog", ref) }
func (r *Recorder) CloseDialog(ref Ref) error     { return r.refCall("CloseDialog", ref) }
func (r *Recorder) ShowPopover(ref Ref) error     { return r.refCall("ShowPopover", ref) }
func (r *Recorder) HidePopover(ref Ref) error     { return r.refCall("HidePopover", ref) }
func (r *Recorder) TogglePopover(ref Ref) error   { return r.refCall("TogglePopover", ref) }

func (r *Recorder) PositionFloatingElement(anchor, floating Ref, opts PositionOptions) error {
	if err := ValidateRef(anchor); err != nil {
		return err
	}
	if err := ValidateRef(floating); err != nil {
		return err
	}
	return r.record(Call{Method: "PositionFloatingElement", Refs: []Ref{anchor, floating}, Options: opts})
}

func (r *Recorder) Focus(ref Ref) error {
	if err := r.refCall("Focus", ref); err != nil {
		return err
	}
	r.mu.Lock()
	r.focused = ref
	r.mu.Unlock()
	return nil
}

func (r *Recorder) GetCookie() (string, error) {
	if err := r.record(Call{Method: "GetCookie"}); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cookie, nil
}

func (r *Recorder) SetCookie(value string) error {
	if err := r.record(Call{Method: "SetCookie", Value: value}); err != nil {
		return err
	}
	r.mu.Lock()
	r.cookie = value
	r.mu.Unlock()
	return nil
}

func (r *Recorder) ClearCookie() error {
	if err := r.record(Call{Method: "ClearCookie"}); err != nil {
		return err
	}
	r.mu.Lock()
	r.cookie = ""
	r.mu.Unlock()
	return nil
}

func (r *Recorder) DeferredSleep(ms int) <-chan struct{} {
	ch := make(chan struct{})
	r.mu.Lock()
	r.calls = append(r.calls, Call{Method: "DeferredSleep", Value: fmt.Sprint(ms)})
	r.sleeps = append(r.sleeps, ch)
	r.mu.Unlock()
	return ch
}

func (r *Recorder) Mount(root *render.Node) error {
	if err := r.record(Call{Method: "Mount"}); err != nil {
		return err
	}
	r.mu.Lock()
	r.mounted = append(r.mounted, root)
	r.mu.Unlock()
	return nil
}
