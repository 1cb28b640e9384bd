package loop

import "github.com/go-drift/domkit/pkg/host"

// Debouncer delays a callback until input has been quiet for a fixed
// interval, using the host's deferred sleep. Only the latest trigger fires;
// earlier completions are suppressed.
type Debouncer struct {
	loop    *Loop
	sleeper host.Sleeper
	delay   int
	pending *Pending
}

// NewDebouncer creates a debouncer waiting delayMs milliseconds.
func NewDebouncer(l *Loop, s host.Sleeper, delayMs int) *Debouncer {
	return &Debouncer{loop: l, sleeper: s, delay: delayMs}
}

// Trigger restarts the quiet interval; fn runs on the loop when it elapses.
// Must be called from the loop.
func (d *Debouncer) Trigger(fn func()) {
	d.pending.Cancel()
	d.pending = d.loop.Await(d.sleeper.DeferredSleep(d.delay), fn)
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	d.pending.Cancel()
	d.pending = nil
}

// Pending reports whether a callback is waiting.
func (d *Debouncer) Pending() bool {
	return d.pending != nil && !d.pending.Done() && !d.pending.Cancelled()
}
