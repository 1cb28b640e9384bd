// Package loop provides the single-threaded cooperative event loop that owns
// all widget, grid and focus state.
//
// Callbacks run one at a time, in the order they were posted. Work that
// would block (fetching rows, timers) runs on other goroutines and marshals
// its completion back with Post; nothing else may touch loop-owned state.
package loop

import (
	"context"
	"sync"

	"github.com/go-drift/domkit/pkg/errors"
)

// Loop is a FIFO callback queue drained by one goroutine at a time.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
	work  sync.WaitGroup

	// Owned by the draining goroutine.
	inTurn    bool
	afterTurn []func()
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post schedules fn to run on the loop. It is safe to call from any
// goroutine; a nil fn is ignored.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// InTurn reports whether the caller is running inside a loop turn.
func (l *Loop) InTurn() bool {
	return l.inTurn
}

// AfterTurn registers fn to run once when the current turn finishes, after
// every callback of the turn. Outside a turn fn runs immediately.
func (l *Loop) AfterTurn(fn func()) {
	if !l.inTurn {
		fn()
		return
	}
	l.afterTurn = append(l.afterTurn, fn)
}

func (l *Loop) drain() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	callbacks := l.queue
	l.queue = nil
	return callbacks
}

// RunOnce runs one turn: every callback queued when the turn starts, then
// the after-turn hooks. Callbacks posted during the turn wait for the next
// one. It returns the number of callbacks run.
func (l *Loop) RunOnce() int {
	callbacks := l.drain()
	if len(callbacks) == 0 {
		return 0
	}
	l.inTurn = true
	for _, fn := range callbacks {
		l.run(fn)
	}
	for len(l.afterTurn) > 0 {
		hooks := l.afterTurn
		l.afterTurn = nil
		for _, fn := range hooks {
			l.run(fn)
		}
	}
	l.inTurn = false
	return len(callbacks)
}

func (l *Loop) run(fn func()) {
	defer errors.Recover("loop.RunOnce")
	fn()
}

// Drain runs turns until the queue is empty and returns the number of
// callbacks run.
func (l *Loop) Drain() int {
	total := 0
	for {
		n := l.RunOnce()
		if n == 0 {
			return total
		}
		total += n
	}
}

// Flush waits for all in-flight deferred work to post its completion, then
// drains the queue.
func (l *Loop) Flush() int {
	l.work.Wait()
	return l.Drain()
}

// Run drains turns as callbacks arrive until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Go runs fn on a new goroutine tracked by Flush.
func (l *Loop) Go(fn func()) {
	l.work.Add(1)
	go func() {
		defer l.work.Done()
		defer errors.Recover("loop.Go")
		fn()
	}()
}

// Pending is a deferred completion that can be cancelled from the loop.
type Pending struct {
	cancel    context.CancelFunc
	cancelled bool
	done      bool
}

// Cancel suppresses the completion callback if it has not run yet and
// cancels the work's context. State already applied is not retracted.
func (p *Pending) Cancel() {
	if p == nil {
		return
	}
	p.cancelled = true
	p.cancel()
}

// Done reports whether the completion callback ran.
func (p *Pending) Done() bool {
	return p != nil && p.done
}

// Cancelled reports whether Cancel was called before completion.
func (p *Pending) Cancelled() bool {
	return p != nil && p.cancelled
}

// Defer runs work off the loop and posts complete with its result back onto
// the loop, unless the returned Pending is cancelled first.
func Defer[T any](l *Loop, ctx context.Context, work func(ctx context.Context) (T, error), complete func(T, error)) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{cancel: cancel}
	l.Go(func() {
		v, err := work(ctx)
		l.Post(func() {
			defer cancel()
			if p.cancelled {
				return
			}
			p.done = true
			complete(v, err)
		})
	})
	return p
}

// Await posts fn to the loop once ch is closed or receives, unless the
// returned Pending is cancelled first.
func (l *Loop) Await(ch <-chan struct{}, fn func()) *Pending {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pending{cancel: cancel}
	l.Go(func() {
		select {
		case <-ch:
		case <-ctx.Done():
			return
		}
		l.Post(func() {
			defer cancel()
			if p.cancelled {
				return
			}
			p.done = true
			fn()
		})
	})
	return p
}
