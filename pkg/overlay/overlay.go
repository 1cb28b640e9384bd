// Package overlay drives host-managed floating surfaces: native dialogs
// with a focus trap, popovers, and tooltips positioned against an anchor.
//
// Host failures are returned to the caller wrapped as host errors; the
// overlay's own state only changes when the host call succeeds.
package overlay

import (
	"slices"

	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/focus"
	"github.com/go-drift/domkit/pkg/host"
)

// Entry is an open overlay on a Stack.
type Entry interface {
	Ref() host.Ref
	// Dismiss closes the entry in response to Escape or an outside click.
	// Persistent entries return false without closing.
	Dismiss() (bool, error)
}

// Stack tracks open overlays, topmost last. Escape dismisses the topmost
// entry only.
type Stack struct {
	entries []Entry
}

// Push records e as the topmost entry. Pushing an entry already on the
// stack moves it to the top.
func (s *Stack) Push(e Entry) {
	s.Remove(e)
	s.entries = append(s.entries, e)
}

// Remove drops e. Removing an entry not on the stack is a no-op.
func (s *Stack) Remove(e Entry) {
	s.entries = slices.DeleteFunc(s.entries, func(x Entry) bool { return x.Ref() == e.Ref() })
}

// Top returns the topmost entry.
func (s *Stack) Top() (Entry, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of open entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// HandleKey dismisses the topmost entry on Escape.
func (s *Stack) HandleKey(e *events.Event) (bool, error) {
	if e.Kind != events.KeyDown || e.Key != focus.KeyEscape {
		return false, nil
	}
	top, ok := s.Top()
	if !ok {
		return false, nil
	}
	closed, err := top.Dismiss()
	if closed {
		e.PreventDefault()
	}
	return closed, err
}
