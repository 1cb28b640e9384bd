// Package host declares the narrow function surface the toolkit calls on
// the hosting browser environment: native dialogs, popovers, floating
// element positioning, DOM focus, the session cookie, deferred sleeps and
// tree mounting.
//
// The toolkit never implements these; an embedding supplies a Host, and
// tests substitute a [Recorder].
package host

import (
	"fmt"
	"time"

	"github.com/go-drift/domkit/pkg/render"
)

// Ref identifies a host element by its id attribute.
type Ref string

// Placement is the preferred side of the anchor for a floating element.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
	PlacementLeft   Placement = "left"
	PlacementRight  Placement = "right"
	// Start and end variants follow the document direction.
	PlacementBottomStart Placement = "bottom-start"
	PlacementBottomEnd   Placement = "bottom-end"
)

// PositionOptions configures floating element placement.
type PositionOptions struct {
	Placement Placement
	// Offset is the gap between anchor and floating element in pixels.
	Offset float64
	// Flip allows moving to the opposite side when space runs out.
	Flip bool
	// Shift keeps the element inside the viewport along the cross axis.
	Shift bool
}

// Dialogs shows and closes native dialog elements.
type Dialogs interface {
	ShowModalDialog(ref Ref) error
	ShowDialog(ref Ref) error
	CloseDialog(ref Ref) error
}

// Popovers drives popover visibility.
type Popovers interface {
	ShowPopover(ref Ref) error
	HidePopover(ref Ref) error
	TogglePopover(ref Ref) error
}

// Positioner places floating elements relative to an anchor. It must be
// re-invoked whenever the anchor is resized.
type Positioner interface {
	PositionFloatingElement(anchor, floating Ref, opts PositionOptions) error
}

// Focuser moves DOM focus.
type Focuser interface {
	Focus(ref Ref) error
}

// CookieStore holds the session credential. Only the authentication
// surface uses it.
type CookieStore interface {
	GetCookie() (string, error)
	SetCookie(value string) error
	ClearCookie() error
}

// Sleeper provides timer completion signals for debouncing.
type Sleeper interface {
	// DeferredSleep returns a channel closed after ms milliseconds.
	DeferredSleep(ms int) <-chan struct{}
}

// Mounter attaches a produced render tree to the document. It is invoked
// once per produced tree.
type Mounter interface {
	Mount(root *render.Node) error
}

// Host is the complete collaborator surface.
type Host interface {
	Dialogs
	Popovers
	Positioner
	Focuser
	CookieStore
	Sleeper
	Mounter
}

// ValidateRef reports an error for an empty reference.
func ValidateRef(ref Ref) error {
	if ref == "" {
		return fmt.Errorf("empty element reference")
	}
	return nil
}

// TimerSleeper implements Sleeper with runtime timers, for hosts without a
// browser event loop.
type TimerSleeper struct{}

// DeferredSleep returns a channel closed after ms milliseconds.
func (TimerSleeper) DeferredSleep(ms int) <-chan struct{} {
	done := make(chan struct{})
	if ms <= 0 {
		close(done)
		return done
	}
	time.AfterFunc(time.Duration(ms)*time.Millisecond, func() { close(done) })
	return done
}
