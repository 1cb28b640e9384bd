package overlay

import (
	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/host"
)

// Popover controls one popover element.
type Popover struct {
	ref   host.Ref
	host  host.Popovers
	stack *Stack
	open  bool
}

// NewPopover returns a hidden popover. stack may be nil.
func NewPopover(ref host.Ref, popovers host.Popovers, stack *Stack) *Popover {
	return &Popover{ref: ref, host: popovers, stack: stack}
}

// Ref returns the popover element reference.
func (p *Popover) Ref() host.Ref {
	return p.ref
}

// IsOpen reports whether the popover is shown.
func (p *Popover) IsOpen() bool {
	return p.open
}

// Show opens the popover.
func (p *Popover) Show() error {
	if p.open {
		return nil
	}
	if err := p.host.ShowPopover(p.ref); err != nil {
		return errors.Host("overlay.Popover.Show", err)
	}
	p.setOpen(true)
	return nil
}

// Hide closes the popover.
func (p *Popover) Hide() error {
	if !p.open {
		return nil
	}
	if err := p.host.HidePopover(p.ref); err != nil {
		return errors.Host("overlay.Popover.Hide", err)
	}
	p.setOpen(false)
	return nil
}

// Toggle flips the popover through the host's toggle primitive.
func (p *Popover) Toggle() error {
	if err := p.host.TogglePopover(p.ref); err != nil {
		return errors.Host("overlay.Popover.Toggle", err)
	}
	p.setOpen(!p.open)
	return nil
}

// Dismiss hides the popover.
func (p *Popover) Dismiss() (bool, error) {
	if !p.open {
		return false, nil
	}
	if err := p.Hide(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Popover) setOpen(open bool) {
	p.open = open
	if p.stack == nil {
		return
	}
	if open {
		p.stack.Push(p)
	} else {
		p.stack.Remove(p)
	}
}

// ToggleListener returns a click handler for the element that opens the
// popover. Host errors are reported.
func (p *Popover) ToggleListener() events.Handler {
	return func(*events.Event) {
		if err := p.Toggle(); err != nil {
			errors.Report(asError(err))
		}
	}
}

func asError(err error) *errors.Error {
	var typed *errors.Error
	if errors.As(err, &typed) {
		return typed
	}
	return errors.Host("overlay", err)
}
