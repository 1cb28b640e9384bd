package overlay

import (
	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/host"
)

// TooltipHost is the host surface a tooltip needs.
type TooltipHost interface {
	host.Popovers
	host.Positioner
}

// Tooltip is a manual popover positioned against an anchor. While shown it
// must be repositioned whenever the anchor resizes.
type Tooltip struct {
	anchor   host.Ref
	popover  *Popover
	position host.Positioner
	options  host.PositionOptions
}

// NewTooltip returns a hidden tooltip for floating, anchored to anchor.
func NewTooltip(anchor, floating host.Ref, h TooltipHost, opts host.PositionOptions) *Tooltip {
	if opts.Placement == "" {
		opts.Placement = host.PlacementTop
	}
	return &Tooltip{
		anchor:   anchor,
		popover:  NewPopover(floating, h, nil),
		position: h,
		options:  opts,
	}
}

// IsOpen reports whether the tooltip is shown.
func (t *Tooltip) IsOpen() bool {
	return t.popover.IsOpen()
}

// Show opens the tooltip and positions it.
func (t *Tooltip) Show() error {
	if t.popover.IsOpen() {
		return nil
	}
	if err := t.popover.Show(); err != nil {
		return err
	}
	return t.Reposition()
}

// Hide closes the tooltip.
func (t *Tooltip) Hide() error {
	return t.popover.Hide()
}

// Reposition recomputes the placement. It is a no-op while hidden.
func (t *Tooltip) Reposition() error {
	if !t.popover.IsOpen() {
		return nil
	}
	if err := t.position.PositionFloatingElement(t.anchor, t.popover.Ref(), t.options); err != nil {
		return errors.Host("overlay.Tooltip.Reposition", err)
	}
	return nil
}

// Listeners returns the handlers to attach to the anchor: pointer and
// focus show and hide the tooltip, resize repositions it. Host errors are
// reported.
func (t *Tooltip) Listeners() events.Registry {
	run := func(fn func() error) events.Handler {
		return func(*events.Event) {
			if err := fn(); err != nil {
				errors.Report(asError(err))
			}
		}
	}
	return events.Registry{}.
		On(events.PointerEnter, run(t.Show)).
		On(events.Focus, run(t.Show)).
		On(events.PointerLeave, run(t.Hide)).
		On(events.Blur, run(t.Hide)).
		On(events.Resize, run(t.Reposition))
}
