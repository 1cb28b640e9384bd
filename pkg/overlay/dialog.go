package overlay

import (
	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/focus"
	"github.com/go-drift/domkit/pkg/host"
)

// DialogOptions configures a Dialog.
type DialogOptions struct {
	// Modal shows the dialog with showModal and traps focus inside it.
	Modal bool
	// Persistent ignores Escape.
	Persistent bool
	// Stack, when set, records the dialog while it is open.
	Stack *Stack
	// OnClose runs after the dialog closed.
	OnClose func()
}

// Dialog controls one native dialog element.
type Dialog struct {
	ref     host.Ref
	opts    DialogOptions
	host    host.Dialogs
	focus   *focus.Manager
	open    bool
	restore string
	release func()
}

// NewDialog returns a closed dialog for the element ref. fm is the page's
// focus manager; it may be nil when focus is not managed.
func NewDialog(ref host.Ref, dialogs host.Dialogs, fm *focus.Manager, opts DialogOptions) *Dialog {
	return &Dialog{ref: ref, opts: opts, host: dialogs, focus: fm}
}

// Ref returns the dialog element reference.
func (d *Dialog) Ref() host.Ref {
	return d.ref
}

// IsOpen reports whether the dialog is shown.
func (d *Dialog) IsOpen() bool {
	return d.open
}

// Open shows the dialog. A modal dialog traps Tab inside itself and moves
// focus to its first focusable element; the previously focused element is
// remembered for Close. Opening an open dialog is a no-op.
func (d *Dialog) Open() error {
	if d.open {
		return nil
	}
	if err := host.ValidateRef(d.ref); err != nil {
		return errors.InvalidConfiguration("overlay.Dialog.Open", "%v", err)
	}
	show := d.host.ShowDialog
	if d.opts.Modal {
		show = d.host.ShowModalDialog
	}
	if err := show(d.ref); err != nil {
		return errors.Host("overlay.Dialog.Open", err)
	}
	d.open = true
	if d.opts.Stack != nil {
		d.opts.Stack.Push(d)
	}
	if d.focus == nil || !d.opts.Modal {
		return nil
	}
	d.restore, _ = d.focus.Current()
	d.focus.Invalidate()
	d.release = d.focus.Trap(string(d.ref))
	_, err := d.focus.MoveFirst()
	return err
}

// Close hides the dialog, releases the focus trap and restores focus to
// the element that had it before Open. Closing a closed dialog is a no-op.
func (d *Dialog) Close() error {
	if !d.open {
		return nil
	}
	if err := d.host.CloseDialog(d.ref); err != nil {
		return errors.Host("overlay.Dialog.Close", err)
	}
	d.open = false
	if d.opts.Stack != nil {
		d.opts.Stack.Remove(d)
	}
	var err error
	if d.release != nil {
		d.release()
		d.release = nil
		if d.restore != "" {
			err = d.focus.Focus(d.restore)
		}
		d.restore = ""
	}
	if d.opts.OnClose != nil {
		d.opts.OnClose()
	}
	return err
}

// Dismiss closes the dialog unless it is persistent.
func (d *Dialog) Dismiss() (bool, error) {
	if d.opts.Persistent || !d.open {
		return false, nil
	}
	if err := d.Close(); err != nil {
		return false, err
	}
	return true, nil
}
