package testing

import (
	"fmt"

	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/render"
)

// Dispatch delivers e to the node identified by e.TargetID, bubbling through
// its ancestors, then pumps. It returns the event so callers can inspect
// DefaultPrevented.
func (t *Tester) Dispatch(e *events.Event) (*events.Event, error) {
	if t.root == nil {
		return e, errors.New("nothing pumped")
	}
	if t.root.FindByID(e.TargetID) == nil {
		return e, fmt.Errorf("no node with id %q", e.TargetID)
	}
	t.root.Dispatch(e)
	return e, t.Pump()
}

// target resolves finder to the single node an event is delivered to.
func (t *Tester) target(finder Finder) (*render.Node, error) {
	n := t.Find(finder).FirstOrNil()
	if n == nil {
		return nil, fmt.Errorf("finder found no nodes: %s", finder.Description())
	}
	if n.ID() == "" {
		return nil, fmt.Errorf("target has no id: %s", finder.Description())
	}
	return n, nil
}

func (t *Tester) send(finder Finder, e events.Event) (*events.Event, error) {
	n, err := t.target(finder)
	if err != nil {
		return nil, err
	}
	e.TargetID = n.ID()
	return t.Dispatch(&e)
}

// Click sends a click to the first node matched by finder.
func (t *Tester) Click(finder Finder) error {
	_, err := t.send(finder, events.Event{Kind: events.Click})
	return err
}

// ClickWith sends a click with modifier keys held.
func (t *Tester) ClickWith(finder Finder, mods events.Modifiers) error {
	_, err := t.send(finder, events.Event{Kind: events.Click, Modifiers: mods})
	return err
}

// KeyDown sends a keydown for key and returns the delivered event.
func (t *Tester) KeyDown(finder Finder, key string, mods ...events.Modifiers) (*events.Event, error) {
	e := events.Event{Kind: events.KeyDown, Key: key}
	if len(mods) > 0 {
		e.Modifiers = mods[0]
	}
	return t.send(finder, e)
}

// Type sends an input event carrying value.
func (t *Tester) Type(finder Finder, value string) error {
	_, err := t.send(finder, events.Event{Kind: events.Input, Value: value})
	return err
}

// Scroll sends a scroll event with the given scrollTop.
func (t *Tester) Scroll(finder Finder, top float64) error {
	_, err := t.send(finder, events.Event{Kind: events.Scroll, ScrollTop: top})
	return err
}

// Resize sends a resize event with the given viewport height.
func (t *Tester) Resize(finder Finder, viewport float64) error {
	_, err := t.send(finder, events.Event{Kind: events.Resize, ViewportHeight: viewport})
	return err
}

// Hover sends pointerenter, or pointerleave when entering is false.
func (t *Tester) Hover(finder Finder, entering bool) error {
	kind := events.PointerLeave
	if entering {
		kind = events.PointerEnter
	}
	_, err := t.send(finder, events.Event{Kind: kind})
	return err
}
