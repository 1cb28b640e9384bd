package grid

import (
	"strings"

	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/focus"
	"github.com/go-drift/domkit/pkg/scroll"
)

const (
	keySpace    = " "
	keyEnter    = "Enter"
	keyPageUp   = "PageUp"
	keyPageDown = "PageDown"
)

// focusGraph exposes the rows in effective order as one roving group.
func (c *Controller[T]) focusGraph() focus.Graph {
	c.ensure()
	g := focus.Graph{Entries: make([]focus.Entry, len(c.order))}
	for p, idx := range c.order {
		key := c.keyFn(c.rows[idx])
		tab := -1
		if key == c.focused {
			tab = 0
		}
		g.Entries[p] = focus.Entry{ID: c.RowID(key), Group: c.opts.ID, TabIndex: tab}
	}
	return g
}

func (c *Controller[T]) rowKey(id string) string {
	return strings.TrimPrefix(id, c.opts.ID+"-row-")
}

// Focused returns the key of the row holding keyboard focus. The row may
// currently be hidden by a filter.
func (c *Controller[T]) Focused() (string, bool) {
	return c.focused, c.focused != ""
}

// ActiveDescendant returns the element id of the focused row, or "" when
// no visible row has focus.
func (c *Controller[T]) ActiveDescendant() string {
	if _, ok := c.Position(c.focused); !ok || c.focused == "" {
		return ""
	}
	return c.RowID(c.focused)
}

// TabIndex returns the roving tabindex of a row: 0 for the row keyboard
// focus enters at, -1 for the rest.
func (c *Controller[T]) TabIndex(key string) int {
	c.ensure()
	return c.focus.TabIndex(c.RowID(key))
}

// FocusRow moves row focus to key and scrolls it into view. A key that is
// not visible is a no-op.
func (c *Controller[T]) FocusRow(key string) error {
	if _, ok := c.Position(key); !ok {
		errors.Recovered("grid.FocusRow", errors.KindFocusUnavailable, errors.ErrFocusTargetUnavailable)
		return nil
	}
	if err := c.focus.Focus(c.RowID(key)); err != nil {
		return err
	}
	c.setFocused(key)
	return nil
}

func (c *Controller[T]) setFocused(key string) {
	c.focused = key
	c.offset = c.ScrollOffsetFor(key)
	c.updateWindow()
	c.touch()
}

// ScrollOffsetFor returns the scroll offset that brings key's row fully
// into view with the least movement. Hidden keys keep the current offset.
func (c *Controller[T]) ScrollOffsetFor(key string) float64 {
	p, ok := c.Position(key)
	if !ok {
		return c.offset
	}
	return scroll.EnsureVisible(c.offset, c.viewport, c.heights, len(c.order), p)
}

// pageRows is the number of rows a page key moves from the focused row: the
// rows covered by one viewport height in that direction under the current
// height model.
func (c *Controller[T]) pageRows(forward bool) int {
	c.ensure()
	n := len(c.order)
	p, ok := c.Position(c.focused)
	if !ok || n == 0 || c.heights == nil {
		return max(1, int(c.viewport/c.RowHeight()))
	}
	top := c.heights.Offset(p)
	if forward {
		return max(1, c.heights.IndexAt(top+c.viewport, n)-p)
	}
	return max(1, p-c.heights.IndexAt(max(0, top-c.viewport), n))
}

func (c *Controller[T]) move(step func() (string, error)) error {
	c.ensure()
	id, err := step()
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	c.setFocused(c.rowKey(id))
	return nil
}

// HandleKey applies a key-down event to the grid: ArrowUp/ArrowDown move
// row focus, Home/End jump to the first and last rows, PageUp/PageDown move
// by a page, Space and Enter toggle the focused row's selection. Shift
// extends the selection from the anchor. Ctrl+A selects all rows.
func (c *Controller[T]) HandleKey(e *events.Event) (bool, error) {
	if e.Kind != events.KeyDown {
		return false, nil
	}
	var err error
	switch e.Key {
	case keySpace, keyEnter:
		if _, ok := c.Position(c.focused); !ok || c.focused == "" {
			return false, nil
		}
		mode := Toggle
		if e.Shift {
			mode = Range
		}
		c.Select(c.focused, mode)
	case keyPageDown:
		err = c.move(func() (string, error) { return c.focus.MoveBy(c.pageRows(true)) })
	case keyPageUp:
		err = c.move(func() (string, error) { return c.focus.MoveBy(-c.pageRows(false)) })
	case "a", "A":
		if !e.Ctrl && !e.Meta {
			return false, nil
		}
		c.SelectAll()
	case focus.KeyArrowUp, focus.KeyArrowDown, focus.KeyHome, focus.KeyEnd:
		action := focus.ArrowAction(e.Key, c.opts.Theme.Direction)
		err = c.move(func() (string, error) { return c.focus.Perform(action) })
		if err == nil && e.Shift && c.opts.MultiSelect && c.focused != "" {
			c.Select(c.focused, Range)
		}
	default:
		return false, nil
	}
	e.PreventDefault()
	return true, err
}
