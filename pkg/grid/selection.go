package grid

import (
	"slices"

	"github.com/go-drift/domkit/pkg/errors"
)

// SelectMode is how Select combines the target row with the selection.
type SelectMode int

const (
	// Replace selects only the target row.
	Replace SelectMode = iota
	// Toggle flips the target row's membership.
	Toggle
	// Range adds every row between the anchor and the target in the
	// effective order to the selection.
	Range
	// RangeToggle flips every row between the anchor and the target.
	RangeToggle
)

// Select applies a selection gesture to the row with key. Unknown keys are
// ignored. With single selection Toggle can clear the selected row and the
// range modes behave like Replace. The anchor moves with Replace and Toggle
// only, so repeated range gestures extend from the same row.
func (c *Controller[T]) Select(key string, mode SelectMode) {
	if _, ok := c.byKey[key]; !ok {
		errors.Recovered("grid.Select", errors.KindOutOfRange, errors.ErrOutOfRangeIndex)
		return
	}
	c.ensure()
	if !c.opts.MultiSelect && mode != Toggle {
		mode = Replace
	}
	switch mode {
	case Toggle:
		if _, ok := c.selection[key]; ok {
			delete(c.selection, key)
		} else {
			if !c.opts.MultiSelect {
				clear(c.selection)
			}
			c.selection[key] = struct{}{}
		}
		c.anchor = key
	case Range, RangeToggle:
		from, okFrom := c.position[c.anchor]
		to, okTo := c.position[key]
		if !okFrom || !okTo {
			c.anchor = key
			c.flip(key, mode == RangeToggle)
			break
		}
		if from > to {
			from, to = to, from
		}
		for p := from; p <= to; p++ {
			c.flip(c.keyFn(c.rows[c.order[p]]), mode == RangeToggle)
		}
	default:
		clear(c.selection)
		c.selection[key] = struct{}{}
		c.anchor = key
	}
	c.touch()
}

// flip adds key to the selection, or toggles it when toggle is set.
func (c *Controller[T]) flip(key string, toggle bool) {
	if _, ok := c.selection[key]; ok && toggle {
		delete(c.selection, key)
		return
	}
	c.selection[key] = struct{}{}
}

// Deselect removes key from the selection.
func (c *Controller[T]) Deselect(key string) {
	if _, ok := c.selection[key]; !ok {
		return
	}
	delete(c.selection, key)
	c.touch()
}

// SelectAll selects every row in the effective order. It requires
// multi-selection.
func (c *Controller[T]) SelectAll() {
	if !c.opts.MultiSelect {
		return
	}
	for _, key := range c.Keys() {
		c.selection[key] = struct{}{}
	}
	c.touch()
}

// ClearSelection empties the selection.
func (c *Controller[T]) ClearSelection() {
	if len(c.selection) == 0 {
		return
	}
	clear(c.selection)
	c.anchor = ""
	c.touch()
}

// Selected reports whether key is selected, whether or not it is visible.
func (c *Controller[T]) Selected(key string) bool {
	_, ok := c.selection[key]
	return ok
}

// Selection returns the selected keys in data order, followed by any
// selected keys whose rows are no longer present, sorted.
func (c *Controller[T]) Selection() []string {
	keys := make([]string, 0, len(c.selection))
	for _, row := range c.rows {
		if k := c.keyFn(row); c.Selected(k) {
			keys = append(keys, k)
		}
	}
	var orphans []string
	for k := range c.selection {
		if _, ok := c.byKey[k]; !ok {
			orphans = append(orphans, k)
		}
	}
	slices.Sort(orphans)
	return append(keys, orphans...)
}

// SelectedVisible returns the selected keys in effective order, excluding
// rows hidden by filters.
func (c *Controller[T]) SelectedVisible() []string {
	var keys []string
	for _, k := range c.Keys() {
		if c.Selected(k) {
			keys = append(keys, k)
		}
	}
	return keys
}
