package grid

import (
	"slices"

	"github.com/go-drift/domkit/pkg/errors"
)

// Direction is a column's sort direction.
type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

// String returns the aria-sort token.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "none"
	}
}

// next cycles none, ascending, descending, none.
func (d Direction) next() Direction {
	switch d {
	case None:
		return Ascending
	case Ascending:
		return Descending
	default:
		return None
	}
}

// SortKey is one entry of the sort order.
type SortKey struct {
	Column    string
	Direction Direction
}

// Sort returns the sort keys, primary column first.
func (c *Controller[T]) Sort() []SortKey {
	return slices.Clone(c.sort)
}

// SortDirection returns the direction a column sorts in.
func (c *Controller[T]) SortDirection(column string) Direction {
	if i := c.sortIndex(column); i >= 0 {
		return c.sort[i].Direction
	}
	return None
}

func (c *Controller[T]) sortIndex(column string) int {
	return slices.IndexFunc(c.sort, func(k SortKey) bool { return k.Column == column })
}

func (c *Controller[T]) known(op, column string) bool {
	if _, ok := c.Column(column); !ok {
		errors.Report(errors.InvalidConfiguration(op, "unknown column %q", column))
		return false
	}
	return true
}

// SetSort sets one column's direction inside the sort keys. A column
// already present keeps its rank; a new one is appended as the lowest
// priority tie-breaker; None removes it.
func (c *Controller[T]) SetSort(column string, dir Direction) {
	if !c.known("grid.SetSort", column) {
		return
	}
	c.sort = setDirection(c.sort, column, dir)
	c.invalidate()
}

// ToggleSort makes column the only sort column and cycles its direction
// none, ascending, descending, none. A column that was not the sole sort
// column starts at ascending.
func (c *Controller[T]) ToggleSort(column string) {
	if !c.known("grid.ToggleSort", column) {
		return
	}
	dir := Ascending
	if len(c.sort) == 1 && c.sort[0].Column == column {
		dir = c.sort[0].Direction.next()
	}
	c.sort = setDirection(nil, column, dir)
	c.invalidate()
}

// AddSort cycles column's direction while keeping the other sort columns,
// appending it as the lowest priority when absent.
func (c *Controller[T]) AddSort(column string) {
	if !c.known("grid.AddSort", column) {
		return
	}
	c.sort = setDirection(c.sort, column, c.SortDirection(column).next())
	c.invalidate()
}

// ClearSort restores the data order.
func (c *Controller[T]) ClearSort() {
	if len(c.sort) == 0 {
		return
	}
	c.sort = nil
	c.invalidate()
}

// HeaderClick applies a header activation: with the multi-sort modifier the
// column is added to the sort, otherwise it replaces it. Unsortable columns
// are ignored.
func (c *Controller[T]) HeaderClick(column string, multi bool) {
	col, ok := c.Column(column)
	if !ok || !col.Sortable {
		return
	}
	if multi {
		c.AddSort(column)
	} else {
		c.ToggleSort(column)
	}
}

func setDirection(keys []SortKey, column string, dir Direction) []SortKey {
	out := slices.Clone(keys)
	i := slices.IndexFunc(out, func(k SortKey) bool { return k.Column == column })
	switch {
	case dir == None && i >= 0:
		return slices.Delete(out, i, i+1)
	case dir == None:
		return out
	case i >= 0:
		out[i].Direction = dir
		return out
	}
	return append(out, SortKey{Column: column, Direction: dir})
}

// comparators resolves the sort keys into row comparators, primary
// first.
func (c *Controller[T]) comparators() []func(a, b T) int {
	var out []func(a, b T) int
	for _, key := range c.sort {
		col, ok := c.Column(key.Column)
		if !ok || key.Direction == None {
			continue
		}
		if key.Direction == Descending {
			out = append(out, func(a, b T) int { return col.compare(b, a) })
		} else {
			out = append(out, col.compare)
		}
	}
	return out
}
