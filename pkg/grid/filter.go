package grid

import (
	"maps"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Predicate reports whether a row passes a column filter.
type Predicate[T any] func(row T) bool

// FuzzyMatch returns a predicate matching rows whose column text contains
// the query's characters in order, ignoring case and diacritics. An empty
// query returns nil, which clears the filter.
func FuzzyMatch[T any](col Column[T], query string) Predicate[T] {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return func(row T) bool {
		return fuzzy.MatchNormalizedFold(query, col.text(row))
	}
}

// SetFilter installs the predicate for column, replacing any previous one.
// A nil predicate removes the column's filter.
func (c *Controller[T]) SetFilter(column string, pred Predicate[T]) {
	if !c.known("grid.SetFilter", column) {
		return
	}
	if pred == nil {
		if _, ok := c.filter[column]; !ok {
			return
		}
		delete(c.filter, column)
	} else {
		c.filter[column] = pred
	}
	c.invalidate()
}

// ClearFilters removes every column filter.
func (c *Controller[T]) ClearFilters() {
	if len(c.filter) == 0 {
		return
	}
	clear(c.filter)
	c.invalidate()
}

// Filtered returns the keys of the columns with an active filter.
func (c *Controller[T]) Filtered() []string {
	return slices.Sorted(maps.Keys(c.filter))
}

// SetFilterText filters column by fuzzy text match immediately.
func (c *Controller[T]) SetFilterText(column, query string) {
	col, ok := c.Column(column)
	if !ok {
		c.known("grid.SetFilterText", column)
		return
	}
	c.SetFilter(column, FuzzyMatch(col, query))
}

// FilterInput applies a text filter after the input has been quiet for
// the filter delay. Without a loop and sleeper it applies immediately. A
// newer input supersedes a pending one.
func (c *Controller[T]) FilterInput(column, query string) {
	if c.debounce == nil {
		c.SetFilterText(column, query)
		return
	}
	c.debounce.Trigger(func() { c.SetFilterText(column, query) })
}

// FilterPending reports whether a debounced filter is waiting.
func (c *Controller[T]) FilterPending() bool {
	return c.debounce != nil && c.debounce.Pending()
}

// accepts combines the column filters with logical AND. Columns without a
// predicate pass.
func (c *Controller[T]) accepts(row T) bool {
	for _, pred := range c.filter {
		if !pred(row) {
			return false
		}
	}
	return true
}
