// Package scroll computes the visible row window of a virtually scrolled
// list: which rows to materialize for a scroll offset and viewport, and the
// spacer heights that stand in for the rest.
package scroll

import (
	"math"

	"github.com/go-drift/domkit/pkg/errors"
)

// Window is the materialized row range and its spacers.
//
// For a non-empty window 0 <= First <= Last < total rows, and
// LeadingSpacer + rendered row heights + TrailingSpacer equals the full
// scrollable extent.
type Window struct {
	First          int
	Last           int
	LeadingSpacer  float64
	TrailingSpacer float64
	// Empty is set when there are no rows; First and Last are then zero.
	Empty bool
}

// Len returns the number of rows in the window.
func (w Window) Len() int {
	if w.Empty {
		return 0
	}
	return w.Last - w.First + 1
}

// Contains reports whether row i is materialized.
func (w Window) Contains(i int) bool {
	return !w.Empty && i >= w.First && i <= w.Last
}

// Engine computes windows. The zero value uses no overscan.
type Engine struct {
	// Overscan widens the window by this many rows on each side.
	Overscan int
}

// Compute uses the zero Engine.
func Compute(offset, viewport float64, heights RowHeights, total int) Window {
	return Engine{}.Compute(offset, viewport, heights, total)
}

// Compute returns the window for a scroll offset and viewport height.
//
// Offsets outside [0, extent-viewport] happen transiently during fast
// resizes; they are clamped and reported as recovered out-of-range
// conditions. A NaN offset counts as 0; a NaN or negative viewport as
// empty, and a viewport taller than the content as the content height.
func (e Engine) Compute(offset, viewport float64, heights RowHeights, total int) Window {
	if b, ok := heights.(Bounded); ok && total > b.Len() {
		errors.Recovered("scroll.Compute", errors.KindOutOfRange, errors.ErrOutOfRangeIndex)
		total = b.Len()
	}
	if total <= 0 || heights == nil {
		return Window{Empty: true}
	}
	if math.IsNaN(viewport) || viewport < 0 {
		viewport = 0
	}
	extent := heights.Offset(total)
	viewport = min(viewport, extent)
	if maxOffset := max(extent-viewport, 0); math.IsNaN(offset) || offset < 0 || offset > maxOffset {
		errors.Recovered("scroll.Compute", errors.KindOutOfRange, errors.ErrOutOfRangeIndex)
		if math.IsNaN(offset) {
			offset = 0
		}
		offset = max(0, min(offset, maxOffset))
	}

	var first, last int
	if h, ok := heights.(Fixed); ok && h > 0 {
		first = int(math.Floor(offset / float64(h)))
		last = min(total-1, first+int(math.Ceil(viewport/float64(h))))
		first = min(first, total-1)
	} else {
		first = heights.IndexAt(offset, total)
		last = heights.IndexAt(offset+viewport, total)
	}

	overscan := max(e.Overscan, 0)
	first = max(0, first-overscan)
	last = min(total-1, last+overscan)
	return window(heights, total, first, last)
}

// All returns the window covering every row, for lists that are not
// virtualized.
func All(heights RowHeights, total int) Window {
	if total <= 0 {
		return Window{Empty: true}
	}
	return window(heights, total, 0, total-1)
}

func window(heights RowHeights, total, first, last int) Window {
	return Window{
		First:          first,
		Last:           last,
		LeadingSpacer:  heights.Offset(first),
		TrailingSpacer: heights.Offset(total) - heights.Offset(last+1),
	}
}

// Extent returns the full scrollable height of total rows.
func Extent(heights RowHeights, total int) float64 {
	if total <= 0 {
		return 0
	}
	return heights.Offset(total)
}

// EnsureVisible returns the smallest change to offset that brings row index
// fully into the viewport. An index beyond the rows is clamped.
func EnsureVisible(offset, viewport float64, heights RowHeights, total, index int) float64 {
	if total <= 0 {
		return 0
	}
	if index < 0 || index >= total {
		errors.Recovered("scroll.EnsureVisible", errors.KindOutOfRange, errors.ErrOutOfRangeIndex)
		index = clamp(index, 0, total-1)
	}
	top := heights.Offset(index)
	bottom := heights.Offset(index + 1)
	switch {
	case top < offset:
		return top
	case bottom > offset+viewport:
		return max(0, bottom-viewport)
	}
	return offset
}
