package grid

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/go-drift/domkit/pkg/scroll"
)

// invalidate marks the derived state stale. Outside a batch or loop turn it
// is recomputed and published immediately; inside one, once at the end.
func (c *Controller[T]) invalidate() {
	c.dirty = true
	c.touch()
}

// touch publishes a change that leaves the row order intact.
func (c *Controller[T]) touch() {
	c.changed = true
	if c.batching > 0 {
		return
	}
	if l := c.opts.Loop; l != nil && l.InTurn() {
		if !c.scheduled {
			c.scheduled = true
			l.AfterTurn(c.flush)
		}
		return
	}
	c.flush()
}

// ensure brings derived state up to date without publishing.
func (c *Controller[T]) ensure() {
	if c.dirty {
		c.recompute()
	}
}

func (c *Controller[T]) flush() {
	c.scheduled = false
	c.ensure()
	if !c.changed {
		return
	}
	c.changed = false
	for _, fn := range c.onChange {
		fn()
	}
}

// Batch applies fn's changes as one update: derived state is recomputed and
// published once, after fn returns.
func (c *Controller[T]) Batch(fn func()) {
	c.batching++
	defer func() {
		c.batching--
		if c.batching == 0 && c.changed {
			c.touch()
		}
	}()
	fn()
}

// recompute derives the effective order (filter then stable sort over the
// identity sequence), the key positions, the height model and the window.
func (c *Controller[T]) recompute() {
	_, span := c.tracer.Start(context.Background(), "grid.Recompute")
	defer span.End()

	order := make([]int, 0, len(c.rows))
	for i, row := range c.rows {
		if c.accepts(row) {
			order = append(order, i)
		}
	}
	if comparators := c.comparators(); len(comparators) > 0 {
		slices.SortStableFunc(order, func(a, b int) int {
			for _, cmp := range comparators {
				if r := cmp(c.rows[a], c.rows[b]); r != 0 {
					return r
				}
			}
			return 0
		})
	}

	position := make(map[string]int, len(order))
	for p, idx := range order {
		position[c.keyFn(c.rows[idx])] = p
	}
	c.order = order
	c.position = position

	if c.heightFn != nil {
		c.heights = scroll.NewVariableFunc(len(order), func(i int) float64 {
			return c.heightFn(c.rows[order[i]])
		})
	} else {
		c.heights = scroll.Fixed(c.RowHeight())
	}
	c.dirty = false
	c.focus.Invalidate()
	c.updateWindow()

	span.SetAttributes(
		attribute.Int("grid.rows", len(c.rows)),
		attribute.Int("grid.visible", len(order)),
		attribute.Int("grid.window", c.window.Len()),
	)
}

func (c *Controller[T]) updateWindow() {
	if !c.VirtualScroll() {
		c.window = scroll.All(c.heights, len(c.order))
		return
	}
	c.window = scroll.Engine{Overscan: c.opts.Overscan}.Compute(c.offset, c.viewport, c.heights, len(c.order))
	if ext := scroll.Extent(c.heights, len(c.order)); c.offset > max(ext-c.viewport, 0) {
		c.offset = max(ext-c.viewport, 0)
	}
}

// Window returns the rendered row window over the effective order.
func (c *Controller[T]) Window() scroll.Window {
	c.ensure()
	return c.window
}

// Heights returns the row height model over the effective order.
func (c *Controller[T]) Heights() scroll.RowHeights {
	c.ensure()
	return c.heights
}

// Offset returns the scroll offset.
func (c *Controller[T]) Offset() float64 {
	return c.offset
}

// Viewport returns the viewport height.
func (c *Controller[T]) Viewport() float64 {
	return c.viewport
}

// Scroll sets the scroll offset and recomputes the window.
func (c *Controller[T]) Scroll(offset float64) {
	c.ensure()
	c.offset = max(offset, 0)
	c.updateWindow()
	c.touch()
}

// Resize sets the viewport height and recomputes the window.
func (c *Controller[T]) Resize(viewport float64) {
	c.ensure()
	c.viewport = max(viewport, 0)
	c.updateWindow()
	c.touch()
}

// VisibleKeys returns the keys of the rows in the window.
func (c *Controller[T]) VisibleKeys() []string {
	w := c.Window()
	if w.Empty {
		return nil
	}
	keys := make([]string, 0, w.Len())
	for p := w.First; p <= w.Last; p++ {
		keys = append(keys, c.keyFn(c.rows[c.order[p]]))
	}
	return keys
}
