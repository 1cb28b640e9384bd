package grid

import (
	"strconv"

	"github.com/go-drift/domkit/pkg/core"
	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/style"
)

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Build assembles the widget configuration for the current state: a header
// row, the leading spacer, the rows of the window and the trailing spacer.
// Handlers close over the controller, so events dispatched through the
// produced tree update it.
func (c *Controller[T]) Build() core.Config {
	c.ensure()
	th := c.opts.Theme

	root := core.NewDiv().
		WithID(c.opts.ID).
		WithClass(th.Class("grid")).
		WithAria("grid",
			core.Prop("rowcount", style.Int(len(c.order))),
			core.Prop("colcount", style.Int(len(c.columns))),
			core.Prop("multiselectable", style.Bool(c.opts.MultiSelect)),
		).
		On(events.KeyDown, func(e *events.Event) {
			if _, err := c.HandleKey(e); err != nil {
				reportHostError("grid.HandleKey", err)
			}
		})
	if id := c.ActiveDescendant(); id != "" {
		root = root.WithAria("", core.Prop("activedescendant", style.String(id)))
	}
	if len(c.order) == 0 {
		root = root.WithTabIndex(0)
	}

	body := core.NewDiv().
		WithID(c.opts.ID+"-body").
		WithClass(th.Class("grid-body")).
		WithAria("rowgroup").
		On(events.Scroll, func(e *events.Event) { c.Scroll(e.ScrollTop) }).
		On(events.Resize, func(e *events.Event) { c.Resize(e.ViewportHeight) })
	if c.VirtualScroll() {
		body = body.WithClass(th.Class("grid-virtual"))
	}

	w := c.window
	body = body.WithChild(c.spacer("leading", w.LeadingSpacer))
	if !w.Empty {
		for p := w.First; p <= w.Last; p++ {
			body = body.WithChild(c.buildRow(p))
		}
	}
	body = body.WithChild(c.spacer("trailing", w.TrailingSpacer))

	return root.WithChildren(c.buildHeader(), body)
}

func (c *Controller[T]) buildHeader() core.Config {
	th := c.opts.Theme
	header := core.NewDiv().WithClass(th.Class("grid-header")).WithAria("row")
	for _, col := range c.columns {
		cell := core.NewDiv().
			WithID(c.opts.ID+"-col-"+col.Key).
			WithClass(th.Class("grid-column-header")).
			WithAria("columnheader").
			WithChild(core.NewText(col.Header))
		if col.Sortable {
			key := col.Key
			cell = cell.
				WithClass(th.Class("sortable")).
				WithAria("", core.Prop("sort", style.String(c.SortDirection(key).String()))).
				On(events.Click, func(e *events.Event) {
					c.HeaderClick(key, e.Ctrl || e.Meta)
				})
		}
		header = header.WithChild(cell)
	}
	return header
}

func (c *Controller[T]) buildRow(p int) core.Config {
	th := c.opts.Theme
	row := c.rows[c.order[p]]
	key := c.keyFn(row)
	selected := c.Selected(key)

	cfg := core.NewDiv().
		WithKey(key).
		WithID(c.RowID(key)).
		WithClass(th.Class("grid-row")).
		WithTabIndex(c.focus.TabIndex(c.RowID(key))).
		WithStyle("height", px(c.heights.Offset(p+1)-c.heights.Offset(p))).
		WithAria("row",
			core.Prop("rowindex", style.Int(p+1)),
			core.Prop("selected", style.Bool(selected)),
		).
		On(events.Click, func(e *events.Event) {
			mode := Replace
			switch {
			case e.Shift && (e.Ctrl || e.Meta):
				mode = RangeToggle
			case e.Shift:
				mode = Range
			case e.Ctrl || e.Meta:
				mode = Toggle
			}
			c.Batch(func() {
				if err := c.FocusRow(key); err != nil {
					reportHostError("grid.FocusRow", err)
				}
				c.Select(key, mode)
			})
		})
	if selected {
		cfg = cfg.WithClass(th.Class("selected"))
	}
	if key == c.focused {
		cfg = cfg.WithClass(th.Class("row-cursor"))
	}
	for _, col := range c.columns {
		cfg = cfg.WithChild(core.NewDiv().
			WithClass(th.Class("grid-cell")).
			WithAria("gridcell").
			WithChild(core.NewText(col.text(row))))
	}
	return cfg
}

func (c *Controller[T]) spacer(name string, height float64) core.Config {
	return core.NewDiv().
		WithKey(name).
		WithClass(c.opts.Theme.Class("grid-spacer")).
		WithStyle("height", px(height)).
		WithAria("", core.Prop("hidden", style.Bool(true)))
}

func reportHostError(op string, err error) {
	var typed *errors.Error
	if errors.As(err, &typed) {
		errors.Report(typed)
		return
	}
	errors.Report(errors.Host(op, err))
}
