package grid

import (
	"context"

	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/loop"
)

// Loader fetches row data off the loop.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Load runs loader off the loop and installs its rows on completion. A
// load already pending is cancelled first. A failed load keeps the current
// rows and is available from LoadErr.
func (c *Controller[T]) Load(ctx context.Context, loader Loader[T]) error {
	if c.opts.Loop == nil {
		return errors.InvalidConfiguration("grid.Load", "grid %q has no loop", c.opts.ID)
	}
	c.Cancel()
	c.pending = loop.Defer(c.opts.Loop, ctx, func(ctx context.Context) ([]T, error) {
		return loader(ctx)
	}, func(rows []T, err error) {
		c.pending = nil
		c.loadErr = err
		if err != nil {
			c.touch()
			return
		}
		c.SetRows(rows)
	})
	return nil
}

// Cancel suppresses the completion of a pending load. Rows installed by an
// earlier load stay.
func (c *Controller[T]) Cancel() {
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
}

// Loading reports whether a load is pending.
func (c *Controller[T]) Loading() bool {
	return c.pending != nil
}

// LoadErr returns the error of the last completed load.
func (c *Controller[T]) LoadErr() error {
	return c.loadErr
}
