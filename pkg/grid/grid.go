// Package grid implements the data grid controller: sort, filter and
// selection state over caller-owned rows, the effective row order derived
// from it, the virtual scroll window over that order, and keyboard row
// navigation.
//
// Rows are referenced by index and identified by key; selection and focus
// follow keys, so they survive any sort or filter change.
package grid

import (
	"cmp"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/focus"
	"github.com/go-drift/domkit/pkg/host"
	"github.com/go-drift/domkit/pkg/loop"
	"github.com/go-drift/domkit/pkg/scroll"
	"github.com/go-drift/domkit/pkg/theme"
)

const tracerName = "github.com/go-drift/domkit/pkg/grid"

// VirtualScrollTrigger is the row count from which virtual scrolling turns
// on when Options.VirtualScroll is unset.
const VirtualScrollTrigger = 30

// DefaultFilterDelay is the debounce interval for text filters in
// milliseconds.
const DefaultFilterDelay = 300

// Column describes one grid column.
type Column[T any] struct {
	// Key identifies the column in sort and filter state.
	Key string
	// Header is the column header text.
	Header string
	// Value renders the cell text. It is also the fallback sort key and the
	// text matched by FuzzyMatch.
	Value func(row T) string
	// Compare orders two rows by this column. Nil compares Value strings.
	Compare func(a, b T) int
	// Sortable reports whether header clicks change the sort.
	Sortable bool
}

func (c Column[T]) compare(a, b T) int {
	if c.Compare != nil {
		return c.Compare(a, b)
	}
	return cmp.Compare(c.text(a), c.text(b))
}

func (c Column[T]) text(row T) string {
	if c.Value == nil {
		return ""
	}
	return c.Value(row)
}

// Options configures a Controller. The zero value is usable apart from ID.
type Options struct {
	// ID is the grid element id; row ids derive from it.
	ID string
	// MultiSelect allows more than one selected row.
	MultiSelect bool
	// VirtualScroll forces virtual scrolling on or off. Nil enables it once
	// the data reaches VirtualScrollTrigger rows.
	VirtualScroll *bool
	// Theme supplies the default row height, class prefix and direction.
	Theme theme.Theme
	// RowHeight overrides the theme's fixed row height.
	RowHeight float64
	// Overscan extends the rendered window on each side.
	Overscan int
	// Viewport is the initial viewport height in pixels.
	Viewport float64
	// Wrap lets row navigation wrap at the ends. Grids clamp by default.
	Wrap bool
	// Loop owns the controller. When set, changes made during a loop turn
	// are published once at the end of the turn.
	Loop *loop.Loop
	// Focuser, when set, moves DOM focus to the focused row.
	Focuser host.Focuser
	// Sleeper debounces text filters. Nil applies them immediately.
	Sleeper host.Sleeper
	// FilterDelay is the text filter debounce in milliseconds.
	FilterDelay int
}

// Controller owns the grid state. It must only be used from the loop that
// owns it.
type Controller[T any] struct {
	opts    Options
	columns []Column[T]
	keyFn   func(T) string
	heightFn func(T) float64
	tracer  trace.Tracer

	rows   []T
	byKey  map[string]int
	sort   []SortKey
	filter map[string]Predicate[T]

	selection map[string]struct{}
	anchor    string
	focused   string

	order    []int
	position map[string]int
	heights  scroll.RowHeights
	offset   float64
	viewport float64
	window   scroll.Window

	focus     *focus.Manager
	debounce  *loop.Debouncer
	pending   *loop.Pending
	loadErr   error
	batching  int
	dirty     bool
	scheduled bool
	changed   bool
	onChange  []func()
}

// New creates a controller over columns. key extracts a row's unique key.
func New[T any](columns []Column[T], key func(T) string, opts Options) (*Controller[T], error) {
	if strings.TrimSpace(opts.ID) == "" {
		return nil, errors.InvalidConfiguration("grid.New", "empty grid id")
	}
	if key == nil {
		return nil, errors.InvalidConfiguration("grid.New", "nil row key function")
	}
	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		if col.Key == "" {
			return nil, errors.InvalidConfiguration("grid.New", "column %d has an empty key", i)
		}
		if seen[col.Key] {
			return nil, errors.InvalidConfiguration("grid.New", "duplicate column key %q", col.Key)
		}
		seen[col.Key] = true
	}
	if opts.FilterDelay <= 0 {
		opts.FilterDelay = DefaultFilterDelay
	}

	c := &Controller[T]{
		opts:      opts,
		columns:   columns,
		keyFn:     key,
		tracer:    otel.Tracer(tracerName),
		byKey:     make(map[string]int),
		filter:    make(map[string]Predicate[T]),
		selection: make(map[string]struct{}),
		position:  make(map[string]int),
		viewport:  opts.Viewport,
	}
	wrap := focus.Clamp
	if opts.Wrap {
		wrap = focus.Wrap
	}
	fopts := []focus.Option{
		focus.WithGroup(opts.ID),
		focus.WithWrapPolicy(wrap),
		focus.WithDirection(opts.Theme.Direction),
	}
	if opts.Focuser != nil {
		fopts = append(fopts, focus.WithFocuser(opts.Focuser))
	}
	c.focus = focus.NewManager(focus.SourceFunc(c.focusGraph), fopts...)
	if opts.Loop != nil && opts.Sleeper != nil {
		c.debounce = loop.NewDebouncer(opts.Loop, opts.Sleeper, opts.FilterDelay)
	}
	c.recompute()
	return c, nil
}

// ID returns the grid element id.
func (c *Controller[T]) ID() string {
	return c.opts.ID
}

// Columns returns the column definitions.
func (c *Controller[T]) Columns() []Column[T] {
	return c.columns
}

// Column looks up a column by key.
func (c *Controller[T]) Column(key string) (Column[T], bool) {
	for _, col := range c.columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

// RowID returns the stable element id of the row with key.
func (c *Controller[T]) RowID(key string) string {
	return fmt.Sprintf("%s-row-%s", c.opts.ID, key)
}

// OnChange registers fn to run after every published state change.
func (c *Controller[T]) OnChange(fn func()) {
	if fn != nil {
		c.onChange = append(c.onChange, fn)
	}
}

// SetRowHeight switches to variable row heights computed per row. A nil fn
// restores the fixed height.
func (c *Controller[T]) SetRowHeight(fn func(row T) float64) {
	c.heightFn = fn
	c.invalidate()
}

// SetRows replaces the row data. The slice is referenced, not copied; the
// caller must not mutate it while the controller uses it. Selection keys
// are kept even when their rows are gone.
func (c *Controller[T]) SetRows(rows []T) {
	c.rows = rows
	c.byKey = make(map[string]int, len(rows))
	for i, r := range rows {
		c.byKey[c.keyFn(r)] = i
	}
	c.invalidate()
}

// Rows returns the row data as supplied.
func (c *Controller[T]) Rows() []T {
	return c.rows
}

// Row returns the row with key.
func (c *Controller[T]) Row(key string) (T, bool) {
	i, ok := c.byKey[key]
	if !ok {
		var zero T
		return zero, false
	}
	return c.rows[i], true
}

// Len returns the number of rows in the effective order.
func (c *Controller[T]) Len() int {
	c.ensure()
	return len(c.order)
}

// Order returns the effective row order as indices into Rows.
func (c *Controller[T]) Order() []int {
	c.ensure()
	return append([]int(nil), c.order...)
}

// Keys returns the row keys in effective order.
func (c *Controller[T]) Keys() []string {
	c.ensure()
	keys := make([]string, len(c.order))
	for i, idx := range c.order {
		keys[i] = c.keyFn(c.rows[idx])
	}
	return keys
}

// Position returns a key's position in the effective order.
func (c *Controller[T]) Position(key string) (int, bool) {
	c.ensure()
	p, ok := c.position[key]
	return p, ok
}

// VirtualScroll reports whether only the visible window is rendered.
func (c *Controller[T]) VirtualScroll() bool {
	if c.opts.VirtualScroll != nil {
		return *c.opts.VirtualScroll
	}
	return len(c.rows) >= VirtualScrollTrigger
}

// RowHeight returns the fixed row height in pixels.
func (c *Controller[T]) RowHeight() float64 {
	if c.opts.RowHeight > 0 {
		return c.opts.RowHeight
	}
	return c.opts.Theme.GridRowHeight()
}
