package grid

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dkerrors "github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/host"
	"github.com/go-drift/domkit/pkg/loop"
	"github.com/go-drift/domkit/pkg/render"
	"github.com/go-drift/domkit/pkg/theme"
)

type item struct {
	ID   int
	Name string
	Team string
}

func itemKey(r item) string { return strconv.Itoa(r.ID) }

func itemColumns() []Column[item] {
	return []Column[item]{
		{Key: "id", Header: "ID", Value: func(r item) string { return strconv.Itoa(r.ID) },
			Compare: func(a, b item) int { return a.ID - b.ID }, Sortable: true},
		{Key: "name", Header: "Name", Value: func(r item) string { return r.Name }, Sortable: true},
		{Key: "team", Header: "Team", Value: func(r item) string { return r.Team }},
	}
}

func newGrid(t *testing.T, rows []item, opts Options) *Controller[item] {
	t.Helper()
	if opts.ID == "" {
		opts.ID = "g"
	}
	g, err := New(itemColumns(), itemKey, opts)
	require.NoError(t, err)
	g.SetRows(rows)
	return g
}

func ids(g *Controller[item]) []int {
	var out []int
	for _, idx := range g.Order() {
		out = append(out, g.Rows()[idx].ID)
	}
	return out
}

var threeRows = []item{{ID: 1, Name: "b"}, {ID: 2, Name: "a"}, {ID: 3, Name: "c"}}

func TestToggleSortCycles(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	assert.Equal(t, []int{1, 2, 3}, ids(g))

	g.ToggleSort("name")
	assert.Equal(t, []int{2, 1, 3}, ids(g))
	assert.Equal(t, Ascending, g.SortDirection("name"))

	g.ToggleSort("name")
	assert.Equal(t, []int{3, 1, 2}, ids(g))

	g.ToggleSort("name")
	assert.Equal(t, []int{1, 2, 3}, ids(g))
	assert.Empty(t, g.Sort())
}

func TestToggleSortReplacesOtherColumns(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	g.SetSort("id", Descending)
	g.SetSort("name", Ascending)
	g.ToggleSort("name")
	assert.Equal(t, []SortKey{{Column: "name", Direction: Ascending}}, g.Sort())
}

func TestSortIsStable(t *testing.T) {
	rows := []item{
		{ID: 1, Name: "x", Team: "red"},
		{ID: 2, Name: "y", Team: "blue"},
		{ID: 3, Name: "x", Team: "blue"},
		{ID: 4, Name: "y", Team: "red"},
		{ID: 5, Name: "x", Team: "red"},
	}
	g := newGrid(t, rows, Options{})
	g.SetSort("name", Ascending)
	assert.Equal(t, []int{1, 3, 5, 2, 4}, ids(g))

	g.SetSort("name", Descending)
	assert.Equal(t, []int{2, 4, 1, 3, 5}, ids(g))
}

func TestSecondaryColumnBreaksTies(t *testing.T) {
	rows := []item{
		{ID: 1, Name: "x", Team: "red"},
		{ID: 2, Name: "y", Team: "blue"},
		{ID: 3, Name: "x", Team: "blue"},
		{ID: 4, Name: "y", Team: "red"},
	}
	g := newGrid(t, rows, Options{})
	g.SetSort("name", Ascending)
	g.SetSort("id", Descending)
	assert.Equal(t, []int{3, 1, 4, 2}, ids(g))

	// Re-setting the primary keeps its rank.
	g.SetSort("name", Descending)
	assert.Equal(t, []int{4, 2, 3, 1}, ids(g))
	assert.Equal(t, "name", g.Sort()[0].Column)
}

func TestAddSortCyclesInPlace(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	g.AddSort("name")
	g.AddSort("id")
	assert.Equal(t, []SortKey{{"name", Ascending}, {"id", Ascending}}, g.Sort())
	g.AddSort("name")
	assert.Equal(t, []SortKey{{"name", Descending}, {"id", Ascending}}, g.Sort())
	g.AddSort("name")
	assert.Equal(t, []SortKey{{"id", Ascending}}, g.Sort())
}

func TestHeaderClick(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	g.HeaderClick("team", false)
	assert.Empty(t, g.Sort(), "unsortable column")
	g.HeaderClick("name", false)
	g.HeaderClick("id", true)
	assert.Len(t, g.Sort(), 2)
}

func TestUnknownColumnIsIgnored(t *testing.T) {
	dkerrors.SetHandler(discard{})
	defer dkerrors.SetHandler(nil)

	g := newGrid(t, threeRows, Options{})
	g.SetSort("missing", Ascending)
	g.SetFilter("missing", func(item) bool { return false })
	assert.Empty(t, g.Sort())
	assert.Equal(t, 3, g.Len())
}

type discard struct{}

func (discard) HandleError(*dkerrors.Error)      {}
func (discard) HandlePanic(*dkerrors.PanicError) {}

func TestFiltersCombineWithAnd(t *testing.T) {
	rows := []item{
		{ID: 1, Name: "alpha", Team: "red"},
		{ID: 2, Name: "beta", Team: "red"},
		{ID: 3, Name: "alpine", Team: "blue"},
	}
	g := newGrid(t, rows, Options{})
	g.SetFilterText("name", "alp")
	assert.Equal(t, []int{1, 3}, ids(g))
	g.SetFilter("team", func(r item) bool { return r.Team == "red" })
	assert.Equal(t, []int{1}, ids(g))
	assert.Equal(t, []string{"name", "team"}, g.Filtered())

	g.SetFilterText("name", "")
	assert.Equal(t, []int{1, 2}, ids(g))
	g.ClearFilters()
	assert.Equal(t, 3, g.Len())
}

func TestSelectionPersistsAcrossFilter(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	g.Select("1", Replace)
	g.SetFilter("name", func(r item) bool { return r.Name != "b" })

	assert.NotContains(t, g.Keys(), "1")
	assert.True(t, g.Selected("1"))
	assert.Equal(t, []string{"1"}, g.Selection())
	assert.Empty(t, g.SelectedVisible())

	g.SetFilter("name", nil)
	assert.Contains(t, g.Keys(), "1")
	assert.Equal(t, []string{"1"}, g.SelectedVisible())
}

func TestSelectionFollowsKeysAcrossSort(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	g.Select("3", Replace)
	g.ToggleSort("name")
	g.ToggleSort("name")
	p, ok := g.Position("3")
	require.True(t, ok)
	assert.Equal(t, 0, p)
	assert.True(t, g.Selected("3"))
}

func TestSingleSelectModes(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	g.Select("1", Replace)
	g.Select("2", Toggle)
	assert.Equal(t, []string{"2"}, g.Selection())
	g.Select("2", Toggle)
	assert.Empty(t, g.Selection())
	g.Select("1", Toggle)
	assert.Equal(t, []string{"1"}, g.Selection())
	g.Select("3", Range)
	assert.Equal(t, []string{"3"}, g.Selection())
	g.Select("2", RangeToggle)
	assert.Equal(t, []string{"2"}, g.Selection())
}

func TestRangeSelectionIsAdditive(t *testing.T) {
	rows := []item{{ID: 1, Name: "d"}, {ID: 2, Name: "b"}, {ID: 3, Name: "e"}, {ID: 4, Name: "a"}, {ID: 5, Name: "c"}}
	g := newGrid(t, rows, Options{MultiSelect: true})
	g.ToggleSort("name") // 4 2 5 1 3

	g.Select("3", Replace)
	g.Select("2", Toggle)
	g.Select("5", Range)
	assert.Equal(t, []string{"2", "3", "5"}, g.Selection())

	g.Select("1", RangeToggle)
	assert.Equal(t, []string{"1", "3"}, g.Selection())
}

func TestShiftCtrlClickTogglesRange(t *testing.T) {
	g := newGrid(t, threeRows, Options{MultiSelect: true})
	root, err := render.NewProducer(theme.Default()).Produce(g.Build())
	require.NoError(t, err)

	root.Dispatch(&events.Event{Kind: events.Click, TargetID: "g-row-1"})
	root.Dispatch(&events.Event{Kind: events.Click, TargetID: "g-row-3", Modifiers: events.Modifiers{Shift: true, Ctrl: true}})
	assert.Equal(t, []string{"2", "3"}, g.Selection())
}

func TestMultiSelectModes(t *testing.T) {
	rows := []item{{ID: 1, Name: "d"}, {ID: 2, Name: "b"}, {ID: 3, Name: "e"}, {ID: 4, Name: "a"}, {ID: 5, Name: "c"}}
	g := newGrid(t, rows, Options{MultiSelect: true})
	g.ToggleSort("name") // 4 2 5 1 3

	g.Select("2", Replace)
	g.Select("1", Range)
	assert.Equal(t, []string{"1", "2", "5"}, g.Selection())

	g.Select("4", Toggle)
	assert.ElementsMatch(t, []string{"1", "2", "4", "5"}, g.Selection())
	g.Select("4", Toggle)
	assert.ElementsMatch(t, []string{"1", "2", "5"}, g.Selection())

	g.SelectAll()
	assert.Len(t, g.Selection(), 5)
	g.ClearSelection()
	assert.Empty(t, g.Selection())

	g.Select("missing", Replace)
	assert.Empty(t, g.Selection())
}

func TestVirtualScrollTrigger(t *testing.T) {
	var rows []item
	for i := 1; i <= 100; i++ {
		rows = append(rows, item{ID: i, Name: strconv.Itoa(i)})
	}
	g := newGrid(t, rows, Options{RowHeight: 20, Viewport: 100})
	assert.True(t, g.VirtualScroll())

	w := g.Window()
	assert.Equal(t, 0, w.First)
	assert.Equal(t, 5, w.Last)
	assert.Equal(t, 94*20.0, w.TrailingSpacer)

	g.Scroll(500)
	assert.Equal(t, 25, g.Window().First)
	assert.Len(t, g.VisibleKeys(), 6)

	g.SetFilter("id", func(r item) bool { return r.ID <= 10 })
	w = g.Window()
	assert.LessOrEqual(t, w.Last, 9)
	assert.Equal(t, 100.0, g.Offset(), "offset clamps to the shrunk content")

	small := newGrid(t, threeRows, Options{RowHeight: 20, Viewport: 20})
	assert.False(t, small.VirtualScroll())
	assert.Equal(t, 2, small.Window().Last)

	off := false
	forced := newGrid(t, rows, Options{VirtualScroll: &off})
	assert.Equal(t, 99, forced.Window().Last)
}

func TestEmptyGridWindow(t *testing.T) {
	g := newGrid(t, nil, Options{})
	assert.True(t, g.Window().Empty)
	assert.Zero(t, g.Len())
}

func keyDown(key string) *events.Event {
	return &events.Event{Kind: events.KeyDown, Key: key}
}

func TestKeyboardNavigation(t *testing.T) {
	rec := host.NewRecorder()
	rows := []item{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	g := newGrid(t, rows, Options{RowHeight: 20, Viewport: 40, Focuser: rec, MultiSelect: true})

	handled, err := g.HandleKey(keyDown("ArrowDown"))
	require.NoError(t, err)
	assert.True(t, handled)
	key, _ := g.Focused()
	assert.Equal(t, "1", key)
	assert.Equal(t, host.Ref("g-row-1"), rec.Focused())
	assert.Equal(t, "g-row-1", g.ActiveDescendant())

	_, _ = g.HandleKey(keyDown("End"))
	key, _ = g.Focused()
	assert.Equal(t, "5", key)
	assert.Equal(t, 60.0, g.Offset(), "focused row scrolled into view")

	_, _ = g.HandleKey(keyDown("ArrowDown"))
	key, _ = g.Focused()
	assert.Equal(t, "5", key, "grid rows clamp")

	_, _ = g.HandleKey(keyDown("PageUp"))
	key, _ = g.Focused()
	assert.Equal(t, "3", key)

	_, _ = g.HandleKey(keyDown(" "))
	assert.True(t, g.Selected("3"))
	_, _ = g.HandleKey(keyDown("Enter"))
	assert.False(t, g.Selected("3"))

	_, _ = g.HandleKey(keyDown("Home"))
	key, _ = g.Focused()
	assert.Equal(t, "1", key)
	assert.Equal(t, 0, g.TabIndex("1"))
	assert.Equal(t, -1, g.TabIndex("2"))

	handled, _ = g.HandleKey(keyDown("x"))
	assert.False(t, handled)
}

func TestShiftArrowExtendsSelection(t *testing.T) {
	g := newGrid(t, threeRows, Options{MultiSelect: true})
	require.NoError(t, g.FocusRow("1"))
	g.Select("1", Replace)
	_, err := g.HandleKey(&events.Event{Kind: events.KeyDown, Key: "ArrowDown", Modifiers: events.Modifiers{Shift: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, g.Selection())
}

func TestKeyboardHostFailure(t *testing.T) {
	rec := host.NewRecorder()
	boom := errors.New("no element")
	rec.FailOn("Focus", boom)
	g := newGrid(t, threeRows, Options{Focuser: rec})

	_, err := g.HandleKey(keyDown("ArrowDown"))
	require.ErrorIs(t, err, boom)
	_, ok := g.Focused()
	assert.False(t, ok)
}

func TestFocusSurvivesSort(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	require.NoError(t, g.FocusRow("3"))
	g.ToggleSort("name")
	_, _ = g.HandleKey(keyDown("ArrowUp"))
	key, _ := g.Focused()
	assert.Equal(t, "1", key, "moves from row 3's new position")
}

func TestTogglesWithinOneTurnPublishOnce(t *testing.T) {
	l := loop.New()
	g := newGrid(t, threeRows, Options{Loop: l})
	var published [][]int
	g.OnChange(func() { published = append(published, ids(g)) })

	l.Post(func() {
		g.ToggleSort("name")
		g.ToggleSort("name")
	})
	l.RunOnce()
	assert.Equal(t, [][]int{{3, 1, 2}}, published)
}

func TestBatchPublishesOnce(t *testing.T) {
	g := newGrid(t, threeRows, Options{})
	changes := 0
	g.OnChange(func() { changes++ })
	g.Batch(func() {
		g.ToggleSort("name")
		g.Select("2", Replace)
		g.SetFilterText("name", "a")
	})
	assert.Equal(t, 1, changes)
	assert.Equal(t, []int{2}, ids(g))
}

func TestLoadAndCancel(t *testing.T) {
	l := loop.New()
	g := newGrid(t, nil, Options{Loop: l})

	require.NoError(t, g.Load(context.Background(), func(context.Context) ([]item, error) {
		return threeRows, nil
	}))
	assert.True(t, g.Loading())
	l.Flush()
	assert.False(t, g.Loading())
	assert.Equal(t, 3, g.Len())

	release := make(chan struct{})
	require.NoError(t, g.Load(context.Background(), func(ctx context.Context) ([]item, error) {
		<-release
		return nil, nil
	}))
	g.Cancel()
	close(release)
	l.Flush()
	assert.Equal(t, 3, g.Len(), "cancelled load does not retract or replace rows")

	boom := errors.New("fetch failed")
	require.NoError(t, g.Load(context.Background(), func(context.Context) ([]item, error) { return nil, boom }))
	l.Flush()
	assert.ErrorIs(t, g.LoadErr(), boom)
	assert.Equal(t, 3, g.Len())
}

func TestLoadWithoutLoop(t *testing.T) {
	g := newGrid(t, nil, Options{})
	err := g.Load(context.Background(), func(context.Context) ([]item, error) { return nil, nil })
	assert.ErrorIs(t, err, dkerrors.ErrInvalidConfiguration)
}

func TestFilterInputIsDebounced(t *testing.T) {
	l := loop.New()
	rec := host.NewRecorder()
	g := newGrid(t, threeRows, Options{Loop: l, Sleeper: rec, FilterDelay: 150})

	l.Post(func() {
		g.FilterInput("name", "c")
		g.FilterInput("name", "a")
	})
	l.RunOnce()
	assert.True(t, g.FilterPending())
	assert.Equal(t, 3, g.Len())

	rec.Wake()
	l.Flush()
	assert.False(t, g.FilterPending())
	assert.Equal(t, []int{2}, ids(g))
	assert.Equal(t, "150", rec.Calls()[0].Value)
}

func TestNewValidates(t *testing.T) {
	_, err := New(itemColumns(), itemKey, Options{})
	assert.ErrorIs(t, err, dkerrors.ErrInvalidConfiguration)

	cols := append(itemColumns(), Column[item]{Key: "id"})
	_, err = New(cols, itemKey, Options{ID: "g"})
	assert.ErrorContains(t, err, `duplicate column key "id"`)

	_, err = New[item](nil, nil, Options{ID: "g"})
	assert.Error(t, err)
}

func TestBuildRendersAria(t *testing.T) {
	g := newGrid(t, threeRows, Options{MultiSelect: true})
	g.Select("2", Replace)
	require.NoError(t, g.FocusRow("2"))

	p := render.NewProducer(theme.Default())
	root, err := p.Produce(g.Build())
	require.NoError(t, err)

	role, _ := root.Attr("role")
	assert.Equal(t, "grid", role)
	count, _ := root.Attr("aria-rowcount")
	assert.Equal(t, "3", count)
	multi, _ := root.Attr("aria-multiselectable")
	assert.Equal(t, "true", multi)
	active, _ := root.Attr("aria-activedescendant")
	assert.Equal(t, "g-row-2", active)

	row := root.FindByID("g-row-2")
	require.NotNil(t, row)
	idx, _ := row.Attr("aria-rowindex")
	assert.Equal(t, "2", idx)
	sel, _ := row.Attr("aria-selected")
	assert.Equal(t, "true", sel)
	tab, _ := row.Attr("tabindex")
	assert.Equal(t, "0", tab)
	assert.Equal(t, "2a", row.TextContent())

	other := root.FindByID("g-row-1")
	sel, _ = other.Attr("aria-selected")
	assert.Equal(t, "false", sel)
	tab, _ = other.Attr("tabindex")
	assert.Equal(t, "-1", tab)

	header := root.FindByID("g-col-name")
	sort, _ := header.Attr("aria-sort")
	assert.Equal(t, "none", sort)
	assert.False(t, root.FindByID("g-col-team").HasAttr("aria-sort"))
}

func TestBuiltTreeDispatchesToController(t *testing.T) {
	g := newGrid(t, threeRows, Options{MultiSelect: true})
	p := render.NewProducer(theme.Default())

	root, err := p.Produce(g.Build())
	require.NoError(t, err)
	root.Dispatch(&events.Event{Kind: events.Click, TargetID: "g-col-name"})
	assert.Equal(t, []int{2, 1, 3}, ids(g))

	root, err = p.Produce(g.Build())
	require.NoError(t, err)
	sort, _ := root.FindByID("g-col-name").Attr("aria-sort")
	assert.Equal(t, "ascending", sort)

	root.Dispatch(&events.Event{Kind: events.Click, TargetID: "g-row-1"})
	root.Dispatch(&events.Event{Kind: events.Click, TargetID: "g-row-3", Modifiers: events.Modifiers{Ctrl: true}})
	assert.Equal(t, []string{"1", "3"}, g.Selection())
	key, _ := g.Focused()
	assert.Equal(t, "3", key)

	root.Dispatch(&events.Event{Kind: events.KeyDown, TargetID: "g-row-3", Key: "ArrowUp"})
	key, _ = g.Focused()
	assert.Equal(t, "1", key)
}

func TestPageKeysFollowVariableHeights(t *testing.T) {
	heights := map[int]float64{1: 10, 2: 10, 3: 10, 4: 50, 5: 10, 6: 10}
	rows := []item{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}}
	g := newGrid(t, rows, Options{RowHeight: 10, Viewport: 40})
	g.SetRowHeight(func(r item) float64 { return heights[r.ID] })
	require.NoError(t, g.FocusRow("1"))

	_, err := g.HandleKey(keyDown("PageDown"))
	require.NoError(t, err)
	key, _ := g.Focused()
	assert.Equal(t, "4", key, "a page covers the three short rows before the tall one")

	_, err = g.HandleKey(keyDown("PageUp"))
	require.NoError(t, err)
	key, _ = g.Focused()
	assert.Equal(t, "1", key)
}
