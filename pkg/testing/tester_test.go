package testing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/domkit/pkg/core"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/grid"
	"github.com/go-drift/domkit/pkg/host"
	"github.com/go-drift/domkit/pkg/theme"
)

type person struct {
	ID   int
	Name string
}

func newPeopleGrid(t *testing.T, tester *Tester) *grid.Controller[person] {
	t.Helper()
	g, err := grid.New([]grid.Column[person]{
		{Key: "id", Header: "ID", Value: func(p person) string { return strconv.Itoa(p.ID) }},
		{Key: "name", Header: "Name", Value: func(p person) string { return p.Name }, Sortable: true},
	}, func(p person) string { return strconv.Itoa(p.ID) }, grid.Options{
		ID:          "people",
		MultiSelect: true,
		Loop:        tester.Loop,
		Focuser:     tester.Host,
		Theme:       theme.Default(),
	})
	require.NoError(t, err)
	g.SetRows([]person{{1, "b"}, {2, "a"}, {3, "c"}})
	return g
}

func rowIDs(tester *Tester) []string {
	var out []string
	for _, n := range tester.Find(ByRole("row")).All() {
		if id := n.ID(); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func TestPumpWidgetMounts(t *testing.T) {
	tester := NewTesterWithT(t, theme.Default())
	require.NoError(t, tester.PumpWidget(core.NewButton("Go").WithID("go")))

	assert.Equal(t, 1, tester.Pumps())
	require.Len(t, tester.Host.Mounted(), 1)
	assert.Same(t, tester.Root(), tester.Host.Mounted()[0])
	assert.True(t, tester.Find(ByText("Go")).Exists())
}

func TestPumpReportsBuildErrors(t *testing.T) {
	tester := NewTester(theme.Default())
	err := tester.PumpWidget(core.NewDiv().WithAttr("", "x"))
	require.Error(t, err)
	assert.Nil(t, tester.Root())
	assert.Equal(t, 0, tester.Pumps())
}

func TestClickHeaderResortsRenderedRows(t *testing.T) {
	tester := NewTesterWithT(t, theme.Default())
	g := newPeopleGrid(t, tester)
	require.NoError(t, tester.PumpBuilder(g.Build))
	assert.Equal(t, []string{"people-row-1", "people-row-2", "people-row-3"}, rowIDs(tester))

	require.NoError(t, tester.Click(ByID("people-col-name")))
	assert.Equal(t, []string{"people-row-2", "people-row-1", "people-row-3"}, rowIDs(tester))

	require.NoError(t, tester.Click(ByID("people-col-name")))
	assert.Equal(t, []string{"people-row-3", "people-row-1", "people-row-2"}, rowIDs(tester))

	sort, _ := tester.Find(ByID("people-col-name")).First().Attr("aria-sort")
	assert.Equal(t, "descending", sort)
}

func TestKeyboardSelectionThroughTester(t *testing.T) {
	tester := NewTesterWithT(t, theme.Default())
	g := newPeopleGrid(t, tester)
	require.NoError(t, tester.PumpBuilder(g.Build))

	require.NoError(t, tester.Click(ByID("people-row-1")))
	e, err := tester.KeyDown(ByID("people-row-1"), "ArrowDown", events.Modifiers{Shift: true})
	require.NoError(t, err)
	assert.True(t, e.DefaultPrevented())

	assert.Equal(t, []string{"1", "2"}, g.Selection())
	assert.Equal(t, 2, tester.Find(ByClass("dk-selected")).Count())
	assert.Equal(t, host.Ref("people-row-2"), tester.Host.Focused())

	active, _ := tester.Root().Attr("aria-activedescendant")
	assert.Equal(t, "people-row-2", active)
}

func TestDispatchErrors(t *testing.T) {
	tester := NewTester(theme.Default())
	assert.Error(t, tester.Click(ByID("x")))

	require.NoError(t, tester.PumpWidget(core.NewDiv().WithChild(core.NewButton("No id"))))
	assert.ErrorContains(t, tester.Click(ByText("No id")), "no id")
	assert.ErrorContains(t, tester.Click(ByID("nope")), "no nodes")

	_, err := tester.Dispatch(&events.Event{Kind: events.Click, TargetID: "ghost"})
	assert.Error(t, err)
}

func TestHoverAndTypeDeliverEvents(t *testing.T) {
	tester := NewTesterWithT(t, theme.Default())
	var got []string
	cfg := core.NewInput("text").WithID("q").
		On(events.PointerEnter, func(*events.Event) { got = append(got, "enter") }).
		On(events.PointerLeave, func(*events.Event) { got = append(got, "leave") }).
		On(events.Input, func(e *events.Event) { got = append(got, "input:"+e.Value) })
	require.NoError(t, tester.PumpWidget(cfg))

	require.NoError(t, tester.Hover(ByID("q"), true))
	require.NoError(t, tester.Type(ByID("q"), "ab"))
	require.NoError(t, tester.Hover(ByID("q"), false))
	assert.Equal(t, []string{"enter", "input:ab", "leave"}, got)
	assert.Equal(t, 4, tester.Pumps())
}
