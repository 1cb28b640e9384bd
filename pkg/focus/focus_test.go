package focus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/domkit/pkg/core"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/host"
	"github.com/go-drift/domkit/pkg/render"
	"github.com/go-drift/domkit/pkg/theme"
)

func linear(ids ...string) StaticSource {
	var g Graph
	for _, id := range ids {
		g.Entries = append(g.Entries, Entry{ID: id})
	}
	return StaticSource(g)
}

func roving(group string, ids ...string) StaticSource {
	var g Graph
	for _, id := range ids {
		g.Entries = append(g.Entries, Entry{ID: id, Group: group, TabIndex: -1})
	}
	return StaticSource(g)
}

func mustMove(t *testing.T, fn func() (string, error)) string {
	t.Helper()
	id, err := fn()
	require.NoError(t, err)
	return id
}

func TestMoveNextWrapsToFirst(t *testing.T) {
	m := NewManager(linear("a", "b", "c"))
	require.NoError(t, m.Focus("c"))
	assert.Equal(t, "a", mustMove(t, m.MoveNext))
	assert.Equal(t, "c", mustMove(t, m.MovePrevious))
}

func TestClampPolicy(t *testing.T) {
	m := NewManager(linear("a", "b", "c"), WithWrapPolicy(Clamp))
	require.NoError(t, m.Focus("c"))
	assert.Equal(t, "c", mustMove(t, m.MoveNext))
	assert.Equal(t, "a", mustMove(t, m.MoveFirst))
	assert.Equal(t, "a", mustMove(t, m.MovePrevious))
}

func TestIdleTransitions(t *testing.T) {
	m := NewManager(linear("a", "b", "c"))
	_, ok := m.Current()
	assert.False(t, ok)
	assert.Equal(t, "c", mustMove(t, m.MovePrevious))

	m.Reset()
	assert.Equal(t, "a", mustMove(t, m.MoveNext))
	assert.Equal(t, "c", mustMove(t, m.MoveLast))
}

func TestEmptySequenceIsNoOp(t *testing.T) {
	m := NewManager(StaticSource{})
	id, err := m.MoveNext()
	assert.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, m.ActivateGroup("missing"))
	assert.NoError(t, m.Focus("ghost"))
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestGraphIsCachedUntilInvalidated(t *testing.T) {
	calls := 0
	ids := []string{"a", "b"}
	m := NewManager(SourceFunc(func() Graph {
		calls++
		return Graph(linear(ids...))
	}))
	mustMove(t, m.MoveNext)
	mustMove(t, m.MoveNext)
	assert.Equal(t, 1, calls)

	ids = []string{"a", "b", "c"}
	assert.Len(t, m.Sequence(), 2)
	m.Invalidate()
	assert.Len(t, m.Sequence(), 3)
	assert.Equal(t, 2, calls)
}

func TestRovingGroupContributesOneStop(t *testing.T) {
	g := Graph{Entries: []Entry{
		{ID: "before"},
		{ID: "t1", Group: "tb", TabIndex: -1},
		{ID: "t2", Group: "tb", TabIndex: -1},
		{ID: "after"},
	}}
	m := NewManager(StaticSource(g))
	assert.Equal(t, []string{"before", "t1", "after"}, m.Sequence())
	assert.Equal(t, 0, m.TabIndex("t1"))
	assert.Equal(t, -1, m.TabIndex("t2"))

	require.NoError(t, m.ActivateGroup("tb"))
	assert.Equal(t, []string{"t1", "t2"}, m.Sequence())
	assert.Equal(t, "t2", mustMove(t, m.MoveNext))
	assert.Equal(t, 0, m.TabIndex("t2"))
	assert.Equal(t, -1, m.TabIndex("t1"))

	m.ExitGroup()
	assert.Equal(t, []string{"before", "t2", "after"}, m.Sequence())
}

func TestPositiveTabIndexComesFirst(t *testing.T) {
	g := Graph{Entries: []Entry{{ID: "a"}, {ID: "b", TabIndex: 2}, {ID: "c", TabIndex: 1}, {ID: "d", TabIndex: -1}}}
	m := NewManager(StaticSource(g))
	assert.Equal(t, []string{"c", "b", "a"}, m.Sequence())
}

func keyDown(key string) *events.Event {
	return &events.Event{Kind: events.KeyDown, Key: key}
}

func TestArrowKeysInsideGroup(t *testing.T) {
	m := NewManager(roving("tb", "x", "y", "z"))
	require.NoError(t, m.ActivateGroup("tb"))

	handled, err := m.HandleKey(keyDown(KeyArrowRight))
	require.NoError(t, err)
	assert.True(t, handled)
	id, _ := m.Current()
	assert.Equal(t, "y", id)

	e := keyDown(KeyEnd)
	_, _ = m.HandleKey(e)
	id, _ = m.Current()
	assert.Equal(t, "z", id)
	assert.True(t, e.DefaultPrevented())
}

func TestRTLFlipsHorizontalArrows(t *testing.T) {
	ltr := NewManager(roving("tb", "x", "y", "z"))
	rtl := NewManager(roving("tb", "x", "y", "z"), WithDirection(theme.RightToLeft))
	require.NoError(t, ltr.ActivateGroup("tb"))
	require.NoError(t, rtl.ActivateGroup("tb"))

	_, err := ltr.HandleKey(keyDown(KeyArrowRight))
	require.NoError(t, err)
	_, err = rtl.HandleKey(keyDown(KeyArrowLeft))
	require.NoError(t, err)
	a, _ := ltr.Current()
	b, _ := rtl.Current()
	assert.Equal(t, "y", a)
	assert.Equal(t, a, b)

	_, _ = rtl.HandleKey(keyDown(KeyArrowDown))
	id, _ := rtl.Current()
	assert.Equal(t, "z", id, "vertical arrows keep their meaning")
}

func TestArrowsIgnoredOutsideGroup(t *testing.T) {
	m := NewManager(linear("a", "b"))
	handled, err := m.HandleKey(keyDown(KeyArrowDown))
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestTabLeavesGroup(t *testing.T) {
	g := Graph{Entries: []Entry{{ID: "t1", Group: "tb"}, {ID: "t2", Group: "tb"}, {ID: "ok"}}}
	m := NewManager(StaticSource(g))
	require.NoError(t, m.ActivateGroup("tb"))
	_, err := m.HandleKey(&events.Event{Kind: events.KeyDown, Key: KeyTab})
	require.NoError(t, err)
	id, _ := m.Current()
	assert.Equal(t, "ok", id)
	assert.Empty(t, m.ActiveGroup())

	_, err = m.HandleKey(&events.Event{Kind: events.KeyDown, Key: KeyTab, Modifiers: events.Modifiers{Shift: true}})
	require.NoError(t, err)
	id, _ = m.Current()
	assert.Equal(t, "t1", id)
}

func TestHostFocusFailureKeepsState(t *testing.T) {
	rec := host.NewRecorder()
	var changes []string
	m := NewManager(linear("a", "b"), WithFocuser(rec), WithFocusChange(func(_, next string) {
		changes = append(changes, next)
	}))
	mustMove(t, m.MoveNext)
	assert.Equal(t, host.Ref("a"), rec.Focused())

	boom := errors.New("element detached")
	rec.FailOn("Focus", boom)
	_, err := m.MoveNext()
	require.ErrorIs(t, err, boom)
	id, _ := m.Current()
	assert.Equal(t, "a", id)
	assert.Equal(t, []string{"a"}, changes)
}

func TestMoveByClamps(t *testing.T) {
	m := NewManager(linear("a", "b", "c", "d"))
	require.NoError(t, m.Focus("b"))
	assert.Equal(t, "d", mustMove(t, func() (string, error) { return m.MoveBy(10) }))
	assert.Equal(t, "a", mustMove(t, func() (string, error) { return m.MoveBy(-10) }))
}

func TestTreeSource(t *testing.T) {
	cfg := core.NewDiv().WithID("root").WithChildren(
		core.NewButton("Save").WithID("save"),
		core.NewButton("Off").WithID("off").WithDisabled(true),
		core.NewDiv().WithHidden(true).WithChild(core.NewButton("Hidden").WithID("hidden")),
		core.NewToolbar().WithID("tb").WithChildren(
			core.NewButton("Bold").WithID("bold").WithTabIndex(-1),
			core.NewButton("Italic").WithID("italic").WithTabIndex(-1),
		),
		core.NewDiv().WithID("plain"),
		core.NewDiv().WithID("custom").WithTabIndex(0),
		core.NewLink("/home", "Home").WithID("home"),
	)
	root, err := render.NewProducer(theme.Default()).Produce(cfg)
	require.NoError(t, err)

	g := TreeSource{Root: root}.FocusGraph()
	var ids []string
	for _, e := range g.Entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"save", "bold", "italic", "custom", "home"}, ids)
	assert.Equal(t, []string{"bold", "italic"}, g.Members("tb"))
	assert.Equal(t, []string{"tb"}, g.Groups())

	m := NewManager(TreeSource{Root: root})
	assert.Equal(t, []string{"save", "bold", "custom", "home"}, m.Sequence())
}

func TestTrapConfinesTabSequence(t *testing.T) {
	cfg := core.NewDiv().WithChildren(
		core.NewButton("Open").WithID("open"),
		core.NewDialog(true).WithID("dlg").WithChildren(
			core.NewInput("text").WithID("name"),
			core.NewButton("OK").WithID("ok"),
		),
	)
	root, err := render.NewProducer(theme.Default()).Produce(cfg)
	require.NoError(t, err)

	m := NewManager(TreeSource{Root: root})
	assert.Equal(t, []string{"open", "name", "ok"}, m.Sequence())

	release := m.Trap("dlg")
	assert.Equal(t, []string{"name", "ok"}, m.Sequence())
	require.NoError(t, m.Focus("ok"))
	_, err = m.HandleKey(&events.Event{Kind: events.KeyDown, Key: KeyTab})
	require.NoError(t, err)
	id, _ := m.Current()
	assert.Equal(t, "name", id, "Tab wraps inside the dialog")

	release()
	assert.Empty(t, m.Trapped())
	assert.Len(t, m.Sequence(), 3)
}
