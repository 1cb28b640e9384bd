// Package focus computes keyboard focus traversal over a widget subtree.
//
// A Manager tracks one traversal session: it is Idle until an element takes
// logical focus, then Focused on that element's id. Standalone elements form
// the tab sequence; composite widgets (toolbars, menus, grid rows) are
// roving-tabindex groups that contribute a single tab stop and are
// traversed with arrow keys once activated.
package focus

import (
	"cmp"
	"slices"

	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/host"
	"github.com/go-drift/domkit/pkg/theme"
)

// WrapPolicy decides what happens when traversal runs off either end.
type WrapPolicy int

const (
	// Wrap continues from the opposite end.
	Wrap WrapPolicy = iota
	// Clamp stays on the end element.
	Clamp
)

// Option configures a Manager.
type Option func(*Manager)

// WithWrapPolicy sets the wrap policy. The default is Wrap.
func WithWrapPolicy(p WrapPolicy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithDirection sets the document direction used to map arrow keys.
func WithDirection(d theme.Direction) Option {
	return func(m *Manager) { m.direction = d }
}

// WithFocuser moves DOM focus through the host on every focus change.
func WithFocuser(f host.Focuser) Option {
	return func(m *Manager) { m.focuser = f }
}

// WithGroup starts the session with group active, without moving focus.
// Widgets whose whole focus graph is one composite use it.
func WithGroup(group string) Option {
	return func(m *Manager) { m.base, m.group = group, group }
}

// WithFocusChange registers a callback invoked after logical focus moves.
func WithFocusChange(fn func(prev, next string)) Option {
	return func(m *Manager) { m.onChange = fn }
}

// Manager is a focus traversal session. It is owned by the event loop and
// is not safe for concurrent use.
type Manager struct {
	source    Source
	policy    WrapPolicy
	direction theme.Direction
	focuser   host.Focuser
	onChange  func(prev, next string)

	graph   Graph
	valid   bool
	current string
	group   string
	base    string
	trap    string
	stops   map[string]string
}

// NewManager creates an idle manager over src.
func NewManager(src Source, opts ...Option) *Manager {
	m := &Manager{source: src, stops: make(map[string]string)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetSource replaces the graph source and invalidates the cache.
func (m *Manager) SetSource(src Source) {
	m.source = src
	m.Invalidate()
}

// SetDirection changes the document direction.
func (m *Manager) SetDirection(d theme.Direction) {
	m.direction = d
}

// Invalidate drops the cached graph. The next traversal request rebuilds it.
func (m *Manager) Invalidate() {
	m.valid = false
}

// Graph returns the current focus graph, rebuilding it if invalidated.
func (m *Manager) Graph() Graph {
	if !m.valid {
		if m.source != nil {
			m.graph = m.source.FocusGraph()
		} else {
			m.graph = Graph{}
		}
		m.valid = true
		m.pruneStops()
	}
	return m.graph
}

// pruneStops forgets roving stops whose element left the graph.
func (m *Manager) pruneStops() {
	for group, id := range m.stops {
		if e, ok := m.graph.Lookup(id); !ok || e.Group != group {
			delete(m.stops, group)
		}
	}
	if m.group != m.base && len(m.graph.Members(m.group)) == 0 {
		m.group = m.base
	}
}

// Current returns the focused id; ok is false while Idle.
func (m *Manager) Current() (id string, ok bool) {
	return m.current, m.current != ""
}

// ActiveGroup returns the activated group id, or "".
func (m *Manager) ActiveGroup() string {
	return m.group
}

// Reset returns the session to Idle without touching host focus.
func (m *Manager) Reset() {
	m.current = ""
	m.group = m.base
}

// Sequence returns the ids traversed by MoveNext and MovePrevious: the
// active group's members, or the tab sequence when no group is active.
func (m *Manager) Sequence() []string {
	g := m.Graph()
	if m.group != "" {
		return g.Members(m.group)
	}
	return m.tabSequence(g)
}

// tabSequence orders positive tab indices first, then document order, and
// lets each group contribute only its roving stop.
func (m *Manager) tabSequence(g Graph) []string {
	type stop struct {
		id    string
		index int
	}
	var stops []stop
	seen := make(map[string]bool)
	for _, e := range g.Entries {
		if m.trap != "" && e.Dialog != m.trap {
			continue
		}
		if e.Group == "" {
			if e.TabIndex >= 0 {
				stops = append(stops, stop{e.ID, e.TabIndex})
			}
			continue
		}
		if seen[e.Group] {
			continue
		}
		seen[e.Group] = true
		stops = append(stops, stop{m.rovingStop(e.Group), 0})
	}
	slices.SortStableFunc(stops, func(a, b stop) int {
		switch {
		case a.index > 0 && b.index > 0:
			return cmp.Compare(a.index, b.index)
		case a.index > 0:
			return -1
		case b.index > 0:
			return 1
		}
		return 0
	})
	ids := make([]string, len(stops))
	for i, s := range stops {
		ids[i] = s.id
	}
	return ids
}

// rovingStop returns the group member that currently holds tabindex 0: the
// last member focused, else the first member rendered with tabindex 0,
// else the first member.
func (m *Manager) rovingStop(group string) string {
	if id, ok := m.stops[group]; ok {
		return id
	}
	members := m.Graph().Members(group)
	for _, id := range members {
		if e, _ := m.graph.Lookup(id); e.TabIndex == 0 {
			return id
		}
	}
	if len(members) > 0 {
		return members[0]
	}
	return ""
}

// TabIndex returns the tabindex an element should be rendered with: 0 for
// a group's roving stop and -1 for its other members; standalone elements
// keep their own value.
func (m *Manager) TabIndex(id string) int {
	e, ok := m.Graph().Lookup(id)
	if !ok {
		return -1
	}
	if e.Group == "" {
		return e.TabIndex
	}
	if m.rovingStop(e.Group) == id {
		return 0
	}
	return -1
}

// MoveNext advances one position in the sequence. From Idle it focuses the
// first element. An empty sequence is a no-op.
func (m *Manager) MoveNext() (string, error) {
	return m.step("focus.MoveNext", 1)
}

// MovePrevious retreats one position. From Idle it focuses the last element.
func (m *Manager) MovePrevious() (string, error) {
	return m.step("focus.MovePrevious", -1)
}

// MoveFirst focuses the first element of the sequence.
func (m *Manager) MoveFirst() (string, error) {
	return m.jump("focus.MoveFirst", func(seq []string) string { return seq[0] })
}

// MoveLast focuses the last element of the sequence.
func (m *Manager) MoveLast() (string, error) {
	return m.jump("focus.MoveLast", func(seq []string) string { return seq[len(seq)-1] })
}

// MoveBy moves delta positions within the sequence, clamping at the ends
// regardless of the wrap policy. It serves page-wise navigation.
func (m *Manager) MoveBy(delta int) (string, error) {
	return m.jump("focus.MoveBy", func(seq []string) string {
		i := slices.Index(seq, m.current)
		if i < 0 {
			i = 0
			if delta < 0 {
				i = len(seq) - 1
			}
			return seq[i]
		}
		return seq[max(0, min(len(seq)-1, i+delta))]
	})
}

func (m *Manager) step(op string, delta int) (string, error) {
	return m.jump(op, func(seq []string) string {
		i := slices.Index(seq, m.current)
		if i < 0 {
			if delta > 0 {
				return seq[0]
			}
			return seq[len(seq)-1]
		}
		next := i + delta
		if m.policy == Clamp {
			return seq[max(0, min(len(seq)-1, next))]
		}
		return seq[wrapIndex(next, len(seq))]
	})
}

func (m *Manager) jump(op string, pick func(seq []string) string) (string, error) {
	seq := m.Sequence()
	if len(seq) == 0 {
		errors.Recovered(op, errors.KindFocusUnavailable, errors.ErrFocusTargetUnavailable)
		return m.current, nil
	}
	target := pick(seq)
	if err := m.setFocus(op, target); err != nil {
		return m.current, err
	}
	return target, nil
}

// Focus gives logical focus to id. An id outside the graph is a no-op.
func (m *Manager) Focus(id string) error {
	if _, ok := m.Graph().Lookup(id); !ok {
		errors.Recovered("focus.Focus", errors.KindFocusUnavailable, errors.ErrFocusTargetUnavailable)
		return nil
	}
	return m.setFocus("focus.Focus", id)
}

// setFocus calls the host first and commits only if it succeeds.
func (m *Manager) setFocus(op, id string) error {
	if id == m.current {
		return nil
	}
	if m.focuser != nil {
		if err := m.focuser.Focus(host.Ref(id)); err != nil {
			return errors.Host(op, err)
		}
	}
	prev := m.current
	m.current = id
	if e, ok := m.graph.Lookup(id); ok && e.Group != "" {
		m.stops[e.Group] = id
	}
	if m.onChange != nil {
		m.onChange(prev, id)
	}
	return nil
}

// ActivateGroup narrows traversal to group's members and focuses its
// roving stop. A group with no focusable members is a no-op.
func (m *Manager) ActivateGroup(group string) error {
	if len(m.Graph().Members(group)) == 0 {
		errors.Recovered("focus.ActivateGroup", errors.KindFocusUnavailable, errors.ErrFocusTargetUnavailable)
		return nil
	}
	if err := m.setFocus("focus.ActivateGroup", m.rovingStop(group)); err != nil {
		return err
	}
	m.group = group
	return nil
}

// ExitGroup restores the tab sequence, or the WithGroup group. Focus stays
// where it is.
func (m *Manager) ExitGroup() {
	m.group = m.base
}

// Trap confines the tab sequence to the elements of dialog until the
// returned release function runs. Release restores the previous trap, so
// nested dialogs unwind in order.
func (m *Manager) Trap(dialog string) (release func()) {
	prev := m.trap
	m.trap = dialog
	m.group = m.base
	return func() { m.trap = prev }
}

// Trapped returns the dialog confining traversal, or "".
func (m *Manager) Trapped() string {
	return m.trap
}

// currentGroup is the active group, or the group of the focused element.
func (m *Manager) currentGroup() string {
	if m.group != "" {
		return m.group
	}
	if e, ok := m.Graph().Lookup(m.current); ok {
		return e.Group
	}
	return ""
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}
