package focus

import (
	"slices"
	"strconv"
	"strings"

	"github.com/go-drift/domkit/pkg/render"
)

// Entry is one focusable element in a Graph.
type Entry struct {
	// ID is the element's id attribute.
	ID string
	// Group is the id of the roving-tabindex composite the element belongs
	// to, or "" for standalone elements.
	Group string
	// TabIndex is the element's tabindex, 0 when unset.
	TabIndex int
	// Dialog is the id of the innermost enclosing dialog, or "".
	Dialog string
}

// Graph is the ordered set of focusable elements of a subtree.
//
// A Graph is derived and ephemeral; it is rebuilt whenever the subtree's
// focusable membership changes.
type Graph struct {
	Entries []Entry
}

// Len returns the number of entries.
func (g Graph) Len() int {
	return len(g.Entries)
}

// Index returns the position of id, or -1.
func (g Graph) Index(id string) int {
	return slices.IndexFunc(g.Entries, func(e Entry) bool { return e.ID == id })
}

// Lookup returns the entry for id.
func (g Graph) Lookup(id string) (Entry, bool) {
	if i := g.Index(id); i >= 0 {
		return g.Entries[i], true
	}
	return Entry{}, false
}

// Members returns the ids of group's members in document order.
func (g Graph) Members(group string) []string {
	if group == "" {
		return nil
	}
	var ids []string
	for _, e := range g.Entries {
		if e.Group == group {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Groups returns the distinct group ids in order of first appearance.
func (g Graph) Groups() []string {
	var groups []string
	for _, e := range g.Entries {
		if e.Group != "" && !slices.Contains(groups, e.Group) {
			groups = append(groups, e.Group)
		}
	}
	return groups
}

// Source produces the current focus graph. A Manager calls it lazily, at
// most once between invalidations.
type Source interface {
	FocusGraph() Graph
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() Graph

// FocusGraph calls f.
func (f SourceFunc) FocusGraph() Graph {
	return f()
}

// StaticSource is a fixed Graph.
type StaticSource Graph

// FocusGraph returns the graph.
func (s StaticSource) FocusGraph() Graph {
	return Graph(s)
}

// compositeRoles are the ARIA roles that form roving-tabindex groups.
var compositeRoles = []string{
	"grid", "listbox", "menu", "menubar", "radiogroup", "tablist", "toolbar", "tree", "treegrid",
}

// nativelyFocusable are the tags focusable without a tabindex.
var nativelyFocusable = []string{"a", "button", "input", "select", "textarea"}

// TreeSource derives the focus graph of a render tree.
//
// An element is focusable when it carries a tabindex attribute or is a
// natively focusable control, and it is not disabled. Hidden, inert and
// aria-hidden subtrees are skipped entirely. Elements inside a composite
// widget (by ARIA role, or a data-roving attribute) join that widget's
// roving group; the innermost composite wins. Elements inside a dialog
// record it so a trap can confine Tab to it. Elements without an id cannot
// be focused by reference and are left out.
type TreeSource struct {
	Root *render.Node
}

// FocusGraph walks the tree in document order.
func (s TreeSource) FocusGraph() Graph {
	var g Graph
	var visit func(n *render.Node, group, dialog string)
	visit = func(n *render.Node, group, dialog string) {
		if n == nil || n.IsText() || excluded(n) {
			return
		}
		if entry, ok := focusable(n); ok {
			entry.Group = group
			entry.Dialog = dialog
			g.Entries = append(g.Entries, entry)
		}
		if n.ID() != "" {
			if isComposite(n) {
				group = n.ID()
			}
			if isDialog(n) {
				group, dialog = "", n.ID()
			}
		}
		for _, c := range n.Children {
			visit(c, group, dialog)
		}
	}
	visit(s.Root, "", "")
	return g
}

func excluded(n *render.Node) bool {
	if truthy(n, "hidden") || truthy(n, "inert") {
		return true
	}
	v, ok := n.Attr("aria-hidden")
	return ok && v == "true"
}

func truthy(n *render.Node, key string) bool {
	v, ok := n.Attr(key)
	return ok && v != "false"
}

func focusable(n *render.Node) (Entry, bool) {
	if n.ID() == "" || truthy(n, "disabled") {
		return Entry{}, false
	}
	if v, ok := n.Attr("tabindex"); ok {
		idx, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			idx = 0
		}
		return Entry{ID: n.ID(), TabIndex: idx}, true
	}
	if slices.Contains(nativelyFocusable, n.Tag) {
		return Entry{ID: n.ID()}, true
	}
	return Entry{}, false
}

func isDialog(n *render.Node) bool {
	role, _ := n.Attr("role")
	return n.Tag == "dialog" || role == "dialog" || role == "alertdialog"
}

func isComposite(n *render.Node) bool {
	if n.HasAttr("data-roving") {
		return true
	}
	role, _ := n.Attr("role")
	return slices.Contains(compositeRoles, role)
}
