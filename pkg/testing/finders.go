package testing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/domkit/pkg/render"
)

// Finder locates nodes in a render tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *render.Node) []*render.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*render.Node
	finder Finder
}

// Find evaluates finder against root.
func Find(root *render.Node, finder Finder) FinderResult {
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{nodes: finder.Evaluate(root), finder: finder}
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *render.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.describe()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *render.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *render.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.describe()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*render.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// --- Concrete finders ---

type predicateFinder struct {
	fn   func(*render.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *render.Node) []*render.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder using a custom match function on element
// nodes.
func ByPredicate(fn func(*render.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(<func>)"}
}

// ByID matches the element with the given id.
func ByID(id string) Finder {
	return &predicateFinder{
		fn:   func(n *render.Node) bool { return n.ID() == id },
		desc: fmt.Sprintf("ByID(%q)", id),
	}
}

// ByKey matches elements produced from a configuration with the given key.
func ByKey(key string) Finder {
	return &predicateFinder{
		fn:   func(n *render.Node) bool { return n.Key == key },
		desc: fmt.Sprintf("ByKey(%q)", key),
	}
}

// ByTag matches elements with the given tag.
func ByTag(tag string) Finder {
	return &predicateFinder{
		fn:   func(n *render.Node) bool { return n.Tag == tag },
		desc: fmt.Sprintf("ByTag(%q)", tag),
	}
}

// ByRole matches elements with the given ARIA role.
func ByRole(role string) Finder {
	return ByAttr("role", role)
}

// ByAttr matches elements whose attribute key serializes to value.
func ByAttr(key, value string) Finder {
	return &predicateFinder{
		fn: func(n *render.Node) bool {
			v, ok := n.Attr(key)
			return ok && v == value
		},
		desc: fmt.Sprintf("ByAttr(%s=%q)", key, value),
	}
}

// ByClass matches elements carrying the class name.
func ByClass(class string) Finder {
	return &predicateFinder{
		fn: func(n *render.Node) bool {
			v, _ := n.Attr("class")
			return slices.Contains(strings.Fields(v), class)
		},
		desc: fmt.Sprintf("ByClass(%q)", class),
	}
}

// ByText matches elements with a direct text child equal to text.
func ByText(text string) Finder {
	return &predicateFinder{
		fn:   func(n *render.Node) bool { return directText(n) == text },
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining matches elements whose direct text contains substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(n *render.Node) bool {
			t := directText(n)
			return t != "" && strings.Contains(t, substring)
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

func directText(n *render.Node) string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.IsText() {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *render.Node) []*render.Node {
	var out []*render.Node
	for _, ancestor := range f.of.Evaluate(root) {
		for _, c := range ancestor.Children {
			for _, m := range f.matching.Evaluate(c) {
				if !slices.Contains(out, m) {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant matches nodes found by matching strictly below a node found by
// of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches walks element nodes in document order.
func collectMatches(root *render.Node, predicate func(*render.Node) bool) []*render.Node {
	var out []*render.Node
	root.Walk(func(n *render.Node) bool {
		if !n.IsText() && predicate(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}
