// Package render converts widget configurations into render node trees.
package render

import (
	"github.com/go-drift/domkit/pkg/core"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/style"
)

// Node is a realized tree node ready for the host renderer.
//
// Nodes are owned by the render pass that produced them and replaced on the
// next pass; only Key carries identity across passes.
type Node struct {
	// Tag is the host element name, empty for text nodes.
	Tag string
	// Text is the content of a text node.
	Text string
	// Key is the stable diffing key from the configuration.
	Key string
	// Kind is the widget kind the node was produced from.
	Kind core.Kind
	// Attrs is the resolved, ordered attribute set.
	Attrs []style.Attr
	// Listeners is the listener snapshot taken at production time.
	Listeners events.Registry
	// Children are the resolved children in render order.
	Children []*Node
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr returns the serialized value of an attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value.Text(), true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// ID returns the id attribute.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// TextContent returns the concatenated text of n's subtree.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var out string
	for _, c := range n.Children {
		out += c.TextContent()
	}
	return out
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindByID returns the first node with the given id.
func (n *Node) FindByID(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.ID() == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// PathTo returns the chain of nodes from n down to the node with the given id.
func (n *Node) PathTo(id string) []*Node {
	if n == nil {
		return nil
	}
	if n.ID() == id {
		return []*Node{n}
	}
	for _, c := range n.Children {
		if path := c.PathTo(id); path != nil {
			return append([]*Node{n}, path...)
		}
	}
	return nil
}

// Count returns the number of nodes in the subtree.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Dispatch delivers e to the node identified by e.TargetID and bubbles it
// through its ancestors until a handler stops propagation. It returns the
// number of handlers that ran.
func (n *Node) Dispatch(e *events.Event) int {
	path := n.PathTo(e.TargetID)
	ran := 0
	for i := len(path) - 1; i >= 0; i-- {
		ran += path[i].Listeners.Dispatch(e)
		if e.PropagationStopped() {
			break
		}
	}
	return ran
}
