package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
)

// Dump renders the subtree as an indented text tree for debugging.
//
//	<div id="g" role="grid">
//	├── <div role="row" aria-rowindex="1">
//	│   └── "b"
//	└── ...
func Dump(n *Node) string {
	if n == nil {
		return ""
	}
	return dumpTree(n).String()
}

func dumpTree(n *Node) *tree.Tree {
	t := tree.Root(label(n)).Enumerator(tree.DefaultEnumerator)
	for _, c := range n.Children {
		if c.IsText() || len(c.Children) == 0 {
			t.Child(label(c))
			continue
		}
		t.Child(dumpTree(c))
	}
	return t
}

func label(n *Node) string {
	if n.IsText() {
		return strconv.Quote(n.Text)
	}
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		if a.Value.IsBool() {
			continue
		}
		sb.WriteString("=")
		sb.WriteString(strconv.Quote(a.Value.Text()))
	}
	if kinds := n.Listeners.Kinds(); len(kinds) > 0 {
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = "on" + k.String()
		}
		sb.WriteString(" [")
		sb.WriteString(strings.Join(names, " "))
		sb.WriteString("]")
	}
	sb.WriteString(">")
	return sb.String()
}
