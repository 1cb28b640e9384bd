package style

import (
	"slices"
	"strings"
)

// Classes is an ordered, duplicate-suppressing class list.
type Classes struct {
	names []string
}

// Add returns a copy of c with the given classes appended. Each argument may
// hold several whitespace separated names; names already present are
// skipped.
func (c Classes) Add(classes ...string) Classes {
	var added []string
	for _, class := range classes {
		for _, name := range strings.Fields(class) {
			if slices.Contains(c.names, name) || slices.Contains(added, name) {
				continue
			}
			added = append(added, name)
		}
	}
	if len(added) == 0 {
		return c
	}
	names := make([]string, 0, len(c.names)+len(added))
	names = append(names, c.names...)
	names = append(names, added...)
	return Classes{names: names}
}

// Has reports whether name is in the list.
func (c Classes) Has(name string) bool {
	return slices.Contains(c.names, name)
}

// Len returns the number of distinct classes.
func (c Classes) Len() int {
	return len(c.names)
}

// Names returns the classes in insertion order.
func (c Classes) Names() []string {
	return slices.Clone(c.names)
}

// String joins the classes with single spaces.
func (c Classes) String() string {
	return strings.Join(c.names, " ")
}
