package style

import "strings"

// Aria holds an ARIA role and its properties.
type Aria struct {
	Role  string
	props Attributes
}

// AriaKey normalizes a property name to its attribute form
// ("selected" and "aria-selected" both become "aria-selected").
func AriaKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(name, "aria-") {
		return name
	}
	return "aria-" + name
}

// WithRole returns a copy of a with the role replaced. An empty role keeps
// the current one.
func (a Aria) WithRole(role string) Aria {
	if role != "" {
		a.Role = role
	}
	return a
}

// Set returns a copy of a with the property set.
func (a Aria) Set(name string, v Value) Aria {
	a.props = a.props.Set(AriaKey(name), v)
	return a
}

// Get returns a property by name, with or without the aria- prefix.
func (a Aria) Get(name string) (Value, bool) {
	return a.props.Get(AriaKey(name))
}

// Props returns the properties in insertion order.
func (a Aria) Props() []Attr {
	return a.props.List()
}

// IsEmpty reports whether neither role nor properties are set.
func (a Aria) IsEmpty() bool {
	return a.Role == "" && a.props.Len() == 0
}
