package style

import (
	"fmt"
	"strings"
)

// Styles is an ordered inline style map.
type Styles struct {
	attrs Attributes
}

// ValidateStyle reports whether key and value can be compiled into a style
// attribute. Both must be free of ';' and ':' and the key must not be empty.
func ValidateStyle(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty style key")
	}
	if strings.ContainsAny(key, ";:") {
		return fmt.Errorf("invalid character in style key %q", key)
	}
	if strings.ContainsAny(value, ";:") {
		return fmt.Errorf("invalid character in style value %q for %q", value, key)
	}
	return nil
}

// Set returns a copy of s with key set to value. An empty value removes the
// property. Callers validate with ValidateStyle first.
func (s Styles) Set(key, value string) Styles {
	if value == "" {
		return Styles{attrs: s.attrs.Remove(key)}
	}
	return Styles{attrs: s.attrs.Set(key, String(value))}
}

// Get returns the value of a style property.
func (s Styles) Get(key string) (string, bool) {
	v, ok := s.attrs.Get(key)
	return v.Text(), ok
}

// Len returns the number of properties.
func (s Styles) Len() int {
	return s.attrs.Len()
}

// Compile renders the styles as a style attribute value ("k: v;k2: v2;").
// additional is appended verbatim.
func (s Styles) Compile(additional string) string {
	var sb strings.Builder
	for _, a := range s.attrs.List() {
		sb.WriteString(a.Key)
		sb.WriteString(": ")
		sb.WriteString(a.Value.Text())
		sb.WriteString(";")
	}
	sb.WriteString(additional)
	return sb.String()
}

// Keys returns the property names in insertion order.
func (s Styles) Keys() []string {
	out := make([]string, 0, s.Len())
	for _, a := range s.attrs.List() {
		out = append(out, a.Key)
	}
	return out
}

// Merge returns a copy of s with every property of other applied on top.
func (s Styles) Merge(other Styles) Styles {
	out := s
	for _, a := range other.attrs.List() {
		out = out.Set(a.Key, a.Value.Text())
	}
	return out
}
