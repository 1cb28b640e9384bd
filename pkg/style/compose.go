package style

import "slices"

// Set is the full style/attribute state of one widget configuration.
type Set struct {
	Attributes Attributes
	Classes    Classes
	Styles     Styles
	Aria       Aria
}

// Compose merges s into the ordered attribute list handed to the host.
//
// Order: explicit attributes in insertion order, then class, style, role and
// the aria-* properties. An explicit "class" attribute contributes its names
// ahead of the composed classes; an explicit "style" attribute is appended
// after the composed styles. An explicit "role" is overridden by the ARIA
// role, and an aria-* property replaces an explicit attribute of the same
// name in place. Attributes whose value is a false boolean are omitted.
// Keys in the result are unique.
func Compose(s Set) []Attr {
	out := make([]Attr, 0, s.Attributes.Len()+3+s.Aria.props.Len())

	classes := s.Classes
	var extraStyle string
	explicitRole := ""
	for _, a := range s.Attributes.List() {
		switch a.Key {
		case "class":
			classes = Classes{}.Add(a.Value.Text()).Add(s.Classes.names...)
			continue
		case "style":
			extraStyle = a.Value.Text()
			continue
		case "role":
			explicitRole = a.Value.Text()
			continue
		}
		if !a.Value.Present() {
			continue
		}
		out = append(out, a)
	}

	if classes.Len() > 0 {
		out = append(out, Attr{Key: "class", Value: String(classes.String())})
	}
	if s.Styles.Len() > 0 || extraStyle != "" {
		out = append(out, Attr{Key: "style", Value: String(s.Styles.Compile(extraStyle))})
	}
	role := s.Aria.Role
	if role == "" {
		role = explicitRole
	}
	if role != "" {
		out = append(out, Attr{Key: "role", Value: String(role)})
	}
	for _, a := range s.Aria.Props() {
		// ARIA states are serialized as "true"/"false", never omitted.
		attr := Attr{Key: a.Key, Value: String(a.Value.Text())}
		if i := slices.IndexFunc(out, func(o Attr) bool { return o.Key == a.Key }); i >= 0 {
			out[i] = attr
			continue
		}
		out = append(out, attr)
	}
	return out
}
