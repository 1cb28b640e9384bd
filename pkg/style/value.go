package style

import "strconv"

// Value is an attribute value: either a string or a boolean.
//
// A true boolean renders as a present attribute without a value
// (disabled, hidden); a false boolean omits the attribute.
type Value struct {
	str    string
	b      bool
	isBool bool
}

// String returns a string attribute value.
func String(s string) Value {
	return Value{str: s}
}

// Bool returns a boolean attribute value.
func Bool(b bool) Value {
	return Value{b: b, isBool: true}
}

// Int returns a string attribute value holding the decimal form of n.
func Int(n int) Value {
	return Value{str: strconv.Itoa(n)}
}

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool {
	return v.isBool
}

// Present reports whether the attribute should appear on the rendered node.
func (v Value) Present() bool {
	return !v.isBool || v.b
}

// Truthy reports whether v is a true boolean or the string "true".
func (v Value) Truthy() bool {
	if v.isBool {
		return v.b
	}
	return v.str == "true"
}

// Text returns the serialized form: the string itself, "true"/"false"
// for booleans.
func (v Value) Text() string {
	if v.isBool {
		return strconv.FormatBool(v.b)
	}
	return v.str
}

func (v Value) String() string {
	return v.Text()
}
