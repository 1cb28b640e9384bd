package style

// Attr is one resolved attribute.
type Attr struct {
	Key   string
	Value Value
}

// Attributes is an ordered attribute map.
type Attributes struct {
	keys   []string
	values map[string]Value
}

// Set returns a copy of a with key set to v. An existing key keeps its
// position.
func (a Attributes) Set(key string, v Value) Attributes {
	out := a.clone()
	if _, ok := out.values[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.values[key] = v
	return out
}

// Remove returns a copy of a without key.
func (a Attributes) Remove(key string) Attributes {
	if _, ok := a.values[key]; !ok {
		return a
	}
	out := a.clone()
	delete(out.values, key)
	for i, k := range out.keys {
		if k == key {
			out.keys = append(out.keys[:i], out.keys[i+1:]...)
			break
		}
	}
	return out
}

// Get returns the value for key.
func (a Attributes) Get(key string) (Value, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a.keys)
}

// List returns the attributes in insertion order.
func (a Attributes) List() []Attr {
	out := make([]Attr, 0, len(a.keys))
	for _, k := range a.keys {
		out = append(out, Attr{Key: k, Value: a.values[k]})
	}
	return out
}

func (a Attributes) clone() Attributes {
	out := Attributes{
		keys:   make([]string, len(a.keys), len(a.keys)+1),
		values: make(map[string]Value, len(a.values)+1),
	}
	copy(out.keys, a.keys)
	for k, v := range a.values {
		out.values[k] = v
	}
	return out
}
