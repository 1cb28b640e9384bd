package events

import "slices"

// Registry maps event kinds to ordered handler lists.
//
// Registry is a value: On and Clear return updated copies, so a registry
// captured in a rendered configuration is never changed afterwards.
// Registering a handler appends; the only way to replace handlers is to
// Clear the kind first.
type Registry struct {
	order    []Kind
	handlers map[Kind][]Handler
}

// On returns a copy of r with h appended to the handlers for kind.
// Nil handlers are ignored.
func (r Registry) On(kind Kind, h Handler) Registry {
	if h == nil {
		return r
	}
	out := r.clone()
	if _, ok := out.handlers[kind]; !ok {
		out.order = append(out.order, kind)
	}
	out.handlers[kind] = append(slices.Clip(out.handlers[kind]), h)
	return out
}

// Clear returns a copy of r with every handler for kind removed.
func (r Registry) Clear(kind Kind) Registry {
	if _, ok := r.handlers[kind]; !ok {
		return r
	}
	out := r.clone()
	delete(out.handlers, kind)
	out.order = slices.DeleteFunc(out.order, func(k Kind) bool { return k == kind })
	return out
}

// Merge returns a copy of r with all of other's handlers appended after r's
// own, kind by kind.
func (r Registry) Merge(other Registry) Registry {
	out := r
	for _, k := range other.order {
		for _, h := range other.handlers[k] {
			out = out.On(k, h)
		}
	}
	return out
}

// Handlers returns the handlers registered for kind in registration order.
func (r Registry) Handlers(kind Kind) []Handler {
	return slices.Clone(r.handlers[kind])
}

// Kinds returns the subscribed kinds in first-registration order.
func (r Registry) Kinds() []Kind {
	return slices.Clone(r.order)
}

// Len returns the total number of handlers.
func (r Registry) Len() int {
	n := 0
	for _, hs := range r.handlers {
		n += len(hs)
	}
	return n
}

// IsEmpty reports whether no handler is registered.
func (r Registry) IsEmpty() bool {
	return len(r.order) == 0
}

// Dispatch calls the handlers for e.Kind in order and returns how many ran.
// A handler calling StopImmediatePropagation ends the dispatch.
func (r Registry) Dispatch(e *Event) int {
	if e == nil {
		return 0
	}
	ran := 0
	for _, h := range r.handlers[e.Kind] {
		h(e)
		ran++
		if e.stopped {
			break
		}
	}
	return ran
}

func (r Registry) clone() Registry {
	out := Registry{
		order:    slices.Clone(r.order),
		handlers: make(map[Kind][]Handler, len(r.handlers)+1),
	}
	for k, hs := range r.handlers {
		out.handlers[k] = hs
	}
	return out
}
