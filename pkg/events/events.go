// Package events provides the listener registry attached to widget
// configurations and the event values dispatched through it.
package events

// Kind enumerates the event kinds a widget can subscribe to.
type Kind int

const (
	Click Kind = iota
	DoubleClick
	ContextMenu
	KeyDown
	KeyUp
	Focus
	Blur
	FocusIn
	FocusOut
	Input
	Change
	Scroll
	PointerDown
	PointerUp
	PointerEnter
	PointerLeave
	Submit
	Resize
	kindCount
)

var kindNames = [kindCount]string{
	Click:        "click",
	DoubleClick:  "dblclick",
	ContextMenu:  "contextmenu",
	KeyDown:      "keydown",
	KeyUp:        "keyup",
	Focus:        "focus",
	Blur:         "blur",
	FocusIn:      "focusin",
	FocusOut:     "focusout",
	Input:        "input",
	Change:       "change",
	Scroll:       "scroll",
	PointerDown:  "pointerdown",
	PointerUp:    "pointerup",
	PointerEnter: "pointerenter",
	PointerLeave: "pointerleave",
	Submit:       "submit",
	Resize:       "resize",
}

// String returns the DOM event name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// ParseKind maps a DOM event name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Modifiers records the modifier keys held during an event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// Event is one input event delivered to handlers.
type Event struct {
	Kind Kind
	// TargetID is the id attribute of the node the event was dispatched on.
	TargetID string
	// Key is the DOM key value for keyboard events ("ArrowDown", " ", "Enter").
	Key string
	Modifiers
	// Value carries the current text for input and change events.
	Value string
	// ScrollTop and ViewportHeight carry scroll and resize geometry.
	ScrollTop      float64
	ViewportHeight float64

	defaultPrevented bool
	stopped          bool
	bubbleStopped    bool
}

// PreventDefault marks the event as handled so the host skips its default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopImmediatePropagation prevents the remaining handlers on this node
// and every ancestor from running.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.bubbleStopped = true
}

// StopPropagation lets the remaining handlers on the current node run but
// keeps the event from bubbling to ancestors.
func (e *Event) StopPropagation() {
	e.bubbleStopped = true
}

// PropagationStopped reports whether the event should stop bubbling.
func (e *Event) PropagationStopped() bool {
	return e.bubbleStopped
}

// Handler receives an event.
type Handler func(e *Event)
