// Package core provides the capability builder every widget kind is made of.
//
// A widget is described by a [Config]: an immutable value that aggregates
// classes, inline styles, attributes, ARIA role and properties, event
// listeners and children. There is no widget inheritance. Each widget kind
// supplies only what differs (its [Variant]: tag and kind-specific fields)
// and shares every other behavior through the same chain of WithX methods.
//
// # Builder Chains
//
// Every method returns an updated copy and leaves its receiver untouched:
//
//	save := core.NewButton("Save").
//	    WithClass("primary").
//	    WithStyle("min-width", "6em").
//	    On(events.Click, onSave)
//
//	toolbar := core.NewToolbar().WithChild(save).WithChild(core.NewButton("Cancel"))
//
// # Build-Time Errors
//
// Malformed input (an empty attribute key, an invalid style key, an unknown
// event kind) is recorded on the returned configuration and surfaces from
// [Config.Build] or [Config.Err] as an [errors.ErrInvalidConfiguration]. A
// configuration carrying an error must not be rendered; the render package
// refuses it.
//
// # Constructor Conventions
//
// Widget kinds use NewX() constructors returning a Config value. Long-lived
// mutable objects (grid controllers, focus managers, the event loop) use
// NewX() constructors returning pointers.
package core
