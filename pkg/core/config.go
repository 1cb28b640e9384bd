package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/style"
)

// Config is the builder-produced description of one widget instance.
//
// The zero value is an empty div element. Children are owned exclusively by
// their parent; since Config is a value and every method copies what it
// changes, a child added to two parents is two independent subtrees.
type Config struct {
	variant   Variant
	key       string
	styles    style.Set
	listeners events.Registry
	children  []Config
	err       error
}

// New returns a configuration for the given variant.
func New(v Variant) Config {
	return Config{variant: v}
}

// Variant returns the widget-specific part of the configuration.
func (c Config) Variant() Variant {
	if c.variant == nil {
		return Element{Tag: "div"}
	}
	return c.variant
}

// Kind returns the widget kind.
func (c Config) Kind() Kind {
	return c.Variant().Kind()
}

// Key returns the stable diffing key, or "" when unset.
func (c Config) Key() string {
	return c.key
}

// Style returns the composed style/attribute state.
func (c Config) Style() style.Set {
	return c.styles
}

// Listeners returns the listener registry.
func (c Config) Listeners() events.Registry {
	return c.listeners
}

// Children returns the child configurations in render order.
func (c Config) Children() []Config {
	return slices.Clone(c.children)
}

// Err returns the first build-time error recorded on this configuration or
// any of its children.
func (c Config) Err() error {
	return c.err
}

// Build returns the configuration and its build-time error.
func (c Config) Build() (Config, error) {
	return c, c.err
}

func (c Config) fail(op, format string, args ...any) Config {
	if c.err == nil {
		c.err = errors.InvalidConfiguration(op, format, args...)
	}
	return c
}

// WithKey returns a copy with the stable diffing key set.
func (c Config) WithKey(key string) Config {
	c.key = key
	return c
}

// WithClass returns a copy with the given classes added. Duplicates are
// ignored.
func (c Config) WithClass(classes ...string) Config {
	c.styles.Classes = c.styles.Classes.Add(classes...)
	return c
}

// WithStyle returns a copy with an inline style property set. A later write
// to the same key wins; an empty value removes the property.
func (c Config) WithStyle(key, value string) Config {
	if err := style.ValidateStyle(key, value); err != nil {
		return c.fail("core.WithStyle", "%v", err)
	}
	c.styles.Styles = c.styles.Styles.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	return c
}

// WithAttribute returns a copy with an attribute set. A later write to the
// same key wins. An empty key is an invalid configuration.
func (c Config) WithAttribute(key string, value style.Value) Config {
	key = strings.TrimSpace(key)
	if key == "" {
		return c.fail("core.WithAttribute", "empty attribute key")
	}
	if strings.ContainsAny(key, " \t\n\"'>/=") {
		return c.fail("core.WithAttribute", "invalid attribute key %q", key)
	}
	c.styles.Attributes = c.styles.Attributes.Set(strings.ToLower(key), value)
	return c
}

// WithAttr is WithAttribute for string values.
func (c Config) WithAttr(key, value string) Config {
	return c.WithAttribute(key, style.String(value))
}

// WithoutAttribute returns a copy with the attribute removed.
func (c Config) WithoutAttribute(key string) Config {
	c.styles.Attributes = c.styles.Attributes.Remove(strings.ToLower(strings.TrimSpace(key)))
	return c
}

// WithID sets the id attribute.
func (c Config) WithID(id string) Config {
	return c.WithAttr("id", id)
}

// WithTabIndex sets the tabindex attribute.
func (c Config) WithTabIndex(index int) Config {
	return c.WithAttribute("tabindex", style.Int(index))
}

// WithDisabled sets or clears the disabled attribute.
func (c Config) WithDisabled(disabled bool) Config {
	return c.WithAttribute("disabled", style.Bool(disabled))
}

// WithHidden sets or clears the hidden attribute.
func (c Config) WithHidden(hidden bool) Config {
	return c.WithAttribute("hidden", style.Bool(hidden))
}

// On returns a copy with h appended to the listeners for kind.
func (c Config) On(kind events.Kind, h events.Handler) Config {
	if !kind.Valid() {
		return c.fail("core.On", "unknown event kind %d", int(kind))
	}
	c.listeners = c.listeners.On(kind, h)
	return c
}

// Off returns a copy with every listener for kind removed.
func (c Config) Off(kind events.Kind) Config {
	c.listeners = c.listeners.Clear(kind)
	return c
}

// WithListeners returns a copy with all of r's handlers appended.
func (c Config) WithListeners(r events.Registry) Config {
	c.listeners = c.listeners.Merge(r)
	return c
}

// WithChild returns a copy with child appended. A child carrying a
// build-time error propagates it to the parent.
func (c Config) WithChild(child Config) Config {
	if child.err != nil && c.err == nil {
		c.err = fmt.Errorf("child %d: %w", len(c.children), child.err)
	}
	children := make([]Config, len(c.children), len(c.children)+1)
	copy(children, c.children)
	c.children = append(children, child)
	return c
}

// WithChildren appends each child in order.
func (c Config) WithChildren(children ...Config) Config {
	for _, child := range children {
		c = c.WithChild(child)
	}
	return c
}

// Prop builds one ARIA property for WithAria. The aria- prefix is optional.
func Prop(name string, value style.Value) style.Attr {
	return style.Attr{Key: name, Value: value}
}

// WithAria returns a copy with the ARIA role (ignored when empty) and
// properties set. Property writes follow last-write-wins.
func (c Config) WithAria(role string, props ...style.Attr) Config {
	aria := c.styles.Aria.WithRole(role)
	for _, p := range props {
		if strings.TrimSpace(p.Key) == "" {
			return c.fail("core.WithAria", "empty aria property name")
		}
		aria = aria.Set(p.Key, p.Value)
	}
	c.styles.Aria = aria
	return c
}

// WithVariant returns a copy with the widget-specific part replaced.
func (c Config) WithVariant(v Variant) Config {
	if v == nil {
		return c.fail("core.WithVariant", "nil variant")
	}
	c.variant = v
	return c
}

// Attribute returns an explicitly set attribute.
func (c Config) Attribute(key string) (style.Value, bool) {
	return c.styles.Attributes.Get(key)
}
