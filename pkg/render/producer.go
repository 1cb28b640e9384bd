package render

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-drift/domkit/pkg/core"
	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/style"
	"github.com/go-drift/domkit/pkg/theme"
)

const tracerName = "github.com/go-drift/domkit/pkg/render"

// Producer turns configurations into render trees under one theme.
//
// Producing performs no host mutation; the output is a deterministic
// function of the configuration and the theme.
type Producer struct {
	theme  theme.Theme
	tracer trace.Tracer
}

// NewProducer creates a producer for the given theme.
func NewProducer(th theme.Theme) *Producer {
	return &Producer{theme: th, tracer: otel.Tracer(tracerName)}
}

// Theme returns the theme the producer renders with.
func (p *Producer) Theme() theme.Theme {
	return p.theme
}

// Produce resolves cfg into a render tree. The root node additionally
// carries the theme's direction, classes and palette.
func (p *Producer) Produce(cfg core.Config) (*Node, error) {
	return p.ProduceContext(context.Background(), cfg)
}

// ProduceContext is Produce with a context for tracing.
func (p *Producer) ProduceContext(ctx context.Context, cfg core.Config) (*Node, error) {
	_, span := p.tracer.Start(ctx, "render.Produce",
		trace.WithAttributes(attribute.String("widget.kind", cfg.Kind().String())))
	defer span.End()

	if err := cfg.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	root, err := p.produce(cfg, true)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("render.nodes", root.Count()))
	return root, nil
}

// ProduceChild resolves cfg without the root theme contribution, for
// subtrees mounted into an existing tree.
func (p *Producer) ProduceChild(cfg core.Config) (*Node, error) {
	if err := cfg.Err(); err != nil {
		return nil, err
	}
	return p.produce(cfg, false)
}

func (p *Producer) produce(cfg core.Config, root bool) (*Node, error) {
	r, err := p.resolve(cfg)
	if err != nil {
		return nil, err
	}

	set := cfg.Style()
	set.Classes = style.Classes{}.Add(p.theme.Class(cfg.Kind().String())).Add(set.Classes.Names()...)
	for _, d := range r.defaults {
		if _, ok := set.Attributes.Get(d.Key); ok {
			continue
		}
		if strings.HasPrefix(d.Key, "aria-") {
			if _, ok := set.Aria.Get(d.Key); ok {
				continue
			}
		}
		set.Attributes = set.Attributes.Set(d.Key, d.Value)
	}
	if set.Aria.Role == "" && r.role != "" {
		if _, explicit := set.Attributes.Get("role"); !explicit {
			set.Aria = set.Aria.WithRole(r.role)
		}
	}
	if root {
		set = mergeRoot(p.theme.RootSet(), set)
	}

	if r.text && isPlainText(cfg) && !root {
		return &Node{Text: r.content, Key: cfg.Key(), Kind: cfg.Kind()}, nil
	}

	node := &Node{
		Tag:       r.tag,
		Key:       cfg.Key(),
		Kind:      cfg.Kind(),
		Attrs:     style.Compose(set),
		Listeners: cfg.Listeners(),
	}
	if r.content != "" {
		node.Children = append(node.Children, &Node{Text: r.content, Kind: core.KindText})
	}
	for i, child := range cfg.Children() {
		c, err := p.produce(child, false)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		node.Children = append(node.Children, c)
	}
	return node, nil
}

// resolved is the kind-specific part of a node.
type resolved struct {
	tag      string
	role     string
	content  string
	text     bool
	defaults []style.Attr
}

func (p *Producer) resolve(cfg core.Config) (resolved, error) {
	switch v := cfg.Variant().(type) {
	case core.Element:
		return resolved{tag: v.Tag}, nil
	case core.Text:
		return resolved{tag: "span", content: v.Content, text: true}, nil
	case core.Button:
		return resolved{
			tag:      "button",
			content:  v.Label,
			defaults: []style.Attr{{Key: "type", Value: style.String("button")}},
		}, nil
	case core.Input:
		defaults := []style.Attr{{Key: "type", Value: style.String(v.Type)}}
		if v.Value != "" {
			defaults = append(defaults, style.Attr{Key: "value", Value: style.String(v.Value)})
		}
		if v.Placeholder != "" {
			defaults = append(defaults, style.Attr{Key: "placeholder", Value: style.String(v.Placeholder)})
		}
		return resolved{tag: "input", defaults: defaults}, nil
	case core.Link:
		return resolved{
			tag:      "a",
			content:  v.Label,
			defaults: []style.Attr{{Key: "href", Value: style.String(v.Href)}},
		}, nil
	case core.Dialog:
		r := resolved{tag: "dialog", role: "dialog"}
		if v.Modal {
			r.defaults = []style.Attr{{Key: "aria-modal", Value: style.String("true")}}
		}
		return r, nil
	case core.Popover:
		mode := "auto"
		if v.Manual {
			mode = "manual"
		}
		return resolved{tag: "div", defaults: []style.Attr{{Key: "popover", Value: style.String(mode)}}}, nil
	case core.Toolbar:
		r := resolved{tag: "div", role: "toolbar"}
		if v.Vertical {
			r.defaults = []style.Attr{{Key: "aria-orientation", Value: style.String("vertical")}}
		}
		return r, nil
	case core.Menu:
		return resolved{tag: "div", role: "menu"}, nil
	case core.MenuItem:
		return resolved{
			tag:      "div",
			role:     "menuitem",
			content:  v.Label,
			defaults: []style.Attr{{Key: "tabindex", Value: style.Int(-1)}},
		}, nil
	default:
		return resolved{}, &errors.Error{
			Op:   "render.Produce",
			Kind: errors.KindRender,
			Err:  fmt.Errorf("unsupported widget variant %T", v),
		}
	}
}

// isPlainText reports whether a text configuration can be emitted as a bare
// text node rather than a span.
func isPlainText(cfg core.Config) bool {
	s := cfg.Style()
	return s.Attributes.Len() == 0 && s.Classes.Len() == 0 && s.Styles.Len() == 0 &&
		s.Aria.IsEmpty() && cfg.Listeners().IsEmpty() && len(cfg.Children()) == 0
}

// mergeRoot layers the widget's own set over the theme's root set.
func mergeRoot(base, own style.Set) style.Set {
	out := own
	for _, a := range base.Attributes.List() {
		if _, ok := own.Attributes.Get(a.Key); !ok {
			out.Attributes = out.Attributes.Set(a.Key, a.Value)
		}
	}
	out.Classes = out.Classes.Add(base.Classes.Names()...)
	out.Styles = base.Styles.Merge(own.Styles)
	return out
}
