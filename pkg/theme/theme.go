// Package theme provides the explicit theme value threaded through rendering.
//
// A Theme is passed to the render producer by value; there is no ambient
// global theme, so independent render trees never interfere.
package theme

import (
	"maps"
	"slices"
	"strings"

	"github.com/go-drift/domkit/pkg/style"
)

// ToolkitVersion is checked against a theme manifest's requires field.
const ToolkitVersion = "v0.4.0"

// Direction is the document writing direction.
type Direction int

const (
	// LeftToRight is the default direction.
	LeftToRight Direction = iota
	// RightToLeft mirrors horizontal layout and arrow-key traversal.
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Density selects control and row sizing.
type Density int

const (
	DensityMedium Density = iota
	DensityCompact
	DensityTouch
)

func (d Density) String() string {
	switch d {
	case DensityCompact:
		return "compact"
	case DensityTouch:
		return "touch"
	default:
		return "medium"
	}
}

// Theme contains the theme configuration for one render tree.
type Theme struct {
	// Name identifies the theme; rendered as the <prefix>theme-<name> class.
	Name string
	// Direction is the document direction.
	Direction Direction
	// Density selects sizing.
	Density Density
	// ClassPrefix is prepended to every toolkit class name.
	ClassPrefix string
	// RowHeight overrides the density's default grid row height when > 0.
	RowHeight float64
	// Colors maps palette names to normalized colors; rendered as CSS
	// custom properties.
	Colors map[string]string
}

// Default returns the default light, left-to-right theme.
func Default() Theme {
	return Theme{
		Name:        "default",
		ClassPrefix: "dk-",
		Colors: map[string]string{
			"primary":    "#1565c0",
			"surface":    "#ffffff",
			"on-surface": "#1c1b1f",
			"selection":  "#e3f2fd",
		},
	}
}

// WithDirection returns a copy of t with the direction set.
func (t Theme) WithDirection(d Direction) Theme {
	t.Direction = d
	return t
}

// WithDensity returns a copy of t with the density set.
func (t Theme) WithDensity(d Density) Theme {
	t.Density = d
	return t
}

// WithColor returns a copy of t with one palette entry set. The value is
// normalized; invalid colors are reported as an error.
func (t Theme) WithColor(name, value string) (Theme, error) {
	normalized, err := NormalizeColor(value)
	if err != nil {
		return t, err
	}
	colors := maps.Clone(t.Colors)
	if colors == nil {
		colors = make(map[string]string)
	}
	colors[name] = normalized
	t.Colors = colors
	return t, nil
}

// IsRTL reports whether the direction is right-to-left.
func (t Theme) IsRTL() bool {
	return t.Direction == RightToLeft
}

// Class returns a toolkit class name with the theme prefix.
func (t Theme) Class(name string) string {
	return t.ClassPrefix + name
}

// GridRowHeight returns the row height in pixels for grids.
func (t Theme) GridRowHeight() float64 {
	if t.RowHeight > 0 {
		return t.RowHeight
	}
	switch t.Density {
	case DensityCompact:
		return 24
	case DensityTouch:
		return 44
	default:
		return 32
	}
}

// RootSet returns the style contribution for a render root: dir, theme and
// density classes, and the palette as custom properties in name order.
func (t Theme) RootSet() style.Set {
	set := style.Set{
		Attributes: style.Attributes{}.Set("dir", style.String(t.Direction.String())),
		Classes: style.Classes{}.Add(
			t.Class("theme-"+strings.ToLower(t.Name)),
			t.Class("density-"+t.Density.String()),
		),
	}
	for _, name := range slices.Sorted(maps.Keys(t.Colors)) {
		set.Styles = set.Styles.Set("--"+t.Class("color-"+name), t.Colors[name])
	}
	return set
}
