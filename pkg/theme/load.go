package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// File is the YAML form of a theme manifest.
type File struct {
	Name        string            `yaml:"name"`
	Requires    string            `yaml:"requires,omitempty"`
	Direction   string            `yaml:"direction,omitempty"`
	Density     string            `yaml:"density,omitempty"`
	ClassPrefix *string           `yaml:"classPrefix,omitempty"`
	RowHeight   float64           `yaml:"rowHeight,omitempty"`
	Colors      map[string]string `yaml:"colors,omitempty"`
}

// Load reads a theme manifest from path.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional reads a theme manifest if path is non-empty and exists,
// returning the default theme otherwise.
func LoadOptional(path string) (Theme, error) {
	if path == "" {
		return Default(), nil
	}
	t, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return t, err
}

// Parse decodes a YAML theme manifest on top of the default theme.
func Parse(data []byte) (Theme, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}
	return f.Resolve()
}

// Resolve validates the manifest and converts it to a Theme.
func (f File) Resolve() (Theme, error) {
	if err := checkRequires(f.Requires); err != nil {
		return Theme{}, err
	}

	t := Default()
	if name := strings.TrimSpace(f.Name); name != "" {
		t.Name = name
	}
	if f.ClassPrefix != nil {
		t.ClassPrefix = *f.ClassPrefix
	}
	if f.RowHeight < 0 {
		return Theme{}, fmt.Errorf("rowHeight must not be negative, got %v", f.RowHeight)
	}
	t.RowHeight = f.RowHeight

	switch strings.ToLower(strings.TrimSpace(f.Direction)) {
	case "", "ltr":
		t.Direction = LeftToRight
	case "rtl":
		t.Direction = RightToLeft
	default:
		return Theme{}, fmt.Errorf("unknown direction %q", f.Direction)
	}

	switch strings.ToLower(strings.TrimSpace(f.Density)) {
	case "", "medium":
		t.Density = DensityMedium
	case "compact":
		t.Density = DensityCompact
	case "touch":
		t.Density = DensityTouch
	default:
		return Theme{}, fmt.Errorf("unknown density %q", f.Density)
	}

	for name, value := range f.Colors {
		var err error
		if t, err = t.WithColor(name, value); err != nil {
			return Theme{}, fmt.Errorf("color %s: %w", name, err)
		}
	}
	return t, nil
}

func checkRequires(requires string) error {
	requires = strings.TrimSpace(requires)
	if requires == "" {
		return nil
	}
	if !strings.HasPrefix(requires, "v") {
		requires = "v" + requires
	}
	if !semver.IsValid(requires) {
		return fmt.Errorf("invalid requires version %q", requires)
	}
	if semver.Compare(ToolkitVersion, requires) < 0 {
		return fmt.Errorf("theme requires toolkit %s, have %s", requires, ToolkitVersion)
	}
	return nil
}
