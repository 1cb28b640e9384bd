// Package config loads the optional domkit.yaml that describes how the CLI
// turns JSON rows into a grid.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the configuration file looked up when no path is given.
	FileName = "domkit.yaml"
	// DefaultViewport is the grid body height in pixels when unset.
	DefaultViewport = 400
)

// Config represents domkit.yaml.
type Config struct {
	// Theme is a theme manifest path, relative to the config file.
	Theme string     `yaml:"theme,omitempty"`
	Grid  GridConfig `yaml:"grid"`
}

// GridConfig describes the grid built from the row data.
type GridConfig struct {
	ID            string   `yaml:"id,omitempty"`
	Rows          string   `yaml:"rows,omitempty"`
	Key           string   `yaml:"key,omitempty"`
	MultiSelect   bool     `yaml:"multiSelect,omitempty"`
	VirtualScroll *bool    `yaml:"virtualScroll,omitempty"`
	Viewport      float64  `yaml:"viewport,omitempty"`
	Overscan      int      `yaml:"overscan,omitempty"`
	RowHeight     float64  `yaml:"rowHeight,omitempty"`
	LineHeight    float64  `yaml:"lineHeight,omitempty"`
	Columns       []Column `yaml:"columns,omitempty"`
}

// Column maps one grid column onto a gjson path.
type Column struct {
	Key      string `yaml:"key"`
	Header   string `yaml:"header,omitempty"`
	Path     string `yaml:"path,omitempty"`
	Width    int    `yaml:"width,omitempty"`
	Sortable *bool  `yaml:"sortable,omitempty"`
}

// IsSortable reports whether the column accepts header sorting. Columns are
// sortable unless disabled.
func (c Column) IsSortable() bool {
	return c.Sortable == nil || *c.Sortable
}

// Load reads and resolves a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Theme != "" && !filepath.IsAbs(cfg.Theme) {
		cfg.Theme = filepath.Join(filepath.Dir(path), cfg.Theme)
	}
	return cfg, nil
}

// LoadOptional reads domkit.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Parse(nil)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML and fills defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolve() error {
	g := &c.Grid
	if strings.TrimSpace(g.ID) == "" {
		g.ID = "grid"
	}
	if strings.TrimSpace(g.Key) == "" {
		g.Key = "id"
	}
	switch {
	case g.Viewport < 0:
		return fmt.Errorf("grid.viewport must not be negative")
	case g.Viewport == 0:
		g.Viewport = DefaultViewport
	}
	if g.Overscan < 0 {
		return fmt.Errorf("grid.overscan must not be negative")
	}
	seen := make(map[string]bool, len(g.Columns))
	for i := range g.Columns {
		col := &g.Columns[i]
		col.Key = strings.TrimSpace(col.Key)
		if col.Key == "" {
			return fmt.Errorf("grid.columns[%d]: key is required", i)
		}
		if seen[col.Key] {
			return fmt.Errorf("grid.columns[%d]: duplicate key %q", i, col.Key)
		}
		seen[col.Key] = true
		if col.Header == "" {
			col.Header = col.Key
		}
		if col.Path == "" {
			col.Path = col.Key
		}
	}
	return nil
}

// Widths returns the configured column widths in cells, or nil when no
// column wraps.
func (g GridConfig) Widths() map[string]int {
	var widths map[string]int
	for _, col := range g.Columns {
		if col.Width <= 0 {
			continue
		}
		if widths == nil {
			widths = make(map[string]int)
		}
		widths[col.Key] = col.Width
	}
	return widths
}
