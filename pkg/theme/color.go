package theme

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var passthroughColors = map[string]bool{
	"transparent":  true,
	"currentcolor": true,
	"inherit":      true,
}

// NormalizeColor resolves a CSS color name or hex value to lowercase
// #rrggbb. Keywords such as transparent and var() references pass through.
func NormalizeColor(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", fmt.Errorf("empty color")
	}
	if passthroughColors[v] || strings.HasPrefix(v, "var(") {
		return v, nil
	}
	if rgba, ok := colornames.Map[v]; ok {
		c, _ := colorful.MakeColor(rgba)
		return c.Hex(), nil
	}
	if strings.HasPrefix(v, "#") {
		c, err := colorful.Hex(v)
		if err != nil {
			return "", fmt.Errorf("invalid color %q: %w", value, err)
		}
		return c.Hex(), nil
	}
	return "", fmt.Errorf("unknown color %q", value)
}
