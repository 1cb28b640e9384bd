package grid

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextRowHeight returns a row height function for SetRowHeight that sizes
// each row by its tallest wrapped cell. widths gives a column's width in
// character units (the CSS ch unit); columns without a width never wrap.
// East Asian wide characters take two units.
func TextRowHeight[T any](columns []Column[T], widths map[string]int, lineHeight, padding float64) func(T) float64 {
	return func(row T) float64 {
		lines := 1
		for _, col := range columns {
			width := widths[col.Key]
			if width <= 0 {
				continue
			}
			lines = max(lines, wrappedLines(col.text(row), width))
		}
		return float64(lines)*lineHeight + padding
	}
}

func wrappedLines(text string, width int) int {
	total := 0
	for _, line := range strings.Split(text, "\n") {
		w := runewidth.StringWidth(line)
		total += max(1, (w+width-1)/width)
	}
	return total
}
