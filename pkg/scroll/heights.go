package scroll

import (
	"math"
	"sort"
)

// RowHeights is a row height model.
type RowHeights interface {
	// Offset returns the top edge of row i. Offset(n) is the full extent of
	// n rows.
	Offset(i int) float64
	// IndexAt returns the row containing offset y among n rows, clamped to
	// [0, n-1].
	IndexAt(y float64, n int) int
}

// Bounded is implemented by height models that only know a fixed number of
// rows.
type Bounded interface {
	Len() int
}

// Fixed is a uniform row height in pixels.
type Fixed float64

// Offset returns i rows of height f.
func (f Fixed) Offset(i int) float64 {
	return float64(i) * float64(f)
}

// IndexAt returns floor(y / f).
func (f Fixed) IndexAt(y float64, n int) int {
	if f <= 0 || n <= 0 {
		return 0
	}
	return clamp(int(math.Floor(y/float64(f))), 0, n-1)
}

// Variable is a per-row height model backed by a prefix-sum table, so
// offsets are O(1) and index lookups O(log n).
type Variable struct {
	prefix []float64
}

// NewVariable builds a model from explicit heights. Negative heights count
// as zero.
func NewVariable(heights []float64) *Variable {
	prefix := make([]float64, len(heights)+1)
	for i, h := range heights {
		prefix[i+1] = prefix[i] + max(h, 0)
	}
	return &Variable{prefix: prefix}
}

// NewVariableFunc builds a model for n rows from a height function.
func NewVariableFunc(n int, height func(i int) float64) *Variable {
	heights := make([]float64, max(n, 0))
	for i := range heights {
		heights[i] = height(i)
	}
	return NewVariable(heights)
}

// Len returns the number of rows the model knows.
func (v *Variable) Len() int {
	return len(v.prefix) - 1
}

// Height returns the height of row i.
func (v *Variable) Height(i int) float64 {
	if i < 0 || i >= v.Len() {
		return 0
	}
	return v.prefix[i+1] - v.prefix[i]
}

// Offset returns the top edge of row i, clamping i to the known rows.
func (v *Variable) Offset(i int) float64 {
	return v.prefix[clamp(i, 0, v.Len())]
}

// IndexAt returns the last row whose top edge is at or above y.
func (v *Variable) IndexAt(y float64, n int) int {
	n = min(n, v.Len())
	if n <= 0 {
		return 0
	}
	// First row whose bottom edge lies below y.
	i := sort.Search(n, func(i int) bool { return v.prefix[i+1] > y })
	return clamp(i, 0, n-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
