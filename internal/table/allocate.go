package table

import (
	"math"

	"github.com/dloss/adoview/internal/fields"
)

const (
	// MinColumnWidth is the narrowest a column is ever made.
	MinColumnWidth = 6
	// SeparatorWidth is the per-column cost of " │ " framing.
	SeparatorWidth = 3
	// BorderWidth is the leading border column.
	BorderWidth = 1
)

// Overhead is the number of terminal cells taken by borders and separators
// for n columns.
func Overhead(n int) int {
	if n <= 0 {
		return 0
	}
	return n*SeparatorWidth + BorderWidth
}

// Allocate splits totalWidth between columns in proportion to their weights.
// Every column gets at least MinColumnWidth; when the minimums alone do not
// fit, they are returned as-is and the table overflows.
func Allocate(descs []fields.Descriptor, totalWidth int) []int {
	n := len(descs)
	widths := make([]int, n)
	if n == 0 {
		return widths
	}

	usable := max(totalWidth-Overhead(n), n*MinColumnWidth)

	totalWeight := 0.0
	for _, d := range descs {
		totalWeight += d.EffectiveWeight()
	}

	allocated := 0
	for i, d := range descs {
		w := int(math.Floor(d.EffectiveWeight() * float64(usable) / totalWeight))
		if w < MinColumnWidth {
			w = MinColumnWidth
		}
		widths[i] = w
		allocated += w
	}

	for allocated < usable {
		widths[widestColumn(widths)]++
		allocated++
	}

	// Clamping to the minimum can overshoot; take it back from the widest.
	for allocated > usable {
		idx := widestColumnAboveMin(widths)
		if idx == -1 {
			break
		}
		widths[idx]--
		allocated--
	}

	return widths
}

func widestColumn(widths []int) int {
	idx := 0
	for i, w := range widths {
		if w > widths[idx] {
			idx = i
		}
	}
	return idx
}

func widestColumnAboveMin(widths []int) int {
	idx := -1
	maxWidth := math.MinInt
	for i, w := range widths {
		if w > maxWidth && w > MinColumnWidth {
			maxWidth = w
			idx = i
		}
	}
	return idx
}
