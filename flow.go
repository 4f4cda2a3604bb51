package chipflow

import (
	"fmt"
	"math"
)

// Flow layout: greedy left-to-right wrapping of measured items into rows.
//
// Rows (top→down): items are placed first-fit into the open row until the
// next one does not fit, then a new row is started. No lookahead, no
// backtracking, input order is preserved.
//
// Widths (per row): whatever width the row leaves unused is shared evenly
// between its items, so every row spans the container.

// Line is one laid-out row: the item keys and the width each should take.
type Line[K comparable] struct {
	Items  []K
	Widths []float64
}

// ComputeRows partitions items into rows that fit availableWidth.
//
// Items missing from sizes are treated as availableWidth wide, which puts
// every unmeasured item on a row of its own until it has been measured.
// An item wider than availableWidth is still placed, alone.
//
// Empty input yields no rows. Panics if availableWidth or spacing is
// negative or not finite.
func ComputeRows[K comparable](items []K, sizes SizeLookup[K], availableWidth, spacing float64) [][]K {
	mustLayoutArgs(availableWidth, spacing)
	if len(items) == 0 {
		return nil
	}

	rows := [][]K{make([]K, 0, len(items))}
	current := 0
	remaining := availableWidth

	for _, item := range items {
		width := intrinsicWidth(sizes, item, availableWidth)

		// an empty row always takes the item, otherwise an oversized
		// first item would leave an empty row behind it
		if remaining-width >= 0 || len(rows[current]) == 0 {
			rows[current] = append(rows[current], item)
			remaining -= width + spacing
			continue
		}

		current++
		rows = append(rows, []K{item})
		remaining = availableWidth - width - spacing
	}

	return rows
}

// ComputeTargetWidths returns the width each item of row should be given:
// its measured width plus an even share of the leftover row width.
// Unmeasured items count as zero wide here.
func ComputeTargetWidths[K comparable](row []K, sizes SizeLookup[K], availableWidth, spacing float64) []float64 {
	mustLayoutArgs(availableWidth, spacing)
	if len(row) == 0 {
		return []float64{}
	}

	count := float64(len(row))
	totalSpacing := spacing * (count - 1)

	widths := make([]float64, len(row))
	var used float64
	for i, item := range row {
		if s, ok := lookup(sizes, item); ok {
			widths[i] = s.Width
		}
		used += widths[i]
	}

	extra := math.Max(availableWidth-used-totalSpacing, 0) / count
	for i := range widths {
		widths[i] += extra
	}
	return widths
}

// Layout runs ComputeRows and ComputeTargetWidths in one call.
func Layout[K comparable](items []K, sizes SizeLookup[K], availableWidth, spacing float64) []Line[K] {
	rows := ComputeRows(items, sizes, availableWidth, spacing)
	lines := make([]Line[K], len(rows))
	for i, row := range rows {
		lines[i] = Line[K]{
			Items:  row,
			Widths: ComputeTargetWidths(row, sizes, availableWidth, spacing),
		}
	}
	return lines
}

func intrinsicWidth[K comparable](sizes SizeLookup[K], item K, fallback float64) float64 {
	if s, ok := lookup(sizes, item); ok {
		return s.Width
	}
	return fallback
}

func lookup[K comparable](sizes SizeLookup[K], item K) (Size, bool) {
	if sizes == nil {
		return Size{}, false
	}
	return sizes.Size(item)
}

func validWidth(w float64) bool {
	return w >= 0 && !math.IsInf(w, 1) && !math.IsNaN(w)
}

func mustLayoutArgs(availableWidth, spacing float64) {
	if !validWidth(availableWidth) {
		panic(fmt.Sprintf("chipflow: invalid available width %v", availableWidth))
	}
	if !validWidth(spacing) {
		panic(fmt.Sprintf("chipflow: invalid spacing %v", spacing))
	}
}
