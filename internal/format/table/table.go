package table

import "github.com/mattn/go-runewidth"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const ellipsis = "…"

// Widths splits total columns by percentages. Columns are separated by gap
// cells, and the last column absorbs rounding so the widths always sum to
// total minus the gaps.
func Widths(total, gap int, percents ...int) []int {
	if len(percents) == 0 {
		return nil
	}
	usable := total - gap*(len(percents)-1)
	if usable < 0 {
		usable = 0
	}
	out := make([]int, len(percents))
	used := 0
	for i, p := range percents[:len(percents)-1] {
		out[i] = usable * p / 100
		used += out[i]
	}
	out[len(out)-1] = usable - used
	return out
}

// Fit truncates or pads every cell to its column width.
func Fit(cells []string, widths []int, alignments []Alignment) []string {
	out := make([]string, len(widths))
	for c, width := range widths {
		var cell string
		if c < len(cells) {
			cell = cells[c]
		}
		if runewidth.StringWidth(cell) > width {
			cell = runewidth.Truncate(cell, width, ellipsis)
		}
		out[c] = cell
	}
	return pad(out, widths, alignments)
}

func pad(row []string, widths []int, alignments []Alignment) []string {
	out := make([]string, len(widths))
	for c, width := range widths {
		var cell string
		if c < len(row) {
			cell = row[c]
		}
		if c < len(alignments) && alignments[c] == AlignRight {
			out[c] = runewidth.FillLeft(cell, width)
		} else {
			out[c] = runewidth.FillRight(cell, width)
		}
	}
	return out
}
