package uihelpers

import "strings"

// ComputeChartDimensions applies the width/height clamp rules for the chart area.
// Input: available canvas width. Returns clamped width & height; the chart keeps a 3:2
// aspect and never drops below the 600x400 default.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 600 {
		w = 600
	}
	if w > 1400 {
		w = 1400
	}
	h := w * 2 / 3
	if h < 400 {
		h = 400
	}
	if h > 560 {
		h = 560
	}
	return w, h
}

// ComputeTableColumnWidths returns the 8 column widths for the listing table given a window width.
// Order: Symbol, Name, Exchange, AssetType, IPODate, DelistingDate, Status, Price.
// Narrow windows hide the date columns (width 0) before squeezing the name.
func ComputeTableColumnWidths(winW float32) [8]int {
	const compactBreakpoint = 1000
	const ultraCompactBreakpoint = 640
	if winW < ultraCompactBreakpoint {
		return [8]int{80, 180, 0, 0, 0, 0, 0, 100}
	}
	if winW < compactBreakpoint {
		return [8]int{80, 240, 90, 80, 0, 0, 70, 110}
	}
	return [8]int{90, 320, 110, 100, 110, 120, 80, 120}
}

// RowIndexFromCell maps a table cell row (row 0 is the header) to a data index.
// Returns -1 for the header or anything out of range.
func RowIndexFromCell(cellRow, dataRows int) int {
	i := cellRow - 1
	if i < 0 || i >= dataRows {
		return -1
	}
	return i
}

// TruncateText shortens s to at most n runes, marking the cut with an ellipsis.
func TruncateText(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if n <= 1 || len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
