package ui

import "github.com/mattn/go-runewidth"

// Truncate clips s to the given display width, appending an ellipsis when
// clipped. Widths are measured in terminal cells, not bytes.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// Pad right-pads s with spaces to the given display width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
