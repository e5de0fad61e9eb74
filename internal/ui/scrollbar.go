// Package ui provides small rendering helpers shared by the host views.
package ui

import "strings"

// ScrollbarParams configures a vertical scrollbar rendering.
type ScrollbarParams struct {
	TotalItems   int // Total logical items in the list
	ScrollOffset int // Index of first visible item
	VisibleItems int // Number of items that fit in the viewport
	TrackHeight  int // Height of the scrollbar track in terminal rows
}

// RenderScrollbar returns a single-column string (newline-separated)
// representing a vertical scrollbar track. When all content fits it
// returns a column of spaces so the width stays reserved and the layout
// does not jitter.
func RenderScrollbar(params ScrollbarParams) string {
	if params.TrackHeight < 1 {
		return ""
	}

	if params.TotalItems <= params.VisibleItems {
		lines := make([]string, params.TrackHeight)
		for i := range lines {
			lines[i] = " "
		}
		return strings.Join(lines, "\n")
	}

	// Thumb size proportional to the visible fraction, clamped to track.
	thumbSize := (params.VisibleItems * params.TrackHeight) / params.TotalItems
	if thumbSize < 1 {
		thumbSize = 1
	}
	if thumbSize > params.TrackHeight {
		thumbSize = params.TrackHeight
	}

	maxOffset := params.TotalItems - params.VisibleItems
	if maxOffset < 1 {
		maxOffset = 1
	}
	offset := params.ScrollOffset
	if offset > maxOffset {
		offset = maxOffset
	}
	thumbPos := (offset * (params.TrackHeight - thumbSize)) / maxOffset

	lines := make([]string, params.TrackHeight)
	for i := range lines {
		if i >= thumbPos && i < thumbPos+thumbSize {
			lines[i] = "█"
		} else {
			lines[i] = "░"
		}
	}
	return strings.Join(lines, "\n")
}
