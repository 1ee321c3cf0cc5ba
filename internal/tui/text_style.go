package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// clampLine cuts a styled line to maxWidth cells.
func clampLine(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "~")
}

func rule(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("─", width)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
