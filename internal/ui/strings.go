package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to the given cell width, adding an ellipsis if
// needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "...")
}

// truncateMiddle shortens a string by removing cells from the middle,
// preserving both the beginning and end. Useful for paths.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	const ellipsis = "…"
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}
	keep := limit - runewidth.StringWidth(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	return runewidth.Truncate(value, prefix, "") + ellipsis + tailCells(value, suffix)
}

// tailCells returns the shortest suffix of value that fits in width cells.
func tailCells(value string, width int) string {
	runes := []rune(value)
	used := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if used+w > width {
			break
		}
		used += w
		i--
	}
	return string(runes[i:])
}

// padRight pads a string with spaces to the given cell width.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// humanBytes formats a byte count for display.
func humanBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
