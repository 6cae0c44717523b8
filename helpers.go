package main

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate fits s into exactly width terminal cells, padding with spaces if
// shorter and cutting with an ellipsis if longer
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return runewidth.FillRight(s, width)
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// ellipsize cuts s to at most width cells without padding
func ellipsize(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// fitLine keeps a single status line within the terminal width. A zero
// width means the size is not known yet.
func fitLine(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return s
	}
	return ellipsize(s, width)
}

// formatPorts formats a list of ports for display with truncation.
// maxWidth is the maximum character width for the output.
func formatPorts(ports []int, maxWidth int) string {
	if len(ports) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(ports[0]))

	for i := 1; i < len(ports); i++ {
		next := ", " + strconv.Itoa(ports[i])

		// Reserve room for a "+N" suffix if more ports follow this one
		suffixLen := 0
		if i < len(ports)-1 {
			suffixLen = len(" +") + len(strconv.Itoa(len(ports)-i))
		}

		if sb.Len()+len(next)+suffixLen > maxWidth {
			sb.WriteString(" +")
			sb.WriteString(strconv.Itoa(len(ports) - i))
			break
		}
		sb.WriteString(next)
	}

	return sb.String()
}
