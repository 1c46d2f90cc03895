// Package overlay draws a box over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Place draws fg centered over bg, keeping the styled background visible
// on both sides of every overlaid line. An empty bg centers fg in blank
// space.
func Place(width, height int, fg, bg string) string {
	if bg == "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, fg)
	}

	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-len(fgLines))/2, 0)

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		var right string
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
