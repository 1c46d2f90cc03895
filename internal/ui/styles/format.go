// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
// Embedded ANSI sequences are preserved.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	return ansi.Truncate(s, maxWidth, "...")
}

// DirtyTitle appends the unsaved-changes marker to a document title.
func DirtyTitle(title string, dirty bool) string {
	if dirty {
		return title + " ●"
	}
	return title
}
