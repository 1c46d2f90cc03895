// Package panes renders the bordered editor and terminal panes.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures the appearance of a bordered pane.
type BorderConfig struct {
	Content string // The content to render inside the border
	Width   int    // Total width including borders
	Height  int    // Total height including borders

	// Titles embedded in the border, all optional
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string

	Focused            bool
	TitleColor         lipgloss.TerminalColor
	BorderColor        lipgloss.TerminalColor // unfocused
	FocusedBorderColor lipgloss.TerminalColor // nil inherits BorderColor
}

// BorderedPane renders content inside a rounded border with optional
// titles. Content is clipped and padded to the inner area so the right
// border always aligns.
func BorderedPane(cfg BorderConfig) string {
	borderColor := resolveBorderColor(cfg.BorderColor, cfg.FocusedBorderColor, cfg.Focused)

	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.TextMutedColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	contentHeight := max(cfg.Height-2, 1)

	top := buildEdge(borderTopLeft, borderTopRight, cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle)
	bottom := buildEdge(borderBottomLeft, borderBottomRight, cfg.BottomLeft, cfg.BottomRight, innerWidth, borderStyle, titleStyle)

	constrained := lipgloss.NewStyle().
		MaxWidth(innerWidth).
		Render(cfg.Content)
	contentLines := strings.Split(constrained, "\n")

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteString(line)
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteString("\n")
	}
	b.WriteString(bottom)
	return b.String()
}

func resolveBorderColor(borderColor, focusedBorderColor lipgloss.TerminalColor, focused bool) lipgloss.TerminalColor {
	if borderColor == nil {
		borderColor = styles.TextMutedColor
	}
	if focused && focusedBorderColor != nil {
		return focusedBorderColor
	}
	return borderColor
}

// buildEdge renders one horizontal border:
//
//	╭─ Left ───────── Right ─╮
//
// When both titles do not fit, the right title is dropped and the left one
// truncated.
func buildEdge(leftCorner, rightCorner, left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	plain := func() string {
		return borderStyle.Render(leftCorner + strings.Repeat(borderHorizontal, innerWidth) + rightCorner)
	}
	if innerWidth < 1 {
		return borderStyle.Render(leftCorner + rightCorner)
	}
	if left == "" && right == "" {
		return plain()
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)

	// "─ " + left + " " and " " + right + " ─" plus at least one dash
	needed := 1
	if left != "" {
		needed += leftWidth + 3
	}
	if right != "" {
		needed += rightWidth + 3
	}

	if innerWidth < needed {
		if left == "" || innerWidth < 5 {
			return plain()
		}
		right, rightWidth = "", 0
		left = styles.TruncateString(left, innerWidth-4)
		leftWidth = lipgloss.Width(left)
	}

	dashes := innerWidth
	if left != "" {
		dashes -= leftWidth + 3
	}
	if right != "" {
		dashes -= rightWidth + 3
	}
	dashes = max(dashes, 0)

	var b strings.Builder
	b.WriteString(borderStyle.Render(leftCorner))
	if left != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(titleStyle.Render(left))
		b.WriteString(borderStyle.Render(" "))
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, dashes)))
	if right != "" {
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(titleStyle.Render(right))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	b.WriteString(borderStyle.Render(rightCorner))
	return b.String()
}
