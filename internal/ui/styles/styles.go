// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/syntax"
)

var (
	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Saved, directory changed
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Confirm prompts, disk changes
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Semantic color names - Text hierarchy
	TextMutedColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text
)

// Theme is the resolved set of colors for one run of the editor.
type Theme struct {
	Keyword    lipgloss.Color
	String     lipgloss.Color
	Comment    lipgloss.Color
	EditorBg   lipgloss.Color
	EditorFg   lipgloss.Color
	TerminalBg lipgloss.Color
	TerminalFg lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
}

// DefaultTheme returns the theme built from the default configuration.
func DefaultTheme() Theme {
	return FromConfig(config.Defaults().Theme)
}

// FromConfig converts configured hex colors. Empty entries fall back to the
// default theme's color for that slot.
func FromConfig(c config.ThemeConfig) Theme {
	d := config.Defaults().Theme
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(v)
	}
	return Theme{
		Keyword:    pick(c.Keyword, d.Keyword),
		String:     pick(c.String, d.String),
		Comment:    pick(c.Comment, d.Comment),
		EditorBg:   pick(c.EditorBg, d.EditorBg),
		EditorFg:   pick(c.EditorFg, d.EditorFg),
		TerminalBg: pick(c.TerminalBg, d.TerminalBg),
		TerminalFg: pick(c.TerminalFg, d.TerminalFg),
		Border:     pick(c.Border, d.Border),
		Accent:     pick(c.Accent, d.Accent),
	}
}

// Palette maps highlight style tags to editor text styles. Keywords are
// bold; comments are italic. Tabs render as tabWidth spaces.
func (t Theme) Palette(tabWidth int) syntax.Palette {
	base := t.EditorText().TabWidth(tabWidth)
	return syntax.Palette{
		Base: base,
		Styles: map[syntax.Style]lipgloss.Style{
			syntax.StyleKeyword: base.Foreground(t.Keyword).Bold(true),
			syntax.StyleString:  base.Foreground(t.String),
			syntax.StyleComment: base.Foreground(t.Comment).Italic(true),
		},
	}
}

// EditorText is the style of unhighlighted editor text.
func (t Theme) EditorText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.EditorFg).Background(t.EditorBg)
}

// Cursor is the style of the cell under the editor cursor.
func (t Theme) Cursor(tabWidth int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.EditorBg).Background(t.EditorFg).TabWidth(tabWidth)
}

// TerminalText is the style of transcript lines and the command input.
func (t Theme) TerminalText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.TerminalFg).Background(t.TerminalBg)
}

// StatusBar is the style of the bottom status line.
func (t Theme) StatusBar() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.EditorFg).Background(t.Border).Padding(0, 1)
}

// StatusStyle colors a status message by kind.
func StatusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusSuccess:
		return lipgloss.NewStyle().Foreground(StatusSuccessColor)
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(StatusWarningColor).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(TextMutedColor)
	}
}

// StatusKind classifies a status bar message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)
