// Package help renders the keybinding overlay shown over the editor.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/ui/overlay"
	"github.com/zjrosen/quill/internal/ui/styles"
)

// Section titles for keys.KeyMap.FullHelp groups, in order.
var sectionTitles = []string{"File", "Panes", "Navigation", "Editing"}

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Width(11)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help overlay state.
type Model struct {
	keys   keys.KeyMap
	accent lipgloss.TerminalColor
	width  int
	height int
}

// New creates a help overlay listing km.
func New(km keys.KeyMap, accent lipgloss.TerminalColor) Model {
	return Model{keys: km, accent: accent}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Overlay renders the help box centered on top of background.
func (m Model) Overlay(background string) string {
	return overlay.Place(m.width, m.height, m.renderContent(), background)
}

func (m Model) renderContent() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.accent)
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	// Two groups per row keeps the box inside an 80 column terminal.
	groups := m.keys.FullHelp()
	var rows []string
	for i := 0; i < len(groups); i += 2 {
		left := columnStyle.Render(renderGroup(titleStyle, i, groups[i]))
		if i+1 < len(groups) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, renderGroup(titleStyle, i+1, groups[i+1])))
		} else {
			rows = append(rows, left)
		}
	}

	body := strings.Join(rows, "\n\n")
	closeHint := m.keys.Help.Help().Key + " or esc to close"
	content := titleStyle.Render("Keybindings") + "\n" +
		contentStyle.Render(body+"\n"+footerStyle.Render(closeHint))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.accent).
		Render(content)
}

func renderGroup(titleStyle lipgloss.Style, i int, group []key.Binding) string {
	var col strings.Builder
	if i < len(sectionTitles) {
		col.WriteString(titleStyle.Render(sectionTitles[i]))
		col.WriteString("\n")
	}
	for _, b := range group {
		col.WriteString(renderBinding(b))
	}
	return strings.TrimSuffix(col.String(), "\n")
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + h.Desc + "\n"
}
