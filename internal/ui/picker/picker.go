// Package picker provides a list picker shown as an overlay.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/quill/internal/ui/overlay"
	"github.com/zjrosen/quill/internal/ui/styles"
)

const (
	defaultBoxWidth = 40
	defaultRows     = 10
)

// Option represents a picker option with label and value.
type Option struct {
	Label string
	Value string
	Hint  string // Optional muted text after the label
}

// Model holds the picker state.
type Model struct {
	title          string
	options        []Option
	selected       int
	offset         int // First visible option
	accent         lipgloss.TerminalColor
	viewportWidth  int
	viewportHeight int
}

// New creates a picker with the given title and options. A nil accent
// renders without color.
func New(title string, options []Option, accent lipgloss.TerminalColor) Model {
	if accent == nil {
		accent = lipgloss.NoColor{}
	}
	return Model{title: title, options: options, accent: accent}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m.scroll()
}

// SetSelected sets the selected index. Out of range indexes are ignored.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m.scroll()
}

// Selected returns the currently selected option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

// Len is the number of options.
func (m Model) Len() int {
	return len(m.options)
}

// Update moves the selection.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down", "ctrl+n":
			if m.selected < len(m.options)-1 {
				m.selected++
			}
		case "k", "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
		case "pgdown":
			m.selected = min(m.selected+m.rows(), max(len(m.options)-1, 0))
		case "pgup":
			m.selected = max(m.selected-m.rows(), 0)
		case "home", "g":
			m.selected = 0
		case "end", "G":
			m.selected = max(len(m.options)-1, 0)
		}
	}
	return m.scroll(), nil
}

// rows is how many options fit in the box.
func (m Model) rows() int {
	rows := defaultRows
	// Border, title, divider and footer take five lines.
	if m.viewportHeight > 0 {
		rows = min(rows, m.viewportHeight-5)
	}
	return max(rows, 1)
}

func (m Model) scroll() Model {
	rows := m.rows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	m.offset = max(min(m.offset, len(m.options)-rows), 0)
	return m
}

func (m Model) boxWidth() int {
	width := defaultBoxWidth
	if m.viewportWidth > 0 {
		width = min(width, m.viewportWidth-2)
	}
	return max(width, 10)
}

// View renders the picker box without positioning.
func (m Model) View() string {
	width := m.boxWidth()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.accent).PaddingLeft(1)
	mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var options strings.Builder
	end := min(m.offset+m.rows(), len(m.options))
	for i := m.offset; i < end; i++ {
		opt := m.options[i]
		label := opt.Label
		if opt.Hint != "" {
			label += "  " + mutedStyle.Render(opt.Hint)
		}
		label = ansi.Truncate(label, width-1, "…")
		if i == m.selected {
			options.WriteString(lipgloss.NewStyle().Bold(true).Foreground(m.accent).Render(">") +
				lipgloss.NewStyle().Bold(true).Render(label))
		} else {
			options.WriteString(" " + label)
		}
		if i < end-1 {
			options.WriteString("\n")
		}
	}

	divider := mutedStyle.Render(strings.Repeat("─", width))
	footer := mutedStyle.Render(" enter open · esc cancel")
	if len(m.options) > m.rows() {
		footer += mutedStyle.Render("  " + fmt.Sprintf("%d/%d", m.selected+1, len(m.options)))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.accent).
		Width(width)

	return boxStyle.Render(titleStyle.Render(ansi.Truncate(m.title, width-1, "…")) + "\n" +
		divider + "\n" +
		options.String() + "\n" +
		footer)
}

// Overlay renders the picker centered on top of a background view.
func (m Model) Overlay(background string) string {
	return overlay.Place(m.viewportWidth, m.viewportHeight, m.View(), background)
}
