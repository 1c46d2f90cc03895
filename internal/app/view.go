package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	helpoverlay "github.com/zjrosen/quill/internal/ui/help"
	"github.com/zjrosen/quill/internal/ui/panes"
	"github.com/zjrosen/quill/internal/ui/styles"
)

const (
	statusBarHeight   = 1
	minTerminalHeight = 6
	minEditorHeight   = 3
)

// layout splits the window between the editor, the terminal and the
// status bar.
func (m Model) layout() (editorH, terminalH int) {
	avail := max(m.height-statusBarHeight, minEditorHeight)
	if !m.terminalVisible {
		return avail, 0
	}
	terminalH = max(avail*2/5, minTerminalHeight)
	editorH = avail - terminalH
	if editorH < minEditorHeight {
		editorH = minEditorHeight
		terminalH = max(avail-editorH, 0)
	}
	return editorH, terminalH
}

func (m Model) editorInnerHeight() int {
	editorH, _ := m.layout()
	return max(editorH-2, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	editorH, terminalH := m.layout()
	parts := []string{zone.Mark(zoneEditor, m.renderEditor(editorH))}
	if m.terminalVisible && terminalH > 0 {
		parts = append(parts, zone.Mark(zoneTerminal, m.renderTerminal(terminalH)))
	}
	parts = append(parts, m.renderStatusBar())

	view := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.pickingNote {
		view = m.notePicker.Overlay(view)
	}
	if m.showHelp {
		view = helpoverlay.New(m.keys, m.theme.Accent).SetSize(m.width, m.height).Overlay(view)
	}
	return zone.Scan(view)
}

// renderEditor draws the visible rows of the buffer. Every visible line is
// re-highlighted in full.
func (m Model) renderEditor(height int) string {
	innerW := max(m.width-2, 1)
	innerH := max(height-2, 1)

	lines := m.buf.Lines()
	curRow, _ := m.buf.LineCol()
	curCol := m.buf.CursorColumn()
	lineStart := m.buf.LineStart(curRow)

	gutterW := len(fmt.Sprint(len(lines))) + 1
	textW := max(innerW-gutterW, 1)

	// Scroll horizontally just enough to keep the cursor cell visible.
	left := 0
	if curCol >= textW {
		left = curCol - textW + 1
	}

	tabWidth := tabWidthOf(m.cfg)
	cursorStyle := m.theme.Cursor(tabWidth)
	gutterStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	focused := m.focus == FocusEditor

	rows := make([]string, 0, innerH)
	for row := m.top; row < len(lines) && len(rows) < innerH; row++ {
		var rendered string
		if row == curRow && focused {
			rendered = m.highlighter.RenderWithCursor(lines[row], m.buf.CursorOffset()-lineStart, cursorStyle)
		} else {
			rendered = m.highlighter.Render(lines[row])
		}
		rendered = ansi.Cut(rendered, left, left+textW)
		gutter := gutterStyle.Render(fmt.Sprintf("%*d ", gutterW-1, row+1))
		rows = append(rows, gutter+rendered)
	}

	title := styles.DirtyTitle(m.doc.Title(), m.buf.Dirty())
	lang := m.highlighter.Table().Name()
	if !m.highlight {
		lang = "plain"
	} else if lang == "" {
		lang = "text"
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content:            strings.Join(rows, "\n"),
		Width:              m.width,
		Height:             height,
		TopLeft:            title,
		TopRight:           lang,
		BottomRight:        fmt.Sprintf("Ln %d, Col %d", curRow+1, curCol+1),
		Focused:            focused,
		TitleColor:         m.theme.Accent,
		BorderColor:        m.theme.Border,
		FocusedBorderColor: m.theme.Accent,
	})
}

// renderTerminal draws the transcript above the command input.
func (m Model) renderTerminal(height int) string {
	focused := m.focus == FocusTerminal
	text := m.theme.TerminalText()

	transcriptPane := panes.ScrollablePane(m.width, max(height-1, 3), panes.ScrollableConfig{
		Viewport:            m.viewport,
		TopLeft:             "Terminal",
		TopRight:            styles.TruncateString("PWD: "+m.transcript.dir, max(m.width/2, 8)),
		BottomLeft:          m.processLabel(),
		ShowScrollIndicator: true,
		Focused:             focused,
		TitleColor:          m.theme.Accent,
		BorderColor:         m.theme.Border,
		FocusedBorderColor:  m.theme.Accent,
	}, func(wrapWidth int) string {
		return text.Render(panes.WrapLines(m.transcript.Lines(), wrapWidth))
	})

	input := ansi.Truncate(m.input.View(), m.width, "")
	return lipgloss.JoinVertical(lipgloss.Left, transcriptPane, input)
}

// processLabel describes the running or last finished command.
func (m Model) processLabel() string {
	if m.session.Busy() {
		return "running"
	}
	status, code := m.session.LastStatus()
	if !status.IsTerminal() {
		return ""
	}
	return fmt.Sprintf("%s (%d)", status, code)
}

func (m Model) renderStatusBar() string {
	var content string
	switch {
	case m.status != "":
		content = styles.StatusStyle(m.statusKind).Render(m.status)
	case m.session.Busy():
		content = styles.StatusStyle(styles.StatusInfo).Render("running: " + m.session.Running())
	default:
		content = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return m.theme.StatusBar().Width(m.width).Render(styles.TruncateString(content, max(m.width-2, 1)))
}
