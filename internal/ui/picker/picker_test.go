package picker

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func testOptions() []Option {
	return []Option{
		{Label: "Option 1", Value: "1"},
		{Label: "Option 2", Value: "2"},
		{Label: "Option 3", Value: "3"},
	}
}

func manyOptions(n int) []Option {
	opts := make([]Option, n)
	for i := range opts {
		opts[i] = Option{Label: fmt.Sprintf("note-%02d.txt", i), Value: fmt.Sprint(i)}
	}
	return opts
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_New(t *testing.T) {
	m := New("Test Title", testOptions(), lipgloss.Color("#ffffff"))

	assert.Equal(t, "Test Title", m.title)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, "1", m.Selected().Value, "expected default selection at 0")
}

func TestPicker_SetSelected(t *testing.T) {
	m := New("Test", testOptions(), nil)

	m = m.SetSelected(2)
	assert.Equal(t, "3", m.Selected().Value)

	m = m.SetSelected(10)
	assert.Equal(t, "3", m.Selected().Value, "expected selection unchanged for invalid index")

	m = m.SetSelected(-1)
	assert.Equal(t, "3", m.Selected().Value, "expected selection unchanged for negative index")
}

func TestPicker_Selected_Empty(t *testing.T) {
	m := New("Test", nil, nil)

	assert.Equal(t, Option{}, m.Selected())
}

func TestPicker_Update_Navigate(t *testing.T) {
	m := New("Test", testOptions(), nil)

	m, _ = m.Update(key("j"))
	assert.Equal(t, 1, m.selected)
	m, _ = m.Update(key("down"))
	assert.Equal(t, 2, m.selected)
	m, _ = m.Update(key("down"))
	assert.Equal(t, 2, m.selected, "expected selection to stay at bottom")

	m, _ = m.Update(key("k"))
	assert.Equal(t, 1, m.selected)
	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("up"))
	assert.Equal(t, 0, m.selected, "expected selection to stay at top")
}

func TestPicker_ScrollsToKeepSelectionVisible(t *testing.T) {
	// Height 9 leaves four option rows.
	m := New("Notes", manyOptions(12), nil).SetSize(60, 9)

	for range 5 {
		m, _ = m.Update(key("down"))
	}
	require.Equal(t, 5, m.selected)
	require.Equal(t, 2, m.offset)

	view := ansi.Strip(m.View())
	require.Contains(t, view, ">note-05.txt")
	require.Contains(t, view, "note-02.txt")
	require.NotContains(t, view, "note-01.txt")
	require.NotContains(t, view, "note-06.txt")
	require.Contains(t, view, "6/12")

	m, _ = m.Update(key("end"))
	require.Equal(t, 11, m.selected)
	require.Equal(t, 8, m.offset)

	m, _ = m.Update(key("g"))
	require.Equal(t, 0, m.offset)
}

func TestPicker_View(t *testing.T) {
	opts := testOptions()
	opts[1].Hint = "2 days ago"
	m := New("Open note", opts, nil).SetSelected(1)

	view := ansi.Strip(m.View())

	require.Contains(t, view, "Open note")
	require.Contains(t, view, " Option 1")
	require.Contains(t, view, ">Option 2  2 days ago")
	require.Contains(t, view, "enter open")
	require.NotContains(t, view, "/3", "no position when every option fits")
}

func TestPicker_Overlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 80)+"\n", 20), "\n")
	m := New("Open note", testOptions(), nil).SetSize(80, 20)

	lines := strings.Split(ansi.Strip(m.Overlay(bg)), "\n")

	require.Len(t, lines, 20)
	require.True(t, strings.HasPrefix(lines[0], "...."), "background stays above the box")
	found := false
	for _, line := range lines {
		if strings.Contains(line, "Option 2") {
			found = true
			require.True(t, strings.HasPrefix(line, "."))
			require.True(t, strings.HasSuffix(line, "."))
		}
	}
	require.True(t, found)
}
