package app

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/config"
)

func TestProgram_TypeAndQuit(t *testing.T) {
	m := New(Options{Config: config.Defaults(), NotesDir: t.TempDir()})
	t.Cleanup(func() { _ = m.Close() })

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Untitled"))
	}, teatest.WithDuration(3*time.Second))

	tm.Type("if x:")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("f(")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)
	require.Equal(t, "if x:\n\tf()", final.Buffer().Text())
	require.True(t, final.Buffer().Dirty())
}

func TestProgram_TerminalToggleShowsPane(t *testing.T) {
	m := New(Options{Config: config.Defaults(), NotesDir: t.TempDir()})
	t.Cleanup(func() { _ = m.Close() })

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlT})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("PWD: "))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)
	require.True(t, final.TerminalVisible())
	require.Equal(t, FocusTerminal, final.Focus())
}
