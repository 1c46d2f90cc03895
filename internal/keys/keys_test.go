package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/config"
)

func TestDefaultKeyMap_GlobalShortcuts(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"save", km.Save, []string{"ctrl+s"}},
		{"new", km.New, []string{"ctrl+n"}},
		{"open", km.Open, []string{"ctrl+o"}},
		{"terminal", km.ToggleTerminal, []string{"ctrl+t"}},
		{"highlight", km.ToggleHighlight, []string{"ctrl+l"}},
		{"undo", km.Undo, []string{"ctrl+z"}},
		{"redo", km.Redo, []string{"ctrl+y"}},
		{"quit", km.Quit, []string{"ctrl+q", "ctrl+c"}},
		{"focus", km.SwitchFocus, []string{"tab", "esc"}},
		{"help", km.Help, []string{"f1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.keys, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_MatchesKeyMsg(t *testing.T) {
	km := DefaultKeyMap()

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, km.Save))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, km.SwitchFocus))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, km.Confirm))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, km.Cancel))
}

func TestApplyConfig_OverridesAndKeepsDefaults(t *testing.T) {
	km := DefaultKeyMap()

	km.ApplyConfig(config.KeybindingsConfig{
		Save: "ctrl+w",
		Open: "f3",
		Quit: " ctrl+x , ctrl+c ,",
	})

	require.Equal(t, []string{"ctrl+w"}, km.Save.Keys())
	require.Equal(t, "ctrl+w", km.Save.Help().Key)
	require.Equal(t, []string{"f3"}, km.Open.Keys())
	require.Equal(t, "open note", km.Open.Help().Desc)
	require.Equal(t, "save", km.Save.Help().Desc)
	require.Equal(t, []string{"ctrl+x", "ctrl+c"}, km.Quit.Keys())
	require.Equal(t, []string{"ctrl+n"}, km.New.Keys(), "empty override keeps default")
}

func TestApplyConfig_BlankValueIgnored(t *testing.T) {
	km := DefaultKeyMap()

	km.ApplyConfig(config.KeybindingsConfig{Undo: " , "})

	require.Equal(t, []string{"ctrl+z"}, km.Undo.Keys())
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	require.Len(t, km.ShortHelp(), 6)
	groups := km.FullHelp()
	require.Len(t, groups, 4)
	for _, g := range groups {
		require.NotEmpty(t, g)
	}
}
