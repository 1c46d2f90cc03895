package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/syntax"
)

func TestFromConfig_FallsBackPerSlot(t *testing.T) {
	theme := FromConfig(config.ThemeConfig{Keyword: "#123456"})

	require.Equal(t, lipgloss.Color("#123456"), theme.Keyword)
	require.Equal(t, lipgloss.Color("#f1fa8c"), theme.String)
	require.Equal(t, lipgloss.Color("#282a36"), theme.EditorBg)
}

func TestDefaultTheme_Dracula(t *testing.T) {
	theme := DefaultTheme()

	require.Equal(t, lipgloss.Color("#ff79c6"), theme.Keyword)
	require.Equal(t, lipgloss.Color("#6272a4"), theme.Comment)
	require.Equal(t, lipgloss.Color("#50fa7b"), theme.TerminalFg)
}

func TestPalette_MapsEveryStyleTag(t *testing.T) {
	theme := DefaultTheme()
	p := theme.Palette(4)

	for _, s := range []syntax.Style{syntax.StyleKeyword, syntax.StyleString, syntax.StyleComment} {
		_, ok := p.Styles[s]
		require.True(t, ok, "missing style for %s", s)
	}
	require.Equal(t, lipgloss.Color("#ff79c6"), p.Styles[syntax.StyleKeyword].GetForeground())
	require.True(t, p.Styles[syntax.StyleKeyword].GetBold())
	require.True(t, p.Styles[syntax.StyleComment].GetItalic())
	require.Equal(t, lipgloss.Color("#f8f8f2"), p.Base.GetForeground())
	require.Equal(t, 4, p.Base.GetTabWidth())
}

func TestStatusStyle_Kinds(t *testing.T) {
	require.Equal(t, StatusErrorColor, StatusStyle(StatusError).GetForeground())
	require.Equal(t, StatusSuccessColor, StatusStyle(StatusSuccess).GetForeground())
	require.Equal(t, TextMutedColor, StatusStyle(StatusInfo).GetForeground())
}
