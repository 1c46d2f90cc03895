package panes

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestScrollablePane_SizesViewport(t *testing.T) {
	vp := viewport.New(0, 0)

	out := ScrollablePane(20, 6, ScrollableConfig{Viewport: &vp, TopLeft: "Terminal"}, func(w int) string {
		require.Equal(t, 18, w)
		return "hi"
	})

	require.Equal(t, 18, vp.Width)
	require.Equal(t, 4, vp.Height)
	require.Contains(t, ansi.Strip(out), "Terminal")
	require.Contains(t, ansi.Strip(out), "│hi")
}

func TestScrollablePane_FollowsNewContentAtBottom(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{Viewport: &vp}

	ScrollablePane(20, 5, cfg, func(int) string { return numbered(3) })
	out := ScrollablePane(20, 5, cfg, func(int) string { return numbered(10) })

	require.True(t, vp.AtBottom())
	require.Contains(t, ansi.Strip(out), "line 10")
	require.NotContains(t, ansi.Strip(out), "line 1 ")
}

func TestScrollablePane_KeepsPositionWhenScrolledUp(t *testing.T) {
	vp := viewport.New(0, 0)
	cfg := ScrollableConfig{Viewport: &vp, ShowScrollIndicator: true}

	ScrollablePane(20, 5, cfg, func(int) string { return numbered(10) })
	vp.GotoTop()
	out := ScrollablePane(20, 5, cfg, func(int) string { return numbered(12) })

	require.Equal(t, 0, vp.YOffset)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "line 1")
	require.Contains(t, plain, "↑0%")
}

func TestBuildScrollIndicator(t *testing.T) {
	vp := viewport.New(10, 3)
	vp.SetContent(numbered(2))
	require.Empty(t, BuildScrollIndicator(vp), "content fits")

	vp.SetContent(numbered(10))
	vp.GotoBottom()
	require.Empty(t, BuildScrollIndicator(vp), "live view")

	vp.GotoTop()
	require.Equal(t, "↑0%", ansi.Strip(BuildScrollIndicator(vp)))
}

func TestWrapLines(t *testing.T) {
	got := WrapLines([]string{"short", "abcdefghij"}, 5)

	require.Equal(t, "short\nabcde\nfghij", got)
}

func TestWrapLines_NoWidth(t *testing.T) {
	require.Equal(t, "a\nb", WrapLines([]string{"a", "b"}, 0))
}
