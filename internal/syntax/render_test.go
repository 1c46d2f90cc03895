package syntax

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/cachemanager"
)

func testPalette() Palette {
	return Palette{
		Base: lipgloss.NewStyle(),
		Styles: map[Style]lipgloss.Style{
			StyleKeyword: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff79c6")).Bold(true),
			StyleString:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")),
			StyleComment: lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		},
	}
}

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	m.Run()
}

func TestHighlighter_RenderPreservesText(t *testing.T) {
	h := NewHighlighter(Python, testPalette())

	for _, line := range []string{
		"def foo():",
		`x = "if" # trailing`,
		"",
		"plain words only",
	} {
		require.Equal(t, line, ansi.Strip(h.Render(line)), "line %q", line)
	}
}

func TestHighlighter_RenderStylesKeyword(t *testing.T) {
	h := NewHighlighter(Python, testPalette())

	out := h.Render("def foo():")

	require.NotEqual(t, "def foo():", out, "keyword should carry escape codes")
	require.Contains(t, out, "def")
}

func TestHighlighter_EmptyTableRendersPlain(t *testing.T) {
	h := NewHighlighter(Empty, testPalette())

	require.Equal(t, "def foo():", h.Render("def foo():"))
}

func TestHighlighter_SetTable(t *testing.T) {
	h := NewHighlighter(Empty, testPalette())
	h.SetTable(C)

	require.Equal(t, "c", h.Table().Name())
	require.Len(t, h.Tokens("int x;"), 1)
}

func TestHighlighter_TokenCache(t *testing.T) {
	cache := cachemanager.NewInMemoryCacheManager[[]Span]("tokens", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	h := NewHighlighter(Python, testPalette())
	h.SetTokenCache(cache)

	first := h.Tokens("def foo():")
	require.Equal(t, Resolve(len("def foo():"), Highlight("def foo():", Python)), first)
	require.Equal(t, 1, cache.Len())

	require.Equal(t, first, h.Tokens("def foo():"))
	require.Equal(t, 1, cache.Len(), "same line is a hit")

	h.Tokens("def foo(): pass")
	require.Equal(t, 2, cache.Len(), "edited line gets its own entry")
}

func TestHighlighter_TokenCacheKeyedByTable(t *testing.T) {
	cache := cachemanager.NewInMemoryCacheManager[[]Span]("tokens", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	h := NewHighlighter(Python, testPalette())
	h.SetTokenCache(cache)

	require.NotEmpty(t, h.Tokens("if x: # note"))

	h.SetTable(Empty)
	require.Empty(t, h.Tokens("if x: # note"), "a cached Python entry must not leak into another table")
}

func TestHighlighter_RenderWithCursor(t *testing.T) {
	h := NewHighlighter(Python, testPalette())
	cursor := lipgloss.NewStyle().Reverse(true)

	tests := []struct {
		name   string
		line   string
		cursor int
		want   string
	}{
		{"start", "def foo():", 0, "def foo():"},
		{"inside keyword", "def foo():", 1, "def foo():"},
		{"end of line", "def foo():", 10, "def foo(): "},
		{"empty line", "", 0, " "},
		{"multibyte rune", "s = 'héllo'", 6, "s = 'héllo'"},
		{"negative", "x", -1, "x"},
		{"past end", "x", 5, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ansi.Strip(h.RenderWithCursor(tt.line, tt.cursor, cursor)))
		})
	}
}

func TestClip(t *testing.T) {
	tokens := []Span{
		{Start: 0, Length: 3, Style: StyleKeyword},
		{Start: 4, Length: 4, Style: StyleString},
	}

	require.Equal(t, []Span{
		{Start: 0, Length: 1, Style: StyleKeyword},
		{Start: 2, Length: 3, Style: StyleString},
	}, clip(tokens, 2, 7))
	require.Nil(t, clip(tokens, 3, 4))
}
