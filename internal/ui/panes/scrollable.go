package panes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/quill/internal/ui/styles"
)

// ScrollIndicatorStyle is the style for scroll position indicators ("↑50%").
var ScrollIndicatorStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)

// ScrollableConfig holds the configuration for rendering a scrollable pane.
type ScrollableConfig struct {
	// Viewport must be a pointer so scroll state survives across renders.
	Viewport *viewport.Model

	TopLeft    string
	TopRight   string
	BottomLeft string

	// ShowScrollIndicator puts "↑XX%" in the bottom-right while scrolled up.
	ShowScrollIndicator bool

	Focused            bool
	TitleColor         lipgloss.TerminalColor
	BorderColor        lipgloss.TerminalColor
	FocusedBorderColor lipgloss.TerminalColor
}

// ScrollablePane sizes the viewport to the pane interior, sets its content
// and renders it inside a BorderedPane. A viewport that was at the bottom
// before the update follows new content; one the user scrolled up stays put.
//
// contentFn receives the interior width and returns the content to show.
func ScrollablePane(width, height int, cfg ScrollableConfig, contentFn func(wrapWidth int) string) string {
	vpWidth := max(width-2, 1)
	vpHeight := max(height-2, 1)

	content := contentFn(vpWidth)

	// Must be read before SetContent, which moves the offset.
	wasAtBottom := cfg.Viewport.AtBottom()

	cfg.Viewport.Width = vpWidth
	cfg.Viewport.Height = vpHeight
	cfg.Viewport.SetContent(content)

	if wasAtBottom {
		cfg.Viewport.GotoBottom()
	}

	bottomRight := ""
	if cfg.ShowScrollIndicator {
		bottomRight = BuildScrollIndicator(*cfg.Viewport)
	}

	return BorderedPane(BorderConfig{
		Content:            cfg.Viewport.View(),
		Width:              width,
		Height:             height,
		TopLeft:            cfg.TopLeft,
		TopRight:           cfg.TopRight,
		BottomLeft:         cfg.BottomLeft,
		BottomRight:        bottomRight,
		Focused:            cfg.Focused,
		TitleColor:         cfg.TitleColor,
		BorderColor:        cfg.BorderColor,
		FocusedBorderColor: cfg.FocusedBorderColor,
	})
}

// BuildScrollIndicator returns "↑XX%" when the viewport is scrolled up from
// the bottom, and "" when the content fits or the view is live.
func BuildScrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	if vp.AtBottom() {
		return ""
	}
	return ScrollIndicatorStyle.Render(fmt.Sprintf("↑%.0f%%", vp.ScrollPercent()*100))
}

// WrapLines hard-wraps each line to width cells and joins the result. Lines
// already within width are kept as is.
func WrapLines(lines []string, width int) string {
	if width < 1 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if lipgloss.Width(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, wrap.String(line, width))
	}
	return strings.Join(out, "\n")
}
