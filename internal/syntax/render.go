package syntax

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/cachemanager"
)

// Palette maps style tags to concrete lipgloss styles. Tags without an
// entry render with the palette's Base style.
type Palette struct {
	Base   lipgloss.Style
	Styles map[Style]lipgloss.Style
}

func (p Palette) styleFor(s Style) lipgloss.Style {
	if st, ok := p.Styles[s]; ok {
		return st
	}
	return p.Base
}

// Highlighter renders lines of one language with a palette.
type Highlighter struct {
	table   Table
	palette Palette
	tokens  cachemanager.CacheManager[[]Span]
}

// NewHighlighter binds a table to a palette.
func NewHighlighter(table Table, palette Palette) *Highlighter {
	return &Highlighter{table: table, palette: palette}
}

// Table returns the active rule table.
func (h *Highlighter) Table() Table { return h.table }

// SetTable swaps the active table, e.g. after the file's extension changed.
func (h *Highlighter) SetTable(t Table) { h.table = t }

// SetTokenCache memoizes Tokens by table name and exact line text. Any
// edit to a line changes its key, so the line is highlighted again in full.
// A nil cache disables memoization.
func (h *Highlighter) SetTokenCache(c cachemanager.CacheManager[[]Span]) { h.tokens = c }

// Tokens returns the resolved, non-overlapping runs for line. The returned
// slice may be shared with the cache and must not be modified.
func (h *Highlighter) Tokens(line string) []Span {
	if h.tokens == nil {
		return h.resolve(line)
	}
	return cachemanager.GetOrCompute(h.tokens, h.table.Name()+"\x00"+line, func() []Span {
		return h.resolve(line)
	})
}

func (h *Highlighter) resolve(line string) []Span {
	return Resolve(len(line), Highlight(line, h.table))
}

// Render returns line with every run styled. The line is recomputed in
// full on every call.
func (h *Highlighter) Render(line string) string {
	return h.render(line, h.Tokens(line))
}

// RenderWithCursor is Render with the byte at cursor drawn in cursorStyle.
// A cursor at len(line) is drawn as a trailing styled space; a negative
// cursor draws nothing.
func (h *Highlighter) RenderWithCursor(line string, cursor int, cursorStyle lipgloss.Style) string {
	if cursor < 0 || cursor > len(line) {
		return h.Render(line)
	}

	tokens := h.Tokens(line)
	if cursor == len(line) {
		return h.render(line, tokens) + cursorStyle.Render(" ")
	}

	// Widen the cursor cell to a whole rune.
	width := 1
	for cursor+width < len(line) && !isRuneStart(line[cursor+width]) {
		width++
	}

	var b strings.Builder
	b.WriteString(h.render(line[:cursor], clip(tokens, 0, cursor)))
	b.WriteString(cursorStyle.Render(line[cursor : cursor+width]))
	b.WriteString(h.render(line[cursor+width:], clip(tokens, cursor+width, len(line))))
	return b.String()
}

func (h *Highlighter) render(line string, tokens []Span) string {
	if len(tokens) == 0 {
		return h.palette.Base.Render(line)
	}

	var b strings.Builder
	pos := 0
	for _, tok := range tokens {
		if tok.Start > pos {
			b.WriteString(h.palette.Base.Render(line[pos:tok.Start]))
		}
		b.WriteString(h.palette.styleFor(tok.Style).Render(line[tok.Start:tok.End()]))
		pos = tok.End()
	}
	if pos < len(line) {
		b.WriteString(h.palette.Base.Render(line[pos:]))
	}
	return b.String()
}

// clip restricts tokens to [from, to) and rebases them to from.
func clip(tokens []Span, from, to int) []Span {
	var out []Span
	for _, tok := range tokens {
		start := max(tok.Start, from)
		end := min(tok.End(), to)
		if end <= start {
			continue
		}
		out = append(out, Span{Start: start - from, Length: end - start, Style: tok.Style})
	}
	return out
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
