package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// nextBoundary returns the byte offset just past the grapheme cluster that
// starts at offset.
func nextBoundary(s string, offset int) int {
	if offset >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[offset:], -1)
	return offset + len(cluster)
}

// prevBoundary returns the byte offset where the grapheme cluster ending at
// offset begins.
func prevBoundary(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	// Clusters never span a newline, so scanning from the line start is
	// enough.
	start := strings.LastIndexByte(s[:offset], '\n') + 1
	if start == offset {
		return offset - 1
	}
	pos, prev := start, start
	state := -1
	rest := s[start:offset]
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		prev = pos
		pos += len(cluster)
	}
	return prev
}

// DisplayWidth is the number of terminal cells s occupies, with tabs
// expanded to tabWidth cells.
func DisplayWidth(s string, tabWidth int) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += tabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// offsetAtWidth returns the byte offset in line of the first grapheme whose
// left edge is at or past col cells. Lines narrower than col yield len(line).
func offsetAtWidth(line string, col, tabWidth int) int {
	w, pos := 0, 0
	state := -1
	rest := line
	for len(rest) > 0 && w < col {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w += DisplayWidth(cluster, tabWidth)
		pos += len(cluster)
	}
	return pos
}
