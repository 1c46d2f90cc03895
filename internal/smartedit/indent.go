package smartedit

import "strings"

// blockOpeners end a line after which the next line is indented one level
// deeper.
const blockOpeners = ":{[("

// LeadingIndent returns the leading run of spaces and tabs in line.
func LeadingIndent(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

// opensBlock reports whether line, ignoring surrounding whitespace, ends
// with a block opener.
func opensBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return strings.ContainsRune(blockOpeners, rune(trimmed[len(trimmed)-1]))
}

// NextLineIndent is the indent to place on a fresh line following line.
func NextLineIndent(line, unit string) string {
	indent := LeadingIndent(line)
	if opensBlock(line) {
		indent += unit
	}
	return indent
}
