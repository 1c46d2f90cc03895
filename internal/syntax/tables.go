package syntax

import (
	"path/filepath"
	"strings"
)

const (
	doubleQuoted = `"[^"\\]*(\\.[^"\\]*)*"`
	singleQuoted = `'[^'\\]*(\\.[^'\\]*)*'`
)

var pythonKeywords = []string{
	"def", "class", "if", "else", "elif", "while", "for", "in", "try",
	"except", "with", "as", "import", "from", "return", "pass", "break",
	"continue", "True", "False", "None", "and", "or", "not", "is", "lambda",
}

var cKeywords = []string{
	"int", "float", "double", "char", "bool", "void", "if", "else",
	"while", "for", "return", "switch", "case", "break", "continue",
	"default", "do", "struct", "class", "public", "private", "protected",
	"true", "false", "include", "define", "namespace", "using", "new", "delete",
}

var (
	// Python highlights keywords, both quote styles and # comments.
	Python = (&ruleBuilder{}).
		keywords(pythonKeywords...).
		add(doubleQuoted, StyleString).
		add(singleQuoted, StyleString).
		add(`#.*`, StyleComment).
		build("python")

	// C covers C and C++ sources. Block comments are only recognised when
	// they open and close on the same line.
	C = (&ruleBuilder{}).
		keywords(cKeywords...).
		add(doubleQuoted, StyleString).
		add(singleQuoted, StyleString).
		add(`//.*`, StyleComment).
		add(`/\*.*\*/`, StyleComment).
		build("c")

	// Empty yields no spans. It is used for unknown file types and when
	// highlighting is switched off.
	Empty = NewTable("")
)

var byExtension = map[string]Table{
	".py":  Python,
	".c":   C,
	".cpp": C,
	".h":   C,
}

// ForExtension returns the table for a file extension such as ".py".
// Matching ignores case; unknown extensions map to Empty.
func ForExtension(ext string) Table {
	if t, ok := byExtension[strings.ToLower(ext)]; ok {
		return t
	}
	return Empty
}

// ForPath selects a table from the extension of path.
func ForPath(path string) Table {
	return ForExtension(filepath.Ext(path))
}

// Select is ForPath gated by the highlighting switch.
func Select(path string, enabled bool) Table {
	if !enabled {
		return Empty
	}
	return ForPath(path)
}
