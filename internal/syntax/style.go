// Package syntax implements line-oriented lexical highlighting driven by
// per-language rule tables. A Table is static data; Highlight applies one
// to a single line and reports styled spans. Multi-line constructs are not
// recognised: every line is scanned on its own.
package syntax

// Style is the tag attached to a highlighted span. Hosts map tags to
// concrete colors.
type Style int

const (
	StyleNone Style = iota
	StyleKeyword
	StyleString
	StyleComment
)

func (s Style) String() string {
	switch s {
	case StyleNone:
		return "none"
	case StyleKeyword:
		return "keyword"
	case StyleString:
		return "string"
	case StyleComment:
		return "comment"
	default:
		return "unknown"
	}
}
