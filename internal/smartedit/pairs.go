package smartedit

// pairs maps each opening delimiter to its closer. Quotes close themselves.
var pairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'(':  ')',
	'[':  ']',
	'{':  '}',
}

// Closer returns the closing delimiter for an opener.
func Closer(open rune) (rune, bool) {
	c, ok := pairs[open]
	return c, ok
}

// IsOpener reports whether r starts a pair. Quotes count as openers.
func IsOpener(r rune) bool {
	_, ok := pairs[r]
	return ok
}

// IsSkippableCloser reports whether typing r may step over an identical
// character already after the cursor. Quotes are excluded: they always
// take the opener path.
func IsSkippableCloser(r rune) bool {
	switch r {
	case ')', ']', '}':
		return true
	}
	return false
}
