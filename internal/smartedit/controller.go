// Package smartedit decides how a keystroke edits a text buffer: it carries
// indentation onto new lines and pairs brackets and quotes. The controller
// holds no state between keystrokes; everything it needs is read from the
// buffer before any edit is made.
package smartedit

import (
	"github.com/zjrosen/quill/internal/log"
)

// Buffer is the host text buffer. Offsets are byte offsets into the whole
// text.
type Buffer interface {
	// LineTextAt returns the full text of the line containing offset,
	// without its terminating newline.
	LineTextAt(offset int) string
	// CharAt returns the rune starting at offset, false past the end.
	CharAt(offset int) (rune, bool)
	CursorOffset() int
	InsertText(offset int, text string)
	MoveCursor(offset int)
}

// KeyType distinguishes the keys the controller knows about.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyNewline
)

// Key is one keystroke.
type Key struct {
	Type KeyType
	Rune rune
}

// RuneKey builds a printable key.
func RuneKey(r rune) Key { return Key{Type: KeyRune, Rune: r} }

// NewlineKey is the Enter key.
var NewlineKey = Key{Type: KeyNewline}

// Outcome names the branch that handled a keystroke.
type Outcome int

const (
	OutcomeDefault Outcome = iota
	OutcomeIndent
	OutcomePair
	OutcomeSkip
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefault:
		return "default"
	case OutcomeIndent:
		return "indent"
	case OutcomePair:
		return "pair"
	case OutcomeSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// DefaultIndentUnit is appended after a line that opens a block.
const DefaultIndentUnit = "\t"

// Controller applies smart-edit rules. The zero value inserts keys
// verbatim; use New for the editing behaviour.
type Controller struct {
	AutoIndent bool
	AutoPair   bool
	IndentUnit string
}

// Option configures a Controller.
type Option func(*Controller)

// WithAutoIndent toggles newline indentation.
func WithAutoIndent(on bool) Option {
	return func(c *Controller) { c.AutoIndent = on }
}

// WithAutoPair toggles delimiter pairing and skip-over.
func WithAutoPair(on bool) Option {
	return func(c *Controller) { c.AutoPair = on }
}

// WithIndentUnit sets the text added after a block opener.
func WithIndentUnit(unit string) Option {
	return func(c *Controller) {
		if unit != "" {
			c.IndentUnit = unit
		}
	}
}

// New returns a controller with indentation and pairing enabled and a tab
// indent unit.
func New(opts ...Option) Controller {
	c := Controller{
		AutoIndent: true,
		AutoPair:   true,
		IndentUnit: DefaultIndentUnit,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Handle applies key to buf. The first matching rule wins:
//
//  1. Newline: break the line and indent the new line like the current
//     one, one unit deeper if the current line ends in : { [ or (.
//  2. Opener (" ' ( [ {): insert it and its closer, cursor between.
//  3. ) ] } with the same character right after the cursor: step over it.
//  4. Anything else: plain insertion.
//
// Quotes are handled by rule 2 even when a quote follows the cursor.
func (c Controller) Handle(buf Buffer, key Key) Outcome {
	cursor := buf.CursorOffset()

	// Everything is read before the buffer is touched.
	line := buf.LineTextAt(cursor)
	next, hasNext := buf.CharAt(cursor)

	var outcome Outcome
	switch {
	case key.Type == KeyNewline:
		outcome = c.newline(buf, cursor, line)
	case c.AutoPair && IsOpener(key.Rune):
		closer, _ := Closer(key.Rune)
		insertDefault(buf, cursor, string(key.Rune))
		buf.InsertText(cursor+runeLen(key.Rune), string(closer))
		buf.MoveCursor(cursor + runeLen(key.Rune))
		outcome = OutcomePair
	case c.AutoPair && IsSkippableCloser(key.Rune) && hasNext && next == key.Rune:
		buf.MoveCursor(cursor + runeLen(key.Rune))
		outcome = OutcomeSkip
	default:
		insertDefault(buf, cursor, string(key.Rune))
		outcome = OutcomeDefault
	}

	log.Debug(log.CatEdit, "key handled", "outcome", outcome, "cursor", cursor)
	return outcome
}

func (c Controller) newline(buf Buffer, cursor int, line string) Outcome {
	insertDefault(buf, cursor, "\n")
	if !c.AutoIndent {
		return OutcomeDefault
	}

	indent := NextLineIndent(line, c.IndentUnit)
	if indent != "" {
		at := buf.CursorOffset()
		buf.InsertText(at, indent)
		buf.MoveCursor(at + len(indent))
	}
	return OutcomeIndent
}

// insertDefault is the host's plain insertion: text at the cursor, cursor
// after it.
func insertDefault(buf Buffer, cursor int, text string) {
	buf.InsertText(cursor, text)
	buf.MoveCursor(cursor + len(text))
}

func runeLen(r rune) int { return len(string(r)) }
