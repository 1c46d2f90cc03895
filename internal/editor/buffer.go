// Package editor holds the text buffer the editor pane edits. Buffer
// implements smartedit.Buffer with byte offsets over the whole text and
// grapheme-aware cursor movement.
package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/quill/internal/smartedit"
)

// DefaultTabWidth is the display width of a tab when none is configured.
const DefaultTabWidth = 4

var _ smartedit.Buffer = (*Buffer)(nil)

// Buffer is a mutable UTF-8 text with a single cursor and undo history.
type Buffer struct {
	text     string
	cursor   int
	goalCol  int // display column kept across Up/Down; -1 when unset
	tabWidth int
	dirty    bool

	history *history
	pending *step // open step while inside Edit
}

// New returns a buffer holding text with the cursor at the start.
func New(text string) *Buffer {
	return &Buffer{
		text:     text,
		goalCol:  -1,
		tabWidth: DefaultTabWidth,
		history:  newHistory(),
	}
}

// SetTabWidth sets the display width of a tab used for vertical movement.
func (b *Buffer) SetTabWidth(w int) {
	if w > 0 {
		b.tabWidth = w
	}
}

// Text returns the whole buffer.
func (b *Buffer) Text() string { return b.text }

// SetText replaces the content, resets the cursor and clears history. The
// buffer is clean afterwards.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.cursor = 0
	b.goalCol = -1
	b.dirty = false
	b.pending = nil
	b.history.clear()
}

// Len is the byte length of the text.
func (b *Buffer) Len() int { return len(b.text) }

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool { return b.text == "" }

// Dirty reports whether the text changed since the last MarkClean.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkClean records that the current text is saved.
func (b *Buffer) MarkClean() { b.dirty = false }

// CursorOffset returns the cursor as a byte offset.
func (b *Buffer) CursorOffset() int { return b.cursor }

// MoveCursor places the cursor at offset, clamped to the text.
func (b *Buffer) MoveCursor(offset int) {
	b.cursor = b.clamp(offset)
	b.goalCol = -1
}

// LineTextAt returns the line containing offset without its newline.
func (b *Buffer) LineTextAt(offset int) string {
	offset = b.clamp(offset)
	start := strings.LastIndexByte(b.text[:offset], '\n') + 1
	end := strings.IndexByte(b.text[offset:], '\n')
	if end < 0 {
		return b.text[start:]
	}
	return b.text[start : offset+end]
}

// CharAt returns the rune starting at offset.
func (b *Buffer) CharAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(b.text) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(b.text[offset:])
	return r, true
}

// InsertText inserts text at offset. The cursor does not move.
func (b *Buffer) InsertText(offset int, text string) {
	if text == "" {
		return
	}
	offset = b.clamp(offset)
	b.apply(edit{offset: offset, inserted: text})
}

// Edit runs fn as one undo step. Edits made inside fn undo together and
// the cursor is restored to where it was before fn.
func (b *Buffer) Edit(fn func()) {
	if b.pending != nil {
		fn()
		return
	}
	b.pending = &step{cursorBefore: b.cursor}
	fn()
	s := b.pending
	b.pending = nil
	if len(s.edits) == 0 {
		return
	}
	s.cursorAfter = b.cursor
	b.history.push(*s)
}

// Insert types text at the cursor and moves the cursor after it.
func (b *Buffer) Insert(text string) {
	b.Edit(func() {
		at := b.cursor
		b.InsertText(at, text)
		b.MoveCursor(at + len(text))
	})
}

// Backspace deletes the grapheme before the cursor.
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	start := prevBoundary(b.text, b.cursor)
	b.Edit(func() {
		b.delete(start, b.cursor)
		b.MoveCursor(start)
	})
	return true
}

// DeleteForward deletes the grapheme under the cursor.
func (b *Buffer) DeleteForward() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	end := nextBoundary(b.text, b.cursor)
	b.Edit(func() {
		b.delete(b.cursor, end)
	})
	return true
}

func (b *Buffer) delete(from, to int) {
	if from >= to {
		return
	}
	b.apply(edit{offset: from, deleted: b.text[from:to]})
}

// apply performs e and records it in the open step, or as its own step.
func (b *Buffer) apply(e edit) {
	b.text = b.text[:e.offset] + e.inserted + b.text[e.offset+len(e.deleted):]
	b.dirty = true
	if b.pending != nil {
		b.pending.edits = append(b.pending.edits, e)
		return
	}
	b.history.push(step{edits: []edit{e}, cursorBefore: b.cursor, cursorAfter: b.cursor})
}

// Undo reverses the last step. It reports false when there is nothing to
// undo.
func (b *Buffer) Undo() bool {
	s, ok := b.history.undo()
	if !ok {
		return false
	}
	for i := len(s.edits) - 1; i >= 0; i-- {
		e := s.edits[i]
		b.text = b.text[:e.offset] + e.deleted + b.text[e.offset+len(e.inserted):]
	}
	b.dirty = true
	b.MoveCursor(s.cursorBefore)
	return true
}

// Redo re-applies the last undone step.
func (b *Buffer) Redo() bool {
	s, ok := b.history.redo()
	if !ok {
		return false
	}
	for _, e := range s.edits {
		b.text = b.text[:e.offset] + e.inserted + b.text[e.offset+len(e.deleted):]
	}
	b.dirty = true
	b.MoveCursor(s.cursorAfter)
	return true
}

// CanUndo reports whether Undo would change anything.
func (b *Buffer) CanUndo() bool { return b.history.canUndo() }

// CanRedo reports whether Redo would change anything.
func (b *Buffer) CanRedo() bool { return b.history.canRedo() }

func (b *Buffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.text) {
		return len(b.text)
	}
	return offset
}
