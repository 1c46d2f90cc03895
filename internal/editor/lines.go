package editor

import "strings"

// Lines splits the text on newlines. An empty buffer has one empty line.
func (b *Buffer) Lines() []string {
	return strings.Split(b.text, "\n")
}

// LineCount is the number of lines, at least one.
func (b *Buffer) LineCount() int {
	return strings.Count(b.text, "\n") + 1
}

// LineCol returns the cursor's row and byte column.
func (b *Buffer) LineCol() (row, col int) {
	before := b.text[:b.cursor]
	row = strings.Count(before, "\n")
	col = b.cursor - (strings.LastIndexByte(before, '\n') + 1)
	return row, col
}

// LineStart returns the offset of the first byte of row. Rows past the end
// map to the end of the text.
func (b *Buffer) LineStart(row int) int {
	if row <= 0 {
		return 0
	}
	offset := 0
	for i := 0; i < row; i++ {
		nl := strings.IndexByte(b.text[offset:], '\n')
		if nl < 0 {
			return len(b.text)
		}
		offset += nl + 1
	}
	return offset
}

// lineEnd returns the offset of the newline ending the line containing
// offset, or the end of the text.
func (b *Buffer) lineEnd(offset int) int {
	nl := strings.IndexByte(b.text[offset:], '\n')
	if nl < 0 {
		return len(b.text)
	}
	return offset + nl
}

// OffsetFor converts a row and byte column to an offset, clamping both.
func (b *Buffer) OffsetFor(row, col int) int {
	if row < 0 {
		row = 0
	}
	if last := b.LineCount() - 1; row > last {
		row = last
	}
	start := b.LineStart(row)
	end := b.lineEnd(start)
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}

// CursorColumn is the display column of the cursor within its line.
func (b *Buffer) CursorColumn() int {
	start := strings.LastIndexByte(b.text[:b.cursor], '\n') + 1
	return DisplayWidth(b.text[start:b.cursor], b.tabWidth)
}

// Left moves one grapheme back, crossing to the previous line.
func (b *Buffer) Left() {
	b.MoveCursor(prevBoundary(b.text, b.cursor))
}

// Right moves one grapheme forward, crossing to the next line.
func (b *Buffer) Right() {
	b.MoveCursor(nextBoundary(b.text, b.cursor))
}

// Home moves to the start of the line.
func (b *Buffer) Home() {
	b.MoveCursor(strings.LastIndexByte(b.text[:b.cursor], '\n') + 1)
}

// End moves to the end of the line.
func (b *Buffer) End() {
	b.MoveCursor(b.lineEnd(b.cursor))
}

// Up moves to the previous line, keeping the display column.
func (b *Buffer) Up() {
	row, _ := b.LineCol()
	if row == 0 {
		b.Home()
		return
	}
	b.vertical(row - 1)
}

// Down moves to the next line, keeping the display column.
func (b *Buffer) Down() {
	row, _ := b.LineCol()
	if row >= b.LineCount()-1 {
		b.End()
		return
	}
	b.vertical(row + 1)
}

func (b *Buffer) vertical(row int) {
	goal := b.goalCol
	if goal < 0 {
		goal = b.CursorColumn()
	}
	start := b.LineStart(row)
	line := b.text[start:b.lineEnd(start)]
	b.MoveCursor(start + offsetAtWidth(line, goal, b.tabWidth))
	b.goalCol = goal
}
