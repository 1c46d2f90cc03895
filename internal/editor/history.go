package editor

// edit is one primitive change: deleted was removed at offset and inserted
// put in its place.
type edit struct {
	offset   int
	deleted  string
	inserted string
}

// step is one undoable unit. A single keystroke may produce several edits
// (newline then indent, opener then closer) which undo together.
type step struct {
	edits        []edit
	cursorBefore int
	cursorAfter  int
}

// history manages the step stack for undo/redo.
//
// undoIndex is -1 at the base state and len(steps)-1 at the latest step.
// Pushing after an undo discards every step past undoIndex.
type history struct {
	steps     []step
	undoIndex int
}

func newHistory() *history {
	return &history{undoIndex: -1}
}

func (h *history) push(s step) {
	h.steps = h.steps[:h.undoIndex+1]
	h.steps = append(h.steps, s)
	h.undoIndex = len(h.steps) - 1
}

// undo returns the step to reverse, false at the base state.
func (h *history) undo() (step, bool) {
	if h.undoIndex < 0 {
		return step{}, false
	}
	s := h.steps[h.undoIndex]
	h.undoIndex--
	return s, true
}

// redo returns the step to re-apply, false at the latest step.
func (h *history) redo() (step, bool) {
	if h.undoIndex >= len(h.steps)-1 {
		return step{}, false
	}
	h.undoIndex++
	return h.steps[h.undoIndex], true
}

func (h *history) canUndo() bool { return h.undoIndex >= 0 }

func (h *history) canRedo() bool { return h.undoIndex < len(h.steps)-1 }

func (h *history) clear() {
	h.steps = h.steps[:0]
	h.undoIndex = -1
}
