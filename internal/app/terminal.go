package app

// transcript is the terminal pane's shell.Sink. The model holds it by
// pointer so the session's writes survive Bubble Tea's value copies.
type transcript struct {
	lines []string
	dir   string
}

func (t *transcript) AppendLine(text string) {
	t.lines = append(t.lines, text)
}

func (t *transcript) SetDirectory(dir string) {
	t.dir = dir
}

// Lines returns the transcript so far.
func (t *transcript) Lines() []string { return t.lines }

// historyCursor walks submitted commands with up/down in the input line.
// pos == len(entries) means "not browsing".
type historyCursor struct {
	pos int
}

func (h *historyCursor) reset(entries []string) { h.pos = len(entries) }

func (h *historyCursor) prev(entries []string) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}
	h.pos = max(min(h.pos, len(entries))-1, 0)
	return entries[h.pos], true
}

func (h *historyCursor) next(entries []string) (string, bool) {
	if h.pos >= len(entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(entries) {
		return "", true
	}
	return entries[h.pos], true
}
