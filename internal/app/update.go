package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/document"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/smartedit"
	"github.com/zjrosen/quill/internal/syntax"
	"github.com/zjrosen/quill/internal/ui/picker"
	"github.com/zjrosen/quill/internal/ui/styles"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), msg.Type == tea.KeyEsc:
			m.showHelp = false
		}
		return m, nil
	}
	if m.pickingNote {
		return m.handlePickerKey(msg)
	}
	if m.confirmNew {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		cmd := m.save()
		return m, cmd

	case key.Matches(msg, m.keys.New):
		if m.buf.IsEmpty() {
			cmd := m.newDocument()
			return m, cmd
		}
		m.confirmNew = true
		m.statusID++
		m.status = "Discard the current buffer and start a new file? (y/n)"
		m.statusKind = styles.StatusWarning
		return m, nil

	case key.Matches(msg, m.keys.Open):
		cmd := m.openNotePicker()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTerminal):
		m.setTerminalVisible(!m.terminalVisible)
		return m, nil

	case key.Matches(msg, m.keys.ToggleHighlight):
		cmd := m.toggleHighlight()
		return m, cmd

	case key.Matches(msg, m.keys.Undo):
		if m.buf.Undo() {
			m.scrollToCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		if m.buf.Redo() {
			m.scrollToCursor()
		}
		return m, nil
	}

	// tab switches only out of the terminal; in the editor it inserts a tab.
	if key.Matches(msg, m.keys.SwitchFocus) && m.terminalVisible &&
		(m.focus == FocusTerminal || msg.Type == tea.KeyEsc) {
		m.setFocus(m.otherPane())
		return m, nil
	}

	if m.focus == FocusTerminal {
		return m.handleTerminalKey(msg)
	}
	m.handleEditorKey(msg)
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirmNew = false
		cmd := m.newDocument()
		return m, cmd
	case key.Matches(msg, m.keys.Cancel):
		m.confirmNew = false
		m.status = ""
		return m, nil
	}
	return m, nil
}

// openNotePicker lists the notes directory, newest first.
func (m *Model) openNotePicker() tea.Cmd {
	notes, err := document.ListNotes(m.notesDir)
	if err != nil {
		log.ErrorErr(log.CatDocument, "listing notes failed", err, "dir", m.notesDir)
		return m.setStatus(styles.StatusError, fmt.Sprintf("Open failed: %v", err))
	}
	if len(notes) == 0 {
		return m.setStatus(styles.StatusInfo, "No notes in "+m.notesDir)
	}

	options := make([]picker.Option, len(notes))
	current := -1
	for i, n := range notes {
		options[i] = picker.Option{Label: n.Name, Value: n.Path, Hint: n.ModTime.Format("2006-01-02 15:04")}
		if n.Path == m.doc.Path {
			current = i
		}
	}
	title := "Open note"
	if m.buf.Dirty() {
		title += " (unsaved edits are discarded)"
	}
	m.notePicker = picker.New(title, options, m.theme.Accent).
		SetSize(m.width, m.height).
		SetSelected(current)
	m.pickingNote = true
	return nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open), msg.Type == tea.KeyEsc:
		m.pickingNote = false
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.pickingNote = false
		cmd := m.loadNote(m.notePicker.Selected().Value)
		return m, cmd
	}
	var cmd tea.Cmd
	m.notePicker, cmd = m.notePicker.Update(msg)
	return m, cmd
}

// loadNote replaces the buffer with the file at path.
func (m *Model) loadNote(path string) tea.Cmd {
	doc, err := document.Load(path)
	if err != nil {
		log.ErrorErr(log.CatDocument, "open failed", err, "path", path)
		return m.setStatus(styles.StatusError, fmt.Sprintf("Open failed: %v", err))
	}

	m.doc = doc
	m.buf.SetText(doc.Text)
	m.top = 0
	m.highlighter.SetTable(syntax.Select(path, m.highlight))
	m.setFocus(FocusEditor)
	log.Info(log.CatDocument, "opened", "path", path, "bytes", len(doc.Text))

	var cmd tea.Cmd
	if m.watch {
		m.startWatcher(path)
		if m.watcherListener != nil {
			cmd = m.watcherListener.Listen()
		}
	}
	return tea.Batch(cmd, m.setStatus(styles.StatusSuccess, "Opened "+doc.Title()))
}

func (m *Model) otherPane() Focus {
	if m.focus == FocusEditor {
		return FocusTerminal
	}
	return FocusEditor
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusTerminal {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	log.Debug(log.CatUI, "focus", "pane", f)
}

func (m *Model) setTerminalVisible(visible bool) {
	m.terminalVisible = visible
	if visible {
		m.setFocus(FocusTerminal)
	} else {
		m.setFocus(FocusEditor)
	}
	m.scrollToCursor()
}

// handleEditorKey routes a key to the buffer. Typed characters and enter
// go through the smart edit controller; each keystroke is one undo step.
func (m *Model) handleEditorKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.buf.Up()
	case key.Matches(msg, m.keys.Down):
		m.buf.Down()
	case key.Matches(msg, m.keys.Left):
		m.buf.Left()
	case key.Matches(msg, m.keys.Right):
		m.buf.Right()
	case key.Matches(msg, m.keys.Home):
		m.buf.Home()
	case key.Matches(msg, m.keys.End):
		m.buf.End()
	case key.Matches(msg, m.keys.Backspace):
		m.buf.Backspace()
	case key.Matches(msg, m.keys.Delete):
		m.buf.DeleteForward()
	case key.Matches(msg, m.keys.Enter):
		m.smartEdit(smartedit.NewlineKey)
	case msg.Type == tea.KeyTab:
		m.buf.Insert("\t")
	case msg.Type == tea.KeySpace:
		m.smartEdit(smartedit.RuneKey(' '))
	case msg.Type == tea.KeyRunes && !msg.Alt:
		if msg.Paste {
			m.buf.Insert(string(msg.Runes))
			break
		}
		m.buf.Edit(func() {
			for _, r := range msg.Runes {
				m.controller.Handle(m.buf, smartedit.RuneKey(r))
			}
		})
	default:
		return
	}
	m.scrollToCursor()
}

func (m *Model) smartEdit(k smartedit.Key) {
	m.buf.Edit(func() {
		m.controller.Handle(m.buf, k)
	})
}

func (m Model) handleTerminalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		line := m.input.Value()
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		m.input.Reset()
		// Errors are already reported in the transcript.
		_ = m.session.Submit(line)
		m.histCursor.reset(m.session.History())
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if entry, ok := m.histCursor.prev(m.session.History()); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if entry, ok := m.histCursor.next(m.session.History()); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
		return m, nil

	case msg.Type == tea.KeyPgUp:
		m.viewport.HalfViewUp()
		return m, nil

	case msg.Type == tea.KeyPgDown:
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.terminalVisible && msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
		if z := zone.Get(zoneTerminal); z != nil && z.InBounds(msg) {
			vp, cmd := m.viewport.Update(msg)
			*m.viewport = vp
			return m, cmd
		}
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	if z := zone.Get(zoneEditor); z != nil && z.InBounds(msg) {
		m.setFocus(FocusEditor)
		return m, nil
	}
	if m.terminalVisible {
		if z := zone.Get(zoneTerminal); z != nil && z.InBounds(msg) {
			m.setFocus(FocusTerminal)
		}
	}
	return m, nil
}

// save writes the buffer to the document path, or to a timestamped note
// when the buffer has never been saved.
func (m *Model) save() tea.Cmd {
	path := m.doc.Path
	named := path == ""
	if named {
		path = document.NotePath(m.notesDir, m.now())
	}

	text := m.buf.Text()
	if err := m.doc.SaveAs(path, text); err != nil {
		if named {
			m.doc.Path = ""
		}
		log.ErrorErr(log.CatDocument, "save failed", err, "path", path)
		return m.setStatus(styles.StatusError, fmt.Sprintf("Save failed: %v", err))
	}
	m.buf.MarkClean()
	log.Info(log.CatDocument, "saved", "path", path, "bytes", len(text))

	var cmd tea.Cmd
	if named {
		m.highlighter.SetTable(syntax.Select(path, m.highlight))
		if m.watch {
			m.startWatcher(path)
			if m.watcherListener != nil {
				cmd = m.watcherListener.Listen()
			}
		}
	}
	return tea.Batch(cmd, m.setStatus(styles.StatusSuccess, "Saved "+path))
}

// newDocument clears the editor and forgets the current path.
func (m *Model) newDocument() tea.Cmd {
	m.stopWatcher()
	m.doc = &document.Document{}
	m.buf.SetText("")
	m.top = 0
	m.highlighter.SetTable(syntax.Select("", m.highlight))
	log.Debug(log.CatDocument, "new document")
	return m.setStatus(styles.StatusInfo, "New file")
}

// toggleHighlight flips highlighting and persists the choice.
func (m *Model) toggleHighlight() tea.Cmd {
	m.highlight = !m.highlight
	m.cfg.Highlight.Enabled = m.highlight
	m.highlighter.SetTable(syntax.Select(m.doc.Path, m.highlight))

	state := "off"
	if m.highlight {
		state = "on"
	}
	if m.configPath != "" {
		if err := config.SaveHighlight(m.configPath, m.highlight); err != nil {
			log.ErrorErr(log.CatConfig, "persisting highlight toggle", err)
			return m.setStatus(styles.StatusError, fmt.Sprintf("Highlighting %s (not saved: %v)", state, err))
		}
	}
	return m.setStatus(styles.StatusInfo, "Highlighting "+state)
}

// handleDiskChange reloads a clean buffer from disk, or reports how the
// file differs when there are unsaved edits. Notifications caused by our
// own save match the buffer and are ignored.
func (m Model) handleDiskChange(ev pubsub.Event[string]) (tea.Model, tea.Cmd) {
	if m.watcherHandle == nil || ev.Payload != m.watcherHandle.Path() {
		return m, nil
	}
	next := m.watcherListener.Listen()

	loaded, err := document.Load(m.watcherHandle.Path())
	if err != nil {
		log.Warn(log.CatWatcher, "reload failed", "path", ev.Payload, "error", err)
		if errors.Is(err, document.ErrNotUTF8) {
			return m, tea.Batch(next, m.setStatus(styles.StatusError, m.doc.Title()+" on disk is not UTF-8"))
		}
		return m, next
	}
	if loaded.Text == m.buf.Text() {
		return m, next
	}

	if !m.buf.Dirty() {
		cursor := m.buf.CursorOffset()
		m.buf.SetText(loaded.Text)
		m.buf.MoveCursor(cursor)
		m.doc.Text = loaded.Text
		m.scrollToCursor()
		log.Info(log.CatWatcher, "reloaded", "path", ev.Payload)
		return m, tea.Batch(next, m.setStatus(styles.StatusInfo, "Reloaded "+m.doc.Title()+" from disk"))
	}

	summary, err := document.DiskDiff(ev.Payload, m.buf.Text())
	if err != nil {
		log.Warn(log.CatWatcher, "diff failed", "path", ev.Payload, "error", err)
		return m, next
	}
	log.Info(log.CatWatcher, "changed on disk with unsaved edits", "path", ev.Payload, "diff", summary)
	return m, tea.Batch(next, m.setStatus(styles.StatusWarning,
		fmt.Sprintf("%s changed on disk (%s); save to overwrite", m.doc.Title(), summary)))
}

// scrollToCursor keeps the cursor row inside the editor viewport.
func (m *Model) scrollToCursor() {
	row, _ := m.buf.LineCol()
	h := m.editorInnerHeight()
	if row < m.top {
		m.top = row
	}
	if row >= m.top+h {
		m.top = row - h + 1
	}
	m.top = max(m.top, 0)
}
