// Package app contains the root application model.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/cachemanager"
	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/document"
	"github.com/zjrosen/quill/internal/editor"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/shell"
	"github.com/zjrosen/quill/internal/smartedit"
	"github.com/zjrosen/quill/internal/syntax"
	"github.com/zjrosen/quill/internal/ui/picker"
	"github.com/zjrosen/quill/internal/ui/styles"
	"github.com/zjrosen/quill/internal/watcher"
)

// Focus is the pane receiving key input.
type Focus int

const (
	FocusEditor Focus = iota
	FocusTerminal
)

func (f Focus) String() string {
	if f == FocusTerminal {
		return "terminal"
	}
	return "editor"
}

// Mouse zone ids.
const (
	zoneEditor   = "quill-editor"
	zoneTerminal = "quill-terminal"
)

const (
	statusTimeout = 4 * time.Second
	// Unused line tokens drop out of the highlight cache after this.
	tokenCacheTTL = 2 * time.Minute
)

// clearStatusMsg expires the status message with the same id.
type clearStatusMsg struct{ id int }

// Options configures a new Model.
type Options struct {
	Config config.Config
	// ConfigPath receives the persisted highlight toggle. Empty disables
	// persistence.
	ConfigPath string
	// Document is the file to edit; nil starts an untitled buffer.
	Document *document.Document
	// NotesDir receives saves of untitled buffers. Empty uses
	// Config.Notes.Dir, then <cwd>/data/notes.
	NotesDir string
	// Watch enables reloading the open file when it changes on disk.
	Watch bool
	// ShellOptions are passed to shell.New after the interpreter option.
	ShellOptions []shell.Option
	// Now is the clock used for default note names.
	Now func() time.Time
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	keys       keys.KeyMap
	help       help.Model
	theme      styles.Theme

	// Editor
	doc         *document.Document
	buf         *editor.Buffer
	controller  smartedit.Controller
	highlighter *syntax.Highlighter
	highlight   bool
	top         int // first visible editor row
	notesDir    string
	now         func() time.Time
	confirmNew  bool
	showHelp    bool
	pickingNote bool
	notePicker  picker.Model

	// Terminal
	terminalVisible bool
	focus           Focus
	transcript      *transcript
	session         *shell.Session
	input           textinput.Model
	viewport        *viewport.Model
	histCursor      historyCursor

	// Status bar
	status     string
	statusKind styles.StatusKind
	statusID   int

	// File watcher for the open document (pubsub-based)
	watch           bool
	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[string]

	width  int
	height int
}

// New creates the application model. The shell session is created here so
// its output lands in the model's transcript.
func New(opts Options) Model {
	cfg := opts.Config

	km := keys.DefaultKeyMap()
	km.ApplyConfig(cfg.Keybindings)

	doc := opts.Document
	if doc == nil {
		doc = &document.Document{}
	}

	buf := editor.New(doc.Text)
	buf.SetTabWidth(cfg.Editor.TabWidth)

	theme := styles.FromConfig(cfg.Theme)
	tabWidth := tabWidthOf(cfg)

	notesDir := opts.NotesDir
	if notesDir == "" {
		notesDir = cfg.Notes.Dir
	}
	if notesDir == "" {
		notesDir = document.DefaultNotesDir(".")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	tr := &transcript{}
	shellOpts := append([]shell.Option{shell.WithInterpreter(cfg.Shell.Interpreter)}, opts.ShellOptions...)
	session := shell.New(tr, shellOpts...)
	tr.dir = session.Dir()

	input := textinput.New()
	input.Prompt = "$ "
	input.Placeholder = "command"
	input.PromptStyle = theme.TerminalText()
	input.TextStyle = theme.TerminalText()

	vp := viewport.New(0, 0)

	m := Model{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		keys:       km,
		help:       help.New(),
		theme:      theme,
		doc:        doc,
		buf:        buf,
		controller: smartedit.New(
			smartedit.WithAutoIndent(cfg.Editor.AutoIndent),
			smartedit.WithAutoPair(cfg.Editor.AutoPair),
			smartedit.WithIndentUnit(cfg.Editor.IndentUnit),
		),
		highlighter: syntax.NewHighlighter(syntax.Select(doc.Path, cfg.Highlight.Enabled), theme.Palette(tabWidth)),
		highlight:   cfg.Highlight.Enabled,
		notesDir:    notesDir,
		now:         now,
		transcript:  tr,
		session:     session,
		input:       input,
		viewport:    &vp,
		watch:       opts.Watch,
	}
	m.highlighter.SetTokenCache(cachemanager.NewInMemoryCacheManager[[]syntax.Span](
		"line-tokens", tokenCacheTTL, cachemanager.DefaultCleanupInterval))
	m.histCursor.reset(session.History())

	if m.watch && doc.Path != "" {
		m.startWatcher(doc.Path)
	}
	return m
}

func tabWidthOf(cfg config.Config) int {
	if cfg.Editor.TabWidth > 0 {
		return cfg.Editor.TabWidth
	}
	return editor.DefaultTabWidth
}

// Init implements tea.Model. It starts the shell event pump and the watcher
// listener when one is active.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.session.Listen()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 1)
		m.notePicker = m.notePicker.SetSize(msg.Width, msg.Height)
		m.scrollToCursor()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case shell.EventMsg:
		if msg.SessionID != m.session.ID() {
			return m, nil
		}
		m.session.Dispatch(msg.Event)
		return m, m.session.Listen()

	case pubsub.Event[string]:
		return m.handleDiskChange(msg)

	case clearStatusMsg:
		if msg.id == m.statusID && !m.confirmNew {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// setStatus shows text in the status bar until it expires.
func (m *Model) setStatus(kind styles.StatusKind, text string) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusKind = kind
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}

// startWatcher replaces the active watcher with one on path. Failures are
// logged; the editor works without reloads.
func (m *Model) startWatcher(path string) {
	m.stopWatcher()

	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.Warn(log.CatWatcher, "watcher init failed", "path", path, "error", err)
		return
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "watcher start failed", "path", path, "error", err)
		_ = w.Stop()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.watcherHandle = w
	m.watcherCancel = cancel
	m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
}

func (m *Model) stopWatcher() {
	if m.watcherCancel != nil {
		m.watcherCancel()
		m.watcherCancel = nil
	}
	if m.watcherHandle != nil {
		_ = m.watcherHandle.Stop()
		m.watcherHandle = nil
	}
	m.watcherListener = nil
}

// Document returns the open document.
func (m Model) Document() *document.Document { return m.doc }

// Buffer returns the editor buffer.
func (m Model) Buffer() *editor.Buffer { return m.buf }

// Session returns the embedded shell session.
func (m Model) Session() *shell.Session { return m.session }

// Transcript returns the terminal lines so far.
func (m Model) Transcript() []string { return m.transcript.Lines() }

// Focus returns the pane receiving key input.
func (m Model) Focus() Focus { return m.focus }

// TerminalVisible reports whether the terminal pane is shown.
func (m Model) TerminalVisible() bool { return m.terminalVisible }

// HighlightEnabled reports whether syntax highlighting is on.
func (m Model) HighlightEnabled() bool { return m.highlight }

// HelpVisible reports whether the keybinding overlay is shown.
func (m Model) HelpVisible() bool { return m.showHelp }

// PickingNote reports whether the open note picker is shown.
func (m Model) PickingNote() bool { return m.pickingNote }

// Status returns the current status bar message.
func (m Model) Status() string { return m.status }

// Close releases resources held by the application. A running shell command
// is detached, not killed.
func (m *Model) Close() error {
	m.session.Close()
	m.stopWatcher()
	return nil
}
