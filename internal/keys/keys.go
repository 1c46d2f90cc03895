// Package keys contains keybinding definitions.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/quill/internal/config"
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Global
	Save            key.Binding
	New             key.Binding
	Open            key.Binding
	ToggleTerminal  key.Binding
	ToggleHighlight key.Binding
	Undo            key.Binding
	Redo            key.Binding
	Quit            key.Binding
	SwitchFocus     key.Binding
	Help            key.Binding

	// Confirmation prompt
	Confirm key.Binding
	Cancel  key.Binding

	// Editor navigation
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Enter     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new file"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open note"),
		),
		ToggleTerminal: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "terminal"),
		),
		ToggleHighlight: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "highlight"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "switch pane"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "line down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete left"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "newline / run"),
		),
	}
}

// ApplyConfig rebinds the global shortcuts named in cfg. A value may list
// several keys separated by commas ("ctrl+q, ctrl+c"). Empty values keep
// the current binding.
func (k *KeyMap) ApplyConfig(cfg config.KeybindingsConfig) {
	rebind(&k.Save, cfg.Save)
	rebind(&k.New, cfg.New)
	rebind(&k.Open, cfg.Open)
	rebind(&k.ToggleTerminal, cfg.ToggleTerminal)
	rebind(&k.ToggleHighlight, cfg.ToggleHighlight)
	rebind(&k.Undo, cfg.Undo)
	rebind(&k.Redo, cfg.Redo)
	rebind(&k.Quit, cfg.Quit)
	rebind(&k.Help, cfg.Help)
}

func rebind(b *key.Binding, value string) {
	keys := splitKeys(value)
	if len(keys) == 0 {
		return
	}
	b.SetKeys(keys...)
	b.SetHelp(keys[0], b.Help().Desc)
}

func splitKeys(value string) []string {
	var keys []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}

// ShortHelp returns keybindings for the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.New, k.ToggleTerminal, k.ToggleHighlight, k.Help, k.Quit}
}

// FullHelp returns keybindings grouped by area.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.New, k.Open, k.Undo, k.Redo, k.Quit},
		{k.ToggleTerminal, k.ToggleHighlight, k.SwitchFocus, k.Help},
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End},
		{k.Backspace, k.Delete, k.Enter},
	}
}
