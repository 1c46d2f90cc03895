// Package config provides configuration types, defaults and validation for
// quill.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/zjrosen/quill/internal/log"
)

// Busy policies for a shell command submitted while another still runs.
const (
	BusyPolicyReject = "reject"
)

// Config holds all configuration options for quill.
type Config struct {
	Editor      EditorConfig      `mapstructure:"editor"`
	Highlight   HighlightConfig   `mapstructure:"highlight"`
	Shell       ShellConfig       `mapstructure:"shell"`
	Notes       NotesConfig       `mapstructure:"notes"`
	Theme       ThemeConfig       `mapstructure:"theme"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
	Keybindings KeybindingsConfig `mapstructure:"keybindings"`
}

// EditorConfig controls smart editing.
type EditorConfig struct {
	AutoIndent bool   `mapstructure:"auto_indent"`
	AutoPair   bool   `mapstructure:"auto_pair"`
	IndentUnit string `mapstructure:"indent_unit"` // appended after a block opener
	TabWidth   int    `mapstructure:"tab_width"`   // display only
}

// HighlightConfig toggles syntax highlighting.
type HighlightConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ShellConfig configures the embedded terminal.
type ShellConfig struct {
	Interpreter string `mapstructure:"interpreter"`
	BusyPolicy  string `mapstructure:"busy_policy"`
	HistoryFile string `mapstructure:"history_file"` // empty keeps history in memory
}

// NotesConfig sets where unnamed documents are saved.
type NotesConfig struct {
	Dir string `mapstructure:"dir"` // empty means <cwd>/data/notes
}

// ThemeConfig holds hex colors for the panes and highlight styles.
type ThemeConfig struct {
	Keyword    string `mapstructure:"keyword"`
	String     string `mapstructure:"string"`
	Comment    string `mapstructure:"comment"`
	EditorBg   string `mapstructure:"editor_bg"`
	EditorFg   string `mapstructure:"editor_fg"`
	TerminalBg string `mapstructure:"terminal_bg"`
	TerminalFg string `mapstructure:"terminal_fg"`
	Border     string `mapstructure:"border"`
	Accent     string `mapstructure:"accent"`
}

// TracingConfig holds OpenTelemetry settings for shell command spans.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file, stdout, otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// KeybindingsConfig overrides the global shortcuts. Empty values keep the
// defaults.
type KeybindingsConfig struct {
	Save            string `mapstructure:"save"`
	New             string `mapstructure:"new"`
	Open            string `mapstructure:"open"`
	ToggleTerminal  string `mapstructure:"toggle_terminal"`
	ToggleHighlight string `mapstructure:"toggle_highlight"`
	Undo            string `mapstructure:"undo"`
	Redo            string `mapstructure:"redo"`
	Quit            string `mapstructure:"quit"`
	Help            string `mapstructure:"help"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			AutoIndent: true,
			AutoPair:   true,
			IndentUnit: "\t",
			TabWidth:   4,
		},
		Highlight: HighlightConfig{Enabled: true},
		Shell: ShellConfig{
			Interpreter: "bash",
			BusyPolicy:  BusyPolicyReject,
		},
		Theme: ThemeConfig{
			Keyword:    "#ff79c6",
			String:     "#f1fa8c",
			Comment:    "#6272a4",
			EditorBg:   "#282a36",
			EditorFg:   "#f8f8f2",
			TerminalBg: "#1e1f29",
			TerminalFg: "#50fa7b",
			Border:     "#44475a",
			Accent:     "#6272a4",
		},
		Tracing: TracingConfig{
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultTracesFilePath returns ~/.config/quill/traces/traces.jsonl, or ""
// when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "traces", "traces.jsonl")
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the whole configuration and reports every problem found.
func Validate(c Config) error {
	return errors.Join(
		ValidateEditor(c.Editor),
		ValidateShell(c.Shell),
		ValidateTheme(c.Theme),
		ValidateTracing(c.Tracing),
		ValidateKeybindings(c.Keybindings),
	)
}

// ValidateEditor checks the editor section.
func ValidateEditor(e EditorConfig) error {
	if e.IndentUnit == "" {
		return fmt.Errorf("editor.indent_unit must not be empty")
	}
	if strings.Trim(e.IndentUnit, " \t") != "" {
		return fmt.Errorf("editor.indent_unit must contain only spaces or tabs, got %q", e.IndentUnit)
	}
	if e.TabWidth < 1 || e.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", e.TabWidth)
	}
	return nil
}

// ValidateShell checks the shell section.
func ValidateShell(s ShellConfig) error {
	if strings.TrimSpace(s.Interpreter) == "" {
		return fmt.Errorf("shell.interpreter must not be empty")
	}
	if s.BusyPolicy != "" && s.BusyPolicy != BusyPolicyReject {
		return fmt.Errorf("shell.busy_policy must be %q, got %q", BusyPolicyReject, s.BusyPolicy)
	}
	return nil
}

// ValidateTheme checks that every set color is a hex color.
func ValidateTheme(t ThemeConfig) error {
	colors := []struct {
		key, value string
	}{
		{"keyword", t.Keyword},
		{"string", t.String},
		{"comment", t.Comment},
		{"editor_bg", t.EditorBg},
		{"editor_fg", t.EditorFg},
		{"terminal_bg", t.TerminalBg},
		{"terminal_fg", t.TerminalFg},
		{"border", t.Border},
		{"accent", t.Accent},
	}
	var errs []error
	for _, c := range colors {
		if c.value != "" && !hexColor.MatchString(c.value) {
			errs = append(errs, fmt.Errorf("theme.%s: invalid hex color %q", c.key, c.value))
		}
	}
	return errors.Join(errs...)
}

// ValidateTracing checks the tracing section.
func ValidateTracing(t TracingConfig) error {
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be one of none, file, stdout, otlp, got %q", t.Exporter)
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1, got %v", t.SampleRate)
	}
	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// ValidateKeybindings rejects the same key bound to two actions.
func ValidateKeybindings(k KeybindingsConfig) error {
	bound := map[string]string{}
	for _, b := range []struct{ action, key string }{
		{"save", k.Save},
		{"new", k.New},
		{"open", k.Open},
		{"toggle_terminal", k.ToggleTerminal},
		{"toggle_highlight", k.ToggleHighlight},
		{"undo", k.Undo},
		{"redo", k.Redo},
		{"quit", k.Quit},
		{"help", k.Help},
	} {
		key := strings.TrimSpace(b.key)
		if key == "" {
			continue
		}
		if other, ok := bound[key]; ok {
			return fmt.Errorf("keybindings: %q is bound to both %s and %s", key, other, b.action)
		}
		bound[key] = b.action
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# quill configuration

# Smart editing
editor:
  auto_indent: true   # carry indentation onto new lines, one level deeper after : { [ (
  auto_pair: true     # insert closing ) ] } " ' when typing an opener
  indent_unit: "\t"   # added after a block opener; e.g. "    " for four spaces
  tab_width: 4        # display width of a tab

# Syntax highlighting (.py, .c, .cpp, .h). Toggle at runtime with ctrl+l.
highlight:
  enabled: true

# Embedded terminal (ctrl+t)
shell:
  interpreter: bash     # commands run as: <interpreter> -c "<line>"
  busy_policy: reject   # a command submitted while another runs is rejected
  # history_file: ~/.config/quill/history

# Where ctrl+s saves a buffer that has no file yet (default: ./data/notes)
# notes:
#   dir: ~/notes

# Colors (Dracula)
theme:
  keyword: "#ff79c6"
  string: "#f1fa8c"
  comment: "#6272a4"
  editor_bg: "#282a36"
  editor_fg: "#f8f8f2"
  terminal_bg: "#1e1f29"
  terminal_fg: "#50fa7b"
  border: "#44475a"
  accent: "#6272a4"

# Shortcut overrides (defaults shown)
# keybindings:
#   save: ctrl+s
#   new: ctrl+n
#   open: ctrl+o
#   toggle_terminal: ctrl+t
#   toggle_highlight: ctrl+l
#   undo: ctrl+z
#   redo: ctrl+y
#   quit: ctrl+q
#   help: f1

# Tracing of shell commands
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/quill/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// ExpandHome replaces a leading ~ in path with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
