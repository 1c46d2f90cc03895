package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quill/internal/app"
	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/document"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/shell"
	"github.com/zjrosen/quill/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".quill/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "quill [file]",
	Short: "A terminal code editor with an embedded shell",
	Long: `quill edits one UTF-8 file at a time with syntax highlighting for Python
and C, auto-indent and bracket pairing, plus a terminal pane that runs
shell commands in a tracked working directory.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .quill/config.yaml, then ~/.config/quill/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also QUILL_DEBUG=1; QUILL_LOG sets the path, QUILL_LOG_LEVEL the level)")
	rootCmd.Flags().Bool("no-highlight", false,
		"start with syntax highlighting off (not saved)")
	rootCmd.Flags().String("notes-dir", "",
		"directory for saving untitled buffers (default: ./data/notes)")

	// Bind flags to viper
	_ = viper.BindPFlag("notes.dir", rootCmd.Flags().Lookup("notes-dir"))
}

func initConfig() {
	configPath = resolveConfigPath(cfgFile)

	loaded, err := loadConfig(viper.GetViper(), configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using defaults\n", err)
		loaded = config.Defaults()
	}
	cfg = loaded
}

// resolveConfigPath picks the config file:
// 1. --config
// 2. .quill/config.yaml (current directory)
// 3. ~/.config/quill/config.yaml (user config)
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(localConfigPath); err == nil {
		return localConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("editor.auto_indent", d.Editor.AutoIndent)
	v.SetDefault("editor.auto_pair", d.Editor.AutoPair)
	v.SetDefault("editor.indent_unit", d.Editor.IndentUnit)
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
	v.SetDefault("highlight.enabled", d.Highlight.Enabled)
	v.SetDefault("shell.interpreter", d.Shell.Interpreter)
	v.SetDefault("shell.busy_policy", d.Shell.BusyPolicy)
	v.SetDefault("shell.history_file", d.Shell.HistoryFile)
	v.SetDefault("notes.dir", d.Notes.Dir)
	v.SetDefault("theme.keyword", d.Theme.Keyword)
	v.SetDefault("theme.string", d.Theme.String)
	v.SetDefault("theme.comment", d.Theme.Comment)
	v.SetDefault("theme.editor_bg", d.Theme.EditorBg)
	v.SetDefault("theme.editor_fg", d.Theme.EditorFg)
	v.SetDefault("theme.terminal_bg", d.Theme.TerminalBg)
	v.SetDefault("theme.terminal_fg", d.Theme.TerminalFg)
	v.SetDefault("theme.border", d.Theme.Border)
	v.SetDefault("theme.accent", d.Theme.Accent)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// loadConfig reads path into a Config on top of the defaults. A missing
// file is created from the commented default template first; if that
// fails the defaults are used as is.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if writeErr := config.WriteDefaultConfig(path); writeErr != nil {
				path = ""
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging(debugFlag)
	if err != nil {
		return err
	}
	defer cleanup()

	if noHighlight, _ := cmd.Flags().GetBool("no-highlight"); noHighlight {
		cfg.Highlight.Enabled = false
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := newTracingProvider(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown", err)
		}
	}()

	var doc *document.Document
	if len(args) == 1 {
		doc, err = openDocument(args[0])
		if err != nil {
			return err
		}
	}

	notesDir, err := resolveNotesDir(cfg.Notes.Dir)
	if err != nil {
		return err
	}

	zone.NewGlobal()

	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Document:   doc,
		NotesDir:   notesDir,
		Watch:      true,
		ShellOptions: []shell.Option{
			shell.WithTracer(provider.Tracer()),
			shell.WithHistory(loadHistory(cfg.Shell.HistoryFile)),
		},
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()

	// The final model owns the watcher started by the last save.
	closer := model
	if fm, ok := final.(app.Model); ok {
		closer = fm
	}
	if closeErr := closer.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// initLogging turns on file logging when --debug or QUILL_DEBUG is set.
// QUILL_LOG names the file (default debug.log) and QUILL_LOG_LEVEL the
// minimum level (debug, info, warn, error).
func initLogging(debug bool) (func(), error) {
	if os.Getenv("QUILL_DEBUG") == "" && !debug {
		return func() {}, nil
	}
	logPath := os.Getenv("QUILL_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, "quill", log.ParseLevel(os.Getenv("QUILL_LOG_LEVEL")))
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "quill starting", "version", version, "config", configPath)
	return cleanup, nil
}

func newTracingProvider(tc config.TracingConfig) (*tracing.Provider, error) {
	filePath := config.ExpandHome(tc.FilePath)
	if filePath == "" && tc.Exporter == tracing.ExporterFile {
		filePath = config.DefaultTracesFilePath()
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      tc.Enabled,
		Exporter:     tc.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: tc.OTLPEndpoint,
		SampleRate:   tc.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	log.Debug(log.CatTrace, "tracing provider created", "enabled", tc.Enabled, "exporter", tc.Exporter)
	return provider, nil
}

// openDocument loads path. A path that does not exist yet opens an empty
// buffer that will be created on the first save.
func openDocument(path string) (*document.Document, error) {
	doc, err := document.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &document.Document{Path: path}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func resolveNotesDir(configured string) (string, error) {
	if configured != "" {
		return config.ExpandHome(configured), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return document.DefaultNotesDir(cwd), nil
}

func loadHistory(path string) *shell.History {
	if path == "" {
		return shell.NewHistory()
	}
	h, err := shell.LoadHistory(config.ExpandHome(path))
	if err != nil {
		log.Warn(log.CatShell, "history not loaded", "path", path, "error", err)
		return shell.NewHistory()
	}
	return h
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
