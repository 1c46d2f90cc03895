package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaults_Values(t *testing.T) {
	d := Defaults()

	require.True(t, d.Editor.AutoIndent)
	require.True(t, d.Editor.AutoPair)
	require.Equal(t, "\t", d.Editor.IndentUnit)
	require.Equal(t, 4, d.Editor.TabWidth)
	require.True(t, d.Highlight.Enabled)
	require.Equal(t, "bash", d.Shell.Interpreter)
	require.Equal(t, BusyPolicyReject, d.Shell.BusyPolicy)
	require.Equal(t, "#ff79c6", d.Theme.Keyword)
	require.False(t, d.Tracing.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty indent", func(c *Config) { c.Editor.IndentUnit = "" }, "indent_unit must not be empty"},
		{"non-blank indent", func(c *Config) { c.Editor.IndentUnit = "--" }, "only spaces or tabs"},
		{"tab width", func(c *Config) { c.Editor.TabWidth = 0 }, "tab_width"},
		{"interpreter", func(c *Config) { c.Shell.Interpreter = " " }, "interpreter must not be empty"},
		{"busy policy", func(c *Config) { c.Shell.BusyPolicy = "queue" }, "busy_policy"},
		{"color", func(c *Config) { c.Theme.Comment = "blue" }, "theme.comment"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, "tracing.exporter"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"otlp endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "otlp_endpoint"},
		{"duplicate key", func(c *Config) {
			c.Keybindings.Save = "ctrl+s"
			c.Keybindings.Quit = "ctrl+s"
		}, "bound to both save and quit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_ReportsEverySection(t *testing.T) {
	cfg := Defaults()
	cfg.Shell.Interpreter = ""
	cfg.Tracing.Exporter = "nope"

	err := Validate(cfg)

	require.ErrorContains(t, err, "shell.interpreter")
	require.ErrorContains(t, err, "tracing.exporter")
}

func TestValidateTheme_ShortHexAndEmpty(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{Keyword: "#f0a", String: ""}))
}

func TestTemplateMatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var got Config
	require.NoError(t, v.Unmarshal(&got))

	d := Defaults()
	require.Equal(t, d.Editor, got.Editor)
	require.Equal(t, d.Highlight, got.Highlight)
	require.Equal(t, d.Shell, got.Shell)
	require.Equal(t, d.Theme, got.Theme)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".quill", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, home, ExpandHome("~"))
	require.Equal(t, filepath.Join(home, "notes"), ExpandHome("~/notes"))
	require.Equal(t, "/abs", ExpandHome("/abs"))
	require.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestDefaultTracesFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.Equal(t, filepath.Join(home, ".config", "quill", "traces", "traces.jsonl"), DefaultTracesFilePath())
}
