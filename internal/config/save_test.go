package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func readHighlight(t *testing.T, path string) bool {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return v.GetBool("highlight.enabled")
}

func TestSaveHighlight_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveHighlight(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# quill configuration")
	require.Contains(t, content, "interpreter: bash")
	require.Contains(t, content, "# commands run as")
	require.False(t, readHighlight(t, path))

	require.NoError(t, SaveHighlight(path, true))
	require.True(t, readHighlight(t, path))
}

func TestSaveHighlight_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveHighlight(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "highlight:\n  enabled: false\n", string(data))
}

func TestSaveHighlight_AddsMissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shell:\n  interpreter: zsh # mine\n"), 0o600))

	require.NoError(t, SaveHighlight(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "interpreter: zsh # mine")
	require.True(t, readHighlight(t, path))
}

func TestSaveHighlight_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("highlight: yes-please\n"), 0o600))

	err := SaveHighlight(path, true)
	require.ErrorContains(t, err, "not a mapping")

	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))
	err = SaveHighlight(path, true)
	require.ErrorContains(t, err, "top level is not a mapping")
}

func TestSaveHighlight_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveHighlight(path, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasPrefix(e.Name(), ".quill.yaml.tmp"), e.Name())
	}
}
