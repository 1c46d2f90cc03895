package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		expected string
	}{
		{"fits", "main.py", 10, "main.py"},
		{"exact", "main.py", 7, "main.py"},
		{"ellipsis", "very_long_name.py", 10, "very_lo..."},
		{"tiny width", "abcdef", 2, ".."},
		{"zero width", "abc", 0, ""},
		{"wide runes", "世界世界世界", 7, "世界..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, TruncateString(tt.in, tt.width))
		})
	}
}

func TestDirtyTitle(t *testing.T) {
	require.Equal(t, "notes.txt ●", DirtyTitle("notes.txt", true))
	require.Equal(t, "notes.txt", DirtyTitle("notes.txt", false))
}
