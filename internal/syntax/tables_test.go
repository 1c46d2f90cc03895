package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".py", "python"},
		{".PY", "python"},
		{".c", "c"},
		{".cpp", "c"},
		{".h", "c"},
		{".txt", ""},
		{"", ""},
		{".go", ""},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			require.Equal(t, tt.want, ForExtension(tt.ext).Name())
		})
	}
}

func TestForPath(t *testing.T) {
	require.Equal(t, "python", ForPath("/home/me/project/main.py").Name())
	require.Equal(t, "c", ForPath("include/util.h").Name())
	require.True(t, ForPath("notes/note_2025-01-01_10-00-00.txt").IsEmpty())
	require.True(t, ForPath("Makefile").IsEmpty())
}

func TestSelect_DisabledYieldsEmpty(t *testing.T) {
	require.True(t, Select("main.py", false).IsEmpty())
	require.Equal(t, "python", Select("main.py", true).Name())
}

func TestTables_RuleLayout(t *testing.T) {
	// keywords first, then strings, then comments
	py := Python.Rules()
	require.Len(t, py, len(pythonKeywords)+3)
	require.Equal(t, StyleString, py[len(py)-3].Style)
	require.Equal(t, StyleString, py[len(py)-2].Style)
	require.Equal(t, StyleComment, py[len(py)-1].Style)

	c := C.Rules()
	require.Len(t, c, len(cKeywords)+4)
	require.Equal(t, StyleComment, c[len(c)-2].Style)
	require.Equal(t, StyleComment, c[len(c)-1].Style)

	require.Equal(t, 0, Empty.Len())
}

func TestTable_RulesReturnsCopy(t *testing.T) {
	rules := Python.Rules()
	rules[0] = Rule{}

	require.NotNil(t, Python.Rules()[0].Pattern)
}

func TestTables_EveryPatternCompiledAndNonEmpty(t *testing.T) {
	for _, table := range []Table{Python, C} {
		for i, r := range table.Rules() {
			require.NotNil(t, r.Pattern, "%s rule %d", table.Name(), i)
			require.NotEqual(t, StyleNone, r.Style, "%s rule %d", table.Name(), i)
			require.False(t, r.Pattern.MatchString(""), "%s rule %d matches empty text", table.Name(), i)
		}
	}
}

func TestStyleString(t *testing.T) {
	require.Equal(t, "keyword", StyleKeyword.String())
	require.Equal(t, "string", StyleString.String())
	require.Equal(t, "comment", StyleComment.String())
	require.Equal(t, "none", StyleNone.String())
	require.Equal(t, "unknown", Style(99).String())
}
