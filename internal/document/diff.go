package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffSummary counts lines inserted and deleted going from one text to
// another.
type DiffSummary struct {
	Inserted int
	Deleted  int
}

// Changed reports whether any line differs.
func (s DiffSummary) Changed() bool {
	return s.Inserted > 0 || s.Deleted > 0
}

func (s DiffSummary) String() string {
	return fmt.Sprintf("+%d -%d", s.Inserted, s.Deleted)
}

// LineDiff compares from and to line by line.
func LineDiff(from, to string) DiffSummary {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var s DiffSummary
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			s.Deleted += countLines(d.Text)
		}
	}
	return s
}

// DiskDiff compares the buffer text against what is on disk at path,
// reporting changes needed to go from the buffer to the file.
func DiskDiff(path, text string) (DiffSummary, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: the open document
	if err != nil {
		return DiffSummary{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return LineDiff(text, string(data)), nil
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
