package shell

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zjrosen/quill/internal/log"
)

// DefaultHistoryLimit caps the number of commands kept in memory.
const DefaultHistoryLimit = 500

// History records submitted command lines, optionally appending each one
// to a plain-text file.
type History struct {
	mu      sync.Mutex
	entries []string
	path    string
	limit   int
}

// NewHistory returns an in-memory history.
func NewHistory() *History {
	return &History{limit: DefaultHistoryLimit}
}

// LoadHistory reads path, one command per line, and appends future
// commands to it. A missing file is not an error.
func LoadHistory(path string) (*History, error) {
	h := &History{path: path, limit: DefaultHistoryLimit}

	f, err := os.Open(path) //nolint:gosec // G304: user-configured history path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return h, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			h.entries = append(h.entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	h.trim()
	return h, nil
}

// Add records a command line. Blank lines are ignored.
func (h *History) Add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	h.mu.Lock()
	h.entries = append(h.entries, line)
	h.trim()
	path := h.path
	h.mu.Unlock()

	if path == "" {
		return
	}
	if err := appendLine(path, line); err != nil {
		log.ErrorErr(log.CatShell, "history append failed", err, "path", path)
	}
}

// Entries returns a copy of the recorded commands, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded commands.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) trim() {
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // G304: user-configured history path
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
