// Package document loads and saves the plain UTF-8 text files the editor
// works on and names new notes.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/syntax"
)

var (
	// ErrNoPath is returned when saving a document that was never named.
	ErrNoPath = errors.New("document has no path")
	// ErrNotUTF8 is returned when a file is not valid UTF-8 text.
	ErrNotUTF8 = errors.New("file is not valid UTF-8")
)

// UntitledName is shown for documents without a path.
const UntitledName = "Untitled"

const noteTimeLayout = "2006-01-02_15-04-05"

// Document is a file's path and its text as last loaded or saved.
type Document struct {
	Path string
	Text string
}

// Load reads path into a Document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-selected file
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("loading %s: %w", path, ErrNotUTF8)
	}
	log.Debug(log.CatDocument, "loaded", "path", path, "bytes", len(data))
	return &Document{Path: path, Text: string(data)}, nil
}

// Save writes text to the document's path and records it as the saved text.
func (d *Document) Save(text string) error {
	if d.Path == "" {
		return ErrNoPath
	}
	if err := Save(d.Path, text); err != nil {
		return err
	}
	d.Text = text
	return nil
}

// SaveAs names the document and saves it.
func (d *Document) SaveAs(path, text string) error {
	if path == "" {
		return ErrNoPath
	}
	d.Path = path
	return d.Save(text)
}

// Title is the file name, or "Untitled".
func (d *Document) Title() string {
	if d == nil || d.Path == "" {
		return UntitledName
	}
	return filepath.Base(d.Path)
}

// Language returns the rule table for the document's extension.
func (d *Document) Language() syntax.Table {
	if d == nil {
		return syntax.Empty
	}
	return Language(d.Path)
}

// Language maps a path to its highlighting table.
func Language(path string) syntax.Table {
	return syntax.ForPath(path)
}

// Save writes text to path atomically: a temp file in the same directory
// is written and renamed over the target. Parent directories are created.
func Save(path, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}

	log.Info(log.CatDocument, "saved", "path", path, "bytes", len(text))
	return nil
}

// DefaultNoteName names a new note after its creation time.
func DefaultNoteName(t time.Time) string {
	return "note_" + t.Format(noteTimeLayout) + ".txt"
}

// DefaultNotesDir is where unnamed notes are saved under root.
func DefaultNotesDir(root string) string {
	return filepath.Join(root, "data", "notes")
}

// NotePath joins dir and the default note name for t.
func NotePath(dir string, t time.Time) string {
	return filepath.Join(dir, DefaultNoteName(t))
}

// Note is a saved note found in a notes directory.
type Note struct {
	Path    string
	Name    string
	ModTime time.Time
}

// ListNotes returns the .txt files directly inside dir, most recently
// modified first. A missing dir has no notes.
func ListNotes(dir string) ([]Note, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing notes in %s: %w", dir, err)
	}

	var notes []Note
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		notes = append(notes, Note{
			Path:    filepath.Join(dir, e.Name()),
			Name:    e.Name(),
			ModTime: info.ModTime(),
		})
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].ModTime.Equal(notes[j].ModTime) {
			return notes[i].Name > notes[j].Name
		}
		return notes[i].ModTime.After(notes[j].ModTime)
	})
	return notes, nil
}
