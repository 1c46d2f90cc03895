// Package log provides structured, category-tagged logging for quill.
// Entries are written as single key=value lines to a log file. Logging
// stays silent until InitWithTeaLog is called, which cmd does only
// under --debug or QUILL_DEBUG.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name (case-insensitive) to a Level.
// Unknown names fall back to LevelDebug.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelDebug
	}
}

// Category groups related log messages.
type Category string

const (
	CatConfig   Category = "config"   // Configuration loading/saving
	CatUI       Category = "ui"       // Bubble Tea model updates
	CatSyntax   Category = "syntax"   // Rule tables and highlighting
	CatEdit     Category = "edit"     // Smart edit decisions
	CatShell    Category = "shell"    // Shell session and child processes
	CatDocument Category = "document" // File load/save
	CatWatcher  Category = "watcher"  // File watcher events
	CatTrace    Category = "trace"    // Tracing provider lifecycle
	CatCache    Category = "cache"    // In-memory caches
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	minLevel Level
}

var defaultLogger *Logger

// InitWithTeaLog uses tea.LogToFile for initialization so Bubble Tea's own
// debug output lands in the same file. level drops entries below it.
// Returns a cleanup function to close the log file.
func InitWithTeaLog(path, prefix string, level Level) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	setWriter(f, level)
	return func() { _ = f.Close() }, nil
}

func setWriter(w io.Writer, level Level) {
	defaultLogger = &Logger{writer: w, minLevel: level}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

// format renders one entry:
// 2025-12-06T10:45:00 [ERROR] [shell] message key=value key2=value2
func format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	// Odd field count: orphan key with no value
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	return b.String()
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.minLevel {
		return
	}

	entry := format(time.Now(), level, cat, msg, fields...)

	if l.writer != nil {
		_, _ = l.writer.Write([]byte(entry))
	}
}
