// Package shell runs the editor's embedded terminal: a stateful session
// that tracks a working directory, handles cd itself and streams the output
// of other commands from a child interpreter.
//
// All session state is owned by the host event loop. Child process
// goroutines only post Events; the host applies them with Dispatch, usually
// by feeding Listen into its Bubble Tea loop.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/quill/internal/log"
)

// ErrBusy is returned by Submit while a previous command is still running.
var ErrBusy = errors.New("shell busy")

// DefaultInterpreter runs every non-cd command as `bash -c <line>`.
const DefaultInterpreter = "bash"

const cdPrefix = "cd "

var lookupUser = user.Lookup

// eventBuffer bounds how far process goroutines may run ahead of the host.
const eventBuffer = 256

// Sink receives transcript lines and directory changes.
type Sink interface {
	AppendLine(text string)
	SetDirectory(dir string)
}

// Option configures a Session.
type Option func(*Session)

// WithInterpreter sets the interpreter invoked with -c.
func WithInterpreter(path string) Option {
	return func(s *Session) {
		if path != "" {
			s.interpreter = path
		}
	}
}

// WithCommandFactory substitutes exec.CommandContext, mainly for tests.
func WithCommandFactory(fn CommandFactoryFunc) Option {
	return func(s *Session) { s.commandFactory = fn }
}

// WithTracer records a span per spawned command.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithHistory records submitted commands in h.
func WithHistory(h *History) Option {
	return func(s *Session) {
		if h != nil {
			s.history = h
		}
	}
}

// WithChdir replaces os.Chdir for cd handling.
func WithChdir(fn func(string) error) Option {
	return func(s *Session) {
		if fn != nil {
			s.chdir = fn
		}
	}
}

// WithDir sets the starting directory instead of the process cwd.
func WithDir(dir string) Option {
	return func(s *Session) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// Session is one embedded terminal. It is not safe for concurrent use; call
// Submit and Dispatch from a single goroutine.
type Session struct {
	id             string
	sink           Sink
	interpreter    string
	dir            string
	chdir          func(string) error
	commandFactory CommandFactoryFunc
	tracer         trace.Tracer
	history        *History

	current *Process
	last    *Process
	spans   map[int]trace.Span
	nextID  int

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a session writing to sink. The tracked directory starts at
// the process working directory.
func New(sink Sink, opts ...Option) *Session {
	s := &Session{
		id:          uuid.New().String(),
		sink:        sink,
		interpreter: DefaultInterpreter,
		chdir:       os.Chdir,
		tracer:      noop.NewTracerProvider().Tracer("noop"),
		history:     NewHistory(),
		spans:       make(map[int]trace.Span),
		events:      make(chan Event, eventBuffer),
		done:        make(chan struct{}),
	}
	if wd, err := os.Getwd(); err == nil {
		s.dir = wd
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Dir returns the tracked working directory.
func (s *Session) Dir() string { return s.dir }

// Busy reports whether a command is still running.
func (s *Session) Busy() bool { return s.current != nil }

// Running returns the command line of the live process, or "".
func (s *Session) Running() string {
	if s.current == nil {
		return ""
	}
	return s.current.Command()
}

// LastStatus reports the status and exit code of the most recently spawned
// command. Before any spawn it is StatusPending with code -1.
func (s *Session) LastStatus() (ProcessStatus, int) {
	if s.last == nil {
		return StatusPending, -1
	}
	return s.last.Status(), s.last.ExitCode()
}

// History returns the submitted command lines, oldest first.
func (s *Session) History() []string { return s.history.Entries() }

// Submit echoes commandLine and runs it. cd is handled in-process; anything
// else is spawned asynchronously and Submit returns without waiting.
func (s *Session) Submit(commandLine string) error {
	s.sink.AppendLine("$ " + commandLine)
	s.history.Add(commandLine)

	if strings.HasPrefix(commandLine, cdPrefix) {
		return s.changeDirectory(strings.TrimSpace(commandLine[len(cdPrefix):]))
	}

	if s.current != nil {
		s.sink.AppendLine(fmt.Sprintf("shell busy: %s is still running", s.current.Command()))
		log.Warn(log.CatShell, "command rejected", "command", commandLine, "running", s.current.Command())
		return ErrBusy
	}

	return s.spawn(commandLine)
}

func (s *Session) changeDirectory(target string) error {
	target = expandHome(target)
	// Relative targets resolve against the tracked directory, which may
	// differ from the process cwd when the session started elsewhere.
	if target != "" && !filepath.IsAbs(target) {
		target = filepath.Join(s.dir, target)
	}
	if err := s.chdir(target); err != nil {
		s.sink.AppendLine(fmt.Sprintf("Error changing directory: %v", err))
		log.ErrorErr(log.CatShell, "cd failed", err, "target", target)
		return fmt.Errorf("changing directory: %w", err)
	}

	s.dir = filepath.Clean(target)
	s.sink.SetDirectory(s.dir)
	log.Debug(log.CatShell, "directory changed", "dir", s.dir)
	return nil
}

// expandHome replaces a leading ~ with the user's home directory and
// ~name with name's home directory. Unknown users are left unexpanded.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	name, rest, _ := strings.Cut(path[1:], "/")

	var home string
	if name == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		home = dir
	} else {
		u, err := lookupUser(name)
		if err != nil {
			return path
		}
		home = u.HomeDir
	}
	return filepath.Join(home, rest)
}

func (s *Session) spawn(commandLine string) error {
	s.nextID++
	id := s.nextID

	_, span := s.tracer.Start(context.Background(), "shell.command",
		trace.WithAttributes(
			attribute.String("shell.session", s.id),
			attribute.String("shell.command", commandLine),
			attribute.String("shell.dir", s.dir),
		))

	proc, err := NewSpawnBuilder(context.Background()).
		WithID(id).
		WithCommandLine(commandLine).
		WithExecutable(s.interpreter, "-c", commandLine).
		WithWorkDir(s.dir).
		WithCommandFactory(s.commandFactory).
		WithEvents(s.events, s.done).
		Start()
	if err != nil {
		s.current = nil
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		s.sink.AppendLine(fmt.Sprintf("Error running command: %v", err))
		log.ErrorErr(log.CatShell, "spawn failed", err, "command", commandLine)
		return err
	}

	s.current = proc
	s.last = proc
	s.spans[id] = span
	log.Info(log.CatShell, "command started", "id", id, "pid", proc.PID(), "command", commandLine)
	return nil
}

// Dispatch applies one event to the session. Call it on the host loop.
func (s *Session) Dispatch(ev Event) {
	switch ev.Kind {
	case EventOutput:
		s.sink.AppendLine(ev.Line)
	case EventExit:
		if span, ok := s.spans[ev.ProcessID]; ok {
			span.SetAttributes(attribute.Int("shell.exit_code", ev.ExitCode))
			if ev.Err != nil {
				span.RecordError(ev.Err)
				span.SetStatus(codes.Error, ev.Err.Error())
			} else if ev.ExitCode != 0 {
				span.SetStatus(codes.Error, fmt.Sprintf("exit code %d", ev.ExitCode))
			}
			span.End()
			delete(s.spans, ev.ProcessID)
		}
		if s.current != nil && s.current.ID() == ev.ProcessID {
			s.current = nil
		}
		if ev.Err != nil {
			s.sink.AppendLine(fmt.Sprintf("Error running command: %v", ev.Err))
		}
		log.Debug(log.CatShell, "command finished", "id", ev.ProcessID, "exitCode", ev.ExitCode)
	}
}

// Events exposes the raw event channel for hosts without a Bubble Tea
// loop. Every received event must be passed to Dispatch.
func (s *Session) Events() <-chan Event { return s.events }

// Listen returns a command that waits for the next process event. Re-issue
// it after each EventMsg. It yields nil once the session is closed.
func (s *Session) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.done:
			return nil
		default:
		}
		select {
		case ev := <-s.events:
			return EventMsg{SessionID: s.id, Event: ev}
		case <-s.done:
			return nil
		}
	}
}

// Close detaches from any running process without terminating it. The
// child keeps running with its pipes drained and discarded.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		for id, span := range s.spans {
			span.SetStatus(codes.Unset, "detached")
			span.End()
			delete(s.spans, id)
		}
		if s.current != nil {
			log.Warn(log.CatShell, "detaching from running process", "pid", s.current.PID(), "command", s.current.Command())
		}
		s.current = nil
	})
}
