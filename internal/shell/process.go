package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/zjrosen/quill/internal/log"
)

// Process is one running command. Its goroutines only read pipes, reap the
// child and post events; they never touch session state.
type Process struct {
	id      int
	command string
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	stderr  io.ReadCloser
	events  chan<- Event
	done    <-chan struct{}

	mu       sync.RWMutex
	status   ProcessStatus
	exitCode int
	wg       sync.WaitGroup
}

func newProcess(id int, command string, cmd *exec.Cmd, stdout, stderr io.ReadCloser, events chan<- Event, done <-chan struct{}) *Process {
	return &Process{
		id:       id,
		command:  command,
		cmd:      cmd,
		stdout:   stdout,
		stderr:   stderr,
		events:   events,
		done:     done,
		status:   StatusRunning,
		exitCode: -1,
	}
}

// ID returns the session-local process id.
func (p *Process) ID() int { return p.id }

// Command returns the command line the process runs.
func (p *Process) Command() string { return p.command }

// Status returns the current process status. Thread-safe.
func (p *Process) Status() ProcessStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// ExitCode returns the exit code, -1 while running or when unknown.
func (p *Process) ExitCode() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitCode
}

// PID returns the OS process ID, or -1 if not started.
func (p *Process) PID() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

// Wait blocks until all process goroutines complete.
func (p *Process) Wait() {
	p.wg.Wait()
}

func (p *Process) startGoroutines() {
	p.wg.Add(3)
	go p.readStream(p.stdout, Stdout)
	go p.readStream(p.stderr, Stderr)
	go p.waitForCompletion()
}

// maxLineBytes caps one output event. Longer lines arrive as several
// consecutive events.
const maxLineBytes = 1024 * 1024

// readStream posts one event per line. Bytes that are not valid UTF-8 are
// replaced with U+FFFD.
func (p *Process) readStream(r io.ReadCloser, stream Stream) {
	defer p.wg.Done()
	defer func() { _ = r.Close() }()

	reader := bufio.NewReaderSize(transform.NewReader(r, unicode.UTF8.NewDecoder()), maxLineBytes)

	// After the session closes the pipe keeps being drained so the child
	// never blocks or dies on a full or broken pipe.
	posting := true
	var carry []byte
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err == nil {
			line := append(carry, chunk...)
			carry = nil
			if isPrefix {
				// Never split a rune across two events.
				cut := incompleteRuneStart(line)
				carry = append([]byte(nil), line[cut:]...)
				line = line[:cut]
			}
			if posting {
				posting = p.post(Event{Kind: EventOutput, ProcessID: p.id, Stream: stream, Line: string(line)})
			}
			continue
		}

		if len(carry) > 0 && posting {
			p.post(Event{Kind: EventOutput, ProcessID: p.id, Stream: stream, Line: string(carry)})
		}
		if !errors.Is(err, io.EOF) {
			log.Debug(log.CatShell, "read error", "id", p.id, "stream", stream, "error", err)
			if posting {
				p.post(Event{
					Kind:      EventOutput,
					ProcessID: p.id,
					Stream:    stream,
					Line:      fmt.Sprintf("Error reading %s: %v", stream, err),
				})
			}
			_, _ = io.Copy(io.Discard, r)
		}
		return
	}
}

// incompleteRuneStart returns where a trailing partial UTF-8 sequence in b
// begins, or len(b) when b ends on a rune boundary.
func incompleteRuneStart(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return i
			}
			break
		}
	}
	return len(b)
}

// waitForCompletion reaps the child and posts the exit event.
func (p *Process) waitForCompletion() {
	defer p.wg.Done()

	err := p.cmd.Wait()

	code := -1
	if p.cmd.ProcessState != nil {
		code = p.cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// A non-zero exit is reported through the code, not as an error.
		err = nil
	}

	p.mu.Lock()
	p.exitCode = code
	if code == 0 && err == nil {
		p.status = StatusExited
	} else {
		p.status = StatusFailed
	}
	p.mu.Unlock()

	log.Debug(log.CatShell, "process exited", "id", p.id, "exitCode", code, "error", err)
	p.post(Event{Kind: EventExit, ProcessID: p.id, ExitCode: code, Err: err})
}

// post delivers ev unless the session has been closed.
func (p *Process) post(ev Event) bool {
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.events <- ev:
		return true
	case <-p.done:
		return false
	}
}
