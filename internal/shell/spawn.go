package shell

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/zjrosen/quill/internal/log"
)

// CommandFactoryFunc creates an exec.Cmd. Tests use it to substitute the
// interpreter.
type CommandFactoryFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// SpawnBuilder assembles and starts one child process.
type SpawnBuilder struct {
	ctx            context.Context
	id             int
	command        string
	execPath       string
	args           []string
	workDir        string
	commandFactory CommandFactoryFunc
	events         chan<- Event
	done           <-chan struct{}
}

// NewSpawnBuilder creates a builder for the given context.
func NewSpawnBuilder(ctx context.Context) *SpawnBuilder {
	return &SpawnBuilder{ctx: ctx}
}

// WithID sets the session-local process id carried on every event.
func (b *SpawnBuilder) WithID(id int) *SpawnBuilder {
	b.id = id
	return b
}

// WithCommandLine sets the command line as the user typed it.
func (b *SpawnBuilder) WithCommandLine(line string) *SpawnBuilder {
	b.command = line
	return b
}

// WithExecutable sets the executable path and arguments.
func (b *SpawnBuilder) WithExecutable(path string, args ...string) *SpawnBuilder {
	b.execPath = path
	b.args = args
	return b
}

// WithWorkDir sets the working directory for the process.
func (b *SpawnBuilder) WithWorkDir(dir string) *SpawnBuilder {
	b.workDir = dir
	return b
}

// WithCommandFactory sets a custom command factory.
func (b *SpawnBuilder) WithCommandFactory(fn CommandFactoryFunc) *SpawnBuilder {
	b.commandFactory = fn
	return b
}

// WithEvents sets where events are posted and the channel whose closing
// tells the goroutines to stop posting.
func (b *SpawnBuilder) WithEvents(events chan<- Event, done <-chan struct{}) *SpawnBuilder {
	b.events = events
	b.done = done
	return b
}

// Start creates the pipes, starts the process and its goroutines.
//
// stdout and stderr are os.Pipe pairs rather than cmd.StdoutPipe so that
// reaping the process never closes a pipe a reader is still draining.
func (b *SpawnBuilder) Start() (*Process, error) {
	if b.execPath == "" {
		return nil, fmt.Errorf("spawn: executable path is required")
	}
	if b.events == nil {
		return nil, fmt.Errorf("spawn: events channel is required")
	}

	var cmd *exec.Cmd
	if b.commandFactory != nil {
		cmd = b.commandFactory(b.ctx, b.execPath, b.args...)
	} else {
		// #nosec G204 -- running the user's command is the point
		cmd = exec.CommandContext(b.ctx, b.execPath, b.args...)
	}
	cmd.Dir = b.workDir

	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("spawn: creating stdout pipe: %w", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		_ = outR.Close()
		_ = outW.Close()
		return nil, fmt.Errorf("spawn: creating stderr pipe: %w", err)
	}
	cmd.Stdout = outW
	cmd.Stderr = errW

	log.Debug(log.CatShell, "spawning process",
		"id", b.id, "execPath", b.execPath, "workDir", b.workDir)

	if err := cmd.Start(); err != nil {
		for _, f := range []*os.File{outR, outW, errR, errW} {
			_ = f.Close()
		}
		return nil, fmt.Errorf("spawn: starting %s: %w", b.execPath, err)
	}

	// The child holds its own copies of the write ends.
	_ = outW.Close()
	_ = errW.Close()

	p := newProcess(b.id, b.command, cmd, outR, errR, b.events, b.done)
	p.startGoroutines()
	return p, nil
}
