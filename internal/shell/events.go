package shell

// EventKind distinguishes process events.
type EventKind int

const (
	// EventOutput carries one decoded line from stdout or stderr.
	EventOutput EventKind = iota
	// EventExit reports that the process finished.
	EventExit
)

func (k EventKind) String() string {
	switch k {
	case EventOutput:
		return "output"
	case EventExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Stream identifies which pipe an output line came from.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Event is posted by process goroutines and applied to the session by
// Dispatch on the host loop.
//
// Output and exit events of one process may arrive in either order: the
// exit event is posted when the process is reaped, independently of the
// readers draining its pipes.
type Event struct {
	Kind      EventKind
	ProcessID int
	Stream    Stream
	Line      string
	ExitCode  int
	Err       error
}

// EventMsg wraps an Event for delivery through Bubble Tea.
type EventMsg struct {
	SessionID string
	Event     Event
}
