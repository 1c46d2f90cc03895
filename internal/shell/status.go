package shell

// ProcessStatus represents the current state of a spawned command.
type ProcessStatus int

const (
	// StatusPending indicates the process has not yet started.
	StatusPending ProcessStatus = iota
	// StatusRunning indicates the process is actively running.
	StatusRunning
	// StatusExited indicates the process exited with status zero.
	StatusExited
	// StatusFailed indicates a non-zero exit or a wait error.
	StatusFailed
)

// String returns a human-readable string representation of the status.
func (s ProcessStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusExited:
		return "exited"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal returns true once the process has finished either way.
func (s ProcessStatus) IsTerminal() bool {
	return s == StatusExited || s == StatusFailed
}
