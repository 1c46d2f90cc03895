package shell

import (
	"context"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestSpawnBuilder_Validation(t *testing.T) {
	events := make(chan Event, 1)
	done := make(chan struct{})

	_, err := NewSpawnBuilder(context.Background()).WithEvents(events, done).Start()
	require.ErrorContains(t, err, "executable path is required")

	_, err = NewSpawnBuilder(context.Background()).WithExecutable("bash", "-c", "true").Start()
	require.ErrorContains(t, err, "events channel is required")
}

func TestSpawnBuilder_ProcessLifecycle(t *testing.T) {
	requireBash(t)
	events := make(chan Event, 16)
	done := make(chan struct{})

	p, err := NewSpawnBuilder(context.Background()).
		WithID(7).
		WithCommandLine("echo out; exit 2").
		WithExecutable("bash", "-c", "echo out; exit 2").
		WithEvents(events, done).
		Start()
	require.NoError(t, err)
	require.Equal(t, 7, p.ID())
	require.Equal(t, "echo out; exit 2", p.Command())
	require.Positive(t, p.PID())

	p.Wait()
	close(events)

	var got []Event
	for ev := range events {
		got = append(got, ev)
	}
	require.Contains(t, got, Event{Kind: EventOutput, ProcessID: 7, Stream: Stdout, Line: "out"})
	require.Contains(t, got, Event{Kind: EventExit, ProcessID: 7, ExitCode: 2})
	require.Equal(t, StatusFailed, p.Status())
	require.Equal(t, 2, p.ExitCode())
}

func TestProcess_CleanExit(t *testing.T) {
	requireBash(t)
	events := make(chan Event, 16)
	done := make(chan struct{})

	p, err := NewSpawnBuilder(context.Background()).
		WithExecutable("bash", "-c", "true").
		WithEvents(events, done).
		Start()
	require.NoError(t, err)

	p.Wait()
	require.Equal(t, StatusExited, p.Status())
	require.Equal(t, 0, p.ExitCode())
}

func readAll(t *testing.T, input string) []string {
	t.Helper()
	events := make(chan Event, 64)
	p := &Process{id: 1, events: events, done: make(chan struct{})}
	p.wg.Add(1)
	p.readStream(io.NopCloser(strings.NewReader(input)), Stdout)
	close(events)

	var lines []string
	for ev := range events {
		lines = append(lines, ev.Line)
	}
	return lines
}

func TestReadStream_Lines(t *testing.T) {
	require.Equal(t, []string{"one", "", "two"}, readAll(t, "one\n\ntwo"))
	require.Equal(t, []string{"crlf"}, readAll(t, "crlf\r\n"))
	require.Empty(t, readAll(t, ""))
}

func TestReadStream_SplitsOverlongLineOnRuneBoundaries(t *testing.T) {
	// The odd prefix puts the buffer boundary inside a two-byte rune.
	long := "a" + strings.Repeat("é", maxLineBytes)
	lines := readAll(t, long+"\nafter\n")

	require.Greater(t, len(lines), 2)
	require.Equal(t, "after", lines[len(lines)-1])
	joined := strings.Join(lines[:len(lines)-1], "")
	require.Equal(t, long, joined)
	for _, line := range lines[:len(lines)-1] {
		require.True(t, utf8.ValidString(line), "chunk of %d bytes splits a rune", len(line))
	}
}

func TestIncompleteRuneStart(t *testing.T) {
	require.Equal(t, 3, incompleteRuneStart([]byte("abc")))
	require.Equal(t, 2, incompleteRuneStart([]byte("ab\xc3")))
	require.Equal(t, 4, incompleteRuneStart([]byte("ab\xc3\xa9")))
	require.Equal(t, 1, incompleteRuneStart([]byte("a\xe2\x82")))
	require.Zero(t, incompleteRuneStart(nil))
}
