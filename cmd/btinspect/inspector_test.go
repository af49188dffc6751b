package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickchristie/backtrack"
	"github.com/rickchristie/backtrack/snapshot"
	"github.com/rickchristie/backtrack/store/sqlite"
)

func newTestInspector(t *testing.T) *inspector {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	n := 0
	manager := snapshot.NewManager(snapshot.Config{
		Store:        store,
		TimeProvider: backtrack.NewMockTimeProvider(time.Date(2025, 2, 15, 14, 30, 0, 0, time.UTC)),
		NewID: func() string {
			n++
			return fmt.Sprintf("snap-%d", n)
		},
	})
	stack := snapshot.NewStack().
		Push(manager.CaptureSnapshot(backtrack.State{"temperature": 0.5, "goal": "sum"}, map[string]any{"level": 0})).
		Push(manager.CaptureSnapshot(backtrack.State{"temperature": 0.6, "strategy": "creative"}, map[string]any{"level": 1}))
	require.NoError(t, manager.PersistStack(context.Background(), stack, "session-a"))

	return newInspector(store)
}

func execLine(t *testing.T, in *inspector, line string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	quit, err := in.exec(context.Background(), &buf, line)
	assert.False(t, quit)
	return buf.String(), err
}

func TestInspector_ListLoadShow(t *testing.T) {
	in := newTestInspector(t)

	out, err := execLine(t, in, "list")
	require.NoError(t, err)
	assert.Equal(t, "session-a\n", out)

	out, err = execLine(t, in, "load session-a")
	require.NoError(t, err)
	assert.Contains(t, out, "session-a: 2 snapshot(s)")
	assert.Contains(t, out, "0  snap-2  2025-02-15T14:30:00Z  level=1  keys=[strategy temperature]")
	assert.Contains(t, out, "1  snap-1")

	out, err = execLine(t, in, "show 1")
	require.NoError(t, err)
	assert.Contains(t, out, "id: snap-1")
	assert.Contains(t, out, "goal: sum")
}

func TestInspector_Diff(t *testing.T) {
	in := newTestInspector(t)
	_, err := execLine(t, in, "load session-a")
	require.NoError(t, err)

	out, err := execLine(t, in, "diff 1 0")
	require.NoError(t, err)
	assert.Contains(t, out, "added=[strategy] removed=[goal] changed=1")
	assert.Contains(t, out, "-goal: sum")
	assert.Contains(t, out, "+strategy: creative")

	out, err = execLine(t, in, "diff 0 0")
	require.NoError(t, err)
	assert.Equal(t, "(no differences)\n", out)
}

func TestInspector_Delete(t *testing.T) {
	in := newTestInspector(t)
	_, err := execLine(t, in, "load session-a")
	require.NoError(t, err)

	out, err := execLine(t, in, "delete session-a")
	require.NoError(t, err)
	assert.Equal(t, "deleted session-a\n", out)

	_, err = execLine(t, in, "show 0")
	assert.ErrorIs(t, err, errNoStack)

	out, err = execLine(t, in, "list")
	require.NoError(t, err)
	assert.Equal(t, "(no stacks)\n", out)

	_, err = execLine(t, in, "load session-a")
	assert.ErrorIs(t, err, backtrack.ErrNotFound)
}

func TestInspector_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown command", input: "frobnicate"},
		{name: "load without key", input: "load"},
		{name: "show without stack", input: "show 0"},
		{name: "diff arity", input: "diff 0"},
		{name: "delete arity", input: "delete a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInspector(t)
			_, err := execLine(t, in, tt.input)
			assert.Error(t, err)
		})
	}

	t.Run("index out of range", func(t *testing.T) {
		in := newTestInspector(t)
		_, err := execLine(t, in, "load session-a")
		require.NoError(t, err)

		for _, line := range []string{"show 2", "show -1", "show x", "diff 0 9"} {
			_, err := execLine(t, in, line)
			assert.Error(t, err, line)
		}
	})
}

func TestInspector_QuitAndBlank(t *testing.T) {
	in := newTestInspector(t)

	quit, err := in.exec(context.Background(), io.Discard, "")
	assert.NoError(t, err)
	assert.False(t, quit)

	for _, line := range []string{"quit", "exit", "q"} {
		quit, err := in.exec(context.Background(), io.Discard, line)
		assert.NoError(t, err)
		assert.True(t, quit, line)
	}
}

type scriptedReader struct {
	lines []string
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestRepl(t *testing.T) {
	in := newTestInspector(t)
	var buf bytes.Buffer

	err := repl(context.Background(), &scriptedReader{lines: []string{"  list  ", "bogus", "quit", "list"}}, &buf, in)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "session-a")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "Goodbye!")
}

func TestRepl_EOF(t *testing.T) {
	var buf bytes.Buffer
	err := repl(context.Background(), &scriptedReader{}, &buf, newTestInspector(t))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Goodbye!")
}
