package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rickchristie/backtrack"
	"github.com/rickchristie/backtrack/snapshot"
)

// keyedStore is a backtrack.Store that can enumerate its keys.
type keyedStore interface {
	backtrack.Store
	Keys(ctx context.Context) ([]string, error)
}

var errNoStack = errors.New("no stack loaded (use: load <key>)")

const helpText = `Commands:
  list              list stored stack keys
  load <key>        load a stack
  show <i>          print snapshot i of the loaded stack (0 is the head)
  diff <i> <j>      diff snapshot i against snapshot j
  delete <key>      delete a stored stack
  help              show this help
  quit              exit
`

// inspector executes REPL commands against a store.
type inspector struct {
	store   keyedStore
	manager *snapshot.Manager
	key     string
	stack   snapshot.Stack
}

func newInspector(store keyedStore) *inspector {
	return &inspector{
		store:   store,
		manager: snapshot.NewManager(snapshot.Config{Store: store}),
	}
}

// exec runs one command line, writing output to w. It reports quit=true
// when the session should end.
func (in *inspector) exec(ctx context.Context, w io.Writer, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		_, err = io.WriteString(w, helpText)
	case "list", "ls":
		err = in.list(ctx, w)
	case "load":
		if len(args) != 1 {
			return false, errors.New("usage: load <key>")
		}
		err = in.load(ctx, w, args[0])
	case "show":
		if len(args) != 1 {
			return false, errors.New("usage: show <i>")
		}
		err = in.show(w, args[0])
	case "diff":
		if len(args) != 2 {
			return false, errors.New("usage: diff <i> <j>")
		}
		err = in.diff(w, args[0], args[1])
	case "delete", "rm":
		if len(args) != 1 {
			return false, errors.New("usage: delete <key>")
		}
		err = in.delete(ctx, w, args[0])
	default:
		err = fmt.Errorf("unknown command %q (try: help)", cmd)
	}
	return false, err
}

func (in *inspector) list(ctx context.Context, w io.Writer) error {
	keys, err := in.store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	if len(keys) == 0 {
		fmt.Fprintln(w, "(no stacks)")
		return nil
	}
	for _, k := range keys {
		fmt.Fprintln(w, k)
	}
	return nil
}

func (in *inspector) load(ctx context.Context, w io.Writer, key string) error {
	stack, err := in.manager.LoadStack(ctx, key)
	if err != nil {
		return err
	}
	in.key, in.stack = key, stack

	fmt.Fprintf(w, "%s: %d snapshot(s)\n", key, stack.Size())
	for i, snap := range stack {
		ts := time.UnixMilli(snap.TimestampMS).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "  %d  %s  %s  level=%v  keys=%v\n",
			i, snap.ID, ts, snap.Metadata["level"], sortedKeys(snap.Data))
	}
	return nil
}

func (in *inspector) show(w io.Writer, arg string) error {
	snap, err := in.snapshotAt(arg)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func (in *inspector) diff(w io.Writer, a, b string) error {
	s1, err := in.snapshotAt(a)
	if err != nil {
		return err
	}
	s2, err := in.snapshotAt(b)
	if err != nil {
		return err
	}

	d := snapshot.CompareSnapshots(s1, s2)
	if d.IsEmpty() {
		fmt.Fprintln(w, "(no differences)")
		return nil
	}
	fmt.Fprintf(w, "added=%v removed=%v changed=%d\n", d.Added, d.Removed, len(d.Changed))

	text, err := snapshot.RenderDiff(s1, s2)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

func (in *inspector) delete(ctx context.Context, w io.Writer, key string) error {
	if err := in.manager.DeleteStack(ctx, key); err != nil {
		return err
	}
	if key == in.key {
		in.key, in.stack = "", nil
	}
	fmt.Fprintf(w, "deleted %s\n", key)
	return nil
}

func (in *inspector) snapshotAt(arg string) (snapshot.Snapshot, error) {
	if in.stack == nil {
		return snapshot.Snapshot{}, errNoStack
	}
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= in.stack.Size() {
		return snapshot.Snapshot{}, fmt.Errorf("index %q out of range [0, %d)", arg, in.stack.Size())
	}
	return in.stack[i], nil
}

func sortedKeys(s backtrack.State) []string {
	keys := s.Keys()
	slices.Sort(keys)
	return keys
}
