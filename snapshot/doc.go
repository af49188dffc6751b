// Package snapshot captures, stacks, diffs, and persists search states.
//
// # Snapshots
//
// A [Snapshot] is an immutable, timestamped, uniquely identified copy of a
// backtrack.State plus caller metadata. Create them through a [Manager]:
//
//	mgr := snapshot.NewManager(snapshot.Config{Store: memory.New()})
//	snap := mgr.CaptureSnapshot(state, map[string]any{"depth": 1})
//
// # Stacks
//
// A [Stack] is a LIFO of snapshots. Push returns a new stack; the original is
// never modified, so a stack value can be kept as a branch point:
//
//	stack := snapshot.NewStack().Push(snap)
//	top, rest, err := stack.Pop()
//
// # Diffs
//
// [CompareSnapshots] reports added, removed, and changed keys. [ApplyDiff]
// replays a diff onto a state. Added keys receive a nil placeholder unless
// the diff was produced with CompareOptions.CarryAddedValues.
//
// # Persistence
//
// Stacks are encoded as YAML and saved through a backtrack.Store under a
// caller-chosen key (see [Manager.PersistStack]).
package snapshot
