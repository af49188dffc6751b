package snapshot

import "github.com/rickchristie/backtrack"

// Stack is a LIFO of snapshots with the top at index 0.
//
// Stack values are immutable by convention: Push allocates a new backing
// array, and Pop returns a sub-slice of the receiver, so older stack values
// stay valid as branch points.
type Stack []Snapshot

// NewStack returns an empty stack.
func NewStack() Stack {
	return Stack{}
}

// Push returns a new stack with snap on top.
func (s Stack) Push(snap Snapshot) Stack {
	out := make(Stack, 0, len(s)+1)
	out = append(out, snap)
	return append(out, s...)
}

// Pop returns the top snapshot and the remaining stack.
// Returns backtrack.ErrEmptyStack when the stack is empty.
func (s Stack) Pop() (Snapshot, Stack, error) {
	if len(s) == 0 {
		return Snapshot{}, s, backtrack.ErrEmptyStack
	}
	return s[0], s[1:], nil
}

// Peek returns the top snapshot without removing it.
// Returns backtrack.ErrEmptyStack when the stack is empty.
func (s Stack) Peek() (Snapshot, error) {
	if len(s) == 0 {
		return Snapshot{}, backtrack.ErrEmptyStack
	}
	return s[0], nil
}

// Size returns the number of snapshots.
func (s Stack) Size() int {
	return len(s)
}

// States returns the stacked states, most recent first.
func (s Stack) States() []backtrack.State {
	out := make([]backtrack.State, len(s))
	for i, snap := range s {
		out[i] = snap.Data
	}
	return out
}
