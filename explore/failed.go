package explore

import (
	"maps"

	"github.com/rickchristie/backtrack"
)

// FailedPaths is the set of structural hashes of states already explored
// and rejected. It is immutable by convention: Mark returns a new set, so
// the set only grows along a session.
type FailedPaths map[uint64]struct{}

// NewFailedPaths returns an empty set.
func NewFailedPaths() FailedPaths {
	return FailedPaths{}
}

// Attempted reports whether state's hash is in the set.
func (f FailedPaths) Attempted(state backtrack.State) bool {
	_, ok := f[backtrack.Hash(state)]
	return ok
}

// Mark returns a copy of the set with state's hash added.
func (f FailedPaths) Mark(state backtrack.State) FailedPaths {
	out := maps.Clone(f)
	if out == nil {
		out = FailedPaths{}
	}
	out[backtrack.Hash(state)] = struct{}{}
	return out
}

// Len returns the number of failed hashes.
func (f FailedPaths) Len() int {
	return len(f)
}

// PathAttempted is the function form of FailedPaths.Attempted.
func PathAttempted(state backtrack.State, failed FailedPaths) bool {
	return failed.Attempted(state)
}

// MarkPathFailed is the function form of FailedPaths.Mark.
func MarkPathFailed(state backtrack.State, failed FailedPaths) FailedPaths {
	return failed.Mark(state)
}
