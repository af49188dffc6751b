package backtrack

import "errors"

// Stack errors.
var (
	// ErrEmptyStack is returned by Pop and Peek on an empty stack.
	ErrEmptyStack = errors.New("backtrack: empty stack")
)

// Persistence errors.
var (
	// ErrNotFound is returned by a Store (and by LoadStack) when no value
	// exists under the requested key.
	ErrNotFound = errors.New("backtrack: not found")

	// ErrPersistFailed wraps every failure surfaced by PersistStack.
	ErrPersistFailed = errors.New("backtrack: persist failed")
)

// Exploration errors.
var (
	// ErrNoAlternatives is returned when every generated candidate is a known
	// failed path or fails diversity filtering.
	ErrNoAlternatives = errors.New("backtrack: no alternatives")

	// ErrMaxDepthExceeded is returned by BeamSearch when MaxDepth levels were
	// searched without a validator match.
	ErrMaxDepthExceeded = errors.New("backtrack: max depth exceeded")

	// ErrNoSolution is returned by BeamSearch when the frontier empties.
	ErrNoSolution = errors.New("backtrack: no solution")
)

// Budget errors.
var (
	// ErrInsufficientBudget is returned when a level allocation rounds to zero.
	ErrInsufficientBudget = errors.New("backtrack: insufficient budget")

	// ErrInsufficientPriorityReserve is returned when the priority reserve is
	// smaller than the requested amount.
	ErrInsufficientPriorityReserve = errors.New(
		"backtrack: insufficient priority reserve",
	)
)
