package backtrack

import "time"

// Event is implemented by every event published during a search session.
type Event interface {
	// EventName returns the namespaced event name (see event_names.go).
	EventName() string
}

// -----------------------------------------------------------------------------
// Step Events
// -----------------------------------------------------------------------------

// StepCompletedEvent is emitted after each call to the step executor.
type StepCompletedEvent struct {
	// Iteration is the iteration number (1-indexed).
	Iteration int

	// Result is the opaque result returned by the step.
	Result any

	// Duration is how long the step took.
	Duration time.Duration
}

// EventName implements Event.
func (*StepCompletedEvent) EventName() string { return EventNameStepAfter }

// DeadEndDetectedEvent is emitted when the detector classifies a step result
// as a dead end.
type DeadEndDetectedEvent struct {
	Iteration  int
	Reasons    []string
	Confidence float64
}

// EventName implements Event.
func (*DeadEndDetectedEvent) EventName() string { return EventNameDeadEnd }

// -----------------------------------------------------------------------------
// Exploration Events
// -----------------------------------------------------------------------------

// AlternativeGeneratedEvent is emitted after an alternative state has been
// generated, snapshotted, and pushed.
type AlternativeGeneratedEvent struct {
	Iteration int

	// SnapshotID is the id of the snapshot wrapping the alternative.
	SnapshotID string

	// Depth is the stack size after the push.
	Depth int

	// Remaining is the budget remaining after consumption.
	Remaining int
}

// EventName implements Event.
func (*AlternativeGeneratedEvent) EventName() string {
	return EventNameAlternativeGenerated
}

// BacktrackEvent is emitted when the search pops the stack and resumes from
// an earlier snapshot.
type BacktrackEvent struct {
	Iteration int

	// FromSnapshotID is the popped snapshot.
	FromSnapshotID string

	// ToSnapshotID is the snapshot the search resumes from.
	ToSnapshotID string

	// Depth is the stack size after the pop.
	Depth int

	// Reclaimed is the unused level allocation returned to the budget.
	Reclaimed int
}

// EventName implements Event.
func (*BacktrackEvent) EventName() string { return EventNameBacktrack }

// BudgetExhaustedEvent is emitted once when both budget pools are empty.
type BudgetExhaustedEvent struct {
	Iteration int
	Used      int
	Total     int

	// HasCandidate reports whether a best-effort candidate was available.
	HasCandidate bool
}

// EventName implements Event.
func (*BudgetExhaustedEvent) EventName() string { return EventNameBudgetExhausted }

// -----------------------------------------------------------------------------
// Session Events
// -----------------------------------------------------------------------------

// SearchFinishedEvent is emitted once after the search terminates.
type SearchFinishedEvent struct {
	Iterations int
	Reason     TerminationReason

	// Err is the error if the search failed (nil otherwise).
	Err error

	Duration time.Duration
}

// EventName implements Event.
func (*SearchFinishedEvent) EventName() string { return EventNameSearchAfter }
