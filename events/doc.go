// Package events provides the event subscription registry for backtracking
// search sessions.
//
// # Overview
//
// Events are published by the executor as a session progresses. Subscribers
// registered with Registry receive them via the type-safe interfaces
// declared in the backtrack package.
//
// # Quick Start
//
//	// 1. Create subscribers by implementing subscriber interfaces
//	type DeadEndCounter struct{ n int }
//
//	func (c *DeadEndCounter) OnDeadEnd(
//	    ctx context.Context,
//	    event *backtrack.DeadEndDetectedEvent,
//	) {
//	    c.n++
//	}
//
//	// 2. Create and configure registry
//	registry := events.NewRegistry().
//	    Subscribe(&DeadEndCounter{}).
//	    Subscribe(events.NewLogSubscriber(slog.Default()))
//
//	// 3. Use with executor
//	exec := executor.New(step, executor.DefaultConfig()).WithEvents(registry)
//
// # Event Types
//
//   - StepCompletedEvent: after every step
//   - DeadEndDetectedEvent: a step result was classified as a dead end
//   - AlternativeGeneratedEvent: an alternative was pushed onto the stack
//   - BacktrackEvent: the stack was popped and the search resumed earlier
//   - BudgetExhaustedEvent: both budget pools are empty
//   - SearchFinishedEvent: once per session
//
// # Subscriber Interfaces
//
//   - backtrack.StepCompletedSubscriber
//   - backtrack.DeadEndSubscriber
//   - backtrack.AlternativeGeneratedSubscriber
//   - backtrack.BacktrackSubscriber
//   - backtrack.BudgetExhaustedSubscriber
//   - backtrack.SearchFinishedSubscriber
//
// LogSubscriber implements all of them over log/slog.
package events
