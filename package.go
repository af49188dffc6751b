// Package backtrack provides the core of an iterative-reasoning support
// engine: detecting when a line of reasoning has stalled, generating
// diverse alternatives, snapshotting states so the search can back up, and
// budgeting how much exploration a session may spend.
//
// The root package holds the shared vocabulary: [State], the structural
// [Hash], the [Store] persistence contract, injectable [Rand] and
// [TimeProvider], session [Stats], and the events published by the
// executor.
//
// # Packages
//
//   - deadend: classifies step results as dead ends (repetition, circular
//     reasoning, low confidence, stalled progress, constraint violation)
//   - explore: generates and filters alternative states, tracks failed
//     paths, and runs a bounded beam search
//   - snapshot: immutable snapshots, a LIFO stack, diffs, and stack
//     persistence through a Store
//   - budget: an immutable exploration budget with a priority reserve and
//     per-level accounting
//   - executor: drives a session over a caller-supplied Step
//   - events, metrics: event dispatch, slog logging, Prometheus metrics
//   - store/memory, store/badger, store/sqlite: Store implementations
//   - llmstate: langchaingo responses as states, and an LLM-backed Step
//
// # Quick Start
//
//	detector := deadend.New(deadend.DefaultOptions())
//	explorer := explore.New(explore.DefaultOptions())
//	manager := snapshot.NewManager(snapshot.Config{Store: memory.New()})
//	b := budget.New(10)
//
//	stack := snapshot.NewStack().Push(manager.CaptureSnapshot(state, nil))
//	failed := explore.NewFailedPaths()
//
//	for b.HasBudget() {
//	    result := step(state)
//	    detection := detector.DetectWithReasons(result, history)
//	    history = append(history, result)
//	    if !detection.IsDeadEnd {
//	        continue
//	    }
//	    failed = failed.Mark(state)
//	    alt, err := explorer.GenerateAlternative(state, history, failed)
//	    if errors.Is(err, backtrack.ErrNoAlternatives) {
//	        break
//	    }
//	    b = b.Consume(1)
//	    stack = stack.Push(manager.CaptureSnapshot(alt, nil))
//	    state = alt
//	}
//
// The executor package implements this loop, including backtracking, with
// events and stats.
//
// # Value Semantics
//
// Budget, snapshot.Stack, and explore.FailedPaths are immutable by
// convention: every mutating operation returns a new value and callers
// thread it themselves. Concurrent callers are safe as long as each owns its
// own values. The only shared mutable resource is the Store; concurrent
// writers to the same key are last-write-wins.
//
// # Events
//
// The executor publishes events through an [EventPublisher] (normally
// events.Registry). Subscribers implement any combination of the
// subscriber interfaces:
//
//	type DeadEndLogger struct{}
//
//	func (DeadEndLogger) OnDeadEnd(ctx context.Context, e *backtrack.DeadEndDetectedEvent) {
//	    log.Printf("iteration %d: %v", e.Iteration, e.Reasons)
//	}
//
// # Stats
//
// [Stats] counters use the "backtrack:" prefix (see stats_keys.go). The
// executor uses [Stats.SuccessRate] to adapt the budget.
package backtrack
