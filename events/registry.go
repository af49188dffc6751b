package events

import (
	"context"

	"github.com/rickchristie/backtrack"
)

// Registry manages event subscribers and dispatches events to them.
//
// # Overview
//
// Registry is the central coordination point for event subscribers. It:
//   - Stores registered subscribers in order
//   - Dispatches events to subscribers that implement the relevant interface
//
// Subscribers can implement any combination of subscriber interfaces - they only
// receive events for the interfaces they implement.
//
// # Creating and Using
//
//	registry := events.NewRegistry()
//	registry.Subscribe(events.NewLogSubscriber(logger))
//	registry.Subscribe(metrics.NewSubscriber(prometheus.DefaultRegisterer))
//
//	exec := executor.New(step, executor.DefaultConfig()).WithEvents(registry)
//
// # Subscribers with Multiple Interfaces
//
// A single subscriber can implement multiple interfaces:
//
//	type AuditSubscriber struct {
//	    log *slog.Logger
//	}
//
//	func (s *AuditSubscriber) OnDeadEnd(
//	    ctx context.Context,
//	    e *backtrack.DeadEndDetectedEvent,
//	) {
//	    s.log.Info("dead end", "reasons", e.Reasons)
//	}
//
//	func (s *AuditSubscriber) OnBacktrack(
//	    ctx context.Context,
//	    e *backtrack.BacktrackEvent,
//	) {
//	    s.log.Info("backtrack", "to", e.ToSnapshotID)
//	}
//
// # Thread Safety
//
// Registry is NOT thread-safe. Register all subscribers before starting a
// session. Dispatch itself only reads the subscriber list.
type Registry struct {
	subscribers []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		subscribers: make([]any, 0),
	}
}

// Subscribe adds a subscriber to the registry. The subscriber can implement any
// combination of subscriber interfaces (DeadEndSubscriber,
// BacktrackSubscriber, etc.).
//
// Subscribers are called in the order they are registered.
func (r *Registry) Subscribe(subscriber any) *Registry {
	r.subscribers = append(r.subscribers, subscriber)
	return r
}

// Dispatch sends an event to all matching subscribers.
func (r *Registry) Dispatch(ctx context.Context, event backtrack.Event) {
	switch e := event.(type) {
	case *backtrack.StepCompletedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(backtrack.StepCompletedSubscriber); ok {
				sub.OnStepCompleted(ctx, e)
			}
		}
	case *backtrack.DeadEndDetectedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(backtrack.DeadEndSubscriber); ok {
				sub.OnDeadEnd(ctx, e)
			}
		}
	case *backtrack.AlternativeGeneratedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(backtrack.AlternativeGeneratedSubscriber); ok {
				sub.OnAlternativeGenerated(ctx, e)
			}
		}
	case *backtrack.BacktrackEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(backtrack.BacktrackSubscriber); ok {
				sub.OnBacktrack(ctx, e)
			}
		}
	case *backtrack.BudgetExhaustedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(backtrack.BudgetExhaustedSubscriber); ok {
				sub.OnBudgetExhausted(ctx, e)
			}
		}
	case *backtrack.SearchFinishedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(backtrack.SearchFinishedSubscriber); ok {
				sub.OnSearchFinished(ctx, e)
			}
		}
	}
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	return len(r.subscribers)
}

// Clear removes all registered subscribers.
func (r *Registry) Clear() {
	r.subscribers = make([]any, 0)
}

var _ backtrack.EventPublisher = (*Registry)(nil)
