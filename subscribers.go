package backtrack

import "context"

// Subscriber interfaces define type-safe event subscriptions.
//
// Implement any combination of these interfaces on a single struct to receive
// multiple event types. The events.Registry detects which interfaces your
// struct implements and calls the appropriate methods.
//
//	type AuditSubscriber struct{}
//
//	func (s *AuditSubscriber) OnDeadEnd(
//	    ctx context.Context,
//	    event *DeadEndDetectedEvent,
//	) {
//	    audit.Record(event.Iteration, event.Reasons)
//	}
//
//	registry := events.NewRegistry()
//	registry.Subscribe(&AuditSubscriber{})

// StepCompletedSubscriber receives StepCompletedEvent events.
type StepCompletedSubscriber interface {
	OnStepCompleted(ctx context.Context, event *StepCompletedEvent)
}

// DeadEndSubscriber receives DeadEndDetectedEvent events.
type DeadEndSubscriber interface {
	OnDeadEnd(ctx context.Context, event *DeadEndDetectedEvent)
}

// AlternativeGeneratedSubscriber receives AlternativeGeneratedEvent events.
type AlternativeGeneratedSubscriber interface {
	OnAlternativeGenerated(ctx context.Context, event *AlternativeGeneratedEvent)
}

// BacktrackSubscriber receives BacktrackEvent events.
type BacktrackSubscriber interface {
	OnBacktrack(ctx context.Context, event *BacktrackEvent)
}

// BudgetExhaustedSubscriber receives BudgetExhaustedEvent events.
type BudgetExhaustedSubscriber interface {
	OnBudgetExhausted(ctx context.Context, event *BudgetExhaustedEvent)
}

// SearchFinishedSubscriber receives SearchFinishedEvent events.
type SearchFinishedSubscriber interface {
	OnSearchFinished(ctx context.Context, event *SearchFinishedEvent)
}

// EventPublisher dispatches events to subscribers. Implemented by
// events.Registry.
type EventPublisher interface {
	Dispatch(ctx context.Context, event Event)
}
