package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickchristie/backtrack"
)

// -----------------------------------------------------------------------------
// Test Subscribers
// -----------------------------------------------------------------------------

type mockDeadEndSubscriber struct {
	called bool
	event  *backtrack.DeadEndDetectedEvent
}

func (s *mockDeadEndSubscriber) OnDeadEnd(_ context.Context, e *backtrack.DeadEndDetectedEvent) {
	s.called = true
	s.event = e
}

type mockBacktrackSubscriber struct {
	called bool
	event  *backtrack.BacktrackEvent
}

func (s *mockBacktrackSubscriber) OnBacktrack(_ context.Context, e *backtrack.BacktrackEvent) {
	s.called = true
	s.event = e
}

// recordingSubscriber implements every subscriber interface and records
// event names in dispatch order.
type recordingSubscriber struct {
	names []string
}

func (s *recordingSubscriber) OnStepCompleted(_ context.Context, e *backtrack.StepCompletedEvent) {
	s.names = append(s.names, e.EventName())
}

func (s *recordingSubscriber) OnDeadEnd(_ context.Context, e *backtrack.DeadEndDetectedEvent) {
	s.names = append(s.names, e.EventName())
}

func (s *recordingSubscriber) OnAlternativeGenerated(_ context.Context, e *backtrack.AlternativeGeneratedEvent) {
	s.names = append(s.names, e.EventName())
}

func (s *recordingSubscriber) OnBacktrack(_ context.Context, e *backtrack.BacktrackEvent) {
	s.names = append(s.names, e.EventName())
}

func (s *recordingSubscriber) OnBudgetExhausted(_ context.Context, e *backtrack.BudgetExhaustedEvent) {
	s.names = append(s.names, e.EventName())
}

func (s *recordingSubscriber) OnSearchFinished(_ context.Context, e *backtrack.SearchFinishedEvent) {
	s.names = append(s.names, e.EventName())
}

type orderTrackingSubscriber struct {
	order *[]int
	id    int
}

func (s *orderTrackingSubscriber) OnDeadEnd(_ context.Context, _ *backtrack.DeadEndDetectedEvent) {
	*s.order = append(*s.order, s.id)
}

type customUnhandledEvent struct{}

func (*customUnhandledEvent) EventName() string { return "test:unhandled" }

// -----------------------------------------------------------------------------
// Registry Tests
// -----------------------------------------------------------------------------

func TestNewRegistry_ReturnsEmptyRegistry(t *testing.T) {
	registry := NewRegistry()

	assert.NotNil(t, registry)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_Subscribe_AddsSubscriber(t *testing.T) {
	registry := NewRegistry()

	result := registry.Subscribe(&mockDeadEndSubscriber{})

	assert.Equal(t, registry, result, "Subscribe should return registry for chaining")
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_Subscribe_ChainMultiple(t *testing.T) {
	registry := NewRegistry()

	registry.Subscribe(&mockDeadEndSubscriber{}).Subscribe(&mockBacktrackSubscriber{})

	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_Clear_RemovesAllSubscribers(t *testing.T) {
	registry := NewRegistry()
	registry.Subscribe(&mockDeadEndSubscriber{})
	registry.Subscribe(&mockBacktrackSubscriber{})

	registry.Clear()

	assert.Equal(t, 0, registry.Len())
}

// -----------------------------------------------------------------------------
// Dispatch Tests
// -----------------------------------------------------------------------------

func TestRegistry_Dispatch_DeadEndEvent(t *testing.T) {
	registry := NewRegistry()
	sub := &mockDeadEndSubscriber{}
	registry.Subscribe(sub)

	event := &backtrack.DeadEndDetectedEvent{
		Iteration:  3,
		Reasons:    []string{"low_confidence"},
		Confidence: 0.25,
	}
	registry.Dispatch(context.Background(), event)

	assert.True(t, sub.called)
	assert.Equal(t, event, sub.event)
}

func TestRegistry_Dispatch_OnlyCallsMatchingSubscribers(t *testing.T) {
	registry := NewRegistry()
	deadEndSub := &mockDeadEndSubscriber{}
	backtrackSub := &mockBacktrackSubscriber{}
	registry.Subscribe(deadEndSub).Subscribe(backtrackSub)

	registry.Dispatch(context.Background(), &backtrack.BacktrackEvent{ToSnapshotID: "snap-1"})

	assert.False(t, deadEndSub.called, "non-matching subscriber should not be called")
	assert.True(t, backtrackSub.called, "matching subscriber should be called")
	assert.Equal(t, "snap-1", backtrackSub.event.ToSnapshotID)
}

func TestRegistry_Dispatch_CallsInOrder(t *testing.T) {
	registry := NewRegistry()
	var order []int

	registry.
		Subscribe(&orderTrackingSubscriber{order: &order, id: 1}).
		Subscribe(&orderTrackingSubscriber{order: &order, id: 2}).
		Subscribe(&orderTrackingSubscriber{order: &order, id: 3})

	registry.Dispatch(context.Background(), &backtrack.DeadEndDetectedEvent{})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestRegistry_Dispatch_MultiInterfaceSubscriber(t *testing.T) {
	registry := NewRegistry()
	sub := &recordingSubscriber{}
	registry.Subscribe(sub)
	ctx := context.Background()

	registry.Dispatch(ctx, &backtrack.StepCompletedEvent{})
	registry.Dispatch(ctx, &backtrack.DeadEndDetectedEvent{})
	registry.Dispatch(ctx, &backtrack.AlternativeGeneratedEvent{})
	registry.Dispatch(ctx, &backtrack.BacktrackEvent{})
	registry.Dispatch(ctx, &backtrack.BudgetExhaustedEvent{})
	registry.Dispatch(ctx, &backtrack.SearchFinishedEvent{})

	assert.Equal(t, []string{
		backtrack.EventNameStepAfter,
		backtrack.EventNameDeadEnd,
		backtrack.EventNameAlternativeGenerated,
		backtrack.EventNameBacktrack,
		backtrack.EventNameBudgetExhausted,
		backtrack.EventNameSearchAfter,
	}, sub.names)
}

func TestRegistry_Dispatch_UnknownEventType_DoesNotPanic(t *testing.T) {
	registry := NewRegistry()
	sub := &recordingSubscriber{}
	registry.Subscribe(sub)

	assert.NotPanics(t, func() {
		registry.Dispatch(context.Background(), &customUnhandledEvent{})
	})
	assert.Empty(t, sub.names)
}
