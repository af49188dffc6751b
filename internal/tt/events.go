// Package tt provides test helpers shared by the backtrack packages.
package tt

import (
	"context"
	"sync"

	"github.com/rickchristie/backtrack"
)

// -----------------------------------------------------------------------------
// Recorder - subscribes to every event type
// -----------------------------------------------------------------------------

// Recorder captures every dispatched event in order. Register it with
// events.Registry.Subscribe.
type Recorder struct {
	mu     sync.Mutex
	events []backtrack.Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(e backtrack.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) OnStepCompleted(_ context.Context, e *backtrack.StepCompletedEvent) {
	r.record(e)
}

func (r *Recorder) OnDeadEnd(_ context.Context, e *backtrack.DeadEndDetectedEvent) {
	r.record(e)
}

func (r *Recorder) OnAlternativeGenerated(_ context.Context, e *backtrack.AlternativeGeneratedEvent) {
	r.record(e)
}

func (r *Recorder) OnBacktrack(_ context.Context, e *backtrack.BacktrackEvent) {
	r.record(e)
}

func (r *Recorder) OnBudgetExhausted(_ context.Context, e *backtrack.BudgetExhaustedEvent) {
	r.record(e)
}

func (r *Recorder) OnSearchFinished(_ context.Context, e *backtrack.SearchFinishedEvent) {
	r.record(e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []backtrack.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]backtrack.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Names returns the EventName of each recorded event, in dispatch order.
func (r *Recorder) Names() []string {
	return EventNames(r.Events())
}

// EventNames maps events to their names.
func EventNames(events []backtrack.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventName()
	}
	return out
}

// CountEventTypes counts events by name.
func CountEventTypes(events []backtrack.Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.EventName()]++
	}
	return counts
}

var (
	_ backtrack.StepCompletedSubscriber        = (*Recorder)(nil)
	_ backtrack.DeadEndSubscriber              = (*Recorder)(nil)
	_ backtrack.AlternativeGeneratedSubscriber = (*Recorder)(nil)
	_ backtrack.BacktrackSubscriber            = (*Recorder)(nil)
	_ backtrack.BudgetExhaustedSubscriber      = (*Recorder)(nil)
	_ backtrack.SearchFinishedSubscriber       = (*Recorder)(nil)
)
