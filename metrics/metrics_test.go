package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickchristie/backtrack"
	"github.com/rickchristie/backtrack/events"
)

func TestSubscriber_RecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	sub := NewSubscriber(reg)
	registry := events.NewRegistry().Subscribe(sub)
	ctx := context.Background()

	registry.Dispatch(ctx, &backtrack.StepCompletedEvent{Iteration: 1, Duration: 20 * time.Millisecond})
	registry.Dispatch(ctx, &backtrack.StepCompletedEvent{Iteration: 2, Duration: 30 * time.Millisecond})
	registry.Dispatch(ctx, &backtrack.DeadEndDetectedEvent{
		Reasons: []string{"repeated_failures", "low_confidence", "made_up"},
	})
	registry.Dispatch(ctx, &backtrack.AlternativeGeneratedEvent{Depth: 2, Remaining: 7})
	registry.Dispatch(ctx, &backtrack.BacktrackEvent{Depth: 1, Reclaimed: 3})
	registry.Dispatch(ctx, &backtrack.BudgetExhaustedEvent{})
	registry.Dispatch(ctx, &backtrack.SearchFinishedEvent{Reason: backtrack.TerminationExhausted, Duration: time.Second})
	registry.Dispatch(ctx, &backtrack.SearchFinishedEvent{Reason: "bogus"})

	assert.Equal(t, 2.0, testutil.ToFloat64(sub.steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.deadEnds.WithLabelValues("repeated_failures")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.deadEnds.WithLabelValues("low_confidence")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.deadEnds.WithLabelValues(unknownLabel)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.alternatives))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.backtracks))
	assert.Equal(t, 3.0, testutil.ToFloat64(sub.reclaimed))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.stackDepth), "depth follows the latest pop")
	assert.Equal(t, 7.0, testutil.ToFloat64(sub.budgetLeft))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.exhausted))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.searches.WithLabelValues("exhausted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sub.searches.WithLabelValues(unknownLabel)))

	count, err := testutil.GatherAndCount(reg,
		"backtrack_step_duration_seconds",
		"backtrack_search_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewSubscriber_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewSubscriber(reg)

	assert.Panics(t, func() { NewSubscriber(reg) })
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "known reason", input: "stalled_progress", expected: "stalled_progress"},
		{name: "empty", input: "", expected: unknownLabel},
		{name: "unknown", input: "vibes", expected: unknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeReason(tt.input))
		})
	}

	assert.Equal(t, "max_iterations", sanitizeTermination(backtrack.TerminationMaxIterations))
}
