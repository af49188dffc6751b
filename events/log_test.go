package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickchristie/backtrack"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogSubscriber(t *testing.T) {
	type expected struct {
		level string
		msg   string
		attrs map[string]any
	}

	tests := []struct {
		name     string
		input    backtrack.Event
		expected expected
	}{
		{
			name:  "step completed at debug",
			input: &backtrack.StepCompletedEvent{Iteration: 2, Duration: time.Millisecond},
			expected: expected{
				level: "DEBUG",
				msg:   "step completed",
				attrs: map[string]any{"event": backtrack.EventNameStepAfter, "iteration": float64(2)},
			},
		},
		{
			name: "dead end at info",
			input: &backtrack.DeadEndDetectedEvent{
				Iteration:  4,
				Reasons:    []string{"repeated_failures", "low_confidence"},
				Confidence: 0.5,
			},
			expected: expected{
				level: "INFO",
				msg:   "dead end",
				attrs: map[string]any{
					"reasons":    []any{"repeated_failures", "low_confidence"},
					"confidence": 0.5,
				},
			},
		},
		{
			name:  "alternative generated",
			input: &backtrack.AlternativeGeneratedEvent{Iteration: 1, SnapshotID: "snap-2", Depth: 2, Remaining: 9},
			expected: expected{
				level: "INFO",
				msg:   "alternative generated",
				attrs: map[string]any{"snapshot_id": "snap-2", "budget_remaining": float64(9)},
			},
		},
		{
			name:  "backtrack",
			input: &backtrack.BacktrackEvent{FromSnapshotID: "snap-2", ToSnapshotID: "snap-1", Reclaimed: 3},
			expected: expected{
				level: "INFO",
				msg:   "backtrack",
				attrs: map[string]any{"to_snapshot_id": "snap-1", "reclaimed": float64(3)},
			},
		},
		{
			name:  "budget exhausted at warn",
			input: &backtrack.BudgetExhaustedEvent{Used: 10, Total: 10, HasCandidate: true},
			expected: expected{
				level: "WARN",
				msg:   "budget exhausted",
				attrs: map[string]any{"used": float64(10), "has_candidate": true},
			},
		},
		{
			name:  "search finished ok",
			input: &backtrack.SearchFinishedEvent{Iterations: 5, Reason: backtrack.TerminationSuccess},
			expected: expected{
				level: "INFO",
				msg:   "search finished",
				attrs: map[string]any{"reason": "success", "iterations": float64(5)},
			},
		},
		{
			name: "search finished with error",
			input: &backtrack.SearchFinishedEvent{
				Reason: backtrack.TerminationError,
				Err:    errors.New("boom"),
			},
			expected: expected{
				level: "WARN",
				msg:   "search finished",
				attrs: map[string]any{"reason": "error", "error": "boom"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			registry := NewRegistry().Subscribe(NewLogSubscriber(newJSONLogger(&buf)))

			registry.Dispatch(context.Background(), tt.input)

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.expected.level, lines[0]["level"])
			assert.Equal(t, tt.expected.msg, lines[0]["msg"])
			for k, v := range tt.expected.attrs {
				assert.Equal(t, v, lines[0][k], "attribute %s", k)
			}
		})
	}
}

func TestNewLogSubscriber_NilUsesDefault(t *testing.T) {
	sub := NewLogSubscriber(nil)
	assert.Equal(t, slog.Default(), sub.logger)
}
