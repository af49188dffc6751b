package events

import (
	"context"
	"log/slog"

	"github.com/rickchristie/backtrack"
)

// LogSubscriber writes every session event to a structured logger. Step
// completions log at debug level, dead ends and backtracks at info, and
// exhaustion or failed sessions at warn.
type LogSubscriber struct {
	logger *slog.Logger
}

// NewLogSubscriber creates a LogSubscriber. A nil logger uses
// slog.Default().
func NewLogSubscriber(logger *slog.Logger) *LogSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSubscriber{logger: logger}
}

// OnStepCompleted implements backtrack.StepCompletedSubscriber.
func (s *LogSubscriber) OnStepCompleted(ctx context.Context, e *backtrack.StepCompletedEvent) {
	s.logger.DebugContext(ctx, "step completed",
		slog.String("event", e.EventName()),
		slog.Int("iteration", e.Iteration),
		slog.Duration("duration", e.Duration),
	)
}

// OnDeadEnd implements backtrack.DeadEndSubscriber.
func (s *LogSubscriber) OnDeadEnd(ctx context.Context, e *backtrack.DeadEndDetectedEvent) {
	s.logger.InfoContext(ctx, "dead end",
		slog.String("event", e.EventName()),
		slog.Int("iteration", e.Iteration),
		slog.Any("reasons", e.Reasons),
		slog.Float64("confidence", e.Confidence),
	)
}

// OnAlternativeGenerated implements backtrack.AlternativeGeneratedSubscriber.
func (s *LogSubscriber) OnAlternativeGenerated(ctx context.Context, e *backtrack.AlternativeGeneratedEvent) {
	s.logger.InfoContext(ctx, "alternative generated",
		slog.String("event", e.EventName()),
		slog.Int("iteration", e.Iteration),
		slog.String("snapshot_id", e.SnapshotID),
		slog.Int("depth", e.Depth),
		slog.Int("budget_remaining", e.Remaining),
	)
}

// OnBacktrack implements backtrack.BacktrackSubscriber.
func (s *LogSubscriber) OnBacktrack(ctx context.Context, e *backtrack.BacktrackEvent) {
	s.logger.InfoContext(ctx, "backtrack",
		slog.String("event", e.EventName()),
		slog.Int("iteration", e.Iteration),
		slog.String("from_snapshot_id", e.FromSnapshotID),
		slog.String("to_snapshot_id", e.ToSnapshotID),
		slog.Int("depth", e.Depth),
		slog.Int("reclaimed", e.Reclaimed),
	)
}

// OnBudgetExhausted implements backtrack.BudgetExhaustedSubscriber.
func (s *LogSubscriber) OnBudgetExhausted(ctx context.Context, e *backtrack.BudgetExhaustedEvent) {
	s.logger.WarnContext(ctx, "budget exhausted",
		slog.String("event", e.EventName()),
		slog.Int("iteration", e.Iteration),
		slog.Int("used", e.Used),
		slog.Int("total", e.Total),
		slog.Bool("has_candidate", e.HasCandidate),
	)
}

// OnSearchFinished implements backtrack.SearchFinishedSubscriber.
func (s *LogSubscriber) OnSearchFinished(ctx context.Context, e *backtrack.SearchFinishedEvent) {
	attrs := []any{
		slog.String("event", e.EventName()),
		slog.String("reason", string(e.Reason)),
		slog.Int("iterations", e.Iterations),
		slog.Duration("duration", e.Duration),
	}
	if e.Err != nil {
		s.logger.WarnContext(ctx, "search finished", append(attrs, slog.Any("error", e.Err))...)
		return
	}
	s.logger.InfoContext(ctx, "search finished", attrs...)
}
