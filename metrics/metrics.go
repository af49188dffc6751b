package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rickchristie/backtrack"
	"github.com/rickchristie/backtrack/deadend"
)

// Namespace prefixes every metric name.
const Namespace = "backtrack"

const unknownLabel = "unknown"

var knownReasons = map[string]bool{
	string(deadend.ReasonCustomPredicate):     true,
	string(deadend.ReasonRepeatedFailures):    true,
	string(deadend.ReasonCircularReasoning):   true,
	string(deadend.ReasonLowConfidence):       true,
	string(deadend.ReasonStalledProgress):     true,
	string(deadend.ReasonConstraintViolation): true,
}

var knownTerminations = map[backtrack.TerminationReason]bool{
	backtrack.TerminationSuccess:         true,
	backtrack.TerminationExhausted:       true,
	backtrack.TerminationNoAlternatives:  true,
	backtrack.TerminationMaxIterations:   true,
	backtrack.TerminationError:           true,
	backtrack.TerminationContextCanceled: true,
}

// Subscriber records session events as Prometheus metrics. It implements
// every backtrack subscriber interface and is safe for concurrent use.
type Subscriber struct {
	steps        prometheus.Counter
	stepDuration prometheus.Histogram
	deadEnds     *prometheus.CounterVec
	alternatives prometheus.Counter
	backtracks   prometheus.Counter
	reclaimed    prometheus.Counter
	exhausted    prometheus.Counter
	searches     *prometheus.CounterVec
	searchTime   prometheus.Histogram
	stackDepth   prometheus.Gauge
	budgetLeft   prometheus.Gauge
}

// NewSubscriber creates the metrics and registers them with reg.
// Panics if any metric is already registered, as promauto does.
func NewSubscriber(reg prometheus.Registerer) *Subscriber {
	f := promauto.With(reg)
	return &Subscriber{
		steps: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "steps_total",
			Help:      "Total reasoning steps executed",
		}),
		stepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of reasoning steps",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		deadEnds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "dead_end_reasons_total",
			Help:      "Dead-end reasons reported, by reason",
		}, []string{"reason"}),
		alternatives: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "alternatives_total",
			Help:      "Alternatives generated and pushed",
		}),
		backtracks: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "backtracks_total",
			Help:      "Stack pops after exploration ran out of alternatives",
		}),
		reclaimed: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "budget_reclaimed_total",
			Help:      "Budget units returned from completed levels",
		}),
		exhausted: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "budget_exhausted_total",
			Help:      "Sessions that ran out of budget",
		}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Finished search sessions, by termination reason",
		}, []string{"reason"}),
		searchTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of search sessions",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		stackDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "stack_depth",
			Help:      "Snapshot stack size after the latest push or pop",
		}),
		budgetLeft: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "budget_remaining",
			Help:      "Budget remaining after the latest alternative",
		}),
	}
}

// OnStepCompleted implements backtrack.StepCompletedSubscriber.
func (s *Subscriber) OnStepCompleted(_ context.Context, e *backtrack.StepCompletedEvent) {
	s.steps.Inc()
	s.stepDuration.Observe(e.Duration.Seconds())
}

// OnDeadEnd implements backtrack.DeadEndSubscriber.
func (s *Subscriber) OnDeadEnd(_ context.Context, e *backtrack.DeadEndDetectedEvent) {
	for _, r := range e.Reasons {
		s.deadEnds.WithLabelValues(sanitizeReason(r)).Inc()
	}
}

// OnAlternativeGenerated implements backtrack.AlternativeGeneratedSubscriber.
func (s *Subscriber) OnAlternativeGenerated(_ context.Context, e *backtrack.AlternativeGeneratedEvent) {
	s.alternatives.Inc()
	s.stackDepth.Set(float64(e.Depth))
	s.budgetLeft.Set(float64(e.Remaining))
}

// OnBacktrack implements backtrack.BacktrackSubscriber.
func (s *Subscriber) OnBacktrack(_ context.Context, e *backtrack.BacktrackEvent) {
	s.backtracks.Inc()
	s.reclaimed.Add(float64(e.Reclaimed))
	s.stackDepth.Set(float64(e.Depth))
}

// OnBudgetExhausted implements backtrack.BudgetExhaustedSubscriber.
func (s *Subscriber) OnBudgetExhausted(_ context.Context, _ *backtrack.BudgetExhaustedEvent) {
	s.exhausted.Inc()
}

// OnSearchFinished implements backtrack.SearchFinishedSubscriber.
func (s *Subscriber) OnSearchFinished(_ context.Context, e *backtrack.SearchFinishedEvent) {
	s.searches.WithLabelValues(sanitizeTermination(e.Reason)).Inc()
	s.searchTime.Observe(e.Duration.Seconds())
}

func sanitizeReason(r string) string {
	if knownReasons[r] {
		return r
	}
	return unknownLabel
}

func sanitizeTermination(r backtrack.TerminationReason) string {
	if knownTerminations[r] {
		return string(r)
	}
	return unknownLabel
}

var (
	_ backtrack.StepCompletedSubscriber        = (*Subscriber)(nil)
	_ backtrack.DeadEndSubscriber              = (*Subscriber)(nil)
	_ backtrack.AlternativeGeneratedSubscriber = (*Subscriber)(nil)
	_ backtrack.BacktrackSubscriber            = (*Subscriber)(nil)
	_ backtrack.BudgetExhaustedSubscriber      = (*Subscriber)(nil)
	_ backtrack.SearchFinishedSubscriber       = (*Subscriber)(nil)
)
