package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickchristie/backtrack"
	"github.com/rickchristie/backtrack/budget"
	"github.com/rickchristie/backtrack/deadend"
	"github.com/rickchristie/backtrack/explore"
	"github.com/rickchristie/backtrack/snapshot"
)

// StepResult is the outcome of one step.
type StepResult struct {
	// Result is the opaque value classified by the dead-end detector and
	// appended to history.
	Result any

	// State replaces the current state when non-nil.
	State backtrack.State

	// Done ends the session successfully.
	Done bool
}

// Step performs one reasoning step from state. The history holds every
// previous StepResult.Result and must not be retained.
type Step interface {
	Run(ctx context.Context, state backtrack.State, history []any) (StepResult, error)
}

// StepFunc adapts a function to Step.
type StepFunc func(ctx context.Context, state backtrack.State, history []any) (StepResult, error)

// Run implements Step.
func (f StepFunc) Run(ctx context.Context, state backtrack.State, history []any) (StepResult, error) {
	return f(ctx, state, history)
}

// Result is the outcome of a session.
type Result struct {
	Reason backtrack.TerminationReason

	// State is the final state. On TerminationExhausted it is the
	// best-effort candidate.
	State backtrack.State

	// Err is set for TerminationError, TerminationNoAlternatives, and
	// TerminationContextCanceled.
	Err error

	Iterations int
	Budget     budget.Budget
	Stack      snapshot.Stack
	History    []any
	Duration   time.Duration
}

// Executor orchestrates a backtracking search over a Step.
//
// The Executor is responsible for:
//   - Running the Step until it reports Done or a limit is reached
//   - Spending budget on alternatives after each dead end
//   - Backtracking to the previous snapshot when no alternative survives
//   - Publishing events and counting stats
//
// An Executor may run several sessions sequentially; stats accumulate
// across them.
type Executor struct {
	step      Step
	config    Config
	detector  *deadend.Detector
	explorer  *explore.Explorer
	snapshots *snapshot.Manager
	events    backtrack.EventPublisher
	logger    *slog.Logger
	stats     *backtrack.Stats
	clock     backtrack.TimeProvider
}

// New creates a new Executor with the given Step and configuration.
// Zero config fields take their defaults. Panics if step is nil.
func New(step Step, config Config) *Executor {
	if step == nil {
		panic("executor: nil step")
	}
	config = config.withDefaults()
	clock := backtrack.NewDefaultTimeProvider()
	return &Executor{
		step:      step,
		config:    config,
		detector:  deadend.New(config.Detector),
		explorer:  explore.New(config.Explorer),
		snapshots: snapshot.NewManager(snapshot.Config{TimeProvider: clock}),
		logger:    slog.New(slog.DiscardHandler),
		stats:     backtrack.NewStats(),
		clock:     clock,
	}
}

// WithEvents sets the publisher that receives session events.
// Returns the executor for chaining.
func (e *Executor) WithEvents(p backtrack.EventPublisher) *Executor {
	e.events = p
	return e
}

// WithLogger sets the structured logger. Returns the executor for chaining.
func (e *Executor) WithLogger(l *slog.Logger) *Executor {
	if l != nil {
		e.logger = l
	}
	return e
}

// WithSnapshots replaces the snapshot manager. Set one with a Store to
// use Config.PersistKey. Returns the executor for chaining.
func (e *Executor) WithSnapshots(m *snapshot.Manager) *Executor {
	e.snapshots = m
	return e
}

// WithStats shares a stats collector across executors.
// Returns the executor for chaining.
func (e *Executor) WithStats(s *backtrack.Stats) *Executor {
	e.stats = s
	return e
}

// WithTimeProvider sets the clock used for durations.
// Returns the executor for chaining.
func (e *Executor) WithTimeProvider(tp backtrack.TimeProvider) *Executor {
	e.clock = tp
	return e
}

// Stats returns the executor's stats collector.
func (e *Executor) Stats() *backtrack.Stats {
	return e.stats
}

// Config returns the effective configuration.
func (e *Executor) Config() Config {
	return e.config
}

// session is the mutable state of one Run.
type session struct {
	start      time.Time
	iterations int
	state      backtrack.State
	history    []any
	budget     budget.Budget
	stack      snapshot.Stack
	failed     explore.FailedPaths
}

// Run searches from initial until the step reports Done or the session
// terminates for another reason. The returned Result always carries the
// termination reason; Run does not return an error of its own.
func (e *Executor) Run(ctx context.Context, initial backtrack.State) Result {
	var budgetOpts []budget.Option
	if e.config.PriorityReserve != nil {
		budgetOpts = append(budgetOpts, budget.WithPriorityReserve(*e.config.PriorityReserve))
	}

	s := &session{
		start:  e.clock.Now(),
		state:  initial.Clone(),
		budget: budget.New(e.config.Budget, budgetOpts...),
		failed: explore.NewFailedPaths(),
	}
	root := e.snapshots.CaptureSnapshot(s.state, map[string]any{"level": 0})
	s.stack = snapshot.NewStack().Push(root)

	e.logger.InfoContext(ctx, "search started",
		slog.Int("budget", s.budget.Total),
		slog.Int("priority_reserve", s.budget.PriorityReserve),
		slog.Int("max_iterations", e.config.MaxIterations),
	)

	for {
		if err := ctx.Err(); err != nil {
			return e.finish(ctx, s, backtrack.TerminationContextCanceled, s.state, err)
		}
		if s.iterations >= e.config.MaxIterations {
			return e.finish(ctx, s, backtrack.TerminationMaxIterations, s.state, nil)
		}

		s.iterations++
		stepStart := e.clock.Now()
		res, err := e.step.Run(ctx, s.state.Clone(), s.history)
		stepDuration := e.clock.Now().Sub(stepStart)
		if err != nil {
			stepErr := fmt.Errorf("step (iteration %d): %w", s.iterations, err)
			return e.finish(ctx, s, backtrack.TerminationError, s.state, stepErr)
		}

		e.stats.IncrCounter(backtrack.KeySteps, 1)
		e.publish(ctx, &backtrack.StepCompletedEvent{
			Iteration: s.iterations,
			Result:    res.Result,
			Duration:  stepDuration,
		})

		detection := e.detector.DetectWithReasons(res.Result, s.history)
		s.history = append(s.history, res.Result)
		if res.State != nil {
			s.state = res.State.Clone()
		}
		if res.Done {
			return e.finish(ctx, s, backtrack.TerminationSuccess, s.state, nil)
		}

		if detection.IsDeadEnd {
			if result := e.handleDeadEnd(ctx, s, detection); result != nil {
				return *result
			}
		}
		e.adapt(ctx, s)
	}
}

// handleDeadEnd spends budget on an alternative, or backtracks when none
// survives. Returns the session result when the session ends, nil otherwise.
func (e *Executor) handleDeadEnd(ctx context.Context, s *session, detection deadend.Result) *Result {
	reasons := detection.ReasonStrings()
	e.stats.IncrCounter(backtrack.KeyDeadEnds, 1)
	for _, r := range reasons {
		e.stats.IncrCounter(backtrack.KeyDeadEndBy+r, 1)
	}
	e.publish(ctx, &backtrack.DeadEndDetectedEvent{
		Iteration:  s.iterations,
		Reasons:    reasons,
		Confidence: detection.Confidence,
	})
	e.logger.DebugContext(ctx, "dead end detected",
		slog.Int("iteration", s.iterations),
		slog.Any("reasons", reasons),
		slog.Float64("confidence", detection.Confidence),
	)

	s.failed = s.failed.Mark(s.state)

	if !s.budget.HasBudget() {
		if s.budget.PriorityReserve == 0 {
			candidate, ok := budget.HandleExhaustion(s.budget, s.stack.States())
			e.publish(ctx, &backtrack.BudgetExhaustedEvent{
				Iteration:    s.iterations,
				Used:         s.budget.Used,
				Total:        s.budget.Total,
				HasCandidate: ok,
			})
			if !ok {
				candidate = s.state
			}
			result := e.finish(ctx, s, backtrack.TerminationExhausted, candidate, nil)
			return &result
		}
		// Reserve is non-zero here, so drawing one unit cannot fail.
		s.budget, _ = s.budget.AllocatePriority(1)
		e.stats.IncrCounter(backtrack.KeyPriorityDrawn, 1)
	}

	alt, err := e.explorer.GenerateAlternative(s.state, s.history, s.failed)
	if errors.Is(err, backtrack.ErrNoAlternatives) {
		e.stats.IncrCounter(backtrack.KeyNoAlternatives, 1)
		if s.stack.Size() <= 1 {
			result := e.finish(ctx, s, backtrack.TerminationNoAlternatives, s.state, err)
			return &result
		}
		e.backtrack(ctx, s)
		return nil
	}

	s.budget = s.budget.Consume(1)
	e.stats.IncrCounter(backtrack.KeyBudgetConsumed, 1)

	level := s.stack.Size()
	// A level too small to allocate still proceeds; spend flows through
	// Consume either way.
	_, s.budget, _ = s.budget.AllocateForLevel(level, e.config.AllocationFactor)

	snap := e.snapshots.CaptureSnapshot(alt, map[string]any{
		"level":     level,
		"iteration": s.iterations,
		"reasons":   reasons,
	})
	s.stack = s.stack.Push(snap)
	s.state = alt
	e.persist(ctx, s)

	e.stats.IncrCounter(backtrack.KeyAlternatives, 1)
	e.publish(ctx, &backtrack.AlternativeGeneratedEvent{
		Iteration:  s.iterations,
		SnapshotID: snap.ID,
		Depth:      s.stack.Size(),
		Remaining:  s.budget.Remaining,
	})
	return nil
}

// backtrack pops the head snapshot and resumes from the one below it. The
// popped level's unused allocation returns to the budget.
func (e *Executor) backtrack(ctx context.Context, s *session) {
	level := s.stack.Size() - 1
	popped, rest, err := s.stack.Pop()
	if err != nil {
		// Unreachable: callers check Size first.
		panic(fmt.Sprintf("executor: pop non-empty stack: %v", err))
	}
	reclaimed := s.budget.LevelBudget(level)
	s.budget = s.budget.ReallocateUnused(level)
	s.stack = rest
	s.failed = s.failed.Mark(popped.Data)

	head, _ := s.stack.Peek()
	s.state = snapshot.RestoreSnapshot(head)
	e.persist(ctx, s)

	e.stats.IncrCounter(backtrack.KeyBacktracks, 1)
	e.publish(ctx, &backtrack.BacktrackEvent{
		Iteration:      s.iterations,
		FromSnapshotID: popped.ID,
		ToSnapshotID:   head.ID,
		Depth:          s.stack.Size(),
		Reclaimed:      reclaimed,
	})
	e.logger.DebugContext(ctx, "backtracked",
		slog.Int("iteration", s.iterations),
		slog.String("to_snapshot", head.ID),
		slog.Int("reclaimed", reclaimed),
	)
}

func (e *Executor) adapt(ctx context.Context, s *session) {
	if e.config.AdaptEvery <= 0 || s.iterations%e.config.AdaptEvery != 0 {
		return
	}
	rate := e.stats.SuccessRate()
	before := s.budget.Remaining
	s.budget = s.budget.AdjustBySuccessRate(rate)
	e.stats.IncrCounter(backtrack.KeyBudgetAdjusted, 1)
	e.logger.DebugContext(ctx, "budget adjusted",
		slog.Float64("success_rate", rate),
		slog.Int("remaining_before", before),
		slog.Int("remaining_after", s.budget.Remaining),
	)
}

func (e *Executor) persist(ctx context.Context, s *session) {
	if e.config.PersistKey == "" {
		return
	}
	if err := e.snapshots.PersistStack(ctx, s.stack, e.config.PersistKey); err != nil {
		e.stats.IncrCounter(backtrack.KeyPersistFailures, 1)
		e.logger.WarnContext(ctx, "persist stack failed",
			slog.String("key", e.config.PersistKey),
			slog.Any("error", err),
		)
	}
}

func (e *Executor) finish(
	ctx context.Context,
	s *session,
	reason backtrack.TerminationReason,
	state backtrack.State,
	err error,
) Result {
	duration := e.clock.Now().Sub(s.start)
	e.publish(ctx, &backtrack.SearchFinishedEvent{
		Iterations: s.iterations,
		Reason:     reason,
		Err:        err,
		Duration:   duration,
	})

	attrs := []any{
		slog.String("reason", string(reason)),
		slog.Int("iterations", s.iterations),
		slog.Int("budget_used", s.budget.Used),
		slog.Int("depth", s.stack.Size()),
	}
	if err != nil {
		e.logger.WarnContext(ctx, "search finished", append(attrs, slog.Any("error", err))...)
	} else {
		e.logger.InfoContext(ctx, "search finished", attrs...)
	}

	return Result{
		Reason:     reason,
		State:      state,
		Err:        err,
		Iterations: s.iterations,
		Budget:     s.budget,
		Stack:      s.stack,
		History:    s.history,
		Duration:   duration,
	}
}

func (e *Executor) publish(ctx context.Context, event backtrack.Event) {
	if e.events != nil {
		e.events.Dispatch(ctx, event)
	}
}
