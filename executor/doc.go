// Package executor drives a backtracking search session over a
// caller-supplied Step.
//
// Each iteration runs the step, classifies its result with a
// deadend.Detector, and on a dead end spends budget on an alternative from
// an explore.Explorer, pushing it onto a snapshot.Stack. When no
// alternative survives filtering, the executor pops the stack and resumes
// from the previous snapshot, returning that level's unused allocation to
// the budget.
//
//	step := executor.StepFunc(func(
//	    ctx context.Context,
//	    state backtrack.State,
//	    history []any,
//	) (executor.StepResult, error) {
//	    answer, err := solve(ctx, state)
//	    if err != nil {
//	        return executor.StepResult{}, err
//	    }
//	    return executor.StepResult{Result: answer, Done: answer.Valid()}, nil
//	})
//
//	exec := executor.New(step, executor.DefaultConfig()).
//	    WithLogger(slog.Default()).
//	    WithEvents(events.NewRegistry().Subscribe(events.NewLogSubscriber(nil)))
//	result := exec.Run(ctx, backtrack.State{"temperature": 0.7})
//
// Configuration can be loaded from YAML with LoadConfig.
package executor
