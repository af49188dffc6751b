package backtrack

// TerminationReason indicates why a search session ended.
type TerminationReason string

const (
	// TerminationSuccess means the step executor reported completion.
	TerminationSuccess TerminationReason = "success"

	// TerminationExhausted means both the budget pool and the priority
	// reserve reached zero. A best-effort candidate is returned.
	TerminationExhausted TerminationReason = "exhausted"

	// TerminationNoAlternatives means a dead end was reached with no
	// alternative to try and no snapshot left to backtrack to.
	TerminationNoAlternatives TerminationReason = "no_alternatives"

	// TerminationMaxIterations means the iteration cap was reached.
	TerminationMaxIterations TerminationReason = "max_iterations"

	// TerminationError means the step executor returned an error.
	TerminationError TerminationReason = "error"

	// TerminationContextCanceled means the context was canceled.
	TerminationContextCanceled TerminationReason = "context_canceled"
)
