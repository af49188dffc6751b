package backtrack

// KeyPrefix is the standard prefix for all backtrack stat keys.
// Users should use their own prefix (e.g., "myapp:") for custom counters.
const KeyPrefix = "backtrack:"

// Step tracking.
const (
	KeySteps     = "backtrack:steps"
	KeyDeadEnds  = "backtrack:dead_ends"
	KeyDeadEndBy = "backtrack:dead_end:" // + reason
)

// Exploration tracking.
const (
	KeyAlternatives   = "backtrack:alternatives"
	KeyNoAlternatives = "backtrack:no_alternatives"
	KeyBacktracks     = "backtrack:backtracks"
)

// Budget tracking.
const (
	KeyBudgetConsumed  = "backtrack:budget_consumed"
	KeyPriorityDrawn   = "backtrack:priority_drawn"
	KeyBudgetAdjusted  = "backtrack:budget_adjusted"
	KeyPersistFailures = "backtrack:persist_failures"
)
