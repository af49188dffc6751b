package backtrack

// Event name constants follow the pattern "namespace:category:timing"; the
// timing segment is omitted for single events.
const (
	EventNameStepAfter            = "backtrack:step:after"
	EventNameDeadEnd              = "backtrack:dead_end"
	EventNameAlternativeGenerated = "backtrack:alternative:generated"
	EventNameBacktrack            = "backtrack:backtrack"
	EventNameBudgetExhausted      = "backtrack:budget:exhausted"
	EventNameSearchAfter          = "backtrack:search:after"
)
