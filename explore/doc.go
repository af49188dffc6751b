// Package explore generates diverse alternative states after a dead end.
//
// # Candidate Generation
//
// Three fixed operators each propose at most one candidate:
//
//   - temperature: scale the "temperature" field by 1.2
//   - strategy: relabel the "strategy" field to a different value from
//     [Strategies]
//   - backtrack: merge the history entry at index min(2, len(history)-1)
//     into the state
//
// Candidates are capped to the beam width, filtered against the caller's
// [FailedPaths], filtered by [EnsureDiversity], and finally one is picked
// by the configured [Selection].
//
//	ex := explore.New(explore.DefaultOptions())
//	alt, err := ex.GenerateAlternative(state, history, failed)
//	if errors.Is(err, backtrack.ErrNoAlternatives) {
//	    // relax filters, or backtrack to an earlier snapshot
//	}
//
// # Beam Search
//
// [Explorer.BeamSearch] runs a level-by-level search over the same
// candidate pipeline until a validator accepts a state.
package explore
