package explore

import "github.com/rickchristie/backtrack"

// Beam search defaults.
const (
	DefaultMaxDepth = 10

	// beamMinDiversity is the diversity threshold used when expanding.
	beamMinDiversity = 0.5
)

// Validator reports whether a state is an acceptable solution.
type Validator func(backtrack.State) bool

// BeamOptions configures BeamSearch.
type BeamOptions struct {
	// BeamWidth caps both per-state expansion and the frontier. Default 3.
	BeamWidth int `yaml:"beam_width"`

	// MaxDepth bounds the number of expansion levels. Default 10.
	MaxDepth int `yaml:"max_depth"`

	// History is used for diversity filtering and partial backtracking
	// while expanding. Empty history disables diversity filtering.
	History []any `yaml:"-"`
}

// DefaultBeamOptions returns the default beam search options.
func DefaultBeamOptions() BeamOptions {
	return BeamOptions{BeamWidth: DefaultBeamWidth, MaxDepth: DefaultMaxDepth}
}

// BeamSearch explores level by level from initial. At each depth the first
// beam state accepted by validator is returned, without ranking. Otherwise
// every beam state is expanded through the candidate pipeline, visited
// hashes are dropped, and the frontier is capped to BeamWidth.
//
// Returns backtrack.ErrMaxDepthExceeded when MaxDepth levels were expanded
// without a match, or backtrack.ErrNoSolution when the frontier empties.
// Panics if validator is nil.
func (e *Explorer) BeamSearch(initial backtrack.State, validator Validator, opts BeamOptions) (backtrack.State, error) {
	if validator == nil {
		panic("explore: nil validator")
	}
	if opts.BeamWidth <= 0 {
		opts.BeamWidth = DefaultBeamWidth
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	beam := []backtrack.State{initial}
	visited := map[uint64]struct{}{backtrack.Hash(initial): {}}

	for depth := 0; ; depth++ {
		for _, s := range beam {
			if validator(s) {
				return s, nil
			}
		}
		if depth >= opts.MaxDepth {
			return nil, backtrack.ErrMaxDepthExceeded
		}

		var frontier []backtrack.State
	expand:
		for _, s := range beam {
			for _, c := range e.pipeline(s, opts.History, opts.BeamWidth, beamMinDiversity, nil) {
				h := backtrack.Hash(c)
				if _, seen := visited[h]; seen {
					continue
				}
				visited[h] = struct{}{}
				frontier = append(frontier, c)
				if len(frontier) == opts.BeamWidth {
					break expand
				}
			}
		}
		if len(frontier) == 0 {
			return nil, backtrack.ErrNoSolution
		}
		beam = frontier
	}
}
