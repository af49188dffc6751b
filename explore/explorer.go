package explore

import (
	"fmt"

	"github.com/rickchristie/backtrack"
)

// Selection picks one candidate from the filtered alternatives.
type Selection string

const (
	// BestFirst picks the candidate with the highest average diversity
	// against the three most recent map-shaped history entries.
	BestFirst Selection = "best_first"
	// BreadthFirst picks the first generated candidate.
	BreadthFirst Selection = "breadth_first"
	// DepthFirst picks the last generated candidate.
	DepthFirst Selection = "depth_first"
	// Random picks uniformly using Options.Rand.
	Random Selection = "random"
)

// Defaults.
const (
	DefaultBeamWidth    = 3
	DefaultMinDiversity = 0.3

	// TemperatureScale multiplies the temperature field.
	TemperatureScale = 1.2
	// BaseTemperature is scaled when the state has no temperature.
	BaseTemperature = 0.7

	// partialBacktrackIndex is the history entry merged by the backtrack
	// operator, clamped to the last entry.
	partialBacktrackIndex = 2
)

// State keys read by the operators.
const (
	KeyTemperature = "temperature"
	KeyStrategy    = "strategy"
)

// Strategies is the fixed set the strategy operator relabels into.
var Strategies = []string{"analytical", "creative", "systematic", "exploratory"}

// Options configures an Explorer.
type Options struct {
	// BeamWidth caps the number of generated candidates. Default 3.
	BeamWidth int `yaml:"beam_width"`

	// Strategy selects among filtered candidates. Default BestFirst.
	Strategy Selection `yaml:"strategy"`

	// MinDiversity is the EnsureDiversity threshold. Default 0.3.
	MinDiversity float64 `yaml:"min_diversity"`

	// DisableDiversity skips the diversity filter in GenerateAlternative
	// and GenerateAlternatives. BeamSearch keeps its own threshold.
	DisableDiversity bool `yaml:"disable_diversity"`

	// Rand drives strategy relabeling and Random selection.
	// Default is backtrack.DefaultRand.
	Rand backtrack.Rand `yaml:"-"`
}

// DefaultOptions returns the default explorer options.
func DefaultOptions() Options {
	return Options{
		BeamWidth:    DefaultBeamWidth,
		Strategy:     BestFirst,
		MinDiversity: DefaultMinDiversity,
		Rand:         backtrack.DefaultRand{},
	}
}

func (o Options) withDefaults() Options {
	if o.BeamWidth <= 0 {
		o.BeamWidth = DefaultBeamWidth
	}
	if o.Strategy == "" {
		o.Strategy = BestFirst
	}
	if o.MinDiversity <= 0 {
		o.MinDiversity = DefaultMinDiversity
	}
	if o.Rand == nil {
		o.Rand = backtrack.DefaultRand{}
	}
	return o
}

// Explorer generates alternative states. It holds no mutable state; the
// failed-path set and history are threaded by the caller.
type Explorer struct {
	opts Options
}

// New creates an Explorer. Zero-valued options take their defaults.
// Panics if opts.Strategy is not a known Selection.
func New(opts Options) *Explorer {
	opts = opts.withDefaults()
	switch opts.Strategy {
	case BestFirst, BreadthFirst, DepthFirst, Random:
	default:
		panic(fmt.Sprintf("explore: unknown selection strategy %q", opts.Strategy))
	}
	return &Explorer{opts: opts}
}

// Options returns the explorer's effective options.
func (e *Explorer) Options() Options {
	return e.opts
}

// GenerateAlternative proposes one alternative to state. Candidates whose
// hash is in failed, or that are too similar to recent history, are
// discarded. Returns backtrack.ErrNoAlternatives when nothing survives.
func (e *Explorer) GenerateAlternative(
	state backtrack.State,
	history []any,
	failed FailedPaths,
) (backtrack.State, error) {
	candidates := e.pipeline(state, history, e.opts.BeamWidth, e.minDiversity(), failed)
	if len(candidates) == 0 {
		return nil, backtrack.ErrNoAlternatives
	}
	return e.selectCandidate(candidates, history), nil
}

// GenerateAlternatives returns every candidate surviving the diversity
// filter, capped to beamWidth. A non-positive beamWidth uses the
// explorer's configured width.
func (e *Explorer) GenerateAlternatives(state backtrack.State, history []any, beamWidth int) []backtrack.State {
	if beamWidth <= 0 {
		beamWidth = e.opts.BeamWidth
	}
	return e.pipeline(state, history, beamWidth, e.minDiversity(), nil)
}

// minDiversity returns the configured threshold, or 0 when the filter is
// disabled.
func (e *Explorer) minDiversity() float64 {
	if e.opts.DisableDiversity {
		return 0
	}
	return e.opts.MinDiversity
}

// pipeline generates, caps, and filters candidates. A minDiversity <= 0
// skips the diversity filter.
func (e *Explorer) pipeline(
	state backtrack.State,
	history []any,
	beamWidth int,
	minDiversity float64,
	failed FailedPaths,
) []backtrack.State {
	candidates := e.generate(state, history)
	if len(candidates) > beamWidth {
		candidates = candidates[:beamWidth]
	}
	if len(failed) > 0 {
		kept := candidates[:0:0]
		for _, c := range candidates {
			if !failed.Attempted(c) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	if minDiversity <= 0 {
		return candidates
	}
	return EnsureDiversity(candidates, history, minDiversity)
}

// generate runs the three operators in order. Candidates structurally
// equal to the input are dropped.
func (e *Explorer) generate(state backtrack.State, history []any) []backtrack.State {
	inputHash := backtrack.Hash(state)
	var out []backtrack.State
	add := func(c backtrack.State, ok bool) {
		if ok && backtrack.Hash(c) != inputHash {
			out = append(out, c)
		}
	}
	add(scaleTemperature(state))
	add(e.relabelStrategy(state))
	add(partialBacktrack(state, history))
	return out
}

func scaleTemperature(state backtrack.State) (backtrack.State, bool) {
	base := BaseTemperature
	if v, ok := state[KeyTemperature]; ok {
		f, isNum := toFloat(v)
		if !isNum {
			return nil, false
		}
		base = f
	}
	out := state.Clone()
	out[KeyTemperature] = base * TemperatureScale
	return out, true
}

func (e *Explorer) relabelStrategy(state backtrack.State) (backtrack.State, bool) {
	current, _ := state[KeyStrategy].(string)
	choices := make([]string, 0, len(Strategies))
	for _, s := range Strategies {
		if s != current {
			choices = append(choices, s)
		}
	}
	out := state.Clone()
	out[KeyStrategy] = choices[e.opts.Rand.IntN(len(choices))]
	return out, true
}

func partialBacktrack(state backtrack.State, history []any) (backtrack.State, bool) {
	if len(history) == 0 {
		return nil, false
	}
	entry, ok := backtrack.AsState(history[min(partialBacktrackIndex, len(history)-1)])
	if !ok {
		return nil, false
	}
	out := state.Clone()
	for k, v := range entry {
		out[k] = v
	}
	return out, true
}

func (e *Explorer) selectCandidate(candidates []backtrack.State, history []any) backtrack.State {
	switch e.opts.Strategy {
	case BreadthFirst:
		return candidates[0]
	case DepthFirst:
		return candidates[len(candidates)-1]
	case Random:
		return candidates[e.opts.Rand.IntN(len(candidates))]
	default:
		recent := recentStates(history, selectionWindow)
		best := candidates[0]
		bestScore := averageDiversity(best, recent)
		for _, c := range candidates[1:] {
			if score := averageDiversity(c, recent); score > bestScore {
				best, bestScore = c, score
			}
		}
		return best
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
