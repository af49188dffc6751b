package deadend

import (
	"math"

	"github.com/rickchristie/backtrack"
)

// Reason names a heuristic that fired.
type Reason string

const (
	ReasonCustomPredicate     Reason = "custom_predicate"
	ReasonRepeatedFailures    Reason = "repeated_failures"
	ReasonCircularReasoning   Reason = "circular_reasoning"
	ReasonLowConfidence       Reason = "low_confidence"
	ReasonStalledProgress     Reason = "stalled_progress"
	ReasonConstraintViolation Reason = "constraint_violation"
)

// Defaults for Options.
const (
	DefaultRepetitionThreshold = 3
	DefaultConfidenceThreshold = 0.3
	DefaultStallThreshold      = 5

	// DefaultConfidence is returned by ExtractConfidence when the result
	// carries no numeric confidence field.
	DefaultConfidence = 0.7

	// circularWindow is how many recent history entries are checked for a
	// circular match.
	circularWindow = 5

	// severeBonus is added to the detection confidence when a severe reason
	// (constraint violation or circular reasoning) fired.
	severeBonus = 0.2
)

// Predicate is a domain-specific dead-end rule.
type Predicate func(result any, history []any) bool

// Options configures a Detector. Zero values are replaced by defaults.
type Options struct {
	RepetitionThreshold int     `yaml:"repetition_threshold"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	StallThreshold      int     `yaml:"stall_threshold"`

	// DisableLowConfidence turns the low-confidence heuristic off. A zero
	// ConfidenceThreshold takes the default, so this is the only way to
	// disable it.
	DisableLowConfidence bool `yaml:"disable_low_confidence"`

	// CustomPredicate, when set and true, marks the result as a dead end
	// and skips every other heuristic.
	CustomPredicate Predicate `yaml:"-"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		RepetitionThreshold: DefaultRepetitionThreshold,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		StallThreshold:      DefaultStallThreshold,
	}
}

func (o Options) withDefaults() Options {
	if o.RepetitionThreshold <= 0 {
		o.RepetitionThreshold = DefaultRepetitionThreshold
	}
	if o.ConfidenceThreshold <= 0 {
		o.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if o.StallThreshold <= 0 {
		o.StallThreshold = DefaultStallThreshold
	}
	return o
}

// Result is the outcome of DetectWithReasons.
type Result struct {
	IsDeadEnd bool
	Reasons   []Reason

	// Confidence is in [0, 1].
	Confidence float64
}

// Has reports whether reason fired.
func (r Result) Has(reason Reason) bool {
	for _, got := range r.Reasons {
		if got == reason {
			return true
		}
	}
	return false
}

// ReasonStrings returns the reasons as plain strings.
func (r Result) ReasonStrings() []string {
	out := make([]string, len(r.Reasons))
	for i, reason := range r.Reasons {
		out[i] = string(reason)
	}
	return out
}

// Detector answers "should this branch be abandoned?".
// A Detector is immutable and safe for concurrent use.
type Detector struct {
	opts Options
}

// New creates a Detector. Zero option fields take their defaults.
func New(opts Options) *Detector {
	return &Detector{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (d *Detector) Options() Options {
	return d.opts
}

// Detect reports whether result is a dead end.
func (d *Detector) Detect(result any, history []any) bool {
	return d.DetectWithReasons(result, history).IsDeadEnd
}

// DetectWithReasons evaluates every heuristic and reports which fired.
func (d *Detector) DetectWithReasons(result any, history []any) Result {
	if d.opts.CustomPredicate != nil && d.opts.CustomPredicate(result, history) {
		return Result{
			IsDeadEnd:  true,
			Reasons:    []Reason{ReasonCustomPredicate},
			Confidence: 1.0,
		}
	}

	var reasons []Reason
	if RepeatedFailures(result, history, d.opts.RepetitionThreshold) {
		reasons = append(reasons, ReasonRepeatedFailures)
	}
	if CircularReasoning(result, history) {
		reasons = append(reasons, ReasonCircularReasoning)
	}
	if !d.opts.DisableLowConfidence && LowConfidence(result, d.opts.ConfidenceThreshold) {
		reasons = append(reasons, ReasonLowConfidence)
	}
	if StalledProgress(history, d.opts.StallThreshold) {
		reasons = append(reasons, ReasonStalledProgress)
	}
	if ConstraintViolation(result) {
		reasons = append(reasons, ReasonConstraintViolation)
	}

	return Result{
		IsDeadEnd:  len(reasons) > 0,
		Reasons:    reasons,
		Confidence: confidence(reasons),
	}
}

func confidence(reasons []Reason) float64 {
	c := math.Min(0.25*float64(len(reasons)), 1.0)
	for _, r := range reasons {
		if r == ReasonConstraintViolation || r == ReasonCircularReasoning {
			return math.Min(c+severeBonus, 1.0)
		}
	}
	return c
}

// RepeatedFailures reports whether result occurs at least threshold times in
// history.
func RepeatedFailures(result any, history []any, threshold int) bool {
	h := backtrack.Hash(result)
	count := 0
	for _, entry := range history {
		if backtrack.Hash(entry) == h {
			count++
		}
	}
	return count >= threshold
}

// CircularReasoning reports whether result matches any of the last five
// history entries. Always false for histories shorter than three.
func CircularReasoning(result any, history []any) bool {
	if len(history) < 3 {
		return false
	}
	h := backtrack.Hash(result)
	for _, entry := range lastN(history, circularWindow) {
		if backtrack.Hash(entry) == h {
			return true
		}
	}
	return false
}

// LowConfidence reports whether ExtractConfidence(result) < threshold.
func LowConfidence(result any, threshold float64) bool {
	return ExtractConfidence(result) < threshold
}

// StalledProgress reports whether the last threshold history entries hold at
// most two distinct values. False when history is shorter than threshold.
func StalledProgress(history []any, threshold int) bool {
	if threshold <= 0 || len(history) < threshold {
		return false
	}
	distinct := make(map[uint64]struct{}, threshold)
	for _, entry := range lastN(history, threshold) {
		distinct[backtrack.Hash(entry)] = struct{}{}
	}
	return len(distinct) <= 2
}

// ConstraintViolation reports whether a map-shaped result has a truthy
// constraint_violated field.
func ConstraintViolation(result any) bool {
	s, ok := backtrack.AsState(result)
	if !ok {
		return false
	}
	return truthy(s["constraint_violated"])
}

// ExtractConfidence reads the numeric confidence field of a map-shaped
// result. Non-map results, and maps without a numeric confidence, yield
// DefaultConfidence.
func ExtractConfidence(result any) float64 {
	s, ok := backtrack.AsState(result)
	if !ok {
		return DefaultConfidence
	}
	if f, ok := toFloat(s["confidence"]); ok {
		return f
	}
	return DefaultConfidence
}

func lastN(history []any, n int) []any {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// truthy treats only nil and false as false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	default:
		return true
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}
