package budget

import (
	"maps"
	"math"

	"github.com/rickchristie/backtrack"
)

// Defaults.
const (
	DefaultTotal            = 10
	DefaultReserveFraction  = 0.2
	DefaultAllocationFactor = 0.4
	DefaultEstimateDepth    = 3
	DefaultBranchingFactor  = 2

	// highSuccessRate and lowSuccessRate bound AdjustBySuccessRate's
	// no-op band.
	highSuccessRate = 0.7
	lowSuccessRate  = 0.3

	// maxReserveBoost caps how much a low success rate draws from reserve.
	maxReserveBoost = 2
)

// Budget is an immutable exploration budget.
type Budget struct {
	Total     int `yaml:"total" json:"total"`
	Remaining int `yaml:"remaining" json:"remaining"`
	Used      int `yaml:"used" json:"used"`

	// LevelAllocations records per-level accounting entries. Allocations
	// do not move units; spend still flows through Consume.
	LevelAllocations map[int]int `yaml:"level_allocations" json:"level_allocations"`

	PriorityReserve int `yaml:"priority_reserve" json:"priority_reserve"`

	// AddedBack is the total ever moved into Remaining after creation.
	AddedBack int `yaml:"added_back" json:"added_back"`
}

// Option configures New.
type Option func(*Budget)

// WithPriorityReserve overrides the default reserve of floor(total*0.2).
// Panics if n is negative.
func WithPriorityReserve(n int) Option {
	if n < 0 {
		panic("backtrack: priority reserve must be >= 0")
	}
	return func(b *Budget) {
		b.PriorityReserve = n
	}
}

// New creates a budget with total units in the general pool.
// The priority reserve is held on top of total.
// Panics if total is negative.
func New(total int, opts ...Option) Budget {
	if total < 0 {
		panic("backtrack: budget total must be >= 0")
	}
	b := Budget{
		Total:            total,
		Remaining:        total,
		LevelAllocations: map[int]int{},
		PriorityReserve:  int(math.Floor(float64(total) * DefaultReserveFraction)),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Default returns New(DefaultTotal).
func Default() Budget {
	return New(DefaultTotal)
}

// clone copies b including its allocation map.
func (b Budget) clone() Budget {
	b.LevelAllocations = maps.Clone(b.LevelAllocations)
	if b.LevelAllocations == nil {
		b.LevelAllocations = map[int]int{}
	}
	return b
}

// HasBudget reports whether the general pool has any units left.
func (b Budget) HasBudget() bool {
	return b.Remaining > 0
}

// Consume spends min(amount, Remaining) units. Negative amounts are ignored.
func (b Budget) Consume(amount int) Budget {
	spend := min(max(amount, 0), b.Remaining)
	out := b.clone()
	out.Remaining -= spend
	out.Used += spend
	return out
}

// AllocateForLevel records floor(Remaining*factor) as level's allocation.
// A factor <= 0 takes DefaultAllocationFactor. Returns ErrInsufficientBudget
// when the allocation rounds to zero; the receiver is returned unchanged in
// that case.
func (b Budget) AllocateForLevel(level int, factor float64) (int, Budget, error) {
	if factor <= 0 {
		factor = DefaultAllocationFactor
	}
	levelBudget := int(math.Floor(float64(b.Remaining) * factor))
	if levelBudget <= 0 {
		return 0, b, backtrack.ErrInsufficientBudget
	}
	out := b.clone()
	out.LevelAllocations[level] = levelBudget
	return levelBudget, out, nil
}

// LevelBudget returns level's recorded allocation, 0 if absent.
func (b Budget) LevelBudget(level int) int {
	return b.LevelAllocations[level]
}

// AllocatePriority moves amount units from the priority reserve into the
// general pool. Returns ErrInsufficientPriorityReserve when the reserve is
// smaller than amount.
func (b Budget) AllocatePriority(amount int) (Budget, error) {
	if amount < 0 {
		amount = 0
	}
	if b.PriorityReserve < amount {
		return b, backtrack.ErrInsufficientPriorityReserve
	}
	out := b.clone()
	out.PriorityReserve -= amount
	out.Remaining += amount
	out.AddedBack += amount
	return out, nil
}

// Utilization returns Used/Total, or 0 when Total is zero.
func (b Budget) Utilization() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Used) / float64(b.Total)
}

// Exhausted reports whether both the general pool and the priority reserve
// are empty.
func (b Budget) Exhausted() bool {
	return b.Remaining == 0 && b.PriorityReserve == 0
}

// HandleExhaustion returns the first candidate, or false when there are
// none. It does not rank: callers wanting the best candidate must pre-sort.
func HandleExhaustion[T any](_ Budget, candidates []T) (T, bool) {
	if len(candidates) == 0 {
		var zero T
		return zero, false
	}
	return candidates[0], true
}

// ReallocateUnused returns the allocations of the given completed levels to
// the general pool and drops their entries.
func (b Budget) ReallocateUnused(completed ...int) Budget {
	out := b.clone()
	reclaimed := 0
	for _, level := range completed {
		reclaimed += out.LevelAllocations[level]
		delete(out.LevelAllocations, level)
	}
	out.Remaining += reclaimed
	out.AddedBack += reclaimed
	return out
}

// AdjustBySuccessRate adapts the general pool to how well exploration is
// going:
//
//   - rate > 0.7: Remaining shrinks by 20%, never below 1 (a zero pool stays
//     zero)
//   - rate < 0.3 with a non-empty reserve: min(2, reserve) units move from
//     the reserve into Remaining
//   - otherwise: unchanged
func (b Budget) AdjustBySuccessRate(rate float64) Budget {
	switch {
	case rate > highSuccessRate:
		if b.Remaining == 0 {
			return b
		}
		out := b.clone()
		out.Remaining = max(int(math.Floor(float64(b.Remaining)*0.8)), 1)
		return out
	case rate < lowSuccessRate && b.PriorityReserve > 0:
		boost := min(maxReserveBoost, b.PriorityReserve)
		out := b.clone()
		out.PriorityReserve -= boost
		out.Remaining += boost
		out.AddedBack += boost
		return out
	default:
		return b
	}
}

// EstimateOptions configures EstimateRequired.
type EstimateOptions struct {
	Depth           int
	BranchingFactor int
}

// EstimateRequired estimates the budget needed to search a tree:
// BranchingFactor^Depth, truncated. Zero fields take defaults (3 and 2).
// state is accepted for interface symmetry and currently unused.
func EstimateRequired(_ backtrack.State, opts EstimateOptions) int {
	if opts.Depth <= 0 {
		opts.Depth = DefaultEstimateDepth
	}
	if opts.BranchingFactor <= 0 {
		opts.BranchingFactor = DefaultBranchingFactor
	}
	return int(math.Pow(float64(opts.BranchingFactor), float64(opts.Depth)))
}

// Report is a read-only view of a budget.
type Report struct {
	Total            int         `yaml:"total" json:"total"`
	Remaining        int         `yaml:"remaining" json:"remaining"`
	Used             int         `yaml:"used" json:"used"`
	LevelAllocations map[int]int `yaml:"level_allocations" json:"level_allocations"`
	PriorityReserve  int         `yaml:"priority_reserve" json:"priority_reserve"`
	AddedBack        int         `yaml:"added_back" json:"added_back"`
	Utilization      float64     `yaml:"utilization" json:"utilization"`
	Exhausted        bool        `yaml:"exhausted" json:"exhausted"`
}

// Report snapshots every field plus computed utilization and exhaustion.
func (b Budget) Report() Report {
	return Report{
		Total:            b.Total,
		Remaining:        b.Remaining,
		Used:             b.Used,
		LevelAllocations: maps.Clone(b.LevelAllocations),
		PriorityReserve:  b.PriorityReserve,
		AddedBack:        b.AddedBack,
		Utilization:      b.Utilization(),
		Exhausted:        b.Exhausted(),
	}
}
