package backtrack

import (
	"math/rand/v2"
	"sync"
)

// Rand is the source of randomness for exploration choices (random strategy
// relabeling and random candidate selection). Inject a seeded Rand to make
// exploration reproducible in tests.
type Rand interface {
	// IntN returns a uniform int in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// DefaultRand uses the math/rand/v2 global source.
type DefaultRand struct{}

// NewDefaultRand creates a Rand backed by the global source.
func NewDefaultRand() *DefaultRand {
	return &DefaultRand{}
}

// IntN returns a uniform int in [0, n).
func (DefaultRand) IntN(n int) int {
	return rand.IntN(n)
}

// SeededRand is a deterministic Rand. Safe for concurrent use.
type SeededRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRand creates a deterministic Rand from a seed.
func NewSeededRand(seed uint64) *SeededRand {
	return &SeededRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform int in [0, n).
func (r *SeededRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// FixedRand always returns the same index (clamped to n-1). Useful for
// forcing a specific random choice in tests.
type FixedRand struct {
	Index int
}

// IntN returns Index clamped to [0, n).
func (r FixedRand) IntN(n int) int {
	if r.Index >= n {
		return n - 1
	}
	if r.Index < 0 {
		return 0
	}
	return r.Index
}

var (
	_ Rand = DefaultRand{}
	_ Rand = (*SeededRand)(nil)
	_ Rand = FixedRand{}
)
