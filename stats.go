package backtrack

import (
	"maps"
	"strings"
	"sync"
)

// Stats contains monotonically increasing counters for a search session.
// All standard keys are prefixed with "backtrack:" (see stats_keys.go).
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type Stats struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{counters: make(map[string]int64)}
}

// IncrCounter increments a counter by delta. Creates the counter if it
// doesn't exist.
//
// Panics if delta is negative (counters only go up).
func (s *Stats) IncrCounter(key string, delta int64) {
	if delta < 0 {
		panic("backtrack: IncrCounter called with negative delta")
	}
	s.mu.Lock()
	s.counters[key] += delta
	s.mu.Unlock()
}

// GetCounter returns the counter value, 0 if absent.
func (s *Stats) GetCounter(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// SumPrefix sums every counter whose key starts with prefix.
func (s *Stats) SumPrefix(prefix string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for k, v := range s.counters {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

// Counters returns a copy of all counters.
func (s *Stats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.counters)
}

// SuccessRate returns the share of steps that were not dead ends,
// or 0 when no step has run.
func (s *Stats) SuccessRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	steps := s.counters[KeySteps]
	if steps == 0 {
		return 0
	}
	return float64(steps-s.counters[KeyDeadEnds]) / float64(steps)
}
