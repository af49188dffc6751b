package backtrack

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Counters(t *testing.T) {
	s := NewStats()

	s.IncrCounter(KeySteps, 4)
	s.IncrCounter(KeyDeadEnds, 1)
	s.IncrCounter(KeyDeadEndBy+"low_confidence", 1)
	s.IncrCounter(KeyDeadEndBy+"repeated_failures", 2)
	s.IncrCounter("myapp:custom", 7)

	assert.Equal(t, int64(4), s.GetCounter(KeySteps))
	assert.Equal(t, int64(0), s.GetCounter(KeyBacktracks))
	assert.Equal(t, int64(3), s.SumPrefix(KeyDeadEndBy))
	assert.Equal(t, int64(8), s.SumPrefix(KeyPrefix), "foreign prefixes are excluded")
	assert.Equal(t, int64(7), s.SumPrefix("myapp:"))

	counters := s.Counters()
	counters[KeySteps] = 100
	assert.Equal(t, int64(4), s.GetCounter(KeySteps), "Counters returns a copy")
}

func TestStats_IncrCounter_NegativePanics(t *testing.T) {
	assert.Panics(t, func() { NewStats().IncrCounter(KeySteps, -1) })
}

func TestStats_SuccessRate(t *testing.T) {
	tests := []struct {
		name     string
		steps    int64
		deadEnds int64
		expected float64
	}{
		{name: "no steps", steps: 0, deadEnds: 0, expected: 0},
		{name: "all good", steps: 4, deadEnds: 0, expected: 1},
		{name: "quarter dead", steps: 4, deadEnds: 1, expected: 0.75},
		{name: "all dead", steps: 2, deadEnds: 2, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStats()
			s.IncrCounter(KeySteps, tt.steps)
			s.IncrCounter(KeyDeadEnds, tt.deadEnds)
			assert.Equal(t, tt.expected, s.SuccessRate())
		})
	}
}

func TestStats_Concurrent(t *testing.T) {
	s := NewStats()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.IncrCounter(KeyAlternatives, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), s.GetCounter(KeyAlternatives))
}
