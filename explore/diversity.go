package explore

import (
	"reflect"

	"github.com/rickchristie/backtrack"
)

// Windows over the most recent map-shaped history entries.
const (
	diversityWindow = 5
	selectionWindow = 3
)

// DiversityScore measures how different two states are, in [0, 1]. It
// averages the Jaccard distance of the key sets with the fraction of shared
// keys whose values differ. DiversityScore(x, x) is 0 and the score is
// symmetric.
func DiversityScore(s1, s2 backtrack.State) float64 {
	union := len(s1)
	shared := 0
	differing := 0
	for k, v1 := range s1 {
		v2, ok := s2[k]
		if !ok {
			continue
		}
		shared++
		if !reflect.DeepEqual(v1, v2) {
			differing++
		}
	}
	union += len(s2) - shared

	var keyDistance, valueDistance float64
	if union > 0 {
		keyDistance = 1 - float64(shared)/float64(union)
	}
	if shared > 0 {
		valueDistance = float64(differing) / float64(shared)
	}
	return (keyDistance + valueDistance) / 2
}

// EnsureDiversity keeps the alternatives whose average DiversityScore
// against the five most recent map-shaped history entries is at least
// minDiversity. When history holds no map-shaped entry, alternatives are
// returned unfiltered.
func EnsureDiversity(alternatives []backtrack.State, history []any, minDiversity float64) []backtrack.State {
	recent := recentStates(history, diversityWindow)
	if len(recent) == 0 {
		return alternatives
	}
	var kept []backtrack.State
	for _, alt := range alternatives {
		if averageDiversity(alt, recent) >= minDiversity {
			kept = append(kept, alt)
		}
	}
	return kept
}

// recentStates returns up to n map-shaped entries, scanning from the end of
// history. The result is ordered oldest first.
func recentStates(history []any, n int) []backtrack.State {
	var out []backtrack.State
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		if s, ok := backtrack.AsState(history[i]); ok {
			out = append(out, s)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func averageDiversity(s backtrack.State, others []backtrack.State) float64 {
	if len(others) == 0 {
		return 0.5
	}
	total := 0.0
	for _, o := range others {
		total += DiversityScore(s, o)
	}
	return total / float64(len(others))
}
