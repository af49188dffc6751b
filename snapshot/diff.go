package snapshot

import (
	"reflect"
	"slices"

	"github.com/rickchristie/backtrack"
)

// Change records the old and new value of a key present in both states.
type Change struct {
	Old any `yaml:"old"`
	New any `yaml:"new"`
}

// Diff describes how one state differs from another. Key lists are sorted.
type Diff struct {
	// Added holds keys present only in the newer state.
	Added []string `yaml:"added"`

	// Removed holds keys present only in the older state.
	Removed []string `yaml:"removed"`

	// Changed maps keys present in both states whose values differ.
	Changed map[string]Change `yaml:"changed"`

	// AddedValues holds the newer state's values for Added keys. Only set
	// when the diff was produced with CompareOptions.CarryAddedValues.
	AddedValues map[string]any `yaml:"added_values,omitempty"`
}

// IsEmpty reports whether the diff records no differences.
func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// CompareOptions tunes diff production.
type CompareOptions struct {
	// CarryAddedValues records added keys' values in Diff.AddedValues so
	// ApplyDiff can restore them. Off by default: classic diffs carry key
	// names only and ApplyDiff sets added keys to nil.
	CarryAddedValues bool
}

// CompareSnapshots diffs s1 (older) against s2 (newer).
func CompareSnapshots(s1, s2 Snapshot, opts ...CompareOptions) Diff {
	return CreateDiff(s2.Data, s1.Data, opts...)
}

// CreateDiff diffs previous against current.
func CreateDiff(current, previous backtrack.State, opts ...CompareOptions) Diff {
	var opt CompareOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	d := Diff{
		Added:   []string{},
		Removed: []string{},
		Changed: map[string]Change{},
	}
	for k, newVal := range current {
		oldVal, ok := previous[k]
		if !ok {
			d.Added = append(d.Added, k)
			continue
		}
		if !reflect.DeepEqual(oldVal, newVal) {
			d.Changed[k] = Change{Old: oldVal, New: newVal}
		}
	}
	for k := range previous {
		if _, ok := current[k]; !ok {
			d.Removed = append(d.Removed, k)
		}
	}
	slices.Sort(d.Added)
	slices.Sort(d.Removed)

	if opt.CarryAddedValues {
		d.AddedValues = make(map[string]any, len(d.Added))
		for _, k := range d.Added {
			d.AddedValues[k] = current[k]
		}
	}
	return d
}

// ApplyDiff replays diff onto a copy of state: added keys are set to their
// carried value (nil placeholder when the diff carries none), removed keys
// are deleted, and changed keys take their new value. state is not modified.
func ApplyDiff(state backtrack.State, diff Diff) backtrack.State {
	out := state.Clone()
	for _, k := range diff.Added {
		out[k] = diff.AddedValues[k]
	}
	for _, k := range diff.Removed {
		delete(out, k)
	}
	for k, c := range diff.Changed {
		out[k] = c.New
	}
	return out
}
