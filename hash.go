package backtrack

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/hashstructure/v2"
)

// Hash computes the structural hash of a state or result value.
//
// Structurally equal values (same keys, equal values, regardless of map
// iteration order) hash to the same value within a process run. The hash is
// not guaranteed to be stable across versions and must not be persisted as a
// long-lived identifier.
//
// hashstructure folds bool into int8, so bool leaves inside State,
// map[string]any and []any values are tagged before hashing: false and
// int8(0) hash differently. Bools nested in other typed containers ([]bool,
// structs) are hashed as hashstructure does.
//
// Values hashstructure cannot walk (funcs, channels) fall back to an xxhash
// of their Go-syntax rendering.
func Hash(v any) uint64 {
	if s, ok := v.(State); ok {
		v = map[string]any(s)
	}
	h, err := hashstructure.Hash(tagBools(v), hashstructure.FormatV2, nil)
	if err == nil {
		return h
	}
	return xxhash.Sum64String(fmt.Sprintf("%#v", v))
}

// Equal reports whether two values are structurally equal by hash.
func Equal(a, b any) bool {
	return Hash(a) == Hash(b)
}

var (
	boolTrueHash  = xxhash.Sum64String("backtrack:bool:true")
	boolFalseHash = xxhash.Sum64String("backtrack:bool:false")
)

// boolLeaf implements hashstructure.Hashable. It is a struct because
// hashstructure converts bool-kinded values before checking Hashable.
type boolLeaf struct {
	value bool
}

func (b boolLeaf) Hash() (uint64, error) {
	if b.value {
		return boolTrueHash, nil
	}
	return boolFalseHash, nil
}

func tagBools(v any) any {
	switch x := v.(type) {
	case bool:
		return boolLeaf{value: x}
	case State:
		return tagBools(map[string]any(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = tagBools(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = tagBools(e)
		}
		return out
	default:
		return v
	}
}
