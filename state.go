package backtrack

import "maps"

// State is an opaque associative value produced by the caller's step
// executor. Keys and values are caller-defined; the engine only hashes,
// compares, and copies them.
type State map[string]any

// Clone returns a shallow copy of the state. Nested values are shared.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	return maps.Clone(s)
}

// Keys returns the state's keys in unspecified order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// AsState reports whether v is map-shaped and returns it as a State.
// Both State and map[string]any are accepted.
func AsState(v any) (State, bool) {
	switch m := v.(type) {
	case State:
		return m, m != nil
	case map[string]any:
		return State(m), m != nil
	default:
		return nil, false
	}
}
