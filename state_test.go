package backtrack

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Clone(t *testing.T) {
	var nilState State
	assert.Equal(t, State{}, nilState.Clone())

	orig := State{"a": 1, "nested": []any{1, 2}}
	clone := orig.Clone()
	clone["a"] = 2
	clone["b"] = true

	assert.Equal(t, State{"a": 1, "nested": []any{1, 2}}, orig, "clone must not alias the top-level map")
}

func TestState_Keys(t *testing.T) {
	keys := State{"b": 1, "a": 2, "c": 3}.Keys()
	slices.Sort(keys)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Empty(t, State{}.Keys())
}

func TestAsState(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected State
		ok       bool
	}{
		{name: "state", input: State{"a": 1}, expected: State{"a": 1}, ok: true},
		{name: "plain map", input: map[string]any{"a": 1}, expected: State{"a": 1}, ok: true},
		{name: "nil state", input: State(nil), ok: false},
		{name: "nil map", input: map[string]any(nil), ok: false},
		{name: "other map type", input: map[string]int{"a": 1}, ok: false},
		{name: "string", input: "text", ok: false},
		{name: "nil", input: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsState(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
