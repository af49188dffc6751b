package deadend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a compiled JSON Schema used to validate step results.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the schema document the Schema was compiled from.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates v against the schema. v is normalized through JSON
// first, so Go-typed values (ints, typed maps, structs) validate the same
// way their JSON encoding would.
func (s *Schema) Validate(v any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse value: %w", err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// CompileSchema compiles a raw JSON Schema document.
func CompileSchema(raw map[string]any) (*Schema, error) {
	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	schemaData, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("result.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := c.Compile("result.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompileSchema is like CompileSchema but panics on error.
// Use this for schemas defined at init time.
func MustCompileSchema(raw map[string]any) *Schema {
	s, err := CompileSchema(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// SchemaPredicate returns a Predicate that flags any result failing schema
// validation as a dead end. History is ignored.
//
//	schema := deadend.MustCompileSchema(map[string]any{
//	    "type":     "object",
//	    "required": []string{"answer"},
//	})
//	detector := deadend.New(deadend.Options{
//	    CustomPredicate: deadend.SchemaPredicate(schema),
//	})
func SchemaPredicate(schema *Schema) Predicate {
	return func(result any, _ []any) bool {
		return schema.Validate(result) != nil
	}
}

// AnyPredicate combines predicates; the result fires when any of them does.
func AnyPredicate(preds ...Predicate) Predicate {
	return func(result any, history []any) bool {
		for _, p := range preds {
			if p != nil && p(result, history) {
				return true
			}
		}
		return false
	}
}
