package snapshot

import (
	"fmt"

	"github.com/rickchristie/backtrack"
	"gopkg.in/yaml.v3"
)

// codecVersion is bumped when the persisted stack layout changes.
const codecVersion = 1

type stackDocument struct {
	Version   int        `yaml:"version"`
	Snapshots []Snapshot `yaml:"snapshots"`
}

// decodedDocument mirrors stackDocument with plain maps. yaml.v3 reuses the
// target map type for nested mappings, so decoding straight into
// backtrack.State would turn every nested mapping into a State as well.
type decodedDocument struct {
	Version   int               `yaml:"version"`
	Snapshots []decodedSnapshot `yaml:"snapshots"`
}

type decodedSnapshot struct {
	ID          string         `yaml:"id"`
	TimestampMS int64          `yaml:"timestamp_ms"`
	Data        map[string]any `yaml:"data"`
	Metadata    map[string]any `yaml:"metadata"`
}

// EncodeStack renders a stack as YAML.
//
// Values round-trip through YAML, so decoded states hold YAML's native Go
// types: int, float64, string, bool, []any, and map[string]any.
func EncodeStack(stack Stack) ([]byte, error) {
	doc := stackDocument{Version: codecVersion, Snapshots: stack}
	if doc.Snapshots == nil {
		doc.Snapshots = Stack{}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode stack: %w", err)
	}
	return data, nil
}

// DecodeStack parses a stack produced by EncodeStack.
func DecodeStack(data []byte) (Stack, error) {
	var doc decodedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode stack: %w", err)
	}
	if doc.Version != codecVersion {
		return nil, fmt.Errorf(
			"decode stack: unsupported version %d (want %d)",
			doc.Version, codecVersion,
		)
	}
	stack := make(Stack, 0, len(doc.Snapshots))
	for _, snap := range doc.Snapshots {
		stack = append(stack, Snapshot{
			ID:          snap.ID,
			TimestampMS: snap.TimestampMS,
			Data:        backtrack.State(snap.Data),
			Metadata:    snap.Metadata,
		})
	}
	return stack, nil
}
