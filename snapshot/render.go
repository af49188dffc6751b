package snapshot

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// RenderDiff returns a unified text diff between the YAML renderings of two
// snapshots' data. Identical data yields an empty string.
func RenderDiff(s1, s2 Snapshot) (string, error) {
	a, err := yaml.Marshal(s1.Data)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", s1.ID, err)
	}
	b, err := yaml.Marshal(s2.Data)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", s2.ID, err)
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: s1.ID,
		ToFile:   s2.ID,
		Context:  2,
	})
}
