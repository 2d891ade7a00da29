// Package reputation scores publication venues against a keyword table.
package reputation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table maps lowercase venue keywords to reputation scores.
//
// A table is built once at startup and never mutated; callers share it
// freely across entries.
type Table map[string]int

// DefaultTable returns the built-in venue reputation table.
func DefaultTable() Table {
	return Table{
		"acm":      100,
		"ieee":     100,
		"neurips":  95,
		"icml":     95,
		"iclr":     95,
		"cvpr":     95,
		"iccv":     95,
		"eccv":     95,
		"nips":     95,
		"springer": 90,
		"aaai":     90,
		"ijcai":    90,
		"acl":      90,
		"emnlp":    90,
		"naacl":    90,
		"jmlr":     90,
		"pmlr":     85,
		"arxiv":    50,
		"pdf":      30,
	}
}

// Load reads a keyword→score table from a YAML file. Keywords are
// lowercased; scores must be non-negative.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]int
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: reputation table is empty", path)
	}

	t := make(Table, len(raw))
	for k, v := range raw {
		if v < 0 {
			return nil, fmt.Errorf("%s: keyword %q has negative score %d", path, k, v)
		}
		t[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return t, nil
}

// Score returns the maximum score of any table keyword appearing as a
// substring of text (case-insensitive), or 0 if none match.
func (t Table) Score(text string) int {
	lower := strings.ToLower(text)
	max := 0
	for keyword, score := range t {
		if score > max && strings.Contains(lower, keyword) {
			max = score
		}
	}
	return max
}
