// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a batch of named queries.
// One file drives a whole funding scan: each query runs against the
// same index and appends to the same export.
type QueryFile struct {
	Queries []Query `yaml:"queries"`
}

// Query is one named prompt with its selection parameters.
type Query struct {
	Name   string `yaml:"name"`
	Prompt string `yaml:"prompt"`

	// TopK is the number of picks for this query; zero inherits the
	// command-line default.
	TopK int `yaml:"top,omitempty"`

	// SinceYears drops opportunities that closed more than this many
	// years ago; values <= 0 disable the filter.
	SinceYears int `yaml:"since_years,omitempty"`
}

// ReadQueryFile loads a query batch from a YAML file and validates it.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	if len(qf.Queries) == 0 {
		return nil, fmt.Errorf("query file %s has no queries", path)
	}
	for i, q := range qf.Queries {
		if q.Prompt == "" {
			return nil, fmt.Errorf("query %d (%q) has no prompt", i, q.Name)
		}
		if q.Name == "" {
			qf.Queries[i].Name = fmt.Sprintf("query-%d", i)
		}
	}
	return &qf, nil
}
