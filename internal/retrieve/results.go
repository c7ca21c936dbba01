// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import "github.com/pdiddy/grant-meter/pkg/types"

// ResultSet is an ordered list of materialized records, highest
// similarity first.
type ResultSet []types.Record

// Dedupe removes records whose Title exactly matches an earlier
// record's Title, keeping the first (highest-ranked) occurrence.
// Titles are compared byte for byte; records with an empty Title are
// never collapsed into each other. Dedupe is idempotent.
func (rs ResultSet) Dedupe() ResultSet {
	seen := make(map[string]bool, len(rs))
	out := rs[:0:0]
	for _, r := range rs {
		if r.Title != "" {
			if seen[r.Title] {
				continue
			}
			seen[r.Title] = true
		}
		out = append(out, r)
	}
	return out
}

// Truncate returns at most the first k records.
func (rs ResultSet) Truncate(k int) ResultSet {
	if k < 0 || k >= len(rs) {
		return rs
	}
	return rs[:k]
}
