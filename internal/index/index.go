// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists and loads the corpus embedding table: one row
// per feed record, carrying the record's provenance (source tag, origin
// file, row number), the text that was embedded, and its vector. The
// table is built offline and read-only for the lifetime of a query.
package index

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDimensionMismatch reports vectors of inconsistent dimensionality,
// either inside the index or between the index and a prompt. Fatal for
// the operation; no partial ranking is meaningful.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Entry is one corpus row: a stable reference back into a raw feed file
// plus the embedded description.
type Entry struct {
	// Source is the source-type tag resolving to a feed adapter.
	Source string

	// Filename is the origin feed file.
	Filename string

	// Row is the zero-based data row within the origin file.
	Row int

	// Description is the text the vector was computed from.
	Description string

	// Vector is the embedding, length Dim for every entry.
	Vector []float64
}

// Index is the loaded corpus table. Immutable during a query session.
type Index struct {
	Entries []Entry
	Dim     int
}

// validate checks every entry against the index dimensionality.
func (ix *Index) validate() error {
	for i, e := range ix.Entries {
		if len(e.Vector) != ix.Dim {
			return fmt.Errorf("%w: entry %d has %d dimensions, index has %d",
				ErrDimensionMismatch, i, len(e.Vector), ix.Dim)
		}
	}
	return nil
}

// FeedCount is the number of index entries originating from one feed.
type FeedCount struct {
	Feed  string
	Count int
}

// Stats returns per-feed entry counts, ordered by feed tag. The feed is
// the origin file's leading name token.
func (ix *Index) Stats() []FeedCount {
	counts := map[string]int{}
	for _, e := range ix.Entries {
		feed := filepath.Base(e.Filename)
		if i := strings.Index(feed, "_"); i >= 0 {
			feed = feed[:i]
		}
		counts[feed]++
	}
	feeds := make([]string, 0, len(counts))
	for f := range counts {
		feeds = append(feeds, f)
	}
	sort.Strings(feeds)
	out := make([]FeedCount, len(feeds))
	for i, f := range feeds {
		out[i] = FeedCount{Feed: f, Count: counts[f]}
	}
	return out
}

// Load reads an index file, selecting the codec by extension: .db for
// the SQLite store, anything else for the CSV interchange table.
func Load(path string) (*Index, error) {
	if strings.EqualFold(filepath.Ext(path), ".db") {
		return LoadStore(path)
	}
	return ReadCSV(path)
}

// Save writes an index file, selecting the codec the same way Load does.
func Save(path string, ix *Index) error {
	if strings.EqualFold(filepath.Ext(path), ".db") {
		return SaveStore(path, ix)
	}
	return WriteCSV(path, ix)
}
