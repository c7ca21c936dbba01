// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieve ranks the corpus index against a prompt embedding and
// materializes canonical records for the top matches. One query is a
// single synchronous pass: rank the whole index, walk the ranked prefix,
// re-open raw feeds lazily through the adapter cache.
package retrieve

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/pdiddy/grant-meter/internal/feeds"
	"github.com/pdiddy/grant-meter/internal/index"
	"github.com/pdiddy/grant-meter/pkg/types"
)

// DefaultWidenFactor is the ranked-prefix multiplier for the widening
// search when filtering or deduplication underfills the requested count.
const DefaultWidenFactor = 10

// Ranked pairs an index entry with its similarity to the prompt.
type Ranked struct {
	Entry      index.Entry
	Similarity float64
}

// Cosine returns the cosine similarity of two equal-length vectors,
// defined as 0 when either vector has zero norm.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Engine ranks one loaded index. The index is read-only for the
// engine's lifetime; concurrent queries each get their own engine over
// the same index value.
type Engine struct {
	ix       *index.Index
	adapters *feeds.Cache

	// Widen is the prefix multiplier for widened selection (default
	// DefaultWidenFactor).
	Widen int

	// Now is the clock for recency cutoffs; tests substitute it.
	Now func() time.Time

	// Diag receives per-row materialization diagnostics.
	Diag io.Writer
}

// New returns an engine over the index with a fresh adapter cache.
func New(ix *index.Index) *Engine {
	return &Engine{
		ix:       ix,
		adapters: feeds.NewCache(),
		Widen:    DefaultWidenFactor,
		Now:      time.Now,
		Diag:     os.Stderr,
	}
}

// Rank computes the similarity of every index entry to the prompt
// vector and returns entries in descending similarity order. The sort
// is stable: ties keep original index order, and re-ranking an
// unchanged index yields an identical ordering. NaN similarities (from
// degenerate embeddings) rank below everything else but are never
// dropped.
func (e *Engine) Rank(prompt []float64) ([]Ranked, error) {
	if len(prompt) != e.ix.Dim {
		return nil, fmt.Errorf("%w: prompt has %d dimensions, index has %d",
			index.ErrDimensionMismatch, len(prompt), e.ix.Dim)
	}

	ranked := make([]Ranked, len(e.ix.Entries))
	for i, entry := range e.ix.Entries {
		ranked[i] = Ranked{Entry: entry, Similarity: Cosine(prompt, entry.Vector)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return sortKey(ranked[i].Similarity) > sortKey(ranked[j].Similarity)
	})
	return ranked, nil
}

// sortKey maps NaN to -Inf so degenerate similarities order
// deterministically at the bottom of the ranking.
func sortKey(sim float64) float64 {
	if math.IsNaN(sim) {
		return math.Inf(-1)
	}
	return sim
}

// Select materializes the window [start, start+count) of the ranked
// list after recency filtering. With sinceYears > 0, candidates whose
// CloseDate is empty or earlier than now minus sinceYears are dropped
// before the window is taken; with no filter an empty CloseDate is
// always included. A negative count means "everything". Rows that fail
// to materialize degrade to a diagnostic, except when every candidate
// failed on an unregistered source, which is a structural error.
func (e *Engine) Select(ranked []Ranked, start, count, sinceYears int) ([]types.Record, error) {
	var cutoff time.Time
	if sinceYears > 0 {
		cutoff = e.Now().AddDate(-sinceYears, 0, 0)
	}

	var (
		kept        []types.Record
		unknownKind int
		attempted   int
	)
	for _, r := range ranked {
		if count >= 0 && len(kept) >= start+count {
			break
		}
		attempted++

		adapter, err := e.adapters.Get(r.Entry.Filename)
		if err != nil {
			if errors.Is(err, feeds.ErrUnknownSourceKind) {
				unknownKind++
			}
			fmt.Fprintf(e.Diag, "skipped %s: %v\n", r.Entry.Filename, err)
			continue
		}

		rec, err := adapter.Materialize(r.Entry.Row, r.Similarity)
		if err != nil {
			fmt.Fprintf(e.Diag, "skipped %s row %d: %v\n", r.Entry.Filename, r.Entry.Row, err)
			continue
		}

		if sinceYears > 0 {
			closed, ok := parseCloseDate(rec.CloseDate)
			if !ok || closed.Before(cutoff) {
				continue
			}
		}
		kept = append(kept, rec)
	}

	if len(kept) == 0 && unknownKind > 0 && unknownKind == attempted {
		return nil, fmt.Errorf("%w: no registered adapter for any ranked source", feeds.ErrUnknownSourceKind)
	}

	if start >= len(kept) {
		return nil, nil
	}
	end := len(kept)
	if count >= 0 && start+count < end {
		end = start + count
	}
	return kept[start:end], nil
}

// TopK returns up to k deduplicated records from the top of the
// ranking. When the first k ranked candidates underfill after
// filtering and title deduplication, the selection widens to a
// Widen×k prefix; if even that underfills the shortfall is reported,
// not treated as an error.
func (e *Engine) TopK(ranked []Ranked, k, sinceYears int) ([]types.Record, int, error) {
	if k <= 0 {
		return nil, 0, nil
	}

	recs, err := e.Select(ranked, 0, k, sinceYears)
	if err != nil {
		return nil, 0, err
	}
	results := ResultSet(recs).Dedupe()

	if len(results) < k {
		widen := e.Widen
		if widen <= 1 {
			widen = DefaultWidenFactor
		}
		recs, err = e.Select(ranked, 0, widen*k, sinceYears)
		if err != nil {
			return nil, 0, err
		}
		results = ResultSet(recs).Dedupe()
	}

	results = results.Truncate(k)
	shortfall := k - len(results)
	if shortfall < 0 {
		shortfall = 0
	}
	return results, shortfall, nil
}

// parseCloseDate reads the normalized MM/DD/YYYY form.
func parseCloseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("01/02/2006", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
