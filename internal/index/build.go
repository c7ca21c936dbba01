// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/pdiddy/grant-meter/internal/embed"
	"github.com/pdiddy/grant-meter/internal/feeds"
)

// DefaultPattern matches the feed-export shard naming convention.
const DefaultPattern = "*_S*"

// Builder constructs the corpus index offline: it walks the feed files,
// collects one description per row, drops duplicate descriptions, and
// embeds the survivors through a bounded worker pool. Embedding calls
// are independent, so the pool shares no mutable state beyond the
// result slots.
type Builder struct {
	// FeedsDir is the directory holding raw feed files.
	FeedsDir string

	// Pattern filters feed files within FeedsDir (default DefaultPattern).
	Pattern string

	// Workers sizes the embedding pool. Zero uses half the CPU count,
	// minimum one.
	Workers int

	// Embedder computes the vectors.
	Embedder embed.Embedder
}

// BuildSummary holds counts from an index build run.
type BuildSummary struct {
	Files        int
	SkippedFiles int
	Rows         int
	Duplicates   int
	Embedded     int
}

// Build scans the feed files and returns the embedded index, writing
// per-file progress to w. A file whose tag has no registered adapter is
// skipped with a diagnostic; the build fails only when nothing at all
// could be indexed.
func (b *Builder) Build(ctx context.Context, w io.Writer) (*Index, BuildSummary, error) {
	var summary BuildSummary

	pattern := b.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	paths, err := filepath.Glob(filepath.Join(b.FeedsDir, pattern))
	if err != nil {
		return nil, summary, fmt.Errorf("globbing feeds: %w", err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, summary, fmt.Errorf("no feed files matching %s in %s", pattern, b.FeedsDir)
	}

	var entries []Entry
	for _, path := range paths {
		adapter, err := feeds.Open(path)
		if err != nil {
			fmt.Fprintf(w, "skipped %s: %v\n", filepath.Base(path), err)
			summary.SkippedFiles++
			continue
		}
		summary.Files++
		for row := 0; row < adapter.Len(); row++ {
			entries = append(entries, Entry{
				Source:      adapter.Kind(),
				Filename:    path,
				Row:         row,
				Description: adapter.Describe(row),
			})
		}
		fmt.Fprintf(w, "read    %s (%d rows)\n", filepath.Base(path), adapter.Len())
	}
	summary.Rows = len(entries)
	if len(entries) == 0 {
		return nil, summary, fmt.Errorf("no rows collected from %d feed file(s)", len(paths))
	}

	entries, dropped := dedupeDescriptions(entries)
	summary.Duplicates = dropped

	if err := b.embedAll(ctx, entries); err != nil {
		return nil, summary, err
	}
	summary.Embedded = len(entries)

	ix := &Index{Entries: entries, Dim: len(entries[0].Vector)}
	if err := ix.validate(); err != nil {
		return nil, summary, err
	}

	fmt.Fprintf(w, "\nindexed %d rows (%d duplicate descriptions dropped, %d file(s) skipped)\n",
		summary.Embedded, summary.Duplicates, summary.SkippedFiles)
	return ix, summary, nil
}

// dedupeDescriptions drops rows sharing a description, keeping the last
// occurrence in its original position.
func dedupeDescriptions(entries []Entry) ([]Entry, int) {
	last := make(map[string]int, len(entries))
	for i, e := range entries {
		last[e.Description] = i
	}
	out := make([]Entry, 0, len(last))
	for i, e := range entries {
		if last[e.Description] == i {
			out = append(out, e)
		}
	}
	return out, len(entries) - len(out)
}

// embedAll fills in each entry's vector via the worker pool. The first
// embedding error aborts the build; partial vectors are never persisted.
func (b *Builder) embedAll(ctx context.Context, entries []Entry) error {
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() / 2
	}
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range entries {
		wg.Add(1)
		idx := i
		submitErr := pool.Submit(func() {
			defer wg.Done()
			vec, err := b.Embedder.Embed(ctx, entries[idx].Description)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("embedding %s row %d: %w",
						entries[idx].Filename, entries[idx].Row, err)
				}
				mu.Unlock()
				return
			}
			entries[idx].Vector = vec
		})
		if submitErr != nil {
			wg.Done()
			return fmt.Errorf("submitting embedding task: %w", submitErr)
		}
	}
	wg.Wait()
	return firstErr
}
