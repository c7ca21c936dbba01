// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feeds normalizes heterogeneous funding-opportunity and
// publication feeds into the canonical record schema. Each feed type has
// its own adapter with feed-specific column mappings, date formats, and
// category code tables; the registry resolves a source-type tag (the
// leading token of the file name) to the adapter that can parse it.
package feeds

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/grant-meter/pkg/types"
)

// Diag receives non-fatal parse diagnostics (unrecognized dates, skipped
// rows). Declared as a var so tests can capture or silence it.
var Diag io.Writer = os.Stderr

func diagf(format string, args ...any) {
	fmt.Fprintf(Diag, format, args...)
}

// ErrUnknownSourceKind reports a source-type tag with no registered
// adapter. Fatal for the file carrying the tag, not for the whole run.
var ErrUnknownSourceKind = errors.New("unknown source kind")

// ErrMissingTitle reports a row whose title column is empty. The row is
// skipped and counted; the batch continues.
var ErrMissingTitle = errors.New("row has no title")

// Adapter parses one raw feed file. Implementations load the file once
// and serve per-row reads from memory.
type Adapter interface {
	// Kind returns the source-type tag this adapter handles.
	Kind() string

	// Len returns the number of data rows in the loaded file.
	Len() int

	// Describe returns the free text to embed for a row. Never panics on
	// a missing field; a row without the description column yields "".
	Describe(row int) string

	// Materialize populates a canonical record from a row, attaching the
	// similarity score. Malformed optional fields degrade to empty
	// values; only a missing title is an error (ErrMissingTitle).
	Materialize(row int, similarity float64) (types.Record, error)
}

// Constructor opens a raw feed file and returns its adapter.
type Constructor func(path string) (Adapter, error)

var registry = map[string]Constructor{}

// Register binds a source-type tag to an adapter constructor. Adapters
// register themselves from init; adding a feed type means adding one
// adapter file.
func Register(kind string, c Constructor) {
	registry[kind] = c
}

// Resolve returns the constructor for a source-type tag.
func Resolve(kind string) (Constructor, error) {
	c, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSourceKind, kind)
	}
	return c, nil
}

// Kinds returns the registered source-type tags.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindFromPath derives the source-type tag from a feed file's name: the
// token before the first underscore (e.g. "NSF_S003" → "NSF").
func KindFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return base
}

// Open resolves a feed file's tag and constructs its adapter.
func Open(path string) (Adapter, error) {
	c, err := Resolve(KindFromPath(path))
	if err != nil {
		return nil, err
	}
	return c(path)
}

// Cache holds one opened adapter per distinct feed file for the duration
// of a batch, so materializing several results from the same file parses
// it once.
type Cache struct {
	adapters map[string]Adapter
}

// NewCache returns an empty adapter cache.
func NewCache() *Cache {
	return &Cache{adapters: make(map[string]Adapter)}
}

// Get returns the adapter for a feed file, opening and caching it on
// first use.
func (c *Cache) Get(path string) (Adapter, error) {
	if a, ok := c.adapters[path]; ok {
		return a, nil
	}
	a, err := Open(path)
	if err != nil {
		return nil, err
	}
	c.adapters[path] = a
	return a, nil
}
