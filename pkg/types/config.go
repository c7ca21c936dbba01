// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"time"
)

// EmbeddingConfig holds settings for the embedding-model collaborator.
// The model is a black box: deterministic for a fixed Model identifier,
// with a fixed output dimensionality.
type EmbeddingConfig struct {
	// Model is the embedding model identifier (e.g. "text-embedding-3-small").
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the API endpoint for OpenAI-compatible providers.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key for the embeddings API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Dimensions requests a specific output dimensionality. Zero uses
	// the model default.
	Dimensions int `json:"dimensions" yaml:"dimensions"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries bounds retry attempts on rate limits and server errors
	// (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Quiet suppresses provider warning diagnostics. An explicit field
	// rather than an ambient environment toggle.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// IndexConfig holds settings for the persisted corpus index.
type IndexConfig struct {
	// IndexDir is the directory containing the index artifact (default "results").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// Path is the index file; extension selects the codec (.db or .csv).
	// A bare filename is placed inside IndexDir.
	Path string `json:"path" yaml:"path"`

	// TTL bounds how long a loaded index is reused before re-reading
	// from disk (default 10 minutes).
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// Workers sizes the embedding worker pool during index builds.
	// Zero uses half the CPU count.
	Workers int `json:"workers" yaml:"workers"`
}

// File resolves the index file location. A Path that already carries a
// directory component is used as-is.
func (c IndexConfig) File() string {
	if c.Path == "" || c.IndexDir == "" || filepath.Dir(c.Path) != "." {
		return c.Path
	}
	return filepath.Join(c.IndexDir, c.Path)
}

// SearchConfig holds settings for the retrieval stage.
type SearchConfig struct {
	// MaxResults is the number of results to return (default 3).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SinceYears restricts results to records whose close date falls
	// within the last N years. Values <= 0 disable the filter.
	SinceYears int `json:"since_years" yaml:"since_years"`

	// WidenFactor is the ranked-prefix multiplier used when filtering
	// or deduplication underfills the requested count (default 10).
	WidenFactor int `json:"widen_factor" yaml:"widen_factor"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Index     IndexConfig     `json:"index" yaml:"index"`
	Search    SearchConfig    `json:"search" yaml:"search"`
}
