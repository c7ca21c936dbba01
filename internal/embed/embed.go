// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed wraps the embedding-model inference call. The model is
// an external collaborator: deterministic for a fixed model identifier,
// fixed output dimensionality, no training or fine-tuning here.
package embed

import "context"

// Embedder computes a dense vector for a piece of free text. An empty
// string is a degenerate but defined input: implementations return a
// vector, never an error, for it.
type Embedder interface {
	// Embed returns the embedding of text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Model returns the model identifier the vectors are tied to.
	Model() string
}
