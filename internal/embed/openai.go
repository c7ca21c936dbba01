// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/grant-meter/internal/httputil"
	"github.com/pdiddy/grant-meter/pkg/types"
)

const defaultModel = "text-embedding-3-small"

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
	dims   int
	warn   io.Writer
}

// NewOpenAI builds an embedder from the embedding configuration. Rate
// limits and transient server errors are retried by the HTTP transport;
// provider warnings go to stderr unless cfg.Quiet is set.
func NewOpenAI(cfg types.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &httputil.RetryTransport{
			MaxRetries: cfg.MaxRetries,
		},
	}

	var warn io.Writer = os.Stderr
	if cfg.Quiet {
		warn = io.Discard
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  openai.EmbeddingModel(model),
		dims:   cfg.Dimensions,
		warn:   warn,
	}, nil
}

// Model returns the embedding model identifier.
func (e *OpenAIEmbedder) Model() string { return string(e.model) }

// Embed computes the embedding for one text. An empty text embeds the
// empty string rather than erroring.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dims > 0 {
		req.Dimensions = e.dims
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response carried no data")
	}

	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, f := range raw {
		vec[i] = float64(f)
	}

	if e.dims > 0 && len(vec) != e.dims {
		fmt.Fprintf(e.warn, "warning: model %s returned %d dimensions, requested %d\n",
			e.model, len(vec), e.dims)
	}
	return vec, nil
}
