// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/grant-meter/pkg/types"
)

// embeddingsStub mimics the embeddings endpoint, echoing back a fixed
// vector and recording the request.
func embeddingsStub(t *testing.T, vector []float64) (*httptest.Server, *map[string]any) {
	t.Helper()
	var lastReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&lastReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		resp := map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": vector},
			},
			"model": "text-embedding-3-small",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &lastReq
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(types.EmbeddingConfig{}); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestEmbed(t *testing.T) {
	srv, lastReq := embeddingsStub(t, []float64{0.25, -0.5, 1})

	e, err := NewOpenAI(types.EmbeddingConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Quiet:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.Model() != "text-embedding-3-small" {
		t.Errorf("Model = %q", e.Model())
	}

	vec, err := e.Embed(context.Background(), "autonomous robotics")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	want := []float64{0.25, -0.5, 1}
	if len(vec) != len(want) {
		t.Fatalf("len = %d, want %d", len(vec), len(want))
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("vec[%d] = %v, want %v", i, vec[i], want[i])
		}
	}

	input, ok := (*lastReq)["input"].([]any)
	if !ok || len(input) != 1 || input[0] != "autonomous robotics" {
		t.Errorf("request input = %v", (*lastReq)["input"])
	}
}

func TestEmbedRequestsDimensions(t *testing.T) {
	srv, lastReq := embeddingsStub(t, []float64{1, 2})

	e, err := NewOpenAI(types.EmbeddingConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/v1",
		Dimensions: 2,
		Quiet:      true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Embed(context.Background(), "text"); err != nil {
		t.Fatal(err)
	}
	if dims, ok := (*lastReq)["dimensions"].(float64); !ok || dims != 2 {
		t.Errorf("request dimensions = %v", (*lastReq)["dimensions"])
	}
}

func TestEmbedWarnsOnDimensionDisagreement(t *testing.T) {
	srv, _ := embeddingsStub(t, []float64{1, 2, 3})

	e, err := NewOpenAI(types.EmbeddingConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/v1",
		Dimensions: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	var warnings bytes.Buffer
	e.warn = &warnings

	vec, err := e.Embed(context.Background(), "text")
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 3 {
		t.Errorf("len = %d, want the provider's 3", len(vec))
	}
	if !strings.Contains(warnings.String(), "3 dimensions") {
		t.Errorf("warning = %q", warnings.String())
	}
}
