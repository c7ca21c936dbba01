// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeQueryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadQueryFile(t *testing.T) {
	path := writeQueryFile(t, `queries:
  - name: robotics
    prompt: Autonomous manipulation for agricultural robotics
    top: 5
    since_years: 1
  - prompt: Foundations of federated learning
`)

	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}
	if len(qf.Queries) != 2 {
		t.Fatalf("queries = %d, want 2", len(qf.Queries))
	}

	q := qf.Queries[0]
	if q.Name != "robotics" || q.TopK != 5 || q.SinceYears != 1 {
		t.Errorf("query 0 = %+v", q)
	}

	// A nameless query gets a positional name.
	if qf.Queries[1].Name != "query-1" {
		t.Errorf("query 1 name = %q, want query-1", qf.Queries[1].Name)
	}
}

// A negative since_years means no recency filtering, like the --since
// flag, so it is accepted rather than rejected.
func TestReadQueryFileNegativeSince(t *testing.T) {
	path := writeQueryFile(t, "queries:\n  - prompt: p\n    since_years: -2\n")
	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}
	if qf.Queries[0].SinceYears != -2 {
		t.Errorf("SinceYears = %d, want -2", qf.Queries[0].SinceYears)
	}
}

func TestReadQueryFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty list", "queries: []\n", "no queries"},
		{"missing prompt", "queries:\n  - name: x\n", "has no prompt"},
		{"bad yaml", "queries: [\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeQueryFile(t, tt.content)
			_, err := ReadQueryFile(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadQueryFileMissing(t *testing.T) {
	if _, err := ReadQueryFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
