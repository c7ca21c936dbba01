// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"feeds/NSF_S003", "NSF"},
		{"NSF_S003", "NSF"},
		{"/data/exports/GRANTS_S000.csv", "GRANTS"},
		{"GFORWARD_S012", "GFORWARD"},
		{"ARXIV_S000", "ARXIV"},
		{"plainname", "plainname"},
	}
	for _, tt := range tests {
		if got := KindFromPath(tt.path); got != tt.want {
			t.Errorf("KindFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRegistryKinds(t *testing.T) {
	want := []string{"ARXIV", "CMU", "EXTERNAL", "GFORWARD", "GRANTS", "NSF", "PIVOT", "SAM", "SCS"}
	got := Kinds()
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("Kinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Kinds() = %v, want %v", got, want)
		}
	}
}

func TestResolveUnknownKind(t *testing.T) {
	_, err := Resolve("FICTIONAL")
	if !errors.Is(err, ErrUnknownSourceKind) {
		t.Errorf("Resolve error = %v, want ErrUnknownSourceKind", err)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	_, err := Open("feeds/FICTIONAL_S000")
	if !errors.Is(err, ErrUnknownSourceKind) {
		t.Errorf("Open error = %v, want ErrUnknownSourceKind", err)
	}
}

func TestCacheReusesAdapter(t *testing.T) {
	path := writeFeed(t, "NSF_S000",
		"Title,Synopsis,Posted_date,Next_due_date\n"+
			"Quantum Sensing,Build better sensors,2025-01-02,2025-06-30\n")

	cache := NewCache()
	a1, err := cache.Get(path)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	a2, err := cache.Get(path)
	if err != nil {
		t.Fatalf("Get (cached): %v", err)
	}
	if a1 != a2 {
		t.Error("cache returned a different adapter for the same path")
	}
}

// writeFeed drops a feed fixture with the given file name into a temp
// dir and returns its path.
func writeFeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
