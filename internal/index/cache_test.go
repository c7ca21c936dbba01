// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"path/filepath"
	"testing"
	"time"
)

func TestCacheReusesWithinTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ix.csv")
	if err := WriteCSV(path, testIndex()); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(10 * time.Minute)
	c.now = func() time.Time { return now }

	first, err := c.GetOrReload(path)
	if err != nil {
		t.Fatal(err)
	}

	// Rewrite the file; within the TTL the cached value must win.
	if err := WriteCSV(path, &Index{Dim: 3, Entries: testIndex().Entries[:1]}); err != nil {
		t.Fatal(err)
	}
	now = now.Add(9 * time.Minute)
	second, err := c.GetOrReload(path)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Error("cache reloaded before the TTL lapsed")
	}

	now = now.Add(2 * time.Minute)
	third, err := c.GetOrReload(path)
	if err != nil {
		t.Fatal(err)
	}
	if third == first {
		t.Error("cache did not reload after the TTL lapsed")
	}
	if len(third.Entries) != 1 {
		t.Errorf("reloaded entries = %d, want 1", len(third.Entries))
	}
}

func TestCacheReloadsOnPathChange(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")
	if err := WriteCSV(pathA, testIndex()); err != nil {
		t.Fatal(err)
	}
	if err := WriteCSV(pathB, &Index{Dim: 3, Entries: testIndex().Entries[:1]}); err != nil {
		t.Fatal(err)
	}

	c := NewCache(time.Hour)
	a, err := c.GetOrReload(pathA)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.GetOrReload(pathB)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected a fresh load for a different path")
	}
	if len(b.Entries) != 1 {
		t.Errorf("entries = %d, want 1", len(b.Entries))
	}
}

func TestNewCacheDefaultTTL(t *testing.T) {
	c := NewCache(0)
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}
