// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"math"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.db")
	want := testIndex()

	if err := SaveStore(path, want); err != nil {
		t.Fatalf("SaveStore: %v", err)
	}
	got, err := LoadStore(path)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}

	if got.Dim != want.Dim || len(got.Entries) != len(want.Entries) {
		t.Fatalf("got Dim=%d entries=%d, want Dim=%d entries=%d",
			got.Dim, len(got.Entries), want.Dim, len(want.Entries))
	}
	for i, e := range got.Entries {
		w := want.Entries[i]
		if e.Source != w.Source || e.Filename != w.Filename ||
			e.Row != w.Row || e.Description != w.Description {
			t.Errorf("entry %d = %+v, want %+v", i, e, w)
		}
		for j := range e.Vector {
			if e.Vector[j] != w.Vector[j] {
				t.Errorf("entry %d vector[%d] = %v, want %v", i, j, e.Vector[j], w.Vector[j])
			}
		}
	}
}

func TestSaveStoreReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.db")
	if err := SaveStore(path, testIndex()); err != nil {
		t.Fatal(err)
	}

	smaller := &Index{Dim: 3, Entries: testIndex().Entries[:1]}
	if err := SaveStore(path, smaller); err != nil {
		t.Fatal(err)
	}

	got, err := LoadStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 1 {
		t.Errorf("entries = %d, want 1 after rewrite", len(got.Entries))
	}
}

func TestVectorCodec(t *testing.T) {
	in := []float64{0, 1.5, -2.25, math.Pi}
	out, err := decodeVector(encodeVector(in), len(in))
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}

	if _, err := decodeVector([]byte{1, 2, 3}, 4); err == nil {
		t.Error("expected an error for a truncated blob")
	}
}

func TestLoadSaveDispatchByExtension(t *testing.T) {
	dir := t.TempDir()
	want := testIndex()

	dbPath := filepath.Join(dir, "ix.db")
	if err := Save(dbPath, want); err != nil {
		t.Fatal(err)
	}
	csvPath := filepath.Join(dir, "ix.csv")
	if err := Save(csvPath, want); err != nil {
		t.Fatal(err)
	}

	fromDB, err := Load(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	fromCSV, err := Load(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(fromDB.Entries) != len(want.Entries) || len(fromCSV.Entries) != len(want.Entries) {
		t.Errorf("db=%d csv=%d entries, want %d", len(fromDB.Entries), len(fromCSV.Entries), len(want.Entries))
	}
}
