// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testIndex() *Index {
	return &Index{
		Dim: 3,
		Entries: []Entry{
			{Source: "NSF", Filename: "feeds/NSF_S000", Row: 0,
				Description: "Advance health informatics", Vector: []float64{0.1, -0.2, 0.3}},
			{Source: "GRANTS", Filename: "feeds/GRANTS_S001", Row: 4,
				Description: "Fund climate adaptation,\n with commas", Vector: []float64{1, 0, 0}},
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.csv")
	want := testIndex()

	if err := WriteCSV(path, want); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if got.Dim != want.Dim || len(got.Entries) != len(want.Entries) {
		t.Fatalf("got Dim=%d entries=%d, want Dim=%d entries=%d",
			got.Dim, len(got.Entries), want.Dim, len(want.Entries))
	}
	for i, e := range got.Entries {
		w := want.Entries[i]
		if e.Source != w.Source || e.Filename != w.Filename || e.Row != w.Row {
			t.Errorf("entry %d = %+v, want %+v", i, e, w)
		}
		for j := range e.Vector {
			if e.Vector[j] != w.Vector[j] {
				t.Errorf("entry %d vector[%d] = %v, want %v", i, j, e.Vector[j], w.Vector[j])
			}
		}
	}
}

func TestCSVHeaderNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.csv")
	if err := WriteCSV(path, testIndex()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(string(data), "\n", 2)[0]
	if first != "source,filename,row,description,F0,F1,F2" {
		t.Errorf("header = %q", first)
	}
}

func TestReadCSVRejectsBadHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong meta column", "source,file,row,description,F0\nNSF,a,0,x,0.5\n"},
		{"wrong embedding column", "source,filename,row,description,F0,F9\nNSF,a,0,x,0.5,0.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := ReadCSV(path); err == nil {
				t.Error("expected a header error")
			}
		})
	}
}

func TestReadCSVRowWidthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "source,filename,row,description,F0,F1\n" +
		"NSF,feeds/NSF_S000,0,text,0.1,0.2\n" +
		"NSF,feeds/NSF_S000,1,text,0.3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadCSV(path)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestSanitizeDescription(t *testing.T) {
	if got := sanitizeDescription("a\rb\r\nc"); got != "a b \nc" {
		t.Errorf("got %q", got)
	}
}
