// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import (
	"bytes"
	"io"
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		layouts []string
		want    string
		wantOK  bool
	}{
		{"iso date", "2025-08-15", []string{"2006-01-02"}, "08/15/2025", true},
		{"already normalized", "08/15/2025", []string{"01/02/2006"}, "08/15/2025", true},
		{"two digit year", "3/7/25", []string{"01/02/06"}, "03/07/2025", true},
		{"long form", "January 5, 2026", []string{"January 2, 2006"}, "01/05/2026", true},
		{"packed digits", "10152024", []string{"01022006"}, "10/15/2024", true},
		{"second layout wins", "2024-12-01", []string{"01022006", "2006-01-02"}, "12/01/2024", true},
		{"empty is fine", "", []string{"2006-01-02"}, "", true},
		{"whitespace only", "   ", []string{"2006-01-02"}, "", true},
		{"garbage", "whenever", []string{"2006-01-02"}, "", false},
		{"wrong layout", "15/08/2025", []string{"2006-01-02"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeDate(tt.raw, tt.layouts)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("normalizeDate(%q) = (%q, %v), want (%q, %v)",
					tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeDateDiag(t *testing.T) {
	var buf bytes.Buffer
	old := Diag
	Diag = &buf
	t.Cleanup(func() { Diag = old })

	if got := normalizeDateDiag("NSF", "not a date", []string{"2006-01-02"}); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if buf.Len() == 0 {
		t.Error("expected a diagnostic for an unrecognized date")
	}

	buf.Reset()
	if got := normalizeDateDiag("NSF", "2025-01-31", []string{"2006-01-02"}); got != "01/31/2025" {
		t.Errorf("got %q, want 01/31/2025", got)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected diagnostic: %q", buf.String())
	}
}

func TestStripFraction(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"10152024.0", "10152024"},
		{"2025-03-01 00:00:00.123", "2025-03-01 00:00:00"},
		{"10152024", "10152024"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripFraction(tt.raw); got != tt.want {
			t.Errorf("stripFraction(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func silenceDiag(t *testing.T) {
	t.Helper()
	old := Diag
	Diag = io.Discard
	t.Cleanup(func() { Diag = old })
}
