// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import (
	"strings"
	"time"
)

// outputDateLayout is the canonical MM/DD/YYYY form every adapter
// normalizes into.
const outputDateLayout = "01/02/2006"

// normalizeDate tries each layout in order and returns the first match
// formatted as MM/DD/YYYY. The second return is false when no layout
// matches; callers emit a diagnostic and leave the field empty. An
// unparseable date never aborts a row.
func normalizeDate(raw string, layouts []string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(outputDateLayout), true
		}
	}
	return "", false
}

// normalizeDateDiag is normalizeDate plus the per-feed diagnostic the
// adapters share.
func normalizeDateDiag(kind, raw string, layouts []string) string {
	s, ok := normalizeDate(raw, layouts)
	if !ok {
		diagf("%s: unrecognized date format %q\n", kind, raw)
	}
	return s
}

// stripFraction drops a trailing fractional-seconds component ("...12:30:05.123")
// or a float artifact ("10152024.0") before date parsing.
func stripFraction(raw string) string {
	if i := strings.Index(raw, "."); i >= 0 {
		return strings.TrimSpace(raw[:i])
	}
	return raw
}
