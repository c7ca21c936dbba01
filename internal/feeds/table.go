// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// table is an in-memory arena for one raw CSV feed: the header row mapped
// to column positions plus all data rows. Feed exporters disagree on
// column counts and quoting, so reads are lenient: a missing column or a
// short row yields "".
type table struct {
	cols map[string]int
	rows [][]string
}

// loadTable reads a whole CSV file into memory. Variable-width rows and
// stray quotes are tolerated; several exporters emit both.
func loadTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", path, err)
	}
	if len(records) == 0 {
		return &table{cols: map[string]int{}}, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	return &table{cols: cols, rows: records[1:]}, nil
}

func (t *table) len() int { return len(t.rows) }

// field returns the named column of a row, trimmed. Out-of-range rows
// and unknown or missing columns yield "".
func (t *table) field(row int, col string) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	i, ok := t.cols[col]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}
