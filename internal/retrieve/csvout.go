// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pdiddy/grant-meter/pkg/types"
)

// seeURL replaces eligibility and location detail in exports. Those
// fields are long, feed-specific blobs; the opportunity page is the
// authoritative source.
const seeURL = "See URL"

// ExportCSV appends the results to path in the canonical column order,
// stamping every row with the prompt and query name that produced it.
// The header row is written only when the file does not yet exist, so
// successive queries accumulate in one file.
func ExportCSV(path string, results ResultSet, prompt, queryName string) error {
	writeHeader := false
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(types.Attributes); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, r := range results {
		r.Prompt = prompt
		r.QueryName = queryName
		r.Eligibility = seeURL
		r.ApplicantLocation = seeURL
		r.ActivityLocation = seeURL
		r.SubmissionDetails = seeURL

		row := make([]string, len(types.Attributes))
		for i, attr := range types.Attributes {
			row[i] = r.Field(attr)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ExportJSON writes the results as an indented JSON array, stamped the
// same way as the CSV export but with every field intact.
func ExportJSON(w io.Writer, results ResultSet, prompt, queryName string) error {
	out := make(ResultSet, len(results))
	for i, r := range results {
		r.Prompt = prompt
		r.QueryName = queryName
		out[i] = r
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
