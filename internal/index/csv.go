// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// The CSV interchange table has four metadata columns followed by one
// column per embedding dimension, named F0..F(D-1). External producers
// append rows in the same shape.
const metaCols = 4

// ReadCSV loads an index from the interchange table. The dimensionality
// is taken from the header; every row must match it.
func ReadCSV(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing index %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("index %s is empty", path)
	}

	header := records[0]
	if len(header) < metaCols ||
		header[0] != "source" || header[1] != "filename" ||
		header[2] != "row" || header[3] != "description" {
		return nil, fmt.Errorf("index %s: unexpected header %v", path, header[:min(len(header), metaCols)])
	}
	dim := len(header) - metaCols
	for i := 0; i < dim; i++ {
		if header[metaCols+i] != "F"+strconv.Itoa(i) {
			return nil, fmt.Errorf("index %s: embedding column %d named %q, want F%d",
				path, i, header[metaCols+i], i)
		}
	}

	ix := &Index{Dim: dim, Entries: make([]Entry, 0, len(records)-1)}
	for line, rec := range records[1:] {
		if len(rec) != metaCols+dim {
			return nil, fmt.Errorf("%w: index %s line %d has %d embedding columns, want %d",
				ErrDimensionMismatch, path, line+2, len(rec)-metaCols, dim)
		}
		row, err := strconv.Atoi(rec[2])
		if err != nil || row < 0 {
			return nil, fmt.Errorf("index %s line %d: bad row number %q", path, line+2, rec[2])
		}
		vec := make([]float64, dim)
		for i := 0; i < dim; i++ {
			v, err := strconv.ParseFloat(rec[metaCols+i], 64)
			if err != nil {
				return nil, fmt.Errorf("index %s line %d: bad F%d value %q", path, line+2, i, rec[metaCols+i])
			}
			vec[i] = v
		}
		ix.Entries = append(ix.Entries, Entry{
			Source:      rec[0],
			Filename:    rec[1],
			Row:         row,
			Description: rec[3],
			Vector:      vec,
		})
	}
	return ix, nil
}

// WriteCSV writes the full index as the interchange table, replacing
// any existing file.
func WriteCSV(path string, ix *Index) error {
	if err := ix.validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, metaCols+ix.Dim)
	header[0], header[1], header[2], header[3] = "source", "filename", "row", "description"
	for i := 0; i < ix.Dim; i++ {
		header[metaCols+i] = "F" + strconv.Itoa(i)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing index header: %w", err)
	}

	rec := make([]string, metaCols+ix.Dim)
	for _, e := range ix.Entries {
		rec[0] = e.Source
		rec[1] = e.Filename
		rec[2] = strconv.Itoa(e.Row)
		rec[3] = sanitizeDescription(e.Description)
		for i, v := range e.Vector {
			rec[metaCols+i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing index row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing index %s: %w", path, err)
	}
	return nil
}

// sanitizeDescription collapses carriage returns some feed exporters
// leave inside quoted cells.
func sanitizeDescription(s string) string {
	return strings.ReplaceAll(s, "\r", " ")
}
