// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns Grants.gov XML extracts into the CSV feed
// format the adapters read. The extract is a flat list of opportunity
// elements; each child element becomes a column. Rows whose close
// date has already passed are dropped before writing.
package convert

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// closeDateLayout is the Grants.gov extract close-date form, month
// day year with no separators.
const closeDateLayout = "01022006"

// Extract holds the parsed rows of one XML extract. Columns keep
// first-seen order across all rows; rows missing a column render as
// empty cells.
type Extract struct {
	Columns []string
	Rows    []map[string]string
}

// ReadExtract parses a Grants.gov XML extract. Every child element of
// the document root is one opportunity; its child elements map to
// columns by local name, ignoring namespaces.
func ReadExtract(path string) (*Extract, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening extract: %w", err)
	}
	defer f.Close()

	ex, err := decodeExtract(xml.NewDecoder(f))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ex, nil
}

func decodeExtract(dec *xml.Decoder) (*Extract, error) {
	ex := &Extract{}
	seen := make(map[string]bool)
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return ex, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth != 2 {
				continue
			}
			row, err := decodeRecord(dec, t)
			if err != nil {
				return nil, err
			}
			depth--
			for _, col := range row.order {
				if !seen[col] {
					seen[col] = true
					ex.Columns = append(ex.Columns, col)
				}
			}
			ex.Rows = append(ex.Rows, row.values)
		case xml.EndElement:
			depth--
		}
	}
}

type record struct {
	order  []string
	values map[string]string
}

// decodeRecord consumes one opportunity element. Direct children
// become columns; nested structure below them is flattened into the
// cell text.
func decodeRecord(dec *xml.Decoder, start xml.StartElement) (record, error) {
	rec := record{values: make(map[string]string)}
	var (
		col   string
		text  strings.Builder
		depth int
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			return rec, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				col = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth >= 1 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				return rec, nil // closed the opportunity element
			}
			depth--
			if depth == 0 {
				if _, dup := rec.values[col]; !dup {
					rec.order = append(rec.order, col)
				}
				rec.values[col] = strings.TrimSpace(text.String())
			}
		}
	}
}

// FilterClosed drops rows whose CloseDate parses and is before now,
// returning the number dropped. Rows with a missing or unparseable
// close date are kept; the adapters diagnose those later.
func (e *Extract) FilterClosed(now time.Time) int {
	kept := e.Rows[:0]
	dropped := 0
	for _, row := range e.Rows {
		if closed, ok := parseCloseDate(row["CloseDate"]); ok && closed.Before(now) {
			dropped++
			continue
		}
		kept = append(kept, row)
	}
	e.Rows = kept
	return dropped
}

func parseCloseDate(s string) (time.Time, bool) {
	s, _, _ = strings.Cut(s, ".")
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(closeDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// WriteCSV writes the extract as a feed CSV, replacing any existing
// file.
func (e *Extract) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(e.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	cells := make([]string, len(e.Columns))
	for _, row := range e.Rows {
		for i, col := range e.Columns {
			cells[i] = row[col]
		}
		if err := w.Write(cells); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ConvertExtract reads an XML extract, drops already-closed rows, and
// writes the CSV next to the input with the extension swapped. It
// returns the output path. Per-file status goes to w.
func ConvertExtract(xmlPath string, now time.Time, w io.Writer) (string, error) {
	ex, err := ReadExtract(xmlPath)
	if err != nil {
		return "", err
	}
	total := len(ex.Rows)
	dropped := ex.FilterClosed(now)

	outPath := strings.TrimSuffix(xmlPath, ".xml") + ".csv"
	if err := ex.WriteCSV(outPath); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "converted: %s (%d rows, %d already closed)\n", outPath, total-dropped, dropped)
	return outPath, nil
}
