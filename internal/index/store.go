// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

// The SQLite store keeps one row per corpus entry with the vector as a
// little-endian float64 blob. It is the primary on-disk format; the CSV
// codec exists for interchange with external producers.

const storeSchema = `CREATE TABLE IF NOT EXISTS embeddings (
	source TEXT NOT NULL,
	filename TEXT NOT NULL,
	row INTEGER NOT NULL,
	description TEXT NOT NULL,
	dim INTEGER NOT NULL,
	vector BLOB NOT NULL
)`

// SaveStore writes the index to a SQLite database, replacing any
// existing embeddings table contents.
func SaveStore(path string, ix *Index) error {
	if err := ix.validate(); err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(storeSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM embeddings`); err != nil {
		return fmt.Errorf("clearing embeddings: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO embeddings (source, filename, row, description, dim, vector)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range ix.Entries {
		if _, err := stmt.Exec(e.Source, e.Filename, e.Row, e.Description, ix.Dim, encodeVector(e.Vector)); err != nil {
			return fmt.Errorf("inserting entry %s row %d: %w", e.Filename, e.Row, err)
		}
	}
	return tx.Commit()
}

// LoadStore reads the full embeddings table. Entries with a dim field
// that disagrees with the first row fail the load.
func LoadStore(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening index store: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT source, filename, row, description, dim, vector FROM embeddings ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	ix := &Index{}
	for rows.Next() {
		var (
			e    Entry
			dim  int
			blob []byte
		)
		if err := rows.Scan(&e.Source, &e.Filename, &e.Row, &e.Description, &dim, &blob); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if ix.Dim == 0 {
			ix.Dim = dim
		} else if dim != ix.Dim {
			return nil, fmt.Errorf("%w: store mixes %d and %d dimensions", ErrDimensionMismatch, ix.Dim, dim)
		}
		e.Vector, err = decodeVector(blob, dim)
		if err != nil {
			return nil, fmt.Errorf("entry %s row %d: %w", e.Filename, e.Row, err)
		}
		ix.Entries = append(ix.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading embeddings: %w", err)
	}
	return ix, nil
}

func encodeVector(v []float64) []byte {
	buf := make([]byte, 8*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(f))
	}
	return buf
}

func decodeVector(blob []byte, dim int) ([]float64, error) {
	if len(blob) != 8*dim {
		return nil, fmt.Errorf("%w: vector blob is %d bytes, want %d", ErrDimensionMismatch, len(blob), 8*dim)
	}
	v := make([]float64, dim)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[8*i:]))
	}
	return v, nil
}
