package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"listing-dedup/models"
)

// CSVWriter exports a dataset as CSV, keeping the input column order.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter for the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write creates (or truncates) the file and writes the header followed by
// one row per record. Absent and nil values become empty cells.
// Intermediate directories are created automatically.
func (c *CSVWriter) Write(ctx context.Context, ds *models.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", c.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write header: %w", err)
	}

	row := make([]string, len(ds.Columns))
	for i, rec := range ds.Records {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				_ = f.Close()
				return fmt.Errorf("csv: write: %w", err)
			}
		}
		for j, col := range ds.Columns {
			row[j] = models.Text(rec.Get(col))
		}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return f.Close()
}
