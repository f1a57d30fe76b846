package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"listing-dedup/models"
)

const parquetBatchSize = 512

// ParquetWriter exports a dataset as Parquet. Every column is an optional
// string column; absent and nil values are stored as nulls.
type ParquetWriter struct {
	path string
}

// NewParquetWriter creates a ParquetWriter for the given path.
func NewParquetWriter(path string) *ParquetWriter {
	return &ParquetWriter{path: path}
}

// Write creates (or truncates) the file and writes every record.
func (p *ParquetWriter) Write(ctx context.Context, ds *models.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("parquet: create output dir: %w", err)
	}

	f, err := os.Create(p.path)
	if err != nil {
		return fmt.Errorf("parquet: create file %q: %w", p.path, err)
	}

	schema := datasetSchema(ds.Columns)
	// Leaf columns of a group are laid out in name order, which is not the
	// dataset's column order.
	leaves := make([]string, 0, len(ds.Columns))
	for _, path := range schema.Columns() {
		leaves = append(leaves, path[0])
	}

	w := parquet.NewWriter(f, schema)

	batch := make([]parquet.Row, 0, parquetBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := w.WriteRows(batch); err != nil {
			return fmt.Errorf("parquet: write rows: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for _, rec := range ds.Records {
		batch = append(batch, toRow(rec, leaves))
		if len(batch) == parquetBatchSize {
			if err := ctx.Err(); err != nil {
				_ = f.Close()
				return fmt.Errorf("parquet: write: %w", err)
			}
			if err := flush(); err != nil {
				_ = f.Close()
				return err
			}
		}
	}
	if err := flush(); err != nil {
		_ = f.Close()
		return err
	}

	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("parquet: close writer: %w", err)
	}
	return f.Close()
}

func datasetSchema(columns []string) *parquet.Schema {
	group := make(parquet.Group, len(columns))
	for _, col := range columns {
		group[col] = parquet.Optional(parquet.String())
	}
	return parquet.NewSchema("listing", group)
}

func toRow(rec models.Record, leaves []string) parquet.Row {
	row := make(parquet.Row, len(leaves))
	for i, col := range leaves {
		v := rec.Get(col)
		if v == nil {
			row[i] = parquet.Value{}.Level(0, 0, i)
			continue
		}
		row[i] = parquet.ValueOf(models.Text(v)).Level(0, 1, i)
	}
	return row
}
