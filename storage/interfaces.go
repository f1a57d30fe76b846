package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"listing-dedup/models"
)

// ErrUnknownFormat is returned for an export format with no writer.
var ErrUnknownFormat = errors.New("unknown export format")

// RecordWriter is the interface any export backend must satisfy.
type RecordWriter interface {
	Write(ctx context.Context, ds *models.Dataset) error
}

// NewRecordWriter returns the writer for format ("csv" or "parquet").
func NewRecordWriter(format, path string) (RecordWriter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return NewCSVWriter(path), nil
	case "parquet":
		return NewParquetWriter(path), nil
	default:
		return nil, fmt.Errorf("storage: %w: %q", ErrUnknownFormat, format)
	}
}
