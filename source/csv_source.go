package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"listing-dedup/models"
	"listing-dedup/utils"
)

const csvExt = ".csv"

// DirSource reads every CSV file of a directory and merges the rows in
// file-name order.
type DirSource struct {
	dir    string
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
	now    func() time.Time
}

// NewDirSource creates a DirSource parsing up to maxConcurrency files at once.
func NewDirSource(dir string, maxConcurrency, maxRetries int, logger *utils.Logger) *DirSource {
	return &DirSource{
		dir:    dir,
		logger: logger,
		pool:   utils.NewWorkerPool(maxConcurrency),
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   200 * time.Millisecond,
			Logger:      logger,
		},
		now: time.Now,
	}
}

// fileResult is the outcome of parsing one file.
type fileResult struct {
	columns []string
	records []models.Record
	stat    models.FileStat
	err     error
}

// Load returns the merged dataset and one FileStat per file that was read.
// A missing directory yields an empty dataset. Files that fail to parse are
// logged and skipped.
func (s *DirSource) Load(ctx context.Context) (*models.Dataset, []models.FileStat, error) {
	files, err := s.listFiles()
	if err != nil {
		return nil, nil, err
	}

	dataset := &models.Dataset{}
	if len(files) == 0 {
		return dataset, nil, nil
	}

	s.logger.Info("[source] Found %d CSV files in %s", len(files), s.dir)

	// Files are parsed in parallel, but each result lands in its own slot so
	// the merge below follows file-name order.
	results := make([]fileResult, len(files))
	for i, name := range files {
		s.pool.Submit(func() {
			results[i] = s.parseFile(ctx, name)
		})
	}
	s.pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("source: load: %w", err)
	}

	var stats []models.FileStat
	seenCols := make(map[string]struct{})
	for _, res := range results {
		if res.err != nil {
			s.logger.Error("[source] %s skipped: %v", res.stat.FileName, res.err)
			continue
		}
		for _, col := range res.columns {
			if _, ok := seenCols[col]; !ok {
				seenCols[col] = struct{}{}
				dataset.Columns = append(dataset.Columns, col)
			}
		}
		dataset.Records = append(dataset.Records, res.records...)
		stats = append(stats, res.stat)
		s.logger.Info("[source] %s: %d rows", res.stat.FileName, res.stat.RowCount)
	}

	return dataset, stats, nil
}

// listFiles returns the sorted CSV file names of the directory.
func (s *DirSource) listFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("[source] Directory %s does not exist, nothing to process", s.dir)
			return nil, nil
		}
		return nil, fmt.Errorf("source: read dir %q: %w", s.dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), csvExt) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

func (s *DirSource) parseFile(ctx context.Context, name string) fileResult {
	res := fileResult{stat: models.FileStat{FileName: name}}

	var f *os.File
	err := s.retry.Do(ctx, "open "+name, func() error {
		var openErr error
		f, openErr = os.Open(filepath.Join(s.dir, name))
		return openErr
	})
	if err != nil {
		res.err = fmt.Errorf("source: open %q: %w", name, err)
		return res
	}
	defer f.Close()

	processedAt := s.now()
	columns, records, err := ParseCSV(f, name, processedAt)
	if err != nil {
		res.err = err
		return res
	}

	res.columns = columns
	res.records = records
	res.stat.RowCount = len(records)
	res.stat.ProcessedAt = processedAt
	return res
}

// ParseCSV reads a header-first CSV stream into records. Empty lines are
// skipped, cells are typed with ParseValue and every record is tagged with
// the provenance columns.
func ParseCSV(r io.Reader, fileName string, processedAt time.Time) ([]string, []models.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("source: read header of %q: %w", fileName, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := make([]string, 0, len(header)+2)
	columns = append(columns, header...)
	columns = append(columns, models.FieldSourceFile, models.FieldProcessedAt)

	stamp := models.FormatTimestamp(processedAt)

	var records []models.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("source: read %q: %w", fileName, err)
		}
		if isEmptyRow(row) {
			continue
		}

		rec := make(models.Record, len(header)+2)
		for i, col := range header {
			if i >= len(row) {
				break
			}
			rec[col] = ParseValue(row[i])
		}
		rec[models.FieldSourceFile] = fileName
		rec[models.FieldProcessedAt] = stamp
		records = append(records, rec)
	}

	return columns, records, nil
}

func isEmptyRow(row []string) bool {
	return len(row) == 0 || (len(row) == 1 && row[0] == "")
}
