package services

import (
	"strings"

	"listing-dedup/models"
	"listing-dedup/utils"
)

// keySeparator joins normalized values into a composite key.
const keySeparator = "|"

// Deduplicator drops records whose composite key was already seen.
type Deduplicator struct {
	logger *utils.Logger
}

// NewDeduplicator creates a Deduplicator with the given logger.
func NewDeduplicator(logger *utils.Logger) *Deduplicator {
	return &Deduplicator{logger: logger}
}

// CompositeKey builds the duplicate-detection identity of r over keyColumns.
// Absent, nil and empty values all normalize to models.NullToken.
func CompositeKey(r models.Record, keyColumns []string) string {
	parts := make([]string, len(keyColumns))
	for i, col := range keyColumns {
		parts[i] = models.Normalize(r.Get(col))
	}
	return strings.Join(parts, keySeparator)
}

// Dedupe keeps the first occurrence of every composite key, in input order.
// The input slice is left untouched.
func (d *Deduplicator) Dedupe(records []models.Record, keyColumns []string) models.DedupResult {
	seen := make(map[string]struct{}, len(records))
	result := make([]models.Record, 0, len(records))

	for i, r := range records {
		key := CompositeKey(r, keyColumns)
		if _, dup := seen[key]; dup {
			d.logger.Debug("[dedupe] Duplicate row %d skipped (source: %s)",
				i, models.Text(r.Get(models.FieldSourceFile)))
			continue
		}
		seen[key] = struct{}{}
		result = append(result, r)
	}

	res := models.DedupResult{
		OriginalCount:  len(records),
		FinalCount:     len(result),
		DuplicateCount: len(records) - len(result),
		Records:        result,
	}

	d.logger.Info("[dedupe] %d → %d records (removed %d duplicates)",
		res.OriginalCount, res.FinalCount, res.DuplicateCount)
	return res
}
