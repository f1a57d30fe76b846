package pipeline

import (
	"context"
	"fmt"
	"time"

	"listing-dedup/config"
	"listing-dedup/models"
	"listing-dedup/services"
	"listing-dedup/utils"
)

// Source supplies the merged raw records and per-file statistics.
type Source interface {
	Load(ctx context.Context) (*models.Dataset, []models.FileStat, error)
}

// Result is the outcome of one run.
type Result struct {
	Report *models.Report
	// Deduplicated holds the surviving records in the input column layout.
	Deduplicated *models.Dataset
}

// Pipeline runs load → dedupe → score → rank. It keeps no state between runs.
type Pipeline struct {
	profile *config.Profile
	source  Source
	logger  *utils.Logger

	dedup  *services.Deduplicator
	ranker *services.Ranker
	scorer *services.QualityScorer

	now func() time.Time
}

// New creates a Pipeline for profile reading from src.
func New(profile *config.Profile, src Source, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		profile: profile,
		source:  src,
		logger:  logger,
		dedup:   services.NewDeduplicator(logger),
		ranker:  services.NewRanker(logger),
		scorer:  services.NewQualityScorer(profile.ComplexCodeField, profile.ComplexNameField),
		now:     time.Now,
	}
}

// Run executes the pipeline once.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.profile.Validate(); err != nil {
		return nil, err
	}

	raw, files, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load: %w", err)
	}
	if raw == nil {
		raw = &models.Dataset{}
	}
	p.logger.Info("[pipeline] Loaded %d rows from %d files", raw.Len(), len(files))

	deduped := p.dedup.Dedupe(raw.Records, p.profile.KeyColumns)

	quality := p.scorer.Score(deduped.Records)
	locations := services.CountLocations(deduped.Records, p.profile.ProvinceField, p.profile.CityCountyField)

	ranking := p.ranker.SelectTop(deduped.Records, services.RankOptions{
		ThresholdField:  p.profile.ThresholdField,
		Threshold:       p.profile.Threshold,
		SortField:       p.profile.SortField,
		Limit:           p.profile.Limit,
		ProvinceField:   p.profile.ProvinceField,
		CityCountyField: p.profile.CityCountyField,
	})

	report := &models.Report{
		GeneratedAt:     p.now(),
		Dedup:           deduped,
		Ranking:         ranking,
		Files:           files,
		Quality:         quality,
		UniqueLocations: locations,
		DisplayColumns:  presentColumns(p.profile.DisplayColumns, raw.Columns),
	}

	p.logger.Info("[pipeline] Final: %d records, %d locations, complex code on %d (%.1f%%)",
		deduped.FinalCount, locations, quality.WithComplexCode, quality.Percent(quality.WithComplexCode))

	return &Result{
		Report: report,
		Deduplicated: &models.Dataset{
			Columns: raw.Columns,
			Records: deduped.Records,
		},
	}, nil
}

// presentColumns keeps the wanted columns that occur in the data, in the
// wanted order.
func presentColumns(wanted, available []string) []string {
	have := make(map[string]struct{}, len(available))
	for _, c := range available {
		have[c] = struct{}{}
	}

	out := make([]string, 0, len(wanted))
	for _, c := range wanted {
		if _, ok := have[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
