package services

import (
	"sort"

	"listing-dedup/models"
	"listing-dedup/utils"
)

// Ranker filters records by a numeric threshold and orders them by a
// numeric field, highest first.
type Ranker struct {
	logger *utils.Logger
}

// NewRanker creates a Ranker with the given logger.
func NewRanker(logger *utils.Logger) *Ranker {
	return &Ranker{logger: logger}
}

// RankOptions names the fields SelectTop works on.
type RankOptions struct {
	ThresholdField string
	Threshold      float64
	SortField      string
	// Limit caps the returned records; zero or less means no cap.
	Limit int

	ProvinceField   string
	CityCountyField string
}

// SelectTop keeps records whose threshold field is >= Threshold, sorts them
// by SortField descending (ties keep input order) and truncates to Limit.
// Unparsable or absent values count as 0.
func (rk *Ranker) SelectTop(records []models.Record, opts RankOptions) models.Ranking {
	filtered := make([]models.Record, 0, len(records))
	for _, r := range records {
		if models.Numeric(r.Get(opts.ThresholdField)) >= opts.Threshold {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return models.Numeric(filtered[i].Get(opts.SortField)) >
			models.Numeric(filtered[j].Get(opts.SortField))
	})

	ranking := models.Ranking{
		MatchCount:   len(filtered),
		Limit:        opts.Limit,
		Provinces:    DistinctValues(filtered, opts.ProvinceField),
		CityCounties: DistinctValues(filtered, opts.CityCountyField),
	}

	top := filtered
	if opts.Limit > 0 && len(top) > opts.Limit {
		top = top[:opts.Limit]
	}
	ranking.Records = top

	rk.logger.Info("[ranker] %d of %d records have %s >= %s, showing %d",
		ranking.MatchCount, len(records), opts.ThresholdField,
		models.FormatNumber(opts.Threshold), len(top))
	return ranking
}

// DistinctValues returns the sorted set of non-blank display values of
// field across records. An empty field name yields nil.
func DistinctValues(records []models.Record, field string) []string {
	if field == "" {
		return nil
	}

	set := make(map[string]struct{})
	for _, r := range records {
		v := r.Get(field)
		if models.IsBlank(v) {
			continue
		}
		set[models.Text(v)] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
