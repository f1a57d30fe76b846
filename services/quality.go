package services

import (
	"listing-dedup/models"
)

// unknownLocation buckets records without a full province/city pair.
const unknownLocation = "알 수 없음"

// QualityScorer counts how complete the identifying fields are.
type QualityScorer struct {
	complexCodeField string
	complexNameField string
}

// NewQualityScorer creates a scorer over the given identifying fields.
func NewQualityScorer(complexCodeField, complexNameField string) *QualityScorer {
	return &QualityScorer{
		complexCodeField: complexCodeField,
		complexNameField: complexNameField,
	}
}

// Score counts presence and absence of the complex code and complex name
// independently. Percentages are left to the caller.
func (q *QualityScorer) Score(records []models.Record) models.QualityStats {
	stats := models.QualityStats{Total: len(records)}

	for _, r := range records {
		if models.IsBlank(r.Get(q.complexCodeField)) {
			stats.WithoutComplexCode++
		} else {
			stats.WithComplexCode++
		}

		if models.IsBlank(r.Get(q.complexNameField)) {
			stats.WithoutComplexName++
		} else {
			stats.WithComplexName++
		}
	}

	return stats
}

// CountLocations returns the number of distinct "province city" pairs.
// Records lacking either part share one unknown bucket.
func CountLocations(records []models.Record, provinceField, cityField string) int {
	locs := make(map[string]struct{})
	for _, r := range records {
		province, city := r.Get(provinceField), r.Get(cityField)
		if models.IsBlank(province) || models.IsBlank(city) {
			locs[unknownLocation] = struct{}{}
			continue
		}
		locs[models.Text(province)+" "+models.Text(city)] = struct{}{}
	}
	return len(locs)
}
