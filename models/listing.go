package models

import "time"

// Column names of the listing export files.
const (
	FieldPriceDiff      = "가격차이_만원"
	FieldComplexName    = "네이버_단지명"
	FieldProvince       = "네이버_시도"
	FieldCityCounty     = "네이버_시군구"
	FieldTown           = "네이버_읍면동"
	FieldSupplyArea     = "네이버_공급면적"
	FieldSalePrice      = "네이버_매매가"
	FieldFloorInfo      = "네이버_층정보"
	FieldVerifiedDate   = "네이버_확인일자"
	FieldKBLowerAverage = "KB_하위평균"
	FieldKBAverage      = "KB_일반평균"
	FieldComplexCode    = "네이버_단지코드"

	// Provenance columns added at ingestion.
	FieldSourceFile  = "소스파일"
	FieldProcessedAt = "처리일시"
)

// Record is one parsed row. Values are nil, string, float64 or bool.
// A missing key is equivalent to nil. Records are not mutated once the
// source has produced them.
type Record map[string]any

// Get returns the value stored under field, or nil when absent.
func (r Record) Get(field string) any {
	if r == nil {
		return nil
	}
	return r[field]
}

// Dataset is an ordered sequence of records together with the union of
// their column names in first-seen order.
type Dataset struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// FileStat describes one ingested source file. RowCount is the raw row
// count before deduplication.
type FileStat struct {
	FileName    string
	RowCount    int
	ProcessedAt time.Time
}

// DedupResult is the outcome of a deduplication pass.
type DedupResult struct {
	OriginalCount  int
	FinalCount     int
	DuplicateCount int
	Records        []Record
}

// QualityStats holds presence counts for the identifying fields.
type QualityStats struct {
	Total              int
	WithComplexCode    int
	WithoutComplexCode int
	WithComplexName    int
	WithoutComplexName int
}

// Percent returns n as a percentage of Total, or 0 for an empty dataset.
func (q QualityStats) Percent(n int) float64 {
	if q.Total == 0 {
		return 0
	}
	return float64(n) / float64(q.Total) * 100
}

// Ranking is the filtered, sorted and truncated view of the dataset.
type Ranking struct {
	Records []Record
	// MatchCount is the number of records that passed the threshold
	// filter before truncation.
	MatchCount int
	Limit      int

	// Distinct sorted values over the filtered set, used for the
	// region selectors.
	Provinces    []string
	CityCounties []string
}

// Report bundles everything a renderer needs.
type Report struct {
	GeneratedAt     time.Time
	Dedup           DedupResult
	Ranking         Ranking
	Files           []FileStat
	Quality         QualityStats
	UniqueLocations int
	// Columns present in the data, in display order.
	DisplayColumns []string
}
