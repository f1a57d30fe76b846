package services

import (
	"reflect"
	"testing"

	"listing-dedup/models"
	"listing-dedup/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

var testKeyColumns = []string{
	models.FieldPriceDiff, models.FieldComplexName, models.FieldProvince,
	models.FieldCityCounty, models.FieldTown, models.FieldSupplyArea,
	models.FieldSalePrice, models.FieldFloorInfo, models.FieldVerifiedDate,
	models.FieldKBLowerAverage, models.FieldKBAverage, models.FieldComplexCode,
}

func listing(name string, diff any, source string) models.Record {
	return models.Record{
		models.FieldPriceDiff:    diff,
		models.FieldComplexName:  name,
		models.FieldProvince:     "서울특별시",
		models.FieldCityCounty:   "강남구",
		models.FieldTown:         "대치동",
		models.FieldSupplyArea:   float64(112),
		models.FieldSalePrice:    float64(250000),
		models.FieldFloorInfo:    "10/25",
		models.FieldVerifiedDate: "2024-05-01",
		models.FieldComplexCode:  float64(1234),
		models.FieldSourceFile:   source,
	}
}

func TestCompositeKeyNormalizesBlanks(t *testing.T) {
	cols := []string{"a", "b", "c"}
	got := CompositeKey(models.Record{"a": float64(1000), "b": ""}, cols)
	if got != "1000|NULL|NULL" {
		t.Errorf("CompositeKey = %q; want %q", got, "1000|NULL|NULL")
	}
}

func TestDedupeDistinctFiles(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	records := []models.Record{
		listing("A", float64(1000), "file1.csv"),
		listing("B", float64(1100), "file1.csv"),
		listing("C", float64(1200), "file1.csv"),
		listing("D", float64(1300), "file2.csv"),
		listing("E", float64(1400), "file2.csv"),
	}

	res := d.Dedupe(records, testKeyColumns)
	if res.OriginalCount != 5 || res.FinalCount != 5 || res.DuplicateCount != 0 {
		t.Errorf("counts = %d/%d/%d; want 5/5/0", res.OriginalCount, res.FinalCount, res.DuplicateCount)
	}
}

func TestDedupeIgnoresProvenance(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	first := listing("A", float64(1500), "2024-01.csv")
	second := listing("A", float64(1500), "2024-02.csv")

	res := d.Dedupe([]models.Record{first, second}, testKeyColumns)
	if res.FinalCount != 1 {
		t.Fatalf("FinalCount = %d; want 1", res.FinalCount)
	}
	if got := res.Records[0].Get(models.FieldSourceFile); got != "2024-01.csv" {
		t.Errorf("survivor source = %v; want first file", got)
	}
}

func TestDedupeEmptyEqualsMissing(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	withEmpty := listing("A", float64(1500), "a.csv")
	withEmpty[models.FieldKBAverage] = ""
	missing := listing("A", float64(1500), "b.csv")
	delete(missing, models.FieldKBAverage)
	withNil := listing("A", float64(1500), "c.csv")
	withNil[models.FieldKBAverage] = nil

	res := d.Dedupe([]models.Record{withEmpty, missing, withNil}, testKeyColumns)
	if res.FinalCount != 1 || res.DuplicateCount != 2 {
		t.Errorf("counts = %d/%d; want 1/2", res.FinalCount, res.DuplicateCount)
	}
}

func TestDedupeNumberMatchesNumericString(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	res := d.Dedupe([]models.Record{
		listing("A", float64(1000), "a.csv"),
		listing("A", "1000", "b.csv"),
	}, testKeyColumns)
	if res.FinalCount != 1 {
		t.Errorf("FinalCount = %d; want 1", res.FinalCount)
	}
}

func TestDedupeKeepsFirstOccurrenceOrder(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	records := []models.Record{
		listing("A", float64(1), "1"),
		listing("B", float64(2), "2"),
		listing("A", float64(1), "3"),
		listing("C", float64(3), "4"),
		listing("B", float64(2), "5"),
	}

	res := d.Dedupe(records, testKeyColumns)
	var sources []string
	for _, r := range res.Records {
		sources = append(sources, r.Get(models.FieldSourceFile).(string))
	}
	if want := []string{"1", "2", "4"}; !reflect.DeepEqual(sources, want) {
		t.Errorf("survivors = %v; want %v", sources, want)
	}
}

func TestDedupeIdempotentAndCountInvariant(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	records := []models.Record{
		listing("A", float64(1), "1"),
		listing("A", float64(1), "2"),
		{models.FieldComplexName: "orphan"},
		{},
		{},
	}

	once := d.Dedupe(records, testKeyColumns)
	twice := d.Dedupe(once.Records, testKeyColumns)

	if once.OriginalCount != once.FinalCount+once.DuplicateCount {
		t.Errorf("count invariant broken: %+v", once)
	}
	if !reflect.DeepEqual(once.Records, twice.Records) {
		t.Errorf("dedupe is not idempotent")
	}
	if twice.DuplicateCount != 0 {
		t.Errorf("second pass removed %d records", twice.DuplicateCount)
	}
}

func TestDedupeEmptyInput(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	res := d.Dedupe(nil, testKeyColumns)
	if res.OriginalCount != 0 || res.FinalCount != 0 || res.DuplicateCount != 0 || len(res.Records) != 0 {
		t.Errorf("expected all zero for empty input, got %+v", res)
	}
}
