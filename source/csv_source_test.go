package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-dedup/models"
	"listing-dedup/utils"
)

const header = "가격차이_만원,네이버_단지명,네이버_시도,네이버_시군구,네이버_단지코드\n"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newSource(dir string) *DirSource {
	s := NewDirSource(dir, 4, 1, utils.NewNopLogger())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC) }
	return s
}

func TestLoadMergesInFileNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", header+"1300,D,서울특별시,송파구,4\n1400,E,서울특별시,송파구,5\n")
	writeFile(t, dir, "a.csv", header+"1000,A,서울특별시,강남구,1\n1100,B,서울특별시,강남구,2\n1200,C,서울특별시,강남구,3\n")
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755))

	ds, stats, err := newSource(dir).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Records, 5)
	var names []string
	for _, r := range ds.Records {
		names = append(names, r.Get(models.FieldComplexName).(string))
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names)

	require.Len(t, stats, 2)
	assert.Equal(t, "a.csv", stats[0].FileName)
	assert.Equal(t, 3, stats[0].RowCount)
	assert.Equal(t, "b.csv", stats[1].FileName)
	assert.Equal(t, 2, stats[1].RowCount)

	assert.Equal(t, "a.csv", ds.Records[0].Get(models.FieldSourceFile))
	assert.Equal(t, "2024. 5. 1. 오후 3:04:05", ds.Records[0].Get(models.FieldProcessedAt))
	assert.Equal(t, []string{
		models.FieldPriceDiff, models.FieldComplexName, models.FieldProvince,
		models.FieldCityCounty, models.FieldComplexCode,
		models.FieldSourceFile, models.FieldProcessedAt,
	}, ds.Columns)
}

func TestLoadMissingDirectory(t *testing.T) {
	ds, stats, err := newSource(filepath.Join(t.TempDir(), "nope")).Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
	assert.Empty(t, stats)
}

func TestLoadEmptyDirectory(t *testing.T) {
	ds, stats, err := newSource(t.TempDir()).Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
	assert.Empty(t, stats)
}

func TestLoadSkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.csv", header+"1000,A,서울특별시,강남구,1\n")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "bad.csv")))

	ds, stats, err := newSource(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	require.Len(t, stats, 1)
	assert.Equal(t, "good.csv", stats[0].FileName)
}

func TestParseCSVTypingAndBOM(t *testing.T) {
	in := "\ufeff" + header +
		"1500,래미안,서울특별시,,12345\n" +
		"\n" +
		"abc,자이,경기도,성남시\n"

	cols, recs, err := ParseCSV(strings.NewReader(in), "x.csv", time.Now())
	require.NoError(t, err)

	assert.Equal(t, models.FieldPriceDiff, cols[0])
	require.Len(t, recs, 2)

	assert.Equal(t, float64(1500), recs[0].Get(models.FieldPriceDiff))
	assert.Nil(t, recs[0].Get(models.FieldCityCounty))
	assert.Equal(t, float64(12345), recs[0].Get(models.FieldComplexCode))

	assert.Equal(t, "abc", recs[1].Get(models.FieldPriceDiff))
	_, present := recs[1][models.FieldComplexCode]
	assert.False(t, present, "short rows leave trailing columns absent")
}

func TestParseCSVKeepsStrayQuotes(t *testing.T) {
	in := "네이버_단지명,네이버_층정보\n래미안,5\"\n자이,3\n"

	_, recs, err := ParseCSV(strings.NewReader(in), "x.csv", time.Now())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "5\"", recs[0].Get(models.FieldFloorInfo))
	assert.Equal(t, float64(3), recs[1].Get(models.FieldFloorInfo))
}

func TestLoadKeepsFileWithStrayQuote(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", header+"1000,\"래미안\"1차,서울특별시,강남구,1\n1100,자이,서울특별시,강남구,2\n")

	ds, stats, err := newSource(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].RowCount)
}

func TestParseCSVEmptyInput(t *testing.T) {
	cols, recs, err := ParseCSV(strings.NewReader(""), "empty.csv", time.Now())
	require.NoError(t, err)
	assert.Nil(t, cols)
	assert.Nil(t, recs)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"", nil},
		{"true", true},
		{"FALSE", false},
		{"1000", float64(1000)},
		{"-12.5", float64(-12.5)},
		{"1e3", float64(1000)},
		{"84.97㎡", "84.97㎡"},
		{"2024-05-01", "2024-05-01"},
		{"10/25", "10/25"},
		{"99999999999999999999", "99999999999999999999"},
		{" ", " "},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseValue(tt.raw), "ParseValue(%q)", tt.raw)
	}
}

func TestParseValueNegativeZeroMatchesZero(t *testing.T) {
	assert.Equal(t, models.Normalize(ParseValue("0")), models.Normalize(ParseValue("-0")))
}
