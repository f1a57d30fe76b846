package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-dedup/models"
)

func TestDefaultProfileIsValid(t *testing.T) {
	p := DefaultProfile()
	require.NoError(t, p.Validate())

	assert.Equal(t, models.FieldPriceDiff, p.KeyColumns[0])
	assert.Equal(t, models.FieldComplexCode, p.KeyColumns[11])
	assert.Equal(t, p.KeyColumns, p.DisplayColumns)
}

func TestParseProfileOverridesDefaults(t *testing.T) {
	data := []byte(`
threshold: 500
limit: 20
linkEligibilityField: ""
displayColumns:
  - 네이버_단지명
  - 가격차이_만원
`)
	p, err := ParseProfile(data)
	require.NoError(t, err)

	assert.Equal(t, 500.0, p.Threshold)
	assert.Equal(t, 20, p.Limit)
	assert.Empty(t, p.LinkEligibilityField)
	assert.Equal(t, []string{models.FieldComplexName, models.FieldPriceDiff}, p.DisplayColumns)
	assert.Len(t, p.KeyColumns, 12, "unspecified fields keep their defaults")
}

func TestParseProfileRejectsUnknownKeys(t *testing.T) {
	_, err := ParseProfile([]byte("tresholdField: foo\n"))
	require.Error(t, err)
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"empty key columns", func(p *Profile) { p.KeyColumns = nil }},
		{"blank key column", func(p *Profile) { p.KeyColumns = []string{"a", ""} }},
		{"duplicate key column", func(p *Profile) { p.KeyColumns = []string{"a", "a"} }},
		{"missing threshold field", func(p *Profile) { p.ThresholdField = "" }},
		{"missing sort field", func(p *Profile) { p.SortField = "" }},
		{"negative limit", func(p *Profile) { p.Limit = -1 }},
		{"link without template", func(p *Profile) { p.LinkURLTemplate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidProfile)
		})
	}
}

func TestReadProfileFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limit: 5\n"), 0o644))

	cfg := &Config{ProfilePath: path}
	p, err := cfg.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, 5, p.Limit)

	_, err = ReadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLinkURL(t *testing.T) {
	p := DefaultProfile()

	assert.Equal(t, "https://new.land.naver.com/complexes/12345",
		p.LinkURL(models.Record{models.FieldComplexCode: float64(12345)}))
	assert.Empty(t, p.LinkURL(models.Record{models.FieldComplexCode: ""}))
	assert.Empty(t, p.LinkURL(models.Record{}))

	p.LinkEligibilityField = ""
	assert.Empty(t, p.LinkURL(models.Record{models.FieldComplexCode: "1"}))
}

func TestExampleProfileParses(t *testing.T) {
	p, err := ReadProfile(filepath.Join("..", "profile.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}
