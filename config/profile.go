package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"listing-dedup/models"
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile describes which columns drive deduplication, ranking and display.
type Profile struct {
	KeyColumns     []string `yaml:"keyColumns"`
	DisplayColumns []string `yaml:"displayColumns"`

	// LinkEligibilityField must be non-blank on a record for its LinkField
	// cell to become a link. Empty disables links.
	LinkEligibilityField string `yaml:"linkEligibilityField"`
	LinkField            string `yaml:"linkField"`
	// LinkURLTemplate is formatted with the eligibility field's value.
	LinkURLTemplate string `yaml:"linkURLTemplate"`

	ThresholdField string  `yaml:"thresholdField"`
	Threshold      float64 `yaml:"threshold"`
	SortField      string  `yaml:"sortField"`
	Limit          int     `yaml:"limit"`

	ProvinceField    string `yaml:"provinceField"`
	CityCountyField  string `yaml:"cityCountyField"`
	ComplexCodeField string `yaml:"complexCodeField"`
	ComplexNameField string `yaml:"complexNameField"`
}

// canonicalColumns is the 12-column set used both as the composite key
// and as the table layout.
func canonicalColumns() []string {
	return []string{
		models.FieldPriceDiff,
		models.FieldComplexName,
		models.FieldProvince,
		models.FieldCityCounty,
		models.FieldTown,
		models.FieldSupplyArea,
		models.FieldSalePrice,
		models.FieldFloorInfo,
		models.FieldVerifiedDate,
		models.FieldKBLowerAverage,
		models.FieldKBAverage,
		models.FieldComplexCode,
	}
}

// DefaultProfile returns the canonical profile for Naver/KB price exports.
func DefaultProfile() *Profile {
	return &Profile{
		KeyColumns:           canonicalColumns(),
		DisplayColumns:       canonicalColumns(),
		LinkEligibilityField: models.FieldComplexCode,
		LinkField:            models.FieldComplexName,
		LinkURLTemplate:      "https://new.land.naver.com/complexes/%s",
		ThresholdField:       models.FieldPriceDiff,
		Threshold:            1000,
		SortField:            models.FieldPriceDiff,
		Limit:                100,
		ProvinceField:        models.FieldProvince,
		CityCountyField:      models.FieldCityCounty,
		ComplexCodeField:     models.FieldComplexCode,
		ComplexNameField:     models.FieldComplexName,
	}
}

// ReadProfile decodes a YAML profile on top of the defaults. Keys not known
// to Profile are rejected.
func ReadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read profile %q: %w", path, err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes YAML profile bytes on top of the defaults.
func ParseProfile(data []byte) (*Profile, error) {
	p := DefaultProfile()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("config: decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the profile can drive a pipeline run.
func (p *Profile) Validate() error {
	switch {
	case len(p.KeyColumns) == 0:
		return fmt.Errorf("%w: keyColumns must not be empty", ErrInvalidProfile)
	case p.ThresholdField == "":
		return fmt.Errorf("%w: thresholdField is required", ErrInvalidProfile)
	case p.SortField == "":
		return fmt.Errorf("%w: sortField is required", ErrInvalidProfile)
	case p.Limit < 0:
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidProfile)
	case p.LinkEligibilityField != "" && p.LinkURLTemplate == "":
		return fmt.Errorf("%w: linkURLTemplate is required when linkEligibilityField is set", ErrInvalidProfile)
	}

	seen := make(map[string]struct{}, len(p.KeyColumns))
	for _, col := range p.KeyColumns {
		if col == "" {
			return fmt.Errorf("%w: empty key column", ErrInvalidProfile)
		}
		if _, dup := seen[col]; dup {
			return fmt.Errorf("%w: duplicate key column %q", ErrInvalidProfile, col)
		}
		seen[col] = struct{}{}
	}
	return nil
}

// LinkURL returns the link target for r, or "" when r is not eligible.
func (p *Profile) LinkURL(r models.Record) string {
	if p.LinkEligibilityField == "" {
		return ""
	}
	v := r.Get(p.LinkEligibilityField)
	if models.IsBlank(v) {
		return ""
	}
	return fmt.Sprintf(p.LinkURLTemplate, models.Text(v))
}
