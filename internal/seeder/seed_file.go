// Package seeder imports law content from a YAML seed file into the
// version store, replacing whatever the store held before.
package seeder

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aleister1102/synopse/internal/common"
)

// SeedFile is the root of the YAML seed document.
type SeedFile struct {
	Laws []SeedLaw `yaml:"laws" validate:"required,min=1,dive"`
}

// SeedLaw describes one law with all of its dated versions.
type SeedLaw struct {
	ShortName  string        `yaml:"short_name" validate:"required"`
	FullNameDE string        `yaml:"full_name_de" validate:"required"`
	FullNameZH string        `yaml:"full_name_zh"`
	Versions   []SeedVersion `yaml:"versions" validate:"required,min=1,dive"`
}

// SeedVersion is one dated version holding the paragraphs recorded for it.
type SeedVersion struct {
	Date        string          `yaml:"date" validate:"required,datetime=2006-01-02"`
	Description string          `yaml:"description"`
	Paragraphs  []SeedParagraph `yaml:"paragraphs" validate:"required,min=1,dive"`
}

// SeedParagraph carries the provision text in both parallel languages.
// ZH may be empty for untranslated provisions.
type SeedParagraph struct {
	Number string `yaml:"number" validate:"required"`
	DE     string `yaml:"de" validate:"required"`
	ZH     string `yaml:"zh"`
}

// ParsedDate returns the version date as time.Time. Call only after
// validation has passed.
func (v SeedVersion) ParsedDate() time.Time {
	d, _ := time.Parse("2006-01-02", v.Date)
	return d
}

// LoadSeedFile reads, parses and validates a YAML seed file.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read seed file %s", path)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, common.WrapErrorf(err, "failed to parse seed file %s", path)
	}

	if err := validator.New().Struct(seed); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return nil, common.NewValidationError(fe.Namespace(), fe.Value(), "failed on '"+fe.Tag()+"' validation")
		}
		return nil, common.WrapError(err, "seed file validation failed")
	}
	return &seed, nil
}
