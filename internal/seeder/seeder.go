package seeder

import (
	"github.com/rs/zerolog"

	"github.com/aleister1102/synopse/internal/common"
	"github.com/aleister1102/synopse/internal/datastore"
	"github.com/aleister1102/synopse/internal/models"
)

// Seeder imports seed files into a LawStore.
type Seeder struct {
	store  *datastore.LawStore
	logger zerolog.Logger
}

// NewSeeder creates a Seeder writing to the given store.
func NewSeeder(store *datastore.LawStore, logger zerolog.Logger) *Seeder {
	return &Seeder{
		store:  store,
		logger: logger.With().Str("component", "Seeder").Logger(),
	}
}

// Import wipes the store and repopulates it from the seed file at path.
// The store is reset before the first insert, so a validation failure in
// the file leaves the store untouched.
func (s *Seeder) Import(path string) error {
	seed, err := LoadSeedFile(path)
	if err != nil {
		return err
	}

	s.logger.Info().Str("seed_file", path).Int("law_count", len(seed.Laws)).Msg("Starting import")

	if err := s.store.Reset(); err != nil {
		return common.WrapError(err, "failed to reset store before import")
	}

	for _, law := range seed.Laws {
		if err := s.importLaw(law); err != nil {
			return err
		}
	}

	s.logger.Info().Int("law_count", len(seed.Laws)).Msg("Import completed")
	return nil
}

func (s *Seeder) importLaw(law SeedLaw) error {
	lawID, err := s.store.InsertLaw(models.Law{
		ShortName:  law.ShortName,
		FullNameDE: law.FullNameDE,
		FullNameZH: law.FullNameZH,
	})
	if err != nil {
		return err
	}

	paragraphCount := 0
	for _, version := range law.Versions {
		versionID, err := s.store.InsertVersion(models.LawVersion{
			LawID:       lawID,
			VersionDate: version.ParsedDate(),
			Description: version.Description,
		})
		if err != nil {
			return err
		}

		for _, paragraph := range version.Paragraphs {
			if _, err := s.store.InsertParagraph(models.Paragraph{
				VersionID:       versionID,
				ParagraphNumber: paragraph.Number,
				ContentDE:       paragraph.DE,
				ContentZH:       paragraph.ZH,
			}); err != nil {
				return err
			}
			paragraphCount++
		}
	}

	s.logger.Info().
		Str("law", law.ShortName).
		Int("version_count", len(law.Versions)).
		Int("paragraph_count", paragraphCount).
		Msg("Imported law")
	return nil
}
