package archiver

import "github.com/aleister1102/synopse/internal/models"

// ParquetParagraphRecord is the flattened Parquet row for one stored
// paragraph version. Optional fields use pointers so untranslated content
// becomes a Parquet null instead of an empty string.
type ParquetParagraphRecord struct {
	LawShortName    string  `parquet:"law_short_name"`
	VersionDate     string  `parquet:"version_date"`
	ParagraphNumber string  `parquet:"paragraph_number"`
	ContentDE       string  `parquet:"content_de"`
	ContentZH       *string `parquet:"content_zh,optional"`
	ArchivedAt      int64   `parquet:"archived_at_ms"`
}

// toParquetRecord flattens a joined store row into its Parquet form.
func toParquetRecord(pv models.ParagraphVersion, archivedAtMs int64) ParquetParagraphRecord {
	return ParquetParagraphRecord{
		LawShortName:    pv.LawShortName,
		VersionDate:     pv.VersionDate.Format("2006-01-02"),
		ParagraphNumber: pv.ParagraphNumber,
		ContentDE:       pv.ContentDE,
		ContentZH:       stringPtrOrNil(pv.ContentZH),
		ArchivedAt:      archivedAtMs,
	}
}

func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
