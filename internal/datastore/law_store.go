// Package datastore implements the version store: a keyed lookup from
// (law, version date, paragraph number) to the recorded text content of
// that provision, backed by SQLite.
package datastore

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/aleister1102/synopse/internal/common"
	"github.com/aleister1102/synopse/internal/models"
)

// ISODate is the layout used for version dates in URLs, responses and the
// database.
const ISODate = "2006-01-02"

// LawStore wraps the SQL database connection and provides methods for
// storing and looking up law version content.
type LawStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewLawStore initializes a new store connection and ensures the schema is
// set up.
func NewLawStore(dataSourceName string, logger zerolog.Logger) (*LawStore, error) {
	storeLogger := logger.With().Str("component", "LawStore").Logger()
	storeLogger.Info().Str("db_path", dataSourceName).Msg("Initializing law store")

	if dir := filepath.Dir(dataSourceName); dataSourceName != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, common.WrapErrorf(err, "failed to create database directory %s", dir)
		}
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, common.WrapErrorf(err, "sql.Open failed for %s", dataSourceName)
	}

	store := &LawStore{
		db:     dbInstance,
		logger: storeLogger,
	}

	if err := store.InitSchema(); err != nil {
		store.Close()
		return nil, common.WrapError(err, "failed to initialize schema")
	}
	return store, nil
}

// Close closes the database connection.
func (s *LawStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the tables if they don't already exist.
func (s *LawStore) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS laws (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		short_name TEXT UNIQUE NOT NULL,
		full_name_de TEXT NOT NULL,
		full_name_zh TEXT
	);
	CREATE TABLE IF NOT EXISTS law_versions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		law_id INTEGER NOT NULL REFERENCES laws(id),
		version_date TEXT NOT NULL,
		description TEXT,
		UNIQUE(law_id, version_date)
	);
	CREATE TABLE IF NOT EXISTS paragraphs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version_id INTEGER NOT NULL REFERENCES law_versions(id),
		paragraph_number TEXT NOT NULL,
		content_de TEXT NOT NULL,
		content_zh TEXT,
		UNIQUE(version_id, paragraph_number)
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return common.WrapError(err, "failed to initialize schema")
	}
	return nil
}

// Reset drops and recreates all tables. Used by the seeder before a full
// re-import.
func (s *LawStore) Reset() error {
	query := `
	DROP TABLE IF EXISTS paragraphs;
	DROP TABLE IF EXISTS law_versions;
	DROP TABLE IF EXISTS laws;
	`
	if _, err := s.db.Exec(query); err != nil {
		return common.WrapError(err, "failed to drop tables")
	}
	s.logger.Info().Msg("Store reset, all tables dropped")
	return s.InitSchema()
}

// InsertLaw inserts a new law and returns its ID.
func (s *LawStore) InsertLaw(law models.Law) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO laws (short_name, full_name_de, full_name_zh) VALUES (?, ?, ?)`,
		law.ShortName, law.FullNameDE, law.FullNameZH,
	)
	if err != nil {
		return 0, common.WrapErrorf(err, "failed to insert law '%s'", law.ShortName)
	}
	return result.LastInsertId()
}

// InsertVersion inserts a new law version and returns its ID.
func (s *LawStore) InsertVersion(version models.LawVersion) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO law_versions (law_id, version_date, description) VALUES (?, ?, ?)`,
		version.LawID, version.VersionDate.Format(ISODate), version.Description,
	)
	if err != nil {
		return 0, common.WrapErrorf(err, "failed to insert version '%s'", version.Date())
	}
	return result.LastInsertId()
}

// InsertParagraph inserts a new paragraph and returns its ID.
func (s *LawStore) InsertParagraph(paragraph models.Paragraph) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO paragraphs (version_id, paragraph_number, content_de, content_zh) VALUES (?, ?, ?, ?)`,
		paragraph.VersionID, paragraph.ParagraphNumber, paragraph.ContentDE, paragraph.ContentZH,
	)
	if err != nil {
		return 0, common.WrapErrorf(err, "failed to insert paragraph '%s'", paragraph.ParagraphNumber)
	}
	return result.LastInsertId()
}

// CountLaws returns the number of laws in the store. Zero means the store
// has not been seeded yet.
func (s *LawStore) CountLaws() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM laws`).Scan(&count); err != nil {
		return 0, common.WrapError(err, "failed to count laws")
	}
	return count, nil
}

// ListLaws returns all laws ordered by short name.
func (s *LawStore) ListLaws() ([]models.Law, error) {
	rows, err := s.db.Query(`SELECT id, short_name, full_name_de, COALESCE(full_name_zh, '') FROM laws ORDER BY short_name`)
	if err != nil {
		return nil, common.WrapError(err, "failed to query laws")
	}
	defer rows.Close()

	var laws []models.Law
	for rows.Next() {
		var law models.Law
		if err := rows.Scan(&law.ID, &law.ShortName, &law.FullNameDE, &law.FullNameZH); err != nil {
			return nil, common.WrapError(err, "failed to scan law row")
		}
		laws = append(laws, law)
	}
	return laws, rows.Err()
}

// GetLawDetails returns a law together with its versions (newest first)
// and the distinct paragraph numbers appearing in any of its versions.
func (s *LawStore) GetLawDetails(shortName string) (*models.LawDetails, error) {
	var law models.Law
	err := s.db.QueryRow(
		`SELECT id, short_name, full_name_de, COALESCE(full_name_zh, '') FROM laws WHERE short_name = ?`,
		shortName,
	).Scan(&law.ID, &law.ShortName, &law.FullNameDE, &law.FullNameZH)
	if err == sql.ErrNoRows {
		return nil, common.NewNotFoundError("law", shortName)
	}
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to query law '%s'", shortName)
	}

	details := &models.LawDetails{Law: law}

	rows, err := s.db.Query(
		`SELECT id, law_id, version_date, COALESCE(description, '') FROM law_versions WHERE law_id = ? ORDER BY version_date DESC`,
		law.ID,
	)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to query versions of '%s'", shortName)
	}
	defer rows.Close()

	for rows.Next() {
		var version models.LawVersion
		var dateStr string
		if err := rows.Scan(&version.ID, &version.LawID, &dateStr, &version.Description); err != nil {
			return nil, common.WrapError(err, "failed to scan version row")
		}
		version.VersionDate, err = time.Parse(ISODate, dateStr)
		if err != nil {
			return nil, common.WrapErrorf(err, "corrupt version date '%s'", dateStr)
		}
		details.Versions = append(details.Versions, version)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	paragraphRows, err := s.db.Query(
		`SELECT DISTINCT p.paragraph_number FROM paragraphs p
		 JOIN law_versions v ON p.version_id = v.id
		 WHERE v.law_id = ? ORDER BY p.paragraph_number`,
		law.ID,
	)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to query paragraph numbers of '%s'", shortName)
	}
	defer paragraphRows.Close()

	for paragraphRows.Next() {
		var number string
		if err := paragraphRows.Scan(&number); err != nil {
			return nil, common.WrapError(err, "failed to scan paragraph number")
		}
		details.ParagraphNumbers = append(details.ParagraphNumbers, number)
	}
	return details, paragraphRows.Err()
}

// GetParagraphVersion looks up the exact text content recorded for one
// (law, version date, paragraph number) triple. Returns an error wrapping
// common.ErrNotFound when the triple does not exist; a missing row is
// never reported as empty content.
func (s *LawStore) GetParagraphVersion(lawShortName string, versionDate time.Time, paragraphNumber string) (*models.ParagraphVersion, error) {
	var pv models.ParagraphVersion
	err := s.db.QueryRow(
		`SELECT l.short_name, p.paragraph_number, p.content_de, COALESCE(p.content_zh, '')
		 FROM paragraphs p
		 JOIN law_versions v ON p.version_id = v.id
		 JOIN laws l ON v.law_id = l.id
		 WHERE l.short_name = ? AND v.version_date = ? AND p.paragraph_number = ?`,
		lawShortName, versionDate.Format(ISODate), paragraphNumber,
	).Scan(&pv.LawShortName, &pv.ParagraphNumber, &pv.ContentDE, &pv.ContentZH)
	if err == sql.ErrNoRows {
		return nil, common.NewNotFoundError("paragraph", lawShortName+"/"+versionDate.Format(ISODate)+"/"+paragraphNumber)
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to query paragraph version")
	}
	pv.VersionDate = versionDate
	return &pv, nil
}

// ListParagraphHistory returns every stored paragraph version joined with
// its law and date, ordered by law, date and paragraph number. Used by the
// archiver for full history snapshots.
func (s *LawStore) ListParagraphHistory() ([]models.ParagraphVersion, error) {
	rows, err := s.db.Query(
		`SELECT l.short_name, v.version_date, p.paragraph_number, p.content_de, COALESCE(p.content_zh, '')
		 FROM paragraphs p
		 JOIN law_versions v ON p.version_id = v.id
		 JOIN laws l ON v.law_id = l.id
		 ORDER BY l.short_name, v.version_date, p.paragraph_number`,
	)
	if err != nil {
		return nil, common.WrapError(err, "failed to query paragraph history")
	}
	defer rows.Close()

	var history []models.ParagraphVersion
	for rows.Next() {
		var pv models.ParagraphVersion
		var dateStr string
		if err := rows.Scan(&pv.LawShortName, &dateStr, &pv.ParagraphNumber, &pv.ContentDE, &pv.ContentZH); err != nil {
			return nil, common.WrapError(err, "failed to scan history row")
		}
		pv.VersionDate, err = time.Parse(ISODate, dateStr)
		if err != nil {
			return nil, common.WrapErrorf(err, "corrupt version date '%s'", dateStr)
		}
		history = append(history, pv)
	}
	return history, rows.Err()
}
