package models

import "time"

// Law identifies a statute by its conventional short name, e.g. "EStG".
type Law struct {
	ID         int64  `json:"-"`
	ShortName  string `json:"short_name"`
	FullNameDE string `json:"full_name_de"`
	FullNameZH string `json:"full_name_zh,omitempty"`
}

// LawVersion is one dated consolidated version of a law.
type LawVersion struct {
	ID          int64     `json:"-"`
	LawID       int64     `json:"-"`
	VersionDate time.Time `json:"-"`
	Description string    `json:"description,omitempty"`
}

// Date returns the version date in ISO format, the form used in URLs and
// responses.
func (v LawVersion) Date() string {
	return v.VersionDate.Format("2006-01-02")
}

// Paragraph is one provision of a law version, carrying the text content in
// both parallel languages. ContentZH may be empty for untranslated
// provisions.
type Paragraph struct {
	ID              int64  `json:"-"`
	VersionID       int64  `json:"-"`
	ParagraphNumber string `json:"paragraph_number"`
	ContentDE       string `json:"content_de"`
	ContentZH       string `json:"content_zh,omitempty"`
}

// ParagraphVersion is the joined lookup result for one (law, date,
// paragraph) triple.
type ParagraphVersion struct {
	LawShortName    string
	VersionDate     time.Time
	ParagraphNumber string
	ContentDE       string
	ContentZH       string
}

// LawDetails aggregates everything the request layer needs to offer a
// version/paragraph picker for one law.
type LawDetails struct {
	Law              Law          `json:"law"`
	Versions         []LawVersion `json:"-"`
	ParagraphNumbers []string     `json:"paragraph_numbers"`
}
