package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/synopse/internal/common"
	"github.com/aleister1102/synopse/internal/datastore"
	"github.com/aleister1102/synopse/internal/synopsis"
)

// LawListEntry is one row of the law index response.
type LawListEntry struct {
	ShortName  string `json:"short_name"`
	FullNameDE string `json:"full_name_de"`
	FullNameZH string `json:"full_name_zh,omitempty"`
}

// LawDetailsResponse enumerates the versions and paragraph numbers
// available for one law.
type LawDetailsResponse struct {
	ShortName        string   `json:"short_name"`
	FullNameDE       string   `json:"full_name_de"`
	FullNameZH       string   `json:"full_name_zh,omitempty"`
	Versions         []string `json:"versions"`
	ParagraphNumbers []string `json:"paragraph_numbers"`
}

// VersionSynopsis is one side of the comparison: the version date and the
// annotated HTML for each language field.
type VersionSynopsis struct {
	Date          string `json:"date"`
	ContentHTMLDE string `json:"content_html_de"`
	ContentHTMLZH string `json:"content_html_zh,omitempty"`
}

// SynopsisResponse is the full two-sided comparison of one paragraph
// across two versions.
type SynopsisResponse struct {
	Law       string          `json:"law"`
	Paragraph string          `json:"paragraph"`
	Version1  VersionSynopsis `json:"version_1"`
	Version2  VersionSynopsis `json:"version_2"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status string `json:"status"`
	Laws   int    `json:"laws"`
	Uptime string `json:"uptime"`
}

// Handler serves the HTTP routes from the store and the synopsis
// generator.
type Handler struct {
	store     *datastore.LawStore
	generator *synopsis.Generator
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(store *datastore.LawStore, generator *synopsis.Generator, logger zerolog.Logger) *Handler {
	return &Handler{
		store:     store,
		generator: generator,
		logger:    logger.With().Str("component", "APIHandler").Logger(),
		startTime: time.Now(),
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.CountLaws()
	if err != nil {
		h.logger.Error().Err(err).Msg("Health check failed to count laws")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "store unavailable")
		return
	}
	respond(w, http.StatusOK, HealthInfo{
		Status: "healthy",
		Laws:   count,
		Uptime: time.Since(h.startTime).String(),
	})
}

func (h *Handler) handleLaws(w http.ResponseWriter, r *http.Request) {
	if err := h.requirePopulated(); err != nil {
		respondDomainError(w, err)
		return
	}

	laws, err := h.store.ListLaws()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list laws")
		respondDomainError(w, err)
		return
	}

	entries := make([]LawListEntry, 0, len(laws))
	for _, law := range laws {
		entries = append(entries, LawListEntry{
			ShortName:  law.ShortName,
			FullNameDE: law.FullNameDE,
			FullNameZH: law.FullNameZH,
		})
	}
	respondList(w, http.StatusOK, entries, len(entries))
}

func (h *Handler) handleLawDetails(w http.ResponseWriter, r *http.Request) {
	if err := h.requirePopulated(); err != nil {
		respondDomainError(w, err)
		return
	}

	shortName := r.PathValue("short")
	details, err := h.store.GetLawDetails(shortName)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	versions := make([]string, 0, len(details.Versions))
	for _, version := range details.Versions {
		versions = append(versions, version.Date())
	}
	respond(w, http.StatusOK, LawDetailsResponse{
		ShortName:        details.Law.ShortName,
		FullNameDE:       details.Law.FullNameDE,
		FullNameZH:       details.Law.FullNameZH,
		Versions:         versions,
		ParagraphNumbers: details.ParagraphNumbers,
	})
}

func (h *Handler) handleSynopsis(w http.ResponseWriter, r *http.Request) {
	if err := h.requirePopulated(); err != nil {
		respondDomainError(w, err)
		return
	}

	law := r.PathValue("law")
	paragraph := r.PathValue("paragraph")

	date1, err := parseVersionDate(r.PathValue("v1"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	date2, err := parseVersionDate(r.PathValue("v2"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	oldVersion, err := h.store.GetParagraphVersion(law, date1, paragraph)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	newVersion, err := h.store.GetParagraphVersion(law, date2, paragraph)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resultDE := h.generator.Generate(oldVersion.ContentDE, newVersion.ContentDE)
	resultZH := h.generator.Generate(oldVersion.ContentZH, newVersion.ContentZH)

	h.logger.Info().
		Str("law", law).
		Str("paragraph", paragraph).
		Str("version_1", oldVersion.VersionDate.Format(datastore.ISODate)).
		Str("version_2", newVersion.VersionDate.Format(datastore.ISODate)).
		Bool("identical_de", resultDE.Stats.IsIdentical).
		Msg("Served synopsis")

	respond(w, http.StatusOK, SynopsisResponse{
		Law:       law,
		Paragraph: paragraph,
		Version1: VersionSynopsis{
			Date:          oldVersion.VersionDate.Format(datastore.ISODate),
			ContentHTMLDE: resultDE.Synopsis.OldHTML,
			ContentHTMLZH: resultZH.Synopsis.OldHTML,
		},
		Version2: VersionSynopsis{
			Date:          newVersion.VersionDate.Format(datastore.ISODate),
			ContentHTMLDE: resultDE.Synopsis.NewHTML,
			ContentHTMLZH: resultZH.Synopsis.NewHTML,
		},
	})
}

// requirePopulated distinguishes an unseeded store from a missing row.
func (h *Handler) requirePopulated() error {
	count, err := h.store.CountLaws()
	if err != nil {
		return err
	}
	if count == 0 {
		return common.ErrNotYetPopulated
	}
	return nil
}

func parseVersionDate(raw string) (time.Time, error) {
	date, err := time.Parse(datastore.ISODate, raw)
	if err != nil {
		return time.Time{}, common.WrapErrorf(common.ErrInvalidInput, "invalid version date '%s', expected YYYY-MM-DD", raw)
	}
	return date, nil
}
