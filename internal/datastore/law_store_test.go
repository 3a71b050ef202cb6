package datastore

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/synopse/internal/common"
	"github.com/aleister1102/synopse/internal/models"
)

func newTestStore(t *testing.T) *LawStore {
	t.Helper()
	store, err := NewLawStore(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(ISODate, s)
	require.NoError(t, err)
	return d
}

// seedTestData populates the store with two EStG versions sharing one
// paragraph and one single-version UStG.
func seedTestData(t *testing.T, store *LawStore) {
	t.Helper()

	estgID, err := store.InsertLaw(models.Law{ShortName: "EStG", FullNameDE: "Einkommensteuergesetz", FullNameZH: "所得税法"})
	require.NoError(t, err)
	ustgID, err := store.InsertLaw(models.Law{ShortName: "UStG", FullNameDE: "Umsatzsteuergesetz"})
	require.NoError(t, err)

	v2019, err := store.InsertVersion(models.LawVersion{LawID: estgID, VersionDate: mustDate(t, "2019-01-01"), Description: "Stand 2019"})
	require.NoError(t, err)
	v2020, err := store.InsertVersion(models.LawVersion{LawID: estgID, VersionDate: mustDate(t, "2020-01-01"), Description: "Stand 2020"})
	require.NoError(t, err)
	vUstg, err := store.InsertVersion(models.LawVersion{LawID: ustgID, VersionDate: mustDate(t, "2020-01-01")})
	require.NoError(t, err)

	_, err = store.InsertParagraph(models.Paragraph{VersionID: v2019, ParagraphNumber: "1", ContentDE: "Alte Fassung.", ContentZH: "旧版本。"})
	require.NoError(t, err)
	_, err = store.InsertParagraph(models.Paragraph{VersionID: v2020, ParagraphNumber: "1", ContentDE: "Neue Fassung.", ContentZH: "新版本。"})
	require.NoError(t, err)
	_, err = store.InsertParagraph(models.Paragraph{VersionID: v2020, ParagraphNumber: "2", ContentDE: "Nur 2020."})
	require.NoError(t, err)
	_, err = store.InsertParagraph(models.Paragraph{VersionID: vUstg, ParagraphNumber: "12", ContentDE: "Steuersätze."})
	require.NoError(t, err)
}

func TestLawStore_EmptyStore(t *testing.T) {
	store := newTestStore(t)

	count, err := store.CountLaws()
	require.NoError(t, err)
	assert.Zero(t, count)

	laws, err := store.ListLaws()
	require.NoError(t, err)
	assert.Empty(t, laws)
}

func TestLawStore_ListLaws(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)

	laws, err := store.ListLaws()
	require.NoError(t, err)
	require.Len(t, laws, 2)
	assert.Equal(t, "EStG", laws[0].ShortName)
	assert.Equal(t, "所得税法", laws[0].FullNameZH)
	assert.Equal(t, "UStG", laws[1].ShortName)
	assert.Empty(t, laws[1].FullNameZH)
}

func TestLawStore_GetLawDetails(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)

	details, err := store.GetLawDetails("EStG")
	require.NoError(t, err)
	assert.Equal(t, "Einkommensteuergesetz", details.Law.FullNameDE)

	// Versions newest first.
	require.Len(t, details.Versions, 2)
	assert.Equal(t, "2020-01-01", details.Versions[0].Date())
	assert.Equal(t, "2019-01-01", details.Versions[1].Date())

	// Distinct paragraph numbers across all versions.
	assert.Equal(t, []string{"1", "2"}, details.ParagraphNumbers)
}

func TestLawStore_GetLawDetails_NotFound(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)

	_, err := store.GetLawDetails("BGB")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestLawStore_GetParagraphVersion(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)

	pv, err := store.GetParagraphVersion("EStG", mustDate(t, "2019-01-01"), "1")
	require.NoError(t, err)
	assert.Equal(t, "Alte Fassung.", pv.ContentDE)
	assert.Equal(t, "旧版本。", pv.ContentZH)
	assert.Equal(t, "EStG", pv.LawShortName)
	assert.Equal(t, "2019-01-01", pv.VersionDate.Format(ISODate))
}

func TestLawStore_GetParagraphVersion_NotFound(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)

	cases := []struct {
		name      string
		law       string
		date      string
		paragraph string
	}{
		{"UnknownLaw", "BGB", "2020-01-01", "1"},
		{"UnknownDate", "EStG", "2021-01-01", "1"},
		{"UnknownParagraph", "EStG", "2020-01-01", "99"},
		{"ParagraphMissingInOlderVersion", "EStG", "2019-01-01", "2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.GetParagraphVersion(tc.law, mustDate(t, tc.date), tc.paragraph)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrNotFound))
		})
	}
}

func TestLawStore_ListParagraphHistory(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)

	history, err := store.ListParagraphHistory()
	require.NoError(t, err)
	require.Len(t, history, 4)

	// Ordered by law, date, paragraph number.
	assert.Equal(t, "EStG", history[0].LawShortName)
	assert.Equal(t, "2019-01-01", history[0].VersionDate.Format(ISODate))
	assert.Equal(t, "2", history[2].ParagraphNumber)
	assert.Equal(t, "UStG", history[3].LawShortName)
}

func TestLawStore_Reset(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)

	require.NoError(t, store.Reset())

	count, err := store.CountLaws()
	require.NoError(t, err)
	assert.Zero(t, count)

	// Store remains usable after a reset.
	_, err = store.InsertLaw(models.Law{ShortName: "AO", FullNameDE: "Abgabenordnung"})
	require.NoError(t, err)
}

func TestLawStore_DuplicateConstraints(t *testing.T) {
	store := newTestStore(t)

	id, err := store.InsertLaw(models.Law{ShortName: "EStG", FullNameDE: "Einkommensteuergesetz"})
	require.NoError(t, err)
	_, err = store.InsertLaw(models.Law{ShortName: "EStG", FullNameDE: "Duplikat"})
	assert.Error(t, err)

	_, err = store.InsertVersion(models.LawVersion{LawID: id, VersionDate: mustDate(t, "2020-01-01")})
	require.NoError(t, err)
	_, err = store.InsertVersion(models.LawVersion{LawID: id, VersionDate: mustDate(t, "2020-01-01")})
	assert.Error(t, err)
}
