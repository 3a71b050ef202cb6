package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/synopse/internal/config"
	"github.com/aleister1102/synopse/internal/datastore"
	"github.com/aleister1102/synopse/internal/models"
	"github.com/aleister1102/synopse/internal/synopsis"
)

// envelope mirrors APIResponse with the data payload left raw so each test
// can decode its own shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func newTestServer(t *testing.T, seed bool) *Server {
	t.Helper()

	store, err := datastore.NewLawStore(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if seed {
		seedStore(t, store)
	}

	cfg := config.NewDefaultServerConfig()
	server, err := NewServerBuilder(zerolog.Nop()).
		WithServerConfig(&cfg).
		WithStore(store).
		WithGenerator(synopsis.NewGenerator(zerolog.Nop())).
		Build()
	require.NoError(t, err)
	return server
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(datastore.ISODate, s)
	require.NoError(t, err)
	return d
}

func seedStore(t *testing.T, store *datastore.LawStore) {
	t.Helper()

	estgID, err := store.InsertLaw(models.Law{ShortName: "EStG", FullNameDE: "Einkommensteuergesetz", FullNameZH: "所得税法"})
	require.NoError(t, err)

	v2019, err := store.InsertVersion(models.LawVersion{LawID: estgID, VersionDate: mustDate(t, "2019-01-01")})
	require.NoError(t, err)
	v2020, err := store.InsertVersion(models.LawVersion{LawID: estgID, VersionDate: mustDate(t, "2020-01-01")})
	require.NoError(t, err)

	_, err = store.InsertParagraph(models.Paragraph{VersionID: v2019, ParagraphNumber: "1", ContentDE: "Der Steuersatz beträgt 19 Prozent.", ContentZH: "税率为百分之十九。"})
	require.NoError(t, err)
	_, err = store.InsertParagraph(models.Paragraph{VersionID: v2020, ParagraphNumber: "1", ContentDE: "Der Steuersatz beträgt 16 Prozent.", ContentZH: "税率为百分之十六。"})
	require.NoError(t, err)

	_, err = store.InsertLaw(models.Law{ShortName: "UStG", FullNameDE: "Umsatzsteuergesetz"})
	require.NoError(t, err)
}

func doRequest(t *testing.T, server *Server, path string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	server.Routes().ServeHTTP(recorder, req)

	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return recorder.Code, env
}

func TestServer_Health(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, true), "/api/health")
	assert.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var health HealthInfo
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 2, health.Laws)
}

func TestServer_ListLaws(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, true), "/api/laws")
	assert.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
	assert.Equal(t, 2, env.Meta.Total)

	var laws []LawListEntry
	require.NoError(t, json.Unmarshal(env.Data, &laws))
	require.Len(t, laws, 2)
	assert.Equal(t, "EStG", laws[0].ShortName)
	assert.Equal(t, "所得税法", laws[0].FullNameZH)
}

func TestServer_ListLaws_EmptyStore(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, false), "/api/laws")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_YET_POPULATED", env.Error.Code)
}

func TestServer_LawDetails(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, true), "/api/laws/EStG/details")
	assert.Equal(t, http.StatusOK, status)

	var details LawDetailsResponse
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Equal(t, "Einkommensteuergesetz", details.FullNameDE)
	assert.Equal(t, []string{"2020-01-01", "2019-01-01"}, details.Versions)
	assert.Equal(t, []string{"1"}, details.ParagraphNumbers)
}

func TestServer_LawDetails_NotFound(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, true), "/api/laws/BGB/details")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestServer_Synopsis(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, true), "/api/synopsis/EStG/2019-01-01/2020-01-01/1")
	assert.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var syn SynopsisResponse
	require.NoError(t, json.Unmarshal(env.Data, &syn))
	assert.Equal(t, "EStG", syn.Law)
	assert.Equal(t, "1", syn.Paragraph)
	assert.Equal(t, "2019-01-01", syn.Version1.Date)
	assert.Equal(t, "2020-01-01", syn.Version2.Date)

	// The changed digits are annotated on their respective sides.
	assert.Contains(t, syn.Version1.ContentHTMLDE, `<del class="diff-deleted">`)
	assert.Contains(t, syn.Version2.ContentHTMLDE, `<ins class="diff-inserted">`)
	assert.Contains(t, syn.Version1.ContentHTMLZH, `<del class="diff-deleted">`)

	// Unchanged surrounding text appears on both sides.
	assert.Contains(t, syn.Version1.ContentHTMLDE, "Der Steuersatz")
	assert.Contains(t, syn.Version2.ContentHTMLDE, "Der Steuersatz")
}

func TestServer_Synopsis_InvalidDate(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, true), "/api/synopsis/EStG/01.01.2019/2020-01-01/1")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestServer_Synopsis_NotFound(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"UnknownLaw", "/api/synopsis/BGB/2019-01-01/2020-01-01/1"},
		{"UnknownVersion", "/api/synopsis/EStG/2018-01-01/2020-01-01/1"},
		{"UnknownParagraph", "/api/synopsis/EStG/2019-01-01/2020-01-01/99"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := doRequest(t, newTestServer(t, true), tc.path)
			assert.Equal(t, http.StatusNotFound, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, "NOT_FOUND", env.Error.Code)
		})
	}
}

func TestServer_Synopsis_EmptyStore(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, false), "/api/synopsis/EStG/2019-01-01/2020-01-01/1")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_YET_POPULATED", env.Error.Code)
}

func TestServer_UnknownEndpoint(t *testing.T) {
	status, env := doRequest(t, newTestServer(t, true), "/api/nope")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
}

func TestServerBuilder_Validation(t *testing.T) {
	cfg := config.NewDefaultServerConfig()

	_, err := NewServerBuilder(zerolog.Nop()).
		WithServerConfig(&cfg).
		Build()
	assert.Error(t, err)
}
