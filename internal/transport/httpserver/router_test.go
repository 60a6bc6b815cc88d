package httpserver

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invite-app-go/internal/config"
	eventdomain "invite-app-go/internal/domain/event"
	guestsdomain "invite-app-go/internal/domain/guests"
	songsdomain "invite-app-go/internal/domain/songs"
	"invite-app-go/internal/metrics"
	"invite-app-go/internal/repository/inmemory"
	"invite-app-go/internal/transport/httpserver/handler"
	"invite-app-go/internal/transport/httpserver/middleware"
	"invite-app-go/pkg/logger"
)

const testAdminCode = "AZU15ADMIN"

type failingRepo struct{}

func (failingRepo) Insert(context.Context, *songsdomain.Suggestion) error {
	return errors.New("dial tcp: connection refused")
}

func (failingRepo) ListNewestFirst(context.Context) ([]songsdomain.Suggestion, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func newTestRouter(t *testing.T, repo songsdomain.Repository) http.Handler {
	t.Helper()

	entries, err := guestsdomain.DefaultGuests()
	require.NoError(t, err)
	directory, err := guestsdomain.NewDirectory(entries, testAdminCode)
	require.NoError(t, err)

	location, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	eventService := eventdomain.NewService(eventdomain.Details{
		Title:        "Mis 15 - Azul",
		Hosts:        []string{"Azul"},
		StartsAt:     time.Date(2025, 9, 5, 21, 0, 0, 0, location),
		VenueName:    "Salón de Eventos",
		VenueAddress: "Dirección del evento",
	})

	log := logger.NewNop()
	recorder := metrics.New()
	handlers := handler.New(directory, songsdomain.NewService(repo), eventService, recorder, location, log)
	cfg := config.Config{CORSAllowedOrigins: []string{"http://localhost:3000"}, MetricsEnabled: true}
	return NewRouter(cfg, handlers, recorder, log)
}

func do(t *testing.T, router http.Handler, method, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type songBody struct {
	ID        int64     `json:"id"`
	Family    string    `json:"family"`
	Song      string    `json:"song"`
	Artist    *string   `json:"artist"`
	CreatedAt time.Time `json:"created_at"`
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())
	rec := do(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGuestCodeCheck(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())

	lower := do(t, router, http.MethodPost, "/api/access/guest", `{"code":" azu15a "}`, nil)
	require.Equal(t, http.StatusOK, lower.Code)
	assert.JSONEq(t, `{"code":"AZU15A","family":"Familia Aguirre-Rollahiser","guests":4}`, lower.Body.String())

	upper := do(t, router, http.MethodPost, "/api/access/guest", `{"code":"AZU15A"}`, nil)
	require.Equal(t, http.StatusOK, upper.Code)
	assert.Equal(t, lower.Body.String(), upper.Body.String())

	missing := do(t, router, http.MethodPost, "/api/access/guest", `{"code":"NOPE"}`, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, `{"error":{"code":"guest_code_not_found","message":"guest code not found"}}`, missing.Body.String())

	admin := do(t, router, http.MethodPost, "/api/access/guest", `{"code":"AZU15ADMIN"}`, nil)
	assert.Equal(t, http.StatusNotFound, admin.Code)

	bad := do(t, router, http.MethodPost, "/api/access/guest", `{"code":`, nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestAdminCodeCheck(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())

	valid := do(t, router, http.MethodPost, "/api/access/admin", `{"code":"AZU15ADMIN"}`, nil)
	require.Equal(t, http.StatusOK, valid.Code)
	assert.JSONEq(t, `{"valid":true}`, valid.Body.String())

	for _, code := range []string{"azu15admin", " AZU15ADMIN", "AZU15A", ""} {
		body, err := json.Marshal(map[string]string{"code": code})
		require.NoError(t, err)
		rec := do(t, router, http.MethodPost, "/api/access/admin", string(body), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"valid":false}`, rec.Body.String(), "code %q", code)
	}
}

func TestSongsScenario(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())

	first := do(t, router, http.MethodPost, "/api/songs", `{"family":"Pérez","song":"Bohemian Rhapsody","artist":"Queen"}`, nil)
	require.Equal(t, http.StatusCreated, first.Code)
	var created struct {
		Song songBody `json:"song"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.Song.ID)
	require.NotNil(t, created.Song.Artist)
	assert.Equal(t, "Queen", *created.Song.Artist)
	assert.False(t, created.Song.CreatedAt.IsZero())

	second := do(t, router, http.MethodPost, "/api/songs", `{"family":"Pérez","song":"Imagine"}`, nil)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Contains(t, second.Body.String(), `"artist":null`)

	list := do(t, router, http.MethodGet, "/api/songs", "", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var listed struct {
		Songs []songBody `json:"songs"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listed))
	require.Len(t, listed.Songs, 2)
	assert.Equal(t, "Imagine", listed.Songs[0].Song)
	assert.Equal(t, "Bohemian Rhapsody", listed.Songs[1].Song)

	again := do(t, router, http.MethodGet, "/api/songs", "", nil)
	assert.Equal(t, list.Body.String(), again.Body.String())
}

func TestCreateSongValidation(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())

	cases := map[string]struct {
		body    string
		message string
	}{
		"empty song":     {body: `{"family":"Smith","song":""}`, message: "song is required"},
		"missing song":   {body: `{"family":"Smith"}`, message: "song is required"},
		"missing family": {body: `{"song":"Imagine"}`, message: "family is required"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/songs", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":{"code":"invalid_request","message":"`+tc.message+`"}}`, rec.Body.String())
		})
	}

	list := do(t, router, http.MethodGet, "/api/songs", "", nil)
	assert.JSONEq(t, `{"songs":[]}`, list.Body.String())

	unknown := do(t, router, http.MethodPost, "/api/songs", `{"family":"Smith","song":"x","votes":3}`, nil)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Contains(t, unknown.Body.String(), "invalid_json")
}

func TestSongsStorageFailureIsGeneric(t *testing.T) {
	router := newTestRouter(t, failingRepo{})

	create := do(t, router, http.MethodPost, "/api/songs", `{"family":"Smith","song":"Imagine"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, create.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"internal error"}}`, create.Body.String())
	assert.NotContains(t, create.Body.String(), "refused")

	list := do(t, router, http.MethodGet, "/api/songs", "", nil)
	assert.Equal(t, http.StatusInternalServerError, list.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"internal error"}}`, list.Body.String())
}

func TestAdminSongsRequireCode(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())
	do(t, router, http.MethodPost, "/api/songs", `{"family":"Pérez","song":"Imagine"}`, nil)

	denied := do(t, router, http.MethodGet, "/api/admin/songs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, denied.Code)

	wrong := do(t, router, http.MethodGet, "/api/admin/songs", "", map[string]string{middleware.AdminCodeHeader: "azu15admin"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)

	allowed := do(t, router, http.MethodGet, "/api/admin/songs", "", map[string]string{middleware.AdminCodeHeader: testAdminCode})
	require.Equal(t, http.StatusOK, allowed.Code)
	assert.Contains(t, allowed.Body.String(), `"song":"Imagine"`)
}

func TestAdminExportCSV(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())
	do(t, router, http.MethodPost, "/api/songs", `{"family":"Pérez","song":"Bohemian Rhapsody","artist":"Queen"}`, nil)
	do(t, router, http.MethodPost, "/api/songs", `{"family":"Smith, Jr","song":"Imagine"}`, nil)

	rec := do(t, router, http.MethodGet, "/api/admin/songs/export.csv", "", map[string]string{middleware.AdminCodeHeader: testAdminCode})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "canciones_sugeridas.csv")

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "family", "song", "artist", "created_at"}, rows[0])
	assert.Equal(t, []string{"2", "Smith, Jr", "Imagine", ""}, rows[1][:4])
	assert.Equal(t, []string{"1", "Pérez", "Bohemian Rhapsody", "Queen"}, rows[2][:4])
	_, err = time.Parse("2006-01-02 15:04", rows[1][4])
	assert.NoError(t, err)
}

func TestGetEvent(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())

	rec := do(t, router, http.MethodGet, "/api/event", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Title     string    `json:"title"`
		Hosts     []string  `json:"hosts"`
		StartsAt  time.Time `json:"starts_at"`
		Timezone  string    `json:"timezone"`
		Venue     struct{ Name, Address string }
		Countdown struct {
			Started bool `json:"started"`
		} `json:"countdown"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Mis 15 - Azul", body.Title)
	assert.Equal(t, []string{"Azul"}, body.Hosts)
	assert.Equal(t, "America/Argentina/Buenos_Aires", body.Timezone)
	assert.Equal(t, "Salón de Eventos", body.Venue.Name)
	assert.True(t, body.StartsAt.Equal(time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, inmemory.NewSongsRepository())
	do(t, router, http.MethodPost, "/api/access/guest", `{"code":"AZU15A"}`, nil)

	rec := do(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `invite_code_checks_total{kind="guest",outcome="accepted"} 1`)
	assert.Contains(t, rec.Body.String(), `route="/api/access/guest"`)
}
