package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/telemetry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(config.StorageConfig{Type: "sqlite", SQLite: config.SQLiteConfig{Path: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestServer(t *testing.T) (*Server, *Store) {
	t.Helper()
	store := newTestStore(t)
	return NewServer(store, Options{CORSOrigin: "*"}, nil), store
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOpenRejectsUnknownStorage(t *testing.T) {
	_, err := Open(config.StorageConfig{Type: "mongodb"})
	assert.ErrorIs(t, err, ErrUnknownStorage)
}

func TestLogSession(t *testing.T) {
	srv, store := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/api/log",
		`{"screenSize":{"width":800,"height":600,"screenWidth":1920,"screenHeight":1080}}`,
		map[string]string{"User-Agent": "roadrush-test", "X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	logs, err := store.Sessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "203.0.113.7", logs[0].IP)
	assert.Equal(t, "roadrush-test", logs[0].UserAgent)
	assert.Equal(t, "Direct", logs[0].Referrer)
	assert.Equal(t, 800, logs[0].Width)
	assert.Equal(t, 1080, logs[0].ScreenHeight)
	assert.False(t, logs[0].CreatedAt.IsZero())
}

func TestLogLocation(t *testing.T) {
	srv, store := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/api/log-location",
		`{"latitude":51.5,"longitude":-0.12,"accuracy":30}`,
		map[string]string{"Referer": "https://example.com/play"})
	require.Equal(t, http.StatusOK, rec.Code)

	locs, err := store.Locations(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, 51.5, locs[0].Latitude)
	assert.Equal(t, -0.12, locs[0].Longitude)
	assert.Equal(t, "https://example.com/play", locs[0].Referrer)
	assert.Equal(t, "192.0.2.1", locs[0].IP, "httptest peer address")
}

func TestBadPayloads(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/api/log", `{"screenSize":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "bad payload")

	rec = do(t, srv.Handler(), http.MethodPost, "/api/log-location", `{"latitude":120,"longitude":0}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStorageFailureIsServerError(t *testing.T) {
	srv, store := newTestServer(t)
	require.NoError(t, store.Close())

	rec := do(t, srv.Handler(), http.MethodPost, "/api/log", `{"screenSize":{}}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Server error"}`, rec.Body.String())

	rec = do(t, srv.Handler(), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListingsAreNewestFirst(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	for _, w := range []string{"100", "200", "300"} {
		rec := do(t, h, http.MethodPost, "/api/log", `{"screenSize":{"width":`+w+`}}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/logs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []SessionLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 3)
	assert.Equal(t, []int{300, 200, 100}, []int{logs[0].Width, logs[1].Width, logs[2].Width})

	rec = do(t, h, http.MethodGet, "/api/logs?limit=1", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, 300, logs[0].Width)

	rec = do(t, h, http.MethodGet, "/api/locations", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestIndexHealthAndCORS(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodOptions, "/api/log", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/log", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, h, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.4:5555"
	assert.Equal(t, "198.51.100.4", ClientIP(r))

	r.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", ClientIP(r))

	r.Header.Set("X-Forwarded-For", " 203.0.113.1 ,10.0.0.2")
	assert.Equal(t, "203.0.113.1", ClientIP(r))
}

func TestTelemetryClientAgainstCollector(t *testing.T) {
	srv, store := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := telemetry.NewClient(telemetry.Options{BaseURL: ts.URL}, nil)
	client.StartSession(context.Background(),
		telemetry.SessionReport{ScreenSize: telemetry.ScreenSize{Width: 1024, Height: 768}},
		telemetry.StaticLocator{Fix: telemetry.Location{Latitude: 10, Longitude: 20, Accuracy: 5}},
	)
	client.Close()

	logs, err := store.Sessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1024, logs[0].Width)
	assert.Equal(t, "127.0.0.1", logs[0].IP)

	locs, err := store.Locations(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, 20.0, locs[0].Longitude)

	sent, failed, dropped := client.Stats()
	assert.Equal(t, int64(2), sent)
	assert.Zero(t, failed)
	assert.Zero(t, dropped)
}

type fixedGeo map[string]IPLocation

func (g fixedGeo) Lookup(ip string) IPLocation {
	if loc, ok := g[ip]; ok {
		return loc
	}
	return UnknownLocation()
}

func TestLogSessionResolvesIPLocation(t *testing.T) {
	store := newTestStore(t)
	london := IPLocation{Country: "GB", Region: "ENG", City: "London", Latitude: 51.5, Longitude: -0.12}
	srv := NewServer(store, Options{Geo: fixedGeo{"203.0.113.7": london}}, nil)

	body := `{"screenSize":{"width":800,"height":600,"screenWidth":1920,"screenHeight":1080}}`
	require.Equal(t, http.StatusOK, do(t, srv.Handler(), http.MethodPost, "/api/log", body,
		map[string]string{"X-Forwarded-For": "203.0.113.7"}).Code)
	require.Equal(t, http.StatusOK, do(t, srv.Handler(), http.MethodPost, "/api/log", body,
		map[string]string{"X-Forwarded-For": "198.51.100.9"}).Code)

	logs, err := store.Sessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, UnknownLocation(), logs[0].IPLocation)
	assert.Equal(t, london, logs[1].IPLocation)

	rec := do(t, srv.Handler(), http.MethodGet, "/api/logs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "London", listed[1]["ipLocation"].(map[string]any)["city"])
}

func TestSessionLocationUnknownWithoutDatabase(t *testing.T) {
	srv, store := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/api/log", `{"screenSize":{"width":1,"height":1}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	logs, err := store.Sessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Unknown", logs[0].IPLocation.Country)
	assert.Equal(t, "Unknown", logs[0].IPLocation.Region)
	assert.Equal(t, "Unknown", logs[0].IPLocation.City)
	assert.Zero(t, logs[0].IPLocation.Latitude)
}

func TestGeoIP(t *testing.T) {
	_, err := OpenGeoIP(t.TempDir() + "/missing.mmdb")
	assert.Error(t, err)

	var g *GeoIP
	assert.Equal(t, UnknownLocation(), g.Lookup("203.0.113.7"))
	assert.NoError(t, g.Close())
}
