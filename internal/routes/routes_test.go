package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blueorgreen/internal/discovery"
	csvcatalog "blueorgreen/internal/discovery/csv"
	sqliteregistry "blueorgreen/internal/discovery/sqlite"
	"blueorgreen/internal/domain"
	"blueorgreen/internal/handler"
	"blueorgreen/internal/loadbalancer"
	"blueorgreen/internal/service"
)

func testLogger() *zap.Logger {
	l, _ := zap.NewDevelopment()
	return l
}

func startBackend(t *testing.T, color string) *httptest.Server {
	t.Helper()
	logger := testLogger()
	r := chi.NewRouter()
	SetupBackend(r, "blueorgreen", handler.NewColorHandler(service.NewColorService(color, logger), logger), logger, 0)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newFrontend(t *testing.T, backendURLs ...string) *chi.Mux {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("service,url,zone,status\n")
	for _, u := range backendURLs {
		sb.WriteString("blueorgreen," + u + ",default,UP\n")
	}
	catalog, err := csvcatalog.NewCatalogFromReader(strings.NewReader(sb.String()), testLogger())
	require.NoError(t, err)
	return frontendWith(t, catalog)
}

func frontendWith(t *testing.T, resolver discovery.Resolver) *chi.Mux {
	t.Helper()
	logger := testLogger()
	client := loadbalancer.NewClient(resolver, &loadbalancer.RoundRobin{}, http.DefaultClient, logger)
	r := chi.NewRouter()
	SetupFrontend(r, "blueorgreen", handler.NewFrontendHandler(client, "blueorgreen", logger), client, logger, 0)
	return r
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code, rec.Body.String()
}

func fetch(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestEndToEnd_Farben(t *testing.T) {
	tests := []struct {
		name  string
		color string
		want  string
	}{
		{"blau", "blue", `{"id":"blue"}`},
		{"grün", "green", `{"id":"green"}`},
		{"nicht konfiguriert", "", `{"id":"green"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := startBackend(t, tt.color)

			code, direct := fetch(t, backend.URL+"/")
			require.Equal(t, http.StatusOK, code)
			assert.JSONEq(t, tt.want, direct)

			code, viaFrontend := get(t, newFrontend(t, backend.URL), "/color")
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, direct, viaFrontend)
		})
	}
}

func TestEndToEnd_BlauGruenUmschaltung(t *testing.T) {
	blue := startBackend(t, "blue")
	green := startBackend(t, "green")
	frontend := newFrontend(t, blue.URL, green.URL)

	_, first := get(t, frontend, "/color")
	_, second := get(t, frontend, "/color")

	assert.JSONEq(t, `{"id":"blue"}`, first)
	assert.JSONEq(t, `{"id":"green"}`, second)
}

func TestEndToEnd_SelbstregistrierungUeberSQLite(t *testing.T) {
	backend := startBackend(t, "BLUE")

	reg, err := sqliteregistry.NewRegistry(":memory:", 0, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	_, err = reg.Register(context.Background(), domain.Instance{Service: "blueorgreen", URL: backend.URL})
	require.NoError(t, err)

	code, body := get(t, frontendWith(t, reg), "/color")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"blue"}`, body)
}

func TestFrontend_BackendNichtErreichbar(t *testing.T) {
	backend := startBackend(t, "blue")
	url := backend.URL
	backend.Close()

	code, body := get(t, newFrontend(t, url), "/color")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"interner serverfehler"}`, body)
}

func TestFrontend_KeineInstanz(t *testing.T) {
	code, _ := get(t, newFrontend(t), "/color")
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestFrontend_Weiterleitung(t *testing.T) {
	backend := startBackend(t, "blue")
	frontend := httptest.NewServer(newFrontend(t, backend.URL))
	t.Cleanup(frontend.Close)

	code, body := fetch(t, frontend.URL+"/blueorgreen/")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"blue"}`, body)

	code, body = fetch(t, frontend.URL+"/blueorgreen/health")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"healthy","service":"blueorgreen"}`, body)
}

func TestHealthUndNotFound(t *testing.T) {
	frontend := newFrontend(t)

	code, body := get(t, frontend, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"healthy","service":"frontend"}`, body)

	code, body = get(t, frontend, "/gibt-es-nicht")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"nicht gefunden"}`, body)
}
