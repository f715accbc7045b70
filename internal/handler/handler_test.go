package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blueorgreen/internal/domain"
	"blueorgreen/internal/service"
)

// mockFetcher implementiert Fetcher für Handler-Tests.
type mockFetcher struct {
	body    string
	err     error
	lastURL string
}

func (m *mockFetcher) GetString(_ context.Context, rawURL string) (string, error) {
	m.lastURL = rawURL
	return m.body, m.err
}

func testLogger() *zap.Logger {
	l, _ := zap.NewDevelopment()
	return l
}

func neuerBackendRouter(color string) *chi.Mux {
	h := NewColorHandler(service.NewColorService(color, testLogger()), testLogger())
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}

func neuerFrontendRouter(f Fetcher) *chi.Mux {
	h := NewFrontendHandler(f, "blueorgreen", testLogger())
	r := chi.NewRouter()
	r.Get("/color", h.Color)
	return r
}

func TestColorHandler_Get(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   string
	}{
		{"blau", "blue", "blue"},
		{"blau groß", "BLUE", "blue"},
		{"grün", "green", "green"},
		{"nicht konfiguriert", "", "green"},
		{"unbekannt", "magenta", "green"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			neuerBackendRouter(tt.config).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var c domain.Color
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
			assert.Equal(t, tt.want, c.ID)
		})
	}
}

func TestFrontendHandler_Color_ReichtBodyDurch(t *testing.T) {
	bodies := []string{`{"id":"blue"}`, `{"id":"green"}` + "\n", "beliebiger text", ""}

	for _, body := range bodies {
		f := &mockFetcher{body: body}
		rec := httptest.NewRecorder()
		neuerFrontendRouter(f).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/color", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, body, rec.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "http://blueorgreen", f.lastURL)
	}
}

func TestFrontendHandler_Color_Fehler(t *testing.T) {
	errs := []error{
		fmt.Errorf("service: %w", domain.ErrNoInstances),
		fmt.Errorf("status 502: %w", domain.ErrUpstream),
		errors.New("connection refused"),
	}

	for _, e := range errs {
		rec := httptest.NewRecorder()
		neuerFrontendRouter(&mockFetcher{err: e}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/color", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body errorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "interner serverfehler", body.Error)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health("blueorgreen").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"blueorgreen"}`, rec.Body.String())
}
