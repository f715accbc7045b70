package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"blueorgreen/internal/domain"
)

// ColorService definiert den Vertrag, den der Backend-Handler von der Service-Schicht erwartet.
type ColorService interface {
	Current(ctx context.Context) domain.Color
}

// ColorHandler stellt die aktive Farbe über HTTP bereit.
type ColorHandler struct {
	service ColorService
	logger  *zap.Logger
}

// NewColorHandler erstellt einen neuen ColorHandler.
func NewColorHandler(svc ColorService, logger *zap.Logger) *ColorHandler {
	return &ColorHandler{service: svc, logger: logger}
}

// Get gibt die aktive Farbe als JSON zurück.
func (h *ColorHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Current(r.Context()))
}

// Health meldet den Service als gesund.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": service,
		})
	}
}

// errorBody ist die einheitliche Fehlerantwort-Struktur.
type errorBody struct {
	Error string `json:"error"`
}

// WriteError schreibt einen Fehler im einheitlichen Format.
func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{msg})
}

// writeJSON setzt den Content-Type-Header und schreibt v als JSON in w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
