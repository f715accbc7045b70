package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"blueorgreen/internal/domain"
)

// Fetcher ruft eine URL ab, deren Host ein logischer Service-Name ist.
type Fetcher interface {
	GetString(ctx context.Context, rawURL string) (string, error)
}

// FrontendHandler leitet Anfragen an den Farb-Service weiter.
type FrontendHandler struct {
	client     Fetcher
	backendURL string
	logger     *zap.Logger
}

// NewFrontendHandler erstellt einen Handler, der backendService über client aufruft.
func NewFrontendHandler(client Fetcher, backendService string, logger *zap.Logger) *FrontendHandler {
	return &FrontendHandler{
		client:     client,
		backendURL: "http://" + backendService,
		logger:     logger,
	}
}

// Color gibt die Antwort des Farb-Service unverändert zurück.
func (h *FrontendHandler) Color(w http.ResponseWriter, r *http.Request) {
	body, err := h.client.GetString(r.Context(), h.backendURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoInstances):
			h.logger.Error("keine instanz des farb-service gefunden", zap.String("url", h.backendURL), zap.Error(err))
		case errors.Is(err, domain.ErrUpstream):
			h.logger.Error("farb-service antwortet mit fehler", zap.String("url", h.backendURL), zap.Error(err))
		default:
			h.logger.Error("farb-service nicht erreichbar", zap.String("url", h.backendURL), zap.Error(err))
		}
		WriteError(w, http.StatusInternalServerError, "interner serverfehler")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}
