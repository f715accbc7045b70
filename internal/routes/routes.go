package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"blueorgreen/internal/handler"
	"blueorgreen/internal/middleware"
	"blueorgreen/internal/proxy"
)

// use registriert die globale Middleware beider Services.
func use(r chi.Router, service string, logger *zap.Logger, rps float64) {
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(service, logger))
	r.Use(middleware.RateLimit(rps, logger))
	r.NotFound(NotFound)
}

// SetupBackend registriert die Endpunkte des Farb-Service.
func SetupBackend(r chi.Router, service string, h *handler.ColorHandler, logger *zap.Logger, rps float64) {
	use(r, service, logger, rps)

	r.Get("/", h.Get)
	r.Get("/health", handler.Health(service))
}

// SetupFrontend registriert /color, die Weiterleitung /{backendService}/* und /health.
func SetupFrontend(r chi.Router, backendService string, h *handler.FrontendHandler, targeter proxy.Targeter, logger *zap.Logger, rps float64) {
	use(r, "frontend", logger, rps)

	r.Get("/color", h.Color)
	r.Get("/health", handler.Health("frontend"))

	prefix := "/" + backendService
	fwd := proxy.ServiceProxy(prefix, backendService, targeter, logger)
	r.Handle(prefix, fwd)
	r.Handle(prefix+"/*", fwd)
}

// NotFound antwortet im einheitlichen Fehlerformat.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	handler.WriteError(w, http.StatusNotFound, "nicht gefunden")
}
