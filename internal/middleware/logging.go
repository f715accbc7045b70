package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logging protokolliert jede Anfrage mit Service, Methode, Pfad, Status,
// Antwortgröße, Dauer und Request-ID.
func Logging(service string, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.With(zap.String("service", service))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("methode", r.Method),
				zap.String("pfad", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("dauer", time.Since(start)),
			}
			if ww.Status() >= http.StatusInternalServerError {
				log.Warn("anfrage fehlgeschlagen", fields...)
				return
			}
			log.Info("anfrage", fields...)
		})
	}
}
